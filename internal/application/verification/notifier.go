package verification

import (
	"context"
	"log/slog"
)

// Human-readable outcome messages, one per state-machine transition result.
// The messaging-bot collaborator relays these verbatim.
const (
	MsgInvalidPhone    = "That doesn't look like a phone number. Please send it with the country code, e.g. +2348000000000."
	MsgCodeSent        = "We've sent a verification code to your phone. Reply with the 6-digit code."
	MsgInvalidCode     = "That code isn't right. Please check the SMS and try again."
	MsgSessionExpired  = "Your verification session has expired. Please send your phone number again."
	MsgTooManyAttempts = "Too many incorrect codes. Please send your phone number to start over."
	MsgVerified        = "Your phone number is verified. You're all set!"
	MsgAlreadyVerified = "Your phone number is already verified."
	MsgProviderFailure = "We couldn't reach the verification service. Please try again in a moment."
	MsgThrottled       = "You're requesting codes too quickly. Please wait a minute and try again."
)

// Notifier delivers a transition outcome to the user. The production
// implementation lives in the messaging-bot collaborator; Notify must not
// block event processing on delivery.
type Notifier interface {
	Notify(ctx context.Context, userID, message string)
}

type logNotifier struct{}

// NewLogNotifier returns a Notifier that only logs, used when no bot
// collaborator is wired in (tests, local runs).
func NewLogNotifier() Notifier { return logNotifier{} }

func (logNotifier) Notify(_ context.Context, userID, message string) {
	slog.Info("verification notice", "user_id", userID, "message", message)
}
