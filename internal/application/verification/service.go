package verification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecobot-api/internal/domain"
	"github.com/ecobot-api/internal/infrastructure/verify"
	"github.com/ecobot-api/internal/pkg/phone"
)

// providerCallBound caps provider calls when the caller supplied no deadline,
// so a slow verification backend can never wedge a user's event queue.
const providerCallBound = 12 * time.Second

// Service drives the per-user verification state machine:
// Unverified -> AwaitingCode -> Verified. Verified is terminal; submitting
// either event afterwards is an idempotent success.
type Service interface {
	SubmitPhone(ctx context.Context, userID, phoneNumber string) (domain.VerifyState, error)
	SubmitCode(ctx context.Context, userID, code string) (domain.VerifyState, error)
	State(ctx context.Context, userID string) (domain.VerifyState, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type pendingTable interface {
	Put(entry domain.PendingVerification)
	Get(userID string) (domain.PendingVerification, bool)
	Remove(userID string)
}

// StartLimiter throttles how often codes may be requested for one phone
// number. A nil limiter disables throttling.
type StartLimiter interface {
	Allow(ctx context.Context, key string) bool
}

type service struct {
	users       userStore
	pending     pendingTable
	provider    verify.Provider
	notifier    Notifier
	limiter     StartLimiter
	codeTTL     time.Duration
	maxAttempts int
	locks       userLocks
	nowF        func() time.Time
}

type ServiceDeps struct {
	UserRepo     userStore
	PendingTable pendingTable
	Provider     verify.Provider
	Notifier     Notifier
	StartLimiter StartLimiter // optional
	CodeTTL      time.Duration
	MaxAttempts  int
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		users:       deps.UserRepo,
		pending:     deps.PendingTable,
		provider:    deps.Provider,
		notifier:    deps.Notifier,
		limiter:     deps.StartLimiter,
		codeTTL:     deps.CodeTTL,
		maxAttempts: deps.MaxAttempts,
		nowF:        time.Now,
	}
	if s.codeTTL <= 0 {
		s.codeTTL = 10 * time.Minute
	}
	if s.maxAttempts <= 0 {
		s.maxAttempts = 5
	}
	if s.notifier == nil {
		s.notifier = NewLogNotifier()
	}
	return s
}

// SubmitPhone handles a phone submission from Unverified or AwaitingCode.
// A new submission while AwaitingCode supersedes the prior pending entry.
func (s *service) SubmitPhone(ctx context.Context, userID, phoneNumber string) (domain.VerifyState, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	phoneNumber = phone.Normalize(phoneNumber)
	if !phone.Valid(phoneNumber) {
		s.notifier.Notify(ctx, userID, MsgInvalidPhone)
		return s.stateLocked(ctx, userID), fmt.Errorf("phone %q: %w", phoneNumber, domain.ErrInvalidPhone)
	}

	u, err := s.ensureUser(ctx, userID)
	if err != nil {
		return domain.StateUnverified, err
	}
	if u.Verified {
		s.notifier.Notify(ctx, userID, MsgAlreadyVerified)
		return domain.StateVerified, nil
	}

	if s.limiter != nil && !s.limiter.Allow(ctx, phoneNumber) {
		s.notifier.Notify(ctx, userID, MsgThrottled)
		return s.stateLocked(ctx, userID), fmt.Errorf("code requests throttled for %s: %w", phoneNumber, domain.ErrTooManyAttempts)
	}

	callCtx, cancel := s.boundProviderCall(ctx)
	sessionRef, err := s.provider.Start(callCtx, phoneNumber)
	cancel()
	if err != nil {
		// Provider failure: remain in the current state, mutate nothing.
		s.notifier.Notify(ctx, userID, MsgProviderFailure)
		return s.stateLocked(ctx, userID), err
	}

	// The user-store write must be confirmed before the pending entry exists,
	// so a storage failure can never leave the two stores contradicting.
	if err := s.users.Update(ctx, userID, map[string]interface{}{"phone": phoneNumber}); err != nil {
		return s.stateLocked(ctx, userID), err
	}

	now := s.nowF()
	s.pending.Put(domain.PendingVerification{
		UserID:     userID,
		Phone:      phoneNumber,
		SessionRef: sessionRef,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.codeTTL),
		Attempts:   0,
	})
	s.notifier.Notify(ctx, userID, MsgCodeSent)
	return domain.StateAwaitingCode, nil
}

// SubmitCode handles a code submission while AwaitingCode.
func (s *service) SubmitCode(ctx context.Context, userID, code string) (domain.VerifyState, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	u, err := s.users.Get(ctx, userID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		// Never saw a phone from this user; there is no session to check.
		s.notifier.Notify(ctx, userID, MsgSessionExpired)
		return domain.StateUnverified, fmt.Errorf("user %s has no verification in flight: %w", userID, domain.ErrSessionExpired)
	case err != nil:
		return domain.StateUnverified, err
	}
	if u.Verified {
		s.notifier.Notify(ctx, userID, MsgAlreadyVerified)
		return domain.StateVerified, nil
	}

	entry, ok := s.pending.Get(userID)
	if !ok {
		s.notifier.Notify(ctx, userID, MsgSessionExpired)
		return domain.StateUnverified, fmt.Errorf("user %s: %w", userID, domain.ErrSessionExpired)
	}

	callCtx, cancel := s.boundProviderCall(ctx)
	result, err := s.provider.Check(callCtx, entry.Phone, code)
	cancel()
	if err != nil {
		s.notifier.Notify(ctx, userID, MsgProviderFailure)
		return domain.StateAwaitingCode, err
	}

	switch result {
	case verify.Approved:
		// Confirm the durable write before clearing the pending entry.
		if err := s.users.Update(ctx, userID, map[string]interface{}{
			"verified": true,
			"phone":    entry.Phone,
		}); err != nil {
			return domain.StateAwaitingCode, err
		}
		s.pending.Remove(userID)
		s.notifier.Notify(ctx, userID, MsgVerified)
		return domain.StateVerified, nil

	case verify.Expired:
		s.pending.Remove(userID)
		s.notifier.Notify(ctx, userID, MsgSessionExpired)
		return domain.StateUnverified, fmt.Errorf("user %s: %w", userID, domain.ErrSessionExpired)

	default: // Rejected
		entry.Attempts++
		if entry.Attempts > s.maxAttempts {
			s.pending.Remove(userID)
			s.notifier.Notify(ctx, userID, MsgTooManyAttempts)
			return domain.StateUnverified, fmt.Errorf("user %s exhausted %d attempts: %w", userID, s.maxAttempts, domain.ErrTooManyAttempts)
		}
		s.pending.Put(entry)
		s.notifier.Notify(ctx, userID, MsgInvalidCode)
		return domain.StateAwaitingCode, fmt.Errorf("user %s attempt %d: %w", userID, entry.Attempts, domain.ErrInvalidCode)
	}
}

// State derives the user's position from the user record and pending table.
func (s *service) State(ctx context.Context, userID string) (domain.VerifyState, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	u, err := s.users.Get(ctx, userID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.StateUnverified, nil
	case err != nil:
		return domain.StateUnverified, err
	}
	if u.Verified {
		return domain.StateVerified, nil
	}
	if _, ok := s.pending.Get(userID); ok {
		return domain.StateAwaitingCode, nil
	}
	return domain.StateUnverified, nil
}

// stateLocked is State for callers already holding the user's lock.
// Errors are ignored: it only refines the state reported alongside a
// primary error.
func (s *service) stateLocked(ctx context.Context, userID string) domain.VerifyState {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return domain.StateUnverified
	}
	if u.Verified {
		return domain.StateVerified
	}
	if _, ok := s.pending.Get(userID); ok {
		return domain.StateAwaitingCode
	}
	return domain.StateUnverified
}

// ensureUser returns the record for userID, creating it on first contact.
func (s *service) ensureUser(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.users.Get(ctx, userID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	now := s.nowF().UTC()
	fresh := &domain.User{
		UserID:    userID,
		Verified:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Create(ctx, fresh); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return s.users.Get(ctx, userID)
		}
		return nil, err
	}
	return fresh, nil
}

func (s *service) boundProviderCall(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, providerCallBound)
}
