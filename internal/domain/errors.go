package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")

	// Verification flow outcomes interpreted by the orchestrator state machine.
	ErrInvalidPhone    = errors.New("invalid phone format")
	ErrInvalidCode     = errors.New("invalid code")
	ErrSessionExpired  = errors.New("verification session expired")
	ErrTooManyAttempts = errors.New("too many attempts")

	// Provider-layer failures. The core never retries these; the caller may
	// retry by resubmitting the triggering event.
	ErrProviderUnreachable  = errors.New("verification provider unreachable")
	ErrProviderUnauthorized = errors.New("verification provider unauthorized")

	// ErrStorage marks user-store read/write failures. Fatal for the request;
	// propagated, never swallowed.
	ErrStorage = errors.New("storage failure")
)
