package domain

import "time"

// PendingVerification is the transient record of an in-flight code challenge
// for one user. At most one exists per user; submitting a new phone supersedes
// any prior entry. Held in memory only — a restart legitimately loses it and
// the user restarts the flow.
type PendingVerification struct {
	UserID     string
	Phone      string
	SessionRef string // opaque provider session reference, may be empty
	CreatedAt  time.Time
	ExpiresAt  time.Time
	Attempts   int
}

// Expired reports whether the entry has aged out at the given instant.
func (p *PendingVerification) Expired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}

// VerifyState is the per-user position in the verification state machine.
// It is derived from the user record and the pending table, never stored.
type VerifyState string

const (
	StateUnverified   VerifyState = "unverified"
	StateAwaitingCode VerifyState = "awaiting_code"
	StateVerified     VerifyState = "verified"
)
