// Package verify abstracts one-time-code issuance and validation behind a
// single Provider interface with two interchangeable backends: an offline
// in-memory generator and a networked verification service. The variant is
// selected once at process start; the orchestrator never branches on which
// one is active.
package verify

import "context"

// CheckResult is the three-way outcome of validating a submitted code.
type CheckResult int

const (
	Rejected CheckResult = iota
	Approved
	Expired
)

func (r CheckResult) String() string {
	switch r {
	case Approved:
		return "approved"
	case Expired:
		return "expired"
	default:
		return "rejected"
	}
}

// Provider issues and validates one-time verification codes.
//
// Start initiates issuance of a code to phone and returns an opaque session
// reference. Check validates a previously issued code. Both must return
// promptly: networked implementations fail with domain.ErrProviderUnreachable
// or domain.ErrProviderUnauthorized rather than hanging.
type Provider interface {
	Start(ctx context.Context, phone string) (sessionRef string, err error)
	Check(ctx context.Context, phone, code string) (CheckResult, error)
}
