package http

import (
	"github.com/ecobot-api/internal/application/verification"
	"github.com/ecobot-api/internal/infrastructure/dynamo"
	"github.com/ecobot-api/internal/infrastructure/memstore"
	"github.com/ecobot-api/internal/infrastructure/verify"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo     *dynamo.UserRepo
	PendingTable *memstore.PendingTable
	Provider     verify.Provider
	Notifier     verification.Notifier     // nil falls back to the log notifier
	StartLimiter verification.StartLimiter // nil disables start throttling
}
