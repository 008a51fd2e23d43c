package http

import (
	"net/http"
	"time"

	"github.com/ecobot-api/internal/application/user"
	"github.com/ecobot-api/internal/application/verification"
	"github.com/ecobot-api/internal/config"
	"github.com/ecobot-api/internal/transport/http/handler"
	appmiddleware "github.com/ecobot-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Acting-User"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10 — applied to the code-issuing endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	verifySvc := verification.NewService(verification.ServiceDeps{
		UserRepo:     deps.UserRepo,
		PendingTable: deps.PendingTable,
		Provider:     deps.Provider,
		Notifier:     deps.Notifier,
		StartLimiter: deps.StartLimiter,
		CodeTTL:      time.Duration(cfg.CodeTTLMinutes) * time.Minute,
		MaxAttempts:  cfg.MaxCodeAttempts,
	})
	userSvc := user.NewService(deps.UserRepo)

	verifyH := handler.NewVerificationHandler(verifySvc)
	userH := handler.NewUserHandler(userSvc, cfg.AdminUserID)

	r.Route("/v1", func(r chi.Router) {
		r.Use(appmiddleware.Gateway(cfg.GatewayToken))

		r.With(sensitiveRL.Limit).Post("/verification/phone", verifyH.SubmitPhone)
		r.With(sensitiveRL.Limit).Post("/verification/code", verifyH.SubmitCode)
		r.Get("/verification/state/{id}", verifyH.State)

		r.Get("/users", userH.List)
		r.Get("/users/{id}", userH.Get)
		r.Put("/users/{id}", userH.Update)
	})

	return r
}
