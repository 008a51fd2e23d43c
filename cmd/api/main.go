package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecobot-api/internal/application/verification"
	"github.com/ecobot-api/internal/config"
	"github.com/ecobot-api/internal/domain"
	"github.com/ecobot-api/internal/infrastructure/dynamo"
	"github.com/ecobot-api/internal/infrastructure/memstore"
	snsinfra "github.com/ecobot-api/internal/infrastructure/sns"
	"github.com/ecobot-api/internal/infrastructure/verify"
	transporthttp "github.com/ecobot-api/internal/transport/http"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// The provider variant is fixed here, once, from configuration.
	// Credentials present selects the networked backend; otherwise the
	// offline generator, optionally delivering codes over SNS.
	var provider verify.Provider
	if cfg.RemoteVerifyConfigured() {
		provider = verify.NewRemote(cfg.VerifyAccountID, cfg.VerifyAuthSecret, cfg.VerifyServiceID, cfg.VerifyBaseURL)
		log.Println("Using networked verification provider")
	} else {
		var smsSender snsinfra.SMSSender
		if sender, err := snsinfra.NewSender(cfg); err == nil {
			smsSender = sender
		} else {
			log.Printf("WARN: SNS sender not available, offline codes undelivered: %v", err)
		}
		provider = verify.NewOffline(smsSender, cfg.OfflineStaticCode)
		log.Println("Using offline verification provider")
	}

	// Optional per-phone start throttle.
	var limiter verification.StartLimiter
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		limiter = verification.NewRedisStartLimiter(client, time.Minute, 3)
	}

	userRepo := dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users)
	seedAdmin(context.Background(), userRepo, cfg.AdminUserID)

	deps := &transporthttp.Deps{
		UserRepo:     userRepo,
		PendingTable: memstore.NewPendingTable(),
		Provider:     provider,
		StartLimiter: limiter,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}

// seedAdmin makes sure the configured admin has a user record so the
// admin-only listing endpoint works from a fresh table.
func seedAdmin(ctx context.Context, repo *dynamo.UserRepo, adminID string) {
	if adminID == "" {
		return
	}
	if _, err := repo.Get(ctx, adminID); err == nil {
		return
	} else if !errors.Is(err, domain.ErrNotFound) {
		log.Printf("WARN: looking up admin user: %v", err)
		return
	}
	now := time.Now().UTC()
	admin := &domain.User{
		UserID:      adminID,
		DisplayName: "admin",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := repo.Put(ctx, admin); err != nil {
		log.Printf("WARN: seeding admin user: %v", err)
	}
}
