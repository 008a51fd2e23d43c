package user

import (
	"context"

	"github.com/ecobot-api/internal/domain"
)

// Dynamo attribute names used in partial update maps.
const (
	fieldDisplayName   = "display_name"
	fieldWalletBalance = "wallet_balance"
)

// Service exposes profile reads and writes to the collaborators outside the
// verification core (wallet, referrals, display name). The verified flag and
// phone are owned by the verification orchestrator and are not writable here.
type Service interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	AppendReferral(ctx context.Context, userID, referredID string) error
	Scan(ctx context.Context) ([]domain.User, error)
}

type service struct {
	repo userStore
}

func NewService(repo userStore) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.Get(ctx, userID)
}

func (s *service) Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error) {
	updates := map[string]interface{}{}
	if req.DisplayName != nil {
		updates[fieldDisplayName] = *req.DisplayName
	}
	if req.WalletBalance != nil {
		updates[fieldWalletBalance] = *req.WalletBalance
	}
	if len(updates) > 0 {
		if err := s.repo.Update(ctx, userID, updates); err != nil {
			return nil, err
		}
	}
	if req.Referral != nil {
		if err := s.repo.AppendReferral(ctx, userID, *req.Referral); err != nil {
			return nil, err
		}
	}
	return s.repo.Get(ctx, userID)
}

func (s *service) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.Scan(ctx)
}
