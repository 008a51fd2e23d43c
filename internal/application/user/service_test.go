package user

import (
	"context"
	"errors"
	"testing"

	"github.com/ecobot-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return m.Called(ctx, userID, updates).Error(0)
}
func (m *mockUserStore) AppendReferral(ctx context.Context, userID, referredID string) error {
	return m.Called(ctx, userID, referredID).Error(0)
}
func (m *mockUserStore) Scan(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

// --- tests ---

func TestUpdate_ProfileFields(t *testing.T) {
	repo := &mockUserStore{}
	name := "Ada"
	balance := int64(1500)
	repo.On("Update", mock.Anything, "42", map[string]interface{}{
		fieldDisplayName:   "Ada",
		fieldWalletBalance: int64(1500),
	}).Return(nil)
	repo.On("Get", mock.Anything, "42").Return(&domain.User{UserID: "42", DisplayName: "Ada", WalletBalance: 1500}, nil)

	svc := NewService(repo)
	u, err := svc.Update(context.Background(), "42", domain.UpdateUserRequest{
		DisplayName:   &name,
		WalletBalance: &balance,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.DisplayName)
	assert.Equal(t, int64(1500), u.WalletBalance)
	repo.AssertExpectations(t)
}

func TestUpdate_ReferralAppended(t *testing.T) {
	repo := &mockUserStore{}
	ref := "77"
	repo.On("AppendReferral", mock.Anything, "42", "77").Return(nil)
	repo.On("Get", mock.Anything, "42").Return(&domain.User{UserID: "42", Referrals: []string{"77"}}, nil)

	svc := NewService(repo)
	u, err := svc.Update(context.Background(), "42", domain.UpdateUserRequest{Referral: &ref})
	require.NoError(t, err)
	assert.Equal(t, []string{"77"}, u.Referrals)
	repo.AssertExpectations(t)
}

func TestUpdate_NoFieldsIsReadOnly(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "42").Return(&domain.User{UserID: "42"}, nil)

	svc := NewService(repo)
	_, err := svc.Update(context.Background(), "42", domain.UpdateUserRequest{})
	require.NoError(t, err)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_StoreFailurePropagates(t *testing.T) {
	repo := &mockUserStore{}
	name := "Ada"
	repo.On("Update", mock.Anything, "42", mock.Anything).Return(domain.ErrStorage)

	svc := NewService(repo)
	_, err := svc.Update(context.Background(), "42", domain.UpdateUserRequest{DisplayName: &name})
	assert.True(t, errors.Is(err, domain.ErrStorage))
}

func TestGet_NotFound(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	svc := NewService(repo)
	_, err := svc.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestList(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Scan", mock.Anything).Return([]domain.User{{UserID: "1"}, {UserID: "2"}}, nil)

	svc := NewService(repo)
	users, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
