package dynamo

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/ecobot-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserItemRoundTrip(t *testing.T) {
	phone := "+2348000000000"
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	u := domain.User{
		UserID:        "42",
		Phone:         &phone,
		Verified:      true,
		DisplayName:   "Ada",
		WalletBalance: 2500,
		Referrals:     []string{"77", "91"},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	item, err := attributevalue.MarshalMap(&u)
	require.NoError(t, err)

	var got domain.User
	require.NoError(t, attributevalue.UnmarshalMap(item, &got))

	assert.Equal(t, u.UserID, got.UserID)
	require.NotNil(t, got.Phone)
	assert.Equal(t, phone, *got.Phone)
	assert.True(t, got.Verified)
	assert.Equal(t, u.DisplayName, got.DisplayName)
	assert.Equal(t, u.WalletBalance, got.WalletBalance)
	assert.Equal(t, u.Referrals, got.Referrals)
	assert.True(t, got.CreatedAt.Equal(u.CreatedAt))
	assert.True(t, got.UpdatedAt.Equal(u.UpdatedAt))
	assert.Nil(t, got.DeletedAt)
}
