package domain

import "time"

// User is a chat identity and its persisted profile.
// UserID is assigned by the messaging platform; exactly one record per ID.
// Verified=true implies Phone is the number that passed verification.
type User struct {
	UserID        string     `json:"id" dynamodbav:"user_id"`
	Phone         *string    `json:"phone" dynamodbav:"phone"`
	Verified      bool       `json:"verified" dynamodbav:"verified"`
	DisplayName   string     `json:"display_name" dynamodbav:"display_name"`
	WalletBalance int64      `json:"wallet_balance" dynamodbav:"wallet_balance"`
	Referrals     []string   `json:"referrals,omitempty" dynamodbav:"referrals"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty" dynamodbav:"deleted_at"`
	CreatedAt     time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt     time.Time  `json:"updated" dynamodbav:"updated_at"`
}

type UpdateUserRequest struct {
	DisplayName   *string `json:"display_name"`
	WalletBalance *int64  `json:"wallet_balance"`
	Referral      *string `json:"referral"` // appended to the referral list
}
