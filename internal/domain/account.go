// internal/domain/account.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// Account represents a user's bank account.
type Account struct {
	ID        int64           `db:"id" json:"id"`                 // Primary key, BIGSERIAL in DB
	UserID    int64           `db:"user_id" json:"user_id"`       // Foreign key to User
	Balance   decimal.Decimal `db:"balance" json:"balance"`       // Current balance, NUMERIC(15, 2) in DB
	CreatedAt time.Time       `db:"created_at" json:"created_at"` // Timestamp of creation
}

// NewAccount creates a new Account instance with the given opening balance.
func NewAccount(userID int64, openingBalance decimal.Decimal) *Account {
	return &Account{
		UserID:    userID,
		Balance:   openingBalance,
		CreatedAt: time.Now().UTC(),
	}
}
