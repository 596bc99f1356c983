// internal/repository/account_repo.go
package repository

import (
	"context"

	"minibank/internal/domain"

	"github.com/shopspring/decimal"
)

// AccountRepository defines the interface for account data operations.
type AccountRepository interface {
	// CreateAccount adds a new account to the database using the provided DBExecutor.
	CreateAccount(ctx context.Context, q DBExecutor, account *domain.Account) error
	// GetAccountByUserID retrieves the account owned by the given user.
	GetAccountByUserID(ctx context.Context, q DBExecutor, userID int64) (*domain.Account, error)
	// GetAccountByUserIDForUpdate retrieves the account owned by the given user
	// and locks its row for the remainder of the caller's transaction, so the
	// balance check and the balance mutation are atomic with respect to
	// concurrent transfers touching the same account. Must be called with a
	// transactional DBExecutor.
	GetAccountByUserIDForUpdate(ctx context.Context, q DBExecutor, userID int64) (*domain.Account, error)
	// UpdateAccountBalance adjusts the balance of a specific account by amount
	// (negative to debit) as part of the caller's active unit of work. It never
	// commits independently.
	UpdateAccountBalance(ctx context.Context, q DBExecutor, accountID int64, amount decimal.Decimal) error
}
