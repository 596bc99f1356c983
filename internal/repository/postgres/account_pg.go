// internal/repository/postgres/account_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"minibank/internal/domain"
	"minibank/internal/repository"
	"minibank/internal/util"

	"github.com/shopspring/decimal"
)

// AccountRepository implements repository.AccountRepository for PostgreSQL.
type AccountRepository struct{}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository() repository.AccountRepository {
	return &AccountRepository{}
}

// CreateAccount inserts a new account into the database using the provided DBExecutor.
func (r *AccountRepository) CreateAccount(ctx context.Context, q repository.DBExecutor, account *domain.Account) error {
	query := `INSERT INTO accounts (user_id, balance, created_at)
              VALUES ($1, $2, $3) RETURNING id`
	err := q.QueryRowContext(ctx, query, account.UserID, account.Balance, account.CreatedAt).Scan(&account.ID)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetAccountByUserID retrieves the account owned by the given user.
func (r *AccountRepository) GetAccountByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Account, error) {
	var account domain.Account
	query := `SELECT id, user_id, balance, created_at FROM accounts WHERE user_id = $1`
	err := q.GetContext(ctx, &account, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account for user %d: %w", userID, err)
	}
	return &account, nil
}

// GetAccountByUserIDForUpdate retrieves the account owned by the given user and
// takes a row-level lock on it until the surrounding transaction ends.
func (r *AccountRepository) GetAccountByUserIDForUpdate(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Account, error) {
	var account domain.Account
	query := `SELECT id, user_id, balance, created_at FROM accounts WHERE user_id = $1 FOR UPDATE`
	err := q.GetContext(ctx, &account, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock account for user %d: %w", userID, err)
	}
	return &account, nil
}

// UpdateAccountBalance adjusts the balance of a specific account using the
// provided DBExecutor. Pass a negative amount to debit.
func (r *AccountRepository) UpdateAccountBalance(ctx context.Context, q repository.DBExecutor, accountID int64, amount decimal.Decimal) error {
	query := `UPDATE accounts SET balance = balance + $1 WHERE id = $2`
	result, err := q.ExecContext(ctx, query, amount, accountID)
	if err != nil {
		return fmt.Errorf("failed to update balance for account %d: %w", accountID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating account %d: %w", accountID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no rows affected when updating account %d, account might not exist", accountID)
	}
	return nil
}
