// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"fmt"

	"minibank/internal/domain"
	"minibank/internal/repository"
)

// TransactionRepository implements repository.TransactionRepository for PostgreSQL.
type TransactionRepository struct{}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository() repository.TransactionRepository {
	return &TransactionRepository{}
}

// CreateTransaction inserts a new transaction record into the database using
// the provided DBExecutor. Non-positive amounts are rejected as a programming
// error; callers are expected to have validated the amount already.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	if !transaction.Amount.IsPositive() {
		return fmt.Errorf("transaction amount must be positive, got %s", transaction.Amount)
	}

	query := `INSERT INTO transactions (account_id, transaction_type, amount, transaction_date, description)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		transaction.AccountID,
		transaction.Type,
		transaction.Amount,
		transaction.TransactionDate,
		transaction.Description,
	).Scan(&transaction.ID)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetTransactionsByAccountID retrieves a paginated list of transactions for a
// specific account, most recent first.
func (r *TransactionRepository) GetTransactionsByAccountID(ctx context.Context, q repository.DBExecutor, accountID int64, limit, offset int) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	query := `
		SELECT id, account_id, transaction_type, amount, transaction_date, description
		FROM transactions
		WHERE account_id = $1
		ORDER BY transaction_date DESC
		LIMIT $2 OFFSET $3`
	err := q.SelectContext(ctx, &transactions, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions for account %d: %w", accountID, err)
	}
	return transactions, nil
}
