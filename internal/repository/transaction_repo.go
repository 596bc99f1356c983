// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"minibank/internal/domain"
)

// TransactionRepository defines the interface for transaction data operations.
// Transaction rows are append-only; there is no update or delete.
type TransactionRepository interface {
	// CreateTransaction appends a new transaction record within the caller's
	// active unit of work. Amounts must be strictly positive; a non-positive
	// amount is a caller programming error, not user input to validate.
	CreateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// GetTransactionsByAccountID retrieves transaction history for a specific
	// account, most recent first, using the provided DBExecutor.
	GetTransactionsByAccountID(ctx context.Context, q DBExecutor, accountID int64, limit, offset int) ([]domain.Transaction, error)
}
