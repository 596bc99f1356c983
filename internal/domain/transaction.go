// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// TransactionType defines the type of a financial transaction.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeTransfer   TransactionType = "transfer"
)

// Transaction represents an immutable, append-only record of a balance change.
// The amount is always strictly positive; direction is encoded by Type and by
// which account the record is attached to, never by sign.
type Transaction struct {
	ID              int64           `db:"id" json:"id"`                             // Primary key, BIGSERIAL in DB
	AccountID       int64           `db:"account_id" json:"-"`                      // Owning account
	Type            TransactionType `db:"transaction_type" json:"transaction_type"` // deposit, withdrawal or transfer
	Amount          decimal.Decimal `db:"amount" json:"amount"`                     // Transaction amount, NUMERIC(15, 2) in DB
	TransactionDate time.Time       `db:"transaction_date" json:"transaction_date"` // Time of the transaction
	Description     string          `db:"description" json:"description"`           // Free-text description
}

// NewTransaction creates a new Transaction instance stamped at the given time.
// A transfer produces two of these sharing the same amount and timestamp.
func NewTransaction(accountID int64, txType TransactionType, amount decimal.Decimal, description string, at time.Time) *Transaction {
	return &Transaction{
		AccountID:       accountID,
		Type:            txType,
		Amount:          amount,
		TransactionDate: at,
		Description:     description,
	}
}
