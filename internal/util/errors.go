// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input provided")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSelfTransfer      = errors.New("you cannot transfer money to yourself")
	ErrTransferFailed    = errors.New("transfer failed due to server error")

	ErrAccountNotFound          = errors.New("account not found")
	ErrSenderAccountNotFound    = errors.New("sender account not found")
	ErrRecipientNotFound        = errors.New("recipient not found")
	ErrRecipientAccountNotFound = errors.New("recipient account not found")

	ErrDuplicateEntry     = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// IsError reports whether err matches the given sentinel error.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
