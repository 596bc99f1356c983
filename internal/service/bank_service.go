// internal/service/bank_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"minibank/internal/domain"
	"minibank/internal/metrics"
	"minibank/internal/repository"
	"minibank/internal/util"
	"minibank/pkg/db"

	"github.com/shopspring/decimal"
)

// TransferReceipt is the success result of a Transfer operation.
type TransferReceipt struct {
	Amount          decimal.Decimal
	SenderBalance   decimal.Decimal
	TransactionTime time.Time
}

// BankService defines the business logic around account balances: the transfer
// engine, the deposit/withdrawal paths and the read-only queries.
type BankService interface {
	// Transfer moves amount from the caller's account to the account owned by
	// the user with the given username. It is not idempotent: calling it twice
	// with identical arguments performs two distinct transfers.
	Transfer(ctx context.Context, callerID int64, recipientUsername string, amount decimal.Decimal) (*TransferReceipt, error)
	Deposit(ctx context.Context, userID int64, amount decimal.Decimal, description string) (*domain.Transaction, error)
	Withdraw(ctx context.Context, userID int64, amount decimal.Decimal, description string) (*domain.Transaction, error)
	GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error)
	GetTransactionHistory(ctx context.Context, userID int64, page, pageSize int) ([]domain.Transaction, error)
}

// bankService implements the BankService interface.
type bankService struct {
	dbBeginner      db.DBTxBeginner       // For starting units of work (e.g. *sqlx.DB)
	dbExecutor      repository.DBExecutor // For non-transactional reads (e.g. *sqlx.DB)
	userRepo        repository.UserRepository
	accountRepo     repository.AccountRepository
	transactionRepo repository.TransactionRepository
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
	metrics         metrics.Recorder
	logger          *slog.Logger
}

// NewBankService creates a new instance of BankService.
func NewBankService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	accountRepo repository.AccountRepository,
	transactionRepo repository.TransactionRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	recorder metrics.Recorder,
	logger *slog.Logger,
) BankService {
	return &bankService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		userRepo:        userRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
		metrics:         recorder,
		logger:          logger,
	}
}

// validateAmount checks a caller-supplied amount: it must be strictly positive
// with at most 2 fractional digits. Extra precision is rejected, never rounded.
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return util.ErrInvalidAmount
	}
	if !amount.Equal(amount.Truncate(2)) {
		return util.ErrInvalidAmount
	}
	return nil
}

// Transfer debits the caller's account and credits the recipient's inside one
// unit of work, recording a linked pair of transfer transactions.
//
// The validation checks run in a fixed order and the first failure wins: the
// recipient lookups deliberately precede the self-transfer check, so a caller
// naming themselves sees ErrRecipientAccountNotFound when their own account is
// missing, not ErrSelfTransfer. Both account rows are locked for the duration
// of the unit of work, so concurrent transfers touching either account
// serialize around the read-check-write of its balance.
func (s *bankService) Transfer(ctx context.Context, callerID int64, recipientUsername string, amount decimal.Decimal) (*TransferReceipt, error) {
	start := time.Now()
	s.metrics.TransferAttempted()

	s.logger.Info("Transfer initiated", "sender_id", callerID, "recipient", recipientUsername, "amount", amount)

	if err := validateAmount(amount); err != nil {
		s.metrics.TransferFailed()
		s.logger.Warn("Transfer failed (invalid amount)", "sender_id", callerID, "amount", amount)
		return nil, err
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		s.metrics.TransferFailed()
		s.logger.Error("Transfer failed to begin unit of work", "sender_id", callerID, "error", err)
		return nil, util.ErrTransferFailed
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		s.metrics.TransferFailed()
		return nil, fmt.Errorf("transfer: transaction controller does not implement DBExecutor")
	}

	senderAccount, err := s.accountRepo.GetAccountByUserIDForUpdate(ctx, txExecutor, callerID)
	if err != nil {
		s.metrics.TransferFailed()
		if util.IsError(err, util.ErrNotFound) {
			s.logger.Error("Transfer failed (sender account not found)", "sender_id", callerID)
			return nil, util.ErrSenderAccountNotFound
		}
		s.logger.Error("Transfer failed reading sender account", "sender_id", callerID, "error", err)
		return nil, util.ErrTransferFailed
	}

	if senderAccount.Balance.LessThan(amount) {
		s.metrics.TransferFailed()
		s.logger.Warn("Transfer failed (insufficient funds)", "sender_id", callerID, "balance", senderAccount.Balance, "amount", amount)
		return nil, util.ErrInsufficientFunds
	}

	recipientUser, err := s.userRepo.GetUserByUsername(ctx, txExecutor, recipientUsername)
	if err != nil {
		s.metrics.TransferFailed()
		if util.IsError(err, util.ErrNotFound) {
			s.logger.Error("Transfer failed (recipient not found)", "sender_id", callerID, "recipient", recipientUsername)
			return nil, util.ErrRecipientNotFound
		}
		s.logger.Error("Transfer failed reading recipient user", "sender_id", callerID, "error", err)
		return nil, util.ErrTransferFailed
	}

	recipientAccount, err := s.accountRepo.GetAccountByUserIDForUpdate(ctx, txExecutor, recipientUser.ID)
	if err != nil {
		s.metrics.TransferFailed()
		if util.IsError(err, util.ErrNotFound) {
			s.logger.Error("Transfer failed (recipient account not found)", "sender_id", callerID, "recipient", recipientUsername)
			return nil, util.ErrRecipientAccountNotFound
		}
		s.logger.Error("Transfer failed reading recipient account", "sender_id", callerID, "error", err)
		return nil, util.ErrTransferFailed
	}

	if recipientUser.ID == callerID {
		s.metrics.TransferFailed()
		s.logger.Warn("Transfer failed (self-transfer)", "sender_id", callerID)
		return nil, util.ErrSelfTransfer
	}

	// Validation passed; everything below is the atomic mutation and any
	// failure rolls back the whole unit of work.
	senderUser, err := s.userRepo.GetUserByID(ctx, txExecutor, callerID)
	if err != nil {
		s.metrics.TransferFailed()
		s.logger.Error("Transfer failed reading sender user", "sender_id", callerID, "error", err)
		return nil, util.ErrTransferFailed
	}

	if err := s.accountRepo.UpdateAccountBalance(ctx, txExecutor, senderAccount.ID, amount.Neg()); err != nil {
		s.metrics.TransferFailed()
		s.logger.Error("Transfer failed debiting sender", "sender_id", callerID, "error", err)
		return nil, util.ErrTransferFailed
	}
	if err := s.accountRepo.UpdateAccountBalance(ctx, txExecutor, recipientAccount.ID, amount); err != nil {
		s.metrics.TransferFailed()
		s.logger.Error("Transfer failed crediting recipient", "sender_id", callerID, "error", err)
		return nil, util.ErrTransferFailed
	}

	// The pair shares one timestamp and cross-references through descriptions.
	now := time.Now().UTC()
	txnOut := domain.NewTransaction(senderAccount.ID, domain.TransactionTypeTransfer, amount,
		fmt.Sprintf("Transfer to %s", recipientUser.Username), now)
	txnIn := domain.NewTransaction(recipientAccount.ID, domain.TransactionTypeTransfer, amount,
		fmt.Sprintf("Transfer from %s", senderUser.Username), now)

	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, txnOut); err != nil {
		s.metrics.TransferFailed()
		s.logger.Error("Transfer failed recording sender transaction", "sender_id", callerID, "error", err)
		return nil, util.ErrTransferFailed
	}
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, txnIn); err != nil {
		s.metrics.TransferFailed()
		s.logger.Error("Transfer failed recording recipient transaction", "sender_id", callerID, "error", err)
		return nil, util.ErrTransferFailed
	}

	if err := s.commitTx(txController); err != nil {
		s.metrics.TransferFailed()
		s.logger.Error("Transfer failed to commit", "sender_id", callerID, "error", err)
		return nil, util.ErrTransferFailed
	}

	s.metrics.TransferSucceeded(amount, time.Since(start))
	s.logger.Info("Transfer successful", "sender_id", callerID, "recipient", recipientUser.Username, "amount", amount)

	return &TransferReceipt{
		Amount:          amount,
		SenderBalance:   senderAccount.Balance.Sub(amount),
		TransactionTime: now,
	}, nil
}

// Deposit adds money to a user's account within its own unit of work.
func (s *bankService) Deposit(ctx context.Context, userID int64, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("deposit: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("deposit: transaction controller does not implement DBExecutor")
	}

	account, err := s.accountRepo.GetAccountByUserIDForUpdate(ctx, txExecutor, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrAccountNotFound
		}
		return nil, fmt.Errorf("deposit: failed to get account for user %d: %w", userID, err)
	}

	if err := s.accountRepo.UpdateAccountBalance(ctx, txExecutor, account.ID, amount); err != nil {
		return nil, fmt.Errorf("deposit: failed to update account balance: %w", err)
	}

	transaction := domain.NewTransaction(account.ID, domain.TransactionTypeDeposit, amount, description, time.Now().UTC())
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, transaction); err != nil {
		return nil, fmt.Errorf("deposit: failed to create transaction: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("deposit: failed to commit transaction: %w", err)
	}

	return transaction, nil
}

// Withdraw removes money from a user's account within its own unit of work.
func (s *bankService) Withdraw(ctx context.Context, userID int64, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("withdraw: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("withdraw: transaction controller does not implement DBExecutor")
	}

	account, err := s.accountRepo.GetAccountByUserIDForUpdate(ctx, txExecutor, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrAccountNotFound
		}
		return nil, fmt.Errorf("withdraw: failed to get account for user %d: %w", userID, err)
	}

	if account.Balance.LessThan(amount) {
		return nil, util.ErrInsufficientFunds
	}

	if err := s.accountRepo.UpdateAccountBalance(ctx, txExecutor, account.ID, amount.Neg()); err != nil {
		return nil, fmt.Errorf("withdraw: failed to update account balance: %w", err)
	}

	transaction := domain.NewTransaction(account.ID, domain.TransactionTypeWithdrawal, amount, description, time.Now().UTC())
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, transaction); err != nil {
		return nil, fmt.Errorf("withdraw: failed to create transaction: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("withdraw: failed to commit transaction: %w", err)
	}

	return transaction, nil
}

// GetBalance returns the current balance of the caller's account.
func (s *bankService) GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	account, err := s.accountRepo.GetAccountByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return decimal.Zero, util.ErrAccountNotFound
		}
		return decimal.Zero, fmt.Errorf("get balance: failed to get account for user %d: %w", userID, err)
	}
	return account.Balance, nil
}

// GetTransactionHistory returns a page of the caller's transactions, most
// recent first. Page numbering starts at 1; no upper bound is enforced on
// pageSize.
func (s *bankService) GetTransactionHistory(ctx context.Context, userID int64, page, pageSize int) ([]domain.Transaction, error) {
	if page < 1 || pageSize < 1 {
		return nil, util.ErrInvalidInput
	}

	account, err := s.accountRepo.GetAccountByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrAccountNotFound
		}
		return nil, fmt.Errorf("get history: failed to get account for user %d: %w", userID, err)
	}

	offset := (page - 1) * pageSize
	transactions, err := s.transactionRepo.GetTransactionsByAccountID(ctx, s.dbExecutor, account.ID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("get history: failed to retrieve transactions: %w", err)
	}
	return transactions, nil
}
