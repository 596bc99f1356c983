// internal/service/mocks_test.go
package service

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"time"

	"minibank/internal/domain"
	"minibank/internal/metrics"
	"minibank/internal/repository"
	"minibank/pkg/db"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	args := m.Called(ctx, q, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.User, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, q repository.DBExecutor, username string) (*domain.User, error) {
	args := m.Called(ctx, q, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UsernameOrEmailExists(ctx context.Context, q repository.DBExecutor, username, email string) (bool, error) {
	args := m.Called(ctx, q, username, email)
	return args.Bool(0), args.Error(1)
}

// MockAccountRepository is a mock implementation of repository.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) CreateAccount(ctx context.Context, q repository.DBExecutor, account *domain.Account) error {
	args := m.Called(ctx, q, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetAccountByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Account, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) GetAccountByUserIDForUpdate(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Account, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalance(ctx context.Context, q repository.DBExecutor, accountID int64, amount decimal.Decimal) error {
	args := m.Called(ctx, q, accountID, amount)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of repository.TransactionRepository.
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	args := m.Called(ctx, q, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetTransactionsByAccountID(ctx context.Context, q repository.DBExecutor, accountID int64, limit, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, q, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// MockDBBeginner is a mock implementation of db.DBTxBeginner.
type MockDBBeginner struct {
	mock.Mock
}

func (m *MockDBBeginner) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	args := m.Called(ctx, opts)
	return &sqlx.Tx{}, args.Error(1)
}

// MockTxController is a mock implementation of db.TxController. Embedding
// MockDBExecutor lets it stand in for a transactional executor too.
type MockTxController struct {
	mock.Mock
	MockDBExecutor
}

func (m *MockTxController) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTxController) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// serviceMocks bundles the collaborators a service under test needs.
type serviceMocks struct {
	userRepo     *MockUserRepository
	accountRepo  *MockAccountRepository
	txRepo       *MockTransactionRepository
	dbBeginner   *MockDBBeginner
	dbExecutor   *MockDBExecutor
	txController *MockTxController
	beginCalls   int
}

func newServiceMocks() *serviceMocks {
	return &serviceMocks{
		userRepo:     new(MockUserRepository),
		accountRepo:  new(MockAccountRepository),
		txRepo:       new(MockTransactionRepository),
		dbBeginner:   new(MockDBBeginner),
		dbExecutor:   new(MockDBExecutor),
		txController: new(MockTxController),
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (sm *serviceMocks) bankService(recorder metrics.Recorder) BankService {
	return NewBankService(
		sm.dbBeginner,
		sm.dbExecutor,
		sm.userRepo,
		sm.accountRepo,
		sm.txRepo,
		func(ctx context.Context, dbConn db.DBTxBeginner) (db.TxController, error) {
			sm.beginCalls++
			return sm.txController, nil
		},
		func(tx db.TxController) error {
			return sm.txController.Commit()
		},
		func(tx db.TxController) {
			_ = sm.txController.Rollback()
		},
		recorder,
		testLogger(),
	)
}

func (sm *serviceMocks) authService(simulator JobSubmitter, recorder metrics.Recorder) AuthService {
	return NewAuthService(
		sm.dbBeginner,
		sm.dbExecutor,
		sm.userRepo,
		sm.accountRepo,
		func(ctx context.Context, dbConn db.DBTxBeginner) (db.TxController, error) {
			sm.beginCalls++
			return sm.txController, nil
		},
		func(tx db.TxController) error {
			return sm.txController.Commit()
		},
		func(tx db.TxController) {
			_ = sm.txController.Rollback()
		},
		[]byte("test-secret"),
		time.Hour,
		simulator,
		recorder,
		testLogger(),
	)
}
