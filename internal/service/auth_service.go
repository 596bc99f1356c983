// internal/service/auth_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"minibank/internal/auth"
	"minibank/internal/domain"
	"minibank/internal/metrics"
	"minibank/internal/repository"
	"minibank/internal/util"
	"minibank/pkg/db"

	"github.com/shopspring/decimal"
)

// startingBalanceStr is the opening balance credited to every new account.
const startingBalanceStr = "1000.00"

// AuthService defines registration and authentication business logic.
type AuthService interface {
	// Register creates a user and their account with the starting balance in
	// one unit of work. Username/email collisions yield ErrDuplicateEntry.
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	// Login verifies credentials and issues an access token. On success a
	// random-transaction simulation job is submitted for the user; its outcome
	// never affects the login result.
	Login(ctx context.Context, username, password string) (string, error)
}

// JobSubmitter accepts background work triggered after a primary response.
type JobSubmitter interface {
	Submit(userID int64)
}

// authService implements the AuthService interface.
type authService struct {
	dbBeginner  db.DBTxBeginner
	dbExecutor  repository.DBExecutor
	userRepo    repository.UserRepository
	accountRepo repository.AccountRepository
	beginTx     db.BeginTxFunc
	commitTx    db.CommitTxFunc
	rollbackTx  db.RollbackTxFunc
	jwtSecret   []byte
	jwtValidity time.Duration
	simulator   JobSubmitter
	metrics     metrics.Recorder
	logger      *slog.Logger
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	accountRepo repository.AccountRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	jwtSecret []byte,
	jwtValidity time.Duration,
	simulator JobSubmitter,
	recorder metrics.Recorder,
	logger *slog.Logger,
) AuthService {
	return &authService{
		dbBeginner:  dbBeginner,
		dbExecutor:  dbExecutor,
		userRepo:    userRepo,
		accountRepo: accountRepo,
		beginTx:     beginTx,
		commitTx:    commitTx,
		rollbackTx:  rollbackTx,
		jwtSecret:   jwtSecret,
		jwtValidity: jwtValidity,
		simulator:   simulator,
		metrics:     recorder,
		logger:      logger,
	}
}

// Register creates the user and the owning account atomically.
func (s *authService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, util.ErrInvalidInput
	}

	s.logger.Info("User registration request", "username", username, "email", email)

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("register: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("register: transaction controller does not implement DBExecutor")
	}

	exists, err := s.userRepo.UsernameOrEmailExists(ctx, txExecutor, username, email)
	if err != nil {
		return nil, fmt.Errorf("register: failed to check existing user: %w", err)
	}
	if exists {
		s.logger.Warn("Registration failed (username or email already exists)", "username", username, "email", email)
		return nil, util.ErrDuplicateEntry
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("register: failed to hash password: %w", err)
	}

	user := domain.NewUser(username, email, passwordHash)
	if err := s.userRepo.CreateUser(ctx, txExecutor, user); err != nil {
		// A concurrent registration can still hit the unique constraint.
		if util.IsError(err, util.ErrDuplicateEntry) {
			return nil, util.ErrDuplicateEntry
		}
		return nil, fmt.Errorf("register: failed to create user: %w", err)
	}

	account := domain.NewAccount(user.ID, decimal.RequireFromString(startingBalanceStr))
	if err := s.accountRepo.CreateAccount(ctx, txExecutor, account); err != nil {
		return nil, fmt.Errorf("register: failed to create account: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("register: failed to commit transaction: %w", err)
	}

	s.metrics.UserRegistered()
	s.logger.Info("User registered successfully", "user_id", user.ID, "username", username)
	return user, nil
}

// Login authenticates the user and returns a signed access token.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	start := time.Now()
	s.metrics.LoginAttempted()
	s.logger.Info("Login attempt", "username", username)

	user, err := s.userRepo.GetUserByUsername(ctx, s.dbExecutor, username)
	if err != nil {
		// Only a genuinely unknown user is a failed login; a storage error is
		// an infrastructure problem and must not inflate the counter.
		if util.IsError(err, util.ErrNotFound) {
			s.metrics.LoginFailed()
			s.logger.Warn("Failed login attempt", "username", username, "reason", "unknown user")
			return "", util.ErrInvalidCredentials
		}
		return "", fmt.Errorf("login: failed to look up user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		s.metrics.LoginFailed()
		s.logger.Warn("Failed login attempt", "username", username, "reason", "invalid credentials")
		return "", util.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Username, s.jwtSecret, s.jwtValidity)
	if err != nil {
		s.metrics.LoginFailed()
		return "", fmt.Errorf("login: failed to generate token: %w", err)
	}

	s.metrics.LoginSucceeded(time.Since(start))
	s.logger.Info("Successful login", "username", username)

	if s.simulator != nil {
		s.simulator.Submit(user.ID)
	}

	return token, nil
}
