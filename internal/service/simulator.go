// internal/service/simulator.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"minibank/internal/domain"

	"github.com/shopspring/decimal"
)

// TransactionSimulator performs the post-login random transaction as a
// background job. Jobs run on their own unit of work, decoupled from the
// request that submitted them: a failed simulation is logged and dropped,
// never surfaced to the caller.
type TransactionSimulator struct {
	bank   BankService
	logger *slog.Logger
	jobs   chan int64
	wg     sync.WaitGroup
	once   sync.Once
}

// NewTransactionSimulator creates a simulator with a bounded job queue.
func NewTransactionSimulator(bank BankService, logger *slog.Logger, queueSize int) *TransactionSimulator {
	return &TransactionSimulator{
		bank:   bank,
		logger: logger,
		jobs:   make(chan int64, queueSize),
	}
}

// Start launches the worker goroutine draining the job queue.
func (ts *TransactionSimulator) Start() {
	ts.wg.Add(1)
	go func() {
		defer ts.wg.Done()
		for userID := range ts.jobs {
			ts.run(userID)
		}
	}()
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (ts *TransactionSimulator) Stop() {
	ts.once.Do(func() { close(ts.jobs) })
	ts.wg.Wait()
}

// Submit enqueues a simulation job for the given user. When the queue is full
// the job is dropped; the triggering request must never block on it.
func (ts *TransactionSimulator) Submit(userID int64) {
	select {
	case ts.jobs <- userID:
	default:
		ts.logger.Warn("Simulation queue full, dropping job", "user_id", userID)
	}
}

// run executes a single simulation: a random deposit or withdrawal between
// 10.00 and 100.00. A withdrawal that would overdraw the account is flipped to
// a deposit instead.
func (ts *TransactionSimulator) run(userID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	amount := decimal.NewFromInt(rand.Int63n(9001) + 1000).Div(decimal.NewFromInt(100))

	txType := domain.TransactionTypeDeposit
	if rand.Intn(2) == 1 {
		txType = domain.TransactionTypeWithdrawal
	}

	if txType == domain.TransactionTypeWithdrawal {
		balance, err := ts.bank.GetBalance(ctx, userID)
		if err != nil {
			ts.logger.Error("Simulation failed reading balance", "user_id", userID, "error", err)
			return
		}
		if balance.LessThan(amount) {
			txType = domain.TransactionTypeDeposit
		}
	}

	description := fmt.Sprintf("Random %s on login", txType)

	var err error
	if txType == domain.TransactionTypeDeposit {
		_, err = ts.bank.Deposit(ctx, userID, amount, description)
	} else {
		_, err = ts.bank.Withdraw(ctx, userID, amount, description)
	}
	if err != nil {
		ts.logger.Error("Simulation failed", "user_id", userID, "type", txType, "amount", amount, "error", err)
		return
	}

	ts.logger.Info("Simulated transaction", "user_id", userID, "type", txType, "amount", amount)
}
