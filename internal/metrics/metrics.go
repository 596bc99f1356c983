// internal/metrics/metrics.go
package metrics

import (
	"expvar"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
)

// Recorder receives operational counters from the services. Implementations
// must be safe for concurrent use. Callers never depend on return values, so
// a no-op recorder is always substitutable.
type Recorder interface {
	TransferAttempted()
	TransferSucceeded(amount decimal.Decimal, latency time.Duration)
	TransferFailed()

	LoginAttempted()
	LoginSucceeded(latency time.Duration)
	LoginFailed()

	UserRegistered()
}

// Noop discards every observation. Used in tests and wherever metrics are not
// wanted.
type Noop struct{}

func (Noop) TransferAttempted()                               {}
func (Noop) TransferSucceeded(decimal.Decimal, time.Duration) {}
func (Noop) TransferFailed()                                  {}
func (Noop) LoginAttempted()                                  {}
func (Noop) LoginSucceeded(time.Duration)                     {}
func (Noop) LoginFailed()                                     {}
func (Noop) UserRegistered()                                  {}

// InMemory keeps counters in process memory. When a name prefix is given the
// counters are additionally published through expvar under that prefix.
type InMemory struct {
	TransfersAttempted atomic.Int64
	TransfersSucceeded atomic.Int64
	TransfersFailed    atomic.Int64
	LoginsAttempted    atomic.Int64
	LoginsSucceeded    atomic.Int64
	LoginsFailed       atomic.Int64
	UsersRegistered    atomic.Int64

	// moneyTransferredCents accumulates the total transferred amount in cents,
	// so it stays an integer and atomic.
	moneyTransferredCents atomic.Int64
}

// NewInMemory creates an InMemory recorder. If prefix is non-empty the
// counters are published via expvar; publishing the same prefix twice panics
// (expvar semantics), so use distinct prefixes in tests.
func NewInMemory(prefix string) *InMemory {
	m := &InMemory{}
	if prefix != "" {
		expvar.Publish(prefix+".transfers_attempted", expvar.Func(func() any { return m.TransfersAttempted.Load() }))
		expvar.Publish(prefix+".transfers_succeeded", expvar.Func(func() any { return m.TransfersSucceeded.Load() }))
		expvar.Publish(prefix+".transfers_failed", expvar.Func(func() any { return m.TransfersFailed.Load() }))
		expvar.Publish(prefix+".logins_attempted", expvar.Func(func() any { return m.LoginsAttempted.Load() }))
		expvar.Publish(prefix+".logins_succeeded", expvar.Func(func() any { return m.LoginsSucceeded.Load() }))
		expvar.Publish(prefix+".logins_failed", expvar.Func(func() any { return m.LoginsFailed.Load() }))
		expvar.Publish(prefix+".users_registered", expvar.Func(func() any { return m.UsersRegistered.Load() }))
		expvar.Publish(prefix+".money_transferred_cents", expvar.Func(func() any { return m.moneyTransferredCents.Load() }))
	}
	return m
}

func (m *InMemory) TransferAttempted() { m.TransfersAttempted.Add(1) }

func (m *InMemory) TransferSucceeded(amount decimal.Decimal, _ time.Duration) {
	m.TransfersSucceeded.Add(1)
	m.moneyTransferredCents.Add(amount.Shift(2).IntPart())
}

func (m *InMemory) TransferFailed() { m.TransfersFailed.Add(1) }

func (m *InMemory) LoginAttempted() { m.LoginsAttempted.Add(1) }

func (m *InMemory) LoginSucceeded(_ time.Duration) { m.LoginsSucceeded.Add(1) }

func (m *InMemory) LoginFailed() { m.LoginsFailed.Add(1) }

func (m *InMemory) UserRegistered() { m.UsersRegistered.Add(1) }

// MoneyTransferredCents returns the accumulated transferred amount in cents.
func (m *InMemory) MoneyTransferredCents() int64 {
	return m.moneyTransferredCents.Load()
}
