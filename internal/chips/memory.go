package chips

import (
	"context"
	"sync"
)

// MemoryLedger is an in-memory Ledger, used by simulations and tests.
type MemoryLedger struct {
	mu       sync.Mutex
	balances map[string]int
}

// NewMemoryLedger creates an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{balances: make(map[string]int)}
}

// Balance returns the player's balance.
func (l *MemoryLedger) Balance(_ context.Context, name string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	balance, ok := l.balances[name]
	if !ok {
		return 0, ErrUnknownPlayer
	}
	return balance, nil
}

// Credit adds chips to the player's balance, creating the wallet if needed.
func (l *MemoryLedger) Credit(_ context.Context, name string, amount int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[name] += amount
	return nil
}

// Debit removes chips from the player's balance.
func (l *MemoryLedger) Debit(_ context.Context, name string, amount int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	balance, ok := l.balances[name]
	if !ok {
		return ErrUnknownPlayer
	}
	if balance < amount {
		return ErrInsufficientFunds
	}
	l.balances[name] = balance - amount
	return nil
}
