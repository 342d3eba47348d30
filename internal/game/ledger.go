package game

import "context"

// Ledger is the external chip-balance collaborator. The engine only ever
// credits it: the winner's balance grows by their share of the pot when a
// hand settles. Debits (buy-ins) are the session layer's concern.
type Ledger interface {
	Credit(ctx context.Context, name string, amount int) error
}

// NopLedger discards settlements. Used by simulations that only care about
// in-hand stacks.
type NopLedger struct{}

func (NopLedger) Credit(context.Context, string, int) error { return nil }
