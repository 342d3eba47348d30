// Package chips holds the external chip-balance collaborators the engine
// settles into. The engine itself only ever credits a winner; buy-ins and
// balance queries belong to the session and store layers.
package chips

import (
	"context"
	"errors"
)

var (
	// ErrUnknownPlayer is returned when no wallet exists for the player.
	ErrUnknownPlayer = errors.New("chips: unknown player")
	// ErrInsufficientFunds is returned when a debit exceeds the balance.
	ErrInsufficientFunds = errors.New("chips: insufficient funds")
)

// Ledger is a chip balance store keyed by player name.
type Ledger interface {
	Balance(ctx context.Context, name string) (int, error)
	Credit(ctx context.Context, name string, amount int) error
	Debit(ctx context.Context, name string, amount int) error
}
