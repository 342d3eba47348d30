// Package history persists finished hands so sessions can be reviewed
// after the fact.
package history

import (
	"context"
	"time"
)

// WinnerRecord is one winner's share of a finished hand.
type WinnerRecord struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

// HandRecord captures the outcome of one hand.
type HandRecord struct {
	ID       string
	PlayedAt time.Time
	Table    string
	Board    string // concatenated card codes, e.g. "2c7d9sJh4c"
	Pot      int
	Reason   string // "fold" or "showdown"
	Winners  []WinnerRecord
}

// Store persists finished hands.
type Store interface {
	SaveHand(ctx context.Context, record *HandRecord) error
	RecentHands(ctx context.Context, table string, limit int) ([]*HandRecord, error)
}
