package chips

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const (
	createWalletsTableSQL = `
	CREATE TABLE IF NOT EXISTS wallets (
		player TEXT PRIMARY KEY,
		balance INTEGER NOT NULL DEFAULT 0,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

	createMovementsTableSQL = `
	CREATE TABLE IF NOT EXISTS movements (
		id TEXT PRIMARY KEY,
		player TEXT NOT NULL,
		amount INTEGER NOT NULL,
		balance_after INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (player) REFERENCES wallets(player)
	)`
)

// SQLiteLedger implements Ledger backed by SQLite, recording every balance
// movement alongside the wallet row.
type SQLiteLedger struct {
	db *sql.DB
}

// NewSQLiteLedger opens (or creates) the ledger database at path.
func NewSQLiteLedger(path string) (*SQLiteLedger, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}
	for _, stmt := range []string{createWalletsTableSQL, createMovementsTableSQL} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating ledger schema: %w", err)
		}
	}
	return &SQLiteLedger{db: db}, nil
}

// Balance returns the player's balance.
func (l *SQLiteLedger) Balance(ctx context.Context, name string) (int, error) {
	var balance int
	err := l.db.QueryRowContext(ctx,
		`SELECT balance FROM wallets WHERE player = ?`, name).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrUnknownPlayer
	}
	if err != nil {
		return 0, fmt.Errorf("querying balance: %w", err)
	}
	return balance, nil
}

// Credit adds chips to the player's balance, creating the wallet if needed.
func (l *SQLiteLedger) Credit(ctx context.Context, name string, amount int) error {
	return l.move(ctx, name, amount, true)
}

// Debit removes chips from the player's balance.
func (l *SQLiteLedger) Debit(ctx context.Context, name string, amount int) error {
	return l.move(ctx, name, -amount, false)
}

func (l *SQLiteLedger) move(ctx context.Context, name string, delta int, create bool) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning ledger transaction: %w", err)
	}
	defer tx.Rollback()

	var balance int
	err = tx.QueryRowContext(ctx,
		`SELECT balance FROM wallets WHERE player = ?`, name).Scan(&balance)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if !create {
			return ErrUnknownPlayer
		}
	case err != nil:
		return fmt.Errorf("querying balance: %w", err)
	}

	balance += delta
	if balance < 0 {
		return ErrInsufficientFunds
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO wallets (player, balance, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(player) DO UPDATE SET
			balance = excluded.balance,
			updated_at = CURRENT_TIMESTAMP`,
		name, balance); err != nil {
		return fmt.Errorf("updating wallet: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO movements (id, player, amount, balance_after)
		VALUES (?, ?, ?, ?)`,
		uuid.NewString(), name, delta, balance); err != nil {
		return fmt.Errorf("recording movement: %w", err)
	}

	return tx.Commit()
}

// Close closes the database connection.
func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}
