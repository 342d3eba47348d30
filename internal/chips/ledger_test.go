package chips

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLedgers(t *testing.T) map[string]Ledger {
	t.Helper()
	sqlite, err := NewSQLiteLedger(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Ledger{
		"memory": NewMemoryLedger(),
		"sqlite": sqlite,
	}
}

func TestLedgerCreditAndBalance(t *testing.T) {
	for name, ledger := range testLedgers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, ledger.Credit(ctx, "alice", 500))
			require.NoError(t, ledger.Credit(ctx, "alice", 250))

			balance, err := ledger.Balance(ctx, "alice")
			require.NoError(t, err)
			assert.Equal(t, 750, balance)
		})
	}
}

func TestLedgerDebit(t *testing.T) {
	for name, ledger := range testLedgers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, ledger.Credit(ctx, "bob", 300))
			require.NoError(t, ledger.Debit(ctx, "bob", 100))

			balance, err := ledger.Balance(ctx, "bob")
			require.NoError(t, err)
			assert.Equal(t, 200, balance)
		})
	}
}

func TestLedgerRejectsOverdraft(t *testing.T) {
	for name, ledger := range testLedgers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, ledger.Credit(ctx, "carol", 100))
			err := ledger.Debit(ctx, "carol", 200)
			assert.ErrorIs(t, err, ErrInsufficientFunds)

			// The failed debit must not touch the balance.
			balance, err := ledger.Balance(ctx, "carol")
			require.NoError(t, err)
			assert.Equal(t, 100, balance)
		})
	}
}

func TestLedgerUnknownPlayer(t *testing.T) {
	for name, ledger := range testLedgers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := ledger.Balance(ctx, "nobody")
			assert.ErrorIs(t, err, ErrUnknownPlayer)

			err = ledger.Debit(ctx, "nobody", 50)
			assert.ErrorIs(t, err, ErrUnknownPlayer)
		})
	}
}

func TestSQLiteLedgerRecordsMovements(t *testing.T) {
	ledger, err := NewSQLiteLedger(":memory:")
	require.NoError(t, err)
	defer ledger.Close()

	ctx := context.Background()
	require.NoError(t, ledger.Credit(ctx, "dave", 400))
	require.NoError(t, ledger.Debit(ctx, "dave", 150))

	var count int
	err = ledger.db.QueryRow(`SELECT COUNT(*) FROM movements WHERE player = ?`, "dave").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var balanceAfter int
	err = ledger.db.QueryRow(`
		SELECT balance_after FROM movements
		WHERE player = ? ORDER BY rowid DESC LIMIT 1`, "dave").Scan(&balanceAfter)
	require.NoError(t, err)
	assert.Equal(t, 250, balanceAfter)
}
