package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const createHandsTableSQL = `
CREATE TABLE IF NOT EXISTS hands (
	id TEXT PRIMARY KEY,
	played_at TIMESTAMP NOT NULL,
	table_name TEXT NOT NULL,
	board TEXT NOT NULL,
	pot INTEGER NOT NULL,
	reason TEXT NOT NULL,
	winners TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_hands_table ON hands(table_name, played_at DESC)`

// SQLiteStore implements Store backed by SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the hand history database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	if _, err := db.Exec(createHandsTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// SaveHand persists the record. Winners are stored as JSON since they are
// only ever read back whole.
func (s *SQLiteStore) SaveHand(ctx context.Context, record *HandRecord) error {
	winners, err := json.Marshal(record.Winners)
	if err != nil {
		return fmt.Errorf("encoding winners: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO hands (id, played_at, table_name, board, pot, reason, winners)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.PlayedAt.UTC().Format(time.RFC3339Nano),
		record.Table,
		record.Board,
		record.Pot,
		record.Reason,
		string(winners),
	)
	if err != nil {
		return fmt.Errorf("inserting hand: %w", err)
	}
	return nil
}

// RecentHands returns up to limit records for the table, newest first.
func (s *SQLiteStore) RecentHands(ctx context.Context, table string, limit int) ([]*HandRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, played_at, table_name, board, pot, reason, winners
		FROM hands
		WHERE table_name = ? OR ? = ''
		ORDER BY played_at DESC
		LIMIT ?`,
		table, table, limit)
	if err != nil {
		return nil, fmt.Errorf("querying hands: %w", err)
	}
	defer rows.Close()

	var records []*HandRecord
	for rows.Next() {
		var (
			record   HandRecord
			playedAt string
			winners  string
		)
		if err := rows.Scan(&record.ID, &playedAt, &record.Table, &record.Board,
			&record.Pot, &record.Reason, &winners); err != nil {
			return nil, fmt.Errorf("scanning hand row: %w", err)
		}
		record.PlayedAt, err = time.Parse(time.RFC3339Nano, playedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing played_at %q: %w", playedAt, err)
		}
		if err := json.Unmarshal([]byte(winners), &record.Winners); err != nil {
			return nil, fmt.Errorf("decoding winners: %w", err)
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating hand rows: %w", err)
	}
	return records, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
