package save

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps saves in a local database file.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

func OpenSQLite(ctx context.Context, path string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}

	s := &SQLiteStore{db: db, logger: logger}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate sqlite: %w", err)
	}

	logger.Info("Save database opened", "component", "save_store", "driver", "sqlite", "path", path)
	return s, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS saves (
			slot       TEXT PRIMARY KEY,
			blob       BLOB NOT NULL,
			size_bytes INTEGER NOT NULL,
			updated_at TEXT NOT NULL
		)`)
	return err
}

func (s *SQLiteStore) Save(ctx context.Context, slot string, blob []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO saves (slot, blob, size_bytes, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			blob = excluded.blob,
			size_bytes = excluded.size_bytes,
			updated_at = excluded.updated_at`,
		slot, blob, len(blob), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write save %q: %w", slot, err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, slot string) ([]byte, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx, `SELECT blob FROM saves WHERE slot = ?`, slot).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read save %q: %w", slot, err)
	}
	return blob, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
