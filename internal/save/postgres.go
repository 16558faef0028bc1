package save

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"conquest-server/internal/shared/database"
)

// PostgresStore keeps saves in the shared Postgres database. The saves table
// is created by the database migrations.
type PostgresStore struct {
	db *database.DB
}

func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, slot string, blob []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO saves (slot, blob, size_bytes, updated_at) VALUES ($1, $2, $3, NOW())
		ON CONFLICT (slot) DO UPDATE SET
			blob = EXCLUDED.blob,
			size_bytes = EXCLUDED.size_bytes,
			updated_at = NOW()`,
		slot, blob, len(blob))
	if err != nil {
		return fmt.Errorf("failed to write save %q: %w", slot, err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, slot string) ([]byte, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx, `SELECT blob FROM saves WHERE slot = $1`, slot).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read save %q: %w", slot, err)
	}
	return blob, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
