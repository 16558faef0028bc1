package save

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("save slot not found")

// Store keeps opaque snapshot blobs by slot name.
type Store interface {
	Save(ctx context.Context, slot string, blob []byte) error
	Load(ctx context.Context, slot string) ([]byte, error)
	Close() error
}
