package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/pierrec/lz4/v4"
	"lukechampine.com/blake3"

	"conquest-server/internal/universe"
)

// Blob layout: magic | blake3-256 of the JSON payload | lz4 frame.
var magic = []byte("CQS1")

const checksumSize = 32

// maxPayloadSize caps the decompressed JSON of a snapshot.
var maxPayloadSize int64 = 64 << 20

var (
	ErrCorrupt  = errors.New("snapshot is corrupt")
	ErrChecksum = errors.New("snapshot checksum mismatch")
)

var bufferPool = sync.Pool{New: func() any { return new(bytes.Buffer) }}

func Encode(state *universe.State) ([]byte, error) {
	payload, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state: %w", err)
	}

	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)

	sum := blake3.Sum256(payload)
	buf.Write(magic)
	buf.Write(sum[:])

	zw := lz4.NewWriter(buf)
	if _, err := zw.Write(payload); err != nil {
		return nil, fmt.Errorf("failed to compress state: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress state: %w", err)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// Decode accepts both the compressed format and plain JSON snapshots written
// by older builds. The returned state is not normalized.
func Decode(blob []byte) (*universe.State, error) {
	payload, err := Payload(blob)
	if err != nil {
		return nil, err
	}

	var state universe.State
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &state, nil
}

// Payload returns the raw JSON inside a blob after verifying its checksum.
func Payload(blob []byte) ([]byte, error) {
	if !bytes.HasPrefix(blob, magic) {
		trimmed := bytes.TrimSpace(blob)
		if len(trimmed) > 0 && trimmed[0] == '{' {
			return trimmed, nil
		}
		return nil, fmt.Errorf("%w: unrecognized header", ErrCorrupt)
	}

	rest := blob[len(magic):]
	if len(rest) < checksumSize {
		return nil, fmt.Errorf("%w: truncated header", ErrCorrupt)
	}
	var want [checksumSize]byte
	copy(want[:], rest[:checksumSize])

	var out bytes.Buffer
	zr := io.LimitReader(lz4.NewReader(bytes.NewReader(rest[checksumSize:])), maxPayloadSize+1)
	n, err := io.Copy(&out, zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if n > maxPayloadSize {
		return nil, fmt.Errorf("%w: payload exceeds %d bytes", ErrCorrupt, maxPayloadSize)
	}

	payload := out.Bytes()
	if blake3.Sum256(payload) != want {
		return nil, ErrChecksum
	}
	return payload, nil
}
