package game

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/user/vida-loka-life/internal/types"
)

// SnapshotStore persists one snapshot per player.
type SnapshotStore interface {
	SaveSnapshot(playerID string, snap *types.Snapshot) error
	// LoadSnapshot returns types.ErrSnapshotNotFound when nothing was saved.
	LoadSnapshot(playerID string) (*types.Snapshot, error)
}

const (
	jsonExt = ".json"
	zstdExt = ".json.zst"
)

// GameStateStorage handles persistence of snapshots as files on disk
type GameStateStorage struct {
	dir       string
	compress  bool
	schema    *jsonschema.Schema
	stateLock sync.RWMutex
}

// Ensure GameStateStorage satisfies SnapshotStore
var _ SnapshotStore = (*GameStateStorage)(nil)

// NewGameStateStorage creates a file store rooted at dir. Compressed stores
// write zstd files; both kinds are readable either way.
func NewGameStateStorage(dir string, compress bool) (*GameStateStorage, error) {
	// Create data directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create save directory: %w", err)
	}

	schema, err := SnapshotSchema()
	if err != nil {
		return nil, err
	}

	return &GameStateStorage{
		dir:      dir,
		compress: compress,
		schema:   schema,
	}, nil
}

// SnapshotSchema compiles the embedded snapshot JSON schema.
func SnapshotSchema() (*jsonschema.Schema, error) {
	raw, err := builtin.ReadFile("data/snapshot.schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot schema: %w", err)
	}
	schema, err := jsonschema.CompileString("snapshot.schema.json", string(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to compile snapshot schema: %w", err)
	}
	return schema, nil
}

// SaveSnapshot writes the snapshot for playerID, replacing any earlier one
func (gss *GameStateStorage) SaveSnapshot(playerID string, snap *types.Snapshot) error {
	gss.stateLock.Lock()
	defer gss.stateLock.Unlock()

	// Marshal state to JSON
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	ext, stale := jsonExt, zstdExt
	if gss.compress {
		ext, stale = zstdExt, jsonExt
		if data, err = compress(data); err != nil {
			return fmt.Errorf("failed to compress snapshot: %w", err)
		}
	}

	// Write to a temp file and rename so a crash never leaves half a save
	path := gss.path(playerID, ext)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}

	// Drop the other encoding so loads are unambiguous
	if err := os.Remove(gss.path(playerID, stale)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove stale snapshot: %w", err)
	}

	return nil
}

// LoadSnapshot reads and validates the snapshot for playerID
func (gss *GameStateStorage) LoadSnapshot(playerID string) (*types.Snapshot, error) {
	gss.stateLock.RLock()
	defer gss.stateLock.RUnlock()

	data, err := gss.read(playerID)
	if err != nil {
		return nil, err
	}

	if err := gss.Validate(data); err != nil {
		return nil, err
	}

	// Unmarshal JSON
	var snap types.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if snap.Tracker == nil {
		snap.Tracker = types.NewEventTracker()
	}

	return &snap, nil
}

// Validate checks raw snapshot JSON against the schema
func (gss *GameStateStorage) Validate(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if err := gss.schema.Validate(doc); err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}
	return nil
}

func (gss *GameStateStorage) read(playerID string) ([]byte, error) {
	data, err := os.ReadFile(gss.path(playerID, zstdExt))
	if err == nil {
		out, err := decompress(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress snapshot: %w", err)
		}
		return out, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	data, err = os.ReadFile(gss.path(playerID, jsonExt))
	if errors.Is(err, os.ErrNotExist) {
		return nil, types.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	return data, nil
}

func (gss *GameStateStorage) path(playerID, ext string) string {
	return filepath.Join(gss.dir, fileName(playerID)+ext)
}

// fileName keeps player ids such as WhatsApp JIDs safe to use as file names.
// Bytes outside [A-Za-z0-9@-] become "_xx" hex escapes, '_' included, so two
// distinct ids never share a file.
func fileName(playerID string) string {
	var b strings.Builder
	for i := 0; i < len(playerID); i++ {
		c := playerID[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '@':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "_%02x", c)
		}
	}
	return b.String()
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}
