// Package persistence provides SQLite-backed save slots for lives.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // SQLite3 driver
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/user/vida-loka-life/internal/game"
	"github.com/user/vida-loka-life/internal/types"
)

// DB wraps a SQLite connection holding one snapshot per player.
type DB struct {
	conn   *sqlx.DB
	schema *jsonschema.Schema
}

// LifeSummary is the indexed part of a saved life.
type LifeSummary struct {
	PlayerID    string    `db:"player_id"`
	CharacterID string    `db:"character_id"`
	Name        string    `db:"name"`
	Age         int       `db:"age"`
	Alive       bool      `db:"alive"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	schema, err := game.SnapshotSchema()
	if err != nil {
		return nil, err
	}
	conn, err := sqlx.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn, schema: schema}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS lives (
		player_id TEXT PRIMARY KEY,
		character_id TEXT NOT NULL,
		name TEXT NOT NULL,
		age INTEGER NOT NULL,
		alive INTEGER NOT NULL,
		snapshot_json TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_lives_alive ON lives(alive);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveSnapshot stores the snapshot for playerID, replacing any earlier one.
func (db *DB) SaveSnapshot(playerID string, snap *types.Snapshot) error {
	if snap == nil || snap.Character == nil {
		return errors.New("save snapshot: missing character")
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	c := snap.Character
	_, err = db.conn.Exec(
		`INSERT OR REPLACE INTO lives
			(player_id, character_id, name, age, alive, snapshot_json, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
		playerID, c.ID, c.Name, c.Age, c.Alive, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the snapshot saved for playerID.
func (db *DB) LoadSnapshot(playerID string) (*types.Snapshot, error) {
	var raw string
	err := db.conn.Get(&raw, "SELECT snapshot_json FROM lives WHERE player_id = ?", playerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if err := db.schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid snapshot for %s: %w", playerID, err)
	}

	var snap types.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Tracker == nil {
		snap.Tracker = types.NewEventTracker()
	}
	return &snap, nil
}

// Lives returns the saved lives, most recently updated first.
func (db *DB) Lives(limit int) ([]LifeSummary, error) {
	var lives []LifeSummary
	err := db.conn.Select(&lives,
		`SELECT player_id, character_id, name, age, alive, updated_at
			FROM lives ORDER BY updated_at DESC LIMIT ?`,
		limit,
	)
	return lives, err
}
