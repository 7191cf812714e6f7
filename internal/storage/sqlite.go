// Package storage persists recorded replays in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-flappy/internal/replay"
)

// timeLayout is fixed width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store manages the SQLite database connection for replay persistence.
type Store struct {
	db *sql.DB
}

// ReplayEntry is the listing view of a stored replay, without its inputs.
type ReplayEntry struct {
	ID        string
	Player    string
	Seed      int64
	Ticks     int
	Score     int
	Finished  bool
	CreatedAt time.Time
}

// Stats contains aggregated numbers over all stored replays.
type Stats struct {
	Runs       int
	Players    int
	TotalTicks int64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL,
			seed INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			score INTEGER NOT NULL,
			finished INTEGER NOT NULL DEFAULT 0,
			payload BLOB NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_replays_player ON replays(player, created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveReplay stores a replay. The replay must carry an ID.
func (s *Store) SaveReplay(r replay.Replay) error {
	if r.ID == "" {
		return errors.New("storage: replay has no ID")
	}
	payload, err := replay.Encode(r)
	if err != nil {
		return fmt.Errorf("storage: cannot encode replay: %w", err)
	}

	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = s.db.Exec(
		`INSERT INTO replays (id, player, seed, ticks, score, finished, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Player, r.Seed, r.Ticks, r.Score, r.Finished, payload,
		createdAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save replay: %w", err)
	}
	return nil
}

// Replay loads a full replay by ID. Returns nil if it does not exist.
func (s *Store) Replay(id string) (*replay.Replay, error) {
	var payload []byte
	err := s.db.QueryRow("SELECT payload FROM replays WHERE id = ?", id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	r, err := replay.Decode(payload)
	if err != nil {
		return nil, fmt.Errorf("storage: replay %s: %w", id, err)
	}
	return &r, nil
}

// RecentReplays lists the most recent replays, newest first.
func (s *Store) RecentReplays(limit int) ([]ReplayEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, player, seed, ticks, score, finished, created_at
		 FROM replays
		 ORDER BY created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	return scanEntries(rows)
}

// PlayerReplays lists the most recent replays of one player, newest first.
func (s *Store) PlayerReplays(player string, limit int) ([]ReplayEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, player, seed, ticks, score, finished, created_at
		 FROM replays
		 WHERE player = ?
		 ORDER BY created_at DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player replays: %w", err)
	}
	return scanEntries(rows)
}

// DeleteReplay removes a replay. It reports whether a row was deleted.
func (s *Store) DeleteReplay(id string) (bool, error) {
	res, err := s.db.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	return n > 0, nil
}

// Stats returns aggregated numbers over all stored replays.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}
	var lastPlayed sql.NullString

	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT player), COALESCE(SUM(ticks), 0), MAX(created_at)
		 FROM replays`,
	).Scan(&stats.Runs, &stats.Players, &stats.TotalTicks, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	if lastPlayed.Valid {
		stats.LastPlayed = parseTime(lastPlayed.String)
	}
	return stats, nil
}

func scanEntries(rows *sql.Rows) ([]ReplayEntry, error) {
	defer rows.Close()

	var entries []ReplayEntry
	for rows.Next() {
		var e ReplayEntry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Player, &e.Seed, &e.Ticks, &e.Score, &e.Finished, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

func parseTime(v string) time.Time {
	if t, err := time.Parse(timeLayout, v); err == nil {
		return t
	}
	return time.Time{}
}
