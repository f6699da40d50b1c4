// Package storage provides SQLite-based persistence for generated draws.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-ladder/internal/ladder"
)

// ErrNotFound is returned when a draw ID is not in the journal.
var ErrNotFound = errors.New("storage: draw not found")

// Store manages the SQLite database connection for the draw journal.
type Store struct {
	db *sql.DB
}

// DrawSummary is one row of the journal listing.
type DrawSummary struct {
	ID        string
	Lanes     int
	Requested int
	Placed    int
	Seed      int64
	CreatedAt time.Time
}

// DrawRecord is a fully loaded journal entry.
type DrawRecord struct {
	ID           string
	Seed         int64
	Requested    int
	Height       int
	Width        float64
	Geometry     ladder.Geometry
	Participants []string
	Results      []string
	Ends         []int
	Rungs        ladder.RungSet
	CreatedAt    time.Time
}

// Params returns the parameters that regenerate the recorded draw.
func (r *DrawRecord) Params() ladder.DrawParams {
	return ladder.DrawParams{
		Participants: r.Participants,
		Results:      r.Results,
		RungCount:    r.Requested,
		Seed:         r.Seed,
		Width:        r.Width,
		MinHeight:    r.Height,
		Geometry:     r.Geometry,
	}
}

// JournalStats contains aggregated statistics over all saved draws.
type JournalStats struct {
	Draws        int
	AvgLanes     float64
	AvgRungs     float64
	AvgShortfall float64
	LastDraw     time.Time
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

	// Create parent directories
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
		CREATE TABLE IF NOT EXISTS draws (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			lanes INTEGER NOT NULL,
			requested INTEGER NOT NULL,
			placed INTEGER NOT NULL,
			height INTEGER NOT NULL,
			width REAL NOT NULL,
			spacing INTEGER NOT NULL,
			padding INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_draws_created ON draws(created_at DESC);

		CREATE TABLE IF NOT EXISTS draw_lanes (
			draw_id TEXT NOT NULL,
			lane INTEGER NOT NULL,
			participant TEXT NOT NULL,
			result TEXT NOT NULL,
			end_lane INTEGER NOT NULL,
			PRIMARY KEY (draw_id, lane)
		);

		CREATE TABLE IF NOT EXISTS draw_rungs (
			draw_id TEXT NOT NULL,
			level INTEGER NOT NULL,
			left_col INTEGER NOT NULL,
			PRIMARY KEY (draw_id, level, left_col)
		);
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

// SaveDraw records a draw with its labels, rungs and outcomes.
// Returns the generated draw ID.
func (s *Store) SaveDraw(d *ladder.Draw) (string, error) {
	id := uuid.New().String()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	//nolint:errcheck // Rollback after Commit is a no-op
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO draws (id, seed, lanes, requested, placed, height, width, spacing, padding)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, d.Seed, d.Lanes(), d.Requested, len(d.Rungs), d.Height, d.Width,
		d.Geometry.Spacing, d.Geometry.Padding,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save draw: %w", err)
	}

	for lane, path := range d.Paths {
		_, err = tx.Exec(
			`INSERT INTO draw_lanes (draw_id, lane, participant, result, end_lane) VALUES (?, ?, ?, ?, ?)`,
			id, lane, d.Participants[lane], d.Results[lane], path.EndIndex,
		)
		if err != nil {
			return "", fmt.Errorf("storage: cannot save lane %d: %w", lane, err)
		}
	}

	for _, r := range d.Rungs {
		_, err = tx.Exec(
			`INSERT INTO draw_rungs (draw_id, level, left_col) VALUES (?, ?, ?)`,
			id, r.Level, r.LeftCol,
		)
		if err != nil {
			return "", fmt.Errorf("storage: cannot save rung: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit draw: %w", err)
	}
	return id, nil
}

// LoadDraw retrieves a full draw by ID.
// Returns ErrNotFound if the ID is unknown.
func (s *Store) LoadDraw(id string) (*DrawRecord, error) {
	rec := &DrawRecord{ID: id}
	var createdAt any

	err := s.db.QueryRow(
		`SELECT seed, requested, height, width, spacing, padding, created_at
		 FROM draws WHERE id = ?`,
		id,
	).Scan(
		&rec.Seed,
		&rec.Requested,
		&rec.Height,
		&rec.Width,
		&rec.Geometry.Spacing,
		&rec.Geometry.Padding,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query draw: %w", err)
	}
	rec.CreatedAt = parseTime(createdAt)

	if err := s.loadLanes(rec); err != nil {
		return nil, err
	}
	if err := s.loadRungs(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// loadLanes fills participants, results and outcomes in lane order.
func (s *Store) loadLanes(rec *DrawRecord) error {
	rows, err := s.db.Query(
		`SELECT participant, result, end_lane FROM draw_lanes WHERE draw_id = ? ORDER BY lane`,
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot query lanes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var participant, result string
		var end int
		if err := rows.Scan(&participant, &result, &end); err != nil {
			return fmt.Errorf("storage: cannot scan lane: %w", err)
		}
		rec.Participants = append(rec.Participants, participant)
		rec.Results = append(rec.Results, result)
		rec.Ends = append(rec.Ends, end)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("storage: row iteration error: %w", err)
	}
	return nil
}

// loadRungs fills the rung set ordered by level.
func (s *Store) loadRungs(rec *DrawRecord) error {
	rows, err := s.db.Query(
		`SELECT level, left_col FROM draw_rungs WHERE draw_id = ? ORDER BY level, left_col`,
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot query rungs: %w", err)
	}
	defer rows.Close()

	rec.Rungs = ladder.RungSet{}
	for rows.Next() {
		var r ladder.Rung
		if err := rows.Scan(&r.Level, &r.LeftCol); err != nil {
			return fmt.Errorf("storage: cannot scan rung: %w", err)
		}
		rec.Rungs = append(rec.Rungs, r)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("storage: row iteration error: %w", err)
	}
	return nil
}

// RecentDraws lists the most recent draws, newest first.
func (s *Store) RecentDraws(limit int) ([]DrawSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, lanes, requested, placed, seed, created_at
		 FROM draws
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query draws: %w", err)
	}
	defer rows.Close()

	var out []DrawSummary
	for rows.Next() {
		var d DrawSummary
		var createdAt any
		if err := rows.Scan(&d.ID, &d.Lanes, &d.Requested, &d.Placed, &d.Seed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		d.CreatedAt = parseTime(createdAt)
		out = append(out, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// DeleteDraw removes a draw and its lanes and rungs.
// Returns ErrNotFound if the ID is unknown.
func (s *Store) DeleteDraw(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	//nolint:errcheck // Rollback after Commit is a no-op
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM draws WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete draw: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	for _, table := range []string{"draw_lanes", "draw_rungs"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE draw_id = ?", id); err != nil {
			return fmt.Errorf("storage: cannot delete from %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// Stats retrieves aggregated statistics over the whole journal.
func (s *Store) Stats() (*JournalStats, error) {
	stats := &JournalStats{}
	var lastDraw any

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(AVG(lanes), 0), COALESCE(AVG(placed), 0),
		        COALESCE(AVG(requested - placed), 0), MAX(created_at)
		 FROM draws`,
	).Scan(&stats.Draws, &stats.AvgLanes, &stats.AvgRungs, &stats.AvgShortfall, &lastDraw)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get journal stats: %w", err)
	}
	stats.LastDraw = parseTime(lastDraw)

	return stats, nil
}

// parseTime handles sqlite returning datetimes as either time.Time or string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
