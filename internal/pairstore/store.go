package pairstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Record is a persisted pairing row.
type Record struct {
	ID        int64
	TrackID   int64
	VideoID   int64
	Title     string
	Artist    string
	CreatedAt time.Time
}

// Store persists resolved pairings in SQLite so they survive restarts.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the pairing database and applies migrations.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("pair store path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create pair store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Save upserts a pairing. Rows containing either member id are replaced so
// each media id belongs to at most one pairing.
func (s *Store) Save(ctx context.Context, trackID, videoID int64, title, artist string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pairings WHERE track_id = ? OR video_id = ?`, trackID, videoID); err != nil {
		return fmt.Errorf("delete stale pairings: %w", err)
	}
	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO pairings (track_id, video_id, title, artist, created_at) VALUES (?, ?, ?, ?, ?)`,
		trackID,
		videoID,
		title,
		artist,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert pairing: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit pairing: %w", err)
	}
	return nil
}

// FindByMediaID returns the pairing containing the given id on either side.
func (s *Store) FindByMediaID(ctx context.Context, id int64) (int64, int64, bool, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT track_id, video_id FROM pairings WHERE track_id = ? OR video_id = ? LIMIT 1`,
		id,
		id,
	)
	var trackID, videoID int64
	if err := row.Scan(&trackID, &videoID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, false, nil
		}
		return 0, 0, false, fmt.Errorf("find pairing: %w", err)
	}
	return trackID, videoID, true, nil
}

// List returns the newest pairings first, capped at limit (or all rows when
// limit is zero or negative).
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	query := `SELECT id, track_id, video_id, title, artist, created_at FROM pairings ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pairings: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			record     Record
			createdRaw string
		)
		if err := rows.Scan(&record.ID, &record.TrackID, &record.VideoID, &record.Title, &record.Artist, &createdRaw); err != nil {
			return nil, fmt.Errorf("scan pairing: %w", err)
		}
		if created, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
			record.CreatedAt = created
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Count returns the number of persisted pairings.
func (s *Store) Count(ctx context.Context) (int, error) {
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM pairings`)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count pairings: %w", err)
	}
	return count, nil
}

// Clear removes all persisted pairings.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM pairings`)
	if err != nil {
		return 0, fmt.Errorf("clear pairings: %w", err)
	}
	return res.RowsAffected()
}
