package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/a-mhatre/studylog-tui/internal/models"
)

// Snapshot sources. Each fetched tab is cached under its own key so the app
// can render from the last known data before the first fetch completes.
const (
	SourceSessions = "sessions"
	SourceBooks    = "books"
	SourceTests    = "tests"
	SourceSyllabus = "syllabus"
)

// SaveSnapshot stores the latest fetched sheet for a source, replacing any
// previous snapshot.
func (db *DB) SaveSnapshot(source string, sheet *models.Sheet, fetchedAt time.Time) error {
	payload, err := json.Marshal(sheet)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	query := `
		INSERT INTO sheet_snapshots (source, payload, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(source) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = excluded.fetched_at
	`
	if _, err := db.ExecContext(context.Background(), query,
		source, string(payload), fetchedAt.Format("2006-01-02 15:04:05")); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the cached sheet for a source along with its fetch
// time. A missing snapshot is not an error; it returns a nil sheet.
func (db *DB) LoadSnapshot(source string) (*models.Sheet, time.Time, error) {
	query := `SELECT payload, fetched_at FROM sheet_snapshots WHERE source = ?`

	var payload string
	var fetchedAtStr string
	err := db.QueryRowContext(context.Background(), query, source).Scan(&payload, &fetchedAtStr)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var sheet models.Sheet
	if err := json.Unmarshal([]byte(payload), &sheet); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	fetchedAt, err := time.ParseInLocation("2006-01-02 15:04:05", fetchedAtStr, time.Local)
	if err != nil {
		fetchedAt = time.Time{}
	}

	return &sheet, fetchedAt, nil
}
