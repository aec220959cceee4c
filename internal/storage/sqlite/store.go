// Package sqlite provides a SQLite-backed telemetry store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"substeval/internal/platform/storage/sqlitemigrate"
	"substeval/internal/storage"
	"substeval/internal/storage/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Store persists evaluation telemetry in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite telemetry store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// AppendTelemetryEvent inserts one evaluation event.
func (s *Store) AppendTelemetryEvent(ctx context.Context, evt storage.TelemetryEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	substitution := strings.TrimSpace(evt.Substitution)
	outcome := strings.TrimSpace(evt.Outcome)
	if outcome == "" {
		return fmt.Errorf("outcome is required")
	}
	timestamp := evt.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO evaluation_events (
		   substitution,
		   outcome,
		   duration_ms,
		   created_at
		 ) VALUES (?, ?, ?, ?)`,
		substitution,
		outcome,
		evt.DurationMs,
		timestamp.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert evaluation event: %w", err)
	}
	return nil
}

// RecentTelemetryEvents returns up to limit events, newest first.
func (s *Store) RecentTelemetryEvents(ctx context.Context, limit int) ([]storage.TelemetryEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT substitution, outcome, duration_ms, created_at
		   FROM evaluation_events
		  ORDER BY created_at DESC, id DESC
		  LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query evaluation events: %w", err)
	}
	defer rows.Close()

	var events []storage.TelemetryEvent
	for rows.Next() {
		var evt storage.TelemetryEvent
		var createdAt int64
		if err := rows.Scan(&evt.Substitution, &evt.Outcome, &evt.DurationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("scan evaluation event: %w", err)
		}
		evt.Timestamp = time.UnixMilli(createdAt).UTC()
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evaluation events: %w", err)
	}
	return events, nil
}
