// Package storage persists owner preferences across restarts.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// PrefStore is a SQLite-backed preference store.
type PrefStore struct {
	db     *sql.DB
	dbPath string
}

// OpenPrefStore opens (and if needed creates) the preference database.
func OpenPrefStore(dbPath string) (*PrefStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath cannot be empty")
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PrefStore{db: db, dbPath: dbPath}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PrefStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS preferences (
			owner_id     TEXT PRIMARY KEY,
			auto_cleanup INTEGER NOT NULL DEFAULT 1
		)`)
	if err != nil {
		return fmt.Errorf("failed to create preferences table: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *PrefStore) Close() error {
	return s.db.Close()
}

// AutoCleanup reports whether automatic message cleanup is enabled for the
// owner. Owners without a stored preference default to enabled.
func (s *PrefStore) AutoCleanup(ctx context.Context, ownerID string) (bool, error) {
	var enabled bool
	err := s.db.QueryRowContext(ctx,
		`SELECT auto_cleanup FROM preferences WHERE owner_id = ?`, ownerID).Scan(&enabled)
	if err == sql.ErrNoRows {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read preference: %w", err)
	}
	return enabled, nil
}

// SetAutoCleanup stores the owner's cleanup preference.
func (s *PrefStore) SetAutoCleanup(ctx context.Context, ownerID string, enabled bool) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (owner_id, auto_cleanup) VALUES (?, ?)
		ON CONFLICT(owner_id) DO UPDATE SET auto_cleanup = excluded.auto_cleanup`,
		ownerID, enabled)
	if err != nil {
		return fmt.Errorf("failed to store preference: %w", err)
	}
	return nil
}

// ToggleAutoCleanup flips the owner's cleanup preference and returns the new
// value.
func (s *PrefStore) ToggleAutoCleanup(ctx context.Context, ownerID string) (bool, error) {
	current, err := s.AutoCleanup(ctx, ownerID)
	if err != nil {
		return false, err
	}
	next := !current
	if err := s.SetAutoCleanup(ctx, ownerID, next); err != nil {
		return false, err
	}
	return next, nil
}
