// Package storage provides the key-value backends that hold player progress.
// The SQLite store uses the pure-Go modernc.org/sqlite driver to avoid CGO.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/affine-affinity/internal/progress"
)

// Store manages the SQLite database connection for progress persistence.
type Store struct {
	db *sql.DB
}

// ProfileInfo summarizes the stored progress of one player.
type ProfileInfo struct {
	Name      string
	Keys      int
	UpdatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := ExpandHome(dbPath)
	if err != nil {
		return nil, err
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

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS progress (
			profile TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (profile, key)
		);
		CREATE INDEX IF NOT EXISTS idx_progress_updated ON progress(updated_at DESC);
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

// Profile returns a backend scoped to one player.
func (s *Store) Profile(name string) progress.Backend {
	return &sqliteProfile{store: s, name: name}
}

// Get returns the value stored under key for profile.
func (s *Store) Get(ctx context.Context, profile, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM progress WHERE profile = ? AND key = ?",
		profile, key,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key for profile, replacing any previous value.
func (s *Store) Set(ctx context.Context, profile, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO progress (profile, key, value, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(profile, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		profile, key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %s: %w", key, err)
	}
	return nil
}

// Delete removes key for profile. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, profile, key string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM progress WHERE profile = ? AND key = ?",
		profile, key,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot delete %s: %w", key, err)
	}
	return nil
}

// DeleteProfile removes every key of profile.
func (s *Store) DeleteProfile(ctx context.Context, profile string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM progress WHERE profile = ?", profile)
	if err != nil {
		return fmt.Errorf("storage: cannot delete profile %s: %w", profile, err)
	}
	return nil
}

// Profiles lists every player with stored progress, most recent first.
func (s *Store) Profiles(ctx context.Context) ([]ProfileInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT profile, COUNT(*), MAX(updated_at)
		 FROM progress
		 GROUP BY profile
		 ORDER BY MAX(updated_at) DESC, profile`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []ProfileInfo
	for rows.Next() {
		var p ProfileInfo
		var updatedAt any
		if err := rows.Scan(&p.Name, &p.Keys, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.UpdatedAt = parseTimestamp(updatedAt)
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return profiles, nil
}

// parseTimestamp handles both time.Time and string datetimes from SQLite.
func parseTimestamp(v any) time.Time {
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

type sqliteProfile struct {
	store *Store
	name  string
}

func (p *sqliteProfile) Get(ctx context.Context, key string) (string, bool, error) {
	return p.store.Get(ctx, p.name, key)
}

func (p *sqliteProfile) Set(ctx context.Context, key, value string) error {
	return p.store.Set(ctx, p.name, key, value)
}

func (p *sqliteProfile) Delete(ctx context.Context, key string) error {
	return p.store.Delete(ctx, p.name, key)
}
