package recent

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStorage persists recent lists in a single SQLite table.
type SQLiteStorage struct {
	db *sql.DB
}

// OpenSQLite opens or creates the SQLite database at path.
func OpenSQLite(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS recent_selections (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at DATETIME NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return &SQLiteStorage{db: db}, nil
}

// Get returns the value under key or ErrNotFound.
func (s *SQLiteStorage) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow("SELECT value FROM recent_selections WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set upserts value under key.
func (s *SQLiteStorage) Set(key string, value []byte) error {
	now := time.Now()
	_, err := s.db.Exec(`INSERT INTO recent_selections (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = ?`,
		key, value, now, value, now)
	return err
}

// Remove deletes key.
func (s *SQLiteStorage) Remove(key string) error {
	_, err := s.db.Exec("DELETE FROM recent_selections WHERE key = ?", key)
	return err
}

// Close closes the database handle.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
