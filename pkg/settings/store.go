package settings

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// KeyWorkspaceDir holds the absolute path of the active workspace root.
const KeyWorkspaceDir = "workspace_dir"

// DBFile is the name of the settings database inside the data directory.
const DBFile = "settings.db"

// Store is a durable key to string value map
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// SQLiteStore keeps settings in a single SQLite table
type SQLiteStore struct {
	db      *sql.DB
	dataDir string
}

// NewSQLiteStore opens (creating if needed) the settings database in dataDir
func NewSQLiteStore(dataDir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFile)
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		dataDir: dataDir,
	}

	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize settings: %w", err)
	}

	return s, nil
}

// init creates the database schema
func (s *SQLiteStore) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS global_settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Get retrieves a setting by key
func (s *SQLiteStore) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM global_settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores a setting, replacing any previous value
func (s *SQLiteStore) Set(key, value string) error {
	query := `
	INSERT OR REPLACE INTO global_settings (key, value, updated_at)
	VALUES (?, ?, ?)
	`

	if _, err := s.db.Exec(query, key, value, time.Now()); err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

// Delete removes a setting. Deleting a missing key is not an error.
func (s *SQLiteStore) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM global_settings WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete setting %s: %w", key, err)
	}
	return nil
}

// All returns every stored setting
func (s *SQLiteStore) All() (map[string]string, error) {
	rows, err := s.db.Query("SELECT key, value FROM global_settings ORDER BY key")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	all := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		all[key] = value
	}
	return all, rows.Err()
}

// DataDir returns the directory holding the database
func (s *SQLiteStore) DataDir() string {
	return s.dataDir
}

// Close closes the settings database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
