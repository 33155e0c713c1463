package db

import (
	"database/sql"
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// SettingPrefix namespaces UI settings inside the key/value table
const SettingPrefix = "ui."

// DB wraps the database connection. It stores string values by key and
// satisfies store.Storage.
type DB struct {
	*sql.DB
	path string
}

// New opens (creating if needed) the database at path and initializes the schema
func New(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	// Initialize schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{DB: db, path: path}, nil
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}

// Read returns the value stored under key; ok is false if the key is unset
func (db *DB) Read(key string) (string, bool, error) {
	var value string
	err := db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Write stores value under key, replacing any previous value
func (db *DB) Write(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}

// GetSetting retrieves a UI setting, "" if unset
func (db *DB) GetSetting(name string) (string, error) {
	value, _, err := db.Read(SettingPrefix + name)
	return value, err
}

// SetSetting stores a UI setting
func (db *DB) SetSetting(name, value string) error {
	return db.Write(SettingPrefix+name, value)
}

// IsDBFile reports whether name is the database file or one of its
// journal/WAL companions
func (db *DB) IsDBFile(name string) bool {
	return name == db.path || strings.HasPrefix(name, db.path+"-")
}
