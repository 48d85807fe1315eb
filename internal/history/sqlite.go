package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS search_history (
	id         TEXT PRIMARY KEY,
	timestamp  INTEGER NOT NULL,
	query      TEXT NOT NULL,
	vsm_tokens TEXT NOT NULL,
	intent     TEXT NOT NULL DEFAULT '',
	region     TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_history_timestamp ON search_history (timestamp);
`

// SQLiteRecorder stores search entries in a local SQLite database. It
// implements both Recorder and Reader.
type SQLiteRecorder struct {
	db *sql.DB
}

// NewSQLiteRecorder opens (creating if needed) the database at path and
// ensures the schema exists.
func NewSQLiteRecorder(path string) (*SQLiteRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return &SQLiteRecorder{db: db}, nil
}

// Close closes the underlying database.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}

// Record inserts one entry.
func (r *SQLiteRecorder) Record(entry Entry) error {
	id := entry.ID
	if id == "" {
		id = uuid.New().String()
	}
	_, err := r.db.Exec(
		"INSERT INTO search_history (id, timestamp, query, vsm_tokens, intent, region) VALUES (?, ?, ?, ?, ?, ?)",
		id, entry.Timestamp.Unix(), entry.Query, entry.joinedTokens(), entry.Intent, entry.Region,
	)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}
	return nil
}

// Recent returns the newest n entries, newest first.
func (r *SQLiteRecorder) Recent(n int) ([]Entry, error) {
	rows, err := r.db.Query(
		"SELECT id, timestamp, query, vsm_tokens, intent, region FROM search_history ORDER BY timestamp DESC, id LIMIT ?", n,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, n)
	for rows.Next() {
		var entry Entry
		var unix int64
		var tokens string
		if err := rows.Scan(&entry.ID, &unix, &entry.Query, &tokens, &entry.Intent, &entry.Region); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entry.Timestamp = time.Unix(unix, 0)
		if tokens != "" {
			entry.Tokens = strings.Fields(tokens)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
