package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS recordings (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	language_code TEXT NOT NULL DEFAULT '',
	audio_path TEXT NOT NULL DEFAULT '',
	duration_sec REAL NOT NULL DEFAULT 0,
	file_hash TEXT NOT NULL DEFAULT '',
	file_size INTEGER NOT NULL DEFAULT 0,
	transcript TEXT,
	translation TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_recordings_file_hash ON recordings(file_hash);

CREATE TABLE IF NOT EXISTS transcription_jobs (
	id TEXT PRIMARY KEY,
	recording_id TEXT NOT NULL,
	status TEXT NOT NULL,
	language_code TEXT NOT NULL DEFAULT '',
	error_message TEXT,
	metadata TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	completed_at DATETIME
);
CREATE INDEX IF NOT EXISTS idx_transcription_jobs_status ON transcription_jobs(status);
CREATE INDEX IF NOT EXISTS idx_transcription_jobs_recording ON transcription_jobs(recording_id);

CREATE TABLE IF NOT EXISTS notes (
	id TEXT PRIMARY KEY,
	recording_id TEXT NOT NULL,
	body TEXT NOT NULL,
	position_sec REAL NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notes_recording ON notes(recording_id);

CREATE TABLE IF NOT EXISTS vocabulary_entries (
	id TEXT PRIMARY KEY,
	recording_id TEXT NOT NULL,
	term TEXT NOT NULL,
	reading TEXT NOT NULL DEFAULT '',
	meaning TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_vocabulary_recording ON vocabulary_entries(recording_id);
`

// SQLiteDB implements the repository interfaces on a single SQLite database.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB wraps an existing connection. The schema must already exist.
func NewSQLiteDB(db *sql.DB) *SQLiteDB {
	return &SQLiteDB{db: db}
}

// Open opens (creating if necessary) the database at dbPath and ensures the
// schema exists.
func Open(dbPath string) (*SQLiteDB, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// InitSchema creates all tables on an existing connection. Used by tests and
// by in-memory databases.
func InitSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (sdb *SQLiteDB) Close() error {
	return sdb.db.Close()
}
