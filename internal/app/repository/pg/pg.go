package pg

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS recordings (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	language_code TEXT NOT NULL DEFAULT '',
	audio_path TEXT NOT NULL DEFAULT '',
	duration_sec DOUBLE PRECISION NOT NULL DEFAULT 0,
	file_hash TEXT NOT NULL DEFAULT '',
	file_size BIGINT NOT NULL DEFAULT 0,
	transcript TEXT,
	translation TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_recordings_file_hash ON recordings(file_hash);

CREATE TABLE IF NOT EXISTS transcription_jobs (
	id TEXT PRIMARY KEY,
	recording_id TEXT NOT NULL,
	status TEXT NOT NULL,
	language_code TEXT NOT NULL DEFAULT '',
	error_message TEXT,
	metadata TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	completed_at TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_transcription_jobs_status ON transcription_jobs(status);
CREATE INDEX IF NOT EXISTS idx_transcription_jobs_recording ON transcription_jobs(recording_id);

CREATE TABLE IF NOT EXISTS notes (
	id TEXT PRIMARY KEY,
	recording_id TEXT NOT NULL,
	body TEXT NOT NULL,
	position_sec DOUBLE PRECISION NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notes_recording ON notes(recording_id);

CREATE TABLE IF NOT EXISTS vocabulary_entries (
	id TEXT PRIMARY KEY,
	recording_id TEXT NOT NULL,
	term TEXT NOT NULL,
	reading TEXT NOT NULL DEFAULT '',
	meaning TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_vocabulary_recording ON vocabulary_entries(recording_id);
`

// PostgresDB implements the repository interfaces on PostgreSQL.
type PostgresDB struct {
	db *sql.DB
}

// NewPostgresDB opens a connection with the given lib/pq connection string
// and verifies it with a ping.
func NewPostgresDB(connectionString string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresDB{db: db}, nil
}

// NewPostgresDBFromConn wraps an existing connection. Used by unit tests.
func NewPostgresDBFromConn(db *sql.DB) *PostgresDB {
	return &PostgresDB{db: db}
}

// ConnectionString builds a lib/pq connection string from parts.
func ConnectionString(host string, port int, user, password, dbname, sslmode string) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)
}

// InitSchema creates all tables if they do not exist.
func (pdb *PostgresDB) InitSchema() error {
	if _, err := pdb.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (pdb *PostgresDB) Close() error {
	return pdb.db.Close()
}
