package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/samratjha96/bakbak-sub001/internal/app/model"
	"github.com/samratjha96/bakbak-sub001/internal/app/repository"
)

// Ensure SQLiteDB implements RecordingRepository
var _ repository.RecordingRepository = (*SQLiteDB)(nil)

const recordingColumns = `
	id, title,
	COALESCE(language_code, '') as language_code,
	COALESCE(audio_path, '') as audio_path,
	COALESCE(duration_sec, 0) as duration_sec,
	COALESCE(file_hash, '') as file_hash,
	COALESCE(file_size, 0) as file_size,
	COALESCE(transcript, '') as transcript,
	COALESCE(translation, '') as translation,
	created_at, updated_at`

func scanRecording(row rowScanner) (*model.Recording, error) {
	var r model.Recording
	err := row.Scan(
		&r.ID, &r.Title, &r.LanguageCode, &r.AudioPath,
		&r.DurationSec, &r.FileHash, &r.FileSize,
		&r.Transcript, &r.Translation,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// InsertRecording stores a new recording row.
func (sdb *SQLiteDB) InsertRecording(ctx context.Context, rec *model.Recording) error {
	insertSQL := `
		INSERT INTO recordings (
			id, title, language_code, audio_path, duration_sec,
			file_hash, file_size, transcript, translation,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := sdb.db.ExecContext(ctx, insertSQL,
		rec.ID, rec.Title, rec.LanguageCode, rec.AudioPath, rec.DurationSec,
		rec.FileHash, rec.FileSize,
		nullableString(rec.Transcript), nullableString(rec.Translation),
		rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert recording: %w", err)
	}
	return nil
}

// GetRecordingByID returns the recording or (nil, nil) when absent.
func (sdb *SQLiteDB) GetRecordingByID(ctx context.Context, id string) (*model.Recording, error) {
	query := `SELECT ` + recordingColumns + ` FROM recordings WHERE id = ?`

	rec, err := scanRecording(sdb.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return rec, nil
}

// ListRecordings returns a page of recordings, newest first.
func (sdb *SQLiteDB) ListRecordings(ctx context.Context, limit, offset int) ([]*model.Recording, error) {
	query := `SELECT ` + recordingColumns + `
		FROM recordings
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`

	rows, err := sdb.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var recordings []*model.Recording
	for rows.Next() {
		rec, err := scanRecording(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		recordings = append(recordings, rec)
	}
	return recordings, rows.Err()
}

// CountRecordings returns the total number of recordings.
func (sdb *SQLiteDB) CountRecordings(ctx context.Context) (int, error) {
	var count int
	err := sdb.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recordings`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("query failed: %w", err)
	}
	return count, nil
}

// FindRecordingByHash returns the recording with the given file hash or
// (nil, nil) when none matches.
func (sdb *SQLiteDB) FindRecordingByHash(ctx context.Context, hash string) (*model.Recording, error) {
	query := `SELECT ` + recordingColumns + ` FROM recordings WHERE file_hash = ? LIMIT 1`

	rec, err := scanRecording(sdb.db.QueryRowContext(ctx, query, hash))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return rec, nil
}

// SetTranscript stores the transcript text for a recording.
func (sdb *SQLiteDB) SetTranscript(ctx context.Context, id string, transcript string) error {
	_, err := sdb.db.ExecContext(ctx,
		`UPDATE recordings SET transcript = ?, updated_at = ? WHERE id = ?`,
		transcript, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to set transcript: %w", err)
	}
	return nil
}

// SetTranslation stores the translation text for a recording.
func (sdb *SQLiteDB) SetTranslation(ctx context.Context, id string, translation string) error {
	_, err := sdb.db.ExecContext(ctx,
		`UPDATE recordings SET translation = ?, updated_at = ? WHERE id = ?`,
		translation, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to set translation: %w", err)
	}
	return nil
}

// DeleteRecording removes a recording and its annotations.
func (sdb *SQLiteDB) DeleteRecording(ctx context.Context, id string) error {
	if _, err := sdb.db.ExecContext(ctx, `DELETE FROM notes WHERE recording_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete notes: %w", err)
	}
	if _, err := sdb.db.ExecContext(ctx, `DELETE FROM vocabulary_entries WHERE recording_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete vocabulary: %w", err)
	}
	if _, err := sdb.db.ExecContext(ctx, `DELETE FROM recordings WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete recording: %w", err)
	}
	return nil
}
