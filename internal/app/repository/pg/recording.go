package pg

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/samratjha96/bakbak-sub001/internal/app/model"
	"github.com/samratjha96/bakbak-sub001/internal/app/repository"
)

// Ensure PostgresDB implements RecordingRepository
var _ repository.RecordingRepository = (*PostgresDB)(nil)

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
func (pdb *PostgresDB) InsertRecording(ctx context.Context, rec *model.Recording) error {
	insertSQL := `
		INSERT INTO recordings (
			id, title, language_code, audio_path, duration_sec,
			file_hash, file_size, transcript, translation,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := pdb.db.ExecContext(ctx, insertSQL,
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
func (pdb *PostgresDB) GetRecordingByID(ctx context.Context, id string) (*model.Recording, error) {
	query := `SELECT ` + recordingColumns + ` FROM recordings WHERE id = $1`

	rec, err := scanRecording(pdb.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return rec, nil
}

// ListRecordings returns a page of recordings, newest first.
func (pdb *PostgresDB) ListRecordings(ctx context.Context, limit, offset int) ([]*model.Recording, error) {
	query := `SELECT ` + recordingColumns + `
		FROM recordings
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`

	rows, err := pdb.db.QueryContext(ctx, query, limit, offset)
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
func (pdb *PostgresDB) CountRecordings(ctx context.Context) (int, error) {
	var count int
	err := pdb.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recordings`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("query failed: %w", err)
	}
	return count, nil
}

// FindRecordingByHash returns the recording with the given file hash or
// (nil, nil) when none matches.
func (pdb *PostgresDB) FindRecordingByHash(ctx context.Context, hash string) (*model.Recording, error) {
	query := `SELECT ` + recordingColumns + ` FROM recordings WHERE file_hash = $1 LIMIT 1`

	rec, err := scanRecording(pdb.db.QueryRowContext(ctx, query, hash))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return rec, nil
}

// SetTranscript stores the transcript text for a recording.
func (pdb *PostgresDB) SetTranscript(ctx context.Context, id string, transcript string) error {
	_, err := pdb.db.ExecContext(ctx,
		`UPDATE recordings SET transcript = $1, updated_at = $2 WHERE id = $3`,
		transcript, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to set transcript: %w", err)
	}
	return nil
}

// SetTranslation stores the translation text for a recording.
func (pdb *PostgresDB) SetTranslation(ctx context.Context, id string, translation string) error {
	_, err := pdb.db.ExecContext(ctx,
		`UPDATE recordings SET translation = $1, updated_at = $2 WHERE id = $3`,
		translation, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to set translation: %w", err)
	}
	return nil
}

// DeleteRecording removes a recording and its annotations.
func (pdb *PostgresDB) DeleteRecording(ctx context.Context, id string) error {
	if _, err := pdb.db.ExecContext(ctx, `DELETE FROM notes WHERE recording_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete notes: %w", err)
	}
	if _, err := pdb.db.ExecContext(ctx, `DELETE FROM vocabulary_entries WHERE recording_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete vocabulary: %w", err)
	}
	if _, err := pdb.db.ExecContext(ctx, `DELETE FROM recordings WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete recording: %w", err)
	}
	return nil
}
