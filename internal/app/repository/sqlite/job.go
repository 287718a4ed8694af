package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/samratjha96/bakbak-sub001/internal/app/model"
	"github.com/samratjha96/bakbak-sub001/internal/app/repository"
)

// Ensure SQLiteDB implements JobRepository
var _ repository.JobRepository = (*SQLiteDB)(nil)

const jobColumns = `
	id, recording_id, status,
	COALESCE(language_code, '') as language_code,
	COALESCE(error_message, '') as error_message,
	COALESCE(metadata, '') as metadata,
	created_at, updated_at, completed_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row rowScanner) (*model.TranscriptionJob, error) {
	var j model.TranscriptionJob
	var metadata string
	var completedAt sql.NullTime

	err := row.Scan(
		&j.ID, &j.RecordingID, &j.Status,
		&j.LanguageCode, &j.ErrorMessage, &metadata,
		&j.CreatedAt, &j.UpdatedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		j.CompletedAt = &completedAt.Time
	}
	if metadata != "" {
		if err := json.Unmarshal([]byte(metadata), &j.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode job metadata: %w", err)
		}
	}
	return &j, nil
}

func encodeMetadata(metadata map[string]interface{}) (interface{}, error) {
	if len(metadata) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to encode job metadata: %w", err)
	}
	return string(raw), nil
}

// InsertJob stores a new job row.
func (sdb *SQLiteDB) InsertJob(ctx context.Context, job *model.TranscriptionJob) error {
	metadata, err := encodeMetadata(job.Metadata)
	if err != nil {
		return err
	}

	insertSQL := `
		INSERT INTO transcription_jobs (
			id, recording_id, status, language_code, error_message,
			metadata, created_at, updated_at, completed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = sdb.db.ExecContext(ctx, insertSQL,
		job.ID, job.RecordingID, job.Status, job.LanguageCode,
		nullableString(job.ErrorMessage), metadata,
		job.CreatedAt, job.UpdatedAt, nullableTime(job.CompletedAt))
	if err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}
	return nil
}

// GetJobByID returns the job or (nil, nil) when absent.
func (sdb *SQLiteDB) GetJobByID(ctx context.Context, id string) (*model.TranscriptionJob, error) {
	query := `SELECT ` + jobColumns + ` FROM transcription_jobs WHERE id = ?`

	job, err := scanJob(sdb.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return job, nil
}

// ListJobsByStatus returns all jobs in the given status, oldest first.
func (sdb *SQLiteDB) ListJobsByStatus(ctx context.Context, status model.JobStatus) ([]*model.TranscriptionJob, error) {
	query := `SELECT ` + jobColumns + `
		FROM transcription_jobs
		WHERE status = ?
		ORDER BY created_at ASC, id ASC`

	rows, err := sdb.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var jobs []*model.TranscriptionJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// ListJobs returns a page of jobs, newest first. An empty status matches all.
func (sdb *SQLiteDB) ListJobs(ctx context.Context, status model.JobStatus, limit, offset int) ([]*model.TranscriptionJob, error) {
	query := `SELECT ` + jobColumns + ` FROM transcription_jobs`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := sdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var jobs []*model.TranscriptionJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// UpdateJobStatusFrom applies upd only when the row still has status from.
// The condition makes concurrent transitions race-safe: the loser sees zero
// rows updated.
func (sdb *SQLiteDB) UpdateJobStatusFrom(ctx context.Context, id string, from model.JobStatus, upd repository.JobUpdate) (bool, error) {
	updateSQL := `
		UPDATE transcription_jobs
		SET status = ?, error_message = ?, updated_at = ?, completed_at = ?
		WHERE id = ? AND status = ?`

	result, err := sdb.db.ExecContext(ctx, updateSQL,
		upd.Status, nullableString(upd.ErrorMessage), upd.UpdatedAt,
		nullableTime(upd.CompletedAt), id, from)
	if err != nil {
		return false, fmt.Errorf("failed to update job status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected > 0, nil
}

// UpdateJobMetadata replaces the job's metadata bag.
func (sdb *SQLiteDB) UpdateJobMetadata(ctx context.Context, id string, metadata map[string]interface{}) error {
	encoded, err := encodeMetadata(metadata)
	if err != nil {
		return err
	}

	_, err = sdb.db.ExecContext(ctx,
		`UPDATE transcription_jobs SET metadata = ? WHERE id = ?`, encoded, id)
	if err != nil {
		return fmt.Errorf("failed to update job metadata: %w", err)
	}
	return nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
