package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/samratjha96/bakbak-sub001/internal/app/model"
	"github.com/samratjha96/bakbak-sub001/internal/app/repository"
)

// Ensure PostgresDB implements JobRepository
var _ repository.JobRepository = (*PostgresDB)(nil)

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
func (pdb *PostgresDB) InsertJob(ctx context.Context, job *model.TranscriptionJob) error {
	metadata, err := encodeMetadata(job.Metadata)
	if err != nil {
		return err
	}

	insertSQL := `
		INSERT INTO transcription_jobs (
			id, recording_id, status, language_code, error_message,
			metadata, created_at, updated_at, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = pdb.db.ExecContext(ctx, insertSQL,
		job.ID, job.RecordingID, job.Status, job.LanguageCode,
		nullableString(job.ErrorMessage), metadata,
		job.CreatedAt, job.UpdatedAt, nullableTime(job.CompletedAt))
	if err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}
	return nil
}

// GetJobByID returns the job or (nil, nil) when absent.
func (pdb *PostgresDB) GetJobByID(ctx context.Context, id string) (*model.TranscriptionJob, error) {
	query := `SELECT ` + jobColumns + ` FROM transcription_jobs WHERE id = $1`

	job, err := scanJob(pdb.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return job, nil
}

// ListJobsByStatus returns all jobs in the given status, oldest first.
func (pdb *PostgresDB) ListJobsByStatus(ctx context.Context, status model.JobStatus) ([]*model.TranscriptionJob, error) {
	query := `SELECT ` + jobColumns + `
		FROM transcription_jobs
		WHERE status = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := pdb.db.QueryContext(ctx, query, status)
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
func (pdb *PostgresDB) ListJobs(ctx context.Context, status model.JobStatus, limit, offset int) ([]*model.TranscriptionJob, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if status != "" {
		query := `SELECT ` + jobColumns + `
			FROM transcription_jobs
			WHERE status = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2 OFFSET $3`
		rows, err = pdb.db.QueryContext(ctx, query, status, limit, offset)
	} else {
		query := `SELECT ` + jobColumns + `
			FROM transcription_jobs
			ORDER BY created_at DESC, id DESC
			LIMIT $1 OFFSET $2`
		rows, err = pdb.db.QueryContext(ctx, query, limit, offset)
	}
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
func (pdb *PostgresDB) UpdateJobStatusFrom(ctx context.Context, id string, from model.JobStatus, upd repository.JobUpdate) (bool, error) {
	updateSQL := `
		UPDATE transcription_jobs
		SET status = $1, error_message = $2, updated_at = $3, completed_at = $4
		WHERE id = $5 AND status = $6`

	result, err := pdb.db.ExecContext(ctx, updateSQL,
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
func (pdb *PostgresDB) UpdateJobMetadata(ctx context.Context, id string, metadata map[string]interface{}) error {
	encoded, err := encodeMetadata(metadata)
	if err != nil {
		return err
	}

	_, err = pdb.db.ExecContext(ctx,
		`UPDATE transcription_jobs SET metadata = $1 WHERE id = $2`, encoded, id)
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
