package pg

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samratjha96/bakbak-sub001/internal/app/model"
	"github.com/samratjha96/bakbak-sub001/internal/app/repository"
)

func newMockDB(t *testing.T) (*PostgresDB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPostgresDBFromConn(db), mock
}

func jobRows(jobs ...*model.TranscriptionJob) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "recording_id", "status", "language_code", "error_message",
		"metadata", "created_at", "updated_at", "completed_at",
	})
	for _, j := range jobs {
		var completedAt interface{}
		if j.CompletedAt != nil {
			completedAt = *j.CompletedAt
		}
		rows.AddRow(j.ID, j.RecordingID, string(j.Status), j.LanguageCode,
			j.ErrorMessage, "", j.CreatedAt, j.UpdatedAt, completedAt)
	}
	return rows
}

func TestGetJobByID_Unit(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name        string
		jobID       string
		mockSetup   func(mock sqlmock.Sqlmock)
		expectJob   bool
		expectError bool
	}{
		{
			name:  "existing_job",
			jobID: "job-1",
			mockSetup: func(mock sqlmock.Sqlmock) {
				job := &model.TranscriptionJob{
					ID:          "job-1",
					RecordingID: "rec-1",
					Status:      model.JobStatusPending,
					CreatedAt:   now,
					UpdatedAt:   now,
				}
				mock.ExpectQuery(regexp.QuoteMeta("FROM transcription_jobs WHERE id = $1")).
					WithArgs("job-1").
					WillReturnRows(jobRows(job))
			},
			expectJob: true,
		},
		{
			name:  "missing_job_returns_nil",
			jobID: "absent",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("FROM transcription_jobs WHERE id = $1")).
					WithArgs("absent").
					WillReturnError(sql.ErrNoRows)
			},
			expectJob: false,
		},
		{
			name:  "query_error",
			jobID: "job-1",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("FROM transcription_jobs WHERE id = $1")).
					WithArgs("job-1").
					WillReturnError(errors.New("connection reset"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pdb, mock := newMockDB(t)
			tt.mockSetup(mock)

			job, err := pdb.GetJobByID(context.Background(), tt.jobID)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.expectJob {
					require.NotNil(t, job)
					assert.Equal(t, tt.jobID, job.ID)
				} else {
					assert.Nil(t, job)
				}
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestInsertJob_Unit(t *testing.T) {
	pdb, mock := newMockDB(t)
	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transcription_jobs")).
		WithArgs("job-1", "rec-1", string(model.JobStatusPending), "ja",
			sql.NullString{}, nil, now, now, sql.NullTime{}).
		WillReturnResult(sqlmock.NewResult(0, 1))

	job := &model.TranscriptionJob{
		ID:           "job-1",
		RecordingID:  "rec-1",
		Status:       model.JobStatusPending,
		LanguageCode: "ja",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := pdb.InsertJob(context.Background(), job)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateJobStatusFrom_Unit(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name         string
		mockSetup    func(mock sqlmock.Sqlmock)
		wantUpdated  bool
		expectError  bool
	}{
		{
			name: "row_updated",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE transcription_jobs")).
					WithArgs(string(model.JobStatusInProgress), sql.NullString{}, now,
						sql.NullTime{}, "job-1", string(model.JobStatusPending)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantUpdated: true,
		},
		{
			name: "status_changed_underneath",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE transcription_jobs")).
					WithArgs(string(model.JobStatusInProgress), sql.NullString{}, now,
						sql.NullTime{}, "job-1", string(model.JobStatusPending)).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantUpdated: false,
		},
		{
			name: "exec_error",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE transcription_jobs")).
					WillReturnError(errors.New("deadlock detected"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pdb, mock := newMockDB(t)
			tt.mockSetup(mock)

			updated, err := pdb.UpdateJobStatusFrom(context.Background(), "job-1",
				model.JobStatusPending, repository.JobUpdate{
					Status:    model.JobStatusInProgress,
					UpdatedAt: now,
				})

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantUpdated, updated)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestListJobsByStatus_Unit(t *testing.T) {
	pdb, mock := newMockDB(t)
	now := time.Now().UTC()

	first := &model.TranscriptionJob{
		ID: "job-1", RecordingID: "rec-1",
		Status: model.JobStatusPending, CreatedAt: now, UpdatedAt: now,
	}
	second := &model.TranscriptionJob{
		ID: "job-2", RecordingID: "rec-2",
		Status: model.JobStatusPending, CreatedAt: now.Add(time.Second), UpdatedAt: now.Add(time.Second),
	}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = $1")).
		WithArgs(string(model.JobStatusPending)).
		WillReturnRows(jobRows(first, second))

	jobs, err := pdb.ListJobsByStatus(context.Background(), model.JobStatusPending)

	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "job-1", jobs[0].ID)
	assert.Equal(t, "job-2", jobs[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordingSetTranscript_Unit(t *testing.T) {
	pdb, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE recordings SET transcript = $1")).
		WithArgs("hello world", sqlmock.AnyArg(), "rec-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := pdb.SetTranscript(context.Background(), "rec-1", "hello world")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClose_Unit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	pdb := NewPostgresDBFromConn(db)
	mock.ExpectClose()

	assert.NoError(t, pdb.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
