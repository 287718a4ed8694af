package migrate

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/samratjha96/bakbak-sub001/internal/app/repository"
)

const defaultBatchSize = 500

// Store bundles the repositories of one database side.
type Store struct {
	Recordings repository.RecordingRepository
	Notes      repository.NoteRepository
	Vocabulary repository.VocabularyRepository
	Jobs       repository.JobRepository
}

// Migrator copies all rows from a source store into a destination store.
// Rows keep their ids and timestamps, so re-running after a partial failure
// only needs the destination cleared first.
type Migrator struct {
	src       Store
	dst       Store
	batchSize int
	logger    *zap.Logger
}

// New creates a migrator with the default batch size.
func New(src, dst Store, logger *zap.Logger) *Migrator {
	return &Migrator{
		src:       src,
		dst:       dst,
		batchSize: defaultBatchSize,
		logger:    logger,
	}
}

// Run migrates recordings, their annotations, and jobs, in that order.
func (m *Migrator) Run(ctx context.Context) error {
	recordings, err := m.migrateRecordings(ctx)
	if err != nil {
		return fmt.Errorf("recordings migration failed: %w", err)
	}

	jobs, err := m.migrateJobs(ctx)
	if err != nil {
		return fmt.Errorf("jobs migration failed: %w", err)
	}

	m.logger.Info("migration completed",
		zap.Int("recordings", recordings),
		zap.Int("jobs", jobs))
	return nil
}

func (m *Migrator) migrateRecordings(ctx context.Context) (int, error) {
	total := 0
	for offset := 0; ; offset += m.batchSize {
		batch, err := m.src.Recordings.ListRecordings(ctx, m.batchSize, offset)
		if err != nil {
			return total, err
		}
		if len(batch) == 0 {
			return total, nil
		}

		for _, rec := range batch {
			if err := m.dst.Recordings.InsertRecording(ctx, rec); err != nil {
				return total, fmt.Errorf("recording %s: %w", rec.ID, err)
			}
			total++

			if err := m.migrateAnnotations(ctx, rec.ID); err != nil {
				return total, err
			}
		}
	}
}

func (m *Migrator) migrateAnnotations(ctx context.Context, recordingID string) error {
	notes, err := m.src.Notes.ListNotesByRecording(ctx, recordingID)
	if err != nil {
		return fmt.Errorf("notes for %s: %w", recordingID, err)
	}
	for _, n := range notes {
		if err := m.dst.Notes.InsertNote(ctx, n); err != nil {
			return fmt.Errorf("note %s: %w", n.ID, err)
		}
	}

	vocab, err := m.src.Vocabulary.ListVocabularyByRecording(ctx, recordingID)
	if err != nil {
		return fmt.Errorf("vocabulary for %s: %w", recordingID, err)
	}
	for _, v := range vocab {
		if err := m.dst.Vocabulary.InsertVocabulary(ctx, v); err != nil {
			return fmt.Errorf("vocabulary entry %s: %w", v.ID, err)
		}
	}
	return nil
}

func (m *Migrator) migrateJobs(ctx context.Context) (int, error) {
	total := 0
	for offset := 0; ; offset += m.batchSize {
		batch, err := m.src.Jobs.ListJobs(ctx, "", m.batchSize, offset)
		if err != nil {
			return total, err
		}
		if len(batch) == 0 {
			return total, nil
		}

		for _, job := range batch {
			if err := m.dst.Jobs.InsertJob(ctx, job); err != nil {
				return total, fmt.Errorf("job %s: %w", job.ID, err)
			}
			total++
		}
	}
}
