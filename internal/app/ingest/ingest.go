// Package ingest imports audio files from a local directory into the
// recording library. Files already in the library are recognized by content
// hash and skipped; new files are probed for duration, uploaded to the
// object store, and optionally queued for transcription.
package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/samratjha96/bakbak-sub001/internal/app/audio"
	"github.com/samratjha96/bakbak-sub001/internal/app/model"
	"github.com/samratjha96/bakbak-sub001/internal/app/repository"
	"github.com/samratjha96/bakbak-sub001/internal/app/storage"
	"github.com/samratjha96/bakbak-sub001/internal/app/util/files"
	"github.com/samratjha96/bakbak-sub001/internal/app/utils"
)

// DefaultParallel bounds concurrent imports when Options.Parallel is unset.
const DefaultParallel = 4

// JobQueue is the slice of the job registry the importer needs.
type JobQueue interface {
	CreateJob(ctx context.Context, recordingID, languageCode string) (*model.TranscriptionJob, error)
}

// Outcome classifies what happened to one file during an import run.
type Outcome string

const (
	OutcomeImported Outcome = "imported"
	OutcomeSkipped  Outcome = "skipped"
	OutcomeFailed   Outcome = "failed"
)

// FileResult is the per-file record of an import run.
type FileResult struct {
	Path        string
	Outcome     Outcome
	RecordingID string
	JobID       string
	Err         error
}

// Summary aggregates an import run.
type Summary struct {
	Imported int
	Skipped  int
	Failed   int
	Results  []FileResult
}

// Options controls a single import run.
type Options struct {
	// LanguageCode is stamped on every imported recording and its job.
	LanguageCode string
	// Transcribe queues a transcription job for each imported recording.
	Transcribe bool
	// Limit caps the number of new imports. Zero means no cap; files skipped
	// as duplicates do not count against it.
	Limit    int
	Parallel int
	Progress ProgressConfig
}

// Importer moves audio files from disk into the recording library.
type Importer struct {
	recordings repository.RecordingRepository
	queue      JobQueue
	store      storage.ObjectStore
	logger     *zap.Logger

	// probeDuration is swappable so tests do not need ffprobe installed.
	probeDuration func(path string) (float64, error)
}

func NewImporter(recordings repository.RecordingRepository, queue JobQueue, store storage.ObjectStore, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{
		recordings:    recordings,
		queue:         queue,
		store:         store,
		logger:        logger,
		probeDuration: audio.Duration,
	}
}

type candidate struct {
	path string
	hash string
}

// ImportDir scans inputDir for audio files, oldest first, and imports the
// ones not already in the library.
func (imp *Importer) ImportDir(ctx context.Context, inputDir string, opts Options) (*Summary, error) {
	audioFiles, err := files.ListAudioFiles(inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", inputDir, err)
	}

	toImport, resolved := imp.selectCandidates(ctx, audioFiles, opts.Limit)

	results := make([]FileResult, len(toImport))
	if len(toImport) > 0 {
		parallel := opts.Parallel
		if parallel <= 0 {
			parallel = DefaultParallel
		}

		pm := NewProgressManager(opts.Progress)
		bar := pm.CreateBar(len(toImport), "Importing audio")
		defer pm.Wait()

		var wg sync.WaitGroup
		sem := make(chan bool, parallel)

		for i, cand := range toImport {
			wg.Add(1)
			go func(i int, cand candidate) {
				defer wg.Done()
				defer bar.Increment()

				sem <- true
				results[i] = imp.importFile(ctx, cand, opts)
				<-sem
			}(i, cand)
		}
		wg.Wait()
	}

	all := append(resolved, results...)
	counts := lo.CountValuesBy(all, func(r FileResult) Outcome { return r.Outcome })
	summary := &Summary{
		Imported: counts[OutcomeImported],
		Skipped:  counts[OutcomeSkipped],
		Failed:   counts[OutcomeFailed],
		Results:  all,
	}

	imp.logger.Info("import finished",
		zap.String("dir", inputDir),
		zap.Int("imported", summary.Imported),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed))
	return summary, nil
}

// selectCandidates hashes each file and drops the ones already imported,
// either earlier in this run or in a previous one. Dedupe runs before the
// parallel phase so identical files cannot race each other into the library.
func (imp *Importer) selectCandidates(ctx context.Context, audioFiles []files.AudioFile, limit int) ([]candidate, []FileResult) {
	var toImport []candidate
	var resolved []FileResult
	seen := make(map[string]string)

	for _, f := range audioFiles {
		if limit > 0 && len(toImport) >= limit {
			break
		}

		hash, err := utils.CalculateFileHash(f.FullPath)
		if err != nil {
			resolved = append(resolved, FileResult{
				Path:    f.FullPath,
				Outcome: OutcomeFailed,
				Err:     fmt.Errorf("failed to hash %s: %w", f.FullPath, err),
			})
			continue
		}

		if prev, ok := seen[hash]; ok {
			imp.logger.Info("skipping duplicate file",
				zap.String("file", f.FullPath), zap.String("duplicate_of", prev))
			resolved = append(resolved, FileResult{Path: f.FullPath, Outcome: OutcomeSkipped})
			continue
		}

		existing, err := imp.recordings.FindRecordingByHash(ctx, hash)
		if err != nil {
			resolved = append(resolved, FileResult{Path: f.FullPath, Outcome: OutcomeFailed, Err: err})
			continue
		}
		if existing != nil {
			imp.logger.Info("skipping already imported file",
				zap.String("file", f.FullPath), zap.String("recording_id", existing.ID))
			resolved = append(resolved, FileResult{
				Path:        f.FullPath,
				Outcome:     OutcomeSkipped,
				RecordingID: existing.ID,
			})
			continue
		}

		seen[hash] = f.FullPath
		toImport = append(toImport, candidate{path: f.FullPath, hash: hash})
	}

	return toImport, resolved
}

func (imp *Importer) importFile(ctx context.Context, cand candidate, opts Options) FileResult {
	res := FileResult{Path: cand.path}

	size, err := utils.GetFileSize(cand.path)
	if err != nil {
		res.Outcome = OutcomeFailed
		res.Err = fmt.Errorf("failed to stat %s: %w", cand.path, err)
		return res
	}

	duration, err := imp.probeDuration(cand.path)
	if err != nil {
		// Duration is informational only; the import goes ahead without it.
		imp.logger.Warn("could not probe duration",
			zap.String("file", cand.path), zap.Error(err))
		duration = 0
	}

	recID := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(cand.path))
	key := fmt.Sprintf("recordings/%s%s", recID, ext)

	if _, err := imp.store.UploadFile(ctx, cand.path, key, storage.ContentTypeForFile(cand.path)); err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err
		return res
	}

	now := time.Now().UTC()
	rec := &model.Recording{
		ID:           recID,
		Title:        strings.TrimSuffix(filepath.Base(cand.path), filepath.Ext(cand.path)),
		LanguageCode: opts.LanguageCode,
		AudioPath:    key,
		DurationSec:  duration,
		FileHash:     cand.hash,
		FileSize:     size,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := imp.recordings.InsertRecording(ctx, rec); err != nil {
		if rmErr := imp.store.RemoveObject(ctx, key); rmErr != nil {
			imp.logger.Warn("could not remove orphaned object",
				zap.String("key", key), zap.Error(rmErr))
		}
		res.Outcome = OutcomeFailed
		res.Err = fmt.Errorf("failed to insert recording: %w", err)
		return res
	}

	res.RecordingID = recID
	res.Outcome = OutcomeImported

	if opts.Transcribe {
		job, err := imp.queue.CreateJob(ctx, recID, opts.LanguageCode)
		if err != nil {
			res.Outcome = OutcomeFailed
			res.Err = fmt.Errorf("recording %s imported but job not queued: %w", recID, err)
			return res
		}
		res.JobID = job.ID
	}

	imp.logger.Info("imported recording",
		zap.String("file", cand.path),
		zap.String("recording_id", recID),
		zap.Float64("duration_sec", duration))
	return res
}
