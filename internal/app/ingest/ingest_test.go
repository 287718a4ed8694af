package ingest

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/samratjha96/bakbak-sub001/internal/app/jobs"
	"github.com/samratjha96/bakbak-sub001/internal/app/model"
	"github.com/samratjha96/bakbak-sub001/internal/app/repository/sqlite"
	"github.com/samratjha96/bakbak-sub001/internal/app/storage"
	"github.com/samratjha96/bakbak-sub001/internal/app/testutil"
)

type importFixture struct {
	importer *Importer
	registry *jobs.Registry
	store    *sqlite.SQLiteDB
	blob     *storage.FileStore
	inputDir string
}

func newImportFixture(t *testing.T) *importFixture {
	t.Helper()

	store := testutil.SetupTestSQLite(t)
	blob, err := storage.NewFileStore(filepath.Join(t.TempDir(), "objects"))
	require.NoError(t, err)

	registry := jobs.NewRegistry(store)
	importer := NewImporter(store, registry, blob, zap.NewNop())
	importer.probeDuration = func(string) (float64, error) { return 42.5, nil }

	return &importFixture{
		importer: importer,
		registry: registry,
		store:    store,
		blob:     blob,
		inputDir: t.TempDir(),
	}
}

func (fx *importFixture) writeAudio(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(fx.inputDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportDirImportsNewAudio(t *testing.T) {
	// Arrange
	fx := newImportFixture(t)
	ctx := context.Background()
	fx.writeAudio(t, "morning practice.m4a", "audio-one")
	fx.writeAudio(t, "cafe order.mp3", "audio-two")

	// Act
	summary, err := fx.importer.ImportDir(ctx, fx.inputDir, Options{
		LanguageCode: "ko-KR",
		Transcribe:   true,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Imported)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 0, summary.Failed)
	require.Len(t, summary.Results, 2)

	for _, res := range summary.Results {
		require.Equal(t, OutcomeImported, res.Outcome)
		require.NotEmpty(t, res.RecordingID)
		require.NotEmpty(t, res.JobID)

		rec, err := fx.store.GetRecordingByID(ctx, res.RecordingID)
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, "ko-KR", rec.LanguageCode)
		assert.Equal(t, 42.5, rec.DurationSec)
		assert.NotEmpty(t, rec.FileHash)
		assert.True(t, strings.HasPrefix(rec.AudioPath, "recordings/"), "audio path %s", rec.AudioPath)

		// The object store holds a copy of the original bytes.
		stored, err := os.ReadFile(fx.blob.ObjectURL(rec.AudioPath))
		require.NoError(t, err)
		original, err := os.ReadFile(res.Path)
		require.NoError(t, err)
		assert.Equal(t, original, stored)

		job, err := fx.registry.GetJob(ctx, res.JobID)
		require.NoError(t, err)
		assert.Equal(t, model.JobStatusPending, job.Status)
		assert.Equal(t, res.RecordingID, job.RecordingID)
	}

	titles := make([]string, 0, 2)
	for _, res := range summary.Results {
		rec, err := fx.store.GetRecordingByID(ctx, res.RecordingID)
		require.NoError(t, err)
		titles = append(titles, rec.Title)
	}
	assert.ElementsMatch(t, []string{"morning practice", "cafe order"}, titles)
}

func TestImportDirSkipsAlreadyImported(t *testing.T) {
	fx := newImportFixture(t)
	ctx := context.Background()
	fx.writeAudio(t, "one.m4a", "audio-one")
	fx.writeAudio(t, "two.m4a", "audio-two")

	first, err := fx.importer.ImportDir(ctx, fx.inputDir, Options{LanguageCode: "ja-JP"})
	require.NoError(t, err)
	require.Equal(t, 2, first.Imported)

	second, err := fx.importer.ImportDir(ctx, fx.inputDir, Options{LanguageCode: "ja-JP"})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Imported)
	assert.Equal(t, 2, second.Skipped)

	// Skipped results point back at the recording that already holds the audio.
	for _, res := range second.Results {
		assert.NotEmpty(t, res.RecordingID)
	}

	count, err := fx.store.CountRecordings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestImportDirSkipsDuplicateWithinRun(t *testing.T) {
	fx := newImportFixture(t)
	ctx := context.Background()
	fx.writeAudio(t, "original.m4a", "same bytes")
	fx.writeAudio(t, "copy of original.m4a", "same bytes")

	summary, err := fx.importer.ImportDir(ctx, fx.inputDir, Options{LanguageCode: "es-MX"})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, 1, summary.Skipped)

	count, err := fx.store.CountRecordings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestImportDirHonorsLimit(t *testing.T) {
	fx := newImportFixture(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"first.m4a", "second.m4a", "third.m4a"} {
		path := fx.writeAudio(t, name, "audio-"+name)
		mtime := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(path, mtime, mtime))
	}

	summary, err := fx.importer.ImportDir(ctx, fx.inputDir, Options{LanguageCode: "ko-KR", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Imported)
	require.Len(t, summary.Results, 2)

	// Oldest files win when the limit cuts the run short.
	imported := make([]string, 0, 2)
	for _, res := range summary.Results {
		imported = append(imported, filepath.Base(res.Path))
	}
	assert.ElementsMatch(t, []string{"first.m4a", "second.m4a"}, imported)
}

func TestImportDirWithoutTranscribeQueuesNoJobs(t *testing.T) {
	fx := newImportFixture(t)
	ctx := context.Background()
	fx.writeAudio(t, "quiet.m4a", "audio bytes")

	summary, err := fx.importer.ImportDir(ctx, fx.inputDir, Options{LanguageCode: "ja-JP"})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Imported)
	assert.Empty(t, summary.Results[0].JobID)

	pending, err := fx.registry.ListPendingJobs(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestImportDirProbeFailureStillImports(t *testing.T) {
	fx := newImportFixture(t)
	ctx := context.Background()
	fx.writeAudio(t, "odd codec.m4a", "audio bytes")
	fx.importer.probeDuration = func(string) (float64, error) {
		return 0, errors.New("ffprobe not found")
	}

	summary, err := fx.importer.ImportDir(ctx, fx.inputDir, Options{LanguageCode: "ko-KR"})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Imported)

	rec, err := fx.store.GetRecordingByID(ctx, summary.Results[0].RecordingID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Zero(t, rec.DurationSec)
}

func TestImportDirMissingDirectory(t *testing.T) {
	fx := newImportFixture(t)

	_, err := fx.importer.ImportDir(context.Background(), filepath.Join(fx.inputDir, "nope"), Options{})
	require.Error(t, err)
}

func TestImportDirEmptyDirectory(t *testing.T) {
	fx := newImportFixture(t)

	summary, err := fx.importer.ImportDir(context.Background(), fx.inputDir, Options{})
	require.NoError(t, err)
	assert.Zero(t, summary.Imported)
	assert.Zero(t, summary.Skipped)
	assert.Zero(t, summary.Failed)
	assert.Empty(t, summary.Results)
}

func TestImportDirWithProgressEnabled(t *testing.T) {
	fx := newImportFixture(t)
	ctx := context.Background()
	fx.writeAudio(t, "one.m4a", "audio-one")
	fx.writeAudio(t, "two.m4a", "audio-two")

	var buf bytes.Buffer
	summary, err := fx.importer.ImportDir(ctx, fx.inputDir, Options{
		LanguageCode: "ja-JP",
		Parallel:     1,
		Progress:     ProgressConfig{Enabled: true, Writer: &buf},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Imported)
}
