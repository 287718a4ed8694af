package export

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"github.com/samratjha96/bakbak-sub001/internal/app/model"
	"github.com/samratjha96/bakbak-sub001/internal/app/testutil"
)

func TestToExcelWritesBothSheets(t *testing.T) {
	created := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	recordings := []*model.Recording{
		{
			ID:           "rec-1",
			Title:        "ordering coffee",
			LanguageCode: "ko-KR",
			AudioPath:    "recordings/rec-1.m4a",
			DurationSec:  31.5,
			Transcript:   "아이스 아메리카노 한 잔 주세요",
			Translation:  "One iced americano, please",
			CreatedAt:    created,
		},
	}
	vocabulary := []*model.VocabularyEntry{
		{
			ID:          "vocab-1",
			RecordingID: "rec-1",
			Term:        "주세요",
			Reading:     "juseyo",
			Meaning:     "please give me",
			CreatedAt:   created,
		},
	}

	outputPath := filepath.Join(t.TempDir(), "library.xlsx")
	require.NoError(t, ToExcel(recordings, vocabulary, outputPath))

	file, err := xlsx.OpenFile(outputPath)
	require.NoError(t, err)

	recSheet, ok := file.Sheet["Recordings"]
	require.True(t, ok, "missing Recordings sheet")
	require.Len(t, recSheet.Rows, 2)
	assert.Equal(t, "ID", recSheet.Rows[0].Cells[0].Value)
	assert.Equal(t, "rec-1", recSheet.Rows[1].Cells[0].Value)
	assert.Equal(t, "ordering coffee", recSheet.Rows[1].Cells[1].Value)
	assert.Equal(t, "ko-KR", recSheet.Rows[1].Cells[2].Value)
	assert.Equal(t, "31.50", recSheet.Rows[1].Cells[4].Value)
	assert.Equal(t, "아이스 아메리카노 한 잔 주세요", recSheet.Rows[1].Cells[5].Value)
	assert.Equal(t, "2025-03-14T09:30:00Z", recSheet.Rows[1].Cells[7].Value)

	vocabSheet, ok := file.Sheet["Vocabulary"]
	require.True(t, ok, "missing Vocabulary sheet")
	require.Len(t, vocabSheet.Rows, 2)
	assert.Equal(t, "주세요", vocabSheet.Rows[1].Cells[2].Value)
	assert.Equal(t, "juseyo", vocabSheet.Rows[1].Cells[3].Value)
	assert.Equal(t, "please give me", vocabSheet.Rows[1].Cells[4].Value)
}

func TestToExcelEmptyLibrary(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, ToExcel(nil, nil, outputPath))

	file, err := xlsx.OpenFile(outputPath)
	require.NoError(t, err)
	require.Len(t, file.Sheet["Recordings"].Rows, 1)
	require.Len(t, file.Sheet["Vocabulary"].Rows, 1)
}

func TestExporterExportAll(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := testutil.SetupTestSQLite(t)

	testutil.SeedRecording(t, store, model.Recording{ID: "rec-1", Title: "first", LanguageCode: "ja-JP"})
	testutil.SeedRecording(t, store, model.Recording{ID: "rec-2", Title: "second", LanguageCode: "ja-JP"})
	require.NoError(t, store.InsertVocabulary(ctx, &model.VocabularyEntry{
		ID:          "vocab-1",
		RecordingID: "rec-1",
		Term:        "ありがとう",
		Reading:     "arigatou",
		Meaning:     "thank you",
		CreatedAt:   time.Now().UTC(),
	}))

	exporter := NewExporter(store, store, nil)
	outputPath := filepath.Join(t.TempDir(), "library.xlsx")

	// Act
	stats, err := exporter.ExportAll(ctx, outputPath)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Recordings)
	assert.Equal(t, 1, stats.Vocabulary)

	file, err := xlsx.OpenFile(outputPath)
	require.NoError(t, err)
	assert.Len(t, file.Sheet["Recordings"].Rows, 3)
	assert.Len(t, file.Sheet["Vocabulary"].Rows, 2)
}
