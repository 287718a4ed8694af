// Package export writes the recording library to spreadsheet files.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/tealeg/xlsx"
	"go.uber.org/zap"

	"github.com/samratjha96/bakbak-sub001/internal/app/model"
	"github.com/samratjha96/bakbak-sub001/internal/app/repository"
)

const pageSize = 500

// Stats reports how many rows an export produced.
type Stats struct {
	Recordings int
	Vocabulary int
}

// Exporter pulls the full library out of the repositories and writes it as
// an xlsx workbook.
type Exporter struct {
	recordings repository.RecordingRepository
	vocabulary repository.VocabularyRepository
	logger     *zap.Logger
}

func NewExporter(recordings repository.RecordingRepository, vocabulary repository.VocabularyRepository, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{recordings: recordings, vocabulary: vocabulary, logger: logger}
}

// ExportAll writes every recording and vocabulary entry to outputPath.
func (e *Exporter) ExportAll(ctx context.Context, outputPath string) (*Stats, error) {
	recordings, err := e.allRecordings(ctx)
	if err != nil {
		return nil, err
	}
	vocabulary, err := e.allVocabulary(ctx)
	if err != nil {
		return nil, err
	}

	if err := ToExcel(recordings, vocabulary, outputPath); err != nil {
		return nil, err
	}

	stats := &Stats{Recordings: len(recordings), Vocabulary: len(vocabulary)}
	e.logger.Info("export finished",
		zap.String("output", outputPath),
		zap.Int("recordings", stats.Recordings),
		zap.Int("vocabulary", stats.Vocabulary))
	return stats, nil
}

func (e *Exporter) allRecordings(ctx context.Context) ([]*model.Recording, error) {
	var all []*model.Recording
	for offset := 0; ; offset += pageSize {
		page, err := e.recordings.ListRecordings(ctx, pageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to list recordings: %w", err)
		}
		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}
	}
}

func (e *Exporter) allVocabulary(ctx context.Context) ([]*model.VocabularyEntry, error) {
	var all []*model.VocabularyEntry
	for offset := 0; ; offset += pageSize {
		page, err := e.vocabulary.ListVocabulary(ctx, pageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to list vocabulary: %w", err)
		}
		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}
	}
}

// ToExcel writes the given rows as an xlsx workbook with a Recordings sheet
// and a Vocabulary sheet.
func ToExcel(recordings []*model.Recording, vocabulary []*model.VocabularyEntry, outputPath string) error {
	file := xlsx.NewFile()

	recSheet, err := file.AddSheet("Recordings")
	if err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	headerRow := recSheet.AddRow()
	headerRow.AddCell().Value = "ID"
	headerRow.AddCell().Value = "Title"
	headerRow.AddCell().Value = "Language"
	headerRow.AddCell().Value = "Audio File"
	headerRow.AddCell().Value = "Duration (s)"
	headerRow.AddCell().Value = "Transcript"
	headerRow.AddCell().Value = "Translation"
	headerRow.AddCell().Value = "Created At"

	for _, r := range recordings {
		row := recSheet.AddRow()
		row.AddCell().Value = r.ID
		row.AddCell().Value = r.Title
		row.AddCell().Value = r.LanguageCode
		row.AddCell().Value = r.AudioPath
		row.AddCell().Value = fmt.Sprintf("%.2f", r.DurationSec)
		row.AddCell().Value = r.Transcript
		row.AddCell().Value = r.Translation
		row.AddCell().Value = r.CreatedAt.Format(time.RFC3339)
	}

	vocabSheet, err := file.AddSheet("Vocabulary")
	if err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	vocabHeader := vocabSheet.AddRow()
	vocabHeader.AddCell().Value = "ID"
	vocabHeader.AddCell().Value = "Recording ID"
	vocabHeader.AddCell().Value = "Term"
	vocabHeader.AddCell().Value = "Reading"
	vocabHeader.AddCell().Value = "Meaning"
	vocabHeader.AddCell().Value = "Created At"

	for _, v := range vocabulary {
		row := vocabSheet.AddRow()
		row.AddCell().Value = v.ID
		row.AddCell().Value = v.RecordingID
		row.AddCell().Value = v.Term
		row.AddCell().Value = v.Reading
		row.AddCell().Value = v.Meaning
		row.AddCell().Value = v.CreatedAt.Format(time.RFC3339)
	}

	if err := file.Save(outputPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
