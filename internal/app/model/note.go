package model

import (
	"time"
)

// Note is a free-form annotation pinned to a position in a recording.
type Note struct {
	ID          string    `json:"id" db:"id"`
	RecordingID string    `json:"recording_id" db:"recording_id"`
	Body        string    `json:"body" db:"body"`
	PositionSec float64   `json:"position_sec" db:"position_sec"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// TableName returns the table name for Note
func (Note) TableName() string {
	return "notes"
}

// VocabularyEntry is a word or phrase the learner saved from a recording,
// with its romanized reading and meaning.
type VocabularyEntry struct {
	ID          string    `json:"id" db:"id"`
	RecordingID string    `json:"recording_id" db:"recording_id"`
	Term        string    `json:"term" db:"term"`
	Reading     string    `json:"reading" db:"reading"`
	Meaning     string    `json:"meaning" db:"meaning"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// TableName returns the table name for VocabularyEntry
func (VocabularyEntry) TableName() string {
	return "vocabulary_entries"
}
