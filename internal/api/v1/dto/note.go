package dto

import (
	"time"

	"github.com/samratjha96/bakbak-sub001/internal/app/model"
)

// CreateNoteRequest pins an annotation to a position in a recording.
type CreateNoteRequest struct {
	Body        string  `json:"body" binding:"required,max=2000"`
	PositionSec float64 `json:"position_sec" binding:"min=0"`
}

// NoteResponse represents a note in API responses.
type NoteResponse struct {
	ID          string    `json:"id"`
	RecordingID string    `json:"recording_id"`
	Body        string    `json:"body"`
	PositionSec float64   `json:"position_sec"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToNoteResponse converts a model to a response DTO.
func ToNoteResponse(note *model.Note) NoteResponse {
	return NoteResponse{
		ID:          note.ID,
		RecordingID: note.RecordingID,
		Body:        note.Body,
		PositionSec: note.PositionSec,
		CreatedAt:   note.CreatedAt,
	}
}

// CreateVocabularyRequest saves a term the learner wants to keep.
type CreateVocabularyRequest struct {
	Term    string `json:"term" binding:"required,max=200"`
	Reading string `json:"reading,omitempty" binding:"max=200"`
	Meaning string `json:"meaning,omitempty" binding:"max=500"`
}

// VocabularyResponse represents a saved vocabulary entry in API responses.
type VocabularyResponse struct {
	ID          string    `json:"id"`
	RecordingID string    `json:"recording_id"`
	Term        string    `json:"term"`
	Reading     string    `json:"reading,omitempty"`
	Meaning     string    `json:"meaning,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToVocabularyResponse converts a model to a response DTO.
func ToVocabularyResponse(entry *model.VocabularyEntry) VocabularyResponse {
	return VocabularyResponse{
		ID:          entry.ID,
		RecordingID: entry.RecordingID,
		Term:        entry.Term,
		Reading:     entry.Reading,
		Meaning:     entry.Meaning,
		CreatedAt:   entry.CreatedAt,
	}
}
