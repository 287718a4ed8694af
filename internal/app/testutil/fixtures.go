package testutil

import (
	"fmt"
	"time"

	"github.com/samratjha96/bakbak-sub001/internal/app/model"
)

// TestRecordings provides sample recording data for testing
var TestRecordings = []model.Recording{
	{
		ID:           "rec-cafe-order",
		Title:        "Ordering coffee in Seoul",
		LanguageCode: "ko-KR",
		AudioPath:    "recordings/rec-cafe-order.m4a",
		DurationSec:  42.7,
		FileHash:     "3f8a1c9be2d44a5f",
		FileSize:     684210,
		Transcript:   "아이스 아메리카노 한 잔 주세요.",
		CreatedAt:    time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2025, 3, 10, 9, 31, 0, 0, time.UTC),
	},
	{
		ID:           "rec-self-intro",
		Title:        "Self introduction practice",
		LanguageCode: "ja-JP",
		AudioPath:    "recordings/rec-self-intro.m4a",
		DurationSec:  88.2,
		FileHash:     "b71e02d6a93c4e88",
		FileSize:     1412330,
		Transcript:   "はじめまして、田中と申します。よろしくお願いします。",
		CreatedAt:    time.Date(2025, 3, 11, 18, 5, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2025, 3, 11, 18, 6, 0, 0, time.UTC),
	},
	{
		ID:           "rec-directions",
		Title:        "Asking for directions",
		LanguageCode: "es-MX",
		AudioPath:    "recordings/rec-directions.m4a",
		DurationSec:  31.4,
		FileHash:     "9c44f0ab17d2e3c1",
		FileSize:     502118,
		CreatedAt:    time.Date(2025, 3, 12, 7, 45, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2025, 3, 12, 7, 45, 0, 0, time.UTC),
	},
}

// NewTestRecording returns a pending-transcription recording with fields
// derived from the given id.
func NewTestRecording(id string) model.Recording {
	now := time.Now().UTC()
	return model.Recording{
		ID:           id,
		Title:        fmt.Sprintf("Practice session %s", id),
		LanguageCode: "ja-JP",
		AudioPath:    fmt.Sprintf("recordings/%s.m4a", id),
		DurationSec:  60,
		FileHash:     fmt.Sprintf("hash-%s", id),
		FileSize:     1024,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewTestJob returns a pending transcription job for the given recording.
func NewTestJob(id, recordingID string) model.TranscriptionJob {
	now := time.Now().UTC()
	return model.TranscriptionJob{
		ID:          id,
		RecordingID: recordingID,
		Status:      model.JobStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TestTranscripts provides sample transcript texts for testing
var TestTranscripts = []string{
	"아이스 아메리카노 한 잔 주세요.",
	"はじめまして、田中と申します。",
	"¿Dónde está la estación de tren más cercana?",
	"Je voudrais réserver une table pour deux personnes.",
	"Das Wetter ist heute wirklich schön, nicht wahr?",
}
