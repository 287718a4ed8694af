package model

import (
	"time"
)

// Recording is an audio clip a learner captured or imported, together with
// the text artifacts derived from it.
type Recording struct {
	ID           string    `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	LanguageCode string    `json:"language_code" db:"language_code"`
	AudioPath    string    `json:"audio_path" db:"audio_path"`
	DurationSec  float64   `json:"duration_sec" db:"duration_sec"`
	FileHash     string    `json:"file_hash" db:"file_hash"`
	FileSize     int64     `json:"file_size" db:"file_size"`
	Transcript   string    `json:"transcript" db:"transcript"`
	Translation  string    `json:"translation" db:"translation"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for Recording
func (Recording) TableName() string {
	return "recordings"
}
