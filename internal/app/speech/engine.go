// Package speech defines the speech-to-text capability the job processor
// drives. Implementations adapt a concrete backend to a small start/poll/fetch
// contract so the processor never sees vendor detail.
package speech

import (
	"context"
)

// State of an engine-side transcription task.
type State string

const (
	StateProcessing State = "processing"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

// Handle identifies a transcription task within an engine instance.
type Handle string

// Request describes the audio to transcribe.
type Request struct {
	RecordingID   string
	AudioLocation string
	LanguageCode  string
}

// Status is an engine's view of a running task. ErrorMessage is set only
// when State is StateFailed.
type Status struct {
	State        State
	ErrorMessage string
}

// Engine is the external transcription capability.
type Engine interface {
	// Start begins transcribing the requested audio and returns a handle
	// for polling. A returned error means the task never started.
	Start(ctx context.Context, req Request) (Handle, error)

	// Status reports the task's progress.
	Status(ctx context.Context, handle Handle) (Status, error)

	// Result returns the transcript of a completed task.
	Result(ctx context.Context, handle Handle) (string, error)
}
