package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/samratjha96/bakbak-sub001/internal/app/speech"
)

// EngineOutcome scripts how the mock engine handles one recording.
// Exactly one of the terminal fields applies: StartErr makes Start itself
// fail, FailMessage resolves the task as failed, Manual leaves the task
// processing until Complete or Fail is called, and otherwise the task
// resolves as completed with Transcript.
type EngineOutcome struct {
	Transcript  string
	StartErr    error
	FailMessage string
	Manual      bool
}

type engineTask struct {
	recordingID string
	state       speech.State
	transcript  string
	errMessage  string
}

// MockEngine is a scriptable in-memory implementation of speech.Engine.
// Unscripted recordings resolve immediately with a canned transcript.
type MockEngine struct {
	mu       sync.Mutex
	outcomes map[string]EngineOutcome
	tasks    map[speech.Handle]*engineTask
	byRec    map[string]*engineTask
	starts   []speech.Request
	seq      int
}

// NewMockEngine creates a MockEngine with no scripted outcomes.
func NewMockEngine() *MockEngine {
	return &MockEngine{
		outcomes: make(map[string]EngineOutcome),
		tasks:    make(map[speech.Handle]*engineTask),
		byRec:    make(map[string]*engineTask),
	}
}

// ScriptOutcome registers the outcome for a recording's next Start call.
func (m *MockEngine) ScriptOutcome(recordingID string, outcome EngineOutcome) *MockEngine {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[recordingID] = outcome
	return m
}

// Start implements speech.Engine.
func (m *MockEngine) Start(ctx context.Context, req speech.Request) (speech.Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.starts = append(m.starts, req)

	outcome := m.outcomes[req.RecordingID]
	if outcome.StartErr != nil {
		return "", outcome.StartErr
	}

	m.seq++
	handle := speech.Handle(fmt.Sprintf("mock-task-%04d", m.seq))

	task := &engineTask{recordingID: req.RecordingID}
	switch {
	case outcome.Manual:
		task.state = speech.StateProcessing
	case outcome.FailMessage != "":
		task.state = speech.StateFailed
		task.errMessage = outcome.FailMessage
	default:
		task.state = speech.StateCompleted
		task.transcript = outcome.Transcript
		if task.transcript == "" {
			task.transcript = fmt.Sprintf("mock transcript for %s", req.RecordingID)
		}
	}

	m.tasks[handle] = task
	m.byRec[req.RecordingID] = task
	return handle, nil
}

// Status implements speech.Engine.
func (m *MockEngine) Status(ctx context.Context, handle speech.Handle) (speech.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[handle]
	if !ok {
		return speech.Status{}, fmt.Errorf("unknown task handle: %s", handle)
	}
	return speech.Status{State: task.state, ErrorMessage: task.errMessage}, nil
}

// Result implements speech.Engine.
func (m *MockEngine) Result(ctx context.Context, handle speech.Handle) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[handle]
	if !ok {
		return "", fmt.Errorf("unknown task handle: %s", handle)
	}
	if task.state != speech.StateCompleted {
		return "", fmt.Errorf("task %s is not completed", handle)
	}
	return task.transcript, nil
}

// Complete resolves a manual task as completed with the given transcript.
func (m *MockEngine) Complete(recordingID, transcript string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if task, ok := m.byRec[recordingID]; ok {
		task.state = speech.StateCompleted
		task.transcript = transcript
	}
}

// Fail resolves a manual task as failed with the given message.
func (m *MockEngine) Fail(recordingID, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if task, ok := m.byRec[recordingID]; ok {
		task.state = speech.StateFailed
		task.errMessage = message
	}
}

// StartCount returns how many times Start was called.
func (m *MockEngine) StartCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.starts)
}

// Requests returns every Start request in call order.
func (m *MockEngine) Requests() []speech.Request {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]speech.Request, len(m.starts))
	copy(out, m.starts)
	return out
}

// StartsFor returns how many times Start was called for a recording.
func (m *MockEngine) StartsFor(recordingID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, req := range m.starts {
		if req.RecordingID == recordingID {
			n++
		}
	}
	return n
}

// Interface compliance check
var _ speech.Engine = (*MockEngine)(nil)
