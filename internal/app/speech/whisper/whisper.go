// Package whisper adapts the OpenAI transcription API to the asynchronous
// speech.Engine contract. The vendor call is synchronous, so Start runs it in
// a background goroutine keyed by task handle and Status/Result observe the
// task table.
package whisper

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	apperrors "github.com/samratjha96/bakbak-sub001/internal/app/errors"
	"github.com/samratjha96/bakbak-sub001/internal/app/speech"
)

// Config carries the Whisper-specific knobs.
type Config struct {
	Model       string
	Prompt      string
	Temperature float32
}

// Engine transcribes audio through the OpenAI Whisper API.
type Engine struct {
	client *openai.Client
	source speech.Source
	logger *zap.Logger
	cfg    Config

	mu    sync.Mutex
	tasks map[speech.Handle]*task
}

type task struct {
	state      speech.State
	transcript string
	errMessage string
}

// NewEngine creates a Whisper-backed engine. The client is injected so the
// API credentials and base URL are decided by the caller's configuration.
func NewEngine(client *openai.Client, source speech.Source, logger *zap.Logger, cfg Config) *Engine {
	if cfg.Model == "" {
		cfg.Model = string(openai.Whisper1)
	}
	return &Engine{
		client: client,
		source: source,
		logger: logger,
		cfg:    cfg,
		tasks:  make(map[speech.Handle]*task),
	}
}

// Start implements speech.Engine. The audio is resolved through the source
// before the handle is issued, so an unreadable location fails fast.
func (e *Engine) Start(ctx context.Context, req speech.Request) (speech.Handle, error) {
	localPath, cleanup, err := e.source.Fetch(ctx, req.AudioLocation)
	if err != nil {
		return "", apperrors.NewExternalError("fetch audio", err)
	}

	handle := speech.Handle(fmt.Sprintf("whisper-%s", uuid.New().String()))
	e.mu.Lock()
	e.tasks[handle] = &task{state: speech.StateProcessing}
	e.mu.Unlock()

	go e.transcribe(handle, localPath, cleanup, req.LanguageCode)
	return handle, nil
}

// transcribe runs the vendor call to completion and records the outcome.
// TODO: evict terminal tasks once callers stop polling them; the table grows
// by one small entry per transcription until the process restarts.
func (e *Engine) transcribe(handle speech.Handle, localPath string, cleanup func(), languageCode string) {
	defer cleanup()

	req := openai.AudioRequest{
		Model:       e.cfg.Model,
		FilePath:    localPath,
		Language:    primaryLanguageTag(languageCode),
		Prompt:      e.cfg.Prompt,
		Temperature: e.cfg.Temperature,
	}

	resp, err := e.client.CreateTranscription(context.Background(), req)

	e.mu.Lock()
	defer e.mu.Unlock()
	t, ok := e.tasks[handle]
	if !ok {
		return
	}
	if err != nil {
		t.state = speech.StateFailed
		t.errMessage = fmt.Sprintf("createTranscription failed: %v", err)
		e.logger.Warn("whisper transcription failed",
			zap.String("handle", string(handle)), zap.Error(err))
		return
	}
	t.state = speech.StateCompleted
	t.transcript = resp.Text
}

// Status implements speech.Engine.
func (e *Engine) Status(ctx context.Context, handle speech.Handle) (speech.Status, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, ok := e.tasks[handle]
	if !ok {
		return speech.Status{}, apperrors.NewNotFoundError("transcription task", string(handle))
	}
	return speech.Status{State: t.state, ErrorMessage: t.errMessage}, nil
}

// Result implements speech.Engine. It only succeeds for completed tasks.
func (e *Engine) Result(ctx context.Context, handle speech.Handle) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, ok := e.tasks[handle]
	if !ok {
		return "", apperrors.NewNotFoundError("transcription task", string(handle))
	}
	switch t.state {
	case speech.StateCompleted:
		return t.transcript, nil
	case speech.StateFailed:
		return "", apperrors.New(t.errMessage)
	default:
		return "", apperrors.Newf("transcription task %s is still processing", handle)
	}
}

// primaryLanguageTag reduces a BCP-47 tag like "ja-JP" to the bare language
// subtag the Whisper API expects. Empty input stays empty for auto-detection.
func primaryLanguageTag(code string) string {
	if code == "" {
		return ""
	}
	if i := strings.IndexByte(code, '-'); i > 0 {
		code = code[:i]
	}
	return strings.ToLower(code)
}

var _ speech.Engine = (*Engine)(nil)
