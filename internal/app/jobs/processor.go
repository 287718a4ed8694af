package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/samratjha96/bakbak-sub001/internal/app/errors"
	"github.com/samratjha96/bakbak-sub001/internal/app/model"
	"github.com/samratjha96/bakbak-sub001/internal/app/speech"
)

const (
	// DefaultPollInterval is how often the processor re-scans for pending
	// jobs when no explicit interval is configured.
	DefaultPollInterval = 30 * time.Second

	// DefaultConcurrency bounds how many jobs one processor instance works
	// on simultaneously.
	DefaultConcurrency = 3

	// DefaultStatusPollInterval is the cadence for polling the speech
	// engine while a dispatched job waits on the backend.
	DefaultStatusPollInterval = 2 * time.Second
)

// Config controls the processor's polling loop.
type Config struct {
	PollInterval       time.Duration
	Concurrency        int
	StatusPollInterval time.Duration
}

// DefaultConfig returns the stock processor configuration.
func DefaultConfig() Config {
	return Config{
		PollInterval:       DefaultPollInterval,
		Concurrency:        DefaultConcurrency,
		StatusPollInterval: DefaultStatusPollInterval,
	}
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.StatusPollInterval <= 0 {
		c.StatusPollInterval = DefaultStatusPollInterval
	}
	return c
}

// ConfigUpdate is a partial configuration change. Nil fields keep their
// current value.
type ConfigUpdate struct {
	PollInterval       *time.Duration
	Concurrency        *int
	StatusPollInterval *time.Duration
}

// RecordingStore is the slice of the recording repository the processor
// needs: resolving a job's audio and storing the finished transcript.
type RecordingStore interface {
	GetRecordingByID(ctx context.Context, id string) (*model.Recording, error)
	SetTranscript(ctx context.Context, id string, transcript string) error
}

// Processor polls the registry for pending jobs and runs up to
// Config.Concurrency of them at once. Per-job failures are written back to
// the registry and counted in metrics; they never stop the scheduler or
// sibling jobs. The in-flight set is per-instance state only, so exactly one
// processor instance may run against a registry.
type Processor struct {
	registry   *Registry
	engine     speech.Engine
	recordings RecordingStore
	metrics    *Metrics
	logger     *zap.Logger

	// Configuration
	cfg Config

	// State management
	running  bool
	inFlight map[string]struct{}
	wg       sync.WaitGroup

	// Control channels
	stopChan   chan struct{}
	reloadChan chan struct{}
	doneChan   chan struct{}

	// Mutex for thread safety
	mu sync.RWMutex
}

// NewProcessor creates a processor. Zero config fields fall back to the
// defaults. The processor is idle until Start is called.
func NewProcessor(
	registry *Registry,
	engine speech.Engine,
	recordings RecordingStore,
	metrics *Metrics,
	logger *zap.Logger,
	cfg Config,
) *Processor {
	return &Processor{
		registry:   registry,
		engine:     engine,
		recordings: recordings,
		metrics:    metrics,
		logger:     logger,
		cfg:        cfg.withDefaults(),
		inFlight:   make(map[string]struct{}),
	}
}

// Start launches the polling loop: one scan immediately, then one per poll
// interval. Calling Start on a running processor is a no-op.
func (p *Processor) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.stopChan = make(chan struct{})
	p.reloadChan = make(chan struct{}, 1)
	p.doneChan = make(chan struct{})
	stop, reload, done := p.stopChan, p.reloadChan, p.doneChan
	cfg := p.cfg
	p.mu.Unlock()

	p.logger.Info("processor started",
		zap.Duration("poll_interval", cfg.PollInterval),
		zap.Int("concurrency", cfg.Concurrency))

	go p.run(stop, reload, done)
}

// Stop halts the polling loop. Jobs already dispatched keep running to their
// terminal status. Calling Stop on a stopped processor is a no-op.
func (p *Processor) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stopChan)
	done := p.doneChan
	p.mu.Unlock()

	// Wait for the loop goroutine so no scan can start after Stop returns.
	<-done
	p.logger.Info("processor stopped")
}

// Wait blocks until all in-flight jobs have finished. Call after Stop when
// shutting down.
func (p *Processor) Wait() {
	p.wg.Wait()
}

// UpdateConfig merges a partial configuration change. When the poll interval
// changes while running, the pending timer is discarded and the next scan
// happens one new interval from now; missed scans are not replayed.
func (p *Processor) UpdateConfig(upd ConfigUpdate) {
	p.mu.Lock()
	intervalChanged := false
	if upd.PollInterval != nil && *upd.PollInterval > 0 && *upd.PollInterval != p.cfg.PollInterval {
		p.cfg.PollInterval = *upd.PollInterval
		intervalChanged = true
	}
	if upd.Concurrency != nil && *upd.Concurrency > 0 {
		p.cfg.Concurrency = *upd.Concurrency
	}
	if upd.StatusPollInterval != nil && *upd.StatusPollInterval > 0 {
		p.cfg.StatusPollInterval = *upd.StatusPollInterval
	}
	running := p.running
	reload := p.reloadChan
	p.mu.Unlock()

	if intervalChanged && running {
		select {
		case reload <- struct{}{}:
		default:
		}
	}
}

// Config returns the current configuration.
func (p *Processor) Config() Config {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cfg
}

// ActiveJobCount returns the number of jobs this instance is processing.
func (p *Processor) ActiveJobCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.inFlight)
}

// IsRunning reports whether the polling loop is active.
func (p *Processor) IsRunning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.running
}

func (p *Processor) run(stop, reload <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	p.scan(context.Background())

	for {
		timer := time.NewTimer(p.pollInterval())
		select {
		case <-stop:
			timer.Stop()
			return
		case <-reload:
			// Swap in a timer with the new interval. Whatever remained of
			// the old interval is discarded, not replayed.
			timer.Stop()
		case <-timer.C:
			p.scan(context.Background())
		}
	}
}

func (p *Processor) pollInterval() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cfg.PollInterval
}

func (p *Processor) statusPollInterval() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cfg.StatusPollInterval
}

// scan dispatches as many pending jobs as there are free slots.
// It never blocks the timer: dispatched work runs in its own goroutines.
func (p *Processor) scan(ctx context.Context) {
	p.mu.RLock()
	available := p.cfg.Concurrency - len(p.inFlight)
	p.mu.RUnlock()

	// Saturated: skip the registry query entirely this tick.
	if available <= 0 {
		return
	}

	pending, err := p.registry.ListPendingJobs(ctx)
	if err != nil {
		p.metrics.ScanErrors.Inc()
		p.logger.Error("failed to list pending jobs", zap.Error(err))
		return
	}
	if len(pending) > available {
		pending = pending[:available]
	}

	for _, job := range pending {
		if !p.claim(job.ID) {
			continue
		}
		p.wg.Add(1)
		go p.process(ctx, job)
	}
}

// claim reserves an in-flight slot for the job. It re-checks the bound under
// the lock and refuses jobs that are already being processed.
func (p *Processor) claim(jobID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.inFlight) >= p.cfg.Concurrency {
		return false
	}
	if _, active := p.inFlight[jobID]; active {
		return false
	}
	p.inFlight[jobID] = struct{}{}
	p.metrics.ActiveJobs.Set(float64(len(p.inFlight)))
	return true
}

func (p *Processor) release(jobID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.inFlight, jobID)
	p.metrics.ActiveJobs.Set(float64(len(p.inFlight)))
}

// process runs one job to a terminal status. Errors are recorded on the job,
// never returned; the in-flight slot is released on every exit path.
func (p *Processor) process(ctx context.Context, job *model.TranscriptionJob) {
	defer p.wg.Done()
	defer p.release(job.ID)
	defer func() {
		if r := recover(); r != nil {
			p.finalizeFailure(ctx, job.ID, fmt.Errorf("panic: %v", r))
		}
	}()

	if _, err := p.registry.UpdateJobStatus(ctx, job.ID, model.JobStatusInProgress, ""); err != nil {
		// Typically a job cancelled between scan and dispatch.
		p.finalizeFailure(ctx, job.ID, err)
		return
	}

	transcript, err := p.runTranscription(ctx, job)
	if err != nil {
		p.finalizeFailure(ctx, job.ID, err)
		return
	}

	if _, err := p.registry.UpdateJobStatus(ctx, job.ID, model.JobStatusCompleted, ""); err != nil {
		p.finalizeFailure(ctx, job.ID, err)
		return
	}

	p.metrics.JobsCompleted.Inc()
	p.logger.Info("job completed",
		zap.String("job_id", job.ID),
		zap.String("recording_id", job.RecordingID),
		zap.Int("transcript_chars", len(transcript)))
}

// runTranscription drives the speech engine for one job and stores the
// transcript on the recording.
func (p *Processor) runTranscription(ctx context.Context, job *model.TranscriptionJob) (string, error) {
	rec, err := p.recordings.GetRecordingByID(ctx, job.RecordingID)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", apperrors.NewNotFoundError("recording", job.RecordingID)
	}

	handle, err := p.engine.Start(ctx, speech.Request{
		RecordingID:   job.RecordingID,
		AudioLocation: rec.AudioPath,
		LanguageCode:  job.LanguageCode,
	})
	if err != nil {
		return "", err
	}

	// Best effort: keep the engine handle on the job for debugging.
	if err := p.registry.UpdateJobMetadata(ctx, job.ID, map[string]interface{}{"engine_handle": string(handle)}); err != nil {
		p.logger.Warn("could not record engine handle",
			zap.String("job_id", job.ID), zap.Error(err))
	}

	transcript, err := p.await(ctx, handle)
	if err != nil {
		return "", err
	}

	if err := p.recordings.SetTranscript(ctx, job.RecordingID, transcript); err != nil {
		return "", err
	}
	return transcript, nil
}

// await polls the engine until the task leaves the processing state.
func (p *Processor) await(ctx context.Context, handle speech.Handle) (string, error) {
	for {
		st, err := p.engine.Status(ctx, handle)
		if err != nil {
			return "", err
		}

		switch st.State {
		case speech.StateCompleted:
			return p.engine.Result(ctx, handle)
		case speech.StateFailed:
			msg := st.ErrorMessage
			if msg == "" {
				msg = "transcription failed"
			}
			return "", apperrors.New(msg)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(p.statusPollInterval()):
		}
	}
}

// finalizeFailure records the error on the job. A second failure here, for
// example a job cancelled underneath us, is logged and swallowed so the
// scheduler and sibling jobs keep running.
func (p *Processor) finalizeFailure(ctx context.Context, jobID string, cause error) {
	p.metrics.JobsFailed.Inc()
	p.logger.Error("job failed", zap.String("job_id", jobID), zap.Error(cause))

	if _, err := p.registry.UpdateJobStatus(ctx, jobID, model.JobStatusFailed, cause.Error()); err != nil {
		p.logger.Error("could not mark job failed",
			zap.String("job_id", jobID), zap.Error(err))
	}
}
