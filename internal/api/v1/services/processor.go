package services

import (
	"context"
	"time"

	"github.com/samratjha96/bakbak-sub001/internal/api/v1/dto"
	"github.com/samratjha96/bakbak-sub001/internal/app/jobs"
)

// ProcessorServiceImpl implements ProcessorService
type ProcessorServiceImpl struct {
	control ProcessorControl
}

// NewProcessorService creates a new processor service
func NewProcessorService(control ProcessorControl) ProcessorService {
	return &ProcessorServiceImpl{control: control}
}

func (s *ProcessorServiceImpl) status() *dto.ProcessorStatusResponse {
	cfg := s.control.Config()
	return &dto.ProcessorStatusResponse{
		Running:           s.control.IsRunning(),
		ActiveJobs:        s.control.ActiveJobCount(),
		PollingIntervalMs: cfg.PollInterval.Milliseconds(),
		Concurrency:       cfg.Concurrency,
	}
}

// Status reports whether the processor is running and what it is doing
func (s *ProcessorServiceImpl) Status(ctx context.Context) (*dto.ProcessorStatusResponse, error) {
	return s.status(), nil
}

// Configure applies new polling settings. A running processor reschedules
// immediately without replaying missed ticks.
func (s *ProcessorServiceImpl) Configure(ctx context.Context, req *dto.ProcessorConfigRequest) (*dto.ProcessorStatusResponse, error) {
	var update jobs.ConfigUpdate
	if req.PollingIntervalMs != nil {
		interval := time.Duration(*req.PollingIntervalMs) * time.Millisecond
		update.PollInterval = &interval
	}
	if req.Concurrency != nil {
		update.Concurrency = req.Concurrency
	}

	s.control.UpdateConfig(update)
	return s.status(), nil
}

// Start launches the processor. Starting a running processor is a no-op.
func (s *ProcessorServiceImpl) Start(ctx context.Context) (*dto.ProcessorStatusResponse, error) {
	s.control.Start()
	return s.status(), nil
}

// Stop halts the scheduler. In-flight jobs finish on their own.
func (s *ProcessorServiceImpl) Stop(ctx context.Context) (*dto.ProcessorStatusResponse, error) {
	s.control.Stop()
	return s.status(), nil
}
