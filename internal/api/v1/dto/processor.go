package dto

import (
	"github.com/samratjha96/bakbak-sub001/internal/api/errors"
)

// ProcessorStatusResponse reports the job processor's live state.
type ProcessorStatusResponse struct {
	Running           bool  `json:"running"`
	ActiveJobs        int   `json:"active_jobs"`
	PollingIntervalMs int64 `json:"polling_interval_ms"`
	Concurrency       int   `json:"concurrency"`
}

// ProcessorConfigRequest updates the processor's settings. Omitted fields
// keep their current values.
type ProcessorConfigRequest struct {
	PollingIntervalMs *int64 `json:"polling_interval_ms,omitempty"`
	Concurrency       *int   `json:"concurrency,omitempty"`
}

// Validate performs domain-specific validation
func (r *ProcessorConfigRequest) Validate() error {
	validationErrors := make(map[string]string)

	if r.PollingIntervalMs == nil && r.Concurrency == nil {
		validationErrors["request"] = "no settings provided"
	}
	if r.PollingIntervalMs != nil && *r.PollingIntervalMs <= 0 {
		validationErrors["polling_interval_ms"] = "must be positive"
	}
	if r.Concurrency != nil && *r.Concurrency <= 0 {
		validationErrors["concurrency"] = "must be positive"
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Invalid processor configuration", validationErrors)
	}
	return nil
}
