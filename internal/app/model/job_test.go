package model

import (
	"testing"
)

func TestJobStatusValid(t *testing.T) {
	tests := []struct {
		status JobStatus
		want   bool
	}{
		{JobStatusPending, true},
		{JobStatusInProgress, true},
		{JobStatusCompleted, true},
		{JobStatusFailed, true},
		{JobStatusCancelled, true},
		{JobStatus(""), false},
		{JobStatus("running"), false},
		{JobStatus("PENDING"), false},
	}

	for _, tt := range tests {
		if got := tt.status.Valid(); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestJobStatusTerminal(t *testing.T) {
	tests := []struct {
		status JobStatus
		want   bool
	}{
		{JobStatusPending, false},
		{JobStatusInProgress, false},
		{JobStatusCompleted, true},
		{JobStatusFailed, true},
		{JobStatusCancelled, true},
	}

	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.want {
			t.Errorf("Terminal(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestJobStatusCanTransitionTo(t *testing.T) {
	all := []JobStatus{
		JobStatusPending,
		JobStatusInProgress,
		JobStatusCompleted,
		JobStatusFailed,
		JobStatusCancelled,
	}

	legal := map[JobStatus][]JobStatus{
		JobStatusPending:    {JobStatusInProgress, JobStatusCancelled},
		JobStatusInProgress: {JobStatusCompleted, JobStatusFailed, JobStatusCancelled},
		JobStatusCompleted:  {},
		JobStatusFailed:     {},
		JobStatusCancelled:  {},
	}

	for _, from := range all {
		allowed := make(map[JobStatus]bool)
		for _, to := range legal[from] {
			allowed[to] = true
		}
		for _, to := range all {
			if got := from.CanTransitionTo(to); got != allowed[to] {
				t.Errorf("CanTransitionTo(%q -> %q) = %v, want %v", from, to, got, allowed[to])
			}
		}
	}
}

func TestTerminalStatesRejectAllTransitions(t *testing.T) {
	terminals := []JobStatus{JobStatusCompleted, JobStatusFailed, JobStatusCancelled}
	targets := []JobStatus{
		JobStatusPending,
		JobStatusInProgress,
		JobStatusCompleted,
		JobStatusFailed,
		JobStatusCancelled,
	}

	for _, from := range terminals {
		for _, to := range targets {
			if from.CanTransitionTo(to) {
				t.Errorf("terminal state %q must not transition to %q", from, to)
			}
		}
	}
}
