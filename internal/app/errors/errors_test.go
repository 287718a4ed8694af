package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/samratjha96/bakbak-sub001/internal/app/model"
)

func TestNotFoundErrorMatching(t *testing.T) {
	err := NewNotFoundError("job", "abc-123")

	if !IsNotFound(err) {
		t.Error("IsNotFound should match a NotFoundError")
	}
	if IsNotFound(New("something else")) {
		t.Error("IsNotFound should not match unrelated errors")
	}

	wrapped := fmt.Errorf("update failed: %w", err)
	if !IsNotFound(wrapped) {
		t.Error("IsNotFound should match a wrapped NotFoundError")
	}

	var nf *NotFoundError
	if !errors.As(wrapped, &nf) {
		t.Fatal("errors.As should extract the NotFoundError")
	}
	if nf.Resource != "job" || nf.ID != "abc-123" {
		t.Errorf("unexpected fields: %+v", nf)
	}
}

func TestInvalidTransitionErrorMatching(t *testing.T) {
	err := NewInvalidTransitionError("abc-123", model.JobStatusCompleted, model.JobStatusInProgress)

	if !IsInvalidTransition(err) {
		t.Error("IsInvalidTransition should match an InvalidTransitionError")
	}
	if IsNotFound(err) {
		t.Error("IsNotFound should not match an InvalidTransitionError")
	}

	want := "invalid status transition for job abc-123: completed -> in_progress"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestExternalErrorUnwrap(t *testing.T) {
	cause := New("connection refused")
	err := NewExternalError("transcription", cause)

	if !IsExternal(err) {
		t.Error("IsExternal should match an ExternalError")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should see through to the cause")
	}
}

func TestWrapPreservesNil(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}
}
