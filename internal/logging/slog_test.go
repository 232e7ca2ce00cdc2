package logging

import (
	"errors"
	"log/slog"
	"testing"
)

func TestWithComponent(t *testing.T) {
	logger := slog.Default()
	result := WithComponent(logger, "attendance")
	if result == nil {
		t.Error("WithComponent returned nil")
	}
}

func TestOperationAttr(t *testing.T) {
	attr := Operation("calendar_sync")
	if attr.Key != KeyOperation {
		t.Errorf("Operation key = %q, want %q", attr.Key, KeyOperation)
	}
	if attr.Value.String() != "calendar_sync" {
		t.Errorf("Operation value = %q, want %q", attr.Value.String(), "calendar_sync")
	}
}

func TestStatusAttr(t *testing.T) {
	attr := Status(StatusSuccess)
	if attr.Key != KeyStatus {
		t.Errorf("Status key = %q, want %q", attr.Key, KeyStatus)
	}
	if attr.Value.String() != StatusSuccess {
		t.Errorf("Status value = %q, want %q", attr.Value.String(), StatusSuccess)
	}
}

func TestErrWithError(t *testing.T) {
	testErr := errors.New("boom")
	attr := Err(testErr)
	if attr.Key != KeyError {
		t.Errorf("Err key = %q, want %q", attr.Key, KeyError)
	}
	if attr.Value.String() != "boom" {
		t.Errorf("Err value = %q, want %q", attr.Value.String(), "boom")
	}
}

func TestErrWithNil(t *testing.T) {
	attr := Err(nil)
	// A nil error should produce an empty group that slog omits.
	if attr.Key != "" {
		t.Errorf("Err(nil) key = %q, want empty", attr.Key)
	}
}

func TestAnonymizeIdentifier(t *testing.T) {
	hash := AnonymizeIdentifier("jane.doe@example.com")
	if hash == "" {
		t.Fatal("expected non-empty hash")
	}
	if hash == "jane.doe@example.com" {
		t.Error("identifier was not anonymized")
	}
	// Deterministic for correlation.
	if hash != AnonymizeIdentifier("jane.doe@example.com") {
		t.Error("hash is not deterministic")
	}
	if AnonymizeIdentifier("") != "" {
		t.Error("empty identifier should produce empty hash")
	}
}
