package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityDebug, "debug"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfigurationError(t *testing.T) {
	err := NewConfigurationError("task.trials_per_set", 4, ErrBlockTooSmall).
		WithDetail("nogo count is %d", 0)

	if !errors.Is(err, ErrBlockTooSmall) {
		t.Error("errors.Is(err, ErrBlockTooSmall) = false, want true")
	}
	if errors.Is(err, ErrInvalidProportions) {
		t.Error("errors.Is(err, ErrInvalidProportions) = true, want false")
	}

	msg := err.Error()
	for _, want := range []string{"task.trials_per_set=4", "block too small", "nogo count is 0"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}

	wrapped := fmt.Errorf("startup: %w", err)
	var cfgErr *ConfigurationError
	if !As(wrapped, &cfgErr) {
		t.Fatal("As() failed to find ConfigurationError through wrapping")
	}
	if cfgErr.Field != "task.trials_per_set" {
		t.Errorf("Field = %q, want %q", cfgErr.Field, "task.trials_per_set")
	}
}

func TestStateError(t *testing.T) {
	err := NewStateError("export", "stimulus", ErrExportNotReady)

	if !Is(err, ErrExportNotReady) {
		t.Error("Is(err, ErrExportNotReady) = false, want true")
	}
	want := "export refused in state stimulus: session has not ended"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestGetSeverity(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Severity
	}{
		{"nil", nil, SeverityDebug},
		{"no active trial", NewStateError("finalize", "intro", ErrNoActiveTrial), SeverityDebug},
		{"export not ready", NewStateError("export", "break", ErrExportNotReady), SeverityWarning},
		{"configuration", NewConfigurationError("x", 1, ErrInvalidTiming), SeverityError},
		{"plain", New("boom"), SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetSeverity(tt.err); got != tt.want {
				t.Errorf("GetSeverity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsUserFacing(t *testing.T) {
	if !IsUserFacing(NewConfigurationError("x", 1, ErrInvalidStaircase)) {
		t.Error("configuration errors should be user facing")
	}
	if IsUserFacing(NewStateError("export", "intro", ErrExportNotReady)) {
		t.Error("state errors should not be user facing")
	}
	if IsUserFacing(nil) {
		t.Error("nil should not be user facing")
	}
}
