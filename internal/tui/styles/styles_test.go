package styles

import (
	"testing"

	"github.com/Iron-Ham/stopsignal/internal/trial"
)

func TestSignalColor(t *testing.T) {
	tests := []struct {
		signal   trial.Signal
		expected string
	}{
		{trial.SignalNeutral, "#FFFFFF"},
		{trial.SignalInhibit, "#3B82F6"},
		{trial.Signal("unknown"), "#FFFFFF"}, // Should fall back to neutral
	}

	for _, tt := range tests {
		t.Run(string(tt.signal), func(t *testing.T) {
			got := SignalColor(tt.signal)
			if string(got) != tt.expected {
				t.Errorf("SignalColor(%q) = %q, want %q", tt.signal, got, tt.expected)
			}
		})
	}
}

func TestFrame(t *testing.T) {
	if got := Frame(trial.SignalInhibit).GetForeground(); got != InhibitColor {
		t.Errorf("Frame(inhibit) foreground = %v, want %v", got, InhibitColor)
	}
	if got := Frame(trial.SignalNeutral).GetForeground(); got != NeutralColor {
		t.Errorf("Frame(neutral) foreground = %v, want %v", got, NeutralColor)
	}
}
