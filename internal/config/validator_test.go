package config

import (
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{
		Field:   "test.field",
		Value:   123,
		Message: "must be greater than zero",
	}

	expected := "test.field: must be greater than zero (got: 123)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Run("empty errors", func(t *testing.T) {
		var errs ValidationErrors
		if errs.Error() != "" {
			t.Errorf("Error() for empty = %q, want empty string", errs.Error())
		}
	})

	t.Run("single error", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "test.field", Value: 123, Message: "is invalid"},
		}
		expected := "test.field: is invalid (got: 123)"
		if errs.Error() != expected {
			t.Errorf("Error() = %q, want %q", errs.Error(), expected)
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "field1", Value: "bad", Message: "is invalid"},
			{Field: "field2", Value: -1, Message: "must be positive"},
		}
		result := errs.Error()
		if !strings.Contains(result, "2 validation errors") {
			t.Errorf("Error() should mention 2 errors: %s", result)
		}
		if !strings.Contains(result, "field1") || !strings.Contains(result, "field2") {
			t.Errorf("Error() should mention both fields: %s", result)
		}
	})
}

func TestConfig_Validate_DefaultConfig(t *testing.T) {
	cfg := Default()
	errs := cfg.Validate()
	if len(errs) != 0 {
		t.Errorf("default config should be valid, got errors: %v", errs)
	}
}

func hasField(errs []ValidationError, field string) bool {
	for _, err := range errs {
		if err.Field == field {
			return true
		}
	}
	return false
}

func TestConfig_Validate_Fields(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"zero trials", func(c *Config) { c.Task.TrialsPerSet = 0 }, "task.trials_per_set"},
		{"zero sets", func(c *Config) { c.Task.TotalSets = 0 }, "task.total_sets"},
		{"negative proportion", func(c *Config) { c.Task.Proportions.NoGo = -0.1 }, "task.proportions.nogo"},
		{"proportion above one", func(c *Config) { c.Task.Proportions.Stop = 1.5 }, "task.proportions.stop"},
		{"proportions sum above one", func(c *Config) { c.Task.Proportions.CongruentGo = 0.8 }, "task.proportions"},
		{"zero stimulus", func(c *Config) { c.Timing.StimulusMs = 0 }, "timing.stimulus_ms"},
		{"zero fixation", func(c *Config) { c.Timing.FixationMs = 0 }, "timing.fixation_ms"},
		{"negative isi sd", func(c *Config) { c.Timing.ISISDMs = -1 }, "timing.isi_sd_ms"},
		{"negative isi floor", func(c *Config) { c.Timing.ISIFloorMs = -5 }, "timing.isi_floor_ms"},
		{"frame rate too low", func(c *Config) { c.Timing.FrameRate = 5 }, "timing.frame_rate"},
		{"frame rate too high", func(c *Config) { c.Timing.FrameRate = 1000 }, "timing.frame_rate"},
		{"zero step", func(c *Config) { c.Staircase.StepMs = 0 }, "staircase.step_ms"},
		{"max below min", func(c *Config) { c.Staircase.MaxMs = 10 }, "staircase.max_ms"},
		{"initial above max", func(c *Config) { c.Staircase.InitialMs = 950 }, "staircase.initial_ms"},
		{"empty export dir", func(c *Config) { c.Export.Dir = " " }, "export.dir"},
		{"bad export prefix", func(c *Config) { c.Export.Prefix = "../escape" }, "export.prefix"},
		{"bad log level", func(c *Config) { c.Logging.Level = "INFO" }, "logging.level"},
		{"zero log size", func(c *Config) { c.Logging.MaxSizeMB = 0 }, "logging.max_size_mb"},
		{"huge log size", func(c *Config) { c.Logging.MaxSizeMB = 5000 }, "logging.max_size_mb"},
		{"negative backups", func(c *Config) { c.Logging.MaxBackups = -1 }, "logging.max_backups"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			errs := cfg.Validate()
			if !hasField(errs, tt.field) {
				t.Errorf("expected error for %s, got %v", tt.field, errs)
			}
		})
	}
}

func TestConfig_Validate_Logging(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", ""} {
		cfg := Default()
		cfg.Logging.Level = level
		if hasField(cfg.Validate(), "logging.level") {
			t.Errorf("level %q should be valid", level)
		}
	}
}

func TestConfig_Validate_BlockComposition(t *testing.T) {
	t.Run("block too small", func(t *testing.T) {
		cfg := Default()
		cfg.Task.TrialsPerSet = 7
		errs := cfg.Validate()
		if len(errs) != 1 || errs[0].Field != "task.trials_per_set" {
			t.Fatalf("errs = %v", errs)
		}
		if !strings.Contains(errs[0].Message, "would get no trials") {
			t.Errorf("Message = %q", errs[0].Message)
		}
	})

	t.Run("smallest valid block", func(t *testing.T) {
		cfg := Default()
		cfg.Task.TrialsPerSet = 8
		if errs := cfg.Validate(); len(errs) != 0 {
			t.Errorf("8 trials should be valid, got %v", errs)
		}
	})

	t.Run("zero proportion types allowed", func(t *testing.T) {
		cfg := Default()
		cfg.Task.Proportions.NoGo = 0
		cfg.Task.TrialsPerSet = 4
		cfg.Task.Proportions.CongruentGo = 0.5
		cfg.Task.Proportions.IncongruentGo = 0.25
		cfg.Task.Proportions.Stop = 0.25
		if errs := cfg.Validate(); len(errs) != 0 {
			t.Errorf("errs = %v", errs)
		}
	})
}

func TestValidLogLevels(t *testing.T) {
	levels := ValidLogLevels()
	expected := []string{"debug", "info", "warn", "error"}

	if len(levels) != len(expected) {
		t.Fatalf("ValidLogLevels() returned %d levels, want %d", len(levels), len(expected))
	}
	for i, level := range expected {
		if levels[i] != level {
			t.Errorf("ValidLogLevels()[%d] = %q, want %q", i, levels[i], level)
		}
	}
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := Default()
	cfg.Timing.StimulusMs = -1
	cfg.Logging.Level = "verbose"
	cfg.Export.Prefix = ""

	errs := cfg.Validate()
	if len(errs) < 3 {
		t.Errorf("expected at least 3 errors, got %d: %v", len(errs), errs)
	}
}
