package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/Iron-Ham/stopsignal/internal/errors"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "timing.stimulus_ms")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// exportPrefixRegex keeps exported file names portable
var exportPrefixRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	// Validate Task config
	errors = append(errors, c.validateTask()...)

	// Validate Timing config
	errors = append(errors, c.validateTiming()...)

	// Validate Staircase config
	errors = append(errors, c.validateStaircase()...)

	// Validate Export config
	errors = append(errors, c.validateExport()...)

	// Validate Logging config
	errors = append(errors, c.validateLogging()...)

	// Field checks passed; make sure the combination yields a runnable session
	if len(errors) == 0 {
		if err := c.Params().Validate(); err != nil {
			errors = append(errors, fromConfigurationError(err))
		}
	}

	return errors
}

// fromConfigurationError converts a domain configuration error into a ValidationError
func fromConfigurationError(err error) ValidationError {
	var cfgErr *errors.ConfigurationError
	if errors.As(err, &cfgErr) {
		msg := cfgErr.Error()
		if cause := cfgErr.Unwrap(); cause != nil {
			msg = cause.Error()
		}
		if cfgErr.Detail != "" {
			msg += ": " + cfgErr.Detail
		}
		return ValidationError{Field: cfgErr.Field, Value: cfgErr.Value, Message: msg}
	}
	return ValidationError{Field: "task", Value: nil, Message: err.Error()}
}

// validateTask validates the TaskConfig
func (c *Config) validateTask() []ValidationError {
	var errors []ValidationError

	if c.Task.TrialsPerSet < 1 {
		errors = append(errors, ValidationError{
			Field:   "task.trials_per_set",
			Value:   c.Task.TrialsPerSet,
			Message: "must be at least 1",
		})
	}
	if c.Task.TotalSets < 1 {
		errors = append(errors, ValidationError{
			Field:   "task.total_sets",
			Value:   c.Task.TotalSets,
			Message: "must be at least 1",
		})
	}

	proportions := []struct {
		name  string
		value float64
	}{
		{"congruent_go", c.Task.Proportions.CongruentGo},
		{"incongruent_go", c.Task.Proportions.IncongruentGo},
		{"nogo", c.Task.Proportions.NoGo},
		{"stop", c.Task.Proportions.Stop},
	}
	sum := 0.0
	for _, p := range proportions {
		if p.value < 0 || p.value > 1 {
			errors = append(errors, ValidationError{
				Field:   "task.proportions." + p.name,
				Value:   p.value,
				Message: "must be between 0 and 1",
			})
		}
		sum += p.value
	}
	if sum > 1+1e-9 {
		errors = append(errors, ValidationError{
			Field:   "task.proportions",
			Value:   sum,
			Message: "must not sum above 1",
		})
	}

	return errors
}

// validateTiming validates the TimingConfig
func (c *Config) validateTiming() []ValidationError {
	var errors []ValidationError

	positive := []struct {
		field string
		value int
	}{
		{"timing.isi_mean_ms", c.Timing.ISIMeanMs},
		{"timing.fixation_ms", c.Timing.FixationMs},
		{"timing.stimulus_ms", c.Timing.StimulusMs},
		{"timing.inter_trial_ms", c.Timing.InterTrialMs},
	}
	for _, p := range positive {
		if p.value <= 0 {
			errors = append(errors, ValidationError{Field: p.field, Value: p.value, Message: "must be positive"})
		}
	}

	if c.Timing.ISISDMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "timing.isi_sd_ms",
			Value:   c.Timing.ISISDMs,
			Message: "must be non-negative",
		})
	}
	if c.Timing.ISIFloorMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "timing.isi_floor_ms",
			Value:   c.Timing.ISIFloorMs,
			Message: "must be non-negative",
		})
	}

	// A terminal cannot usefully repaint faster than this
	const minFrameRate = 10
	const maxFrameRate = 240
	if c.Timing.FrameRate < minFrameRate || c.Timing.FrameRate > maxFrameRate {
		errors = append(errors, ValidationError{
			Field:   "timing.frame_rate",
			Value:   c.Timing.FrameRate,
			Message: fmt.Sprintf("must be between %d and %d", minFrameRate, maxFrameRate),
		})
	}

	return errors
}

// validateStaircase validates the StaircaseConfig
func (c *Config) validateStaircase() []ValidationError {
	var errors []ValidationError

	if c.Staircase.StepMs <= 0 {
		errors = append(errors, ValidationError{
			Field:   "staircase.step_ms",
			Value:   c.Staircase.StepMs,
			Message: "must be positive",
		})
	}
	if c.Staircase.MinMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "staircase.min_ms",
			Value:   c.Staircase.MinMs,
			Message: "must be non-negative",
		})
	}
	if c.Staircase.MaxMs < c.Staircase.MinMs {
		errors = append(errors, ValidationError{
			Field:   "staircase.max_ms",
			Value:   c.Staircase.MaxMs,
			Message: "must not be below staircase.min_ms",
		})
	}
	if c.Staircase.InitialMs < c.Staircase.MinMs || c.Staircase.InitialMs > c.Staircase.MaxMs {
		errors = append(errors, ValidationError{
			Field:   "staircase.initial_ms",
			Value:   c.Staircase.InitialMs,
			Message: "must lie within [min_ms, max_ms]",
		})
	}

	return errors
}

// validateExport validates the ExportConfig
func (c *Config) validateExport() []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(c.Export.Dir) == "" {
		errors = append(errors, ValidationError{
			Field:   "export.dir",
			Value:   c.Export.Dir,
			Message: "must not be empty",
		})
	}
	if !exportPrefixRegex.MatchString(c.Export.Prefix) {
		errors = append(errors, ValidationError{
			Field:   "export.prefix",
			Value:   c.Export.Prefix,
			Message: "must start with a letter or digit and contain only letters, digits, hyphens, and underscores",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	// Validate log level
	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	// Max size must be positive
	if c.Logging.MaxSizeMB <= 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be positive",
		})
	}

	// Reasonable upper bound for log file size
	const maxLogSizeMB = 1000 // 1GB
	if c.Logging.MaxSizeMB > maxLogSizeMB {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	// Max backups must be non-negative
	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}
