// Package errors provides the error definitions shared by the task packages.
//
// # Error Types
//
// Configuration errors describe parameter sets that can never produce a valid
// block (proportions that over-allocate a block, blocks too small to hold every
// trial type). They are raised at generation time and at startup validation.
//
// State errors describe misuse of the experiment state machine, such as
// finalizing a response with no active trial or exporting before the session
// has ended. The machine recovers from most of them as no-ops; they exist so
// that callers and tests can tell what was refused.
//
// # Usage
//
//	if errors.Is(err, errors.ErrExportNotReady) { ... }
//
//	var cfgErr *errors.ConfigurationError
//	if errors.As(err, &cfgErr) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Configuration sentinel errors
var (
	// ErrInvalidProportions indicates trial-type proportions outside [0,1] or summing above 1.
	ErrInvalidProportions = New("invalid trial proportions")
	// ErrBlockTooSmall indicates a block size that leaves some trial type with zero trials.
	ErrBlockTooSmall = New("block too small for trial proportions")
	// ErrInvalidTiming indicates a non-positive phase duration or frame rate.
	ErrInvalidTiming = New("invalid timing parameter")
	// ErrInvalidStaircase indicates inconsistent stop-signal delay bounds.
	ErrInvalidStaircase = New("invalid staircase bounds")
)

// State machine sentinel errors
var (
	// ErrNoActiveTrial indicates a response was finalized while no trial was running.
	ErrNoActiveTrial = New("no active trial")
	// ErrExportNotReady indicates an export was requested before the session ended.
	ErrExportNotReady = New("session has not ended")
	// ErrAlreadyExported indicates the one-time export has already happened.
	ErrAlreadyExported = New("session already exported")
)

// -----------------------------------------------------------------------------
// Typed Errors
// -----------------------------------------------------------------------------

// ConfigurationError reports an impossible parameter set.
//
// Example:
//
//	err := errors.NewConfigurationError("task.trials_per_set", 4, errors.ErrBlockTooSmall)
//	fmt.Println(err) // "configuration error [task.trials_per_set=4]: block too small for trial proportions"
type ConfigurationError struct {
	Field  string
	Value  any
	Detail string
	cause  error
}

// NewConfigurationError creates a ConfigurationError for the given field.
func NewConfigurationError(field string, value any, cause error) *ConfigurationError {
	return &ConfigurationError{Field: field, Value: value, cause: cause}
}

// WithDetail attaches a human-readable explanation.
func (e *ConfigurationError) WithDetail(format string, args ...any) *ConfigurationError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Error returns the formatted error message.
func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("configuration error [%s=%v]", e.Field, e.Value)
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// Unwrap returns the sentinel cause.
func (e *ConfigurationError) Unwrap() error {
	return e.cause
}

// StateError reports an operation refused by the experiment state machine.
type StateError struct {
	Op    string
	State string
	cause error
}

// NewStateError creates a StateError for op attempted in state.
func NewStateError(op, state string, cause error) *StateError {
	return &StateError{Op: op, State: state, cause: cause}
}

// Error returns the formatted error message.
func (e *StateError) Error() string {
	return fmt.Sprintf("%s refused in state %s: %v", e.Op, e.State, e.cause)
}

// Unwrap returns the sentinel cause.
func (e *StateError) Unwrap() error {
	return e.cause
}

// -----------------------------------------------------------------------------
// Classification
// -----------------------------------------------------------------------------

// GetSeverity classifies err. State errors are recoverable and therefore
// reported at debug level; configuration errors abort startup.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}
	var stateErr *StateError
	if As(err, &stateErr) {
		if Is(err, ErrExportNotReady) {
			return SeverityWarning
		}
		return SeverityDebug
	}
	var cfgErr *ConfigurationError
	if As(err, &cfgErr) {
		return SeverityError
	}
	return SeverityError
}

// IsUserFacing reports whether err may be shown to the operator. Only
// configuration errors qualify; they surface before the participant screens.
func IsUserFacing(err error) bool {
	var cfgErr *ConfigurationError
	return As(err, &cfgErr)
}
