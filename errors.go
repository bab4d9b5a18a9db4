package toolbox

import (
	"errors"
	"fmt"
)

// Sentinel dispatch errors. Use errors.Is to check. These are captured in
// Outcome.Err and surfaced to the model as tool messages; Execute never
// returns them.
var (
	ErrUnsupportedCallType = errors.New("unsupported tool call type")
	ErrNotRegistered       = errors.New("function not registered")
	ErrNotExecutable       = errors.New("function has no executable")
	ErrMalformedArguments  = errors.New("malformed arguments payload")
)

// ConfigError reports a programming mistake in the host's registration code
// (unknown schema type, missing struct field, untranslatable Go type). It is
// returned synchronously from the registration call that caused it and is
// never produced during dispatch.
type ConfigError struct {
	Function string // target function name
	Param    string // offending parameter, if any
	Reason   string
}

func (e *ConfigError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("invalid tool configuration: function %q parameter %q: %s", e.Function, e.Param, e.Reason)
	}
	return fmt.Sprintf("invalid tool configuration: function %q: %s", e.Function, e.Reason)
}

// ExecutionError wraps an error raised by the executable itself, including
// argument-binding and validation failures and recovered panics. Error()
// reports only the underlying message, so the text forwarded to the model
// stays clean.
type ExecutionError struct {
	Err error
}

func (e *ExecutionError) Error() string { return e.Err.Error() }

// Unwrap supports errors.Is/errors.As on the wrapped cause.
func (e *ExecutionError) Unwrap() error { return e.Err }

// IsConfigError returns true if err is or wraps a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsExecutionError returns true if err is or wraps an ExecutionError.
func IsExecutionError(err error) bool {
	var ee *ExecutionError
	return errors.As(err, &ee)
}

// panicError wraps a recovered panic value so it can travel as an error
// inside ExecutionError.
type panicError struct{ p any }

func (e *panicError) Error() string {
	return "panic: " + fmt.Sprint(e.p)
}
