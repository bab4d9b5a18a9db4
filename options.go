package toolbox

import (
	"context"
	"log/slog"
	"reflect"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// options hold Toolbox-wide settings.
type options struct {
	logger          *slog.Logger
	permissiveTypes bool
	recoverPanics   bool
	maxConcurrency  int
	onBefore        func(context.Context, openai.ToolCall)
	onAfter         func(context.Context, openai.ToolCall, Outcome, time.Duration)
}

// Option configures a Toolbox (e.g. WithLogger, WithPermissiveTypes).
type Option func(*options)

// WithLogger sets a structured logger for dispatch events. Without it the
// toolbox is silent.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
	}
}

// WithPermissiveTypes makes unrecognized Go types translate to "string"
// instead of failing the registration. Off by default: an untranslatable
// type is a ConfigError.
func WithPermissiveTypes() Option {
	return func(o *options) {
		o.permissiveTypes = true
	}
}

// WithRecoverPanics controls panic recovery around executable invocation
// (on by default; a recovered panic becomes an ExecutionError outcome).
func WithRecoverPanics(enable bool) Option {
	return func(o *options) {
		o.recoverPanics = enable
	}
}

// WithMaxConcurrency limits concurrent invocations in ExecuteParallel.
// Pass 0 or negative to run every call of a batch at once.
func WithMaxConcurrency(n int) Option {
	return func(o *options) {
		o.maxConcurrency = n
	}
}

// WithOnBeforeDispatch sets a hook called before each tool call is resolved.
func WithOnBeforeDispatch(fn func(context.Context, openai.ToolCall)) Option {
	return func(o *options) {
		o.onBefore = fn
	}
}

// WithOnAfterDispatch sets a hook called after each tool call with its
// outcome and duration.
func WithOnAfterDispatch(fn func(context.Context, openai.ToolCall, Outcome, time.Duration)) Option {
	return func(o *options) {
		o.onAfter = fn
	}
}

// paramConfig collects ParameterOption state before the Parameter call
// resolves it into a Parameter.
type paramConfig struct {
	typ         SchemaType
	hint        reflect.Type
	description string
	optional    bool
	enum        []any
}

// ParameterOption configures a single Parameter declaration.
type ParameterOption func(*paramConfig)

// WithType sets the schema type explicitly, skipping inference.
func WithType(t SchemaType) ParameterOption {
	return func(c *paramConfig) {
		c.typ = t
	}
}

// WithTypeOf derives the schema type from the Go type of v (e.g.
// WithTypeOf(0) → integer, WithTypeOf([]string(nil)) → array), using the
// toolbox's type mapping.
func WithTypeOf(v any) ParameterOption {
	return func(c *paramConfig) {
		c.hint = reflect.TypeOf(v)
	}
}

// WithDescription sets the parameter's human-readable description.
func WithDescription(description string) ParameterOption {
	return func(c *paramConfig) {
		c.description = description
	}
}

// WithOptional marks the parameter as not required. Parameters are required
// by default.
func WithOptional() ParameterOption {
	return func(c *paramConfig) {
		c.optional = true
	}
}

// WithEnum constrains the parameter to the given literal values
// (strings, numbers, or booleans).
func WithEnum(values ...any) ParameterOption {
	return func(c *paramConfig) {
		c.enum = values
	}
}
