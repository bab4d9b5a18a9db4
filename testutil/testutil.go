// Package testutil provides test helpers for toolbox hosts: tool-call
// builders and canned handlers.
package testutil

import (
	"context"
	"sync"

	openai "github.com/sashabaranov/go-openai"
	"github.com/skosovsky/toolbox"
)

// Call builds a function-type tool call with a JSON arguments payload.
func Call(id, name, args string) openai.ToolCall {
	return openai.ToolCall{
		ID:   id,
		Type: openai.ToolTypeFunction,
		Function: openai.FunctionCall{
			Name:      name,
			Arguments: args,
		},
	}
}

// StaticHandler returns a handler that ignores its arguments and always
// returns value and err.
func StaticHandler(value any, err error) toolbox.Handler {
	return func(context.Context, map[string]any) (any, error) {
		return value, err
	}
}

// Recorder is a handler that records every argument map it receives and
// replies with fixed values. Safe for concurrent use.
type Recorder struct {
	Value any
	Err   error

	mu    sync.Mutex
	calls []map[string]any
}

// Handler returns the recording handler function.
func (r *Recorder) Handler() toolbox.Handler {
	return func(_ context.Context, args map[string]any) (any, error) {
		r.mu.Lock()
		r.calls = append(r.calls, args)
		r.mu.Unlock()
		return r.Value, r.Err
	}
}

// Calls returns a copy of the recorded argument maps, in call order.
func (r *Recorder) Calls() []map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]map[string]any, len(r.calls))
	copy(out, r.calls)
	return out
}
