package toolbox

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Execute dispatches a batch of tool calls sequentially and returns one
// Outcome per call, in call order. No call's failure affects another's
// processing, and nothing here returns an error to the caller: every
// dispatch or execution problem is captured in its Outcome. Each call is
// attempted exactly once.
func (b *Toolbox) Execute(ctx context.Context, calls []openai.ToolCall) []Outcome {
	outcomes := make([]Outcome, len(calls))
	for i, call := range calls {
		outcomes[i] = b.dispatch(ctx, call)
	}
	return outcomes
}

// ExecuteParallel dispatches the batch with up to WithMaxConcurrency calls
// in flight at once. The returned outcomes still match the input order:
// each call writes its own slot.
func (b *Toolbox) ExecuteParallel(ctx context.Context, calls []openai.ToolCall) []Outcome {
	outcomes := make([]Outcome, len(calls))
	if len(calls) == 0 {
		return outcomes
	}
	var sem chan struct{}
	if n := b.opts.maxConcurrency; n > 0 {
		sem = make(chan struct{}, n)
	}
	var wg sync.WaitGroup
	for i, call := range calls {
		wg.Go(func() {
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			outcomes[i] = b.dispatch(ctx, call)
		})
	}
	wg.Wait()
	return outcomes
}

// dispatch runs one call through the pipeline and fires logging and hooks
// around it.
func (b *Toolbox) dispatch(ctx context.Context, call openai.ToolCall) Outcome {
	if b.opts.onBefore != nil {
		b.opts.onBefore(ctx, call)
	}
	if b.opts.logger != nil {
		b.opts.logger.InfoContext(ctx, "invoking tool", "tool", call.Function.Name, "call_id", call.ID)
	}
	start := time.Now()
	out := b.resolve(ctx, call)
	dur := time.Since(start)
	if b.opts.logger != nil {
		if out.Err != nil {
			b.opts.logger.ErrorContext(ctx, "tool call failed", "tool", out.Name, "call_id", call.ID, "duration", dur, "error", out.Err)
		} else {
			b.opts.logger.InfoContext(ctx, "tool call finished", "tool", out.Name, "call_id", call.ID, "duration", dur)
		}
	}
	if b.opts.onAfter != nil {
		b.opts.onAfter(ctx, call, out, dur)
	}
	return out
}

// resolve maps one call to its Outcome: type check, registry lookup,
// executable check, argument parse, schema validation, invocation.
func (b *Toolbox) resolve(ctx context.Context, call openai.ToolCall) Outcome {
	if call.Type != openai.ToolTypeFunction {
		return Outcome{
			Call: call,
			Name: sentinelName,
			Err:  fmt.Errorf("%w: %q", ErrUnsupportedCallType, call.Type),
		}
	}
	name := call.Function.Name

	b.mu.Lock()
	fn, ok := b.functions[name]
	if !ok {
		b.mu.Unlock()
		return Outcome{Call: call, Name: name, Err: fmt.Errorf("%q: %w", name, ErrNotRegistered)}
	}
	handler := fn.handler
	if handler == nil {
		b.mu.Unlock()
		return Outcome{Call: call, Name: name, Err: fmt.Errorf("%q: %w", name, ErrNotExecutable)}
	}
	resolved, schemaErr := argsSchema(fn)
	b.mu.Unlock()

	var args map[string]any
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
		return Outcome{Call: call, Name: name, Err: fmt.Errorf("%w: %s", ErrMalformedArguments, err)}
	}
	if schemaErr != nil {
		return Outcome{Call: call, Name: name, Err: &ExecutionError{Err: schemaErr}}
	}
	if err := validateArgs(resolved, args); err != nil {
		return Outcome{Call: call, Name: name, Err: err}
	}

	value, err := b.invoke(ctx, handler, args)
	if err != nil {
		return Outcome{Call: call, Name: name, Err: err}
	}
	return Outcome{Call: call, Name: name, Value: value}
}

// invoke runs the executable, converting returned errors and recovered
// panics into ExecutionError.
func (b *Toolbox) invoke(ctx context.Context, handler Handler, args map[string]any) (value any, err error) {
	if b.opts.recoverPanics {
		defer func() {
			if p := recover(); p != nil {
				value = nil
				err = &ExecutionError{Err: &panicError{p: p}}
			}
		}()
	}
	value, err = handler(ctx, args)
	if err != nil && !IsExecutionError(err) {
		err = &ExecutionError{Err: err}
	}
	return value, err
}
