// Package toolbox turns ordinary Go functions into callable tools for the
// OpenAI chat-completions API: declare functions and their parameters,
// export the tool schema to the model, then dispatch the model's tool calls
// back onto the registered functions.
//
// # Overview
//
// The model only sees JSON. This package owns the round trip: registration
// calls accumulate per-function metadata in a Toolbox, Tools compiles that
// metadata into the wire-format tool definitions, and Execute resolves a
// batch of tool calls against the registered executables, capturing one
// Outcome per call. Serialize renders the outcomes into the assistant echo
// message and the tool messages the next conversation turn needs.
//
// Pipeline: Parameter/Function/Register → Toolbox → Tools (schema for the
// model) → model returns tool calls → Execute → []Outcome → Serialize.
//
// # Key concepts
//
//   - Order-free registration: parameters may be declared before or after
//     their function; a descriptor is emitted only once both its name and
//     description are known.
//   - Partial success: Execute never aborts a batch; each call fails or
//     succeeds on its own and failures travel back to the model as tool
//     messages so it can self-correct.
//   - Explicit state: a Toolbox is a plain value owned by the host. Build as
//     many independent toolboxes as you need; nothing is process-global.
//
// # Example
//
//	box := toolbox.New()
//	hello := toolbox.Register(box, "hello_world", "Greet someone.",
//	    func(_ context.Context, a struct {
//	        Who string `json:"who"`
//	    }) (string, error) {
//	        return "Hello " + a.Who, nil
//	    })
//	if err := box.Parameter("hello_world", "who", toolbox.WithDescription("Name to greet")); err != nil { ... }
//	_ = hello // still a plain function, callable directly
//	schema := box.Tools()
//	outcomes := box.Execute(ctx, resp.Choices[0].Message.ToolCalls)
//	assistant, results := toolbox.Serialize(outcomes)
package toolbox
