package toolbox

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
)

// argsSchema returns the descriptor's compiled argument validator, building
// it on first use. The cached validator is dropped whenever the descriptor
// mutates. Caller must hold b.mu.
func argsSchema(fn *function) (*jsonschema.Resolved, error) {
	if fn.resolved != nil {
		return fn.resolved, nil
	}
	resolved, err := compileArgsSchema(fn.params)
	if err != nil {
		return nil, err
	}
	fn.resolved = resolved
	return resolved, nil
}

// compileArgsSchema builds the validation schema for a parameter list. It is
// the strict-mode twin of the wire schema: same properties and required
// list, plus additionalProperties: false so free-form arguments are
// rejected before invocation.
func compileArgsSchema(params []Parameter) (*jsonschema.Resolved, error) {
	schemaMap := map[string]any{
		"type":                 "object",
		"properties":           map[string]any{},
		"required":             []any{},
		"additionalProperties": false,
	}
	props := schemaMap["properties"].(map[string]any)
	required := schemaMap["required"].([]any)
	for _, p := range params {
		prop := map[string]any{"type": string(p.Type)}
		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}
		props[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}
	schemaMap["required"] = required
	return compileRawSchema(schemaMap)
}

// compileRawSchema compiles a raw JSON Schema map into a resolved validator.
// The map is not mutated.
func compileRawSchema(schemaMap map[string]any) (*jsonschema.Resolved, error) {
	data, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, err
	}
	var s jsonschema.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return s.Resolve(nil)
}

// validateArgs runs the parsed argument object through the descriptor's
// schema. Failures come back as ExecutionError: a binding mismatch belongs
// to the invocation, not to the dispatcher.
func validateArgs(resolved *jsonschema.Resolved, args map[string]any) error {
	if err := resolved.Validate(args); err != nil {
		return &ExecutionError{Err: err}
	}
	return nil
}
