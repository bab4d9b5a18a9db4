package toolbox

import (
	"context"
	"fmt"
	"reflect"

	"github.com/google/jsonschema-go/jsonschema"
	openai "github.com/sashabaranov/go-openai"
)

// SchemaType is one of the six JSON Schema primitives a tool parameter may
// declare. It is the only type vocabulary the chat API understands.
type SchemaType string

const (
	TypeString  SchemaType = "string"
	TypeInteger SchemaType = "integer"
	TypeNumber  SchemaType = "number"
	TypeBoolean SchemaType = "boolean"
	TypeArray   SchemaType = "array"
	TypeObject  SchemaType = "object"
)

// valid reports whether t is one of the six schema primitives.
func (t SchemaType) valid() bool {
	switch t {
	case TypeString, TypeInteger, TypeNumber, TypeBoolean, TypeArray, TypeObject:
		return true
	}
	return false
}

// Parameter is the immutable record of one declared parameter. Name is unique
// within its function; a later declaration with the same name replaces the
// earlier one in place.
type Parameter struct {
	Name        string
	Type        SchemaType
	Description string
	Required    bool
	Enum        []any // allowed literal values (string/number/boolean); empty means unconstrained
}

// Handler is the executable form every registered function is stored in.
// Arguments arrive already decoded from the tool call's JSON payload, bound
// by name.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// function accumulates one function's registration state. It is created
// implicitly the first time either a Parameter or Function call references
// its name, and only a Function (or Register) call sets name, description,
// and handler. Descriptors with an empty name or description are skipped by
// Tools.
type function struct {
	name        string
	description string
	params      []Parameter
	handler     Handler
	argsType    reflect.Type // args struct of a typed registration, for parameter type inference

	// compiled argument validator, built lazily on first dispatch and
	// dropped whenever the descriptor mutates.
	resolved *jsonschema.Resolved
}

// sentinelName is reported as the function name of a failure whose tool call
// never named a resolvable function.
const sentinelName = "unknown"

// Outcome is the result of dispatching exactly one tool call. Err is nil for
// a success; Value then holds the executable's raw return value. Outcomes
// preserve the order of the calls that produced them.
type Outcome struct {
	Call  openai.ToolCall // originating call, echoed into the assistant message
	Name  string          // resolved function name, or "unknown"
	Value any             // raw return value (success only)
	Err   error           // captured dispatch or execution error (failure only)
}

// Failed reports whether the outcome captured an error.
func (o Outcome) Failed() bool { return o.Err != nil }

// Content renders the outcome's tool-message text: the return value's string
// representation on success, or "Error executing <name>: <message>" on
// failure.
func (o Outcome) Content() string {
	if o.Err != nil {
		return fmt.Sprintf("Error executing %s: %s", o.Name, o.Err)
	}
	return fmt.Sprint(o.Value)
}
