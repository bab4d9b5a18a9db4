package toolbox

import (
	openai "github.com/sashabaranov/go-openai"
)

// propertySchema is the wire projection of one Parameter.
type propertySchema struct {
	Type        SchemaType `json:"type"`
	Description string     `json:"description,omitempty"`
	Enum        []any      `json:"enum,omitempty"`
}

// parametersSchema is the parameters object of one tool definition. Required
// has no omitempty: a function without required parameters still emits
// "required": [].
type parametersSchema struct {
	Type       string                    `json:"type"`
	Properties map[string]propertySchema `json:"properties"`
	Required   []string                  `json:"required"`
}

// Tools compiles the current registry state into the tool definitions the
// chat API expects. Descriptors still missing a name or description are
// skipped; the rest are emitted in registry insertion order. The result is
// deterministic: the same registry state always marshals to the same bytes
// (properties travel through a map, which encoding/json sorts).
func (b *Toolbox) Tools() []openai.Tool {
	b.mu.Lock()
	defer b.mu.Unlock()

	tools := make([]openai.Tool, 0, len(b.order))
	for _, name := range b.order {
		fn := b.functions[name]
		if fn.name == "" || fn.description == "" {
			continue
		}
		tools = append(tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        fn.name,
				Description: fn.description,
				Strict:      true,
				Parameters:  compileParameters(fn.params),
			},
		})
	}
	return tools
}

// compileParameters projects a descriptor's parameter list onto the wire
// shape: {type, description?, enum?} per property, and the required array in
// parameter-insertion order.
func compileParameters(params []Parameter) parametersSchema {
	schema := parametersSchema{
		Type:       "object",
		Properties: make(map[string]propertySchema, len(params)),
		Required:   []string{},
	}
	for _, p := range params {
		schema.Properties[p.Name] = propertySchema{
			Type:        p.Type,
			Description: p.Description,
			Enum:        p.Enum,
		}
		if p.Required {
			schema.Required = append(schema.Required, p.Name)
		}
	}
	return schema
}
