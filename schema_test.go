package toolbox

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTools_SingleParameterExactShape(t *testing.T) {
	box := New()
	box.Function("f", "Does the f thing.", echoHandler)
	require.NoError(t, box.Parameter("f", "p", WithType(TypeString), WithDescription("D")))

	tools := box.Tools()
	require.Len(t, tools, 1)
	data, err := json.Marshal(tools[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "function",
		"function": {
			"name": "f",
			"description": "Does the f thing.",
			"strict": true,
			"parameters": {
				"type": "object",
				"properties": {
					"p": {"type": "string", "description": "D"}
				},
				"required": ["p"]
			}
		}
	}`, string(data))
}

func TestTools_NoParameters(t *testing.T) {
	box := New()
	box.Function("ping", "Check liveness.", echoHandler)

	data, err := json.Marshal(box.Tools()[0].Function.Parameters)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"object","properties":{},"required":[]}`, string(data))
}

func TestTools_SkipsIncompleteDescriptors(t *testing.T) {
	box := New()
	// Parameters only: no name/description yet.
	require.NoError(t, box.Parameter("pending", "p", WithType(TypeString)))
	// Registered but without a description: still ineligible.
	box.Function("undocumented", "", echoHandler)
	box.Function("ready", "Documented.", echoHandler)

	tools := box.Tools()
	require.Len(t, tools, 1)
	assert.Equal(t, "ready", tools[0].Function.Name)
}

func TestTools_EmissionOrderIsInsertionOrder(t *testing.T) {
	box := New()
	// "beta" enters the registry first via a parameter declaration.
	require.NoError(t, box.Parameter("beta", "p", WithType(TypeString)))
	box.Function("alpha", "A.", echoHandler)
	box.Function("beta", "B.", echoHandler)

	tools := box.Tools()
	require.Len(t, tools, 2)
	assert.Equal(t, "beta", tools[0].Function.Name)
	assert.Equal(t, "alpha", tools[1].Function.Name)
}

func TestTools_OptionalAndEnum(t *testing.T) {
	box := New()
	box.Function("report", "Build a report.", echoHandler)
	require.NoError(t, box.Parameter("report", "format", WithType(TypeString), WithEnum("csv", "json")))
	require.NoError(t, box.Parameter("report", "limit", WithType(TypeInteger), WithOptional()))

	params := box.Tools()[0].Function.Parameters.(parametersSchema)
	assert.Equal(t, []any{"csv", "json"}, params.Properties["format"].Enum)
	assert.Empty(t, params.Properties["limit"].Enum)
	assert.Equal(t, []string{"format"}, params.Required)
}

func TestTools_RequiredKeepsInsertionOrder(t *testing.T) {
	box := New()
	box.Function("f", "F.", echoHandler)
	for _, name := range []string{"zulu", "alpha", "mike"} {
		require.NoError(t, box.Parameter("f", name, WithType(TypeString)))
	}
	params := box.Tools()[0].Function.Parameters.(parametersSchema)
	assert.Equal(t, []string{"zulu", "alpha", "mike"}, params.Required)
}

func TestTools_Deterministic(t *testing.T) {
	box := New()
	box.Function("f", "F.", echoHandler)
	for _, name := range []string{"c", "a", "b", "d", "e"} {
		require.NoError(t, box.Parameter("f", name, WithType(TypeString)))
	}
	first, err := json.Marshal(box.Tools())
	require.NoError(t, err)
	for range 10 {
		again, err := json.Marshal(box.Tools())
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}

func TestTools_SnapshotUnaffectedByLaterRegistration(t *testing.T) {
	box := New()
	box.Function("f", "F.", echoHandler)
	before := box.Tools()
	box.Function("g", "G.", func(_ context.Context, args map[string]any) (any, error) { return nil, nil })
	assert.Len(t, before, 1)
	assert.Len(t, box.Tools(), 2)
}
