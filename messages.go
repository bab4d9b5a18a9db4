package toolbox

import (
	openai "github.com/sashabaranov/go-openai"
)

// Serialize renders an ordered outcome sequence into the two message shapes
// the chat API consumes on the next turn: one assistant message echoing the
// original tool calls, and one tool message per outcome, tagged with the
// originating call id and resolved function name. The mapping is total and
// order-preserving: every outcome yields exactly one tool message.
func Serialize(outcomes []Outcome) (openai.ChatCompletionMessage, []openai.ChatCompletionMessage) {
	assistant := openai.ChatCompletionMessage{
		Role:      openai.ChatMessageRoleAssistant,
		ToolCalls: make([]openai.ToolCall, 0, len(outcomes)),
	}
	messages := make([]openai.ChatCompletionMessage, 0, len(outcomes))
	for _, out := range outcomes {
		assistant.ToolCalls = append(assistant.ToolCalls, out.Call)
		messages = append(messages, openai.ChatCompletionMessage{
			Role:       openai.ChatMessageRoleTool,
			ToolCallID: out.Call.ID,
			Name:       out.Name,
			Content:    out.Content(),
		})
	}
	return assistant, messages
}
