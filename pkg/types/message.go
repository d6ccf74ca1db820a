package types

// Role constants for chat messages
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
	RoleTool      = "tool"
)

// Message represents a message in a chat conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`

	// Name is set for tool role messages to identify the tool
	Name string `json:"name,omitempty"`

	// ToolCalls is filled on assistant messages when the model requested
	// one or more tool invocations
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`

	// ToolCallID links a tool role message back to the call it answers
	ToolCallID string `json:"tool_call_id,omitempty"`
}

// ToolCall represents a tool invocation requested by the model
type ToolCall struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Arguments is the raw JSON string the model produced. It is not
	// guaranteed to satisfy the tool's schema until validated.
	Arguments string `json:"arguments"`
}

// UserMessage creates a user message with the given content
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// SystemMessage creates a system message with the given content
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// ToolMessage creates a tool result message answering a tool call
func ToolMessage(callID, name, content string) Message {
	return Message{Role: RoleTool, ToolCallID: callID, Name: name, Content: content}
}

// FirstToolCall returns the first tool call with the given name, or nil
// if the message does not contain one
func (m *Message) FirstToolCall(name string) *ToolCall {
	for i := range m.ToolCalls {
		if m.ToolCalls[i].Name == name {
			return &m.ToolCalls[i]
		}
	}
	return nil
}
