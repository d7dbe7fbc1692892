package core

import "time"

// Role identifies the author of a message within a conversation.
type Role string

const (
	// RoleUser marks a message written by the end user.
	RoleUser Role = "user"
	// RoleAssistant marks a message produced by the generation service.
	RoleAssistant Role = "assistant"
	// RoleSystem marks an instruction-level message.
	RoleSystem Role = "system"
)

// Message is a single entry in a conversation history. Histories are ordered
// and append-only within a turn; the most recent message prior to a turn is
// always the triggering user message.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage creates a message with a fresh ID and timestamp.
func NewMessage(role Role, text string) Message {
	return Message{ID: NewID(), Role: role, Text: text, Timestamp: time.Now()}
}

// NewUserMessage creates a user-authored message.
func NewUserMessage(text string) Message { return NewMessage(RoleUser, text) }

// NewAssistantMessage creates an assistant-authored message.
func NewAssistantMessage(text string) Message { return NewMessage(RoleAssistant, text) }
