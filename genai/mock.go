package genai

import (
	"context"
	"fmt"
	"sync"

	"github.com/y3s-labs/povo/core"
)

// MockGenerator is a lightweight in-memory Generator useful for tests and
// examples. It records the instructions it was called with and echoes a
// deterministic reply.
type MockGenerator struct {
	mu           sync.Mutex
	err          error
	reply        string
	instructions []string
}

// NewMockGenerator constructs a mock generator.
func NewMockGenerator() *MockGenerator { return &MockGenerator{} }

// SetReply fixes the reply text; by default the mock echoes the last user
// message.
func (m *MockGenerator) SetReply(reply string) { m.reply = reply }

// FailWith makes every Generate call return the given error.
func (m *MockGenerator) FailWith(err error) { m.err = err }

// Instructions returns the system instructions seen so far, in call order.
func (m *MockGenerator) Instructions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.instructions))
	copy(out, m.instructions)
	return out
}

// Generate implements core.Generator.
func (m *MockGenerator) Generate(_ context.Context, instruction string, history []core.Message) (string, error) {
	m.mu.Lock()
	m.instructions = append(m.instructions, instruction)
	m.mu.Unlock()

	if m.err != nil {
		return "", m.err
	}
	if m.reply != "" {
		return m.reply, nil
	}
	if len(history) == 0 {
		return "Hello!", nil
	}
	return fmt.Sprintf("Mock reply to: %s", history[len(history)-1].Text), nil
}
