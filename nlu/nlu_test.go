package nlu

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/y3s-labs/povo/core"
)

const testModelYAML = `
default_flow: general
intents:
  love:
    flow: pizza
    phrases: ["I love pizza", "pizza sounds great"]
    entities: [BASE_TYPE, TOPPING_TYPE]
  confirm_order:
    flow: pizza
    phrases: ["yes, place the order"]
  greeting:
    flow: general
    phrases: ["hello", "hi there"]
entity_types:
  BASE_TYPE:
    values: [thin, thick, stuffed]
  TOPPING_TYPE:
    values: [mushrooms, olives, pepperoni]
`

func TestParseIntentModel(t *testing.T) {
	m, err := ParseIntentModel([]byte(testModelYAML))
	require.NoError(t, err)

	assert.Equal(t, "general", m.DefaultFlow)
	assert.Len(t, m.Intents, 3)
	assert.Equal(t, "pizza", m.Intents["love"].Flow)

	routing := m.Routing()
	assert.Equal(t, "pizza", routing["confirm_order"])
	assert.Equal(t, "general", routing["greeting"])
}

func TestParseIntentModel_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no intents", "default_flow: general"},
		{"intent without flow", "intents:\n  love:\n    phrases: [hi]"},
		{"not yaml", "{{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseIntentModel([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestIntentModel_SystemPromptDeterministic(t *testing.T) {
	m, err := ParseIntentModel([]byte(testModelYAML))
	require.NoError(t, err)

	prompt := m.SystemPrompt()
	assert.Equal(t, prompt, m.SystemPrompt())

	assert.Contains(t, prompt, "Intent: love")
	assert.Contains(t, prompt, "I love pizza")
	assert.Contains(t, prompt, "Entity type: BASE_TYPE")
	assert.Contains(t, prompt, `"fallback"`)
}

func TestParseClassification(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    core.ClassificationResult
		wantErr bool
	}{
		{
			name: "clean json",
			raw:  `{"intent": "love", "entities": [{"type": "BASE_TYPE", "value": "thin"}]}`,
			want: core.ClassificationResult{Intent: "love", Entities: []core.Entity{{Type: "BASE_TYPE", Value: "thin"}}},
		},
		{
			name: "fenced json",
			raw:  "```json\n{\"intent\": \"greeting\", \"entities\": []}\n```",
			want: core.ClassificationResult{Intent: "greeting", Entities: []core.Entity{}},
		},
		{
			name: "prose around json",
			raw:  `Sure! Here is the result: {"intent": "love", "entities": []} hope that helps`,
			want: core.ClassificationResult{Intent: "love", Entities: []core.Entity{}},
		},
		{name: "no json", raw: "I could not classify that", wantErr: true},
		{name: "missing intent", raw: `{"entities": []}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClassification(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMockClassifier(t *testing.T) {
	m := NewMockClassifier()
	m.AddResult("I love pizza", core.ClassificationResult{Intent: "love"})

	got, err := m.Classify(context.Background(), "I love pizza")
	require.NoError(t, err)
	assert.Equal(t, "love", got.Intent)

	got, err = m.Classify(context.Background(), "something else")
	require.NoError(t, err)
	assert.Equal(t, core.FallbackIntent, got.Intent)
}
