package nlu

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// IntentDef declares one intent: the flow it routes to, example phrases for
// the classifier prompt, and the entity types the intent may carry.
type IntentDef struct {
	Flow     string   `yaml:"flow"`
	Phrases  []string `yaml:"phrases"`
	Entities []string `yaml:"entities"`
}

// EntityTypeDef declares the example values of one entity type.
type EntityTypeDef struct {
	Values []string `yaml:"values"`
}

// IntentModel is the declarative NLU configuration: every intent the
// classifier may emit, the entity types it may extract, and the default flow
// for unmatched input.
type IntentModel struct {
	DefaultFlow string                   `yaml:"default_flow"`
	Intents     map[string]IntentDef     `yaml:"intents"`
	EntityTypes map[string]EntityTypeDef `yaml:"entity_types"`
}

// LoadIntentModel reads and validates an intent model from a YAML file.
func LoadIntentModel(path string) (*IntentModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read intent model: %w", err)
	}
	return ParseIntentModel(raw)
}

// ParseIntentModel parses and validates an intent model from YAML bytes.
func ParseIntentModel(raw []byte) (*IntentModel, error) {
	var m IntentModel
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse intent model: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the model declares at least one intent and that every
// intent names a flow.
func (m *IntentModel) Validate() error {
	if len(m.Intents) == 0 {
		return fmt.Errorf("intent model: no intents declared")
	}
	for name, def := range m.Intents {
		if name == "" {
			return fmt.Errorf("intent model: intent with empty name")
		}
		if def.Flow == "" {
			return fmt.Errorf("intent model: intent %q declares no flow", name)
		}
	}
	return nil
}

// Routing returns the intent-to-flow mapping to apply to the router.
func (m *IntentModel) Routing() map[string]string {
	routing := make(map[string]string, len(m.Intents))
	for name, def := range m.Intents {
		routing[name] = def.Flow
	}
	return routing
}

// SystemPrompt renders the classification system prompt. Intents and entity
// types are emitted in sorted order so the prompt is deterministic.
func (m *IntentModel) SystemPrompt() string {
	var b strings.Builder
	b.WriteString("You are an intent classification and entity extraction model.\n\n")
	b.WriteString("Classify the user input into one of these intents and extract any associated entities. ")
	b.WriteString("If no intent in the list matches, return \"fallback\" as the intent:\n")

	intentNames := make([]string, 0, len(m.Intents))
	for name := range m.Intents {
		intentNames = append(intentNames, name)
	}
	sort.Strings(intentNames)

	for _, name := range intentNames {
		def := m.Intents[name]
		fmt.Fprintf(&b, "Intent: %s (e.g., %s)\n", name, strings.Join(def.Phrases, ", "))
		if len(def.Entities) > 0 {
			fmt.Fprintf(&b, "  Entity types: %s\n", strings.Join(def.Entities, ", "))
		}
	}

	if len(m.EntityTypes) > 0 {
		b.WriteString("\nEntity types and example values:\n")
		typeNames := make([]string, 0, len(m.EntityTypes))
		for name := range m.EntityTypes {
			typeNames = append(typeNames, name)
		}
		sort.Strings(typeNames)
		for _, name := range typeNames {
			fmt.Fprintf(&b, "Entity type: %s (e.g., %s)\n", name, strings.Join(m.EntityTypes[name].Values, ", "))
		}
	}

	b.WriteString("\nRespond ONLY with JSON in this exact shape:\n")
	b.WriteString(`{"intent": "intent_name", "entities": [{"type": "ENTITY_TYPE", "value": "extracted value"}]}`)
	b.WriteString("\n\nRespond strictly in valid JSON format.")
	return b.String()
}
