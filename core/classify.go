package core

import "context"

// FallbackIntent is substituted whenever the classification boundary fails or
// returns something unusable. Routing degrades to the default flow.
const FallbackIntent = "fallback"

// Entity is a typed value extracted from a user message by the NLU service,
// e.g. {Type: "TOPPING_TYPE", Value: "mushrooms"}.
type Entity struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// ClassificationResult is the output of the external NLU step: an intent
// label plus the ordered entities extracted from the message.
type ClassificationResult struct {
	Intent   string   `json:"intent"`
	Entities []Entity `json:"entities"`
}

// FallbackClassification is the substitute result used when classification
// fails: the fallback intent with no entities.
func FallbackClassification() ClassificationResult {
	return ClassificationResult{Intent: FallbackIntent}
}

// Classifier turns raw user text into an intent and extracted entities. It is
// an external collaborator and may fail or time out; callers must degrade to
// FallbackClassification rather than propagate the error.
type Classifier interface {
	Classify(ctx context.Context, text string) (ClassificationResult, error)
}

// Generator turns a system instruction plus the conversation history into the
// assistant's reply text. It is an external collaborator and may fail or time
// out; callers must surface a generic apology rather than the raw error.
type Generator interface {
	Generate(ctx context.Context, instruction string, history []Message) (string, error)
}
