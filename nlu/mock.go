package nlu

import (
	"context"

	"github.com/y3s-labs/povo/core"
)

// MockClassifier is a lightweight in-memory Classifier useful for tests and
// examples: canned results per input text, fallback for everything else.
type MockClassifier struct {
	results map[string]core.ClassificationResult
	err     error
}

// NewMockClassifier constructs an empty mock classifier.
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{results: make(map[string]core.ClassificationResult)}
}

// AddResult registers a deterministic classification for an input text.
func (m *MockClassifier) AddResult(text string, result core.ClassificationResult) {
	m.results[text] = result
}

// FailWith makes every Classify call return the given error.
func (m *MockClassifier) FailWith(err error) { m.err = err }

// Classify implements core.Classifier.
func (m *MockClassifier) Classify(_ context.Context, text string) (core.ClassificationResult, error) {
	if m.err != nil {
		return core.ClassificationResult{}, m.err
	}
	if result, ok := m.results[text]; ok {
		return result, nil
	}
	return core.FallbackClassification(), nil
}
