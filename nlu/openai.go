package nlu

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/y3s-labs/povo/core"
)

// Options configure the OpenAI classifier. Fields mirror a minimal subset of
// Chat Completion parameters; extend via functional options without breaking
// callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// OpenAIClassifier implements core.Classifier using the OpenAI Chat
// Completions API, prompting with the system prompt rendered from an
// IntentModel and parsing the strict-JSON reply.
type OpenAIClassifier struct {
	client       *openai.Client
	systemPrompt string
	opts         Options
}

// NewOpenAIClassifier creates a classifier using the default OpenAI client
// (API key from the environment).
func NewOpenAIClassifier(model *IntentModel, optFns ...func(o *Options)) *OpenAIClassifier {
	client := openai.NewClient()
	return NewOpenAIClassifierFromClient(&client, model, optFns...)
}

// NewOpenAIClassifierFromClient creates a classifier from an existing client.
func NewOpenAIClassifierFromClient(client *openai.Client, model *IntentModel, optFns ...func(o *Options)) *OpenAIClassifier {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0,
		MaxCompletionTokens: 512,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &OpenAIClassifier{client: client, systemPrompt: model.SystemPrompt(), opts: opts}
}

// Classify implements core.Classifier.
func (c *OpenAIClassifier) Classify(ctx context.Context, text string) (core.ClassificationResult, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               c.opts.Model,
		Temperature:         openai.Float(c.opts.Temperature),
		MaxCompletionTokens: openai.Int(c.opts.MaxCompletionTokens),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.systemPrompt),
			openai.UserMessage(fmt.Sprintf("User message to classify: %s", text)),
		},
	})
	if err != nil {
		return core.ClassificationResult{}, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return core.ClassificationResult{}, fmt.Errorf("no choices returned")
	}
	return ParseClassification(resp.Choices[0].Message.Content)
}

// ParseClassification decodes a classification reply, tolerating models that
// wrap the JSON object in prose or code fences.
func ParseClassification(raw string) (core.ClassificationResult, error) {
	var result core.ClassificationResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		extracted, ok := extractJSONObject(raw)
		if !ok {
			return core.ClassificationResult{}, fmt.Errorf("unparseable classification: %w", err)
		}
		if err2 := json.Unmarshal([]byte(extracted), &result); err2 != nil {
			return core.ClassificationResult{}, fmt.Errorf("unparseable classification: %w", err2)
		}
	}
	if result.Intent == "" {
		return core.ClassificationResult{}, fmt.Errorf("classification missing intent")
	}
	return result, nil
}

// extractJSONObject returns the substring between the first '{' and the last
// '}', which survives code fences and leading/trailing prose.
func extractJSONObject(raw string) (string, bool) {
	first := strings.Index(raw, "{")
	last := strings.LastIndex(raw, "}")
	if first < 0 || last <= first {
		return "", false
	}
	return raw[first : last+1], true
}
