package genai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/y3s-labs/povo/core"
)

// OpenAIOptions configure the OpenAI generator.
type OpenAIOptions struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// OpenAIGenerator implements core.Generator using the OpenAI Chat
// Completions API.
type OpenAIGenerator struct {
	client *openai.Client
	opts   OpenAIOptions
}

// NewOpenAIGenerator creates a generator using the default OpenAI client
// (API key from the environment).
func NewOpenAIGenerator(optFns ...func(o *OpenAIOptions)) *OpenAIGenerator {
	client := openai.NewClient()
	return NewOpenAIGeneratorFromClient(&client, optFns...)
}

// NewOpenAIGeneratorFromClient creates a generator from an existing client.
func NewOpenAIGeneratorFromClient(client *openai.Client, optFns ...func(o *OpenAIOptions)) *OpenAIGenerator {
	opts := OpenAIOptions{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 1024,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &OpenAIGenerator{client: client, opts: opts}
}

// Generate implements core.Generator.
func (g *OpenAIGenerator) Generate(ctx context.Context, instruction string, history []core.Message) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	messages = append(messages, openai.SystemMessage(instruction))
	for _, m := range history {
		switch m.Role {
		case core.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(m.Text))
		case core.RoleSystem:
			messages = append(messages, openai.SystemMessage(m.Text))
		default:
			messages = append(messages, openai.UserMessage(m.Text))
		}
	}

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               g.opts.Model,
		Temperature:         openai.Float(g.opts.Temperature),
		MaxCompletionTokens: openai.Int(g.opts.MaxCompletionTokens),
		Messages:            messages,
	})
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
