package genai

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/y3s-labs/povo/core"
)

// AnthropicOptions configure the Anthropic generator.
type AnthropicOptions struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// AnthropicGenerator implements core.Generator using the Anthropic Messages
// API.
type AnthropicGenerator struct {
	client *anthropic.Client
	opts   AnthropicOptions
}

// NewAnthropicGenerator creates a generator using the official client.
func NewAnthropicGenerator(optFns ...func(o *AnthropicOptions)) *AnthropicGenerator {
	opts := AnthropicOptions{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   1024,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := anthropic.NewClient(clientOpts...)

	return &AnthropicGenerator{client: &client, opts: opts}
}

// NewAnthropicGeneratorFromClient creates a generator from an existing client.
func NewAnthropicGeneratorFromClient(client *anthropic.Client, optFns ...func(o *AnthropicOptions)) *AnthropicGenerator {
	opts := AnthropicOptions{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   1024,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &AnthropicGenerator{client: client, opts: opts}
}

// Generate implements core.Generator.
func (g *AnthropicGenerator) Generate(ctx context.Context, instruction string, history []core.Message) (string, error) {
	messages := make([]anthropic.MessageParam, 0, len(history))
	for _, m := range history {
		switch m.Role {
		case core.RoleAssistant:
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Text)))
		case core.RoleSystem:
			// system-level text goes into the system parameter below
			continue
		default:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Text)))
		}
	}

	resp, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       g.opts.Model,
		Messages:    messages,
		MaxTokens:   g.opts.MaxTokens,
		Temperature: anthropic.Float(g.opts.Temperature),
		System:      []anthropic.TextBlockParam{{Text: instruction}},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic api error: %w", err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.AsText().Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("empty completion")
	}
	return b.String(), nil
}
