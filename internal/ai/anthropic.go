package ai

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicModelName is the Claude model used for all generation.
const AnthropicModelName = "claude-3-haiku-20240307"

type anthropicProvider struct {
	client sdk.Client
}

func newAnthropicProvider(apiKey string) *anthropicProvider {
	return &anthropicProvider{
		client: sdk.NewClient(option.WithAPIKey(apiKey)),
	}
}

func (p *anthropicProvider) Complete(ctx context.Context, system, prompt string, maxTokens int64, temperature float64) (string, error) {
	params := sdk.MessageNewParams{
		Model:     sdk.Model(AnthropicModelName),
		MaxTokens: maxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
		Temperature: sdk.Float(temperature),
	}
	if system != "" {
		params.System = []sdk.TextBlockParam{{Text: system}}
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to create message: %w", err)
	}

	var out strings.Builder
	for _, block := range msg.Content {
		out.WriteString(block.Text)
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("no text content in response")
	}
	return out.String(), nil
}

func (p *anthropicProvider) Name() string  { return "Claude (Anthropic)" }
func (p *anthropicProvider) Model() string { return AnthropicModelName }
func (p *anthropicProvider) Close()        {}
