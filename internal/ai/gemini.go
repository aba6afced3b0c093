package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiModelName is the Gemini model used for all generation.
const GeminiModelName = "gemini-2.0-flash"

type geminiProvider struct {
	client *genai.Client
}

func newGeminiProvider(ctx context.Context, apiKey string) (*geminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiProvider{client: client}, nil
}

func (p *geminiProvider) Complete(ctx context.Context, system, prompt string, maxTokens int64, temperature float64) (string, error) {
	model := p.client.GenerativeModel(GeminiModelName)
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(float32(temperature))
	model.SetTopK(40)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(int32(maxTokens))
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content generated")
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out.WriteString(string(text))
		}
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("no text content in response")
	}
	return out.String(), nil
}

func (p *geminiProvider) Name() string  { return "Gemini (Google)" }
func (p *geminiProvider) Model() string { return GeminiModelName }

func (p *geminiProvider) Close() {
	p.client.Close()
}
