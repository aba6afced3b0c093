// Package ai generates study content (summaries, quizzes, lecture scripts)
// from source text. A configured provider does the real work; without one the
// service degrades to deterministic offline generation so every endpoint
// keeps functioning.
package ai

import (
	"context"
	"fmt"
	"log"
	"os"

	"uleary/internal/models"
)

// Generation parameters per call type.
const (
	contentMaxTokens   = 2000
	contentTemperature = 0.7
	quizMaxTokens      = 800
	quizTemperature    = 0.5
)

// Service coordinates prompt building, provider calls, response parsing and
// mock fallbacks.
type Service struct {
	provider Provider
}

// NewService builds a service with a provider selected from the environment.
// AI_PROVIDER forces anthropic or gemini; otherwise whichever API key is set
// wins (Anthropic first). With no usable key the service runs in mock mode.
func NewService(ctx context.Context) *Service {
	anthropicKey := os.Getenv("ANTHROPIC_API_KEY")
	geminiKey := os.Getenv("GEMINI_API_KEY")

	var provider Provider
	switch os.Getenv("AI_PROVIDER") {
	case "anthropic":
		if anthropicKey == "" {
			log.Println("WARN: AI_PROVIDER=anthropic but ANTHROPIC_API_KEY is not set. Using mock responses.")
		} else {
			provider = newAnthropicProvider(anthropicKey)
		}
	case "gemini":
		if geminiKey == "" {
			log.Println("WARN: AI_PROVIDER=gemini but GEMINI_API_KEY is not set. Using mock responses.")
		} else {
			provider = mustGemini(ctx, geminiKey)
		}
	default:
		if anthropicKey != "" {
			provider = newAnthropicProvider(anthropicKey)
		} else if geminiKey != "" {
			provider = mustGemini(ctx, geminiKey)
		} else {
			log.Println("INFO: No AI API key found, using mock responses")
		}
	}

	if provider != nil {
		log.Printf("INFO: AI provider initialized: %s (%s)", provider.Name(), provider.Model())
	}
	return &Service{provider: provider}
}

func mustGemini(ctx context.Context, apiKey string) Provider {
	provider, err := newGeminiProvider(ctx, apiKey)
	if err != nil {
		log.Printf("WARN: Gemini initialization failed: %v. Using mock responses.", err)
		return nil
	}
	return provider
}

// NewServiceWithProvider builds a service around an explicit provider.
// A nil provider gives mock mode.
func NewServiceWithProvider(provider Provider) *Service {
	return &Service{provider: provider}
}

// GenerateContent produces a summary, quiz or lecture from text. Provider
// failures fall back to mock content; only an unknown processing type is an
// error.
func (s *Service) GenerateContent(ctx context.Context, text string, kind models.ProcessingType) (*models.GeneratedContent, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("nieznany typ przetwarzania: %s", kind)
	}

	if s.provider == nil {
		log.Println("INFO: Using mock AI content generation")
		return MockContent(kind)
	}

	prompt, err := buildPrompt(text, kind)
	if err != nil {
		return nil, err
	}

	log.Printf("INFO: Generating %s with %s", kind, s.provider.Name())
	raw, err := s.provider.Complete(ctx, contentSystemPrompt, prompt, contentMaxTokens, contentTemperature)
	if err != nil {
		log.Printf("ERROR: %s API error: %v. Falling back to mock content generation.", s.provider.Name(), err)
		return MockContent(kind)
	}

	return ParseContent(raw, kind), nil
}

// GenerateQuizQuestions produces count multiple-choice questions from text.
// It never fails: provider errors and unparseable responses fall back to the
// deterministic mock generator.
func (s *Service) GenerateQuizQuestions(ctx context.Context, text string, count int) []models.Question {
	if s.provider == nil {
		log.Println("INFO: Using mock quiz questions")
		return MockQuizQuestions(text, count)
	}

	log.Printf("INFO: Generating %d quiz question(s) with %s", count, s.provider.Name())
	raw, err := s.provider.Complete(ctx, quizSystemPrompt, buildQuizQuestionsPrompt(text, count), quizMaxTokens, quizTemperature)
	if err != nil {
		log.Printf("ERROR: %s API error (quiz questions): %v. Falling back to mock questions.", s.provider.Name(), err)
		return MockQuizQuestions(text, count)
	}

	questions := ParseQuizQuestions(raw)
	if len(questions) == 0 {
		log.Println("WARN: No questions in parsed response, falling back to mock questions")
		return MockQuizQuestions(text, count)
	}
	return questions
}

// HealthCheck probes the configured provider with a minimal request.
func (s *Service) HealthCheck(ctx context.Context) models.ServiceHealth {
	if s.provider == nil {
		return models.ServiceHealth{
			Available: false,
			Service:   "AI",
			Error:     "API key not configured",
		}
	}

	if _, err := s.provider.Complete(ctx, "", "test", 5, 0); err != nil {
		return models.ServiceHealth{
			Available: false,
			Service:   s.provider.Name(),
			Error:     err.Error(),
		}
	}

	return models.ServiceHealth{
		Available: true,
		Service:   s.provider.Name(),
		Model:     s.provider.Model(),
		Status:    "healthy",
	}
}

// Close releases provider resources.
func (s *Service) Close() {
	if s.provider != nil {
		s.provider.Close()
	}
}
