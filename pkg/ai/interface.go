package ai

import (
	"context"
	"errors"
)

// TextGenerator turns a prompt into generated text.
// Implement this interface to add new AI providers (Gemini, Ollama, OpenAI, etc.)
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// Name identifies the provider and model, e.g. "gemini/gemini-1.5-flash".
	Name() string
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderGemini    ProviderType = "gemini"
	ProviderOpenAI    ProviderType = "openai"
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOllama    ProviderType = "ollama"
	ProviderAuto      ProviderType = "auto"
)

var (
	// ErrRateLimited marks provider throttling. Providers wrap it; use
	// IsRateLimited to also catch SDK specific error types.
	ErrRateLimited   = errors.New("ai provider rate limited")
	ErrEmptyResponse = errors.New("ai provider returned no text")
	ErrNoProvider    = errors.New("no AI provider available")
	ErrMissingAPIKey = errors.New("API key is required")
)

// GeneratorFunc adapts a plain function to TextGenerator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

func (f GeneratorFunc) Name() string { return "func" }
