package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"curalink-backend/pkg/gemini"

	"go.uber.org/zap"
)

// Config holds AI provider configuration
type Config struct {
	Provider ProviderType

	GeminiAPIKey string
	GeminiModels []string // tried in order

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	AnthropicAPIKey string
	AnthropicModel  string

	OllamaBaseURL string // e.g., "http://localhost:11434"
	OllamaModel   string // e.g., "llama3", "mistral"

	RequestsPerSecond int
	ProbeTimeout      time.Duration
}

// Service is the process-wide text generator chosen at startup. It is
// rate limited and must be closed on shutdown.
type Service struct {
	TextGenerator
	Provider ProviderType
	Limiter  *RateLimiter
	closers  []func() error
}

func (s *Service) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// NewService builds the candidate list for cfg.Provider, probes it and
// returns the first working generator. This is the factory function - switch
// AI provider by changing cfg.Provider. An error here is fatal for startup.
func NewService(ctx context.Context, cfg Config, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &Service{Provider: cfg.Provider}

	var geminiClient *gemini.Client
	geminiCandidates := func() []Candidate {
		var out []Candidate
		for _, name := range cfg.GeminiModels {
			name := name
			out = append(out, Candidate{
				Name: "gemini/" + name,
				Build: func(ctx context.Context) (TextGenerator, error) {
					if geminiClient == nil {
						c, err := gemini.NewClient(ctx, cfg.GeminiAPIKey)
						if err != nil {
							return nil, err
						}
						geminiClient = c
						svc.closers = append(svc.closers, c.Close)
					}
					return geminiClient.Model(name), nil
				},
			})
		}
		return out
	}
	openAICandidate := Candidate{
		Name: "openai/" + cfg.OpenAIModel,
		Build: func(context.Context) (TextGenerator, error) {
			return NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
		},
	}
	anthropicCandidate := Candidate{
		Name: "anthropic/" + cfg.AnthropicModel,
		Build: func(context.Context) (TextGenerator, error) {
			return NewAnthropicGenerator(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		},
	}
	ollama := NewOllamaGenerator(cfg.OllamaBaseURL, cfg.OllamaModel)
	ollamaCandidate := Candidate{
		Name:  ollama.Name(),
		Build: func(context.Context) (TextGenerator, error) { return ollama, nil },
	}

	var candidates []Candidate
	switch cfg.Provider {
	case ProviderGemini:
		candidates = geminiCandidates()
	case ProviderOpenAI:
		candidates = []Candidate{openAICandidate}
	case ProviderAnthropic:
		candidates = []Candidate{anthropicCandidate}
	case ProviderOllama:
		candidates = []Candidate{ollamaCandidate}
	case ProviderAuto, "":
		// Hosted providers with credentials first, local Ollama last.
		if cfg.GeminiAPIKey != "" {
			candidates = append(candidates, geminiCandidates()...)
		}
		if cfg.OpenAIAPIKey != "" {
			candidates = append(candidates, openAICandidate)
		}
		if cfg.AnthropicAPIKey != "" {
			candidates = append(candidates, anthropicCandidate)
		}
		candidates = append(candidates, ollamaCandidate)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}

	gen, err := Probe(ctx, candidates, cfg.ProbeTimeout, logger)
	if err != nil {
		_ = svc.Close()
		return nil, err
	}

	// In auto mode a hosted model falls back to local Ollama when throttled.
	if (cfg.Provider == ProviderAuto || cfg.Provider == "") && gen.Name() != ollama.Name() {
		gen = NewFallbackGenerator(gen, ollama, logger)
	}

	svc.Limiter = NewRateLimiter(cfg.RequestsPerSecond)
	svc.TextGenerator = NewLimitedGenerator(gen, svc.Limiter)
	return svc, nil
}
