package provider

import (
	"context"
	"fmt"

	"github.com/linkbrief/linkbrief/config"
	mock_provider "github.com/linkbrief/linkbrief/provider/mock"
	openai_provider "github.com/linkbrief/linkbrief/provider/openai"
)

// Provider is the summarization backend. SummarizeLink returns the model's raw
// reply text; callers are responsible for parsing it into a structured result.
type Provider interface {
	SummarizeLink(ctx context.Context, url, content, titleHint string) (string, error)
	Name() string
}

// Endpoints for the supported chat-completion providers.
const (
	GrokAPIURL   = "https://api.x.ai/v1/chat/completions"
	OpenAIAPIURL = "https://api.openai.com/v1/chat/completions"
)

// New selects a provider from config. An empty API key always yields the
// deterministic mock provider, so summarization never hard-depends on a
// credential being present.
func New(cfg config.LLMConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return mock_provider.New(), nil
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		switch cfg.Provider {
		case "openai":
			baseURL = OpenAIAPIURL
		case "grok":
			baseURL = GrokAPIURL
		default:
			return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
		}
	}
	return openai_provider.NewClient(baseURL, cfg.APIKey, cfg.Model, cfg.Temperature, cfg.MaxTokens, cfg.Timeout), nil
}
