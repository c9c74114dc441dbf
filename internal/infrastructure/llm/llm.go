// Package llm adapts external completion models to ports.IntentModel.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cinemind/studio-api/internal/core/ports"
)

// Provider names accepted by Config.Provider.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// placeholderKey is the value shipped in sample env files. It counts as unset.
const placeholderKey = "your_key_here"

const (
	defaultOpenAIModel   = "gpt-3.5-turbo"
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultGeminiModel   = "gemini-2.0-flash"
	defaultTimeout       = 30 * time.Second
)

// SystemPrompt instructs the model to answer with the five creative fields.
const SystemPrompt = "You are a cinematic director's assistant. Analyze the script snippet and return JSON with: mood, subtext, visualTone, lighting, and soundscape."

// Config selects and configures the creative-intent model.
type Config struct {
	// Provider forces a provider. Empty picks OpenAI when its key is set,
	// then Gemini.
	Provider      string
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string
	GeminiKey     string
	GeminiModel   string
	Timeout       time.Duration
}

// HasCredential reports whether key is a usable credential.
func HasCredential(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && key != placeholderKey
}

// New returns the configured model, or nil when no provider has a usable
// credential. Callers treat nil as "always use the fallback".
func New(ctx context.Context, cfg Config) (ports.IntentModel, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		switch {
		case HasCredential(cfg.OpenAIKey):
			provider = ProviderOpenAI
		case HasCredential(cfg.GeminiKey):
			provider = ProviderGemini
		default:
			return nil, nil
		}
	}

	switch provider {
	case ProviderOpenAI:
		if !HasCredential(cfg.OpenAIKey) {
			return nil, nil
		}
		return NewOpenAIModel(OpenAIConfig{
			APIKey:  cfg.OpenAIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
			Timeout: cfg.Timeout,
		}), nil
	case ProviderGemini:
		if !HasCredential(cfg.GeminiKey) {
			return nil, nil
		}
		m, err := NewGeminiModel(ctx, cfg.GeminiKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown creative provider %q", cfg.Provider)
	}
}
