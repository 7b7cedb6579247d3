// Package ai produces structured root-cause analyses of tickets by calling
// a language-model backend. The backend is a single capability behind the
// Analyzer interface; which implementation is active is decided once, at
// construction time, from configuration.
package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nhle/bugboard/internal/model"
)

// Analyzer is the analysis capability: one ticket in, one structured
// analysis out. Implementations make a single attempt; callers decide
// whether to ask again.
type Analyzer interface {
	// Analyze sends the ticket's title, description, and repository
	// context to the backend and returns the parsed analysis.
	Analyze(ctx context.Context, title, description, repoContext string) (*model.AnalysisResult, error)

	// Name identifies the backend for logging and activity records.
	Name() string
}

// ErrMissingCredential is returned when a backend is constructed without an
// API key. No network call is attempted in that state.
var ErrMissingCredential = errors.New("AI API key is not configured")

// ErrEmptyOutput is returned when the model replied with no usable text.
var ErrEmptyOutput = errors.New("empty response from model")

// ProviderDenialError carries a provider-side refusal (rate limit, invalid
// credential, exhausted quota) with a message fit for direct display.
type ProviderDenialError struct {
	Provider string
	Message  string
}

func (e *ProviderDenialError) Error() string {
	return e.Message
}

// New selects and constructs the analyzer named by cfg.Provider. When apiKey
// is empty the canned fallback is returned instead so the application stays
// usable without live credentials; the substitution is logged loudly and
// every canned result is marked as such.
func New(cfg model.AIConfig, apiKey string) (Analyzer, error) {
	if apiKey == "" {
		slog.Warn("no AI API key configured, analyses will use the canned fallback")
		return NewCanned(), nil
	}

	switch cfg.Provider {
	case "", "gemini":
		return NewGemini(apiKey, cfg.Model)
	case "openrouter":
		return NewOpenRouter(apiKey, cfg.Model, cfg.MaxTokens), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}
