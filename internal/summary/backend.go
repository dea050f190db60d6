package summary

import (
	"log/slog"

	"ytsum/internal/config"
	"ytsum/internal/services/gemini"
	"ytsum/internal/services/llm"
)

// NewCompleter builds the completion backend selected by cfg.LLM.Provider.
func NewCompleter(cfg *config.Config) Completer {
	if cfg == nil {
		return nil
	}
	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		return gemini.NewClient(gemini.Config{
			APIKey:  cfg.LLM.APIKey,
			Model:   cfg.LLM.Model,
			BaseURL: cfg.LLM.BaseURL,
		})
	default:
		return llm.NewClient(llm.Config{
			APIKey:         cfg.LLM.APIKey,
			BaseURL:        cfg.LLM.BaseURL,
			Model:          cfg.LLM.Model,
			TimeoutSeconds: cfg.LLM.TimeoutSeconds,
		})
	}
}

// NewFromConfig constructs a Summarizer backed by the configured provider.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) *Summarizer {
	if cfg == nil {
		return New(nil, Options{}, logger)
	}
	return New(NewCompleter(cfg), Options{
		SystemPrompt:     cfg.LLM.SystemPrompt,
		UserPromptPrefix: cfg.LLM.UserPromptPrefix,
	}, logger)
}
