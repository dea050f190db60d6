package summary

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"ytsum/internal/logging"
	"ytsum/internal/services"
)

// Completer sends one system/user prompt pair to a completion backend and
// returns the first choice content. A response without choices is reported as
// *services.EmptyResponseError.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Options configures prompt text.
type Options struct {
	SystemPrompt     string
	UserPromptPrefix string
}

// Summarizer wraps a Completer with the input checks and outcome mapping.
type Summarizer struct {
	completer Completer
	opts      Options
	logger    *slog.Logger
}

// New constructs a Summarizer. completer may be nil when no backend is
// configured; every non-empty request then fails as request_failed.
func New(completer Completer, opts Options, logger *slog.Logger) *Summarizer {
	return &Summarizer{
		completer: completer,
		opts:      opts,
		logger:    logging.NewComponentLogger(logger, "summary"),
	}
}

// Summarize returns the summary outcome for text using apiKey as the credential.
func (s *Summarizer) Summarize(ctx context.Context, text, apiKey string) Outcome {
	logger := logging.WithContext(ctx, s.logger)
	if text == "" {
		logging.WarnWithContext(logger, "no transcript text to summarize", "summary_no_text")
		return placeholder(KindNoText)
	}
	if strings.TrimSpace(apiKey) == "" {
		logging.WarnWithContext(logger, "api key not configured", "summary_no_api_key",
			logging.String("hint", "pass --APIKEY or set llm.api_key"),
		)
		return placeholder(KindNoAPIKey)
	}
	if s.completer == nil {
		logging.ErrorWithContext(logger, "no completion backend configured", "summary_request_failed")
		return placeholder(KindRequestFailed)
	}

	start := time.Now()
	content, err := s.completer.Complete(ctx, s.opts.SystemPrompt, s.opts.UserPromptPrefix+text)
	if err != nil {
		var emptyErr *services.EmptyResponseError
		if errors.As(err, &emptyErr) {
			logging.WarnWithContext(logger, "unexpected response from completion api", "summary_no_choices",
				logging.String("provider", emptyErr.Provider),
				logging.String("raw_body", emptyErr.Body),
			)
			outcome := placeholder(KindNoChoices)
			outcome.Detail = emptyErr.Body
			return outcome
		}
		logging.ErrorWithContext(logger, "completion request failed", "summary_request_failed",
			logging.Error(err),
			logging.String("failure_kind", services.FailureKind(err)),
		)
		outcome := placeholder(KindRequestFailed)
		outcome.Detail = err.Error()
		return outcome
	}

	logger.Info("summary received",
		logging.Int("transcript_chars", len([]rune(text))),
		logging.Int("summary_chars", len([]rune(content))),
		logging.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
	)
	return Outcome{Kind: KindOK, Text: content}
}
