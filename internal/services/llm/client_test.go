package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ytsum/internal/services"
)

func TestClientCompleteReturnsFirstChoice(t *testing.T) {
	var got chatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method %s", r.Method)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Fatalf("unexpected auth header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		payload := map[string]any{
			"choices": []any{
				map[string]any{"message": map[string]any{"content": "Shrnutí videa"}},
				map[string]any{"message": map[string]any{"content": "ignored"}},
			},
		}
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL, Model: "gpt-4o-mini"})
	content, err := client.Complete(context.Background(), "system", "user text")
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if content != "Shrnutí videa" {
		t.Fatalf("unexpected content %q", content)
	}
	if got.Model != "gpt-4o-mini" || len(got.Messages) != 2 {
		t.Fatalf("unexpected request %+v", got)
	}
	if got.Messages[0].Role != "system" || got.Messages[1].Role != "user" || got.Messages[1].Content != "user text" {
		t.Fatalf("unexpected messages %+v", got.Messages)
	}
}

func TestClientCompleteEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[],"id":"x"}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL, Model: "m"})
	_, err := client.Complete(context.Background(), "s", "u")
	var emptyErr *services.EmptyResponseError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("expected EmptyResponseError, got %v", err)
	}
	if !strings.Contains(emptyErr.Body, `"id":"x"`) {
		t.Fatalf("expected raw body preserved, got %q", emptyErr.Body)
	}
}

func TestClientCompleteHTTPErrorDoesNotRetry(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL, Model: "m"})
	_, err := client.Complete(context.Background(), "s", "u")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one request, got %d", calls)
	}
}

func TestClientCompleteMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL, Model: "m"})
	_, err := client.Complete(context.Background(), "s", "u")
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestClientCompleteRequiresKey(t *testing.T) {
	client := NewClient(Config{Model: "m"})
	_, err := client.Complete(context.Background(), "s", "u")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration marker, got %v", err)
	}
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(Config{APIKey: " k ", Model: " m "})
	if client.cfg.BaseURL != DefaultBaseURL {
		t.Fatalf("unexpected base url %q", client.cfg.BaseURL)
	}
	if client.httpClient.Timeout != 0 {
		t.Fatalf("expected no timeout by default, got %s", client.httpClient.Timeout)
	}
	if client.Model() != "m" || client.cfg.APIKey != "k" {
		t.Fatalf("expected trimmed config, got %+v", client.cfg)
	}
	withTimeout := NewClient(Config{TimeoutSeconds: 30})
	if withTimeout.httpClient.Timeout.Seconds() != 30 {
		t.Fatalf("expected 30s timeout, got %s", withTimeout.httpClient.Timeout)
	}
}
