package gemini_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ytsum/internal/services"
	"ytsum/internal/services/gemini"
)

func newServer(t *testing.T, payload map[string]any, calls *int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if !strings.Contains(r.URL.Path, "gemini-2.5-flash") {
			t.Errorf("expected model in path, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCompleteJoinsFirstCandidateParts(t *testing.T) {
	calls := 0
	server := newServer(t, map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"role": "model", "parts": []any{
				map[string]any{"text": "Shrnutí "},
				map[string]any{"text": "videa"},
			}}},
		},
	}, &calls)

	client := gemini.NewClient(gemini.Config{APIKey: "k", Model: "gemini-2.5-flash", BaseURL: server.URL})
	text, err := client.Complete(context.Background(), "system", "transcript")
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if text != "Shrnutí videa" {
		t.Fatalf("unexpected text %q", text)
	}
	if calls != 1 {
		t.Fatalf("expected one request, got %d", calls)
	}
}

func TestCompleteWithoutCandidates(t *testing.T) {
	calls := 0
	server := newServer(t, map[string]any{"candidates": []any{}}, &calls)
	client := gemini.NewClient(gemini.Config{APIKey: "k", Model: "gemini-2.5-flash", BaseURL: server.URL})
	_, err := client.Complete(context.Background(), "", "transcript")
	var emptyErr *services.EmptyResponseError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("expected EmptyResponseError, got %v", err)
	}
	if emptyErr.Provider != "gemini" {
		t.Fatalf("unexpected provider %q", emptyErr.Provider)
	}
}

func TestCompleteRequiresKey(t *testing.T) {
	client := gemini.NewClient(gemini.Config{Model: "gemini-2.5-flash"})
	if _, err := client.Complete(context.Background(), "s", "u"); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration marker, got %v", err)
	}
}
