package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"google.golang.org/genai"

	"ytsum/internal/services"
)

const providerName = "gemini"

// Config captures the settings needed to reach the Gemini API.
type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint; empty uses the SDK default.
	BaseURL string
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client handed to the SDK.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// Client sends single-turn prompts to a Gemini model.
type Client struct {
	cfg        Config
	httpClient *http.Client

	mu  sync.Mutex
	sdk *genai.Client
}

// NewClient constructs a client. The SDK connection is created on first use so
// a missing key surfaces at request time.
func NewClient(cfg Config, opts ...Option) *Client {
	client := &Client{cfg: Config{
		APIKey:  strings.TrimSpace(cfg.APIKey),
		Model:   strings.TrimSpace(cfg.Model),
		BaseURL: strings.TrimSpace(cfg.BaseURL),
	}}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Model reports the configured model name.
func (c *Client) Model() string {
	return c.cfg.Model
}

func (c *Client) connect(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sdk != nil {
		return c.sdk, nil
	}
	cc := &genai.ClientConfig{
		APIKey:     c.cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.httpClient,
	}
	if c.cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: c.cfg.BaseURL}
	}
	sdk, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}
	c.sdk = sdk
	return sdk, nil
}

// Complete generates content for userPrompt with systemPrompt as the system
// instruction and returns the text of the first candidate.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if strings.TrimSpace(userPrompt) == "" {
		return "", services.Wrap(services.ErrValidation, "summarize", "gemini generate", "user prompt required", nil)
	}
	if c.cfg.APIKey == "" {
		return "", services.Wrap(services.ErrConfiguration, "summarize", "gemini generate", "api key required", nil)
	}
	sdk, err := c.connect(ctx)
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, "summarize", "gemini generate", "create client", err)
	}

	var genCfg *genai.GenerateContentConfig
	if strings.TrimSpace(systemPrompt) != "" {
		genCfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		}
	}
	result, err := sdk.Models.GenerateContent(ctx, c.cfg.Model, genai.Text(userPrompt), genCfg)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "summarize", "gemini generate", "request failed", err)
	}
	if result == nil || len(result.Candidates) == 0 {
		return "", &services.EmptyResponseError{Provider: providerName, Body: rawResponse(result)}
	}

	var text strings.Builder
	if content := result.Candidates[0].Content; content != nil {
		for _, part := range content.Parts {
			if part != nil && part.Text != "" {
				text.WriteString(part.Text)
			}
		}
	}
	return text.String(), nil
}

func rawResponse(result *genai.GenerateContentResponse) string {
	if result == nil {
		return ""
	}
	encoded, err := json.Marshal(result)
	if err != nil {
		return ""
	}
	return string(encoded)
}
