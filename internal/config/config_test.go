package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"ytsum/internal/config"
)

func isolateEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	work := t.TempDir()
	t.Chdir(work)
	return work
}

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	work := isolateEnv(t)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent")
	}
	if cfg.Paths.OutputFile != filepath.Join(work, "video_summaries.txt") {
		t.Fatalf("unexpected output file: %q", cfg.Paths.OutputFile)
	}
	if cfg.Paths.SubtitleDir != work {
		t.Fatalf("unexpected subtitle dir: %q", cfg.Paths.SubtitleDir)
	}
	if cfg.LLM.Provider != config.ProviderOpenAI {
		t.Fatalf("unexpected provider: %q", cfg.LLM.Provider)
	}
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected model: %q", cfg.LLM.Model)
	}
	if cfg.LLM.BaseURL != "https://api.openai.com/v1/chat/completions" {
		t.Fatalf("unexpected base url: %q", cfg.LLM.BaseURL)
	}
	if cfg.LLM.APIKey != "" {
		t.Fatalf("expected empty api key, got %q", cfg.LLM.APIKey)
	}
	if cfg.LLM.TimeoutSeconds != 0 {
		t.Fatalf("expected no timeout by default, got %d", cfg.LLM.TimeoutSeconds)
	}
	if cfg.YTDLP.Binary != "yt-dlp" {
		t.Fatalf("unexpected yt-dlp binary: %q", cfg.YTDLP.Binary)
	}
}

func TestLoadAPIKeyPrecedence(t *testing.T) {
	work := isolateEnv(t)
	if err := os.WriteFile(filepath.Join(work, ".env"), []byte("OPENAI_API_KEY=from-dotenv\n"), 0o644); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LLM.APIKey != "from-dotenv" || cfg.APIKeySource != "dotenv:OPENAI_API_KEY" {
		t.Fatalf("expected dotenv key, got %q from %q", cfg.LLM.APIKey, cfg.APIKeySource)
	}
	if _, ok := os.LookupEnv("OPENAI_API_KEY"); ok && os.Getenv("OPENAI_API_KEY") != "" {
		t.Fatal("dotenv values must not leak into the process environment")
	}

	t.Setenv("OPENAI_API_KEY", "from-env")
	cfg, _, _, err = config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LLM.APIKey != "from-env" {
		t.Fatalf("expected env key to win over dotenv, got %q", cfg.LLM.APIKey)
	}

	cfg.OverrideAPIKey("  ")
	if cfg.LLM.APIKey != "from-env" {
		t.Fatalf("blank override must be ignored, got %q", cfg.LLM.APIKey)
	}
	cfg.OverrideAPIKey("from-flag")
	if cfg.LLM.APIKey != "from-flag" || cfg.APIKeySource != "flag" {
		t.Fatalf("expected flag override, got %q from %q", cfg.LLM.APIKey, cfg.APIKeySource)
	}
}

func TestLoadCustomConfigFile(t *testing.T) {
	work := isolateEnv(t)
	configPath := filepath.Join(work, "custom.toml")

	payload := map[string]any{
		"paths": map[string]any{
			"subtitle_dir": "subs",
			"output_file":  "out/summaries.txt",
		},
		"ytdlp": map[string]any{
			"sub_langs": []string{"en", " cs ", "en", "en.*", "-live_chat"},
		},
		"llm": map[string]any{
			"provider":        "gemini",
			"api_key":         "cfg-key",
			"timeout_seconds": 30,
		},
		"pipeline": map[string]any{"continue_on_error": true},
		"logging":  map[string]any{"format": "JSON", "level": "DEBUG"},
	}
	data, err := toml.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected custom config to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Paths.SubtitleDir != filepath.Join(work, "subs") {
		t.Fatalf("unexpected subtitle dir: %q", cfg.Paths.SubtitleDir)
	}
	if got := strings.Join(cfg.YTDLP.SubLangs, ","); got != "en,cs,en.*,-live_chat" {
		t.Fatalf("unexpected sub langs: %q", got)
	}
	if cfg.LLM.Model != "gemini-2.5-flash" {
		t.Fatalf("expected gemini default model, got %q", cfg.LLM.Model)
	}
	if cfg.LLM.BaseURL != "" {
		t.Fatalf("expected openai base url to be cleared for gemini, got %q", cfg.LLM.BaseURL)
	}
	if cfg.LLM.APIKey != "cfg-key" || cfg.APIKeySource != "config" {
		t.Fatalf("unexpected api key %q from %q", cfg.LLM.APIKey, cfg.APIKeySource)
	}
	if !cfg.Pipeline.ContinueOnError {
		t.Fatal("expected continue_on_error to be set")
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging settings: %+v", cfg.Logging)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories returned error: %v", err)
	}
	for _, dir := range []string{cfg.Paths.SubtitleDir, filepath.Join(work, "out")} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s to exist: %v", dir, err)
		}
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"provider", func(c *config.Config) { c.LLM.Provider = "claude" }, "llm.provider"},
		{"timeout", func(c *config.Config) { c.LLM.TimeoutSeconds = -1 }, "llm.timeout_seconds"},
		{"sub lang", func(c *config.Config) { c.YTDLP.SubLangs = []string{"not a tag"} }, "ytdlp.sub_langs"},
		{"sub lang selector", func(c *config.Config) { c.YTDLP.SubLangs = []string{"-live chat"} }, "ytdlp.sub_langs"},
		{"binary", func(c *config.Config) { c.YTDLP.Binary = " " }, "ytdlp.binary"},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"log level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateAcceptsSubLangSelectors(t *testing.T) {
	for _, lang := range []string{"all", "en", "pt-BR", "-live_chat", "en.*", "en-.*", "-en.*"} {
		cfg := config.Default()
		cfg.YTDLP.SubLangs = []string{lang}
		if err := cfg.Validate(); err != nil {
			t.Fatalf("sub_langs %q: unexpected error: %v", lang, err)
		}
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	work := isolateEnv(t)
	target := filepath.Join(work, "nested", "config.toml")

	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("Load sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.LLM.Provider != config.ProviderOpenAI {
		t.Fatalf("unexpected provider in sample: %q", cfg.LLM.Provider)
	}
}
