package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"ytsum/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp paths per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.SubtitleDir = filepath.Join(base, "subtitles")
	cfgVal.Paths.OutputFile = filepath.Join(base, "video_summaries.txt")
	cfgVal.Paths.EnvFile = filepath.Join(base, ".env")
	cfgVal.Logging.Level = "error"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithAPIKey sets the completion API key on the test config.
func WithAPIKey(key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.LLM.APIKey = key
	}
}

// WithLLMEndpoint points the completion client at url (typically an httptest server).
func WithLLMEndpoint(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.LLM.BaseURL = url
	}
}

// WithStubYTDLP writes a yt-dlp stand-in that reports videoID for metadata
// probes and writes "<videoID>.en.vtt" containing text when asked for
// subtitles. The config binary is pointed at the stub.
func WithStubYTDLP(videoID, text string) ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := fmt.Sprintf(`#!/bin/sh
for arg in "$@"; do
  case "$arg" in
    --dump-single-json)
      printf '{"id":"%[1]s","title":"stub"}\n'
      exit 0
      ;;
    --write-auto-subs)
      printf 'WEBVTT\n\n00:00:01.000 --> 00:00:02.000\n%[2]s\n' > "%[1]s.en.vtt"
      exit 0
      ;;
  esac
done
echo "unexpected arguments: $*" >&2
exit 2
`, videoID, text)
		target := filepath.Join(binDir, "yt-dlp")
		if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
			b.t.Fatalf("write stub yt-dlp: %v", err)
		}
		b.cfg.YTDLP.Binary = target
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.OutputFile)
}

// WriteConfigFile stores cfg as TOML under the config's base directory and
// returns the file path.
func WriteConfigFile(t testing.TB, cfg *config.Config) string {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(BaseDir(cfg), "config.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
