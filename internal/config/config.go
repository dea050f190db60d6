package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Supported summary providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Paths contains file and directory locations.
type Paths struct {
	SubtitleDir string `toml:"subtitle_dir"`
	OutputFile  string `toml:"output_file"`
	EnvFile     string `toml:"env_file"`
}

// YTDLP contains settings for the yt-dlp executable.
type YTDLP struct {
	Binary    string   `toml:"binary"`
	SubLangs  []string `toml:"sub_langs"`
	ExtraArgs []string `toml:"extra_args"`
}

// LLM contains the summary backend connection settings.
type LLM struct {
	Provider         string `toml:"provider"`
	APIKey           string `toml:"api_key"`
	BaseURL          string `toml:"base_url"`
	Model            string `toml:"model"`
	SystemPrompt     string `toml:"system_prompt"`
	UserPromptPrefix string `toml:"user_prompt_prefix"`
	// TimeoutSeconds of zero leaves the HTTP client without a deadline.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Pipeline contains driver behaviour switches.
type Pipeline struct {
	ContinueOnError bool `toml:"continue_on_error"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for ytsum.
type Config struct {
	Paths    Paths    `toml:"paths"`
	YTDLP    YTDLP    `toml:"ytdlp"`
	LLM      LLM      `toml:"llm"`
	Pipeline Pipeline `toml:"pipeline"`
	Logging  Logging  `toml:"logging"`

	// APIKeySource records where LLM.APIKey came from (flag, config, env, dotenv).
	APIKeySource string `toml:"-"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/ytsum/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and credentials resolved.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("ytsum.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the subtitle directory and the output file's parent.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.SubtitleDir, filepath.Dir(c.Paths.OutputFile)} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// OverrideAPIKey replaces the resolved credential with a value supplied on
// the command line. Blank values are ignored.
func (c *Config) OverrideAPIKey(key string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	c.LLM.APIKey = key
	c.APIKeySource = "flag"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
