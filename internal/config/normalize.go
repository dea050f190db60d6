package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeYTDLP()
	if err := c.normalizeLLM(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.SubtitleDir) == "" {
		c.Paths.SubtitleDir = defaultSubtitleDir
	}
	if c.Paths.SubtitleDir, err = expandPath(c.Paths.SubtitleDir); err != nil {
		return fmt.Errorf("paths.subtitle_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputFile) == "" {
		c.Paths.OutputFile = defaultOutputFile
	}
	if c.Paths.OutputFile, err = expandPath(c.Paths.OutputFile); err != nil {
		return fmt.Errorf("paths.output_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.EnvFile) != "" {
		if c.Paths.EnvFile, err = expandPath(c.Paths.EnvFile); err != nil {
			return fmt.Errorf("paths.env_file: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeYTDLP() {
	c.YTDLP.Binary = strings.TrimSpace(c.YTDLP.Binary)
	if c.YTDLP.Binary == "" {
		c.YTDLP.Binary = defaultYTDLPBinary
	}
	langs := make([]string, 0, len(c.YTDLP.SubLangs))
	seen := make(map[string]struct{}, len(c.YTDLP.SubLangs))
	for _, lang := range c.YTDLP.SubLangs {
		normalized := strings.TrimSpace(lang)
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		langs = append(langs, normalized)
	}
	c.YTDLP.SubLangs = langs
}

func (c *Config) normalizeLLM() error {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	if c.LLM.Provider == "" {
		c.LLM.Provider = defaultLLMProvider
	}
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Provider == ProviderGemini {
		if c.LLM.Model == "" || c.LLM.Model == defaultOpenAIModel {
			c.LLM.Model = defaultGeminiModel
		}
		if c.LLM.BaseURL == defaultOpenAIBaseURL {
			c.LLM.BaseURL = ""
		}
	} else {
		if c.LLM.BaseURL == "" {
			c.LLM.BaseURL = defaultOpenAIBaseURL
		}
		if c.LLM.Model == "" {
			c.LLM.Model = defaultOpenAIModel
		}
	}
	if strings.TrimSpace(c.LLM.SystemPrompt) == "" {
		c.LLM.SystemPrompt = defaultSystemPrompt
	}
	if c.LLM.UserPromptPrefix == "" {
		c.LLM.UserPromptPrefix = defaultUserPromptPrefix
	}

	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if c.LLM.APIKey != "" {
		c.APIKeySource = "config"
		return nil
	}
	keys := c.apiKeyVariables()
	for _, name := range keys {
		if value, ok := os.LookupEnv(name); ok && strings.TrimSpace(value) != "" {
			c.LLM.APIKey = strings.TrimSpace(value)
			c.APIKeySource = "env:" + name
			return nil
		}
	}
	values, err := readEnvFile(c.Paths.EnvFile)
	if err != nil {
		return fmt.Errorf("paths.env_file: %w", err)
	}
	for _, name := range keys {
		if value := strings.TrimSpace(values[name]); value != "" {
			c.LLM.APIKey = value
			c.APIKeySource = "dotenv:" + name
			return nil
		}
	}
	return nil
}

func (c *Config) apiKeyVariables() []string {
	if c.LLM.Provider == ProviderGemini {
		return []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}
	}
	return []string{"OPENAI_API_KEY"}
}

// readEnvFile parses a dotenv file without touching the process environment.
// A missing file yields an empty map.
func readEnvFile(path string) (map[string]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return values, nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
