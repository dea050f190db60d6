package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateYTDLP(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateYTDLP() error {
	if strings.TrimSpace(c.YTDLP.Binary) == "" {
		return errors.New("ytdlp.binary must be set")
	}
	for _, lang := range c.YTDLP.SubLangs {
		if err := validateSubLang(lang); err != nil {
			return fmt.Errorf("ytdlp.sub_langs: %w", err)
		}
	}
	return nil
}

// subLangSelector matches yt-dlp exclusion and regex selectors such as
// "-live_chat" or "en-.*".
var subLangSelector = regexp.MustCompile(`^[A-Za-z0-9_.*-]+$`)

// validateSubLang accepts "all", plain BCP 47 tags, and yt-dlp selectors.
// Only plain tags are parsed as languages.
func validateSubLang(lang string) error {
	if lang == "all" {
		return nil
	}
	if strings.HasPrefix(lang, "-") || strings.ContainsAny(lang, ".*_") {
		if !subLangSelector.MatchString(lang) {
			return fmt.Errorf("invalid language selector %q", lang)
		}
		return nil
	}
	if _, err := language.Parse(lang); err != nil {
		return fmt.Errorf("invalid language %q: %w", lang, err)
	}
	return nil
}

func (c *Config) validateLLM() error {
	switch c.LLM.Provider {
	case ProviderOpenAI:
		if strings.TrimSpace(c.LLM.BaseURL) == "" {
			return errors.New("llm.base_url must be set for the openai provider")
		}
	case ProviderGemini:
	default:
		return fmt.Errorf("llm.provider: unsupported value %q (expected %q or %q)", c.LLM.Provider, ProviderOpenAI, ProviderGemini)
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model must be set")
	}
	if c.LLM.TimeoutSeconds < 0 {
		return errors.New("llm.timeout_seconds must be zero or positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
