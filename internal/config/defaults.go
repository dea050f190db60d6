package config

const (
	defaultSubtitleDir      = "."
	defaultOutputFile       = "video_summaries.txt"
	defaultEnvFile          = ".env"
	defaultYTDLPBinary      = "yt-dlp"
	defaultLLMProvider      = ProviderOpenAI
	defaultOpenAIBaseURL    = "https://api.openai.com/v1/chat/completions"
	defaultOpenAIModel      = "gpt-4o-mini"
	defaultGeminiModel      = "gemini-2.5-flash"
	defaultSystemPrompt     = "Jsi asistent, který vytváří stručné shrnutí a vypisuje nejzajímavější informace z poskytnutého textu."
	defaultUserPromptPrefix = "Shrň následující text a vypiš nejzajímavější informace: "
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SubtitleDir: defaultSubtitleDir,
			OutputFile:  defaultOutputFile,
			EnvFile:     defaultEnvFile,
		},
		YTDLP: YTDLP{
			Binary: defaultYTDLPBinary,
		},
		LLM: LLM{
			Provider:         defaultLLMProvider,
			BaseURL:          defaultOpenAIBaseURL,
			Model:            defaultOpenAIModel,
			SystemPrompt:     defaultSystemPrompt,
			UserPromptPrefix: defaultUserPromptPrefix,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
