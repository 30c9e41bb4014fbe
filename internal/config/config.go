package config

import "os"

// Config holds the application configuration, read from the environment.
// Credentials may legitimately be absent: the proxy reports a missing key at
// request time, and the game client falls back to offline play.
type Config struct {
	// Direct Gemini access.
	GeminiAPIKey string
	GeminiModel  string

	// OpenAI-compatible chat-completion backend (used by the proxy and the
	// direct chat provider). Both the plain and the VITE_-prefixed env
	// spellings are honored.
	ChatAPIKey  string
	ChatBaseURL string
	ChatModel   string

	// Proxy endpoint for clients that hold no credential.
	ProxyURL string

	// Persistence: a sqlite save database, or a plain save directory when
	// no database path is set.
	SaveDBPath string
	SaveDir    string

	// Optional external level-requirement table (CSV).
	LevelTableURL string

	// Server listen address.
	ListenAddr string
}

// Load reads the configuration from environment variables.
func Load() *Config {
	return &Config{
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   os.Getenv("GEMINI_MODEL"),
		ChatAPIKey:    firstEnv("DEEPSEEK_API_KEY", "VITE_DEEPSEEK_API_KEY"),
		ChatBaseURL:   firstEnv("DEEPSEEK_BASE_URL", "VITE_DEEPSEEK_BASE_URL"),
		ChatModel:     os.Getenv("DEEPSEEK_MODEL"),
		ProxyURL:      os.Getenv("LEXIQUEST_PROXY_URL"),
		SaveDBPath:    os.Getenv("LEXIQUEST_SAVE_DB"),
		SaveDir:       envOr("LEXIQUEST_SAVE_DIR", ".saves"),
		LevelTableURL: os.Getenv("LEXIQUEST_LEVEL_TABLE_URL"),
		ListenAddr:    envOr("LEXIQUEST_ADDR", ":8788"),
	}
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
