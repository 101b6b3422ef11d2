// ABOUTME: Centralized configuration for the keyword matcher
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the matching system.
type Config struct {
	// Provider credentials
	OpenAIKey string
	GroqKey   string
	GeminiKey string

	// Explicit provider selection; empty means resolve by credential
	// availability (openai > groq > gemini for generation).
	EmbeddingProvider  string
	GenerationProvider string

	// Models
	EmbeddingModel string
	OpenAIModel    string
	GroqModel      string
	GeminiModel    string

	// Matching settings
	ShortlistSize  int
	MinKeywords    int
	MaxKeywords    int
	DirectCountMin int
	DirectCountMax int

	// Paths
	IndexPath   string
	UsageDBPath string

	// Provider call settings
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		OpenAIKey:          os.Getenv("OPENAI_API_KEY"),
		GroqKey:            os.Getenv("GROQ_API_KEY"),
		GeminiKey:          os.Getenv("GEMINI_API_KEY"),
		EmbeddingProvider:  os.Getenv("KEYWORDS_EMBEDDING_PROVIDER"),
		GenerationProvider: os.Getenv("KEYWORDS_GENERATION_PROVIDER"),
		EmbeddingModel:     getEnv("KEYWORDS_EMBEDDING_MODEL", "text-embedding-3-small"),
		OpenAIModel:        getEnv("KEYWORDS_OPENAI_MODEL", "gpt-4o-mini"),
		GroqModel:          getEnv("KEYWORDS_GROQ_MODEL", "llama-3.3-70b-versatile"),
		GeminiModel:        getEnv("KEYWORDS_GEMINI_MODEL", "gemini-2.0-flash"),
		ShortlistSize:      getEnvInt("KEYWORDS_SHORTLIST_SIZE", 30),
		MinKeywords:        getEnvInt("KEYWORDS_MIN_KEYWORDS", 10),
		MaxKeywords:        getEnvInt("KEYWORDS_MAX_KEYWORDS", 15),
		DirectCountMin:     getEnvInt("KEYWORDS_DIRECT_COUNT_MIN", 1),
		DirectCountMax:     getEnvInt("KEYWORDS_DIRECT_COUNT_MAX", 50),
		IndexPath:          getEnv("KEYWORDS_INDEX_PATH", "data/keyword_index.json"),
		UsageDBPath:        getEnv("KEYWORDS_USAGE_DB", "data/usage.db"),
		Timeout:            getEnvDuration("KEYWORDS_PROVIDER_TIMEOUT", 30*time.Second),
		MaxRetries:         getEnvInt("KEYWORDS_MAX_RETRIES", 3),
		RetryDelay:         getEnvDuration("KEYWORDS_RETRY_DELAY", 2*time.Second),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.ShortlistSize <= 0 {
		return fmt.Errorf("KEYWORDS_SHORTLIST_SIZE must be positive, got %d", c.ShortlistSize)
	}
	if c.MinKeywords <= 0 || c.MaxKeywords <= 0 {
		return fmt.Errorf("keyword count bounds must be positive, got min=%d max=%d", c.MinKeywords, c.MaxKeywords)
	}
	if c.MinKeywords > c.MaxKeywords {
		return fmt.Errorf("KEYWORDS_MIN_KEYWORDS (%d) must not exceed KEYWORDS_MAX_KEYWORDS (%d)", c.MinKeywords, c.MaxKeywords)
	}
	if c.DirectCountMin <= 0 || c.DirectCountMin > c.DirectCountMax {
		return fmt.Errorf("direct count bounds must satisfy 0 < min <= max, got min=%d max=%d", c.DirectCountMin, c.DirectCountMax)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("KEYWORDS_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	switch c.EmbeddingProvider {
	case "", "openai", "gemini":
	default:
		return fmt.Errorf("KEYWORDS_EMBEDDING_PROVIDER must be openai or gemini, got %q", c.EmbeddingProvider)
	}
	switch c.GenerationProvider {
	case "", "openai", "groq", "gemini":
	default:
		return fmt.Errorf("KEYWORDS_GENERATION_PROVIDER must be openai, groq or gemini, got %q", c.GenerationProvider)
	}
	return nil
}

// EmbeddingConfigured reports whether any embedding credential is set.
func (c *Config) EmbeddingConfigured() bool {
	return c.OpenAIKey != "" || c.GeminiKey != ""
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
