// Package config loads process configuration from the environment, with a
// local .env file honored for development.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every tunable of the povo server process.
type Config struct {
	Port          string
	AllowedOrigin string

	// External providers
	OpenAIAPIKey      string
	AnthropicAPIKey   string
	ClassifierModel   string
	GeneratorProvider string // "openai" or "anthropic"
	GeneratorModel    string

	// Intent model
	IntentModelPath string

	// Turn behavior
	ClassifyTimeout    time.Duration
	GenerateTimeout    time.Duration
	MaxExternalCalls   int
	MaxHistoryMessages int

	// HTTP rate limiting
	RateRPS   float64
	RateBurst int

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads the configuration from the environment.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Port:               getEnvDefault("PORT", "8080"),
		AllowedOrigin:      getEnvDefault("ALLOWED_ORIGIN", "*"),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey:    os.Getenv("ANTHROPIC_API_KEY"),
		ClassifierModel:    getEnvDefault("CLASSIFIER_MODEL", "gpt-4o-mini"),
		GeneratorProvider:  getEnvDefault("GENERATOR_PROVIDER", "openai"),
		GeneratorModel:     getEnvDefault("GENERATOR_MODEL", ""),
		IntentModelPath:    getEnvDefault("INTENT_MODEL_PATH", "intents.en.yaml"),
		ClassifyTimeout:    getEnvDurationDefault("CLASSIFY_TIMEOUT", 10*time.Second),
		GenerateTimeout:    getEnvDurationDefault("GENERATE_TIMEOUT", 30*time.Second),
		MaxExternalCalls:   getEnvIntDefault("MAX_EXTERNAL_CALLS", 4),
		MaxHistoryMessages: getEnvIntDefault("MAX_HISTORY_MESSAGES", 40),
		RateRPS:            getEnvFloatDefault("RATE_RPS", 5),
		RateBurst:          getEnvIntDefault("RATE_BURST", 10),
		LogLevel:           getEnvDefault("LOG_LEVEL", "info"),
		LogFormat:          getEnvDefault("LOG_FORMAT", "json"),
	}
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvIntDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloatDefault(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvDurationDefault(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return def
}
