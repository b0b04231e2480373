package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dataqc/dataqc/internal/insights"
)

// Config holds all settings loaded from the environment. The insights
// service settings are handed to the recommendation engine explicitly; no
// package reads ambient process state on its own.
type Config struct {
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string
	LLMTimeout time.Duration

	ListenAddr string
	OutputDir  string
}

// Load reads an optional .env file, then the environment.
func Load() *Config {
	_ = godotenv.Load() // missing .env is fine, system env still applies

	return &Config{
		LLMBaseURL: getEnv("DATAQC_LLM_BASE_URL", ""),
		LLMModel:   getEnv("DATAQC_LLM_MODEL", "llama3"),
		LLMAPIKey:  getEnv("DATAQC_LLM_API_KEY", ""),
		LLMTimeout: time.Duration(getEnvInt("DATAQC_LLM_TIMEOUT_MS", 5000)) * time.Millisecond,

		ListenAddr: getEnv("DATAQC_LISTEN_ADDR", ":8080"),
		OutputDir:  getEnv("DATAQC_OUTPUT_DIR", "."),
	}
}

// InsightsConfig maps the LLM settings into the recommendation engine's
// injected configuration.
func (c *Config) InsightsConfig() insights.Config {
	return insights.Config{
		BaseURL: c.LLMBaseURL,
		Model:   c.LLMModel,
		APIKey:  c.LLMAPIKey,
		Timeout: c.LLMTimeout,
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}
