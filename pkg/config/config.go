package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all process settings. It is populated once at startup and
// never mutated afterwards, so it is safe to share across requests.
type Config struct {
	Port        string
	LLMAPIKey   string
	LLMBaseURL  string
	LLMModel    string
	LLMProvider string
	// APITimeout bounds a single upstream call, in seconds.
	APITimeout int
}

// Load reads environment variables, optionally from a .env file if present.
// Names are matched case-insensitively; unknown variables are ignored.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LLMAPIKey:   getEnv("LLM_API_KEY", ""),
		LLMBaseURL:  getEnv("LLM_BASE_URL", ""),
		LLMModel:    getEnv("LLM_MODEL", ""),
		LLMProvider: getEnv("LLM_PROVIDER", "generic"),
		APITimeout:  getEnvInt("API_TIMEOUT", 60),
	}
	return cfg
}

// Validate reports every missing required setting so a misconfigured process
// refuses to start instead of failing per-request.
func (c Config) Validate() error {
	var missing []string
	if c.LLMAPIKey == "" {
		missing = append(missing, "LLM_API_KEY")
	}
	if c.LLMBaseURL == "" {
		missing = append(missing, "LLM_BASE_URL")
	}
	if c.LLMModel == "" {
		missing = append(missing, "LLM_MODEL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if c.APITimeout <= 0 {
		return errors.New("API_TIMEOUT must be a positive number of seconds")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := lookupEnv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := lookupEnv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// lookupEnv resolves the conventional upper-case name first, then falls back
// to a case-insensitive scan of the environment.
func lookupEnv(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if ok && value != "" && strings.EqualFold(name, key) {
			return value
		}
	}
	return ""
}
