// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jonathan/resume-insight/internal/llm"
)

const (
	defaultHost       = "0.0.0.0"
	defaultPort       = 5000
	defaultLLMTimeout = 120 * time.Second
)

// Config holds all runtime settings. GoogleAPIKey is the only required
// value; everything else has a sensible default. An empty APIKey disables
// client authentication entirely.
type Config struct {
	APIKey       string
	GoogleAPIKey string
	ScoringModel string
	ChatModel    string
	Host         string
	Port         int
	Debug        bool
	LLMTimeout   time.Duration
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		APIKey:       os.Getenv("API_KEY"),
		GoogleAPIKey: os.Getenv("GOOGLE_API_KEY"),
		ScoringModel: envString("MODEL_NAME", llm.DefaultScoringModel),
		ChatModel:    envString("CHAT_MODEL_NAME", llm.DefaultChatModel),
		Host:         envString("HOST", defaultHost),
		Debug:        envBool("DEBUG"),
	}

	port, err := envInt("PORT", defaultPort)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	timeoutSecs, err := envInt("LLM_TIMEOUT_SECONDS", int(defaultLLMTimeout/time.Second))
	if err != nil {
		return nil, err
	}
	cfg.LLMTimeout = time.Duration(timeoutSecs) * time.Second

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.GoogleAPIKey == "" {
		return fmt.Errorf("config error: GOOGLE_API_KEY is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.LLMTimeout <= 0 {
		return fmt.Errorf("config error: LLM_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AuthEnabled reports whether client API key authentication is configured.
func (c *Config) AuthEnabled() bool {
	return c.APIKey != ""
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("config error: %s must be an integer, got %q", key, value)
	}
	return n, nil
}

func envBool(key string) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && value
}
