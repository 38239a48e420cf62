// In file: cmd/bridge/config.go
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultModelID = "claude-3-5-sonnet-20241022"

// AppConfig holds all configuration for the bridge, loaded from the
// environment and an optional config file.
type AppConfig struct {
	ModelID      string
	APIKey       string
	ServerScript string
	Port         string
	RedisAddr    string
	MaxTokens    int
}

// fileConfig mirrors the optional config.yaml overrides.
type fileConfig struct {
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

// LoadConfig loads all configuration from a .env file, environment variables
// and an optional config.yaml.
func LoadConfig() (*AppConfig, error) {
	// Only attempt to load a .env file in a local development environment.
	// In Docker (where GIN_MODE="release"), configuration is provided
	// directly as environment variables.
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("WARNING: No .env file found for local development.")
		}
	}

	cfg := &AppConfig{
		ModelID:      os.Getenv("MODEL_ID"),
		ServerScript: os.Getenv("SERVER_SCRIPT"),
		Port:         os.Getenv("PORT"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
	}
	if cfg.ModelID == "" {
		cfg.ModelID = defaultModelID
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if maxTokens, err := strconv.Atoi(os.Getenv("MAX_TOKENS")); err == nil {
		cfg.MaxTokens = maxTokens
	}

	// config.yaml, when present, overrides the environment for the model
	// settings so deployments can pin them alongside the code.
	if fileBytes, err := os.ReadFile("config.yaml"); err == nil {
		var fc fileConfig
		if err := yaml.Unmarshal(fileBytes, &fc); err != nil {
			return nil, fmt.Errorf("failed to parse config.yaml: %w", err)
		}
		if fc.Model != "" {
			cfg.ModelID = fc.Model
		}
		if fc.MaxTokens > 0 {
			cfg.MaxTokens = fc.MaxTokens
		}
	}

	if cfg.ServerScript == "" {
		return nil, fmt.Errorf("SERVER_SCRIPT environment variable is not set")
	}

	// This switch maps the model prefix to the provider's API key name.
	switch {
	case strings.HasPrefix(cfg.ModelID, "claude"):
		cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case strings.HasPrefix(cfg.ModelID, "gemini"):
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("no API key configured for model %q", cfg.ModelID)
	}

	return cfg, nil
}
