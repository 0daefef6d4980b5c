package utils

import (
	"os"
	"time"
)

type AppConfig struct {
	HTTPAddr string
	Version  string

	// Admin tokens are minted by the hosting platform; the API only verifies.
	JWTSecret string
	JWTIssuer string

	// bcrypt hash of the service key accepted by one-shot admin endpoints.
	AdminKeyHash string

	// OpenAI-compatible endpoint for draft generation.
	AIEndpoint string
	AIModel    string
	AIKey      string
	AITimeout  time.Duration

	// Quiet suppresses fetch-fallback logging (production-like mode).
	Quiet bool
}

func LoadAppConfig() AppConfig {
	cfg := AppConfig{
		HTTPAddr:     getenv("FUTUREAGENT_HTTP_ADDR", ":8080"),
		Version:      getenv("FUTUREAGENT_VERSION", "dev"),
		JWTSecret:    getenv("FUTUREAGENT_JWT_SECRET", "dev-secret-change-me"),
		JWTIssuer:    getenv("FUTUREAGENT_JWT_ISSUER", "futureagent"),
		AdminKeyHash: os.Getenv("FUTUREAGENT_ADMIN_KEY_HASH"),
		AIEndpoint:   getenv("FUTUREAGENT_AI_ENDPOINT", "https://api.openai.com/v1/chat/completions"),
		AIModel:      getenv("FUTUREAGENT_AI_MODEL", "gpt-4o-mini"),
		AIKey:        os.Getenv("FUTUREAGENT_AI_KEY"),
		AITimeout:    30 * time.Second,
	}

	if os.Getenv("FUTUREAGENT_QUIET") == "1" || os.Getenv("GIN_MODE") == "release" {
		cfg.Quiet = true
	}

	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
