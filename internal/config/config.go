package config

import (
	"os"
	"time"
)

type AppConfig struct {
	// Server
	HTTPAddr    string
	CORSOrigin  string
	DatabaseURL string
	RedisAddr   string
	RedisPass   string

	// Session tokens
	SessionSecret string
	TokenIssuer   string
	TokenAudience string
	SessionTTL    time.Duration

	// Google OAuth
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// Bootstrap admin
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// Load loads environment variables into AppConfig. Secret values are
// consumed here and never logged.
func Load() AppConfig {
	return AppConfig{
		HTTPAddr:    getEnv("HTTP_ADDR", ":8000"),
		CORSOrigin:  getEnv("CORS_ORIGIN", "*"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:   getEnv("REDIS_PASS", ""),

		SessionSecret: getEnv("SESSION_SECRET", ""),
		TokenIssuer:   getEnv("TOKEN_ISSUER", "ai-gateway"),
		TokenAudience: getEnv("TOKEN_AUDIENCE", "ai-gateway-console"),
		SessionTTL:    720 * time.Hour,

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8000/api/v1/auth/google/callback"),

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		AdminName:     getEnv("ADMIN_NAME", "Administrator"),
	}
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
