package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration, sourced from environment
// variables (a .env file is loaded by main before construction).
type Config struct {
	Env        string
	Version    string
	AppName    string
	ServerPort string
	BaseURL    string

	// Database
	DBDriver string
	DBPath   string // sqlite file path
	DBURL    string // full DSN for mysql/postgres

	// Auth
	JWTSecret      string
	JWTExpiryHours int

	// Storage
	StorageProvider  string
	StoragePath      string
	StorageBaseURL   string
	StorageAPIKey    string
	StorageAPISecret string
	StorageEndpoint  string
	StorageBucket    string
	StorageRegion    string

	// Email
	EmailProvider  string
	EmailFrom      string
	SendGridAPIKey string

	// Features
	WebSocketEnabled bool
	CORSEnabled      bool
	CORSOrigins      []string
}

// NewConfig reads configuration from the environment, applying defaults
// suitable for local development.
func NewConfig() *Config {
	return &Config{
		Env:        getEnv("APP_ENV", "development"),
		Version:    getEnv("APP_VERSION", "1.0.0"),
		AppName:    getEnv("APP_NAME", "Gatherly"),
		ServerPort: normalizePort(getEnv("SERVER_PORT", ":8100")),
		BaseURL:    getEnv("APP_URL", "http://localhost:8100"),

		DBDriver: getEnv("DB_DRIVER", "sqlite"),
		DBPath:   getEnv("DB_PATH", "gatherly.db"),
		DBURL:    getEnv("DB_URL", ""),

		JWTSecret:      getEnv("JWT_SECRET", "change-me-in-production"),
		JWTExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 72),

		StorageProvider:  getEnv("STORAGE_PROVIDER", "local"),
		StoragePath:      getEnv("STORAGE_PATH", "storage"),
		StorageBaseURL:   getEnv("STORAGE_BASE_URL", "/storage"),
		StorageAPIKey:    getEnv("STORAGE_API_KEY", ""),
		StorageAPISecret: getEnv("STORAGE_API_SECRET", ""),
		StorageEndpoint:  getEnv("STORAGE_ENDPOINT", ""),
		StorageBucket:    getEnv("STORAGE_BUCKET", ""),
		StorageRegion:    getEnv("STORAGE_REGION", "us-east-1"),

		EmailProvider:  getEnv("EMAIL_PROVIDER", ""),
		EmailFrom:      getEnv("EMAIL_FROM", "no-reply@gatherly.local"),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),

		WebSocketEnabled: getEnvBool("WEBSOCKET_ENABLED", true),
		CORSEnabled:      getEnvBool("CORS_ENABLED", true),
		CORSOrigins:      splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func normalizePort(port string) string {
	if !strings.HasPrefix(port, ":") {
		return ":" + port
	}
	return port
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
