package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string
	DatabasePath    string
	DatabaseURL     string
	StaticFilesPath string
	TemplatesPath   string
	MigrationsPath  string
	RedisURL        string
	RedisPrefix     string

	// Visitor cookies stand in for the browser's origin-scoped storage,
	// so they live for a long time.
	VisitorCookieTTL   time.Duration
	VisitorIdleTimeout time.Duration
	SigningSecret      string

	LoginRateLimit  int
	LoginRateWindow time.Duration

	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	ContactInbox string
	Debug        bool
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	return &Config{
		ServerPort:         getEnv("PORT", "8080"),
		DatabaseType:       getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath:       getEnv("DB_PATH", "./littlestars.db"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		StaticFilesPath:    getEnv("STATIC_PATH", "./static"),
		TemplatesPath:      getEnv("TEMPLATES_PATH", "./internal/templates"),
		MigrationsPath:     getEnv("MIGRATIONS_PATH", "./migrations"),
		RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RedisPrefix:        getEnv("REDIS_PREFIX", "littlestars:"),
		VisitorCookieTTL:   getEnvDuration("VISITOR_COOKIE_TTL", 365*24*time.Hour),
		VisitorIdleTimeout: getEnvDuration("VISITOR_IDLE_TIMEOUT", 2*time.Hour),
		SigningSecret:      getEnv("SIGNING_SECRET", "change-me-in-production"),
		LoginRateLimit:     getEnvInt("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow:    getEnvDuration("LOGIN_RATE_WINDOW", time.Minute),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail:       getEnv("SES_FROM_EMAIL", ""),
		SESFromName:        getEnv("SES_FROM_NAME", "Little Stars"),
		ContactInbox:       getEnv("CONTACT_INBOX", ""),
		Debug:              getEnvBool("DEBUG", false),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid integer for %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Warning: invalid boolean for %s=%q, using %v", key, value, defaultValue)
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid duration for %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
