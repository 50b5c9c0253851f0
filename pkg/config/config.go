package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all process configuration. It is built once at startup and
// passed by reference to the components that need it.
type Config struct {
	Port          string
	DatabaseURL   string
	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	GoogleClientID string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// MatchTimeout bounds a single resume-matching oracle call. Exceeding it
	// degrades the assessment, never the submission.
	MatchTimeout time.Duration

	Debug bool
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:      getEnv("JWT_ISSUER", "jobboard"),
		JWTTTLMinutes:  getEnvInt("JWT_TTL_MINUTES", 30),
		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:  os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o"),
		MatchTimeout:   time.Duration(getEnvInt("MATCH_TIMEOUT_SECONDS", 30)) * time.Second,
		Debug:          getEnvBool("DEBUG", false),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
