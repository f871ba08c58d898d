package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port string

	// Database. DatabaseURL wins when set; otherwise the discrete fields
	// are assembled into a URI with the password percent-encoded.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string

	// Hosted model.
	LLMAPIKey    string
	LLMBaseURL   string
	LLMModel     string
	LLMTimeout   time.Duration
	LLMRetries   int
	QueryTimeout time.Duration

	// Optional bearer auth for /api/v1 routes.
	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	CORSOrigins []string

	// Chat endpoint rate limit (requests per minute per client IP).
	ChatRatePerMinute int
	ChatRateBurst     int
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:        fallback(os.Getenv("PORT"), "8080"),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBUser:      fallback(os.Getenv("DB_USER"), "postgres"),
		DBPass:      os.Getenv("DB_PASS"),
		DBHost:      fallback(os.Getenv("DB_HOST"), "127.0.0.1"),
		DBPort:      fallback(os.Getenv("DB_PORT"), "5432"),
		DBName:      fallback(os.Getenv("DB_NAME"), "fintrack"),
		LLMAPIKey:   firstNonEmpty(os.Getenv("LLM_API_KEY"), os.Getenv("GOOGLE_API_KEY")),
		LLMBaseURL:  fallback(os.Getenv("LLM_BASE_URL"), "https://generativelanguage.googleapis.com/v1beta/openai/"),
		LLMModel:    fallback(os.Getenv("LLM_MODEL"), "gemini-2.5-flash"),
		JWTSecret:   strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET")),
		JWTIssuer:   fallback(os.Getenv("AUTH_JWT_ISSUER"), "fintrack-backend"),
		CORSOrigins: parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
	}

	cfg.LLMTimeout = secondsEnv("LLM_TIMEOUT_SECONDS", 30*time.Second)
	cfg.QueryTimeout = secondsEnv("QUERY_TIMEOUT_SECONDS", 10*time.Second)
	cfg.LLMRetries = nonNegativeIntEnv("LLM_MAX_RETRIES", 2)
	cfg.JWTTTL = minutesEnv("AUTH_JWT_TTL_MINUTES", 60*time.Minute)
	cfg.ChatRatePerMinute = intEnv("CHAT_RATE_PER_MINUTE", 20)
	cfg.ChatRateBurst = intEnv("CHAT_RATE_BURST", 5)

	if cfg.DatabaseURL == "" && cfg.DBPass == "" {
		return Config{}, errors.New("DATABASE_URL or DB_PASS is required")
	}

	return cfg, nil
}

// DSN returns the Postgres connection URI. Discrete credentials are
// embedded with the password percent-encoded so special characters
// survive URI parsing.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		url.QueryEscape(c.DBUser), url.QueryEscape(c.DBPass),
		c.DBHost, c.DBPort, c.DBName,
	)
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// AuthEnabled reports whether the bearer-token gate should be active.
func (c Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func intEnv(key string, def int) int {
	if v, err := strconv.Atoi(fallback(os.Getenv(key), "")); err == nil && v > 0 {
		return v
	}
	return def
}

// nonNegativeIntEnv accepts an explicit 0, which intEnv treats as unset.
// Setting LLM_MAX_RETRIES=0 genuinely disables retries.
func nonNegativeIntEnv(key string, def int) int {
	if v, err := strconv.Atoi(fallback(os.Getenv(key), "")); err == nil && v >= 0 {
		return v
	}
	return def
}

func secondsEnv(key string, def time.Duration) time.Duration {
	if v, err := strconv.Atoi(fallback(os.Getenv(key), "")); err == nil && v > 0 {
		return time.Duration(v) * time.Second
	}
	return def
}

func minutesEnv(key string, def time.Duration) time.Duration {
	if v, err := strconv.Atoi(fallback(os.Getenv(key), "")); err == nil && v > 0 {
		return time.Duration(v) * time.Minute
	}
	return def
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
