package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	applog "shinyshoes/internal/log"
)

type Config struct {
	Port     string
	DBDSN    string
	LogFile  string
	LogLevel string

	// Cart persistence backend: "sqlite" (default) or "redis".
	CartStore string
	RedisURL  string
	CartTTL   time.Duration

	GenAIKey     string
	GenAIModel   string
	GenAITimeout time.Duration
	GenAIRPS     float64

	OrderTimeout          time.Duration
	CheckoutRedirectDelay time.Duration
	RateLimit             int

	// Idle sessions are dropped from memory after this long. Zero keeps them forever.
	SessionTTL time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	_ = godotenv.Load()

	key := getEnv("GEMINI_API_KEY", "")
	if key == "" {
		key = getEnv("API_KEY", "")
	}

	cfg := Config{
		Port:     getEnv("PORT", "8080"),
		DBDSN:    getEnv("DB_DSN", "shinyshoes.db"), // sqlite file in project root
		LogFile:  getEnv("LOG_FILE", ""),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		CartStore: getEnv("CART_STORE", "sqlite"),
		RedisURL:  getEnv("REDIS_URL", ""),
		CartTTL:   getEnvAsDuration("CART_TTL", 0),

		GenAIKey:     key,
		GenAIModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GenAITimeout: getEnvAsDuration("GENAI_TIMEOUT", 10*time.Second),
		GenAIRPS:     getEnvAsFloat("GENAI_RPS", 2),

		OrderTimeout:          getEnvAsDuration("ORDER_TIMEOUT", 10*time.Second),
		CheckoutRedirectDelay: getEnvAsDuration("CHECKOUT_REDIRECT_DELAY", 3*time.Second),
		RateLimit:             getEnvAsInt("RATE_LIMIT", 60),

		SessionTTL: getEnvAsDuration("SESSION_TTL", 30*time.Minute),
	}
	return cfg
}

// Log records the effective settings. Call it once the log level and sink are set.
func (cfg Config) Log() {
	applog.Info(nil, "config.loaded", map[string]any{
		"port":        cfg.Port,
		"db_dsn":      cfg.DBDSN,
		"log_file":    cfg.LogFile,
		"log_level":   cfg.LogLevel,
		"cart_store":  cfg.CartStore,
		"redis":       cfg.RedisURL != "",
		"genai_key":   mask(cfg.GenAIKey),
		"genai":       cfg.GenAIModel,
		"session_ttl": cfg.SessionTTL.String(),
	})
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvAsFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvAsDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}
