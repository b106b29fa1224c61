package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string

	// Remote feedback service.
	APIBaseURL string
	APITimeout time.Duration

	MySQLDSN  string
	ResetDB   bool
	RedisAddr string
	RedisDB   int
	RedisPass string

	SessionSecret  string
	SessionTTL     time.Duration
	BoardTTL       time.Duration
	CookieSecure   bool
	LoginRateLimit float64

	SwaggerHost string

	SeedAdminEmail    string
	SeedAdminPassword string

	// SessionFile is where feedbackctl persists its session between runs.
	SessionFile string
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is read first when present; real
// environment variables win over it.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "3000"),
		APIBaseURL:        strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8080"), "/"),
		APITimeout:        getEnvDuration("API_TIMEOUT", 0),
		MySQLDSN:          os.Getenv("MYSQL_DSN"),
		ResetDB:           getEnvBool("RESET_DB", false),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		RedisPass:         os.Getenv("REDIS_PASSWORD"),
		SessionSecret:     getEnv("SESSION_SECRET", "change-me"),
		SessionTTL:        getEnvDuration("SESSION_TTL", 0),
		BoardTTL:          getEnvDuration("BOARD_TTL", 5*time.Minute),
		CookieSecure:      getEnvBool("COOKIE_SECURE", false),
		LoginRateLimit:    getEnvFloat("LOGIN_RATE_LIMIT", 5),
		SwaggerHost:       os.Getenv("SWAGGER_HOST"),
		SeedAdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@admin.com"),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", "admin123"),
		SessionFile:       getEnv("FEEDBACKCTL_SESSION", defaultSessionFile()),
	}
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".feedbackctl-session.json"
	}
	return home + string(os.PathSeparator) + ".feedbackctl" + string(os.PathSeparator) + "session.json"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
