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
	StaticDir  string
	LogLevel   string

	DBDriver    string
	DatabaseURL string

	RedisAddr string
	RedisDB   int
	RedisPass string

	SecretKey    string
	SessionTTL   time.Duration
	CookieSecure bool
	CSRFEnabled  bool

	GeocodeAPIKey  string
	GeocodeURL     string
	GeocodeTimeout time.Duration

	CORSAllowedOrigins []string
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is read first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		StaticDir:          getEnv("STATIC_DIR", "static"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DBDriver:           getEnv("DB_DRIVER", "mysql"),
		DatabaseURL:        getEnv("DATABASE_URL", "user:password@tcp(localhost:3306)/matchmaker?charset=utf8mb4&parseTime=True&loc=UTC"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		RedisPass:          os.Getenv("REDIS_PASSWORD"),
		SecretKey:          getEnv("SECRET_KEY", "change-me"),
		SessionTTL:         getEnvDuration("SESSION_TTL", 7*24*time.Hour),
		CookieSecure:       getEnvBool("COOKIE_SECURE", false),
		CSRFEnabled:        getEnvBool("CSRF_ENABLED", true),
		GeocodeAPIKey:      os.Getenv("GEOCODE_API_KEY"),
		GeocodeURL:         getEnv("GEOCODE_URL", "https://maps.googleapis.com/maps/api/geocode/json"),
		GeocodeTimeout:     getEnvDuration("GEOCODE_TIMEOUT", 10*time.Second),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),
	}
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

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
