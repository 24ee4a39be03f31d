package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config del frontend web (BFF).
type Config struct {
	HTTP struct {
		Addr         string
		CookieSecure bool
	}
	Backend struct {
		BaseURL string
		// 0 = sin timeout (una request colgada deja la región sin actualizar)
		Timeout time.Duration
	}
	Session struct {
		Store string // memory | redis | postgres
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	DB struct {
		DSN string
	}
	Log struct {
		Level   string
		Format  string
		AppName string
	}
}

const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Load carga .env si existe y después lee el entorno con defaults.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("ADDR", ":8080")
	cfg.HTTP.CookieSecure = parseBool(getEnv("COOKIE_SECURE", "false"))

	cfg.Backend.BaseURL = strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:9002"), "/")
	cfg.Backend.Timeout = parseDuration(getEnv("BACKEND_TIMEOUT", "0"))

	cfg.Session.Store = strings.ToLower(getEnv("SESSION_STORE", StoreMemory))

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)

	cfg.DB.DSN = getEnv("DB_DSN", "")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "text")
	cfg.Log.AppName = getEnv("APP_NAME", "petcare-web")

	return cfg
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func parseInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

// parseDuration acepta "30s", "1m" o segundos enteros ("30").
func parseDuration(s string) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return 0
}
