package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MigrationsPath string
	LogLevel       string

	// Supabase/hosted Postgres convenience:
	// - DATABASE_URL: runtime connection (often PgBouncer/pooler)
	// - DIRECT_URL: direct connection for migrations
	DatabaseURL string
	DirectURL   string

	DB DBConfig

	Supabase SupabaseConfig

	// RedisURL enables booking status notifications. Empty disables publishing.
	RedisURL string

	// AllowedOrigins is a comma-separated allowlist of frontend origins. Example:
	//   https://app.livelocal.fm,http://localhost:5173
	AllowedOrigins []string

	// StoreTimeout bounds every single call the booking executor makes to the store.
	StoreTimeout time.Duration
}

type DBConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

type SupabaseConfig struct {
	// JWTSecret is the project's JWT secret used to sign user access tokens (HS256).
	JWTSecret   string
	JWTAudience string
}

func (c Config) IsProd() bool {
	return c.AppEnv == "prod"
}

func Load() Config {
	// Convenience for local dev: load variables from .env if present.
	// In production, rely on real environment variables.
	_ = godotenv.Load()

	// Cloud Run sets PORT. Prefer it when HTTP_ADDR isn't explicitly set.
	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		if port := os.Getenv("PORT"); port != "" {
			httpAddr = ":" + port
		} else {
			httpAddr = ":8081"
		}
	}

	return Config{
		AppEnv:         env("APP_ENV", "dev"),
		HTTPAddr:       httpAddr,
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		LogLevel:       env("LOG_LEVEL", "info"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DirectURL:      os.Getenv("DIRECT_URL"),
		DB: DBConfig{
			Host:     env("DB_HOST", "localhost"),
			Port:     env("DB_PORT", "5432"),
			Name:     env("DB_NAME", "livelocal"),
			User:     env("DB_USER", "livelocal"),
			Password: env("DB_PASSWORD", "livelocal"),
			SSLMode:  env("DB_SSLMODE", "disable"),
		},
		Supabase: SupabaseConfig{
			JWTSecret:   os.Getenv("SUPABASE_JWT_SECRET"),
			JWTAudience: env("SUPABASE_JWT_AUDIENCE", "authenticated"),
		},
		RedisURL:       os.Getenv("REDIS_URL"),
		AllowedOrigins: envList("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:4173"),
		StoreTimeout:   envDuration("STORE_TIMEOUT", 10*time.Second),
	}
}

func env(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func envList(key, fallbackCSV string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = fallbackCSV
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
