package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	DatabaseURL         string
	JWTSecret           string
	JWTIssuer           string
	SessionTTLMinutes   int
	SessionSweepMinutes int
	SessionStore        string // "memory" or "redis"
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:                getEnv("PORT", "8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		JWTSecret:           getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:           getEnv("JWT_ISSUER", "taskboard"),
		SessionTTLMinutes:   getEnvInt("SESSION_TTL_MINUTES", 120),
		SessionSweepMinutes: getEnvInt("SESSION_SWEEP_MINUTES", 10),
		SessionStore:        getEnv("SESSION_STORE", "memory"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RedisDB:             getEnvInt("REDIS_DB", 0),
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
