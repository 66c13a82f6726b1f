package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env  string
	Port int

	DBURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Comma-separated list of allowed browser origins.
	AllowOrigins []string

	// Shared secret gating mutating event routes. Empty means deny everything.
	AdminPasscode string

	// Base URL of the web client, used for calendar links and checkout redirects.
	FrontendURL string

	TMDBAPIKey      string
	StripeSecretKey string

	OTLPEndpoint string
}

func Load() Config {
	env := getEnv("APP_ENV", "dev")
	port := getEnvInt("PORT", 8080)
	dbURL := buildDBURL()

	return Config{
		Env:             env,
		Port:            port,
		DBURL:           dbURL,
		RedisAddr:       getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		AllowOrigins:    splitOrigins(getEnv("ALLOW_ORIGINS", "")),
		AdminPasscode:   getEnv("ADMIN_PASSCODE", ""),
		FrontendURL:     strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		TMDBAPIKey:      strings.TrimSpace(getEnv("TMDB_API_KEY", "")),
		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		OTLPEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

func buildDBURL() string {
	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "events")
	pass := getEnv("DB_PASSWORD", "events")
	name := getEnv("DB_NAME", "events")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

// splitOrigins normalizes a comma separated origin list, trimming whitespace
// and trailing slashes so header comparisons stay exact.
func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimRight(strings.TrimSpace(p), "/")
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Println(err)
		}

		return num
	}
	return fallback
}
