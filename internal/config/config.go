package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	DBDSN            string
	JWTSecret        string
	TokenTTL         time.Duration
	ClearCartOnOrder bool
	LogLevel         string
}

func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:      getenv("PORT", "8080"),
		DBDSN:     getenv("DB_DSN", "marketplace.db"),
		JWTSecret: getenv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:  24 * time.Hour,
		LogLevel:  getenv("LOG_LEVEL", "info"),
	}
	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil && d > 0 {
			cfg.TokenTTL = d
		}
	}
	// Whether a successful checkout removes the ordered items from the
	// buyer's cart. Off by default.
	cfg.ClearCartOnOrder = os.Getenv("CLEAR_CART_ON_ORDER") == "true"
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
