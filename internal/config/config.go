package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	localAPIBaseURL      = "http://localhost:5000/api"
	productionAPIBaseURL = "https://bodymax-backend.onrender.com/api"
)

// Config holds application runtime configuration.
type Config struct {
	Env          string
	APIBaseURL   string
	PollInterval time.Duration
	HTTPTimeout  time.Duration

	// Dev server settings.
	HTTPPort        string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Load reads environment variables and .env (if present).
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:             getEnv("APP_ENV", "development"),
		APIBaseURL:      os.Getenv("GYMDESK_API_URL"),
		PollInterval:    getDuration("GYMDESK_POLL_INTERVAL", 30*time.Second),
		HTTPTimeout:     getDuration("GYMDESK_HTTP_TIMEOUT", 15*time.Second),
		HTTPPort:        getEnv("HTTP_PORT", "5000"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		AccessTokenTTL:  getDuration("ACCESS_TOKEN_TTL", 24*time.Hour),
		ReadTimeout:     getDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if cfg.APIBaseURL == "" {
		if cfg.Env == "development" {
			cfg.APIBaseURL = localAPIBaseURL
		} else {
			cfg.APIBaseURL = productionAPIBaseURL
		}
	}
	return cfg, nil
}

// LoadServer is Load plus the dev server's required fields.
func LoadServer() (Config, error) {
	cfg, err := Load()
	if err != nil {
		return cfg, err
	}
	if cfg.JWTSecret == "" {
		return cfg, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		// Support seconds as integer without suffix.
		if secs, convErr := strconv.Atoi(val); convErr == nil {
			return time.Duration(secs) * time.Second
		}
		return fallback
	}
	return d
}
