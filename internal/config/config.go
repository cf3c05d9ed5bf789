package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultPort           = "3000"
	defaultDatabaseURL    = "postgres://localhost/acme_hr_db"
	defaultRequestTimeout = 10 * time.Second
)

type Config struct {
	Port           string
	DatabaseURL    string
	ResetDatabase  bool
	RequestTimeout time.Duration
	LogLevel       zerolog.Level
}

// Load reads the configuration from the environment once at startup.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	port := strings.TrimSpace(getenv("PORT"))
	if port == "" {
		port = defaultPort
	}
	if n, err := strconv.Atoi(port); err != nil || n < 1 || n > 65535 {
		return Config{}, fmt.Errorf("PORT must be a number in range 1..65535, got %q", port)
	}

	databaseURL := strings.TrimSpace(getenv("DATABASE_URL"))
	if databaseURL == "" {
		databaseURL = defaultDatabaseURL
	}

	resetDatabase := true
	if raw := strings.TrimSpace(getenv("RESET_DATABASE")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("RESET_DATABASE must be a boolean, got %q", raw)
		}
		resetDatabase = parsed
	}

	requestTimeout := defaultRequestTimeout
	if raw := strings.TrimSpace(getenv("REQUEST_TIMEOUT")); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			return Config{}, fmt.Errorf("REQUEST_TIMEOUT must be a positive duration, got %q", raw)
		}
		requestTimeout = parsed
	}

	logLevel := zerolog.InfoLevel
	if raw := strings.TrimSpace(getenv("LOG_LEVEL")); raw != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(raw))
		if err != nil {
			return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
		}
		logLevel = parsed
	}

	return Config{
		Port:           port,
		DatabaseURL:    databaseURL,
		ResetDatabase:  resetDatabase,
		RequestTimeout: requestTimeout,
		LogLevel:       logLevel,
	}, nil
}
