package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(envFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "postgres://localhost/acme_hr_db", cfg.DatabaseURL)
	assert.True(t, cfg.ResetDatabase)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := load(envFrom(map[string]string{
		"PORT":            "8080",
		"DATABASE_URL":    "postgres://db:5432/hr",
		"RESET_DATABASE":  "false",
		"REQUEST_TIMEOUT": "2s",
		"LOG_LEVEL":       "DEBUG",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres://db:5432/hr", cfg.DatabaseURL)
	assert.False(t, cfg.ResetDatabase)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"port not a number":    {"PORT": "http"},
		"port out of range":    {"PORT": "70000"},
		"reset not boolean":    {"RESET_DATABASE": "sometimes"},
		"timeout malformed":    {"REQUEST_TIMEOUT": "soon"},
		"timeout not positive": {"REQUEST_TIMEOUT": "0s"},
		"unknown log level":    {"LOG_LEVEL": "loud"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := load(envFrom(env))
			assert.Error(t, err)
		})
	}
}
