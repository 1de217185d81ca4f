package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_ADDR", "")
	t.Setenv("SESSION_TTL_HOURS", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_ADDR", ":9000")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_TTL_HOURS", "12")
	t.Setenv("MAIL_PORT", "not-a-number")
	t.Setenv("CORS_ORIGINS", "https://a.com, https://b.com ,")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.Addr)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 587, cfg.MailPort)
	assert.Equal(t, []string{"https://a.com", "https://b.com"}, cfg.CORSOrigins)
}

func TestLoadProductionHasNoDefaultSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("REDIS_URL", "")

	cfg := Load()

	assert.Empty(t, cfg.SessionSecret)
	assert.ErrorIs(t, cfg.Validate(), ErrInsecureSessionSecret)
}

func TestLoadDevelopmentUsesDevSecret(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("SESSION_SECRET", "")

	cfg := Load()

	assert.Equal(t, DevSessionSecret, cfg.SessionSecret)
	assert.NoError(t, cfg.Validate())
}

func TestValidateSessionSecret(t *testing.T) {
	strong := strings.Repeat("k", 32)

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"production dev secret", Config{Env: "production", SessionSecret: DevSessionSecret}, true},
		{"production short secret", Config{Env: "production", SessionSecret: "short"}, true},
		{"production strong secret", Config{Env: "production", SessionSecret: strong}, false},
		{"production redis sessions", Config{Env: "production", RedisURL: "redis://localhost:6379"}, false},
		{"development dev secret", Config{Env: "development", SessionSecret: DevSessionSecret}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInsecureSessionSecret)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
