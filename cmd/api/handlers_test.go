package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xavierca1/playbook-leads/internal/config"
	"github.com/xavierca1/playbook-leads/internal/infra/session"
)

func TestNewSessionStoreRefusesDevSecretInProduction(t *testing.T) {
	for _, secret := range []string{"", config.DevSessionSecret} {
		cfg := config.Config{Env: "production", SessionSecret: secret, SessionTTL: time.Hour}

		store, err := newSessionStore(cfg, zap.NewNop())

		assert.ErrorIs(t, err, config.ErrInsecureSessionSecret)
		assert.Nil(t, store)
	}
}

func TestNewSessionStoreRejectsTokensSignedWithDevSecret(t *testing.T) {
	cfg := config.Config{Env: "production", SessionSecret: strings.Repeat("s", 40), SessionTTL: time.Hour}
	store, err := newSessionStore(cfg, zap.NewNop())
	require.NoError(t, err)

	forger, err := session.NewJWTStore(config.DevSessionSecret, time.Hour)
	require.NoError(t, err)
	forged, err := forger.Issue(context.Background())
	require.NoError(t, err)

	assert.ErrorIs(t, store.Validate(context.Background(), forged), session.ErrInvalidSession)
}

func TestNewSessionStoreAllowsDevSecretOutsideProduction(t *testing.T) {
	cfg := config.Config{Env: "development", SessionSecret: config.DevSessionSecret, SessionTTL: time.Hour}

	store, err := newSessionStore(cfg, zap.NewNop())

	require.NoError(t, err)
	assert.IsType(t, &session.JWTStore{}, store)
}
