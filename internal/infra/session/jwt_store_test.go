package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTStoreIssueAndValidate(t *testing.T) {
	store, err := NewJWTStore("secret", time.Hour)
	require.NoError(t, err)

	token, err := store.Issue(context.Background())
	require.NoError(t, err)

	assert.NoError(t, store.Validate(context.Background(), token))
}

func TestJWTStoreRejectsForeignSignature(t *testing.T) {
	issuer, _ := NewJWTStore("secret-a", time.Hour)
	verifier, _ := NewJWTStore("secret-b", time.Hour)

	token, err := issuer.Issue(context.Background())
	require.NoError(t, err)

	assert.ErrorIs(t, verifier.Validate(context.Background(), token), ErrInvalidSession)
}

func TestJWTStoreRejectsExpiredToken(t *testing.T) {
	store, _ := NewJWTStore("secret", time.Hour)
	issuedAt := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return issuedAt }

	token, err := store.Issue(context.Background())
	require.NoError(t, err)

	store.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	assert.ErrorIs(t, store.Validate(context.Background(), token), ErrInvalidSession)
}

func TestJWTStoreRequiresSecret(t *testing.T) {
	_, err := NewJWTStore("", time.Hour)
	assert.Error(t, err)
}

func TestJWTStoreRejectsGarbage(t *testing.T) {
	store, _ := NewJWTStore("secret", time.Hour)
	assert.ErrorIs(t, store.Validate(context.Background(), "a.b.c"), ErrInvalidSession)
}
