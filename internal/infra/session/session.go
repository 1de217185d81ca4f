// Package session issues and validates admin session tokens. A session
// carries no identity beyond "authenticated operator".
package session

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidSession = errors.New("invalid or expired session")

// DefaultTTL matches the admin-auth cookie max-age.
const DefaultTTL = 7 * 24 * time.Hour

type Store interface {
	Issue(ctx context.Context) (string, error)
	Validate(ctx context.Context, token string) error
	TTL() time.Duration
}
