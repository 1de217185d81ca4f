package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/playbook-leads/internal/infra/session"
)

// SessionCookieName is the cookie carrying the admin session token.
const SessionCookieName = "admin-auth"

type SessionValidator interface {
	Validate(ctx context.Context, token string) error
}

// RequireSession rejects requests without a valid admin session with 401.
// A validator that cannot answer, such as an unreachable Redis, yields 500.
func RequireSession(sessions SessionValidator, logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				unauthorized(w)
				return
			}

			err = sessions.Validate(r.Context(), cookie.Value)
			switch {
			case errors.Is(err, session.ErrInvalidSession):
				logger.Info("session rejected", zap.String("path", r.URL.Path), zap.Error(err))
				unauthorized(w)
				return
			case err != nil:
				logger.Error("session lookup failed", zap.String("path", r.URL.Path), zap.Error(err))
				sessionUnavailable(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	unauthorizedRequests.Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   "UNAUTHORIZED",
	})
}

func sessionUnavailable(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   "No se pudo verificar la sesión",
		"code":    "SESSION_STORE_ERROR",
	})
}
