package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/playbook-leads/internal/infra/http/middleware"
	"github.com/xavierca1/playbook-leads/internal/usecase"
)

type Authenticator interface {
	Execute(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error)
}

type AuthHandler struct {
	login      Authenticator
	sessionTTL time.Duration
	secure     bool
	logger     *zap.Logger
}

// NewAuthHandler sets the session cookie with the Secure flag when secure is
// true (production).
func NewAuthHandler(login Authenticator, sessionTTL time.Duration, secure bool, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{login: login, sessionTTL: sessionTTL, secure: secure, logger: logger}
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input usecase.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeFailure(w, http.StatusBadRequest, "Usuario y contraseña requeridos", usecase.CodeValidation)
		return
	}

	output, err := h.login.Execute(r.Context(), input)
	if err != nil {
		if usecase.IsTechnicalError(err) {
			h.logger.Error("login failed", zap.Error(err))
		}
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    output.Token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, LoginResponse{Success: true, Message: "Login exitoso"})
}
