package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/playbook-leads/internal/usecase"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeFailure(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{Success: false, Error: message, Code: code})
}

// writeError maps use case errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	code := usecase.ErrorCode(err)
	writeFailure(w, statusForCode(code), err.Error(), code)
}

func statusForCode(code string) int {
	switch code {
	case usecase.CodeValidation:
		return http.StatusBadRequest
	case usecase.CodeInvalidCredentials:
		return http.StatusUnauthorized
	case usecase.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
