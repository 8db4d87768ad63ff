// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/domain/testsession"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/scoring"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/service"
)

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	engine *service.TestEngine
	logger *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(engine *service.TestEngine, logger *slog.Logger) *Handler {
	return &Handler{
		engine: engine,
		logger: logger,
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON parses the request body into v. Returns false after writing
// a 400 if the body is malformed (caller should return).
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return false
	}
	return true
}

// handleEngineError maps engine errors onto HTTP statuses. Returns true
// if an error was handled (caller should return).
func (h *Handler) handleEngineError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}

	var insufficient *testsession.InsufficientBankError
	switch {
	case errors.As(err, &insufficient):
		http.Error(w, insufficient.Error(), http.StatusConflict)
	case errors.Is(err, testsession.ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, scoring.ErrEmptyQuestionSet):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrIdentityRequired):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	default:
		h.logger.Error("engine error", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
	return true
}
