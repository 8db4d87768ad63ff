package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/identity"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/scoring"
)

// ── Request / Response types ────────────────────────────────────────────────

type HistoryResponse struct {
	Results []scoring.Result `json:"results"`
}

type ExportData struct {
	Version    string           `json:"version"`
	ExportedAt string           `json:"exported_at"`
	Identity   string           `json:"identity"`
	Results    []scoring.Result `json:"results"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /history
func (h *Handler) listHistory(w http.ResponseWriter, r *http.Request) {
	results, err := h.engine.History(r.Context(), identity.FromRequest(r))
	if h.handleEngineError(w, err) {
		return
	}
	if results == nil {
		results = []scoring.Result{}
	}
	respondJSON(w, http.StatusOK, HistoryResponse{Results: results})
}

// getStats godoc
// @Summary  Summary statistics over the caller's result history
// @Tags     history
// @Produce  json
// @Success  200 {object} history.Summary
// @Failure  401 {string} string "no identity resolved"
// @Router   /history/stats [get]
func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	summary, err := h.engine.Stats(r.Context(), identity.FromRequest(r))
	if h.handleEngineError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// GET /history/export
func (h *Handler) exportHistory(w http.ResponseWriter, r *http.Request) {
	id := identity.FromRequest(r)
	results, err := h.engine.History(r.Context(), id)
	if h.handleEngineError(w, err) {
		return
	}
	if results == nil {
		results = []scoring.Result{}
	}

	exportData := ExportData{
		Version:    "1.0",
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Identity:   id.ID,
		Results:    results,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=tcsprep-history.json")
	json.NewEncoder(w).Encode(exportData)
}
