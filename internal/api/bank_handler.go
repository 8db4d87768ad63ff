package api

import (
	"net/http"

	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/domain/questionbank"
)

// ── Request / Response types ────────────────────────────────────────────────

type CategoryInfo struct {
	Category string `json:"category"`
	PoolSize int    `json:"pool_size"`
	Quota    int    `json:"quota"`
}

type BankResponse struct {
	Categories            []CategoryInfo `json:"categories"`
	TotalQuestions        int            `json:"total_questions"`
	DurationSeconds       int            `json:"duration_seconds"`
	LowTimeWarningSeconds int            `json:"low_time_warning_seconds"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /bank
func (h *Handler) getBank(w http.ResponseWriter, r *http.Request) {
	pattern := h.engine.Pattern()
	counts := h.engine.BankCounts()

	categories := make([]CategoryInfo, 0, len(counts))
	for _, category := range questionbank.Categories() {
		categories = append(categories, CategoryInfo{
			Category: string(category),
			PoolSize: counts[category],
			Quota:    pattern.Quotas[category],
		})
	}

	respondJSON(w, http.StatusOK, BankResponse{
		Categories:            categories,
		TotalQuestions:        pattern.TotalQuestions(),
		DurationSeconds:       pattern.DurationSeconds,
		LowTimeWarningSeconds: pattern.LowTimeWarningSeconds,
	})
}
