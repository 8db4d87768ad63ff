// internal/api/router.go
package api

import "net/http"

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Bank
	mux.HandleFunc("GET /bank", h.getBank)

	// Test session
	mux.HandleFunc("POST /test/start", h.startTest)
	mux.HandleFunc("GET /test", h.getState)
	mux.HandleFunc("POST /test/answer", h.selectAnswer)
	mux.HandleFunc("POST /test/navigate", h.navigate)
	mux.HandleFunc("POST /test/mark", h.toggleMark)
	mux.HandleFunc("POST /test/submit", h.submitTest)
	mux.HandleFunc("POST /test/reset", h.resetTest)

	// History
	mux.HandleFunc("GET /history", h.listHistory)
	mux.HandleFunc("GET /history/stats", h.getStats)
	mux.HandleFunc("GET /history/export", h.exportHistory)
}
