package api

import (
	"net/http"
	"time"

	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/identity"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/scoring"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type QuestionResponse struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Prompt   string   `json:"prompt"`
	Options  []string `json:"options"`
}

type SessionStateResponse struct {
	Phase            string             `json:"phase"`
	AttemptID        string             `json:"attempt_id,omitempty"`
	Questions        []QuestionResponse `json:"questions"`
	CurrentIndex     int                `json:"current_index"`
	Answers          map[string]int     `json:"answers"`
	Marked           []string           `json:"marked"`
	AnsweredCount    int                `json:"answered_count"`
	MarkedCount      int                `json:"marked_count"`
	RemainingSeconds int                `json:"remaining_seconds"`
	LowTime          bool               `json:"low_time"`
	TimerStalled     bool               `json:"timer_stalled"`
	StartedAt        *time.Time         `json:"started_at,omitempty"`
	Result           *scoring.Result    `json:"result,omitempty"`
	PendingSaves     int                `json:"pending_saves"`
}

type SelectAnswerRequest struct {
	QuestionID string `json:"question_id"`
	Option     int    `json:"option"`
}

type NavigateRequest struct {
	Index int `json:"index"`
}

type ToggleMarkRequest struct {
	QuestionID string `json:"question_id"`
}

type SubmitResponse struct {
	Result scoring.Result `json:"result"`
	// Saved is false while the result is still waiting on the history
	// store; the score itself is always computed locally.
	Saved bool `json:"saved"`
}

func stateResponse(state service.State) SessionStateResponse {
	questions := make([]QuestionResponse, len(state.Questions))
	for i, q := range state.Questions {
		questions[i] = QuestionResponse{
			ID:       q.ID,
			Category: string(q.Category),
			Prompt:   q.Prompt,
			Options:  q.Options,
		}
	}

	resp := SessionStateResponse{
		Phase:            state.Phase.String(),
		AttemptID:        state.AttemptID,
		Questions:        questions,
		CurrentIndex:     state.CurrentIndex,
		Answers:          state.Answers,
		Marked:           state.Marked,
		AnsweredCount:    state.AnsweredCount,
		MarkedCount:      state.MarkedCount,
		RemainingSeconds: state.RemainingSeconds,
		LowTime:          state.LowTime,
		TimerStalled:     state.TimerStalled,
		Result:           state.Result,
		PendingSaves:     state.PendingSaves,
	}
	if !state.StartedAt.IsZero() {
		startedAt := state.StartedAt
		resp.StartedAt = &startedAt
	}
	return resp
}

// ── Handlers ────────────────────────────────────────────────────────────────

// startTest godoc
// @Summary  Start a new test attempt
// @Tags     test
// @Produce  json
// @Success  201 {object} SessionStateResponse
// @Failure  409 {string} string "attempt already active or bank too small"
// @Router   /test/start [post]
func (h *Handler) startTest(w http.ResponseWriter, r *http.Request) {
	state, err := h.engine.Start(identity.FromRequest(r))
	if h.handleEngineError(w, err) {
		return
	}
	respondJSON(w, http.StatusCreated, stateResponse(state))
}

// GET /test
func (h *Handler) getState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, stateResponse(h.engine.State()))
}

// POST /test/answer
func (h *Handler) selectAnswer(w http.ResponseWriter, r *http.Request) {
	var req SelectAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if h.handleEngineError(w, h.engine.SelectAnswer(req.QuestionID, req.Option)) {
		return
	}
	respondJSON(w, http.StatusOK, stateResponse(h.engine.State()))
}

// POST /test/navigate
func (h *Handler) navigate(w http.ResponseWriter, r *http.Request) {
	var req NavigateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if h.handleEngineError(w, h.engine.Navigate(req.Index)) {
		return
	}
	respondJSON(w, http.StatusOK, stateResponse(h.engine.State()))
}

// POST /test/mark
func (h *Handler) toggleMark(w http.ResponseWriter, r *http.Request) {
	var req ToggleMarkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if h.handleEngineError(w, h.engine.ToggleMark(req.QuestionID)) {
		return
	}
	respondJSON(w, http.StatusOK, stateResponse(h.engine.State()))
}

// submitTest godoc
// @Summary  Submit the active attempt and get the scored result
// @Tags     test
// @Produce  json
// @Success  200 {object} SubmitResponse
// @Failure  409 {string} string "no active attempt"
// @Router   /test/submit [post]
func (h *Handler) submitTest(w http.ResponseWriter, r *http.Request) {
	result, err := h.engine.Submit()
	if h.handleEngineError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, SubmitResponse{
		Result: result,
		Saved:  h.engine.State().PendingSaves == 0,
	})
}

// POST /test/reset
func (h *Handler) resetTest(w http.ResponseWriter, r *http.Request) {
	h.engine.Reset()
	w.WriteHeader(http.StatusNoContent)
}
