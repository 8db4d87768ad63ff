// internal/service/engine.go
package service

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/domain/questionbank"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/domain/testsession"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/history"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/identity"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/scoring"
)

// TestEngine owns the one live session and serializes every operation
// on it behind a single mutex, so user intents and countdown ticks never
// interleave. It is the only writer of session state.
type TestEngine struct {
	bank     *questionbank.Bank
	cfg      testsession.Config
	recorder *HistoryRecorder
	logger   *slog.Logger

	// tickInterval is a second in production; tests shrink it.
	tickInterval time.Duration

	mu        sync.Mutex
	rng       *rand.Rand
	session   *testsession.Session
	countdown *testsession.Countdown
	owner     identity.Identity
}

func NewTestEngine(bank *questionbank.Bank, cfg testsession.Config, recorder *HistoryRecorder, logger *slog.Logger) (*TestEngine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &TestEngine{
		bank:         bank,
		cfg:          cfg,
		recorder:     recorder,
		logger:       logger,
		tickInterval: time.Second,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		session:      testsession.NewSession(cfg),
	}, nil
}

// State is the engine's read-only view for presentation: the session
// snapshot plus engine-level signals.
type State struct {
	testsession.Snapshot
	TimerStalled bool
	Result       *scoring.Result
	PendingSaves int
}

// Start assembles a fresh question set and begins a new attempt. Valid
// while no attempt is active; a finished attempt can be retaken without
// an explicit reset. A quota the bank cannot satisfy is reported before
// any session state changes.
func (e *TestEngine) Start(id identity.Identity) (State, error) {
	e.mu.Lock()
	set, err := testsession.BuildSet(e.bank, e.cfg.Quotas, e.rng)
	if err != nil {
		e.mu.Unlock()
		return State{}, err
	}
	if err := e.session.Start(set); err != nil {
		e.mu.Unlock()
		return State{}, err
	}
	e.owner = id
	old := e.countdown
	e.countdown = testsession.StartCountdown(e.tickInterval, e.logger, e.handleTick)
	state := e.stateLocked()
	e.mu.Unlock()

	// The previous attempt's countdown already exited on submit; Stop
	// just reaps it.
	if old != nil {
		old.Stop()
	}

	e.logger.Info("test started",
		"attempt", state.AttemptID,
		"user", id.ID,
		"questions", len(set),
		"duration_seconds", e.cfg.DurationSeconds,
	)
	return state, nil
}

// SelectAnswer records the chosen option for a question.
func (e *TestEngine) SelectAnswer(questionID string, option int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.SelectAnswer(questionID, option)
}

// Navigate moves the current question pointer.
func (e *TestEngine) Navigate(to int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Navigate(to)
}

// ToggleMark flips the review flag on a question.
func (e *TestEngine) ToggleMark(questionID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.ToggleMark(questionID)
}

// Submit ends the attempt on user request. Scoring is local and
// synchronous; the result goes to the recorder fire-and-forget.
func (e *TestEngine) Submit() (scoring.Result, error) {
	e.mu.Lock()
	result, err := e.session.Submit()
	owner := e.owner
	countdown := e.countdown
	e.countdown = nil
	e.mu.Unlock()

	if countdown != nil {
		countdown.Stop()
	}
	if err != nil {
		return scoring.Result{}, err
	}

	e.logger.Info("test submitted",
		"user", owner.ID,
		"score", result.Score,
		"total", result.TotalQuestions,
		"percentage", result.Percentage,
	)
	e.recorder.Record(owner, result)
	return result, nil
}

// Reset discards the current attempt from any phase.
func (e *TestEngine) Reset() {
	e.mu.Lock()
	e.session.Reset()
	countdown := e.countdown
	e.countdown = nil
	e.mu.Unlock()

	if countdown != nil {
		countdown.Stop()
	}
}

// State returns a read-only copy of the current session.
func (e *TestEngine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

func (e *TestEngine) stateLocked() State {
	state := State{
		Snapshot:     e.session.Snapshot(),
		PendingSaves: e.recorder.PendingCount(),
	}
	if r := e.session.Result(); r != nil {
		result := *r
		state.Result = &result
	}
	if e.countdown != nil {
		state.TimerStalled = e.countdown.Stalled()
	}
	return state
}

// handleTick runs on the countdown goroutine, serialized with user
// operations by the engine mutex. Returning false stops the countdown.
func (e *TestEngine) handleTick() bool {
	e.mu.Lock()
	if e.session.Phase() != testsession.PhaseActive {
		// A manual submit or reset won the race; this tick is a no-op.
		e.mu.Unlock()
		return false
	}
	remaining, err := e.session.Tick()
	if err != nil {
		e.mu.Unlock()
		return false
	}
	if remaining > 0 {
		e.mu.Unlock()
		return true
	}

	result, err := e.session.Submit()
	owner := e.owner
	e.mu.Unlock()
	if err != nil {
		return false
	}

	e.logger.Info("time expired, auto-submitting",
		"user", owner.ID,
		"score", result.Score,
		"percentage", result.Percentage,
	)
	e.recorder.Record(owner, result)
	return false
}

// History lists past results for an identity.
func (e *TestEngine) History(ctx context.Context, id identity.Identity) ([]scoring.Result, error) {
	return e.recorder.History(ctx, id)
}

// Stats summarizes an identity's history.
func (e *TestEngine) Stats(ctx context.Context, id identity.Identity) (history.Summary, error) {
	results, err := e.recorder.History(ctx, id)
	if err != nil {
		return history.Summary{}, err
	}
	return history.Summarize(results), nil
}

// Pattern exposes the configured test pattern.
func (e *TestEngine) Pattern() testsession.Config {
	return e.cfg
}

// BankCounts reports the bank's pool size per category.
func (e *TestEngine) BankCounts() map[questionbank.Category]int {
	counts := make(map[questionbank.Category]int)
	for _, category := range questionbank.Categories() {
		counts[category] = e.bank.PoolSize(category)
	}
	return counts
}
