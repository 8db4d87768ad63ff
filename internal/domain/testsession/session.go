package testsession

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/domain/questionbank"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/id"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/scoring"
)

// Phase is the lifecycle state of a session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseSubmitted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseSubmitted:
		return "submitted"
	}
	return "unknown"
}

// Session is the state machine for one test attempt. It is not safe for
// concurrent use; the owning service serializes all calls.
type Session struct {
	cfg Config
	now func() time.Time

	phase     Phase
	attemptID string
	questions []questionbank.Question
	byID      map[string]questionbank.Question
	index     int
	answers   map[string]int
	marked    map[string]struct{}
	remaining int
	startedAt time.Time
	result    *scoring.Result
}

func NewSession(cfg Config) *Session {
	s := &Session{cfg: cfg, now: time.Now}
	s.toIdle()
	return s
}

func (s *Session) toIdle() {
	s.phase = PhaseIdle
	s.attemptID = ""
	s.questions = nil
	s.byID = nil
	s.index = 0
	s.answers = make(map[string]int)
	s.marked = make(map[string]struct{})
	s.remaining = s.cfg.DurationSeconds
	s.startedAt = time.Time{}
	s.result = nil
}

func (s *Session) Phase() Phase { return s.phase }

// Start begins a new attempt over the given question set. Valid from
// Idle or Submitted, so a retake does not need an explicit reset.
func (s *Session) Start(set []questionbank.Question) error {
	if s.phase == PhaseActive {
		return fmt.Errorf("start: %w", ErrInvalidTransition)
	}
	if len(set) == 0 {
		return scoring.ErrEmptyQuestionSet
	}

	s.toIdle()
	s.questions = set
	s.byID = make(map[string]questionbank.Question, len(set))
	for _, q := range set {
		s.byID[q.ID] = q
	}
	s.phase = PhaseActive
	s.attemptID = id.GenerateID()
	s.startedAt = s.now()
	return nil
}

// AttemptID identifies the current attempt; empty while Idle.
func (s *Session) AttemptID() string { return s.attemptID }

// SelectAnswer records or replaces the chosen option for a question.
// Unknown question ids and out-of-range options are rejected so the
// answer map never violates the scorer's assumptions.
func (s *Session) SelectAnswer(questionID string, option int) error {
	if s.phase != PhaseActive {
		return fmt.Errorf("select answer: %w", ErrInvalidTransition)
	}
	q, ok := s.byID[questionID]
	if !ok {
		return fmt.Errorf("question %s is not part of this session", questionID)
	}
	if option < 0 || option >= len(q.Options) {
		return fmt.Errorf("option %d out of range for question %s", option, questionID)
	}
	s.answers[questionID] = option
	return nil
}

// Navigate moves the current question pointer. An out-of-range index is
// a deliberate no-op, matching how prev/next buttons clamp at the edges.
func (s *Session) Navigate(to int) error {
	if s.phase != PhaseActive {
		return fmt.Errorf("navigate: %w", ErrInvalidTransition)
	}
	if to < 0 || to >= len(s.questions) {
		return nil
	}
	s.index = to
	return nil
}

// ToggleMark flips the review flag on a question.
func (s *Session) ToggleMark(questionID string) error {
	if s.phase != PhaseActive {
		return fmt.Errorf("toggle mark: %w", ErrInvalidTransition)
	}
	if _, ok := s.byID[questionID]; !ok {
		return nil
	}
	if _, marked := s.marked[questionID]; marked {
		delete(s.marked, questionID)
	} else {
		s.marked[questionID] = struct{}{}
	}
	return nil
}

// Tick decrements the remaining time by one second, floor 0, and
// returns the new value. At 0 the caller must submit immediately.
func (s *Session) Tick() (int, error) {
	if s.phase != PhaseActive {
		return 0, fmt.Errorf("tick: %w", ErrInvalidTransition)
	}
	if s.remaining > 0 {
		s.remaining--
	}
	return s.remaining, nil
}

// Submit scores the attempt and transitions to Submitted. It returns a
// Result exactly once per attempt; calling it again is an invalid
// transition (the countdown driver maps its own duplicate to a no-op).
func (s *Session) Submit() (scoring.Result, error) {
	if s.phase != PhaseActive {
		return scoring.Result{}, fmt.Errorf("submit: %w", ErrInvalidTransition)
	}

	result, err := scoring.Score(s.answers, s.questions)
	if err != nil {
		return scoring.Result{}, err
	}
	result.ID = uuid.NewString()
	result.CompletedAt = s.now()
	result.TimeTakenSeconds = s.cfg.DurationSeconds - s.remaining

	s.phase = PhaseSubmitted
	s.result = &result
	return result, nil
}

// Reset returns the session to its exact Idle defaults. Valid from any
// phase.
func (s *Session) Reset() {
	s.toIdle()
}

// Result returns the outcome of the last submitted attempt, or nil.
func (s *Session) Result() *scoring.Result {
	return s.result
}

// QuestionView is a question as the presentation layer sees it: the
// correct option index is withheld while a test can still be taken.
type QuestionView struct {
	ID       string
	Category questionbank.Category
	Prompt   string
	Options  []string
}

// Snapshot is a read-only copy of the session for rendering.
type Snapshot struct {
	Phase            Phase
	AttemptID        string
	Questions        []QuestionView
	CurrentIndex     int
	Answers          map[string]int
	Marked           []string
	AnsweredCount    int
	MarkedCount      int
	RemainingSeconds int
	LowTime          bool
	StartedAt        time.Time
}

// Snapshot copies the mutable state so callers can render it without
// racing the state machine.
func (s *Session) Snapshot() Snapshot {
	questions := make([]QuestionView, len(s.questions))
	for i, q := range s.questions {
		questions[i] = QuestionView{
			ID:       q.ID,
			Category: q.Category,
			Prompt:   q.Prompt,
			Options:  append([]string(nil), q.Options...),
		}
	}

	answers := make(map[string]int, len(s.answers))
	for id, option := range s.answers {
		answers[id] = option
	}

	marked := make([]string, 0, len(s.marked))
	for id := range s.marked {
		marked = append(marked, id)
	}
	sort.Strings(marked)

	return Snapshot{
		Phase:            s.phase,
		AttemptID:        s.attemptID,
		Questions:        questions,
		CurrentIndex:     s.index,
		Answers:          answers,
		Marked:           marked,
		AnsweredCount:    len(answers),
		MarkedCount:      len(marked),
		RemainingSeconds: s.remaining,
		LowTime:          s.phase == PhaseActive && s.remaining <= s.cfg.LowTimeWarningSeconds,
		StartedAt:        s.startedAt,
	}
}
