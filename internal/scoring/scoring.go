package scoring

import (
	"errors"
	"math"
	"time"

	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/domain/questionbank"
)

// ErrEmptyQuestionSet guards the percentage division. The set builder
// never produces an empty set when quotas sum above zero, so hitting
// this means a caller skipped the boundary validation.
var ErrEmptyQuestionSet = errors.New("question set is empty")

// CategoryScore is the per-category correctness breakdown.
type CategoryScore struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Result is the outcome of one completed attempt. Immutable once built.
type Result struct {
	ID               string                                  `json:"id"`
	CompletedAt      time.Time                               `json:"completed_at"`
	Score            int                                     `json:"score"`
	TotalQuestions   int                                     `json:"total_questions"`
	Percentage       int                                     `json:"percentage"`
	TimeTakenSeconds int                                     `json:"time_taken_seconds"`
	CategoryScores   map[questionbank.Category]CategoryScore `json:"category_scores"`
}

// Score computes correctness of answers against a question set.
// A question is correct iff an answer is present and matches the
// question's correct option; missing answers count as wrong.
// The caller stamps ID, CompletedAt and TimeTakenSeconds.
func Score(answers map[string]int, set []questionbank.Question) (Result, error) {
	if len(set) == 0 {
		return Result{}, ErrEmptyQuestionSet
	}

	correct := 0
	categories := make(map[questionbank.Category]CategoryScore)

	for _, q := range set {
		cs := categories[q.Category]
		cs.Total++
		if chosen, answered := answers[q.ID]; answered && chosen == q.Correct {
			correct++
			cs.Correct++
		}
		categories[q.Category] = cs
	}

	return Result{
		Score:          correct,
		TotalQuestions: len(set),
		Percentage:     int(math.Round(100 * float64(correct) / float64(len(set)))),
		CategoryScores: categories,
	}, nil
}
