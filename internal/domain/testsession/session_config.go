package testsession

import (
	"errors"
	"fmt"

	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/domain/questionbank"
)

// Config holds the test pattern for a session: how long the countdown
// runs, how many questions are drawn per category, and when the
// presentation layer should start warning about low time.
type Config struct {
	DurationSeconds       int
	Quotas                map[questionbank.Category]int
	LowTimeWarningSeconds int // presentation hint only, never enforced
}

// DefaultConfig returns the TCS Digital pattern: 25 questions
// (15 quantitative / 8 logical / 2 verbal) in 25 minutes.
func DefaultConfig() Config {
	return Config{
		DurationSeconds: 25 * 60,
		Quotas: map[questionbank.Category]int{
			questionbank.CategoryQuantitative: 15,
			questionbank.CategoryLogical:      8,
			questionbank.CategoryVerbal:       2,
		},
		LowTimeWarningSeconds: 5 * 60,
	}
}

// TotalQuestions is the target set length, the sum of all quotas.
func (c Config) TotalQuestions() int {
	total := 0
	for _, n := range c.Quotas {
		total += n
	}
	return total
}

// Validate rejects patterns that could never build a usable session.
func (c Config) Validate() error {
	if c.DurationSeconds <= 0 {
		return fmt.Errorf("duration must be positive, got %d", c.DurationSeconds)
	}
	for category, n := range c.Quotas {
		if _, err := questionbank.ParseCategory(string(category)); err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("quota for %s cannot be negative, got %d", category, n)
		}
	}
	if c.TotalQuestions() == 0 {
		return errors.New("quotas must sum to at least one question")
	}
	return nil
}
