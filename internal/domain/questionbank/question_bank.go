package questionbank

import (
	"errors"
	"fmt"
)

// Category is the fixed section a question belongs to. The set is closed:
// the TCS Digital pattern only has these three sections.
type Category string

const (
	CategoryQuantitative Category = "quantitative"
	CategoryLogical      Category = "logical"
	CategoryVerbal       Category = "verbal"
)

// Categories returns all categories in their canonical order.
func Categories() []Category {
	return []Category{CategoryQuantitative, CategoryLogical, CategoryVerbal}
}

// ParseCategory validates a raw category string.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryQuantitative, CategoryLogical, CategoryVerbal:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Question is a single multiple-choice question. Immutable after load.
type Question struct {
	ID       string
	Category Category
	Prompt   string
	Options  []string
	Correct  int // index into Options
}

// Bank holds the static question pools, partitioned by category.
// It is loaded once at startup and read-only afterwards.
type Bank struct {
	pools map[Category][]Question
	byID  map[string]Question
}

func New() *Bank {
	return &Bank{
		pools: make(map[Category][]Question),
		byID:  make(map[string]Question),
	}
}

// AddQuestion validates q and adds it to its category pool.
func (b *Bank) AddQuestion(q Question) error {
	if q.ID == "" {
		return errors.New("question id cannot be empty")
	}
	if _, dup := b.byID[q.ID]; dup {
		return fmt.Errorf("duplicate question id %q", q.ID)
	}
	if _, err := ParseCategory(string(q.Category)); err != nil {
		return fmt.Errorf("question %s: %w", q.ID, err)
	}
	if q.Prompt == "" {
		return fmt.Errorf("question %s: prompt cannot be empty", q.ID)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("question %s: needs at least 2 options, has %d", q.ID, len(q.Options))
	}
	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return fmt.Errorf("question %s: correct index %d out of range [0,%d)", q.ID, q.Correct, len(q.Options))
	}

	b.pools[q.Category] = append(b.pools[q.Category], q)
	b.byID[q.ID] = q
	return nil
}

// Pool returns a copy of the pool for a category, so callers can shuffle
// without touching the bank.
func (b *Bank) Pool(c Category) []Question {
	pool := make([]Question, len(b.pools[c]))
	copy(pool, b.pools[c])
	return pool
}

// PoolSize returns how many questions the bank holds for a category.
func (b *Bank) PoolSize(c Category) int {
	return len(b.pools[c])
}

// Question looks up a question by id.
func (b *Bank) Question(id string) (Question, bool) {
	q, ok := b.byID[id]
	return q, ok
}

// Size returns the total number of questions across all categories.
func (b *Bank) Size() int {
	return len(b.byID)
}
