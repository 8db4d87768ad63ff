package testsession_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/domain/questionbank"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/domain/testsession"
)

// createBank builds a bank with the given pool size per category.
func createBank(t *testing.T, sizes map[questionbank.Category]int) *questionbank.Bank {
	t.Helper()
	bank := questionbank.New()
	for category, n := range sizes {
		for i := 0; i < n; i++ {
			err := bank.AddQuestion(questionbank.Question{
				ID:       fmt.Sprintf("%s-%d", category, i),
				Category: category,
				Prompt:   fmt.Sprintf("Question %d of %s", i, category),
				Options:  []string{"A", "B", "C", "D"},
				Correct:  i % 4,
			})
			if err != nil {
				t.Fatalf("failed to build bank: %v", err)
			}
		}
	}
	return bank
}

func defaultQuotas() map[questionbank.Category]int {
	return map[questionbank.Category]int{
		questionbank.CategoryQuantitative: 15,
		questionbank.CategoryLogical:      8,
		questionbank.CategoryVerbal:       2,
	}
}

func countByCategory(set []questionbank.Question) map[questionbank.Category]int {
	counts := make(map[questionbank.Category]int)
	for _, q := range set {
		counts[q.Category]++
	}
	return counts
}

func TestBuildSet_QuotaInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	// Randomized bank sizes, always at least the quota.
	for trial := 0; trial < 50; trial++ {
		quotas := map[questionbank.Category]int{
			questionbank.CategoryQuantitative: 1 + rng.Intn(15),
			questionbank.CategoryLogical:      1 + rng.Intn(10),
			questionbank.CategoryVerbal:       rng.Intn(5),
		}
		sizes := make(map[questionbank.Category]int)
		total := 0
		for category, quota := range quotas {
			sizes[category] = quota + rng.Intn(20)
			total += quota
		}
		bank := createBank(t, sizes)

		set, err := testsession.BuildSet(bank, quotas, rng)
		if err != nil {
			t.Fatalf("trial %d: unexpected error: %v", trial, err)
		}
		if len(set) != total {
			t.Fatalf("trial %d: expected %d questions, got %d", trial, total, len(set))
		}

		counts := countByCategory(set)
		for category, quota := range quotas {
			if counts[category] != quota {
				t.Errorf("trial %d: expected %d %s questions, got %d", trial, quota, category, counts[category])
			}
		}
	}
}

func TestBuildSet_NoDuplicateIDs(t *testing.T) {
	bank := createBank(t, map[questionbank.Category]int{
		questionbank.CategoryQuantitative: 30,
		questionbank.CategoryLogical:      20,
		questionbank.CategoryVerbal:       10,
	})
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 20; trial++ {
		set, err := testsession.BuildSet(bank, defaultQuotas(), rng)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		seen := make(map[string]bool)
		for _, q := range set {
			if seen[q.ID] {
				t.Fatalf("duplicate question id %s in set", q.ID)
			}
			seen[q.ID] = true
		}
	}
}

func TestBuildSet_InsufficientBank(t *testing.T) {
	bank := createBank(t, map[questionbank.Category]int{
		questionbank.CategoryQuantitative: 15,
		questionbank.CategoryLogical:      8,
		questionbank.CategoryVerbal:       1, // quota is 2
	})

	_, err := testsession.BuildSet(bank, defaultQuotas(), rand.New(rand.NewSource(1)))
	if err == nil {
		t.Fatal("expected error for short verbal pool, got nil")
	}

	insufficient, ok := err.(*testsession.InsufficientBankError)
	if !ok {
		t.Fatalf("expected *InsufficientBankError, got %T", err)
	}
	if insufficient.Category != questionbank.CategoryVerbal {
		t.Errorf("expected verbal category, got %s", insufficient.Category)
	}
	if insufficient.Have != 1 || insufficient.Need != 2 {
		t.Errorf("expected have=1 need=2, got have=%d need=%d", insufficient.Have, insufficient.Need)
	}
}

func TestBuildSet_FreshSetsAreIndependent(t *testing.T) {
	bank := createBank(t, map[questionbank.Category]int{
		questionbank.CategoryQuantitative: 40,
		questionbank.CategoryLogical:      20,
		questionbank.CategoryVerbal:       10,
	})
	rng := rand.New(rand.NewSource(99))

	first, err := testsession.BuildSet(bank, defaultQuotas(), rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// With 40 quantitative questions for 15 slots, two identical draws
	// are statistically impossible across 10 attempts.
	for trial := 0; trial < 10; trial++ {
		set, err := testsession.BuildSet(bank, defaultQuotas(), rng)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !sameOrder(first, set) {
			return
		}
	}
	t.Error("expected repeated builds to produce different sets")
}

func TestBuildSet_ZeroQuotaCategorySkipped(t *testing.T) {
	bank := createBank(t, map[questionbank.Category]int{
		questionbank.CategoryQuantitative: 5,
	})
	quotas := map[questionbank.Category]int{
		questionbank.CategoryQuantitative: 5,
	}

	set, err := testsession.BuildSet(bank, quotas, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(set) != 5 {
		t.Errorf("expected 5 questions, got %d", len(set))
	}
	for _, q := range set {
		if q.Category != questionbank.CategoryQuantitative {
			t.Errorf("unexpected category %s in set", q.Category)
		}
	}
}

func sameOrder(a, b []questionbank.Question) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}
