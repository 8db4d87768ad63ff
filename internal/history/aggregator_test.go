package history_test

import (
	"testing"

	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/domain/questionbank"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/history"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/scoring"
)

func result(percentage, timeTaken int) scoring.Result {
	return scoring.Result{
		Percentage:       percentage,
		TimeTakenSeconds: timeTaken,
		TotalQuestions:   25,
	}
}

func TestSummarize_EmptyHistory(t *testing.T) {
	summary := history.Summarize(nil)

	if summary.TotalAttempts != 0 {
		t.Errorf("expected 0 attempts, got %d", summary.TotalAttempts)
	}
	if summary.AveragePercentage != 0 || summary.BestPercentage != 0 || summary.AverageTimeTakenSeconds != 0 {
		t.Error("expected zero statistics for empty history")
	}
	if len(summary.PercentageTrend) != 0 {
		t.Errorf("expected empty trend, got %v", summary.PercentageTrend)
	}
	if len(summary.LatestCategoryPercent) != 0 {
		t.Errorf("expected empty breakdown, got %v", summary.LatestCategoryPercent)
	}
	if summary.PerformanceLevel != "Needs Improvement" {
		t.Errorf("expected bottom band for 0%%, got %q", summary.PerformanceLevel)
	}
}

func TestAveragePercentage(t *testing.T) {
	results := []scoring.Result{result(60, 0), result(70, 0), result(81, 0)}

	// (60+70+81)/3 = 70.33 rounds to 70.
	if got := history.AveragePercentage(results); got != 70 {
		t.Errorf("expected 70, got %d", got)
	}
}

func TestBestPercentage(t *testing.T) {
	results := []scoring.Result{result(44, 0), result(92, 0), result(80, 0)}

	if got := history.BestPercentage(results); got != 92 {
		t.Errorf("expected 92, got %d", got)
	}
}

func TestAverageTimeTaken(t *testing.T) {
	results := []scoring.Result{result(0, 600), result(0, 900), result(0, 1500)}

	if got := history.AverageTimeTaken(results); got != 1000 {
		t.Errorf("expected 1000 seconds, got %d", got)
	}
}

func TestPercentageTrend(t *testing.T) {
	results := []scoring.Result{result(40, 0), result(56, 0), result(72, 0)}

	trend := history.PercentageTrend(results)
	want := []int{40, 56, 72}
	if len(trend) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(trend))
	}
	for i := range want {
		if trend[i] != want[i] {
			t.Errorf("trend[%d]: expected %d, got %d", i, want[i], trend[i])
		}
	}
}

func TestLatestCategoryBreakdown(t *testing.T) {
	older := result(50, 0)
	older.CategoryScores = map[questionbank.Category]scoring.CategoryScore{
		questionbank.CategoryQuantitative: {Correct: 5, Total: 15},
		questionbank.CategoryVerbal:       {Correct: 2, Total: 2},
	}
	latest := result(80, 0)
	latest.CategoryScores = map[questionbank.Category]scoring.CategoryScore{
		questionbank.CategoryQuantitative: {Correct: 12, Total: 15},
		questionbank.CategoryLogical:      {Correct: 6, Total: 8},
		questionbank.CategoryVerbal:       {Correct: 0, Total: 0},
	}

	breakdown := history.LatestCategoryBreakdown([]scoring.Result{older, latest})

	if got := breakdown[questionbank.CategoryQuantitative]; got != 80 {
		t.Errorf("expected latest quantitative 80%%, got %d%%", got)
	}
	// 6/8 = 75.
	if got := breakdown[questionbank.CategoryLogical]; got != 75 {
		t.Errorf("expected logical 75%%, got %d%%", got)
	}
	// An empty category in the latest attempt keeps the last real value.
	if got := breakdown[questionbank.CategoryVerbal]; got != 100 {
		t.Errorf("expected verbal to keep 100%% from the older attempt, got %d%%", got)
	}
}

func TestPerformanceLevel(t *testing.T) {
	tests := []struct {
		percentage int
		want       string
	}{
		{100, "Excellent"},
		{90, "Excellent"},
		{89, "Very Good"},
		{80, "Very Good"},
		{79, "Good"},
		{70, "Good"},
		{69, "Average"},
		{60, "Average"},
		{59, "Needs Improvement"},
		{0, "Needs Improvement"},
	}

	for _, tt := range tests {
		if got := history.PerformanceLevel(tt.percentage); got != tt.want {
			t.Errorf("%d%%: expected %q, got %q", tt.percentage, tt.want, got)
		}
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{60, "01:00"},
		{754, "12:34"},
		{1500, "25:00"},
	}

	for _, tt := range tests {
		if got := history.FormatTime(tt.seconds); got != tt.want {
			t.Errorf("%d seconds: expected %q, got %q", tt.seconds, tt.want, got)
		}
	}
}

func TestSummarize(t *testing.T) {
	first := result(90, 1200)
	first.CategoryScores = map[questionbank.Category]scoring.CategoryScore{
		questionbank.CategoryQuantitative: {Correct: 14, Total: 15},
	}
	second := result(94, 1000)
	second.CategoryScores = map[questionbank.Category]scoring.CategoryScore{
		questionbank.CategoryQuantitative: {Correct: 15, Total: 15},
	}

	summary := history.Summarize([]scoring.Result{first, second})

	if summary.TotalAttempts != 2 {
		t.Errorf("expected 2 attempts, got %d", summary.TotalAttempts)
	}
	if summary.AveragePercentage != 92 {
		t.Errorf("expected average 92, got %d", summary.AveragePercentage)
	}
	if summary.BestPercentage != 94 {
		t.Errorf("expected best 94, got %d", summary.BestPercentage)
	}
	if summary.AverageTimeTakenSeconds != 1100 {
		t.Errorf("expected average time 1100, got %d", summary.AverageTimeTakenSeconds)
	}
	if summary.PerformanceLevel != "Excellent" {
		t.Errorf("expected Excellent, got %q", summary.PerformanceLevel)
	}
	if got := summary.LatestCategoryPercent[questionbank.CategoryQuantitative]; got != 100 {
		t.Errorf("expected quantitative 100%%, got %d%%", got)
	}
}
