// Package history derives summary statistics from an ordered sequence
// of past results. All functions are pure and treat an empty history as
// "no data", returning zero values instead of failing.
package history

import (
	"fmt"
	"math"

	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/domain/questionbank"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/scoring"
)

// Summary bundles the headline statistics for a result history.
type Summary struct {
	TotalAttempts           int                           `json:"total_attempts"`
	AveragePercentage       int                           `json:"average_percentage"`
	BestPercentage          int                           `json:"best_percentage"`
	AverageTimeTakenSeconds int                           `json:"average_time_taken_seconds"`
	PercentageTrend         []int                         `json:"percentage_trend"`
	LatestCategoryPercent   map[questionbank.Category]int `json:"latest_category_percent"`
	PerformanceLevel        string                        `json:"performance_level"`
}

// Summarize folds a history into a Summary.
func Summarize(results []scoring.Result) Summary {
	return Summary{
		TotalAttempts:           len(results),
		AveragePercentage:       AveragePercentage(results),
		BestPercentage:          BestPercentage(results),
		AverageTimeTakenSeconds: AverageTimeTaken(results),
		PercentageTrend:         PercentageTrend(results),
		LatestCategoryPercent:   LatestCategoryBreakdown(results),
		PerformanceLevel:        PerformanceLevel(AveragePercentage(results)),
	}
}

// AveragePercentage is the mean of each result's own percentage field,
// not a recomputation from raw counts, so it matches what each attempt
// originally reported.
func AveragePercentage(results []scoring.Result) int {
	if len(results) == 0 {
		return 0
	}
	sum := 0
	for _, r := range results {
		sum += r.Percentage
	}
	return int(math.Round(float64(sum) / float64(len(results))))
}

// BestPercentage is the highest percentage ever scored.
func BestPercentage(results []scoring.Result) int {
	best := 0
	for _, r := range results {
		if r.Percentage > best {
			best = r.Percentage
		}
	}
	return best
}

// AverageTimeTaken is the mean attempt duration in seconds.
func AverageTimeTaken(results []scoring.Result) int {
	if len(results) == 0 {
		return 0
	}
	sum := 0
	for _, r := range results {
		sum += r.TimeTakenSeconds
	}
	return int(math.Round(float64(sum) / float64(len(results))))
}

// PercentageTrend is the per-attempt percentage series, oldest first.
func PercentageTrend(results []scoring.Result) []int {
	trend := make([]int, len(results))
	for i, r := range results {
		trend[i] = r.Percentage
	}
	return trend
}

// LatestCategoryBreakdown returns, for each category, the percentage
// scored in the most recent attempt that carried that category.
func LatestCategoryBreakdown(results []scoring.Result) map[questionbank.Category]int {
	breakdown := make(map[questionbank.Category]int)
	for _, r := range results {
		for category, cs := range r.CategoryScores {
			if cs.Total == 0 {
				continue
			}
			breakdown[category] = int(math.Round(100 * float64(cs.Correct) / float64(cs.Total)))
		}
	}
	return breakdown
}

// PerformanceLevel maps a percentage to its report band.
func PerformanceLevel(percentage int) string {
	switch {
	case percentage >= 90:
		return "Excellent"
	case percentage >= 80:
		return "Very Good"
	case percentage >= 70:
		return "Good"
	case percentage >= 60:
		return "Average"
	default:
		return "Needs Improvement"
	}
}

// FormatTime renders seconds as mm:ss for reports.
func FormatTime(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
