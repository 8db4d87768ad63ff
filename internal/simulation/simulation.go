// internal/simulation/simulation.go
package simulation

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/domain/questionbank"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/domain/testsession"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/history"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/identity"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/service"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/store"
)

// RunAttempt drives one complete scripted attempt through the engine:
// start, answer every question (three of four correctly), mark a few for
// review, submit, then print the scored report. Useful for eyeballing
// the whole pipeline without the HTTP surface.
func RunAttempt(bank *questionbank.Bank, cfg testsession.Config, logger *slog.Logger, out io.Writer) error {
	recorder := service.NewHistoryRecorder(store.NewMemory(), logger)
	engine, err := service.NewTestEngine(bank, cfg, recorder, logger)
	if err != nil {
		return err
	}

	user := identity.Identity{ID: "simulate", Verified: true}
	state, err := engine.Start(user)
	if err != nil {
		return err
	}

	for i, q := range state.Questions {
		if err := engine.Navigate(i); err != nil {
			return err
		}
		full, ok := bank.Question(q.ID)
		if !ok {
			return fmt.Errorf("question %s missing from bank", q.ID)
		}

		option := full.Correct
		if i%4 == 3 {
			option = (full.Correct + 1) % len(full.Options)
		}
		if err := engine.SelectAnswer(q.ID, option); err != nil {
			return err
		}
		if i%5 == 0 {
			if err := engine.ToggleMark(q.ID); err != nil {
				return err
			}
		}
	}

	result, err := engine.Submit()
	if err != nil {
		return err
	}
	recorder.Wait()

	fmt.Fprintf(out, "\n=== Attempt %s ===\n", state.AttemptID)
	fmt.Fprintf(out, "Score:      %d/%d (%d%%)\n", result.Score, result.TotalQuestions, result.Percentage)
	fmt.Fprintf(out, "Level:      %s\n", history.PerformanceLevel(result.Percentage))
	fmt.Fprintf(out, "Time taken: %s\n", history.FormatTime(result.TimeTakenSeconds))
	for _, category := range questionbank.Categories() {
		if cs, ok := result.CategoryScores[category]; ok {
			fmt.Fprintf(out, "  %-12s %d/%d\n", category, cs.Correct, cs.Total)
		}
	}

	summary, err := engine.Stats(context.Background(), user)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "History:    %d attempt(s), average %d%%, best %d%%\n",
		summary.TotalAttempts, summary.AveragePercentage, summary.BestPercentage)
	return nil
}
