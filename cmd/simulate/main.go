// Command simulate runs one scripted test attempt end to end and prints
// the scored report. Handy for checking the bank file and test pattern
// without starting the server.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/domain/questionbank"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/domain/testsession"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/simulation"
)

func main() {
	questionsFile := flag.String("questions", "data/questions.json", "path to the question bank file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	bank, err := questionbank.LoadFile(*questionsFile)
	if err != nil {
		logger.Error("failed to load question bank", "file", *questionsFile, "error", err)
		os.Exit(1)
	}

	if err := simulation.RunAttempt(bank, testsession.DefaultConfig(), logger, os.Stdout); err != nil {
		logger.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}
