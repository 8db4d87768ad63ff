package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/api"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/domain/questionbank"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/infrastructure/config"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/service"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/store"
)

// @title           TCS Digital Prep API
// @version         1.0
// @description     Timed aptitude test simulator: take TCS Digital pattern mock tests, get scored with category breakdowns, track progress over time.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	bank, err := questionbank.LoadFile(cfg.QuestionsFile)
	if err != nil {
		logger.Error("failed to load question bank", "file", cfg.QuestionsFile, "error", err)
		os.Exit(1)
	}

	db, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	recorder := service.NewHistoryRecorder(db, logger)
	engine, err := service.NewTestEngine(bank, cfg.Pattern, recorder, logger)
	if err != nil {
		logger.Error("invalid test pattern", "error", err)
		os.Exit(1)
	}
	handler := api.NewHandler(engine, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		engine.Reset()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server",
		"address", cfg.ServerAddress,
		"questions", bank.Size(),
		"test_length", cfg.Pattern.TotalQuestions(),
	)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
