package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/domain/questionbank"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/domain/testsession"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	DBPath        string // SQLite file for result history
	QuestionsFile string // static question bank, loaded once at startup

	// Pattern is the test composition: duration, per-category quotas,
	// low-time warning threshold.
	Pattern testsession.Config
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		ServerAddress:   getenvDefault("SERVER_ADDRESS", ":8080"),
		ShutdownTimeout: getDurationDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
		DBPath:          getenvDefault("DB_PATH", "tcsprep.db"),
		QuestionsFile:   getenvDefault("QUESTIONS_FILE", "data/questions.json"),
		Pattern:         testsession.DefaultConfig(),
	}

	if path := os.Getenv("TEST_PATTERN_FILE"); path != "" {
		pattern, err := loadPattern(path, cfg.Pattern)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg.Pattern = pattern
	}

	if v := os.Getenv("SESSION_DURATION_SECONDS"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("config: SESSION_DURATION_SECONDS=%q is not an integer: %v", v, err)
		}
		cfg.Pattern.DurationSeconds = seconds
	}

	if err := cfg.Pattern.Validate(); err != nil {
		log.Fatalf("config: invalid test pattern: %v", err)
	}

	return cfg
}

// patternFile is the optional YAML override for the test pattern:
//
//	duration_seconds: 1500
//	low_time_warning_seconds: 300
//	quotas:
//	  quantitative: 15
//	  logical: 8
//	  verbal: 2
type patternFile struct {
	DurationSeconds       int            `yaml:"duration_seconds"`
	LowTimeWarningSeconds int            `yaml:"low_time_warning_seconds"`
	Quotas                map[string]int `yaml:"quotas"`
}

func loadPattern(path string, base testsession.Config) (testsession.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read pattern file: %w", err)
	}

	var pf patternFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return base, fmt.Errorf("parse pattern file: %w", err)
	}

	if pf.DurationSeconds > 0 {
		base.DurationSeconds = pf.DurationSeconds
	}
	if pf.LowTimeWarningSeconds > 0 {
		base.LowTimeWarningSeconds = pf.LowTimeWarningSeconds
	}
	if len(pf.Quotas) > 0 {
		quotas := make(map[questionbank.Category]int, len(pf.Quotas))
		for raw, n := range pf.Quotas {
			category, err := questionbank.ParseCategory(raw)
			if err != nil {
				return base, fmt.Errorf("pattern file: %w", err)
			}
			quotas[category] = n
		}
		base.Quotas = quotas
	}

	return base, nil
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getDurationDefault(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}
