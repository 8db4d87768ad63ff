// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/domain/questionbank"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/scoring"
)

const schema = `
CREATE TABLE IF NOT EXISTS results (
    id TEXT PRIMARY KEY,
    identity TEXT NOT NULL,
    completed_at TEXT NOT NULL,
    score INTEGER NOT NULL,
    total_questions INTEGER NOT NULL,
    percentage INTEGER NOT NULL,
    time_taken_seconds INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_results_identity ON results(identity);

CREATE TABLE IF NOT EXISTS result_categories (
    result_id TEXT NOT NULL,
    category TEXT NOT NULL,
    correct INTEGER NOT NULL,
    total INTEGER NOT NULL,
    PRIMARY KEY (result_id, category),
    FOREIGN KEY (result_id) REFERENCES results(id) ON DELETE CASCADE
);
`

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// AppendResult writes one result and its category breakdown in a single
// transaction. The result id is the conflict key, so retrying an append
// that already landed is harmless and history never holds duplicates.
func (s *SQLiteStore) AppendResult(ctx context.Context, identity string, result scoring.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO results (id, identity, completed_at, score, total_questions, percentage, time_taken_seconds) VALUES (?, ?, ?, ?, ?, ?, ?)",
		result.ID, identity, result.CompletedAt.UTC().Format(time.RFC3339),
		result.Score, result.TotalQuestions, result.Percentage, result.TimeTakenSeconds,
	)
	if err != nil {
		return err
	}

	for category, cs := range result.CategoryScores {
		_, err = tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO result_categories (result_id, category, correct, total) VALUES (?, ?, ?, ?)",
			result.ID, string(category), cs.Correct, cs.Total,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListResults returns the history for an identity in append order.
func (s *SQLiteStore) ListResults(ctx context.Context, identity string) ([]scoring.Result, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, completed_at, score, total_questions, percentage, time_taken_seconds FROM results WHERE identity = ? ORDER BY rowid",
		identity,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []scoring.Result
	for rows.Next() {
		var r scoring.Result
		var completedAt string
		if err := rows.Scan(&r.ID, &completedAt, &r.Score, &r.TotalQuestions, &r.Percentage, &r.TimeTakenSeconds); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, completedAt); err == nil {
			r.CompletedAt = t
		}
		r.CategoryScores = make(map[questionbank.Category]scoring.CategoryScore)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range results {
		if err := s.loadCategories(ctx, &results[i]); err != nil {
			return nil, err
		}
	}
	return results, nil
}

func (s *SQLiteStore) loadCategories(ctx context.Context, result *scoring.Result) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT category, correct, total FROM result_categories WHERE result_id = ?",
		result.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var cs scoring.CategoryScore
		if err := rows.Scan(&category, &cs.Correct, &cs.Total); err != nil {
			return err
		}
		result.CategoryScores[questionbank.Category(category)] = cs
	}
	return rows.Err()
}
