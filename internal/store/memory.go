package store

import (
	"context"
	"sync"

	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/scoring"
)

// MemoryStore is an in-process Store used by the simulate tool and by
// tests. Same append-only contract as SQLite, nothing survives the run.
type MemoryStore struct {
	mu      sync.Mutex
	results map[string][]scoring.Result
}

func NewMemory() *MemoryStore {
	return &MemoryStore{results: make(map[string][]scoring.Result)}
}

func (m *MemoryStore) AppendResult(_ context.Context, identity string, result scoring.Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.results[identity] {
		if existing.ID == result.ID {
			return nil
		}
	}
	m.results[identity] = append(m.results[identity], result)
	return nil
}

func (m *MemoryStore) ListResults(_ context.Context, identity string) ([]scoring.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	results := make([]scoring.Result, len(m.results[identity]))
	copy(results, m.results[identity])
	return results, nil
}

func (m *MemoryStore) Close() error { return nil }
