package store

import (
	"context"
	"errors"

	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/scoring"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrUnavailable signals the history store cannot be reached right
	// now. Callers keep results in a pending queue and retry; the
	// user-visible submit flow never fails on it.
	ErrUnavailable = errors.New("history store unavailable")
)

// Store is the persistence collaborator for result history. History is
// append-only per identity: implementations never reorder or delete.
type Store interface {
	AppendResult(ctx context.Context, identity string, result scoring.Result) error
	ListResults(ctx context.Context, identity string) ([]scoring.Result, error)
	Close() error
}
