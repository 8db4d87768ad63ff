// internal/service/recorder.go
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/identity"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/scoring"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/store"
	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/worker"
)

// ErrIdentityRequired is returned for history operations without a
// signed-in user. Taking a test itself never gates on identity.
var ErrIdentityRequired = errors.New("history requires a resolved identity")

const appendTimeout = 5 * time.Second

type appendOutcome struct {
	identity string
	result   scoring.Result
	err      error
}

// HistoryRecorder subscribes to produced results and gets them into the
// store without ever blocking or failing the submit flow. Appends run on
// a single-worker pool so they land in submission order; failed appends
// wait in a pending queue and are retried on the next availability
// check. Every result is also mirrored in memory so history stays
// readable for this run even with the store down.
type HistoryRecorder struct {
	store  store.Store
	logger *slog.Logger
	pool   *worker.Pool[appendOutcome]

	mu      sync.Mutex
	pending []appendOutcome
	memory  map[string][]scoring.Result

	inflight sync.WaitGroup
}

func NewHistoryRecorder(s store.Store, logger *slog.Logger) *HistoryRecorder {
	r := &HistoryRecorder{
		store:  s,
		logger: logger,
		pool:   worker.NewPool[appendOutcome](1, 16),
		memory: make(map[string][]scoring.Result),
	}
	go r.drain()
	return r
}

// Record accepts a freshly produced result. Fire-and-forget for the
// caller; persistence happens on the pool worker.
func (r *HistoryRecorder) Record(id identity.Identity, result scoring.Result) {
	r.mu.Lock()
	r.memory[id.ID] = append(r.memory[id.ID], result)
	r.mu.Unlock()

	if !id.Resolved() {
		r.logger.Debug("no identity resolved, result kept in memory only", "result_id", result.ID)
		return
	}

	r.inflight.Add(1)
	r.pool.Submit(result.ID, func() appendOutcome {
		ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
		defer cancel()
		return appendOutcome{
			identity: id.ID,
			result:   result,
			err:      r.store.AppendResult(ctx, id.ID, result),
		}
	})
}

func (r *HistoryRecorder) drain() {
	for out := range r.pool.Results() {
		if o := out.Output; o.err != nil {
			r.logger.Warn("history append failed, queued for retry",
				"result_id", o.result.ID,
				"error", o.err,
			)
			r.mu.Lock()
			r.pending = append(r.pending, o)
			r.mu.Unlock()
		}
		r.inflight.Done()
	}
}

// Flush retries every pending append. The store keys appends by result
// id, so a retry racing an earlier success cannot duplicate history.
func (r *HistoryRecorder) Flush(ctx context.Context) error {
	r.mu.Lock()
	pending := r.pending
	r.pending = nil
	r.mu.Unlock()

	var failed []appendOutcome
	for _, o := range pending {
		if err := r.store.AppendResult(ctx, o.identity, o.result); err != nil {
			o.err = err
			failed = append(failed, o)
		} else {
			r.logger.Info("pending result saved to history", "result_id", o.result.ID)
		}
	}

	if len(failed) > 0 {
		r.mu.Lock()
		r.pending = append(failed, r.pending...)
		r.mu.Unlock()
		return store.ErrUnavailable
	}
	return nil
}

// History lists results for an identity, oldest first. Pending appends
// are pushed through first so a recovered store is immediately complete;
// if the store is still unavailable the in-memory history for this run
// is served instead.
func (r *HistoryRecorder) History(ctx context.Context, id identity.Identity) ([]scoring.Result, error) {
	if !id.Resolved() {
		return nil, ErrIdentityRequired
	}

	_ = r.Flush(ctx)

	results, err := r.store.ListResults(ctx, id.ID)
	if err != nil {
		r.logger.Warn("history load failed, serving in-memory history", "error", err)
		r.mu.Lock()
		defer r.mu.Unlock()
		return append([]scoring.Result(nil), r.memory[id.ID]...), nil
	}
	return results, nil
}

// PendingCount reports how many results still await persistence.
func (r *HistoryRecorder) PendingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Wait blocks until all in-flight appends have been handled. Test hook.
func (r *HistoryRecorder) Wait() {
	r.inflight.Wait()
}
