package testsession_test

import (
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/domain/testsession"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCountdown_DeliversTicks(t *testing.T) {
	ticks := make(chan struct{}, 16)
	c := testsession.StartCountdown(time.Millisecond, discardLogger(), func() bool {
		select {
		case ticks <- struct{}{}:
		default:
		}
		return true
	})
	defer c.Stop()

	for i := 0; i < 3; i++ {
		select {
		case <-ticks:
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for tick")
		}
	}
}

func TestCountdown_StopIsSynchronous(t *testing.T) {
	var ticks atomic.Int64
	c := testsession.StartCountdown(time.Millisecond, discardLogger(), func() bool {
		ticks.Add(1)
		return true
	})

	for ticks.Load() == 0 {
		time.Sleep(time.Millisecond)
	}

	c.Stop()
	after := ticks.Load()

	// No tick may land after Stop returns.
	time.Sleep(20 * time.Millisecond)
	if got := ticks.Load(); got != after {
		t.Errorf("tick delivered after Stop: %d -> %d", after, got)
	}

	// Stop is idempotent.
	c.Stop()
}

func TestCountdown_StopsWhenCallbackReturnsFalse(t *testing.T) {
	var ticks atomic.Int64
	c := testsession.StartCountdown(time.Millisecond, discardLogger(), func() bool {
		return ticks.Add(1) < 3
	})

	deadline := time.Now().Add(time.Second)
	for ticks.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if ticks.Load() < 3 {
		t.Fatal("callback never reached its third tick")
	}

	// The goroutine exited on its own; Stop must still return promptly.
	done := make(chan struct{})
	go func() {
		c.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked after callback stopped the countdown")
	}

	time.Sleep(20 * time.Millisecond)
	if got := ticks.Load(); got != 3 {
		t.Errorf("expected exactly 3 ticks, got %d", got)
	}
}

func TestCountdown_SurvivesPanickingCallback(t *testing.T) {
	var ticks atomic.Int64
	c := testsession.StartCountdown(time.Millisecond, discardLogger(), func() bool {
		if ticks.Add(1) == 1 {
			panic("boom")
		}
		return true
	})
	defer c.Stop()

	// First tick panics and raises the stalled flag; the countdown keeps
	// going and the next clean tick clears it.
	deadline := time.Now().Add(time.Second)
	for ticks.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if ticks.Load() < 2 {
		t.Fatal("countdown died after a panicking tick")
	}

	for c.Stalled() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if c.Stalled() {
		t.Error("expected stalled flag to clear after a successful tick")
	}
}
