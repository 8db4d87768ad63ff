package testsession

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Countdown delivers ticks to a session at a fixed interval from its own
// goroutine. Its lifecycle is tied 1:1 to the session being active: the
// owner starts it on Start and stops it on Submit or Reset.
//
// The onTick callback returns false to stop ticking (the session is no
// longer active). A panicking callback does not kill the countdown: the
// tick is logged, the stalled flag raised, and the next interval retried.
type Countdown struct {
	interval time.Duration
	logger   *slog.Logger

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	stalled  atomic.Bool
}

// StartCountdown begins ticking immediately.
func StartCountdown(interval time.Duration, logger *slog.Logger, onTick func() bool) *Countdown {
	c := &Countdown{
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go c.run(onTick)
	return c
}

func (c *Countdown) run(onTick func() bool) {
	defer close(c.done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			if !c.deliver(onTick) {
				return
			}
		}
	}
}

func (c *Countdown) deliver(onTick func() bool) (keepTicking bool) {
	defer func() {
		if r := recover(); r != nil {
			c.stalled.Store(true)
			c.logger.Error("countdown tick failed, retrying next interval", "panic", r)
			keepTicking = true
		}
	}()

	keepTicking = onTick()
	c.stalled.Store(false)
	return keepTicking
}

// Stop cancels the countdown and waits for the tick goroutine to exit.
// After Stop returns, no further tick is delivered. Safe to call more
// than once, but never from inside the onTick callback.
func (c *Countdown) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
	<-c.done
}

// Stalled reports whether the most recent tick attempt failed.
func (c *Countdown) Stalled() bool {
	return c.stalled.Load()
}
