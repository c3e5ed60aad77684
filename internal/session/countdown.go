package session

import (
	"sync"
	"time"
)

// Countdown is a single cancellable cooldown. Start arms it for a duration,
// Cancel disarms it; Remaining reports how long until it expires. Used for
// the resend-code cooldown, which must stop cleanly when the visitor leaves
// the verification screen.
type Countdown struct {
	mu       sync.Mutex
	timer    *time.Timer
	deadline time.Time
}

// Start arms the countdown, replacing any countdown already running. The
// optional callback fires once when the cooldown lapses on its own.
func (c *Countdown) Start(d time.Duration, expired func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}
	c.deadline = time.Now().Add(d)
	c.timer = time.AfterFunc(d, func() {
		c.mu.Lock()
		c.timer = nil
		c.deadline = time.Time{}
		c.mu.Unlock()
		if expired != nil {
			expired()
		}
	})
}

// Cancel disarms the countdown. Safe to call when idle.
func (c *Countdown) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.deadline = time.Time{}
}

// Active reports whether the cooldown is still running.
func (c *Countdown) Active() bool {
	return c.Remaining() > 0
}

// Remaining returns the time left, or zero when idle or lapsed.
func (c *Countdown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer == nil {
		return 0
	}
	left := time.Until(c.deadline)
	if left < 0 {
		return 0
	}
	return left
}
