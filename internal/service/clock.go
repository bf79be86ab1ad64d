package service

import (
	"sync"
	"time"
)

// Clock is one side's countdown. It only ticks while running; Stop banks the
// time elapsed since Start.
type Clock struct {
	mu          sync.Mutex
	timeLeft    time.Duration
	lastStarted time.Time
	running     bool
}

func NewClock(initial time.Duration) *Clock {
	return &Clock{timeLeft: initial}
}

func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		c.lastStarted = time.Now()
		c.running = true
	}
}

func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		c.timeLeft -= time.Since(c.lastStarted)
		c.running = false
	}
}

// TimeLeft returns the remaining time, counting down live while running.
func (c *Clock) TimeLeft() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return c.timeLeft - time.Since(c.lastStarted)
	}
	return c.timeLeft
}
