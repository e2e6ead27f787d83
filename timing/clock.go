// Package timing provides the time sources that stamp simulated messages and
// drive time-based transitions.
package timing

import (
	"sync/atomic"
	"time"
)

// TimeTeller can be used to get the current time in nanoseconds.
type TimeTeller interface {
	Now() uint64
}

// A Clock tells time and can let time pass.
type Clock interface {
	TimeTeller

	// Wait lets d elapse on the clock.
	Wait(d time.Duration)
}

// WallClock follows real time. Now counts nanoseconds since the clock was
// created and Wait sleeps.
type WallClock struct {
	start time.Time
}

// NewWallClock creates a clock that starts at zero now.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

// Now returns the nanoseconds elapsed since the clock was created.
func (c *WallClock) Now() uint64 {
	return uint64(time.Since(c.start).Nanoseconds())
}

// Wait blocks the caller for d.
func (c *WallClock) Wait(d time.Duration) {
	if d <= 0 {
		return
	}

	time.Sleep(d)
}

// ManualClock only moves when told to. Waiting on it returns immediately after
// advancing the time, so timeouts can be simulated without real delay.
type ManualClock struct {
	now atomic.Uint64
}

// NewManualClock creates a clock that starts at start.
func NewManualClock(start uint64) *ManualClock {
	c := &ManualClock{}
	c.now.Store(start)

	return c
}

// Now returns the current time.
func (c *ManualClock) Now() uint64 {
	return c.now.Load()
}

// Advance moves the clock forward by d. Negative durations are ignored.
func (c *ManualClock) Advance(d time.Duration) uint64 {
	if d <= 0 {
		return c.now.Load()
	}

	return c.now.Add(uint64(d))
}

// Set moves the clock to t. Time never goes backwards; an earlier t panics.
func (c *ManualClock) Set(t uint64) {
	for {
		cur := c.now.Load()
		if t < cur {
			panic("timing: manual clock cannot go backwards")
		}

		if c.now.CompareAndSwap(cur, t) {
			return
		}
	}
}

// Wait advances the clock by d.
func (c *ManualClock) Wait(d time.Duration) {
	c.Advance(d)
}
