package game

import (
	"context"
	"time"
)

// Clock turns elapsed wall time into simulation ticks. A fixed clock emits one
// tick of exactly Step for every full step accumulated; a frame clock emits a
// single tick per call carrying the elapsed time, capped at MaxDelta.
type Clock struct {
	step     time.Duration
	maxDelta time.Duration
	acc      time.Duration
}

// NewFixedClock creates a clock emitting one tick per step.
func NewFixedClock(step time.Duration) *Clock {
	return &Clock{step: step}
}

// NewFrameClock creates a clock emitting one variable tick per frame.
func NewFrameClock(maxDelta time.Duration) *Clock {
	return &Clock{maxDelta: maxDelta}
}

// Fixed reports whether the clock emits fixed steps.
func (c *Clock) Fixed() bool {
	return c.step > 0
}

// Advance feeds elapsed time and returns the deltas of the ticks now due.
func (c *Clock) Advance(elapsed time.Duration) []time.Duration {
	if elapsed <= 0 {
		return nil
	}
	if !c.Fixed() {
		if c.maxDelta > 0 && elapsed > c.maxDelta {
			elapsed = c.maxDelta
		}
		return []time.Duration{elapsed}
	}

	c.acc += elapsed
	var ticks []time.Duration
	for c.acc >= c.step {
		c.acc -= c.step
		ticks = append(ticks, c.step)
	}
	return ticks
}

// Reset drops any partially accumulated step.
func (c *Clock) Reset() {
	c.acc = 0
}

// Run drives the clock from a ticker firing every frame until ctx is done or
// fn returns false. fn is called once per emitted tick.
func (c *Clock) Run(ctx context.Context, frame time.Duration, fn func(dt time.Duration) bool) error {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			for _, dt := range c.Advance(elapsed) {
				if !fn(dt) {
					return nil
				}
			}
		}
	}
}
