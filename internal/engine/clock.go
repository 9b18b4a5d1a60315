package engine

import "time"

// clock tracks elapsed session time from caller-supplied timestamps. Paused
// spans are accumulated and subtracted, so backgrounding the host app does
// not inflate the recorded time. Once finalized the elapsed value is frozen.
type clock struct {
	started     time.Time
	paused      bool
	pausedAt    time.Time
	pausedTotal time.Duration
	finalized   bool
	final       time.Duration
}

func (c *clock) start(now time.Time) {
	c.started = now
}

func (c *clock) pause(now time.Time) {
	if c.paused || c.finalized {
		return
	}
	c.paused = true
	c.pausedAt = now
}

func (c *clock) resume(now time.Time) {
	if !c.paused {
		return
	}
	c.pausedTotal += now.Sub(c.pausedAt)
	c.paused = false
}

func (c *clock) elapsed(now time.Time) time.Duration {
	if c.finalized {
		return c.final
	}
	end := now
	if c.paused {
		end = c.pausedAt
	}
	d := end.Sub(c.started) - c.pausedTotal
	if d < 0 {
		d = 0
	}
	return d
}

func (c *clock) finalize(now time.Time) {
	if c.finalized {
		return
	}
	c.final = c.elapsed(now)
	c.finalized = true
}
