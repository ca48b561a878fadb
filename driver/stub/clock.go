//go:build !tinygo && !baremetal

package stub

import "github.com/ystepanoff/nrfperiph/periph"

// Clock simulates the high-frequency clock source. It implements hal.Clock.
type Clock struct {
	b        *Board
	xtal     bool
	starting bool
	startAt  uint64
	stopping bool
	stopAt   uint64
	started  bool // EVENTS_HFCLKSTARTED
}

func (c *Clock) TriggerStart() {
	c.b.mu.Lock()
	c.stopping = false
	c.starting = true
	c.startAt = c.b.now
	if !c.xtal {
		c.startAt += durationToCycles(c.b.timing.ClockStartup)
	}
	c.b.recordLocked("clock", "start")
	c.b.mu.Unlock()
}

func (c *Clock) TriggerStop() {
	c.b.mu.Lock()
	c.starting = false
	if c.xtal && !c.stopping {
		c.stopping = true
		c.stopAt = c.b.now + durationToCycles(c.b.timing.ClockStop)
	}
	c.b.recordLocked("clock", "stop")
	c.b.mu.Unlock()
}

// XtalRunning reads the clock status register. Each read costs Timing.Poll
// of virtual time, so a busy-wait on it makes progress.
func (c *Clock) XtalRunning() bool {
	c.b.Advance(c.b.timing.Poll)
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	return c.xtal
}

// XtalSelected reads the same status without consuming virtual time.
func (c *Clock) XtalSelected() bool {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	return c.xtal
}

func (c *Clock) StartedEvent() periph.Endpoint { return EndpointClockStarted }

// Started reports the latched clock-started event.
func (c *Clock) Started() bool {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	return c.started
}

func (c *Clock) nextLocked() (uint64, bool) {
	switch {
	case c.starting:
		return c.startAt, true
	case c.stopping:
		return c.stopAt, true
	}
	return 0, false
}

func (c *Clock) fireLocked() {
	now := c.b.now
	if c.starting && c.startAt <= now {
		c.starting = false
		c.xtal = true
		c.started = true
		c.b.recordLocked("clock", "started")
		c.b.fabric.signalLocked(EndpointClockStarted)
	}
	if c.stopping && c.stopAt <= now {
		c.stopping = false
		c.xtal = false
		c.started = false
		c.b.recordLocked("clock", "stopped")
	}
}
