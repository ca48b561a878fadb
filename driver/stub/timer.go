//go:build !tinygo && !baremetal

package stub

import "github.com/ystepanoff/nrfperiph/periph"

// Timer simulates one timer peripheral with compare register 0. It
// implements hal.Timer.
type Timer struct {
	b         *Board
	id        periph.TimerID
	prescaler uint32
	bits      uint8
	cc        uint32
	inten     bool
	autoStop  bool
	event     bool
	running   bool
	count     uint64
	since     uint64 // tick boundary at which count was last sampled
	anchor    uint64 // cycle at which counting was last started or cleared
}

func (t *Timer) SetPrescaler(p uint32) {
	t.b.mu.Lock()
	t.syncLocked()
	if p > 9 {
		p = 9
	}
	t.prescaler = p
	t.b.mu.Unlock()
}

func (t *Timer) SetBitWidth(bits uint8) {
	t.b.mu.Lock()
	t.syncLocked()
	switch bits {
	case 8, 16, 24, 32:
		t.bits = bits
	}
	t.count &= t.maskLocked()
	t.b.mu.Unlock()
}

func (t *Timer) SetCompare(ticks uint32) {
	t.b.mu.Lock()
	t.syncLocked()
	t.cc = ticks
	t.b.mu.Unlock()
}

func (t *Timer) EnableCompareInterrupt() {
	t.b.mu.Lock()
	t.inten = true
	t.b.mu.Unlock()
	t.b.timerIRQ[t.id].service()
}

func (t *Timer) CompareInterruptEnabled() bool {
	t.b.mu.Lock()
	defer t.b.mu.Unlock()
	return t.inten
}

func (t *Timer) EnableAutoStop() {
	t.b.mu.Lock()
	t.autoStop = true
	t.b.mu.Unlock()
}

func (t *Timer) CompareEventPending() bool {
	t.b.mu.Lock()
	defer t.b.mu.Unlock()
	return t.event
}

func (t *Timer) ClearCompareEvent() {
	t.b.mu.Lock()
	t.event = false
	t.b.mu.Unlock()
}

func (t *Timer) TriggerClear() {
	t.b.mu.Lock()
	t.syncLocked()
	t.count = 0
	t.since = t.b.now
	t.anchor = t.b.now
	t.b.mu.Unlock()
}

func (t *Timer) TriggerStart() {
	t.b.mu.Lock()
	t.syncLocked()
	if !t.running {
		t.running = true
		t.since = t.b.now
		t.anchor = t.b.now
		t.b.recordLocked(t.id.String(), "start")
	}
	t.b.mu.Unlock()
}

func (t *Timer) TriggerStop() {
	t.b.mu.Lock()
	t.syncLocked()
	if t.running {
		t.running = false
		t.b.recordLocked(t.id.String(), "stop")
	}
	t.b.mu.Unlock()
}

// Running reports whether the counter is counting.
func (t *Timer) Running() bool {
	t.b.mu.Lock()
	defer t.b.mu.Unlock()
	return t.running
}

// Counter returns the current counter value.
func (t *Timer) Counter() uint32 {
	t.b.mu.Lock()
	defer t.b.mu.Unlock()
	t.syncLocked()
	return uint32(t.count)
}

// Compare returns the compare register.
func (t *Timer) Compare() uint32 {
	t.b.mu.Lock()
	defer t.b.mu.Unlock()
	return t.cc
}

func (t *Timer) maskLocked() uint64 { return 1<<t.bits - 1 }

func (t *Timer) periodLocked() uint64 { return 1 << t.prescaler }

// syncLocked folds elapsed whole ticks into count, keeping sub-tick phase.
func (t *Timer) syncLocked() {
	if !t.running {
		return
	}
	p := t.periodLocked()
	ticks := (t.b.now - t.since) / p
	t.count = (t.count + ticks) & t.maskLocked()
	t.since += ticks * p
}

func (t *Timer) nextLocked() (uint64, bool) {
	if !t.running {
		return 0, false
	}
	t.syncLocked()
	dist := (uint64(t.cc) - t.count) & t.maskLocked()
	if dist == 0 {
		dist = t.maskLocked() + 1
	}
	return t.since + dist*t.periodLocked(), true
}

// fireLocked latches the compare event when the counter has just ticked
// onto cc.
func (t *Timer) fireLocked() bool {
	if !t.running {
		return false
	}
	t.syncLocked()
	if t.since != t.b.now || t.since == t.anchor || t.count != uint64(t.cc)&t.maskLocked() {
		return false
	}
	t.event = true
	t.b.recordLocked(t.id.String(), "compare")
	if t.autoStop {
		t.running = false
	}
	return true
}

func (t *Timer) requestingLocked() bool { return t.event && t.inten }
