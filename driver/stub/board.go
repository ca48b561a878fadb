//go:build !tinygo && !baremetal

// Package stub simulates the radio, clock, event-routing fabric, timers and
// interrupt lines of the target on the host. Time is virtual and counted in
// base-clock cycles; it only moves when Advance is called or a register is
// polled.
package stub

import (
	"sync"
	"time"

	"github.com/ystepanoff/nrfperiph/periph"
)

// Timing holds the simulated analogue durations.
type Timing struct {
	ClockStartup time.Duration // crystal start to clock-started event
	ClockStop    time.Duration // stop task to crystal deselected
	RampUp       time.Duration // RXEN/TXEN to ready
	Disable      time.Duration // DISABLE to disabled
	Poll         time.Duration // cost of one busy-wait register read
}

// DefaultTiming uses datasheet orders of magnitude for an nRF52.
func DefaultTiming() Timing {
	return Timing{
		ClockStartup: 360 * time.Microsecond,
		ClockStop:    50 * time.Microsecond,
		RampUp:       140 * time.Microsecond,
		Disable:      6 * time.Microsecond,
		Poll:         250 * time.Nanosecond,
	}
}

// Endpoints use the nRF52 register addresses of the same events and tasks.
const (
	EndpointClockStarted periph.Endpoint = 0x40000100
	EndpointRadioTxEn    periph.Endpoint = 0x40001000
	EndpointRadioRxEn    periph.Endpoint = 0x40001004
	EndpointRadioDisable periph.Endpoint = 0x40001010
)

// Board is one simulated chip. All peripheral state is guarded by mu;
// interrupt handlers always run with mu released.
type Board struct {
	mu     sync.Mutex
	timing Timing
	now    uint64 // base-clock cycles

	radio  *Radio
	clock  *Clock
	fabric *Fabric
	timers [periph.NumTimers]*Timer

	radioIRQ *IRQLine
	timerIRQ [periph.NumTimers]*IRQLine

	trace traceRing
}

func NewBoard(t Timing) *Board {
	b := &Board{timing: t}
	b.radio = &Radio{b: b}
	b.clock = &Clock{b: b}
	b.fabric = &Fabric{b: b}
	b.radioIRQ = newIRQLine(b, "radio", b.radio.requestingLocked)
	for i := range b.timers {
		tm := &Timer{b: b, id: periph.TimerID(i), bits: 16}
		b.timers[i] = tm
		b.timerIRQ[i] = newIRQLine(b, tm.id.String(), tm.requestingLocked)
	}
	return b
}

func (b *Board) Radio() *Radio      { return b.radio }
func (b *Board) Clock() *Clock      { return b.clock }
func (b *Board) Router() *Fabric    { return b.fabric }
func (b *Board) RadioIRQ() *IRQLine { return b.radioIRQ }

func (b *Board) Timer(id periph.TimerID) *Timer      { return b.timers[id] }
func (b *Board) TimerIRQ(id periph.TimerID) *IRQLine { return b.timerIRQ[id] }

// Now returns the virtual time since the board was created.
func (b *Board) Now() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return cyclesToDuration(b.now)
}

// Advance moves virtual time forward by d, firing every hardware event that
// falls due on the way and servicing the interrupts they raise.
func (b *Board) Advance(d time.Duration) {
	b.mu.Lock()
	target := b.now + durationToCycles(d)
	b.mu.Unlock()
	for {
		b.mu.Lock()
		at, ok := b.nextLocked()
		if !ok || at > target {
			if b.now < target {
				b.now = target
			}
			b.mu.Unlock()
			return
		}
		if at > b.now {
			b.now = at
		}
		lines := b.fireDueLocked()
		b.mu.Unlock()
		for _, l := range lines {
			l.service()
		}
	}
}

// Trace returns the most recent hardware happenings, oldest first.
func (b *Board) Trace() []TraceEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.trace.snapshot()
}

func (b *Board) nextLocked() (uint64, bool) {
	var best uint64
	found := false
	consider := func(at uint64, ok bool) {
		if ok && (!found || at < best) {
			best, found = at, true
		}
	}
	consider(b.clock.nextLocked())
	consider(b.radio.nextLocked())
	for _, t := range b.timers {
		consider(t.nextLocked())
	}
	return best, found
}

// fireDueLocked fires everything due at b.now and returns the interrupt
// lines that may now need service.
func (b *Board) fireDueLocked() []*IRQLine {
	var lines []*IRQLine
	// The clock has no interrupt line; a started event reaches the radio
	// through the fabric.
	b.clock.fireLocked()
	if b.radio.fireLocked() {
		lines = append(lines, b.radioIRQ)
	}
	for i, t := range b.timers {
		if t.fireLocked() {
			lines = append(lines, b.timerIRQ[i])
		}
	}
	return lines
}

// taskLocked runs the task behind a routing endpoint.
func (b *Board) taskLocked(task periph.Endpoint) {
	switch task {
	case EndpointRadioTxEn:
		b.radio.rampLocked(periph.DirectionTX)
	case EndpointRadioRxEn:
		b.radio.rampLocked(periph.DirectionRX)
	case EndpointRadioDisable:
		b.radio.disableLocked()
	}
}

func (b *Board) recordLocked(source, what string) {
	b.trace.push(TraceEntry{At: cyclesToDuration(b.now), Source: source, What: what})
}

const cyclesPerMicro = periph.BaseClockHz / 1_000_000

func durationToCycles(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	return uint64(d.Nanoseconds()) * cyclesPerMicro / 1000
}

func cyclesToDuration(c uint64) time.Duration {
	return time.Duration(c * 1000 / cyclesPerMicro)
}
