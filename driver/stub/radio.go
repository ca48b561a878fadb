//go:build !tinygo && !baremetal

package stub

import "github.com/ystepanoff/nrfperiph/periph"

// Radio simulates the radio's event, INTEN and task registers and its
// ramp-up/disable transitions. It implements hal.Radio.
type Radio struct {
	b      *Board
	events [periph.NumEvents]bool
	inten  uint32
	status periph.RadioStatus
	dir    periph.Direction
	busy   bool
	doneAt uint64
}

func (r *Radio) EventPending(k periph.EventKind) bool {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	return k.Valid() && r.events[k]
}

func (r *Radio) ClearEvent(k periph.EventKind) {
	r.b.mu.Lock()
	if k.Valid() {
		r.events[k] = false
	}
	r.b.mu.Unlock()
}

func (r *Radio) EnableInterrupt(k periph.EventKind) {
	r.b.mu.Lock()
	r.inten |= 1 << k
	r.b.mu.Unlock()
	r.b.radioIRQ.service()
}

func (r *Radio) DisableInterrupt(k periph.EventKind) {
	r.b.mu.Lock()
	r.inten &^= 1 << k
	r.b.mu.Unlock()
}

func (r *Radio) DisableAllInterrupts() {
	r.b.mu.Lock()
	r.inten = 0
	r.b.mu.Unlock()
}

func (r *Radio) InterruptEnabled(k periph.EventKind) bool {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	return r.inten&(1<<k) != 0
}

func (r *Radio) RampUpTask(dir periph.Direction) periph.Endpoint {
	if dir == periph.DirectionRX {
		return EndpointRadioRxEn
	}
	return EndpointRadioTxEn
}

func (r *Radio) TriggerDisable() {
	r.b.mu.Lock()
	r.disableLocked()
	r.b.mu.Unlock()
}

func (r *Radio) Status() periph.RadioStatus {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	return r.status
}

// Raise latches event k as the hardware would and requests service.
func (r *Radio) Raise(k periph.EventKind) {
	if !k.Valid() {
		return
	}
	r.b.mu.Lock()
	r.events[k] = true
	r.b.recordLocked("radio", k.String())
	r.b.mu.Unlock()
	r.b.radioIRQ.service()
}

// Dir is the direction of the last ramp-up task.
func (r *Radio) Dir() periph.Direction {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	return r.dir
}

func (r *Radio) requestingLocked() bool {
	for k := range r.events {
		if r.events[k] && r.inten&(1<<k) != 0 {
			return true
		}
	}
	return false
}

// rampLocked runs RXEN/TXEN; ignored unless the radio is disabled.
func (r *Radio) rampLocked(dir periph.Direction) {
	if r.status != periph.RadioDisabled {
		return
	}
	r.status = periph.RadioRampingUp
	r.dir = dir
	r.busy = true
	r.doneAt = r.b.now + durationToCycles(r.b.timing.RampUp)
	r.b.recordLocked("radio", dir.String()+"en")
}

func (r *Radio) disableLocked() {
	switch r.status {
	case periph.RadioRampingUp, periph.RadioReady:
		r.status = periph.RadioDisabling
		r.busy = true
		r.doneAt = r.b.now + durationToCycles(r.b.timing.Disable)
		r.b.recordLocked("radio", "disable")
	}
}

func (r *Radio) nextLocked() (uint64, bool) { return r.doneAt, r.busy }

// fireLocked completes a due transition and reports whether an event was
// latched.
func (r *Radio) fireLocked() bool {
	if !r.busy || r.doneAt > r.b.now {
		return false
	}
	r.busy = false
	var k periph.EventKind
	switch r.status {
	case periph.RadioRampingUp:
		r.status = periph.RadioReady
		k = periph.EventTxReady
		if r.dir == periph.DirectionRX {
			k = periph.EventRxReady
		}
	case periph.RadioDisabling:
		r.status = periph.RadioDisabled
		k = periph.EventDisabled
	default:
		return false
	}
	r.events[k] = true
	r.b.recordLocked("radio", k.String())
	return true
}
