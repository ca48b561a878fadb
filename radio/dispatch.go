package radio

import "github.com/ystepanoff/nrfperiph/periph"

// HandleInterrupt is the radio interrupt service routine. Every event that is
// both pending and enabled is cleared and then handed to its callback, in
// periph.DispatchOrder. Clearing first keeps a slow callback from seeing its
// own flag again.
func (d *Driver) HandleInterrupt() {
	for _, kind := range periph.DispatchOrder {
		if !d.hw.EventPending(kind) || !d.hw.InterruptEnabled(kind) {
			continue
		}
		d.hw.ClearEvent(kind)
		d.observe(kind)
		if h := d.slots[kind].Load(); h != nil && *h != nil {
			(*h)()
		}
	}
}

// observe advances the sequencer on ramp-up completion.
func (d *Driver) observe(kind periph.EventKind) {
	if kind != periph.EventRxReady && kind != periph.EventTxReady {
		return
	}
	s := d.loadState()
	if s == periph.StateClockPending || s == periph.StateRampingUp {
		d.state.CompareAndSwap(uint32(s), uint32(periph.StateActive))
	}
}
