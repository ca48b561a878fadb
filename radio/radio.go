// Package radio drives the radio transceiver: a per-event callback registry
// kept consistent with the interrupt-enable registers, the interrupt
// dispatcher, and the start-up sequencer that chains clock start to radio
// ramp-up through the event-routing fabric.
package radio

import (
	"log"
	"sync/atomic"

	"github.com/ystepanoff/nrfperiph/hal"
	"github.com/ystepanoff/nrfperiph/periph"
)

// Driver owns the state of the one radio peripheral. Foreground code calls
// Start/Stop/Register; the platform interrupt entry calls HandleInterrupt.
type Driver struct {
	hw     hal.Radio
	clock  hal.Clock
	router hal.Router
	irq    hal.IRQ

	// Written by foreground with the radio line masked, read by the ISR.
	slots [periph.NumEvents]atomic.Pointer[periph.Handler]

	state atomic.Uint32 // periph.RadioState
	dir   periph.Direction
}

func New(hw hal.Radio, clock hal.Clock, router hal.Router, irq hal.IRQ) *Driver {
	return &Driver{hw: hw, clock: clock, router: router, irq: irq}
}

// Init clears every radio interrupt source and callback and enables the
// radio interrupt line. Must be called before the radio is used.
func (d *Driver) Init() {
	d.ClearAll()
	d.setState(periph.StateIdle)
	d.irq.Enable()
	log.Printf("[Radio] initialised, startup route on channel %d\r\n", periph.StartupRouteChannel)
}

// lock masks the radio interrupt line and reports whether it was enabled.
func (d *Driver) lock() bool {
	was := d.irq.Enabled()
	d.irq.Disable()
	return was
}

func (d *Driver) unlock(was bool) {
	if was {
		d.irq.Enable()
	}
}

func (d *Driver) setState(s periph.RadioState) { d.state.Store(uint32(s)) }

func (d *Driver) loadState() periph.RadioState { return periph.RadioState(d.state.Load()) }
