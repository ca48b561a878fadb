//go:build tinygo || baremetal

// This file is built only for embedded targets (using real hardware).
package nrfperiph

import (
	"github.com/ystepanoff/nrfperiph/driver/nrf"
	"github.com/ystepanoff/nrfperiph/radio"
	"github.com/ystepanoff/nrfperiph/timer"
)

// NewRadio returns the driver of the one RADIO peripheral. Call it once.
func NewRadio() *radio.Driver {
	var d *radio.Driver
	irq := nrf.RadioIRQ(func() { d.HandleInterrupt() })
	d = radio.New(nrf.Radio{}, nrf.Clock{}, nrf.PPI{}, irq)
	return d
}

// NewTimers returns the driver of TIMER1 and TIMER2. Call it once.
func NewTimers() *timer.Driver {
	var d *timer.Driver
	irq1 := nrf.Timer1IRQ(func() { d.HandleInterrupt(Timer1) })
	irq2 := nrf.Timer2IRQ(func() { d.HandleInterrupt(Timer2) })
	d = timer.New(
		timer.Binding{HW: nrf.Timer1(), IRQ: irq1},
		timer.Binding{HW: nrf.Timer2(), IRQ: irq2},
	)
	return d
}
