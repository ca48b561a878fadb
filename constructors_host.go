//go:build !tinygo && !baremetal

// This file is built only for non-embedded targets (host-based testing).
package nrfperiph

import (
	"github.com/ystepanoff/nrfperiph/driver/stub"
	"github.com/ystepanoff/nrfperiph/radio"
	"github.com/ystepanoff/nrfperiph/timer"
)

// Board is the simulated chip behind NewRadio and NewTimers. Advance its
// virtual time to make hardware events happen.
var Board = stub.NewBoard(stub.DefaultTiming())

func NewRadio() *radio.Driver { return BindRadio(Board) }

func NewTimers() *timer.Driver { return BindTimers(Board) }

// BindRadio builds a radio driver on b and routes b's radio interrupt line
// to its dispatcher.
func BindRadio(b *stub.Board) *radio.Driver {
	d := radio.New(b.Radio(), b.Clock(), b.Router(), b.RadioIRQ())
	b.RadioIRQ().Bind(d.HandleInterrupt)
	return d
}

// BindTimers builds the timer driver on b and routes both timer interrupt
// lines to their channel dispatchers.
func BindTimers(b *stub.Board) *timer.Driver {
	d := timer.New(
		timer.Binding{HW: b.Timer(Timer1), IRQ: b.TimerIRQ(Timer1)},
		timer.Binding{HW: b.Timer(Timer2), IRQ: b.TimerIRQ(Timer2)},
	)
	b.TimerIRQ(Timer1).Bind(func() { d.HandleInterrupt(Timer1) })
	b.TimerIRQ(Timer2).Bind(func() { d.HandleInterrupt(Timer2) })
	return d
}
