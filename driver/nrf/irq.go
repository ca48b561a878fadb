//go:build tinygo || baremetal

package nrf

import (
	"device/arm"
	"device/nrf"
	"runtime/interrupt"
)

// Interrupt entry points. TinyGo wires these vectors at link time, so the
// handlers are fixed closures that forward to whatever driver was bound.
var (
	radioHandler  func()
	timer1Handler func()
	timer2Handler func()
)

// Line implements hal.IRQ for one NVIC line.
type Line struct {
	num     uint32
	intr    interrupt.Interrupt
	enabled bool
}

func (l *Line) Enable() {
	l.enabled = true
	l.intr.Enable()
}

func (l *Line) Disable() {
	arm.DisableIRQ(l.num)
	l.enabled = false
}

func (l *Line) Enabled() bool { return l.enabled }

// RadioIRQ routes the RADIO vector to handler.
func RadioIRQ(handler func()) *Line {
	radioHandler = handler
	intr := interrupt.New(nrf.IRQ_RADIO, func(interrupt.Interrupt) {
		if radioHandler != nil {
			radioHandler()
		}
	})
	return &Line{num: nrf.IRQ_RADIO, intr: intr}
}

// Timer1IRQ routes the TIMER1 vector to handler.
func Timer1IRQ(handler func()) *Line {
	timer1Handler = handler
	intr := interrupt.New(nrf.IRQ_TIMER1, func(interrupt.Interrupt) {
		if timer1Handler != nil {
			timer1Handler()
		}
	})
	return &Line{num: nrf.IRQ_TIMER1, intr: intr}
}

// Timer2IRQ routes the TIMER2 vector to handler.
func Timer2IRQ(handler func()) *Line {
	timer2Handler = handler
	intr := interrupt.New(nrf.IRQ_TIMER2, func(interrupt.Interrupt) {
		if timer2Handler != nil {
			timer2Handler()
		}
	})
	return &Line{num: nrf.IRQ_TIMER2, intr: intr}
}
