// Package hal declares the hardware collaborators the radio and timer
// drivers are written against. Each backend (nRF registers, simulated
// board, test fakes) implements these.
package hal

import "github.com/ystepanoff/nrfperiph/periph"

// IRQ is one interrupt controller line.
type IRQ interface {
	Enable()
	Disable()
	Enabled() bool
}

// Radio wraps the radio peripheral's event, interrupt-enable and task
// registers.
type Radio interface {
	EventPending(k periph.EventKind) bool
	ClearEvent(k periph.EventKind)
	EnableInterrupt(k periph.EventKind)
	DisableInterrupt(k periph.EventKind)
	DisableAllInterrupts()
	InterruptEnabled(k periph.EventKind) bool

	// RampUpTask is the routing endpoint of the RXEN or TXEN task.
	RampUpTask(dir periph.Direction) periph.Endpoint
	TriggerDisable()
	Status() periph.RadioStatus
}

// Clock wraps the high-frequency clock source.
type Clock interface {
	TriggerStart()
	TriggerStop()
	// XtalRunning reports whether the external crystal is the selected source.
	// It is the read a busy-wait polls.
	XtalRunning() bool
	// XtalSelected reports the same status for a one-off inspection.
	XtalSelected() bool
	// StartedEvent is the routing endpoint of the clock-started event.
	StartedEvent() periph.Endpoint
}

// Router is the event-routing fabric: each channel wires one event endpoint
// to one task endpoint with no software involvement.
type Router interface {
	Connect(ch uint8, event, task periph.Endpoint)
	EnableChannel(ch uint8)
	DisableChannel(ch uint8)
	Channel(ch uint8) (event, task periph.Endpoint, enabled bool)
}

// Timer wraps one countdown timer peripheral using compare register 0.
type Timer interface {
	SetPrescaler(p uint32)
	SetBitWidth(bits uint8)
	SetCompare(ticks uint32)
	EnableCompareInterrupt()
	CompareInterruptEnabled() bool
	EnableAutoStop()
	CompareEventPending() bool
	ClearCompareEvent()
	TriggerClear()
	TriggerStart()
	TriggerStop()
}
