// Package nrfperiph provides a façade to the radio and countdown timer
// drivers.
package nrfperiph

import (
	"github.com/ystepanoff/nrfperiph/periph"
	"github.com/ystepanoff/nrfperiph/radio"
	"github.com/ystepanoff/nrfperiph/timer"
)

// The constructors are split into build-tag specific files:
// - constructors_nrf.go - for embedded platforms (//go:build tinygo || baremetal)
// - constructors_host.go - for development/testing on a simulated board

type (
	Radio      = radio.Driver
	Timers     = timer.Driver
	Handler    = periph.Handler
	EventKind  = periph.EventKind
	Direction  = periph.Direction
	RadioState = periph.RadioState
	TimerID    = periph.TimerID
)

// Error constants exposed in the public API
var (
	ErrInvalidEvent     = periph.ErrInvalidEvent
	ErrInvalidTimer     = periph.ErrInvalidTimer
	ErrInvalidState     = periph.ErrInvalidState
	ErrInvalidDirection = periph.ErrInvalidDirection
)

// Constants exposed in the public API
const (
	EventDisabled = periph.EventDisabled
	EventTxReady  = periph.EventTxReady
	EventRxReady  = periph.EventRxReady
	EventCrcOk    = periph.EventCrcOk
	EventCrcErr   = periph.EventCrcErr
	EventAddress  = periph.EventAddress
	EventEnd      = periph.EventEnd

	DirectionTX = periph.DirectionTX
	DirectionRX = periph.DirectionRX

	Timer1 = periph.Timer1
	Timer2 = periph.Timer2

	TickResolution = periph.TickResolution
)
