package periph

import "math/bits"

// Target clock constants (platform independent). A different base clock is
// a one-place change here; every register value is derived from these.
const (
	// BaseClockHz is the timer peripheral's input clock (HFCLK).
	BaseClockHz = 16_000_000

	// TickHz is the countdown channel tick rate: one tick per microsecond.
	TickHz = 1_000_000

	// TickResolution is the duration of one timer tick in nanoseconds.
	TickResolution = 1_000_000_000 / TickHz

	// CounterBits is the counter width selected for both timer channels.
	CounterBits = 32

	// MaxTicks is the largest compare threshold a channel accepts.
	MaxTicks = 1<<CounterBits - 1

	// StartupRouteChannel is the event-routing channel that chains the
	// clock-started event to the radio ramp-up task.
	StartupRouteChannel = 18
)

// TimerPrescaler returns the prescaler exponent that divides BaseClockHz down
// to TickHz (f_timer = BaseClockHz / 2^prescaler).
func TimerPrescaler() uint32 {
	return uint32(bits.TrailingZeros32(BaseClockHz / TickHz))
}
