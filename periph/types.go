// Package periph holds the identifiers, constants and errors shared by the
// radio and timer drivers and by every hardware backend.
package periph

// Handler is a callback invoked from interrupt context. It must be short,
// must not block and should not allocate.
type Handler func()

// EventKind identifies one radio hardware event.
type EventKind uint8

const (
	EventDisabled EventKind = iota // radio has ramped down
	EventTxReady                   // radio has ramped up for TX
	EventRxReady                   // radio has ramped up for RX
	EventCrcOk                     // valid packet received
	EventCrcErr                    // packet received, CRC check failed
	EventAddress                   // address decoded
	EventEnd                       // RX/TX ended

	NumEvents = int(EventEnd) + 1
)

// DispatchOrder is the fixed order in which pending radio events are
// serviced within one interrupt entry.
var DispatchOrder = [NumEvents]EventKind{
	EventDisabled,
	EventRxReady,
	EventTxReady,
	EventCrcOk,
	EventCrcErr,
	EventAddress,
	EventEnd,
}

var eventNames = [NumEvents]string{
	"disabled", "txready", "rxready", "crcok", "crcerr", "address", "end",
}

func (k EventKind) Valid() bool { return int(k) < NumEvents }

func (k EventKind) String() string {
	if !k.Valid() {
		return "invalid"
	}
	return eventNames[k]
}

// ParseEventKind maps a lower-case event name back to its EventKind.
func ParseEventKind(s string) (EventKind, error) {
	for i, n := range eventNames {
		if n == s {
			return EventKind(i), nil
		}
	}
	return 0, ErrInvalidEvent
}

// Direction selects the ramp-up task the radio is started into.
type Direction uint8

const (
	DirectionTX Direction = iota
	DirectionRX
)

func (d Direction) Valid() bool { return d == DirectionTX || d == DirectionRX }

func (d Direction) String() string {
	switch d {
	case DirectionTX:
		return "tx"
	case DirectionRX:
		return "rx"
	default:
		return "invalid"
	}
}

// ParseDirection accepts "rx" or "tx".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "tx":
		return DirectionTX, nil
	case "rx":
		return DirectionRX, nil
	}
	return 0, ErrInvalidDirection
}

// RadioState is the radio sequencer state as seen by software.
type RadioState uint8

const (
	StateIdle RadioState = iota
	StateClockPending
	StateRampingUp
	StateActive
	StateStopRequested
	StateClockStopping
)

var stateNames = [...]string{
	"idle", "clock_pending", "ramping_up", "active", "stop_requested", "clock_stopping",
}

func (s RadioState) String() string {
	if int(s) >= len(stateNames) {
		return "invalid"
	}
	return stateNames[s]
}

// RadioStatus is the radio peripheral's own power state, read from hardware.
type RadioStatus uint8

const (
	RadioDisabled RadioStatus = iota
	RadioRampingUp
	RadioReady
	RadioDisabling
)

// TimerID names one of the two countdown channels.
type TimerID uint8

const (
	Timer1 TimerID = iota
	Timer2

	NumTimers = int(Timer2) + 1
)

func (id TimerID) Valid() bool { return int(id) < NumTimers }

func (id TimerID) String() string {
	switch id {
	case Timer1:
		return "timer1"
	case Timer2:
		return "timer2"
	default:
		return "invalid"
	}
}

// Endpoint is the address of a hardware event or task as understood by the
// event-routing fabric. On silicon it is the register address.
type Endpoint uint32
