//go:build tinygo || baremetal

package nrf

import (
	"unsafe"

	"github.com/ystepanoff/nrfperiph/periph"

	"device/nrf"
	"runtime/volatile"
)

// Radio implements hal.Radio on the RADIO peripheral registers.
type Radio struct{}

var radioEvents = [periph.NumEvents]*volatile.Register32{
	periph.EventDisabled: &nrf.RADIO.EVENTS_DISABLED,
	periph.EventTxReady:  &nrf.RADIO.EVENTS_TXREADY,
	periph.EventRxReady:  &nrf.RADIO.EVENTS_RXREADY,
	periph.EventCrcOk:    &nrf.RADIO.EVENTS_CRCOK,
	periph.EventCrcErr:   &nrf.RADIO.EVENTS_CRCERROR,
	periph.EventAddress:  &nrf.RADIO.EVENTS_ADDRESS,
	periph.EventEnd:      &nrf.RADIO.EVENTS_END,
}

// INTENSET and INTENCLR share bit positions.
var radioMasks = [periph.NumEvents]uint32{
	periph.EventDisabled: nrf.RADIO_INTENSET_DISABLED_Msk,
	periph.EventTxReady:  nrf.RADIO_INTENSET_TXREADY_Msk,
	periph.EventRxReady:  nrf.RADIO_INTENSET_RXREADY_Msk,
	periph.EventCrcOk:    nrf.RADIO_INTENSET_CRCOK_Msk,
	periph.EventCrcErr:   nrf.RADIO_INTENSET_CRCERROR_Msk,
	periph.EventAddress:  nrf.RADIO_INTENSET_ADDRESS_Msk,
	periph.EventEnd:      nrf.RADIO_INTENSET_END_Msk,
}

func (Radio) EventPending(k periph.EventKind) bool { return radioEvents[k].Get() == 1 }
func (Radio) ClearEvent(k periph.EventKind)        { radioEvents[k].Set(0) }
func (Radio) EnableInterrupt(k periph.EventKind)   { nrf.RADIO.INTENSET.Set(radioMasks[k]) }
func (Radio) DisableInterrupt(k periph.EventKind)  { nrf.RADIO.INTENCLR.Set(radioMasks[k]) }
func (Radio) DisableAllInterrupts()                { nrf.RADIO.INTENCLR.Set(0xFFFFFFFF) }

func (Radio) InterruptEnabled(k periph.EventKind) bool {
	return nrf.RADIO.INTENSET.Get()&radioMasks[k] != 0
}

func (Radio) RampUpTask(dir periph.Direction) periph.Endpoint {
	if dir == periph.DirectionRX {
		return endpoint(&nrf.RADIO.TASKS_RXEN)
	}
	return endpoint(&nrf.RADIO.TASKS_TXEN)
}

func (Radio) TriggerDisable() { nrf.RADIO.TASKS_DISABLE.Set(1) }

func (Radio) Status() periph.RadioStatus {
	switch nrf.RADIO.STATE.Get() {
	case nrf.RADIO_STATE_STATE_RxRu, nrf.RADIO_STATE_STATE_TxRu:
		return periph.RadioRampingUp
	case nrf.RADIO_STATE_STATE_RxIdle, nrf.RADIO_STATE_STATE_Rx,
		nrf.RADIO_STATE_STATE_TxIdle, nrf.RADIO_STATE_STATE_Tx:
		return periph.RadioReady
	case nrf.RADIO_STATE_STATE_RxDisable, nrf.RADIO_STATE_STATE_TxDisable:
		return periph.RadioDisabling
	default:
		return periph.RadioDisabled
	}
}

// endpoint is the bus address of an event or task register, as the PPI
// EEP/TEP registers expect.
func endpoint(r *volatile.Register32) periph.Endpoint {
	return periph.Endpoint(uintptr(unsafe.Pointer(r)))
}
