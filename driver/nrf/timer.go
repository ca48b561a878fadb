//go:build tinygo || baremetal

package nrf

import (
	"device/nrf"
)

// Timer implements hal.Timer on one TIMER peripheral using CC[0].
type Timer struct {
	regs *nrf.TIMER_Type
}

func (t Timer) SetPrescaler(p uint32) { t.regs.PRESCALER.Set(p) }

func (t Timer) SetBitWidth(bits uint8) {
	mode := uint32(nrf.TIMER_BITMODE_BITMODE_32Bit)
	switch bits {
	case 8:
		mode = nrf.TIMER_BITMODE_BITMODE_08Bit
	case 16:
		mode = nrf.TIMER_BITMODE_BITMODE_16Bit
	case 24:
		mode = nrf.TIMER_BITMODE_BITMODE_24Bit
	}
	t.regs.BITMODE.Set(mode)
}

func (t Timer) SetCompare(ticks uint32) { t.regs.CC[0].Set(ticks) }

func (t Timer) EnableCompareInterrupt() { t.regs.INTENSET.SetBits(nrf.TIMER_INTENSET_COMPARE0_Msk) }

func (t Timer) CompareInterruptEnabled() bool {
	return t.regs.INTENSET.Get()&nrf.TIMER_INTENSET_COMPARE0_Msk != 0
}

func (t Timer) EnableAutoStop() { t.regs.SHORTS.SetBits(nrf.TIMER_SHORTS_COMPARE0_STOP_Msk) }

func (t Timer) CompareEventPending() bool { return t.regs.EVENTS_COMPARE[0].Get() == 1 }
func (t Timer) ClearCompareEvent()        { t.regs.EVENTS_COMPARE[0].Set(0) }
func (t Timer) TriggerClear()             { t.regs.TASKS_CLEAR.Set(1) }
func (t Timer) TriggerStart()             { t.regs.TASKS_START.Set(1) }
func (t Timer) TriggerStop()              { t.regs.TASKS_STOP.Set(1) }

// Timer1 and Timer2 are the two countdown channels.
func Timer1() Timer { return Timer{regs: nrf.TIMER1} }
func Timer2() Timer { return Timer{regs: nrf.TIMER2} }
