//go:build tinygo || baremetal

package nrf

import (
	"github.com/ystepanoff/nrfperiph/periph"

	"device/nrf"
)

// Clock implements hal.Clock on the CLOCK peripheral's HFCLK registers.
type Clock struct{}

func (Clock) TriggerStart() { nrf.CLOCK.TASKS_HFCLKSTART.Set(1) }
func (Clock) TriggerStop()  { nrf.CLOCK.TASKS_HFCLKSTOP.Set(1) }

func (Clock) XtalRunning() bool {
	return nrf.CLOCK.HFCLKSTAT.Get()&nrf.CLOCK_HFCLKSTAT_SRC_Msk == nrf.CLOCK_HFCLKSTAT_SRC_Xtal
}

func (c Clock) XtalSelected() bool { return c.XtalRunning() }

func (Clock) StartedEvent() periph.Endpoint { return endpoint(&nrf.CLOCK.EVENTS_HFCLKSTARTED) }
