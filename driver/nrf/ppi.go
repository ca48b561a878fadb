//go:build tinygo || baremetal

package nrf

import (
	"github.com/ystepanoff/nrfperiph/periph"

	"device/nrf"
)

// PPI implements hal.Router on the programmable peripheral interconnect.
type PPI struct{}

func (PPI) Connect(ch uint8, event, task periph.Endpoint) {
	nrf.PPI.CH[ch].EEP.Set(uint32(event))
	nrf.PPI.CH[ch].TEP.Set(uint32(task))
}

func (PPI) EnableChannel(ch uint8)  { nrf.PPI.CHENSET.Set(1 << ch) }
func (PPI) DisableChannel(ch uint8) { nrf.PPI.CHENCLR.Set(1 << ch) }

func (PPI) Channel(ch uint8) (event, task periph.Endpoint, enabled bool) {
	c := &nrf.PPI.CH[ch]
	return periph.Endpoint(c.EEP.Get()), periph.Endpoint(c.TEP.Get()), nrf.PPI.CHEN.Get()&(1<<ch) != 0
}
