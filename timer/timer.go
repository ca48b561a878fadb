// Package timer drives the two one-shot countdown channels. Each channel
// ticks once per microsecond, stops itself on compare match and owns a
// single callback slot.
package timer

import (
	"log"
	"sync/atomic"

	"github.com/ystepanoff/nrfperiph/hal"
	"github.com/ystepanoff/nrfperiph/periph"
)

// Binding pairs a timer peripheral with its interrupt line.
type Binding struct {
	HW  hal.Timer
	IRQ hal.IRQ
}

// Channel is one countdown channel. Channels share no state.
type Channel struct {
	id  periph.TimerID
	hw  hal.Timer
	irq hal.IRQ

	slot  atomic.Pointer[periph.Handler]
	armed atomic.Bool
}

func newChannel(id periph.TimerID, b Binding) *Channel {
	return &Channel{id: id, hw: b.HW, irq: b.IRQ}
}

func (c *Channel) ID() periph.TimerID { return c.id }

// Init selects the 1 µs tick and full counter width, enables the
// compare-match source and the compare->stop short.
func (c *Channel) Init() {
	c.hw.SetPrescaler(periph.TimerPrescaler())
	c.hw.SetBitWidth(periph.CounterBits)
	c.hw.SetCompare(0)
	c.hw.EnableCompareInterrupt()
	c.hw.EnableAutoStop()
	c.armed.Store(false)
}

// StartUs arms a one-shot that fires after us microseconds. Re-arming a
// running channel restarts it from zero with the new threshold.
func (c *Channel) StartUs(us uint32) {
	c.hw.SetCompare(us)
	c.hw.TriggerClear()
	// A match of the previous arm may latch up to the counter clear.
	c.hw.ClearCompareEvent()
	c.armed.Store(true)
	c.hw.TriggerStart()
}

// StartMs is StartUs(ms*1000). The product must fit in the counter.
func (c *Channel) StartMs(ms uint32) { c.StartUs(periph.MillisToMicros(ms)) }

// Stop halts the channel; safe whether or not it is running.
func (c *Channel) Stop() {
	c.hw.TriggerStop()
	c.armed.Store(false)
}

// Armed reports whether a one-shot is counting down and has not matched.
func (c *Channel) Armed() bool {
	return c.armed.Load() && !c.hw.CompareEventPending()
}

// Register binds cb to the compare match and enables the channel's
// interrupt line. A stale compare flag is cleared first.
func (c *Channel) Register(cb periph.Handler) {
	c.irq.Disable()
	c.slot.Store(&cb)
	// A latched match means the one-shot already ran out unobserved.
	if c.hw.CompareEventPending() {
		c.armed.Store(false)
	}
	c.hw.ClearCompareEvent()
	c.irq.Enable()
}

// Unregister disables the channel's interrupt line and empties its slot.
func (c *Channel) Unregister() {
	c.irq.Disable()
	c.slot.Store(nil)
}

// Registered reports whether a callback is bound.
func (c *Channel) Registered() bool {
	h := c.slot.Load()
	return h != nil && *h != nil
}

// HandleInterrupt is the channel's interrupt service routine.
func (c *Channel) HandleInterrupt() {
	if !c.hw.CompareEventPending() || !c.hw.CompareInterruptEnabled() {
		return
	}
	c.hw.ClearCompareEvent()
	c.armed.Store(false)
	if h := c.slot.Load(); h != nil && *h != nil {
		(*h)()
	}
}

// Driver owns both countdown channels.
type Driver struct {
	channels [periph.NumTimers]*Channel
}

func New(t1, t2 Binding) *Driver {
	return &Driver{channels: [periph.NumTimers]*Channel{
		newChannel(periph.Timer1, t1),
		newChannel(periph.Timer2, t2),
	}}
}

// Init initialises both channels.
func (d *Driver) Init() {
	for _, c := range d.channels {
		c.Init()
	}
	log.Printf("[Timer] initialised %d channels, prescaler %d\r\n", len(d.channels), periph.TimerPrescaler())
}

// Channel returns the channel for id.
func (d *Driver) Channel(id periph.TimerID) (*Channel, error) {
	if !id.Valid() {
		return nil, periph.ErrInvalidTimer
	}
	return d.channels[id], nil
}

func (d *Driver) StartUs(id periph.TimerID, us uint32) error {
	c, err := d.Channel(id)
	if err != nil {
		return err
	}
	c.StartUs(us)
	return nil
}

func (d *Driver) StartMs(id periph.TimerID, ms uint32) error {
	c, err := d.Channel(id)
	if err != nil {
		return err
	}
	c.StartMs(ms)
	return nil
}

func (d *Driver) Stop(id periph.TimerID) error {
	c, err := d.Channel(id)
	if err != nil {
		return err
	}
	c.Stop()
	return nil
}

func (d *Driver) Register(id periph.TimerID, cb periph.Handler) error {
	c, err := d.Channel(id)
	if err != nil {
		return err
	}
	c.Register(cb)
	return nil
}

func (d *Driver) Unregister(id periph.TimerID) error {
	c, err := d.Channel(id)
	if err != nil {
		return err
	}
	c.Unregister()
	return nil
}

// Armed reports false for an invalid id.
func (d *Driver) Armed(id periph.TimerID) bool {
	c, err := d.Channel(id)
	return err == nil && c.Armed()
}

// HandleInterrupt services the interrupt entry for id.
func (d *Driver) HandleInterrupt(id periph.TimerID) {
	if c, err := d.Channel(id); err == nil {
		c.HandleInterrupt()
	}
}
