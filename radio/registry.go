package radio

import "github.com/ystepanoff/nrfperiph/periph"

// Register binds cb to kind, replacing any previous callback. A flag latched
// before this call is cleared before the source is enabled, so it never
// replays into cb.
func (d *Driver) Register(kind periph.EventKind, cb periph.Handler) error {
	if !kind.Valid() {
		return periph.ErrInvalidEvent
	}
	was := d.lock()
	d.slots[kind].Store(&cb)
	d.hw.ClearEvent(kind)
	d.hw.EnableInterrupt(kind)
	d.unlock(was)
	return nil
}

// Unregister disables the source for kind and empties its slot. Unregistering
// an empty slot is a no-op.
func (d *Driver) Unregister(kind periph.EventKind) error {
	if !kind.Valid() {
		return periph.ErrInvalidEvent
	}
	was := d.lock()
	d.hw.DisableInterrupt(kind)
	d.slots[kind].Store(nil)
	d.unlock(was)
	return nil
}

// ClearAll disables every radio interrupt source and empties every slot.
func (d *Driver) ClearAll() {
	was := d.lock()
	d.hw.DisableAllInterrupts()
	for i := range d.slots {
		d.slots[i].Store(nil)
	}
	d.unlock(was)
}

// Registered reports whether a callback is bound to kind.
func (d *Driver) Registered(kind periph.EventKind) bool {
	if !kind.Valid() {
		return false
	}
	h := d.slots[kind].Load()
	return h != nil && *h != nil
}
