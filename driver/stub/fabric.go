//go:build !tinygo && !baremetal

package stub

import "github.com/ystepanoff/nrfperiph/periph"

const fabricChannels = 32

type route struct {
	event, task periph.Endpoint
	enabled     bool
}

// Fabric simulates the event-routing fabric. It implements hal.Router.
type Fabric struct {
	b  *Board
	ch [fabricChannels]route
}

func (f *Fabric) Connect(ch uint8, event, task periph.Endpoint) {
	if int(ch) >= fabricChannels {
		return
	}
	f.b.mu.Lock()
	f.ch[ch].event = event
	f.ch[ch].task = task
	f.b.mu.Unlock()
}

func (f *Fabric) EnableChannel(ch uint8) { f.setEnabled(ch, true) }

func (f *Fabric) DisableChannel(ch uint8) { f.setEnabled(ch, false) }

func (f *Fabric) setEnabled(ch uint8, on bool) {
	if int(ch) >= fabricChannels {
		return
	}
	f.b.mu.Lock()
	f.ch[ch].enabled = on
	f.b.mu.Unlock()
}

func (f *Fabric) Channel(ch uint8) (event, task periph.Endpoint, enabled bool) {
	if int(ch) >= fabricChannels {
		return 0, 0, false
	}
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	r := f.ch[ch]
	return r.event, r.task, r.enabled
}

// ActiveRoutes counts enabled channels listening to event.
func (f *Fabric) ActiveRoutes(event periph.Endpoint) int {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	n := 0
	for _, r := range f.ch {
		if r.enabled && r.event == event {
			n++
		}
	}
	return n
}

func (f *Fabric) signalLocked(event periph.Endpoint) {
	for _, r := range f.ch {
		if r.enabled && r.event == event {
			f.b.taskLocked(r.task)
		}
	}
}
