package radio

import "github.com/ystepanoff/nrfperiph/periph"

// Start arms the startup route so the clock-started event triggers the
// ramp-up task for dir, then starts the clock. The radio comes up in
// hardware; callers learn about it through the RxReady/TxReady callbacks.
//
// Start fails with ErrInvalidState unless the radio is idle: call Stop and
// WaitStopComplete first.
func (d *Driver) Start(dir periph.Direction) error {
	if !dir.Valid() {
		return periph.ErrInvalidDirection
	}
	if d.State() != periph.StateIdle {
		return periph.ErrInvalidState
	}

	// The route must be in place before the clock can report started.
	d.router.Connect(periph.StartupRouteChannel, d.clock.StartedEvent(), d.hw.RampUpTask(dir))
	d.router.EnableChannel(periph.StartupRouteChannel)

	d.dir = dir
	d.setState(periph.StateClockPending)
	d.clock.TriggerStart()
	return nil
}

// Stop disables the radio and stops the clock. It is safe in any state and
// does not wait; see WaitStopComplete.
func (d *Driver) Stop() {
	d.hw.TriggerDisable()
	d.clock.TriggerStop()
	d.setState(periph.StateStopRequested)
}

// WaitStopComplete busy-waits until the crystal is no longer the selected
// clock source, so that a following Start does not race a settling clock.
// It has no timeout and must never be called from interrupt context.
func (d *Driver) WaitStopComplete() {
	d.setState(periph.StateClockStopping)
	for d.clock.XtalRunning() {
	}
	d.setState(periph.StateIdle)
}

// State returns the sequencer state, refined by what the hardware reports
// for the transitions it performs on its own.
func (d *Driver) State() periph.RadioState {
	s := d.loadState()
	switch s {
	case periph.StateClockPending, periph.StateRampingUp:
		switch d.hw.Status() {
		case periph.RadioRampingUp:
			return periph.StateRampingUp
		case periph.RadioReady:
			return periph.StateActive
		}
	case periph.StateStopRequested:
		if d.hw.Status() == periph.RadioDisabled && !d.clock.XtalSelected() {
			return periph.StateIdle
		}
	}
	return s
}

// Direction is the direction passed to the last successful Start.
func (d *Driver) Direction() periph.Direction { return d.dir }
