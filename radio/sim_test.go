package radio

import (
	"testing"
	"time"

	"github.com/ystepanoff/nrfperiph/driver/stub"
	"github.com/ystepanoff/nrfperiph/periph"
)

func newSim(t *testing.T) (*Driver, *stub.Board) {
	t.Helper()
	b := stub.NewBoard(stub.DefaultTiming())
	d := New(b.Radio(), b.Clock(), b.Router(), b.RadioIRQ())
	b.RadioIRQ().Bind(d.HandleInterrupt)
	d.Init()
	return d, b
}

func TestSimStartupChainsClockToRampUp(t *testing.T) {
	d, b := newSim(t)
	timing := stub.DefaultTiming()

	ready := 0
	if err := d.Register(periph.EventRxReady, func() { ready++ }); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := d.Start(periph.DirectionRX); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if s := d.State(); s != periph.StateClockPending {
		t.Fatalf("State() = %v, want clock_pending", s)
	}

	b.Advance(timing.ClockStartup)
	if s := d.State(); s != periph.StateRampingUp {
		t.Fatalf("State() after clock start = %v, want ramping_up", s)
	}
	if ready != 0 {
		t.Fatal("RxReady fired before ramp-up completed")
	}

	b.Advance(timing.RampUp)
	if ready != 1 {
		t.Fatalf("RxReady fired %d times, want 1", ready)
	}
	if s := d.State(); s != periph.StateActive {
		t.Fatalf("State() = %v, want active", s)
	}
	if b.Radio().Dir() != periph.DirectionRX {
		t.Fatalf("radio ramped up for %v, want rx", b.Radio().Dir())
	}
}

func TestSimRouteDirectionOverwritten(t *testing.T) {
	d, b := newSim(t)

	if err := d.Start(periph.DirectionRX); err != nil {
		t.Fatalf("Start(RX) error = %v", err)
	}
	b.Advance(time.Millisecond)
	d.Stop()
	d.WaitStopComplete()
	if err := d.Start(periph.DirectionTX); err != nil {
		t.Fatalf("Start(TX) error = %v", err)
	}

	ev, task, enabled := b.Router().Channel(periph.StartupRouteChannel)
	if task != b.Radio().RampUpTask(periph.DirectionTX) {
		t.Fatalf("route task = %#x, want TXEN %#x", task, stub.EndpointRadioTxEn)
	}
	if ev != stub.EndpointClockStarted || !enabled {
		t.Fatalf("route = %#x enabled=%v", ev, enabled)
	}
	if n := b.Router().ActiveRoutes(stub.EndpointClockStarted); n != 1 {
		t.Fatalf("%d routes listen to clock started, want 1", n)
	}

	b.Advance(time.Millisecond)
	if b.Radio().Dir() != periph.DirectionTX {
		t.Fatalf("radio ramped up for %v, want tx", b.Radio().Dir())
	}
}

func TestSimNoSpuriousReplay(t *testing.T) {
	d, b := newSim(t)

	b.Radio().Raise(periph.EventCrcOk) // latched while nobody listens
	fired := 0
	_ = d.Register(periph.EventCrcOk, func() { fired++ })
	if fired != 0 {
		t.Fatal("latched flag replayed into a new callback")
	}

	b.Radio().Raise(periph.EventCrcOk)
	if fired != 1 {
		t.Fatalf("callback fired %d times for one occurrence, want 1", fired)
	}
}

func TestSimClearAllSilencesEvents(t *testing.T) {
	d, b := newSim(t)
	for k := 0; k < periph.NumEvents; k++ {
		_ = d.Register(periph.EventKind(k), func() { t.Errorf("callback fired after ClearAll") })
	}
	d.ClearAll()
	for k := 0; k < periph.NumEvents; k++ {
		b.Radio().Raise(periph.EventKind(k))
	}
	if n := b.RadioIRQ().Entries(); n != 0 {
		t.Fatalf("radio interrupt entered %d times after ClearAll", n)
	}
}

func TestSimMultiplePendingServicedInOneEntry(t *testing.T) {
	d, b := newSim(t)
	var got []periph.EventKind
	for _, k := range []periph.EventKind{periph.EventAddress, periph.EventEnd, periph.EventCrcOk} {
		k := k
		_ = d.Register(k, func() { got = append(got, k) })
	}

	b.RadioIRQ().Disable()
	b.Radio().Raise(periph.EventEnd)
	b.Radio().Raise(periph.EventAddress)
	b.Radio().Raise(periph.EventCrcOk)
	b.RadioIRQ().Enable()

	want := []periph.EventKind{periph.EventCrcOk, periph.EventAddress, periph.EventEnd}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if n := b.RadioIRQ().Entries(); n != 1 {
		t.Fatalf("interrupt entries = %d, want 1", n)
	}
}

func TestSimStopFiresDisabledAndWaits(t *testing.T) {
	d, b := newSim(t)
	disabled := 0
	_ = d.Register(periph.EventDisabled, func() { disabled++ })

	_ = d.Start(periph.DirectionTX)
	b.Advance(time.Millisecond)
	if s := d.State(); s != periph.StateActive {
		t.Fatalf("State() = %v, want active", s)
	}

	d.Stop()
	d.WaitStopComplete()

	if disabled != 1 {
		t.Fatalf("Disabled fired %d times, want 1", disabled)
	}
	if b.Clock().XtalRunning() {
		t.Fatal("crystal still selected after WaitStopComplete")
	}
	if s := d.State(); s != periph.StateIdle {
		t.Fatalf("State() = %v, want idle", s)
	}
}

func TestSimStartAfterSettledStop(t *testing.T) {
	d, b := newSim(t)
	_ = d.Start(periph.DirectionRX)
	b.Advance(time.Millisecond)
	d.Stop()

	if err := d.Start(periph.DirectionTX); err == nil {
		t.Fatal("Start() succeeded while the clock was still stopping")
	}
	b.Advance(time.Millisecond)
	if err := d.Start(periph.DirectionTX); err != nil {
		t.Fatalf("Start() after the clock settled error = %v", err)
	}
}

func TestSimStateDoesNotConsumeTime(t *testing.T) {
	d, b := newSim(t)
	_ = d.Start(periph.DirectionRX)
	b.Advance(time.Millisecond)
	d.Stop()

	before := b.Now()
	for i := 0; i < 4; i++ {
		if s := d.State(); s != periph.StateStopRequested {
			t.Fatalf("State() = %v, want stop_requested", s)
		}
	}
	if now := b.Now(); now != before {
		t.Fatalf("State() moved virtual time from %v to %v", before, now)
	}

	b.Advance(stub.DefaultTiming().ClockStop)
	if s := d.State(); s != periph.StateIdle {
		t.Fatalf("State() after the clock settled = %v, want idle", s)
	}
}
