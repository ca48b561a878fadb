package timer

import (
	"errors"
	"testing"
	"time"

	"github.com/ystepanoff/nrfperiph/driver/stub"
	"github.com/ystepanoff/nrfperiph/periph"
)

func newSim(t *testing.T) (*Driver, *stub.Board) {
	t.Helper()
	b := stub.NewBoard(stub.DefaultTiming())
	d := New(
		Binding{HW: b.Timer(periph.Timer1), IRQ: b.TimerIRQ(periph.Timer1)},
		Binding{HW: b.Timer(periph.Timer2), IRQ: b.TimerIRQ(periph.Timer2)},
	)
	b.TimerIRQ(periph.Timer1).Bind(func() { d.HandleInterrupt(periph.Timer1) })
	b.TimerIRQ(periph.Timer2).Bind(func() { d.HandleInterrupt(periph.Timer2) })
	d.Init()
	return d, b
}

// fakeTimer records how Init programs the peripheral.
type fakeTimer struct {
	prescaler uint32
	bits      uint8
	cc        uint32
	inten     bool
	autoStop  bool
	event     bool
	clears    int
	starts    int
	stops     int
	ops       []string
	// latchOnClear models an old match landing just before the counter clear.
	latchOnClear bool
}

func (f *fakeTimer) SetPrescaler(p uint32)         { f.prescaler = p }
func (f *fakeTimer) SetBitWidth(bits uint8)        { f.bits = bits }
func (f *fakeTimer) EnableCompareInterrupt()       { f.inten = true }
func (f *fakeTimer) CompareInterruptEnabled() bool { return f.inten }
func (f *fakeTimer) EnableAutoStop()               { f.autoStop = true }
func (f *fakeTimer) CompareEventPending() bool     { return f.event }
func (f *fakeTimer) TriggerStop()                  { f.stops++ }

func (f *fakeTimer) SetCompare(ticks uint32) {
	f.cc = ticks
	f.ops = append(f.ops, "compare")
}

func (f *fakeTimer) ClearCompareEvent() {
	f.event = false
	f.ops = append(f.ops, "clear-event")
}

func (f *fakeTimer) TriggerClear() {
	f.clears++
	if f.latchOnClear {
		f.event = true
	}
	f.ops = append(f.ops, "clear")
}

func (f *fakeTimer) TriggerStart() {
	f.starts++
	f.ops = append(f.ops, "start")
}

type fakeIRQ struct{ enabled bool }

func (i *fakeIRQ) Enable()       { i.enabled = true }
func (i *fakeIRQ) Disable()      { i.enabled = false }
func (i *fakeIRQ) Enabled() bool { return i.enabled }

func TestInitProgramsOneShot(t *testing.T) {
	t1, t2 := &fakeTimer{cc: 99}, &fakeTimer{cc: 99}
	d := New(Binding{HW: t1, IRQ: &fakeIRQ{}}, Binding{HW: t2, IRQ: &fakeIRQ{}})
	d.Init()

	for i, f := range []*fakeTimer{t1, t2} {
		if f.prescaler != 4 {
			t.Errorf("timer%d prescaler = %d, want 4", i+1, f.prescaler)
		}
		if f.bits != periph.CounterBits {
			t.Errorf("timer%d bit width = %d, want %d", i+1, f.bits, periph.CounterBits)
		}
		if f.cc != 0 || !f.inten || !f.autoStop {
			t.Errorf("timer%d cc=%d inten=%v autoStop=%v", i+1, f.cc, f.inten, f.autoStop)
		}
	}
}

func TestStartUsSequence(t *testing.T) {
	f := &fakeTimer{event: true}
	d := New(Binding{HW: f, IRQ: &fakeIRQ{}}, Binding{HW: &fakeTimer{}, IRQ: &fakeIRQ{}})
	d.Init()

	if err := d.StartUs(periph.Timer1, 750); err != nil {
		t.Fatalf("StartUs() error = %v", err)
	}
	if f.cc != 750 || f.clears != 1 || f.starts != 1 || f.event {
		t.Fatalf("cc=%d clears=%d starts=%d event=%v", f.cc, f.clears, f.starts, f.event)
	}
	if !d.Armed(periph.Timer1) {
		t.Fatal("channel not armed after StartUs")
	}
	if err := d.StartMs(periph.Timer1, 3); err != nil || f.cc != 3000 {
		t.Fatalf("StartMs(3) cc=%d err=%v", f.cc, err)
	}
	if err := d.Stop(periph.Timer1); err != nil || f.stops != 1 || d.Armed(periph.Timer1) {
		t.Fatalf("Stop() err=%v stops=%d armed=%v", err, f.stops, d.Armed(periph.Timer1))
	}
}

func TestStartUsClearsMatchLatchedDuringRestart(t *testing.T) {
	f := &fakeTimer{}
	d := New(Binding{HW: f, IRQ: &fakeIRQ{}}, Binding{HW: &fakeTimer{}, IRQ: &fakeIRQ{}})
	d.Init()
	f.ops = nil
	f.latchOnClear = true

	if err := d.StartUs(periph.Timer1, 400); err != nil {
		t.Fatalf("StartUs() error = %v", err)
	}
	want := []string{"compare", "clear", "clear-event", "start"}
	if len(f.ops) != len(want) {
		t.Fatalf("ops = %v, want %v", f.ops, want)
	}
	for i := range want {
		if f.ops[i] != want[i] {
			t.Fatalf("ops = %v, want %v", f.ops, want)
		}
	}
	if f.event {
		t.Fatal("match from the previous arm survived StartUs")
	}
	if !d.Armed(periph.Timer1) {
		t.Fatal("channel not armed after StartUs")
	}
}

func TestOneShotFiresOnceAndAutoStops(t *testing.T) {
	d, b := newSim(t)
	fired := 0
	if err := d.Register(periph.Timer1, func() { fired++ }); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := d.StartUs(periph.Timer1, 500); err != nil {
		t.Fatalf("StartUs() error = %v", err)
	}

	b.Advance(499 * time.Microsecond)
	if fired != 0 {
		t.Fatalf("fired early at %v", b.Now())
	}
	b.Advance(time.Microsecond)
	if fired != 1 {
		t.Fatalf("fired %d times at 500us, want 1", fired)
	}
	if b.Timer(periph.Timer1).Running() {
		t.Fatal("channel still counting after compare match")
	}
	if d.Armed(periph.Timer1) {
		t.Fatal("channel still armed after compare match")
	}

	b.Advance(10 * time.Millisecond)
	if fired != 1 {
		t.Fatalf("fired %d times, want exactly 1", fired)
	}
	if n := b.TimerIRQ(periph.Timer1).Entries(); n != 1 {
		t.Fatalf("interrupt entries = %d, want 1", n)
	}
}

func TestChannelsAreIndependent(t *testing.T) {
	d, b := newSim(t)
	var at1, at2 []time.Duration
	_ = d.Register(periph.Timer1, func() { at1 = append(at1, b.Now()) })
	_ = d.Register(periph.Timer2, func() { at2 = append(at2, b.Now()) })

	_ = d.StartUs(periph.Timer1, 300)
	_ = d.StartUs(periph.Timer2, 700)
	b.Advance(2 * time.Millisecond)

	if len(at1) != 1 || at1[0] != 300*time.Microsecond {
		t.Errorf("timer1 fired at %v, want [300µs]", at1)
	}
	if len(at2) != 1 || at2[0] != 700*time.Microsecond {
		t.Errorf("timer2 fired at %v, want [700µs]", at2)
	}
}

func TestRearmRestartsFromZero(t *testing.T) {
	d, b := newSim(t)
	var at []time.Duration
	_ = d.Register(periph.Timer2, func() { at = append(at, b.Now()) })

	_ = d.StartUs(periph.Timer2, 500)
	b.Advance(400 * time.Microsecond)
	_ = d.StartUs(periph.Timer2, 500)
	b.Advance(2 * time.Millisecond)

	if len(at) != 1 || at[0] != 900*time.Microsecond {
		t.Fatalf("fired at %v, want [900µs]", at)
	}
}

func TestStartMs(t *testing.T) {
	d, b := newSim(t)
	fired := 0
	_ = d.Register(periph.Timer1, func() { fired++ })
	_ = d.StartMs(periph.Timer1, 5)

	b.Advance(4999 * time.Microsecond)
	if fired != 0 {
		t.Fatal("fired before 5ms")
	}
	b.Advance(time.Microsecond)
	if fired != 1 {
		t.Fatalf("fired %d times at 5ms, want 1", fired)
	}
}

func TestStopPreventsFire(t *testing.T) {
	d, b := newSim(t)
	fired := 0
	_ = d.Register(periph.Timer1, func() { fired++ })
	_ = d.StartUs(periph.Timer1, 200)
	b.Advance(100 * time.Microsecond)
	_ = d.Stop(periph.Timer1)
	_ = d.Stop(periph.Timer1)
	b.Advance(time.Millisecond)
	if fired != 0 {
		t.Fatal("stopped channel fired")
	}
}

func TestUnregisterSilencesChannel(t *testing.T) {
	d, b := newSim(t)
	_ = d.Register(periph.Timer1, func() { t.Error("unregistered callback fired") })
	if err := d.Unregister(periph.Timer1); err != nil {
		t.Fatalf("Unregister() error = %v", err)
	}
	if b.TimerIRQ(periph.Timer1).Enabled() {
		t.Fatal("interrupt line still enabled")
	}
	_ = d.StartUs(periph.Timer1, 100)
	b.Advance(time.Millisecond)

	if d.Armed(periph.Timer1) {
		t.Fatal("Armed() true after an unserviced compare match")
	}
}

func TestRegisterDoesNotReplayStaleCompare(t *testing.T) {
	d, b := newSim(t)
	_ = d.StartUs(periph.Timer2, 50)
	b.Advance(time.Millisecond) // compare latched, nobody listening

	fired := 0
	_ = d.Register(periph.Timer2, func() { fired++ })
	if fired != 0 {
		t.Fatal("stale compare replayed on Register")
	}
	_ = d.StartUs(periph.Timer2, 50)
	b.Advance(50 * time.Microsecond)
	if fired != 1 {
		t.Fatalf("fired %d times, want 1", fired)
	}
}

func TestLateRegisterAfterUnobservedMatch(t *testing.T) {
	d, b := newSim(t)
	_ = d.StartUs(periph.Timer1, 100)
	b.Advance(200 * time.Microsecond)
	if d.Armed(periph.Timer1) || b.Timer(periph.Timer1).Running() {
		t.Fatal("channel still armed after its compare match")
	}

	fired := 0
	_ = d.Register(periph.Timer1, func() { fired++ })
	if d.Armed(periph.Timer1) {
		t.Fatal("Armed() true for a stopped channel after Register")
	}
	b.Advance(10 * time.Millisecond)
	if fired != 0 || d.Armed(periph.Timer1) {
		t.Fatalf("fired=%d armed=%v, want 0 and false", fired, d.Armed(periph.Timer1))
	}

	_ = d.StartUs(periph.Timer1, 100)
	if !d.Armed(periph.Timer1) {
		t.Fatal("channel not armed after re-arm")
	}
	b.Advance(100 * time.Microsecond)
	if fired != 1 || d.Armed(periph.Timer1) {
		t.Fatalf("fired=%d armed=%v, want 1 and false", fired, d.Armed(periph.Timer1))
	}
}

func TestInvalidTimer(t *testing.T) {
	d, b := newSim(t)
	bad := periph.TimerID(periph.NumTimers)
	cb := func() { t.Error("callback for invalid timer fired") }

	checks := map[string]error{
		"Register":   d.Register(bad, cb),
		"Unregister": d.Unregister(bad),
		"StartUs":    d.StartUs(bad, 10),
		"StartMs":    d.StartMs(bad, 10),
		"Stop":       d.Stop(bad),
	}
	for op, err := range checks {
		if !errors.Is(err, periph.ErrInvalidTimer) {
			t.Errorf("%s(invalid) error = %v, want %v", op, err, periph.ErrInvalidTimer)
		}
	}
	if _, err := d.Channel(bad); !errors.Is(err, periph.ErrInvalidTimer) {
		t.Errorf("Channel(invalid) error = %v", err)
	}
	if d.Armed(bad) {
		t.Error("Armed(invalid) = true")
	}
	for _, id := range []periph.TimerID{periph.Timer1, periph.Timer2} {
		c, _ := d.Channel(id)
		if c.Registered() || c.Armed() || b.TimerIRQ(id).Enabled() {
			t.Errorf("%v changed by invalid id", id)
		}
	}
	d.HandleInterrupt(bad)
}
