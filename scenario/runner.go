//go:build !tinygo && !baremetal

// Package scenario runs scripted sequences of driver calls, simulated
// hardware events and expectations against the host board.
package scenario

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/shlex"
	"golang.org/x/exp/slices"

	nrfperiph "github.com/ystepanoff/nrfperiph"
	"github.com/ystepanoff/nrfperiph/driver/stub"
	"github.com/ystepanoff/nrfperiph/periph"
	"github.com/ystepanoff/nrfperiph/radio"
	"github.com/ystepanoff/nrfperiph/timer"
)

var (
	ErrUnknownCommand = errors.New("unknown_command")
	ErrBadArguments   = errors.New("bad_arguments")
	ErrExpectation    = errors.New("expectation_failed")
)

// Runner owns one simulated board with the radio and timer drivers bound
// to it. Registered callbacks count their invocations by name.
type Runner struct {
	board  *stub.Board
	radio  *radio.Driver
	timers *timer.Driver
	fired  map[string]int
	logger *log.Logger
	steps  int
}

func NewRunner(t Timing, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	b := stub.NewBoard(t.Board())
	return &Runner{
		board:  b,
		radio:  nrfperiph.BindRadio(b),
		timers: nrfperiph.BindTimers(b),
		fired:  make(map[string]int),
		logger: logger,
	}
}

// Report summarises a finished run.
type Report struct {
	Name    string
	Steps   int
	Elapsed time.Duration
	Fired   map[string]int
	Trace   []stub.TraceEntry
}

// Lines renders the callback counts in name order.
func (rep *Report) Lines() []string {
	names := make([]string, 0, len(rep.Fired))
	for n := range rep.Fired {
		names = append(names, n)
	}
	slices.Sort(names)
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, fmt.Sprintf("%s=%d", n, rep.Fired[n]))
	}
	return out
}

// Run executes every step of s on a fresh runner and stops at the first
// failing step.
func Run(s *Scenario, logger *log.Logger) (*Report, error) {
	r := NewRunner(s.Timing, logger)
	r.logger.Printf("[Scenario] %s: %d steps\r\n", s.Name, len(s.Steps))
	for i, line := range s.Steps {
		if err := r.Exec(line); err != nil {
			return r.report(s.Name), fmt.Errorf("step %d %q: %w", i+1, line, err)
		}
	}
	return r.report(s.Name), nil
}

func (r *Runner) report(name string) *Report {
	fired := make(map[string]int, len(r.fired))
	for k, v := range r.fired {
		fired[k] = v
	}
	return &Report{Name: name, Steps: r.steps, Elapsed: r.board.Now(), Fired: fired, Trace: r.board.Trace()}
}

// Board exposes the simulated chip.
func (r *Runner) Board() *stub.Board { return r.board }

// Fired returns how often the named callback ran ("radio.rxready", "timer1").
func (r *Runner) Fired(name string) int { return r.fired[name] }

// Exec runs one shell-like step line. Blank lines and # comments are no-ops.
func (r *Runner) Exec(line string) error {
	args, err := shlex.Split(line)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadArguments, err)
	}
	if len(args) == 0 {
		return nil
	}
	r.steps++
	r.logger.Printf("[Scenario] t=%v %s\r\n", r.board.Now(), line)

	switch args[0] {
	case "radio":
		return r.execRadio(args[1:])
	case "timer":
		return r.execTimer(args[1:])
	case "advance":
		if len(args) != 2 {
			return fmt.Errorf("%w: advance <duration>", ErrBadArguments)
		}
		d, err := time.ParseDuration(args[1])
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadArguments, err)
		}
		r.board.Advance(d)
		return nil
	case "expect":
		return r.execExpect(args[1:])
	}
	return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
}

func (r *Runner) counter(name string) periph.Handler {
	return func() { r.fired[name]++ }
}

func (r *Runner) execRadio(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: radio <op>", ErrBadArguments)
	}
	op, rest := args[0], args[1:]
	switch op {
	case "init":
		r.radio.Init()
		return nil
	case "start":
		if len(rest) != 1 {
			return fmt.Errorf("%w: radio start rx|tx", ErrBadArguments)
		}
		dir, err := periph.ParseDirection(rest[0])
		if err != nil {
			return err
		}
		return r.radio.Start(dir)
	case "stop":
		r.radio.Stop()
		return nil
	case "wait":
		r.radio.WaitStopComplete()
		return nil
	case "clear":
		r.radio.ClearAll()
		return nil
	case "register", "unregister", "raise":
		if len(rest) != 1 {
			return fmt.Errorf("%w: radio %s <event>", ErrBadArguments, op)
		}
		kind, err := periph.ParseEventKind(rest[0])
		if err != nil {
			return err
		}
		switch op {
		case "register":
			return r.radio.Register(kind, r.counter("radio."+kind.String()))
		case "unregister":
			return r.radio.Unregister(kind)
		default:
			r.board.Radio().Raise(kind)
			return nil
		}
	}
	return fmt.Errorf("%w: radio %q", ErrUnknownCommand, op)
}

func parseTimerID(s string) (periph.TimerID, error) {
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil || n == 0 {
		return 0, periph.ErrInvalidTimer
	}
	return periph.TimerID(n - 1), nil
}

func (r *Runner) execTimer(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: timer <op>", ErrBadArguments)
	}
	op, rest := args[0], args[1:]
	if op == "init" {
		r.timers.Init()
		return nil
	}
	if len(rest) == 0 {
		return fmt.Errorf("%w: timer %s <id>", ErrBadArguments, op)
	}
	id, err := parseTimerID(rest[0])
	if err != nil {
		return err
	}
	switch op {
	case "register":
		return r.timers.Register(id, r.counter(id.String()))
	case "unregister":
		return r.timers.Unregister(id)
	case "stop":
		return r.timers.Stop(id)
	case "start-us", "start-ms":
		if len(rest) != 2 {
			return fmt.Errorf("%w: timer %s <id> <n>", ErrBadArguments, op)
		}
		n, err := strconv.ParseUint(rest[1], 10, 32)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadArguments, err)
		}
		if op == "start-us" {
			return r.timers.StartUs(id, uint32(n))
		}
		return r.timers.StartMs(id, uint32(n))
	}
	return fmt.Errorf("%w: timer %q", ErrUnknownCommand, op)
}

func (r *Runner) execExpect(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: expect <what> <value...>", ErrBadArguments)
	}
	what, want := args[0], args[len(args)-1]
	var got string
	switch what {
	case "fired":
		if len(args) != 3 {
			return fmt.Errorf("%w: expect fired <name> <n>", ErrBadArguments)
		}
		got = strconv.Itoa(r.fired[args[1]])
	case "state":
		got = r.radio.State().String()
	case "route":
		_, task, enabled := r.board.Router().Channel(periph.StartupRouteChannel)
		switch {
		case !enabled:
			got = "none"
		case task == r.board.Radio().RampUpTask(periph.DirectionRX):
			got = periph.DirectionRX.String()
		case task == r.board.Radio().RampUpTask(periph.DirectionTX):
			got = periph.DirectionTX.String()
		default:
			got = fmt.Sprintf("%#x", uint32(task))
		}
	case "armed":
		if len(args) != 3 {
			return fmt.Errorf("%w: expect armed <id> true|false", ErrBadArguments)
		}
		id, err := parseTimerID(args[1])
		if err != nil {
			return err
		}
		got = strconv.FormatBool(r.timers.Armed(id))
	case "now":
		d, err := time.ParseDuration(want)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadArguments, err)
		}
		if now := r.board.Now(); now != d {
			return fmt.Errorf("%w: now is %v, want %v", ErrExpectation, now, d)
		}
		return nil
	default:
		return fmt.Errorf("%w: expect %q", ErrUnknownCommand, what)
	}
	if got != want {
		return fmt.Errorf("%w: %s is %s, want %s", ErrExpectation, what, got, want)
	}
	return nil
}
