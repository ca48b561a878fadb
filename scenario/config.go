//go:build !tinygo && !baremetal

package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"

	"github.com/ystepanoff/nrfperiph/driver/stub"
)

var (
	ErrUnknownFormat = errors.New("unknown_scenario_format")
	ErrNoSteps       = errors.New("scenario_has_no_steps")
	ErrBadTiming     = errors.New("invalid_timing")
)

// Scenario is a scripted run against the simulated board.
type Scenario struct {
	Name   string   `yaml:"name" toml:"name"`
	Timing Timing   `yaml:"timing" toml:"timing"`
	Steps  []string `yaml:"steps" toml:"steps"`
}

// Timing overrides the simulated analogue durations. Zero keeps the default.
type Timing struct {
	ClockStartupUs int `yaml:"clockStartupUs" toml:"clock_startup_us"`
	ClockStopUs    int `yaml:"clockStopUs" toml:"clock_stop_us"`
	RampUpUs       int `yaml:"rampUpUs" toml:"ramp_up_us"`
	DisableUs      int `yaml:"disableUs" toml:"disable_us"`
	PollNs         int `yaml:"pollNs" toml:"poll_ns"`
}

// Board returns the simulator timing with the overrides applied.
func (t Timing) Board() stub.Timing {
	st := stub.DefaultTiming()
	set := func(dst *time.Duration, v int, unit time.Duration) {
		if v > 0 {
			*dst = time.Duration(v) * unit
		}
	}
	set(&st.ClockStartup, t.ClockStartupUs, time.Microsecond)
	set(&st.ClockStop, t.ClockStopUs, time.Microsecond)
	set(&st.RampUp, t.RampUpUs, time.Microsecond)
	set(&st.Disable, t.DisableUs, time.Microsecond)
	set(&st.Poll, t.PollNs, time.Nanosecond)
	return st
}

// Load reads a scenario from a .yaml/.yml or .toml file, applies
// environment overrides and validates it.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	applyEnvOverrides(s)
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s validation failed: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scenario in the given format ("yaml", "yml" or "toml").
func Parse(data []byte, format string) (*Scenario, error) {
	s := &Scenario{}
	var err error
	switch format {
	case "yaml", "yml":
		err = yaml.Unmarshal(data, s)
	case "toml":
		err = toml.Unmarshal(data, s)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// applyEnvOverrides lets CI tighten simulator timing without editing files.
func applyEnvOverrides(s *Scenario) {
	if v := os.Getenv("PERIPHSIM_POLL_NS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.Timing.PollNs = n
		}
	}
	if v := os.Getenv("PERIPHSIM_CLOCK_STARTUP_US"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.Timing.ClockStartupUs = n
		}
	}
}

func (s *Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return ErrNoSteps
	}
	t := s.Timing
	for _, v := range []int{t.ClockStartupUs, t.ClockStopUs, t.RampUpUs, t.DisableUs, t.PollNs} {
		if v < 0 {
			return fmt.Errorf("%w: negative duration %d", ErrBadTiming, v)
		}
	}
	return nil
}
