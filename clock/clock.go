// Package clock provides the timestamp service used around every
// measured I/O: a selectable clock backend, one-time calibration for
// the CPU cycle counter, and elapsed-time arithmetic that never
// reports a negative duration.
package clock

import (
	"sync"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Source selects the backend a Clock reads.
type Source int

const (
	// Auto resolves to the best source available at initialization:
	// the CPU cycle counter when the architecture exposes one,
	// otherwise the runtime monotonic clock.
	Auto Source = iota

	// Gettimeofday reads the wall clock.
	Gettimeofday

	// Nanotime reads the runtime monotonic clock.
	Nanotime

	// CPUClock reads the CPU cycle counter, scaled by the cycle
	// frequency measured at initialization.
	CPUClock
)

func (s Source) String() string {
	switch s {
	case Auto:
		return "auto"
	case Gettimeofday:
		return "gtod"
	case Nanotime:
		return "nanotime"
	case CPUClock:
		return "cpu"
	}
	return "invalid"
}

// ParseSource maps a configuration string onto a Source.
func ParseSource(name string) (Source, error) {
	switch name {
	case "auto", "":
		return Auto, nil
	case "gtod", "gettimeofday":
		return Gettimeofday, nil
	case "nanotime":
		return Nanotime, nil
	case "cpu":
		return CPUClock, nil
	}
	return Auto, errors.Errorf("clock: unknown clock source %q", name)
}

// Config controls how a Clock is constructed.
type Config struct {
	Source Source

	// Fixed, when non-nil, is returned unconditionally by every Now
	// call, bypassing the backend. Used for reproducible runs.
	Fixed *Time

	// Observer, when non-nil, receives every timestamp Now returns,
	// after clamping.
	Observer func(Time)
}

// Clock is a timestamp service bound to one backend for its whole
// lifetime, so latency numbers within a run stay comparable. Now is
// safe for concurrent use; all other state is written once by New.
type Clock struct {
	source   Source
	fixed    *Time
	observer func(Time)

	// Cycle state, set once when source == CPUClock.
	cyclesPerUsec uint64
	readCycles    func() uint64

	read func(*Clock) Time

	mu         sync.Mutex
	lastCycles uint64
	last       Time
	lastValid  bool
}

// New resolves the effective clock source and, for the cycle counter,
// runs calibration. An explicitly requested source that this build
// cannot provide is a configuration error: silently substituting a
// different backend would make latency numbers incomparable across
// runs.
func New(cfg Config) (*Clock, error) {
	c := &Clock{fixed: cfg.Fixed, observer: cfg.Observer}

	src := cfg.Source
	if src == Auto {
		if cyclesAvailable {
			src = CPUClock
		} else {
			src = Nanotime
		}
	}

	switch src {
	case Gettimeofday:
		c.read = readWall
	case Nanotime:
		c.read = readNanotime
	case CPUClock:
		if !cyclesAvailable {
			return nil, errors.New("clock: cpu cycle counter not available on this architecture")
		}
		cal := &Calibrator{}
		c.cyclesPerUsec = cal.Calibrate()
		if c.cyclesPerUsec == 0 {
			return nil, errors.New("clock: cycle counter calibration failed")
		}
		c.readCycles = cycles
		c.read = readCPUClock
	default:
		return nil, errors.Errorf("clock: invalid clock source %d", cfg.Source)
	}

	c.source = src
	glog.V(1).Infof("clock: using %v source", src)
	return c, nil
}

// Source reports the backend resolved at construction.
func (c *Clock) Source() Source {
	return c.source
}

// Now returns the current timestamp. Successive readings never move
// backward: unsynchronized TSCs and reprogrammed wall clocks can
// appear to drift backwards, and a reading earlier than the previous
// one is clamped up to it rather than surfaced.
func (c *Clock) Now() Time {
	if c.fixed != nil {
		return *c.fixed
	}

	c.mu.Lock()
	t := c.read(c)
	if c.lastValid {
		if t.Sec < c.last.Sec || (t.Sec == c.last.Sec && t.Usec < c.last.Usec) {
			if back := c.last.Sec - t.Sec; back >= 1 {
				// Large jumps usually mean the clock was
				// reconfigured, not jitter.
				glog.V(1).Infof("clock: clamped %ds backward jump", back)
			} else {
				glog.V(2).Info("clock: clamped backward jump")
			}
			t = c.last
		}
	}
	c.lastValid = true
	c.last = t
	c.mu.Unlock()

	if c.observer != nil {
		c.observer(t)
	}
	return t
}

// MicrosSince returns the microseconds elapsed between start and now.
func (c *Clock) MicrosSince(start Time) uint64 {
	return ElapsedMicros(start, c.Now())
}

// MillisSince returns the milliseconds elapsed between start and now.
func (c *Clock) MillisSince(start Time) uint64 {
	return ElapsedMillis(start, c.Now())
}

// SecondsSince returns the whole seconds elapsed between start and
// now. The result truncates, it does not round.
func (c *Clock) SecondsSince(start Time) uint64 {
	return c.MillisSince(start) / millisPerSecond
}

// readCPUClock scales the cycle counter into a Time. Counter wrap or
// cross-core skew can make the raw value regress; it is pinned to the
// last observed count before scaling. Caller holds c.mu.
func readCPUClock(c *Clock) Time {
	t := c.readCycles()
	if t < c.lastCycles {
		glog.V(2).Info("clock: cpu clock going back in time")
		t = c.lastCycles
	}
	c.lastCycles = t

	usecs := t / c.cyclesPerUsec
	return Time{Sec: int64(usecs / usecPerSecond), Usec: int64(usecs % usecPerSecond)}
}
