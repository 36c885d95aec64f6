package clock

import (
	"math"

	"github.com/golang/glog"
)

const (
	// calibrationTrials is how many measurement windows are taken.
	calibrationTrials = 10

	// calibrationWindowUs is the minimum width of one measurement
	// window in microseconds.
	calibrationWindowUs = 10
)

// A Calibrator measures how fast the CPU cycle counter runs relative
// to the wall clock. There is no portable way to query the counter
// frequency, so it is derived empirically: each trial brackets a
// busy-polled wall-clock window of at least 10us with two counter
// reads, and trials corrupted by scheduling jitter are rejected.
//
// Calibration is deliberately synchronous and single-threaded: the
// measurement assumes an otherwise quiet CPU. Run it once, at
// startup, before any worker starts.
type Calibrator struct {
	// ReadCycles and WallTime override the hardware counter and the
	// wall clock; nil selects the real ones. Tests feed synthetic
	// readers through these.
	ReadCycles func() uint64
	WallTime   func() Time
}

// Calibrate returns the measured cycles per microsecond.
//
// The ten raw window deltas are reduced with Welford's single-pass
// mean/variance, then a second pass keeps only the trials within one
// sample standard deviation of the mean. Should the filter reject
// everything, the unfiltered mean is used so the result is never
// zero from a degenerate variance.
func (cal *Calibrator) Calibrate() uint64 {
	var trials [calibrationTrials]float64
	var mean, m2 float64

	for i := 0; i < calibrationTrials; i++ {
		trials[i] = float64(cal.cyclesPerWindow())
		delta := trials[i] - mean
		mean += delta / float64(i+1)
		m2 += delta * (trials[i] - mean)
	}
	sdev := math.Sqrt(m2 / (calibrationTrials - 1))

	var sum float64
	var kept int
	for _, t := range trials {
		if math.Abs(t-mean) > sdev {
			glog.V(2).Infof("clock: rejected calibration trial %.0f (mean %.0f, sdev %.0f)", t, mean, sdev)
			continue
		}
		sum += t
		kept++
	}
	if kept == 0 {
		sum = mean * calibrationTrials
		kept = calibrationTrials
	}

	avg := sum / float64(kept) / calibrationWindowUs
	glog.V(1).Infof("clock: calibrated %.0f cycles/usec from %d of %d trials", avg, kept, calibrationTrials)
	return uint64(avg)
}

// cyclesPerWindow runs one trial: read the wall clock and the cycle
// counter together, busy-poll the wall clock until the window has
// elapsed, read the counter again and return the delta.
func (cal *Calibrator) cyclesPerWindow() uint64 {
	readCycles := cal.ReadCycles
	if readCycles == nil {
		readCycles = cycles
	}
	wall := cal.WallTime
	if wall == nil {
		wall = func() Time { return readWall(nil) }
	}

	s := wall()
	cs := readCycles()
	for {
		if e := wall(); ElapsedMicros(s, e) >= calibrationWindowUs {
			break
		}
	}
	return readCycles() - cs
}
