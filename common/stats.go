// Package common holds the summary statistics shared by benchmark
// streams and calibration diagnostics.
package common

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

type (
	// Stats accumulates individual samples, one per measured
	// operation, for later summary.
	Stats []float64

	// Summary describes a sample set: central tendency, spread,
	// quartiles and a confidence interval on the mean.
	Summary struct {
		ZValue
		CLow  float64
		CHigh float64
		Mean  float64
		Min   float64
		P25   float64
		P50   float64
		P75   float64
		Max   float64
	}

	ZValue struct {
		C float64
		Z float64
	}
)

var (
	C90 = ZValue{C: 90, Z: 1.645}
	C95 = ZValue{C: 95, Z: 1.96}
	C99 = ZValue{C: 99, Z: 2.58}
)

func (s *Stats) Update(v float64) {
	*s = append(*s, v)
}

func (s Stats) Count() int {
	return len(s)
}

func (s Stats) Mean() float64 {
	return stat.Mean(s, nil)
}

func (s Stats) StdDev() float64 {
	_, std := stat.MeanStdDev(s, nil)
	return std
}

// Summarize sorts the samples in place and reduces them.
func (s Stats) Summarize(z ZValue) Summary {
	sort.Float64s(s)

	m, std := stat.MeanStdDev(s, nil)
	se := stat.StdErr(std, float64(s.Count()))

	return Summary{
		ZValue: z,
		CLow:   m - z.Z*se,
		CHigh:  m + z.Z*se,
		Mean:   m,
		Min:    s[0],
		Max:    s[len(s)-1],
		P25:    s[len(s)/4],
		P50:    s[len(s)/2],
		P75:    s[3*len(s)/4],
	}
}

func (sm Summary) String() string {
	return fmt.Sprintf("mean %.1f [%.1f - %.1f @ %.0f%%] min %.1f p50 %.1f max %.1f",
		sm.Mean, sm.CLow, sm.CHigh, sm.C, sm.Min, sm.P50, sm.Max)
}
