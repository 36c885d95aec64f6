//go:build amd64

package clock

const cyclesAvailable = true

// cycles reads the time stamp counter via RDTSC.
// Implemented in cycles_amd64.s.
func cycles() uint64
