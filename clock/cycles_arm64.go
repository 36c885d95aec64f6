//go:build arm64

package clock

const cyclesAvailable = true

// cycles reads the virtual counter via CNTVCT_EL0.
// Implemented in cycles_arm64.s.
func cycles() uint64
