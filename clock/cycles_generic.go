//go:build !amd64 && !arm64

package clock

// No cycle counter reader on this architecture; Auto resolves to the
// runtime monotonic clock instead.
const cyclesAvailable = false

func cycles() uint64 { return 0 }
