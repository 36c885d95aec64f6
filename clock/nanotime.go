package clock

import (
	"time"
	_ "unsafe" // for go:linkname
)

// nanotime is the runtime's monotonic clock, the same reading
// time.Now embeds but without the wall-clock half of the call.
//
//go:linkname nanotime runtime.nanotime
func nanotime() int64

func readNanotime(*Clock) Time {
	ns := nanotime()
	return Time{Sec: ns / 1e9, Usec: (ns % 1e9) / 1000}
}

func readWall(*Clock) Time {
	t := time.Now()
	return Time{Sec: t.Unix(), Usec: int64(t.Nanosecond()) / 1000}
}
