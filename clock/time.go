package clock

// Time is a timestamp split into whole seconds and the microsecond
// remainder. Every backend is scaled to this resolution before any
// arithmetic happens, so elapsed-time results are comparable across
// clock sources.
type Time struct {
	Sec  int64
	Usec int64
}

const (
	usecPerSecond   = 1000000
	usecPerMilli    = 1000
	millisPerSecond = 1000
)

// ElapsedMicros returns e minus s in microseconds. A negative
// difference reports zero; elapsed time is never negative even when
// the inputs are out of order.
func ElapsedMicros(s, e Time) uint64 {
	sec := e.Sec - s.Sec
	usec := e.Usec - s.Usec
	if sec > 0 && usec < 0 {
		sec--
		usec += usecPerSecond
	}
	if sec < 0 || (sec == 0 && usec < 0) {
		return 0
	}
	return uint64(sec)*usecPerSecond + uint64(usec)
}

// ElapsedMillis returns e minus s in milliseconds, with the same
// never-negative policy as ElapsedMicros.
func ElapsedMillis(s, e Time) uint64 {
	sec := e.Sec - s.Sec
	usec := e.Usec - s.Usec
	if sec > 0 && usec < 0 {
		sec--
		usec += usecPerSecond
	}
	if sec < 0 || (sec == 0 && usec < 0) {
		return 0
	}
	return uint64(sec)*millisPerSecond + uint64(usec)/usecPerMilli
}

// ElapsedSeconds returns e minus s in whole seconds, truncating.
func ElapsedSeconds(s, e Time) uint64 {
	return ElapsedMillis(s, e) / millisPerSecond
}
