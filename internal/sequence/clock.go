package sequence

import "time"

// Clock provides a monotonic millisecond counter and a blocking wait.
// The counter is allowed to wrap around; durations are computed as the
// unsigned difference of two readings.
type Clock interface {
	Millis() uint32
	Sleep(d time.Duration)
}

type systemClock struct {
	origin time.Time
}

// NewSystemClock returns a Clock based on the monotonic system clock.
func NewSystemClock() Clock {
	return &systemClock{origin: time.Now()}
}

func (c *systemClock) Millis() uint32 {
	return uint32(time.Since(c.origin).Milliseconds())
}

func (c *systemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// Elapsed returns the milliseconds passed from start to now, correct across
// a single wraparound of the counter.
func Elapsed(start uint32, now uint32) uint32 {
	return now - start
}
