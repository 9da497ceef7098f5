package game

import "time"

// FPSLimiter paces the frame loop when vsync is off.
type FPSLimiter struct {
	limit int
	next  time.Time
	now   func() time.Time
	sleep func(time.Duration)
}

// NewFPSLimiter creates a limiter for limit frames per second. Zero or less
// disables limiting.
func NewFPSLimiter(limit int) *FPSLimiter {
	return &FPSLimiter{limit: limit, now: time.Now, sleep: time.Sleep}
}

// SetLimit changes the target rate.
func (f *FPSLimiter) SetLimit(limit int) {
	f.limit = limit
	f.next = time.Time{}
}

// Wait blocks until the next frame is due. It sleeps most of the interval and
// spins for the last 200µs.
func (f *FPSLimiter) Wait() {
	if f.limit <= 0 {
		f.next = time.Time{}
		return
	}
	target := time.Second / time.Duration(f.limit)
	if f.next.IsZero() {
		f.next = f.now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := f.next.Sub(f.now())
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			f.sleep(remaining - 200*time.Microsecond)
		}
		if !f.now().Before(f.next) {
			break
		}
	}

	// resync after a hitch instead of racing to catch up
	if late := f.now().Sub(f.next); late > target {
		f.next = f.now().Add(target)
	}
}
