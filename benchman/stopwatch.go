package benchman

import (
	"sync/atomic"
	"time"
)

// Stopwatch measures the time since it was handed out by a BenchMan. It
// reports to the BenchMan exactly once, on the first call to Stop. A
// Stopwatch may be stopped from any goroutine.
type Stopwatch struct {
	bm    *BenchMan
	tag   string
	start time.Time
	// done is set to 1 once the stopwatch is stopped or discarded.
	done int32
}

func newStopwatch(bm *BenchMan, tag string) *Stopwatch {
	return &Stopwatch{
		bm:    bm,
		tag:   tag,
		start: bm.clock.Now(),
	}
}

func (sw *Stopwatch) Tag() string {
	return sw.tag
}

// Elapsed returns the time since the stopwatch started without stopping it.
func (sw *Stopwatch) Elapsed() time.Duration {
	return sw.since()
}

// Stop records the elapsed time and returns it. Calls after the first, or
// after Discard, record nothing and return 0.
func (sw *Stopwatch) Stop() time.Duration {
	if !atomic.CompareAndSwapInt32(&sw.done, 0, 1) {
		return 0
	}

	elapsed := sw.since()
	sw.bm.record(sw.tag, elapsed)
	return elapsed
}

// Discard stops the stopwatch without recording. It returns false if the
// stopwatch had already been stopped or discarded.
func (sw *Stopwatch) Discard() bool {
	return atomic.CompareAndSwapInt32(&sw.done, 0, 1)
}

// since never returns a negative duration, even if the clock goes backwards.
func (sw *Stopwatch) since() time.Duration {
	elapsed := sw.bm.clock.Now().Sub(sw.start)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}
