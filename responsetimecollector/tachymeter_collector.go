package responsetimecollector

import (
	"sync/atomic"
	"time"

	"github.com/jamiealquiza/tachymeter"
)

// tachymeterCollector uses the jamiealquiza/tachymeter library to capture and
// calculate timings over a rolling window of the most recent durations.
type tachymeterCollector struct {
	tach   *tachymeter.Tachymeter
	window int
	// count is the number of durations added since the last reset.
	count uint64
}

func NewTachymeterCollector(window int) *tachymeterCollector {
	return &tachymeterCollector{
		tach: tachymeter.New(&tachymeter.Config{
			Size: window,
		}),
		window: window,
	}
}

// Len gets the number of durations within the window.
func (c *tachymeterCollector) Len() int {
	n := atomic.LoadUint64(&c.count)
	if n > uint64(c.window) {
		return c.window
	}
	return int(n)
}

func (c *tachymeterCollector) Add(t time.Duration) {
	c.tach.AddTime(t)
	atomic.AddUint64(&c.count, 1)
}

func (c *tachymeterCollector) Aggregate() *Aggregation {
	if atomic.LoadUint64(&c.count) == 0 {
		return &Aggregation{}
	}

	aggregation := c.tach.Calc()
	return &Aggregation{
		P50: aggregation.Time.P50,
		P75: aggregation.Time.P75,
		P95: aggregation.Time.P95,
	}
}

func (c *tachymeterCollector) Reset() {
	c.tach.Reset()
	atomic.StoreUint64(&c.count, 0)
}
