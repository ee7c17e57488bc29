package responsetimecollector

import (
	"fmt"
	"sync"
	"time"

	"github.com/montanaflynn/stats"
)

// arrayCollector uses a struct to capture all durations. As storage and
// computation are both O(n), this has been designed for ephemeral usage.
type arrayCollector struct {
	durationsSeconds    []float64
	durationsSecondsMux *sync.Mutex
}

func NewArrayCollector() *arrayCollector {
	return &arrayCollector{
		durationsSeconds:    []float64{},
		durationsSecondsMux: &sync.Mutex{},
	}
}

// All gets all the durations collected, in seconds.
func (c *arrayCollector) All() []float64 {
	c.durationsSecondsMux.Lock()
	defer c.durationsSecondsMux.Unlock()
	times := make([]float64, len(c.durationsSeconds))
	copy(times, c.durationsSeconds)
	return times
}

func (c *arrayCollector) Len() int {
	c.durationsSecondsMux.Lock()
	defer c.durationsSecondsMux.Unlock()
	return len(c.durationsSeconds)
}

func (c *arrayCollector) Add(t time.Duration) {
	c.durationsSecondsMux.Lock()
	c.durationsSeconds = append(c.durationsSeconds, t.Seconds())
	c.durationsSecondsMux.Unlock()
}

func (c *arrayCollector) Aggregate() *Aggregation {
	// The stats package creates a copy of the array, so we must hold onto the
	// mutex while calculations are being made.
	c.durationsSecondsMux.Lock()
	defer c.durationsSecondsMux.Unlock()

	// The stats package requires input arrays to be non-empty.
	if len(c.durationsSeconds) == 0 {
		return &Aggregation{}
	}

	p50, err := stats.PercentileNearestRank(c.durationsSeconds, 50)
	if err != nil {
		panic(fmt.Errorf("unexpected err in arrayCollector.Aggregate() while calculating p50: %w", err))
	}
	p75, err := stats.PercentileNearestRank(c.durationsSeconds, 75)
	if err != nil {
		panic(fmt.Errorf("unexpected err in arrayCollector.Aggregate() while calculating p75: %w", err))
	}
	p95, err := stats.PercentileNearestRank(c.durationsSeconds, 95)
	if err != nil {
		panic(fmt.Errorf("unexpected err in arrayCollector.Aggregate() while calculating p95: %w", err))
	}

	return &Aggregation{
		P50: secondsToDuration(p50),
		P75: secondsToDuration(p75),
		P95: secondsToDuration(p95),
	}
}

func (c *arrayCollector) Reset() {
	c.durationsSecondsMux.Lock()
	c.durationsSeconds = []float64{}
	c.durationsSecondsMux.Unlock()
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s*float64(time.Second) + 0.5)
}
