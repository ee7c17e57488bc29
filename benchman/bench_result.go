package benchman

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
)

// Summary holds the statistics of a single tag at the time it was taken.
type Summary struct {
	Count  int
	Mean   time.Duration
	Min    time.Duration
	Max    time.Duration
	StdDev time.Duration // StdDev is the population standard deviation.
	P50    time.Duration
	P95    time.Duration
	P99    time.Duration
}

// benchResult stores every duration recorded for one tag in arrival order.
// Storage and computation are both O(n), which is acceptable for one-shot
// benchmarks.
type benchResult struct {
	list []time.Duration
}

func newBenchResult() *benchResult {
	return &benchResult{list: []time.Duration{}}
}

func (r *benchResult) n() int {
	return len(r.list)
}

func (r *benchResult) add(d time.Duration) {
	r.list = append(r.list, d)
}

func (r *benchResult) clone() *benchResult {
	list := make([]time.Duration, len(r.list))
	copy(list, r.list)
	return &benchResult{list: list}
}

// average panics on an empty result as there is no meaningful mean.
func (r *benchResult) average() time.Duration {
	if len(r.list) == 0 {
		panic(errors.New("benchResult.average() expected at least one sample; got 0"))
	}

	var sum time.Duration
	for _, d := range r.list {
		sum += d
	}
	return sum / time.Duration(len(r.list))
}

// percentile returns the nearest-rank percentile: the value at the 1-based
// position ceil(p/100 * n) of the ascending samples. p must be in (0, 100]
// and at least one sample must have been recorded.
func (r *benchResult) percentile(p float64) time.Duration {
	return percentileOfSorted(r.sorted(), p)
}

func (r *benchResult) sorted() []time.Duration {
	sorted := make([]time.Duration, len(r.list))
	copy(sorted, r.list)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted
}

func percentileOfSorted(sorted []time.Duration, p float64) time.Duration {
	if p <= 0 || p > 100 {
		panic(fmt.Errorf("benchResult.percentile() expected p in (0, 100]; got %v", p))
	}
	if len(sorted) == 0 {
		panic(errors.New("benchResult.percentile() expected at least one sample; got 0"))
	}

	i := int(math.Ceil(p / 100 * float64(len(sorted))))
	if i < 1 {
		i = 1
	}
	return sorted[i-1]
}

func (r *benchResult) summary() Summary {
	sorted := r.sorted()

	// The stats package requires input arrays to be non-empty, which
	// average() and percentileOfSorted() have already enforced by this point.
	mean := r.average()
	nanos := make(stats.Float64Data, len(r.list))
	for i, d := range r.list {
		nanos[i] = float64(d)
	}
	stdDev, err := stats.StandardDeviationPopulation(nanos)
	if err != nil {
		panic(fmt.Errorf("unexpected err in benchResult.summary() while calculating standard deviation: %w", err))
	}

	return Summary{
		Count:  len(sorted),
		Mean:   mean,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		StdDev: time.Duration(stdDev),
		P50:    percentileOfSorted(sorted, 50),
		P95:    percentileOfSorted(sorted, 95),
		P99:    percentileOfSorted(sorted, 99),
	}
}

// String renders the statistics block used by reports:
//
//	[ave.] <mean>
//	<p50> (>50%), <p95> (>95%), <p99> (>99%)
func (r *benchResult) String() string {
	sorted := r.sorted()
	return fmt.Sprintf(
		"[ave.] %v\n%v (>50%%), %v (>95%%), %v (>99%%)\n",
		r.average(),
		percentileOfSorted(sorted, 50),
		percentileOfSorted(sorted, 95),
		percentileOfSorted(sorted, 99),
	)
}
