package responsetimecollector

import "time"

type Aggregation struct {
	P50 time.Duration // P50 is the 50th percentile duration.
	P75 time.Duration // P75 is the 75th percentile duration.
	P95 time.Duration // P95 is the 95th percentile duration.
}

type Collector interface {
	Len() int                // Len gets the number of durations collected.
	Add(t time.Duration)     // Add sends a new duration to the collector.
	Aggregate() *Aggregation // Aggregate calculates aggregate metrics over the collected durations.
	Reset()                  // Reset resets the state of the collector for reuse.
}
