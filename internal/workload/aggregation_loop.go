package workload

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kcz17/benchman/logging"
	"github.com/kcz17/benchman/responsetimecollector"
)

// AggregationLoop periodically logs the rolling aggregation of every tag
// observed by its collectors.
type AggregationLoop struct {
	collectors *responsetimecollector.Tagged
	logger     logging.Logger
	period     time.Duration
	// loopWG allows the spawned goroutine to be gracefully stopped.
	loopStarted bool
	loopWG      *sync.WaitGroup
	loopStop    chan bool
}

// StartNewAggregationLoop spawns a new goroutine with the aggregation loop.
func StartNewAggregationLoop(
	collectors *responsetimecollector.Tagged,
	logger logging.Logger,
	period time.Duration,
) (*AggregationLoop, error) {
	if period <= 0 {
		return nil, errors.New(fmt.Sprintf("StartNewAggregationLoop() expected period > 0; got %v", period))
	}

	c := &AggregationLoop{
		collectors:  collectors,
		logger:      logger,
		period:      period,
		loopStarted: false,
	}
	c.Restart()

	return c, nil
}

func (c *AggregationLoop) aggregationLoop() {
	ticker := time.NewTicker(c.period)
	defer ticker.Stop()
	defer c.loopWG.Done()
	for {
		select {
		case <-ticker.C:
			c.logAggregations()
		case <-c.loopStop:
			return
		}
	}
}

func (c *AggregationLoop) logAggregations() {
	for _, tag := range c.collectors.Tags() {
		aggregation, ok := c.collectors.Aggregate(tag)
		if !ok {
			continue
		}

		// The logger operates with seconds.
		p50 := float64(aggregation.P50) / float64(time.Second)
		p75 := float64(aggregation.P75) / float64(time.Second)
		p95 := float64(aggregation.P95) / float64(time.Second)
		c.logger.LogAggregateSamples(tag, p50, p75, p95)
	}
}

// Stop stops the loop and waits for the spawned goroutine to exit. The final
// aggregations are logged once more so short runs are not left unreported.
func (c *AggregationLoop) Stop() {
	if !c.loopStarted {
		return
	}
	close(c.loopStop)
	c.loopWG.Wait()
	c.loopStarted = false
	c.logAggregations()
}

// Restart stops any running loop, resets the collectors and starts again.
func (c *AggregationLoop) Restart() {
	if c.loopStarted {
		close(c.loopStop)
		c.loopWG.Wait()
		c.collectors.Reset()
	}

	c.loopStop = make(chan bool, 1)
	c.loopWG = &sync.WaitGroup{}

	c.loopWG.Add(1)
	c.loopStarted = true
	go c.aggregationLoop()
}
