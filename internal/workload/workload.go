package workload

import (
	"context"
	"errors"
	"time"

	"github.com/kcz17/benchman/benchman"
	"github.com/kcz17/benchman/stats"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	// Tags are cycled through by each worker, one tag per iteration.
	Tags       []string
	Workers    int
	Iterations int
	// Mean, StdDev and Max describe the truncated normal distribution each
	// iteration's work duration is sampled from.
	Mean   time.Duration
	StdDev time.Duration
	Max    time.Duration
	// Seed is offset by the worker index so workers do not sample in
	// lockstep. Zero seeds from the current time.
	Seed uint64
}

func (o *Options) validate() error {
	if len(o.Tags) == 0 {
		return errors.New("workload.Run() expected at least one tag")
	}
	if o.Workers < 1 || o.Iterations < 1 {
		return errors.New("workload.Run() expected at least one worker and iteration")
	}
	if o.StdDev <= 0 || o.Max < o.Mean {
		return errors.New("workload.Run() expected StdDev > 0 and Max >= Mean")
	}
	return nil
}

// Run measures the synthetic work of every worker concurrently on shared
// clones of bm. It returns once all workers finish or ctx is cancelled, in
// which case in-flight stopwatches are discarded rather than recorded.
func Run(ctx context.Context, bm *benchman.BenchMan, options *Options) error {
	if err := options.validate(); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < options.Workers; i++ {
		worker := i
		clone := bm.Clone()
		g.Go(func() error {
			var seed uint64
			if options.Seed != 0 {
				seed = options.Seed + uint64(worker)
			}
			sampler := stats.NewDurationSampler(options.Mean, options.StdDev, options.Max, seed)

			for j := 0; j < options.Iterations; j++ {
				tag := options.Tags[(worker+j)%len(options.Tags)]
				if err := work(ctx, clone, tag, sampler.Sample()); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

func work(ctx context.Context, bm *benchman.BenchMan, tag string, d time.Duration) error {
	sw := bm.Stopwatch(tag)
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		sw.Stop()
		return nil
	case <-ctx.Done():
		sw.Discard()
		return ctx.Err()
	}
}
