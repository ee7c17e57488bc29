package stats

import (
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// DurationSampler samples durations from a normal distribution truncated to
// [0, max]. A DurationSampler is not safe for concurrent use.
type DurationSampler struct {
	norm    distuv.Normal
	uniform distuv.Uniform
	max     float64
}

// NewDurationSampler creates a sampler. A zero seed uses the current time for
// sufficient uniqueness.
func NewDurationSampler(mean, stdDev, max time.Duration, seed uint64) *DurationSampler {
	if seed == 0 {
		seed = uint64(time.Now().UTC().UnixNano())
	}
	src := rand.NewSource(seed)

	// Use an inverse transform method to sample from the distribution.
	// Reference: https://www.r-bloggers.com/2020/08/generating-data-from-a-truncated-distribution/
	norm := distuv.Normal{
		Mu:    float64(mean),
		Sigma: float64(stdDev),
		Src:   src,
	}
	return &DurationSampler{
		norm: norm,
		uniform: distuv.Uniform{
			Min: norm.CDF(0),
			Max: norm.CDF(float64(max)),
			Src: src,
		},
		max: float64(max),
	}
}

func (s *DurationSampler) Sample() time.Duration {
	d := s.norm.Quantile(s.uniform.Rand())

	// The quantile is infinite at the bounds of the CDF.
	d = math.Max(0, math.Min(s.max, d))
	return time.Duration(d)
}
