package tests

import (
	"math"

	"fairlens/domain/fairness"
)

// ksThreshold is the fixed max-ECDF-difference cutoff. Not adjusted for
// sample size.
const ksThreshold = 0.05

// ksMinSamples is the per-group minimum for the test to apply.
const ksMinSamples = 5

// KolmogorovSmirnov computes the two-sample KS statistic: the maximum
// absolute difference between the empirical CDFs, evaluated at every
// observed value across both samples. Applicable only with exactly two
// groups of at least five samples each; nil otherwise.
func KolmogorovSmirnov(samples map[string][]float64) *fairness.TestResult {
	keys := sortedSampleKeys(samples)
	var populated [][]float64
	for _, key := range keys {
		if len(samples[key]) > 0 {
			populated = append(populated, samples[key])
		}
	}
	if len(populated) != 2 {
		return nil
	}
	g1, g2 := populated[0], populated[1]
	if len(g1) < ksMinSamples || len(g2) < ksMinSamples {
		return nil
	}

	maxDiff := 0.0
	for _, v := range g1 {
		if d := math.Abs(ecdf(g1, v) - ecdf(g2, v)); d > maxDiff {
			maxDiff = d
		}
	}
	for _, v := range g2 {
		if d := math.Abs(ecdf(g1, v) - ecdf(g2, v)); d > maxDiff {
			maxDiff = d
		}
	}

	return &fairness.TestResult{
		Statistic:   maxDiff,
		Significant: maxDiff > ksThreshold,
	}
}

// ecdf evaluates the empirical CDF of a sample at v.
func ecdf(sample []float64, v float64) float64 {
	count := 0
	for _, s := range sample {
		if s <= v {
			count++
		}
	}
	return float64(count) / float64(len(sample))
}
