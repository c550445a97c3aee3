package metrics

import (
	"math"

	"fairlens/domain/core"
	"fairlens/domain/fairness"
)

// Compute derives the core fairness metrics per target from one
// attribute's group analysis. A target needs at least two groups carrying
// stats for it; otherwise it gets no entry. An empty map is valid output,
// not an error.
func Compute(groups fairness.GroupAnalysis, targets []core.ColumnName) map[core.ColumnName]fairness.MetricSet {
	out := make(map[core.ColumnName]fairness.MetricSet)
	for _, target := range targets {
		rates := groups.PositiveRates(target)
		if len(rates) < 2 {
			continue
		}
		out[target] = FromRates(rates)
	}
	return out
}

// FromRates computes the core metric set from a group -> positive-rate map.
func FromRates(rates map[string]float64) fairness.MetricSet {
	min, max := fairness.RateBounds(rates)

	di := 0.0
	if max > 0 {
		di = min / max
	}
	spd := max - min

	// Equal opportunity uses the positive rate as a true-positive-rate
	// proxy: without separated ground-truth labels it is numerically the
	// same max-min gap as statistical parity.
	eo := spd

	return fairness.MetricSet{
		DisparateImpact:       di,
		StatisticalParityDiff: spd,
		EqualOpportunity:      eo,
		BiasSeverity:          math.Max(math.Abs(1-di), spd),
	}
}
