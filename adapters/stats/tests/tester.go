package tests

import (
	"sort"

	"fairlens/adapters/stats/groups"
	"fairlens/domain/core"
	"fairlens/domain/fairness"
)

// RunAll executes the three significance tests for one (attribute, target)
// pair over the attribute's group analysis. Individual tests come back nil
// when their preconditions are unmet.
func RunAll(analysis fairness.GroupAnalysis, target core.ColumnName) fairness.TestSet {
	samples := GroupSamples(analysis, target)
	return fairness.TestSet{
		ChiSquare:         ChiSquare(samples),
		TTest:             WelchTTest(samples),
		KolmogorovSmirnov: KolmogorovSmirnov(samples),
	}
}

// GroupSamples extracts each group's numeric target values.
func GroupSamples(analysis fairness.GroupAnalysis, target core.ColumnName) map[string][]float64 {
	samples := make(map[string][]float64, len(analysis))
	for key, grp := range analysis {
		if values := groups.NumericValues(grp.Members, target); len(values) > 0 {
			samples[key] = values
		}
	}
	return samples
}

func sortedSampleKeys(samples map[string][]float64) []string {
	keys := make([]string, 0, len(samples))
	for k := range samples {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
