package intersect

import (
	"fmt"

	"fairlens/adapters/stats/groups"
	"fairlens/adapters/stats/metrics"
	"fairlens/domain/core"
	"fairlens/domain/dataset"
	"fairlens/domain/fairness"
)

// Analyze reruns aggregation and core-metric computation over every
// size-2 combination of protected attributes, using composite
// value1_value2 group keys. Needs at least two protected attributes;
// returns an empty map otherwise.
func Analyze(ds *dataset.Dataset, protected []core.ColumnName, targets []core.ColumnName) map[string]fairness.IntersectionAnalysis {
	out := make(map[string]fairness.IntersectionAnalysis)
	if len(protected) < 2 {
		return out
	}

	for _, pair := range Combinations(protected, 2) {
		analysis := groups.AggregateComposite(ds, pair, targets)
		key := fmt.Sprintf("%s_x_%s", pair[0], pair[1])
		out[key] = fairness.IntersectionAnalysis{
			Attributes: pair,
			Groups:     analysis,
			Metrics:    metrics.Compute(analysis, targets),
		}
	}
	return out
}
