package groups

import (
	"strings"

	"github.com/montanaflynn/stats"

	"fairlens/domain/core"
	"fairlens/domain/dataset"
	"fairlens/domain/fairness"
)

// Aggregate partitions the dataset by one attribute's values and computes
// per-group counts, percentages, and per-target descriptive statistics.
// Records with a missing or empty attribute value land in the "Unknown"
// group, so the groups always partition the dataset exactly.
func Aggregate(ds *dataset.Dataset, attr core.ColumnName, targets []core.ColumnName) fairness.GroupAnalysis {
	return aggregate(ds, func(r dataset.Record) string {
		return groupKey(r, attr)
	}, targets)
}

// AggregateComposite partitions by a tuple of attributes, joining the
// per-attribute keys as value1_value2 for intersectional analysis.
func AggregateComposite(ds *dataset.Dataset, attrs []core.ColumnName, targets []core.ColumnName) fairness.GroupAnalysis {
	return aggregate(ds, func(r dataset.Record) string {
		parts := make([]string, len(attrs))
		for i, a := range attrs {
			parts[i] = groupKey(r, a)
		}
		return strings.Join(parts, "_")
	}, targets)
}

func aggregate(ds *dataset.Dataset, keyFn func(dataset.Record) string, targets []core.ColumnName) fairness.GroupAnalysis {
	members := make(map[string][]dataset.Record)
	for _, r := range ds.Records() {
		key := keyFn(r)
		members[key] = append(members[key], r)
	}

	total := ds.Len()
	analysis := make(fairness.GroupAnalysis, len(members))
	for key, recs := range members {
		grp := fairness.Group{
			Key:     key,
			Members: recs,
			Count:   len(recs),
			Targets: make(map[core.ColumnName]fairness.TargetStats),
		}
		if total > 0 {
			grp.Percentage = float64(len(recs)) / float64(total) * 100
		}
		for _, target := range targets {
			if ts, ok := targetStats(recs, target); ok {
				grp.Targets[target] = ts
			}
		}
		analysis[key] = grp
	}
	return analysis
}

// groupKey renders the record's attribute value as a trimmed string, with
// the Unknown sentinel for missing cells.
func groupKey(r dataset.Record, attr core.ColumnName) string {
	key := strings.TrimSpace(r.Get(attr).String())
	if key == "" {
		return fairness.UnknownGroup
	}
	return key
}

// targetStats computes descriptive statistics over the numeric values of
// one target column within a group. Returns false when no value coerces to
// a number; the target then simply has no entry for this group.
func targetStats(recs []dataset.Record, target core.ColumnName) (fairness.TargetStats, bool) {
	values := NumericValues(recs, target)
	if len(values) == 0 {
		return fairness.TargetStats{}, false
	}

	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)

	// Sample standard deviation (n-1), defined as 0 below two samples.
	stdDev := 0.0
	if len(values) >= 2 {
		stdDev, _ = stats.StandardDeviationSample(values)
	}

	positive := 0
	for _, v := range values {
		if v > 0.5 {
			positive++
		}
	}

	return fairness.TargetStats{
		Count:        len(values),
		Mean:         mean,
		Median:       median,
		StdDev:       stdDev,
		PositiveRate: float64(positive) / float64(len(values)),
	}, true
}

// NumericValues extracts the target column's numeric values from a record
// slice, preserving record order.
func NumericValues(recs []dataset.Record, target core.ColumnName) []float64 {
	var values []float64
	for _, r := range recs {
		if f, ok := r.Get(target).Number(); ok {
			values = append(values, f)
		}
	}
	return values
}
