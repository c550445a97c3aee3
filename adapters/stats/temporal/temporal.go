package temporal

import (
	"sort"

	"fairlens/adapters/stats/flags"
	"fairlens/adapters/stats/groups"
	"fairlens/adapters/stats/metrics"
	"fairlens/adapters/stats/profile"
	"fairlens/domain/core"
	"fairlens/domain/dataset"
	"fairlens/domain/fairness"
)

// dateSampleSize is how many leading non-empty values decide whether a
// column is date-like.
const dateSampleSize = 5

// trendDelta is the half-average gap separating improving/worsening from
// stable.
const trendDelta = 0.05

// DetectDateColumns returns the columns whose sampled values look like
// dates: native dates or YYYY-MM / YYYY-MM-DD shaped strings.
func DetectDateColumns(ds *dataset.Dataset) []core.ColumnName {
	var out []core.ColumnName
	for _, col := range ds.Columns() {
		for _, v := range ds.SampleValues(col, dateSampleSize) {
			if v.IsDateLike() {
				out = append(out, col)
				break
			}
		}
	}
	return out
}

// Analyze buckets the dataset into YYYY-MM periods per date column, reruns
// the profiling+aggregation+metrics pipeline on each period's subset, and
// classifies the chronological bias-score trend.
func Analyze(ds *dataset.Dataset, cfg fairness.Config) map[core.ColumnName]fairness.TemporalAnalysis {
	cfg = cfg.Normalized()
	out := make(map[core.ColumnName]fairness.TemporalAnalysis)

	for _, col := range DetectDateColumns(ds) {
		periods := bucketPeriods(ds, col)

		keys := make([]string, 0, len(periods))
		for p := range periods {
			keys = append(keys, p)
		}
		sort.Strings(keys) // YYYY-MM sorts chronologically

		analysis := fairness.TemporalAnalysis{Column: col}
		var scores []float64
		for _, period := range keys {
			sub := periods[period]
			score, ok := periodBiasScore(sub, cfg)
			if !ok {
				continue
			}
			analysis.Periods = append(analysis.Periods, fairness.PeriodScore{
				Period:      period,
				BiasScore:   score,
				RecordCount: sub.Len(),
			})
			scores = append(scores, score)
		}
		analysis.Trend = ClassifyTrend(scores)
		out[col] = analysis
	}
	return out
}

// bucketPeriods splits records by the YYYY-MM period of the date column.
// Records without a parseable date are dropped from the temporal view.
func bucketPeriods(ds *dataset.Dataset, col core.ColumnName) map[string]*dataset.Dataset {
	out := make(map[string]*dataset.Dataset)
	for period := range collectPeriods(ds, col) {
		p := period
		out[p] = ds.Filter(func(r dataset.Record) bool {
			got, ok := r.Get(col).Period()
			return ok && got == p
		})
	}
	return out
}

func collectPeriods(ds *dataset.Dataset, col core.ColumnName) map[string]struct{} {
	periods := make(map[string]struct{})
	for _, r := range ds.Records() {
		if p, ok := r.Get(col).Period(); ok {
			periods[p] = struct{}{}
		}
	}
	return periods
}

// periodBiasScore reruns profiling, aggregation, and core metrics on one
// period's subset and returns its overall bias score. False when the
// period has no detectable protected attribute.
func periodBiasScore(sub *dataset.Dataset, cfg fairness.Config) (float64, bool) {
	profiles := profile.NewProfiler(cfg).Profile(sub)
	if len(profiles.ProtectedAttributes) == 0 {
		return 0, false
	}
	attrs := make(map[core.ColumnName]fairness.AttributeAnalysis, len(profiles.ProtectedAttributes))
	for _, attr := range profiles.ProtectedAttributes {
		analysis := groups.Aggregate(sub, attr, profiles.TargetColumns)
		attrs[attr] = fairness.AttributeAnalysis{
			Attribute: attr,
			Groups:    analysis,
			Metrics:   metrics.Compute(analysis, profiles.TargetColumns),
		}
	}
	return flags.Overall(attrs).BiasScore, true
}

// ClassifyTrend splits the chronological score sequence in half and
// compares the half averages. With an odd count the middle element belongs
// to neither half.
func ClassifyTrend(scores []float64) string {
	if len(scores) < 2 {
		return fairness.TrendInsufficientData
	}
	n := len(scores)
	first := scores[:n/2]
	second := scores[(n+1)/2:]

	diff := average(first) - average(second)
	switch {
	case diff > trendDelta:
		return fairness.TrendImproving
	case diff < -trendDelta:
		return fairness.TrendWorsening
	default:
		return fairness.TrendStable
	}
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
