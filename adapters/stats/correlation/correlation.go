package correlation

import (
	"gonum.org/v1/gonum/stat"

	"fairlens/domain/core"
	"fairlens/domain/dataset"
	"fairlens/domain/fairness"
)

// Risk buckets for |r| between a feature and a protected attribute.
const (
	highRiskThreshold   = 0.3
	mediumRiskThreshold = 0.1
)

// Analyze computes the Pearson correlation between every protected
// attribute and every column that is neither protected nor a target,
// flagging features that could act as proxies for the protected attribute.
// Output order follows the profile's attribute list and the dataset's
// column order.
func Analyze(ds *dataset.Dataset, profiles dataset.ProfileSet) []fairness.ProxyCorrelation {
	var out []fairness.ProxyCorrelation
	for _, attr := range profiles.ProtectedAttributes {
		for _, col := range ds.Columns() {
			if profiles.IsProtected(col) || profiles.IsTarget(col) {
				continue
			}
			r := pearson(ds, attr, col)
			risk := riskBucket(r)
			out = append(out, fairness.ProxyCorrelation{
				Feature:            col,
				ProtectedAttribute: attr,
				Correlation:        r,
				Risk:               risk,
				Recommendation:     riskRecommendation(risk, col, attr),
			})
		}
	}
	return out
}

// pearson correlates the numeric coercions of two columns. Pairs where
// either side is non-numeric are excluded; fewer than two valid pairs or
// zero variance on either side yields 0.
func pearson(ds *dataset.Dataset, a, b core.ColumnName) float64 {
	var xs, ys []float64
	for _, rec := range ds.Records() {
		x, ok := rec.Get(a).Number()
		if !ok {
			continue
		}
		y, ok := rec.Get(b).Number()
		if !ok {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	if len(xs) < 2 {
		return 0
	}
	if stat.Variance(xs, nil) == 0 || stat.Variance(ys, nil) == 0 {
		return 0
	}
	return stat.Correlation(xs, ys, nil)
}

func riskBucket(r float64) fairness.Severity {
	abs := r
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs > highRiskThreshold:
		return fairness.SeverityHigh
	case abs > mediumRiskThreshold:
		return fairness.SeverityMedium
	default:
		return fairness.SeverityLow
	}
}

func riskRecommendation(risk fairness.Severity, feature, attr core.ColumnName) string {
	switch risk {
	case fairness.SeverityHigh:
		return "feature " + feature.String() + " strongly correlates with " + attr.String() + "; consider removing it or auditing its influence"
	case fairness.SeverityMedium:
		return "feature " + feature.String() + " moderately correlates with " + attr.String() + "; monitor it as a potential proxy"
	default:
		return "feature " + feature.String() + " shows no material correlation with " + attr.String()
	}
}
