package flags

import (
	"fmt"
	"sort"

	"fairlens/domain/core"
	"fairlens/domain/fairness"
)

// retrainingScoreThreshold is the overall bias score above which model
// retraining is recommended.
const retrainingScoreThreshold = 0.3

// underrepresentationFactor: a group smaller than this fraction of its
// attribute's average group size triggers a data-balancing recommendation.
const underrepresentationFactor = 0.5

// Flags thresholds every (attribute, target) metric set into bias flags.
// Output order is deterministic: attributes, then targets, sorted.
func Flags(attrs map[core.ColumnName]fairness.AttributeAnalysis, cfg fairness.Config) []fairness.BiasFlag {
	cfg = cfg.Normalized()
	var out []fairness.BiasFlag

	for _, attr := range sortedAttrs(attrs) {
		analysis := attrs[attr]
		for _, target := range sortedTargets(analysis.Metrics) {
			m := analysis.Metrics[target]
			if m.DisparateImpact < cfg.DisparateImpactThreshold {
				out = append(out, fairness.BiasFlag{
					Type:      fairness.FlagDisparateImpact,
					Severity:  fairness.SeverityHigh,
					Attribute: attr,
					Target:    target,
					Value:     m.DisparateImpact,
					Threshold: cfg.DisparateImpactThreshold,
					Message: fmt.Sprintf("disparate impact %.3f for %s on %s is below the %.2f threshold",
						m.DisparateImpact, attr, target, cfg.DisparateImpactThreshold),
				})
			}
			if m.StatisticalParityDiff > cfg.StatisticalParityThreshold {
				out = append(out, fairness.BiasFlag{
					Type:      fairness.FlagStatisticalParity,
					Severity:  fairness.ParitySeverity(m.StatisticalParityDiff),
					Attribute: attr,
					Target:    target,
					Value:     m.StatisticalParityDiff,
					Threshold: cfg.StatisticalParityThreshold,
					Message: fmt.Sprintf("positive-rate gap %.3f for %s on %s exceeds the %.2f threshold",
						m.StatisticalParityDiff, attr, target, cfg.StatisticalParityThreshold),
				})
			}
		}
	}
	return out
}

// Recommendations derives remediation steps from the grouped analyses, the
// raised flags, and the overall score.
func Recommendations(attrs map[core.ColumnName]fairness.AttributeAnalysis, raised []fairness.BiasFlag, overall fairness.OverallMetrics) []fairness.Recommendation {
	var out []fairness.Recommendation

	// Underrepresented groups: count below half the attribute's average
	// group size.
	for _, attr := range sortedAttrs(attrs) {
		analysis := attrs[attr]
		if len(analysis.Groups) == 0 {
			continue
		}
		avg := float64(analysis.Groups.TotalCount()) / float64(len(analysis.Groups))
		for _, key := range sortedGroupKeys(analysis.Groups) {
			grp := analysis.Groups[key]
			if float64(grp.Count) < underrepresentationFactor*avg {
				out = append(out, fairness.Recommendation{
					Type:      fairness.RecommendDataBalancing,
					Priority:  fairness.SeverityHigh,
					Attribute: attr,
					Action:    "collect or oversample records for the underrepresented group",
					Details: fmt.Sprintf("group %q has %d records, below half the average group size %.1f for %s",
						key, grp.Count, avg, attr),
				})
			}
		}
	}

	for _, f := range raised {
		if f.Type != fairness.FlagDisparateImpact {
			continue
		}
		out = append(out, fairness.Recommendation{
			Type:      fairness.RecommendThresholdAdjustment,
			Priority:  fairness.SeverityMedium,
			Attribute: f.Attribute,
			Action:    "review the decision threshold for the disadvantaged group",
			Details: fmt.Sprintf("disparate impact %.3f on %s suggests the cutoff disadvantages a %s group",
				f.Value, f.Target, f.Attribute),
		})
	}

	if overall.BiasScore > retrainingScoreThreshold {
		out = append(out, fairness.Recommendation{
			Type:     fairness.RecommendModelRetraining,
			Priority: fairness.SeverityHigh,
			Action:   "retrain the model with fairness constraints",
			Details: fmt.Sprintf("overall bias score %.3f exceeds the %.2f retraining threshold",
				overall.BiasScore, retrainingScoreThreshold),
		})
	}

	return out
}

// Overall averages the core metrics across every (attribute, target) pair
// and tracks the attributes with the highest and lowest bias severity. An
// attribute's severity is its worst pair.
func Overall(attrs map[core.ColumnName]fairness.AttributeAnalysis) fairness.OverallMetrics {
	var overall fairness.OverallMetrics
	var sumDI, sumSPD, sumSeverity float64
	maxSeverity, minSeverity := -1.0, -1.0

	for _, attr := range sortedAttrs(attrs) {
		analysis := attrs[attr]
		attrSeverity := -1.0
		for _, target := range sortedTargets(analysis.Metrics) {
			m := analysis.Metrics[target]
			sumDI += m.DisparateImpact
			sumSPD += m.StatisticalParityDiff
			sumSeverity += m.BiasSeverity
			overall.MetricPairCount++
			if m.BiasSeverity > attrSeverity {
				attrSeverity = m.BiasSeverity
			}
		}
		if attrSeverity < 0 {
			continue
		}
		if maxSeverity < 0 || attrSeverity > maxSeverity {
			maxSeverity = attrSeverity
			overall.MostBiasedAttribute = attr
		}
		if minSeverity < 0 || attrSeverity < minSeverity {
			minSeverity = attrSeverity
			overall.LeastBiasedAttribute = attr
		}
	}

	if overall.MetricPairCount > 0 {
		n := float64(overall.MetricPairCount)
		overall.AvgDisparateImpact = sumDI / n
		overall.AvgStatisticalParity = sumSPD / n
		overall.BiasScore = sumSeverity / n
	}
	return overall
}

func sortedAttrs(attrs map[core.ColumnName]fairness.AttributeAnalysis) []core.ColumnName {
	keys := make([]core.ColumnName, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedTargets(m map[core.ColumnName]fairness.MetricSet) []core.ColumnName {
	keys := make([]core.ColumnName, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedGroupKeys(g fairness.GroupAnalysis) []string {
	keys := make([]string, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
