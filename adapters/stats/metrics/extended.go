package metrics

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"fairlens/domain/core"
	"fairlens/domain/dataset"
	"fairlens/domain/fairness"
)

// actualSuffix names the companion column carrying ground-truth labels for
// a prediction column, e.g. "approved_actual" for "approved".
const actualSuffix = "_actual"

const (
	similarPairThreshold   = 0.8 // individual fairness: pairs this similar must agree
	counterfactualMatchMin = 0.7 // counterfactual: minimum similarity to count a match
	outcomeGapThreshold    = 0.1 // outcome difference treated as a violation
	rateGapThreshold       = 0.1 // cross-group rate spread treated as unfair
)

// ComputeExtended derives the advanced metric set for one
// (attribute, target) pair. All sub-metrics are independent; each handles
// its own degenerate inputs.
func ComputeExtended(ds *dataset.Dataset, groups fairness.GroupAnalysis, attr, target core.ColumnName, cfg fairness.Config) fairness.ExtendedMetricSet {
	cfg = cfg.Normalized()
	actualCol, hasActual := actualColumn(ds, target)

	return fairness.ExtendedMetricSet{
		EqualizedOdds:          equalizedOdds(groups, target, actualCol, hasActual),
		Calibration:            calibration(groups, target),
		IndividualFairness:     individualFairness(ds, attr, target, cfg.IndividualFairnessLimit),
		CounterfactualFairness: counterfactualFairness(groups, attr, target, cfg.CounterfactualLimit),
		TreatmentEquality:      treatmentEquality(groups, target, actualCol, hasActual),
	}
}

// actualColumn locates "<target>_actual" in the dataset, if present. When
// absent, the prediction column doubles as its own ground truth, the
// documented fallback.
func actualColumn(ds *dataset.Dataset, target core.ColumnName) (core.ColumnName, bool) {
	want := core.ColumnName(target.String() + actualSuffix)
	for _, col := range ds.Columns() {
		if col == want {
			return want, true
		}
	}
	return "", false
}

// confusion holds one group's outcome counts against the 0.5 cutoff.
type confusion struct {
	tp, fp, tn, fn int
}

func (c confusion) scored() int { return c.tp + c.fp + c.tn + c.fn }

func (c confusion) tpr() float64 {
	if c.tp+c.fn == 0 {
		return 0
	}
	return float64(c.tp) / float64(c.tp+c.fn)
}

func (c confusion) fpr() float64 {
	if c.fp+c.tn == 0 {
		return 0
	}
	return float64(c.fp) / float64(c.fp+c.tn)
}

// confusionFor classifies each member record: predicted = target value
// > 0.5; actual from the companion column when present, else the same
// value. Records whose needed values are non-numeric are skipped.
func confusionFor(recs []dataset.Record, target, actualCol core.ColumnName, hasActual bool) confusion {
	var c confusion
	for _, r := range recs {
		p, ok := r.Get(target).Number()
		if !ok {
			continue
		}
		pred := p > 0.5
		act := pred
		if hasActual {
			a, ok := r.Get(actualCol).Number()
			if !ok {
				continue
			}
			act = a > 0.5
		}
		switch {
		case pred && act:
			c.tp++
		case pred && !act:
			c.fp++
		case !pred && act:
			c.fn++
		default:
			c.tn++
		}
	}
	return c
}

func equalizedOdds(groups fairness.GroupAnalysis, target, actualCol core.ColumnName, hasActual bool) fairness.EqualizedOdds {
	out := fairness.EqualizedOdds{
		TPRByGroup: make(map[string]float64),
		FPRByGroup: make(map[string]float64),
	}
	for _, key := range sortedKeys(groups) {
		c := confusionFor(groups[key].Members, target, actualCol, hasActual)
		if c.scored() == 0 {
			continue
		}
		out.TPRByGroup[key] = c.tpr()
		out.FPRByGroup[key] = c.fpr()
	}
	if len(out.TPRByGroup) >= 2 {
		tprMin, tprMax := fairness.RateBounds(out.TPRByGroup)
		fprMin, fprMax := fairness.RateBounds(out.FPRByGroup)
		out.TPRDifference = tprMax - tprMin
		out.FPRDifference = fprMax - fprMin
	}
	out.Satisfied = out.TPRDifference < rateGapThreshold && out.FPRDifference < rateGapThreshold
	return out
}

// calibration buckets predicted scores into ten 0.1-wide bins per group,
// compares each non-empty bin's average score against its observed positive
// rate, and reports the cross-group spread of the mean absolute gap.
func calibration(groups fairness.GroupAnalysis, target core.ColumnName) fairness.Calibration {
	out := fairness.Calibration{ErrorByGroup: make(map[string]float64)}
	for _, key := range sortedKeys(groups) {
		values := numericMembers(groups[key].Members, target)
		if len(values) == 0 {
			continue
		}
		bins := make([][]float64, 10)
		for _, v := range values {
			idx := int(v * 10)
			if idx < 0 {
				idx = 0
			}
			if idx > 9 {
				idx = 9
			}
			bins[idx] = append(bins[idx], v)
		}
		var gaps []float64
		for _, bin := range bins {
			if len(bin) == 0 {
				continue
			}
			avg, _ := stats.Mean(bin)
			positive := 0
			for _, v := range bin {
				if v > 0.5 {
					positive++
				}
			}
			observed := float64(positive) / float64(len(bin))
			gaps = append(gaps, math.Abs(avg-observed))
		}
		if len(gaps) == 0 {
			continue
		}
		groupErr, _ := stats.Mean(gaps)
		out.ErrorByGroup[key] = groupErr
	}
	if len(out.ErrorByGroup) >= 2 {
		min, max := fairness.RateBounds(out.ErrorByGroup)
		out.Spread = max - min
	}
	out.WellCalibrated = out.Spread < rateGapThreshold
	return out
}

// individualFairness compares record pairs inside a fixed-size dataset
// prefix. The cap is a tractability bound, not a sample: always the first
// N records in snapshot order.
func individualFairness(ds *dataset.Dataset, attr, target core.ColumnName, limit int) fairness.IndividualFairness {
	recs := ds.Records()
	if len(recs) > limit {
		recs = recs[:limit]
	}

	sum := 0.0
	pairs := 0
	for i := 0; i < len(recs); i++ {
		oi, ok := recs[i].Get(target).Number()
		if !ok {
			continue
		}
		for j := i + 1; j < len(recs); j++ {
			oj, ok := recs[j].Get(target).Number()
			if !ok {
				continue
			}
			if Similarity(recs[i], recs[j], attr) > similarPairThreshold {
				sum += math.Abs(oi - oj)
				pairs++
			}
		}
	}

	out := fairness.IndividualFairness{ComparedPairs: pairs}
	if pairs > 0 {
		out.AverageDifference = sum / float64(pairs)
	}
	out.Violations = out.AverageDifference > outcomeGapThreshold
	return out
}

// counterfactualFairness matches each record of one group against its most
// similar counterpart in another group, ignoring the protected attribute.
// A sufficiently similar pair whose outcomes diverge counts as a violation.
func counterfactualFairness(groups fairness.GroupAnalysis, attr, target core.ColumnName, limit int) fairness.CounterfactualFairness {
	keys := sortedKeys(groups)
	violations := 0
	comparisons := 0

	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			left := prefix(groups[keys[i]].Members, limit)
			right := prefix(groups[keys[j]].Members, limit)

			for _, rec := range left {
				outcome, ok := rec.Get(target).Number()
				if !ok {
					continue
				}
				bestSim := 0.0
				bestOutcome := 0.0
				found := false
				for _, cand := range right {
					co, ok := cand.Get(target).Number()
					if !ok {
						continue
					}
					if sim := Similarity(rec, cand, attr); sim > bestSim {
						bestSim = sim
						bestOutcome = co
						found = true
					}
				}
				if !found || bestSim <= counterfactualMatchMin {
					continue
				}
				comparisons++
				if math.Abs(outcome-bestOutcome) > outcomeGapThreshold {
					violations++
				}
			}
		}
	}

	out := fairness.CounterfactualFairness{
		Violations:  violations,
		Comparisons: comparisons,
		Score:       1,
	}
	if comparisons > 0 {
		out.Score = 1 - float64(violations)/float64(comparisons)
	}
	return out
}

func treatmentEquality(groups fairness.GroupAnalysis, target, actualCol core.ColumnName, hasActual bool) fairness.TreatmentEquality {
	out := fairness.TreatmentEquality{RatioByGroup: make(map[string]float64)}
	for _, key := range sortedKeys(groups) {
		c := confusionFor(groups[key].Members, target, actualCol, hasActual)
		if c.scored() == 0 {
			continue
		}
		switch {
		case c.fn == 0 && c.fp == 0:
			out.RatioByGroup[key] = 1
		case c.fn == 0:
			out.RatioByGroup[key] = math.Inf(1)
		default:
			out.RatioByGroup[key] = float64(c.fp) / float64(c.fn)
		}
	}
	out.Spread = fairness.FiniteSpread(out.RatioByGroup)
	out.Satisfied = out.Spread < rateGapThreshold
	return out
}

func numericMembers(recs []dataset.Record, target core.ColumnName) []float64 {
	var values []float64
	for _, r := range recs {
		if f, ok := r.Get(target).Number(); ok {
			values = append(values, f)
		}
	}
	return values
}

func prefix(recs []dataset.Record, n int) []dataset.Record {
	if len(recs) > n {
		return recs[:n]
	}
	return recs
}

func sortedKeys(groups fairness.GroupAnalysis) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
