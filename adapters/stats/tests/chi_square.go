package tests

import (
	"fairlens/domain/fairness"
)

// criticalValue pairs a df=1 chi-square critical value with its p-value
// bucket.
type criticalValue struct {
	threshold float64
	p         float64
}

// df=1 critical values, largest first. For df>1 the thresholds are scaled
// linearly by df: a rough extrapolation, deliberately not an exact CDF.
var chiSquareCriticalValues = []criticalValue{
	{10.83, 0.001},
	{6.63, 0.01},
	{3.84, 0.05},
	{2.71, 0.1},
}

// ChiSquare runs the test of independence over a groups x {positive,
// negative} contingency table built with the 0.5 decision cutoff. Returns
// nil when fewer than two groups carry numeric samples: the test is not
// applicable, which is not a failure.
func ChiSquare(samples map[string][]float64) *fairness.TestResult {
	type cell struct{ pos, neg int }
	var cells []cell
	for _, key := range sortedSampleKeys(samples) {
		values := samples[key]
		if len(values) == 0 {
			continue
		}
		c := cell{}
		for _, v := range values {
			if v > 0.5 {
				c.pos++
			} else {
				c.neg++
			}
		}
		cells = append(cells, c)
	}
	if len(cells) < 2 {
		return nil
	}

	total := 0
	posTotal := 0
	negTotal := 0
	for _, c := range cells {
		total += c.pos + c.neg
		posTotal += c.pos
		negTotal += c.neg
	}

	statistic := 0.0
	for _, c := range cells {
		rowTotal := float64(c.pos + c.neg)
		for col, observed := range []int{c.pos, c.neg} {
			colTotal := float64(posTotal)
			if col == 1 {
				colTotal = float64(negTotal)
			}
			expected := rowTotal * colTotal / float64(total)
			if expected > 0 {
				diff := float64(observed) - expected
				statistic += diff * diff / expected
			}
		}
	}

	df := len(cells) - 1 // (groups-1) x (2-1)
	p := chiSquarePValue(statistic, df)

	return &fairness.TestResult{
		Statistic:        statistic,
		PValue:           &p,
		DegreesOfFreedom: &df,
		Significant:      p < 0.05,
	}
}

// chiSquarePValue maps the statistic to a coarse p-value bucket via the
// fixed critical-value table.
func chiSquarePValue(statistic float64, df int) float64 {
	scale := float64(df)
	if scale < 1 {
		scale = 1
	}
	for _, cv := range chiSquareCriticalValues {
		if statistic > cv.threshold*scale {
			return cv.p
		}
	}
	return 0.5
}
