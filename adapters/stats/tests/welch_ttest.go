package tests

import (
	"math"

	"fairlens/domain/fairness"
)

// normalCriticalValue is the fixed two-sided 5% cutoff. Deliberately not
// df-adjusted.
const normalCriticalValue = 1.96

// WelchTTest compares two group means with unequal variances. Applicable
// only when exactly two groups exist and each has at least two numeric
// samples; nil otherwise.
func WelchTTest(samples map[string][]float64) *fairness.TestResult {
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
	if len(g1) < 2 || len(g2) < 2 {
		return nil
	}

	n1, n2 := float64(len(g1)), float64(len(g2))
	mean1, mean2 := mean(g1), mean(g2)
	var1, var2 := sampleVariance(g1, mean1), sampleVariance(g2, mean2)

	se := math.Sqrt(var1/n1 + var2/n2)
	if se == 0 {
		return &fairness.TestResult{Statistic: 0, Significant: false}
	}
	t := (mean1 - mean2) / se

	return &fairness.TestResult{
		Statistic:   t,
		Significant: math.Abs(t) > normalCriticalValue,
	}
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func sampleVariance(values []float64, m float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sumSq := 0.0
	for _, v := range values {
		diff := v - m
		sumSq += diff * diff
	}
	return sumSq / float64(len(values)-1)
}
