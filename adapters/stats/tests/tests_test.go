package tests

import (
	"math"
	"testing"

	"fairlens/adapters/stats/groups"
	"fairlens/domain/core"
	"fairlens/internal/testkit"
)

// binarySamples builds n values of 1 followed by m values of 0.
func binarySamples(positives, negatives int) []float64 {
	out := make([]float64, 0, positives+negatives)
	for i := 0; i < positives; i++ {
		out = append(out, 1)
	}
	for i := 0; i < negatives; i++ {
		out = append(out, 0)
	}
	return out
}

func TestChiSquare_KnownContingencyTable(t *testing.T) {
	// 2x2 table [[90,10],[60,40]]: expected cells are 75/25 per row, so
	// the statistic is 2*(15^2/75) + 2*(15^2/25) = 24.
	samples := map[string][]float64{
		"a": binarySamples(90, 10),
		"b": binarySamples(60, 40),
	}
	result := ChiSquare(samples)
	if result == nil {
		t.Fatal("expected a result")
	}
	if math.Abs(result.Statistic-24) > 1e-9 {
		t.Errorf("statistic = %f, want 24", result.Statistic)
	}
	if result.DegreesOfFreedom == nil || *result.DegreesOfFreedom != 1 {
		t.Errorf("df = %v, want 1", result.DegreesOfFreedom)
	}
	if result.PValue == nil || *result.PValue != 0.001 {
		t.Errorf("p = %v, want 0.001", result.PValue)
	}
	if !result.Significant {
		t.Error("statistic 24 at df=1 should be significant")
	}
}

func TestChiSquare_NearIndependentTable(t *testing.T) {
	samples := map[string][]float64{
		"a": binarySamples(50, 50),
		"b": binarySamples(52, 48),
	}
	result := ChiSquare(samples)
	if result == nil {
		t.Fatal("expected a result")
	}
	if result.Statistic > 2.71 {
		t.Errorf("statistic = %f, want below the lowest critical value", result.Statistic)
	}
	if result.PValue == nil || *result.PValue != 0.5 {
		t.Errorf("p = %v, want the 0.5 floor", result.PValue)
	}
	if result.Significant {
		t.Error("near-independent table should not be significant")
	}
}

func TestChiSquare_SingleGroupNotApplicable(t *testing.T) {
	samples := map[string][]float64{"only": binarySamples(10, 10)}
	if result := ChiSquare(samples); result != nil {
		t.Errorf("single group should yield nil, got %+v", result)
	}
}

func TestChiSquarePValue_ScalesThresholdsByDF(t *testing.T) {
	// df=1 buckets.
	cases := []struct {
		statistic float64
		df        int
		want      float64
	}{
		{24, 1, 0.001},
		{7, 1, 0.01},
		{4, 1, 0.05},
		{3, 1, 0.1},
		{2, 1, 0.5},
		// df=2 doubles every threshold: 8 clears only 3.84*2.
		{8, 2, 0.05},
		{22, 2, 0.001},
		{5, 2, 0.5},
	}
	for _, tc := range cases {
		if got := chiSquarePValue(tc.statistic, tc.df); got != tc.want {
			t.Errorf("chiSquarePValue(%f, %d) = %f, want %f", tc.statistic, tc.df, got, tc.want)
		}
	}
}

func TestWelchTTest_SeparatedMeans(t *testing.T) {
	// Both groups have sample variance 10 and n=5, so the standard error
	// is exactly 2 and t = (14-34)/2 = -10.
	samples := map[string][]float64{
		"a": {10, 12, 14, 16, 18},
		"b": {30, 32, 34, 36, 38},
	}
	result := WelchTTest(samples)
	if result == nil {
		t.Fatal("expected a result")
	}
	if math.Abs(result.Statistic-(-10)) > 1e-9 {
		t.Errorf("t = %f, want -10", result.Statistic)
	}
	if !result.Significant {
		t.Error("|t| = 10 should clear the 1.96 cutoff")
	}
	if result.PValue != nil || result.DegreesOfFreedom != nil {
		t.Error("t-test reports no p-value or df")
	}
}

func TestWelchTTest_OverlappingMeans(t *testing.T) {
	samples := map[string][]float64{
		"a": {10, 12},
		"b": {11, 13},
	}
	result := WelchTTest(samples)
	if result == nil {
		t.Fatal("expected a result")
	}
	if result.Significant {
		t.Errorf("t = %f should not be significant", result.Statistic)
	}
}

func TestWelchTTest_ZeroStandardError(t *testing.T) {
	samples := map[string][]float64{
		"a": {5, 5},
		"b": {5, 5},
	}
	result := WelchTTest(samples)
	if result == nil {
		t.Fatal("expected a result")
	}
	if result.Statistic != 0 || result.Significant {
		t.Errorf("constant samples should yield statistic 0, got %+v", result)
	}
}

func TestWelchTTest_Preconditions(t *testing.T) {
	cases := map[string]map[string][]float64{
		"one group":    {"a": {1, 2, 3}},
		"three groups": {"a": {1, 2}, "b": {3, 4}, "c": {5, 6}},
		"tiny group":   {"a": {1, 2, 3}, "b": {4}},
	}
	for name, samples := range cases {
		if result := WelchTTest(samples); result != nil {
			t.Errorf("%s: want nil, got %+v", name, result)
		}
	}
}

func TestKolmogorovSmirnov_DisjointDistributions(t *testing.T) {
	samples := map[string][]float64{
		"a": {1, 2, 3, 4, 5},
		"b": {10, 11, 12, 13, 14},
	}
	result := KolmogorovSmirnov(samples)
	if result == nil {
		t.Fatal("expected a result")
	}
	if result.Statistic != 1 {
		t.Errorf("disjoint samples should give statistic 1, got %f", result.Statistic)
	}
	if !result.Significant {
		t.Error("statistic 1 should be significant")
	}
}

func TestKolmogorovSmirnov_IdenticalDistributions(t *testing.T) {
	samples := map[string][]float64{
		"a": {1, 2, 3, 4, 5},
		"b": {1, 2, 3, 4, 5},
	}
	result := KolmogorovSmirnov(samples)
	if result == nil {
		t.Fatal("expected a result")
	}
	if result.Statistic != 0 || result.Significant {
		t.Errorf("identical samples should give statistic 0, got %+v", result)
	}
}

func TestKolmogorovSmirnov_Preconditions(t *testing.T) {
	cases := map[string]map[string][]float64{
		"undersized group": {"a": {1, 2, 3, 4, 5}, "b": {1, 2, 3, 4}},
		"three groups":     {"a": {1, 2, 3, 4, 5}, "b": {1, 2, 3, 4, 5}, "c": {1, 2, 3, 4, 5}},
	}
	for name, samples := range cases {
		if result := KolmogorovSmirnov(samples); result != nil {
			t.Errorf("%s: want nil, got %+v", name, result)
		}
	}
}

func TestRunAll_InapplicableTestsStayNil(t *testing.T) {
	// Three groups: chi-square applies, the two-sample tests do not.
	ds := testkit.NewDatasetFromRows(
		[]string{"ethnicity", "approved"},
		[][]string{
			{"A", "1"}, {"A", "0"}, {"A", "1"},
			{"B", "1"}, {"B", "1"}, {"B", "0"},
			{"C", "0"}, {"C", "0"}, {"C", "1"},
		},
	)
	analysis := groups.Aggregate(ds, "ethnicity", []core.ColumnName{"approved"})
	set := RunAll(analysis, "approved")

	if set.ChiSquare == nil {
		t.Error("chi-square should apply to three groups")
	}
	if set.ChiSquare != nil && set.ChiSquare.DegreesOfFreedom != nil && *set.ChiSquare.DegreesOfFreedom != 2 {
		t.Errorf("df = %d, want 2", *set.ChiSquare.DegreesOfFreedom)
	}
	if set.TTest != nil {
		t.Error("t-test should be nil with three groups")
	}
	if set.KolmogorovSmirnov != nil {
		t.Error("KS should be nil with three groups")
	}
}
