package correlation

import (
	"math"
	"testing"

	"fairlens/adapters/stats/profile"
	"fairlens/domain/fairness"
	"fairlens/internal/testkit"
)

func TestAnalyze_FlagsStrongProxy(t *testing.T) {
	// zip_code tracks gender exactly, income carries no signal at all.
	ds := testkit.NewDatasetFromRows(
		[]string{"gender", "zip_code", "income", "approved"},
		[][]string{
			{"1", "10", "50000", "1"},
			{"1", "10", "30000", "0"},
			{"0", "20", "50000", "1"},
			{"0", "20", "30000", "0"},
		},
	)
	profiles := profile.NewProfiler(fairness.DefaultConfig()).Profile(ds)
	out := Analyze(ds, profiles)

	byFeature := make(map[string]fairness.ProxyCorrelation)
	for _, c := range out {
		if c.ProtectedAttribute == "gender" {
			byFeature[c.Feature.String()] = c
		}
	}

	zip, ok := byFeature["zip_code"]
	if !ok {
		t.Fatal("missing zip_code correlation")
	}
	if math.Abs(math.Abs(zip.Correlation)-1) > 1e-9 {
		t.Errorf("|r| for zip_code = %f, want 1", math.Abs(zip.Correlation))
	}
	if zip.Risk != fairness.SeverityHigh {
		t.Errorf("zip_code risk = %s, want HIGH", zip.Risk)
	}
	if zip.Recommendation == "" {
		t.Error("high-risk proxy should carry a recommendation")
	}

	income, ok := byFeature["income"]
	if !ok {
		t.Fatal("missing income correlation")
	}
	if income.Correlation != 0 {
		t.Errorf("r for income = %f, want 0", income.Correlation)
	}
	if income.Risk != fairness.SeverityLow {
		t.Errorf("income risk = %s, want LOW", income.Risk)
	}
}

func TestAnalyze_SkipsProtectedAndTargetColumns(t *testing.T) {
	ds := testkit.NewDatasetFromRows(
		[]string{"gender", "ethnicity", "income", "approved"},
		[][]string{
			{"1", "1", "50000", "1"},
			{"0", "0", "30000", "0"},
			{"1", "0", "40000", "1"},
		},
	)
	profiles := profile.NewProfiler(fairness.DefaultConfig()).Profile(ds)
	out := Analyze(ds, profiles)

	for _, c := range out {
		if profiles.IsProtected(c.Feature) {
			t.Errorf("protected column %s analyzed as a feature", c.Feature)
		}
		if profiles.IsTarget(c.Feature) {
			t.Errorf("target column %s analyzed as a feature", c.Feature)
		}
	}
}

func TestPearson_DegenerateInputsYieldZero(t *testing.T) {
	// Constant feature column: zero variance.
	ds := testkit.NewDatasetFromRows(
		[]string{"gender", "constant"},
		[][]string{{"1", "7"}, {"0", "7"}, {"1", "7"}},
	)
	if r := pearson(ds, "gender", "constant"); r != 0 {
		t.Errorf("zero-variance column gave r = %f, want 0", r)
	}

	// Non-numeric feature column: no valid pairs.
	ds = testkit.NewDatasetFromRows(
		[]string{"gender", "city"},
		[][]string{{"1", "Lyon"}, {"0", "Oslo"}},
	)
	if r := pearson(ds, "gender", "city"); r != 0 {
		t.Errorf("non-numeric column gave r = %f, want 0", r)
	}
}
