package temporal

import (
	"testing"

	"fairlens/domain/fairness"
	"fairlens/internal/testkit"
)

func TestClassifyTrend(t *testing.T) {
	cases := []struct {
		name   string
		scores []float64
		want   string
	}{
		{"improving", []float64{0.4, 0.35, 0.3, 0.2, 0.15, 0.1}, fairness.TrendImproving},
		{"worsening", []float64{0.1, 0.15, 0.2, 0.3, 0.35, 0.4}, fairness.TrendWorsening},
		{"stable", []float64{0.2, 0.2, 0.2, 0.2}, fairness.TrendStable},
		{"within delta", []float64{0.2, 0.24}, fairness.TrendStable},
		{"single period", []float64{0.3}, fairness.TrendInsufficientData},
		{"empty", nil, fairness.TrendInsufficientData},
		// Odd count: [0.5] vs [0.1], the 0.3 in the middle is ignored.
		{"odd count excludes middle", []float64{0.5, 0.3, 0.1}, fairness.TrendImproving},
	}
	for _, tc := range cases {
		if got := ClassifyTrend(tc.scores); got != tc.want {
			t.Errorf("%s: ClassifyTrend(%v) = %q, want %q", tc.name, tc.scores, got, tc.want)
		}
	}
}

func TestDetectDateColumns(t *testing.T) {
	ds := testkit.NewDatasetFromRows(
		[]string{"gender", "application_date", "signup_month", "income"},
		[][]string{
			{"Male", "2025-01-15", "2025-01", "50000"},
			{"Female", "2025-02-20", "2025-02", "48000"},
		},
	)
	cols := DetectDateColumns(ds)

	want := map[string]bool{"application_date": true, "signup_month": true}
	if len(cols) != len(want) {
		t.Fatalf("detected %v, want exactly %v", cols, want)
	}
	for _, col := range cols {
		if !want[col.String()] {
			t.Errorf("unexpected date column %q", col)
		}
	}
}

func TestAnalyze_BucketsByPeriodAndScoresEach(t *testing.T) {
	rows := [][]string{}
	// Two months; within each, approvals split by gender so every period
	// has a computable bias score.
	for i := 0; i < 4; i++ {
		rows = append(rows,
			[]string{"Male", "2025-01-10", "1"},
			[]string{"Female", "2025-01-12", "0"},
			[]string{"Male", "2025-02-10", "1"},
			[]string{"Female", "2025-02-12", "1"},
		)
	}
	ds := testkit.NewDatasetFromRows([]string{"gender", "application_date", "approved"}, rows)
	out := Analyze(ds, fairness.DefaultConfig())

	analysis, ok := out["application_date"]
	if !ok {
		t.Fatal("missing temporal analysis for application_date")
	}
	if len(analysis.Periods) != 2 {
		t.Fatalf("got %d periods, want 2", len(analysis.Periods))
	}
	if analysis.Periods[0].Period != "2025-01" || analysis.Periods[1].Period != "2025-02" {
		t.Errorf("periods out of order: %+v", analysis.Periods)
	}
	for _, p := range analysis.Periods {
		if p.RecordCount != 8 {
			t.Errorf("period %s has %d records, want 8", p.Period, p.RecordCount)
		}
	}
	// January is maximally disparate, February is perfectly balanced.
	if analysis.Periods[0].BiasScore <= analysis.Periods[1].BiasScore {
		t.Errorf("january score %f should exceed february score %f",
			analysis.Periods[0].BiasScore, analysis.Periods[1].BiasScore)
	}
	if analysis.Trend != fairness.TrendImproving {
		t.Errorf("trend = %q, want %q", analysis.Trend, fairness.TrendImproving)
	}
}

func TestAnalyze_NoDateColumns(t *testing.T) {
	ds := testkit.NewDatasetFromRows(
		[]string{"gender", "approved"},
		[][]string{{"Male", "1"}, {"Female", "0"}},
	)
	if out := Analyze(ds, fairness.DefaultConfig()); len(out) != 0 {
		t.Errorf("expected no temporal analyses, got %d", len(out))
	}
}
