package groups

import (
	"math"
	"testing"

	"fairlens/domain/core"
	"fairlens/internal/testkit"
)

func TestAggregate_PartitionInvariant(t *testing.T) {
	ds := testkit.NewDatasetFromRows(
		[]string{"gender", "approved"},
		[][]string{
			{"Male", "1"},
			{"Male", "0"},
			{"Female", "1"},
			{"", "1"},
			{"  ", "0"},
		},
	)

	analysis := Aggregate(ds, "gender", []core.ColumnName{"approved"})

	total := 0
	pctSum := 0.0
	for _, grp := range analysis {
		total += grp.Count
		pctSum += grp.Percentage
	}
	if total != ds.Len() {
		t.Errorf("group counts sum to %d, want %d", total, ds.Len())
	}
	if math.Abs(pctSum-100) > 1e-9 {
		t.Errorf("percentages sum to %f, want 100", pctSum)
	}

	unknown, ok := analysis["Unknown"]
	if !ok {
		t.Fatal("expected missing values to land in the Unknown group")
	}
	if unknown.Count != 2 {
		t.Errorf("Unknown group has %d members, want 2", unknown.Count)
	}
}

func TestAggregate_TargetStats(t *testing.T) {
	ds := testkit.NewDatasetFromRows(
		[]string{"gender", "score"},
		[][]string{
			{"A", "1"},
			{"A", "2"},
			{"A", "3"},
			{"B", "1"},
			{"B", "2"},
			{"B", "3"},
			{"B", "4"},
		},
	)

	analysis := Aggregate(ds, "gender", []core.ColumnName{"score"})

	a := analysis["A"].Targets["score"]
	if a.Median != 2 {
		t.Errorf("median([1,2,3]) = %f, want 2", a.Median)
	}
	b := analysis["B"].Targets["score"]
	if b.Median != 2.5 {
		t.Errorf("median([1,2,3,4]) = %f, want 2.5", b.Median)
	}
}

func TestAggregate_SampleStandardDeviation(t *testing.T) {
	rows := [][]string{}
	for _, v := range []string{"2", "4", "4", "4", "5", "5", "7", "9"} {
		rows = append(rows, []string{"G", v})
	}
	ds := testkit.NewDatasetFromRows([]string{"gender", "score"}, rows)

	analysis := Aggregate(ds, "gender", []core.ColumnName{"score"})
	sd := analysis["G"].Targets["score"].StdDev

	want := math.Sqrt(32.0 / 7.0) // sample definition, n-1
	if math.Abs(sd-want) > 1e-9 {
		t.Errorf("sample stddev = %f, want %f", sd, want)
	}
}

func TestAggregate_StdDevZeroBelowTwoSamples(t *testing.T) {
	ds := testkit.NewDatasetFromRows(
		[]string{"gender", "score"},
		[][]string{{"A", "7"}, {"B", "3"}},
	)
	analysis := Aggregate(ds, "gender", []core.ColumnName{"score"})
	if sd := analysis["A"].Targets["score"].StdDev; sd != 0 {
		t.Errorf("single-sample stddev = %f, want 0", sd)
	}
}

func TestAggregate_NonNumericTargetOmitted(t *testing.T) {
	ds := testkit.NewDatasetFromRows(
		[]string{"gender", "notes"},
		[][]string{{"A", "fine"}, {"A", "poor"}},
	)
	analysis := Aggregate(ds, "gender", []core.ColumnName{"notes"})
	if _, ok := analysis["A"].Targets["notes"]; ok {
		t.Error("expected no stats entry for a target with no numeric values")
	}
}

func TestAggregate_PositiveRateCutoff(t *testing.T) {
	ds := testkit.NewDatasetFromRows(
		[]string{"gender", "score"},
		[][]string{{"A", "0.4"}, {"A", "0.5"}, {"A", "0.6"}, {"A", "1"}},
	)
	analysis := Aggregate(ds, "gender", []core.ColumnName{"score"})
	// Only values strictly above 0.5 count as positive.
	if rate := analysis["A"].Targets["score"].PositiveRate; rate != 0.5 {
		t.Errorf("positive rate = %f, want 0.5", rate)
	}
}

func TestAggregateComposite_Keys(t *testing.T) {
	ds := testkit.NewDatasetFromRows(
		[]string{"gender", "race", "approved"},
		[][]string{
			{"Male", "Black", "1"},
			{"Female", "White", "0"},
			{"Male", "", "1"},
		},
	)
	analysis := AggregateComposite(ds, []core.ColumnName{"gender", "race"}, []core.ColumnName{"approved"})

	for _, key := range []string{"Male_Black", "Female_White", "Male_Unknown"} {
		if _, ok := analysis[key]; !ok {
			t.Errorf("missing composite group %q", key)
		}
	}
	if analysis.TotalCount() != ds.Len() {
		t.Errorf("composite groups cover %d records, want %d", analysis.TotalCount(), ds.Len())
	}
}
