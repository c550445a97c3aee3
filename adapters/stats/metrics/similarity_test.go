package metrics

import (
	"math"
	"testing"

	"fairlens/internal/testkit"
)

func TestSimilarity_NumericAndText(t *testing.T) {
	ds := testkit.NewDatasetFromRows(
		[]string{"gender", "age", "city"},
		[][]string{
			{"Male", "30", "Lyon"},
			{"Female", "30", "Lyon"},
			{"Male", "60", "Oslo"},
		},
	)
	recs := ds.Records()

	// Identical except the excluded protected attribute.
	if sim := Similarity(recs[0], recs[1], "gender"); sim != 1 {
		t.Errorf("similarity = %f, want 1 for identical non-protected fields", sim)
	}

	// age: 1 - |30-60|/60 = 0.5; city differs: 0. Mean over 2 fields = 0.25.
	if sim := Similarity(recs[0], recs[2], "gender"); math.Abs(sim-0.25) > 1e-9 {
		t.Errorf("similarity = %f, want 0.25", sim)
	}
}

func TestSimilarity_SmallMagnitudeDenominator(t *testing.T) {
	ds := testkit.NewDatasetFromRows(
		[]string{"gender", "rate"},
		[][]string{
			{"A", "0.2"},
			{"A", "0.4"},
		},
	)
	recs := ds.Records()
	// Denominator floors at 1: 1 - |0.2-0.4|/1 = 0.8.
	if sim := Similarity(recs[0], recs[1], "gender"); math.Abs(sim-0.8) > 1e-9 {
		t.Errorf("similarity = %f, want 0.8", sim)
	}
}

func TestSimilarity_NoComparedFields(t *testing.T) {
	ds := testkit.NewDatasetFromRows(
		[]string{"gender"},
		[][]string{{"A"}, {"B"}},
	)
	recs := ds.Records()
	if sim := Similarity(recs[0], recs[1], "gender"); sim != 0 {
		t.Errorf("similarity = %f, want 0 with nothing to compare", sim)
	}
}

func TestSimilarity_MixedKindsContributeZero(t *testing.T) {
	ds := testkit.NewDatasetFromRows(
		[]string{"gender", "field"},
		[][]string{
			{"A", "12"},
			{"A", "twelve"},
		},
	)
	recs := ds.Records()
	if sim := Similarity(recs[0], recs[1], "gender"); sim != 0 {
		t.Errorf("similarity = %f, want 0 for number-vs-text field", sim)
	}
}
