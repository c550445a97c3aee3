package metrics

import (
	"math"
	"testing"
)

func TestFromRates_IdenticalRates(t *testing.T) {
	m := FromRates(map[string]float64{"a": 0.7, "b": 0.7})

	if m.DisparateImpact != 1 {
		t.Errorf("disparate impact = %f, want 1", m.DisparateImpact)
	}
	if m.StatisticalParityDiff != 0 {
		t.Errorf("parity diff = %f, want 0", m.StatisticalParityDiff)
	}
	if m.BiasSeverity != 0 {
		t.Errorf("bias severity = %f, want 0", m.BiasSeverity)
	}
}

func TestFromRates_AllZeroRates(t *testing.T) {
	m := FromRates(map[string]float64{"a": 0, "b": 0})
	if m.DisparateImpact != 0 {
		t.Errorf("disparate impact with max rate 0 = %f, want 0 by definition", m.DisparateImpact)
	}
	if m.StatisticalParityDiff != 0 {
		t.Errorf("parity diff = %f, want 0", m.StatisticalParityDiff)
	}
}

func TestFromRates_Bounds(t *testing.T) {
	cases := []map[string]float64{
		{"a": 0.9, "b": 0.6},
		{"a": 0.1, "b": 0.9, "c": 0.5},
		{"a": 1, "b": 1},
		{"a": 0.001, "b": 1},
	}
	for _, rates := range cases {
		m := FromRates(rates)
		if m.DisparateImpact < 0 || m.DisparateImpact > 1 {
			t.Errorf("disparate impact %f out of [0,1] for %v", m.DisparateImpact, rates)
		}
		if m.EqualOpportunity != m.StatisticalParityDiff {
			t.Errorf("equal opportunity %f should equal parity diff %f under the positive-rate proxy",
				m.EqualOpportunity, m.StatisticalParityDiff)
		}
	}
}

func TestFromRates_OrderInvariance(t *testing.T) {
	a := FromRates(map[string]float64{"x": 0.2, "y": 0.8, "z": 0.5})
	b := FromRates(map[string]float64{"z": 0.5, "x": 0.2, "y": 0.8})
	if a != b {
		t.Errorf("metric sets differ under group reordering: %+v vs %+v", a, b)
	}
}

func TestFromRates_KnownScenario(t *testing.T) {
	// Male 0.9, Female 0.6 approval rates.
	m := FromRates(map[string]float64{"Male": 0.9, "Female": 0.6})

	if math.Abs(m.DisparateImpact-0.6667) > 0.001 {
		t.Errorf("disparate impact = %f, want 0.667", m.DisparateImpact)
	}
	if math.Abs(m.StatisticalParityDiff-0.3) > 1e-9 {
		t.Errorf("parity diff = %f, want 0.3", m.StatisticalParityDiff)
	}
	if math.Abs(m.BiasSeverity-0.3333) > 0.001 {
		t.Errorf("bias severity = %f, want 0.333", m.BiasSeverity)
	}
}
