package core

import (
	"testing"
	"time"
)

func TestParseValue_Coercion(t *testing.T) {
	cases := []struct {
		raw  string
		kind ValueKind
	}{
		{"", KindEmpty},
		{"   ", KindEmpty},
		{"42", KindNumber},
		{"-3.5", KindNumber},
		{"1e3", KindNumber},
		{"2025-01-15", KindDate},
		{"2025-01", KindDate},
		{"Male", KindText},
		{"2025-1-5", KindText},  // not zero-padded
		{"15/01/2025", KindText}, // unsupported layout stays text
	}
	for _, tc := range cases {
		if got := ParseValue(tc.raw).Kind(); got != tc.kind {
			t.Errorf("ParseValue(%q).Kind() = %d, want %d", tc.raw, got, tc.kind)
		}
	}
}

func TestValue_NumberOnlyForNumbers(t *testing.T) {
	if _, ok := ParseValue("abc").Number(); ok {
		t.Error("text value should not coerce to a number")
	}
	if _, ok := ParseValue("2025-01-15").Number(); ok {
		t.Error("date value should not coerce to a number")
	}
	n, ok := ParseValue(" 7.25 ").Number()
	if !ok || n != 7.25 {
		t.Errorf("got (%f, %v), want (7.25, true)", n, ok)
	}
}

func TestValue_Period(t *testing.T) {
	p, ok := ParseValue("2025-03-28").Period()
	if !ok || p != "2025-03" {
		t.Errorf("got (%q, %v), want (2025-03, true)", p, ok)
	}
	p, ok = DateValue(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)).Period()
	if !ok || p != "2024-12" {
		t.Errorf("got (%q, %v), want (2024-12, true)", p, ok)
	}
	if _, ok := ParseValue("Male").Period(); ok {
		t.Error("text value should have no period")
	}
	if _, ok := NumberValue(2025).Period(); ok {
		t.Error("numeric value should have no period")
	}
}

func TestValue_StringRendersGroupKeys(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{NumberValue(1), "1"},
		{NumberValue(0.5), "0.5"},
		{TextValue("Male"), "Male"},
		{DateValue(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)), "2025-01-15"},
		{EmptyValue(), ""},
	}
	for _, tc := range cases {
		if got := tc.v.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestNormalizeColumnName(t *testing.T) {
	cases := map[string]ColumnName{
		"  Gender ":        "gender",
		"Application Date": "application date",
		"INCOME":           "income",
	}
	for in, want := range cases {
		if got := NormalizeColumnName(in); got != want {
			t.Errorf("NormalizeColumnName(%q) = %q, want %q", in, got, want)
		}
	}
}
