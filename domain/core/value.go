package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ValueKind tags the type a cell resolved to at the ingestion boundary.
type ValueKind int

const (
	KindEmpty ValueKind = iota
	KindNumber
	KindText
	KindDate
)

// Value is a tagged cell value. Numeric coercion happens exactly once, when
// the value is constructed, so downstream stages never re-parse strings.
type Value struct {
	kind ValueKind
	num  float64
	text string
	date time.Time
}

// datePattern matches YYYY-MM and YYYY-MM-DD shaped strings.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}(-\d{2})?$`)

var dateLayouts = []string{"2006-01-02", "2006-01"}

// NumberValue creates a numeric value
func NumberValue(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// TextValue creates a textual value
func TextValue(s string) Value {
	return Value{kind: KindText, text: s}
}

// DateValue creates a date value
func DateValue(t time.Time) Value {
	return Value{kind: KindDate, date: t}
}

// EmptyValue creates an empty value
func EmptyValue() Value {
	return Value{kind: KindEmpty}
}

// ParseValue coerces a raw cell string into a typed Value. Empty and
// whitespace-only cells become Empty; numbers and ISO-shaped dates are
// recognized; everything else stays text.
func ParseValue(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return EmptyValue()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return NumberValue(f)
	}
	if datePattern.MatchString(s) {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return DateValue(t)
			}
		}
	}
	return TextValue(s)
}

// Kind returns the value's tag
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsEmpty reports whether the cell held nothing
func (v Value) IsEmpty() bool {
	return v.kind == KindEmpty
}

// Number returns the numeric value and whether the value is numeric
func (v Value) Number() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Date returns the date value and whether the value is a date
func (v Value) Date() (time.Time, bool) {
	if v.kind != KindDate {
		return time.Time{}, false
	}
	return v.date, true
}

// IsDateLike reports whether the value is a native date or a string shaped
// like YYYY-MM or YYYY-MM-DD.
func (v Value) IsDateLike() bool {
	switch v.kind {
	case KindDate:
		return true
	case KindText:
		return datePattern.MatchString(v.text)
	default:
		return false
	}
}

// String renders the value the way grouping keys see it
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindText:
		return v.text
	case KindDate:
		return v.date.Format("2006-01-02")
	default:
		return ""
	}
}

// Period returns the YYYY-MM bucket for date-like values.
func (v Value) Period() (string, bool) {
	switch v.kind {
	case KindDate:
		return v.date.Format("2006-01"), true
	case KindText:
		if datePattern.MatchString(v.text) {
			return v.text[:7], true
		}
	}
	return "", false
}

func (v Value) GoString() string {
	return fmt.Sprintf("core.Value{%v}", v.String())
}
