package profile

import (
	"strings"

	"fairlens/domain/core"
	"fairlens/domain/dataset"
	"fairlens/domain/fairness"
)

// sampleSize is how many non-empty values per column the profiler inspects.
const sampleSize = 10

// Profiler classifies dataset columns into protected-attribute, target, and
// numeric roles from header keywords and sampled values.
type Profiler struct {
	cfg fairness.Config
}

// NewProfiler creates a profiler bound to one invocation's configuration
func NewProfiler(cfg fairness.Config) *Profiler {
	return &Profiler{cfg: cfg.Normalized()}
}

// Profile classifies every column of the dataset. Empty role lists are
// valid output; the caller decides whether they are fatal.
func (p *Profiler) Profile(ds *dataset.Dataset) dataset.ProfileSet {
	set := dataset.ProfileSet{AllColumns: ds.Columns()}

	for _, col := range ds.Columns() {
		samples := ds.SampleValues(col, sampleSize)
		prof := dataset.ColumnProfile{
			Name:        col,
			IsProtected: p.isProtectedHeader(col.String()),
			IsTarget:    p.isTargetHeader(col.String()),
			IsNumeric:   allNumeric(samples),
		}
		set.Columns = append(set.Columns, prof)

		if prof.IsProtected {
			set.ProtectedAttributes = append(set.ProtectedAttributes, col)
		}
		if prof.IsTarget {
			set.TargetColumns = append(set.TargetColumns, col)
		}
		if prof.IsNumeric {
			set.NumericColumns = append(set.NumericColumns, col)
		}
	}

	// No keyword hit anywhere: fall back to the last two numeric columns.
	// These are a policy guess, not a true target, so the set is marked
	// low-confidence.
	if len(set.TargetColumns) == 0 && len(set.NumericColumns) > 0 {
		start := len(set.NumericColumns) - 2
		if start < 0 {
			start = 0
		}
		fallback := set.NumericColumns[start:]
		set.TargetColumns = append([]core.ColumnName(nil), fallback...)
		set.TargetFallback = true
		for i := range set.Columns {
			for _, t := range fallback {
				if set.Columns[i].Name == t {
					set.Columns[i].IsTarget = true
				}
			}
		}
	}

	return set
}

// isProtectedHeader matches the configured protected-attribute keywords,
// then the demographic value fallback list, against the header and its
// separator-stripped form.
func (p *Profiler) isProtectedHeader(header string) bool {
	if matchesAny(header, p.cfg.ProtectedAttributeKeywords) {
		return true
	}
	return matchesAny(header, fairness.DemographicValueKeywords)
}

func (p *Profiler) isTargetHeader(header string) bool {
	return matchesAny(header, p.cfg.TargetKeywords)
}

// matchesAny does case-insensitive substring matching, also trying the
// header with separators stripped so "protected_class" matches "protectedclass".
func matchesAny(header string, keywords []string) bool {
	lower := strings.ToLower(header)
	stripped := stripSeparators(lower)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, kw) || strings.Contains(stripped, stripSeparators(kw)) {
			return true
		}
	}
	return false
}

func stripSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ', '.', '/':
			return -1
		}
		return r
	}, s)
}

// allNumeric reports whether every sampled value is numeric. Columns with
// no non-empty samples are not considered numeric.
func allNumeric(samples []core.Value) bool {
	if len(samples) == 0 {
		return false
	}
	for _, v := range samples {
		if _, ok := v.Number(); !ok {
			return false
		}
	}
	return true
}
