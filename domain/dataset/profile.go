package dataset

import "fairlens/domain/core"

// ColumnProfile records the roles a single column was classified into. A
// column may hold several roles at once (a numeric protected attribute, a
// numeric target).
type ColumnProfile struct {
	Name        core.ColumnName `json:"name"`
	IsProtected bool            `json:"is_protected"`
	IsTarget    bool            `json:"is_target"`
	IsNumeric   bool            `json:"is_numeric"`
}

// ProfileSet is the profiler's full output: per-column profiles plus the
// derived role lists the rest of the pipeline consumes.
type ProfileSet struct {
	Columns             []ColumnProfile   `json:"columns"`
	ProtectedAttributes []core.ColumnName `json:"protected_attributes"`
	TargetColumns       []core.ColumnName `json:"target_columns"`
	NumericColumns      []core.ColumnName `json:"numeric_columns"`
	AllColumns          []core.ColumnName `json:"all_columns"`

	// TargetFallback marks targets picked by the last-two-numeric-columns
	// policy rather than by keyword; callers should treat them as
	// low-confidence.
	TargetFallback bool `json:"target_fallback"`
}

// IsProtected reports whether a column was classified as a protected
// attribute
func (p ProfileSet) IsProtected(col core.ColumnName) bool {
	for _, c := range p.ProtectedAttributes {
		if c == col {
			return true
		}
	}
	return false
}

// IsTarget reports whether a column was classified as a target
func (p ProfileSet) IsTarget(col core.ColumnName) bool {
	for _, c := range p.TargetColumns {
		if c == col {
			return true
		}
	}
	return false
}
