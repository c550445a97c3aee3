package metrics

import (
	"math"

	"fairlens/domain/core"
	"fairlens/domain/dataset"
)

// Similarity compares two records field by field, skipping the excluded
// column. Numeric pairs contribute 1 - |a-b|/max(|a|,|b|,1); equal text
// pairs contribute 1; anything else contributes 0. The result is the mean
// contribution over compared fields, 0 when there are none.
func Similarity(a, b dataset.Record, exclude core.ColumnName) float64 {
	sum := 0.0
	compared := 0

	for _, col := range a.Columns() {
		if col == exclude {
			continue
		}
		va, vb := a.Get(col), b.Get(col)
		compared++

		if fa, ok := va.Number(); ok {
			if fb, ok := vb.Number(); ok {
				denom := math.Max(math.Max(math.Abs(fa), math.Abs(fb)), 1)
				sum += 1 - math.Abs(fa-fb)/denom
				continue
			}
		}
		if va.Kind() == core.KindText && vb.Kind() == core.KindText && va.String() == vb.String() {
			sum++
		}
	}

	if compared == 0 {
		return 0
	}
	return sum / float64(compared)
}
