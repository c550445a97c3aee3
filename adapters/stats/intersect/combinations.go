package intersect

import "fairlens/domain/core"

// Combinations produces all k-subsets of the input, preserving input
// order: for each head element, the head prepended to every (k-1)-subset
// of the remaining tail. Pure function, no shared accumulator.
func Combinations(items []core.ColumnName, k int) [][]core.ColumnName {
	if k <= 0 || k > len(items) {
		return nil
	}
	if k == len(items) {
		return [][]core.ColumnName{append([]core.ColumnName(nil), items...)}
	}
	if k == 1 {
		out := make([][]core.ColumnName, len(items))
		for i, it := range items {
			out[i] = []core.ColumnName{it}
		}
		return out
	}

	var out [][]core.ColumnName
	for i, head := range items {
		for _, tail := range Combinations(items[i+1:], k-1) {
			combo := make([]core.ColumnName, 0, k)
			combo = append(combo, head)
			combo = append(combo, tail...)
			out = append(out, combo)
		}
	}
	return out
}
