package dataset

import (
	"strings"

	"fairlens/domain/core"
)

// Record is an ordered mapping from normalized column name to a typed cell
// value. Immutable once constructed.
type Record struct {
	columns []core.ColumnName
	values  map[core.ColumnName]core.Value
}

// NewRecord builds a record over the given column order. Columns missing
// from values read as empty.
func NewRecord(columns []core.ColumnName, values map[core.ColumnName]core.Value) Record {
	copied := make(map[core.ColumnName]core.Value, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return Record{columns: columns, values: copied}
}

// Get returns the value stored under a column. Missing columns read as empty.
func (r Record) Get(col core.ColumnName) core.Value {
	if v, ok := r.values[col]; ok {
		return v
	}
	return core.EmptyValue()
}

// Has reports whether the record carries a non-empty value for the column
func (r Record) Has(col core.ColumnName) bool {
	v, ok := r.values[col]
	return ok && !v.IsEmpty()
}

// Columns returns the record's column order
func (r Record) Columns() []core.ColumnName {
	return r.columns
}

// Dataset is an ordered, immutable snapshot of records taken once per
// analysis invocation.
type Dataset struct {
	columns []core.ColumnName
	records []Record
}

// New creates a dataset snapshot from a column order and records
func New(columns []core.ColumnName, records []Record) *Dataset {
	return &Dataset{columns: columns, records: records}
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.records)
}

// Columns returns the dataset's column order
func (d *Dataset) Columns() []core.ColumnName {
	return d.columns
}

// Records returns the ordered record sequence
func (d *Dataset) Records() []Record {
	return d.records
}

// Record returns the record at index i
func (d *Dataset) Record(i int) Record {
	return d.records[i]
}

// Filter returns a new dataset over the records matching keep, preserving
// both column order and record order.
func (d *Dataset) Filter(keep func(Record) bool) *Dataset {
	var matched []Record
	for _, r := range d.records {
		if keep(r) {
			matched = append(matched, r)
		}
	}
	return &Dataset{columns: d.columns, records: matched}
}

// SampleValues returns up to n non-empty values from a column, in record
// order.
func (d *Dataset) SampleValues(col core.ColumnName, n int) []core.Value {
	samples := make([]core.Value, 0, n)
	for _, r := range d.records {
		if len(samples) >= n {
			break
		}
		if v := r.Get(col); !v.IsEmpty() {
			samples = append(samples, v)
		}
	}
	return samples
}

// Hash fingerprints the snapshot: identical datasets hash identically, so
// deterministic reruns can be verified.
func (d *Dataset) Hash() core.DatasetHash {
	var b strings.Builder
	for _, col := range d.columns {
		b.WriteString(col.String())
		b.WriteByte('\x1f')
	}
	b.WriteByte('\n')
	for _, r := range d.records {
		for _, col := range d.columns {
			b.WriteString(r.Get(col).String())
			b.WriteByte('\x1f')
		}
		b.WriteByte('\n')
	}
	return core.NewDatasetHash([]byte(b.String()))
}
