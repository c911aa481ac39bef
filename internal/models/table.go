// ABOUTME: Metric table holding one date column and independent numeric columns.
// ABOUTME: Rows are ordered newest first; tables are never mutated after creation.
package models

import (
	"sort"
	"strconv"
	"time"
)

// DefaultDateColumn is the header of the date column.
const DefaultDateColumn = "Data"

// Column is one named series of values.
type Column struct {
	Name      string     `json:"name" yaml:"name"`
	Unit      string     `json:"unit,omitempty" yaml:"unit,omitempty"`
	Kind      ColumnKind `json:"kind" yaml:"kind"`
	Precision int        `json:"precision" yaml:"precision"`
	Values    []float64  `json:"values" yaml:"values"`
}

// Table is an ordered set of rows sharing a date column.
type Table struct {
	DateColumn string
	DateLayout string
	Dates      []time.Time
	Columns    []*Column
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Dates)
}

// Names returns the header: the date column followed by the metric columns.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.Columns)+1)
	names = append(names, t.DateColumn)
	for _, c := range t.Columns {
		names = append(names, c.Name)
	}
	return names
}

// Column looks up a metric column by name.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// FormatDate renders the date of row i with the table layout.
func (t *Table) FormatDate(i int) string {
	layout := t.DateLayout
	if layout == "" {
		layout = time.DateOnly
	}
	return t.Dates[i].Format(layout)
}

// FormatValue renders a column value: counts as integers, measures with the
// column precision.
func (c *Column) FormatValue(i int) string {
	return FormatNumber(c.Values[i], c.Kind, c.Precision)
}

// FormatNumber renders a value the way table cells are written.
func FormatNumber(v float64, kind ColumnKind, precision int) string {
	if kind == KindCount {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// Record returns row i as strings in header order.
func (t *Table) Record(i int) []string {
	rec := make([]string, 0, len(t.Columns)+1)
	rec = append(rec, t.FormatDate(i))
	for _, c := range t.Columns {
		rec = append(rec, c.FormatValue(i))
	}
	return rec
}

// Slice returns rows [from, to) as a new table.
func (t *Table) Slice(from, to int) *Table {
	from = max(0, min(from, t.Len()))
	to = max(from, min(to, t.Len()))

	out := &Table{
		DateColumn: t.DateColumn,
		DateLayout: t.DateLayout,
		Dates:      append([]time.Time(nil), t.Dates[from:to]...),
		Columns:    make([]*Column, len(t.Columns)),
	}
	for i, c := range t.Columns {
		cp := *c
		cp.Values = append([]float64(nil), c.Values[from:to]...)
		out.Columns[i] = &cp
	}
	return out
}

// Recent returns the min(k, Len) most recent rows.
func (t *Table) Recent(k int) *Table {
	return t.Slice(0, k)
}

// Ascending returns a copy ordered oldest first, as charts plot it.
func (t *Table) Ascending() *Table {
	out := t.Slice(0, t.Len())
	idx := make([]int, out.Len())
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return t.Dates[idx[a]].Before(t.Dates[idx[b]])
	})
	for pos, src := range idx {
		out.Dates[pos] = t.Dates[src]
		for ci, c := range t.Columns {
			out.Columns[ci].Values[pos] = c.Values[src]
		}
	}
	return out
}
