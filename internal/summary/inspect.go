// ABOUTME: Column-by-column description of an uploaded or generated table.
// ABOUTME: Used by the CSV inspection endpoint, CLI command and MCP tool.
package summary

import (
	"github.com/harperreed/move/internal/models"
	"github.com/montanaflynn/stats"
)

// ColumnStats describes one metric column.
type ColumnStats struct {
	Name      string            `json:"name" yaml:"name"`
	Kind      models.ColumnKind `json:"kind" yaml:"kind"`
	Precision int               `json:"precision" yaml:"precision"`
	Mean      float64           `json:"mean" yaml:"mean"`
	Sum       float64           `json:"sum" yaml:"sum"`
	Min       float64           `json:"min" yaml:"min"`
	Max       float64           `json:"max" yaml:"max"`
}

// Inspection is the shape and per-column statistics of a table.
type Inspection struct {
	Rows    int           `json:"rows" yaml:"rows"`
	From    string        `json:"from" yaml:"from"`
	To      string        `json:"to" yaml:"to"`
	Columns []ColumnStats `json:"columns" yaml:"columns"`
}

// Inspect summarizes every column of t.
func Inspect(t *models.Table) (*Inspection, error) {
	if t == nil || t.Len() == 0 {
		return nil, ErrEmptyTable
	}
	asc := t.Ascending()
	out := &Inspection{
		Rows:    t.Len(),
		From:    asc.FormatDate(0),
		To:      asc.FormatDate(asc.Len() - 1),
		Columns: make([]ColumnStats, 0, len(t.Columns)),
	}
	for _, c := range t.Columns {
		cs := ColumnStats{Name: c.Name, Kind: c.Kind, Precision: c.Precision}
		cs.Mean, _ = stats.Mean(c.Values)
		cs.Sum, _ = stats.Sum(c.Values)
		cs.Min, _ = stats.Min(c.Values)
		cs.Max, _ = stats.Max(c.Values)
		out.Columns = append(out.Columns, cs)
	}
	return out, nil
}
