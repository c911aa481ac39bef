// ABOUTME: Parses exported CSV back into a metric table.
// ABOUTME: Column kinds are inferred from the detected column types.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/harperreed/move/internal/models"
)

// ErrNoRows is returned when a CSV holds a header but no data.
var ErrNoRows = errors.New("csv has no data rows")

var dateLayouts = []string{time.DateTime, time.DateOnly, time.RFC3339}

// ParseCSV reads a CSV whose first column is a date and the rest numeric.
func ParseCSV(r io.Reader) (*models.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	df := dataframe.ReadCSV(bytes.NewReader(data), dataframe.HasHeader(true), dataframe.DetectTypes(true))
	if df.Err != nil {
		return nil, fmt.Errorf("read csv: %w", df.Err)
	}
	// Untyped copy keeps the cell text as written, for precision detection.
	raw := dataframe.ReadCSV(bytes.NewReader(data), dataframe.HasHeader(true), dataframe.DetectTypes(false))
	if raw.Err != nil {
		return nil, fmt.Errorf("read csv: %w", raw.Err)
	}
	if df.Nrow() == 0 {
		return nil, ErrNoRows
	}

	names := df.Names()
	t := &models.Table{
		DateColumn: names[0],
		Dates:      make([]time.Time, df.Nrow()),
	}

	for i, cell := range raw.Col(names[0]).Records() {
		d, layout, err := parseDate(cell)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		t.Dates[i] = d
		t.DateLayout = layout
	}

	for _, name := range names[1:] {
		s := df.Col(name)
		var kind models.ColumnKind
		switch s.Type() {
		case series.Int:
			kind = models.KindCount
		case series.Float:
			kind = models.KindMeasure
		default:
			return nil, fmt.Errorf("column %q is not numeric", name)
		}
		values := s.Float()
		for i, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("row %d: column %q: missing or non-finite value", i+1, name)
			}
		}
		t.Columns = append(t.Columns, &models.Column{
			Name:      name,
			Kind:      kind,
			Precision: precisionOf(raw.Col(name).Records()),
			Values:    values,
		})
	}
	return t, nil
}

func parseDate(s string) (time.Time, string, error) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, layout, nil
		}
	}
	return time.Time{}, "", fmt.Errorf("unrecognized date %q", s)
}

func precisionOf(records []string) int {
	p := 0
	for _, r := range records {
		if i := strings.IndexByte(r, '.'); i >= 0 && len(r)-i-1 > p {
			p = len(r) - i - 1
		}
	}
	return p
}
