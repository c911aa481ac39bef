// ABOUTME: Descriptive statistics over metric table columns.
// ABOUTME: Mean, sum, KPI formatting, five-number summaries and histograms.
package summary

import (
	"errors"
	"fmt"
	"math"

	"github.com/harperreed/move/internal/models"
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyTable is returned when aggregating a table with no rows.
	ErrEmptyTable = errors.New("table has no rows")
	// ErrUnknownColumn is returned for a column the table does not have.
	ErrUnknownColumn = errors.New("unknown column")
)

func values(t *models.Table, column string) ([]float64, error) {
	if t == nil || t.Len() == 0 {
		return nil, ErrEmptyTable
	}
	c, ok := t.Column(column)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	return c.Values, nil
}

// Mean returns the arithmetic mean of a column.
func Mean(t *models.Table, column string) (float64, error) {
	v, err := values(t, column)
	if err != nil {
		return 0, err
	}
	return stats.Mean(v)
}

// Sum returns the sum of a column.
func Sum(t *models.Table, column string) (float64, error) {
	v, err := values(t, column)
	if err != nil {
		return 0, err
	}
	return stats.Sum(v)
}

// Compute evaluates one aggregate.
func Compute(t *models.Table, column string, agg models.Aggregate) (float64, error) {
	switch agg {
	case models.AggMean:
		return Mean(t, column)
	case models.AggSum:
		return Sum(t, column)
	default:
		return 0, &models.ConfigError{Field: "aggregate", Reason: fmt.Sprintf("unknown aggregate %q", agg)}
	}
}

// Indicator is an evaluated KPI.
type Indicator struct {
	Label   string  `json:"label" yaml:"label"`
	Column  string  `json:"column" yaml:"column"`
	Value   float64 `json:"value" yaml:"value"`
	Display string  `json:"display" yaml:"display"`
}

// Format renders v with a fixed number of decimals, rounding half away from zero.
func Format(v float64, precision int) string {
	return decimal.NewFromFloat(v).StringFixed(int32(precision))
}

// Indicators evaluates every KPI against the table.
func Indicators(t *models.Table, kpis []models.KPI) ([]Indicator, error) {
	out := make([]Indicator, 0, len(kpis))
	for _, k := range kpis {
		v, err := Compute(t, k.Column, k.Aggregate)
		if err != nil {
			return nil, fmt.Errorf("kpi %q: %w", k.Label, err)
		}
		out = append(out, Indicator{
			Label:   k.Label,
			Column:  k.Column,
			Value:   v,
			Display: Format(v, k.Precision) + k.Suffix,
		})
	}
	return out, nil
}

// FiveNumber is the box-plot summary of a sample.
type FiveNumber struct {
	Min    float64 `json:"min" yaml:"min"`
	Q1     float64 `json:"q1" yaml:"q1"`
	Median float64 `json:"median" yaml:"median"`
	Q3     float64 `json:"q3" yaml:"q3"`
	Max    float64 `json:"max" yaml:"max"`
}

// Describe returns min, quartiles and max. Samples shorter than four values
// use the median for both quartiles.
func Describe(v []float64) (FiveNumber, error) {
	if len(v) == 0 {
		return FiveNumber{}, ErrEmptyTable
	}
	var (
		fn  FiveNumber
		err error
	)
	if fn.Min, err = stats.Min(v); err != nil {
		return FiveNumber{}, err
	}
	if fn.Max, err = stats.Max(v); err != nil {
		return FiveNumber{}, err
	}
	if fn.Median, err = stats.Median(v); err != nil {
		return FiveNumber{}, err
	}
	fn.Q1, fn.Q3 = fn.Median, fn.Median
	if len(v) >= 4 {
		q, err := stats.Quartile(v)
		if err != nil {
			return FiveNumber{}, err
		}
		fn.Q1, fn.Q3 = q.Q1, q.Q3
	}
	return fn, nil
}

// Bin is one histogram bucket covering [Low, High).
type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Histogram splits the finite values of v into bins equal-width buckets; the
// last bucket includes the maximum.
func Histogram(v []float64, bins int) ([]Bin, error) {
	if bins <= 0 {
		return nil, &models.ConfigError{Field: "bins", Reason: "must be positive"}
	}
	finite := make([]float64, 0, len(v))
	for _, x := range v {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			finite = append(finite, x)
		}
	}
	lo, err := stats.Min(finite)
	if err != nil {
		return nil, ErrEmptyTable
	}
	hi, err := stats.Max(finite)
	if err != nil {
		return nil, ErrEmptyTable
	}
	width := (hi - lo) / float64(bins)
	if width == 0 {
		width = 1
	}

	out := make([]Bin, bins)
	for i := range out {
		out[i].Low = lo + float64(i)*width
		out[i].High = lo + float64(i+1)*width
	}
	for _, x := range finite {
		i := int(math.Floor((x - lo) / width))
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out, nil
}
