// ABOUTME: Metric table generator sampling uniform-integer and normal columns.
// ABOUTME: Randomness comes from an explicit seeded source so tables are reproducible.
package generator

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/harperreed/move/internal/models"
	"github.com/shopspring/decimal"
)

// Step is the distance between consecutive rows.
const Step = 24 * time.Hour

// golden is used to spread derived seeds.
const golden = 0x9e3779b97f4a7c15

// Request describes one table to generate.
type Request struct {
	Rows       int
	DateColumn string
	DateLayout string
	Start      time.Time
	Columns    []models.ColumnSpec
}

// FromProfile builds a request with the profile's default row count.
func FromProfile(p *models.Profile, start time.Time) Request {
	return Request{
		Rows:       p.Rows,
		DateColumn: p.GetDateColumn(),
		DateLayout: p.GetDateLayout(),
		Start:      start,
		Columns:    p.Columns,
	}
}

// Validate fails fast on parameters that cannot produce a table.
func (r Request) Validate() error {
	if r.Rows <= 0 {
		return &models.ConfigError{Field: "rows", Reason: "must be positive"}
	}
	if r.Rows > models.MaxRows {
		return &models.ConfigError{Field: "rows", Reason: fmt.Sprintf("must be at most %d", models.MaxRows)}
	}
	dateColumn := r.DateColumn
	if dateColumn == "" {
		dateColumn = models.DefaultDateColumn
	}
	return models.ValidateColumns(dateColumn, r.Columns)
}

// NewRand returns a PCG-backed generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^golden))
}

// RandomSeed picks a fresh seed from the runtime source.
func RandomSeed() uint64 {
	return rand.Uint64()
}

// DeriveSeed returns a distinct, stable seed for the i-th sub-table of seed.
func DeriveSeed(seed uint64, i int) uint64 {
	return seed + uint64(i+1)*golden
}

// Generate builds a table of req.Rows rows. Row 0 is dated req.Start and each
// following row is one day earlier.
func Generate(req Request, rng *rand.Rand) (*models.Table, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.DateColumn == "" {
		req.DateColumn = models.DefaultDateColumn
	}
	if req.Start.IsZero() {
		req.Start = time.Now()
	}

	t := &models.Table{
		DateColumn: req.DateColumn,
		DateLayout: req.DateLayout,
		Dates:      make([]time.Time, req.Rows),
		Columns:    make([]*models.Column, len(req.Columns)),
	}
	for i := range t.Dates {
		t.Dates[i] = req.Start.Add(-time.Duration(i) * Step)
	}

	for ci, spec := range req.Columns {
		t.Columns[ci] = &models.Column{
			Name:      spec.Name,
			Unit:      spec.Unit,
			Kind:      spec.Kind(),
			Precision: spec.Precision(),
			Values:    sample(spec, req.Rows, rng),
		}
	}
	return t, nil
}

func sample(spec models.ColumnSpec, n int, rng *rand.Rand) []float64 {
	values := make([]float64, n)
	switch {
	case spec.UniformInt != nil:
		u := spec.UniformInt
		for i := range values {
			values[i] = float64(u.Low + rng.IntN(u.High-u.Low))
		}
	case spec.Normal != nil:
		g := spec.Normal
		for i := range values {
			v := g.Mean + g.StdDev*rng.NormFloat64()
			values[i] = Round(v, g.Decimals)
		}
	}
	return values
}

// Round rounds v half away from zero to the given number of decimals.
// NaN and infinities are returned unchanged.
func Round(v float64, decimals int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(int32(decimals)).InexactFloat64()
}
