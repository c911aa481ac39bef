// ABOUTME: Column generation rules for simulated biometric metrics.
// ABOUTME: Defines uniform-integer and normal rules plus configuration errors.
package models

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is matched by every ConfigError.
var ErrInvalidConfig = errors.New("invalid generation config")

// MaxRows bounds the size of a generated table.
const MaxRows = 10000

// MaxDecimals bounds the rounding precision of normal columns.
const MaxDecimals = 10

// MaxMagnitude bounds the mean and stddev of normal columns so samples stay
// finite and representable as decimals.
const MaxMagnitude = 1e12

// ConfigError reports an invalid generation parameter.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid generation config: %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidConfig) true for any ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

func configErr(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ColumnKind tells counts (integers) apart from continuous measures.
type ColumnKind string

const (
	KindCount   ColumnKind = "count"
	KindMeasure ColumnKind = "measure"
)

// UniformInt draws integers in [Low, High).
type UniformInt struct {
	Low  int `yaml:"low" json:"low"`
	High int `yaml:"high" json:"high"`
}

// Normal draws Gaussian values rounded to Decimals places.
type Normal struct {
	Mean     float64 `yaml:"mean" json:"mean"`
	StdDev   float64 `yaml:"stddev" json:"stddev"`
	Decimals int     `yaml:"decimals" json:"decimals"`
}

// ColumnSpec names a column and the rule that fills it. Exactly one rule is set.
type ColumnSpec struct {
	Name       string      `yaml:"name" json:"name"`
	Unit       string      `yaml:"unit,omitempty" json:"unit,omitempty"`
	UniformInt *UniformInt `yaml:"uniform_int,omitempty" json:"uniform_int,omitempty"`
	Normal     *Normal     `yaml:"normal,omitempty" json:"normal,omitempty"`
}

// Count builds a uniform-integer column spec.
func Count(name string, low, high int) ColumnSpec {
	return ColumnSpec{Name: name, UniformInt: &UniformInt{Low: low, High: high}}
}

// Measure builds a normal column spec.
func Measure(name string, mean, stddev float64, decimals int) ColumnSpec {
	return ColumnSpec{Name: name, Normal: &Normal{Mean: mean, StdDev: stddev, Decimals: decimals}}
}

// WithUnit sets the display unit.
func (c ColumnSpec) WithUnit(unit string) ColumnSpec {
	c.Unit = unit
	return c
}

// Kind returns the kind of column the rule produces.
func (c ColumnSpec) Kind() ColumnKind {
	if c.UniformInt != nil {
		return KindCount
	}
	return KindMeasure
}

// Precision returns the number of decimals values of this column carry.
func (c ColumnSpec) Precision() int {
	if c.Normal != nil {
		return c.Normal.Decimals
	}
	return 0
}

// Validate checks the rule parameters of a single column.
func (c ColumnSpec) Validate() error {
	if c.Name == "" {
		return configErr("columns", "column name is empty")
	}
	field := fmt.Sprintf("columns[%s]", c.Name)

	switch {
	case c.UniformInt != nil && c.Normal != nil:
		return configErr(field, "both uniform_int and normal are set")
	case c.UniformInt != nil:
		if c.UniformInt.High <= c.UniformInt.Low {
			return configErr(field, "high (%d) must be greater than low (%d)", c.UniformInt.High, c.UniformInt.Low)
		}
		if c.UniformInt.High-c.UniformInt.Low <= 0 {
			return configErr(field, "range [%d, %d) is too wide", c.UniformInt.Low, c.UniformInt.High)
		}
	case c.Normal != nil:
		if !finite(c.Normal.Mean) || !finite(c.Normal.StdDev) {
			return configErr(field, "mean and stddev must be finite, got %g and %g", c.Normal.Mean, c.Normal.StdDev)
		}
		if math.Abs(c.Normal.Mean) > MaxMagnitude || c.Normal.StdDev > MaxMagnitude {
			return configErr(field, "mean and stddev must be within ±%g", MaxMagnitude)
		}
		if c.Normal.StdDev < 0 {
			return configErr(field, "stddev must not be negative, got %g", c.Normal.StdDev)
		}
		if c.Normal.Decimals < 0 || c.Normal.Decimals > MaxDecimals {
			return configErr(field, "decimals must be between 0 and %d, got %d", MaxDecimals, c.Normal.Decimals)
		}
	default:
		return configErr(field, "no generation rule set")
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidateColumns checks every column and rejects duplicate names or a clash
// with the date column.
func ValidateColumns(dateColumn string, columns []ColumnSpec) error {
	if len(columns) == 0 {
		return configErr("columns", "at least one column is required")
	}
	seen := map[string]bool{dateColumn: true}
	for _, c := range columns {
		if err := c.Validate(); err != nil {
			return err
		}
		if seen[c.Name] {
			return configErr(fmt.Sprintf("columns[%s]", c.Name), "duplicate column name")
		}
		seen[c.Name] = true
	}
	return nil
}
