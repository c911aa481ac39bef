// ABOUTME: Dashboard profiles: generation parameters, KPIs, charts and report layout.
// ABOUTME: Provides the built-in hse, coach and evo profiles and YAML catalog loading.
package models

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownProfile is returned when a dashboard name is not in the catalog.
	ErrUnknownProfile = errors.New("unknown dashboard")
	// ErrUnknownSession is returned when a session name is not defined by a profile.
	ErrUnknownSession = errors.New("unknown session")
)

// Aggregate is a descriptive statistic computed over a column.
type Aggregate string

const (
	AggMean Aggregate = "mean"
	AggSum  Aggregate = "sum"
)

// KPI is a headline number shown on a dashboard.
type KPI struct {
	Label     string    `yaml:"label" json:"label"`
	Column    string    `yaml:"column" json:"column"`
	Aggregate Aggregate `yaml:"aggregate" json:"aggregate"`
	Precision int       `yaml:"precision" json:"precision"`
	Suffix    string    `yaml:"suffix,omitempty" json:"suffix,omitempty"`
}

// ChartKind selects how a chart is drawn.
type ChartKind string

const (
	ChartLine      ChartKind = "line"
	ChartArea      ChartKind = "area"
	ChartBar       ChartKind = "bar"
	ChartGrouped   ChartKind = "grouped"
	ChartHistogram ChartKind = "histogram"
)

// ChartSpec describes one dashboard chart.
type ChartSpec struct {
	ID      string    `yaml:"id" json:"id"`
	Title   string    `yaml:"title" json:"title"`
	Kind    ChartKind `yaml:"kind" json:"kind"`
	Columns []string  `yaml:"columns" json:"columns"`
	Bins    int       `yaml:"bins,omitempty" json:"bins,omitempty"`
}

// ReportField is one label=value pair of a report line.
type ReportField struct {
	Label     string `yaml:"label" json:"label"`
	Column    string `yaml:"column" json:"column"`
	Suffix    string `yaml:"suffix,omitempty" json:"suffix,omitempty"`
	Precision *int   `yaml:"precision,omitempty" json:"precision,omitempty"`
}

// ReportSpec is the layout of the short paginated report.
type ReportSpec struct {
	FileBase        string        `yaml:"file_base" json:"file_base"`
	Title           string        `yaml:"title" json:"title"`
	Description     string        `yaml:"description,omitempty" json:"description,omitempty"`
	Footer          string        `yaml:"footer,omitempty" json:"footer,omitempty"`
	Window          int           `yaml:"window" json:"window"`
	ShowGeneratedAt bool          `yaml:"show_generated_at,omitempty" json:"show_generated_at,omitempty"`
	Fields          []ReportField `yaml:"fields" json:"fields"`
}

// Alert is raised when the sum of Column is above zero.
type Alert struct {
	Column  string `yaml:"column" json:"column"`
	Message string `yaml:"message" json:"message"`
}

// Profile is everything one dashboard needs to generate, summarize and export its table.
type Profile struct {
	Name           string       `yaml:"name" json:"name"`
	Title          string       `yaml:"title" json:"title"`
	Description    string       `yaml:"description,omitempty" json:"description,omitempty"`
	Rows           int          `yaml:"rows" json:"rows"`
	DateColumn     string       `yaml:"date_column,omitempty" json:"date_column,omitempty"`
	DateLayout     string       `yaml:"date_layout,omitempty" json:"date_layout,omitempty"`
	Columns        []ColumnSpec `yaml:"columns" json:"columns"`
	KPIs           []KPI        `yaml:"kpis" json:"kpis"`
	Charts         []ChartSpec  `yaml:"charts,omitempty" json:"charts,omitempty"`
	TableWindow    int          `yaml:"table_window,omitempty" json:"table_window,omitempty"`
	Sessions       []string     `yaml:"sessions,omitempty" json:"sessions,omitempty"`
	CompareColumns []string     `yaml:"compare_columns,omitempty" json:"compare_columns,omitempty"`
	DefaultCompare []string     `yaml:"default_compare,omitempty" json:"default_compare,omitempty"`
	Alert          *Alert       `yaml:"alert,omitempty" json:"alert,omitempty"`
	Report         ReportSpec   `yaml:"report" json:"report"`
}

// GetDateColumn returns the date column header, defaulting to "Data".
func (p *Profile) GetDateColumn() string {
	if p.DateColumn == "" {
		return DefaultDateColumn
	}
	return p.DateColumn
}

// GetDateLayout returns the date layout, defaulting to YYYY-MM-DD.
func (p *Profile) GetDateLayout() string {
	if p.DateLayout == "" {
		return "2006-01-02"
	}
	return p.DateLayout
}

// Column returns the spec of a configured column.
func (p *Profile) Column(name string) (ColumnSpec, bool) {
	for _, c := range p.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnSpec{}, false
}

// HasSessions reports whether the profile splits its data into named sessions.
func (p *Profile) HasSessions() bool {
	return len(p.Sessions) > 0
}

// SessionIndex returns the position of a session name.
func (p *Profile) SessionIndex(name string) (int, error) {
	for i, s := range p.Sessions {
		if s == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownSession, name)
}

// Chart returns a chart spec by id.
func (p *Profile) Chart(id string) (ChartSpec, bool) {
	for _, c := range p.Charts {
		if c.ID == id {
			return c, true
		}
	}
	return ChartSpec{}, false
}

// FileName returns the download name for an export, e.g. report_hse.csv or
// report_sessione_1.pdf.
func (p *Profile) FileName(session, ext string) string {
	base := p.Report.FileBase
	if base == "" {
		base = "report_" + p.Name
	}
	if session != "" {
		base += "_" + Slug(session)
	}
	return base + "." + ext
}

// Slug lowercases s and replaces spaces with underscores.
func Slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}

// Validate checks generation parameters and cross references.
//
//nolint:gocyclo // flat list of independent checks
func (p *Profile) Validate() error {
	if p.Name == "" {
		return configErr("name", "profile name is empty")
	}
	if p.Rows <= 0 {
		return configErr("rows", "must be positive, got %d", p.Rows)
	}
	if p.Rows > MaxRows {
		return configErr("rows", "must be at most %d, got %d", MaxRows, p.Rows)
	}
	if err := ValidateColumns(p.GetDateColumn(), p.Columns); err != nil {
		return err
	}
	for _, k := range p.KPIs {
		if _, ok := p.Column(k.Column); !ok {
			return configErr("kpis", "unknown column %q", k.Column)
		}
		if k.Aggregate != AggMean && k.Aggregate != AggSum {
			return configErr("kpis", "unknown aggregate %q", k.Aggregate)
		}
		if k.Precision < 0 {
			return configErr("kpis", "precision must not be negative")
		}
	}
	for _, c := range p.Charts {
		if c.ID == "" || len(c.Columns) == 0 {
			return configErr("charts", "chart needs an id and at least one column")
		}
		for _, name := range c.Columns {
			if _, ok := p.Column(name); !ok {
				return configErr("charts", "chart %q: unknown column %q", c.ID, name)
			}
		}
	}
	if p.TableWindow < 0 {
		return configErr("table_window", "must not be negative")
	}
	seen := map[string]bool{}
	for _, s := range p.Sessions {
		if s == "" || seen[s] {
			return configErr("sessions", "session names must be unique and non-empty")
		}
		seen[s] = true
	}
	for _, name := range p.CompareColumns {
		if _, ok := p.Column(name); !ok {
			return configErr("compare_columns", "unknown column %q", name)
		}
	}
	for _, s := range p.DefaultCompare {
		if !seen[s] {
			return configErr("default_compare", "unknown session %q", s)
		}
	}
	if p.Alert != nil {
		if _, ok := p.Column(p.Alert.Column); !ok {
			return configErr("alert", "unknown column %q", p.Alert.Column)
		}
	}
	if p.Report.Window <= 0 {
		return configErr("report.window", "must be positive, got %d", p.Report.Window)
	}
	for _, f := range p.Report.Fields {
		if _, ok := p.Column(f.Column); !ok {
			return configErr("report.fields", "unknown column %q", f.Column)
		}
	}
	return nil
}

// Catalog is an ordered, read-only set of profiles.
type Catalog struct {
	profiles []*Profile
	byName   map[string]*Profile
}

// NewCatalog validates the profiles and indexes them by name.
func NewCatalog(profiles ...*Profile) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]*Profile, len(profiles))}
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("profile %q: %w", p.Name, err)
		}
		if _, dup := c.byName[p.Name]; dup {
			return nil, configErr("name", "duplicate profile %q", p.Name)
		}
		c.profiles = append(c.profiles, p)
		c.byName[p.Name] = p
	}
	return c, nil
}

// Get returns a profile by name.
func (c *Catalog) Get(name string) (*Profile, error) {
	p, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return p, nil
}

// Profiles returns the profiles in catalog order.
func (c *Catalog) Profiles() []*Profile {
	return c.profiles
}

// Names returns the profile names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.profiles))
	for i, p := range c.profiles {
		names[i] = p.Name
	}
	return names
}

type catalogFile struct {
	Profiles []*Profile `yaml:"profiles"`
}

// LoadCatalog reads profiles from a YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}
	if len(f.Profiles) == 0 {
		return nil, configErr("profiles", "no profiles in %s", path)
	}
	return NewCatalog(f.Profiles...)
}
