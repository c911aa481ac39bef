// ABOUTME: Serializable descriptions of the catalog and of generated views.
// ABOUTME: Shared by the JSON API, the CLI and the MCP tools.
package dashboard

import (
	"time"

	"github.com/harperreed/move/internal/export"
	"github.com/harperreed/move/internal/models"
	"github.com/harperreed/move/internal/summary"
)

// Info describes one catalog entry.
type Info struct {
	Name        string   `json:"name" yaml:"name"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Rows        int      `json:"rows" yaml:"rows"`
	Columns     []string `json:"columns" yaml:"columns"`
	Charts      []string `json:"charts" yaml:"charts"`
	Sessions    []string `json:"sessions,omitempty" yaml:"sessions,omitempty"`
	Formats     []string `json:"formats" yaml:"formats"`
}

// Describe lists the profiles of a catalog.
func Describe(catalog *models.Catalog) []Info {
	formats := make([]string, len(export.AllFormats))
	for i, f := range export.AllFormats {
		formats[i] = string(f)
	}

	out := make([]Info, 0, len(catalog.Names()))
	for _, p := range catalog.Profiles() {
		info := Info{
			Name:        p.Name,
			Title:       p.Title,
			Description: p.Description,
			Rows:        p.Rows,
			Sessions:    p.Sessions,
			Formats:     formats,
		}
		for _, c := range p.Columns {
			info.Columns = append(info.Columns, c.Name)
		}
		for _, c := range p.Charts {
			info.Charts = append(info.Charts, c.ID)
		}
		out = append(out, info)
	}
	return out
}

// Snapshot is the flat, serializable form of a view.
type Snapshot struct {
	Dashboard   string              `json:"dashboard" yaml:"dashboard"`
	Title       string              `json:"title" yaml:"title"`
	Session     string              `json:"session,omitempty" yaml:"session,omitempty"`
	Seed        uint64              `json:"seed" yaml:"seed"`
	At          time.Time           `json:"at" yaml:"at"`
	Rows        int                 `json:"rows" yaml:"rows"`
	Columns     []string            `json:"columns" yaml:"columns"`
	Records     [][]string          `json:"records" yaml:"records"`
	Indicators  []summary.Indicator `json:"indicators" yaml:"indicators"`
	Alert       string              `json:"alert,omitempty" yaml:"alert,omitempty"`
	Comparisons []Comparison        `json:"comparisons,omitempty" yaml:"comparisons,omitempty"`
}

// Snapshot flattens the view. Records hold every generated row.
func (v *View) Snapshot() Snapshot {
	s := Snapshot{
		Dashboard:   v.Profile.Name,
		Title:       v.Profile.Title,
		Session:     v.SessionName(),
		Seed:        v.Seed,
		At:          v.At,
		Rows:        v.Table.Len(),
		Columns:     v.Table.Names(),
		Records:     make([][]string, 0, v.Table.Len()),
		Indicators:  v.Indicators,
		Alert:       v.Alert,
		Comparisons: v.Comparisons,
	}
	for i := 0; i < v.Table.Len(); i++ {
		s.Records = append(s.Records, v.Table.Record(i))
	}
	return s
}
