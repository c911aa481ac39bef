// ABOUTME: Export formats for metric tables and their JSON/YAML serialization.
// ABOUTME: Maps format names to content types and file extensions.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/move/internal/models"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for an export format that is not supported.
var ErrUnknownFormat = errors.New("unknown export format")

// Format is an export file format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatPDF      Format = "pdf"
	FormatXLSX     Format = "xlsx"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// AllFormats lists the supported formats.
var AllFormats = []Format{FormatCSV, FormatPDF, FormatXLSX, FormatJSON, FormatYAML, FormatMarkdown}

var contentTypes = map[Format]string{
	FormatCSV:      "text/csv; charset=utf-8",
	FormatPDF:      "application/pdf",
	FormatXLSX:     "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatJSON:     "application/json",
	FormatYAML:     "application/yaml",
	FormatMarkdown: "text/markdown; charset=utf-8",
}

var extensions = map[Format]string{
	FormatCSV:      "csv",
	FormatPDF:      "pdf",
	FormatXLSX:     "xlsx",
	FormatJSON:     "json",
	FormatYAML:     "yaml",
	FormatMarkdown: "md",
}

// ParseFormat resolves a format name; "md" and "yml" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "md":
		return FormatMarkdown, nil
	case "yml":
		return FormatYAML, nil
	default:
		if _, ok := contentTypes[f]; ok {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q (use csv, pdf, xlsx, json, yaml, or markdown)", ErrUnknownFormat, s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	return contentTypes[f]
}

// Extension returns the file extension of the format.
func (f Format) Extension() string {
	return extensions[f]
}

// Meta describes where a table came from.
type Meta struct {
	Dashboard   string
	Session     string
	Seed        uint64
	GeneratedAt time.Time
}

// ExportData is the JSON/YAML representation of a table.
type ExportData struct {
	Version    string       `json:"version" yaml:"version"`
	ExportedAt time.Time    `json:"exported_at" yaml:"exported_at"`
	Tool       string       `json:"tool" yaml:"tool"`
	Dashboard  string       `json:"dashboard" yaml:"dashboard"`
	Session    string       `json:"session,omitempty" yaml:"session,omitempty"`
	Seed       uint64       `json:"seed" yaml:"seed"`
	DateColumn string       `json:"date_column" yaml:"date_column"`
	Columns    []ColumnInfo `json:"columns" yaml:"columns"`
	Rows       []Row        `json:"rows" yaml:"rows"`
}

// ColumnInfo describes one exported metric column.
type ColumnInfo struct {
	Name      string            `json:"name" yaml:"name"`
	Unit      string            `json:"unit,omitempty" yaml:"unit,omitempty"`
	Kind      models.ColumnKind `json:"kind" yaml:"kind"`
	Precision int               `json:"precision" yaml:"precision"`
}

// Row is one exported table row.
type Row struct {
	Date   string             `json:"date" yaml:"date"`
	Values map[string]float64 `json:"values" yaml:"values"`
}

// NewExportData converts a table into its serializable form.
func NewExportData(t *models.Table, meta Meta) *ExportData {
	exportedAt := meta.GeneratedAt
	if exportedAt.IsZero() {
		exportedAt = time.Now()
	}
	data := &ExportData{
		Version:    "1.0",
		ExportedAt: exportedAt,
		Tool:       "move",
		Dashboard:  meta.Dashboard,
		Session:    meta.Session,
		Seed:       meta.Seed,
		DateColumn: t.DateColumn,
		Columns:    make([]ColumnInfo, 0, len(t.Columns)),
		Rows:       make([]Row, 0, t.Len()),
	}
	for _, c := range t.Columns {
		data.Columns = append(data.Columns, ColumnInfo{Name: c.Name, Unit: c.Unit, Kind: c.Kind, Precision: c.Precision})
	}
	for i := 0; i < t.Len(); i++ {
		row := Row{Date: t.FormatDate(i), Values: make(map[string]float64, len(t.Columns))}
		for _, c := range t.Columns {
			row.Values[c.Name] = c.Values[i]
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}

// JSON exports the table as indented JSON.
func JSON(t *models.Table, meta Meta) ([]byte, error) {
	return json.MarshalIndent(NewExportData(t, meta), "", "  ")
}

// YAML exports the table as YAML.
func YAML(t *models.Table, meta Meta) ([]byte, error) {
	return yaml.Marshal(NewExportData(t, meta))
}
