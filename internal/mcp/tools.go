// ABOUTME: MCP tool implementations for the move dashboards.
// ABOUTME: Lists dashboards, generates tables, summarizes KPIs and exports files.
package mcp

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/harperreed/move/internal/dashboard"
	"github.com/harperreed/move/internal/export"
	"github.com/harperreed/move/internal/summary"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// list_dashboards
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_dashboards",
		Description: "List the available dashboards with their columns, charts and sessions",
	}, s.handleListDashboards)

	// generate_table
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "generate_table",
		Description: "Generate a simulated metric table for a dashboard",
	}, s.handleGenerateTable)

	// summarize
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "summarize",
		Description: "Compute the headline KPIs, risk alert and session comparison of a dashboard",
	}, s.handleSummarize)

	// export_table
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "export_table",
		Description: "Export a dashboard table as csv, pdf, xlsx, json, yaml or markdown",
	}, s.handleExportTable)
}

// Tool input/output types

type listDashboardsInput struct{}

type listDashboardsOutput struct {
	Dashboards []dashboard.Info `json:"dashboards"`
}

type tableInput struct {
	Dashboard string   `json:"dashboard" jsonschema:"Dashboard name (hse, coach, evo)"`
	Rows      *int     `json:"rows,omitempty" jsonschema:"Rows to generate, defaults to the dashboard size"`
	Seed      *uint64  `json:"seed,omitempty" jsonschema:"Random seed; reuse it to regenerate the same table"`
	At        *int64   `json:"at,omitempty" jsonschema:"Start instant as a unix timestamp, defaults to now"`
	Session   string   `json:"session,omitempty" jsonschema:"Session name for dashboards with sessions"`
	Compare   []string `json:"compare,omitempty" jsonschema:"Sessions to compare"`
}

func (in tableInput) options() dashboard.Options {
	opts := dashboard.Options{
		Rows:    in.Rows,
		Seed:    in.Seed,
		Session: in.Session,
		Compare: in.Compare,
	}
	if in.At != nil {
		opts.At = time.Unix(*in.At, 0)
	}
	return opts
}

type tableOutput struct {
	Dashboard  string              `json:"dashboard"`
	Title      string              `json:"title"`
	Session    string              `json:"session,omitempty"`
	Seed       uint64              `json:"seed"`
	At         string              `json:"at"`
	Rows       int                 `json:"rows"`
	Columns    []string            `json:"columns"`
	Records    [][]string          `json:"records"`
	Indicators []summary.Indicator `json:"indicators"`
	Alert      string              `json:"alert,omitempty"`
}

type summarizeOutput struct {
	Dashboard   string                 `json:"dashboard"`
	Session     string                 `json:"session,omitempty"`
	Seed        uint64                 `json:"seed"`
	Rows        int                    `json:"rows"`
	Indicators  []summary.Indicator    `json:"indicators"`
	Alert       string                 `json:"alert,omitempty"`
	Comparisons []dashboard.Comparison `json:"comparisons,omitempty"`
	Columns     []summary.ColumnStats  `json:"columns"`
}

type exportInput struct {
	Dashboard string  `json:"dashboard" jsonschema:"Dashboard name (hse, coach, evo)"`
	Format    string  `json:"format" jsonschema:"Export format: csv, pdf, xlsx, json, yaml or markdown"`
	Path      string  `json:"path,omitempty" jsonschema:"File to write; binary formats default to a new file in the report directory"`
	Rows      *int    `json:"rows,omitempty" jsonschema:"Rows to generate, defaults to the dashboard size"`
	Seed      *uint64 `json:"seed,omitempty" jsonschema:"Random seed; reuse it to regenerate the same table"`
	At        *int64  `json:"at,omitempty" jsonschema:"Start instant as a unix timestamp, defaults to now"`
	Session   string  `json:"session,omitempty" jsonschema:"Session name for dashboards with sessions"`
}

func (in exportInput) table() tableInput {
	return tableInput{Dashboard: in.Dashboard, Rows: in.Rows, Seed: in.Seed, At: in.At, Session: in.Session}
}

type exportOutput struct {
	Format   string `json:"format"`
	FileName string `json:"file_name"`
	Seed     uint64 `json:"seed"`
	Path     string `json:"path,omitempty"`
	Content  string `json:"content,omitempty"`
	Message  string `json:"message"`
}

// Tool handlers

func (s *Server) handleListDashboards(ctx context.Context, req *mcp.CallToolRequest, input listDashboardsInput) (*mcp.CallToolResult, listDashboardsOutput, error) {
	return nil, listDashboardsOutput{Dashboards: dashboard.Describe(s.builder.Catalog())}, nil
}

func (s *Server) handleGenerateTable(ctx context.Context, req *mcp.CallToolRequest, input tableInput) (*mcp.CallToolResult, tableOutput, error) {
	v, err := s.builder.Build(input.Dashboard, input.options())
	if err != nil {
		return nil, tableOutput{}, fmt.Errorf("failed to generate table: %w", err)
	}

	snap := v.Snapshot()
	return nil, tableOutput{
		Dashboard:  snap.Dashboard,
		Title:      snap.Title,
		Session:    snap.Session,
		Seed:       snap.Seed,
		At:         snap.At.Format(time.RFC3339),
		Rows:       snap.Rows,
		Columns:    snap.Columns,
		Records:    snap.Records,
		Indicators: snap.Indicators,
		Alert:      snap.Alert,
	}, nil
}

func (s *Server) handleSummarize(ctx context.Context, req *mcp.CallToolRequest, input tableInput) (*mcp.CallToolResult, summarizeOutput, error) {
	v, err := s.builder.Build(input.Dashboard, input.options())
	if err != nil {
		return nil, summarizeOutput{}, fmt.Errorf("failed to generate table: %w", err)
	}
	in, err := summary.Inspect(v.Table)
	if err != nil {
		return nil, summarizeOutput{}, fmt.Errorf("failed to summarize: %w", err)
	}

	return nil, summarizeOutput{
		Dashboard:   v.Profile.Name,
		Session:     v.SessionName(),
		Seed:        v.Seed,
		Rows:        v.Table.Len(),
		Indicators:  v.Indicators,
		Alert:       v.Alert,
		Comparisons: v.Comparisons,
		Columns:     in.Columns,
	}, nil
}

func (s *Server) handleExportTable(ctx context.Context, req *mcp.CallToolRequest, input exportInput) (*mcp.CallToolResult, exportOutput, error) {
	f, err := export.ParseFormat(input.Format)
	if err != nil {
		return nil, exportOutput{}, err
	}
	v, err := s.builder.Build(input.Dashboard, input.table().options())
	if err != nil {
		return nil, exportOutput{}, fmt.Errorf("failed to generate table: %w", err)
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, f, v.Profile, v.Table, v.Meta()); err != nil {
		return nil, exportOutput{}, fmt.Errorf("failed to export: %w", err)
	}

	out := exportOutput{
		Format:   string(f),
		FileName: v.FileName(f),
		Seed:     v.Seed,
	}

	binary := f == export.FormatPDF || f == export.FormatXLSX
	if input.Path == "" && !binary {
		out.Content = buf.String()
		out.Message = fmt.Sprintf("Exported %d rows of %s as %s", v.Table.Len(), v.Profile.Name, f)
		return nil, out, nil
	}

	path, err := s.writeFile(input.Path, out.FileName, buf.Bytes())
	if err != nil {
		return nil, exportOutput{}, err
	}
	out.Path = path
	out.Message = fmt.Sprintf("Exported %d rows of %s to %s", v.Table.Len(), v.Profile.Name, path)
	return nil, out, nil
}

// writeFile writes data to path, or to a new uniquely named file in the
// report directory when path is empty.
func (s *Server) writeFile(path, name string, data []byte) (string, error) {
	if path != "" {
		if err := os.WriteFile(path, data, 0600); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", path, err)
		}
		return path, nil
	}

	return export.SaveFile(s.reportDir, name, data)
}
