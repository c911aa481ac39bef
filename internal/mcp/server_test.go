// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and the catalog resource.
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/move/internal/dashboard"
	"github.com/harperreed/move/internal/export"
	"github.com/harperreed/move/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// setupServer creates a server writing reports to a temp directory.
func setupServer(t *testing.T) (*Server, string) {
	t.Helper()

	dir := t.TempDir()
	server, err := NewServer(dashboard.NewBuilder(models.DefaultCatalog()), dir)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server, dir
}

func ptr[T any](v T) *T { return &v }

func TestNewServer(t *testing.T) {
	server, dir := setupServer(t)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.builder == nil {
		t.Error("Expected non-nil builder")
	}
	if server.reportDir != dir {
		t.Errorf("Expected report dir %s, got %s", dir, server.reportDir)
	}
}

func TestHandleListDashboards(t *testing.T) {
	server, _ := setupServer(t)

	_, out, err := server.handleListDashboards(context.Background(), nil, listDashboardsInput{})
	if err != nil {
		t.Fatalf("handleListDashboards failed: %v", err)
	}
	if len(out.Dashboards) != 3 {
		t.Fatalf("Expected 3 dashboards, got %d", len(out.Dashboards))
	}

	names := []string{"hse", "coach", "evo"}
	for i, want := range names {
		if out.Dashboards[i].Name != want {
			t.Errorf("Dashboard %d: expected %s, got %s", i, want, out.Dashboards[i].Name)
		}
	}
	if len(out.Dashboards[1].Sessions) != 3 {
		t.Errorf("Expected coach to have 3 sessions, got %v", out.Dashboards[1].Sessions)
	}
}

func TestHandleGenerateTable(t *testing.T) {
	server, _ := setupServer(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		input    tableInput
		wantRows int
		wantErr  error
	}{
		{
			name:     "default rows",
			input:    tableInput{Dashboard: "hse", Seed: ptr(uint64(1))},
			wantRows: 30,
		},
		{
			name:     "explicit rows",
			input:    tableInput{Dashboard: "evo", Rows: ptr(4), Seed: ptr(uint64(1))},
			wantRows: 4,
		},
		{
			name:     "coach session",
			input:    tableInput{Dashboard: "coach", Session: "Sessione 2", Seed: ptr(uint64(1))},
			wantRows: 10,
		},
		{
			name:    "unknown dashboard",
			input:   tableInput{Dashboard: "nope"},
			wantErr: models.ErrUnknownProfile,
		},
		{
			name:    "unknown session",
			input:   tableInput{Dashboard: "coach", Session: "Sessione 7"},
			wantErr: models.ErrUnknownSession,
		},
		{
			name:    "zero rows",
			input:   tableInput{Dashboard: "hse", Rows: ptr(0)},
			wantErr: models.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := server.handleGenerateTable(ctx, nil, tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("handleGenerateTable failed: %v", err)
			}
			if out.Rows != tt.wantRows || len(out.Records) != tt.wantRows {
				t.Errorf("Expected %d rows, got %d (%d records)", tt.wantRows, out.Rows, len(out.Records))
			}
			if out.Seed != 1 {
				t.Errorf("Expected seed 1, got %d", out.Seed)
			}
			if out.Columns[0] != models.DefaultDateColumn {
				t.Errorf("Expected first column %s, got %s", models.DefaultDateColumn, out.Columns[0])
			}
		})
	}
}

func TestHandleGenerateTableReproducible(t *testing.T) {
	server, _ := setupServer(t)
	ctx := context.Background()
	input := tableInput{Dashboard: "coach", Seed: ptr(uint64(42)), At: ptr(int64(1750000000))}

	_, first, err := server.handleGenerateTable(ctx, nil, input)
	if err != nil {
		t.Fatalf("handleGenerateTable failed: %v", err)
	}
	_, second, err := server.handleGenerateTable(ctx, nil, input)
	if err != nil {
		t.Fatalf("handleGenerateTable failed: %v", err)
	}

	a, _ := json.Marshal(first.Records)
	b, _ := json.Marshal(second.Records)
	if !bytes.Equal(a, b) {
		t.Error("Expected identical records for the same seed and start")
	}
}

func TestHandleSummarize(t *testing.T) {
	server, _ := setupServer(t)

	_, out, err := server.handleSummarize(context.Background(), nil, tableInput{
		Dashboard: "coach",
		Seed:      ptr(uint64(3)),
		Compare:   []string{"Sessione 1", "Sessione 2"},
	})
	if err != nil {
		t.Fatalf("handleSummarize failed: %v", err)
	}

	if out.Dashboard != "coach" || out.Session != "Sessione 1" {
		t.Errorf("Unexpected dashboard/session: %s/%s", out.Dashboard, out.Session)
	}
	if len(out.Indicators) != 4 {
		t.Errorf("Expected 4 indicators, got %d", len(out.Indicators))
	}
	if len(out.Comparisons) == 0 {
		t.Fatal("Expected comparisons")
	}
	for _, c := range out.Comparisons {
		if len(c.Sessions) != 2 {
			t.Errorf("Comparison %s: expected 2 sessions, got %d", c.Column, len(c.Sessions))
		}
	}
	if len(out.Columns) != len(models.CoachProfile().Columns) {
		t.Errorf("Expected stats for %d columns, got %d", len(models.CoachProfile().Columns), len(out.Columns))
	}
}

func TestHandleSummarizeAlert(t *testing.T) {
	server, _ := setupServer(t)

	// The HSE alert fires whenever any row carries a positive risk count,
	// which is practically certain over a large table.
	_, out, err := server.handleSummarize(context.Background(), nil, tableInput{
		Dashboard: "hse",
		Rows:      ptr(200),
		Seed:      ptr(uint64(9)),
	})
	if err != nil {
		t.Fatalf("handleSummarize failed: %v", err)
	}
	if out.Alert == "" {
		t.Error("Expected an alert over 200 rows")
	}
	if out.Rows != 200 {
		t.Errorf("Expected 200 rows, got %d", out.Rows)
	}
}

func TestHandleExportTableInline(t *testing.T) {
	server, dir := setupServer(t)
	ctx := context.Background()

	_, out, err := server.handleExportTable(ctx, nil, exportInput{
		Dashboard: "hse",
		Rows:      ptr(5),
		Seed:      ptr(uint64(2)),
		Format:    "csv",
	})
	if err != nil {
		t.Fatalf("handleExportTable failed: %v", err)
	}
	if out.Path != "" {
		t.Errorf("Expected inline content, got path %s", out.Path)
	}
	lines := strings.Split(strings.TrimRight(out.Content, "\n"), "\n")
	if len(lines) != 6 {
		t.Errorf("Expected header plus 5 lines, got %d", len(lines))
	}
	if out.FileName != "report_hse.csv" {
		t.Errorf("Expected report_hse.csv, got %s", out.FileName)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("Expected no files written, found %d", len(entries))
	}
}

func TestHandleExportTableBinary(t *testing.T) {
	server, dir := setupServer(t)
	ctx := context.Background()

	for _, format := range []string{"pdf", "xlsx", "PDF"} {
		_, out, err := server.handleExportTable(ctx, nil, exportInput{
			Dashboard: "coach",
			Seed:      ptr(uint64(4)),
			Format:    format,
		})
		if err != nil {
			t.Fatalf("handleExportTable(%s) failed: %v", format, err)
		}
		if filepath.Dir(out.Path) != dir {
			t.Errorf("Expected %s under %s", out.Path, dir)
		}
		if name := filepath.Base(out.Path); !strings.HasPrefix(name, "report_sessione_1-") || filepath.Ext(name) != "."+strings.ToLower(format) {
			t.Errorf("Unexpected report file name %s", name)
		}
		if out.Content != "" {
			t.Error("Expected no inline content for binary formats")
		}
		if _, err := os.Stat(out.Path); err != nil {
			t.Errorf("Expected file at %s: %v", out.Path, err)
		}
	}

	// Repeated exports never overwrite each other.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("Expected 3 report files, got %d", len(entries))
	}
}

func TestHandleExportTableToPath(t *testing.T) {
	server, _ := setupServer(t)
	path := filepath.Join(t.TempDir(), "out.pdf")

	_, out, err := server.handleExportTable(context.Background(), nil, exportInput{
		Dashboard: "evo",
		Seed:      ptr(uint64(5)),
		Format:    "pdf",
		Path:      path,
	})
	if err != nil {
		t.Fatalf("handleExportTable failed: %v", err)
	}
	if out.Path != path {
		t.Errorf("Expected path %s, got %s", path, out.Path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("Expected a PDF document")
	}
}

func TestHandleExportTableErrors(t *testing.T) {
	server, _ := setupServer(t)
	ctx := context.Background()

	_, _, err := server.handleExportTable(ctx, nil, exportInput{
		Dashboard: "hse",
		Format:    "docx",
	})
	if !errors.Is(err, export.ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}

	_, _, err = server.handleExportTable(ctx, nil, exportInput{
		Dashboard: "nope",
		Format:    "csv",
	})
	if !errors.Is(err, models.ErrUnknownProfile) {
		t.Errorf("Expected ErrUnknownProfile, got %v", err)
	}

	_, _, err = server.handleExportTable(ctx, nil, exportInput{
		Dashboard: "hse",
		Format:    "pdf",
		Path:      filepath.Join(t.TempDir(), "missing", "out.pdf"),
	})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}

func TestHandleDashboardsResource(t *testing.T) {
	server, _ := setupServer(t)

	result, err := server.handleDashboardsResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("handleDashboardsResource failed: %v", err)
	}
	if len(result.Contents) != 1 {
		t.Fatalf("Expected 1 content, got %d", len(result.Contents))
	}
	if result.Contents[0].URI != DashboardsURI {
		t.Errorf("Expected URI %s, got %s", DashboardsURI, result.Contents[0].URI)
	}

	var infos []dashboard.Info
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &infos); err != nil {
		t.Fatalf("Failed to unmarshal resource: %v", err)
	}
	if len(infos) != 3 {
		t.Errorf("Expected 3 dashboards, got %d", len(infos))
	}
}
