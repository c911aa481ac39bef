// ABOUTME: Integration tests for the move CLI.
// ABOUTME: Builds the binary and drives generate, export and inspect end to end.
package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	// Build the binary
	projectRoot, _ := filepath.Abs("..")
	moveBinary := filepath.Join(t.TempDir(), "move")

	buildCmd := exec.Command("go", "build", "-o", moveBinary, "./cmd/move")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}

	// Use temp config and report directory
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")
	reports := filepath.Join(tmpDir, "reports")
	if err := os.Mkdir(reports, 0750); err != nil {
		t.Fatalf("Failed to create reports dir: %v", err)
	}

	run := func(args ...string) (string, error) {
		fullArgs := append([]string{"--config", configPath}, args...)
		cmd := exec.Command(moveBinary, fullArgs...)
		cmd.Env = append(os.Environ(), "MOVE_REPORTS_TEMP_DIR="+reports, "MOVE_LOG_LEVEL=error")
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	// Test listing dashboards
	output, err := run("dashboards")
	if err != nil {
		t.Fatalf("Failed to list dashboards: %v\n%s", err, output)
	}
	if !strings.Contains(output, "coach") {
		t.Errorf("Expected 'coach' in output, got: %s", output)
	}

	// Test generating a table
	output, err = run("generate", "hse", "--seed", "42", "--at", "2025-06-01")
	if err != nil {
		t.Fatalf("Failed to generate: %v\n%s", err, output)
	}
	if !strings.Contains(output, "seed 42") {
		t.Errorf("Expected 'seed 42' in output, got: %s", output)
	}

	// Test CSV export to file is reproducible
	csvPath := filepath.Join(tmpDir, "hse.csv")
	var exports [2]string
	for i := range exports {
		output, err = run("export", "hse", "csv", "--seed", "42", "--at", "2025-06-01", "-o", csvPath)
		if err != nil {
			t.Fatalf("Failed to export csv: %v\n%s", err, output)
		}
		data, err := os.ReadFile(csvPath)
		if err != nil {
			t.Fatalf("Failed to read export: %v", err)
		}
		exports[i] = string(data)
	}
	if exports[0] != exports[1] {
		t.Error("Expected identical exports for the same seed and start")
	}
	if lines := strings.Count(exports[0], "\n"); lines != 31 {
		t.Errorf("Expected 31 csv lines, got %d", lines)
	}

	// Test inspecting the export
	output, err = run("inspect", csvPath)
	if err != nil {
		t.Fatalf("Failed to inspect: %v\n%s", err, output)
	}
	if !strings.Contains(output, "30 rows") {
		t.Errorf("Expected '30 rows' in inspect output, got: %s", output)
	}

	// Test PDF export lands in the report directory
	output, err = run("export", "coach", "pdf", "--session", "Sessione 2")
	if err != nil {
		t.Fatalf("Failed to export pdf: %v\n%s", err, output)
	}
	entries, err := os.ReadDir(reports)
	if err != nil {
		t.Fatalf("Failed to read reports dir: %v", err)
	}
	if len(entries) != 1 || !strings.HasSuffix(entries[0].Name(), ".pdf") {
		t.Errorf("Expected one pdf report, got %v", entries)
	}

	// Test unknown dashboard fails
	if output, err = run("generate", "nope"); err == nil {
		t.Errorf("Expected error for unknown dashboard, got: %s", output)
	}
}
