// ABOUTME: CLI command for exporting a dashboard table.
// ABOUTME: Supports CSV, PDF, XLSX, JSON, YAML, and Markdown export formats.
package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/move/internal/dashboard"
	"github.com/harperreed/move/internal/export"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportFlags  tableFlags
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export <dashboard> <format>",
	Short: "Export a dashboard table",
	Long: `Export a generated dashboard table in various formats.

FORMATS:

  csv        Full table, newest row first
  pdf        Report with the dashboard's most recent rows
  xlsx       Spreadsheet with a "Dati" sheet
  json       Full table with column metadata
  yaml       Same as json, human-readable
  markdown   Markdown table (alias: md)

Text formats print to stdout unless --output is given. PDF and XLSX without
--output are written to a new file under reports.temp_dir and the path is
printed.

EXAMPLES:

  move export hse csv --seed 42 > hse.csv
  move export hse pdf                             # Report in the temp dir
  move export coach pdf -s "Sessione 2" -o s2.pdf
  move export evo xlsx -n 7 -o settimana.xlsx`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := export.ParseFormat(args[1])
		if err != nil {
			return err
		}
		opts, err := exportFlags.options(cmd)
		if err != nil {
			return err
		}
		v, err := builder.Build(args[0], opts)
		if err != nil {
			return err
		}

		path, err := writeExport(cmd, v, f)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		if path != "" {
			log.Info("report written",
				zap.String("dashboard", v.Profile.Name),
				zap.String("format", string(f)),
				zap.Uint64("seed", v.Seed),
				zap.String("path", path))
			_, _ = color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Exported to %s (seed %d)\n", path, v.Seed)
		}
		return nil
	},
}

// writeExport writes v to --output, to a new temp file for binary formats, or
// to stdout. It returns the written path, empty for stdout.
func writeExport(cmd *cobra.Command, v *dashboard.View, f export.Format) (string, error) {
	if f == export.FormatPDF && exportOutput == "" {
		doc, err := export.BuildDocument(v.Profile, v.SessionName(), v.Table, v.At)
		if err != nil {
			return "", err
		}
		return export.SavePDF(cfg.GetTempDir(), strings.TrimSuffix(v.FileName(f), ".pdf"), doc)
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, f, v.Profile, v.Table, v.Meta()); err != nil {
		return "", err
	}

	switch {
	case exportOutput != "":
		if err := os.WriteFile(exportOutput, buf.Bytes(), 0600); err != nil {
			return "", fmt.Errorf("failed to write file: %w", err)
		}
		return exportOutput, nil
	case f == export.FormatXLSX:
		return export.SaveFile(cfg.GetTempDir(), v.FileName(f), buf.Bytes())
	default:
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return "", err
	}
}

func init() {
	exportFlags.bind(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout, temp dir for pdf/xlsx)")
	rootCmd.AddCommand(exportCmd)
}
