// ABOUTME: CLI command for summarizing a CSV export.
// ABOUTME: Parses the file back and prints its date range and per-column statistics.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/harperreed/move/internal/export"
	"github.com/harperreed/move/internal/summary"
	"github.com/spf13/cobra"
)

var inspectJSON bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.csv>",
	Short: "Summarize a CSV export",
	Long: `Load a CSV written by 'move export' (or the dashboard download) and summarize it.

The first column must be the date; every other column must be numeric. The
summary lists the row count, the date range and the mean, sum, minimum and
maximum of each column. Use "-" to read from stdin.

EXAMPLES:

  move inspect report_hse.csv
  move export evo csv | move inspect -
  move inspect sessione.csv --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open file: %w", err)
			}
			defer f.Close()
			r = f
		}

		t, err := export.ParseCSV(r)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", args[0], err)
		}
		in, err := summary.Inspect(t)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if inspectJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(in)
		}
		return printInspection(out, in)
	},
}

func printInspection(out io.Writer, in *summary.Inspection) error {
	_, _ = color.New(color.Bold).Fprintf(out, "%d rows", in.Rows)
	_, _ = color.New(color.Faint).Fprintf(out, "  %s .. %s\n\n", in.From, in.To)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	_, _ = fmt.Fprintln(tw, "column\tmean\tsum\tmin\tmax\t")
	for _, c := range in.Columns {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", c.Name,
			summary.Format(c.Mean, c.Precision+1),
			summary.Format(c.Sum, c.Precision),
			summary.Format(c.Min, c.Precision),
			summary.Format(c.Max, c.Precision))
	}
	return tw.Flush()
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "print the summary as JSON")
	rootCmd.AddCommand(inspectCmd)
}
