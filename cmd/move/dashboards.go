// ABOUTME: CLI command for listing the dashboard catalog.
// ABOUTME: Shows each dashboard's size, charts and sessions.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/move/internal/dashboard"
	"github.com/spf13/cobra"
)

var dashboardsCmd = &cobra.Command{
	Use:     "dashboards",
	Aliases: []string{"ls", "list"},
	Short:   "List dashboards",
	Long: `List the dashboards of the catalog.

Each entry shows the dashboard name, title, default row count, charts and,
for the coach toolkit, its named sessions. Set profiles_file in the config to
load a custom YAML catalog instead of the built-in one.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		bold := color.New(color.Bold)
		faint := color.New(color.Faint)

		for _, info := range dashboard.Describe(builder.Catalog()) {
			_, _ = bold.Fprintf(out, "%s  ", padRight(info.Name, 6))
			_, _ = fmt.Fprintln(out, info.Title)
			_, _ = faint.Fprintf(out, "        %d rows  charts: %s\n", info.Rows, strings.Join(info.Charts, ", "))
			if len(info.Sessions) > 0 {
				_, _ = faint.Fprintf(out, "        sessions: %s\n", strings.Join(info.Sessions, ", "))
			}
		}
		return nil
	},
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	rootCmd.AddCommand(dashboardsCmd)
}
