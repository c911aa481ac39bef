// ABOUTME: Table selection flags shared by the generate and export commands.
// ABOUTME: Maps --rows, --seed, --at, --session and --compare to dashboard options.
package main

import (
	"fmt"
	"time"

	"github.com/harperreed/move/internal/dashboard"
	"github.com/spf13/cobra"
)

type tableFlags struct {
	rows    int
	seed    uint64
	at      string
	session string
	compare []string
}

func (f *tableFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.rows, "rows", "n", 0, "rows to generate (default: dashboard size)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed (default: random)")
	cmd.Flags().StringVar(&f.at, "at", "", "start date (YYYY-MM-DD [HH:MM], default: now)")
	cmd.Flags().StringVarP(&f.session, "session", "s", "", "session name (coach only)")
	cmd.Flags().StringSliceVar(&f.compare, "compare", nil, "sessions to compare (coach only)")
}

// options only forwards the flags the user actually set.
func (f *tableFlags) options(cmd *cobra.Command) (dashboard.Options, error) {
	opts := dashboard.Options{
		Session: f.session,
		Compare: f.compare,
	}
	if cmd.Flags().Changed("rows") {
		rows := f.rows
		opts.Rows = &rows
	}
	if cmd.Flags().Changed("seed") {
		seed := f.seed
		opts.Seed = &seed
	}
	if f.at != "" {
		at, err := parseTime(f.at)
		if err != nil {
			return opts, fmt.Errorf("invalid --at %q: %w", f.at, err)
		}
		opts.At = at
	}
	return opts, nil
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}
