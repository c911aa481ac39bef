// ABOUTME: Root Cobra command for the move CLI.
// ABOUTME: Loads config, logger and dashboard catalog via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/harperreed/move/internal/config"
	"github.com/harperreed/move/internal/dashboard"
	"github.com/harperreed/move/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string

	cfg     *config.Config
	log     *zap.Logger
	builder *dashboard.Builder
)

var rootCmd = &cobra.Command{
	Use:   "move",
	Short: "Simulated movement and posture dashboards",
	Long: `Move serves browser dashboards over simulated biometric and ergonomic metrics.

DASHBOARDS:

  hse     WORKSAFE PRO workplace safety (30 days)
  coach   M.O.V.E. coach toolkit with three 10-day sessions
  evo     M.O.V.E. EVO daily monitoring (30 days)

QUICK START:

  $ move serve                              # Open http://localhost:8080
  $ move dashboards                         # List dashboards
  $ move generate hse --seed 42             # Print a reproducible table
  $ move export coach pdf --session "Sessione 2"
  $ move inspect sessione.csv               # Summarize a CSV export

Every table is drawn from a seeded generator. Pass the printed seed back with
--seed (and the start date with --at) to regenerate exactly the same rows.

CONFIGURATION:

  Settings are read from ~/.config/move/config.json (or --config) and can be
  overridden with MOVE_* environment variables, e.g. MOVE_SERVER_ADDR=:9090.

MCP INTEGRATION:

  Run 'move mcp' to start the Model Context Protocol server for use with
  MCP-compatible AI assistants:

  {
    "mcpServers": {
      "move": { "command": "move", "args": ["mcp"] }
    }
  }`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		log, err = logger.New(cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		catalog, err := cfg.Catalog()
		if err != nil {
			return fmt.Errorf("failed to load dashboards: %w", err)
		}
		builder = dashboard.NewBuilder(catalog)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if log != nil {
			_ = log.Sync()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/move/config.json)")
}
