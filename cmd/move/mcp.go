// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server exposing the dashboards to AI assistants.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/move/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout. Add it to an MCP client config:

  {
    "mcpServers": {
      "move": {
        "command": "move",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  list_dashboards   List dashboards, columns, charts and sessions
  generate_table    Generate a seeded metric table
  summarize         Headline KPIs, risk alert and session comparison
  export_table      Export as csv, pdf, xlsx, json, yaml or markdown

AVAILABLE RESOURCES:

  move://dashboards   Dashboard catalog

PDF and XLSX exports without a path are written under reports.temp_dir.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(builder, cfg.GetTempDir())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		log.Debug("mcp server starting")
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
