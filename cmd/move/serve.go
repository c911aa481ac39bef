// ABOUTME: CLI command for starting the dashboard web server.
// ABOUTME: Serves HTML dashboards, downloads, charts and the JSON API until interrupted.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/move/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard web server",
	Long: `Start the HTTP server hosting the dashboards.

ROUTES:

  /                                   Dashboard index
  /dashboards/<name>                  HTML dashboard (?seed, ?at, ?rows, ?session, ?compare)
  /dashboards/<name>/export/<format>  csv, pdf, xlsx, json, yaml or markdown download
  /dashboards/<name>/charts/<chart>   SVG chart (?img=png for PNG)
  /api/dashboards                     Dashboard catalog
  /api/dashboards/<name>              Generated table as JSON
  /api/inspect                        POST a CSV to summarize it
  /healthz                            Liveness

EXAMPLES:

  move serve                 # Listen on server.addr (default :8080)
  move serve --addr :9090    # Listen on another port`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}

		engine, err := server.New(builder, log, cfg.Server.Mode)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.Run(ctx, addr, engine, log)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: server.addr)")
	rootCmd.AddCommand(serveCmd)
}
