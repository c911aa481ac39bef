// ABOUTME: MCP server setup for the move dashboards.
// ABOUTME: Wraps the MCP server with the dashboard builder and report directory.
package mcp

import (
	"context"

	"github.com/harperreed/move/internal/dashboard"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with dashboard access.
type Server struct {
	mcpServer *mcp.Server
	builder   *dashboard.Builder
	reportDir string
}

// NewServer creates a new MCP server generating tables with builder. Binary
// exports without an explicit path are written under reportDir.
func NewServer(builder *dashboard.Builder, reportDir string) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "move",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		builder:   builder,
		reportDir: reportDir,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
