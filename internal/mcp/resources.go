// ABOUTME: MCP resource implementations for the move dashboards.
// ABOUTME: Provides the move://dashboards catalog resource.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/move/internal/dashboard"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DashboardsURI names the catalog resource.
const DashboardsURI = "move://dashboards"

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         DashboardsURI,
		Name:        "Dashboard Catalog",
		Description: "Dashboards with their columns, charts, sessions and export formats",
		MIMEType:    "application/json",
	}, s.handleDashboardsResource)
}

func (s *Server) handleDashboardsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(dashboard.Describe(s.builder.Catalog()), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal catalog: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      DashboardsURI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
