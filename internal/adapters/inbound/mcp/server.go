package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewDeafcheckMCPServer creates an MCP server with all deafcheck tools
// registered. dir is where engine config is read from and results are
// persisted.
func NewDeafcheckMCPServer(dir string) *server.MCPServer {
	s := server.NewMCPServer(
		"deafcheck",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, dir)
	registerResources(s, dir)

	return s
}
