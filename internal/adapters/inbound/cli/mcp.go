package cli

import (
	mcpadapter "github.com/deaffirst/deafcheck/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the deafcheck MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the deafcheck MCP server (stdio)",
		Long:  "Start the deafcheck MCP server using stdio transport. This lets AI assistants validate pages, run batches, and read stored results.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = "."
			}
			s := mcpadapter.NewDeafcheckMCPServer(dir)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory for config and stored results (defaults to current working directory)")

	return cmd
}
