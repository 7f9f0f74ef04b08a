package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/deaffirst/deafcheck/internal/adapters/outbound/config"
)

// registerResources registers all deafcheck MCP resources on the given
// server.
func registerResources(s *server.MCPServer, dir string) {
	// 1. deafcheck://config - effective engine configuration
	s.AddResource(
		mcplib.NewResource(
			"deafcheck://config",
			"Engine Configuration",
			mcplib.WithResourceDescription("Effective engine configuration (defaults overlaid with .deafcheck.yaml)"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(dir),
	)

	// 2. deafcheck://results/{id} - stored validation result
	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			"deafcheck://results/{id}",
			"Validation Result",
			mcplib.WithTemplateDescription("A stored validation result by id"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		handleResultResource(dir),
	)
}

func handleConfigResource(dir string) server.ResourceHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := config.New().Load(dir)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling config: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleResultResource(dir string) server.ResourceTemplateHandlerFunc {
	return func(ctx context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		id := strings.TrimPrefix(request.Params.URI, "deafcheck://results/")
		if id == "" || id == request.Params.URI {
			return nil, fmt.Errorf("invalid result URI %q", request.Params.URI)
		}

		svc, err := newService(dir)
		if err != nil {
			return nil, fmt.Errorf("engine setup failed: %w", err)
		}

		result, err := svc.GetResult(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("loading result %s: %w", id, err)
		}

		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling result: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
