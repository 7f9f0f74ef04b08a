package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/deaffirst/deafcheck/internal/adapters/outbound/config"
	"github.com/deaffirst/deafcheck/internal/adapters/outbound/enrich"
	"github.com/deaffirst/deafcheck/internal/adapters/outbound/fetcher"
	"github.com/deaffirst/deafcheck/internal/adapters/outbound/store"
	"github.com/deaffirst/deafcheck/internal/application"
	"github.com/deaffirst/deafcheck/internal/domain"
)

// registerTools registers all deafcheck MCP tools on the given server.
func registerTools(s *server.MCPServer, dir string) {
	// 1. deafcheck_validate
	s.AddTool(
		mcplib.NewTool("deafcheck_validate",
			mcplib.WithDescription("Validate a page for Deaf-first accessibility. Returns the full scored result as JSON."),
			mcplib.WithString("url", mcplib.Description("URL to fetch and validate")),
			mcplib.WithString("html", mcplib.Description("Raw HTML to validate instead of a URL")),
			mcplib.WithBoolean("deaf_first", mcplib.Description("Run the full Deaf-first checker set (default: true)")),
			mcplib.WithString("tenant", mcplib.Description("Tenant key for configured domain policies")),
		),
		handleValidate(dir),
	)

	// 2. deafcheck_validate_batch
	s.AddTool(
		mcplib.NewTool("deafcheck_validate_batch",
			mcplib.WithDescription("Validate many URLs concurrently. One page failing never aborts the rest."),
			mcplib.WithString("urls", mcplib.Required(), mcplib.Description("Comma-separated URLs to validate")),
			mcplib.WithBoolean("deaf_first", mcplib.Description("Run the full Deaf-first checker set (default: true)")),
			mcplib.WithString("tenant", mcplib.Description("Tenant key for configured domain policies")),
		),
		handleValidateBatch(dir),
	)

	// 3. deafcheck_get_result
	s.AddTool(
		mcplib.NewTool("deafcheck_get_result",
			mcplib.WithDescription("Retrieve a previously stored validation result by id"),
			mcplib.WithString("id", mcplib.Required(), mcplib.Description("Validation result id")),
		),
		handleGetResult(dir),
	)

	// 4. deafcheck_deaf_score
	s.AddTool(
		mcplib.NewTool("deafcheck_deaf_score",
			mcplib.WithDescription("Quick Deaf-first score for a URL: overall plus the four category sub-scores"),
			mcplib.WithString("url", mcplib.Required(), mcplib.Description("URL to score")),
		),
		handleDeafScore(dir),
	)

	// 5. deafcheck_audio_bypass
	s.AddTool(
		mcplib.NewTool("deafcheck_audio_bypass",
			mcplib.WithDescription("Scan a URL for audio-dependent content lacking captions or transcripts"),
			mcplib.WithString("url", mcplib.Required(), mcplib.Description("URL to scan")),
		),
		handleCategoryScan(dir, domain.CategoryAudioIndependence),
	)

	// 6. deafcheck_asl_flow
	s.AddTool(
		mcplib.NewTool("deafcheck_asl_flow",
			mcplib.WithDescription("Check a URL's compatibility with ASL-first navigation and content flow"),
			mcplib.WithString("url", mcplib.Required(), mcplib.Description("URL to check")),
		),
		handleCategoryScan(dir, domain.CategoryASLCompatibility),
	)
}

// newService wires the validation engine the same way the CLI does.
func newService(dir string) (*application.ValidateService, error) {
	cfg, err := config.New().Load(dir)
	if err != nil {
		return nil, err
	}
	source := fetcher.New(cfg.FetchTimeout.Std(), 5*time.Second, cfg.MaxContentBytes)
	return application.NewValidateService(source, store.NewFile(dir), enrich.FromEnv(), cfg), nil
}

func requestToTarget(request mcplib.CallToolRequest) (domain.Target, error) {
	args := request.GetArguments()
	if html, _ := args["html"].(string); html != "" {
		return domain.TargetRawHTML(html), nil
	}
	if url, _ := args["url"].(string); url != "" {
		return domain.TargetURL(url), nil
	}
	return domain.Target{}, fmt.Errorf("either url or html is required")
}

// deafFirstArg reads the deaf_first flag, defaulting to the full
// checker set.
func deafFirstArg(request mcplib.CallToolRequest) bool {
	if v, ok := request.GetArguments()["deaf_first"].(bool); ok {
		return v
	}
	return true
}

func tenantArg(request mcplib.CallToolRequest) string {
	tenant, _ := request.GetArguments()["tenant"].(string)
	return tenant
}

func handleValidate(dir string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		target, err := requestToTarget(request)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		svc, err := newService(dir)
		if err != nil {
			return errorResult(fmt.Sprintf("engine setup failed: %v", err)), nil
		}

		result, err := svc.Validate(ctx, domain.ValidationRequest{
			Target:        target,
			DeafFirstMode: deafFirstArg(request),
			Tenant:        tenantArg(request),
		})
		if err != nil {
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleValidateBatch(dir string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		rawURLs, err := request.RequireString("urls")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		var reqs []domain.ValidationRequest
		for _, u := range strings.Split(rawURLs, ",") {
			u = strings.TrimSpace(u)
			if u == "" {
				continue
			}
			reqs = append(reqs, domain.ValidationRequest{
				Target:        domain.TargetURL(u),
				DeafFirstMode: deafFirstArg(request),
				Tenant:        tenantArg(request),
			})
		}
		if len(reqs) == 0 {
			return errorResult("urls must contain at least one URL"), nil
		}

		svc, err := newService(dir)
		if err != nil {
			return errorResult(fmt.Sprintf("engine setup failed: %v", err)), nil
		}

		batch, err := svc.ValidateBatch(ctx, reqs)
		if err != nil {
			return errorResult(fmt.Sprintf("batch validation failed: %v", err)), nil
		}
		return jsonResult(batch)
	}
}

func handleGetResult(dir string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		svc, err := newService(dir)
		if err != nil {
			return errorResult(fmt.Sprintf("engine setup failed: %v", err)), nil
		}

		result, err := svc.GetResult(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return errorResult(fmt.Sprintf("no result with id %s", id)), nil
			}
			return errorResult(fmt.Sprintf("lookup failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleDeafScore(dir string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		result, errRes := validateURL(ctx, dir, url)
		if errRes != nil {
			return errRes, nil
		}

		view := map[string]any{
			"url":        url,
			"deaf_score": result.OverallScore,
			"passed":     result.Passed,
		}
		for _, category := range domain.Categories {
			if checker, ok := result.Breakdown[category]; ok && checker.Completed {
				view[string(category)] = checker.Score
			}
		}
		return jsonResult(view)
	}
}

// handleCategoryScan runs a full validation and projects out one
// category's findings, the shape the focused scan tools return.
func handleCategoryScan(dir string, category domain.Category) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		result, errRes := validateURL(ctx, dir, url)
		if errRes != nil {
			return errRes, nil
		}

		checker, ok := result.Breakdown[category]
		if !ok || !checker.Completed {
			return errorResult(fmt.Sprintf("the %s check did not complete", category)), nil
		}

		return jsonResult(map[string]any{
			"url":      url,
			"category": category,
			"score":    checker.Score,
			"findings": checker.Findings,
		})
	}
}

func validateURL(ctx context.Context, dir, url string) (*domain.ValidationResult, *mcplib.CallToolResult) {
	svc, err := newService(dir)
	if err != nil {
		return nil, errorResult(fmt.Sprintf("engine setup failed: %v", err))
	}

	result, err := svc.Validate(ctx, domain.ValidationRequest{
		Target:        domain.TargetURL(url),
		DeafFirstMode: true,
	})
	if err != nil {
		return nil, errorResult(fmt.Sprintf("validation failed: %v", err))
	}
	if result.Status == domain.StatusFailed {
		return nil, errorResult(fmt.Sprintf("validation did not complete: %s", result.ErrorReason))
	}
	return result, nil
}

// jsonResult marshals v and wraps it as tool output.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
