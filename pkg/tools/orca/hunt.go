package orca

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cast"

	"github.com/justinmccuistion/orca-ai-mcp/core"
	"github.com/justinmccuistion/orca-ai-mcp/pkg/config"
	"github.com/justinmccuistion/orca-ai-mcp/pkg/hunt"
)

// HuntToolName identifies the search tool. It is only advertised when a
// valid configuration with hunt enabled is active.
const HuntToolName = "orca_hunt"

// Binder resolves the active configuration and returns an API client bound
// to it. The adapter re-runs it at the start of every call, so the tool
// never holds on to stale credentials.
type Binder func() (*config.Config, *hunt.Client, error)

// HuntTool searches people, companies and other entities across the Orca
// datasets.
type HuntTool struct {
	bind   Binder
	handle mcp.Tool
}

// NewHuntTool creates the search tool on top of the given binder.
func NewHuntTool(bind Binder) core.Tool {
	t := &HuntTool{bind: bind}
	t.handle = mcp.NewTool(
		HuntToolName,
		mcp.WithDescription("Searches the Orca HUNT datasets for people, companies and other entities. Returns up to 100 matched records per page."),
		mcp.WithString(
			"query",
			mcp.Required(),
			mcp.Description("The name or term to search for."),
		),
		mcp.WithString(
			"nextToken",
			mcp.Description("Pagination token from a previous result, to fetch the next page."),
		),
	)
	return t
}

// Handle returns the tool's definition.
func (t *HuntTool) Handle() mcp.Tool {
	return t.handle
}

// Handler validates the arguments, re-binds the client and runs the search.
// Every failure becomes a tool-result error so the calling agent always
// gets a textual explanation.
func (t *HuntTool) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, client, err := t.bind()
	if err != nil {
		return mcp.NewToolResultError("not_configured: " + Guidance()), nil
	}
	if !cfg.HuntEnabled {
		return mcp.NewToolResultError("hunt_disabled: the hunt tool is disabled by configuration (tools.hunt / ORCA_TOOLS_HUNT)"), nil
	}

	args := request.GetArguments()
	query := strings.TrimSpace(cast.ToString(args["query"]))
	if query == "" {
		return mcp.NewToolResultError("invalid_argument: query must be a non-empty string"), nil
	}
	nextToken := cast.ToString(args["nextToken"])

	result, err := client.Hunt(ctx, query, nextToken)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("hunt failed: %v", err)), nil
	}
	return mcp.NewToolResultText(formatResult(result)), nil
}
