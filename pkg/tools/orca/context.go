// Package orca implements the MCP tools backed by the Orca HUNT API.
package orca

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/justinmccuistion/orca-ai-mcp/core"
	"github.com/justinmccuistion/orca-ai-mcp/pkg/config"
)

// ContextToolName identifies the context-detection tool, the one tool that
// is always advertised.
const ContextToolName = "orca_context"

// ContextTool reports whether Orca is configured and, when it is, which
// upstream settings are active.
type ContextTool struct {
	handle mcp.Tool
}

// NewContextTool creates the context-detection tool. It takes no arguments.
func NewContextTool() core.Tool {
	t := &ContextTool{}
	t.handle = mcp.NewTool(
		ContextToolName,
		mcp.WithDescription("Detects whether Orca is configured. Returns the active upstream settings, or setup guidance when no valid configuration is found."),
	)
	return t
}

// Handle returns the tool's definition.
func (t *ContextTool) Handle() mcp.Tool {
	return t.handle
}

// Handler re-resolves the configuration on every call and renders either
// the active settings or guidance for setting them up.
func (t *ContextTool) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := config.Resolve()
	if err != nil {
		return mcp.NewToolResultText(Guidance()), nil
	}

	var sb strings.Builder
	sb.WriteString("Orca is configured.\n\n")
	fmt.Fprintf(&sb, "API URL: %s\n", cfg.APIURL)
	fmt.Fprintf(&sb, "Timeout: %dms\n", cfg.Timeout)
	fmt.Fprintf(&sb, "Retries: %d\n", cfg.Retries)
	fmt.Fprintf(&sb, "Hunt enabled: %v\n", cfg.HuntEnabled)
	return mcp.NewToolResultText(sb.String()), nil
}

// Guidance explains how to configure Orca. The wording distinguishes a
// present-but-invalid config file from a missing source, because a present
// file blocks the environment entirely.
func Guidance() string {
	if config.FileExists() {
		return fmt.Sprintf(
			"Found %s in the working directory, but it is not a valid Orca configuration. "+
				"Fix or remove the file; while it is present, ORCA_* environment variables are ignored. "+
				"The file needs an apiToken of exactly 40 alphanumeric characters.",
			config.FileName,
		)
	}
	return "Orca is not configured. Set ORCA_API_TOKEN to your 40-character API token " +
		"(optionally ORCA_API_URL, ORCA_TIMEOUT, ORCA_RETRIES and ORCA_TOOLS_HUNT), " +
		"or create " + config.FileName + " in the working directory."
}
