// Package core holds the interface every MCP tool in this server implements.
package core

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// Tool pairs an MCP tool declaration with its handler. Handlers report
// execution failures through the tool result, never as transport errors.
type Tool interface {
	Handle() mcp.Tool
	Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
}
