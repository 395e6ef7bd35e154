package main

import (
	"context"
	"sync/atomic"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/justinmccuistion/orca-ai-mcp/core"
	"github.com/justinmccuistion/orca-ai-mcp/pkg/config"
	"github.com/justinmccuistion/orca-ai-mcp/pkg/hunt"
	"github.com/justinmccuistion/orca-ai-mcp/pkg/tools/orca"
)

// binding is a resolved configuration together with the API client bound
// to it. The pair is replaced as a whole, never mutated.
type binding struct {
	cfg    *config.Config
	client *hunt.Client
}

// Adapter owns the MCP server and the cached configuration/client pair.
// Configuration is re-resolved on every tools/list and at the start of
// every tool call; the cache only saves rebuilding an identical client.
type Adapter struct {
	server *server.MCPServer
	bound  atomic.Pointer[binding]
}

// NewAdapter builds the MCP server and registers both tools. Whether the
// hunt tool is actually advertised is decided per request by toolFilter.
func NewAdapter() *Adapter {
	a := &Adapter{}
	a.server = server.NewMCPServer(
		"Orca HUNT MCP Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithLogging(),
		server.WithToolFilter(a.toolFilter),
	)

	a.addTool(orca.NewContextTool())
	a.addTool(orca.NewHuntTool(a.bind))
	return a
}

func (a *Adapter) addTool(tool core.Tool) {
	a.server.AddTool(tool.Handle(), tool.Handler)
}

// Serve runs the stdio transport until the connection closes.
func (a *Adapter) Serve() error {
	return server.ServeStdio(a.server)
}

// bind re-resolves the configuration and rebinds the API client when the
// settings changed. Two concurrent callers may each rebind; both produce
// equivalent clients from the same sources, so last write wins.
func (a *Adapter) bind() (*config.Config, *hunt.Client, error) {
	cfg, err := config.Resolve()
	if err != nil {
		return nil, nil, err
	}
	if cur := a.bound.Load(); cur != nil && *cur.cfg == *cfg {
		return cur.cfg, cur.client, nil
	}

	b := &binding{cfg: cfg, client: hunt.NewClient(cfg)}
	a.bound.Store(b)
	return b.cfg, b.client, nil
}

// toolFilter implements the operation catalog: the context tool is always
// advertised, the hunt tool only with a valid configuration that has hunt
// enabled.
func (a *Adapter) toolFilter(ctx context.Context, tools []mcp.Tool) []mcp.Tool {
	cfg, _, err := a.bind()
	huntVisible := err == nil && cfg.HuntEnabled

	filtered := make([]mcp.Tool, 0, len(tools))
	for _, tool := range tools {
		if tool.Name == orca.HuntToolName && !huntVisible {
			continue
		}
		filtered = append(filtered, tool)
	}
	return filtered
}
