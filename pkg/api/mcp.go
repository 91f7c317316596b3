package api

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hidalgodigital/pedbot/pkg/kit"
)

const serverVersion = "1.3.0"

// NewMCPServer builds an MCP server exposing the bot's admin tools.
func NewMCPServer(s Services) *server.MCPServer {
	srv := server.NewMCPServer("pedbot", serverVersion)
	registerResolveMunicipio(srv, s)
	registerCountsSnapshot(srv, s)
	registerRefreshCounts(srv, s)
	return srv
}

func registerResolveMunicipio(srv *server.MCPServer, s Services) {
	tool := mcp.NewTool("resolve_municipio",
		mcp.WithDescription("Resolve free text to a canonical municipio of Hidalgo (exact or fuzzy) and report its current registration count."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The municipality name to resolve")),
	)

	kit.RegisterMCPTool(srv, tool, resolveEndpoint(s.Matcher, s.Counts), func(req mcp.CallToolRequest) (any, error) {
		text, _ := req.GetArguments()["text"].(string)
		return &resolveReq{Text: text}, nil
	})
}

func registerCountsSnapshot(srv *server.MCPServer, s Services) {
	tool := mcp.NewTool("counts_snapshot",
		mcp.WithDescription("Return the current count-by-municipio snapshot with its total row count."),
	)

	kit.RegisterMCPTool(srv, tool, snapshotEndpoint(s.Counts), func(mcp.CallToolRequest) (any, error) {
		return nil, nil
	})
}

func registerRefreshCounts(srv *server.MCPServer, s Services) {
	tool := mcp.NewTool("refresh_counts",
		mcp.WithDescription("Force a refresh of the count snapshot from the published sheet, bypassing the TTL."),
	)

	kit.RegisterMCPTool(srv, tool, refreshEndpoint(s.Counts), func(mcp.CallToolRequest) (any, error) {
		return nil, nil
	})
}
