// Package mcpserver exposes combfino's similarity analysis as a single
// MCP tool, analyze_question, so an IDE or agent integration can ask
// "how suspicious is this submission" without shelling out to the CLI.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server and registers combfino's one analysis tool.
type Server struct {
	server *mcp.Server
}

// NewServer creates an MCP server with analyze_question registered.
func NewServer(version string) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "combfino",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server}
	s.registerTools()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_question",
		Description: describeAnalyzeQuestion(),
	}, handleAnalyzeQuestion)
}
