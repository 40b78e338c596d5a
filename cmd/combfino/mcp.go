package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/panbanda/combfino/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the similarity analysis as an MCP tool over stdio",
	Long: `Starts an MCP server over stdio transport exposing a single tool,
analyze_question, so an LLM assistant can run the same analysis as
"combfino analyze" without shelling out to the CLI.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "combfino": {
        "command": "combfino",
        "args": ["mcp"]
      }
    }
  }`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	server := mcpserver.NewServer(version)
	return server.Run(context.Background())
}
