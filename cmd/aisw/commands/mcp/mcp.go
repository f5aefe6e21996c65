// Package mcp provides the mcp command group for managing MCP server configurations.
package mcp

import "github.com/spf13/cobra"

// Cmd is the mcp command that groups all MCP-related subcommands.
var Cmd = &cobra.Command{
	Use:   "mcp",
	Short: "Manage MCP server configurations",
	Long: `Manage Model Context Protocol (MCP) server configurations across engines.

MCP servers extend AI coding assistants with additional tools and capabilities.
This command group adds, removes, lists and edits the servers configured in
Claude Code, Codex CLI and Gemini CLI, translating one server definition into
each engine's own file format.`,
	Example: `  # Add a local MCP server to every detected engine
  aisw mcp add github -- npx -y @modelcontextprotocol/server-github

  # Add a remote server
  aisw mcp add api-gateway --url https://api.example.com/mcp

  # List all configured MCP servers
  aisw mcp list

  # Copy Claude's servers to Gemini
  aisw mcp export --engine claude -o servers.json
  aisw mcp import servers.json --engine gemini

  See Also:
    aisw mcp add      - Add a new MCP server
    aisw mcp list     - List configured servers
    aisw mcp show     - Show server details
    aisw mcp edit     - Edit a server in $EDITOR
    aisw mcp env      - Edit environment variables and headers
    aisw mcp args     - Edit command arguments
    aisw mcp remove   - Remove a server
    aisw mcp import   - Import servers from a file
    aisw mcp export   - Export servers to a file`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}
