// Package claude reads and writes the MCP servers of Claude Code.
//
// Claude Code keeps user-level servers under the "mcpServers" member of
// ~/.claude.json (or $CLAUDE_CONFIG_DIR/.claude.json), local servers under
// "projects.<abs path>.mcpServers" of the same file, and project servers in
// <project>/.mcp.json. Entries use the canonical shape directly:
//
//	{"type": "stdio", "command": "npx", "args": ["-y", "pkg"], "env": {...}}
//	{"type": "http", "url": "https://...", "headers": {...}}
//
// The state file also holds session history, OAuth state and onboarding
// flags, so [MCPManager] edits it with JSON patches and never rewrites
// members it does not own.
package claude
