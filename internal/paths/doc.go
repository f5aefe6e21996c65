// Package paths resolves where each supported engine keeps its
// configuration, and where aisw keeps its own.
//
// The package wraps github.com/adrg/xdg for aisw's own directories and
// honors the engines' relocation variables:
//
//	| Engine | Config dir                     | MCP servers                  |
//	|--------|--------------------------------|------------------------------|
//	| claude | ~/.claude ($CLAUDE_CONFIG_DIR) | ~/.claude.json               |
//	| codex  | ~/.codex ($CODEX_HOME)         | <dir>/config.toml            |
//	| gemini | ~/.gemini                      | ~/.gemini/settings.json      |
//
// When CLAUDE_CONFIG_DIR is set, .claude.json lives inside it.
//
// Functions that accept an engine return empty strings for unknown
// engines. Use [ValidEngine] to check first.
package paths
