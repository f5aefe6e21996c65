// Package codex reads and writes the Codex CLI configuration.
//
// Codex keeps everything in one directory ($CODEX_HOME or ~/.codex):
// auth.json holds the provider credential and config.toml holds both the
// provider fragment (model, model_provider, [model_providers.*]) and the
// MCP server tables ([mcp_servers.<id>]). [MCPManager] owns the server
// tables and [ProviderManager] owns the rest of the file; each carries the
// other's sections through its writes verbatim.
package codex
