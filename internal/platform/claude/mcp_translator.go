package claude

import (
	"encoding/json"

	"github.com/thoreinstein/aisw/internal/mcp"
)

// MCPTranslator converts between canonical specs and Claude Code entries.
//
// Claude Code's entry format is the canonical serialized form, so the
// translation is the identity apart from "type" inference for entries
// written by older releases that omitted it.
type MCPTranslator struct{}

// NewMCPTranslator creates a new Claude Code MCP translator.
func NewMCPTranslator() *MCPTranslator {
	return &MCPTranslator{}
}

// ToEngine encodes spec as a Claude Code entry.
func (t *MCPTranslator) ToEngine(spec *mcp.Spec) (json.RawMessage, error) {
	return spec.MarshalJSON()
}

// FromEngine decodes a Claude Code entry.
func (t *MCPTranslator) FromEngine(entry json.RawMessage) (*mcp.Spec, error) {
	return mcp.ParseSpec(entry)
}
