// Package parser reads and writes MCP server bundles: JSON documents of the
// form {"mcpServers": {"<id>": {...}}} used to import and export servers
// between engines and machines.
package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/aisw/internal/mcp"
	"github.com/thoreinstein/aisw/pkg/fileutil"
)

// ServersKey is the top-level key holding the servers of a bundle.
const ServersKey = "mcpServers"

// ErrInvalidJSON indicates the input is not a JSON object.
var ErrInvalidJSON = errors.New("invalid JSON")

// ParseError wraps errors that occur during parsing with path context.
type ParseError struct {
	Path     string
	ServerID string
	Err      error
}

func (e *ParseError) Error() string {
	target := "MCP bundle"
	if e.Path != "" {
		target += " " + e.Path
	}
	if e.ServerID != "" {
		return fmt.Sprintf("parsing %s: server %q: %v", target, e.ServerID, e.Err)
	}
	return fmt.Sprintf("parsing %s: %v", target, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type bundle struct {
	Servers map[string]*mcp.Spec `json:"mcpServers"`
}

// Parse reads a bundle into drafts keyed by server id. Servers are not
// validated, so every problem can be reported at once by the validator.
//
// A document without the "mcpServers" key is read as a bare map of servers.
// Empty input yields an empty result.
func Parse(data []byte) (map[string]*mcp.Draft, error) {
	drafts := make(map[string]*mcp.Draft)
	if len(bytes.TrimSpace(data)) == 0 {
		return drafts, nil
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Err: errors.Wrap(ErrInvalidJSON, err.Error())}
	}

	servers := doc
	if raw, ok := doc[ServersKey]; ok {
		servers = nil
		if err := json.Unmarshal(raw, &servers); err != nil {
			return nil, &ParseError{Err: errors.Wrapf(ErrInvalidJSON, "%s: %v", ServersKey, err)}
		}
	}

	for id, raw := range servers {
		d, err := mcp.DecodeDraft(raw)
		if err != nil {
			return nil, &ParseError{ServerID: id, Err: err}
		}
		drafts[id] = d
	}
	return drafts, nil
}

// ParseFile reads a bundle from path. A missing file is an error matching
// fs.ErrNotExist.
func ParseFile(path string) (map[string]*mcp.Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = fs.ErrNotExist
		}
		return nil, &ParseError{Path: path, Err: err}
	}

	drafts, err := Parse(data)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
			return nil, pe
		}
		return nil, &ParseError{Path: path, Err: err}
	}
	return drafts, nil
}

// Write renders servers as an indented bundle with ids in sorted order.
func Write(servers map[string]*mcp.Spec) ([]byte, error) {
	if servers == nil {
		servers = map[string]*mcp.Spec{}
	}

	data, err := json.MarshalIndent(bundle{Servers: servers}, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshaling MCP bundle")
	}
	return append(data, '\n'), nil
}

// WriteFile writes servers to path atomically with mode 0600, creating
// parent directories. Bundles carry env values and headers verbatim.
func WriteFile(path string, servers map[string]*mcp.Spec) error {
	data, err := Write(servers)
	if err != nil {
		return &ParseError{Path: path, Err: err}
	}
	if err := fileutil.WriteFile(path, data, 0o600); err != nil {
		return &ParseError{Path: path, Err: err}
	}
	return nil
}
