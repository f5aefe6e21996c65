package codex

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/aisw/internal/fragment"
	"github.com/thoreinstein/aisw/pkg/fileutil"
)

// Default file modes.
const (
	configPerm os.FileMode = 0o644
	authPerm   os.FileMode = 0o600
)

// serverTables is the part of config.toml decoded by the MCP manager.
type serverTables struct {
	MCPServers map[string]map[string]any `toml:"mcp_servers"`
}

// readText returns the file at path, or "" when it does not exist.
func readText(path string) (string, error) {
	if path == "" {
		return "", errors.New("codex config path not configured")
	}
	data, err := fileutil.ReadFileIfExists(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", path)
	}
	return string(data), nil
}

// decodeServers parses the whole config and returns its server tables.
func decodeServers(text string) (map[string]map[string]any, error) {
	var doc serverTables
	if err := toml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, errors.Wrap(err, "parsing config.toml")
	}
	if doc.MCPServers == nil {
		doc.MCPServers = make(map[string]map[string]any)
	}
	return doc.MCPServers, nil
}

// renderServers encodes the server tables. No servers renders as "".
func renderServers(servers map[string]map[string]any) (string, error) {
	if len(servers) == 0 {
		return "", nil
	}
	out, err := toml.Marshal(serverTables{MCPServers: servers})
	if err != nil {
		return "", errors.Wrap(err, "encoding mcp_servers")
	}
	return string(out), nil
}

// carried returns the sections of text that belong to neither the provider
// fragment nor a caller-supplied replacement.
func carried(text string, prefixes ...string) string {
	parts := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		parts = append(parts, fragment.ExtractSections(text, p))
	}
	return fragment.Join(parts...)
}

// stripped removes every section under prefixes from text.
func stripped(text string, prefixes ...string) string {
	for _, p := range prefixes {
		text = fragment.StripSections(text, p)
	}
	return text
}

// writeConfig validates text as TOML and writes it to path, keeping the
// existing file mode.
func writeConfig(path, text string) error {
	if err := fragment.Validate(text); err != nil {
		return errors.Wrap(err, "refusing to write invalid config.toml")
	}
	perm := configPerm
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	return errors.Wrap(fileutil.WriteFile(path, []byte(text), perm), "writing config.toml")
}
