package doctor

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/thoreinstein/aisw/internal/platform"
	"github.com/thoreinstein/aisw/internal/redact"
)

// ServerCheck reports MCP server entries that aisw cannot read. Such
// entries are skipped by every command and left untouched on disk.
type ServerCheck struct {
	registry *platform.Registry
}

var _ Check = (*ServerCheck)(nil)

// NewServerCheck creates a new MCP server check.
func NewServerCheck(r *platform.Registry) *ServerCheck {
	return &ServerCheck{registry: r}
}

// Name returns the unique identifier for this check.
func (c *ServerCheck) Name() string {
	return "mcp-servers"
}

// Category returns the grouping for this check.
func (c *ServerCheck) Category() string {
	return "mcp"
}

// Run lists the servers of every engine.
func (c *ServerCheck) Run(ctx context.Context) *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	counts := make(map[string]any)
	var unreadable []map[string]any
	var failures []string
	total := 0

	for _, e := range c.registry.All() {
		mgr, err := c.registry.Servers(e.Name())
		if err != nil {
			failures = append(failures, err.Error())
			continue
		}
		servers, err := mgr.List(ctx)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", e.Name(), err))
			continue
		}
		problems, err := mgr.Unreadable(ctx)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", e.Name(), err))
			continue
		}
		counts[e.Name()] = len(servers)
		total += len(servers)
		for _, id := range slices.Sorted(maps.Keys(problems)) {
			unreadable = append(unreadable, map[string]any{
				"engine": e.Name(),
				"server": id,
				// Decode errors may quote the offending value.
				"problem": redact.Message(problems[id].Error()),
			})
		}
	}

	result.Details = map[string]any{"servers": counts, "total": total}
	switch {
	case len(failures) > 0:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("could not read servers of %d engine(s)", len(failures))
		result.Details["failures"] = failures
		result.FixHint = "see the config-syntax check for parse errors"
	case len(unreadable) > 0:
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%d server entr(ies) cannot be read and are ignored", len(unreadable))
		result.Details["unreadable"] = unreadable
		result.FixHint = "fix or remove the entries with: aisw mcp edit <id> --engine <engine>"
	default:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("%d server(s) configured", total)
	}
	return result
}
