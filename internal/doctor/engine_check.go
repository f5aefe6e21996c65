package doctor

import (
	"context"
	"fmt"

	"github.com/thoreinstein/aisw/internal/platform"
)

// EngineCheck reports which engines are set up on this machine.
type EngineCheck struct {
	registry *platform.Registry
}

var _ Check = (*EngineCheck)(nil)

// NewEngineCheck creates a new engine detection check.
func NewEngineCheck(r *platform.Registry) *EngineCheck {
	return &EngineCheck{registry: r}
}

// Name returns the unique identifier for this check.
func (c *EngineCheck) Name() string {
	return "engine-detection"
}

// Category returns the grouping for this check.
func (c *EngineCheck) Category() string {
	return "engine"
}

// Run executes the engine detection check and returns its result.
func (c *EngineCheck) Run(context.Context) *CheckResult {
	results := c.registry.Detect()

	engines := make(map[string]any)
	var installed, notInstalled, partial int
	for _, r := range results {
		engines[r.Name] = map[string]any{
			"status":        string(r.Status),
			"global_config": r.GlobalConfig,
			"mcp_config":    r.MCPConfig,
		}
		switch r.Status {
		case platform.StatusInstalled:
			installed++
		case platform.StatusNotInstalled:
			notInstalled++
		case platform.StatusPartial:
			partial++
		}
	}

	details := map[string]any{
		"engines":       engines,
		"installed":     installed,
		"not_installed": notInstalled,
		"partial":       partial,
		"total":         len(results),
	}

	result := &CheckResult{Name: c.Name(), Category: c.Category(), Details: details}
	switch {
	case installed == 0 && partial == 0:
		result.Status = SeverityWarning
		result.Message = "no engines detected; aisw has nothing to manage"
		result.FixHint = "install Claude Code, Codex, or Gemini CLI, or set engines.<name>.config_dir"
	case partial > 0:
		// A missing MCP file is normal until the first server is added.
		result.Status = SeverityInfo
		result.Message = fmt.Sprintf("%d engine(s) installed, %d without a config file yet", installed, partial)
	default:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("%d engine(s) installed", installed)
		if notInstalled > 0 {
			result.Message += fmt.Sprintf(", %d not configured", notInstalled)
		}
	}
	return result
}
