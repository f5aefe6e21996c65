package doctor

import (
	"context"
	"fmt"

	"github.com/thoreinstein/aisw/internal/fragment"
	"github.com/thoreinstein/aisw/internal/platform"
	"github.com/thoreinstein/aisw/internal/preset"
	"github.com/thoreinstein/aisw/internal/redact"
)

// ProviderCheck inspects the live Codex provider.
type ProviderCheck struct {
	registry *platform.Registry
}

var _ Check = (*ProviderCheck)(nil)

// NewProviderCheck creates a new provider check.
func NewProviderCheck(r *platform.Registry) *ProviderCheck {
	return &ProviderCheck{registry: r}
}

// Name returns the unique identifier for this check.
func (c *ProviderCheck) Name() string {
	return "codex-provider"
}

// Category returns the grouping for this check.
func (c *ProviderCheck) Category() string {
	return "provider"
}

// Run reads config.toml and auth.json and reports the matching preset.
func (c *ProviderCheck) Run(ctx context.Context) *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	if platform.Detect(c.registry.Codex()).Status == platform.StatusNotInstalled {
		result.Status = SeverityInfo
		result.Message = "codex is not installed"
		return result
	}

	live, err := c.registry.Codex().Providers().Current(ctx)
	if err != nil {
		result.Status = SeverityError
		result.Message = redact.Message(err.Error())
		result.FixHint = "run: aisw provider apply <preset>"
		return result
	}

	result.Details = map[string]any{
		"base_url": redact.URL(live.BaseURL),
		"model":    live.Model,
	}
	if live.APIKey != "" {
		result.Details["api_key"] = redact.Value(live.APIKey)
	}
	if err := fragment.Validate(live.Fragment); err != nil {
		result.Status = SeverityError
		result.Message = "provider settings do not parse: " + err.Error()
		return result
	}

	p, ok := preset.MatchBaseURL(live.BaseURL)
	switch {
	case ok:
		result.Details["preset"] = p.ID
		if live.BaseURL != "" && live.APIKey == "" {
			result.Status = SeverityWarning
			result.Message = fmt.Sprintf("provider %s has no API key in auth.json", p.ID)
			result.FixHint = fmt.Sprintf("run: aisw provider apply %s --api-key <key>", p.ID)
			return result
		}
		result.Status = SeverityPass
		result.Message = "using preset " + p.ID
	default:
		result.Status = SeverityInfo
		result.Message = "using a custom endpoint " + redact.URL(live.BaseURL)
	}
	return result
}
