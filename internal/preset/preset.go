// Package preset holds the built-in catalog of Codex provider presets.
//
// The catalog is built once when the package is initialized and is never
// modified afterwards. Every accessor hands out deep copies, so callers may
// edit what they receive without affecting other callers.
package preset

import (
	"slices"

	"github.com/thoreinstein/aisw/internal/credential"
	"github.com/thoreinstein/aisw/internal/fragment"
)

// Category groups presets for display.
type Category string

// Preset categories in display order.
const (
	CategoryOfficial         Category = "official"
	CategoryRegionalOfficial Category = "regional-official"
	CategoryAggregator       Category = "aggregator"
	CategoryThirdParty       Category = "third-party"
	CategoryCustom           Category = "custom"
)

// categoryLabels maps categories to their display label keys.
var categoryLabels = map[Category]string{
	CategoryOfficial:         "providers.category.official",
	CategoryRegionalOfficial: "providers.category.regionalOfficial",
	CategoryAggregator:       "providers.category.aggregator",
	CategoryThirdParty:       "providers.category.thirdParty",
	CategoryCustom:           "providers.category.custom",
}

// Categories returns every known category in display order.
func Categories() []Category {
	return []Category{
		CategoryOfficial,
		CategoryRegionalOfficial,
		CategoryAggregator,
		CategoryThirdParty,
		CategoryCustom,
	}
}

// CategoryLabel returns the label key for a category.
// Unknown categories are returned as their own label key.
func CategoryLabel(c Category) string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Preset is a provider template offered as a starting configuration.
type Preset struct {
	// ID is the stable unique identifier.
	ID string `json:"id" yaml:"id"`

	// DisplayName is the human label or a label key.
	DisplayName string `json:"displayName" yaml:"displayName"`

	// WebsiteURL and APIKeyURL are reference links only.
	WebsiteURL string `json:"websiteUrl,omitempty" yaml:"websiteUrl,omitempty"`
	APIKeyURL  string `json:"apiKeyUrl,omitempty" yaml:"apiKeyUrl,omitempty"`

	// Credential is the auth.json template. Values may be empty placeholders.
	Credential credential.Payload `json:"credential" yaml:"credential"`

	// Config is the config.toml fragment template. Empty means the engine
	// default is used with no override.
	Config string `json:"config" yaml:"config"`

	Category Category `json:"category" yaml:"category"`

	IsOfficial       bool `json:"isOfficial,omitempty" yaml:"isOfficial,omitempty"`
	IsPartner        bool `json:"isPartner,omitempty" yaml:"isPartner,omitempty"`
	IsCustomTemplate bool `json:"isCustomTemplate,omitempty" yaml:"isCustomTemplate,omitempty"`

	// EndpointCandidates lists known-good base URLs in preference order.
	EndpointCandidates []string `json:"endpointCandidates,omitempty" yaml:"endpointCandidates,omitempty"`
}

// Clone returns a deep copy of the preset.
func (p *Preset) Clone() *Preset {
	if p == nil {
		return nil
	}
	c := *p
	c.Credential = p.Credential.Clone()
	c.EndpointCandidates = slices.Clone(p.EndpointCandidates)
	return &c
}

// Overrides are user-supplied values applied on top of a preset template.
// Empty fields leave the template value in place.
type Overrides struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Materialize produces the credential payload and config fragment to
// persist for this preset. The preset itself is not modified.
func (p *Preset) Materialize(o Overrides) (credential.Payload, string) {
	cred := p.Credential.Clone()
	if cred == nil {
		cred = credential.Payload{}
	}
	if o.APIKey != "" || len(cred) > 0 {
		cred = credential.Merge(cred, credential.Generate(o.APIKey))
	}

	cfg := p.Config
	if o.BaseURL != "" {
		cfg = fragment.SetBaseURL(cfg, o.BaseURL)
	}
	if o.Model != "" {
		cfg = fragment.SetModel(cfg, o.Model)
	}
	return cred, cfg
}
