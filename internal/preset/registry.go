package preset

import (
	"strings"

	"github.com/thoreinstein/aisw/internal/credential"
	"github.com/thoreinstein/aisw/internal/fragment"
)

// Placeholder values used by the custom template.
const (
	customProviderName = "custom"
	customBaseURL      = "https://your-api-endpoint.com/v1"
)

// registry is the process-wide catalog, ordered for display.
var registry = newRegistry(builtin())

type catalog struct {
	presets []*Preset
	byID    map[string]*Preset
}

func newRegistry(presets []*Preset) *catalog {
	c := &catalog{
		presets: presets,
		byID:    make(map[string]*Preset, len(presets)),
	}
	for _, p := range presets {
		if _, dup := c.byID[p.ID]; dup {
			panic("preset: duplicate id " + p.ID)
		}
		c.byID[p.ID] = p
	}
	return c
}

// ByID returns a copy of the preset with the given id.
func ByID(id string) (*Preset, bool) {
	p, ok := registry.byID[id]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// All returns copies of every preset in registry order.
func All() []*Preset {
	out := make([]*Preset, len(registry.presets))
	for i, p := range registry.presets {
		out[i] = p.Clone()
	}
	return out
}

// ByCategory returns copies of the presets in a category, in registry order.
func ByCategory(c Category) []*Preset {
	var out []*Preset
	for _, p := range registry.presets {
		if p.Category == c {
			out = append(out, p.Clone())
		}
	}
	return out
}

// IDs returns every preset id in registry order.
func IDs() []string {
	ids := make([]string, len(registry.presets))
	for i, p := range registry.presets {
		ids[i] = p.ID
	}
	return ids
}

// MatchBaseURL returns a copy of the preset whose endpoint is baseURL.
// The fragment's base_url and the endpoint candidates are compared without
// trailing slashes. An empty baseURL matches the official preset, which
// carries no provider table. The custom template never matches.
func MatchBaseURL(baseURL string) (*Preset, bool) {
	want := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	for _, p := range registry.presets {
		if p.IsCustomTemplate {
			continue
		}
		if want == "" {
			if p.Config == "" {
				return p.Clone(), true
			}
			continue
		}
		candidates := append([]string{fragment.ExtractBaseURL(p.Config)}, p.EndpointCandidates...)
		for _, c := range candidates {
			if c != "" && strings.TrimRight(c, "/") == want {
				return p.Clone(), true
			}
		}
	}
	return nil, false
}

func builtin() []*Preset {
	return []*Preset{
		{
			ID:          "codex-official",
			DisplayName: "OpenAI Official",
			WebsiteURL:  "https://chatgpt.com/codex",
			Credential:  credential.Payload{},
			Config:      "",
			Category:    CategoryOfficial,
			IsOfficial:  true,
		},
		{
			ID:          "azure-openai",
			DisplayName: "Azure OpenAI",
			WebsiteURL:  "https://learn.microsoft.com/azure/ai-services/openai/",
			APIKeyURL:   "https://portal.azure.com/",
			Credential:  credential.Generate(""),
			Config: fragment.Generate(
				"azure",
				"https://YOUR_RESOURCE_NAME.openai.azure.com/openai",
				fragment.DefaultModel,
			),
			Category:   CategoryOfficial,
			IsOfficial: true,
		},
		{
			ID:          "kimi",
			DisplayName: "Kimi (Moonshot)",
			WebsiteURL:  "https://platform.moonshot.cn",
			APIKeyURL:   "https://platform.moonshot.cn/console/api-keys",
			Credential:  credential.Generate(""),
			Config:      fragment.Generate("kimi", "https://api.moonshot.cn/v1", "kimi-k2-turbo-preview"),
			Category:    CategoryRegionalOfficial,
			IsOfficial:  true,
			EndpointCandidates: []string{
				"https://api.moonshot.cn/v1",
				"https://api.moonshot.ai/v1",
			},
		},
		{
			ID:          "openrouter",
			DisplayName: "OpenRouter",
			WebsiteURL:  "https://openrouter.ai",
			APIKeyURL:   "https://openrouter.ai/keys",
			Credential:  credential.Generate(""),
			Config:      fragment.Generate("openrouter", "https://openrouter.ai/api/v1", "openai/gpt-5-codex"),
			Category:    CategoryAggregator,
			EndpointCandidates: []string{
				"https://openrouter.ai/api/v1",
			},
		},
		{
			ID:          "aihubmix",
			DisplayName: "AiHubMix",
			WebsiteURL:  "https://aihubmix.com",
			Credential:  credential.Generate(""),
			Config:      fragment.Generate("aihubmix", "https://aihubmix.com/v1", fragment.DefaultModel),
			Category:    CategoryAggregator,
			EndpointCandidates: []string{
				"https://aihubmix.com/v1",
				"https://api.aihubmix.com/v1",
			},
		},
		{
			ID:          "packycode",
			DisplayName: "PackyCode",
			WebsiteURL:  "https://www.packyapi.com",
			Credential:  credential.Generate(""),
			Config:      fragment.Generate("packycode", "https://codex-api.packycode.com/v1", fragment.DefaultModel),
			Category:    CategoryThirdParty,
			IsPartner:   true,
			EndpointCandidates: []string{
				"https://codex-api.packycode.com/v1",
				"https://codex-api-hk-cn2.packycode.com/v1",
			},
		},
		{
			ID:               "custom",
			DisplayName:      "Custom",
			Credential:       credential.Generate(""),
			Config:           fragment.Generate(customProviderName, customBaseURL, fragment.DefaultModel),
			Category:         CategoryCustom,
			IsCustomTemplate: true,
		},
	}
}
