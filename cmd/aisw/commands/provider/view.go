package provider

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/fatih/color"

	"github.com/thoreinstein/aisw/internal/credential"
	"github.com/thoreinstein/aisw/internal/fragment"
	"github.com/thoreinstein/aisw/internal/preset"
	"github.com/thoreinstein/aisw/internal/redact"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	labelColor  = color.New(color.Bold)
	dimColor    = color.New(color.FgHiBlack)
)

// presetView is the structured form of a preset.
type presetView struct {
	ID                 string            `json:"id" yaml:"id"`
	Name               string            `json:"name" yaml:"name"`
	Category           preset.Category   `json:"category" yaml:"category"`
	BaseURL            string            `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty"`
	Model              string            `json:"model,omitempty" yaml:"model,omitempty"`
	WebsiteURL         string            `json:"websiteUrl,omitempty" yaml:"websiteUrl,omitempty"`
	APIKeyURL          string            `json:"apiKeyUrl,omitempty" yaml:"apiKeyUrl,omitempty"`
	Official           bool              `json:"official,omitempty" yaml:"official,omitempty"`
	Partner            bool              `json:"partner,omitempty" yaml:"partner,omitempty"`
	Template           bool              `json:"template,omitempty" yaml:"template,omitempty"`
	EndpointCandidates []string          `json:"endpointCandidates,omitempty" yaml:"endpointCandidates,omitempty"`
	Credential         map[string]string `json:"credential,omitempty" yaml:"credential,omitempty"`
	Config             string            `json:"config,omitempty" yaml:"config,omitempty"`
}

func newPresetView(p *preset.Preset, detail bool) presetView {
	v := presetView{
		ID:         p.ID,
		Name:       p.DisplayName,
		Category:   p.Category,
		BaseURL:    fragment.ExtractBaseURL(p.Config),
		Model:      fragment.ExtractModel(p.Config),
		WebsiteURL: p.WebsiteURL,
		APIKeyURL:  p.APIKeyURL,
		Official:   p.IsOfficial,
		Partner:    p.IsPartner,
		Template:   p.IsCustomTemplate,
	}
	if detail {
		v.EndpointCandidates = p.EndpointCandidates
		v.Credential = redact.Pairs(p.Credential)
		v.Config = p.Config
	}
	return v
}

// badges returns the short markers shown next to a preset name.
func badges(p *preset.Preset) string {
	var out []string
	if p.IsOfficial {
		out = append(out, "official")
	}
	if p.IsPartner {
		out = append(out, "partner")
	}
	if p.IsCustomTemplate {
		out = append(out, "template")
	}
	if len(out) == 0 {
		return ""
	}
	return "[" + strings.Join(out, ", ") + "]"
}

// endpoint describes where a fragment sends requests.
func endpoint(frag string) string {
	if u := fragment.ExtractBaseURL(frag); u != "" {
		return u
	}
	return "engine default"
}

// writeCredential prints credential keys in sorted order with secrets masked.
func writeCredential(w io.Writer, payload credential.Payload, showSecrets bool) {
	if len(payload) == 0 {
		fmt.Fprintf(w, "  %s\n", dimColor.Sprint("(no credential)"))
		return
	}
	for _, k := range slices.Sorted(maps.Keys(payload)) {
		v := payload[k]
		switch {
		case v == "":
			v = dimColor.Sprint("(empty)")
		case !showSecrets:
			v = redact.Field(k, v)
		}
		fmt.Fprintf(w, "  %s = %s\n", k, v)
	}
}

// writeFragment prints a config fragment indented, or a note when empty.
func writeFragment(w io.Writer, frag string) {
	if strings.TrimSpace(frag) == "" {
		fmt.Fprintf(w, "  %s\n", dimColor.Sprint("(none, Codex uses its built-in provider)"))
		return
	}
	for _, line := range strings.Split(strings.TrimRight(frag, "\n"), "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
}

// previewPreset renders the picker preview for p.
func previewPreset(p *preset.Preset) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s)\n", p.DisplayName, p.ID)
	fmt.Fprintf(&sb, "Category: %s\n", categoryTitle(p.Category))
	fmt.Fprintf(&sb, "Endpoint: %s\n", endpoint(p.Config))
	if p.APIKeyURL != "" {
		fmt.Fprintf(&sb, "API keys: %s\n", p.APIKeyURL)
	}
	if p.Config != "" {
		sb.WriteString("\n")
		sb.WriteString(p.Config)
	}
	return sb.String()
}
