package fragment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
)

// DefaultModel is the model used when a fragment does not name one.
const DefaultModel = "gpt-5-codex"

// fallbackKey replaces provider names that sanitize to nothing.
const fallbackKey = "custom"

// providerSectionPrefix is the table prefix holding provider definitions.
const providerSectionPrefix = "model_providers"

// Fixed settings emitted by Generate.
const (
	reasoningEffort = "high"
	wireAPI         = "responses"
)

var (
	// baseURLPattern matches a base_url assignment anywhere in the text.
	baseURLPattern = regexp.MustCompile(`\bbase_url\s*=\s*"([^"]*)"`)

	// modelLinePattern matches a whole-line model assignment.
	modelLinePattern = regexp.MustCompile(`^\s*model\s*=\s*"([^"]*)"`)
)

// SanitizeProviderKey converts a display name into a key-safe token.
//
// The name is lower-cased, every character outside [a-z0-9_] becomes an
// underscore, and leading/trailing underscores are trimmed. An empty result
// yields "custom". Applying it to its own output is a no-op.
func SanitizeProviderKey(name string) string {
	lower := strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	key := strings.Trim(b.String(), "_")
	if key == "" {
		return fallbackKey
	}
	return key
}

// Generate builds a complete provider fragment.
//
// An empty model selects DefaultModel. Values are written double-quoted
// without escaping, so providerName and baseURL must not contain quotes.
func Generate(providerName, baseURL, model string) string {
	if model == "" {
		model = DefaultModel
	}
	key := SanitizeProviderKey(providerName)

	var b strings.Builder
	fmt.Fprintf(&b, "model_provider = %q\n", key)
	fmt.Fprintf(&b, "model = \"%s\"\n", model)
	fmt.Fprintf(&b, "model_reasoning_effort = %q\n", reasoningEffort)
	b.WriteString("disable_response_storage = true\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "[%s.%s]\n", providerSectionPrefix, key)
	fmt.Fprintf(&b, "name = %q\n", key)
	fmt.Fprintf(&b, "base_url = \"%s\"\n", baseURL)
	fmt.Fprintf(&b, "wire_api = %q\n", wireAPI)
	b.WriteString("requires_openai_auth = true\n")
	return b.String()
}

// ExtractBaseURL returns the value of the first base_url assignment in the
// text, wherever it lives. It returns "" when there is none.
func ExtractBaseURL(fragment string) string {
	m := baseURLPattern.FindStringSubmatch(fragment)
	if m == nil {
		return ""
	}
	return m[1]
}

// SetBaseURL replaces the value of the first base_url assignment in the
// text. The fragment is returned unchanged when there is none.
func SetBaseURL(fragment, baseURL string) string {
	loc := baseURLPattern.FindStringSubmatchIndex(fragment)
	if loc == nil {
		return fragment
	}
	return fragment[:loc[2]] + baseURL + fragment[loc[3]:]
}

// ExtractModel returns the value of the first top-level model assignment.
// Assignments inside any table section are ignored. DefaultModel is
// returned when no top-level assignment exists.
func ExtractModel(fragment string) string {
	inSection := false
	for _, line := range strings.Split(fragment, "\n") {
		if _, ok := headerName(line); ok {
			inSection = true
			continue
		}
		if inSection {
			continue
		}
		if m := modelLinePattern.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	return DefaultModel
}

// SetModel rewrites the first model assignment that is not inside a
// model_providers section. Every other line is passed through untouched.
//
// A header starting with model_providers enters a provider section, any
// other header leaves it.
func SetModel(fragment, model string) string {
	lines := strings.Split(fragment, "\n")
	inProvider := false
	for i, line := range lines {
		if name, ok := headerName(line); ok {
			inProvider = strings.HasPrefix(name, providerSectionPrefix)
			continue
		}
		if inProvider {
			continue
		}
		loc := modelLinePattern.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		lines[i] = line[:loc[2]] + model + line[loc[3]:]
		return strings.Join(lines, "\n")
	}
	return fragment
}

// Validate reports whether the fragment parses as TOML.
// An empty fragment is valid and means "no override".
func Validate(fragment string) error {
	if strings.TrimSpace(fragment) == "" {
		return nil
	}
	var doc map[string]any
	if err := toml.Unmarshal([]byte(fragment), &doc); err != nil {
		return errors.Wrap(err, "parsing config fragment")
	}
	return nil
}

// headerName returns the dotted name of a bracketed table header line.
func headerName(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "[") {
		return "", false
	}
	name := strings.TrimLeft(trimmed, "[")
	if end := strings.Index(name, "]"); end >= 0 {
		name = name[:end]
	}
	return strings.TrimSpace(name), true
}
