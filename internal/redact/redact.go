// Package redact masks credentials before they reach a terminal or a log.
//
// Engine configuration files carry API keys in MCP server environments,
// request headers, and the codex auth file. Every command that prints a
// server or a provider runs the values through this package unless the
// caller explicitly asked to see secrets.
package redact

import (
	"net/url"
	"strings"
)

// SecretKeyPatterns contains substrings that indicate a key likely contains sensitive data.
// Keys are matched case-insensitively.
var SecretKeyPatterns = []string{
	"TOKEN",
	"KEY",
	"SECRET",
	"PASSWORD",
	"AUTH",
	"CREDENTIAL",
	"PRIVATE",
	"COOKIE",
}

// TokenPrefixes contains known API token prefixes that indicate sensitive values
// regardless of key name.
var TokenPrefixes = []string{
	"ghp_",    // GitHub personal access token
	"gho_",    // GitHub OAuth token
	"ghu_",    // GitHub user-to-server token
	"ghs_",    // GitHub server-to-server token
	"ghr_",    // GitHub refresh token
	"sk-",     // OpenAI and Anthropic keys
	"pk-",     // public keys that shouldn't be exposed
	"AKIA",    // AWS access key
	"AIza",    // Google API key
	"xoxb-",   // Slack bot token
	"xoxp-",   // Slack user token
	"xoxa-",   // Slack app token
	"xoxr-",   // Slack refresh token
	"Bearer ", // HTTP bearer credentials
}

// authSchemes are Authorization header schemes that are kept readable when
// the credential that follows them is masked.
var authSchemes = []string{"Bearer ", "Basic ", "Token "}

// Pairs masks sensitive values in a key/value mapping.
// Keys matching SecretKeyPatterns or values matching TokenPrefixes are masked.
// Returns a new map with sensitive values redacted.
func Pairs(kv map[string]string) map[string]string {
	if kv == nil {
		return nil
	}

	masked := make(map[string]string, len(kv))
	for k, v := range kv {
		masked[k] = Field(k, v)
	}
	return masked
}

// Field masks value when either its key or the value itself looks like a secret.
func Field(key, value string) string {
	if ShouldMask(key) || ContainsTokenPrefix(value) {
		return Header(value)
	}
	return value
}

// Value masks a potentially sensitive string value.
// Values with 4 or fewer characters are fully masked as "********".
// Longer values show the last 4 characters: "****xxxx".
func Value(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// Header masks an HTTP header value, keeping a leading auth scheme visible.
// "Bearer sk-abcdef1234" becomes "Bearer ****1234".
func Header(value string) string {
	for _, scheme := range authSchemes {
		if len(value) > len(scheme) && strings.EqualFold(value[:len(scheme)], scheme) {
			return value[:len(scheme)] + Value(value[len(scheme):])
		}
	}
	return Value(value)
}

// Message masks token-looking words in free text such as error messages.
func Message(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		core := strings.Trim(w, `"'(),:;[]{}`)
		if core != "" && ContainsTokenPrefix(core) {
			words[i] = strings.Replace(w, core, Value(core), 1)
		}
	}
	return strings.Join(words, " ")
}

// URL redacts credentials from URLs.
// URLs with embedded credentials (user:pass@host) become (user:****@host).
// Query parameters whose names look secret are masked as well.
// If the URL cannot be parsed, it is returned unchanged.
func URL(rawURL string) string {
	if rawURL == "" {
		return rawURL
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	changed := false
	if parsed.User != nil {
		if password, ok := parsed.User.Password(); ok && password != "" {
			parsed.User = url.UserPassword(parsed.User.Username(), Value(password))
			changed = true
		}
	}

	if parsed.RawQuery != "" {
		q := parsed.Query()
		for k, vs := range q {
			if !ShouldMask(k) {
				continue
			}
			for i := range vs {
				vs[i] = Value(vs[i])
			}
			changed = true
		}
		if changed {
			parsed.RawQuery = q.Encode()
		}
	}

	if !changed {
		return rawURL
	}
	return parsed.String()
}

// ShouldMask returns true if the key name suggests it contains sensitive data.
// Matching is case-insensitive.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range SecretKeyPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// ContainsTokenPrefix returns true if the value starts with a known token prefix.
// This catches cases where the key name doesn't indicate sensitivity but the value
// is clearly a token (e.g., "MY_VAR=ghp_abc123").
func ContainsTokenPrefix(value string) bool {
	for _, prefix := range TokenPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}
