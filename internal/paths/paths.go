package paths

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "aisw"

// Engine identifiers for supported AI coding assistants.
const (
	EngineClaude = "claude"
	EngineCodex  = "codex"
	EngineGemini = "gemini"
)

// Environment variables that relocate an engine's config directory.
const (
	// EnvClaudeConfigDir replaces ~/.claude and moves .claude.json into it.
	EnvClaudeConfigDir = "CLAUDE_CONFIG_DIR"

	// EnvCodexHome replaces ~/.codex.
	EnvCodexHome = "CODEX_HOME"
)

// engineDirs maps engines to their config directories relative to home.
var engineDirs = map[string]string{
	EngineClaude: ".claude",
	EngineCodex:  ".codex",
	EngineGemini: ".gemini",
}

// engineEnv maps engines to the environment variable overriding their
// config directory.
var engineEnv = map[string]string{
	EngineClaude: EnvClaudeConfigDir,
	EngineCodex:  EnvCodexHome,
}

// mcpFiles maps engines to the file holding their MCP servers, relative to
// the config directory.
var mcpFiles = map[string]string{
	EngineClaude: ".claude.json",
	EngineCodex:  "config.toml",
	EngineGemini: "settings.json",
}

// Codex provider files, relative to the Codex config directory.
const (
	CodexAuthFile   = "auth.json"
	CodexConfigFile = "config.toml"
)

// ErrHomeDirNotFound indicates the user's home directory could not be determined.
var ErrHomeDirNotFound = errors.New("home directory not found")

// Home returns the user's home directory, or "" when it cannot be
// determined. Use ResolveHome for the error.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// AppConfigDir returns the directory holding aisw's own config.yaml.
func AppConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// DataHome returns the XDG data home directory.
func DataHome() string {
	return xdg.DataHome
}

// BackupDir returns the directory where copies of engine files are kept
// before they are overwritten: <DataHome>/aisw/backups/
func BackupDir() string {
	return filepath.Join(DataHome(), AppName, "backups")
}

// Engines returns every supported engine in display order.
func Engines() []string {
	return []string{EngineClaude, EngineCodex, EngineGemini}
}

// ValidEngine returns true if the engine name is recognized.
func ValidEngine(engine string) bool {
	return slices.Contains(Engines(), engine)
}

// GlobalConfigDir returns the config directory for an engine:
//   - claude: $CLAUDE_CONFIG_DIR or ~/.claude/
//   - codex: $CODEX_HOME or ~/.codex/
//   - gemini: ~/.gemini/
//
// Returns an empty string for unknown engines.
func GlobalConfigDir(engine string) string {
	rel, ok := engineDirs[engine]
	if !ok {
		return ""
	}
	if env := engineEnv[engine]; env != "" {
		if dir := os.Getenv(env); dir != "" {
			return dir
		}
	}
	home := Home()
	if home == "" {
		return ""
	}
	return filepath.Join(home, rel)
}

// MCPConfigPath returns the file holding an engine's MCP servers:
//   - claude: ~/.claude.json, or $CLAUDE_CONFIG_DIR/.claude.json
//   - codex: <codex dir>/config.toml
//   - gemini: ~/.gemini/settings.json
//
// Returns an empty string for unknown engines.
func MCPConfigPath(engine string) string {
	if engine == EngineClaude && os.Getenv(EnvClaudeConfigDir) == "" {
		// Claude keeps its state file next to, not inside, ~/.claude.
		home := Home()
		if home == "" {
			return ""
		}
		return filepath.Join(home, mcpFiles[EngineClaude])
	}
	return MCPConfigPathIn(engine, GlobalConfigDir(engine))
}

// MCPConfigPathIn returns the MCP file of an engine whose config directory
// is dir. Used when the directory comes from configuration.
func MCPConfigPathIn(engine, dir string) string {
	name, ok := mcpFiles[engine]
	if !ok || dir == "" {
		return ""
	}
	return filepath.Join(dir, name)
}
