// Package flags provides shared flag accessors for CLI commands.
// This package exists to avoid import cycles between the root command
// and noun subpackages (mcp, provider, backup).
package flags

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aisw/internal/cli"
	"github.com/thoreinstein/aisw/internal/config"
	"github.com/thoreinstein/aisw/internal/logging"
)

var (
	engineFlag  []string
	projectFlag string
	scopeFlag   string
	cfg         *config.Config
)

// GetEngineFlag returns the current value of the --engine flag.
func GetEngineFlag() []string {
	return engineFlag
}

// SetEngineFlag sets the engine flag value.
// The root command calls it after parsing.
func SetEngineFlag(engines []string) {
	engineFlag = engines
}

// GetProjectFlag returns the current value of the --project flag.
func GetProjectFlag() string {
	return projectFlag
}

// SetProjectFlag sets the project flag value.
func SetProjectFlag(dir string) {
	projectFlag = dir
}

// GetScopeFlag returns the current value of the --scope flag.
func GetScopeFlag() string {
	return scopeFlag
}

// AddScopeFlag registers --scope on cmd. Commands that edit MCP servers
// call it from init.
func AddScopeFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&scopeFlag, "scope", "s", "",
		"server list to edit: user, project, local (default: user)")
}

// GetConfig returns the loaded configuration, or nil before loading.
func GetConfig() *config.Config {
	return cfg
}

// SetConfig stores the loaded configuration.
func SetConfig(c *config.Config) {
	cfg = c
}

// DefaultEngines returns default_engines from the loaded configuration.
func DefaultEngines() []string {
	if cfg == nil {
		return nil
	}
	return cfg.DefaultEngines
}

// Settings collects the flag values needed to build a registry.
func Settings(ctx context.Context) cli.Settings {
	return cli.Settings{
		Config:      cfg,
		Scope:       scopeFlag,
		ProjectRoot: projectFlag,
		Logger:      logging.FromContext(ctx),
	}
}
