// Package config provides configuration management for aisw using Viper.
package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/thoreinstein/aisw/internal/paths"
)

// EnvPrefix is the prefix of environment variables read by aisw.
const EnvPrefix = "AISW"

// Config represents the top-level configuration structure.
type Config struct {
	Version        int                       `mapstructure:"version" yaml:"version" json:"version"`
	DefaultEngines []string                  `mapstructure:"default_engines" yaml:"default_engines" json:"default_engines"`
	Engines        map[string]EngineOverride `mapstructure:"engines" yaml:"engines,omitempty" json:"engines,omitempty"`
	Backup         BackupSettings            `mapstructure:"backup" yaml:"backup" json:"backup"`
}

// EngineOverride contains configuration overrides for a specific engine.
type EngineOverride struct {
	// ConfigDir replaces the engine's default config directory.
	ConfigDir string `mapstructure:"config_dir" yaml:"config_dir" json:"config_dir"`
}

// BackupSettings controls the copies taken before engine files are rewritten.
type BackupSettings struct {
	Enabled   bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Retention int  `mapstructure:"retention" yaml:"retention" json:"retention"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths, in order of precedence.
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.AppConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("default_engines", paths.Engines())
	viper.SetDefault("backup.enabled", true)
	viper.SetDefault("backup.retention", 5)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file and a missing file
// is an error. If path is empty, the default locations are searched and
// defaults are used when no file is found.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "reading config file")
		}
		if path != "" {
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errors.Join(errs...), "validating config")
	}

	return &cfg, nil
}

// ConfigDir returns the config directory for engine, honoring the
// engines.<name>.config_dir override.
func (c *Config) ConfigDir(engine string) string {
	if c != nil {
		if o, ok := c.Engines[engine]; ok && o.ConfigDir != "" {
			return o.ConfigDir
		}
	}
	return paths.GlobalConfigDir(engine)
}

// MCPConfigPath returns the file holding engine's MCP servers, honoring
// the config_dir override.
func (c *Config) MCPConfigPath(engine string) string {
	if c != nil {
		if o, ok := c.Engines[engine]; ok && o.ConfigDir != "" {
			return paths.MCPConfigPathIn(engine, o.ConfigDir)
		}
	}
	return paths.MCPConfigPath(engine)
}
