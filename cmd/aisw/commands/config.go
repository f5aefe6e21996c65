package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/aisw/cmd/aisw/commands/flags"
	"github.com/thoreinstein/aisw/internal/cli"
	"github.com/thoreinstein/aisw/internal/config"
	"github.com/thoreinstein/aisw/internal/editor"
	"github.com/thoreinstein/aisw/internal/errors"
	"github.com/thoreinstein/aisw/internal/paths"
	"github.com/thoreinstein/aisw/pkg/fileutil"
)

var configShowJSON bool

// openEditor is replaced in tests.
var openEditor = editor.Open

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output as JSON instead of YAML")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage aisw configuration",
	Long: `Manage aisw configuration stored in ~/.config/aisw/config.yaml.

Without a subcommand, shows the effective configuration.`,
	Example: `  # Show the effective configuration
  aisw config

  # Only target Claude Code and Codex by default
  aisw config set default_engines claude,codex

  # Point Codex at a different config directory
  aisw config set engines.codex.config_dir ~/work/.codex

See Also: aisw doctor`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigShow(cmd.OutOrStdout())
	},
}

var configShowCmd = &cobra.Command{
	Use:     "show",
	Aliases: []string{"list"},
	Short:   "Show the effective configuration",
	Long:    `Show the configuration after defaults, the config file and AISW_* environment variables are applied.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigShow(cmd.OutOrStdout())
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a single configuration value by key.

Supports dot notation for nested keys. List values are printed one per line.`,
	Example: `  aisw config get default_engines
  aisw config get backup.retention`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigGet(cmd.OutOrStdout(), args[0])
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and write it to the config file.

Supported keys:
  version                     config schema version
  default_engines             comma-separated engine names
  backup.enabled              true or false
  backup.retention            backups kept per engine, 0 keeps all
  engines.<engine>.config_dir config directory override`,
	Example: `  aisw config set default_engines claude,gemini
  aisw config set backup.retention 10`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigSet(cmd.OutOrStdout(), args[0], args[1])
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), configFilePath())
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in $EDITOR",
	Long: `Open the configuration file in your default editor.

Uses $EDITOR, then $VISUAL, then nano or vi. If no config file exists yet,
one holding the current configuration is created first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := configFilePath()
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := writeConfig(path, currentConfig()); err != nil {
				return err
			}
		}
		return openEditor(cmd.Context(), path)
	},
}

func runConfigShow(w io.Writer) error {
	format := cli.FormatYAML
	if configShowJSON {
		format = cli.FormatJSON
	}
	return cli.Encode(w, format, currentConfig())
}

func runConfigGet(w io.Writer, key string) error {
	if !viper.IsSet(key) {
		fmt.Fprintln(w, "not set")
		return nil
	}

	switch v := viper.Get(key).(type) {
	case []any:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	case []string:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	case map[string]any:
		return cli.Encode(w, cli.FormatYAML, v)
	default:
		fmt.Fprintln(w, viper.GetString(key))
	}
	return nil
}

func runConfigSet(w io.Writer, key, value string) error {
	cfg := currentConfig()
	if err := applyConfigValue(cfg, key, value); err != nil {
		return err
	}
	if errs := config.Validate(cfg); len(errs) > 0 {
		return errors.NewConfigError(errors.Join(errs...))
	}

	path := configFilePath()
	if err := writeConfig(path, cfg); err != nil {
		return err
	}

	viper.Set(key, viperValue(cfg, key))
	flags.SetConfig(cfg)
	fmt.Fprintf(w, "Set %s = %s\n", key, value)
	return nil
}

// applyConfigValue parses value for key and stores it on cfg.
func applyConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "version":
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.NewUserError(errors.Newf("version must be a number, got %q", value), "")
		}
		cfg.Version = n

	case "default_engines":
		engines := parseEngines(value)
		if len(engines) == 0 {
			return errors.NewUserError(errors.New("no engines specified"),
				"Valid engines are "+strings.Join(paths.Engines(), ", "))
		}
		var invalid []string
		for _, e := range engines {
			if !paths.ValidEngine(e) {
				invalid = append(invalid, e)
			}
		}
		if len(invalid) > 0 {
			return errors.NewUserError(
				errors.Wrapf(errors.ErrUnknownEngine, "%s", strings.Join(invalid, ", ")),
				"Valid engines are "+strings.Join(paths.Engines(), ", "))
		}
		cfg.DefaultEngines = engines

	case "backup.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.NewUserError(errors.Newf("backup.enabled must be true or false, got %q", value), "")
		}
		cfg.Backup.Enabled = b

	case "backup.retention":
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.NewUserError(errors.Newf("backup.retention must be a number, got %q", value), "")
		}
		cfg.Backup.Retention = n

	default:
		engine, ok := engineConfigDirKey(key)
		if !ok {
			return errors.NewUserError(errors.Newf("unknown config key %q", key),
				"Run 'aisw config set --help' for supported keys")
		}
		if cfg.Engines == nil {
			cfg.Engines = make(map[string]config.EngineOverride)
		}
		if value == "" {
			delete(cfg.Engines, engine)
			break
		}
		cfg.Engines[engine] = config.EngineOverride{ConfigDir: value}
	}
	return nil
}

// engineConfigDirKey matches engines.<engine>.config_dir.
func engineConfigDirKey(key string) (string, bool) {
	parts := strings.Split(key, ".")
	if len(parts) != 3 || parts[0] != "engines" || parts[2] != "config_dir" {
		return "", false
	}
	return parts[1], true
}

func viperValue(cfg *config.Config, key string) any {
	switch key {
	case "version":
		return cfg.Version
	case "default_engines":
		return cfg.DefaultEngines
	case "backup.enabled":
		return cfg.Backup.Enabled
	case "backup.retention":
		return cfg.Backup.Retention
	}
	engine, _ := engineConfigDirKey(key)
	return cfg.Engines[engine].ConfigDir
}

// parseEngines splits a comma-separated string into engine names.
func parseEngines(s string) []string {
	var engines []string
	for e := range strings.SplitSeq(s, ",") {
		e = strings.TrimSpace(e)
		if e != "" {
			engines = append(engines, e)
		}
	}
	return engines
}

// currentConfig returns a copy of the loaded configuration, or the
// defaults when nothing was loaded.
func currentConfig() *config.Config {
	loaded := flags.GetConfig()
	if loaded == nil {
		return &config.Config{
			Version:        1,
			DefaultEngines: paths.Engines(),
			Backup:         config.BackupSettings{Enabled: true, Retention: 5},
		}
	}
	cfg := *loaded
	cfg.DefaultEngines = append([]string(nil), loaded.DefaultEngines...)
	if loaded.Engines != nil {
		cfg.Engines = make(map[string]config.EngineOverride, len(loaded.Engines))
		for k, v := range loaded.Engines {
			cfg.Engines[k] = v
		}
	}
	return &cfg
}

// configFilePath returns the file config set and edit write to: the
// --config flag, then the file viper loaded, then the user config dir.
func configFilePath() string {
	if configFile != "" {
		return configFile
	}
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(paths.AppConfigDir(), "config.yaml")
}

func writeConfig(path string, cfg *config.Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	if err := fileutil.AtomicWriteYAML(path, cfg); err != nil {
		return errors.Wrap(err, "writing config file")
	}
	return nil
}
