// Package commands implements the CLI commands for aisw.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aisw/cmd"
	"github.com/thoreinstein/aisw/cmd/aisw/commands/backup"
	"github.com/thoreinstein/aisw/cmd/aisw/commands/flags"
	"github.com/thoreinstein/aisw/cmd/aisw/commands/mcp"
	"github.com/thoreinstein/aisw/cmd/aisw/commands/provider"
	internalbackup "github.com/thoreinstein/aisw/internal/backup"
	"github.com/thoreinstein/aisw/internal/config"
	"github.com/thoreinstein/aisw/internal/errors"
	"github.com/thoreinstein/aisw/internal/logging"
	"github.com/thoreinstein/aisw/internal/paths"
)

// Global flag values.
var (
	engineFlag  []string
	projectFlag string
	configFile  string
	verbosity   int
	quiet       bool
	logFormat   string
	logFile     string
)

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringSliceVarP(&engineFlag, "engine", "e", nil,
		`target engine(s): claude, codex, gemini (default: all detected)`)
	rootCmd.PersistentFlags().StringVar(&projectFlag, "project", "",
		"project root for project and local scopes (default: working directory)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ./config.yaml, then ~/.config/aisw/config.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("aisw version {{.Version}}\n")

	// Silence errors and usage so main controls error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(mcp.Cmd)
	rootCmd.AddCommand(provider.Cmd)
	rootCmd.AddCommand(backup.Cmd)

	internalbackup.Version = cmd.Version
}

func initConfig() {
	config.Init()
	var cfg *config.Config
	cfg, configLoadErr = config.Load(configFile)
	flags.SetConfig(cfg)
}

var rootCmd = &cobra.Command{
	Use:   "aisw",
	Short: "Switch providers and MCP servers across AI coding assistants",
	Long: `aisw manages the provider and MCP server configuration of Claude Code,
Codex CLI and Gemini CLI from one place.

It switches the Codex model provider between built-in presets, and keeps
MCP server definitions in sync across engines. Engine files are edited in
place: unrelated settings, comments and ordering are left alone, and a
backup is taken before the first change.

Use the --engine flag to target specific engines, or omit it to target
all detected engines.`,
	Example: `  # Switch Codex to a provider preset
  aisw provider apply openrouter --api-key sk-or-...

  # List MCP servers of every detected engine
  aisw mcp list

  # Add a server to Claude Code only
  aisw mcp add github --engine claude -- npx -y @modelcontextprotocol/server-github

  # Check engine files for problems
  aisw doctor

  See Also: aisw provider, aisw mcp, aisw backup, aisw doctor`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return validateGlobalFlags(cmd, args)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("conflicting flags"), "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv(config.EnvPrefix + "_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = logging.NewJSONHandler(cmd.ErrOrStderr(), opts)
	case logging.FormatText, "":
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	default:
		return errors.NewUserError(errors.Newf("invalid --log-format %q", logFormat), "Use text or json")
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "Check the --log-file path")
		}
		// File output uses JSON format
		handlers = append(handlers, logging.NewJSONHandler(f, opts))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	logging.ConfigureColor(cmd.OutOrStdout())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// validateGlobalFlags checks the config and the --engine values, then
// publishes the global flags to the flags package.
func validateGlobalFlags(cmd *cobra.Command, _ []string) error {
	flags.SetEngineFlag(engineFlag)
	flags.SetProjectFlag(projectFlag)

	// Skip validation for help and version commands
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}

	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}

	for _, e := range engineFlag {
		if !paths.ValidEngine(e) {
			return errors.NewUserError(
				errors.Wrapf(errors.ErrUnknownEngine, "%q", e),
				"Valid engines are claude, codex and gemini")
		}
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
