// Package cli provides the Cobra command structure for ustr.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coregx/ustring"
	"github.com/coregx/ustring/internal/config"
	"github.com/coregx/ustring/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root ustr command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "ustr",
		Short: "Unicode-aware Lua pattern matching from the command line",
		Long: `ustr applies Lua-style patterns to text, counting and indexing by
Unicode code points instead of bytes.

Text is taken from the last argument, or read from standard input when
the argument is omitted or "-" and input is piped. Positions are 1-based
code-point indexes; negative positions count from the end.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd, configPath, debug)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("USTR_CONFIG"),
		"path to config file")

	rootCmd.AddCommand(
		newLenCommand(),
		newSubCommand(),
		newReverseCommand(),
		newCharCommand(),
		newCodePointsCommand(),
		newFindCommand(),
		newMatchCommand(),
		newGMatchCommand(),
		newGSubCommand(),
		newCaseCommand("upper", "Convert text to uppercase", ustring.ToUpper),
		newCaseCommand("lower", "Convert text to lowercase", ustring.ToLower),
		newHighlightCommand(),
		newEvalCommand(),
		newStatsCommand(),
		newVersionCommand(info),
	)

	return rootCmd
}

// setup loads the configuration, installs the logger and configures the
// pattern engine and case table.
func setup(cmd *cobra.Command, configPath string, debug bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	level := cfg.Log.Level
	if debug {
		level = "debug"
	}
	formatter, err := cfg.Formatter()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
	logger.SetFormatter(formatter)
	logging.SetDefault(logger)
	cmd.SetContext(logging.WithLogger(cmd.Context(), logger))

	if err := ustring.Configure(cfg.Engine(logger)); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	table, err := cfg.CaseTable()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	ustring.SetCaseTable(table)

	logger.Debug("configured",
		logging.FieldCommand, cmd.Name(),
		logging.FieldConfig, configPath,
		logging.FieldCacheSize, cfg.Cache.Size,
	)
	return nil
}
