package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/coregx/ustring/internal/logging"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of ustr.`,
		Run: func(cmd *cobra.Command, _ []string) {
			logger := log.NewWithOptions(cmd.OutOrStdout(), log.Options{
				ReportTimestamp: false,
				ReportCaller:    false,
			})
			logger.SetLevel(log.InfoLevel)

			logger.Info("ustr",
				logging.FieldVersion, info.Version,
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
			)
		},
	}
}
