package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <patch-file>...",
		Short: "Validate module patch files",
		Long: `Parse the given module-info-patch.txt files and report every syntax error
with its file name and line number. Exits non-zero when any file is invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			return newWorkflow(cmd, false, false).Check(context.Background(), parsePaths(args))
		},
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
