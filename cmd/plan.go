package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"modpatch.dev/pkg/modpatch/internal/domain"
)

var interactiveFlag bool

// planCmd represents the plan command.
var planCmd = newPlanCmd()

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the release and module layout of the sources",
		Long: `Partition the configured sources by targeted release and module and show
one row per source root with its computed output directory.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sources, err := configuredSources()
			if err != nil {
				return err
			}

			return newWorkflow(cmd, interactiveFlag, true).Plan(context.Background(), domain.PlanArgs{
				Sources: sources,
			})
		},
	}

	cmd.Flags().BoolVarP(&interactiveFlag, interactiveFlagName, "i", false, "scroll the plan in an interactive view")

	return cmd
}

func init() {
	rootCmd.AddCommand(planCmd)
}
