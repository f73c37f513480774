package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"modpatch.dev/pkg/modpatch/internal/domain"
	m "modpatch.dev/pkg/modpatch/internal/model"
)

var runtimeFlag bool
var noOpensFlag bool
var tableFlag bool

// optionsCmd represents the options command.
var optionsCmd = newOptionsCmd()

func newOptionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Compute module graph options",
		Long: `Compute the --add-modules, --add-reads, --add-exports, --add-opens and
--patch-module options for the configured sources and resolution result.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sources, err := configuredSources()
			if err != nil {
				return err
			}

			return newWorkflow(cmd, false, tableFlag).ComputeOptions(context.Background(), domain.OptionsArgs{
				Sources:       sources,
				DefaultModule: viper.GetString(moduleConfigKey),
				Resolution:    m.Path(viper.GetString(resolutionConfigKey)),
				MainOutput:    m.Path(viper.GetString(mainOutputConfigKey)),
				Runtime:       runtimeFlag,
				Opens:         !noOpensFlag,
			})
		},
	}

	configureOptionsFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(optionsCmd)
}

func configureOptionsFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&runtimeFlag, runtimeFlagName, false, "compute runtime options instead of compile options")
	cmd.Flags().BoolVar(&noOpensFlag, noOpensFlagName, false, "omit --add-opens options")
	cmd.Flags().BoolVar(&tableFlag, tableFlagName, false, "render the options as a table")
}
