// Package cmd provides the root command and CLI setup for modpatch.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"modpatch.dev/pkg/modpatch/internal/adapter"
	"modpatch.dev/pkg/modpatch/internal/controller"
	"modpatch.dev/pkg/modpatch/internal/domain"
	m "modpatch.dev/pkg/modpatch/internal/model"
)

var projectFS adapter.ProjectFS
var patchStore adapter.PatchStore
var resolutionLoader adapter.ResolutionLoader
var sourceScanner adapter.SourceScanner
var moduleNameReader adapter.ModuleNameReader
var workflow domain.Workflow
var ui controller.UI

// outputDirFlag is the base directory for compilation outputs.
var outputDirFlag string

// mainOutputDirFlag is the compiled main classes directory.
var mainOutputDirFlag string

// resolutionFileFlag is the path of the dependency resolution lockfile.
var resolutionFileFlag string

// moduleNameFlag overrides the name of the module being patched.
var moduleNameFlag string

// verboseFlag switches the log level to debug.
var verboseFlag bool

// logFileFlag overrides the log file location.
var logFileFlag string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	projectFS = adapter.NewLocalProjectFS()
	patchStore = adapter.NewLocalPatchStore(projectFS)
	resolutionLoader = adapter.NewLocalResolutionLoader(projectFS)
	sourceScanner = adapter.NewLocalSourceScanner(projectFS)
	moduleNameReader = adapter.NewLocalModuleNameReader(projectFS)
}

const rootLongDescription = `Modpatch derives the module-graph compiler and runtime options a build needs
to compile and run tests against modular sources. It reads declarative
module-info-patch.txt files, combines them with the dependency resolution
result, and prints the --add-modules, --add-reads, --add-exports, --add-opens
and --patch-module options the toolchain should receive.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modpatch",
		Short: "Module graph option generator",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, verboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&outputDirFlag, outputFlagName, "o",
			viper.GetString(outputConfigKey),
			"base output directory for compiled classes",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputConfigKey)

	cmd.PersistentFlags().StringVar(&mainOutputDirFlag, mainOutputFlagName, viper.GetString(mainOutputConfigKey), "compiled main classes directory prepended to --patch-module")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(mainOutputFlagName), mainOutputConfigKey)

	cmd.PersistentFlags().StringVarP(&resolutionFileFlag, resolutionFlagName, "r", viper.GetString(resolutionConfigKey), "dependency resolution lockfile")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(resolutionFlagName), resolutionConfigKey)

	cmd.PersistentFlags().StringVarP(&moduleNameFlag, moduleFlagName, "m", viper.GetString(moduleConfigKey), "name of the module being patched")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(moduleFlagName), moduleConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log at debug level")
	cmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "log file location")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// newWorkflow builds the workflow for a command invocation, choosing the UI
// from the command's flags.
func newWorkflow(cmd *cobra.Command, interactive, table bool) domain.Workflow {
	if workflow != nil {
		return workflow
	}

	ui = controller.NewUI(cmd, interactive, table)

	return domain.NewWorkflow(patchStore, resolutionLoader, sourceScanner, moduleNameReader, ui)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
