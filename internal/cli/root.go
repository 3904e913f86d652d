// Package cli implements the dplr command-line tool.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Persistent flags
	paramsFile string
	logLevel   string
	logFile    string

	logger *slog.Logger
	par    *Params
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "dplr",
	Short: "Prepare DPLR training data and simulation inputs",
	Long: `dplr turns CP2K electronic-structure output and Wannier-center files
into DeePMD-kit training data for DPLR, the long-range variant of the
Deep Potential models, and writes the auxiliary files a DPLR simulation
needs (LAMMPS data files with virtual atoms and bonds).

The conversion parameters (type_map, sel_type, charge maps, wannier
cutoff) live in a small TOML file passed with --params; their names
follow DeePMD-kit's, see
https://docs.deepmodeling.com/projects/deepmd/en/master/model/dplr.html`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}
		var cleanup func() error
		logger, cleanup = SetupLogger(logFile, parseLogLevel(logLevel))
		cobra.OnFinalize(func() {
			if cleanup != nil {
				cleanup()
			}
		})
		var err error
		par, err = LoadParams(paramsFile)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&paramsFile, "params", "p", "", "TOML file with the DPLR parameters (type_map, sel_type, ...)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append JSON logs to this file, besides stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
