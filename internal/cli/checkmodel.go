package cli

import (
	"fmt"

	"github.com/rmera/godplr"
	"github.com/spf13/cobra"
)

var (
	checkPy  string
	checkRun bool
)

var checkCmd = &cobra.Command{
	Use:   "checkmodel <model-file>",
	Short: "Check that a model's selected types match the parameters",
	Long: `Print a shell command that asserts, through the DeepMD-kit inference
API, that the sel_type stored inside the model matches the sel_type of
the parameter file. The command is meant to be prepended to simulation
scripts so a model/parameter mismatch fails fast and loudly.

With --run, the check is performed right away instead (this needs
DeepMD-kit importable by the Python interpreter).`,
	Args: cobra.ExactArgs(1),
	RunE: runCheckModel,
}

func init() {
	checkCmd.Flags().StringVar(&checkPy, "python", "python", "Python interpreter with DeepMD-kit available")
	checkCmd.Flags().BoolVar(&checkRun, "run", false, "run the check now instead of printing the command")
	rootCmd.AddCommand(checkCmd)
}

func runCheckModel(cmd *cobra.Command, args []string) error {
	if err := par.requireTypes(); err != nil {
		return err
	}
	model := args[0]
	if !checkRun {
		fmt.Println(dplr.SelTypeAssertion(par.SelType, model, checkPy))
		return nil
	}
	got, err := dplr.SelTypeFromModel(model, checkPy)
	if err != nil {
		return err
	}
	if !sameInts(got, par.SelType) {
		return fmt.Errorf("model %s selects types %v, parameters say %v", model, got, par.SelType)
	}
	logger.Info("model sel_type matches", "model", model, "sel_type", got)
	return nil
}

func sameInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
