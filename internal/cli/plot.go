package cli

import (
	"fmt"
	"math"

	"github.com/rmera/godplr"
	"github.com/rmera/godplr/deepmd"
	"github.com/spf13/cobra"
)

var (
	plotOut  string
	plotBins int
)

var plotCmd = &cobra.Command{
	Use:   "plot <deepmd-system-dir>",
	Short: "Plot the dipole magnitude distribution of a converted system",
	Long: `Read the atomic_dipole tensor of a DeePMD-kit npy system and write a
histogram of the dipole magnitudes of the selected atoms, across all
frames. A quick way to spot a wrong cutoff or a bad batch of frames:
for healthy water data the magnitudes bunch tightly together.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlot,
}

func init() {
	plotCmd.Flags().StringVarP(&plotOut, "out", "o", "dipole_hist.png", "output image file")
	plotCmd.Flags().IntVar(&plotBins, "bins", 20, "number of histogram bins")
	rootCmd.AddCommand(plotCmd)
}

func runPlot(cmd *cobra.Command, args []string) error {
	sel, err := par.selSymbols()
	if err != nil {
		return err
	}
	sys, err := deepmd.ReadSystem(args[0])
	if err != nil {
		return err
	}
	if sys.AtomicDipole == nil {
		return fmt.Errorf("%s has no atomic_dipole tensor", args[0])
	}
	symbols := make([]string, len(sys.Types))
	for i, t := range sys.Types {
		if t < 0 || t >= len(sys.TypeMap) {
			return fmt.Errorf("%s: atom type %d out of range for type map %v", args[0], t, sys.TypeMap)
		}
		symbols[i] = sys.TypeMap[t]
	}
	selIDs := dplr.SelectedIndices(symbols, sel)
	if len(selIDs) == 0 {
		return fmt.Errorf("no atom of %s matches the selected symbols %v", args[0], sel)
	}
	mags := []float64{}
	for f := 0; f < sys.NFrames(); f++ {
		for _, id := range selIDs {
			x := sys.AtomicDipole.At(f, id*3)
			y := sys.AtomicDipole.At(f, id*3+1)
			z := sys.AtomicDipole.At(f, id*3+2)
			mags = append(mags, math.Sqrt(x*x+y*y+z*z))
		}
	}
	if err := dplr.HistogramPlot(mags, plotBins, "atomic dipole magnitudes", plotOut); err != nil {
		return err
	}
	logger.Info("histogram written", "file", plotOut, "values", len(mags))
	return nil
}
