package cli

import (
	"fmt"

	"github.com/rmera/godplr"
	"github.com/rmera/godplr/cp2k"
	"github.com/rmera/godplr/deepmd"
	"github.com/spf13/cobra"
)

var (
	convertOutput string
	convertWannier string
	convertSpread string
	convertOut    string
	convertCutoff float64
	convertPlot   string
	convertBins   int
)

var convertCmd = &cobra.Command{
	Use:   "convert <cp2k-run-dir>...",
	Short: "Convert CP2K runs into a DeePMD-kit system with atomic dipoles",
	Long: `Convert one or more CP2K run directories, each holding a single-frame
output plus the Wannier centroid file, into one DeePMD-kit npy data
system labeled with the atomic dipoles DPLR trains on.

Frames whose Wannier centers cannot be assigned (wrong count within the
cutoff, or a center claimed by two atoms) are skipped and counted; the
run fails only if no frame survives.

Example:
  dplr convert --params water.toml --out data/water frames/frame_*`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertOutput, "output", "output.log", "name of the CP2K output file inside each run directory")
	convertCmd.Flags().StringVar(&convertWannier, "wannier", "wannier.xyz", "name of the Wannier centroid file inside each run directory")
	convertCmd.Flags().StringVar(&convertSpread, "spread", "", "name of the Wannier spread file inside each run directory, if any")
	convertCmd.Flags().StringVarP(&convertOut, "out", "o", "", "directory for the DeePMD-kit npy system (required)")
	convertCmd.Flags().Float64Var(&convertCutoff, "cutoff", 0, "Wannier assignment cutoff in A; overrides the parameter file")
	convertCmd.Flags().StringVar(&convertPlot, "plot", "", "also write a histogram of the dipole magnitudes to this image file")
	convertCmd.Flags().IntVar(&convertBins, "bins", 20, "bins for the --plot histogram")
	convertCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	if err := par.requireTypes(); err != nil {
		return err
	}
	cutoff := par.WannierCutoff
	if convertCutoff > 0 {
		cutoff = convertCutoff
	}
	dpar := &cp2k.DPLRParams{
		TypeMap:       par.TypeMap,
		SelType:       par.SelType,
		WannierCutoff: cutoff,
		SpreadFile:    convertSpread,
	}
	systems := []*dplr.LabeledSystem{}
	mags := []float64{}
	skipped := 0
	for _, dir := range args {
		sys, err := cp2k.ReadDPLRData(dir, convertOutput, convertWannier, dpar)
		if err != nil {
			if dplr.IsAssignment(err) {
				logger.Warn("skipping frame: bad wannier assignment", "dir", dir, "error", err)
				skipped++
				continue
			}
			return err
		}
		logger.Debug("frame converted", "dir", dir, "atoms", sys.Len(), "energy_eV", sys.Energies[0])
		if convertPlot != "" {
			sel, err := sys.SelIndices(par.TypeMap, par.SelType)
			if err != nil {
				return err
			}
			mags = append(mags, dplr.DipoleMagnitudes(sys.Dipole[0], sel)...)
		}
		systems = append(systems, sys)
	}
	if len(systems) == 0 {
		return fmt.Errorf("all %d frames were skipped, nothing to write", skipped)
	}
	dsys, err := deepmd.FromLabeled(systems...)
	if err != nil {
		return err
	}
	if err := dsys.Write(convertOut); err != nil {
		return err
	}
	logger.Info("system written", "dir", convertOut, "frames", dsys.NFrames(), "atoms", dsys.NAtoms(), "skipped", skipped)
	if convertPlot != "" {
		if err := dplr.HistogramPlot(mags, convertBins, "atomic dipole magnitudes", convertPlot); err != nil {
			return err
		}
		logger.Info("histogram written", "file", convertPlot)
	}
	return nil
}
