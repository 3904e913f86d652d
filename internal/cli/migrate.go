package cli

import (
	"fmt"

	"github.com/rmera/godplr/deepmd"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate <v2tov3|v3tov2> <data-path>",
	Short: "Migrate atomic tensor files between DeePMD-kit v2 and v3 layouts",
	Long: `Rewrite, in place, every atomic_dipole.npy, atomic_polarizability.npy
and wannier_spread.npy found recursively under data-path between the v2
layout (selected atoms only) and the v3 layout (all atoms, zero-padded).
The selection is recomputed per system from its type_map.raw/type.raw
and the sel_symbol (or type_map + sel_type) parameters.`,
	Args: cobra.ExactArgs(2),
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	sel, err := par.selSymbols()
	if err != nil {
		return err
	}
	var done []string
	switch args[0] {
	case "v2tov3":
		done, err = deepmd.V2ToV3(args[1], sel)
	case "v3tov2":
		done, err = deepmd.V3ToV2(args[1], sel)
	default:
		return fmt.Errorf("unknown direction %q, want v2tov3 or v3tov2", args[0])
	}
	for _, f := range done {
		logger.Debug("migrated", "file", f)
	}
	if err != nil {
		return fmt.Errorf("after migrating %d files: %w", len(done), err)
	}
	logger.Info("migration done", "direction", args[0], "files", len(done))
	return nil
}
