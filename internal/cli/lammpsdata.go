package cli

import (
	"fmt"
	"os"
	"strings"

	chem "github.com/rmera/gochem"
	"github.com/rmera/godplr"
	"github.com/spf13/cobra"
)

var lammpsOut string

var lammpsCmd = &cobra.Command{
	Use:   "lammpsdata <structure-file>",
	Short: "Write a LAMMPS data file with DPLR virtual atoms and bonds",
	Long: `Read a structure (xyz, pdb or gro) and write a "full"-style LAMMPS
data file for DPLR: each atom of a selected type gets a virtual partner
atom bonded to it, real atoms are charged from sys_charge_map and
virtual ones from model_charge_map. xyz input needs the cell in the
parameter file.

Example:
  dplr lammpsdata --params water.toml -o water.data water.xyz`,
	Args: cobra.ExactArgs(1),
	RunE: runLammpsData,
}

func init() {
	lammpsCmd.Flags().StringVarP(&lammpsOut, "out", "o", "", "output data file (required)")
	lammpsCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(lammpsCmd)
}

func runLammpsData(cmd *cobra.Command, args []string) error {
	if err := par.requireTypes(); err != nil {
		return err
	}
	name := args[0]
	var mol *chem.Molecule
	var err error
	parts := strings.Split(name, ".")
	switch strings.ToLower(parts[len(parts)-1]) {
	case "xyz":
		mol, err = chem.XYZFileRead(name)
	case "pdb":
		mol, err = chem.PDBFileRead(name, false)
	case "gro":
		mol, err = chem.GroFileRead(name)
	default:
		err = fmt.Errorf("structure format of %s not supported (xyz, pdb and gro are)", name)
	}
	if err != nil {
		return err
	}
	cell, err := par.cell()
	if err != nil {
		return err
	}
	fout, err := os.Create(lammpsOut)
	if err != nil {
		return err
	}
	defer fout.Close()
	err = dplr.WriteLammpsData(fout, mol, mol.Coords[0], cell, par.TypeMap, par.SelType, par.SysChargeMap, par.ModelChargeMap)
	if err != nil {
		return err
	}
	logger.Info("data file written", "file", lammpsOut, "atoms", mol.Len())
	return nil
}
