package cli

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
	"github.com/rmera/godplr"
)

// Params are the DPLR conversion parameters, read from a TOML file.
// The naming follows DeePMD-kit's. A minimal file for water:
//
//	type_map = ["O", "H"]
//	sel_type = [0]
//	sys_charge_map = [6.0, 1.0]
//	model_charge_map = [-8.0]
//	wannier_cutoff = 1.0
type Params struct {
	TypeMap        []string  `toml:"type_map"`
	SelType        []int     `toml:"sel_type"`
	SysChargeMap   []float64 `toml:"sys_charge_map"`
	ModelChargeMap []float64 `toml:"model_charge_map"`
	WannierCutoff  float64   `toml:"wannier_cutoff"`
	// SelSymbol names the selected atoms directly, for the commands
	// that work on stored data where only symbols matter (migrate,
	// plot). If empty, it is derived from TypeMap and SelType.
	SelSymbol []string `toml:"sel_symbol"`
	// Cell, 3 (orthorhombic) or 9 components, for structure formats
	// that do not carry one (xyz).
	Cell []float64 `toml:"cell"`
}

// LoadParams parses the TOML parameter file at path. An empty path
// yields empty parameters, for the commands that can do without them.
func LoadParams(path string) (*Params, error) {
	p := new(Params)
	if path == "" {
		return p, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := toml.NewDecoder(f).Decode(p); err != nil {
		return nil, fmt.Errorf("parameter file %s: %w", path, err)
	}
	return p, nil
}

// selSymbols returns the symbols of the selected atoms, from SelSymbol
// or derived from TypeMap and SelType.
func (p *Params) selSymbols() ([]string, error) {
	if len(p.SelSymbol) > 0 {
		return p.SelSymbol, nil
	}
	if len(p.TypeMap) == 0 || len(p.SelType) == 0 {
		return nil, fmt.Errorf("the parameter file must set sel_symbol, or type_map and sel_type")
	}
	return dplr.SelSymbols(p.TypeMap, p.SelType)
}

// cell builds the periodic cell from the Cell parameter.
func (p *Params) cell() (*dplr.Cell, error) {
	switch len(p.Cell) {
	case 3:
		return dplr.NewCell([]float64{
			p.Cell[0], 0, 0,
			0, p.Cell[1], 0,
			0, 0, p.Cell[2],
		})
	case 9:
		return dplr.NewCell(p.Cell)
	}
	return nil, fmt.Errorf("the cell parameter needs 3 or 9 components, got %d", len(p.Cell))
}

func (p *Params) requireTypes() error {
	if len(p.TypeMap) == 0 || len(p.SelType) == 0 {
		return fmt.Errorf("this command needs type_map and sel_type in the parameter file (--params)")
	}
	return nil
}
