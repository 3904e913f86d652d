/*
 * virtual.go, part of godplr.
 *
 * Copyright 2023 Raul Mera <rmeraaATacademicosDOTutaDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package dplr

import (
	"io"

	chem "github.com/rmera/gochem"
	v3 "github.com/rmera/gochem/v3"
	"github.com/rmera/godplr/lammps"
)

//UnusedSymbols returns size element symbols not present in used. The
//canonical symbol list is scanned backwards, so the symbols come out as
//Og, Ts, Lv... for an ordinary type map, always in the same order. The
//DPLR LAMMPS setup needs a fresh symbol per selected type to tell the
//virtual atoms from the real ones.
func UnusedSymbols(used []string, size int) []string {
	ret := make([]string, 0, size)
	for i := len(ChemicalSymbols) - 1; i >= 0 && len(ret) < size; i-- {
		if !isInString(used, ChemicalSymbols[i]) {
			ret = append(ret, ChemicalSymbols[i])
		}
	}
	return ret
}

//VirtualData builds the LAMMPS representation of a DPLR system: the
//atoms of mol plus, for each type selected (by index into typeMap) by
//selType, one virtual atom per real atom of that type, placed on top of
//its real partner and bonded to it (bond type 1, sequential bond ids,
//1-based indices). Real atoms are charged by type from sysChargeMap and
//virtual ones from modelChargeMap; the naming of the parameters follows
//DeePMD-kit's. The virtual atoms get fresh symbols as per UnusedSymbols,
//appended to the species order after typeMap.
//
//Both charge maps are checked against their type lists before anything
//is built.
func VirtualData(mol chem.Atomer, coords *v3.Matrix, cell *Cell, typeMap []string, selType []int, sysChargeMap, modelChargeMap []float64) (*lammps.Data, []string, error) {
	if len(sysChargeMap) != len(typeMap) {
		return nil, nil, &LengthError{Name: "sys_charge_map", Got: len(sysChargeMap), Want: len(typeMap), Mapped: "type_map"}
	}
	if len(modelChargeMap) != len(selType) {
		return nil, nil, &LengthError{Name: "model_charge_map", Got: len(modelChargeMap), Want: len(selType), Mapped: "sel_type"}
	}
	selSymbols, err := SelSymbols(typeMap, selType)
	if err != nil {
		return nil, nil, err
	}
	natoms := mol.Len()
	symbols := make([]string, natoms)
	for i := 0; i < natoms; i++ {
		symbols[i] = mol.Atom(i).Symbol
	}
	vtypes := UnusedSymbols(typeMap, len(selType))

	rAtomIDs := []int{}
	vAtomIDs := []int{}
	vSymbols := []string{}
	vCoordIDs := []int{} //index of the real atom each virtual one sits on
	for k, sym := range selSymbols {
		for i := 0; i < natoms; i++ {
			if symbols[i] != sym {
				continue
			}
			rAtomIDs = append(rAtomIDs, i)
			vAtomIDs = append(vAtomIDs, natoms+len(vSymbols))
			vSymbols = append(vSymbols, vtypes[k])
			vCoordIDs = append(vCoordIDs, i)
		}
	}
	total := natoms + len(vSymbols)
	allSymbols := append(append([]string{}, symbols...), vSymbols...)
	allCoords := v3.Zeros(total)
	for i := 0; i < natoms; i++ {
		for k := 0; k < 3; k++ {
			allCoords.Set(i, k, coords.At(i, k))
		}
	}
	for v, i := range vCoordIDs {
		for k := 0; k < 3; k++ {
			allCoords.Set(natoms+v, k, coords.At(i, k))
		}
	}
	//charges by symbol over the concatenated type lists. Symbols not in
	//either list stay neutral.
	chargeOf := map[string]float64{}
	for i, t := range typeMap {
		chargeOf[t] = sysChargeMap[i]
	}
	for i, t := range vtypes {
		chargeOf[t] = modelChargeMap[i]
	}
	charges := make([]float64, total)
	for i, s := range allSymbols {
		charges[i] = chargeOf[s]
	}
	bonds := make([][4]int, len(rAtomIDs))
	for i := range rAtomIDs {
		bonds[i] = [4]int{i + 1, 1, rAtomIDs[i] + 1, vAtomIDs[i] + 1}
	}
	data := &lammps.Data{
		Symbols: allSymbols,
		Coords:  allCoords,
		Cell:    cell.Vectors(),
		Charges: charges,
		Bonds:   bonds,
		Mass:    SymbolMass,
	}
	return data, append(append([]string{}, typeMap...), vtypes...), nil
}

//WriteLammpsData builds the DPLR system via VirtualData and writes it
//to w as a "full"-style LAMMPS data file, with the species ordered as
//typeMap followed by the virtual symbols.
func WriteLammpsData(w io.Writer, mol chem.Atomer, coords *v3.Matrix, cell *Cell, typeMap []string, selType []int, sysChargeMap, modelChargeMap []float64) error {
	data, specorder, err := VirtualData(mol, coords, cell, typeMap, selType, sysChargeMap, modelChargeMap)
	if err != nil {
		return err
	}
	return data.Write(w, "full", specorder)
}
