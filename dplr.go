/*
 * dplr.go, part of godplr.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package dplr

import (
	"fmt"

	v3 "github.com/rmera/gochem/v3"
	"gonum.org/v1/gonum/mat"
)

//LabeledSystem is one or more frames of an atomic system together with
//its labels: energies, forces and, once attached, the per-atom DPLR
//data. Everything is in A, eV and eV/A.
//
//The dipole and spread matrices span all the atoms of the system. Their
//rows are zero everywhere except at the indices of the selected atoms.
type LabeledSystem struct {
	Names    []string     //atom type names, in order of first appearance
	Types    []int        //per-atom index into Names
	Coords   []*v3.Matrix //one (natoms x 3) matrix per frame
	Cells    []*Cell      //one cell per frame
	Energies []float64    //one energy per frame, eV
	Forces   []*v3.Matrix //one (natoms x 3) matrix per frame, eV/A
	Dipole   []*v3.Matrix //per frame, natoms x 3. Nil until attached.
	Spread   []*mat.Dense //per frame, natoms x 4. Nil unless a spread file was given.
}

//Len returns the number of atoms per frame.
func (S *LabeledSystem) Len() int {
	return len(S.Types)
}

//NFrames returns the number of frames in the system.
func (S *LabeledSystem) NFrames() int {
	return len(S.Coords)
}

//Symbol returns the element symbol of the ith atom.
func (S *LabeledSystem) Symbol(i int) string {
	return S.Names[S.Types[i]]
}

//Symbols returns the element symbols of all atoms, in atom order.
func (S *LabeledSystem) Symbols() []string {
	ret := make([]string, len(S.Types))
	for i, t := range S.Types {
		ret[i] = S.Names[t]
	}
	return ret
}

//SelIndices returns the indices of the atoms whose symbol matches one
//of the types selected, by index, from typeMap. It fails if a selected
//index falls outside typeMap.
func (S *LabeledSystem) SelIndices(typeMap []string, selType []int) ([]int, error) {
	selSymbols, err := SelSymbols(typeMap, selType)
	if err != nil {
		return nil, err
	}
	return SelectedIndices(S.Symbols(), selSymbols), nil
}

//SelSymbols translates type indices into symbols using typeMap.
func SelSymbols(typeMap []string, selType []int) ([]string, error) {
	ret := make([]string, 0, len(selType))
	for _, t := range selType {
		if t < 0 || t >= len(typeMap) {
			return nil, fmt.Errorf("dplr: sel_type index %d out of range for type_map %v", t, typeMap)
		}
		ret = append(ret, typeMap[t])
	}
	return ret, nil
}

//SelectedIndices returns the indices, in order, of the symbols that are
//in sel.
func SelectedIndices(symbols []string, sel []string) []int {
	ret := []int{}
	for i, s := range symbols {
		if isInString(sel, s) {
			ret = append(ret, i)
		}
	}
	return ret
}

func isInString(container []string, test string) bool {
	for _, i := range container {
		if i == test {
			return true
		}
	}
	return false
}
