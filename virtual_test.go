/*
 * virtual_test.go, part of godplr.
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
	"bytes"
	"errors"
	"strings"
	"testing"

	chem "github.com/rmera/gochem"
	v3 "github.com/rmera/gochem/v3"
)

//testAtoms is the smallest chem.Atomer there is.
type testAtoms []*chem.Atom

func (T testAtoms) Atom(i int) *chem.Atom { return T[i] }
func (T testAtoms) Len() int              { return len(T) }

func waterAtoms() (testAtoms, *v3.Matrix) {
	symbols := []string{"O", "O", "H", "H", "H", "H"}
	atoms := make(testAtoms, len(symbols))
	for i, s := range symbols {
		atoms[i] = &chem.Atom{Symbol: s}
	}
	coords, _ := v3.NewMatrix([]float64{
		1.0, 1.0, 1.0,
		5.8, 3.0, 3.0,
		1.757, 1.586, 1.0,
		0.243, 1.586, 1.0,
		5.043, 3.586, 3.0,
		0.557, 3.586, 3.0,
	})
	return atoms, coords
}

func TestUnusedSymbols(Te *testing.T) {
	syms := UnusedSymbols([]string{"O", "H"}, 3)
	want := []string{"Og", "Ts", "Lv"}
	for i, s := range syms {
		if s != want[i] {
			Te.Errorf("symbol %d: got %s, want %s", i, s, want[i])
		}
	}
	//symbols already in use are skipped, and the order stays deterministic
	syms = UnusedSymbols([]string{"O", "H", "Og"}, 2)
	if syms[0] != "Ts" || syms[1] != "Lv" {
		Te.Errorf("got %v, want [Ts Lv]", syms)
	}
}

func TestVirtualData(Te *testing.T) {
	atoms, coords := waterAtoms()
	cell := cubicCell(Te, 6)
	data, specorder, err := VirtualData(atoms, coords, cell,
		[]string{"O", "H"}, []int{0}, []float64{6, 1}, []float64{-8})
	if err != nil {
		Te.Fatal(err)
	}
	if len(data.Symbols) != 8 {
		Te.Fatalf("got %d atoms, want 8 (6 real plus one virtual per oxygen)", len(data.Symbols))
	}
	if data.Symbols[6] != "Og" || data.Symbols[7] != "Og" {
		Te.Errorf("virtual atoms are %s,%s, want Og,Og", data.Symbols[6], data.Symbols[7])
	}
	wantQ := []float64{6, 6, 1, 1, 1, 1, -8, -8}
	for i, q := range data.Charges {
		if q != wantQ[i] {
			Te.Errorf("atom %d: charge %f, want %f", i+1, q, wantQ[i])
		}
	}
	wantBonds := [][4]int{{1, 1, 1, 7}, {2, 1, 2, 8}}
	if len(data.Bonds) != 2 {
		Te.Fatalf("got %d bonds, want 2", len(data.Bonds))
	}
	for i, b := range data.Bonds {
		if b != wantBonds[i] {
			Te.Errorf("bond %d: got %v, want %v", i, b, wantBonds[i])
		}
	}
	//each virtual atom sits exactly on its real partner
	for v, r := range map[int]int{6: 0, 7: 1} {
		for k := 0; k < 3; k++ {
			if data.Coords.At(v, k) != coords.At(r, k) {
				Te.Errorf("virtual atom %d is not on top of atom %d", v+1, r+1)
			}
		}
	}
	if len(specorder) != 3 || specorder[0] != "O" || specorder[1] != "H" || specorder[2] != "Og" {
		Te.Errorf("species order %v, want [O H Og]", specorder)
	}
}

func TestVirtualDataBadMaps(Te *testing.T) {
	atoms, coords := waterAtoms()
	cell := cubicCell(Te, 6)
	var lerr *LengthError
	_, _, err := VirtualData(atoms, coords, cell,
		[]string{"O", "H"}, []int{0}, []float64{6}, []float64{-8})
	if !errors.As(err, &lerr) {
		Te.Errorf("a short sys_charge_map gave %T (%v), want a *LengthError", err, err)
	}
	_, _, err = VirtualData(atoms, coords, cell,
		[]string{"O", "H"}, []int{0}, []float64{6, 1}, []float64{-8, -8})
	if !errors.As(err, &lerr) {
		Te.Errorf("a long model_charge_map gave %T (%v), want a *LengthError", err, err)
	}
}

func TestWriteLammpsData(Te *testing.T) {
	atoms, coords := waterAtoms()
	cell := cubicCell(Te, 6)
	var buf bytes.Buffer
	err := WriteLammpsData(&buf, atoms, coords, cell,
		[]string{"O", "H"}, []int{0}, []float64{6, 1}, []float64{-8})
	if err != nil {
		Te.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"8 atoms",
		"2 bonds",
		"3 atom types",
		"1 bond types",
		"Atoms  # full",
		"\n1 1 1 7\n",
		"\n2 1 2 8\n",
	} {
		if !strings.Contains(out, want) {
			Te.Errorf("data file is missing %q:\n%s", want, out)
		}
	}
	//a cubic cell must not get a tilt line
	if strings.Contains(out, "xy xz yz") {
		Te.Error("a cubic box got a triclinic tilt line")
	}
}
