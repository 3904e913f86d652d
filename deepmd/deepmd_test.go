/*
 * deepmd_test.go, part of godplr.
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

package deepmd

import (
	"math"
	"testing"

	v3 "github.com/rmera/gochem/v3"
	"github.com/rmera/godplr"
	"gonum.org/v1/gonum/mat"
)

//labeledFrame builds a one-frame, 3-atom labeled system whose numbers
//are easy to recognize in the stacked tensors.
func labeledFrame(Te *testing.T, seed float64) *dplr.LabeledSystem {
	cell, err := dplr.NewCell([]float64{6, 0, 0, 0, 6, 0, 0, 0, 6})
	if err != nil {
		Te.Fatal(err)
	}
	coords := v3.Zeros(3)
	forces := v3.Zeros(3)
	dipole := v3.Zeros(3)
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			coords.Set(i, k, seed+float64(3*i+k))
			forces.Set(i, k, -seed-float64(3*i+k))
		}
	}
	dipole.Set(0, 0, seed) //only the oxygen has one
	spread := mat.NewDense(3, 4, nil)
	for k := 0; k < 4; k++ {
		spread.Set(0, k, seed/2+float64(k))
	}
	return &dplr.LabeledSystem{
		Names:    []string{"O", "H"},
		Types:    []int{0, 1, 1},
		Coords:   []*v3.Matrix{coords},
		Cells:    []*dplr.Cell{cell},
		Energies: []float64{-seed * 100},
		Forces:   []*v3.Matrix{forces},
		Dipole:   []*v3.Matrix{dipole},
		Spread:   []*mat.Dense{spread},
	}
}

func TestFromLabeled(Te *testing.T) {
	sys, err := FromLabeled(labeledFrame(Te, 1), labeledFrame(Te, 2))
	if err != nil {
		Te.Fatal(err)
	}
	if sys.NFrames() != 2 || sys.NAtoms() != 3 {
		Te.Fatalf("got %d frames of %d atoms, want 2 of 3", sys.NFrames(), sys.NAtoms())
	}
	r, c := sys.Coords.Dims()
	if r != 2 || c != 9 {
		Te.Errorf("coords are %dx%d, want 2x9", r, c)
	}
	if sys.Coords.At(1, 0) != 2 {
		Te.Errorf("frame 2 starts with %f, want 2", sys.Coords.At(1, 0))
	}
	if _, c := sys.Boxes.Dims(); c != 9 {
		Te.Error("boxes must have 9 columns")
	}
	if sys.AtomicDipole == nil || sys.WannierSpread == nil {
		Te.Fatal("dipole and spread must be carried over when every input has them")
	}
	if _, c := sys.WannierSpread.Dims(); c != 12 {
		Te.Errorf("spread has %d columns, want 12", c)
	}
	//hydrogens stay zero in the stacked dipole too
	if sys.AtomicDipole.At(0, 3) != 0 || sys.AtomicDipole.At(0, 0) != 1 {
		Te.Error("stacked dipole rows are scrambled")
	}
}

func TestFromLabeledPartialTensors(Te *testing.T) {
	with := labeledFrame(Te, 1)
	without := labeledFrame(Te, 2)
	without.Dipole = nil
	without.Spread = nil
	sys, err := FromLabeled(with, without)
	if err != nil {
		Te.Fatal(err)
	}
	if sys.AtomicDipole != nil || sys.WannierSpread != nil {
		Te.Error("tensors missing from some frames must not be carried over")
	}
}

func TestFromLabeledMismatch(Te *testing.T) {
	a := labeledFrame(Te, 1)
	b := labeledFrame(Te, 2)
	b.Types = []int{1, 1, 0}
	if _, err := FromLabeled(a, b); err == nil {
		Te.Error("mixed compositions must be rejected")
	}
}

func TestWriteReadRoundTrip(Te *testing.T) {
	sys, err := FromLabeled(labeledFrame(Te, 1), labeledFrame(Te, 2))
	if err != nil {
		Te.Fatal(err)
	}
	dir := Te.TempDir()
	if err := sys.Write(dir); err != nil {
		Te.Fatal(err)
	}
	back, err := ReadSystem(dir)
	if err != nil {
		Te.Fatal(err)
	}
	if !sameStrings(back.TypeMap, sys.TypeMap) || !sameInts(back.Types, sys.Types) {
		Te.Error("the type metadata did not survive the round trip")
	}
	if len(back.Energies) != 2 || math.Abs(back.Energies[0]-sys.Energies[0]) > 1e-12 {
		Te.Errorf("energies came back as %v", back.Energies)
	}
	for _, m := range []struct {
		name string
		a, b *mat.Dense
	}{
		{"coord", sys.Coords, back.Coords},
		{"box", sys.Boxes, back.Boxes},
		{"force", sys.Forces, back.Forces},
		{"atomic_dipole", sys.AtomicDipole, back.AtomicDipole},
		{"wannier_spread", sys.WannierSpread, back.WannierSpread},
	} {
		if m.b == nil {
			Te.Errorf("%s did not come back", m.name)
			continue
		}
		if !mat.EqualApprox(m.a, m.b, 1e-12) {
			Te.Errorf("%s did not survive the round trip", m.name)
		}
	}
}
