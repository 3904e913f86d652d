/*
 * data.go, part of godplr.
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

//Package lammps writes LAMMPS data files. Only the sections needed by
//bonded, charged systems (the "full" atom style) are supported.
package lammps

import (
	"fmt"
	"io"
	"math"

	v3 "github.com/rmera/gochem/v3"
	"gonum.org/v1/gonum/mat"
)

//Data is everything that goes into a LAMMPS data file: one symbol,
//charge and position per atom, the periodic cell (9 components,
//row-major, rows being the cell vectors) and the bond list. Each bond
//is {bond id, bond type, atom i, atom j}, all 1-based, as LAMMPS
//counts from 1.
type Data struct {
	Symbols []string
	Coords  *v3.Matrix
	Cell    []float64
	Charges []float64
	Bonds   [][4]int
	//Mass gives the mass for a symbol in the Masses section. If nil,
	//every type gets unit mass.
	Mass func(symbol string) float64
}

//lmpBox is a cell in the LAMMPS lower-triangular representation.
type lmpBox struct {
	lx, ly, lz float64
	xy, xz, yz float64
}

//triclinic returns whether any tilt factor is non-negligible.
func (b *lmpBox) triclinic() bool {
	const eps = 1e-10
	return math.Abs(b.xy) > eps || math.Abs(b.xz) > eps || math.Abs(b.yz) > eps
}

//reduceBox brings an arbitrary 3x3 cell to the lower-triangular form
//LAMMPS requires. It fails for left-handed or degenerate cells.
func reduceBox(cell []float64) (*lmpBox, error) {
	a := cell[0:3]
	b := cell[3:6]
	c := cell[6:9]
	na := norm(a)
	if na == 0 {
		return nil, fmt.Errorf("lammps: zero-length a vector")
	}
	box := new(lmpBox)
	box.lx = na
	box.xy = dot(b, a) / na
	ly2 := dot(b, b) - box.xy*box.xy
	if ly2 <= 0 {
		return nil, fmt.Errorf("lammps: degenerate cell: a and b are colinear")
	}
	box.ly = math.Sqrt(ly2)
	box.xz = dot(c, a) / na
	box.yz = (dot(b, c) - box.xy*box.xz) / box.ly
	lz2 := dot(c, c) - box.xz*box.xz - box.yz*box.yz
	if lz2 <= 0 {
		return nil, fmt.Errorf("lammps: degenerate cell: c is in the a-b plane")
	}
	box.lz = math.Sqrt(lz2)
	return box, nil
}

//vectors returns the reduced cell as 9 row-major components.
func (b *lmpBox) vectors() []float64 {
	return []float64{
		b.lx, 0, 0,
		b.xy, b.ly, 0,
		b.xz, b.yz, b.lz,
	}
}

//Write writes D to w as a LAMMPS data file. Atom types are assigned by
//position in specorder (1-based): every symbol in D must appear in
//specorder. Only the "full" atom style (id, molecule, type, charge,
//x, y, z) is implemented. Coordinates are mapped to the LAMMPS box
//frame, which is a no-op for cells that are already lower-triangular.
func (D *Data) Write(w io.Writer, atomStyle string, specorder []string) error {
	if atomStyle != "full" {
		return fmt.Errorf("lammps: unsupported atom style %q, only \"full\" is implemented", atomStyle)
	}
	natoms := len(D.Symbols)
	if D.Coords.NVecs() != natoms {
		return fmt.Errorf("lammps: %d symbols but %d coordinates", natoms, D.Coords.NVecs())
	}
	if len(D.Charges) != natoms {
		return fmt.Errorf("lammps: %d symbols but %d charges", natoms, len(D.Charges))
	}
	if len(D.Cell) != 9 {
		return fmt.Errorf("lammps: cell needs 9 components, got %d", len(D.Cell))
	}
	types := make([]int, natoms)
	for i, s := range D.Symbols {
		t := index(specorder, s)
		if t < 0 {
			return fmt.Errorf("lammps: symbol %s not in the species order %v", s, specorder)
		}
		types[i] = t + 1
	}
	for _, b := range D.Bonds {
		if b[2] < 1 || b[2] > natoms || b[3] < 1 || b[3] > natoms {
			return fmt.Errorf("lammps: bond %d connects %d-%d, outside 1..%d", b[0], b[2], b[3], natoms)
		}
	}
	box, err := reduceBox(D.Cell)
	if err != nil {
		return err
	}
	rot, err := boxRotation(D.Cell, box.vectors())
	if err != nil {
		return err
	}
	nbondtypes := 0
	for _, b := range D.Bonds {
		if b[1] > nbondtypes {
			nbondtypes = b[1]
		}
	}

	fmt.Fprintf(w, "LAMMPS data file, written by godplr\n\n")
	fmt.Fprintf(w, "%d atoms\n", natoms)
	fmt.Fprintf(w, "%d bonds\n", len(D.Bonds))
	fmt.Fprintf(w, "%d atom types\n", len(specorder))
	fmt.Fprintf(w, "%d bond types\n\n", nbondtypes)
	fmt.Fprintf(w, "0.0 %.10f  xlo xhi\n", box.lx)
	fmt.Fprintf(w, "0.0 %.10f  ylo yhi\n", box.ly)
	fmt.Fprintf(w, "0.0 %.10f  zlo zhi\n", box.lz)
	if box.triclinic() {
		fmt.Fprintf(w, "%.10f %.10f %.10f  xy xz yz\n", box.xy, box.xz, box.yz)
	}
	fmt.Fprintf(w, "\nMasses\n\n")
	for i, s := range specorder {
		m := 1.0
		if D.Mass != nil {
			m = D.Mass(s)
		}
		fmt.Fprintf(w, "%d %.6f  # %s\n", i+1, m, s)
	}
	fmt.Fprintf(w, "\nAtoms  # %s\n\n", atomStyle)
	p := make([]float64, 3)
	q := make([]float64, 3)
	for i := 0; i < natoms; i++ {
		for k := 0; k < 3; k++ {
			p[k] = D.Coords.At(i, k)
		}
		rot.apply(p, q)
		fmt.Fprintf(w, "%d %d %d %.10f %.10f %.10f %.10f\n", i+1, 0, types[i], D.Charges[i], q[0], q[1], q[2])
	}
	if len(D.Bonds) > 0 {
		fmt.Fprintf(w, "\nBonds\n\n")
		for _, b := range D.Bonds {
			fmt.Fprintf(w, "%d %d %d %d\n", b[0], b[1], b[2], b[3])
		}
	}
	return nil
}

//boxRotation maps coordinates given in the original cell to the reduced
//(lower triangular) cell: to fractional coordinates with the original
//cell, back to cartesians with the reduced one. Lengths and angles are
//preserved because the reduction is a rigid rotation of the cell.
type boxRot struct {
	m *mat.Dense //hinv(original) * h(reduced)
}

func boxRotation(orig, reduced []float64) (*boxRot, error) {
	h := mat.NewDense(3, 3, append([]float64{}, orig...))
	hinv := mat.NewDense(3, 3, nil)
	if err := hinv.Inverse(h); err != nil {
		return nil, fmt.Errorf("lammps: singular cell: %w", err)
	}
	hred := mat.NewDense(3, 3, append([]float64{}, reduced...))
	m := mat.NewDense(3, 3, nil)
	m.Mul(hinv, hred)
	return &boxRot{m: m}, nil
}

//apply transforms the row vector p, leaving the result in q.
func (r *boxRot) apply(p, q []float64) {
	for j := 0; j < 3; j++ {
		q[j] = p[0]*r.m.At(0, j) + p[1]*r.m.At(1, j) + p[2]*r.m.At(2, j)
	}
}

func dot(v, w []float64) float64 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

func norm(v []float64) float64 {
	return math.Sqrt(dot(v, v))
}

func index(container []string, test string) int {
	for i, s := range container {
		if s == test {
			return i
		}
	}
	return -1
}
