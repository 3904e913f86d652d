/*
 * deepmd.go, part of godplr.
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

//Package deepmd reads and writes DeePMD-kit "npy" training-data
//directories: type.raw and type_map.raw at the root, and the per-frame
//tensors stacked in NumPy files under set.000. It also migrates the
//atomic tensors between the layouts of DeePMD-kit v2 and v3.
package deepmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rmera/godplr"
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

//System is a DeePMD-kit data system: stacked frames of one fixed
//composition. All the matrices have one row per frame; coordinates and
//forces are flattened to natoms*3 columns, boxes to 9, the atomic
//dipole to natoms*3 and the Wannier spread to natoms*4. AtomicDipole
//and WannierSpread may be nil.
type System struct {
	TypeMap       []string
	Types         []int
	Coords        *mat.Dense
	Boxes         *mat.Dense
	Energies      []float64
	Forces        *mat.Dense
	AtomicDipole  *mat.Dense
	WannierSpread *mat.Dense
}

//NAtoms returns the number of atoms per frame.
func (S *System) NAtoms() int { return len(S.Types) }

//NFrames returns the number of frames.
func (S *System) NFrames() int { return len(S.Energies) }

//FromLabeled stacks one or more labeled systems, each with one or more
//frames, into one System. All of them must have the same composition
//(the same type map and the same per-atom types). The dipole and spread
//tensors are carried over only if every input has them, as a System
//with a tensor missing for some frames only would be unusable for
//training.
func FromLabeled(systems ...*dplr.LabeledSystem) (*System, error) {
	if len(systems) == 0 {
		return nil, fmt.Errorf("deepmd.FromLabeled: no systems given")
	}
	first := systems[0]
	natoms := first.Len()
	ret := &System{
		TypeMap: append([]string{}, first.Names...),
		Types:   append([]int{}, first.Types...),
	}
	coords := []float64{}
	boxes := []float64{}
	forces := []float64{}
	dipoles := []float64{}
	spreads := []float64{}
	withDipole := true
	withSpread := true
	nframes := 0
	for si, sys := range systems {
		if !sameStrings(sys.Names, first.Names) || !sameInts(sys.Types, first.Types) {
			return nil, fmt.Errorf("deepmd.FromLabeled: system %d has a different composition", si)
		}
		if sys.Dipole == nil {
			withDipole = false
		}
		if sys.Spread == nil {
			withSpread = false
		}
		for f := 0; f < sys.NFrames(); f++ {
			coords = appendFlat(coords, sys.Coords[f], 3)
			boxes = append(boxes, sys.Cells[f].Vectors()...)
			forces = appendFlat(forces, sys.Forces[f], 3)
			ret.Energies = append(ret.Energies, sys.Energies[f])
			if sys.Dipole != nil {
				dipoles = appendFlat(dipoles, sys.Dipole[f], 3)
			}
			if sys.Spread != nil {
				spreads = appendFlat(spreads, sys.Spread[f], 4)
			}
			nframes++
		}
	}
	ret.Coords = mat.NewDense(nframes, natoms*3, coords)
	ret.Boxes = mat.NewDense(nframes, 9, boxes)
	ret.Forces = mat.NewDense(nframes, natoms*3, forces)
	if withDipole {
		ret.AtomicDipole = mat.NewDense(nframes, natoms*3, dipoles)
	}
	if withSpread {
		ret.WannierSpread = mat.NewDense(nframes, natoms*4, spreads)
	}
	return ret, nil
}

//Write writes S under dir in the DeePMD-kit npy layout, with all the
//frames in a single set.000. dir is created if needed.
func (S *System) Write(dir string) error {
	set := filepath.Join(dir, "set.000")
	if err := os.MkdirAll(set, 0755); err != nil {
		return err
	}
	if err := writeRawInts(filepath.Join(dir, "type.raw"), S.Types); err != nil {
		return err
	}
	if err := writeRawStrings(filepath.Join(dir, "type_map.raw"), S.TypeMap); err != nil {
		return err
	}
	named := []struct {
		name string
		m    *mat.Dense
	}{
		{"coord.npy", S.Coords},
		{"box.npy", S.Boxes},
		{"force.npy", S.Forces},
		{"atomic_dipole.npy", S.AtomicDipole},
		{"wannier_spread.npy", S.WannierSpread},
	}
	for _, n := range named {
		if n.m == nil {
			continue
		}
		if err := WriteNpy(filepath.Join(set, n.name), n.m); err != nil {
			return err
		}
	}
	f, err := os.Create(filepath.Join(set, "energy.npy"))
	if err != nil {
		return err
	}
	defer f.Close()
	return npyio.Write(f, S.Energies)
}

//ReadSystem reads a DeePMD-kit npy data directory written by Write (a
//single set.000; multi-set systems are not handled).
func ReadSystem(dir string) (*System, error) {
	ret := new(System)
	var err error
	ret.Types, err = readRawInts(filepath.Join(dir, "type.raw"))
	if err != nil {
		return nil, err
	}
	ret.TypeMap, err = readRawStrings(filepath.Join(dir, "type_map.raw"))
	if err != nil {
		return nil, err
	}
	set := filepath.Join(dir, "set.000")
	shape, energies, err := ReadNpy(filepath.Join(set, "energy.npy"))
	if err != nil {
		return nil, err
	}
	if len(shape) != 1 {
		return nil, fmt.Errorf("deepmd: energy.npy should be 1D, has shape %v", shape)
	}
	ret.Energies = energies
	for _, n := range []struct {
		name     string
		m        **mat.Dense
		optional bool
	}{
		{"coord.npy", &ret.Coords, false},
		{"box.npy", &ret.Boxes, false},
		{"force.npy", &ret.Forces, false},
		{"atomic_dipole.npy", &ret.AtomicDipole, true},
		{"wannier_spread.npy", &ret.WannierSpread, true},
	} {
		fname := filepath.Join(set, n.name)
		if n.optional {
			if _, err := os.Stat(fname); err != nil {
				continue
			}
		}
		shape, data, err := ReadNpy(fname)
		if err != nil {
			return nil, err
		}
		if len(shape) != 2 || shape[0] != len(ret.Energies) {
			return nil, fmt.Errorf("deepmd: %s has shape %v, want (%d, ...)", n.name, shape, len(ret.Energies))
		}
		*n.m = mat.NewDense(shape[0], shape[1], data)
	}
	return ret, nil
}

//WriteNpy writes the matrix m to a NumPy binary file.
func WriteNpy(fname string, m *mat.Dense) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := npyio.Write(f, m); err != nil {
		return fmt.Errorf("deepmd: writing %s: %w", fname, err)
	}
	return nil
}

//ReadNpy reads a NumPy binary file of float64, returning its shape and
//its data in row-major order.
func ReadNpy(fname string) ([]int, []float64, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, nil, fmt.Errorf("deepmd: reading %s: %w", fname, err)
	}
	shape := r.Header.Descr.Shape
	n := 1
	for _, s := range shape {
		n *= s
	}
	data := make([]float64, n)
	if err := r.Read(&data); err != nil {
		return nil, nil, fmt.Errorf("deepmd: reading %s: %w", fname, err)
	}
	return shape, data, nil
}

func appendFlat(dst []float64, m mat.Matrix, cols int) []float64 {
	r, _ := m.Dims()
	for i := 0; i < r; i++ {
		for k := 0; k < cols; k++ {
			dst = append(dst, m.At(i, k))
		}
	}
	return dst
}

func writeRawInts(fname string, v []int) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, x := range v {
		fmt.Fprintf(w, "%d\n", x)
	}
	return w.Flush()
}

func writeRawStrings(fname string, v []string) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, x := range v {
		fmt.Fprintf(w, "%s\n", x)
	}
	return w.Flush()
}

//readRawStrings reads a whitespace-separated text file of tokens, the
//way np.loadtxt does for the .raw files.
func readRawStrings(fname string) ([]string, error) {
	b, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	return strings.Fields(string(b)), nil
}

func readRawInts(fname string) ([]int, error) {
	tokens, err := readRawStrings(fname)
	if err != nil {
		return nil, err
	}
	ret := make([]int, len(tokens))
	for i, t := range tokens {
		ret[i], err = strconv.Atoi(t)
		if err != nil {
			return nil, fmt.Errorf("deepmd: %s: %w", fname, err)
		}
	}
	return ret, nil
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
