/*
 * wannier.go, part of godplr.
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
	"bufio"
	"fmt"
	"strconv"
	"strings"

	v3 "github.com/rmera/gochem/v3"
	"gonum.org/v1/gonum/mat"
)

//centersPerAtom is how many maximally localized Wannier centers each
//selected atom must own. For the water-like, closed-shell systems DPLR
//is used on, this is exactly 4 (one per electron pair), and the whole
//dipole construction hinges on it.
const centersPerAtom = 4

//ReadWannierCenters reads the Wannier centroid file written by CP2K (an
//XYZ file where the centers are tagged with the placeholder species
//"X") and returns the positions of the centers. Any real atoms that the
//file may also contain are ignored. Gzip/zstd-compressed files are
//handled transparently.
func ReadWannierCenters(name string) (*v3.Matrix, error) {
	fin, err := OpenInput(name)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	scanner := bufio.NewScanner(fin)
	if !scanner.Scan() {
		return nil, fmt.Errorf("dplr: empty wannier file %s", name)
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, fmt.Errorf("dplr: malformed wannier file %s: %w", name, err)
	}
	scanner.Scan() //the comment line
	coords := make([]float64, 0, 3*natoms)
	for i := 0; i < natoms && scanner.Scan(); i++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			return nil, fmt.Errorf("dplr: wannier file %s, atom %d: want 4 columns, got %d", name, i+1, len(fields))
		}
		if fields[0] != "X" {
			continue
		}
		for _, field := range fields[1:4] {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("dplr: wannier file %s, atom %d: %w", name, i+1, err)
			}
			coords = append(coords, val)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(coords) == 0 {
		return nil, fmt.Errorf("dplr: no wannier centers (species X) in %s", name)
	}
	return v3.NewMatrix(coords)
}

//ReadSpread reads a wannier_spread file as written by CP2K: two header
//lines, one trailing line, and in between one line per center with the
//spread-related values in the second and third columns. It returns the
//spread (the last of those columns) for each center, in center order.
func ReadSpread(name string) ([]float64, error) {
	fin, err := OpenInput(name)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	lines := []string{}
	scanner := bufio.NewScanner(fin)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) < 4 {
		return nil, fmt.Errorf("dplr: spread file %s too short (%d lines)", name, len(lines))
	}
	lines = lines[2 : len(lines)-1]
	ret := make([]float64, 0, len(lines))
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("dplr: spread file %s, center %d: want at least 3 columns, got %d", name, i+1, len(fields))
		}
		//column 1 is spread-related too, but only the last one is kept
		if _, err := strconv.ParseFloat(fields[1], 64); err != nil {
			return nil, fmt.Errorf("dplr: spread file %s, center %d: %w", name, i+1, err)
		}
		val, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("dplr: spread file %s, center %d: %w", name, i+1, err)
		}
		ret = append(ret, val)
	}
	return ret, nil
}

//AssignDipoles assigns to each atom in selIDs (indices into coords) its
//4 Wannier centers, i.e. all the centers within cutoff of that atom
//under the periodicity of cell, and returns one dipole per selected
//atom: the mean of the minimum-image displacements from the atom to its
//centers. The rows of the returned matrix follow the order of selIDs.
//
//If spread is not nil it must hold one value per center, and the second
//return is a len(selIDs) x 4 matrix with the spread of each assigned
//center, gathered in the same way. Otherwise that return is nil.
//
//The assignment is strict: an atom with more or fewer than 4 centers in
//range yields a CardinalityError, and a center in range of two atoms
//yields a DuplicateError. No partial result is ever returned; a frame
//that fails here has to be thrown away (see IsAssignment).
func AssignDipoles(coords *v3.Matrix, cell *Cell, selIDs []int, centers *v3.Matrix, cutoff float64, spread []float64) (*v3.Matrix, *mat.Dense, error) {
	ncenters := centers.NVecs()
	if spread != nil && len(spread) != ncenters {
		return nil, nil, &LengthError{Name: "spread", Got: len(spread), Want: ncenters, Mapped: "wannier centers"}
	}
	ref := v3.Zeros(len(selIDs))
	for i, id := range selIDs {
		for k := 0; k < 3; k++ {
			ref.Set(i, k, coords.At(id, k))
		}
	}
	dist := DistanceMatrix(ref, centers, cell)
	dipole := v3.Zeros(len(selIDs))
	var spr *mat.Dense
	if spread != nil {
		spr = mat.NewDense(len(selIDs), centersPerAtom, nil)
	}
	assigned := make(map[int]bool)
	nassigned := 0
	d := make([]float64, 3)
	for i := range selIDs {
		matched := []int{}
		for j := 0; j < ncenters; j++ {
			if dist.At(i, j) < cutoff {
				matched = append(matched, j)
			}
		}
		if len(matched) != centersPerAtom {
			return nil, nil, &CardinalityError{Atom: i, Found: len(matched), Cutoff: cutoff}
		}
		for mi, j := range matched {
			for k := 0; k < 3; k++ {
				d[k] = centers.At(j, k) - ref.At(i, k)
			}
			m := cell.MinImage(d)
			for k := 0; k < 3; k++ {
				dipole.Set(i, k, dipole.At(i, k)+m[k]/centersPerAtom)
			}
			if spr != nil {
				spr.Set(i, mi, spread[j])
			}
			assigned[j] = true
			nassigned++
		}
	}
	if len(assigned) != nassigned {
		return nil, nil, &DuplicateError{Assigned: len(assigned), Expected: nassigned}
	}
	return dipole, spr, nil
}

//AttachDipoles computes the atomic dipoles for the (single-frame)
//system from the Wannier centers and stores them in the system,
//scattered into full-size per-atom matrices that are zero at the
//non-selected atoms. The atoms of the types selected (by index into
//typeMap) by selType get a dipole; spread may be nil.
func AttachDipoles(sys *LabeledSystem, typeMap []string, selType []int, centers *v3.Matrix, cutoff float64, spread []float64) error {
	if n := sys.NFrames(); n != 1 {
		return fmt.Errorf("dplr.AttachDipoles: only single-frame systems are supported, got %d frames", n)
	}
	selIDs, err := sys.SelIndices(typeMap, selType)
	if err != nil {
		return err
	}
	if len(selIDs) == 0 {
		return fmt.Errorf("dplr.AttachDipoles: no atom matches the selected types %v of %v", selType, typeMap)
	}
	dip, spr, err := AssignDipoles(sys.Coords[0], sys.Cells[0], selIDs, centers, cutoff, spread)
	if err != nil {
		return err
	}
	natoms := sys.Len()
	full := v3.Zeros(natoms)
	for i, id := range selIDs {
		for k := 0; k < 3; k++ {
			full.Set(id, k, dip.At(i, k))
		}
	}
	sys.Dipole = []*v3.Matrix{full}
	if spr != nil {
		fullspr := mat.NewDense(natoms, centersPerAtom, nil)
		for i, id := range selIDs {
			for k := 0; k < centersPerAtom; k++ {
				fullspr.Set(id, k, spr.At(i, k))
			}
		}
		sys.Spread = []*mat.Dense{fullspr}
	}
	return nil
}
