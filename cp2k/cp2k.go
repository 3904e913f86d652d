/*
 * cp2k.go, part of godplr.
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

//Package cp2k reads the parts of a CP2K output file that are needed to
//label DPLR training data: cell vectors, atomic coordinates, total
//energy and atomic forces. It is a line-oriented parser of the sections
//CP2K prints, not a general CP2K toolkit. Energies come out in eV,
//forces in eV/A and everything else in A.
package cp2k

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	v3 "github.com/rmera/gochem/v3"
	"github.com/rmera/godplr"
)

//CODATA 2014, the values CP2K itself uses.
const (
	Hartree2eV    = 27.211386245988
	Bohr2A        = 0.52917721067
	HartreeBohr2eVA = Hartree2eV / Bohr2A
)

//the section markers in a CP2K output
const (
	cellMark   = "CELL| Vector"
	coordMark  = "ATOMIC COORDINATES"
	energyMark = "ENERGY| Total FORCE_EVAL"
	forceMark  = "ATOMIC FORCES"
	forceEnd   = "SUM OF ATOMIC FORCES"
)

//ReadOutputFile reads a CP2K output file (see ReadOutput). Files ending
//in .gz or .zst are decompressed on the fly.
func ReadOutputFile(name string) (*dplr.LabeledSystem, error) {
	fin, err := dplr.OpenInput(name)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	sys, err := ReadOutput(fin)
	if err != nil {
		return nil, fmt.Errorf("cp2k: %s: %w", name, err)
	}
	return sys, nil
}

//ReadOutput parses a CP2K output stream into a labeled system. Each
//"ATOMIC COORDINATES" section starts a frame; energies and forces are
//matched to frames in the order they appear, and the cell printed in
//the banner applies to every frame. It fails if the output holds no
//coordinates, or if the numbers of coordinate sections, energies and
//force sections disagree (e.g. a truncated run).
func ReadOutput(r io.Reader) (*dplr.LabeledSystem, error) {
	var cell *dplr.Cell
	cellvecs := make([]float64, 0, 9)
	names := []string{}
	var types []int
	coords := []*v3.Matrix{}
	energies := []float64{}
	forces := []*v3.Matrix{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.Contains(line, cellMark):
			fields := strings.Fields(line)
			if len(fields) < 3 {
				continue
			}
			//only the a, b and c vector lines; CP2K also prints
			//"CELL| Vector norms" style lines in some versions.
			if v := fields[2]; v != "a" && v != "b" && v != "c" {
				continue
			}
			if len(cellvecs) >= 9 { //a restarted banner; keep the first cell
				continue
			}
			vec, err := lastFloats(fields, 3)
			if err != nil {
				return nil, fmt.Errorf("cell line %q: %w", line, err)
			}
			cellvecs = append(cellvecs, vec...)
		case strings.Contains(line, coordMark):
			symbols, frame, err := readCoordBlock(scanner)
			if err != nil {
				return nil, err
			}
			frameTypes := make([]int, len(symbols))
			for i, s := range symbols {
				t := indexOf(names, s)
				if t < 0 {
					names = append(names, s)
					t = len(names) - 1
				}
				frameTypes[i] = t
			}
			if types == nil {
				types = frameTypes
			} else if len(types) != len(frameTypes) {
				return nil, fmt.Errorf("frame %d has %d atoms, previous frames have %d", len(coords)+1, len(frameTypes), len(types))
			}
			coords = append(coords, frame)
		case strings.Contains(line, energyMark):
			fields := strings.Fields(line)
			e, err := strconv.ParseFloat(fields[len(fields)-1], 64)
			if err != nil {
				return nil, fmt.Errorf("energy line %q: %w", line, err)
			}
			energies = append(energies, e*Hartree2eV)
		case strings.Contains(line, forceMark) && !strings.Contains(line, forceEnd):
			f, err := readForceBlock(scanner)
			if err != nil {
				return nil, err
			}
			forces = append(forces, f)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(coords) == 0 {
		return nil, fmt.Errorf("no atomic coordinates found: not a CP2K output?")
	}
	if len(cellvecs) != 9 {
		return nil, fmt.Errorf("found %d cell vector components, want 9", len(cellvecs))
	}
	if len(energies) != len(coords) || len(forces) != len(coords) {
		return nil, fmt.Errorf("inconsistent output: %d coordinate sections, %d energies, %d force sections", len(coords), len(energies), len(forces))
	}
	for _, f := range forces {
		if f.NVecs() != len(types) {
			return nil, fmt.Errorf("force section has %d atoms, coordinates have %d", f.NVecs(), len(types))
		}
	}
	var err error
	cell, err = dplr.NewCell(cellvecs)
	if err != nil {
		return nil, err
	}
	cells := make([]*dplr.Cell, len(coords))
	for i := range cells {
		cells[i] = cell
	}
	return &dplr.LabeledSystem{
		Names:    names,
		Types:    types,
		Coords:   coords,
		Cells:    cells,
		Energies: energies,
		Forces:   forces,
	}, nil
}

//readCoordBlock consumes an ATOMIC COORDINATES section: blank/header
//lines, then one line per atom with the fields
//  index kind element atomic-number x y z [zeff mass]
//ending at the first blank line after the atoms.
func readCoordBlock(scanner *bufio.Scanner) ([]string, *v3.Matrix, error) {
	symbols := []string{}
	data := []float64{}
	started := false
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			if started {
				break
			}
			continue
		}
		if _, err := strconv.Atoi(fields[0]); err != nil {
			if started {
				break
			}
			continue //the column header
		}
		if len(fields) < 7 {
			return nil, nil, fmt.Errorf("coordinate line %q: want at least 7 fields", scanner.Text())
		}
		started = true
		symbols = append(symbols, fields[2])
		for _, f := range fields[4:7] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("coordinate line %q: %w", scanner.Text(), err)
			}
			data = append(data, v)
		}
	}
	if len(symbols) == 0 {
		return nil, nil, fmt.Errorf("empty coordinates section")
	}
	m, err := v3.NewMatrix(data)
	return symbols, m, err
}

//readForceBlock consumes an ATOMIC FORCES section, converting a.u. to
//eV/A. The atom lines are
//  index kind element fx fy fz
//and the section ends at the SUM OF ATOMIC FORCES line.
func readForceBlock(scanner *bufio.Scanner) (*v3.Matrix, error) {
	data := []float64{}
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, forceEnd) {
			break
		}
		fields := strings.Fields(line)
		if len(fields) < 6 {
			continue //blank or header
		}
		if _, err := strconv.Atoi(fields[0]); err != nil {
			continue
		}
		for _, f := range fields[3:6] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("force line %q: %w", line, err)
			}
			data = append(data, v*HartreeBohr2eVA)
		}
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty forces section")
	}
	return v3.NewMatrix(data)
}

func lastFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want at least %d fields, got %d", n, len(fields))
	}
	ret := make([]float64, n)
	for i, f := range fields[len(fields)-n:] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		ret[i] = v
	}
	return ret, nil
}

func indexOf(container []string, test string) int {
	for i, s := range container {
		if s == test {
			return i
		}
	}
	return -1
}
