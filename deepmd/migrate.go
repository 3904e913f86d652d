/*
 * migrate.go, part of godplr.
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
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/rmera/godplr"
	"gonum.org/v1/gonum/mat"
)

//The per-atom tensors whose layout changed between DeePMD-kit v2 and
//v3. In v2 they hold only the selected atoms (nframes x nsel*dim); in
//v3 they span all atoms (nframes x natoms*dim), zero at the atoms that
//are not selected.
var atomicTensorFiles = []string{
	"atomic_dipole.npy",
	"atomic_polarizability.npy",
	"wannier_spread.npy",
}

//V2ToV3 rewrites, in place, every atomic tensor file found recursively
//under dataPath from the v2 (selected atoms only) to the v3 (all atoms,
//zero-padded) layout. selSymbol lists the element symbols of the
//selected atoms; the selection indices are recomputed per file from the
//type_map.raw and type.raw next to each set directory. It returns the
//paths of the rewritten files.
func V2ToV3(dataPath string, selSymbol []string) ([]string, error) {
	return migrateAll(dataPath, selSymbol, expandTensor)
}

//V3ToV2 is the inverse of V2ToV3: it gathers the rows of the selected
//atoms out of the full tensors, dropping the zero padding.
func V3ToV2(dataPath string, selSymbol []string) ([]string, error) {
	return migrateAll(dataPath, selSymbol, compactTensor)
}

func migrateAll(dataPath string, selSymbol []string, f func(fname string, selIDs []int, natoms int) error) ([]string, error) {
	fnames := []string{}
	err := filepath.WalkDir(dataPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isInString(atomicTensorFiles, d.Name()) {
			fnames = append(fnames, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	done := []string{}
	for _, fname := range fnames {
		selIDs, natoms, err := selection(fname, selSymbol)
		if err != nil {
			return done, err
		}
		if err := f(fname, selIDs, natoms); err != nil {
			return done, err
		}
		done = append(done, fname)
	}
	return done, nil
}

//selection recomputes the selected atom indices for a tensor file from
//the type metadata of its system (one directory up from the set
//directory that holds the tensor).
func selection(fname string, selSymbol []string) ([]int, int, error) {
	sysdir := filepath.Join(filepath.Dir(fname), "..")
	typeMap, err := readRawStrings(filepath.Join(sysdir, "type_map.raw"))
	if err != nil {
		return nil, 0, err
	}
	types, err := readRawInts(filepath.Join(sysdir, "type.raw"))
	if err != nil {
		return nil, 0, err
	}
	symbols := make([]string, len(types))
	for i, t := range types {
		if t < 0 || t >= len(typeMap) {
			return nil, 0, fmt.Errorf("deepmd: %s: atom type %d out of range for type map %v", sysdir, t, typeMap)
		}
		symbols[i] = typeMap[t]
	}
	selIDs := dplr.SelectedIndices(symbols, selSymbol)
	if len(selIDs) == 0 {
		return nil, 0, fmt.Errorf("deepmd: %s: no atom matches the selected symbols %v", sysdir, selSymbol)
	}
	return selIDs, len(types), nil
}

//expandTensor rewrites one v2 tensor as v3. The frame count is read off
//the stored shape before anything is reshaped.
func expandTensor(fname string, selIDs []int, natoms int) error {
	shape, data, err := ReadNpy(fname)
	if err != nil {
		return err
	}
	if len(shape) != 2 {
		return fmt.Errorf("deepmd: %s: want a 2D tensor, got shape %v", fname, shape)
	}
	nframes := shape[0]
	if shape[1]%len(selIDs) != 0 {
		return fmt.Errorf("deepmd: %s: row length %d not divisible by the %d selected atoms: wrong selection or already v3?", fname, shape[1], len(selIDs))
	}
	ndim := shape[1] / len(selIDs)
	full := mat.NewDense(nframes, natoms*ndim, nil)
	for f := 0; f < nframes; f++ {
		for i, id := range selIDs {
			for k := 0; k < ndim; k++ {
				full.Set(f, id*ndim+k, data[f*shape[1]+i*ndim+k])
			}
		}
	}
	return WriteNpy(fname, full)
}

//compactTensor rewrites one v3 tensor as v2.
func compactTensor(fname string, selIDs []int, natoms int) error {
	shape, data, err := ReadNpy(fname)
	if err != nil {
		return err
	}
	if len(shape) != 2 {
		return fmt.Errorf("deepmd: %s: want a 2D tensor, got shape %v", fname, shape)
	}
	nframes := shape[0]
	if shape[1]%natoms != 0 {
		return fmt.Errorf("deepmd: %s: row length %d not divisible by %d atoms: already v2?", fname, shape[1], natoms)
	}
	ndim := shape[1] / natoms
	compact := mat.NewDense(nframes, len(selIDs)*ndim, nil)
	for f := 0; f < nframes; f++ {
		for i, id := range selIDs {
			for k := 0; k < ndim; k++ {
				compact.Set(f, i*ndim+k, data[f*shape[1]+id*ndim+k])
			}
		}
	}
	return WriteNpy(fname, compact)
}

func isInString(container []string, test string) bool {
	for _, s := range container {
		if s == test {
			return true
		}
	}
	return false
}
