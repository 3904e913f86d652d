/*
 * migrate_test.go, part of godplr.
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
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"
)

//v2System writes a minimal DeePMD v2 system under dir: 6 atoms (2 O,
//4 H), 2 frames, with the atomic dipole holding only the oxygens.
func v2System(Te *testing.T, dir string) string {
	if err := writeRawStrings(filepath.Join(dir, "type_map.raw"), []string{"O", "H"}); err != nil {
		Te.Fatal(err)
	}
	if err := writeRawInts(filepath.Join(dir, "type.raw"), []int{0, 0, 1, 1, 1, 1}); err != nil {
		Te.Fatal(err)
	}
	set := filepath.Join(dir, "set.000")
	if err := os.MkdirAll(set, 0755); err != nil {
		Te.Fatal(err)
	}
	compact := mat.NewDense(2, 6, []float64{
		1, 2, 3, 4, 5, 6,
		7, 8, 9, 10, 11, 12,
	})
	fname := filepath.Join(set, "atomic_dipole.npy")
	if err := WriteNpy(fname, compact); err != nil {
		Te.Fatal(err)
	}
	return fname
}

func TestV2ToV3(Te *testing.T) {
	dir := Te.TempDir()
	fname := v2System(Te, dir)
	done, err := V2ToV3(dir, []string{"O"})
	if err != nil {
		Te.Fatal(err)
	}
	if len(done) != 1 || done[0] != fname {
		Te.Fatalf("rewrote %v, want just %s", done, fname)
	}
	shape, data, err := ReadNpy(fname)
	if err != nil {
		Te.Fatal(err)
	}
	//2 frames with more than one frame's worth of data is exactly the
	//case where getting the frame count wrong scrambles the tensor
	if len(shape) != 2 || shape[0] != 2 || shape[1] != 18 {
		Te.Fatalf("expanded shape is %v, want [2 18]", shape)
	}
	full := mat.NewDense(2, 18, data)
	want := mat.NewDense(2, 18, []float64{
		1, 2, 3, 4, 5, 6, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		7, 8, 9, 10, 11, 12, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	})
	if !mat.EqualApprox(full, want, 1e-12) {
		Te.Errorf("expanded tensor is wrong:\n%v", mat.Formatted(full))
	}
}

func TestMigrateRoundTrip(Te *testing.T) {
	dir := Te.TempDir()
	fname := v2System(Te, dir)
	_, original, err := ReadNpy(fname)
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := V2ToV3(dir, []string{"O"}); err != nil {
		Te.Fatal(err)
	}
	if _, err := V3ToV2(dir, []string{"O"}); err != nil {
		Te.Fatal(err)
	}
	shape, back, err := ReadNpy(fname)
	if err != nil {
		Te.Fatal(err)
	}
	if len(shape) != 2 || shape[0] != 2 || shape[1] != 6 {
		Te.Fatalf("round-tripped shape is %v, want [2 6]", shape)
	}
	for i := range original {
		if back[i] != original[i] {
			Te.Fatalf("element %d changed from %f to %f in the round trip", i, original[i], back[i])
		}
	}
}

func TestMigrateBadSelection(Te *testing.T) {
	dir := Te.TempDir()
	v2System(Te, dir)
	//He is not in the system at all
	if _, err := V2ToV3(dir, []string{"He"}); err == nil {
		Te.Error("an empty selection must be rejected")
	}
	//selecting O and H makes 6 selected atoms, and 6 columns over 6
	//atoms is 1 component per atom: that is divisible, but selecting
	//only the hydrogens is not
	if _, err := V2ToV3(dir, []string{"H"}); err == nil {
		Te.Error("a selection that does not divide the row length must be rejected")
	}
}
