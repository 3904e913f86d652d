/*
 * files_test.go, part of godplr.
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
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestOpenInputZst(Te *testing.T) {
	plain, err := os.ReadFile("test/wannier.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	fname := filepath.Join(Te.TempDir(), "wannier.xyz.zst")
	f, err := os.Create(fname)
	if err != nil {
		Te.Fatal(err)
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := enc.Write(plain); err != nil {
		Te.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		Te.Fatal(err)
	}
	if err := f.Close(); err != nil {
		Te.Fatal(err)
	}
	fin, err := OpenInput(fname)
	if err != nil {
		Te.Fatal(err)
	}
	defer fin.Close()
	back, err := io.ReadAll(fin)
	if err != nil {
		Te.Fatal(err)
	}
	if string(back) != string(plain) {
		Te.Error("the decompressed contents do not match the original")
	}
	//and the compressed file parses like the plain one
	centers, err := ReadWannierCenters(fname)
	if err != nil {
		Te.Fatal(err)
	}
	if centers.NVecs() != 8 {
		Te.Errorf("got %d centers from the zst file, want 8", centers.NVecs())
	}
}
