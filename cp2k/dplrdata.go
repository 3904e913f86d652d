/*
 * dplrdata.go, part of godplr.
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

package cp2k

import (
	"fmt"
	"path/filepath"

	"github.com/rmera/godplr"
)

//DPLRParams collects the parameters of a CP2K-to-DPLR conversion. The
//names match the corresponding DeePMD-kit parameters.
type DPLRParams struct {
	TypeMap       []string //e.g. [O, H]
	SelType       []int    //indices into TypeMap of the atoms that get a dipole, e.g. [0]
	WannierCutoff float64  //in A. 1.0 is right for water; 0 means 1.0
	SpreadFile    string   //relative to the run directory; empty to skip spreads
}

//ReadDPLRData builds a fully labeled single-frame system from a CP2K
//run directory: it parses the output file, reads the Wannier centers
//from wannierFile (both paths relative to dir) and attaches the atomic
//dipoles, plus the Wannier spreads if a spread file was given.
//
//A frame whose Wannier centers cannot be cleanly assigned (the wrong
//number of centers around an atom, or a center claimed twice) comes
//back as an error for which dplr.IsAssignment is true. Batch callers
//should treat those as "skip this frame, count it, move on" rather than
//abort; anything else is a real failure.
func ReadDPLRData(dir, output, wannierFile string, par *DPLRParams) (*dplr.LabeledSystem, error) {
	cutoff := par.WannierCutoff
	if cutoff == 0 {
		cutoff = 1.0
	}
	sys, err := ReadOutputFile(filepath.Join(dir, output))
	if err != nil {
		return nil, err
	}
	if n := sys.NFrames(); n != 1 {
		return nil, fmt.Errorf("cp2k.ReadDPLRData: %s: only single-frame outputs are supported, got %d frames", output, n)
	}
	centers, err := dplr.ReadWannierCenters(filepath.Join(dir, wannierFile))
	if err != nil {
		return nil, err
	}
	var spread []float64
	if par.SpreadFile != "" {
		spread, err = dplr.ReadSpread(filepath.Join(dir, par.SpreadFile))
		if err != nil {
			return nil, err
		}
	}
	err = dplr.AttachDipoles(sys, par.TypeMap, par.SelType, centers, cutoff, spread)
	if err != nil {
		return nil, fmt.Errorf("cp2k.ReadDPLRData: %s: %w", dir, err)
	}
	return sys, nil
}
