/*
 * doc.go, part of godplr.
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

/*Package dplr prepares training data and simulation inputs for DPLR,
the long-range/polarizable variant of the Deep Potential models.

DPLR needs, in addition to energies and forces, a per-atom "dipole"
label for the atoms that carry a Wannier centroid (say, the O in water).
This library builds those labels from CP2K output plus the maximally
localized Wannier centers printed by CP2K, and writes the auxiliary
files the DPLR workflow needs:

    Reads CP2K single-point/AIMD output (energy, forces, coordinates, cell).

    Assigns to each selected atom its four Wannier centers, under periodic
    boundary conditions, and computes the atomic dipole from them.

    Writes DeePMD-kit "npy" data directories, including the atomic_dipole
    and wannier_spread tensors (package deepmd).

    Migrates atomic tensor files between the DeePMD-kit v2 and v3
    layouts (package deepmd).

    Writes LAMMPS data files with the virtual (displaced-charge) atoms
    and bonds that the DPLR pair style expects (package lammps).

The naming of the parameters (type_map, sel_type, sys_charge_map,
model_charge_map) follows DeePMD-kit's, so they can be pasted from/to
a DeePMD input file. See https://docs.deepmodeling.com/projects/deepmd/en/master/model/dplr.html

This library uses goChem (github.com/rmera/gochem) for the chemistry
types and structure-file reading, and the gonum libraries for the
numerics.
*/
package dplr
