/*
 * errors.go, part of godplr.
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
	"errors"
	"fmt"
)

//CardinalityError reports a selected atom that does not have exactly
//four Wannier centers within the cutoff. It normally means the cutoff
//is wrong for the system, or that the Wannier localization did not
//converge for that frame. There is no way to build a physically
//meaningful dipole out of the wrong number of centers, so the whole
//frame has to be discarded.
type CardinalityError struct {
	Atom   int     //index of the offending atom within the selection
	Found  int     //how many centers were within the cutoff
	Cutoff float64 //the cutoff used, in A
}

func (err *CardinalityError) Error() string {
	return fmt.Sprintf("dplr: selected atom %d has %d wannier centers within %4.2f A, want 4", err.Atom, err.Found, err.Cutoff)
}

func (err *CardinalityError) assignment() {}

//DuplicateError reports that at least one Wannier center was assigned to
//more than one selected atom, i.e. the per-atom neighborhoods overlap.
//As with CardinalityError, the frame cannot be used.
type DuplicateError struct {
	Assigned int //distinct centers actually assigned
	Expected int //4 * number of selected atoms
}

func (err *DuplicateError) Error() string {
	return fmt.Sprintf("dplr: %d distinct wannier centers assigned, want %d: some center claimed by more than one atom", err.Assigned, err.Expected)
}

func (err *DuplicateError) assignment() {}

//assignmentError is satisfied only by the errors produced by the
//center-to-atom assignment. It lets callers tell a bad frame, which
//they may want to skip, from an actual malfunction.
type assignmentError interface {
	error
	assignment()
}

//IsAssignment returns whether err, or any error wrapped by it, comes
//from the Wannier center assignment (wrong cardinality or a duplicated
//center). Callers batch-processing frames are expected to skip, count
//and report such frames rather than abort.
func IsAssignment(err error) bool {
	var target assignmentError
	return errors.As(err, &target)
}

//LengthError reports a parameter list whose length does not match the
//list it maps over (e.g. a charge map with more or fewer entries than
//the type map). These always indicate a mistake in the input, so they
//are raised before any computation is attempted.
type LengthError struct {
	Name   string //the offending parameter
	Got    int
	Want   int
	Mapped string //the list Name is supposed to map over
}

func (err *LengthError) Error() string {
	return fmt.Sprintf("dplr: %s has %d elements, but %s has %d", err.Name, err.Got, err.Mapped, err.Want)
}

//MissingDepError reports that an external program needed for an
//operation is not available. Hint says how to get it.
type MissingDepError struct {
	Dep  string
	Hint string
	Err  error
}

func (err *MissingDepError) Error() string {
	return fmt.Sprintf("dplr: %s is not available (%v). %s", err.Dep, err.Err, err.Hint)
}

func (err *MissingDepError) Unwrap() error { return err.Err }
