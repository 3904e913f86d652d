/*
 * atomicdata_test.go, part of godplr.
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

import "testing"

//TestChemicalSymbols pins down the indexing convention: the index of a
//symbol is its atomic number, with the placeholder X at zero.
func TestChemicalSymbols(Te *testing.T) {
	if ChemicalSymbols[0] != "X" {
		Te.Error("index 0 must be the placeholder X")
	}
	for i, s := range map[int]string{1: "H", 8: "O", 26: "Fe", 118: "Og"} {
		if ChemicalSymbols[i] != s {
			Te.Errorf("index %d is %s, want %s", i, ChemicalSymbols[i], s)
		}
	}
	if len(ChemicalSymbols) != 119 {
		Te.Errorf("the table has %d entries, want 119", len(ChemicalSymbols))
	}
}

func TestSymbolMass(Te *testing.T) {
	if m := SymbolMass("O"); m != 16.00 {
		Te.Errorf("O weighs %f, want 16", m)
	}
	//virtual atoms fall back to unit mass
	if m := SymbolMass("Og"); m != 1.0 {
		Te.Errorf("Og weighs %f, want the 1.0 fallback", m)
	}
}
