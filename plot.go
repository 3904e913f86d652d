/*
 * plot.go, part of godplr.
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
	"fmt"
	"math"

	v3 "github.com/rmera/gochem/v3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//DipoleMagnitudes returns the norm of the dipole of each atom in sel,
//in the order of sel. If sel is nil, all rows of dipole are used. Handy
//for a quick sanity check of a conversion: for a well-behaved water
//system the magnitudes bunch tightly around ~0.35 A.
func DipoleMagnitudes(dipole *v3.Matrix, sel []int) []float64 {
	if sel == nil {
		sel = make([]int, dipole.NVecs())
		for i := range sel {
			sel[i] = i
		}
	}
	ret := make([]float64, len(sel))
	for i, id := range sel {
		x := dipole.At(id, 0)
		y := dipole.At(id, 1)
		z := dipole.At(id, 2)
		ret[i] = math.Sqrt(x*x + y*y + z*z)
	}
	return ret
}

//HistogramPlot writes a histogram of vals to an image file. The format
//is taken from the extension of fname (png, pdf, svg and the other
//formats gonum/plot supports).
func HistogramPlot(vals []float64, bins int, title, fname string) error {
	if len(vals) == 0 {
		return fmt.Errorf("dplr.HistogramPlot: nothing to plot")
	}
	if bins <= 0 {
		bins = 20
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "dipole magnitude (A)"
	p.Y.Label.Text = "count"
	h, err := plotter.NewHist(plotter.Values(vals), bins)
	if err != nil {
		return fmt.Errorf("dplr.HistogramPlot: %w", err)
	}
	p.Add(h)
	if err := p.Save(5*vg.Inch, 4*vg.Inch, fname); err != nil {
		return fmt.Errorf("dplr.HistogramPlot: %w", err)
	}
	return nil
}
