/*
 * pbc.go, part of godplr.
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
	"gonum.org/v1/gonum/mat"
)

//Cell is a periodic simulation cell. The rows of the 3x3 matrix are the
//cell vectors a, b and c, in A, following the same row-vector convention
//as the v3 coordinates. A Cell is immutable once built.
type Cell struct {
	h    *mat.Dense
	hinv *mat.Dense
}

//NewCell builds a Cell from the 9 components of the cell vectors, in
//row-major order (ax, ay, az, bx, ...). It fails if the vectors do not
//span 3D space, as a singular cell admits no periodic wrapping.
func NewCell(vectors []float64) (*Cell, error) {
	if len(vectors) != 9 {
		return nil, fmt.Errorf("dplr.NewCell: need 9 components, got %d", len(vectors))
	}
	h := mat.NewDense(3, 3, vectors)
	hinv := mat.NewDense(3, 3, nil)
	if err := hinv.Inverse(h); err != nil {
		return nil, fmt.Errorf("dplr.NewCell: singular cell: %w", err)
	}
	return &Cell{h: h, hinv: hinv}, nil
}

//Vectors returns the 9 components of the cell vectors in row-major
//order. The slice is a copy, so the caller can do whatever with it.
func (C *Cell) Vectors() []float64 {
	ret := make([]float64, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			ret[3*i+j] = C.h.At(i, j)
		}
	}
	return ret
}

//Params returns the cell parameters: the lengths of the a, b and c
//vectors, in A, and the alpha, beta and gamma angles, in degrees.
func (C *Cell) Params() (a, b, c, alpha, beta, gamma float64) {
	va := []float64{C.h.At(0, 0), C.h.At(0, 1), C.h.At(0, 2)}
	vb := []float64{C.h.At(1, 0), C.h.At(1, 1), C.h.At(1, 2)}
	vc := []float64{C.h.At(2, 0), C.h.At(2, 1), C.h.At(2, 2)}
	a = norm3(va)
	b = norm3(vb)
	c = norm3(vc)
	alpha = angleDeg(vb, vc)
	beta = angleDeg(va, vc)
	gamma = angleDeg(va, vb)
	return a, b, c, alpha, beta, gamma
}

//MinImage returns the minimum-image representation of the displacement
//d (a 3D vector), i.e. the shortest vector connecting the same two
//points under the periodicity of the cell. The argument is not
//modified.
func (C *Cell) MinImage(d []float64) []float64 {
	//to fractional coordinates (row vector times hinv)
	f := make([]float64, 3)
	for j := 0; j < 3; j++ {
		f[j] = d[0]*C.hinv.At(0, j) + d[1]*C.hinv.At(1, j) + d[2]*C.hinv.At(2, j)
	}
	for j := 0; j < 3; j++ {
		f[j] -= math.Round(f[j])
	}
	//For very skewed cells, rounding the fractional coordinates is not
	//guaranteed to give the shortest image, so the neighboring images
	//are checked too.
	best := make([]float64, 3)
	bestn := math.Inf(1)
	cart := make([]float64, 3)
	for si := -1.0; si <= 1; si++ {
		for sj := -1.0; sj <= 1; sj++ {
			for sk := -1.0; sk <= 1; sk++ {
				fi, fj, fk := f[0]+si, f[1]+sj, f[2]+sk
				for j := 0; j < 3; j++ {
					cart[j] = fi*C.h.At(0, j) + fj*C.h.At(1, j) + fk*C.h.At(2, j)
				}
				if n := norm3(cart); n < bestn {
					bestn = n
					copy(best, cart)
				}
			}
		}
	}
	return best
}

//Dist returns the minimum-image distance between the points p and q.
func (C *Cell) Dist(p, q []float64) float64 {
	d := []float64{q[0] - p[0], q[1] - p[1], q[2] - p[2]}
	return norm3(C.MinImage(d))
}

//DistanceMatrix returns the matrix of minimum-image distances between
//each vector of A (rows of the result) and each vector of B (columns).
func DistanceMatrix(A, B *v3.Matrix, cell *Cell) *mat.Dense {
	ar := A.NVecs()
	br := B.NVecs()
	ret := mat.NewDense(ar, br, nil)
	p := make([]float64, 3)
	q := make([]float64, 3)
	for i := 0; i < ar; i++ {
		for k := 0; k < 3; k++ {
			p[k] = A.At(i, k)
		}
		for j := 0; j < br; j++ {
			for k := 0; k < 3; k++ {
				q[k] = B.At(j, k)
			}
			ret.Set(i, j, cell.Dist(p, q))
		}
	}
	return ret
}

func norm3(v []float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

func angleDeg(v, w []float64) float64 {
	dot := v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
	cos := dot / (norm3(v) * norm3(w))
	//floating point can push the cosine barely out of range
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}
