/*
 * lattice.go, part of gowave.
 *
 * Copyright 2025 Raul Mera A. (rmeraaatacademicosdotutadotcl)
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

package wave

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//c converts kinetic energy in eV to a squared reciprocal-space
//magnitude, 2m/hbar^2 in the units used by VASP.
const c = 0.262465831

func cross(a, b []float64) []float64 {
	return []float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

//cellVolume returns the scalar triple product a0.(a1 x a2) of the rows
//of a. The sign is kept: a negative volume means a left-handed cell,
//which is unusual but not an error.
func cellVolume(a *mat.Dense) float64 {
	return floats.Dot(a.RawRowView(0), cross(a.RawRowView(1), a.RawRowView(2)))
}

//reciprocalLattice returns the matrix whose rows are the reciprocal
//lattice vectors b_i = 2*pi*(a_j x a_k)/vol, for cyclic (i,j,k).
func reciprocalLattice(a *mat.Dense, vol float64) *mat.Dense {
	b := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		v := cross(a.RawRowView((i+1)%3), a.RawRowView((i+2)%3))
		for j, val := range v {
			b.Set(i, j, 2*math.Pi*val/vol)
		}
	}
	return b
}

//maxG returns, per reciprocal axis, the largest integer multiplier a
//G-vector within the energy cutoff can have. The bound is computed
//three times, once treating each pair of reciprocal vectors as the
//"plane" and dividing by the corresponding angular factors, and the
//componentwise maximum is taken. A single-direction bound can
//under-enumerate for oblique lattices; the three-way maximum only
//over-enumerates, which the explicit energy test during generation
//corrects. This follows WaveTrans.
func maxG(b *mat.Dense, encut float64) [3]int {
	rows := [3][]float64{b.RawRowView(0), b.RawRowView(1), b.RawRowView(2)}
	var bmag [3]float64
	for i, v := range rows {
		bmag[i] = math.Sqrt(floats.Dot(v, v))
	}
	gcut := math.Sqrt(encut * c)
	//p and q span the plane, r is the remaining axis.
	candidate := func(p, q, r int) [3]float64 {
		phi := math.Acos(floats.Dot(rows[p], rows[q]) / (bmag[p] * bmag[q]))
		cpq := cross(rows[p], rows[q])
		sphi := floats.Dot(rows[r], cpq) / (bmag[r] * math.Sqrt(floats.Dot(cpq, cpq)))
		var out [3]float64
		out[p] = gcut/bmag[p]/math.Abs(math.Sin(phi)) + 1
		out[q] = gcut/bmag[q]/math.Abs(math.Sin(phi)) + 1
		out[r] = gcut/bmag[r]/math.Abs(sphi) + 1
		return out
	}
	ca := candidate(0, 1, 2)
	cb := candidate(0, 2, 1)
	cc := candidate(1, 2, 0)
	var nbmax [3]int
	for i := 0; i < 3; i++ {
		nbmax[i] = int(math.Max(ca[i], math.Max(cb[i], cc[i])))
	}
	return nbmax
}
