/*
 * evaluate.go, part of gowave.
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
	"math/cmplx"
)

//Evaluate computes the wavefunction of the given k-point and band at
//the Cartesian position r,
//
//	psi(r) = (1/sqrt(V)) sum_i c_i exp(i (k+G_i).r)
//
//by direct summation over the plane waves. V is the unsigned cell
//volume, so a left-handed cell normalizes the same way as its
//right-handed mirror. The trailing optional argument selects the spin
//channel (default 0). This is the slow
//reference path, O(plane waves) per call; for evaluating on a grid
//use the gowave/density package instead. Evaluate does not modify the
//receiver, so concurrent calls are safe. It returns an error if the
//object is not readable or r does not have 3 components; it panics,
//like the other accessors, on out-of-range indices.
func (w *Wavecar) Evaluate(kpoint, band int, r []float64, spin ...int) (complex128, error) {
	if !w.readable {
		return 0, Error{NotReadable, w.filename, []string{"Evaluate"}, true}
	}
	if len(r) != 3 {
		return 0, Error{WrongPositionVector, w.filename, []string{"Evaluate"}, true}
	}
	is := 0
	if len(spin) > 0 {
		is = spin[0]
	}
	kpt := w.kpoints[kpoint]
	coeffs := w.bands[w.bandIndex(is, kpoint, band)].coeffs
	var sum complex128
	for i, g := range w.gvecs[kpoint] {
		//u = ((k+G) B) . r, with B the reciprocal lattice rows
		var u float64
		for m := 0; m < 3; m++ {
			cart := (kpt[0]+float64(g[0]))*w.b.At(0, m) +
				(kpt[1]+float64(g[1]))*w.b.At(1, m) +
				(kpt[2]+float64(g[2]))*w.b.At(2, m)
			u += cart * r[m]
		}
		sum += coeffs[i] * cmplx.Exp(complex(0, u))
	}
	return sum / complex(math.Sqrt(math.Abs(w.vol)), 0), nil
}
