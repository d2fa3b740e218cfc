package wave

import "gonum.org/v1/gonum/mat"

//genGVectors enumerates the integer triples (k1,j2,i3) whose plane
//wave at the given k-point falls strictly under the energy cutoff.
//Each axis runs over the centered interval [-nbmax,nbmax], wrapped the
//Fortran way: the unsigned loop index maps to a negative offset once
//it passes nbmax. The nested order, axis 3 outermost and axis 1
//innermost, is the order in which VASP stores the coefficients, so
//callers must not reorder the result.
//
//In gamma mode only half of each +/- pair is stored, and the
//enumeration picks one representative: the first axis is restricted
//to non-negative values, and on the k1 == 0 boundary anything with a
//negative second component, or a zero second and negative third
//component, is excluded.
func genGVectors(b *mat.Dense, nbmax [3]int, encut float64, kpoint []float64, gamma bool) [][3]int {
	var gpoints [][3]int
	kmax := 2*nbmax[0] + 1
	if gamma {
		kmax = nbmax[0] + 1
	}
	for i := 0; i < 2*nbmax[2]+1; i++ {
		i3 := i
		if i > nbmax[2] {
			i3 = i - 2*nbmax[2] - 1
		}
		for j := 0; j < 2*nbmax[1]+1; j++ {
			j2 := j
			if j > nbmax[1] {
				j2 = j - 2*nbmax[1] - 1
			}
			for k := 0; k < kmax; k++ {
				k1 := k
				if k > nbmax[0] {
					k1 = k - 2*nbmax[0] - 1
				}
				if gamma && k1 == 0 && (j2 < 0 || (j2 == 0 && i3 < 0)) {
					continue
				}
				//kinetic energy of k-point + G, in Cartesian reciprocal space
				var g2 float64
				for m := 0; m < 3; m++ {
					s := (kpoint[0]+float64(k1))*b.At(0, m) +
						(kpoint[1]+float64(j2))*b.At(1, m) +
						(kpoint[2]+float64(i3))*b.At(2, m)
					g2 += s * s
				}
				if g2/c < encut {
					gpoints = append(gpoints, [3]int{k1, j2, i3})
				}
			}
		}
	}
	return gpoints
}
