/*
 * doc.go, part of gowave.
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

/*Package wave reads the plane-wave pseudo-wavefunctions produced by VASP
periodic DFT calculations (the WAVECAR file).

	**goWave capabilities**

    Reads WAVECAR files, plain or compressed (gzip, zstd or lzw),
	in single or double coefficient precision, spin-polarized or not.

    Re-derives, from the energy cutoff and the reciprocal lattice, the
	G-vectors matching each stored coefficient. The file does not
	contain them; the generation algorithm follows the WaveTrans
	program by R. M. Feenstra and M. Widom
	(https://www.andrew.cmu.edu/user/feenstra/wavetrans/).

    Supports the gamma-point-only storage convention, where only one
	G-vector of each +/- pair is kept and Hermitian symmetry supplies
	the other half.

    Evaluates wavefunctions at arbitrary points in space (slow,
	reference path) or on an FFT mesh (the gowave/density package).

    Derives pseudo charge densities, total and spin-resolved, optionally
	signed by the phase of the wavefunction (gowave/density).

    Plots band energies and occupations along the k-point list
	(the gowave/bands package).

Note that the WAVECAR file does not include the pseudopotential
augmentation of the PAW method, so every quantity obtained with this
library is a pseudo quantity. Caution is advised when deriving value
from it.

Once a file has been decoded, the resulting Wavecar object is never
written to, so it can be shared freely between goroutines.
*/
package wave
