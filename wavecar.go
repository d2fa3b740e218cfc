/*
 * wavecar.go, part of gowave.
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
	"fmt"
	"io"
	"log"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//The two record-precision sentinels VASP writes in the first record.
//tagSingle marks complex64 coefficients, tagDouble complex128 ones.
const (
	tagSingle = 45200
	tagDouble = 45210
)

//Options modify how a WAVECAR file is read. The zero value gives the
//defaults: quiet, full +/- G storage, "normal" mesh precision.
type Options struct {
	//Verbose logs header and per-k-point progress while decoding.
	Verbose bool
	//Gamma declares that the file was produced by a gamma-point-only
	//build of VASP, which stores only half of each +/- G-vector pair.
	//This is not recorded in the file, so the caller must know.
	Gamma bool
	//Precision ("normal" or "accurate", only the first letter
	//matters) selects the default FFT mesh size, 3 or 4 times nbmax
	//per axis.
	Precision string
}

//band holds the per-(spin,k-point,band) data read from the file.
type band struct {
	energy float64
	occ    float64
	coeffs []complex128
}

//Wavecar holds the decoded contents of a WAVECAR file: the header,
//the k-point list, the generated G-vectors and the plane-wave
//coefficients for every spin channel, k-point and band. It is
//immutable after New returns, so concurrent reads are safe.
type Wavecar struct {
	filename string
	readable bool
	spin     int
	rtag     int
	nk, nb   int
	encut    float64
	efermi   float64
	a        *mat.Dense //real-space lattice, one vector per row
	b        *mat.Dense //reciprocal lattice, one vector per row
	vol      float64
	nbmax    [3]int
	ng       [3]int //default FFT mesh size
	gamma    bool
	kpoints  [][]float64 //fractional coordinates, nk x 3
	gvecs    [][][3]int  //per k-point, shared by bands and spins
	bands    []band      //flat, indexed (spin*nk+kpoint)*nb+band
}

//New reads the WAVECAR file named name and returns the decoded
//wavefunctions. Compressed files are handled according to the file
//extension (see prepSource). At most one Options value is honored.
func New(name string, options ...*Options) (*Wavecar, error) {
	var opt Options
	if len(options) > 0 && options[0] != nil {
		opt = *options[0]
	}
	w := new(Wavecar)
	w.filename = name
	w.gamma = opt.Gamma
	src, err := prepSource(name, "")
	if err != nil {
		return nil, errDecorate(err, "New")
	}
	defer src.Close()
	if err := w.decode(src, &opt); err != nil {
		return nil, errDecorate(err, "New")
	}
	w.readable = true
	return w, nil
}

//decode runs the sequential state machine over the record stream:
//header, lattice record, then per spin channel and k-point one
//plane-wave-count/coordinates/eigenvalue record followed by one
//coefficient record per band. Everything is consumed in order; there
//is no random access, so decode must not be called concurrently on
//the same stream.
func (w *Wavecar) decode(src io.Reader, opt *Options) error {
	rr := &recordReader{r: src, filename: w.filename, recl: 24}
	head := make([]float64, 3)
	if err := rr.float64s(head); err != nil {
		return err
	}
	recl := int64(head[0])
	w.spin = int(head[1])
	w.rtag = int(head[2])
	if opt.Verbose {
		log.Printf("recl=%d, spin=%d, rtag=%d", recl, w.spin, w.rtag)
	}
	if w.rtag != tagSingle && w.rtag != tagDouble {
		return Error{fmt.Sprintf("%s: %d", WrongPrecisionTag, w.rtag), w.filename, []string{"decode"}, true}
	}
	if w.spin != 1 && w.spin != 2 {
		return Error{fmt.Sprintf("%s: %d", WrongSpinChannels, w.spin), w.filename, []string{"decode"}, true}
	}
	if err := rr.setLength(recl); err != nil {
		return err
	}
	if err := rr.advance(); err != nil {
		return err
	}
	//second record: counts, cutoff, cell and Fermi energy
	buf := make([]float64, 3)
	if err := rr.float64s(buf); err != nil {
		return err
	}
	w.nk = int(buf[0])
	w.nb = int(buf[1])
	w.encut = buf[2]
	if w.nk <= 0 || w.nb <= 0 || w.encut <= 0 {
		return Error{fmt.Sprintf("%s: nk=%d, nb=%d, encut=%v", WrongHeaderCounts, w.nk, w.nb, w.encut), w.filename, []string{"decode"}, true}
	}
	cell := make([]float64, 9)
	if err := rr.float64s(cell); err != nil {
		return err
	}
	w.a = mat.NewDense(3, 3, cell)
	ef := make([]float64, 1)
	if err := rr.float64s(ef); err != nil {
		return err
	}
	w.efermi = ef[0]
	if err := rr.advance(); err != nil {
		return err
	}
	if opt.Verbose {
		log.Printf("kpoints=%d, bands=%d, energy cutoff=%.4f, fermi energy=%.4f", w.nk, w.nb, w.encut, w.efermi)
	}
	w.vol = cellVolume(w.a)
	if math.Abs(w.vol) < 1e-12 {
		return Error{DegenerateLattice, w.filename, []string{"decode"}, true}
	}
	w.b = reciprocalLattice(w.a, w.vol)
	w.nbmax = maxG(w.b, w.encut)
	factor := 3
	if strings.HasPrefix(strings.ToLower(opt.Precision), "a") {
		factor = 4
	}
	for i := range w.ng {
		w.ng[i] = factor * w.nbmax[i]
	}
	if opt.Verbose {
		log.Printf("volume=%.4f, nbmax=%v, mesh=%v", w.vol, w.nbmax, w.ng)
	}

	w.kpoints = make([][]float64, 0, w.nk)
	w.gvecs = make([][][3]int, w.nk)
	w.bands = make([]band, w.spin*w.nk*w.nb)
	info := make([]float64, 4+3*w.nb)
	for is := 0; is < w.spin; is++ {
		for ik := 0; ik < w.nk; ik++ {
			if err := rr.float64s(info); err != nil {
				return err
			}
			nplane := int(info[0])
			kpt := make([]float64, 3)
			copy(kpt, info[1:4])
			if is == 0 {
				w.kpoints = append(w.kpoints, kpt)
			} else if !floats.EqualApprox(w.kpoints[ik], kpt, 1e-6) {
				return Error{fmt.Sprintf("%s: k-point %d", KpointSpinMismatch, ik), w.filename, []string{"decode"}, true}
			}
			//eigenvalues come as (real, imaginary, occupation)
			//triples; the imaginary part is always zero and ignored.
			for ib := 0; ib < w.nb; ib++ {
				bd := &w.bands[w.bandIndex(is, ik, ib)]
				bd.energy = info[4+3*ib]
				bd.occ = info[4+3*ib+2]
			}
			if err := rr.advance(); err != nil {
				return err
			}
			if is == 0 {
				w.gvecs[ik] = genGVectors(w.b, w.nbmax, w.encut, kpt, w.gamma)
			}
			if len(w.gvecs[ik]) != nplane {
				return Error{fmt.Sprintf("%s: generated %d, file declares %d at k-point %d", GVectorMismatch, len(w.gvecs[ik]), nplane, ik), w.filename, []string{"decode"}, true}
			}
			if opt.Verbose {
				log.Printf("spin %d, kpoint %4d with %5d plane waves at %v", is, ik, nplane, kpt)
			}
			var single []complex64
			if w.rtag == tagSingle {
				single = make([]complex64, nplane)
			}
			for ib := 0; ib < w.nb; ib++ {
				co := make([]complex128, nplane)
				if w.rtag == tagSingle {
					if err := rr.complex64s(single); err != nil {
						return err
					}
					for i, v := range single {
						co[i] = complex128(v)
					}
				} else {
					if err := rr.complex128s(co); err != nil {
						return err
					}
				}
				if err := rr.advance(); err != nil {
					return err
				}
				w.bands[w.bandIndex(is, ik, ib)].coeffs = co
			}
		}
	}
	return nil
}

func (w *Wavecar) bandIndex(spin, kpoint, band int) int {
	if spin < 0 || spin >= w.spin || kpoint < 0 || kpoint >= w.nk || band < 0 || band >= w.nb {
		panic(fmt.Sprintf("goWave: %s: (%d,%d,%d)", WrongIndex, spin, kpoint, band))
	}
	return (spin*w.nk+kpoint)*w.nb + band
}

//Readable returns true if the object was fully decoded and can be
//queried.
func (w *Wavecar) Readable() bool { return w.readable }

//FileName returns the name of the decoded file.
func (w *Wavecar) FileName() string { return w.filename }

//SpinChannels returns the number of spin channels in the file (1 or 2).
func (w *Wavecar) SpinChannels() int { return w.spin }

//Nk returns the number of k-points.
func (w *Wavecar) Nk() int { return w.nk }

//Nb returns the number of bands per k-point.
func (w *Wavecar) Nb() int { return w.nb }

//Encut returns the kinetic energy cutoff, in eV.
func (w *Wavecar) Encut() float64 { return w.encut }

//Efermi returns the Fermi energy, in eV.
func (w *Wavecar) Efermi() float64 { return w.efermi }

//Volume returns the signed cell volume.
func (w *Wavecar) Volume() float64 { return w.vol }

//Gamma returns whether the file was read under the gamma-point-only
//storage convention.
func (w *Wavecar) Gamma() bool { return w.gamma }

//Nbmax returns the per-axis bound on G-vector integer components.
func (w *Wavecar) Nbmax() [3]int { return w.nbmax }

//Grid returns the default FFT mesh dimensions, 3x or 4x nbmax per axis
//depending on the Precision option given to New.
func (w *Wavecar) Grid() [3]int { return w.ng }

//Lattice returns a copy of the real-space lattice, one vector per row.
func (w *Wavecar) Lattice() *mat.Dense { return mat.DenseCopyOf(w.a) }

//ReciprocalLattice returns a copy of the reciprocal lattice, one
//vector per row.
func (w *Wavecar) ReciprocalLattice() *mat.Dense { return mat.DenseCopyOf(w.b) }

//Kpoint returns a copy of the fractional coordinates of the i-th
//k-point. It panics if i is out of range.
func (w *Wavecar) Kpoint(i int) []float64 {
	k := make([]float64, 3)
	copy(k, w.kpoints[i])
	return k
}

//GVectors returns the G-vectors of the given k-point, as integer
//multipliers of the reciprocal lattice vectors, in the same order as
//the stored coefficients. The returned slice is a view: the caller
//must not modify it.
func (w *Wavecar) GVectors(kpoint int) [][3]int {
	return w.gvecs[kpoint]
}

//Coefficients returns the plane-wave coefficients for the given spin
//channel, k-point and band, positionally matched to GVectors(kpoint).
//The returned slice is a view: the caller must not modify it. It
//panics if any index is out of range.
func (w *Wavecar) Coefficients(spin, kpoint, band int) []complex128 {
	return w.bands[w.bandIndex(spin, kpoint, band)].coeffs
}

//BandEnergy returns the eigenenergy (eV) and the occupation of the
//given spin channel, k-point and band. It panics if any index is out
//of range.
func (w *Wavecar) BandEnergy(spin, kpoint, band int) (energy, occupation float64) {
	bd := w.bands[w.bandIndex(spin, kpoint, band)]
	return bd.energy, bd.occ
}
