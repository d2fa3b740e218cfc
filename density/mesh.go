/*
 * mesh.go, part of gowave.
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

//Package density places decoded plane-wave coefficients on regular 3D
//meshes and derives real-space pseudo charge densities from them.
package density

import (
	"fmt"

	wave "github.com/rmera/gowave"
	"gonum.org/v1/gonum/dsp/fourier"
)

//Mesh is a dense 3D grid of complex plane-wave coefficients, suitable
//as input for a discrete Fourier transform. Data is stored with the
//first axis fastest: the element (i,j,k) lives at (k*Dims[1]+j)*Dims[0]+i.
type Mesh struct {
	Dims [3]int
	Data []complex128
}

func (m *Mesh) index(i, j, k int) int {
	return (k*m.Dims[1]+j)*m.Dims[0] + i
}

//At returns the element at (i,j,k). It panics if out of range.
func (m *Mesh) At(i, j, k int) complex128 {
	return m.Data[m.index(i, j, k)]
}

//NewMesh builds the coefficient mesh for the given k-point, band and
//spin channel of w. Each coefficient is placed at its G-vector offset
//from the mesh center, wrapped cyclically. If w was read in gamma
//mode, the complex conjugate of each coefficient is also placed at
//the mirrored index, restoring the implicit Hermitian half. With
//shift true the mesh is cyclically shifted so the zero-frequency
//component sits at index (0,0,0), the layout a Fourier transform
//expects. The optional trailing argument overrides the mesh
//dimensions, which default to w.Grid(); dimensions too small to hold
//every G-vector without collision are an error.
func NewMesh(w *wave.Wavecar, kpoint, band, spin int, shift bool, dims ...[3]int) (*Mesh, error) {
	if !w.Readable() {
		return nil, Error{"Wavecar object not initialized", []string{"NewMesh"}, true}
	}
	ng := w.Grid()
	if len(dims) > 0 {
		ng = dims[0]
	}
	nbmax := w.Nbmax()
	for i := 0; i < 3; i++ {
		if ng[i] < 2*nbmax[i]+1 {
			return nil, Error{fmt.Sprintf("Mesh dimensions %v can not hold G-vectors up to %v without collision", ng, nbmax), []string{"NewMesh"}, true}
		}
	}
	m := &Mesh{Dims: ng, Data: make([]complex128, ng[0]*ng[1]*ng[2])}
	gvecs := w.GVectors(kpoint)
	coeffs := w.Coefficients(spin, kpoint, band)
	center := [3]int{ng[0] / 2, ng[1] / 2, ng[2] / 2}
	wrap := func(v, n int) int {
		v %= n
		if v < 0 {
			v += n
		}
		return v
	}
	for n, g := range gvecs {
		i := wrap(g[0]+center[0], ng[0])
		j := wrap(g[1]+center[1], ng[1])
		k := wrap(g[2]+center[2], ng[2])
		m.Data[m.index(i, j, k)] = coeffs[n]
		if w.Gamma() && g != [3]int{0, 0, 0} {
			i = wrap(-g[0]+center[0], ng[0])
			j = wrap(-g[1]+center[1], ng[1])
			k = wrap(-g[2]+center[2], ng[2])
			m.Data[m.index(i, j, k)] = complex(real(coeffs[n]), -imag(coeffs[n]))
		}
	}
	if shift {
		m.unshift()
	}
	return m, nil
}

//unshift cyclically moves the centered zero-frequency element to the
//mesh origin (what numpy calls ifftshift).
func (m *Mesh) unshift() {
	out := make([]complex128, len(m.Data))
	nx, ny, nz := m.Dims[0], m.Dims[1], m.Dims[2]
	for k := 0; k < nz; k++ {
		sk := (k + nz/2) % nz
		for j := 0; j < ny; j++ {
			sj := (j + ny/2) % ny
			for i := 0; i < nx; i++ {
				si := (i + nx/2) % nx
				out[m.index(i, j, k)] = m.Data[m.index(si, sj, sk)]
			}
		}
	}
	m.Data = out
}

//invert applies an unnormalized inverse discrete Fourier transform in
//place, one axis at a time. The result equals the conventional
//normalized inverse multiplied by the total number of mesh elements.
func (m *Mesh) invert() {
	nx, ny, nz := m.Dims[0], m.Dims[1], m.Dims[2]
	//x lines are contiguous
	fft := fourier.NewCmplxFFT(nx)
	dst := make([]complex128, nx)
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			line := m.Data[m.index(0, j, k) : m.index(0, j, k)+nx]
			fft.Sequence(dst, line)
			copy(line, dst)
		}
	}
	fft = fourier.NewCmplxFFT(ny)
	src := make([]complex128, ny)
	dst = make([]complex128, ny)
	for k := 0; k < nz; k++ {
		for i := 0; i < nx; i++ {
			for j := 0; j < ny; j++ {
				src[j] = m.Data[m.index(i, j, k)]
			}
			fft.Sequence(dst, src)
			for j := 0; j < ny; j++ {
				m.Data[m.index(i, j, k)] = dst[j]
			}
		}
	}
	fft = fourier.NewCmplxFFT(nz)
	src = make([]complex128, nz)
	dst = make([]complex128, nz)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			for k := 0; k < nz; k++ {
				src[k] = m.Data[m.index(i, j, k)]
			}
			fft.Sequence(dst, src)
			for k := 0; k < nz; k++ {
				m.Data[m.index(i, j, k)] = dst[k]
			}
		}
	}
}
