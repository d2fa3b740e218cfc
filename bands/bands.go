/*
 * bands.go, part of gowave.
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

//Package bands plots the band eigenenergies and occupations decoded
//from a WAVECAR file.
package bands

import (
	"fmt"
	"image/color"

	wave "github.com/rmera/gowave"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//Plot draws one line per band, eigenenergy against k-point index, for
//the given spin channel, plus a dashed line marking the Fermi energy,
//and saves the result to filename (the extension selects the image
//format, e.g. .png or .pdf).
func Plot(w *wave.Wavecar, spin int, title, filename string) error {
	if !w.Readable() {
		return fmt.Errorf("goWave/bands: Wavecar object not initialized")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "k-point index"
	p.Y.Label.Text = "Energy (eV)"
	p.Add(plotter.NewGrid())
	for ib := 0; ib < w.Nb(); ib++ {
		pts := make(plotter.XYs, w.Nk())
		for ik := 0; ik < w.Nk(); ik++ {
			e, _ := w.BandEnergy(spin, ik, ib)
			pts[ik].X = float64(ik)
			pts[ik].Y = e
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		l.Color = color.RGBA{B: 255, A: 255}
		p.Add(l)
	}
	fermi := plotter.NewFunction(func(x float64) float64 { return w.Efermi() })
	fermi.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	fermi.Color = color.RGBA{R: 255, A: 255}
	p.Add(fermi)
	p.Legend.Add("Fermi energy", fermi)
	p.X.Min = 0
	p.X.Max = float64(w.Nk() - 1)
	return p.Save(12*vg.Centimeter, 10*vg.Centimeter, filename)
}

//Occupations draws the occupation of every band at the given k-point
//and spin channel against the band eigenenergy, and saves the result
//to filename. It is a quick way to locate the frontier bands of a
//calculation.
func Occupations(w *wave.Wavecar, kpoint, spin int, title, filename string) error {
	if !w.Readable() {
		return fmt.Errorf("goWave/bands: Wavecar object not initialized")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Energy (eV)"
	p.Y.Label.Text = "Occupation"
	p.Add(plotter.NewGrid())
	pts := make(plotter.XYs, w.Nb())
	for ib := 0; ib < w.Nb(); ib++ {
		e, occ := w.BandEnergy(spin, kpoint, ib)
		pts[ib].X = e
		pts[ib].Y = occ
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	s.GlyphStyle.Color = color.RGBA{R: 255, A: 255}
	p.Add(s)
	return p.Save(12*vg.Centimeter, 10*vg.Centimeter, filename)
}
