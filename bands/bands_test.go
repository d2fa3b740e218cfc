package bands

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	wave "github.com/rmera/gowave"
)

//The fixture uses a cubic cell of side 2*pi and a cutoff low enough
//that only G=(0,0,0) survives at every k-point, so each coefficient
//record holds a single value and the file stays tiny.
const (
	testRecl = 128
	testSide = 2 * math.Pi
	cFactor  = 0.262465831
)

func writeBandWavecar(path string, spin, nk, nb int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	rec := func(vals []float64) error {
		if err := binary.Write(f, binary.LittleEndian, vals); err != nil {
			return err
		}
		_, err := f.Write(make([]byte, testRecl-len(vals)*8))
		return err
	}
	if err := rec([]float64{testRecl, float64(spin), 45200}); err != nil {
		return err
	}
	second := []float64{float64(nk), float64(nb), 0.5 / cFactor,
		testSide, 0, 0, 0, testSide, 0, 0, 0, testSide,
		0.75}
	if err := rec(second); err != nil {
		return err
	}
	kxs := []float64{0, 0.08, 0.17, 0.25}
	for is := 0; is < spin; is++ {
		for ik := 0; ik < nk; ik++ {
			info := []float64{1, kxs[ik%len(kxs)], 0, 0}
			for ib := 0; ib < nb; ib++ {
				e := float64(ib) + 0.1*float64(ik)
				occ := 2.0
				if ib == nb-1 {
					occ = 0
				}
				info = append(info, e, 0, occ)
			}
			if err := rec(info); err != nil {
				return err
			}
			for ib := 0; ib < nb; ib++ {
				if err := binary.Write(f, binary.LittleEndian, []complex64{complex(float32(ib+1), 0)}); err != nil {
					return err
				}
				if _, err := f.Write(make([]byte, testRecl-8)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func TestPlot(Te *testing.T) {
	dir := Te.TempDir()
	name := filepath.Join(dir, "WAVECAR")
	if err := writeBandWavecar(name, 1, 4, 3); err != nil {
		Te.Fatal(err)
	}
	w, err := wave.New(name)
	if err != nil {
		Te.Fatal(err)
	}
	out := filepath.Join(dir, "bands.png")
	if err := Plot(w, 0, "band structure", out); err != nil {
		Te.Fatal(err)
	}
	fi, err := os.Stat(out)
	if err != nil {
		Te.Fatal(err)
	}
	if fi.Size() == 0 {
		Te.Error("the band structure plot is empty")
	}
}

func TestPlotSpinPolarized(Te *testing.T) {
	dir := Te.TempDir()
	name := filepath.Join(dir, "WAVECAR")
	if err := writeBandWavecar(name, 2, 4, 3); err != nil {
		Te.Fatal(err)
	}
	w, err := wave.New(name)
	if err != nil {
		Te.Fatal(err)
	}
	for spin := 0; spin < 2; spin++ {
		out := filepath.Join(dir, "bands.pdf")
		if err := Plot(w, spin, "band structure", out); err != nil {
			Te.Fatalf("spin channel %d: %v", spin, err)
		}
	}
}

func TestOccupations(Te *testing.T) {
	dir := Te.TempDir()
	name := filepath.Join(dir, "WAVECAR")
	if err := writeBandWavecar(name, 1, 4, 3); err != nil {
		Te.Fatal(err)
	}
	w, err := wave.New(name)
	if err != nil {
		Te.Fatal(err)
	}
	out := filepath.Join(dir, "occupations.png")
	if err := Occupations(w, 2, 0, "occupations at the last k-point", out); err != nil {
		Te.Fatal(err)
	}
	if _, err := os.Stat(out); err != nil {
		Te.Fatal(err)
	}
}

func TestUnreadable(Te *testing.T) {
	var w wave.Wavecar
	if err := Plot(&w, 0, "", "nope.png"); err == nil {
		Te.Error("plotting from an uninitialized Wavecar must fail")
	}
	if err := Occupations(&w, 0, 0, "", "nope.png"); err == nil {
		Te.Error("occupations from an uninitialized Wavecar must fail")
	}
}
