package density

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	wave "github.com/rmera/gowave"
)

//The fixtures use a cubic cell of side 2*pi and a cutoff admitting
//|G|^2 < 1.5, i.e. the zero vector plus the six unit vectors. The
//generator emits them as (0,0,0),(1,0,0),(-1,0,0),(0,1,0),(0,-1,0),
//(0,0,1),(0,0,-1); the gamma-only half set keeps the first of each
//pair. The coefficient values form a Hermitian set, c(-G) = conj(c(G)),
//so the full file and the gamma-only file describe the same real
//wavefunction.
const (
	testRecl  = 128
	testSide  = 2 * math.Pi
	cFactor   = 0.262465831
	tagSingle = 45200
)

var (
	fullCoeffs = []complex128{0.5, 0.3 + 0.4i, 0.3 - 0.4i, 0.1 + 0.2i, 0.1 - 0.2i, -0.7 + 0.1i, -0.7 - 0.1i}
	halfCoeffs = []complex128{0.5, 0.3 + 0.4i, 0.1 + 0.2i, -0.7 + 0.1i}
)

//writeCubicWavecar writes a single-k-point gamma WAVECAR with the
//given spin channel count and per-band coefficients. All spin
//channels and bands share the coefficient list, which for these tests
//is enough.
func writeCubicWavecar(path string, spin int, coeffs []complex128) error {
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
	if err := rec([]float64{testRecl, float64(spin), tagSingle}); err != nil {
		return err
	}
	second := []float64{1, 1, 1.5 / cFactor,
		testSide, 0, 0, 0, testSide, 0, 0, 0, testSide,
		0.0}
	if err := rec(second); err != nil {
		return err
	}
	for is := 0; is < spin; is++ {
		if err := rec([]float64{float64(len(coeffs)), 0, 0, 0, -1.5, 0, 2.0}); err != nil {
			return err
		}
		cs := make([]complex64, len(coeffs))
		for i, v := range coeffs {
			cs[i] = complex64(v)
		}
		if err := binary.Write(f, binary.LittleEndian, cs); err != nil {
			return err
		}
		if _, err := f.Write(make([]byte, testRecl-len(cs)*8)); err != nil {
			return err
		}
	}
	return nil
}

func TestGammaMeshMatchesFullMesh(Te *testing.T) {
	dir := Te.TempDir()
	full := filepath.Join(dir, "WAVECAR")
	half := filepath.Join(dir, "WAVECAR.gamma")
	if err := writeCubicWavecar(full, 1, fullCoeffs); err != nil {
		Te.Fatal(err)
	}
	if err := writeCubicWavecar(half, 1, halfCoeffs); err != nil {
		Te.Fatal(err)
	}
	wf, err := wave.New(full)
	if err != nil {
		Te.Fatal(err)
	}
	wh, err := wave.New(half, &wave.Options{Gamma: true})
	if err != nil {
		Te.Fatal(err)
	}
	mf, err := NewMesh(wf, 0, 0, 0, false)
	if err != nil {
		Te.Fatal(err)
	}
	mh, err := NewMesh(wh, 0, 0, 0, false)
	if err != nil {
		Te.Fatal(err)
	}
	if mf.Dims != mh.Dims {
		Te.Fatalf("mesh dimensions differ: %v vs %v", mf.Dims, mh.Dims)
	}
	for i := range mf.Data {
		if mf.Data[i] != mh.Data[i] {
			Te.Fatalf("meshes differ at flat index %d: %v vs %v", i, mf.Data[i], mh.Data[i])
		}
	}
	//the restored mesh is Hermitian about its center
	cx, cy, cz := mh.Dims[0]/2, mh.Dims[1]/2, mh.Dims[2]/2
	for _, g := range wf.GVectors(0) {
		v := mh.At(cx+g[0], cy+g[1], cz+g[2])
		mirror := mh.At(cx-g[0], cy-g[1], cz-g[2])
		if real(v) != real(mirror) || imag(v) != -imag(mirror) {
			Te.Errorf("mesh not Hermitian at G %v: %v vs %v", g, v, mirror)
		}
	}
}

func TestMeshTooSmall(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "WAVECAR")
	if err := writeCubicWavecar(name, 1, fullCoeffs); err != nil {
		Te.Fatal(err)
	}
	w, err := wave.New(name)
	if err != nil {
		Te.Fatal(err)
	}
	//nbmax is 2 per axis, so anything under 5 can not hold the vectors
	if _, err := NewMesh(w, 0, 0, 0, false, [3]int{4, 4, 4}); err == nil {
		Te.Error("expected an error for a mesh too small for the G-vectors")
	}
}

//Parseval: the summed density equals the total element count times
//the summed squared coefficient magnitudes.
func TestDensityNorm(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "WAVECAR")
	if err := writeCubicWavecar(name, 1, fullCoeffs); err != nil {
		Te.Fatal(err)
	}
	w, err := wave.New(name)
	if err != nil {
		Te.Fatal(err)
	}
	g, err := Density(w, 0, 0, 0, false, 1)
	if err != nil {
		Te.Fatal(err)
	}
	den := g.Data["total"]
	n := float64(g.Dims[0] * g.Dims[1] * g.Dims[2])
	var sum, power float64
	for _, v := range den {
		sum += v
	}
	for _, co := range w.Coefficients(0, 0, 0) {
		power += real(co)*real(co) + imag(co)*imag(co)
	}
	if math.Abs(sum-n*power) > 1e-6*n*power {
		Te.Errorf("summed density %v, want %v", sum, n*power)
	}
}

func TestDensityIdempotent(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "WAVECAR")
	if err := writeCubicWavecar(name, 1, fullCoeffs); err != nil {
		Te.Fatal(err)
	}
	w, err := wave.New(name)
	if err != nil {
		Te.Fatal(err)
	}
	before := w.Grid()
	first, err := Density(w, 0, 0, 0, false, 3)
	if err != nil {
		Te.Fatal(err)
	}
	second, err := Density(w, 0, 0, 0, false, 3)
	if err != nil {
		Te.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		Te.Error("two identical Density calls gave different results")
	}
	if w.Grid() != before {
		Te.Errorf("the oversampling scale leaked into the Wavecar mesh size: %v -> %v", before, w.Grid())
	}
	want := [3]int{before[0] * 3, before[1] * 3, before[2] * 3}
	if first.Dims != want {
		Te.Errorf("oversampled dimensions %v, want %v", first.Dims, want)
	}
}

//For a real (gamma, Hermitian) wavefunction the phase-signed density
//only flips signs; magnitudes are untouched.
func TestPhaseSignsOnly(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "WAVECAR")
	if err := writeCubicWavecar(name, 1, halfCoeffs); err != nil {
		Te.Fatal(err)
	}
	w, err := wave.New(name, &wave.Options{Gamma: true})
	if err != nil {
		Te.Fatal(err)
	}
	plain, err := Density(w, 0, 0, 0, false, 1)
	if err != nil {
		Te.Fatal(err)
	}
	signed, err := Density(w, 0, 0, 0, true, 1)
	if err != nil {
		Te.Fatal(err)
	}
	var negatives int
	for i, v := range signed.Data["total"] {
		if math.Abs(v) != plain.Data["total"][i] {
			Te.Fatalf("phase changed a magnitude at %d: %v vs %v", i, v, plain.Data["total"][i])
		}
		if v < 0 {
			negatives++
		}
	}
	if negatives == 0 {
		Te.Error("this wavefunction changes sign in space; the signed density should too")
	}
}

func TestSpinResolved(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "WAVECAR")
	if err := writeCubicWavecar(name, 2, fullCoeffs); err != nil {
		Te.Fatal(err)
	}
	w, err := wave.New(name)
	if err != nil {
		Te.Fatal(err)
	}
	both, err := Density(w, 0, 0, -1, false, 1)
	if err != nil {
		Te.Fatal(err)
	}
	if both.Data["total"] == nil || both.Data["diff"] == nil {
		Te.Fatal("spin-polarized density without a selected channel must return total and diff")
	}
	up, err := Density(w, 0, 0, 0, false, 1)
	if err != nil {
		Te.Fatal(err)
	}
	down, err := Density(w, 0, 0, 1, false, 1)
	if err != nil {
		Te.Fatal(err)
	}
	for i := range both.Data["total"] {
		tot := up.Data["total"][i] + down.Data["total"][i]
		dif := up.Data["total"][i] - down.Data["total"][i]
		if math.Abs(both.Data["total"][i]-tot) > 1e-12 || math.Abs(both.Data["diff"][i]-dif) > 1e-12 {
			Te.Fatalf("combined density disagrees with the per-channel ones at %d", i)
		}
	}
	//both channels hold the same coefficients here, so diff ~ 0
	for i, v := range both.Data["diff"] {
		if math.Abs(v) > 1e-9 {
			Te.Errorf("difference density should vanish, got %v at %d", v, i)
		}
	}
}
