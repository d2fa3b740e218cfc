package density

import (
	"fmt"
	"log"

	wave "github.com/rmera/gowave"
	"gonum.org/v1/gonum/floats"
)

//Grid is a real-space volumetric dataset derived from one band. Data
//is keyed by channel: "total" is always present; for spin-polarized
//files with no spin channel selected, "diff" holds the up-down
//difference. Values are stored with the first axis fastest, matching
//Mesh, and axes follow the lattice vector order of the source file.
type Grid struct {
	Dims [3]int
	Data map[string][]float64
}

//Density returns the charge density of the wavefunction selected by
//kpoint and band: the squared magnitude of the real-space amplitude
//on an FFT mesh, oversampled by the given scale on every axis
//(scale <= 0 means the default of 2). For spin-polarized files a
//negative spin computes both channels and returns their sum ("total")
//and difference ("diff"); a spin of 0 or 1 returns that channel only.
//With phase true the density is multiplied by the sign of the real
//part of the amplitude; that is only physically meaningful at the
//gamma point, so elsewhere it is allowed but logged. Note that the
//density is a pseudo density: the PAW augmentation is not in the
//WAVECAR file, so absolute values will differ from VASP's PARCHG,
//though the shape will match.
func Density(w *wave.Wavecar, kpoint, band, spin int, phase bool, scale int) (*Grid, error) {
	if !w.Readable() {
		return nil, Error{"Wavecar object not initialized", []string{"Density"}, true}
	}
	if scale <= 0 {
		scale = 2
	}
	if phase {
		kpt := w.Kpoint(kpoint)
		if kpt[0] != 0 || kpt[1] != 0 || kpt[2] != 0 {
			log.Printf("phase requested for non-gamma k-point %d of %s: the sign of the density is not meaningful there", kpoint, w.FileName())
		}
	}
	//The oversampled dimensions are local to this call; the mesh size
	//stored in w is never touched, so repeated calls see the same state.
	ng := w.Grid()
	for i := range ng {
		ng[i] *= scale
	}
	out := &Grid{Dims: ng, Data: make(map[string][]float64)}
	if w.SpinChannels() == 2 && spin < 0 {
		up, err := channel(w, kpoint, band, 0, false, ng)
		if err != nil {
			return nil, errDecorate(err, "Density")
		}
		down, err := channel(w, kpoint, band, 1, false, ng)
		if err != nil {
			return nil, errDecorate(err, "Density")
		}
		total := make([]float64, len(up))
		diff := make([]float64, len(up))
		floats.AddTo(total, up, down)
		floats.SubTo(diff, up, down)
		out.Data["total"] = total
		out.Data["diff"] = diff
		return out, nil
	}
	if spin < 0 {
		spin = 0
	}
	if spin >= w.SpinChannels() {
		return nil, Error{fmt.Sprintf("Spin channel %d requested from a file with %d", spin, w.SpinChannels()), []string{"Density"}, true}
	}
	den, err := channel(w, kpoint, band, spin, phase, ng)
	if err != nil {
		return nil, errDecorate(err, "Density")
	}
	out.Data["total"] = den
	return out, nil
}

//channel builds the mesh for one spin channel, inverse-transforms it
//to real space and squares the amplitudes. The inverse transform is
//unnormalized, which matches scaling the normalized one by the total
//element count.
func channel(w *wave.Wavecar, kpoint, band, spin int, phase bool, ng [3]int) ([]float64, error) {
	m, err := NewMesh(w, kpoint, band, spin, true, ng)
	if err != nil {
		return nil, err
	}
	m.invert()
	den := make([]float64, len(m.Data))
	for i, v := range m.Data {
		d := real(v)*real(v) + imag(v)*imag(v)
		if phase && real(v) < 0 {
			d = -d
		}
		den[i] = d
	}
	return den, nil
}

//Errors

//Error is the error type for mesh and density operations. It
//implements the same interface as the wave package errors.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string { return err.message }

//Decorate adds new information to the error and returns the
//accumulated decoration. If deco is empty, it only returns the
//current value.
func (E Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

type errorInt interface {
	Error() string
	Critical() bool
	Decorate(string) []string
}

//errDecorate decorates err with the caller's name. It panics if err
//does not implement the package error interface.
func errDecorate(err error, caller string) error {
	err2 := err.(errorInt)
	err2.Decorate(caller)
	return err2
}
