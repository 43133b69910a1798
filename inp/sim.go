// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"

	"github.com/cmech/godisloc/elast"
	"github.com/cmech/godisloc/gsurf"
	"github.com/cmech/godisloc/sdvpn"
	"github.com/cmech/godisloc/volterra"
)

// Data holds global data for simulations
type Data struct {
	Desc   string `json:"desc"`   // description of simulation
	DirOut string `json:"dirout"` // directory for output; e.g. /tmp/godisloc
}

// ElasticData holds the elastic constants definition
type ElasticData struct {
	Model    string      `json:"model"`    // "isotropic", "cubic" or "voigt"
	Prms     fun.Prms    `json:"prms"`     // parameters for isotropic/cubic models
	Voigt    [][]float64 `json:"voigt"`    // full 6x6 Voigt matrix for "voigt"
	Rotation [][]float64 `json:"rotation"` // optional 3x3 rotation applied after construction
}

// DislocData holds the dislocation geometry
type DislocData struct {
	B    []float64 `json:"b"`    // Burgers vector
	Xi   []float64 `json:"xi"`   // line direction
	N    []float64 `json:"n"`    // slip plane normal
	Prms fun.Prms  `json:"prms"` // thetacut, rcore, isotol
}

// GammaData holds the misfit energy definition
type GammaData struct {
	Model    string      `json:"model"`    // "table", "sinusoid" or "harmonic"
	A1       []float64   `json:"a1"`       // first cell vector (table)
	A2       []float64   `json:"a2"`       // second cell vector (table)
	Energy   [][]float64 `json:"energy"`   // energy grid (table)
	Periodic bool        `json:"periodic"` // periodic table
	U        []float64   `json:"u"`        // slip direction (sinusoid)
	B        float64     `json:"b"`        // period (sinusoid)
	Amp      float64     `json:"amp"`      // amplitude (sinusoid)
	C        float64     `json:"c"`        // curvature (harmonic)
}

// SolverData holds the SDVPN solver controls
type SolverData struct {
	Prms fun.Prms `json:"prms"` // ngrid, dx, tol, maxit, beta0, betamin, periodic, showr
}

// Simulation holds one complete simulation definition
type Simulation struct {

	// input
	Data    Data        `json:"data"`
	Elastic ElasticData `json:"elastic"`
	Disloc  DislocData  `json:"dislocation"`
	Gamma   GammaData   `json:"gamma"`
	Solver  SolverData  `json:"solver"`

	// derived
	Key    string // simulation key: filename without extension
	DirOut string // output directory
}

// ReadSim reads a simulation file. Failures are fatal
func ReadSim(simfilepath string) *Simulation {

	// new sim
	var o Simulation

	// read file
	b, err := io.ReadFile(simfilepath)
	if err != nil {
		chk.Panic("ReadSim: cannot read simulation file %q", simfilepath)
	}

	// decode
	err = json.Unmarshal(b, &o)
	if err != nil {
		chk.Panic("ReadSim: cannot unmarshal simulation file %q: %v", simfilepath, err)
	}

	// filename key
	fn := filepath.Base(os.ExpandEnv(simfilepath))
	o.Key = io.FnKey(fn)

	// output directory
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = "/tmp/godisloc/" + o.Key
	}
	return &o
}

// GetElastic builds the elastic constants from the input data
func (o *Simulation) GetElastic() (*elast.ElasticConstants, error) {
	var cc *elast.ElasticConstants
	var err error
	switch o.Elastic.Model {
	case "isotropic":
		cc, err = elast.NewIsotropic(o.Elastic.Prms)
	case "cubic":
		cc, err = elast.NewCubic(o.Elastic.Prms)
	case "voigt":
		cc, err = elast.NewFromVoigt(o.Elastic.Voigt)
	default:
		return nil, chk.Err("unknown elastic model %q; must be one of {isotropic, cubic, voigt}", o.Elastic.Model)
	}
	if err != nil {
		return nil, err
	}
	if o.Elastic.Rotation != nil {
		return cc.Rotate(o.Elastic.Rotation)
	}
	return cc, nil
}

// GetDislocation builds the Volterra dislocation model
func (o *Simulation) GetDislocation() (volterra.Dislocation, error) {
	cc, err := o.GetElastic()
	if err != nil {
		return nil, err
	}
	return volterra.Solve(cc, o.Disloc.B, o.Disloc.Xi, o.Disloc.N, o.Disloc.Prms)
}

// GetSurface builds the misfit energy functional
func (o *Simulation) GetSurface() (gsurf.Surface, error) {
	switch o.Gamma.Model {
	case "table":
		return gsurf.New(o.Gamma.A1, o.Gamma.A2, o.Gamma.Energy, o.Gamma.Periodic)
	case "sinusoid":
		return &gsurf.Sinusoid{U: o.Gamma.U, B: o.Gamma.B, Amp: o.Gamma.Amp}, nil
	case "harmonic":
		return &gsurf.HarmonicWell{C: o.Gamma.C}, nil
	}
	return nil, chk.Err("unknown gamma model %q; must be one of {table, sinusoid, harmonic}", o.Gamma.Model)
}

// GetSolver builds and initialises the SDVPN solver
func (o *Simulation) GetSolver() (*sdvpn.Solver, error) {
	disl, err := o.GetDislocation()
	if err != nil {
		return nil, err
	}
	sfc, err := o.GetSurface()
	if err != nil {
		return nil, err
	}
	var sol sdvpn.Solver
	if err = sol.Init(disl, sfc, o.Solver.Prms); err != nil {
		return nil, err
	}
	return &sol, nil
}
