// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdvpn

import (
	"errors"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"

	"github.com/cmech/godisloc/elast"
	"github.com/cmech/godisloc/gsurf"
	"github.com/cmech/godisloc/volterra"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_sdvpn01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sdvpn01. Frenkel sinusoid: arctan fixed point")

	// the sinusoidal misfit γ(d) = (K b²/(8π²ζ))(1-cos(2πd/b)) admits the
	// exact continuum solution d(x) = (b/π)(atan(x/ζ)+π/2) with 10-90
	// width 6.1554ζ; the discrete equilibrium must stay close to it
	Ke := 4.0 / 3.0 // G/(1-ν) with G=1, ν=0.25
	b := []float64{1, 0, 0}
	ζ := 1.0
	K := [][]float64{{Ke, 0, 0}, {0, Ke, 0}, {0, 0, Ke}}
	sfc := &gsurf.Sinusoid{U: []float64{1, 0, 0}, B: 1, Amp: Ke / (8.0 * math.Pi * math.Pi * ζ)}

	var sol Solver
	err := sol.InitKernel(K, b, sfc, []*fun.Prm{
		&fun.Prm{N: "ngrid", V: 401},
		&fun.Prm{N: "dx", V: 0.1},
		&fun.Prm{N: "tol", V: 1e-8},
		&fun.Prm{N: "maxit", V: 3000},
	})
	if err != nil {
		tst.Errorf("InitKernel failed:\n%v", err)
		return
	}

	x := sol.Grid()
	chk.IntAssert(len(x), 401)
	chk.Scalar(tst, "xmin", 1e-14, x[0], -20)
	chk.Scalar(tst, "xmax", 1e-14, x[400], 20)

	res, err := sol.Solve(ArctanProfile(x, b, ζ))
	if err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	io.Pforan("iterations = %v   resid = %v   converged = %v\n", res.Iterations, res.Resid, res.Converged)

	// pinned ends
	chk.Vector(tst, "d[0]", 1e-14, res.D[0], []float64{0, 0, 0})
	chk.Vector(tst, "d[n-1]", 1e-14, res.D[400], b)

	// relaxed, close to equilibrium
	if res.Resid > 1e-4 {
		tst.Errorf("residual did not drop: resid = %v", res.Resid)
		return
	}

	// core width against the continuum value
	w := CoreWidth(res.X, res.D, b)
	io.Pforan("10-90 width = %v  (continuum: %v)\n", w, 6.1554*ζ)
	chk.Scalar(tst, "width", 0.05*6.1554*ζ, w, 6.1554*ζ)

	// monotone profile along b
	for i := 1; i < len(x); i++ {
		if res.D[i][0] < res.D[i-1][0]-1e-10 {
			tst.Errorf("profile is not monotone at i=%d: %v < %v", i, res.D[i][0], res.D[i-1][0])
			return
		}
	}

	// accepted energies never increase
	for i := 1; i < len(res.EnergyHist); i++ {
		if res.EnergyHist[i] > res.EnergyHist[i-1]+1e-9*(1.0+math.Abs(res.EnergyHist[i-1])) {
			tst.Errorf("energy increased at accepted step %d: %v > %v", i, res.EnergyHist[i], res.EnergyHist[i-1])
			return
		}
	}

	// plot
	if chk.Verbose {
		var plr Plotter
		plr.SetDefault()
		plr.Plot(res)
	}

	// restarting from the relaxed profile must not move it
	res2, err := sol.Solve(res.D)
	if err != nil {
		tst.Errorf("re-Solve failed:\n%v", err)
		return
	}
	w2 := CoreWidth(res2.X, res2.D, b)
	chk.Scalar(tst, "width after restart", 0.01*w, w2, w)
	if len(res2.ResidHist) > 0 && res2.ResidHist[0] > 10.0*res.Resid+1e-10 {
		tst.Errorf("restart produced a large first residual: %v", res2.ResidHist[0])
	}
}

func Test_sdvpn02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sdvpn02. screw dislocation kernel from Volterra model")

	// isotropic screw: the kernel comes straight from the dislocation model
	G, ν := 1.0, 0.25
	b := []float64{0, 0, 1}
	ξ := []float64{0, 0, 1}
	n := []float64{0, 1, 0}
	cc, err := elast.NewIsotropic([]*fun.Prm{
		&fun.Prm{N: "E", V: 2.0 * G * (1.0 + ν)},
		&fun.Prm{N: "nu", V: ν},
	})
	if err != nil {
		tst.Errorf("elastic constants failed:\n%v", err)
		return
	}
	disl, err := volterra.Solve(cc, b, ξ, n, nil)
	if err != nil {
		tst.Errorf("Volterra solve failed:\n%v", err)
		return
	}

	// for the screw component the kernel entry is G
	ζ := 1.0
	sfc := &gsurf.Sinusoid{U: []float64{0, 0, 1}, B: 1, Amp: G / (8.0 * math.Pi * math.Pi * ζ)}

	var sol Solver
	err = sol.Init(disl, sfc, []*fun.Prm{
		&fun.Prm{N: "ngrid", V: 201},
		&fun.Prm{N: "dx", V: 0.2},
		&fun.Prm{N: "maxit", V: 3000},
	})
	if err != nil {
		tst.Errorf("Init failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "K33", 1e-10, sol.Kmat[2][2], G)

	x := sol.Grid()
	res, err := sol.Solve(ArctanProfile(x, b, ζ))
	if err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	io.Pforan("iterations = %v   resid = %v\n", res.Iterations, res.Resid)

	// slip stays in the screw direction
	for i := 0; i < len(x); i++ {
		chk.Scalar(tst, io.Sf("d[%d][0]", i), 1e-12, res.D[i][0], 0)
		chk.Scalar(tst, io.Sf("d[%d][1]", i), 1e-12, res.D[i][1], 0)
	}

	w := CoreWidth(res.X, res.D, b)
	io.Pforan("10-90 width = %v  (continuum: %v)\n", w, 6.1554*ζ)
	chk.Scalar(tst, "width", 0.08*6.1554*ζ, w, 6.1554*ζ)
}

func Test_sdvpn03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sdvpn03. iteration cap is not an error")

	// a barrier-free well with pinned ends has no nearby equilibrium, so a
	// tight cap must end with Converged=false and no error
	b := []float64{1, 0, 0}
	K := [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	sfc := &gsurf.HarmonicWell{C: 1}

	var sol Solver
	err := sol.InitKernel(K, b, sfc, []*fun.Prm{
		&fun.Prm{N: "ngrid", V: 101},
		&fun.Prm{N: "dx", V: 0.2},
		&fun.Prm{N: "maxit", V: 50},
	})
	if err != nil {
		tst.Errorf("InitKernel failed:\n%v", err)
		return
	}

	res, err := sol.Solve(StepProfile(sol.Grid(), b))
	if err != nil {
		tst.Errorf("Solve must not fail at the iteration cap:\n%v", err)
		return
	}
	if res.Converged {
		tst.Errorf("harmonic well with pinned ends must not converge in 50 iterations")
		return
	}
	chk.IntAssert(res.Iterations, 50)
}

func Test_sdvpn04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sdvpn04. damping underflow is a divergence failure")

	b := []float64{1, 0, 0}
	K := [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	sfc := &gsurf.Sinusoid{U: []float64{1, 0, 0}, B: 1, Amp: 1.0 / (8.0 * math.Pi * math.Pi)}

	// an absurd damping factor overshoots every step; with the floor just
	// two decades below, halving runs out before the steps stabilise
	var sol Solver
	err := sol.InitKernel(K, b, sfc, []*fun.Prm{
		&fun.Prm{N: "ngrid", V: 101},
		&fun.Prm{N: "dx", V: 0.2},
		&fun.Prm{N: "beta0", V: 1e8},
		&fun.Prm{N: "betamin", V: 1e6},
		&fun.Prm{N: "maxit", V: 200},
	})
	if err != nil {
		tst.Errorf("InitKernel failed:\n%v", err)
		return
	}

	_, err = sol.Solve(ArctanProfile(sol.Grid(), b, 1))
	if err == nil {
		tst.Errorf("Solve must fail when the damping factor underflows")
		return
	}
	var derr *DivergedError
	if !errors.As(err, &derr) {
		tst.Errorf("error must be a DivergedError; got: %v", err)
		return
	}
	io.Pforan("diverged as expected: %v\n", err)
	if derr.Beta >= 1e6 {
		tst.Errorf("reported damping factor must be below the floor; got %v", derr.Beta)
	}
}

func Test_sdvpn05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sdvpn05. invalid solver parameters")

	b := []float64{1, 0, 0}
	K := [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	sfc := &gsurf.HarmonicWell{C: 1}

	var sol Solver
	if err := sol.InitKernel(K, b, sfc, []*fun.Prm{&fun.Prm{N: "ngrid", V: 2}}); err == nil {
		tst.Errorf("ngrid=2 must be rejected")
		return
	}
	if err := sol.InitKernel(K, b, sfc, []*fun.Prm{&fun.Prm{N: "dx", V: -1}}); err == nil {
		tst.Errorf("dx=-1 must be rejected")
		return
	}
}
