// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sdvpn implements the semi-discrete variational Peierls-Nabarro
// model: a damped fixed-point iteration balancing the nonlocal elastic
// energy of a discretised slip plane against a gamma-surface misfit energy
package sdvpn

import (
	"math"
	"runtime"
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"

	"github.com/cmech/godisloc/gsurf"
	"github.com/cmech/godisloc/volterra"
)

// DivergedError indicates that the damped relaxation failed to stabilise:
// the adaptive damping factor underflowed its floor after repeated
// energy-increasing steps. Fatal for this solve attempt; the caller may
// retry with a different initial profile or relaxed physics
type DivergedError struct {
	It   int     // iteration at which the damping floor was reached
	Beta float64 // damping factor at failure
}

// Error returns the error message
func (o *DivergedError) Error() string {
	return io.Sf("SDVPN solver diverged: damping factor %g underflowed its floor at iteration %d", o.Beta, o.It)
}

// Results holds the outcome of one SDVPN solve. Non-convergence at the
// iteration cap is a normal partial-success result with Converged=false
type Results struct {
	X          []float64   // grid positions along the slip plane [n]
	D          [][]float64 // disregistry profile [n][3]
	Converged  bool        // convergence flag
	Iterations int         // number of iterations performed
	Resid      float64     // final residual (maximum per-point change)
	EnergyHist []float64   // total energy per accepted iteration
	ResidHist  []float64   // residual history
}

// Solver solves for the equilibrium disregistry profile of one dislocation.
// The elastic kernel (prelogarithmic energy tensor) and the gamma surface
// are read-only during Solve and safe to share
type Solver struct {

	// configuration
	Ngrid   int     // number of grid points along the slip plane
	Dx      float64 // grid spacing
	Tol     float64 // convergence tolerance on the maximum per-point change
	MaxIt   int     // iteration cap
	Beta0   float64 // initial damping factor
	BetaMin float64 // damping floor; going below is a divergence failure
	EnTol   float64 // relative tolerance for detecting energy increases
	Periodic bool   // periodic boundary instead of pinned asymptotic ends
	ShowR   bool    // print residuals during iterations
	Nwork   int     // number of workers for the nonlocal sums; 0 => NumCPU

	// problem data
	B    []float64   // Burgers vector
	Kmat [][]float64 // prelogarithmic energy tensor (elastic kernel)
	sfc  gsurf.Surface

	// derived
	kscale float64     // tr(K)/3; normalises the damped update
	gamma  [][]float64 // pairwise log weights Γ[i][j] over density intervals
}

// Init initialises the solver from a dislocation model (elastic kernel
// source) and a gamma surface. Parameters:
//  "ngrid"   -- number of grid points [default: 201]
//  "dx"      -- grid spacing [default: 0.1]
//  "tol"     -- convergence tolerance [default: 1e-8]
//  "maxit"   -- iteration cap [default: 2000]
//  "beta0"   -- initial damping factor [default: 0.3]
//  "betamin" -- damping floor [default: 1e-10]
//  "periodic"-- periodic boundary conditions if > 0 [default: 0]
//  "showr"   -- print residuals if > 0 [default: 0]
func (o *Solver) Init(disl volterra.Dislocation, sfc gsurf.Surface, prms fun.Prms) error {
	return o.InitKernel(disl.KTensor(), disl.Burgers(), sfc, prms)
}

// InitKernel initialises the solver directly from an elastic kernel tensor
// and Burgers vector; see Init for the parameters
func (o *Solver) InitKernel(K [][]float64, b []float64, sfc gsurf.Surface, prms fun.Prms) error {
	chk.IntAssert(len(b), 3)
	chk.IntAssert(len(K), 3)

	// default values
	o.Ngrid = 201
	o.Dx = 0.1
	o.Tol = 1e-8
	o.MaxIt = 2000
	o.Beta0 = 0.3
	o.BetaMin = 1e-10
	o.EnTol = 1e-12
	o.Periodic = false
	o.ShowR = false

	// parameters
	for _, p := range prms {
		switch p.N {
		case "ngrid":
			o.Ngrid = int(p.V)
		case "dx":
			o.Dx = p.V
		case "tol":
			o.Tol = p.V
		case "maxit":
			o.MaxIt = int(p.V)
		case "beta0":
			o.Beta0 = p.V
		case "betamin":
			o.BetaMin = p.V
		case "periodic":
			o.Periodic = p.V > 0
		case "showr":
			o.ShowR = p.V > 0
		}
	}
	if o.Ngrid < 3 {
		return chk.Err("SDVPN grid needs at least 3 points; ngrid=%d is invalid", o.Ngrid)
	}
	if o.Dx <= 0 {
		return chk.Err("grid spacing must be positive; dx=%g is invalid", o.Dx)
	}

	// problem data
	o.B = make([]float64, 3)
	copy(o.B, b)
	o.Kmat = la.MatClone(K)
	o.sfc = sfc
	o.kscale = (K[0][0] + K[1][1] + K[2][2]) / 3.0
	if o.kscale <= 0 {
		return chk.Err("elastic kernel tensor must have positive trace; tr(K)/3=%g", o.kscale)
	}

	// pairwise log weights over density intervals.
	// Γ[i][j] = ln(|i-j|) comes from segment-averaged 1/r interactions;
	// the self term is the segment self-energy constant
	m := o.nmid()
	o.gamma = la.MatAlloc(m, m)
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			if i == j {
				o.gamma[i][j] = -1.5
				continue
			}
			if o.Periodic {
				fm := float64(m)
				o.gamma[i][j] = math.Log(fm / math.Pi * math.Abs(math.Sin(math.Pi*float64(i-j)/fm)))
			} else {
				o.gamma[i][j] = math.Log(math.Abs(float64(i - j)))
			}
		}
	}
	return nil
}

// Grid returns the grid positions along the slip plane, centred at zero
func (o *Solver) Grid() []float64 {
	x := make([]float64, o.Ngrid)
	half := float64(o.Ngrid-1) / 2.0
	for i := 0; i < o.Ngrid; i++ {
		x[i] = (float64(i) - half) * o.Dx
	}
	return x
}

// nmid returns the number of density intervals
func (o *Solver) nmid() int {
	if o.Periodic {
		return o.Ngrid
	}
	return o.Ngrid - 1
}

// NewState allocates the iteration state for the given initial profile.
// With asymptotic boundary conditions the end points are pinned to zero
// and to the Burgers vector
func (o *Solver) NewState(initial [][]float64) *State {
	chk.IntAssert(len(initial), o.Ngrid)
	s := NewState(initial, o.nmid(), o.Beta0)
	if !o.Periodic {
		for c := 0; c < 3; c++ {
			s.D[0][c] = 0
			s.D[o.Ngrid-1][c] = o.B[c]
		}
		s.Backup()
	}
	return s
}

// Solve iterates from the initial profile until convergence, divergence or
// the iteration cap. Non-convergence at the cap is NOT an error: the best
// profile so far is returned with Converged=false
func (o *Solver) Solve(initial [][]float64) (*Results, error) {

	s := o.NewState(initial)

	// message
	if o.ShowR {
		io.Pf("%6s%23s%23s%15s\n", "it", "energy", "resid", "beta")
	}

	// iterations
	for s.It < o.MaxIt && !s.Converged {
		if err := o.Iterate(s); err != nil {
			return nil, err
		}
		if o.ShowR && len(s.EnergyHist) > 0 && len(s.ResidHist) > 0 {
			io.Pf("%6d%23.15e%23.15e%15.8e\n", s.It, s.EnergyHist[len(s.EnergyHist)-1], s.ResidHist[len(s.ResidHist)-1], s.Beta)
		}
	}
	if o.ShowR && !s.Converged {
		io.PfMag("max number of iterations reached: it = %d\n", s.It)
	}

	// results
	res := &Results{
		X:          o.Grid(),
		D:          s.GetProfile(),
		Converged:  s.Converged,
		Iterations: s.It,
		EnergyHist: s.EnergyHist,
		ResidHist:  s.ResidHist,
	}
	if len(s.ResidHist) > 0 {
		res.Resid = s.ResidHist[len(s.ResidHist)-1]
	}
	return res, nil
}

// Iterate performs one iteration step: energy bookkeeping with adaptive
// damping (an energy increase rejects the step and halves the damping
// factor), then a damped relaxation update balancing the nonlocal elastic
// force against the gamma-surface misfit force
func (o *Solver) Iterate(s *State) error {

	m := o.nmid()
	n := o.Ngrid

	// interval densities and K·rho
	for i := 0; i < m; i++ {
		ip := i + 1
		if ip == n {
			ip = 0 // periodic wrap
		}
		for c := 0; c < 3; c++ {
			s.rho[i][c] = (s.D[ip][c] - s.D[i][c]) / o.Dx
		}
		la.MatVecMul(s.krho[i], 1, o.Kmat, s.rho[i])
	}

	// nonlocal sums (the dominant O(m²) step)
	o.nonlocalSums(s, m)

	// total energy
	E := o.totalEnergy(s, m)

	// divergence control: reject energy-increasing steps
	if nh := len(s.EnergyHist); nh > 0 {
		last := s.EnergyHist[nh-1]
		if E > last+o.EnTol*(1.0+math.Abs(last)) {
			s.Restore()
			s.Beta *= 0.5
			s.Ndiverg++
			s.It++
			if s.Beta < o.BetaMin {
				return &DivergedError{It: s.It, Beta: s.Beta}
			}
			return nil
		}
	}
	s.Backup()
	s.EnergyHist = append(s.EnergyHist, E)

	// damped relaxation update
	resid := 0.0
	cel := o.Dx / (2.0 * math.Pi)
	kfirst, klast := 1, n-2
	if o.Periodic {
		kfirst, klast = 0, n-1
	}
	for k := kfirst; k <= klast; k++ {

		// elastic restoring force
		km := k - 1
		if km < 0 {
			km = m - 1
		}
		kk := k % m
		var F [3]float64
		for c := 0; c < 3; c++ {
			F[c] = cel * (s.sum[km][c] - s.sum[kk][c])
		}

		// misfit force
		g, err := o.sfc.Gradient(s.D[k])
		if err != nil {
			return err
		}
		for c := 0; c < 3; c++ {
			F[c] -= o.Dx * g[c]
		}

		// damped update
		for c := 0; c < 3; c++ {
			δ := s.Beta * F[c] / (o.Dx * o.kscale)
			s.D[k][c] += δ
			resid = utl.Max(resid, math.Abs(δ))
		}
	}
	s.ResidHist = append(s.ResidHist, resid)
	s.It++

	// convergence and damping recovery
	if resid < o.Tol {
		s.Converged = true
	}
	s.Beta = math.Min(s.Beta*1.05, o.Beta0)
	return nil
}

// nonlocalSums computes sum[i] = Σ_j Γ[i][j]·(K·rho)[j], fanning the rows
// out over workers; the kernel and densities are read-only here
func (o *Solver) nonlocalSums(s *State, m int) {
	nw := o.Nwork
	if nw < 1 {
		nw = runtime.NumCPU()
	}
	if m < 128 || nw == 1 {
		for i := 0; i < m; i++ {
			o.sumRow(s, i, m)
		}
		return
	}
	var wg sync.WaitGroup
	chunk := (m + nw - 1) / nw
	for w := 0; w < nw; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > m {
			hi = m
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				o.sumRow(s, i, m)
			}
		}(lo, hi)
	}
	wg.Wait()
}

// sumRow computes one row of the nonlocal sums
func (o *Solver) sumRow(s *State, i, m int) {
	var s0, s1, s2 float64
	gi := o.gamma[i]
	for j := 0; j < m; j++ {
		w := gi[j]
		s0 += w * s.krho[j][0]
		s1 += w * s.krho[j][1]
		s2 += w * s.krho[j][2]
	}
	s.sum[i][0] = s0
	s.sum[i][1] = s1
	s.sum[i][2] = s2
}

// totalEnergy computes the discrete total energy: the nonlocal elastic
// double sum plus the local misfit sum
func (o *Solver) totalEnergy(s *State, m int) float64 {
	Eel := 0.0
	for i := 0; i < m; i++ {
		for c := 0; c < 3; c++ {
			Eel += s.rho[i][c] * s.sum[i][c]
		}
	}
	Eel *= -o.Dx * o.Dx / (4.0 * math.Pi)

	Emis := 0.0
	for k := 0; k < o.Ngrid; k++ {
		γ, err := o.sfc.Energy(s.D[k])
		if err != nil {
			chk.Panic("gamma-surface evaluation failed inside the energy sum: %v", err)
		}
		Emis += γ
	}
	return Eel + o.Dx*Emis
}
