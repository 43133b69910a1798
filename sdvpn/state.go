// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdvpn

import "github.com/cpmech/gosl/la"

// State holds the mutable data of one SDVPN solve: the disregistry profile
// (the authoritative solver state), its backup for divergence control, and
// the iteration bookkeeping. It is passed explicitly to each iteration step
type State struct {

	// essential
	D    [][]float64 // disregistry profile [n][3]; one vector per grid point
	Dbkp [][]float64 // backup profile for divergence control [n][3]

	// iteration control
	It        int     // iteration count (including rejected steps)
	Beta      float64 // current damping factor
	Ndiverg   int     // number of rejected (energy-increasing) steps
	Converged bool    // convergence flag

	// history
	EnergyHist []float64 // total energy per accepted iteration
	ResidHist  []float64 // maximum per-point disregistry change per iteration

	// workspace
	rho  [][]float64 // interval densities [m][3]
	krho [][]float64 // K·rho [m][3]
	sum  [][]float64 // nonlocal sums Σ_j Γ[i][j]·(K·rho)[j] [m][3]
}

// NewState allocates the state for a profile with n grid points and m
// density intervals
func NewState(initial [][]float64, m int, beta float64) *State {
	n := len(initial)
	var s State
	s.D = la.MatAlloc(n, 3)
	s.Dbkp = la.MatAlloc(n, 3)
	for i := 0; i < n; i++ {
		copy(s.D[i], initial[i])
		copy(s.Dbkp[i], initial[i])
	}
	s.Beta = beta
	s.rho = la.MatAlloc(m, 3)
	s.krho = la.MatAlloc(m, 3)
	s.sum = la.MatAlloc(m, 3)
	return &s
}

// Backup saves the current profile
func (o *State) Backup() {
	for i := 0; i < len(o.D); i++ {
		copy(o.Dbkp[i], o.D[i])
	}
}

// Restore recovers the last backed-up profile
func (o *State) Restore() {
	for i := 0; i < len(o.D); i++ {
		copy(o.D[i], o.Dbkp[i])
	}
}

// GetProfile returns a copy of the current disregistry profile
func (o *State) GetProfile() [][]float64 {
	return la.MatClone(o.D)
}
