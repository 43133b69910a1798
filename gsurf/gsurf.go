// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package gsurf implements gamma surfaces: stacking-fault energy landscapes
// as functions of the in-plane disregistry vector
package gsurf

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// OutOfDomainError indicates a gamma-surface lookup outside the sampled
// domain with periodic wrapping disabled. The caller may extend the table
// or enable wrapping
type OutOfDomainError struct {
	D      []float64 // query disregistry vector
	F1, F2 float64   // fractional coordinates of the query
}

// Error returns the error message
func (o *OutOfDomainError) Error() string {
	return io.Sf("disregistry %v (fractional %g,%g) is outside the sampled gamma-surface domain", o.D, o.F1, o.F2)
}

// Surface is a misfit energy functional over in-plane disregistry vectors
type Surface interface {

	// Energy returns the misfit energy per unit area at disregistry d
	Energy(d []float64) (float64, error)

	// Gradient returns ∂γ/∂d at disregistry d
	Gradient(d []float64) ([]float64, error)
}

// GammaSurface interpolates a tabulated energy map over a periodic 2D cell
// spanned by the in-plane lattice vectors a1 and a2. Sample E[i][j] is the
// energy at (i/n1)·a1 + (j/n2)·a2 when periodic, or at
// (i/(n1-1))·a1 + (j/(n2-1))·a2 when not
type GammaSurface struct {

	// input
	A1, A2   []float64   // in-plane lattice (periodicity) vectors
	E        [][]float64 // energy samples [n1][n2]
	Periodic bool        // wrap queries modulo the lattice cell

	// derived
	n1, n2 int
	g1, g2 []float64 // dual vectors: f1 = g1·d, f2 = g2·d
}

// New creates a gamma surface from sampled data
func New(a1, a2 []float64, E [][]float64, periodic bool) (*GammaSurface, error) {
	chk.IntAssert(len(a1), 3)
	chk.IntAssert(len(a2), 3)
	n1 := len(E)
	if n1 < 2 {
		return nil, chk.Err("gamma surface needs at least 2 samples along a1")
	}
	n2 := len(E[0])
	if n2 < 2 {
		return nil, chk.Err("gamma surface needs at least 2 samples along a2")
	}
	for i := 0; i < n1; i++ {
		chk.IntAssert(len(E[i]), n2)
	}

	// dual vectors from the Gram matrix of (a1, a2)
	g11 := dot(a1, a1)
	g12 := dot(a1, a2)
	g22 := dot(a2, a2)
	det := g11*g22 - g12*g12
	if math.Abs(det) < 1e-14*g11*g22 {
		return nil, chk.Err("lattice vectors a1 and a2 are (nearly) parallel")
	}

	var o GammaSurface
	o.A1, o.A2 = clone(a1), clone(a2)
	o.E = make([][]float64, n1)
	for i := 0; i < n1; i++ {
		o.E[i] = make([]float64, n2)
		copy(o.E[i], E[i])
	}
	o.Periodic = periodic
	o.n1, o.n2 = n1, n2
	o.g1 = make([]float64, 3)
	o.g2 = make([]float64, 3)
	for i := 0; i < 3; i++ {
		o.g1[i] = (g22*a1[i] - g12*a2[i]) / det
		o.g2[i] = (g11*a2[i] - g12*a1[i]) / det
	}
	return &o, nil
}

// Energy returns the bilinearly interpolated misfit energy at disregistry d.
// The out-of-plane component of d is ignored
func (o *GammaSurface) Energy(d []float64) (float64, error) {
	i0, j0, i1, j1, t, s, err := o.locate(d)
	if err != nil {
		return 0, err
	}
	return (1.0-t)*(1.0-s)*o.E[i0][j0] + t*(1.0-s)*o.E[i1][j0] +
		(1.0-t)*s*o.E[i0][j1] + t*s*o.E[i1][j1], nil
}

// Gradient returns ∂γ/∂d of the bilinear interpolant at disregistry d
func (o *GammaSurface) Gradient(d []float64) ([]float64, error) {
	i0, j0, i1, j1, t, s, err := o.locate(d)
	if err != nil {
		return nil, err
	}

	// derivatives with respect to the fractional coordinates
	m1, m2 := float64(o.n1), float64(o.n2)
	if !o.Periodic {
		m1, m2 = float64(o.n1-1), float64(o.n2-1)
	}
	df1 := m1 * ((1.0-s)*(o.E[i1][j0]-o.E[i0][j0]) + s*(o.E[i1][j1]-o.E[i0][j1]))
	df2 := m2 * ((1.0-t)*(o.E[i0][j1]-o.E[i0][j0]) + t*(o.E[i1][j1]-o.E[i1][j0]))

	// chain rule through the dual vectors
	g := make([]float64, 3)
	for i := 0; i < 3; i++ {
		g[i] = df1*o.g1[i] + df2*o.g2[i]
	}
	return g, nil
}

// locate finds the interpolation cell and local coordinates of the query
func (o *GammaSurface) locate(d []float64) (i0, j0, i1, j1 int, t, s float64, err error) {
	chk.IntAssert(len(d), 3)
	f1 := dot(o.g1, d)
	f2 := dot(o.g2, d)

	if o.Periodic {
		f1 -= math.Floor(f1)
		f2 -= math.Floor(f2)
		u := f1 * float64(o.n1)
		v := f2 * float64(o.n2)
		i0 = int(u) % o.n1
		j0 = int(v) % o.n2
		t = u - math.Floor(u)
		s = v - math.Floor(v)
		i1 = (i0 + 1) % o.n1
		j1 = (j0 + 1) % o.n2
		return
	}

	const tiny = 1e-12
	if f1 < -tiny || f1 > 1.0+tiny || f2 < -tiny || f2 > 1.0+tiny {
		err = &OutOfDomainError{D: clone(d), F1: f1, F2: f2}
		return
	}
	u := math.Min(math.Max(f1, 0), 1) * float64(o.n1-1)
	v := math.Min(math.Max(f2, 0), 1) * float64(o.n2-1)
	i0 = int(u)
	j0 = int(v)
	if i0 > o.n1-2 {
		i0 = o.n1 - 2
	}
	if j0 > o.n2-2 {
		j0 = o.n2 - 2
	}
	t = u - float64(i0)
	s = v - float64(j0)
	i1 = i0 + 1
	j1 = j0 + 1
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func dot(a, b []float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func clone(a []float64) []float64 {
	b := make([]float64, len(a))
	copy(b, a)
	return b
}
