// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gsurf

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// HarmonicWell is a parametric misfit functional with a single minimum at zero
// disregistry and no barrier: γ(d) = C/2 |d|²
type HarmonicWell struct {
	C float64 // curvature
}

// Energy returns the misfit energy at disregistry d
func (o *HarmonicWell) Energy(d []float64) (float64, error) {
	chk.IntAssert(len(d), 3)
	return 0.5 * o.C * dot(d, d), nil
}

// Gradient returns ∂γ/∂d at disregistry d
func (o *HarmonicWell) Gradient(d []float64) ([]float64, error) {
	chk.IntAssert(len(d), 3)
	return []float64{o.C * d[0], o.C * d[1], o.C * d[2]}, nil
}

// Sinusoid is the Frenkel sinusoidal misfit functional along direction U with
// period B: γ(d) = Amp · (1 - cos(2π d·u / B)). Periodic by construction
type Sinusoid struct {
	U   []float64 // slip direction (normalised at first use)
	B   float64   // period (Burgers vector magnitude)
	Amp float64   // energy amplitude
}

// Energy returns the misfit energy at disregistry d
func (o *Sinusoid) Energy(d []float64) (float64, error) {
	chk.IntAssert(len(d), 3)
	u := unit(o.U)
	return o.Amp * (1.0 - math.Cos(2.0*math.Pi*dot(d, u)/o.B)), nil
}

// Gradient returns ∂γ/∂d at disregistry d
func (o *Sinusoid) Gradient(d []float64) ([]float64, error) {
	chk.IntAssert(len(d), 3)
	u := unit(o.U)
	c := o.Amp * 2.0 * math.Pi / o.B * math.Sin(2.0*math.Pi*dot(d, u)/o.B)
	return []float64{c * u[0], c * u[1], c * u[2]}, nil
}

func unit(a []float64) []float64 {
	n := math.Sqrt(dot(a, a))
	if n < 1e-14 {
		chk.Panic("cannot normalise zero vector")
	}
	return []float64{a[0] / n, a[1] / n, a[2] / n}
}
