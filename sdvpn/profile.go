// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdvpn

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// ArctanProfile evaluates the classical continuum Peierls-Nabarro profile
//  d(x) = (b/π)·(atan(x/w) + π/2)
// at the given grid positions, directed along the (unit-normalised) Burgers
// vector b. w is the half width of the dislocation core
func ArctanProfile(x []float64, b []float64, w float64) (d [][]float64) {
	if w <= 0 {
		chk.Panic("core half width must be positive; w=%g is invalid", w)
	}
	d = make([][]float64, len(x))
	for i, xi := range x {
		f := (math.Atan(xi/w) + math.Pi/2.0) / math.Pi
		d[i] = []float64{f * b[0], f * b[1], f * b[2]}
	}
	return
}

// StepProfile evaluates a sharp step profile: zero below the origin and the
// full Burgers vector above it. Useful as a harsh initial guess
func StepProfile(x []float64, b []float64) (d [][]float64) {
	d = make([][]float64, len(x))
	for i, xi := range x {
		f := 0.0
		if xi > 0 {
			f = 1.0
		}
		d[i] = []float64{f * b[0], f * b[1], f * b[2]}
	}
	return
}

// CoreWidth measures the 10-90 width of a disregistry profile: the distance
// between the points where the projection of d on b crosses 10% and 90% of
// the full Burgers magnitude, found by linear interpolation
func CoreWidth(x []float64, d [][]float64, b []float64) float64 {
	chk.IntAssert(len(d), len(x))
	bb := b[0]*b[0] + b[1]*b[1] + b[2]*b[2]
	if bb <= 0 {
		chk.Panic("Burgers vector must be non-zero to measure a core width")
	}
	n := len(x)
	f := make([]float64, n)
	for i := 0; i < n; i++ {
		f[i] = (d[i][0]*b[0] + d[i][1]*b[1] + d[i][2]*b[2]) / bb
	}
	x10 := crossing(x, f, 0.10)
	x90 := crossing(x, f, 0.90)
	return x90 - x10
}

// crossing finds the first upward crossing of level by linear interpolation
func crossing(x, f []float64, level float64) float64 {
	for i := 1; i < len(f); i++ {
		if f[i-1] < level && f[i] >= level {
			t := (level - f[i-1]) / (f[i] - f[i-1])
			return x[i-1] + t*(x[i]-x[i-1])
		}
	}
	chk.Panic("profile never crosses the %g level; cannot measure its width", level)
	return 0
}
