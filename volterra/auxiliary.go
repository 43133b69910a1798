// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package volterra

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

func dot(a, b []float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func cross(a, b []float64) []float64 {
	return []float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func unit(a []float64) []float64 {
	n := math.Sqrt(dot(a, a))
	if n < 1e-14 {
		chk.Panic("cannot normalise zero vector")
	}
	return []float64{a[0] / n, a[1] / n, a[2] / n}
}

func clone(a []float64) []float64 {
	b := make([]float64, len(a))
	copy(b, a)
	return b
}
