// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package volterra

import (
	"math"

	"github.com/cmech/godisloc/elast"
	"github.com/cmech/godisloc/stroh"
)

// AnisotropicStrohDislocation wraps a sextic (Stroh) solution into the
// Dislocation interface, adding the core-singularity guard
type AnisotropicStrohDislocation struct {
	Sol   *stroh.Solution // reference Stroh solution
	rcore float64         // singularity floor radius
}

// NewAnisotropic creates an anisotropic dislocation by solving the sextic
// eigenvalue problem. Fails with elast.IllConditionedElasticityError for
// degenerate (e.g. isotropic) stiffness tensors
func NewAnisotropic(cc *elast.ElasticConstants, b, ξ, n []float64, θcut, rcore float64) (*AnisotropicStrohDislocation, error) {
	sol, err := stroh.Solve(cc, b, ξ, n)
	if err != nil {
		return nil, err
	}
	sol.ThetaCut = θcut
	return &AnisotropicStrohDislocation{Sol: sol, rcore: rcore}, nil
}

// Displacement computes the displacement vector at x
func (o *AnisotropicStrohDislocation) Displacement(x []float64) ([]float64, error) {
	if o.radius(x) <= o.rcore {
		return nil, &SingularFieldError{X: clone(x)}
	}
	return o.Sol.Displacement(x), nil
}

// Stress computes the stress tensor at x
func (o *AnisotropicStrohDislocation) Stress(x []float64) ([][]float64, error) {
	if o.radius(x) <= o.rcore {
		return nil, &SingularFieldError{X: clone(x)}
	}
	return o.Sol.Stress(x), nil
}

// Burgers returns a copy of the Burgers vector
func (o *AnisotropicStrohDislocation) Burgers() []float64 { return clone(o.Sol.B) }

// Line returns a copy of the line direction
func (o *AnisotropicStrohDislocation) Line() []float64 { return clone(o.Sol.Xi) }

// Normal returns a copy of the slip plane normal
func (o *AnisotropicStrohDislocation) Normal() []float64 { return clone(o.Sol.N) }

// Character returns the screw and edge components of the Burgers vector
func (o *AnisotropicStrohDislocation) Character() (screw, edge float64) {
	screw = dot(o.Sol.B, o.Sol.Xi)
	edge = math.Sqrt(math.Max(dot(o.Sol.B, o.Sol.B)-screw*screw, 0))
	return
}

// KTensor returns the prelogarithmic energy tensor
func (o *AnisotropicStrohDislocation) KTensor() [][]float64 {
	return o.Sol.KTensor()
}

// Preln returns the prelogarithmic energy factor b·K·b / (4π)
func (o *AnisotropicStrohDislocation) Preln() float64 {
	return o.Sol.Preln()
}

// radius returns the in-plane distance from the dislocation line
func (o *AnisotropicStrohDislocation) radius(x []float64) float64 {
	xm := dot(o.Sol.M, x)
	xn := dot(o.Sol.N, x)
	return math.Sqrt(xm*xm + xn*xn)
}
