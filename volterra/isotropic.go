// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package volterra

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// IsotropicVolterraDislocation implements the textbook closed-form displacement
// and stress fields of a straight dislocation in an isotropic medium. The
// Burgers vector must lie in the slip plane (no climb component)
type IsotropicVolterraDislocation struct {

	// input
	G  float64 // shear modulus
	Nu float64 // Poisson's coefficient

	// geometry (unit vectors; m = n × ξ)
	b, ξ, n, m []float64

	// derived
	bs, be float64 // screw and edge components of b
	θcut   float64 // branch-cut ray angle in the (m, n) plane
	rcore  float64 // singularity floor radius
}

// NewIsotropic creates an isotropic Volterra dislocation.
// The slip plane normal must be orthogonal to the line direction and the
// Burgers vector must have no component along the normal
func NewIsotropic(G, ν float64, b, ξ, n []float64, θcut, rcore float64) (*IsotropicVolterraDislocation, error) {
	ξu := unit(ξ)
	nu := unit(n)
	if math.Abs(dot(ξu, nu)) > 1e-8 {
		return nil, chk.Err("slip plane normal must be orthogonal to the line direction: n·ξ = %g", dot(ξu, nu))
	}
	m := cross(nu, ξu)

	bnorm := math.Sqrt(dot(b, b))
	if math.Abs(dot(b, nu)) > 1e-8*bnorm {
		return nil, chk.Err("Burgers vector must lie in the slip plane for the isotropic model: b·n = %g", dot(b, nu))
	}

	var o IsotropicVolterraDislocation
	o.G, o.Nu = G, ν
	o.b = clone(b)
	o.ξ, o.n, o.m = ξu, nu, m
	o.bs = dot(b, ξu)
	o.be = dot(b, m)
	o.θcut = θcut
	o.rcore = rcore
	return &o, nil
}

// Displacement computes the displacement vector at x
func (o *IsotropicVolterraDislocation) Displacement(x []float64) ([]float64, error) {
	xm := dot(o.m, x)
	xn := dot(o.n, x)
	r2 := xm*xm + xn*xn
	if math.Sqrt(r2) <= o.rcore {
		return nil, &SingularFieldError{X: clone(x)}
	}

	// angle measured so that the discontinuity falls on the branch-cut ray
	θ := o.angle(xm, xn)

	// local components (x along m, y along n, z along ξ)
	c4 := 1.0 / (4.0 * (1.0 - o.Nu))
	um := o.be / (2.0 * math.Pi) * (θ + 2.0*c4*xm*xn/r2)
	un := -o.be / (2.0 * math.Pi) * ((1.0-2.0*o.Nu)*c4*math.Log(r2) + c4*(xm*xm-xn*xn)/r2)
	uz := o.bs / (2.0 * math.Pi) * θ

	u := make([]float64, 3)
	for i := 0; i < 3; i++ {
		u[i] = um*o.m[i] + un*o.n[i] + uz*o.ξ[i]
	}
	return u, nil
}

// Stress computes the stress tensor at x
func (o *IsotropicVolterraDislocation) Stress(x []float64) ([][]float64, error) {
	xm := dot(o.m, x)
	xn := dot(o.n, x)
	r2 := xm*xm + xn*xn
	if math.Sqrt(r2) <= o.rcore {
		return nil, &SingularFieldError{X: clone(x)}
	}

	// local stress components
	sl := la.MatAlloc(3, 3)
	D := o.G * o.be / (2.0 * math.Pi * (1.0 - o.Nu))
	S := o.G * o.bs / (2.0 * math.Pi)
	sl[0][0] = -D * xn * (3.0*xm*xm + xn*xn) / (r2 * r2)
	sl[1][1] = D * xn * (xm*xm - xn*xn) / (r2 * r2)
	sl[0][1] = D * xm * (xm*xm - xn*xn) / (r2 * r2)
	sl[1][0] = sl[0][1]
	sl[2][2] = o.Nu * (sl[0][0] + sl[1][1])
	sl[0][2] = -S * xn / r2
	sl[2][0] = sl[0][2]
	sl[1][2] = S * xm / r2
	sl[2][1] = sl[1][2]

	// rotate to the global frame
	e := [][]float64{o.m, o.n, o.ξ}
	σ := la.MatAlloc(3, 3)
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			if sl[a][b] == 0 {
				continue
			}
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					σ[i][j] += sl[a][b] * e[a][i] * e[b][j]
				}
			}
		}
	}
	return σ, nil
}

// Burgers returns a copy of the Burgers vector
func (o *IsotropicVolterraDislocation) Burgers() []float64 { return clone(o.b) }

// Line returns a copy of the line direction
func (o *IsotropicVolterraDislocation) Line() []float64 { return clone(o.ξ) }

// Normal returns a copy of the slip plane normal
func (o *IsotropicVolterraDislocation) Normal() []float64 { return clone(o.n) }

// Character returns the screw and edge components of the Burgers vector
func (o *IsotropicVolterraDislocation) Character() (screw, edge float64) {
	return o.bs, o.be
}

// KTensor returns the prelogarithmic energy tensor:
// G/(1-ν) for the in-plane (edge) directions and G for the line (screw) direction
func (o *IsotropicVolterraDislocation) KTensor() [][]float64 {
	Ke := o.G / (1.0 - o.Nu)
	K := la.MatAlloc(3, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			K[i][j] = Ke*(o.m[i]*o.m[j]+o.n[i]*o.n[j]) + o.G*o.ξ[i]*o.ξ[j]
		}
	}
	return K
}

// Preln returns the prelogarithmic energy factor b·K·b / (4π)
func (o *IsotropicVolterraDislocation) Preln() float64 {
	return (o.G*o.bs*o.bs + o.G/(1.0-o.Nu)*o.be*o.be) / (4.0 * math.Pi)
}

// angle returns the polar angle of (xm, xn) wrapped into (θcut, θcut+2π]
func (o *IsotropicVolterraDislocation) angle(xm, xn float64) float64 {
	δ := math.Atan2(xn, xm) - o.θcut
	for δ <= 0 {
		δ += 2.0 * math.Pi
	}
	for δ > 2.0*math.Pi {
		δ -= 2.0 * math.Pi
	}
	return o.θcut + δ
}
