// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package volterra implements Volterra dislocation models: closed-form
// isotropic fields and anisotropic fields via the sextic (Stroh) formalism
package volterra

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"

	"github.com/cmech/godisloc/elast"
)

// SingularFieldError indicates a field query exactly on the dislocation line,
// where the continuum solution is singular. The caller may perturb the query
// point and retry
type SingularFieldError struct {
	X []float64 // query point
}

// Error returns the error message
func (o *SingularFieldError) Error() string {
	return io.Sf("point %v lies on the dislocation line (singular field)", o.X)
}

// Dislocation is a Volterra dislocation: an immutable model queried for
// displacement and stress at arbitrary points
type Dislocation interface {

	// Displacement computes the displacement vector at x.
	// Fails with SingularFieldError on the dislocation line
	Displacement(x []float64) ([]float64, error)

	// Stress computes the stress tensor at x.
	// Fails with SingularFieldError on the dislocation line
	Stress(x []float64) ([][]float64, error)

	// Burgers, Line and Normal return copies of the geometry vectors
	Burgers() []float64
	Line() []float64
	Normal() []float64

	// Character returns the screw and edge components of the Burgers vector
	Character() (screw, edge float64)

	// KTensor returns the prelogarithmic energy tensor (global frame)
	KTensor() [][]float64

	// Preln returns the prelogarithmic energy factor bᵀKb/(4π) per unit length
	Preln() float64
}

// IsoTol is the default tolerance for detecting isotropic stiffness tensors
var IsoTol = 1e-8

// Solve builds the dislocation model for the given stiffness tensor and
// geometry. Isotropic elasticity takes the closed-form path; anisotropic
// elasticity takes the sextic (Stroh) path. Parameters:
//  "thetacut" -- branch-cut ray angle in the (m, n) plane [default: -π/2]
//  "rcore"    -- singularity floor radius [default: 1e-10·|b|]
//  "isotol"   -- isotropy detection tolerance [default: IsoTol]
func Solve(cc *elast.ElasticConstants, b, ξ, n []float64, prms fun.Prms) (Dislocation, error) {
	chk.IntAssert(len(b), 3)
	chk.IntAssert(len(ξ), 3)
	chk.IntAssert(len(n), 3)

	bnorm := math.Sqrt(b[0]*b[0] + b[1]*b[1] + b[2]*b[2])
	if bnorm < 1e-14 {
		return nil, chk.Err("Burgers vector must be nonzero")
	}

	// parameters
	θcut := -math.Pi / 2.0
	rcore := 1e-10 * bnorm
	isotol := IsoTol
	for _, p := range prms {
		switch p.N {
		case "thetacut":
			θcut = p.V
		case "rcore":
			rcore = p.V
		case "isotol":
			isotol = p.V
		}
	}

	// isotropic limit: separate closed-form path
	if cc.IsIsotropic(isotol) {
		G, ν := cc.IsotropicModuli()
		return NewIsotropic(G, ν, b, ξ, n, θcut, rcore)
	}
	return NewAnisotropic(cc, b, ξ, n, θcut, rcore)
}
