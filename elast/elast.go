// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package elast implements anisotropic elastic stiffness tensors
package elast

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/mat"
)

// IllConditionedElasticityError indicates an invalid or degenerate stiffness tensor;
// e.g. non-symmetric, not positive-definite, or a singular sextic eigenproblem
type IllConditionedElasticityError struct {
	Msg string // description of the problem
}

// Error returns the error message
func (o *IllConditionedElasticityError) Error() string {
	return io.Sf("ill-conditioned elasticity: %s", o.Msg)
}

// vmap maps pairs of tensor indices to Voigt indices
var vmap = [3][3]int{
	{0, 5, 4},
	{5, 1, 3},
	{4, 3, 2},
}

// ElasticConstants holds a 6x6 Voigt stiffness matrix. Immutable once constructed:
// all accessors return copies and Rotate returns a new structure
type ElasticConstants struct {
	cv [][]float64 // 6x6 Voigt stiffness components
}

// NewFromVoigt creates elastic constants from a 6x6 Voigt matrix.
// The matrix must be symmetric and positive-definite
func NewFromVoigt(C [][]float64) (*ElasticConstants, error) {
	chk.IntAssert(len(C), 6)
	for i := 0; i < 6; i++ {
		chk.IntAssert(len(C[i]), 6)
	}

	// symmetry
	scale := 0.0
	for i := 0; i < 6; i++ {
		scale = utl.Max(scale, math.Abs(C[i][i]))
	}
	if scale == 0 {
		return nil, &IllConditionedElasticityError{"stiffness matrix is zero"}
	}
	for i := 0; i < 6; i++ {
		for j := i + 1; j < 6; j++ {
			if math.Abs(C[i][j]-C[j][i]) > SymTol*scale {
				return nil, &IllConditionedElasticityError{io.Sf("stiffness matrix is not symmetric: C[%d][%d]=%g != C[%d][%d]=%g", i, j, C[i][j], j, i, C[j][i])}
			}
		}
	}

	// positive-definiteness via Cholesky factorisation
	data := make([]float64, 36)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			data[i*6+j] = (C[i][j] + C[j][i]) / 2.0
		}
	}
	var chol mat.Cholesky
	if !chol.Factorize(mat.NewSymDense(6, data)) {
		return nil, &IllConditionedElasticityError{"stiffness matrix is not positive-definite"}
	}

	// store copy
	var o ElasticConstants
	o.cv = la.MatAlloc(6, 6)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			o.cv[i][j] = (C[i][j] + C[j][i]) / 2.0
		}
	}
	return &o, nil
}

// NewIsotropic creates isotropic elastic constants from parameters.
// Accepted pairs: {"E","nu"}, {"G","nu"}, {"K","G"}, {"lam","G"} (any two defining the medium)
func NewIsotropic(prms fun.Prms) (*ElasticConstants, error) {

	// read parameters
	var E, ν, K, G, lam float64
	var hasE, hasν, hasK, hasG, hasLam bool
	for _, p := range prms {
		switch p.N {
		case "E":
			E, hasE = p.V, true
		case "nu":
			ν, hasν = p.V, true
		case "K":
			K, hasK = p.V, true
		case "G", "mu":
			G, hasG = p.V, true
		case "lam":
			lam, hasLam = p.V, true
		}
	}

	// compute Lamé parameters
	switch {
	case hasE && hasν:
		G = Calc_G_from_Enu(E, ν)
		lam = Calc_lam_from_Enu(E, ν)
	case hasG && hasν:
		lam = Calc_lam_from_Gnu(G, ν)
	case hasK && hasG:
		lam = K - 2.0*G/3.0
	case hasLam && hasG:
		// already have lam and G
	default:
		return nil, chk.Err("isotropic elastic constants need one of the pairs {E,nu}, {G,nu}, {K,G} or {lam,G}")
	}

	C := la.MatAlloc(6, 6)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			C[i][j] = lam
		}
		C[i][i] = lam + 2.0*G
		C[i+3][i+3] = G
	}
	return NewFromVoigt(C)
}

// NewCubic creates elastic constants of a cubic crystal from parameters "C11", "C12" and "C44"
func NewCubic(prms fun.Prms) (*ElasticConstants, error) {
	var c11, c12, c44 float64
	for _, p := range prms {
		switch p.N {
		case "C11":
			c11 = p.V
		case "C12":
			c12 = p.V
		case "C44":
			c44 = p.V
		}
	}
	if c11 == 0 || c44 == 0 {
		return nil, chk.Err("cubic elastic constants need C11, C12 and C44")
	}
	C := la.MatAlloc(6, 6)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			C[i][j] = c12
		}
		C[i][i] = c11
		C[i+3][i+3] = c44
	}
	return NewFromVoigt(C)
}

// Voigt returns a copy of the 6x6 Voigt stiffness matrix
func (o *ElasticConstants) Voigt() (C [][]float64) {
	return la.MatClone(o.cv)
}

// At returns the rank-4 stiffness component C[i][j][k][l] (all indices in 0..2)
func (o *ElasticConstants) At(i, j, k, l int) float64 {
	return o.cv[vmap[i][j]][vmap[k][l]]
}

// Rotate returns a new set of elastic constants rotated by the transformation matrix T;
// i.e. C'[ijkl] = T[ia] T[jb] T[kc] T[ld] C[abcd]. T must be orthonormal
func (o *ElasticConstants) Rotate(T [][]float64) (*ElasticConstants, error) {
	chk.IntAssert(len(T), 3)

	// check orthonormality
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			dot := 0.0
			for k := 0; k < 3; k++ {
				dot += T[i][k] * T[j][k]
			}
			var want float64
			if i == j {
				want = 1
			}
			if math.Abs(dot-want) > 1e-10 {
				return nil, chk.Err("rotation matrix is not orthonormal: (T Tᵀ)[%d][%d] = %g", i, j, dot)
			}
		}
	}

	// rotate rank-4 tensor
	Cr := la.MatAlloc(6, 6)
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			for k := 0; k < 3; k++ {
				for l := k; l < 3; l++ {
					s := 0.0
					for a := 0; a < 3; a++ {
						for b := 0; b < 3; b++ {
							for c := 0; c < 3; c++ {
								for d := 0; d < 3; d++ {
									s += T[i][a] * T[j][b] * T[k][c] * T[l][d] * o.At(a, b, c, d)
								}
							}
						}
					}
					Cr[vmap[i][j]][vmap[k][l]] = s
					Cr[vmap[k][l]][vmap[i][j]] = s
				}
			}
		}
	}
	return NewFromVoigt(Cr)
}

// IsIsotropic tells whether the stiffness tensor is isotropic within the given
// relative tolerance
func (o *ElasticConstants) IsIsotropic(tol float64) bool {
	c := o.cv
	scale := utl.Max(math.Abs(c[0][0]), math.Abs(c[3][3]))
	if scale == 0 {
		return false
	}
	d := func(a, b float64) bool { return math.Abs(a-b) <= tol*scale }

	// diagonal blocks
	if !d(c[0][0], c[1][1]) || !d(c[0][0], c[2][2]) {
		return false
	}
	if !d(c[0][1], c[0][2]) || !d(c[0][1], c[1][2]) {
		return false
	}
	if !d(c[3][3], c[4][4]) || !d(c[3][3], c[5][5]) {
		return false
	}

	// isotropy condition: 2 C44 = C11 - C12
	if !d(2.0*c[3][3], c[0][0]-c[0][1]) {
		return false
	}

	// no shear coupling
	for i := 0; i < 3; i++ {
		for j := 3; j < 6; j++ {
			if !d(c[i][j], 0) {
				return false
			}
		}
	}
	return d(c[3][4], 0) && d(c[3][5], 0) && d(c[4][5], 0)
}

// IsotropicModuli returns the shear modulus and Poisson's ratio of an isotropic
// (or isotropic-averaged) stiffness tensor
func (o *ElasticConstants) IsotropicModuli() (G, ν float64) {
	lam := (o.cv[0][1] + o.cv[0][2] + o.cv[1][2]) / 3.0
	G = (o.cv[3][3] + o.cv[4][4] + o.cv[5][5]) / 3.0
	ν = lam / (2.0 * (lam + G))
	return
}

// Zener returns the Zener anisotropy ratio 2 C44 / (C11 - C12)
func (o *ElasticConstants) Zener() float64 {
	den := o.cv[0][0] - o.cv[0][1]
	if math.Abs(den) < 1e-14 {
		return math.Inf(1)
	}
	return 2.0 * o.cv[3][3] / den
}

// SymTol is the relative tolerance for checking symmetry of stiffness matrices
var SymTol = 1e-10
