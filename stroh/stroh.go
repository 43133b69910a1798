// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package stroh implements the sextic eigenvalue formalism for anisotropic
// elastic dislocation fields
package stroh

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"

	"github.com/cmech/godisloc/elast"
)

// Solution holds the solution of the sextic eigenvalue problem for one
// dislocation: eigenvalues in conjugate pairs, the displacement (A) and
// stress-function (L) matrices, and the prelogarithmic energy tensor.
// Immutable once computed
type Solution struct {

	// input
	B  []float64 // Burgers vector
	Xi []float64 // dislocation line direction (unit)
	N  []float64 // slip plane normal (unit)
	M  []float64 // in-plane direction completing the right-handed frame (m, n, ξ)

	// eigen data
	P []complex128   // 3 eigenvalues with positive imaginary part, deterministically ordered
	A [][]complex128 // displacement eigenvectors [3][3]; column α holds a_α
	L [][]complex128 // stress-function eigenvectors [3][3]; column α holds l_α

	// derived
	K [][]float64 // prelogarithmic energy tensor [3][3]

	// branch cut
	ThetaCut float64 // branch-cut ray angle in the (m, n) plane

	// reference to stiffness for stress evaluation
	cc *elast.ElasticConstants
}

// tolerances
var (
	EvTol   = 1e-8  // minimum imaginary part for a valid sextic eigenvalue (relative)
	PairTol = 1e-8  // minimum separation between distinct eigenvalues (relative)
	NrmTol  = 1e-10 // minimum |2 a·l| for the biorthogonal normalisation
)

// Solve computes the Stroh solution for a dislocation with Burgers vector b,
// line direction ξ and slip plane normal n (n must be orthogonal to ξ).
// Fails with elast.IllConditionedElasticityError when the sextic eigenproblem
// is singular or degenerate; the isotropic limit must be handled by a
// closed-form model instead
func Solve(cc *elast.ElasticConstants, b, ξ, n []float64) (*Solution, error) {
	chk.IntAssert(len(b), 3)
	chk.IntAssert(len(ξ), 3)
	chk.IntAssert(len(n), 3)

	// frame (m, n, ξ) with m = n × ξ
	ξu := unit(ξ)
	nu := unit(n)
	if math.Abs(dot(ξu, nu)) > 1e-8 {
		return nil, chk.Err("slip plane normal must be orthogonal to the line direction: n·ξ = %g", dot(ξu, nu))
	}
	m := cross(nu, ξu)

	var o Solution
	o.B = clone(b)
	o.Xi = ξu
	o.N = nu
	o.M = m
	o.ThetaCut = -math.Pi / 2.0 // default: along the negative slip-plane-normal direction
	o.cc = cc

	// contracted matrices: Q[ik] = C[ijks] m[j] m[s], R[ik] = C[ijks] m[j] n[s], T[ik] = C[ijks] n[j] n[s]
	Q := contract(cc, m, m)
	R := contract(cc, m, nu)
	T := contract(cc, nu, nu)

	// invert T
	Ti := la.MatAlloc(3, 3)
	if err := la.MatInvG(Ti, T, 1e-12); err != nil {
		return nil, &elast.IllConditionedElasticityError{Msg: "cannot invert (nn) matrix of the sextic problem"}
	}

	// sextic matrix:
	//  N = | -T⁻¹ Rᵀ       T⁻¹  |
	//      | R T⁻¹ Rᵀ - Q  -R T⁻¹ |
	N1 := la.MatAlloc(3, 3) // -T⁻¹ Rᵀ
	N2 := Ti                // T⁻¹
	N3 := la.MatAlloc(3, 3) // R T⁻¹ Rᵀ - Q
	RT := la.MatAlloc(3, 3) // R T⁻¹
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				N1[i][j] -= Ti[i][k] * R[j][k]
				RT[i][j] += R[i][k] * Ti[k][j]
			}
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			N3[i][j] = -Q[i][j]
			for k := 0; k < 3; k++ {
				N3[i][j] += RT[i][k] * R[j][k]
			}
		}
	}
	NN := mat.NewDense(6, 6, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			NN.Set(i, j, N1[i][j])
			NN.Set(i, j+3, N2[i][j])
			NN.Set(i+3, j, N3[i][j])
			NN.Set(i+3, j+3, -RT[i][j]) // N1ᵀ = -R T⁻¹
		}
	}

	// eigen decomposition
	var eig mat.Eigen
	if !eig.Factorize(NN, mat.EigenRight) {
		return nil, &elast.IllConditionedElasticityError{Msg: "sextic eigen decomposition failed"}
	}
	values := eig.Values(nil)
	var vecs mat.CDense
	eig.VectorsTo(&vecs)

	// scale for relative tolerances
	scale := 0.0
	for _, p := range values {
		scale += cmplx.Abs(p)
	}
	scale /= 6.0
	if scale == 0 {
		return nil, &elast.IllConditionedElasticityError{Msg: "sextic eigenvalues are all zero"}
	}

	// select the positive-imaginary member of each conjugate pair
	var idx []int
	for i, p := range values {
		if imag(p) > EvTol*scale {
			idx = append(idx, i)
		}
	}
	if len(idx) != 3 {
		return nil, &elast.IllConditionedElasticityError{Msg: io.Sf("expected 3 eigenvalues with positive imaginary part, got %d (degenerate or isotropic elasticity)", len(idx))}
	}

	// deterministic canonical order: by real part, then by imaginary part
	sort.Slice(idx, func(a, b int) bool {
		pa, pb := values[idx[a]], values[idx[b]]
		if math.Abs(real(pa)-real(pb)) > PairTol*scale {
			return real(pa) < real(pb)
		}
		return imag(pa) < imag(pb)
	})

	// reject (near) repeated roots: the non-semisimple case needs the isotropic path
	for a := 0; a < 3; a++ {
		for b := a + 1; b < 3; b++ {
			if cmplx.Abs(values[idx[a]]-values[idx[b]]) < PairTol*scale {
				return nil, &elast.IllConditionedElasticityError{Msg: "repeated sextic eigenvalues (degenerate or isotropic elasticity)"}
			}
		}
	}

	// biorthogonal normalisation: 2 a·l = 1
	o.P = make([]complex128, 3)
	o.A = cmplxMatAlloc(3, 3)
	o.L = cmplxMatAlloc(3, 3)
	for α, id := range idx {
		o.P[α] = values[id]
		a := make([]complex128, 3)
		l := make([]complex128, 3)
		for i := 0; i < 3; i++ {
			a[i] = vecs.At(i, id)
			l[i] = vecs.At(i+3, id)
		}
		al := a[0]*l[0] + a[1]*l[1] + a[2]*l[2]
		if cmplx.Abs(2.0*al) < NrmTol {
			return nil, &elast.IllConditionedElasticityError{Msg: "biorthogonal normalisation failed (defective eigenvectors)"}
		}
		k := 1.0 / cmplx.Sqrt(2.0*al)
		for i := 0; i < 3; i++ {
			o.A[i][α] = k * a[i]
			o.L[i][α] = k * l[i]
		}
	}

	// prelogarithmic energy tensor: K = -2 Im(L Lᵀ), sign fixed by positive definiteness
	o.K = la.MatAlloc(3, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s := complex(0, 0)
			for α := 0; α < 3; α++ {
				s += o.L[i][α] * o.L[j][α]
			}
			o.K[i][j] = -2.0 * imag(s)
		}
	}
	if o.K[0][0]+o.K[1][1]+o.K[2][2] < 0 {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				o.K[i][j] = -o.K[i][j]
			}
		}
	}
	for i := 0; i < 3; i++ {
		if o.K[i][i] <= 0 {
			return nil, &elast.IllConditionedElasticityError{Msg: "prelogarithmic energy tensor is not positive-definite"}
		}
	}
	return &o, nil
}

// Displacement evaluates the displacement field at point x (global frame).
// The field is continuous everywhere except across the branch-cut ray at
// angle ThetaCut in the (m, n) plane, where it jumps by the Burgers vector
func (o *Solution) Displacement(x []float64) (u []float64) {
	xm := dot(o.M, x)
	xn := dot(o.N, x)
	u = make([]float64, 3)
	for α := 0; α < 3; α++ {
		η := complex(xm, 0) + o.P[α]*complex(xn, 0)
		φ := o.branchAngle(α)
		lb := complex(0, 0)
		for i := 0; i < 3; i++ {
			lb += o.L[i][α] * complex(o.B[i], 0)
		}
		lnη := logBranch(η, φ)
		for i := 0; i < 3; i++ {
			u[i] += imag(o.A[i][α]*lb*lnη) / math.Pi
		}
	}
	return
}

// Stress evaluates the stress tensor at point x (global frame)
func (o *Solution) Stress(x []float64) (σ [][]float64) {
	xm := dot(o.M, x)
	xn := dot(o.N, x)

	// displacement gradient
	grad := la.MatAlloc(3, 3)
	for α := 0; α < 3; α++ {
		η := complex(xm, 0) + o.P[α]*complex(xn, 0)
		lb := complex(0, 0)
		for i := 0; i < 3; i++ {
			lb += o.L[i][α] * complex(o.B[i], 0)
		}
		for k := 0; k < 3; k++ {
			for l := 0; l < 3; l++ {
				dη := complex(o.M[l], 0) + o.P[α]*complex(o.N[l], 0)
				grad[k][l] += imag(o.A[k][α]*lb*dη/η) / math.Pi
			}
		}
	}

	// σ[ij] = C[ijkl] ∂u[k]/∂x[l]
	σ = la.MatAlloc(3, 3)
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			s := 0.0
			for k := 0; k < 3; k++ {
				for l := 0; l < 3; l++ {
					s += o.cc.At(i, j, k, l) * grad[k][l]
				}
			}
			σ[i][j] = s
			σ[j][i] = s
		}
	}
	return
}

// KTensor returns a copy of the prelogarithmic energy tensor
func (o *Solution) KTensor() [][]float64 {
	return la.MatClone(o.K)
}

// Preln returns the prelogarithmic energy factor b·K·b / (4π); the elastic
// energy per unit length between radii r0 and R is Preln·ln(R/r0)
func (o *Solution) Preln() float64 {
	s := 0.0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s += o.B[i] * o.K[i][j] * o.B[j]
		}
	}
	return s / (4.0 * math.Pi)
}

// branchAngle returns the complex argument of η evaluated along the branch-cut
// ray, so that the logarithm discontinuity of mode α falls exactly on ThetaCut
func (o *Solution) branchAngle(α int) float64 {
	cm := math.Cos(o.ThetaCut)
	cn := math.Sin(o.ThetaCut)
	ηcut := complex(cm, 0) + o.P[α]*complex(cn, 0)
	return cmplx.Phase(ηcut)
}

// logBranch computes the complex logarithm with the branch discontinuity
// placed at argument φ; i.e. arg(ln) ∈ (φ, φ+2π]
func logBranch(z complex128, φ float64) complex128 {
	δ := cmplx.Phase(z) - φ
	for δ <= 0 {
		δ += 2.0 * math.Pi
	}
	for δ > 2.0*math.Pi {
		δ -= 2.0 * math.Pi
	}
	return complex(math.Log(cmplx.Abs(z)), φ+δ)
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func contract(cc *elast.ElasticConstants, a, b []float64) (M [][]float64) {
	M = la.MatAlloc(3, 3)
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			s := 0.0
			for j := 0; j < 3; j++ {
				for l := 0; l < 3; l++ {
					s += cc.At(i, j, k, l) * a[j] * b[l]
				}
			}
			M[i][k] = s
		}
	}
	return
}

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

func cmplxMatAlloc(m, n int) [][]complex128 {
	M := make([][]complex128, m)
	for i := 0; i < m; i++ {
		M[i] = make([]complex128, n)
	}
	return M
}
