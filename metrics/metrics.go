// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package metrics computes per-atom dislocation characterisation metrics
// from reference and displaced position arrays
package metrics

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// SlipVector computes the per-atom slip vector
//  s_i = -(1/ns_i) Σ_j [(p_j - p_i) - (p0_j - p0_i)]
// where the sum runs over the neighbours of atom i and ns_i counts the
// neighbours whose bond vector changed by more than dmin. p0 and p hold the
// reference and displaced positions [natoms][3]; neighbors lists neighbour
// indices per atom. Atoms with no slipped neighbour get a zero vector
func SlipVector(p0, p [][]float64, neighbors [][]int, dmin float64) (s [][]float64, err error) {
	n := len(p0)
	if len(p) != n || len(neighbors) != n {
		return nil, chk.Err("positions and neighbour lists must have the same length: %d, %d, %d", n, len(p), len(neighbors))
	}
	s = make([][]float64, n)
	for i := 0; i < n; i++ {
		s[i] = make([]float64, 3)
		ns := 0
		for _, j := range neighbors[i] {
			if j < 0 || j >= n {
				return nil, chk.Err("neighbour index %d of atom %d is out of range", j, i)
			}
			var db [3]float64
			var mag float64
			for c := 0; c < 3; c++ {
				db[c] = (p[j][c] - p[i][c]) - (p0[j][c] - p0[i][c])
				mag += db[c] * db[c]
			}
			if math.Sqrt(mag) <= dmin {
				continue
			}
			for c := 0; c < 3; c++ {
				s[i][c] += db[c]
			}
			ns++
		}
		if ns > 0 {
			for c := 0; c < 3; c++ {
				s[i][c] /= -float64(ns)
			}
		}
	}
	return
}

// Disregistry extracts the disregistry profile from the two atomic planes
// bounding the slip plane. xAbove/xBelow are the positions of the atoms in
// each plane along the profile direction; uAbove/uBelow their displacement
// vectors. Both planes are sorted along the profile internally and the
// lower plane is linearly interpolated onto the upper positions:
//  d(x) = uAbove(x) - uBelow(x)
// The returned x are the (sorted) upper-plane positions clipped to the
// overlap of the two planes
func Disregistry(xAbove []float64, uAbove [][]float64, xBelow []float64, uBelow [][]float64) (x []float64, d [][]float64, err error) {
	if len(xAbove) != len(uAbove) || len(xBelow) != len(uBelow) {
		return nil, nil, chk.Err("positions and displacements must pair up: above %d/%d, below %d/%d", len(xAbove), len(uAbove), len(xBelow), len(uBelow))
	}
	if len(xAbove) < 2 || len(xBelow) < 2 {
		return nil, nil, chk.Err("each plane needs at least 2 atoms; got %d above and %d below", len(xAbove), len(xBelow))
	}
	xa, ua := sortPlane(xAbove, uAbove)
	xb, ub := sortPlane(xBelow, uBelow)
	for i := 0; i < len(xa); i++ {
		if xa[i] < xb[0] || xa[i] > xb[len(xb)-1] {
			continue
		}
		ui := interp(xb, ub, xa[i])
		di := make([]float64, 3)
		for c := 0; c < 3; c++ {
			di[c] = ua[i][c] - ui[c]
		}
		x = append(x, xa[i])
		d = append(d, di)
	}
	if len(x) < 2 {
		return nil, nil, chk.Err("planes do not overlap along the profile direction")
	}
	return
}

// DDPair is one arrow of a differential-displacement map: the relative
// displacement of a neighbour pair projected on the dislocation line
type DDPair struct {
	I, J int       // atom indices, I < J
	Mid  []float64 // midpoint of the pair in the displaced configuration
	DD   float64   // projected differential displacement, wrapped to (-b/2, b/2]
}

// DifferentialDisplacement builds the arrows of a screw DD map: for each
// neighbour pair (i,j) the relative displacement (u_j - u_i) is projected
// on the line direction ξ and wrapped into (-b/2, b/2] where b is the
// Burgers magnitude. Pairs are visited once (i < j) and returned sorted by
// indices
func DifferentialDisplacement(p0, p [][]float64, neighbors [][]int, ξ []float64, b float64) (pairs []DDPair, err error) {
	n := len(p0)
	if len(p) != n || len(neighbors) != n {
		return nil, chk.Err("positions and neighbour lists must have the same length: %d, %d, %d", n, len(p), len(neighbors))
	}
	if b <= 0 {
		return nil, chk.Err("Burgers magnitude must be positive; b=%g is invalid", b)
	}
	nrm := math.Sqrt(ξ[0]*ξ[0] + ξ[1]*ξ[1] + ξ[2]*ξ[2])
	if nrm < 1e-14 {
		return nil, chk.Err("line direction must be non-zero")
	}
	u := []float64{ξ[0] / nrm, ξ[1] / nrm, ξ[2] / nrm}
	seen := make(map[[2]int]bool)
	for i := 0; i < n; i++ {
		for _, j := range neighbors[i] {
			if j < 0 || j >= n {
				return nil, chk.Err("neighbour index %d of atom %d is out of range", j, i)
			}
			a, bb := i, j
			if a > bb {
				a, bb = bb, a
			}
			if a == bb || seen[[2]int{a, bb}] {
				continue
			}
			seen[[2]int{a, bb}] = true
			dd := 0.0
			mid := make([]float64, 3)
			for c := 0; c < 3; c++ {
				dd += ((p[bb][c] - p0[bb][c]) - (p[a][c] - p0[a][c])) * u[c]
				mid[c] = 0.5 * (p[a][c] + p[bb][c])
			}
			pairs = append(pairs, DDPair{I: a, J: bb, Mid: mid, DD: wrap(dd, b)})
		}
	}
	sort.Slice(pairs, func(k, l int) bool {
		if pairs[k].I != pairs[l].I {
			return pairs[k].I < pairs[l].I
		}
		return pairs[k].J < pairs[l].J
	})
	return
}

// wrap folds v into (-b/2, b/2]
func wrap(v, b float64) float64 {
	v -= b * math.Floor(v/b+0.5)
	if v <= -b/2.0 {
		v += b
	}
	return v
}

// sortPlane returns position-sorted copies of one plane
func sortPlane(x []float64, u [][]float64) ([]float64, [][]float64) {
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return x[idx[a]] < x[idx[b]] })
	xs := make([]float64, len(x))
	us := make([][]float64, len(x))
	for k, i := range idx {
		xs[k] = x[i]
		us[k] = []float64{u[i][0], u[i][1], u[i][2]}
	}
	return xs, us
}

// interp linearly interpolates the displacement of one sorted plane at xq
func interp(x []float64, u [][]float64, xq float64) []float64 {
	i := sort.SearchFloat64s(x, xq)
	if i <= 0 {
		return u[0]
	}
	if i >= len(x) {
		return u[len(x)-1]
	}
	t := (xq - x[i-1]) / (x[i] - x[i-1])
	return []float64{
		u[i-1][0] + t*(u[i][0]-u[i-1][0]),
		u[i-1][1] + t*(u[i][1]-u[i-1][1]),
		u[i-1][2] + t*(u[i][2]-u[i-1][2]),
	}
}

// Report prints a short table of a disregistry profile
func Report(x []float64, d [][]float64) {
	io.Pf("%15s%15s%15s%15s\n", "x", "dx", "dy", "dz")
	for i := 0; i < len(x); i++ {
		io.Pf("%15.6f%15.6f%15.6f%15.6f\n", x[i], d[i][0], d[i][1], d[i][2])
	}
}
