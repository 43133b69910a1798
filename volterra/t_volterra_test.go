// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package volterra

import (
	"errors"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"

	"github.com/cmech/godisloc/elast"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_volterra01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("volterra01. factory selects model variant")

	iso, err := elast.NewIsotropic([]*fun.Prm{
		&fun.Prm{N: "E", V: 100.0},
		&fun.Prm{N: "nu", V: 0.3},
	})
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	cub, err := elast.NewCubic([]*fun.Prm{
		&fun.Prm{N: "C11", V: 240.0},
		&fun.Prm{N: "C12", V: 125.0},
		&fun.Prm{N: "C44", V: 120.0},
	})
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}

	b := []float64{1, 0, 0}
	ξ := []float64{0, 0, 1}
	n := []float64{0, 1, 0}

	d1, err := Solve(iso, b, ξ, n, nil)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	if _, ok := d1.(*IsotropicVolterraDislocation); !ok {
		tst.Errorf("expected IsotropicVolterraDislocation, got %T\n", d1)
		return
	}

	d2, err := Solve(cub, b, ξ, n, nil)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	if _, ok := d2.(*AnisotropicStrohDislocation); !ok {
		tst.Errorf("expected AnisotropicStrohDislocation, got %T\n", d2)
		return
	}
}

func Test_volterra02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("volterra02. isotropic screw dislocation")

	G, ν := 40.0, 0.3
	b := []float64{0, 0, 1} // pure screw: b parallel to ξ
	ξ := []float64{0, 0, 1}
	n := []float64{0, 1, 0}

	d, err := NewIsotropic(G, ν, b, ξ, n, -math.Pi/2.0, 1e-10)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	screw, edge := d.Character()
	chk.Scalar(tst, "screw", 1e-14, screw, 1.0)
	chk.Scalar(tst, "edge", 1e-14, edge, 0.0)

	// stress against textbook expressions
	x := []float64{1.2, 0.9, 0.0}
	σ, err := d.Stress(x)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	r2 := x[0]*x[0] + x[1]*x[1]
	chk.Scalar(tst, "σxz", 1e-12, σ[0][2], -G/(2.0*math.Pi)*x[1]/r2)
	chk.Scalar(tst, "σyz", 1e-12, σ[1][2], G/(2.0*math.Pi)*x[0]/r2)
	chk.Scalar(tst, "σxx", 1e-12, σ[0][0], 0)
	chk.Scalar(tst, "σyy", 1e-12, σ[1][1], 0)
	chk.Scalar(tst, "σxy", 1e-12, σ[0][1], 0)

	// energy tensor
	K := d.KTensor()
	chk.Scalar(tst, "Kzz", 1e-12, K[2][2], G)
	chk.Scalar(tst, "Kxx", 1e-12, K[0][0], G/(1.0-ν))
	chk.Scalar(tst, "Kyy", 1e-12, K[1][1], G/(1.0-ν))
	chk.Scalar(tst, "preln", 1e-12, d.Preln(), G/(4.0*math.Pi))

	// query on the line is singular
	_, err = d.Displacement([]float64{0, 0, 3.0})
	var sfe *SingularFieldError
	if !errors.As(err, &sfe) {
		tst.Errorf("expected SingularFieldError, got %v\n", err)
		return
	}
}

func Test_volterra03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("volterra03. branch cut placement and jump")

	G, ν := 40.0, 0.3
	b := []float64{1, 0, 0.5}
	ξ := []float64{0, 0, 1}
	n := []float64{0, 1, 0}

	// default cut along -n
	d, err := NewIsotropic(G, ν, b, ξ, n, -math.Pi/2.0, 1e-10)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	ε := 1e-6
	r := 1.7
	ub, err := d.Displacement([]float64{-r * math.Sin(ε), -r * math.Cos(ε), 0})
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	ua, err := d.Displacement([]float64{r * math.Sin(ε), -r * math.Cos(ε), 0})
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	jump := []float64{ub[0] - ua[0], ub[1] - ua[1], ub[2] - ua[2]}
	chk.Vector(tst, "jump across cut", 1e-4, jump, b)

	// continuity across the +n ray
	u1, err := d.Displacement([]float64{-r * math.Sin(ε), r * math.Cos(ε), 0})
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	u2, err := d.Displacement([]float64{r * math.Sin(ε), r * math.Cos(ε), 0})
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.Vector(tst, "continuity off cut", 1e-4, u1, u2)

	// moving the cut to +m makes the -n ray continuous
	dm, err := NewIsotropic(G, ν, b, ξ, n, 0.0, 1e-10)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	u1, err = dm.Displacement([]float64{-r * math.Sin(ε), -r * math.Cos(ε), 0})
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	u2, err = dm.Displacement([]float64{r * math.Sin(ε), -r * math.Cos(ε), 0})
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.Vector(tst, "continuity at old cut", 1e-4, u1, u2)
}

func Test_volterra04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("volterra04. near-isotropic sextic solution vs closed form")

	// cubic constants with Zener ratio 1.0033: anisotropic path, isotropic physics
	C11, C12, C44 := 240.0, 120.0, 60.2
	cub, err := elast.NewCubic([]*fun.Prm{
		&fun.Prm{N: "C11", V: C11},
		&fun.Prm{N: "C12", V: C12},
		&fun.Prm{N: "C44", V: C44},
	})
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}

	b := []float64{1, 0, 0}
	ξ := []float64{0, 0, 1}
	n := []float64{0, 1, 0}

	da, err := Solve(cub, b, ξ, n, nil)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	if _, ok := da.(*AnisotropicStrohDislocation); !ok {
		tst.Errorf("expected the sextic path for Zener ratio != 1, got %T\n", da)
		return
	}

	G := (C11 - C12) / 2.0
	ν := elast.Calc_nu_from_lamG(C12, G)
	di, err := NewIsotropic(G, ν, b, ξ, n, -math.Pi/2.0, 1e-10)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}

	// displacement differences agree within the anisotropy perturbation
	// (each model fixes its own additive constant, so only differences compare)
	xref := []float64{1.5, 0.3, 0}
	uaref, err := da.Displacement(xref)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	uiref, err := di.Displacement(xref)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	for _, x := range [][]float64{
		{-0.8, 1.1, 0}, {0.4, -2.0, 0}, {-1.3, -0.2, 0},
	} {
		ua, err := da.Displacement(x)
		if err != nil {
			tst.Errorf("test failed: %v\n", err)
			return
		}
		ui, err := di.Displacement(x)
		if err != nil {
			tst.Errorf("test failed: %v\n", err)
			return
		}
		dua := []float64{ua[0] - uaref[0], ua[1] - uaref[1], ua[2] - uaref[2]}
		dui := []float64{ui[0] - uiref[0], ui[1] - uiref[1], ui[2] - uiref[2]}
		chk.Vector(tst, io.Sf("Δu @ %v", x), 0.01, dua, dui)

		// stresses compare directly
		σa, err := da.Stress(x)
		if err != nil {
			tst.Errorf("test failed: %v\n", err)
			return
		}
		σi, err := di.Stress(x)
		if err != nil {
			tst.Errorf("test failed: %v\n", err)
			return
		}
		chk.Matrix(tst, io.Sf("σ @ %v", x), 0.05, σa, σi)
	}

	// energy tensors agree within 2%
	Ka := da.KTensor()
	Ki := di.KTensor()
	for i := 0; i < 3; i++ {
		chk.Scalar(tst, io.Sf("K[%d][%d]", i, i), 0.02*Ki[i][i], Ka[i][i], Ki[i][i])
	}
}
