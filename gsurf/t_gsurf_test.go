// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gsurf

import (
	"errors"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/num"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// sampleSurface builds a smooth periodic table γ = 1 - cos(2πf1)·cos(2πf2)
func sampleSurface(n1, n2 int, periodic bool) *GammaSurface {
	a1 := []float64{2.0, 0, 0}
	a2 := []float64{0.5, 1.5, 0}
	E := make([][]float64, n1)
	d1, d2 := float64(n1), float64(n2)
	if !periodic {
		d1, d2 = float64(n1-1), float64(n2-1)
	}
	for i := 0; i < n1; i++ {
		E[i] = make([]float64, n2)
		for j := 0; j < n2; j++ {
			f1 := float64(i) / d1
			f2 := float64(j) / d2
			E[i][j] = 1.0 - math.Cos(2.0*math.Pi*f1)*math.Cos(2.0*math.Pi*f2)
		}
	}
	o, err := New(a1, a2, E, periodic)
	if err != nil {
		chk.Panic("sampleSurface failed: %v", err)
	}
	return o
}

func Test_gsurf01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gsurf01. periodicity")

	o := sampleSurface(32, 32, true)
	a1, a2 := o.A1, o.A2

	for _, d := range [][]float64{
		{0.3, 0.2, 0}, {1.1, -0.4, 0}, {-2.7, 0.9, 0},
	} {
		e0, err := o.Energy(d)
		if err != nil {
			tst.Errorf("test failed: %v\n", err)
			return
		}
		for _, nm := range [][]float64{{1, 0}, {0, 1}, {-1, 2}, {3, -1}} {
			dp := []float64{
				d[0] + nm[0]*a1[0] + nm[1]*a2[0],
				d[1] + nm[0]*a1[1] + nm[1]*a2[1],
				d[2] + nm[0]*a1[2] + nm[1]*a2[2],
			}
			ep, err := o.Energy(dp)
			if err != nil {
				tst.Errorf("test failed: %v\n", err)
				return
			}
			chk.Scalar(tst, io.Sf("γ(%v + %v·a)", d, nm), 1e-10, ep, e0)
		}
	}
}

func Test_gsurf02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gsurf02. gradient vs numerical derivative")

	o := sampleSurface(64, 64, true)

	d_tmp := make([]float64, 3)
	for _, d := range [][]float64{
		{0.31, 0.22, 0}, {1.13, -0.41, 0}, {0.77, 0.93, 0},
	} {
		g, err := o.Gradient(d)
		if err != nil {
			tst.Errorf("test failed: %v\n", err)
			return
		}
		for k := 0; k < 2; k++ {
			gnum, _ := num.DerivCentral(func(t float64, args ...interface{}) (e float64) {
				copy(d_tmp, d)
				d_tmp[k] = t
				e, err := o.Energy(d_tmp)
				if err != nil {
					chk.Panic("Energy failed: %v", err)
				}
				return
			}, d[k], 1e-4)
			chk.Scalar(tst, io.Sf("∂γ/∂d%d @ %v", k, d), 1e-2, g[k], gnum)
		}
	}
}

func Test_gsurf03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gsurf03. out-of-domain without wrapping")

	o := sampleSurface(16, 16, false)

	// inside: fine
	if _, err := o.Energy([]float64{0.5, 0.5, 0}); err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}

	// outside: OutOfDomainError
	_, err := o.Energy([]float64{3.0, 0.5, 0})
	var ode *OutOfDomainError
	if !errors.As(err, &ode) {
		tst.Errorf("expected OutOfDomainError, got %v\n", err)
		return
	}
	_, err = o.Gradient([]float64{-1.0, -1.0, 0})
	if !errors.As(err, &ode) {
		tst.Errorf("expected OutOfDomainError, got %v\n", err)
		return
	}
	io.Pforan("err = %v\n", err)
}

func Test_gsurf04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gsurf04. parametric models")

	// harmonic well
	hw := &HarmonicWell{C: 3.0}
	e, err := hw.Energy([]float64{0.4, -0.2, 0.1})
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "harmonic energy", 1e-14, e, 0.5*3.0*(0.16+0.04+0.01))
	g, err := hw.Gradient([]float64{0.4, -0.2, 0.1})
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.Vector(tst, "harmonic gradient", 1e-14, g, []float64{1.2, -0.6, 0.3})

	// sinusoid: zero at multiples of the period, maximum at half period
	sn := &Sinusoid{U: []float64{1, 0, 0}, B: 2.0, Amp: 0.7}
	e, err = sn.Energy([]float64{2.0, 0, 0})
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "sinusoid @ b", 1e-12, e, 0)
	e, err = sn.Energy([]float64{1.0, 0, 0})
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "sinusoid @ b/2", 1e-12, e, 1.4)

	// gradient vs numerical derivative
	d := []float64{0.37, 0, 0}
	g, err = sn.Gradient(d)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	gnum, _ := num.DerivCentral(func(t float64, args ...interface{}) (e float64) {
		e, _ = sn.Energy([]float64{t, 0, 0})
		return
	}, d[0], 1e-4)
	chk.Scalar(tst, "sinusoid gradient", 1e-8, g[0], gnum)
}
