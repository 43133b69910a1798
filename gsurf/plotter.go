// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gsurf

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/plt"
	"github.com/cpmech/gosl/utl"
)

// Plotter draws energy sections of a gamma surface
type Plotter struct {

	// configuration
	Npts    int    // number of points per section
	Clr1    string // color of section along a1
	Clr2    string // color of section along a2
	SaveDir string // directory to put figure
	SaveFnk string // figure filename key
}

// SetDefault sets default values
func (o *Plotter) SetDefault() {
	o.Npts = 101
	o.Clr1 = "r"
	o.Clr2 = "b"
	o.SaveDir = "/tmp/godisloc"
	o.SaveFnk = "gsurf"
}

// Plot draws the energy along the two lattice directions of the surface
func (o *Plotter) Plot(sfc Surface, a1, a2 []float64) {
	if o.Npts < 2 {
		o.SetDefault()
	}
	T := utl.LinSpace(0, 1, o.Npts)
	Y1 := make([]float64, o.Npts)
	Y2 := make([]float64, o.Npts)
	d := make([]float64, 3)
	for i, t := range T {
		for k := 0; k < 3; k++ {
			d[k] = t * a1[k]
		}
		y, err := sfc.Energy(d)
		if err != nil {
			chk.Panic("cannot plot gamma surface: %v", err)
		}
		Y1[i] = y
		for k := 0; k < 3; k++ {
			d[k] = t * a2[k]
		}
		y, err = sfc.Energy(d)
		if err != nil {
			chk.Panic("cannot plot gamma surface: %v", err)
		}
		Y2[i] = y
	}
	plt.Plot(T, Y1, "color='"+o.Clr1+"',label='along $a_1$'")
	plt.Plot(T, Y2, "color='"+o.Clr2+"',label='along $a_2$'")
	plt.Gll("fractional displacement", "$\\gamma$", "")
	plt.SaveD(o.SaveDir, o.SaveFnk+".eps")
}
