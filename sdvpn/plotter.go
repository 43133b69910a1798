// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdvpn

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
	"github.com/cpmech/gosl/utl"
)

// Plotter draws disregistry profiles and convergence histories
type Plotter struct {

	// configuration
	Clr     string // color of profile lines
	SaveDir string // directory to put figure
	SaveFnk string // figure filename key
}

// SetDefault sets default values
func (o *Plotter) SetDefault() {
	o.Clr = "b"
	o.SaveDir = "/tmp/godisloc"
	o.SaveFnk = "sdvpn"
}

// Plot draws the disregistry profile components and the energy history
func (o *Plotter) Plot(res *Results) {
	if o.SaveFnk == "" {
		o.SetDefault()
	}
	n := len(res.X)
	D0 := make([]float64, n)
	D1 := make([]float64, n)
	D2 := make([]float64, n)
	for i := 0; i < n; i++ {
		D0[i] = res.D[i][0]
		D1[i] = res.D[i][1]
		D2[i] = res.D[i][2]
	}

	plt.SetForEps(1.2, 400)

	plt.Subplot(2, 1, 1)
	plt.Plot(res.X, D0, io.Sf("'r-', label='dx', clip_on=0"))
	plt.Plot(res.X, D1, io.Sf("'g-', label='dy', clip_on=0"))
	plt.Plot(res.X, D2, io.Sf("'%s-', label='dz', clip_on=0", o.Clr))
	plt.Gll("$x$", "$d$", "")

	plt.Subplot(2, 1, 2)
	it := utl.LinSpace(1, float64(len(res.EnergyHist)), len(res.EnergyHist))
	plt.Plot(it, res.EnergyHist, "'k-', clip_on=0")
	plt.Gll("iteration", "$E$", "")

	plt.SaveD(o.SaveDir, io.Sf("%s.eps", o.SaveFnk))
}
