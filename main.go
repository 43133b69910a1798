// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cmech/godisloc/inp"
	"github.com/cmech/godisloc/sdvpn"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "", ".sim", true)
	verbose := io.ArgToBool(1, true)
	showr := io.ArgToBool(2, false)

	// message
	if verbose {
		io.PfWhite("\nGodisloc -- anisotropic elasticity dislocation solver\n\n")
		io.Pf("Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n\n")

		io.Pf("\n%v\n", io.ArgsTable(
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
			"show residuals", "showr", showr,
		))
	}

	// simulation data
	sim := inp.ReadSim(fnamepath)
	if verbose && sim.Data.Desc != "" {
		io.Pf("%s\n\n", sim.Data.Desc)
	}

	// dislocation model
	disl, err := sim.GetDislocation()
	if err != nil {
		chk.Panic("cannot build dislocation model:\n%v", err)
	}
	if verbose {
		screw, edge := disl.Character()
		io.Pf("Burgers vector     b  = %v\n", disl.Burgers())
		io.Pf("line direction     xi = %v\n", disl.Line())
		io.Pf("slip plane normal  n  = %v\n", disl.Normal())
		io.Pf("character          bs = %g  be = %g\n", screw, edge)
		io.Pf("prelog energy      E  = %g\n\n", disl.Preln())
	}

	// solver
	sol, err := sim.GetSolver()
	if err != nil {
		chk.Panic("cannot initialise solver:\n%v", err)
	}
	sol.ShowR = sol.ShowR || showr

	// run
	x := sol.Grid()
	w := 0.25 * sol.Dx * float64(sol.Ngrid)
	res, err := sol.Solve(sdvpn.ArctanProfile(x, disl.Burgers(), w))
	if err != nil {
		chk.Panic("solver failed:\n%v", err)
	}
	if verbose {
		io.Pf("\niterations = %d   converged = %v   resid = %g\n", res.Iterations, res.Converged, res.Resid)
		io.Pf("core width = %g\n", sdvpn.CoreWidth(res.X, res.D, disl.Burgers()))
	}

	// write disregistry profile
	var buf bytes.Buffer
	io.Ff(&buf, "%23s%23s%23s%23s\n", "x", "dx", "dy", "dz")
	for i := 0; i < len(res.X); i++ {
		io.Ff(&buf, "%23.15e%23.15e%23.15e%23.15e\n", res.X[i], res.D[i][0], res.D[i][1], res.D[i][2])
	}
	io.WriteFileVD(sim.DirOut, sim.Key+"-disregistry.res", &buf)
}
