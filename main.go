// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/ATPChina/MyGoFEM/fem"
	"github.com/ATPChina/MyGoFEM/inp"
	"github.com/ATPChina/MyGoFEM/out"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "", ".sim", true)
	verbose := io.ArgToBool(1, true)
	saveStates := io.ArgToBool(2, true)
	plotPath := io.ArgToBool(3, false)
	watchVtag := io.ArgToInt(4, 0)
	watchKey := io.ArgToString(5, "ux")
	resumeInc := io.ArgToInt(6, -1)

	// message
	if verbose {
		io.PfWhite("\nMyGoFEM -- Nonlinear Finite Element Method in Go\n\n")
		io.Pf("\n%v\n", io.ArgsTable(
			"INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
			"save states after increments", "saveStates", saveStates,
			"plot equilibrium path", "plotPath", plotPath,
			"vertex tag to watch", "watchVtag", watchVtag,
			"dof key to watch", "watchKey", watchKey,
			"increment to resume from", "resumeInc", resumeInc,
		))
	}

	// input data
	sim, err := inp.ReadSim(fnamepath)
	if err != nil {
		chk.Panic("cannot read simulation:\n%v", err)
	}

	// domain
	dom, err := fem.NewDomain(sim)
	if err != nil {
		chk.Panic("cannot build domain:\n%v", err)
	}
	defer dom.Clean()

	// resume from a saved increment
	if resumeInc >= 0 {
		lambda, err := dom.ReadState(sim.DirOut, sim.Fnkey, sim.EncType, resumeInc)
		if err != nil {
			chk.Panic("cannot read state of increment %d:\n%v", resumeInc, err)
		}
		sim.Control.Lamb0 = lambda
		if verbose {
			io.Pf("resuming from increment %d at λ=%g\n", resumeInc, lambda)
		}
	}

	// output: state files and equilibrium path
	var hist *out.History
	if plotPath {
		if watchVtag == 0 && len(sim.Loads) > 0 {
			watchVtag = sim.Loads[0].Vtag
		}
		hist, err = out.NewHistory(dom, watchVtag, watchKey)
		if err != nil {
			chk.Panic("cannot watch dof:\n%v", err)
		}
	}
	outfcn := func(inc int, lambda float64) {
		if verbose {
			io.Pf("increment %3d converged. λ=%g\n", inc, lambda)
		}
		if saveStates {
			if err := dom.SaveState(inc, lambda, verbose); err != nil {
				chk.Panic("cannot save state:\n%v", err)
			}
		}
		if hist != nil {
			hist.Add(inc, lambda)
		}
	}

	// run
	sol := fem.ChooseIncrementalAlgorithm(dom, &sim.Control, outfcn)
	err = sol.Run()
	if err != nil {
		chk.Panic("Run failed:\n%v", err)
	}
	if hist != nil {
		fn := io.Sf("%s/%s_path.png", sim.DirOut, sim.Fnkey)
		if err := hist.PlotPath(sim.Data.Desc, fn); err != nil {
			chk.Panic("cannot plot equilibrium path:\n%v", err)
		}
	}
	if verbose {
		io.PfGreen("analysis finished\n")
	}
}
