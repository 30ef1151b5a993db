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

// PathPlot rebuilds the equilibrium path of a finished analysis from its
// saved state files and plots it as a PNG

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// input data
	simfn, fnkey := io.ArgToFilename(0, "", ".sim", true)
	lastInc := io.ArgToInt(1, 1)
	watchVtag := io.ArgToInt(2, 0)
	watchKey := io.ArgToString(3, "ux")

	io.Pf("\n%s\n", io.ArgsTable(
		"INPUT ARGUMENTS",
		"simulation filename", "simfn", simfn,
		"last increment index", "lastInc", lastInc,
		"vertex tag to watch", "watchVtag", watchVtag,
		"dof key to watch", "watchKey", watchKey,
	))

	sim, err := inp.ReadSim(simfn)
	if err != nil {
		chk.Panic("cannot read simulation:\n%v", err)
	}
	dom, err := fem.NewDomain(sim)
	if err != nil {
		chk.Panic("cannot build domain:\n%v", err)
	}
	defer dom.Clean()
	if watchVtag == 0 && len(sim.Loads) > 0 {
		watchVtag = sim.Loads[0].Vtag
	}
	hist, err := out.NewHistory(dom, watchVtag, watchKey)
	if err != nil {
		chk.Panic("cannot watch dof:\n%v", err)
	}

	// replay the saved states
	for inc := 1; inc <= lastInc; inc++ {
		lambda, err := dom.ReadState(sim.DirOut, fnkey, sim.EncType, inc)
		if err != nil {
			chk.Panic("cannot read state %d:\n%v", inc, err)
		}
		hist.Add(inc, lambda)
	}

	// plot
	fn := io.Sf("%s/%s_path.png", sim.DirOut, fnkey)
	err = hist.PlotPath(sim.Data.Desc, fn)
	if err != nil {
		chk.Panic("cannot plot equilibrium path:\n%v", err)
	}
	io.Pfblue2("file <%s> written\n", fn)
}
