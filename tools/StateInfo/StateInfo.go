// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/ATPChina/MyGoFEM/fem"
	"github.com/ATPChina/MyGoFEM/inp"
)

// StateInfo prints a summary of one saved analysis state: the load factor,
// the largest displacement and the largest equivalent plastic strain

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// input data
	simfn, fnkey := io.ArgToFilename(0, "", ".sim", true)
	inc := io.ArgToInt(1, 1)

	io.Pf("\n%s\n", io.ArgsTable(
		"INPUT ARGUMENTS",
		"simulation filename", "simfn", simfn,
		"increment index", "inc", inc,
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

	// state
	lambda, err := dom.ReadState(sim.DirOut, fnkey, sim.EncType, inc)
	if err != nil {
		chk.Panic("cannot read state:\n%v", err)
	}
	umax := 0.0
	for _, n := range dom.Nodes {
		for i := 0; i < dom.Ndim; i++ {
			u := math.Abs(n.Cur[i] - n.X[i])
			if u > umax {
				umax = u
			}
		}
	}
	epmax := 0.0
	for _, g := range dom.Groups {
		for i := range g.Eles {
			for ip := 0; ip < g.Ngauss; ip++ {
				if ep := g.Pstore.At(i, ip).Epbar; ep > epmax {
					epmax = ep
				}
			}
		}
	}

	// summary
	io.Pf("load factor      λ     = %g\n", lambda)
	io.Pf("max displacement |u|   = %g\n", umax)
	io.Pf("max plastic strain ε̄p = %g\n", epmax)
}
