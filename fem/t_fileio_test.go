// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_fileio01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fileio01. save and reload the analysis state")

	// run a yielding analysis to have non-trivial history
	sim := onequad(5, 0.25)
	dom, err := NewDomain(sim)
	if err != nil {
		tst.Errorf("NewDomain failed:\n%v", err)
		return
	}
	defer dom.Clean()
	lastInc := 0
	lastLambda := 0.0
	sol := ChooseIncrementalAlgorithm(dom, &sim.Control, func(inc int, lambda float64) {
		lastInc = inc
		lastLambda = lambda
	})
	err = sol.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	// save
	err = dom.SaveState(lastInc, lastLambda, chk.Verbose)
	if err != nil {
		tst.Errorf("SaveState failed:\n%v", err)
		return
	}

	// reload into a fresh domain
	sim2 := onequad(5, 0.25)
	dom2, err := NewDomain(sim2)
	if err != nil {
		tst.Errorf("NewDomain failed:\n%v", err)
		return
	}
	defer dom2.Clean()
	lambda2, err := dom2.ReadState(sim.DirOut, sim.Fnkey, sim.EncType, lastInc)
	if err != nil {
		tst.Errorf("ReadState failed:\n%v", err)
		return
	}
	chk.Float64(tst, "lambda", 1e-17, lambda2, lastLambda)

	// coordinates and plastic history came back exactly
	for iv, n := range dom.Nodes {
		chk.Array(tst, "cur", 1e-17, dom2.Nodes[iv].Cur, n.Cur)
	}
	g, g2 := dom.Groups[0], dom2.Groups[0]
	for ip := 0; ip < g.Ngauss; ip++ {
		a, b := g.Pstore.At(0, ip), g2.Pstore.At(0, ip)
		chk.Float64(tst, "epbar", 1e-17, b.Epbar, a.Epbar)
		chk.Deep2(tst, "invCp", 1e-17, b.InvCp, a.InvCp)
	}

	// the reloaded domain is in equilibrium at the saved load factor
	err = dom2.Assemble(lastInc, true)
	if err != nil {
		tst.Errorf("Assemble failed:\n%v", err)
		return
	}
	res := make([]float64, dom2.Ndof)
	dom2.Residual(lambda2, res)
	for i, r := range res {
		if r > 1e-3 || r < -1e-3 {
			tst.Errorf("reloaded state is out of equilibrium. res[%d]=%g", i, r)
			return
		}
	}
}

func Test_fileio02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fileio02. interrupted analysis resumes to the same answer")

	// uninterrupted run: save the state after every converged increment
	sim := onequad(5, 0.25)
	dom, err := NewDomain(sim)
	if err != nil {
		tst.Errorf("NewDomain failed:\n%v", err)
		return
	}
	defer dom.Clean()
	lambdas := map[int]float64{}
	sol := ChooseIncrementalAlgorithm(dom, &sim.Control, func(inc int, lambda float64) {
		lambdas[inc] = lambda
		if e := dom.SaveState(inc, lambda, chk.Verbose); e != nil {
			tst.Errorf("SaveState failed:\n%v", e)
		}
	})
	err = sol.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}
	if len(lambdas) < 3 {
		tst.Errorf("run converged in %d increments; need at least 3 to interrupt midway", len(lambdas))
		return
	}

	// fresh domain picks up from the second increment and runs to completion
	sim2 := onequad(5, 0.25)
	dom2, err := NewDomain(sim2)
	if err != nil {
		tst.Errorf("NewDomain failed:\n%v", err)
		return
	}
	defer dom2.Clean()
	lamb0, err := dom2.ReadState(sim.DirOut, sim.Fnkey, sim.EncType, 2)
	if err != nil {
		tst.Errorf("ReadState failed:\n%v", err)
		return
	}
	chk.Float64(tst, "λ restored", 1e-17, lamb0, lambdas[2])
	sim2.Control.Lamb0 = lamb0
	lastLambda := 0.0
	sol2 := ChooseIncrementalAlgorithm(dom2, &sim2.Control, func(inc int, lambda float64) {
		lastLambda = lambda
	})
	err = sol2.Run()
	if err != nil {
		tst.Errorf("resumed Run failed:\n%v", err)
		return
	}
	chk.Float64(tst, "λ final", 1e-15, lastLambda, sim.Control.Xlmax)

	// the resumed run lands on the uninterrupted answer
	for iv, n := range dom.Nodes {
		chk.Array(tst, "cur", 1e-8, dom2.Nodes[iv].Cur, n.Cur)
	}
	g, g2 := dom.Groups[0], dom2.Groups[0]
	for ip := 0; ip < g.Ngauss; ip++ {
		a, b := g.Pstore.At(0, ip), g2.Pstore.At(0, ip)
		chk.Float64(tst, "epbar", 1e-8, b.Epbar, a.Epbar)
		chk.Deep2(tst, "invCp", 1e-8, b.InvCp, a.InvCp)
	}
}
