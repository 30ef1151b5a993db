// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

func Test_assembly01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("assembly01. undeformed state")

	sim := onequad(0, 0.25)
	dom, err := NewDomain(sim)
	if err != nil {
		tst.Errorf("NewDomain failed:\n%v", err)
		return
	}
	defer dom.Clean()

	err = dom.Assemble(1, true)
	if err != nil {
		tst.Errorf("Assemble failed:\n%v", err)
		return
	}

	// undeformed: internal forces vanish
	for i, f := range dom.Rhi.Tint {
		if math.Abs(f) > 1e-10 {
			tst.Errorf("internal force %d should be zero in the undeformed state. f=%g", i, f)
			return
		}
	}

	// residual at λ=0.5 carries the scaled loads, except at fixed dofs
	res := make([]float64, dom.Ndof)
	dom.Residual(0.5, res)
	chk.Array(tst, "residual", 1e-12, res, []float64{0, 0, 5, 0, 5, 0, 0, 0})

	// tangent matrix is symmetric
	kk := dom.Kb.ToDense().GetDeep2()
	for i := 0; i < dom.Ndof; i++ {
		for j := i + 1; j < dom.Ndof; j++ {
			chk.Float64(tst, "symmetry", 1e-9*math.Max(1, math.Abs(kk[i][j])), kk[i][j], kk[j][i])
		}
	}

	// fixed equations carry the penalty on the diagonal
	for _, eq := range dom.Fixed {
		if kk[eq][eq] < FIXPEN {
			tst.Errorf("fixed equation %d misses the penalty entry. k=%g", eq, kk[eq][eq])
			return
		}
	}
}

func Test_assembly02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("assembly02. repeated passes give the same matrix")

	sim := onequad(0, 0.25)
	dom, err := NewDomain(sim)
	if err != nil {
		tst.Errorf("NewDomain failed:\n%v", err)
		return
	}
	defer dom.Clean()

	// deform a bit, then assemble twice from the same state
	err = dom.Assemble(1, true)
	if err != nil {
		tst.Errorf("Assemble failed:\n%v", err)
		return
	}
	du := make([]float64, dom.Ndof)
	du[2] = 0.01
	du[4] = 0.012
	du[5] = -0.003
	dom.Update(du)

	err = dom.Assemble(1, false)
	if err != nil {
		tst.Errorf("Assemble failed:\n%v", err)
		return
	}
	ka := dom.Kb.ToDense().GetDeep2()
	ta := make([]float64, dom.Ndof)
	copy(ta, dom.Rhi.Tint)

	err = dom.Assemble(1, false)
	if err != nil {
		tst.Errorf("Assemble failed:\n%v", err)
		return
	}
	kb := dom.Kb.ToDense().GetDeep2()
	chk.Array(tst, "tint", 1e-14, dom.Rhi.Tint, ta)
	chk.Deep2(tst, "kb", 1e-14, kb, ka)
}

func Test_assembly03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("assembly03. element inversion is reported with ids")

	sim := onequad(0, 0.25)
	dom, err := NewDomain(sim)
	if err != nil {
		tst.Errorf("NewDomain failed:\n%v", err)
		return
	}
	defer dom.Clean()

	// collapse the element: push the right edge past the left one
	du := make([]float64, dom.Ndof)
	du[2] = -2.0
	du[4] = -2.0
	dom.Update(du)

	err = dom.Assemble(3, true)
	if err == nil {
		tst.Errorf("Assemble should have failed with an inverted element")
		return
	}
	if !CutbackEligible(err) {
		tst.Errorf("element inversion must be eligible for cutback. err=%v", err)
		return
	}
	einv, ok := err.(*ElementInversion)
	if !ok {
		tst.Errorf("error should be an ElementInversion. err=%v", err)
		return
	}
	chk.IntAssert(einv.Eid, 0)
	chk.IntAssert(einv.Inc, 3)
}

func Test_assembly04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("assembly04. shared nodes accumulate both element contributions")

	// stretch the strip so internal forces and tangents are nonzero
	deform := func(dom *Domain) {
		du := make([]float64, dom.Ndof)
		du[dom.Nodes[1].Eqs[0]] = 0.010
		du[dom.Nodes[4].Eqs[0]] = 0.008
		du[dom.Nodes[4].Eqs[1]] = 0.003
		du[dom.Nodes[2].Eqs[0]] = 0.020
		du[dom.Nodes[5].Eqs[0]] = 0.019
		du[dom.Nodes[5].Eqs[1]] = -0.004
		dom.Update(du)
	}

	// full assembly over the two-element strip
	dom, err := NewDomain(twoquad(0, 0.25))
	if err != nil {
		tst.Errorf("NewDomain failed:\n%v", err)
		return
	}
	defer dom.Clean()
	deform(dom)
	err = dom.Assemble(1, true)
	if err != nil {
		tst.Errorf("Assemble failed:\n%v", err)
		return
	}
	tint := make([]float64, dom.Ndof)
	copy(tint, dom.Rhi.Tint)
	kk := dom.Kb.ToDense().GetDeep2()

	// each element evaluated alone in a fresh domain with the same motion
	fi := make([][]float64, 2)
	ke := make([][][]float64, 2)
	for iele := 0; iele < 2; iele++ {
		di, err := NewDomain(twoquad(0, 0.25))
		if err != nil {
			tst.Errorf("NewDomain failed:\n%v", err)
			return
		}
		deform(di)
		g := di.Groups[0]
		g.Pstore.Backup(false)
		di.kbcur = g.Eles[iele].KbOff
		err = g.ElementForceAndStiffness(iele, di)
		if err != nil {
			tst.Errorf("element evaluation failed:\n%v", err)
			return
		}
		fi[iele] = make([]float64, di.Ndof)
		copy(fi[iele], di.Rhi.Tint)
		ke[iele] = di.Kb.ToDense().GetDeep2()
		di.Clean()
	}

	// both elements push on the shared vertices
	for _, iv := range []int{1, 4} {
		eq := dom.Nodes[iv].Eqs[0]
		if fi[0][eq] == 0 || fi[1][eq] == 0 {
			tst.Errorf("shared vertex %d misses a contribution. fi0=%g fi1=%g", iv, fi[0][eq], fi[1][eq])
			return
		}
	}

	// internal force: global vector equals the sum of the element vectors
	sumFi := make([]float64, dom.Ndof)
	for i := 0; i < dom.Ndof; i++ {
		sumFi[i] = fi[0][i] + fi[1][i]
	}
	chk.Array(tst, "tint", 1e-12, tint, sumFi)

	// stiffness: global matrix equals the sum of the element matrices plus
	// the penalty diagonal
	sumK := utl.Alloc(dom.Ndof, dom.Ndof)
	for i := 0; i < dom.Ndof; i++ {
		for j := 0; j < dom.Ndof; j++ {
			sumK[i][j] = ke[0][i][j] + ke[1][i][j]
		}
	}
	for _, eq := range dom.Fixed {
		sumK[eq][eq] += FIXPEN
	}
	chk.Deep2(tst, "kb", 1e-6, kk, sumK)
}

func Test_assembly05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("assembly05. cursor mismatch names the offending element")

	dom, err := NewDomain(twoquad(0, 0.25))
	if err != nil {
		tst.Errorf("NewDomain failed:\n%v", err)
		return
	}
	defer dom.Clean()
	g := dom.Groups[0]
	g.Pstore.Backup(false)

	// desynchronise the cursor from the element's write region
	dom.kbcur = g.Eles[1].KbOff + 3
	defer func() {
		r := recover()
		if r == nil {
			tst.Errorf("element evaluation should have panicked on a desynchronised cursor")
			return
		}
		msg := io.Sf("%v", r)
		if !strings.Contains(msg, "element 1") {
			tst.Errorf("panic message should name element 1. got: %v", msg)
		}
	}()
	g.ElementForceAndStiffness(1, dom)
}
