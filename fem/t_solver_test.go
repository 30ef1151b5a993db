// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpmech/gosl/chk"
)

func Test_solver01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver01. Newton-Raphson on a stretched square")

	sim := onequad(0, 0.25)
	dom, err := NewDomain(sim)
	require.NoError(tst, err)
	defer dom.Clean()

	var incs []int
	var lambdas []float64
	sol := ChooseIncrementalAlgorithm(dom, &sim.Control, func(inc int, lambda float64) {
		incs = append(incs, inc)
		lambdas = append(lambdas, lambda)
	})
	_, isNR := sol.(*NRSolver)
	assert.True(tst, isNR, "plain control must select the Newton-Raphson driver")

	require.NoError(tst, sol.Run())

	// path: four increments of 0.25 up to λ=1
	require.Len(tst, lambdas, 4)
	assert.InDelta(tst, 1.0, lambdas[3], 1e-15)

	// the loaded edge moved towards the load and kept x-symmetry
	ux1 := dom.Nodes[1].Cur[0] - dom.Nodes[1].X[0]
	ux2 := dom.Nodes[2].Cur[0] - dom.Nodes[2].X[0]
	assert.Greater(tst, ux1, 1e-4)
	assert.InDelta(tst, ux1, ux2, 1e-8)

	// fixed edge did not move
	for _, iv := range []int{0, 3} {
		assert.InDelta(tst, dom.Nodes[iv].X[0], dom.Nodes[iv].Cur[0], 1e-8)
		assert.InDelta(tst, dom.Nodes[iv].X[1], dom.Nodes[iv].Cur[1], 1e-8)
	}

	// equilibrium at the end: residual at λ=1 vanishes
	require.NoError(tst, dom.Assemble(len(incs), false))
	res := make([]float64, dom.Ndof)
	dom.Residual(1.0, res)
	for _, r := range res {
		assert.InDelta(tst, 0, r, 1e-3)
	}
}

func Test_solver02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver02. cutback exhaustion stops the analysis")

	// an absurd load with a tight iteration budget: every increment fails
	// and halving runs into the minimum step
	sim := onequad(0, 0.5)
	sim.Loads[0].F[0] = 1e6
	sim.Control.Miter = 2
	sim.Control.Dincmin = 1e-2
	dom, err := NewDomain(sim)
	require.NoError(tst, err)
	defer dom.Clean()

	sol := ChooseIncrementalAlgorithm(dom, &sim.Control, nil)
	err = sol.Run()
	require.Error(tst, err)
	var emin *MinIncrement
	require.True(tst, errors.As(err, &emin), "expected a minimum-increment failure, got %v", err)
	assert.Less(tst, emin.Dinc, sim.Control.Dincmin)
	assert.Error(tst, emin.Last)
}

func Test_solver03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver03. line search follows the same path")

	// plain Newton
	simA := onequad(0, 0.25)
	domA, err := NewDomain(simA)
	require.NoError(tst, err)
	defer domA.Clean()
	require.NoError(tst, ChooseIncrementalAlgorithm(domA, &simA.Control, nil).Run())

	// Newton with line search
	simB := onequad(0, 0.25)
	simB.Control.Searc = 0.8
	domB, err := NewDomain(simB)
	require.NoError(tst, err)
	defer domB.Clean()
	sol := ChooseIncrementalAlgorithm(domB, &simB.Control, nil)
	_, isLS := sol.(*LSSolver)
	assert.True(tst, isLS, "a positive search ratio must select the line-search driver")
	require.NoError(tst, sol.Run())

	// both drivers reach the same equilibrium
	for iv := range domA.Nodes {
		for i := 0; i < domA.Ndim; i++ {
			assert.InDelta(tst, domA.Nodes[iv].Cur[i], domB.Nodes[iv].Cur[i], 1e-6)
		}
	}
}

func Test_solver04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver04. plastic loading and elastic comparison")

	// low yield stress: the pulled square yields and ends softer
	simA := onequad(5, 0.25)
	domA, err := NewDomain(simA)
	require.NoError(tst, err)
	defer domA.Clean()
	require.NoError(tst, ChooseIncrementalAlgorithm(domA, &simA.Control, nil).Run())

	simB := onequad(0, 0.25)
	domB, err := NewDomain(simB)
	require.NoError(tst, err)
	defer domB.Clean()
	require.NoError(tst, ChooseIncrementalAlgorithm(domB, &simB.Control, nil).Run())

	uxPlast := domA.Nodes[1].Cur[0] - domA.Nodes[1].X[0]
	uxElast := domB.Nodes[1].Cur[0] - domB.Nodes[1].X[0]
	assert.Greater(tst, uxPlast, uxElast, "the yielding square must stretch further")

	// plastic history accumulated at the Gauss points
	ep := 0.0
	g := domA.Groups[0]
	for ip := 0; ip < g.Ngauss; ip++ {
		ep += g.Pstore.At(0, ip).Epbar
	}
	assert.Greater(tst, ep, 1e-6, "equivalent plastic strain must have accumulated")
}
