// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/ATPChina/MyGoFEM/inp"
)

// System is the view of the discretised structure seen by the incremental
// drivers: equations, assembly, residual, tangent solves, a state update and
// an increment-level backup. Domain implements it; tests may implement it
// with synthetic systems.
type System interface {
	Ndofs() int                             // number of equations
	Assemble(inc int, first bool) error     // rebuild internal force and tangent
	Residual(lambda float64, res []float64) // res = λ·fext - tint
	ExtForce() []float64                    // nominal external force
	Solve(x, b []float64) error             // tangent solve against last Assemble
	Update(du []float64)                    // add displacement increment
	Backup()                                // save increment-level state
	Restore()                               // recover it
}

// OutFcn is called after each converged increment
type OutFcn func(inc int, lambda float64)

// FEsolver implements the incremental-iterative solution of the nonlinear
// equilibrium equations
type FEsolver interface {
	Run() error
}

// solverallocators holds the drivers available
var solverallocators = make(map[string]func(sys System, ctl *inp.SolveControl, out OutFcn) FEsolver)

// NewSolver returns a driver by name
func NewSolver(name string, sys System, ctl *inp.SolveControl, out OutFcn) FEsolver {
	alloc, ok := solverallocators[name]
	if !ok {
		chk.Panic("cannot find solver %q", name)
	}
	return alloc(sys, ctl, out)
}

// ChooseIncrementalAlgorithm selects the driver from the solve-control
// flags: a non-zero arc-length radius takes precedence, then a positive
// line-search ratio, and plain Newton-Raphson otherwise
func ChooseIncrementalAlgorithm(sys System, ctl *inp.SolveControl, out OutFcn) FEsolver {
	name := "nr"
	if ctl.Searc > 0 {
		name = "nr-ls"
	}
	if math.Abs(ctl.Arcln) > 0 {
		name = "arclen"
	}
	return NewSolver(name, sys, ctl, out)
}
