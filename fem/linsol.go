// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// LinSolver wraps the linear-algebra collaborator behind the factorise/solve
// seam used by the incremental drivers. Init captures the triplet buffer;
// later assemblies refill the same buffer in the same order, so the sparsity
// pattern seen at Init never changes.
type LinSolver interface {
	Init(kb *la.Triplet, symmetric, verbose bool) error
	Fact() error
	Solve(x, b []float64) error
	Clean()
}

// GetLinSolver returns a collaborator by name: "dense" gives the pure-Go LU
// solver; anything else is handed to the sparse-solver registry ("umfpack",
// "mumps")
func GetLinSolver(name string) LinSolver {
	if name == "dense" {
		return new(DenseSolver)
	}
	return &SpSolver{name: name}
}

// SpSolver delegates to the sparse solvers behind la.SparseSolver, converting
// their panics into errors for the drivers
type SpSolver struct {
	name string
	ls   la.SparseSolver
}

// catch converts a solver panic into an error
func catch(err *error) {
	if r := recover(); r != nil {
		*err = chk.Err("%v", r)
	}
}

func (o *SpSolver) Init(kb *la.Triplet, symmetric, verbose bool) (err error) {
	defer catch(&err)
	o.ls = la.NewSparseSolver(o.name)
	o.ls.Init(kb, &la.SpArgs{Symmetric: symmetric, Verbose: verbose})
	return
}

func (o *SpSolver) Fact() (err error) {
	defer catch(&err)
	o.ls.Fact()
	return
}

func (o *SpSolver) Solve(x, b []float64) (err error) {
	defer catch(&err)
	o.ls.Solve(x, b, false)
	return
}

func (o *SpSolver) Clean() {
	if o.ls != nil {
		o.ls.Free()
	}
}

// DenseSolver factorises the triplet buffer as a dense matrix. Meant for
// small systems and tests; it needs no external sparse-solver libraries.
type DenseSolver struct {
	kb *la.Triplet
	a  *mat.Dense
	lu mat.LU
	xv *mat.VecDense
	bv *mat.VecDense
}

func (o *DenseSolver) Init(kb *la.Triplet, symmetric, verbose bool) error {
	o.kb = kb
	return nil
}

func (o *DenseSolver) Fact() error {
	kk := o.kb.ToDense()
	n := kk.M
	if o.a == nil {
		o.a = mat.NewDense(n, n, nil)
		o.xv = mat.NewVecDense(n, nil)
		o.bv = mat.NewVecDense(n, nil)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			o.a.Set(i, j, kk.Get(i, j))
		}
	}
	o.lu.Factorize(o.a)
	return nil
}

func (o *DenseSolver) Solve(x, b []float64) error {
	n := o.bv.Len()
	if len(x) != n || len(b) != n {
		return chk.Err("vectors have wrong dimensions. %d or %d != %d", len(x), len(b), n)
	}
	for i := 0; i < n; i++ {
		o.bv.SetVec(i, b[i])
	}
	err := o.lu.SolveVecTo(o.xv, false, o.bv)
	if err != nil {
		c, ok := err.(mat.Condition)
		if !ok || math.IsInf(float64(c), 0) {
			return err
		}
	}
	for i := 0; i < n; i++ {
		x[i] = o.xv.AtVec(i)
	}
	return nil
}

func (o *DenseSolver) Clean() {
}
