// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/ATPChina/MyGoFEM/inp"
)

func init() {
	solverallocators["nr-ls"] = func(sys System, ctl *inp.SolveControl, out OutFcn) FEsolver {
		o := new(LSSolver)
		o.sys = sys
		o.ctl = ctl
		o.out = out
		o.du = la.NewVector(sys.Ndofs())
		o.res = la.NewVector(sys.Ndofs())
		o.rtrial = la.NewVector(sys.Ndofs())
		o.dutrial = la.NewVector(sys.Ndofs())
		return o
	}
}

// LSSolver is the Newton-Raphson driver augmented with a backtracking line
// search: each Newton direction is scaled so that the slope of the residual
// along it shrinks by the configured ratio before the step is accepted.
// Incrementation and cutback follow NRSolver.
type LSSolver struct {
	sys System
	ctl *inp.SolveControl
	out OutFcn

	// workspace
	du      la.Vector // Newton direction
	res     la.Vector // residual
	rtrial  la.Vector // residual at a trial step
	dutrial la.Vector // scaled direction applied to the system
}

// Run solves the load path from λ=lamb0 to λ=xlmax
func (o *LSSolver) Run() (err error) {
	lambda := o.ctl.Lamb0
	dinc := o.ctl.Dlamb
	for inc := 1; inc <= o.ctl.Nincr; inc++ {
		if lambda >= o.ctl.Xlmax {
			break
		}
		o.sys.Backup()
		for {
			target := math.Min(lambda+dinc, o.ctl.Xlmax)
			err = o.iterate(inc, target)
			if err == nil {
				lambda = target
				break
			}
			if !CutbackEligible(err) {
				return err
			}
			o.sys.Restore()
			dinc /= 2
			if dinc < o.ctl.Dincmin {
				return &MinIncrement{Inc: inc, Dinc: dinc, Min: o.ctl.Dincmin, Last: err}
			}
		}
		if o.out != nil {
			o.out(inc, lambda)
		}
	}
	return nil
}

// iterate equilibrates the system at the given load factor, applying a line
// search on every Newton direction
func (o *LSSolver) iterate(inc int, lambda float64) (err error) {
	den := convDenom(lambda, o.sys.ExtForce())
	rnorm := 0.0
	for it := 0; it < o.ctl.Miter; it++ {
		err = o.sys.Assemble(inc, it == 0)
		if err != nil {
			return err
		}
		o.sys.Residual(lambda, o.res)
		rnorm = o.res.Norm()
		if o.ctl.ShowR {
			io.Pf("%4d%4d%23.15e\n", inc, it, rnorm/den)
		}
		if rnorm/den <= o.ctl.Cnorm {
			return nil
		}
		err = o.sys.Solve(o.du, o.res)
		if err != nil {
			return err
		}
		err = o.search(inc, lambda)
		if err != nil {
			return err
		}
	}
	return &Convergence{Inc: inc, Nit: o.ctl.Miter, Rnorm: rnorm}
}

// search applies the Newton direction scaled by η, backtracking until the
// residual slope along the direction satisfies |R(η)·δu| ≤ ρ·|R(0)·δu| or
// the trial budget is spent; the last step size tried remains applied. A
// trial causing element inversion or return-mapping divergence also
// backtracks rather than failing the increment outright.
func (o *LSSolver) search(inc int, lambda float64) (err error) {
	slope0 := math.Abs(la.VecDot(o.res, o.du))
	eta := 1.0
	o.dutrial.Apply(eta, o.du)
	o.sys.Update(o.dutrial)
	for ns := 0; ns < o.ctl.Nsearc; ns++ {
		err = o.sys.Assemble(inc, false)
		if err == nil {
			o.sys.Residual(lambda, o.rtrial)
			if math.Abs(la.VecDot(o.rtrial, o.du)) <= o.ctl.Searc*slope0 {
				return nil
			}
		} else if !CutbackEligible(err) {
			return err
		}
		// backtrack: remove the amount in excess of the halved step
		o.dutrial.Apply(-eta/2, o.du)
		o.sys.Update(o.dutrial)
		eta /= 2
	}
	// trial budget spent: keep the last (smallest) step if it assembled
	return err
}
