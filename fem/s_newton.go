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
	solverallocators["nr"] = func(sys System, ctl *inp.SolveControl, out OutFcn) FEsolver {
		o := new(NRSolver)
		o.sys = sys
		o.ctl = ctl
		o.out = out
		o.du = la.NewVector(sys.Ndofs())
		o.res = la.NewVector(sys.Ndofs())
		return o
	}
}

// NRSolver implements the full Newton-Raphson driver under proportional load
// control: the load factor advances by fixed increments, each increment is
// equilibrated by Newton iterations with the consistent tangent, and a
// failed increment is retried from the last converged state with the step
// halved, down to the configured minimum.
type NRSolver struct {
	sys System
	ctl *inp.SolveControl
	out OutFcn

	// workspace
	du  la.Vector // displacement increment
	res la.Vector // residual
}

// Run solves the load path from λ=lamb0 to λ=xlmax
func (o *NRSolver) Run() (err error) {
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

// iterate equilibrates the system at the given load factor
func (o *NRSolver) iterate(inc int, lambda float64) (err error) {
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
		o.sys.Update(o.du)
	}
	return &Convergence{Inc: inc, Nit: o.ctl.Miter, Rnorm: rnorm}
}

// convDenom returns the residual normalisation: the norm of the scaled
// external force, floored at one to cover unloaded or self-equilibrated
// stages
func convDenom(lambda float64, fext []float64) float64 {
	return math.Max(math.Abs(lambda)*la.Vector(fext).Norm(), 1.0)
}
