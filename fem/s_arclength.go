// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/ATPChina/MyGoFEM/inp"
)

func init() {
	solverallocators["arclen"] = func(sys System, ctl *inp.SolveControl, out OutFcn) FEsolver {
		o := new(ArcSolver)
		o.sys = sys
		o.ctl = ctl
		o.out = out
		n := sys.Ndofs()
		o.res = la.NewVector(n)
		o.duF = la.NewVector(n)
		o.duR = la.NewVector(n)
		o.ddu = la.NewVector(n)
		o.Du = la.NewVector(n)
		o.DuPrev = la.NewVector(n)
		return o
	}
}

// ArcSolver implements cylindrical (Crisfield) arc-length control: the load
// factor becomes an unknown and each increment advances the solution along
// an arc of prescribed radius in displacement space, allowing the driver to
// traverse limit points where load control fails. A failed increment halves
// the radius; the sign of the predictor follows the previous increment so
// the path never doubles back.
type ArcSolver struct {
	sys System
	ctl *inp.SolveControl
	out OutFcn

	// workspace
	res    la.Vector // residual
	duF    la.Vector // tangent solve against the nominal external force
	duR    la.Vector // tangent solve against the residual
	ddu    la.Vector // iterative displacement correction
	Du     la.Vector // accumulated increment displacement
	DuPrev la.Vector // converged displacement of the previous increment
}

// Run traces the equilibrium path until λ reaches xlmax or the increment
// budget is spent
func (o *ArcSolver) Run() (err error) {
	lambda := o.ctl.Lamb0
	dl := math.Abs(o.ctl.Arcln)
	dlmin := dl * o.ctl.Dincmin
	first := true
	for inc := 1; inc <= o.ctl.Nincr; inc++ {
		if lambda >= o.ctl.Xlmax {
			break
		}
		o.sys.Backup()
		for {
			var lnew float64
			lnew, err = o.increment(inc, lambda, dl, first)
			if err == nil {
				lambda = lnew
				first = false
				copy(o.DuPrev, o.Du)
				break
			}
			if !o.recoverable(err) {
				return err
			}
			o.sys.Restore()
			dl /= 2
			if dl < dlmin {
				return &MinIncrement{Inc: inc, Dinc: dl, Min: dlmin, Last: err}
			}
		}
		if o.out != nil {
			o.out(inc, lambda)
		}
	}
	return nil
}

// recoverable extends the cutback set with singular tangents, which under
// arc-length control merely mean the radius straddles a limit point
func (o *ArcSolver) recoverable(err error) bool {
	var est *SingularTangent
	return CutbackEligible(err) || errors.As(err, &est)
}

// increment advances the solution by one arc of radius dl, returning the
// new load factor
func (o *ArcSolver) increment(inc int, lambda, dl float64, first bool) (lnew float64, err error) {

	// predictor: tangent step of length dl, oriented by the previous
	// increment
	err = o.sys.Assemble(inc, true)
	if err != nil {
		return 0, err
	}
	err = o.sys.Solve(o.duF, o.sys.ExtForce())
	if err != nil {
		return 0, err
	}
	dlam := dl / o.duF.Norm()
	if !first && la.VecDot(o.DuPrev, o.duF) < 0 {
		dlam = -dlam
	}
	lnew = lambda + dlam
	o.Du.Apply(dlam, o.duF)
	o.sys.Update(o.Du)

	// corrector iterations on the cylindrical constraint ‖Δu‖ = dl
	den := convDenom(lnew, o.sys.ExtForce())
	rnorm := 0.0
	for it := 0; it < o.ctl.Miter; it++ {
		err = o.sys.Assemble(inc, false)
		if err != nil {
			return 0, err
		}
		o.sys.Residual(lnew, o.res)
		rnorm = o.res.Norm()
		if o.ctl.ShowR {
			io.Pf("%4d%4d%23.15e%23.15e\n", inc, it, rnorm/den, lnew)
		}
		if rnorm/den <= o.ctl.Cnorm {
			return lnew, nil
		}
		err = o.sys.Solve(o.duR, o.res)
		if err != nil {
			return 0, err
		}
		err = o.sys.Solve(o.duF, o.sys.ExtForce())
		if err != nil {
			return 0, err
		}

		// root of the constraint quadratic closest to the current arc
		// direction
		a := la.VecDot(o.duF, o.duF)
		b := 0.0
		c := -dl * dl
		for i := range o.Du {
			w := o.Du[i] + o.duR[i]
			b += 2 * w * o.duF[i]
			c += w * w
		}
		disc := b*b - 4*a*c
		if disc < 0 {
			return 0, &Convergence{Inc: inc, Nit: it, Rnorm: rnorm}
		}
		sq := math.Sqrt(disc)
		dlam1 := (-b + sq) / (2 * a)
		dlam2 := (-b - sq) / (2 * a)
		dlam := dlam1
		if o.arcCos(dlam2) > o.arcCos(dlam1) {
			dlam = dlam2
		}

		// apply correction
		for i := range o.ddu {
			o.ddu[i] = o.duR[i] + dlam*o.duF[i]
			o.Du[i] += o.ddu[i]
		}
		lnew += dlam
		o.sys.Update(o.ddu)
		den = convDenom(lnew, o.sys.ExtForce())
	}
	return 0, &Convergence{Inc: inc, Nit: o.ctl.Miter, Rnorm: rnorm}
}

// arcCos measures the alignment of the corrected increment with the current
// one; the root keeping the path moving forward wins
func (o *ArcSolver) arcCos(dlam float64) (dot float64) {
	for i := range o.Du {
		dot += o.Du[i] * (o.Du[i] + o.duR[i] + dlam*o.duF[i])
	}
	return
}
