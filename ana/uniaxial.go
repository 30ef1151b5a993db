// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements closed-form solutions to verify numerical results
package ana

import "math"

// UniaxialStretch implements the closed-form response of the
// hyperelastic-plastic material with linear isotropic hardening under the
// isochoric stretch F = diag(γ, 1/√γ, 1/√γ). With J = 1 the Kirchhoff and
// Cauchy stresses coincide and all quantities follow from the logarithmic
// stretch ln(γ). Ty0 up to zero means no yielding at all.
type UniaxialStretch struct {
	Mu  float64 // shear modulus
	Ty0 float64 // initial yield stress
	H   float64 // hardening modulus
}

// Qtrial returns the trial von Mises stress
func (o UniaxialStretch) Qtrial(γ float64) float64 {
	return 3.0 * o.Mu * math.Log(γ)
}

// Epbar returns the equivalent plastic strain after a single stretch from
// the virgin state
func (o UniaxialStretch) Epbar(γ float64) float64 {
	if o.Ty0 <= 0 {
		return 0
	}
	qtr := math.Abs(o.Qtrial(γ))
	if qtr <= o.Ty0 {
		return 0
	}
	return (qtr - o.Ty0) / (3.0*o.Mu + o.H)
}

// Stress returns the axial and lateral Cauchy stresses together with the
// von Mises stress after a single stretch from the virgin state
func (o UniaxialStretch) Stress(γ float64) (axial, lateral, q float64) {
	qs := o.Qtrial(γ)
	ep := o.Epbar(γ)
	if ep > 0 {
		qs = o.Ty0 + o.H*ep
		if math.Log(γ) < 0 {
			qs = -qs
		}
	}
	axial = 2.0 * qs / 3.0
	lateral = -qs / 3.0
	q = math.Abs(qs)
	return
}
