// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"

	"github.com/cpmech/gosl/io"

	"github.com/ATPChina/MyGoFEM/msolid"
)

// UnsupportedMaterial indicates that an element refers to a material whose
// model cannot provide the required capability. Fatal: the assembly pass is
// aborted before any triplet is committed.
type UnsupportedMaterial struct {
	Mat   string // material name
	Model string // model name
}

func (e *UnsupportedMaterial) Error() string {
	return io.Sf("material %q (model %q) does not support large-deformation analysis", e.Mat, e.Model)
}

// ElementInversion indicates a non-positive Jacobian determinant. Fatal for
// the current increment; eligible for increment cutback.
type ElementInversion struct {
	Inc int     // increment index
	Eid int     // element id
	Ip  int     // Gauss point index
	J   float64 // offending Jacobian determinant
}

func (e *ElementInversion) Error() string {
	return io.Sf("element inversion: increment %d, element %d, Gauss point %d: J=%g is non-positive", e.Inc, e.Eid, e.Ip, e.J)
}

// PlastReturn indicates that the local plastic return mapping diverged.
// Propagates like ElementInversion.
type PlastReturn struct {
	Inc   int // increment index
	Eid   int // element id
	Ip    int // Gauss point index
	Inner error
}

func (e *PlastReturn) Error() string {
	return io.Sf("increment %d, element %d, Gauss point %d: %v", e.Inc, e.Eid, e.Ip, e.Inner)
}

// Convergence indicates that the outer equilibrium iteration exceeded its
// cap without meeting the tolerance. Recoverable via increment cutback until
// the increment size reaches its configured minimum.
type Convergence struct {
	Inc   int     // increment index
	Nit   int     // iterations performed
	Rnorm float64 // last residual norm
}

func (e *Convergence) Error() string {
	return io.Sf("no convergence after %d iterations at increment %d. rnorm=%g", e.Nit, e.Inc, e.Rnorm)
}

// MinIncrement indicates that cutback reduced the increment below its
// configured minimum. Terminal.
type MinIncrement struct {
	Inc  int     // increment index
	Dinc float64 // increment size after cutback
	Min  float64 // configured minimum
	Last error   // failure that triggered the final cutback
}

func (e *MinIncrement) Error() string {
	return io.Sf("increment cutback reached the minimum step at increment %d: %g < %g:\n%v", e.Inc, e.Dinc, e.Min, e.Last)
}

// SingularTangent indicates that the linear-algebra collaborator detected a
// non-invertible tangent. Recoverable only by arc-length control.
type SingularTangent struct {
	Inc   int // increment index
	Inner error
}

func (e *SingularTangent) Error() string {
	return io.Sf("singular tangent matrix at increment %d:\n%v", e.Inc, e.Inner)
}

// CutbackEligible tells whether err may be handled by halving the load
// increment and retrying from the last converged state
func CutbackEligible(err error) bool {
	var einv *ElementInversion
	var epl *PlastReturn
	var ecv *Convergence
	var erd *msolid.ReturnDivergence
	return errors.As(err, &einv) || errors.As(err, &epl) || errors.As(err, &ecv) || errors.As(err, &erd)
}
