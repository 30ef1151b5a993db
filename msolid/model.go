// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msolid implements material models for solids undergoing
// large deformations, together with the plastic internal-variable store
package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Model defines the interface for material models
type Model interface {
	Init(ndim int, prms dbf.Params) error // initialises model
	GetPrms() dbf.Params                  // gets parameters
}

// LargeStrain defines the capability interface for models evaluated from the
// deformation gradient at one Gauss point. Update mutates the plastic
// internal variables in s and fills the Cauchy stress σ [ndim][ndim] and the
// spatial elasticity tensor c [ndim][ndim][ndim][ndim].
type LargeStrain interface {
	Update(σ [][]float64, c [][][][]float64, F [][]float64, s *PlastState) error

	// MeanDilatation returns the volumetric pressure and effective bulk
	// modulus from the element-averaged Jacobian ratio Jbar
	MeanDilatation(Jbar float64) (press, kappaBar float64)
}

// ReturnDivergence indicates that the local return-mapping iteration
// exceeded its budget without returning to the yield surface. It is a
// different condition from the outer solver's convergence failure, but is
// equally eligible for increment cutback.
type ReturnDivergence struct {
	Model string  // model name
	Qtr   float64 // trial equivalent stress
	Inner error   // inner solver error
}

func (e *ReturnDivergence) Error() string {
	return io.Sf("plastic return mapping diverged (model %q, qtr=%g): %v", e.Model, e.Qtr, e.Inner)
}

// allocators holds the model factory
var allocators = map[string]func() Model{}

// New allocates and initialises a model by name. An unknown name is an
// unsupported-material condition for the caller.
func New(name string, ndim int, prms dbf.Params) (Model, error) {
	alloc, ok := allocators[name]
	if !ok {
		return nil, chk.Err("cannot find model named %q", name)
	}
	mdl := alloc()
	if err := mdl.Init(ndim, prms); err != nil {
		return nil, chk.Err("cannot initialise model %q:\n%v", name, err)
	}
	return mdl, nil
}
