// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

// RightHandItem holds the global force vectors of one analysis: the nominal
// external force, the assembled internal force and the out-of-balance
// residual, together with the current load-proportionality factor and the
// increment index. The external force is nominal: the equilibrium equations
// scale it by Lambda.
type RightHandItem struct {
	Fext   []float64 // [ndof] nominal external force
	Tint   []float64 // [ndof] internal force
	Resid  []float64 // [ndof] residual: Lambda·Fext - Tint
	Lambda float64   // load-proportionality factor
	Incr   int       // current increment index (1-based)
}

// NewRightHandItem allocates the vectors for ndof equations
func NewRightHandItem(ndof int) (o *RightHandItem) {
	o = new(RightHandItem)
	o.Fext = make([]float64, ndof)
	o.Tint = make([]float64, ndof)
	o.Resid = make([]float64, ndof)
	return
}
