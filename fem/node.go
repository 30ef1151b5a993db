// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/ATPChina/MyGoFEM/inp"

// Node holds one mesh vertex during the analysis: its reference coordinates,
// its current (deformed) coordinates and the global equation numbers of its
// displacement unknowns. Equation numbers are assigned once at setup and are
// immutable afterwards.
type Node struct {
	Vert *inp.Vert // vertex data
	X    []float64 // reference coordinates [ndim]
	Cur  []float64 // current coordinates [ndim]
	Eqs  []int     // global equation numbers [ndim]
}

// NewNode allocates a node from a vertex. Equation numbers are contiguous:
// vertex id times ndim plus the local direction.
func NewNode(v *inp.Vert, ndim int) (o *Node) {
	o = &Node{Vert: v}
	o.X = make([]float64, ndim)
	o.Cur = make([]float64, ndim)
	o.Eqs = make([]int, ndim)
	copy(o.X, v.C)
	copy(o.Cur, v.C)
	for i := 0; i < ndim; i++ {
		o.Eqs[i] = v.Id*ndim + i
	}
	return
}
