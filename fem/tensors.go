// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/utl"
)

// IdentityTensor holds the isotropic tensor constants shared read-only by
// the whole analysis:
//
//	I  = δij
//	C1 = δij δkl
//	C2 = δik δjl + δil δjk
type IdentityTensor struct {
	I  [][]float64
	C1 [][][][]float64
	C2 [][][][]float64
}

// NewIdentityTensor computes the constants once for a given dimension
func NewIdentityTensor(ndim int) (o *IdentityTensor) {
	o = new(IdentityTensor)
	o.I = utl.Alloc(ndim, ndim)
	for i := 0; i < ndim; i++ {
		o.I[i][i] = 1
	}
	o.C1 = utl.Deep4alloc(ndim, ndim, ndim, ndim)
	o.C2 = utl.Deep4alloc(ndim, ndim, ndim, ndim)
	for i := 0; i < ndim; i++ {
		for j := 0; j < ndim; j++ {
			for k := 0; k < ndim; k++ {
				for l := 0; l < ndim; l++ {
					o.C1[i][j][k][l] = o.I[i][j] * o.I[k][l]
					o.C2[i][j][k][l] = o.I[i][k]*o.I[j][l] + o.I[i][l]*o.I[j][k]
				}
			}
		}
	}
	return
}
