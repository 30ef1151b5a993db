// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements equilibrium-path output handling and plotting
package out

import (
	"github.com/cpmech/gosl/chk"

	"github.com/ATPChina/MyGoFEM/fem"
)

// History records the equilibrium path of one analysis: the load factor
// against the displacement of one watched dof, sampled after each converged
// increment
type History struct {
	Dom    *fem.Domain // domain being watched
	Node   *fem.Node   // watched node
	Dir    int         // watched direction
	Inc    []int       // increment indices
	Lambda []float64   // load factors
	U      []float64   // displacement of the watched dof
}

// NewHistory allocates a recorder watching the dof with the given key at the
// first vertex carrying vtag
func NewHistory(dom *fem.Domain, vtag int, key string) (o *History, err error) {
	verts := dom.Msh.VertTag2verts[vtag]
	if len(verts) == 0 {
		return nil, chk.Err("cannot find vertices with tag %d to watch", vtag)
	}
	i, ok := fem.DofIndex(key, dom.Ndim)
	if !ok {
		return nil, chk.Err("unknown dof key %q for %dD analysis", key, dom.Ndim)
	}
	o = &History{Dom: dom, Node: dom.Nodes[verts[0].Id], Dir: i}
	o.Add(0, 0)
	return
}

// Add samples the watched dof. Meant to be used as the output callback of
// the incremental drivers.
func (o *History) Add(inc int, lambda float64) {
	o.Inc = append(o.Inc, inc)
	o.Lambda = append(o.Lambda, lambda)
	o.U = append(o.U, o.Node.Cur[o.Dir]-o.Node.X[o.Dir])
}
