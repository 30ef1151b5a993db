// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"

	"github.com/ATPChina/MyGoFEM/inp"
)

// FIXPEN is the penalty value placed on the diagonal of fixed equations
const FIXPEN = 1e12

// Domain holds all nodes and element groups of one analysis together with
// the global vectors, the triplet stiffness buffer and the linear-algebra
// collaborator. It implements System, so the incremental drivers operate on
// it without knowing about meshes or elements.
type Domain struct {

	// init
	Sim *inp.Simulation // input data
	Msh *inp.Mesh       // mesh data

	// nodes and elements
	Ndim   int             // space dimension
	Nodes  []*Node         // all nodes, indexed by vertex id
	Groups []*ElemGroup    // element groups, one per element tag
	It     *IdentityTensor // identity tensors shared by all groups

	// essential conditions
	Fixed []int // fixed equation numbers, ascending

	// linear system
	Ndof     int         // total number of equations
	NnzKb    int         // element triplet entries per assembly pass
	Kb       *la.Triplet // global tangent stiffness
	kbcur    int         // triplet write cursor, counts element writes only
	Lis      LinSolver   // linear-algebra collaborator
	lisinit  bool        // collaborator must be initialised before first Fact
	needfact bool        // stiffness changed since last factorisation

	// right-hand side
	Rhi *RightHandItem

	// increment-level backup for cutback
	bkpCur [][]float64 // node current coordinates
}

// NewDomain builds the analysis domain: nodes with equation numbers, element
// groups with their models and plasticity stores, reference element volumes,
// triplet write offsets, the fixed-dof set and the nominal external force.
// After this call the domain is ready for the first assembly pass.
func NewDomain(sim *inp.Simulation) (o *Domain, err error) {

	o = new(Domain)
	o.Sim = sim
	o.Msh = sim.Msh
	o.Ndim = sim.Msh.Ndim
	o.Ndof = len(sim.Msh.Verts) * o.Ndim
	o.It = NewIdentityTensor(o.Ndim)

	// nodes
	o.Nodes = make([]*Node, len(sim.Msh.Verts))
	for i, v := range sim.Msh.Verts {
		o.Nodes[i] = NewNode(v, o.Ndim)
	}

	// element groups
	o.Groups, err = NewGroups(sim)
	if err != nil {
		return nil, err
	}

	// reference volumes and triplet write offsets
	off := 0
	for _, g := range o.Groups {
		for _, e := range g.Eles {
			g.gatherCoords(e, o.Nodes)
			e.Ve, err = g.Kin.ReferenceVolume(g.Xl, g.Dndr, g.Wgt)
			if err != nil {
				var einv *ElementInversion
				if errors.As(err, &einv) {
					einv.Eid = e.Id
				}
				return nil, err
			}
			e.KbOff = off
			off += g.NnzElem()
		}
	}
	o.NnzKb = off

	// essential conditions
	isfix := make(map[int]bool)
	for _, fx := range sim.Fix {
		verts := sim.Msh.VertTag2verts[fx.Vtag]
		if len(verts) == 0 {
			return nil, chk.Err("cannot find vertices with tag %d to fix", fx.Vtag)
		}
		for _, key := range fx.Keys {
			i, ok := DofIndex(key, o.Ndim)
			if !ok {
				return nil, chk.Err("unknown dof key %q for %dD analysis", key, o.Ndim)
			}
			for _, v := range verts {
				isfix[o.Nodes[v.Id].Eqs[i]] = true
			}
		}
	}
	for eq := range isfix {
		o.Fixed = append(o.Fixed, eq)
	}
	sort.Ints(o.Fixed)

	// right-hand side and nominal loads
	o.Rhi = NewRightHandItem(o.Ndof)
	for _, ld := range sim.Loads {
		verts := sim.Msh.VertTag2verts[ld.Vtag]
		if len(verts) == 0 {
			return nil, chk.Err("cannot find vertices with tag %d to load", ld.Vtag)
		}
		if len(ld.F) != o.Ndim {
			return nil, chk.Err("load at vertex tag %d needs %d components. %d given", ld.Vtag, o.Ndim, len(ld.F))
		}
		for _, v := range verts {
			for i := 0; i < o.Ndim; i++ {
				o.Rhi.Fext[o.Nodes[v.Id].Eqs[i]] += ld.F[i]
			}
		}
	}

	// triplet buffer and linear-algebra collaborator
	o.Kb = new(la.Triplet)
	o.Kb.Init(o.Ndof, o.Ndof, o.NnzKb+len(o.Fixed))
	o.Lis = GetLinSolver(sim.LinSol.Name)
	if o.Lis == nil {
		return nil, chk.Err("cannot find linear solver %q", sim.LinSol.Name)
	}

	// increment-level backup
	o.bkpCur = utl.Alloc(len(o.Nodes), o.Ndim)
	return
}

// Clean releases resources held by the linear-algebra collaborator
func (o *Domain) Clean() {
	if o.lisinit {
		o.Lis.Clean()
	}
}

// Ndofs returns the number of equations
func (o *Domain) Ndofs() int {
	return o.Ndof
}

// Assemble rebuilds the internal force vector and the tangent stiffness
// triplets from the current nodal coordinates. When first is true the
// plastic internal variables are saved as the iteration baseline; otherwise
// they are restored from it first, so repeated equilibrium iterations always
// depart from the same converged history. The increment index inc is carried
// into diagnostics only.
func (o *Domain) Assemble(inc int, first bool) (err error) {

	// plastic history baseline
	for _, g := range o.Groups {
		if first {
			g.Pstore.Backup(false)
		} else {
			g.Pstore.Restore(false)
		}
	}

	// element loop
	o.Rhi.Incr = inc
	o.Kb.Start()
	o.kbcur = 0
	utl.Fill(o.Rhi.Tint, 0)
	for _, g := range o.Groups {
		for iele := range g.Eles {
			err = g.ElementForceAndStiffness(iele, o)
			if err != nil {
				return err
			}
		}
	}
	if o.kbcur != o.NnzKb {
		chk.Panic("assembly cursor must stop at the pre-computed number of element entries. %d != %d", o.kbcur, o.NnzKb)
	}

	// essential conditions: penalty entries after all element writes
	for _, eq := range o.Fixed {
		o.Kb.Put(eq, eq, FIXPEN)
	}
	o.needfact = true
	return
}

// Residual computes res = λ·fext - tint with fixed equations zeroed
func (o *Domain) Residual(lambda float64, res []float64) {
	o.Rhi.Lambda = lambda
	for i := 0; i < o.Ndof; i++ {
		res[i] = lambda*o.Rhi.Fext[i] - o.Rhi.Tint[i]
	}
	for _, eq := range o.Fixed {
		res[eq] = 0
	}
	copy(o.Rhi.Resid, res)
}

// ExtForce returns the nominal external force vector
func (o *Domain) ExtForce() []float64 {
	return o.Rhi.Fext
}

// Solve solves Kb·x = b with the last assembled stiffness. The
// factorisation is computed lazily and reused until the next Assemble, so
// drivers needing several solves against the same tangent pay for one
// factorisation only.
func (o *Domain) Solve(x, b []float64) (err error) {
	if !o.lisinit {
		err = o.Lis.Init(o.Kb, o.Sim.LinSol.Symmetric, o.Sim.LinSol.Verbose)
		if err != nil {
			return &SingularTangent{Inc: o.Rhi.Incr, Inner: err}
		}
		o.lisinit = true
	}
	if o.needfact {
		err = o.Lis.Fact()
		if err != nil {
			return &SingularTangent{Inc: o.Rhi.Incr, Inner: err}
		}
		o.needfact = false
	}
	err = o.Lis.Solve(x, b)
	if err != nil {
		return &SingularTangent{Inc: o.Rhi.Incr, Inner: err}
	}
	return
}

// Update adds a displacement increment to the current nodal coordinates
func (o *Domain) Update(du []float64) {
	for _, n := range o.Nodes {
		for i := 0; i < o.Ndim; i++ {
			n.Cur[i] += du[n.Eqs[i]]
		}
	}
}

// Backup saves the increment-level state: current coordinates and plastic
// internal variables. Restore brings it back after a failed increment.
func (o *Domain) Backup() {
	for iv, n := range o.Nodes {
		copy(o.bkpCur[iv], n.Cur)
	}
	for _, g := range o.Groups {
		g.Pstore.Backup(true)
	}
}

// Restore recovers the state saved by the last Backup
func (o *Domain) Restore() {
	for iv, n := range o.Nodes {
		copy(n.Cur, o.bkpCur[iv])
	}
	for _, g := range o.Groups {
		g.Pstore.Restore(true)
	}
}

// DofIndex maps a dof key such as "uy" to its local direction
func DofIndex(key string, ndim int) (i int, ok bool) {
	switch key {
	case "ux":
		return 0, true
	case "uy":
		return 1, true
	case "uz":
		if ndim == 3 {
			return 2, true
		}
	}
	return -1, false
}
