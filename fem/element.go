// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/utl"

	"github.com/ATPChina/MyGoFEM/inp"
	"github.com/ATPChina/MyGoFEM/msolid"
	"github.com/ATPChina/MyGoFEM/shp"
)

// Ele holds one element of a group
type Ele struct {
	Id    int       // cell id
	Cell  *inp.Cell // cell data
	Umap  []int     // global equation numbers [nnode*ndim]
	KbOff int       // write offset into the global triplet buffer
	Ve    float64   // reference (undeformed) volume
}

// ElemGroup holds homogeneous elements sharing shape, quadrature and
// material model. The group owns the plastic internal-variable store of its
// elements and the scratch space reused by every element evaluation.
type ElemGroup struct {

	// metadata
	Shp    *shp.Shape         // shape/interpolation data
	Ips    []shp.Ipoint       // integration points
	Dndr   [][][]float64      // [nip][nnode][ndim] reference shape derivatives
	Wgt    []float64          // [nip] integration weights
	Mat    *inp.Material      // material
	Mdl    msolid.Model       // material model
	Large  msolid.LargeStrain // large-deformation capability of Mdl
	Eles   []*Ele             // elements
	Pstore *msolid.PlastStore // plastic internal variables [nele][nip]

	// dimensions
	Ndim   int // space dimension
	Nnode  int // nodes per element
	Ndofe  int // dofs per element
	Ngauss int // integration points per element

	// scratchpad (single evaluation at a time)
	Kin     *Kinematics     // kinematics engine
	K       [][]float64     // [ndofe][ndofe] element stiffness
	Fi      []float64       // [ndofe] element internal force
	σ       [][]float64     // [ndim][ndim] Cauchy stress at one Gauss point
	cc      [][][][]float64 // [ndim]⁴ spatial elasticity tensor
	dnxMean [][]float64     // [nnode][ndim] element-averaged shape gradients
	xl, Xl  [][]float64     // [nnode][ndim] local coordinate blocks
}

// NnzElem returns the number of triplet entries one element writes per
// assembly pass: ndofe² stiffness terms plus nnode²·ndim² mean-dilatation
// node-pair terms
func (o *ElemGroup) NnzElem() int {
	return o.Ndofe*o.Ndofe + o.Nnode*o.Nnode*o.Ndim*o.Ndim
}

// NewGroups partitions the mesh cells by tag and allocates one group per
// tag with its model and plasticity store. Materials whose model lacks the
// large-deformation capability fail immediately, naming the material.
func NewGroups(sim *inp.Simulation) (groups []*ElemGroup, err error) {
	msh := sim.Msh
	ndim := msh.Ndim
	for _, ed := range sim.Elems {
		cells := msh.CellTag2cells[ed.Tag]
		if len(cells) == 0 {
			return nil, chk.Err("cannot find cells with tag %d", ed.Tag)
		}

		// shape and quadrature
		shape := shp.Get(ed.Type)
		if shape == nil {
			return nil, chk.Err("cannot find shape %q", ed.Type)
		}
		if shape.Gndim != ndim {
			return nil, chk.Err("shape %q has dimension %d but the mesh is %dD", ed.Type, shape.Gndim, ndim)
		}
		ips, err := shape.Ipoints(ed.Nip)
		if err != nil {
			return nil, err
		}

		// material model
		mat := sim.Mats.Get(ed.Mat)
		if mat == nil {
			return nil, chk.Err("cannot find material %q", ed.Mat)
		}
		prms := append(dbf.Params{}, mat.Prms...)
		if sim.Control.Nrmit > 0 {
			prms = append(prms, &dbf.P{N: "nrmit", V: float64(sim.Control.Nrmit)})
			prms = append(prms, &dbf.P{N: "rmtol", V: sim.Control.Rmtol})
		}
		mdl, err := msolid.New(mat.Model, ndim, prms)
		if err != nil {
			return nil, err
		}
		large, ok := mdl.(msolid.LargeStrain)
		if !ok {
			return nil, &UnsupportedMaterial{Mat: mat.Name, Model: mat.Model}
		}

		// group
		g := &ElemGroup{
			Shp:    shape,
			Ips:    ips,
			Mat:    mat,
			Mdl:    mdl,
			Large:  large,
			Ndim:   ndim,
			Nnode:  shape.Nverts,
			Ndofe:  shape.Nverts * ndim,
			Ngauss: len(ips),
		}
		g.Dndr = shape.DerivsAtIps(ips)
		g.Wgt = make([]float64, len(ips))
		for i, ip := range ips {
			g.Wgt[i] = ip.W
		}
		for _, c := range cells {
			if len(c.Verts) != g.Nnode {
				return nil, chk.Err("cell %d has %d vertices but shape %q needs %d", c.Id, len(c.Verts), ed.Type, g.Nnode)
			}
			e := &Ele{Id: c.Id, Cell: c}
			e.Umap = make([]int, g.Ndofe)
			for m, v := range c.Verts {
				for i := 0; i < ndim; i++ {
					e.Umap[m*ndim+i] = v*ndim + i
				}
			}
			g.Eles = append(g.Eles, e)
		}
		g.Pstore = msolid.NewPlastStore(len(g.Eles), g.Ngauss)

		// scratchpad
		g.Kin = NewKinematics(ndim, g.Nnode, g.Ngauss)
		g.K = utl.Alloc(g.Ndofe, g.Ndofe)
		g.Fi = make([]float64, g.Ndofe)
		g.σ = utl.Alloc(ndim, ndim)
		g.cc = utl.Deep4alloc(ndim, ndim, ndim, ndim)
		g.dnxMean = utl.Alloc(g.Nnode, ndim)
		g.xl = utl.Alloc(g.Nnode, ndim)
		g.Xl = utl.Alloc(g.Nnode, ndim)

		groups = append(groups, g)
	}
	return
}

// gatherCoords copies the reference and current coordinates of one element
// into the group's local blocks
func (o *ElemGroup) gatherCoords(e *Ele, nodes []*Node) {
	for m, v := range e.Cell.Verts {
		for i := 0; i < o.Ndim; i++ {
			o.Xl[m][i] = nodes[v].X[i]
			o.xl[m][i] = nodes[v].Cur[i]
		}
	}
}
