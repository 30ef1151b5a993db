// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"
)

// Vert holds vertex data
type Vert struct {
	Id  int       `json:"i"` // id
	Tag int       `json:"t"` // tag
	C   []float64 `json:"c"` // reference coordinates [ndim]
}

// Cell holds cell (element connectivity) data
type Cell struct {
	Id    int    `json:"i"` // id
	Tag   int    `json:"t"` // tag
	Type  string `json:"y"` // type; e.g. "hex8", "qua4"
	Verts []int  `json:"v"` // vertex ids
}

// Mesh holds a mesh for one analysis. The geometry/mesh generator is an
// external collaborator; this structure is only the hand-over format.
type Mesh struct {

	// input
	Ndim  int     `json:"ndim"`  // space dimension
	Verts []*Vert `json:"verts"` // vertices
	Cells []*Cell `json:"cells"` // cells

	// derived
	VertTag2verts map[int][]*Vert // vertex tag => vertices
	CellTag2cells map[int][]*Cell // cell tag => cells
}

// CalcDerived computes the derived maps and checks consistency
func (o *Mesh) CalcDerived() (err error) {
	if o.Ndim < 2 || o.Ndim > 3 {
		return chk.Err("space dimension must be 2 or 3. ndim=%d is invalid", o.Ndim)
	}
	o.VertTag2verts = make(map[int][]*Vert)
	o.CellTag2cells = make(map[int][]*Cell)
	for i, v := range o.Verts {
		if v.Id != i {
			return chk.Err("vertices must be numbered sequentially. %d != %d", v.Id, i)
		}
		if len(v.C) != o.Ndim {
			return chk.Err("vertex %d has %d coordinates. ndim=%d", v.Id, len(v.C), o.Ndim)
		}
		if v.Tag != 0 {
			o.VertTag2verts[v.Tag] = append(o.VertTag2verts[v.Tag], v)
		}
	}
	for i, c := range o.Cells {
		if c.Id != i {
			return chk.Err("cells must be numbered sequentially. %d != %d", c.Id, i)
		}
		for _, v := range c.Verts {
			if v < 0 || v >= len(o.Verts) {
				return chk.Err("cell %d refers to inexistent vertex %d", c.Id, v)
			}
		}
		o.CellTag2cells[c.Tag] = append(o.CellTag2cells[c.Tag], c)
	}
	return
}

// ReadMsh reads a mesh file (.msh)
func ReadMsh(fn string) (o *Mesh, err error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("cannot read mesh file %q:\n%v", fn, err)
	}
	o = new(Mesh)
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal mesh file %q:\n%v", fn, err)
	}
	err = o.CalcDerived()
	if err != nil {
		return nil, err
	}
	return
}
