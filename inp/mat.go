// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Material holds material data: a named parameter set bound to a model kind
type Material struct {
	Name  string     `json:"name"`  // name of material
	Model string     `json:"model"` // name of model; e.g. "hyp-plast-princ"
	Prms  dbf.Params `json:"prms"`  // model parameters
}

// MatDb implements a database of materials
type MatDb struct {
	Materials []*Material `json:"materials"` // all materials
}

// Get returns a material by name; nil if not found
func (o *MatDb) Get(name string) *Material {
	for _, mat := range o.Materials {
		if mat.Name == name {
			return mat
		}
	}
	return nil
}

// ReadMat reads a materials file (.mat)
func ReadMat(fn string) (o *MatDb, err error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("cannot read materials file %q:\n%v", fn, err)
	}
	o = new(MatDb)
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal materials file %q:\n%v", fn, err)
	}
	for _, mat := range o.Materials {
		if mat.Name == "" || mat.Model == "" {
			return nil, chk.Err("material entries need both name and model. %+v is invalid", mat)
		}
	}
	return
}
