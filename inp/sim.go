// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from simulation (.sim),
// material (.mat) and mesh (.msh) files
package inp

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gopkg.in/yaml.v3"
)

// Data holds global data for one analysis run
type Data struct {
	Desc    string `json:"desc"`    // description of simulation
	Matfile string `json:"matfile"` // materials file path
	Mshfile string `json:"mshfile"` // mesh file path
	DirOut  string `json:"dirout"`  // directory for output; e.g. /tmp/mygofem
	Encoder string `json:"encoder"` // encoder name; e.g. "gob" or "json"
}

// LinSolData holds data for the linear-algebra collaborator
type LinSolData struct {
	Name      string `json:"name"`      // "umfpack", "mumps" or "dense"
	Symmetric bool   `json:"symmetric"` // use symmetric solver
	Verbose   bool   `json:"verbose"`   // verbose?
}

// SolveControl holds the incremental-iterative solution control parameters.
// Dlamb is the proportional load-factor increment; under cutback it is halved
// until Dincmin, at which point the analysis terminates.
type SolveControl struct {

	// incrementation
	Nincr   int     `json:"nincr"   yaml:"nincr"`   // maximum number of load increments
	Lamb0   float64 `json:"lamb0"   yaml:"lamb0"`   // initial load-proportionality factor; nonzero when resuming
	Xlmax   float64 `json:"xlmax"   yaml:"xlmax"`   // target load-proportionality factor
	Dlamb   float64 `json:"dlamb"   yaml:"dlamb"`   // load-factor increment
	Dincmin float64 `json:"dincmin" yaml:"dincmin"` // minimum increment allowed under cutback

	// equilibrium iterations
	Miter int     `json:"miter" yaml:"miter"` // maximum equilibrium iterations per increment
	Cnorm float64 `json:"cnorm" yaml:"cnorm"` // convergence tolerance on residual norm ratio

	// variant selection
	Searc  float64 `json:"searc"  yaml:"searc"`  // line-search slope ratio ρ; 0 disables the search
	Nsearc int     `json:"nsearc" yaml:"nsearc"` // maximum line-search trials
	Arcln  float64 `json:"arcln"  yaml:"arcln"`  // arc-length radius; 0 disables arc-length control

	// local return mapping
	Nrmit int     `json:"nrmit" yaml:"nrmit"` // maximum local return-mapping iterations
	Rmtol float64 `json:"rmtol" yaml:"rmtol"` // local return-mapping tolerance

	// output
	ShowR bool `json:"showr" yaml:"showr"` // show residuals during iterations
}

// SetDefault sets default values
func (o *SolveControl) SetDefault() {
	o.Nincr = 10
	o.Xlmax = 1.0
	o.Dlamb = 0.1
	o.Dincmin = 1e-3
	o.Miter = 20
	o.Cnorm = 1e-6
	o.Searc = 0
	o.Nsearc = 10
	o.Arcln = 0
	o.Nrmit = 20
	o.Rmtol = 1e-10
}

// PostProcess performs checks and corrections after reading
func (o *SolveControl) PostProcess() (err error) {
	if o.Nincr < 1 {
		return chk.Err("nincr must be at least 1. nincr=%d is invalid", o.Nincr)
	}
	if o.Dlamb <= 0 && math.Abs(o.Arcln) == 0 {
		return chk.Err("dlamb must be positive under load control. dlamb=%g is invalid", o.Dlamb)
	}
	if o.Lamb0 < 0 || o.Lamb0 > o.Xlmax {
		return chk.Err("lamb0 must be within [0, xlmax]. lamb0=%g is invalid", o.Lamb0)
	}
	if o.Dincmin <= 0 {
		o.Dincmin = 1e-3
	}
	if o.Miter < 1 {
		o.Miter = 20
	}
	if o.Nrmit < 1 {
		o.Nrmit = 20
	}
	if o.Rmtol <= 0 {
		o.Rmtol = 1e-10
	}
	return
}

// ElemData holds element data
type ElemData struct {
	Tag  int    `json:"tag"`  // tag of elements
	Mat  string `json:"mat"`  // material name
	Type string `json:"type"` // type of element; e.g. "hex8", "qua4"
	Nip  int    `json:"nip"`  // number of integration points; 0 => use default
}

// FixData prescribes homogeneous essential conditions at tagged vertices
type FixData struct {
	Vtag int      `json:"vtag"` // vertex tag
	Keys []string `json:"keys"` // dof keys; e.g. ["ux", "uy"]
}

// LoadData prescribes nominal point loads at tagged vertices.
// Values are scaled by the load-proportionality factor during the run.
type LoadData struct {
	Vtag int       `json:"vtag"` // vertex tag
	F    []float64 `json:"f"`    // nominal force components [ndim]
}

// Simulation holds all input data for one analysis
type Simulation struct {

	// input
	Data    Data         `json:"data"`    // global data
	LinSol  LinSolData   `json:"linsol"`  // linear solver data
	Control SolveControl `json:"control"` // nonlinear solution control
	Elems   []*ElemData  `json:"elems"`   // elements data
	Fix     []*FixData   `json:"fix"`     // essential conditions
	Loads   []*LoadData  `json:"loads"`   // nominal point loads

	// derived
	Mats    *MatDb // materials database
	Msh     *Mesh  // mesh
	EncType string // encoder type: "gob" or "json"
	DirOut  string // output directory
	Fnkey   string // filename key; e.g. mysim.sim => mysim
}

// Etag2data returns the ElemData corresponding to an element tag
func (o *Simulation) Etag2data(tag int) *ElemData {
	for _, ed := range o.Elems {
		if ed.Tag == tag {
			return ed
		}
	}
	return nil
}

// ReadSim reads a simulation input file (.sim) together with the materials
// file and the mesh file referred to by it
func ReadSim(simfilepath string) (o *Simulation, err error) {

	// read file
	b, err := os.ReadFile(simfilepath)
	if err != nil {
		return nil, chk.Err("cannot read simulation file %q:\n%v", simfilepath, err)
	}

	// decode
	o = new(Simulation)
	o.Control.SetDefault()
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal simulation file %q:\n%v", simfilepath, err)
	}
	err = o.Control.PostProcess()
	if err != nil {
		return nil, err
	}

	// derived data
	dir := filepath.Dir(simfilepath)
	o.EncType = o.Data.Encoder
	if o.EncType != "json" {
		o.EncType = "gob"
	}
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = "/tmp/mygofem"
	}
	o.Fnkey = io.FnKey(simfilepath)
	if o.LinSol.Name == "" {
		o.LinSol.Name = "umfpack"
	}

	// materials and mesh
	if o.Data.Matfile != "" {
		o.Mats, err = ReadMat(filepath.Join(dir, o.Data.Matfile))
		if err != nil {
			return nil, err
		}
	}
	if o.Data.Mshfile != "" {
		o.Msh, err = ReadMsh(filepath.Join(dir, o.Data.Mshfile))
		if err != nil {
			return nil, err
		}
	}
	return
}

// ReadSolveControl reads a stand-alone solve-control file. Files ending in
// .yaml or .yml are decoded with YAML; anything else is treated as JSON.
func ReadSolveControl(fn string) (o *SolveControl, err error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("cannot read solve-control file %q:\n%v", fn, err)
	}
	o = new(SolveControl)
	o.SetDefault()
	switch filepath.Ext(fn) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, o)
	default:
		err = json.Unmarshal(b, o)
	}
	if err != nil {
		return nil, chk.Err("cannot unmarshal solve-control file %q:\n%v", fn, err)
	}
	err = o.PostProcess()
	return
}
