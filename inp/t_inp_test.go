// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func writeTmp(tst *testing.T, dir, name, content string) string {
	fn := filepath.Join(dir, name)
	if err := os.WriteFile(fn, []byte(content), 0666); err != nil {
		tst.Fatalf("cannot write %q:\n%v", fn, err)
	}
	return fn
}

func Test_inp01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("inp01. solve-control defaults and checks")

	var ctl SolveControl
	ctl.SetDefault()
	chk.IntAssert(ctl.Nincr, 10)
	chk.Float64(tst, "xlmax", 1e-17, ctl.Xlmax, 1)
	chk.Float64(tst, "dlamb", 1e-17, ctl.Dlamb, 0.1)
	if err := ctl.PostProcess(); err != nil {
		tst.Errorf("PostProcess failed on defaults:\n%v", err)
		return
	}

	// invalid increment count
	ctl.Nincr = 0
	if err := ctl.PostProcess(); err == nil {
		tst.Errorf("PostProcess should have failed with nincr=0")
		return
	}

	// the initial load factor must sit inside the load path
	ctl.SetDefault()
	ctl.Lamb0 = 1.5
	if err := ctl.PostProcess(); err == nil {
		tst.Errorf("PostProcess should have failed with lamb0 beyond xlmax")
		return
	}
	ctl.Lamb0 = -0.1
	if err := ctl.PostProcess(); err == nil {
		tst.Errorf("PostProcess should have failed with negative lamb0")
		return
	}

	// load control needs a positive increment, arc-length does not
	ctl.SetDefault()
	ctl.Dlamb = 0
	if err := ctl.PostProcess(); err == nil {
		tst.Errorf("PostProcess should have failed with dlamb=0 under load control")
		return
	}
	ctl.Arcln = 0.05
	if err := ctl.PostProcess(); err != nil {
		tst.Errorf("PostProcess failed under arc-length control:\n%v", err)
	}
}

func Test_inp02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("inp02. stand-alone solve-control files: json and yaml")

	dir := tst.TempDir()

	fn := writeTmp(tst, dir, "ctl.json", `{"nincr":5, "dlamb":0.2, "searc":0.9}`)
	ctl, err := ReadSolveControl(fn)
	if err != nil {
		tst.Errorf("ReadSolveControl failed:\n%v", err)
		return
	}
	chk.IntAssert(ctl.Nincr, 5)
	chk.Float64(tst, "dlamb", 1e-17, ctl.Dlamb, 0.2)
	chk.Float64(tst, "searc", 1e-17, ctl.Searc, 0.9)
	chk.IntAssert(ctl.Miter, 20) // untouched default

	fn = writeTmp(tst, dir, "ctl.yaml", "nincr: 8\narcln: 0.05\nshowr: true\n")
	ctl, err = ReadSolveControl(fn)
	if err != nil {
		tst.Errorf("ReadSolveControl failed:\n%v", err)
		return
	}
	chk.IntAssert(ctl.Nincr, 8)
	chk.Float64(tst, "arcln", 1e-17, ctl.Arcln, 0.05)
	if !ctl.ShowR {
		tst.Errorf("showr should have been set")
		return
	}

	// garbage fails
	fn = writeTmp(tst, dir, "bad.yaml", "nincr: [not a number\n")
	if _, err = ReadSolveControl(fn); err == nil {
		tst.Errorf("ReadSolveControl should have failed on malformed yaml")
	}
}

func Test_inp03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("inp03. full simulation input")

	dir := tst.TempDir()
	writeTmp(tst, dir, "materials.mat", `{
		"materials": [
			{"name": "mild-steel", "model": "hyp-plast-princ",
			 "prms": [{"n": "mu", "v": 80000}, {"n": "K", "v": 170000}]}
		]
	}`)
	writeTmp(tst, dir, "block.msh", `{
		"ndim": 2,
		"verts": [
			{"i": 0, "t": -100, "c": [0, 0]},
			{"i": 1, "t": -200, "c": [1, 0]},
			{"i": 2, "t": -200, "c": [1, 1]},
			{"i": 3, "t": -100, "c": [0, 1]}
		],
		"cells": [
			{"i": 0, "t": -1, "y": "qua4", "v": [0, 1, 2, 3]}
		]
	}`)
	fn := writeTmp(tst, dir, "test.sim", `{
		"data": {"desc": "one block", "matfile": "materials.mat", "mshfile": "block.msh"},
		"control": {"nincr": 4, "dlamb": 0.25},
		"elems": [{"tag": -1, "mat": "mild-steel", "type": "qua4"}],
		"fix": [{"vtag": -100, "keys": ["ux", "uy"]}],
		"loads": [{"vtag": -200, "f": [10, 0]}]
	}`)

	sim, err := ReadSim(fn)
	if err != nil {
		tst.Errorf("ReadSim failed:\n%v", err)
		return
	}

	// derived data
	if sim.Fnkey != "test" {
		tst.Errorf("fnkey should be %q. %q is invalid", "test", sim.Fnkey)
		return
	}
	if sim.EncType != "gob" {
		tst.Errorf("default encoder should be gob. %q is invalid", sim.EncType)
		return
	}
	if sim.LinSol.Name != "umfpack" {
		tst.Errorf("default linear solver should be umfpack. %q is invalid", sim.LinSol.Name)
		return
	}
	chk.IntAssert(sim.Control.Nincr, 4)

	// materials and mesh
	mat := sim.Mats.Get("mild-steel")
	if mat == nil {
		tst.Errorf("cannot find material in database")
		return
	}
	if sim.Mats.Get("inexistent") != nil {
		tst.Errorf("inexistent material should give nil")
		return
	}
	chk.IntAssert(sim.Msh.Ndim, 2)
	chk.IntAssert(len(sim.Msh.Verts), 4)
	chk.IntAssert(len(sim.Msh.VertTag2verts[-200]), 2)
	chk.IntAssert(len(sim.Msh.CellTag2cells[-1]), 1)
	if ed := sim.Etag2data(-1); ed == nil || ed.Mat != "mild-steel" {
		tst.Errorf("Etag2data(-1) should give the element data")
		return
	}
	if sim.Etag2data(-7) != nil {
		tst.Errorf("Etag2data of an unknown tag should give nil")
	}
}

func Test_inp04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("inp04. mesh consistency checks")

	// non-sequential vertex ids
	msh := &Mesh{Ndim: 2, Verts: []*Vert{{Id: 1, C: []float64{0, 0}}}}
	if err := msh.CalcDerived(); err == nil {
		tst.Errorf("CalcDerived should have failed with non-sequential ids")
		return
	}

	// wrong coordinate count
	msh = &Mesh{Ndim: 3, Verts: []*Vert{{Id: 0, C: []float64{0, 0}}}}
	if err := msh.CalcDerived(); err == nil {
		tst.Errorf("CalcDerived should have failed with missing coordinates")
		return
	}

	// cell referring to an inexistent vertex
	msh = &Mesh{
		Ndim:  2,
		Verts: []*Vert{{Id: 0, C: []float64{0, 0}}},
		Cells: []*Cell{{Id: 0, Type: "qua4", Verts: []int{0, 1, 2, 3}}},
	}
	if err := msh.CalcDerived(); err == nil {
		tst.Errorf("CalcDerived should have failed with an inexistent vertex")
	}
}
