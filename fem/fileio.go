// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	goio "io"
	"os"
	"path"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/ATPChina/MyGoFEM/msolid"
)

// Encoder defines encoders; e.g. gob or json
type Encoder interface {
	Encode(e interface{}) error
}

// Decoder defines decoders; e.g. gob or json
type Decoder interface {
	Decode(e interface{}) error
}

// GetEncoder returns a new encoder
func GetEncoder(w goio.Writer, enctype string) Encoder {
	if enctype == "json" {
		return json.NewEncoder(w)
	}
	return gob.NewEncoder(w)
}

// GetDecoder returns a new decoder
func GetDecoder(r goio.Reader, enctype string) Decoder {
	if enctype == "json" {
		return json.NewDecoder(r)
	}
	return gob.NewDecoder(r)
}

// SaveState saves the analysis state after a converged increment: the load
// factor, the current nodal coordinates and the plastic internal variables
// of every element group. The file name carries the increment index.
func (o *Domain) SaveState(inc int, lambda float64, verbose bool) (err error) {

	// buffer and encoder
	var buf bytes.Buffer
	enc := GetEncoder(&buf, o.Sim.EncType)

	// encode state
	err = enc.Encode(lambda)
	if err != nil {
		return chk.Err("cannot encode load factor\n%v", err)
	}
	cur := make([][]float64, len(o.Nodes))
	for i, n := range o.Nodes {
		cur[i] = n.Cur
	}
	err = enc.Encode(cur)
	if err != nil {
		return chk.Err("cannot encode nodal coordinates\n%v", err)
	}
	for _, g := range o.Groups {
		err = enc.Encode(g.Pstore.States)
		if err != nil {
			return chk.Err("cannot encode plastic internal variables\n%v", err)
		}
	}

	// save file
	fn := out_state_path(o.Sim.DirOut, o.Sim.Fnkey, o.Sim.EncType, inc)
	return save_file(fn, &buf, verbose)
}

// ReadState reads the state saved after increment inc, bringing the domain
// to the point where the interrupted analysis can resume
func (o *Domain) ReadState(dir, fnkey, enctype string, inc int) (lambda float64, err error) {

	// open file
	fn := out_state_path(dir, fnkey, enctype, inc)
	fil, err := os.Open(fn)
	if err != nil {
		return
	}
	defer func() { fil.Close() }()

	// decode state
	dec := GetDecoder(fil, enctype)
	err = dec.Decode(&lambda)
	if err != nil {
		return 0, chk.Err("cannot decode load factor\n%v", err)
	}
	var cur [][]float64
	err = dec.Decode(&cur)
	if err != nil {
		return 0, chk.Err("cannot decode nodal coordinates\n%v", err)
	}
	if len(cur) != len(o.Nodes) {
		return 0, chk.Err("state file has %d nodes but the mesh has %d", len(cur), len(o.Nodes))
	}
	for i, n := range o.Nodes {
		copy(n.Cur, cur[i])
	}
	for _, g := range o.Groups {
		var states []msolid.PlastState
		err = dec.Decode(&states)
		if err != nil {
			return 0, chk.Err("cannot decode plastic internal variables\n%v", err)
		}
		if len(states) != len(g.Pstore.States) {
			return 0, chk.Err("state file has %d records but the group has %d", len(states), len(g.Pstore.States))
		}
		for i := range states {
			g.Pstore.States[i].Set(&states[i])
		}
	}
	return
}

func out_state_path(dir, fnkey, enctype string, inc int) string {
	return path.Join(dir, io.Sf("%s_inc_%010d.%s", fnkey, inc, enctype))
}

func save_file(filename string, buf *bytes.Buffer, verbose bool) (err error) {
	os.MkdirAll(path.Dir(filename), 0777)
	fil, err := os.Create(filename)
	if err != nil {
		return
	}
	defer func() { err = fil.Close() }()
	_, err = fil.Write(buf.Bytes())
	if verbose {
		io.Pfblue2("file <%s> written\n", filename)
	}
	return
}
