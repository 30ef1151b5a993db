// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape functions, reference derivatives and
// Gauss quadrature for the supported element geometries
package shp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// ShpFunc computes the shape functions S and derivatives dSdR w.r.t
// natural coordinates at natural coordinates r
type ShpFunc func(S []float64, dSdR [][]float64, r []float64)

// Ipoint holds integration (Gauss) point data
type Ipoint struct {
	R, S, T float64 // natural coordinates
	W       float64 // weight
}

// Shape holds the interpolation metadata of one element geometry
type Shape struct {
	Type   string  // name; e.g. "hex8"
	Gndim  int     // geometry dimension
	Nverts int     // number of vertices
	Func   ShpFunc // shape/derivatives callback
}

// factory holds all Shapes available
var factory = map[string]*Shape{
	"qua4": {Type: "qua4", Gndim: 2, Nverts: 4, Func: qua4},
	"hex8": {Type: "hex8", Gndim: 3, Nverts: 8, Func: hex8},
}

// Get returns an existent Shape structure; nil if geoType is unknown
func Get(geoType string) *Shape {
	return factory[geoType]
}

// Ipoints returns an integration point set for this shape.
// nip == 0 selects the default (full) set.
func (o *Shape) Ipoints(nip int) (ips []Ipoint, err error) {
	switch o.Type {
	case "qua4":
		switch nip {
		case 1:
			return []Ipoint{{0, 0, 0, 4}}, nil
		case 0, 4:
			g := gp2
			return []Ipoint{
				{-g, -g, 0, 1}, {g, -g, 0, 1}, {-g, g, 0, 1}, {g, g, 0, 1},
			}, nil
		}
	case "hex8":
		switch nip {
		case 1:
			return []Ipoint{{0, 0, 0, 8}}, nil
		case 0, 8:
			g := gp2
			ips = make([]Ipoint, 0, 8)
			for _, t := range []float64{-g, g} {
				for _, s := range []float64{-g, g} {
					for _, r := range []float64{-g, g} {
						ips = append(ips, Ipoint{r, s, t, 1})
					}
				}
			}
			return ips, nil
		}
	}
	return nil, chk.Err("cannot get %d integration points for shape %q", nip, o.Type)
}

// DerivsAtIps computes the reference-configuration shape derivatives at all
// integration points. Output: dndr[nip][nverts][gndim].
func (o *Shape) DerivsAtIps(ips []Ipoint) (dndr [][][]float64) {
	S := make([]float64, o.Nverts)
	dndr = make([][][]float64, len(ips))
	for i, ip := range ips {
		dndr[i] = utl.Alloc(o.Nverts, o.Gndim)
		o.Func(S, dndr[i], []float64{ip.R, ip.S, ip.T})
	}
	return
}

// FuncsAtIps computes the shape function values at all integration points.
// Output: s[nip][nverts].
func (o *Shape) FuncsAtIps(ips []Ipoint) (s [][]float64) {
	dSdR := utl.Alloc(o.Nverts, o.Gndim)
	s = make([][]float64, len(ips))
	for i, ip := range ips {
		s[i] = make([]float64, o.Nverts)
		o.Func(s[i], dSdR, []float64{ip.R, ip.S, ip.T})
	}
	return
}

// gp2 is the Gauss-Legendre coordinate for the 2-point rule: 1/sqrt(3)
const gp2 = 0.577350269189625764509148780502

// qua4 calculates the shape functions and derivatives of a 4-node quadrilateral
//
//	3-----------2
//	|     s     |
//	|     |     |
//	|     +--r  |
//	|           |
//	0-----------1
func qua4(S []float64, dSdR [][]float64, r []float64) {
	s, t := r[0], r[1]

	S[0] = (1.0 - s) * (1.0 - t) / 4.0
	S[1] = (1.0 + s) * (1.0 - t) / 4.0
	S[2] = (1.0 + s) * (1.0 + t) / 4.0
	S[3] = (1.0 - s) * (1.0 + t) / 4.0

	dSdR[0][0] = -(1.0 - t) / 4.0
	dSdR[0][1] = -(1.0 - s) / 4.0
	dSdR[1][0] = (1.0 - t) / 4.0
	dSdR[1][1] = -(1.0 + s) / 4.0
	dSdR[2][0] = (1.0 + t) / 4.0
	dSdR[2][1] = (1.0 + s) / 4.0
	dSdR[3][0] = -(1.0 + t) / 4.0
	dSdR[3][1] = (1.0 - s) / 4.0
}

// hex8 calculates the shape functions and derivatives of an 8-node hexahedron
//
//	     4________________7
//	    /|               /|
//	   / |              / |
//	  /  |             /  |
//	 /   |            /   |
//	5'===============6    |
//	|    |           |    |
//	|    0___________|____3
//	|   /            |   /
//	|  /             |  /
//	| /              | /
//	|/               |/
//	1'===============2
func hex8(S []float64, dSdR [][]float64, r []float64) {
	s, t, u := r[0], r[1], r[2]

	S[0] = (1.0 - s) * (1.0 - t) * (1.0 - u) / 8.0
	S[1] = (1.0 + s) * (1.0 - t) * (1.0 - u) / 8.0
	S[2] = (1.0 + s) * (1.0 + t) * (1.0 - u) / 8.0
	S[3] = (1.0 - s) * (1.0 + t) * (1.0 - u) / 8.0
	S[4] = (1.0 - s) * (1.0 - t) * (1.0 + u) / 8.0
	S[5] = (1.0 + s) * (1.0 - t) * (1.0 + u) / 8.0
	S[6] = (1.0 + s) * (1.0 + t) * (1.0 + u) / 8.0
	S[7] = (1.0 - s) * (1.0 + t) * (1.0 + u) / 8.0

	dSdR[0][0] = -(1.0 - t) * (1.0 - u) / 8.0
	dSdR[0][1] = -(1.0 - s) * (1.0 - u) / 8.0
	dSdR[0][2] = -(1.0 - s) * (1.0 - t) / 8.0
	dSdR[1][0] = (1.0 - t) * (1.0 - u) / 8.0
	dSdR[1][1] = -(1.0 + s) * (1.0 - u) / 8.0
	dSdR[1][2] = -(1.0 + s) * (1.0 - t) / 8.0
	dSdR[2][0] = (1.0 + t) * (1.0 - u) / 8.0
	dSdR[2][1] = (1.0 + s) * (1.0 - u) / 8.0
	dSdR[2][2] = -(1.0 + s) * (1.0 + t) / 8.0
	dSdR[3][0] = -(1.0 + t) * (1.0 - u) / 8.0
	dSdR[3][1] = (1.0 - s) * (1.0 - u) / 8.0
	dSdR[3][2] = -(1.0 - s) * (1.0 + t) / 8.0
	dSdR[4][0] = -(1.0 - t) * (1.0 + u) / 8.0
	dSdR[4][1] = -(1.0 - s) * (1.0 + u) / 8.0
	dSdR[4][2] = (1.0 - s) * (1.0 - t) / 8.0
	dSdR[5][0] = (1.0 - t) * (1.0 + u) / 8.0
	dSdR[5][1] = -(1.0 + s) * (1.0 + u) / 8.0
	dSdR[5][2] = (1.0 + s) * (1.0 - t) / 8.0
	dSdR[6][0] = (1.0 + t) * (1.0 + u) / 8.0
	dSdR[6][1] = (1.0 + s) * (1.0 + u) / 8.0
	dSdR[6][2] = (1.0 + s) * (1.0 + t) / 8.0
	dSdR[7][0] = -(1.0 + t) * (1.0 + u) / 8.0
	dSdR[7][1] = (1.0 - s) * (1.0 + u) / 8.0
	dSdR[7][2] = (1.0 - s) * (1.0 + t) / 8.0
}
