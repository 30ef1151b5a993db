// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import "github.com/cpmech/gosl/utl"

// PlastState holds the plastic internal variables at one Gauss point:
// the equivalent plastic strain and the inverse plastic right Cauchy-Green
// tensor. Mutated in place by the constitutive update only.
type PlastState struct {
	Epbar float64     // equivalent plastic strain
	InvCp [][]float64 // inverse plastic right Cauchy-Green tensor [3][3]
}

// NewPlastState allocates a state with virgin history (InvCp = I)
func NewPlastState() *PlastState {
	var s PlastState
	s.InvCp = utl.Alloc(3, 3)
	s.Reset()
	return &s
}

// Reset clears the history back to the virgin state
func (o *PlastState) Reset() {
	o.Epbar = 0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			o.InvCp[i][j] = 0
		}
		o.InvCp[i][i] = 1
	}
}

// Set copies another state into this one.
// Both must have been pre-allocated.
func (o *PlastState) Set(other *PlastState) {
	o.Epbar = other.Epbar
	for i := range other.InvCp {
		copy(o.InvCp[i], other.InvCp[i])
	}
}

// GetCopy returns a copy of this state
func (o *PlastState) GetCopy() *PlastState {
	other := NewPlastState()
	other.Set(o)
	return other
}

// PlastStore holds the plastic internal variables of one element group,
// addressed by a stable (elementIndex, gaussIndex) handle. The store shape
// is fixed at allocation and never resized during an analysis.
type PlastStore struct {
	Nele   int          // number of elements
	Ngauss int          // number of Gauss points per element
	States []PlastState // [nele*ngauss] records

	// backup records: bkp holds the last converged state restored between
	// equilibrium iterations; aux holds the increment-start state restored
	// on increment cutback
	bkp []PlastState
	aux []PlastState
}

// NewPlastStore allocates the store with virgin history everywhere
func NewPlastStore(nele, ngauss int) *PlastStore {
	o := &PlastStore{Nele: nele, Ngauss: ngauss}
	o.States = make([]PlastState, nele*ngauss)
	o.bkp = make([]PlastState, nele*ngauss)
	o.aux = make([]PlastState, nele*ngauss)
	for i := range o.States {
		o.States[i].InvCp = utl.Alloc(3, 3)
		o.States[i].Reset()
		o.bkp[i].InvCp = utl.Alloc(3, 3)
		o.bkp[i].Reset()
		o.aux[i].InvCp = utl.Alloc(3, 3)
		o.aux[i].Reset()
	}
	return o
}

// At returns the record handle for (elementIndex, gaussIndex)
func (o *PlastStore) At(iele, igauss int) *PlastState {
	return &o.States[iele*o.Ngauss+igauss]
}

// Reset clears all history; to be called at analysis start only
func (o *PlastStore) Reset() {
	for i := range o.States {
		o.States[i].Reset()
	}
}

// Backup saves a copy of all records; aux selects the increment-level copy
func (o *PlastStore) Backup(aux bool) {
	dst := o.bkp
	if aux {
		dst = o.aux
	}
	for i := range o.States {
		dst[i].Set(&o.States[i])
	}
}

// Restore brings all records back; aux selects the increment-level copy
func (o *PlastStore) Restore(aux bool) {
	src := o.bkp
	if aux {
		src = o.aux
	}
	for i := range o.States {
		o.States[i].Set(&src[i])
	}
}

// SetFrom copies the records of another store with the same shape
func (o *PlastStore) SetFrom(other *PlastStore) {
	for i := range o.States {
		o.States[i].Set(&other.States[i])
	}
}
