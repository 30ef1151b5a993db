// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// MINDET is the minimum Jacobian determinant allowed for the mappings
const MINDET = 1.0e-14

// Kinematics computes and caches, per Gauss point, the deformation gradient,
// the current-configuration Jacobian (integration-weight factor) and the
// spatial shape-function derivatives
type Kinematics struct {

	// dimensions
	Ndim  int // space dimension
	Nnode int // nodes per element
	Nip   int // integration points per element

	// results (cached per Gauss point)
	F   [][][]float64 // [nip][ndim][ndim] deformation gradient
	J   []float64     // [nip] det(F)
	Jxχ []float64     // [nip] det(∂x/∂χ): current-configuration Jacobian
	DNx [][][]float64 // [nip][nnode][ndim] spatial shape derivatives

	// scratchpad
	dxdχ, dXdχ *la.Matrix // [ndim][ndim]
	χdxi, χdXi *la.Matrix // inverses
}

// NewKinematics allocates the engine for one element family
func NewKinematics(ndim, nnode, nip int) (o *Kinematics) {
	o = &Kinematics{Ndim: ndim, Nnode: nnode, Nip: nip}
	o.F = utl.Deep3alloc(nip, ndim, ndim)
	o.J = make([]float64, nip)
	o.Jxχ = make([]float64, nip)
	o.DNx = utl.Deep3alloc(nip, nnode, ndim)
	o.dxdχ = la.NewMatrix(ndim, ndim)
	o.dXdχ = la.NewMatrix(ndim, ndim)
	o.χdxi = la.NewMatrix(ndim, ndim)
	o.χdXi = la.NewMatrix(ndim, ndim)
	return
}

// ComputeGradients evaluates the kinematic quantities at every Gauss point.
//
//	x    -- current nodal coordinates [nnode][ndim]
//	X    -- reference nodal coordinates [nnode][ndim]
//	dndr -- reference-element shape derivatives at ips [nip][nnode][gndim]
//
// A non-positive Jacobian returns an ElementInversion error with Eid unset;
// the caller fills in the element id and increment index.
func (o *Kinematics) ComputeGradients(x, X [][]float64, dndr [][][]float64) (err error) {
	for ip := 0; ip < o.Nip; ip++ {

		// mapping derivatives: ∂x/∂χ and ∂X/∂χ
		for i := 0; i < o.Ndim; i++ {
			for j := 0; j < o.Ndim; j++ {
				dx, dX := 0.0, 0.0
				for m := 0; m < o.Nnode; m++ {
					dx += x[m][i] * dndr[ip][m][j]
					dX += X[m][i] * dndr[ip][m][j]
				}
				o.dxdχ.Set(i, j, dx)
				o.dXdχ.Set(i, j, dX)
			}
		}

		// current-configuration Jacobian
		o.Jxχ[ip] = la.MatInvSmall(o.χdxi, o.dxdχ, 0)
		if o.Jxχ[ip] < MINDET {
			return &ElementInversion{Eid: -1, Ip: ip, J: o.Jxχ[ip]}
		}

		// reference-configuration Jacobian
		JXχ := la.MatInvSmall(o.χdXi, o.dXdχ, 0)
		if JXχ < MINDET {
			return &ElementInversion{Eid: -1, Ip: ip, J: JXχ}
		}

		// deformation gradient: F = (∂x/∂χ)·(∂X/∂χ)⁻¹
		for i := 0; i < o.Ndim; i++ {
			for j := 0; j < o.Ndim; j++ {
				o.F[ip][i][j] = 0
				for k := 0; k < o.Ndim; k++ {
					o.F[ip][i][j] += o.dxdχ.Get(i, k) * o.χdXi.Get(k, j)
				}
			}
		}
		o.J[ip] = o.Jxχ[ip] / JXχ

		// spatial shape derivatives: DN/Dx = DN/Dχ·(∂x/∂χ)⁻¹
		for m := 0; m < o.Nnode; m++ {
			for j := 0; j < o.Ndim; j++ {
				o.DNx[ip][m][j] = 0
				for k := 0; k < o.Ndim; k++ {
					o.DNx[ip][m][j] += dndr[ip][m][k] * o.χdxi.Get(k, j)
				}
			}
		}
	}
	return nil
}

// ReferenceVolume integrates the reference-configuration Jacobian, giving
// the element volume in the undeformed mesh
func (o *Kinematics) ReferenceVolume(X [][]float64, dndr [][][]float64, weights []float64) (V float64, err error) {
	for ip := 0; ip < o.Nip; ip++ {
		for i := 0; i < o.Ndim; i++ {
			for j := 0; j < o.Ndim; j++ {
				dX := 0.0
				for m := 0; m < o.Nnode; m++ {
					dX += X[m][i] * dndr[ip][m][j]
				}
				o.dXdχ.Set(i, j, dX)
			}
		}
		JXχ := la.MatInvSmall(o.χdXi, o.dXdχ, 0)
		if JXχ < MINDET {
			return 0, &ElementInversion{Eid: -1, Ip: ip, J: JXχ}
		}
		V += JXχ * weights[ip]
	}
	return
}
