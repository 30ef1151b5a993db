// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/ATPChina/MyGoFEM/msolid"
)

// ElementForceAndStiffness computes the internal force vector and tangent
// stiffness contributions of one element and commits them to the global
// buffers: the force is summed into fb at the element's equation numbers and
// the stiffness is written as triplets at the element's pre-assigned offset.
//
// Three stiffness terms are produced: the constitutive and geometric terms,
// accumulated over Gauss points into the dense element matrix and written as
// ndofe² triplets, and the mean-dilatation term, written as one ndim² block
// per node pair. Plastic internal variables of this element's Gauss points
// are updated as a side effect of the constitutive evaluation.
func (o *ElemGroup) ElementForceAndStiffness(iele int, d *Domain) (err error) {

	e := o.Eles[iele]
	o.gatherCoords(e, d.Nodes)

	// kinematics for all Gauss points
	err = o.Kin.ComputeGradients(o.xl, o.Xl, o.Dndr)
	if err != nil {
		var einv *ElementInversion
		if errors.As(err, &einv) {
			einv.Eid = e.Id
			einv.Inc = d.Rhi.Incr
		}
		return err
	}

	// element mean dilatation kinematics: deformed volume and averaged
	// spatial shape gradients
	ve := 0.0
	for m := range o.dnxMean {
		utl.Fill(o.dnxMean[m], 0)
	}
	for ip := 0; ip < o.Ngauss; ip++ {
		JW := o.Kin.Jxχ[ip] * o.Wgt[ip]
		ve += JW
		for m := 0; m < o.Nnode; m++ {
			for i := 0; i < o.Ndim; i++ {
				o.dnxMean[m][i] += o.Kin.DNx[ip][m][i] * JW
			}
		}
	}
	for m := 0; m < o.Nnode; m++ {
		for i := 0; i < o.Ndim; i++ {
			o.dnxMean[m][i] /= ve
		}
	}
	Jbar := ve / e.Ve
	press, kappaBar := o.Large.MeanDilatation(Jbar)

	// Gauss loop: constitutive update, internal force, constitutive and
	// geometric stiffness terms
	for r := range o.K {
		utl.Fill(o.K[r], 0)
	}
	utl.Fill(o.Fi, 0)
	for ip := 0; ip < o.Ngauss; ip++ {

		// stresses, elasticity tensor and plastic-state update
		s := o.Pstore.At(iele, ip)
		err = o.Large.Update(o.σ, o.cc, o.Kin.F[ip], s)
		if err != nil {
			var rdiv *msolid.ReturnDivergence
			if errors.As(err, &rdiv) {
				return &PlastReturn{Inc: d.Rhi.Incr, Eid: e.Id, Ip: ip, Inner: err}
			}
			return err
		}

		// add mean-dilatation pressure to stress and elasticity tensor
		for i := 0; i < o.Ndim; i++ {
			for j := 0; j < o.Ndim; j++ {
				o.σ[i][j] += press * d.It.I[i][j]
				for k := 0; k < o.Ndim; k++ {
					for l := 0; l < o.Ndim; l++ {
						o.cc[i][j][k][l] += press * (d.It.C1[i][j][k][l] - d.It.C2[i][j][k][l])
					}
				}
			}
		}

		// integration multiplier
		JW := o.Kin.Jxχ[ip] * o.Wgt[ip]
		G := o.Kin.DNx[ip]

		// internal force: fi += JW·σ·G
		for m := 0; m < o.Nnode; m++ {
			for i := 0; i < o.Ndim; i++ {
				for j := 0; j < o.Ndim; j++ {
					o.Fi[m*o.Ndim+i] += JW * o.σ[i][j] * G[m][j]
				}
			}
		}

		// constitutive term: K += JW·Gᵀ·c·G
		for a := 0; a < o.Nnode; a++ {
			for b := 0; b < o.Nnode; b++ {
				for i := 0; i < o.Ndim; i++ {
					for j := 0; j < o.Ndim; j++ {
						kc := 0.0
						for k := 0; k < o.Ndim; k++ {
							for l := 0; l < o.Ndim; l++ {
								kc += G[a][k] * o.cc[i][k][j][l] * G[b][l]
							}
						}
						o.K[a*o.Ndim+i][b*o.Ndim+j] += JW * kc
					}
				}
			}
		}

		// geometric term: K += JW·(Gᵀ·σ·G)·δij (Kronecker block expansion)
		for a := 0; a < o.Nnode; a++ {
			for b := 0; b < o.Nnode; b++ {
				gsg := 0.0
				for k := 0; k < o.Ndim; k++ {
					for l := 0; l < o.Ndim; l++ {
						gsg += G[a][k] * o.σ[k][l] * G[b][l]
					}
				}
				for i := 0; i < o.Ndim; i++ {
					o.K[a*o.Ndim+i][b*o.Ndim+i] += JW * gsg
				}
			}
		}
	}

	// commit internal force into the global vector
	for r, I := range e.Umap {
		d.Rhi.Tint[I] += o.Fi[r]
	}

	// commit element stiffness triplets at this element's write region
	if d.kbcur != e.KbOff {
		chk.Panic("triplet cursor is out of step with the write region of element %d. %d != %d", e.Id, d.kbcur, e.KbOff)
	}
	for r, I := range e.Umap {
		for c, J := range e.Umap {
			d.Kb.Put(I, J, o.K[r][c])
			d.kbcur++
		}
	}

	// mean-dilatation term: κ̄·ve·(DN̄a ⊗ DN̄b), one block per node pair
	for b := 0; b < o.Nnode; b++ {
		for a := 0; a < o.Nnode; a++ {
			for i := 0; i < o.Ndim; i++ {
				for j := 0; j < o.Ndim; j++ {
					I := e.Umap[a*o.Ndim+i]
					J := e.Umap[b*o.Ndim+j]
					d.Kb.Put(I, J, kappaBar*ve*o.dnxMean[a][i]*o.dnxMean[b][j])
					d.kbcur++
				}
			}
		}
	}
	return nil
}
