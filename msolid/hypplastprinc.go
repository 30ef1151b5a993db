// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/num"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/mat"
)

// HypPlastPrinc implements a hyperelastic-plastic model evaluated in
// principal directions: logarithmic elastic stretches of the trial left
// Cauchy-Green tensor, von Mises yield surface with isotropic hardening and
// a radial return in principal Kirchhoff space. The Gauss-point response is
// deviatoric; the volumetric part is supplied per element through the mean
// dilatation pressure.
type HypPlastPrinc struct {

	// constants
	Ndim  int     // space dimension
	Fzero float64 // zero yield function value
	EvTol float64 // relative tolerance to detect repeated eigenvalues

	// parameters
	μ    float64 // shear modulus
	λ    float64 // Lamé parameter
	κ    float64 // bulk modulus
	τy0  float64 // initial yield stress
	hh   float64 // linear hardening modulus
	τinf float64 // saturation yield stress (0 => no saturation term)
	δ    float64 // saturation exponent

	// original parameters
	prms dbf.Params

	// return-mapping state (set before each local solve)
	qtr float64 // trial equivalent Kirchhoff stress
	epn float64 // equivalent plastic strain at start of update

	// scratchpad
	f3, fi, betr, be, aux *la.Matrix  // [3][3] tensors
	ncp                   *la.Matrix  // [3][3] principal directions (columns)
	vals                  []float64   // [3] eigenvalues of betr (trial λe²)
	εtr, τtr, τ, εe       []float64   // [3] principal values
	dd                    [][]float64 // [3][3] Dαβ = ∂τα/∂εtrβ
	x                     []float64   // [1] return-mapping unknown Δγ
	sym                   *mat.SymDense
	vecs                  mat.Dense
	eig                   mat.EigenSym

	// local nonlinear solver
	nls num.NlSolver
}

// add model to factory
func init() {
	allocators["hyp-plast-princ"] = func() Model { return new(HypPlastPrinc) }
}

// Init initialises model
func (o *HypPlastPrinc) Init(ndim int, prms dbf.Params) (err error) {

	// constants
	o.Ndim = ndim
	o.Fzero = 1e-9
	o.EvTol = 1e-7

	// parameters
	o.prms = prms
	var E, ν float64
	nrmit, rmtol := 20.0, 1e-10
	for _, p := range prms {
		switch p.N {
		case "mu":
			o.μ = p.V
		case "lam":
			o.λ = p.V
		case "K":
			o.κ = p.V
		case "E":
			E = p.V
		case "nu":
			ν = p.V
		case "ty0":
			o.τy0 = p.V
		case "H":
			o.hh = p.V
		case "tinf":
			o.τinf = p.V
		case "del":
			o.δ = p.V
		case "nrmit":
			nrmit = p.V
		case "rmtol":
			rmtol = p.V
		}
	}
	if E > 0 {
		o.μ = E / (2.0 * (1.0 + ν))
		o.λ = E * ν / ((1.0 + ν) * (1.0 - 2.0*ν))
	}
	if o.μ <= 0 {
		return chk.Err("shear modulus must be positive. mu=%g is invalid", o.μ)
	}
	if o.κ <= 0 {
		o.κ = o.λ + 2.0*o.μ/3.0
	}
	if o.κ <= 0 {
		return chk.Err("bulk modulus must be positive. K=%g is invalid", o.κ)
	}
	if o.τy0 <= 0 {
		o.τy0 = math.MaxFloat64 // purely hyperelastic
	}

	// scratchpad
	o.f3 = la.NewMatrix(3, 3)
	o.fi = la.NewMatrix(3, 3)
	o.betr = la.NewMatrix(3, 3)
	o.be = la.NewMatrix(3, 3)
	o.aux = la.NewMatrix(3, 3)
	o.ncp = la.NewMatrix(3, 3)
	o.vals = make([]float64, 3)
	o.εtr = make([]float64, 3)
	o.τtr = make([]float64, 3)
	o.τ = make([]float64, 3)
	o.εe = make([]float64, 3)
	o.dd = utl.Alloc(3, 3)
	o.x = make([]float64, 1)
	o.sym = mat.NewSymDense(3, nil)

	// local nonlinear solver
	useDn, numJ := true, false
	o.nls.Init(1, o.ffcn, nil, o.Jfcn, useDn, numJ, map[string]float64{
		"maxIt": nrmit,
		"ftol":  rmtol,
	})
	return
}

// GetPrms gets parameters
func (o *HypPlastPrinc) GetPrms() dbf.Params {
	return o.prms
}

// Shear returns the shear modulus
func (o *HypPlastPrinc) Shear() float64 { return o.μ }

// Kappa returns the bulk modulus
func (o *HypPlastPrinc) Kappa() float64 { return o.κ }

// MeanDilatation returns the element pressure and effective bulk modulus
// from the element-averaged Jacobian ratio Jbar = v/V
func (o *HypPlastPrinc) MeanDilatation(Jbar float64) (press, kappaBar float64) {
	press = o.κ * math.Log(Jbar) / Jbar
	kappaBar = o.κ/Jbar - press
	return
}

// yield returns the yield stress at equivalent plastic strain ep
func (o *HypPlastPrinc) yield(ep float64) float64 {
	y := o.τy0 + o.hh*ep
	if o.δ > 0 {
		y += (o.τinf - o.τy0) * (1.0 - math.Exp(-o.δ*ep))
	}
	return y
}

// hard returns the hardening modulus dτy/dep at ep
func (o *HypPlastPrinc) hard(ep float64) float64 {
	h := o.hh
	if o.δ > 0 {
		h += o.δ * (o.τinf - o.τy0) * math.Exp(-o.δ*ep)
	}
	return h
}

// ffcn is the return-mapping residual: consistency at Δγ = x[0]
func (o *HypPlastPrinc) ffcn(fx, x la.Vector) {
	fx[0] = o.qtr - 3.0*o.μ*x[0] - o.yield(o.epn+x[0])
}

// Jfcn is the return-mapping Jacobian
func (o *HypPlastPrinc) Jfcn(J *la.Matrix, x la.Vector) {
	J.Set(0, 0, -3.0*o.μ-o.hard(o.epn+x[0]))
}

// retmap runs the local Newton solve for Δγ, converting solver panics into
// errors so the caller can decide on increment cutback
func (o *HypPlastPrinc) retmap() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("%v", r)
		}
	}()
	o.nls.Solve(o.x, true)
	return
}

// Update computes the deviatoric Cauchy stress σ [ndim][ndim] and spatial
// elasticity tensor c [ndim][ndim][ndim][ndim] at one Gauss point from the
// deformation gradient F [ndim][ndim], updating the plastic variables in s
func (o *HypPlastPrinc) Update(σ [][]float64, c [][][][]float64, F [][]float64, s *PlastState) (err error) {

	// deformation gradient embedded in 3D (plane strain when ndim == 2)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			o.f3.Set(i, j, 0)
		}
		o.f3.Set(i, i, 1)
	}
	for i := 0; i < o.Ndim; i++ {
		for j := 0; j < o.Ndim; j++ {
			o.f3.Set(i, j, F[i][j])
		}
	}

	// J and F⁻¹
	J := la.MatInvSmall(o.fi, o.f3, 0)
	if J < 1e-14 {
		return chk.Err("determinant of deformation gradient is non-positive. J=%g", J)
	}

	// trial elastic left Cauchy-Green tensor: betr = F·invCp·Fᵀ
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v := 0.0
			for k := 0; k < 3; k++ {
				v += o.f3.Get(i, k) * s.InvCp[k][j]
			}
			o.aux.Set(i, j, v)
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v := 0.0
			for k := 0; k < 3; k++ {
				v += o.aux.Get(i, k) * o.f3.Get(j, k)
			}
			o.betr.Set(i, j, v)
		}
	}

	// spectral decomposition: betr = Σ λtr² n⊗n
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			o.sym.SetSym(i, j, o.betr.Get(i, j))
		}
	}
	if !o.eig.Factorize(o.sym, true) {
		return chk.Err("eigen-decomposition of trial elastic tensor failed")
	}
	o.eig.Values(o.vals)
	o.eig.VectorsTo(&o.vecs)
	for i := 0; i < 3; i++ {
		for a := 0; a < 3; a++ {
			o.ncp.Set(i, a, o.vecs.At(i, a))
		}
	}

	// principal trial logarithmic strains and deviatoric Kirchhoff stress
	var trε float64
	for a := 0; a < 3; a++ {
		if o.vals[a] < 1e-14 {
			return chk.Err("trial elastic stretch is non-positive. λ²=%g", o.vals[a])
		}
		o.εtr[a] = 0.5 * math.Log(o.vals[a])
		trε += o.εtr[a]
	}
	var qtr float64
	for a := 0; a < 3; a++ {
		o.τtr[a] = 2.0 * o.μ * (o.εtr[a] - trε/3.0)
		qtr += o.τtr[a] * o.τtr[a]
	}
	qtr = math.Sqrt(1.5 * qtr)

	// yield check and radial return
	Δγ := 0.0
	if qtr-o.yield(s.Epbar) > o.Fzero {
		o.qtr, o.epn = qtr, s.Epbar
		o.x[0] = (qtr - o.yield(s.Epbar)) / (3.0*o.μ + o.hard(s.Epbar))
		err = o.retmap()
		if err != nil || o.x[0] < 0 {
			return &ReturnDivergence{Model: "hyp-plast-princ", Qtr: qtr, Inner: err}
		}
		Δγ = o.x[0]
	}
	fac := 1.0
	if Δγ > 0 {
		fac = 1.0 - 3.0*o.μ*Δγ/qtr
	}
	for a := 0; a < 3; a++ {
		o.τ[a] = fac * o.τtr[a]
		o.εe[a] = o.τ[a]/(2.0*o.μ) + trε/3.0
	}
	epNew := s.Epbar + Δγ

	// deviatoric Cauchy stress
	for i := 0; i < o.Ndim; i++ {
		for j := 0; j < o.Ndim; j++ {
			σ[i][j] = 0
			for a := 0; a < 3; a++ {
				σ[i][j] += o.τ[a] / J * o.ncp.Get(i, a) * o.ncp.Get(j, a)
			}
		}
	}

	// write updated internal variables back: invCp = F⁻¹·be·F⁻ᵀ
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v := 0.0
			for a := 0; a < 3; a++ {
				v += math.Exp(2.0*o.εe[a]) * o.ncp.Get(i, a) * o.ncp.Get(j, a)
			}
			o.be.Set(i, j, v)
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v := 0.0
			for k := 0; k < 3; k++ {
				v += o.fi.Get(i, k) * o.be.Get(k, j)
			}
			o.aux.Set(i, j, v)
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s.InvCp[i][j] = 0
			for k := 0; k < 3; k++ {
				s.InvCp[i][j] += o.aux.Get(i, k) * o.fi.Get(j, k)
			}
		}
	}
	s.Epbar = epNew

	// consistent principal moduli Dαβ = ∂τα/∂εtrβ
	corr := 0.0
	if Δγ > 0 {
		corr = 9.0 * o.μ * o.μ * (1.0/(3.0*o.μ+o.hard(epNew)) - Δγ/qtr)
	}
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			kr := 0.0
			if a == b {
				kr = 1.0
			}
			o.dd[a][b] = 2.0 * o.μ * fac * (kr - 1.0/3.0)
			if Δγ > 0 {
				o.dd[a][b] -= corr * (o.τtr[a] / qtr) * (o.τtr[b] / qtr)
			}
		}
	}

	// spatial elasticity tensor (deviatoric part) in principal form
	for i := 0; i < o.Ndim; i++ {
		for j := 0; j < o.Ndim; j++ {
			for k := 0; k < o.Ndim; k++ {
				for l := 0; l < o.Ndim; l++ {
					c[i][j][k][l] = 0
				}
			}
		}
	}
	evmax := math.Max(o.vals[0], math.Max(o.vals[1], o.vals[2]))
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			cc := o.dd[a][b] / J
			if a == b {
				cc -= 2.0 * o.τ[a] / J
			}
			for i := 0; i < o.Ndim; i++ {
				for j := 0; j < o.Ndim; j++ {
					for k := 0; k < o.Ndim; k++ {
						for l := 0; l < o.Ndim; l++ {
							c[i][j][k][l] += cc * o.ncp.Get(i, a) * o.ncp.Get(j, a) * o.ncp.Get(k, b) * o.ncp.Get(l, b)
						}
					}
				}
			}
			if a == b {
				continue
			}
			var μab float64
			if math.Abs(o.vals[a]-o.vals[b]) > o.EvTol*evmax {
				μab = (o.τ[a]*o.vals[b] - o.τ[b]*o.vals[a]) / (J * (o.vals[a] - o.vals[b]))
			} else {
				μab = (o.dd[a][a]-o.dd[a][b])/(2.0*J) - o.τ[a]/J
			}
			for i := 0; i < o.Ndim; i++ {
				for j := 0; j < o.Ndim; j++ {
					for k := 0; k < o.Ndim; k++ {
						for l := 0; l < o.Ndim; l++ {
							c[i][j][k][l] += μab * o.ncp.Get(i, a) * o.ncp.Get(j, b) *
								(o.ncp.Get(k, a)*o.ncp.Get(l, b) + o.ncp.Get(k, b)*o.ncp.Get(l, a))
						}
					}
				}
			}
		}
	}
	return
}
