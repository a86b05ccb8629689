// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package triad implements the interpolation of material triads from collocation points.
// The nodal triads are expressed as rotations relative to a reference triad Λ_r:
//
//	Ψ_i = log(Λ_rᵀ Λ_i)   Ψ(ξ) = Σ L_i(ξ) Ψ_i   Λ(ξ) = Λ_r exp(Ψ(ξ))
//
// which gives an objective (frame-invariant) triad field
package triad

import (
	"github.com/cpmech/beamcontact/ad"
	"github.com/cpmech/beamcontact/rot"
	"github.com/cpmech/gosl/chk"
)

// Field holds the relative rotation vectors of an interpolated triad field
type Field[T ad.Scalar[T]] struct {
	Qr   rot.Quat[T]  // reference triad
	Iref int          // index of the collocation point holding the reference triad
	Psi  []rot.Vec[T] // relative rotation vectors at collocation points
}

// NewField computes the relative rotation vectors of the collocation point triads qcp with respect
// to the triad of collocation point iref
func NewField[T ad.Scalar[T]](qcp []rot.Quat[T], iref int) *Field[T] {
	if iref < 0 || iref >= len(qcp) {
		chk.Panic("index of reference collocation point %d is out of range [0, %d)", iref, len(qcp))
	}
	o := &Field[T]{Qr: qcp[iref], Iref: iref, Psi: make([]rot.Vec[T], len(qcp))}
	cr := rot.QuatConj(o.Qr)
	for i, q := range qcp {
		if i == iref {
			o.Psi[i] = rot.Zero[T]()
			continue
		}
		o.Psi[i] = rot.QuatToRotvec(rot.QuatProduct(cr, q))
	}
	return o
}

// Interp returns Ψ(ξ) and dΨ/dξ given the Lagrange polynomials L and their derivatives dL at ξ
func (o *Field[T]) Interp(L, dL []float64) (ψ, dψ rot.Vec[T]) {
	ψ = rot.Zero[T]()
	dψ = rot.Zero[T]()
	for i, p := range o.Psi {
		if i == o.Iref {
			continue
		}
		ψ = rot.Add(ψ, rot.ScaleF(L[i], p))
		dψ = rot.Add(dψ, rot.ScaleF(dL[i], p))
	}
	return
}

// Quat returns the quaternion of the triad Λ_r exp(ψ)
func (o *Field[T]) Quat(ψ rot.Vec[T]) rot.Quat[T] {
	return rot.QuatProduct(o.Qr, rot.RotvecToQuat(ψ))
}

// Curvature returns the material curvature vector K = Jr(Ψ) Ψ' (derivative w.r.t. the parameter ξ);
// i.e. the axial vector of Λᵀ dΛ/dξ
func Curvature[T ad.Scalar[T]](ψ, dψ rot.Vec[T]) rot.Vec[T] {
	return rot.JrTimes(ψ, dψ)
}
