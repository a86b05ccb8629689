// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/beamcontact/inp"
	"github.com/cpmech/gosl/chk"
)

// DynCoefs calculates θ-method and Newmark's coefficients.
//
//	Newmark's method:
//	 ζ = α1 u + α2 v + α3 a      a_new = α1 u_new - ζ
//	 χ = α4 u + α5 v + α6 a      v_new = α4 u_new - χ
type DynCoefs struct {

	// input
	θ1, θ2 float64 // Newmark's coefficients
	hmin   float64 // minimum h (Δt)

	// derived
	α1, α2, α3, α4, α5, α6 float64
}

// Init initialises this structure
func (o *DynCoefs) Init(dat *inp.SolverData) {
	o.θ1, o.θ2 = dat.Theta1, dat.Theta2
	o.hmin = dat.DtMin
}

// CalcBoth computes the Newmark coefficients for given time increment Δt
func (o *DynCoefs) CalcBoth(Δt float64) (err error) {
	h := Δt
	if h < o.hmin {
		return chk.Err("θ-method requires h >= %g; h = %g is incorrect", o.hmin, h)
	}
	if o.θ1 < 0.0001 || o.θ1 > 1.0 {
		return chk.Err("θ1 must be between 0.0001 and 1.0; θ1 = %g is incorrect", o.θ1)
	}
	if o.θ2 < 0.0001 || o.θ2 > 1.0 {
		return chk.Err("θ2 must be between 0.0001 and 1.0; θ2 = %g is incorrect", o.θ2)
	}
	H := h * h / 2.0
	o.α1 = 1.0 / (o.θ2 * H)
	o.α2 = h / (o.θ2 * H)
	o.α3 = 1.0/o.θ2 - 1.0
	o.α4 = o.θ1 * h / (o.θ2 * H)
	o.α5 = 2.0*o.θ1/o.θ2 - 1.0
	o.α6 = (o.θ1/o.θ2 - 1.0) * h
	return
}

// GetAlps returns α1, α2, α3, α4, α5 and α6
func (o *DynCoefs) GetAlps() (α1, α2, α3, α4, α5, α6 float64) {
	return o.α1, o.α2, o.α3, o.α4, o.α5, o.α6
}
