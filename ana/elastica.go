// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// EndMomentArc implements the solution of a straight cantilever (clamped at x=0, axis along x) loaded
// by a moment about z at the free end. The exact deformed shape is a circular arc with curvature
// κ = M/EI, which also holds for a prescribed tip rotation φ = κ L with zero tip force
type EndMomentArc struct {
	L  float64 // length of beam
	EI float64 // bending stiffness
	M  float64 // end moment
	κ  float64 // curvature
}

// Init initialises structure with the end moment
func (o *EndMomentArc) Init(L, EI, M float64) {
	if L <= 0 || EI <= 0 {
		chk.Panic("length and bending stiffness must be positive. L=%g, EI=%g are invalid", L, EI)
	}
	o.L, o.EI, o.M = L, EI, M
	o.κ = M / EI
}

// InitRotation initialises structure with a prescribed tip rotation φ
func (o *EndMomentArc) InitRotation(L, EI, φ float64) {
	o.Init(L, EI, EI*φ/L)
}

// Curvature returns the (constant) curvature
func (o EndMomentArc) Curvature() float64 { return o.κ }

// Moment returns the (constant) bending moment along the beam, including the fixed end
func (o EndMomentArc) Moment() float64 { return o.M }

// Rotation returns the rotation of the cross-section at arc-length s
func (o EndMomentArc) Rotation(s float64) float64 { return o.κ * s }

// Position returns the deformed position of the material point at arc-length s
func (o EndMomentArc) Position(s float64) (x, y float64) {
	φ := o.κ * s
	if math.Abs(φ) < 1e-8 {
		return s - o.κ*o.κ*s*s*s/6.0, o.κ * s * s / 2.0
	}
	return math.Sin(φ) / o.κ, (1.0 - math.Cos(φ)) / o.κ
}

// Tip returns the position of the free end
func (o EndMomentArc) Tip() (x, y float64) {
	return o.Position(o.L)
}

// CantileverTipLoad returns the small-deflection tip displacement and rotation of a cantilever
// with a transverse tip load P
func CantileverTipLoad(L, EI, P float64) (δ, φ float64) {
	δ = P * L * L * L / (3.0 * EI)
	φ = P * L * L / (2.0 * EI)
	return
}

// CantileverSelfWeight returns the small-deflection tip displacement of a cantilever under a
// uniformly distributed transverse load q
func CantileverSelfWeight(L, EI, q float64) (δ float64) {
	return q * L * L * L * L / (8.0 * EI)
}
