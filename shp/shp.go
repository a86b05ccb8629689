// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements one-dimensional shape functions for beams and mortar segments and
// Gauss-Legendre integration rules
package shp

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/integrate/quad"
)

// ShpFunc is a shape function evaluator: computes S(r) and, if derivs, dSdR(r)
type ShpFunc func(S, dSdR []float64, r float64, derivs bool)

// Shape holds data for the evaluation of 1D shape functions over r ∈ [-1, 1]
type Shape struct {
	Type      string    // name of shape; e.g. "lin2", "lin2dual", "lin3"
	Nverts    int       // number of vertices (or basis functions)
	NatCoords []float64 // natural coordinates of vertices
	Func      ShpFunc   // shape functions and derivatives evaluator
	Dual      bool      // dual (biorthogonal) functions for Lagrange multipliers

	// scratchpad
	S    []float64 // [nverts] shape functions
	DSdR []float64 // [nverts] derivatives of shape functions
}

// Get returns a new Shape structure
func Get(name string) *Shape {
	tmp, ok := factory[name]
	if !ok {
		chk.Panic("cannot find shape named %q", name)
	}
	return &Shape{
		Type:      tmp.Type,
		Nverts:    tmp.Nverts,
		NatCoords: tmp.NatCoords,
		Func:      tmp.Func,
		Dual:      tmp.Dual,
		S:         make([]float64, tmp.Nverts),
		DSdR:      make([]float64, tmp.Nverts),
	}
}

// Available tells whether the shape named name exists
func Available(name string) bool {
	_, ok := factory[name]
	return ok
}

// Calc computes S and dSdR at r
func (o *Shape) Calc(r float64, derivs bool) {
	o.Func(o.S, o.DSdR, r, derivs)
}

// factory holds all shapes
var factory = map[string]*Shape{
	"lin2":     {Type: "lin2", Nverts: 2, NatCoords: []float64{-1, 1}, Func: FuncLin2},
	"lin2dual": {Type: "lin2dual", Nverts: 2, NatCoords: []float64{-1, 1}, Func: FuncLin2Dual, Dual: true},
	"lin3":     {Type: "lin3", Nverts: 3, NatCoords: []float64{-1, 1, 0}, Func: FuncLin3},
}

// FuncLin2 computes the linear shape functions
//
//	-1     0    +1
//	 0-----------1-->r
func FuncLin2(S, dSdR []float64, r float64, derivs bool) {
	S[0] = 0.5 * (1.0 - r)
	S[1] = 0.5 * (1.0 + r)
	if !derivs {
		return
	}
	dSdR[0] = -0.5
	dSdR[1] = 0.5
}

// FuncLin2Dual computes dual (biorthogonal) linear shape functions satisfying
//
//	∫ Φ_i N_j dr = δ_ij ∫ N_j dr
func FuncLin2Dual(S, dSdR []float64, r float64, derivs bool) {
	S[0] = 0.5 * (1.0 - 3.0*r)
	S[1] = 0.5 * (1.0 + 3.0*r)
	if !derivs {
		return
	}
	dSdR[0] = -1.5
	dSdR[1] = 1.5
}

// FuncLin3 computes the quadratic shape functions
//
//	-1     0    +1
//	 0-----2-----1-->r
func FuncLin3(S, dSdR []float64, r float64, derivs bool) {
	S[0] = 0.5 * (r*r - r)
	S[1] = 0.5 * (r*r + r)
	S[2] = 1.0 - r*r
	if !derivs {
		return
	}
	dSdR[0] = r - 0.5
	dSdR[1] = r + 0.5
	dSdR[2] = -2.0 * r
}

// Lagrange computes the Lagrange polynomials L_i(r) over the points ξ and their derivatives
func Lagrange(L, dLdR []float64, ξ []float64, r float64) {
	n := len(ξ)
	for i := 0; i < n; i++ {
		L[i] = 1
		dLdR[i] = 0
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			L[i] *= (r - ξ[j]) / (ξ[i] - ξ[j])
			p := 1.0 / (ξ[i] - ξ[j])
			for k := 0; k < n; k++ {
				if k == i || k == j {
					continue
				}
				p *= (r - ξ[k]) / (ξ[i] - ξ[k])
			}
			dLdR[i] += p
		}
	}
}

// Hermite computes the cubic Hermite functions over r ∈ [-1, 1] and their first and second derivatives.
// The centreline reads r(ξ) = H0 d1 + H1 (L/2) t1 + H2 d2 + H3 (L/2) t2
func Hermite(H, dH, ddH []float64, r float64) {
	a, b := 1.0-r, 1.0+r
	H[0] = a * a * (2.0 + r) / 4.0
	H[1] = a * a * b / 4.0
	H[2] = b * b * (2.0 - r) / 4.0
	H[3] = -b * b * a / 4.0
	if dH != nil {
		dH[0] = 0.75 * (r*r - 1.0)
		dH[1] = (3.0*r*r - 2.0*r - 1.0) / 4.0
		dH[2] = 0.75 * (1.0 - r*r)
		dH[3] = (3.0*r*r + 2.0*r - 1.0) / 4.0
	}
	if ddH != nil {
		ddH[0] = 1.5 * r
		ddH[1] = (3.0*r - 1.0) / 2.0
		ddH[2] = -1.5 * r
		ddH[3] = (3.0*r + 1.0) / 2.0
	}
}

// GaussLegendre returns the n-point Gauss-Legendre rule over [-1, 1]
func GaussLegendre(n int) (pts, wts []float64) {
	if n < 1 {
		chk.Panic("number of Gauss points must be positive. n=%d is invalid", n)
	}
	pts = make([]float64, n)
	wts = make([]float64, n)
	quad.Legendre{}.FixedLocations(pts, wts, -1, 1)
	return
}
