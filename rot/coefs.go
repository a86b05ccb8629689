// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rot

import "math"

// The Deriv functions below give the coefficient functions of the rotation maps with their first
// and second derivatives in closed form; they feed the analytic linearisation of beam kinematics.

// thresholds below which the Deriv functions use series
const (
	derivSmallS = 1.0  // s = φ²
	derivSmallN = 0.05 // n = sin²(φ/2)
	derivNterms = 10   // number of terms in series
)

// ExpDeriv returns the values and the first and second derivatives w.r.t s = φ² of the
// coefficients c = sin(φ/2)/φ and w = cos(φ/2)
func ExpDeriv(s float64) (c, w [3]float64) {
	if s < derivSmallS {
		cc := make([]float64, derivNterms)
		cw := make([]float64, derivNterms)
		for k := 0; k < derivNterms; k++ {
			sgn := 1.0 - 2.0*float64(k%2)
			p := math.Pow(4, float64(k))
			cc[k] = sgn / (2.0 * p * factorial(2*k+1))
			cw[k] = sgn / (p * factorial(2*k))
		}
		return polyDeriv(s, cc), polyDeriv(s, cw)
	}
	φ := math.Sqrt(s)
	h := φ / 2.0
	c[0] = math.Sin(h) / φ
	w[0] = math.Cos(h)
	c[1] = (w[0]/2.0 - c[0]) / (2.0 * s)
	w[1] = -c[0] / 4.0
	c[2] = (-c[0]/8.0 - 3.0*c[1]) / (2.0 * s)
	w[2] = -c[1] / 4.0
	return
}

// JacDeriv returns the values and the first and second derivatives w.r.t s = φ² of the
// coefficients β = (1 - cos φ)/φ² and γ = (φ - sin φ)/φ³
func JacDeriv(s float64) (β, γ [3]float64) {
	if s < derivSmallS {
		cb := make([]float64, derivNterms)
		cg := make([]float64, derivNterms)
		for k := 0; k < derivNterms; k++ {
			sgn := 1.0 - 2.0*float64(k%2)
			cb[k] = sgn / factorial(2*k+2)
			cg[k] = sgn / factorial(2*k+3)
		}
		return polyDeriv(s, cb), polyDeriv(s, cg)
	}
	φ := math.Sqrt(s)
	a := math.Sin(φ) / φ
	cs := math.Cos(φ)
	da := (cs - a) / (2.0 * s)
	dda := (-a/2.0 - 3.0*da) / (2.0 * s)
	β[0] = (1.0 - cs) / s
	β[1] = (a/2.0 - β[0]) / s
	β[2] = (da/2.0 - 2.0*β[1]) / s
	γ[0] = (1.0 - a) / s
	γ[1] = (-da - γ[0]) / s
	γ[2] = (-dda - 2.0*γ[1]) / s
	return
}

// AsinDeriv returns the value and the first and second derivatives of f(n) = asin(√n)/√n.
// For a unit quaternion {v, w} with w ≥ 0, the rotation vector is θ = 2 f(|v|²) v
func AsinDeriv(n float64) (f [3]float64) {
	if n < derivSmallN {
		cf := make([]float64, derivNterms)
		b := 1.0
		for k := 0; k < derivNterms; k++ {
			cf[k] = b / float64(2*k+1)
			b *= float64(2*k+1) / float64(2*k+2)
		}
		return polyDeriv(n, cf)
	}
	x := math.Sqrt(n)
	g := 1.0 / math.Sqrt(1.0-n)
	dg := g * g * g / 2.0
	f[0] = math.Asin(x) / x
	f[1] = (g - f[0]) / (2.0 * n)
	f[2] = (dg - 3.0*f[1]) / (2.0 * n)
	return
}

// SrDeriv returns the value and the first and second derivatives of p(c) = 1/√(2(1+c)); i.e. the
// normalisation factor of the quaternion of the smallest rotation
func SrDeriv(c float64) (p [3]float64) {
	u := 2.0 * (1.0 + c)
	p[0] = 1.0 / math.Sqrt(u)
	p[1] = -p[0] / u
	p[2] = -3.0 * p[1] / u
	return
}

// polyDeriv evaluates a polynomial and its first two derivatives
func polyDeriv(x float64, c []float64) (res [3]float64) {
	for k := len(c) - 1; k >= 0; k-- {
		res[2] = res[2]*x + 2.0*res[1]
		res[1] = res[1]*x + res[0]
		res[0] = res[0]*x + c[k]
	}
	return
}

func factorial(n int) (res float64) {
	res = 1
	for i := 2; i <= n; i++ {
		res *= float64(i)
	}
	return
}
