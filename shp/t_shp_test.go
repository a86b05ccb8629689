// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/diff/fd"
)

func Test_shp01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shp01. line shapes")

	for _, name := range []string{"lin2", "lin3"} {
		s := Get(name)
		CheckShape(tst, s, 1e-15, chk.Verbose)
		for _, r := range []float64{-0.7, 0, 0.3, 0.9} {
			CheckDSdR(tst, s, r, 1e-9, chk.Verbose)
		}
	}
	d := Get("lin2dual")
	CheckDSdR(tst, d, 0.2, 1e-9, chk.Verbose)
	CheckBiorthogonality(tst, d, Get("lin2"), 1e-15, chk.Verbose)
}

func Test_shp02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shp02. Lagrange and Hermite")

	ξ := []float64{-1, 1, 0}
	L := make([]float64, 3)
	dL := make([]float64, 3)
	s := Get("lin3")
	for _, r := range []float64{-1, -0.4, 0.1, 0.6, 1} {
		Lagrange(L, dL, ξ, r)
		s.Calc(r, true)
		chk.Array(tst, "L", 1e-15, L, s.S)
		chk.Array(tst, "dL", 1e-15, dL, s.DSdR)
	}

	H := make([]float64, 4)
	dH := make([]float64, 4)
	ddH := make([]float64, 4)
	Hermite(H, dH, ddH, -1)
	chk.Array(tst, "H(-1)", 1e-15, H, []float64{1, 0, 0, 0})
	chk.Array(tst, "dH(-1)", 1e-15, dH, []float64{0, 1, 0, 0})
	Hermite(H, dH, ddH, 1)
	chk.Array(tst, "H(+1)", 1e-15, H, []float64{0, 0, 1, 0})
	chk.Array(tst, "dH(+1)", 1e-15, dH, []float64{0, 0, 0, 1})
	for k := 0; k < 4; k++ {
		for _, r := range []float64{-0.5, 0.25, 0.8} {
			Hermite(H, dH, ddH, r)
			d := fd.Derivative(func(x float64) float64 {
				h := make([]float64, 4)
				Hermite(h, nil, nil, x)
				return h[k]
			}, r, &fd.Settings{Formula: fd.Central, Step: 1e-5})
			dd := fd.Derivative(func(x float64) float64 {
				h := make([]float64, 4)
				dh := make([]float64, 4)
				Hermite(h, dh, nil, x)
				return dh[k]
			}, r, &fd.Settings{Formula: fd.Central, Step: 1e-5})
			chk.Float64(tst, io.Sf("dH%d", k), 1e-9, dH[k], d)
			chk.Float64(tst, io.Sf("ddH%d", k), 1e-9, ddH[k], dd)
		}
	}
}

func Test_shp03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shp03. Gauss-Legendre")

	for n := 1; n <= 5; n++ {
		pts, wts := GaussLegendre(n)
		var sw float64
		for _, w := range wts {
			sw += w
		}
		chk.Float64(tst, "Σw", 1e-14, sw, 2)

		// exact for polynomials up to degree 2n-1
		p := 2*n - 1
		var res float64
		for i, x := range pts {
			res += math.Pow(x+1, float64(p)) * wts[i]
		}
		chk.Float64(tst, io.Sf("∫(x+1)^%d", p), 1e-12, res, math.Pow(2, float64(p+1))/float64(p+1))
	}
}
