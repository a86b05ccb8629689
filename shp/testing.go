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
	"gonum.org/v1/gonum/mat"
)

// CheckShape checks that (non-dual) shape functions evaluate to 1.0 @ nodes
func CheckShape(tst *testing.T, shape *Shape, tol float64, verbose bool) {

	// loop over all vertices
	errS := 0.0
	for n := 0; n < shape.Nverts; n++ {

		// compute function @ vertex
		shape.Calc(shape.NatCoords[n], false)

		// check
		if verbose {
			io.Pf("S = %v\n", shape.S)
		}
		for m := 0; m < shape.Nverts; m++ {
			if n == m {
				errS += math.Abs(shape.S[m] - 1.0)
			} else {
				errS += math.Abs(shape.S[m])
			}
		}
	}

	// error
	if errS > tol {
		tst.Errorf("%s failed with err = %g\n", shape.Type, errS)
		return
	}
}

// CheckBiorthogonality checks ∫ Φ_i N_j dr = δ_ij ∫ N_j dr for dual shapes
func CheckBiorthogonality(tst *testing.T, dual, std *Shape, tol float64, verbose bool) {
	pts, wts := GaussLegendre(4)
	n := dual.Nverts
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var lhs, rhs float64
			for k, r := range pts {
				dual.Calc(r, false)
				std.Calc(r, false)
				lhs += dual.S[i] * std.S[j] * wts[k]
				if i == j {
					rhs += std.S[j] * wts[k]
				}
			}
			if verbose {
				io.Pf("∫Φ%d N%d = %g (%g)\n", i, j, lhs, rhs)
			}
			chk.Float64(tst, io.Sf("∫Φ%d N%d", i, j), tol, lhs, rhs)
		}
	}
}

// CheckDSdR checks dSdR derivatives of shape structures
func CheckDSdR(tst *testing.T, shape *Shape, r float64, tol float64, verbose bool) {

	// analytical
	shape.Calc(r, true)
	ana := make([]float64, shape.Nverts)
	copy(ana, shape.DSdR)

	// numerical
	n := shape.Nverts
	jac := mat.NewDense(n, 1, nil)
	fd.Jacobian(jac, func(f, x []float64) {
		shape.Calc(x[0], false)
		copy(f, shape.S)
	}, []float64{r}, &fd.JacobianSettings{Formula: fd.Central, Step: 1e-5})
	num := mat.Col(nil, 0, jac)
	if verbose {
		io.Pforan("dSdR @ %g: ana = %v num = %v\n", r, ana, num)
	}
	chk.Array(tst, io.Sf("dS/dR @ %g", r), tol, ana, num)
}
