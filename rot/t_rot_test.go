// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rot

import (
	"math"
	"testing"

	"github.com/cpmech/beamcontact/ad"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

var rotvecs = [][3]float64{
	{0, 0, 0},
	{1e-9, -2e-9, 3e-9},
	{0.01, 0.02, -0.03},
	{0.1, 0.05, 0.12},
	{0.3, -0.2, 0.9},
	{1.2, 0.4, -0.7},
	{0, 0, math.Pi / 2},
	{-2.0, 1.5, 0.3},
	{0, 3.1, 0},
}

func sameRotation(tst *testing.T, msg string, tol float64, p, q [4]float64) {
	if p[3]*q[3] < 0 || (p[3] == 0 && q[3] == 0 && p[0]*q[0]+p[1]*q[1]+p[2]*q[2] < 0) {
		q = [4]float64{-q[0], -q[1], -q[2], -q[3]}
	}
	chk.Array(tst, msg, tol, p[:], q[:])
}

func Test_rot01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rot01. round trips")

	for _, θ := range rotvecs {
		q := QuatOf(θ)
		n := q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3]
		chk.Float64(tst, "|q|", 1e-15, n, 1)
		R := MatrixOf(q)
		require.NoError(tst, CheckOrthonormal(R, 1e-14))
		sameRotation(tst, io.Sf("q(R(θ=%v))", θ), 1e-14, QuatOfMatrix(R), q)
		chk.Array(tst, "log(exp(θ))", 1e-13, func() []float64 { v := RotvecOf(q); return v[:] }(), θ[:])
	}
}

func Test_rot02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rot02. T(θ) limit and inverse")

	I := [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for _, ε := range []float64{1e-4, 1e-8, 1e-12, 0} {
		θ := [3]float64{ε, -2 * ε, 0.5 * ε}
		T := TOf(θ)
		for i := 0; i < 3; i++ {
			chk.Array(tst, io.Sf("T(ε=%g)", ε), 2*ε+1e-15, T[i][:], I[i][:])
		}
	}
	for _, θ := range rotvecs {
		A := TinvOf(θ)
		B := TOf(θ)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				var s float64
				for k := 0; k < 3; k++ {
					s += A[i][k] * B[k][j]
				}
				chk.Float64(tst, io.Sf("(Tinv T)[%d][%d]", i, j), 1e-13, s, I[i][j])
			}
		}
	}
}

func Test_rot03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rot03. Tinv maps additive increments to spatial spins")

	h := 1e-6
	for _, θ := range rotvecs[2:] {
		R0 := MatrixOf(QuatOf(θ))
		Tinv := TinvOf(θ)
		for k := 0; k < 3; k++ {
			θp, θm := θ, θ
			θp[k] += h
			θm[k] -= h
			Rp := MatrixOf(QuatOf(θp))
			Rm := MatrixOf(QuatOf(θm))
			var W Mat[ad.Real]
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					var s float64
					for l := 0; l < 3; l++ {
						s += (Rp[i][l] - Rm[i][l]) / (2 * h) * R0[j][l]
					}
					W[i][j] = ad.Real(s)
				}
			}
			ω := Vals(Axial(W))
			chk.Array(tst, io.Sf("Tinv e%d @ %v", k, θ), 1e-8, ω[:], []float64{Tinv[0][k], Tinv[1][k], Tinv[2][k]})
		}
	}
}

func Test_rot04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rot04. dual numbers through exp and log")

	for _, θ := range rotvecs[1:] {
		x := Vec[ad.D1]{}
		vars := ad.Vars1(θ[:])
		copy(x[:], vars)
		y := QuatToRotvec(RotvecToQuat(x))
		for i := 0; i < 3; i++ {
			e := make([]float64, 3)
			e[i] = 1
			chk.Array(tst, io.Sf("dlog(exp)/dθ @ %v", θ), 1e-11, ad.Grad1(y[i], 3), e)
		}

		// Jr⋅v against numerical derivative
		v := [3]float64{0.3, -0.1, 0.2}
		g := JrTimes(x, Const[ad.D1](v))
		jac := mat.NewDense(3, 3, nil)
		fd.Jacobian(jac, func(y, z []float64) {
			r := Vals(JrTimes(Const[ad.Real]([3]float64{z[0], z[1], z[2]}), Const[ad.Real](v)))
			copy(y, r[:])
		}, θ[:], &fd.JacobianSettings{Formula: fd.Central, Step: 1e-6})
		for i := 0; i < 3; i++ {
			chk.Array(tst, "d(Jr v)/dθ", 1e-8, ad.Grad1(g[i], 3), mat.Row(nil, i, jac))
		}
	}
}

func Test_rot05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rot05. smallest rotation")

	q := QuatOf([3]float64{0.2, -0.4, 0.3})
	Λ := MatrixOf(q)
	t := [3]float64{0.3, 0.9, -0.2}
	n := math.Sqrt(t[0]*t[0] + t[1]*t[1] + t[2]*t[2])
	for i := 0; i < 3; i++ {
		t[i] /= n
	}
	qn := QuatVals(SmallestRotationQuat(ConstQuat[ad.Real](q), Const[ad.Real](t)))
	var Λm Mat[ad.Real]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			Λm[i][j] = ad.Real(Λ[i][j])
		}
	}
	Rn := MatVals(SmallestRotation(Λm, Const[ad.Real](t)))
	require.NoError(tst, CheckOrthonormal(Rn, 1e-14))
	chk.Array(tst, "g1", 1e-14, []float64{Rn[0][0], Rn[1][0], Rn[2][0]}, t[:])
	sameRotation(tst, "quat vs matrix", 1e-14, qn, QuatOfMatrix(Rn))

	// the relative rotation has no component along the new tangent
	rel := RotvecOf(Mul(qn, Conj(q)))
	chk.Float64(tst, "rel⋅t", 1e-14, rel[0]*t[0]+rel[1]*t[1]+rel[2]*t[2], 0)

	// from tangents
	for _, tt := range [][3]float64{{1, 0, 0}, {0, 1, 0}, {1, 1, 1}, {-1, 0, 0}, {-1, 0.1, 0}} {
		θ := RotvecFromTangent(tt)
		g := Vals(G1(ConstQuat[ad.Real](QuatOf(θ))))
		n := math.Sqrt(tt[0]*tt[0] + tt[1]*tt[1] + tt[2]*tt[2])
		chk.Array(tst, io.Sf("g1(%v)", tt), 1e-12, g[:], []float64{tt[0] / n, tt[1] / n, tt[2] / n})
	}
}

func Test_rot06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rot06. orthonormality check")

	R := MatrixOf(QuatOf([3]float64{0.1, 0.2, 0.3}))
	require.NoError(tst, CheckOrthonormal(R, 1e-14))
	R[0][0] *= 1.01
	require.Error(tst, CheckOrthonormal(R, 1e-10))
	M := [3][3]float64{{-1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	require.Error(tst, CheckOrthonormal(M, 1e-10))

	// rotate vector
	q := QuatOf([3]float64{0, 0, math.Pi / 2})
	v := Vals(RotateVec(ConstQuat[ad.Real](q), Const[ad.Real]([3]float64{1, 0, 0})))
	chk.Array(tst, "Rz(π/2) e1", 1e-15, v[:], []float64{0, 1, 0})
}

func Test_rot07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rot07. closed-form derivatives of coefficients")

	for _, s := range []float64{1e-3, 0.3, 0.99, 1.01, 2.0, 6.0} {
		x := ad.Vars2([]float64{s})[0]
		c, w := ExpCoefs(x)
		β, γ := JacCoefs(x)
		cd, wd := ExpDeriv(s)
		βd, γd := JacDeriv(s)
		for _, pair := range []struct {
			key string
			fad ad.D2
			ana [3]float64
		}{{"c", c, cd}, {"w", w, wd}, {"β", β, βd}, {"γ", γ, γd}} {
			g, h := ad.GradHess(pair.fad, 1)
			chk.Float64(tst, io.Sf("%s(%g)", pair.key, s), 1e-14, pair.ana[0], ad.Value(pair.fad))
			chk.Float64(tst, io.Sf("%s'(%g)", pair.key, s), 1e-11, pair.ana[1], g[0])
			chk.Float64(tst, io.Sf("%s''(%g)", pair.key, s), 1e-9, pair.ana[2], h[0][0])
		}
	}

	asin := func(n float64) float64 { return math.Asin(math.Sqrt(n)) / math.Sqrt(n) }
	for _, n := range []float64{1e-3, 0.04, 0.06, 0.3, 0.7} {
		f := AsinDeriv(n)
		chk.Float64(tst, io.Sf("f(%g)", n), 1e-14, f[0], asin(n))
		chk.Float64(tst, io.Sf("f'(%g)", n), 1e-8, f[1], fd.Derivative(asin, n, &fd.Settings{Formula: fd.Central}))
		chk.Float64(tst, io.Sf("f''(%g)", n), 1e-5, f[2], fd.Derivative(asin, n, &fd.Settings{Formula: fd.Central2nd, Step: 1e-4}))
	}

	sr := func(c float64) float64 { return 1.0 / math.Sqrt(2.0*(1.0+c)) }
	for _, c := range []float64{-0.5, 0, 0.9, 1} {
		p := SrDeriv(c)
		chk.Float64(tst, io.Sf("p(%g)", c), 1e-15, p[0], sr(c))
		chk.Float64(tst, io.Sf("p'(%g)", c), 1e-8, p[1], fd.Derivative(sr, c, &fd.Settings{Formula: fd.Central}))
		chk.Float64(tst, io.Sf("p''(%g)", c), 1e-5, p[2], fd.Derivative(sr, c, &fd.Settings{Formula: fd.Central2nd, Step: 1e-4}))
	}
}
