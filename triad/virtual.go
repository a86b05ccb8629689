// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package triad

import "github.com/cpmech/beamcontact/rot"

// VirtualRotationOps computes the generalised shape function matrices Ĩ^i(ξ) mapping the spatial
// virtual rotations at the collocation points onto the spatial virtual rotation of the triad field:
//
//	δθ(ξ) = Σ Ĩ^i(ξ) δθ_i
//
// with
//
//	Ĩ^i = Λ_r Tinv(Ψ) L_i T(Ψ_i) Λ_rᵀ   (i ≠ r)
//	Ĩ^r = I - Σ_{i≠r} Ĩ^i
//	Input:
//	 qr   -- quaternion of reference triad Λ_r
//	 psi  -- [ncp] relative rotation vectors
//	 iref -- index of reference collocation point
//	 L    -- [ncp] Lagrange polynomials at ξ
//	Output:
//	 I -- [ncp] 3x3 matrices
func VirtualRotationOps(qr [4]float64, psi [][3]float64, iref int, L []float64) (I [][3][3]float64) {
	ncp := len(psi)
	Λr := rot.MatrixOf(qr)
	var ψ [3]float64
	for i := 0; i < ncp; i++ {
		for k := 0; k < 3; k++ {
			ψ[k] += L[i] * psi[i][k]
		}
	}
	A := rot.TinvOf(ψ)
	I = make([][3][3]float64, ncp)
	for i := 0; i < ncp; i++ {
		if i == iref {
			continue
		}
		B := rot.TOf(psi[i])
		I[i] = mmul(mmul(Λr, mmul(A, scaled(L[i], B))), tr(Λr))
	}
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			if a == b {
				I[iref][a][b] = 1
			}
			for i := 0; i < ncp; i++ {
				if i != iref {
					I[iref][a][b] -= I[i][a][b]
				}
			}
		}
	}
	return
}

func mmul(a, b [3][3]float64) (c [3][3]float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				c[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return
}

func tr(a [3][3]float64) (c [3][3]float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			c[i][j] = a[j][i]
		}
	}
	return
}

func scaled(s float64, a [3][3]float64) [3][3]float64 {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			a[i][j] *= s
		}
	}
	return a
}
