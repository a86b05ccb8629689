// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rot

import "github.com/cpmech/beamcontact/ad"

// float64 shortcuts

// QuatOf returns the quaternion of a rotation vector
func QuatOf(θ [3]float64) [4]float64 {
	return QuatVals(RotvecToQuat(Const[ad.Real](θ)))
}

// RotvecOf returns the rotation vector of a quaternion
func RotvecOf(q [4]float64) [3]float64 {
	return Vals(QuatToRotvec(ConstQuat[ad.Real](q)))
}

// MatrixOf returns the rotation matrix of a quaternion
func MatrixOf(q [4]float64) [3][3]float64 {
	return MatVals(QuatToMatrix(ConstQuat[ad.Real](q)))
}

// QuatOfMatrix returns the quaternion of a rotation matrix
func QuatOfMatrix(R [3][3]float64) [4]float64 {
	var m Mat[ad.Real]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = ad.Real(R[i][j])
		}
	}
	return QuatVals(MatrixToQuat(m))
}

// Mul returns p ⊗ q
func Mul(p, q [4]float64) [4]float64 {
	return QuatVals(QuatProduct(ConstQuat[ad.Real](p), ConstQuat[ad.Real](q)))
}

// Conj returns the conjugate quaternion
func Conj(q [4]float64) [4]float64 {
	return [4]float64{-q[0], -q[1], -q[2], q[3]}
}

// Normalized returns q/|q|
func Normalized(q [4]float64) [4]float64 {
	n := float64(ad.Real(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3]).Sqrt())
	return [4]float64{q[0] / n, q[1] / n, q[2] / n, q[3] / n}
}

// TinvOf returns Tinv(θ)
func TinvOf(θ [3]float64) [3][3]float64 {
	return MatVals(Tinv(Const[ad.Real](θ)))
}

// TOf returns T(θ)
func TOf(θ [3]float64) [3][3]float64 {
	return MatVals(Tmat(Const[ad.Real](θ)))
}
