// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package rot implements rotation algebra for large rotations: rotation vectors (pseudo-vectors),
// quaternions and rotation matrices (triads), exponential and logarithmic maps and tangent operators.
// All functions are generic in the scalar type; see package ad
package rot

import "github.com/cpmech/beamcontact/ad"

// Vec is a 3D vector
type Vec[T ad.Scalar[T]] [3]T

// Mat is a 3x3 matrix
type Mat[T ad.Scalar[T]] [3][3]T

// Quat is a quaternion stored as {x, y, z, w}; i.e. vector part first
type Quat[T ad.Scalar[T]] [4]T

// Const converts float64 values into a constant vector
func Const[T ad.Scalar[T]](v [3]float64) (res Vec[T]) {
	for i := 0; i < 3; i++ {
		res[i] = ad.C[T](v[i])
	}
	return
}

// ConstQuat converts float64 values into a constant quaternion
func ConstQuat[T ad.Scalar[T]](q [4]float64) (res Quat[T]) {
	for i := 0; i < 4; i++ {
		res[i] = ad.C[T](q[i])
	}
	return
}

// Vals returns the values of a vector
func Vals[T ad.Scalar[T]](v Vec[T]) [3]float64 {
	return [3]float64{v[0].Val(), v[1].Val(), v[2].Val()}
}

// QuatVals returns the values of a quaternion
func QuatVals[T ad.Scalar[T]](q Quat[T]) [4]float64 {
	return [4]float64{q[0].Val(), q[1].Val(), q[2].Val(), q[3].Val()}
}

// MatVals returns the values of a matrix
func MatVals[T ad.Scalar[T]](m Mat[T]) (res [3][3]float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			res[i][j] = m[i][j].Val()
		}
	}
	return
}

// Zero returns the zero vector
func Zero[T ad.Scalar[T]]() (res Vec[T]) {
	return Const[T]([3]float64{})
}

// Identity returns the identity matrix
func Identity[T ad.Scalar[T]]() (res Mat[T]) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == j {
				res[i][j] = ad.C[T](1)
			} else {
				res[i][j] = ad.C[T](0)
			}
		}
	}
	return
}

// Dot returns a ⋅ b
func Dot[T ad.Scalar[T]](a, b Vec[T]) T {
	return a[0].Mul(b[0]).Add(a[1].Mul(b[1])).Add(a[2].Mul(b[2]))
}

// Cross returns a × b
func Cross[T ad.Scalar[T]](a, b Vec[T]) Vec[T] {
	return Vec[T]{
		a[1].Mul(b[2]).Sub(a[2].Mul(b[1])),
		a[2].Mul(b[0]).Sub(a[0].Mul(b[2])),
		a[0].Mul(b[1]).Sub(a[1].Mul(b[0])),
	}
}

// Add returns a + b
func Add[T ad.Scalar[T]](a, b Vec[T]) Vec[T] {
	return Vec[T]{a[0].Add(b[0]), a[1].Add(b[1]), a[2].Add(b[2])}
}

// Sub returns a - b
func Sub[T ad.Scalar[T]](a, b Vec[T]) Vec[T] {
	return Vec[T]{a[0].Sub(b[0]), a[1].Sub(b[1]), a[2].Sub(b[2])}
}

// Scale returns s * a
func Scale[T ad.Scalar[T]](s T, a Vec[T]) Vec[T] {
	return Vec[T]{s.Mul(a[0]), s.Mul(a[1]), s.Mul(a[2])}
}

// ScaleF returns c * a with a float64 coefficient
func ScaleF[T ad.Scalar[T]](c float64, a Vec[T]) Vec[T] {
	return Vec[T]{a[0].Scale(c), a[1].Scale(c), a[2].Scale(c)}
}

// Norm returns |a|
func Norm[T ad.Scalar[T]](a Vec[T]) T {
	return Dot(a, a).Sqrt()
}

// Normalize returns a / |a| and |a|
func Normalize[T ad.Scalar[T]](a Vec[T]) (res Vec[T], norm T) {
	norm = Norm(a)
	res = Scale(ad.C[T](1).Div(norm), a)
	return
}

// Spin returns the skew-symmetric matrix â such that â b = a × b
func Spin[T ad.Scalar[T]](a Vec[T]) Mat[T] {
	z := ad.C[T](0)
	return Mat[T]{
		{z, a[2].Neg(), a[1]},
		{a[2], z, a[0].Neg()},
		{a[1].Neg(), a[0], z},
	}
}

// Axial returns the axial vector of the skew-symmetric part of m
func Axial[T ad.Scalar[T]](m Mat[T]) Vec[T] {
	return Vec[T]{
		m[2][1].Sub(m[1][2]).Scale(0.5),
		m[0][2].Sub(m[2][0]).Scale(0.5),
		m[1][0].Sub(m[0][1]).Scale(0.5),
	}
}

// MatVec returns m ⋅ v
func MatVec[T ad.Scalar[T]](m Mat[T], v Vec[T]) (res Vec[T]) {
	for i := 0; i < 3; i++ {
		res[i] = m[i][0].Mul(v[0]).Add(m[i][1].Mul(v[1])).Add(m[i][2].Mul(v[2]))
	}
	return
}

// MatTrVec returns mᵀ ⋅ v
func MatTrVec[T ad.Scalar[T]](m Mat[T], v Vec[T]) (res Vec[T]) {
	for i := 0; i < 3; i++ {
		res[i] = m[0][i].Mul(v[0]).Add(m[1][i].Mul(v[1])).Add(m[2][i].Mul(v[2]))
	}
	return
}

// MatMul returns a ⋅ b
func MatMul[T ad.Scalar[T]](a, b Mat[T]) (res Mat[T]) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			res[i][j] = a[i][0].Mul(b[0][j]).Add(a[i][1].Mul(b[1][j])).Add(a[i][2].Mul(b[2][j]))
		}
	}
	return
}

// Transpose returns mᵀ
func Transpose[T ad.Scalar[T]](m Mat[T]) (res Mat[T]) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			res[i][j] = m[j][i]
		}
	}
	return
}

// MatAdd returns α a + β b
func MatAdd[T ad.Scalar[T]](α float64, a Mat[T], β float64, b Mat[T]) (res Mat[T]) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			res[i][j] = a[i][j].Scale(α).Add(b[i][j].Scale(β))
		}
	}
	return
}

// Column returns column j of m
func Column[T ad.Scalar[T]](m Mat[T], j int) Vec[T] {
	return Vec[T]{m[0][j], m[1][j], m[2][j]}
}
