// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rot

import "github.com/cpmech/beamcontact/ad"

// thresholds for the small angle branches
const (
	SmallAngle2 = 0.04   // φ² below which Taylor series replace the closed forms of exp-type coefficients
	SmallLog    = 0.0025 // |v|²/w² below which the log map uses a Taylor series
)

// ExpCoefs returns the coefficients of the quaternion of a rotation vector with s = φ²:
//
//	q = {c θ, w}  with  c = sin(φ/2)/φ  and  w = cos(φ/2)
func ExpCoefs[T ad.Scalar[T]](s T) (c, w T) {
	if s.Val() < SmallAngle2 {
		c = ad.Poly(s, 1.0/2.0, -1.0/48.0, 1.0/3840.0, -1.0/645120.0, 1.0/185794560.0)
		w = ad.Poly(s, 1.0, -1.0/8.0, 1.0/384.0, -1.0/46080.0, 1.0/10321920.0)
		return
	}
	φ := s.Sqrt()
	h := φ.Scale(0.5)
	c = h.Sin().Div(φ)
	w = h.Cos()
	return
}

// JacCoefs returns the coefficients of the left and right Jacobians of SO(3) with s = φ²:
//
//	β = (1 - cos φ)/φ²  and  γ = (φ - sin φ)/φ³
func JacCoefs[T ad.Scalar[T]](s T) (β, γ T) {
	if s.Val() < SmallAngle2 {
		β = ad.Poly(s, 1.0/2.0, -1.0/24.0, 1.0/720.0, -1.0/40320.0, 1.0/3628800.0)
		γ = ad.Poly(s, 1.0/6.0, -1.0/120.0, 1.0/5040.0, -1.0/362880.0, 1.0/39916800.0)
		return
	}
	φ := s.Sqrt()
	β = φ.Cos().Neg().Shift(1).Div(s)
	γ = φ.Sub(φ.Sin()).Div(φ.Mul(s))
	return
}

// TCoef returns the coefficient of the inverse of the left Jacobian with s = φ²:
//
//	c = (1 - (φ/2) cot(φ/2)) / φ²
func TCoef[T ad.Scalar[T]](s T) (c T) {
	if s.Val() < SmallAngle2 {
		return ad.Poly(s, 1.0/12.0, 1.0/720.0, 1.0/30240.0, 1.0/1209600.0, 1.0/47900160.0)
	}
	φ := s.Sqrt()
	h := φ.Scale(0.5)
	return h.Mul(h.Cos()).Div(h.Sin()).Neg().Shift(1).Div(s)
}

// RotvecToQuat returns the unit quaternion corresponding to the rotation vector θ
func RotvecToQuat[T ad.Scalar[T]](θ Vec[T]) Quat[T] {
	c, w := ExpCoefs(Dot(θ, θ))
	return Quat[T]{c.Mul(θ[0]), c.Mul(θ[1]), c.Mul(θ[2]), w}
}

// QuatToRotvec returns the rotation vector of a unit quaternion; the result has |θ| ≤ π
func QuatToRotvec[T ad.Scalar[T]](q Quat[T]) Vec[T] {
	if q[3].Val() < 0 {
		q = QuatNeg(q)
	}
	v := Vec[T]{q[0], q[1], q[2]}
	n := Dot(v, v)
	w := q[3]
	var k T
	if n.Val() < SmallLog*w.Val()*w.Val() {
		x := n.Div(w.Mul(w))
		k = ad.Poly(x, 1, -1.0/3.0, 1.0/5.0, -1.0/7.0, 1.0/9.0, -1.0/11.0).Div(w).Scale(2)
	} else {
		sn := n.Sqrt()
		k = sn.Atan2(w).Scale(2).Div(sn)
	}
	return Scale(k, v)
}

// QuatToMatrix returns the rotation matrix of a unit quaternion
func QuatToMatrix[T ad.Scalar[T]](q Quat[T]) (R Mat[T]) {
	x, y, z, w := q[0], q[1], q[2], q[3]
	xx, yy, zz := x.Mul(x), y.Mul(y), z.Mul(z)
	xy, xz, yz := x.Mul(y), x.Mul(z), y.Mul(z)
	xw, yw, zw := x.Mul(w), y.Mul(w), z.Mul(w)
	R[0][0] = yy.Add(zz).Scale(-2).Shift(1)
	R[0][1] = xy.Sub(zw).Scale(2)
	R[0][2] = xz.Add(yw).Scale(2)
	R[1][0] = xy.Add(zw).Scale(2)
	R[1][1] = xx.Add(zz).Scale(-2).Shift(1)
	R[1][2] = yz.Sub(xw).Scale(2)
	R[2][0] = xz.Sub(yw).Scale(2)
	R[2][1] = yz.Add(xw).Scale(2)
	R[2][2] = xx.Add(yy).Scale(-2).Shift(1)
	return
}

// MatrixToQuat returns the unit quaternion (with w ≥ 0) of a rotation matrix using Shepperd's algorithm.
//
//	Note: R must be orthonormal; see CheckOrthonormal
func MatrixToQuat[T ad.Scalar[T]](R Mat[T]) (q Quat[T]) {
	tr := R[0][0].Add(R[1][1]).Add(R[2][2])
	imax, vmax := 3, tr.Val()
	for i := 0; i < 3; i++ {
		if R[i][i].Val() > vmax {
			imax, vmax = i, R[i][i].Val()
		}
	}
	if imax == 3 {
		w := tr.Shift(1).Sqrt().Scale(0.5)
		d := ad.C[T](0.25).Div(w)
		q = Quat[T]{R[2][1].Sub(R[1][2]).Mul(d), R[0][2].Sub(R[2][0]).Mul(d), R[1][0].Sub(R[0][1]).Mul(d), w}
	} else {
		i := imax
		j := (i + 1) % 3
		k := (i + 2) % 3
		qi := R[i][i].Scale(2).Sub(tr).Shift(1).Sqrt().Scale(0.5)
		d := ad.C[T](0.25).Div(qi)
		q[i] = qi
		q[3] = R[k][j].Sub(R[j][k]).Mul(d)
		q[j] = R[j][i].Add(R[i][j]).Mul(d)
		q[k] = R[k][i].Add(R[i][k]).Mul(d)
	}
	if q[3].Val() < 0 {
		q = QuatNeg(q)
	}
	return
}

// Exp returns the rotation matrix exp(θ̂)
func Exp[T ad.Scalar[T]](θ Vec[T]) Mat[T] {
	return QuatToMatrix(RotvecToQuat(θ))
}

// Log returns the rotation vector θ such that exp(θ̂) = R
func Log[T ad.Scalar[T]](R Mat[T]) Vec[T] {
	return QuatToRotvec(MatrixToQuat(R))
}

// quaternion algebra //////////////////////////////////////////////////////////////////////////////

// QuatProduct returns p ⊗ q; i.e. the rotation q followed by p
func QuatProduct[T ad.Scalar[T]](p, q Quat[T]) Quat[T] {
	pv := Vec[T]{p[0], p[1], p[2]}
	qv := Vec[T]{q[0], q[1], q[2]}
	v := Add(Add(Scale(p[3], qv), Scale(q[3], pv)), Cross(pv, qv))
	w := p[3].Mul(q[3]).Sub(Dot(pv, qv))
	return Quat[T]{v[0], v[1], v[2], w}
}

// QuatConj returns the conjugate (inverse of a unit quaternion)
func QuatConj[T ad.Scalar[T]](q Quat[T]) Quat[T] {
	return Quat[T]{q[0].Neg(), q[1].Neg(), q[2].Neg(), q[3]}
}

// QuatNeg returns -q; i.e. the same rotation
func QuatNeg[T ad.Scalar[T]](q Quat[T]) Quat[T] {
	return Quat[T]{q[0].Neg(), q[1].Neg(), q[2].Neg(), q[3].Neg()}
}

// QuatIdentity returns the identity quaternion
func QuatIdentity[T ad.Scalar[T]]() Quat[T] {
	return ConstQuat[T]([4]float64{0, 0, 0, 1})
}

// RotateVec returns R(q) ⋅ v
func RotateVec[T ad.Scalar[T]](q Quat[T], v Vec[T]) Vec[T] {
	qv := Vec[T]{q[0], q[1], q[2]}
	t := ScaleF(2, Cross(qv, v))
	return Add(Add(v, Scale(q[3], t)), Cross(qv, t))
}

// G1 returns the first base vector of the triad of q; i.e. R(q) ⋅ e1
func G1[T ad.Scalar[T]](q Quat[T]) Vec[T] {
	x, y, z, w := q[0], q[1], q[2], q[3]
	return Vec[T]{
		y.Mul(y).Add(z.Mul(z)).Scale(-2).Shift(1),
		x.Mul(y).Add(z.Mul(w)).Scale(2),
		x.Mul(z).Sub(y.Mul(w)).Scale(2),
	}
}

// AxisAngleQuat returns the quaternion of a rotation with angle a about the unit axis e
func AxisAngleQuat[T ad.Scalar[T]](e [3]float64, a T) Quat[T] {
	h := a.Scale(0.5)
	s := h.Sin()
	return Quat[T]{s.Scale(e[0]), s.Scale(e[1]), s.Scale(e[2]), h.Cos()}
}
