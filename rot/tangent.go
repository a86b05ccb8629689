// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rot

import (
	"math"

	"github.com/cpmech/beamcontact/ad"
	"github.com/cpmech/gosl/chk"
)

// Tinv returns the tangent operator Tinv(θ) = I + β θ̂ + γ θ̂² (left Jacobian of SO(3)).
// It maps an additive increment of the rotation vector into the spatial (multiplicative) increment:
//
//	δθ_spatial = Tinv(θ) ⋅ δθ
func Tinv[T ad.Scalar[T]](θ Vec[T]) Mat[T] {
	β, γ := JacCoefs(Dot(θ, θ))
	S := Spin(θ)
	S2 := MatMul(S, S)
	I := Identity[T]()
	var res Mat[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			res[i][j] = I[i][j].Add(β.Mul(S[i][j])).Add(γ.Mul(S2[i][j]))
		}
	}
	return res
}

// Tmat returns T(θ) = Tinv(θ)⁻¹ = I - ½ θ̂ + c θ̂²; see TCoef
func Tmat[T ad.Scalar[T]](θ Vec[T]) Mat[T] {
	c := TCoef(Dot(θ, θ))
	S := Spin(θ)
	S2 := MatMul(S, S)
	I := Identity[T]()
	var res Mat[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			res[i][j] = I[i][j].Sub(S[i][j].Scale(0.5)).Add(c.Mul(S2[i][j]))
		}
	}
	return res
}

// Jr returns the right Jacobian Jr(θ) = Tinv(θ)ᵀ = I - β θ̂ + γ θ̂²
func Jr[T ad.Scalar[T]](θ Vec[T]) Mat[T] {
	return Transpose(Tinv(θ))
}

// JrTimes returns Jr(θ) ⋅ v without building the matrix
func JrTimes[T ad.Scalar[T]](θ, v Vec[T]) Vec[T] {
	β, γ := JacCoefs(Dot(θ, θ))
	a := Cross(θ, v)
	b := Cross(θ, a)
	return Add(Sub(v, Scale(β, a)), Scale(γ, b))
}

// TinvTrTimes returns Tinv(θ)ᵀ ⋅ m; used to convert spatial moments into generalised forces
// conjugated to additive rotation vector increments
func TinvTrTimes[T ad.Scalar[T]](θ, m Vec[T]) Vec[T] {
	return JrTimes(θ, m)
}

// smallest rotation ///////////////////////////////////////////////////////////////////////////////

// SmallestRotationQuat returns the quaternion of the triad obtained by rotating the triad of q with
// the smallest rotation that maps its first base vector onto the unit vector t
func SmallestRotationQuat[T ad.Scalar[T]](q Quat[T], t Vec[T]) Quat[T] {
	g := G1(q)
	c := Dot(g, t)
	w := Cross(g, t)
	p := ad.C[T](1).Div(c.Shift(1).Scale(2).Sqrt())
	qsr := Quat[T]{w[0].Mul(p), w[1].Mul(p), w[2].Mul(p), c.Shift(1).Mul(p)}
	return QuatProduct(qsr, q)
}

// SmallestRotation returns R_sr ⋅ Λ where R_sr = c I + ŵ + w⊗w/(1+c), w = g1 × t, c = g1 ⋅ t,
// and g1 is the first base vector of Λ
func SmallestRotation[T ad.Scalar[T]](Λ Mat[T], t Vec[T]) Mat[T] {
	g := Column(Λ, 0)
	c := Dot(g, t)
	w := Cross(g, t)
	W := Spin(w)
	d := ad.C[T](1).Div(c.Shift(1))
	var R Mat[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			R[i][j] = W[i][j].Add(w[i].Mul(w[j]).Mul(d))
			if i == j {
				R[i][j] = R[i][j].Add(c)
			}
		}
	}
	return MatMul(R, Λ)
}

// RotvecFromTangent returns the rotation vector of the triad whose first base vector is t,
// obtained by the smallest rotation from the global frame
func RotvecFromTangent(t [3]float64) [3]float64 {
	n := math.Sqrt(t[0]*t[0] + t[1]*t[1] + t[2]*t[2])
	if n < 1e-14 {
		chk.Panic("cannot compute rotation vector from zero tangent vector")
	}
	for i := 0; i < 3; i++ {
		t[i] /= n
	}
	if t[0] < -1+1e-12 { // antiparallel to e1: half turn about e3
		return [3]float64{0, 0, math.Pi}
	}
	q := SmallestRotationQuat(QuatIdentity[ad.Real](), Const[ad.Real](t))
	return Vals(QuatToRotvec(q))
}

// checks //////////////////////////////////////////////////////////////////////////////////////////

// CheckOrthonormal returns an error if R is not orthonormal (RᵀR = I and det R = 1) within tol
func CheckOrthonormal(R [3][3]float64, tol float64) (err error) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += R[k][i] * R[k][j]
			}
			if i == j {
				s -= 1
			}
			if math.Abs(s) > tol {
				return chk.Err("matrix is not orthonormal: (RᵀR - I)[%d][%d] = %g", i, j, s)
			}
		}
	}
	det := R[0][0]*(R[1][1]*R[2][2]-R[1][2]*R[2][1]) -
		R[0][1]*(R[1][0]*R[2][2]-R[1][2]*R[2][0]) +
		R[0][2]*(R[1][0]*R[2][1]-R[1][1]*R[2][0])
	if math.Abs(det-1) > tol {
		return chk.Err("matrix is not a proper rotation: det = %g", det)
	}
	return
}
