// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ad implements a generic scalar trait and forward-mode dual numbers
package ad

import "math"

// Scalar defines the arithmetic required by generic kinematics routines.
// Real and Dual[T] implement it; Dual[Dual[Real]] gives second derivatives
type Scalar[T any] interface {
	Add(b T) T         // a + b
	Sub(b T) T         // a - b
	Mul(b T) T         // a * b
	Div(b T) T         // a / b
	Neg() T            // -a
	Scale(c float64) T // c * a
	Shift(c float64) T // a + c
	Sqrt() T           // √a
	Sin() T            // sin(a)
	Cos() T            // cos(a)
	Atan2(x T) T       // atan2(a, x)
	Val() float64      // value
	Const(c float64) T // constant of the same type
}

// C returns a constant of type T
func C[T Scalar[T]](c float64) T {
	var z T
	return z.Const(c)
}

// Poly evaluates c[0] + c[1] x + c[2] x² + ... with Horner's rule
func Poly[T Scalar[T]](x T, c ...float64) T {
	n := len(c)
	res := C[T](c[n-1])
	for i := n - 2; i >= 0; i-- {
		res = res.Mul(x).Shift(c[i])
	}
	return res
}

// Real is a plain float64 implementing Scalar
type Real float64

func (a Real) Add(b Real) Real      { return a + b }
func (a Real) Sub(b Real) Real      { return a - b }
func (a Real) Mul(b Real) Real      { return a * b }
func (a Real) Div(b Real) Real      { return a / b }
func (a Real) Neg() Real            { return -a }
func (a Real) Scale(c float64) Real { return Real(c) * a }
func (a Real) Shift(c float64) Real { return a + Real(c) }
func (a Real) Sqrt() Real           { return Real(math.Sqrt(float64(a))) }
func (a Real) Sin() Real            { return Real(math.Sin(float64(a))) }
func (a Real) Cos() Real            { return Real(math.Cos(float64(a))) }
func (a Real) Atan2(x Real) Real    { return Real(math.Atan2(float64(a), float64(x))) }
func (a Real) Val() float64         { return float64(a) }
func (a Real) Const(c float64) Real { return Real(c) }

// Reals converts a slice of float64 into Real values
func Reals(x []float64) (res []Real) {
	res = make([]Real, len(x))
	for i, v := range x {
		res[i] = Real(v)
	}
	return
}
