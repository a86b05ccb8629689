// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ad

import "math"

// Dual holds a value and its gradient with respect to n independent variables.
//
//	Note: a nil gradient means a constant
type Dual[T Scalar[T]] struct {
	V T   // value
	D []T // derivatives
}

// Add returns a + b
func (a Dual[T]) Add(b Dual[T]) Dual[T] {
	one := C[T](1)
	return Dual[T]{a.V.Add(b.V), combine(one, a.D, one, b.D)}
}

// Sub returns a - b
func (a Dual[T]) Sub(b Dual[T]) Dual[T] {
	one := C[T](1)
	return Dual[T]{a.V.Sub(b.V), combine(one, a.D, one.Neg(), b.D)}
}

// Mul returns a * b
func (a Dual[T]) Mul(b Dual[T]) Dual[T] {
	return Dual[T]{a.V.Mul(b.V), combine(b.V, a.D, a.V, b.D)}
}

// Div returns a / b
func (a Dual[T]) Div(b Dual[T]) Dual[T] {
	v := a.V.Div(b.V)
	inv := C[T](1).Div(b.V)
	return Dual[T]{v, combine(inv, a.D, v.Mul(inv).Neg(), b.D)}
}

// Neg returns -a
func (a Dual[T]) Neg() Dual[T] {
	return Dual[T]{a.V.Neg(), scaled(a.V.Const(-1), a.D)}
}

// Scale returns c * a
func (a Dual[T]) Scale(c float64) Dual[T] {
	return Dual[T]{a.V.Scale(c), scaled(a.V.Const(c), a.D)}
}

// Shift returns a + c
func (a Dual[T]) Shift(c float64) Dual[T] {
	return Dual[T]{a.V.Shift(c), a.D}
}

// Sqrt returns √a
func (a Dual[T]) Sqrt() Dual[T] {
	v := a.V.Sqrt()
	return Dual[T]{v, scaled(C[T](0.5).Div(v), a.D)}
}

// Sin returns sin(a)
func (a Dual[T]) Sin() Dual[T] {
	return Dual[T]{a.V.Sin(), scaled(a.V.Cos(), a.D)}
}

// Cos returns cos(a)
func (a Dual[T]) Cos() Dual[T] {
	return Dual[T]{a.V.Cos(), scaled(a.V.Sin().Neg(), a.D)}
}

// Atan2 returns atan2(a, x)
func (a Dual[T]) Atan2(x Dual[T]) Dual[T] {
	r2 := a.V.Mul(a.V).Add(x.V.Mul(x.V))
	return Dual[T]{a.V.Atan2(x.V), combine(x.V.Div(r2), a.D, a.V.Div(r2).Neg(), x.D)}
}

// Val returns the value
func (a Dual[T]) Val() float64 { return a.V.Val() }

// Const returns a constant
func (a Dual[T]) Const(c float64) Dual[T] {
	var z T
	return Dual[T]{V: z.Const(c)}
}

// combine computes α⋅a + β⋅b
func combine[T Scalar[T]](α T, a []T, β T, b []T) []T {
	if a == nil {
		return scaled(β, b)
	}
	if b == nil {
		return scaled(α, a)
	}
	res := make([]T, len(a))
	for i := range a {
		res[i] = α.Mul(a[i]).Add(β.Mul(b[i]))
	}
	return res
}

// scaled computes α⋅a
func scaled[T Scalar[T]](α T, a []T) []T {
	if a == nil {
		return nil
	}
	res := make([]T, len(a))
	for i := range a {
		res[i] = α.Mul(a[i])
	}
	return res
}

// first and second order variables ////////////////////////////////////////////////////////////////

// D1 is a first order dual number over float64
type D1 = Dual[Real]

// D2 is a second order (nested) dual number over float64
type D2 = Dual[Dual[Real]]

// Vars1 returns independent first order variables seeded with unit gradients
func Vars1(x []float64) (res []D1) {
	n := len(x)
	res = make([]D1, n)
	for i := 0; i < n; i++ {
		d := make([]Real, n)
		d[i] = 1
		res[i] = D1{V: Real(x[i]), D: d}
	}
	return
}

// Vars2 returns independent second order variables
func Vars2(x []float64) (res []D2) {
	n := len(x)
	res = make([]D2, n)
	for i := 0; i < n; i++ {
		inner := make([]Real, n)
		inner[i] = 1
		outer := make([]D1, n)
		outer[i] = D1{V: 1}
		res[i] = D2{V: D1{V: Real(x[i]), D: inner}, D: outer}
	}
	return
}

// Grad1 returns the gradient of a first order dual number; n is the number of variables
func Grad1(a D1, n int) (g []float64) {
	g = make([]float64, n)
	for i := 0; i < len(a.D); i++ {
		g[i] = float64(a.D[i])
	}
	return
}

// GradHess returns the gradient g and Hessian h of a second order dual number
func GradHess(a D2, n int) (g []float64, h [][]float64) {
	g = make([]float64, n)
	h = make([][]float64, n)
	for i := 0; i < n; i++ {
		h[i] = make([]float64, n)
	}
	for i := 0; i < len(a.D); i++ {
		g[i] = float64(a.D[i].V)
		for j := 0; j < len(a.D[i].D); j++ {
			h[i][j] = float64(a.D[i].D[j])
		}
	}
	return
}

// Value returns the plain value of a second order dual number
func Value(a D2) float64 {
	return a.V.Val()
}

// IsFinite tells whether the value of a is finite
func IsFinite[T Scalar[T]](a T) bool {
	v := a.Val()
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
