// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"math"

	"github.com/cpmech/beamcontact/rot"
	"github.com/cpmech/gosl/utl"
)

// analytic path ////////////////////////////////////////////////////////////////////////////////////

// analyticForces computes the internal forces and the tangent stiffness from the stress resultants
// and the strain operators B = ∂E/∂q and G = ∂²E/∂q² of the kinematic quantities E:
//
//	f = ∫ (N B_ε + M⋅B_κ - q⋅B_r) ds
//	K = ∫ (EA B_εᵀB_ε + B_κᵀ C B_κ + N G_ε + M⋅G_κ - q⋅G_r) ds
//
// In dynamics, the inertia forces add ρA a⋅B_r and Iρ b⋅B_Θ with a = α1 r - ζ and b = α1 Θ - ζ_Θ
// (Θ is the incremental rotation of the triad), plus their linearisations.
// It is a no-op if the element uses forward automatic differentiation.
func (o *KBeam) analyticForces(q []float64) (f []float64, K [][]float64) {
	if o.Fad {
		return
	}
	k := o.analyticKinematics(q)
	f = make([]float64, kbNdof)
	K = utl.Alloc(kbNdof, kbNdof)
	C := [3]float64{o.GJ, o.EI2, o.EI3}
	for i, ip := range o.Ips {
		c := ip.W * o.J[i]
		N, M := o.Mdl.Resultants(k.Eps[i].V[0], [3]float64{k.Kap[i].V[0], k.Kap[i].V[1], k.Kap[i].V[2]})
		addStrainTerms(f, K, c, N, o.EA, k.Eps[i], 0)
		for a := 0; a < 3; a++ {
			addStrainTerms(f, K, c, M[a], C[a], k.Kap[i], a)
		}
		if o.hasLoad {
			for a := 0; a < 3; a++ {
				addStrainTerms(f, K, c, -o.qext[a], 0, k.R[i], a)
			}
		}
		if o.dyn {
			for a := 0; a < 3; a++ {
				acc := o.α1*k.R[i].V[a] - o.Zet[i][a]
				addStrainTerms(f, K, c, o.RhoA*acc, o.RhoA*o.α1, k.R[i], a)
				b := o.α1*k.Th[i].V[a] - o.ZetΘ[i][a]
				addStrainTerms(f, K, c, o.Irho[a]*b, o.Irho[a]*o.α1, k.Th[i], a)
			}
		}
	}
	return
}

// addStrainTerms adds the contribution of component a of E with conjugate resultant S and modulus D:
//
//	f += c S B_a    K += c (D B_a⊗B_a + S G_a)
func addStrainTerms(f []float64, K [][]float64, c, S, D float64, E *kbVar, a int) {
	B, G := &E.G[a], &E.H[a]
	for i := 0; i < kbNdof; i++ {
		f[i] += c * S * B[i]
		for j := 0; j < kbNdof; j++ {
			K[i][j] += c * (D*B[i]*B[j] + S*G[i][j])
		}
	}
}

// kbAnaKin holds the kinematic quantities at integration points with their strain operators
type kbAnaKin struct {
	Eps []*kbVar // [nip] axial strains
	Kap []*kbVar // [nip] material curvatures minus reference ones
	R   []*kbVar // [nip] centreline positions
	Th  []*kbVar // [nip] rotation vectors of Qnᵀ Q; dynamics only
}

// analyticKinematics computes the kinematics of kbeamKinematics together with its first and second
// derivatives w.r.t the local DOFs q
func (o *KBeam) analyticKinematics(q []float64) (k *kbAnaKin) {

	// end nodes
	var D, Lt [2]*kbVar
	var Q [2]*kbVar
	var tl [2]*kbVar
	for m := 0; m < 2; m++ {
		b := m * kbNdofNode
		D[m] = kbDofs(q, o.Xe[m][:], b, b+1, b+2)
		θ := kbDofs(q, o.Th0[m][:], b+3, b+4, b+5)
		tl[m] = kbDofs(q, []float64{1}, b+6)
		Q[m] = kbQuatExp(θ)
		Lt[m] = kbScale(kbSum([]float64{o.L0 / 2.0}, tl[m]), kbG1(Q[m]))
	}
	hermite := func(H []float64) *kbVar {
		return kbSum(H, D[0], Lt[0], D[1], Lt[1])
	}

	// middle collocation point
	e, nrp := kbNormalize(hermite(o.dHmid))
	qα := kbAxisAngleX(kbDofs(q, []float64{-o.Ac}, kbIalpha))
	Q3 := kbSmallestRotation(kbQuatMul(kbConst(o.Qc3[:]...), qα), e)

	// relative rotation vectors of end nodes
	Qr := kbQuatConj(Q3)
	var ψcp [2]*kbVar
	for m := 0; m < 2; m++ {
		ψcp[m] = kbQuatLog(kbQuatMul(Qr, Q[m]))
	}

	// axial strains at collocation points
	ecp := []*kbVar{
		kbShift(tl[0], -1),
		kbShift(tl[1], -1),
		kbShift(kbSum([]float64{1.0 / o.Jmid}, nrp), -1),
	}

	// integration points
	nip := len(o.Ips)
	k = &kbAnaKin{Eps: make([]*kbVar, nip), Kap: make([]*kbVar, nip), R: make([]*kbVar, nip)}
	if o.dyn {
		k.Th = make([]*kbVar, nip)
	}
	for i, ip := range o.Ips {
		ψ := kbSum(ip.L[:2], ψcp[0], ψcp[1])
		dψ := kbSum(ip.DL[:2], ψcp[0], ψcp[1])
		κ := kbSum([]float64{1.0 / o.J[i]}, kbJrTimes(ψ, dψ))
		k.Kap[i] = kbShift(κ, -o.K0[i][0], -o.K0[i][1], -o.K0[i][2])
		k.Eps[i] = kbSum(ip.L, ecp...)
		k.R[i] = hermite(ip.H)
		if o.dyn {
			Qip := kbQuatMul(Q3, kbQuatExp(ψ))
			qn := rot.Conj(o.Qn[i])
			k.Th[i] = kbQuatLog(kbQuatMul(kbConst(qn[:]...), Qip))
		}
	}
	return
}

// kinematic quantities ///////////////////////////////////////////////////////////////////////////

// kbVar holds the values of a kinematic quantity with their gradients (rows of B) and Hessians
// (geometric operators G) w.r.t the local DOFs
type kbVar struct {
	V []float64
	G [][kbNdof]float64
	H [][kbNdof][kbNdof]float64
}

func newKbVar(n int) *kbVar {
	return &kbVar{make([]float64, n), make([][kbNdof]float64, n), make([][kbNdof][kbNdof]float64, n)}
}

// kbDofs returns x0 + q[idx]
func kbDofs(q, x0 []float64, idx ...int) (y *kbVar) {
	y = newKbVar(len(idx))
	for i, dof := range idx {
		y.V[i] = x0[i] + q[dof]
		y.G[i][dof] = 1
	}
	return
}

// kbConst returns a constant quantity
func kbConst(v ...float64) (y *kbVar) {
	y = newKbVar(len(v))
	copy(y.V, v)
	return
}

// kbCat concatenates quantities
func kbCat(xs ...*kbVar) (y *kbVar) {
	y = new(kbVar)
	for _, x := range xs {
		y.V = append(y.V, x.V...)
		y.G = append(y.G, x.G...)
		y.H = append(y.H, x.H...)
	}
	return
}

// part returns the components [i, j)
func (x *kbVar) part(i, j int) *kbVar {
	return &kbVar{x.V[i:j], x.G[i:j], x.H[i:j]}
}

// kbSum returns Σ c[k] xs[k]; all xs have the same size
func kbSum(c []float64, xs ...*kbVar) (y *kbVar) {
	y = newKbVar(len(xs[0].V))
	for k, x := range xs {
		if c[k] == 0 {
			continue
		}
		for i := range y.V {
			y.V[i] += c[k] * x.V[i]
			for a := 0; a < kbNdof; a++ {
				y.G[i][a] += c[k] * x.G[i][a]
				for b := 0; b < kbNdof; b++ {
					y.H[i][a][b] += c[k] * x.H[i][a][b]
				}
			}
		}
	}
	return
}

// kbShift returns x + x0
func kbShift(x *kbVar, x0 ...float64) (y *kbVar) {
	y = kbSum([]float64{1}, x)
	for i := range y.V {
		y.V[i] += x0[i]
	}
	return
}

// kbMap returns y = F(x) given the values, the Jacobian J[i][a] = ∂F_i/∂x_a and the Hessians
// H[i][a][b] = ∂²F_i/∂x_a∂x_b of F at x (nil H means that F is linear):
//
//	∂y_i/∂q = J_ia ∂x_a/∂q
//	∂²y_i/∂q² = J_ia ∂²x_a/∂q² + H_iab ∂x_a/∂q ⊗ ∂x_b/∂q
func kbMap(x *kbVar, val []float64, J [][]float64, H [][][]float64) (y *kbVar) {
	y = newKbVar(len(val))
	copy(y.V, val)
	for i := range val {
		for a, Jia := range J[i] {
			if Jia == 0 {
				continue
			}
			for k := 0; k < kbNdof; k++ {
				y.G[i][k] += Jia * x.G[a][k]
				for l := 0; l < kbNdof; l++ {
					y.H[i][k][l] += Jia * x.H[a][k][l]
				}
			}
		}
		if H == nil {
			continue
		}
		for a, row := range H[i] {
			for b, Hab := range row {
				if Hab == 0 {
					continue
				}
				for k := 0; k < kbNdof; k++ {
					if x.G[a][k] == 0 {
						continue
					}
					for l := 0; l < kbNdof; l++ {
						y.H[i][k][l] += Hab * x.G[a][k] * x.G[b][l]
					}
				}
			}
		}
	}
	return
}

// kbBilinear returns y_i = C_irs a_r b_s
func kbBilinear(a, b *kbVar, C [][][]float64) *kbVar {
	na, nb, ny := len(a.V), len(b.V), len(C)
	val := make([]float64, ny)
	J := utl.Alloc(ny, na+nb)
	H := make([][][]float64, ny)
	for i := 0; i < ny; i++ {
		H[i] = utl.Alloc(na+nb, na+nb)
		for r := 0; r < na; r++ {
			for s := 0; s < nb; s++ {
				c := C[i][r][s]
				if c == 0 {
					continue
				}
				val[i] += c * a.V[r] * b.V[s]
				J[i][r] += c * b.V[s]
				J[i][na+s] += c * a.V[r]
				H[i][r][na+s] += c
				H[i][na+s][r] += c
			}
		}
	}
	return kbMap(kbCat(a, b), val, J, H)
}

// kbFun returns f(x) of a scalar x given f and its first and second derivatives at x
func kbFun(x *kbVar, f [3]float64) *kbVar {
	return kbMap(x, []float64{f[0]}, [][]float64{{f[1]}}, [][][]float64{{{f[2]}}})
}

// kbDot returns a⋅b
func kbDot(a, b *kbVar) *kbVar { return kbBilinear(a, b, kbDotC) }

// kbCross returns a × b
func kbCross(a, b *kbVar) *kbVar { return kbBilinear(a, b, kbCrossC) }

// kbScale returns s v for a scalar s
func kbScale(s, v *kbVar) *kbVar { return kbBilinear(s, v, kbScaleC(len(v.V))) }

// kbQuatMul returns p ⊗ q
func kbQuatMul(p, q *kbVar) *kbVar { return kbBilinear(p, q, kbQuatC) }

// kbQuatConj returns the conjugate of q
func kbQuatConj(q *kbVar) *kbVar {
	J := [][]float64{{-1, 0, 0, 0}, {0, -1, 0, 0}, {0, 0, -1, 0}, {0, 0, 0, 1}}
	return kbMap(q, []float64{-q.V[0], -q.V[1], -q.V[2], q.V[3]}, J, nil)
}

// bilinear forms
var (
	kbDotC   = [][][]float64{{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
	kbCrossC = func() (C [][][]float64) {
		C = alloc3(3, 3, 3)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				for k := 0; k < 3; k++ {
					C[i][j][k] = float64((i-j)*(j-k)*(k-i)) / 2.0
				}
			}
		}
		return
	}()
	kbQuatC = func() (C [][][]float64) { // {pw qv + qw pv + pv×qv, pw qw - pv⋅qv}
		C = alloc3(4, 4, 4)
		for i := 0; i < 3; i++ {
			C[i][3][i] = 1
			C[i][i][3] = 1
			C[3][i][i] = -1
			for j := 0; j < 3; j++ {
				for k := 0; k < 3; k++ {
					C[i][j][k] = kbCrossC[i][j][k]
				}
			}
		}
		C[3][3][3] = 1
		return
	}()
)

func kbScaleC(n int) (C [][][]float64) {
	C = alloc3(n, 1, n)
	for i := 0; i < n; i++ {
		C[i][0][i] = 1
	}
	return
}

// rotation maps ////////////////////////////////////////////////////////////////////////////////////

// kbQuatExp returns the quaternion {c θ, w} of the rotation vector θ with c(s) and w(s), s = θ⋅θ:
//
//	∂(cθ_i)/∂θ_j = c δ_ij + 2c' θ_i θ_j
//	∂²(cθ_i)/∂θ_j∂θ_k = 2c' (δ_ij θ_k + δ_ik θ_j + δ_jk θ_i) + 4c'' θ_i θ_j θ_k
//	∂w/∂θ_j = 2w' θ_j    ∂²w/∂θ_j∂θ_k = 2w' δ_jk + 4w'' θ_j θ_k
func kbQuatExp(θ *kbVar) *kbVar {
	t := θ.V
	c, w := rot.ExpDeriv(t[0]*t[0] + t[1]*t[1] + t[2]*t[2])
	val := []float64{c[0] * t[0], c[0] * t[1], c[0] * t[2], w[0]}
	J := utl.Alloc(4, 3)
	H := alloc3(4, 3, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			J[i][j] = c[0]*δ(i, j) + 2*c[1]*t[i]*t[j]
			for k := 0; k < 3; k++ {
				H[i][j][k] = 2*c[1]*(δ(i, j)*t[k]+δ(i, k)*t[j]+δ(j, k)*t[i]) + 4*c[2]*t[i]*t[j]*t[k]
			}
			H[3][i][j] = 2*w[1]*δ(i, j) + 4*w[2]*t[i]*t[j]
		}
		J[3][i] = 2 * w[1] * t[i]
	}
	return kbMap(θ, val, J, H)
}

// kbQuatLog returns the rotation vector θ = 2 f(n) v of a unit quaternion {v, w} with n = v⋅v and
// f(n) = asin(√n)/√n (q is flipped if w < 0):
//
//	∂θ_i/∂v_j = 2f δ_ij + 4f' v_i v_j
//	∂²θ_i/∂v_j∂v_k = 4f' (δ_ij v_k + δ_ik v_j + δ_jk v_i) + 8f'' v_i v_j v_k
func kbQuatLog(q *kbVar) *kbVar {
	if q.V[3] < 0 {
		q = kbSum([]float64{-1}, q)
	}
	v := q.V[:3]
	f := rot.AsinDeriv(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	val := make([]float64, 3)
	J := utl.Alloc(3, 4)
	H := alloc3(3, 4, 4)
	for i := 0; i < 3; i++ {
		val[i] = 2 * f[0] * v[i]
		for j := 0; j < 3; j++ {
			J[i][j] = 2*f[0]*δ(i, j) + 4*f[1]*v[i]*v[j]
			for k := 0; k < 3; k++ {
				H[i][j][k] = 4*f[1]*(δ(i, j)*v[k]+δ(i, k)*v[j]+δ(j, k)*v[i]) + 8*f[2]*v[i]*v[j]*v[k]
			}
		}
	}
	return kbMap(q, val, J, H)
}

// kbG1 returns the first base vector of the triad of the unit quaternion q = {x, y, z, w}:
//
//	g1 = {1 - 2(y² + z²), 2(xy + zw), 2(xz - yw)}
func kbG1(q *kbVar) *kbVar {
	x, y, z, w := q.V[0], q.V[1], q.V[2], q.V[3]
	val := []float64{1 - 2*(y*y+z*z), 2 * (x*y + z*w), 2 * (x*z - y*w)}
	J := [][]float64{
		{0, -4 * y, -4 * z, 0},
		{2 * y, 2 * x, 2 * w, 2 * z},
		{2 * z, -2 * w, 2 * x, -2 * y},
	}
	H := alloc3(3, 4, 4)
	H[0][1][1], H[0][2][2] = -4, -4
	H[1][0][1], H[1][1][0], H[1][2][3], H[1][3][2] = 2, 2, 2, 2
	H[2][0][2], H[2][2][0], H[2][1][3], H[2][3][1] = 2, 2, -2, -2
	return kbMap(q, val, J, H)
}

// kbNormalize returns e = v/|v| and n = |v|:
//
//	∂e_i/∂v_j = (δ_ij - e_i e_j)/n    ∂²e_i/∂v_j∂v_k = (3 e_i e_j e_k - δ_ij e_k - δ_ik e_j - δ_jk e_i)/n²
//	∂n/∂v_j = e_j                     ∂²n/∂v_j∂v_k = (δ_jk - e_j e_k)/n
func kbNormalize(v *kbVar) (e, n *kbVar) {
	nv := math.Sqrt(v.V[0]*v.V[0] + v.V[1]*v.V[1] + v.V[2]*v.V[2])
	u := []float64{v.V[0] / nv, v.V[1] / nv, v.V[2] / nv}
	val := []float64{u[0], u[1], u[2], nv}
	J := utl.Alloc(4, 3)
	H := alloc3(4, 3, 3)
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			J[i][j] = (δ(i, j) - u[i]*u[j]) / nv
			for k := 0; k < 3; k++ {
				H[i][j][k] = (3*u[i]*u[j]*u[k] - δ(i, j)*u[k] - δ(i, k)*u[j] - δ(j, k)*u[i]) / (nv * nv)
			}
			H[3][j][i] = (δ(i, j) - u[i]*u[j]) / nv
		}
		J[3][j] = u[j]
	}
	y := kbMap(v, val, J, H)
	return y.part(0, 3), y.part(3, 4)
}

// kbAxisAngleX returns the quaternion {sin(a/2), 0, 0, cos(a/2)} of a rotation with angle a about e1
func kbAxisAngleX(a *kbVar) *kbVar {
	s, c := math.Sin(a.V[0]/2), math.Cos(a.V[0]/2)
	J := [][]float64{{c / 2}, {0}, {0}, {-s / 2}}
	H := [][][]float64{{{-s / 4}}, {{0}}, {{0}}, {{-c / 4}}}
	return kbMap(a, []float64{s, 0, 0, c}, J, H)
}

// kbSmallestRotation returns q_sr ⊗ q where q_sr = p(c) {g1 × t, 1 + c} is the smallest rotation
// mapping the first base vector g1 of q onto t; c = g1⋅t and p(c) = 1/√(2(1+c))
func kbSmallestRotation(q, t *kbVar) *kbVar {
	g := kbG1(q)
	c := kbDot(g, t)
	p := kbFun(c, rot.SrDeriv(c.V[0]))
	qsr := kbCat(kbScale(p, kbCross(g, t)), kbScale(p, kbShift(c, 1)))
	return kbQuatMul(qsr, q)
}

// kbJrTimes returns Jr(ψ) dψ = dψ - β ψ × dψ + γ ψ × (ψ × dψ) with β(s) and γ(s), s = ψ⋅ψ
func kbJrTimes(ψ, dψ *kbVar) *kbVar {
	s := kbDot(ψ, ψ)
	β, γ := rot.JacDeriv(s.V[0])
	a := kbCross(ψ, dψ)
	b := kbCross(ψ, a)
	return kbSum([]float64{1, -1, 1}, dψ, kbScale(kbFun(s, β), a), kbScale(kbFun(s, γ), b))
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// δ returns the Kronecker delta
func δ(i, j int) float64 {
	if i == j {
		return 1
	}
	return 0
}

func alloc3(m, n, p int) (a [][][]float64) {
	a = make([][][]float64, m)
	for i := range a {
		a[i] = utl.Alloc(n, p)
	}
	return
}
