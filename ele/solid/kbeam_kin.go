// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"github.com/cpmech/beamcontact/ad"
	"github.com/cpmech/beamcontact/rot"
	"github.com/cpmech/beamcontact/triad"
)

// local DOFs of kbeam: [d1(3) θ1(3) t1 d2(3) θ2(3) t2 α]
const (
	kbNdofNode = 7  // DOFs per end node
	kbNdof     = 15 // total number of local DOFs
	kbIalpha   = 14 // index of twist DOF
)

// kbeamKin holds the kinematics of a kbeam at its collocation points and integration points
type kbeamKin[T ad.Scalar[T]] struct {
	Qcp []rot.Quat[T]   // [ncp] triads at collocation points
	Fld *triad.Field[T] // triad field
	Eps []T             // [nip] axial strains
	K   []rot.Vec[T]    // [nip] material curvatures (minus reference ones if ref==true)
	R   []rot.Vec[T]    // [nip] centreline positions
	Q   []rot.Quat[T]   // [nip] triads; only if triads==true
	E   rot.Vec[T]      // unit tangent at mid collocation point
	Lt  [2]rot.Vec[T]   // tangents at end nodes scaled to the parametric domain
	D   [2]rot.Vec[T]   // positions of end nodes
	Ecp [3]T            // axial strains at collocation points
}

// kbeamKinematics computes the kinematics for the local DOFs q
//
//	ref    -- subtract reference curvatures
//	triads -- compute triads at integration points
func kbeamKinematics[T ad.Scalar[T]](o *KBeam, q []T, ref, triads bool) (k *kbeamKin[T]) {

	// end nodes
	k = new(kbeamKin[T])
	var Q [2]rot.Quat[T]
	var tl [2]T
	for m := 0; m < 2; m++ {
		b := m * kbNdofNode
		k.D[m] = rot.Add(rot.Const[T](o.Xe[m]), rot.Vec[T]{q[b], q[b+1], q[b+2]})
		θ := rot.Add(rot.Const[T](o.Th0[m]), rot.Vec[T]{q[b+3], q[b+4], q[b+5]})
		tl[m] = q[b+6].Shift(1)
		Q[m] = rot.RotvecToQuat(θ)
		k.Lt[m] = rot.Scale(tl[m].Scale(o.L0/2.0), rot.G1(Q[m]))
	}

	// mid collocation point: smallest rotation of the last converged triad onto the new tangent
	rp := hermite(k, o.dHmid)
	e, nrp := rot.Normalize(rp)
	k.E = e
	qα := rot.AxisAngleQuat([3]float64{1, 0, 0}, q[kbIalpha].Shift(-o.Ac))
	Q3 := rot.SmallestRotationQuat(rot.QuatProduct(rot.ConstQuat[T](o.Qc3), qα), e)

	// triad field
	k.Qcp = []rot.Quat[T]{Q[0], Q[1], Q3}
	k.Fld = triad.NewField(k.Qcp, kbIref)

	// axial strains at collocation points
	k.Ecp = [3]T{tl[0].Shift(-1), tl[1].Shift(-1), nrp.Scale(1.0 / o.Jmid).Shift(-1)}

	// integration points
	nip := len(o.Ips)
	k.Eps = make([]T, nip)
	k.K = make([]rot.Vec[T], nip)
	k.R = make([]rot.Vec[T], nip)
	if triads {
		k.Q = make([]rot.Quat[T], nip)
	}
	for i, ip := range o.Ips {
		ψ, dψ := k.Fld.Interp(ip.L, ip.DL)
		k.K[i] = rot.ScaleF(1.0/o.J[i], triad.Curvature(ψ, dψ))
		if ref {
			k.K[i] = rot.Sub(k.K[i], rot.Const[T](o.K0[i]))
		}
		ε := ad.C[T](0)
		for c := 0; c < 3; c++ {
			ε = ε.Add(k.Ecp[c].Scale(ip.L[c]))
		}
		k.Eps[i] = ε
		k.R[i] = hermite(k, ip.H)
		if triads {
			k.Q[i] = k.Fld.Quat(ψ)
		}
	}
	return
}

// hermite returns H0 d1 + H1 t1 + H2 d2 + H3 t2; i.e. r(ξ) or r'(ξ) if H holds the derivatives
func hermite[T ad.Scalar[T]](k *kbeamKin[T], H []float64) rot.Vec[T] {
	r := rot.Add(rot.ScaleF(H[0], k.D[0]), rot.ScaleF(H[1], k.Lt[0]))
	r = rot.Add(r, rot.ScaleF(H[2], k.D[1]))
	return rot.Add(r, rot.ScaleF(H[3], k.Lt[1]))
}

// kbeamEnergy computes the stored energy minus the potential of line loads plus, in dynamics, the
// pseudo-potentials of the translational and rotational inertia forces
func kbeamEnergy[T ad.Scalar[T]](o *KBeam, q []T) (W T) {
	k := kbeamKinematics(o, q, true, o.dyn)
	W = ad.C[T](0)
	qext := rot.Const[T](o.qext)
	for i, ip := range o.Ips {
		ε, K := k.Eps[i], k.K[i]
		e := ε.Mul(ε).Scale(o.EA).
			Add(K[0].Mul(K[0]).Scale(o.GJ)).
			Add(K[1].Mul(K[1]).Scale(o.EI2)).
			Add(K[2].Mul(K[2]).Scale(o.EI3)).Scale(0.5)
		if o.hasLoad {
			e = e.Sub(rot.Dot(qext, k.R[i]))
		}
		if o.dyn {
			a := rot.Sub(rot.ScaleF(o.α1, k.R[i]), rot.Const[T](o.Zet[i]))
			e = e.Add(rot.Dot(a, a).Scale(o.RhoA / (2.0 * o.α1)))
			Θ := rot.QuatToRotvec(rot.QuatProduct(rot.ConstQuat[T](rot.Conj(o.Qn[i])), k.Q[i]))
			b := rot.Sub(rot.ScaleF(o.α1, Θ), rot.Const[T](o.ZetΘ[i]))
			for j := 0; j < 3; j++ {
				e = e.Add(b[j].Mul(b[j]).Scale(o.Irho[j] / (2.0 * o.α1)))
			}
		}
		W = W.Add(e.Scale(ip.W * o.J[i]))
	}
	return
}
