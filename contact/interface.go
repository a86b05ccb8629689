// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package contact implements mortar contact interfaces between a slave and a master polyline in 2D
// with Lagrange multipliers, active set strategies and Coulomb/Tresca friction
package contact

import (
	"math"

	"github.com/cpmech/beamcontact/inp"
	"github.com/cpmech/beamcontact/shp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/floats"
)

// Node holds a node on the interface
type Node struct {
	Vid int        // vertex id
	X   [2]float64 // initial coordinates
	Eqs [2]int     // equations of ux and uy; -1 means that the DOF does not exist (fixed node)
}

// disp returns the displacement of node
func (o *Node) disp(Y []float64) (u [2]float64) {
	for i, I := range o.Eqs {
		if I >= 0 {
			u[i] = Y[I]
		}
	}
	return
}

// Interface implements a mortar contact interface. The geometric quantities (mortar matrices,
// nodal normals and tangents) are computed by Evaluate at the current configuration and kept
// fixed when linearising the constraints.
//
//	weighted gap:  g̃_j = n_j ⋅ (Σ_l M_jl x_l - Σ_k D_jk x_k)        (≥ 0 if open)
//	slip:          ũ_j = t_j ⋅ (Σ_k D_jk Δu_k - Σ_l M_jl Δu_l)      (Δu since last converged state)
//	force (slave): f_k = -Σ_j D_jk (λn_j n_j + λt_j t_j)
//	force (master):f_l = +Σ_j M_jl (λn_j n_j + λt_j t_j)
type Interface struct {

	// input
	Dat    *inp.ContactData // input data
	Slave  []*Node          // slave nodes (ordered)
	Master []*Node          // master nodes (ordered)

	// constants
	Dual   bool       // dual shape functions for Lagrange multipliers
	Mu     float64    // Coulomb friction coefficient
	Bound  float64    // Tresca frictional bound
	Orient float64    // orientation of normals (+1 or -1) such that they point towards the master
	Lshp   *shp.Shape // shape functions of Lagrange multipliers
	Sshp   *shp.Shape // standard shape functions (slave and master geometry)
	Mshp   *shp.Shape // standard shape functions (master); separate scratchpad
	pts    []float64  // integration points
	wts    []float64  // integration weights

	// geometry at current configuration
	N, T      [][2]float64 // [ns] nodal normals and tangents
	D         [][]float64  // [ns][ns] slave mortar matrix
	M         [][]float64  // [ns][nm] master mortar matrix
	Gap       []float64    // [ns] weighted gaps
	Jump      []float64    // [ns] weighted tangential slip since last converged state
	HasMaster []bool       // [ns] slave node support projects onto the master

	// Lagrange multipliers
	Ln []float64 // [ns] normal components (contact pressure is positive)
	Lt []float64 // [ns] tangential components

	// active set
	Status []Status   // [ns] status of slave nodes
	Sgn    []float64  // [ns] direction of slip
	Steps  int        // number of active set steps in current time step
	Zigzag bool       // zig-zagging was detected in the current time step
	hist   *setBuffer // history of active sets

	// converged state
	Us [][2]float64 // [ns] slave displacements
	Um [][2]float64 // [nm] master displacements

	// backup
	bkp struct {
		Ln, Lt []float64
		Status []Status
		Sgn    []float64
	}
}

// New allocates a new interface. X holds the coordinates of all vertices (of the region) and eqs
// the equations of ux and uy of all vertices (-1 if not available)
func New(dat *inp.ContactData, X [][]float64, eqs [][2]int) (o *Interface, err error) {

	// input
	o = new(Interface)
	o.Dat = dat
	mk := func(vids []int) (nodes []*Node) {
		nodes = make([]*Node, len(vids))
		for i, vid := range vids {
			nodes[i] = &Node{Vid: vid, X: [2]float64{X[vid][0], X[vid][1]}, Eqs: eqs[vid]}
		}
		return
	}
	o.Slave = mk(dat.Slave)
	o.Master = mk(dat.Master)
	ns, nm := len(o.Slave), len(o.Master)
	if ns < 2 || nm < 2 {
		return nil, chk.Err("contact interface requires at least 2 slave and 2 master nodes. ns=%d, nm=%d", ns, nm)
	}

	// constants
	o.Dual = dat.Shape == "dual"
	if dat.Mode == "condensed" && !o.Dual {
		chk.Panic("condensed mode requires dual shape functions for Lagrange multipliers; shape %q is invalid", dat.Shape)
	}
	switch dat.Friction {
	case "coulomb":
		o.Mu = dat.FrCoeff
	case "tresca":
		o.Bound = dat.FrBound
	}
	o.Lshp = shp.Get(dat.ShapeName())
	o.Sshp = shp.Get("lin2")
	o.Mshp = shp.Get("lin2")
	nip := dat.Nip
	if nip < 1 {
		nip = 5
	}
	o.pts, o.wts = shp.GaussLegendre(nip)

	// orientation of normals
	o.Orient = 1
	var cs, cm, navg [2]float64
	for k, p := range o.Slave {
		cs[0] += p.X[0] / float64(ns)
		cs[1] += p.X[1] / float64(ns)
		if k > 0 {
			n := segNormal(o.Slave[k-1].X, p.X, 1)
			navg[0] += n[0]
			navg[1] += n[1]
		}
	}
	for _, p := range o.Master {
		cm[0] += p.X[0] / float64(nm)
		cm[1] += p.X[1] / float64(nm)
	}
	if navg[0]*(cm[0]-cs[0])+navg[1]*(cm[1]-cs[1]) < 0 {
		o.Orient = -1
	}

	// allocate
	o.N = make([][2]float64, ns)
	o.T = make([][2]float64, ns)
	o.D = make([][]float64, ns)
	o.M = make([][]float64, ns)
	for j := 0; j < ns; j++ {
		o.D[j] = make([]float64, ns)
		o.M[j] = make([]float64, nm)
	}
	o.Gap = make([]float64, ns)
	o.Jump = make([]float64, ns)
	o.HasMaster = make([]bool, ns)
	o.Ln = make([]float64, ns)
	o.Lt = make([]float64, ns)
	o.Status = make([]Status, ns)
	o.Sgn = make([]float64, ns)
	o.hist = newSetBuffer(3)
	o.Us = make([][2]float64, ns)
	o.Um = make([][2]float64, nm)
	return
}

// Evaluate computes the mortar matrices, normals, weighted gaps and jumps at the current configuration
func (o *Interface) Evaluate(Y []float64) (err error) {

	// current positions
	ns, nm := len(o.Slave), len(o.Master)
	xs := make([][2]float64, ns)
	xm := make([][2]float64, nm)
	for k, p := range o.Slave {
		u := p.disp(Y)
		xs[k] = [2]float64{p.X[0] + u[0], p.X[1] + u[1]}
	}
	for l, p := range o.Master {
		u := p.disp(Y)
		xm[l] = [2]float64{p.X[0] + u[0], p.X[1] + u[1]}
	}

	// nodal normals and tangents
	for k := range o.N {
		o.N[k] = [2]float64{}
	}
	for k := 1; k < ns; k++ {
		if dist(xs[k-1], xs[k]) < 1e-14 {
			return chk.Err("slave segment %d has zero length", k-1)
		}
		n := segNormal(xs[k-1], xs[k], o.Orient)
		for _, j := range []int{k - 1, k} {
			o.N[j][0] += n[0]
			o.N[j][1] += n[1]
		}
	}
	for k := range o.N {
		l := math.Hypot(o.N[k][0], o.N[k][1])
		if l < 1e-14 {
			return chk.Err("cannot compute normal at slave node %d", o.Slave[k].Vid)
		}
		o.N[k][0] /= l
		o.N[k][1] /= l
		o.T[k] = [2]float64{-o.N[k][1], o.N[k][0]}
	}

	// mortar integrals
	for j := 0; j < ns; j++ {
		floats.Scale(0, o.D[j])
		floats.Scale(0, o.M[j])
	}
	for e := 0; e+1 < ns; e++ {
		J := dist(xs[e], xs[e+1]) / 2.0
		for p, ξ := range o.pts {
			o.Sshp.Calc(ξ, false)
			o.Lshp.Calc(ξ, false)
			S, Φ := o.Sshp.S, o.Lshp.S
			var x, n [2]float64
			for a := 0; a < 2; a++ {
				for i := 0; i < 2; i++ {
					x[i] += S[a] * xs[e+a][i]
					n[i] += S[a] * o.N[e+a][i]
				}
			}
			l, η, found := o.project(x, n, xm)
			if !found {
				continue
			}
			o.Mshp.Calc(η, false)
			coef := o.wts[p] * J
			for a := 0; a < 2; a++ {
				for b := 0; b < 2; b++ {
					o.D[e+a][e+b] += coef * Φ[a] * S[b]
					o.M[e+a][l+b] += coef * Φ[a] * o.Mshp.S[b]
				}
			}
		}
	}

	// diagonal D for dual shapes (exact if the support of the node is fully projected)
	for j := 0; j < ns; j++ {
		if o.Dual {
			sum := floats.Sum(o.D[j])
			floats.Scale(0, o.D[j])
			o.D[j][j] = sum
		}
		o.HasMaster[j] = o.D[j][j] > 1e-14
	}

	// weighted gaps and jumps
	for j := 0; j < ns; j++ {
		var g, s [2]float64
		for k, p := range o.Slave {
			if o.D[j][k] == 0 {
				continue
			}
			u := p.disp(Y)
			for i := 0; i < 2; i++ {
				g[i] -= o.D[j][k] * xs[k][i]
				s[i] += o.D[j][k] * (u[i] - o.Us[k][i])
			}
		}
		for l, p := range o.Master {
			if o.M[j][l] == 0 {
				continue
			}
			u := p.disp(Y)
			for i := 0; i < 2; i++ {
				g[i] += o.M[j][l] * xm[l][i]
				s[i] -= o.M[j][l] * (u[i] - o.Um[l][i])
			}
		}
		o.Gap[j] = o.N[j][0]*g[0] + o.N[j][1]*g[1]
		o.Jump[j] = o.T[j][0]*s[0] + o.T[j][1]*s[1]
	}
	return
}

// Commit saves the converged displacements (reference for slip) and resets active set counters
func (o *Interface) Commit(Y []float64) {
	for k, p := range o.Slave {
		o.Us[k] = p.disp(Y)
	}
	for l, p := range o.Master {
		o.Um[l] = p.disp(Y)
	}
	o.Steps = 0
	o.Zigzag = false
	o.hist.Reset()
	if o.Dat.Verbose {
		io.Pf("contact: %d active nodes\n", o.NumActive())
	}
}

// Reset clears multipliers, statuses and converged state
func (o *Interface) Reset() {
	for j := range o.Slave {
		o.Ln[j], o.Lt[j], o.Status[j], o.Sgn[j] = 0, 0, Inactive, 0
		o.Us[j] = [2]float64{}
	}
	for l := range o.Master {
		o.Um[l] = [2]float64{}
	}
	o.Steps = 0
	o.Zigzag = false
	o.hist.Reset()
}

// NodalForces returns the contact forces at slave and master nodes
func (o *Interface) NodalForces() (fs, fm [][2]float64) {
	fs = make([][2]float64, len(o.Slave))
	fm = make([][2]float64, len(o.Master))
	for j := range o.Slave {
		var λ [2]float64
		for i := 0; i < 2; i++ {
			λ[i] = o.Ln[j]*o.N[j][i] + o.Lt[j]*o.T[j][i]
		}
		for k := range o.Slave {
			for i := 0; i < 2; i++ {
				fs[k][i] -= o.D[j][k] * λ[i]
			}
		}
		for l := range o.Master {
			for i := 0; i < 2; i++ {
				fm[l][i] += o.M[j][l] * λ[i]
			}
		}
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// project finds the master segment and natural coordinate of the projection of x along n
func (o *Interface) project(x, n [2]float64, xm [][2]float64) (seg int, η float64, found bool) {
	const tol = 1e-10
	best := math.MaxFloat64
	for l := 0; l+1 < len(xm); l++ {
		a, b := xm[l], xm[l+1]
		den := cross(sub(b, a), n)
		if math.Abs(den) < 1e-14 {
			continue
		}
		s := cross(sub(x, a), n) / den
		if s < -tol || s > 1+tol {
			continue
		}
		s = math.Max(0, math.Min(1, s))
		p := [2]float64{a[0] + s*(b[0]-a[0]), a[1] + s*(b[1]-a[1])}
		d := math.Abs((p[0]-x[0])*n[0] + (p[1]-x[1])*n[1])
		if d < best {
			best, seg, η, found = d, l, 2*s-1, true
		}
	}
	return
}

// segNormal returns the unit normal of segment a→b rotated clockwise and multiplied by orient
func segNormal(a, b [2]float64, orient float64) [2]float64 {
	l := dist(a, b)
	return [2]float64{orient * (b[1] - a[1]) / l, -orient * (b[0] - a[0]) / l}
}

func dist(a, b [2]float64) float64   { return math.Hypot(b[0]-a[0], b[1]-a[1]) }
func sub(a, b [2]float64) [2]float64 { return [2]float64{a[0] - b[0], a[1] - b[1]} }
func cross(a, b [2]float64) float64  { return a[0]*b[1] - a[1]*b[0] }

// Backup saves a copy of multipliers and statuses
func (o *Interface) Backup() {
	o.bkp.Ln = append(o.bkp.Ln[:0], o.Ln...)
	o.bkp.Lt = append(o.bkp.Lt[:0], o.Lt...)
	o.bkp.Status = append(o.bkp.Status[:0], o.Status...)
	o.bkp.Sgn = append(o.bkp.Sgn[:0], o.Sgn...)
}

// Restore recovers multipliers and statuses from the copy saved by Backup
func (o *Interface) Restore() {
	copy(o.Ln, o.bkp.Ln)
	copy(o.Lt, o.bkp.Lt)
	copy(o.Status, o.bkp.Status)
	copy(o.Sgn, o.bkp.Sgn)
	o.Steps = 0
	o.Zigzag = false
	o.hist.Reset()
}
