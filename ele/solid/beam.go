// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"math"

	"github.com/cpmech/beamcontact/ele"
	"github.com/cpmech/beamcontact/inp"
	"github.com/cpmech/beamcontact/mdl/sld"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/utl"
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// Beam represents a structural beam element (Euler-Bernoulli, linear elastic, small displacements)
//
//	2D    y1
//	       ^
//	       | qnL          qn            qnR
//	      (0)-----------------------------(1)------> y0      DOFs per node: ux uy rz
//
//	3D    y0 is aligned with the beam; y1 is the projection of the global z-axis (or the global
//	      x-axis if the beam is vertical) onto the plane normal to y0; y2 = y0 × y1.
//	                                                         DOFs per node: ux uy uz rx ry rz
//
// The bending rigidity about y2 (in-plane bending in 2D) is EI3; about y1 is EI2. These follow the
// convention of kbeam, whose material axes {g1, g2, g3} coincide with {y0, y1, y2} at the reference
// configuration of a straight kbeam.
type Beam struct {

	// basic data
	Cell *inp.Cell   // the cell structure
	X    [][]float64 // matrix of nodal coordinates [ndim][nnode]
	Nu   int         // total number of unknowns
	Ndim int         // space dimension
	Nn   int         // number of DOFs per node

	// parameters and properties
	Mdl sld.Section // section model
	L   float64     // (derived) length of beam

	// for output
	Nstations int // number of points along beam to generate bending moment / shear force diagrams

	// loads
	Gfcn dbf.T         // gravity function
	QnL  dbf.T         // 2D: distributed normal load: left
	QnR  dbf.T         // 2D: distributed normal load: right
	Qt   dbf.T         // distributed tangential load
	Q1   dbf.T         // 3D: load along y1
	Q2   dbf.T         // 3D: load along y2
	Hasq bool          // has distributed loads
	E    [3][3]float64 // unit vectors aligned with beam element (rows)

	// vectors and matrices
	T  [][]float64 // global-to-local transformation matrix [nu][nu]
	Kl [][]float64 // local K matrix
	K  [][]float64 // global K matrix
	Ml [][]float64 // local M matrix
	M  [][]float64 // global M matrix

	// problem variables
	Umap []int // assembly map (location array/element equations)

	// scratchpad
	ue  []float64 // global u vector
	ζe  []float64 // local ζ* vector
	fi  []float64 // [nu] internal forces
	fxl []float64 // local external force vector
}

// register element
func init() {

	ele.Register("beam",

		// information
		func(sim *inp.Simulation, cell *inp.Cell, edat *inp.ElemData) *ele.Info {
			var info ele.Info
			ykeys := []string{"ux", "uy", "rz"}
			if sim.Ndim == 3 {
				ykeys = []string{"ux", "uy", "uz", "rx", "ry", "rz"}
			}
			info.Dofs = make([][]string, len(cell.Verts))
			for m := 0; m < len(cell.Verts); m++ {
				info.Dofs[m] = ykeys
			}
			info.Y2F = map[string]string{"ux": "fx", "uy": "fy", "uz": "fz", "rx": "mx", "ry": "my", "rz": "mz"}
			info.T2vars = ykeys
			return &info
		},

		// allocator
		func(sim *inp.Simulation, cell *inp.Cell, edat *inp.ElemData, x [][]float64) ele.Element {

			// basic data
			var o Beam
			o.Cell = cell
			o.X = x
			o.Ndim = sim.Ndim
			o.Nn = 3 * (o.Ndim - 1)
			o.Nu = 2 * o.Nn
			if len(cell.Verts) != 2 {
				chk.Panic("beam requires lin2 cells (2 vertices). cell %d has %d vertices", cell.Id, len(cell.Verts))
			}

			// model
			mat := sim.MatModels.Get(edat.Mat)
			if mat == nil {
				chk.Panic("cannot find material %q for beam {tag=%d, id=%d}\n", edat.Mat, cell.Tag, cell.Id)
			}
			sec, ok := mat.Sld.(sld.Section)
			if !ok {
				chk.Panic("material %q does not provide a beam section model {tag=%d, id=%d}\n", edat.Mat, cell.Tag, cell.Id)
			}
			o.Mdl = sec

			// check
			ϵp := 1e-9
			EA, GJ, EI2, EI3 := sec.Rigidities()
			if EA < ϵp || EI3 < ϵp {
				chk.Panic("beam: EA and EI3 must be positive. EA=%g EI3=%g are invalid", EA, EI3)
			}
			if o.Ndim == 3 && (GJ < ϵp || EI2 < ϵp) {
				chk.Panic("beam: GJ and EI2 must be positive in 3D. GJ=%g EI2=%g are invalid", GJ, EI2)
			}

			// for output
			o.Nstations = ele.FlagInt(edat.Extra, "nsta", 11)

			// vectors and matrices
			o.T = utl.Alloc(o.Nu, o.Nu)
			o.Kl = utl.Alloc(o.Nu, o.Nu)
			o.K = utl.Alloc(o.Nu, o.Nu)
			o.Ml = utl.Alloc(o.Nu, o.Nu)
			o.M = utl.Alloc(o.Nu, o.Nu)
			o.ue = make([]float64, o.Nu)
			o.ζe = make([]float64, o.Nu)
			o.fi = make([]float64, o.Nu)
			o.fxl = make([]float64, o.Nu)

			// compute K and M
			o.Recompute(!sim.Data.Steady)
			return &o
		},
	)
}

// Id returns the cell Id
func (o *Beam) Id() int { return o.Cell.Id }

// SetEqs set equations [2][?]. Format of eqs == format of info.Dofs
func (o *Beam) SetEqs(eqs [][]int) (err error) {
	o.Umap = make([]int, o.Nu)
	for m := 0; m < 2; m++ {
		if len(eqs[m]) != o.Nn {
			return chk.Err("beam: node %d must have %d equations. %d is incorrect", m, o.Nn, len(eqs[m]))
		}
		for i := 0; i < o.Nn; i++ {
			o.Umap[i+m*o.Nn] = eqs[m][i]
		}
	}
	return
}

// GetEqs returns the equations of all DOFs
func (o *Beam) GetEqs() []int { return o.Umap }

// SetEleConds set element conditions
func (o *Beam) SetEleConds(key string, f dbf.T, extra string) (err error) {
	switch key {
	case "g":
		o.Gfcn = f
		return
	case "qn":
		o.QnL, o.QnR = f, f
	case "qnL":
		o.QnL = f
	case "qnR":
		o.QnR = f
	case "qt":
		o.Qt = f
	case "q1":
		o.Q1 = f
	case "q2":
		o.Q2 = f
	default:
		return chk.Err("beam cannot handle element condition %q", key)
	}
	o.Hasq = true
	return
}

// InterpStarVars interpolates star variables to integration points
func (o *Beam) InterpStarVars(sol *ele.Solution) (err error) {
	for i, I := range o.Umap {
		o.ζe[i] = sol.Zet[I]
	}
	return
}

// AddToRhs adds -R to global residual vector fb
func (o *Beam) AddToRhs(fb []float64, sol *ele.Solution) (err error) {

	// node displacements
	for i, I := range o.Umap {
		o.ue[i] = sol.Y[I]
	}

	// steady/dynamics
	dyn := !sol.Steady && sol.DynCfs != nil
	var α1 float64
	if dyn {
		α1, _, _, _, _, _ = sol.DynCfs.GetAlps()
	}
	for i := 0; i < o.Nu; i++ {
		o.fi[i] = 0
		for j := 0; j < o.Nu; j++ {
			o.fi[i] += o.K[i][j] * o.ue[j]
			if dyn {
				o.fi[i] += o.M[i][j] * (α1*o.ue[j] - o.ζe[j])
			}
		}
	}

	// external forces: fi -= trans(T) * fxl
	if o.Hasq || o.Gfcn != nil {
		o.calcFxl(sol.T)
		for i := 0; i < o.Nu; i++ {
			for j := 0; j < o.Nu; j++ {
				o.fi[i] -= o.T[j][i] * o.fxl[j]
			}
		}
	}

	// add to fb
	for i, I := range o.Umap {
		fb[I] -= o.fi[i]
	}
	return
}

// AddToKb adds element K to global Jacobian matrix Kb
func (o *Beam) AddToKb(Kb *sparse.COO, sol *ele.Solution, firstIt bool) (err error) {
	if sol.Steady || sol.DynCfs == nil {
		ele.AddToKbMat(Kb, o.Umap, o.K)
		return
	}
	α1, _, _, _, _, _ := sol.DynCfs.GetAlps()
	for i, I := range o.Umap {
		for j, J := range o.Umap {
			Kb.Set(I, J, o.M[i][j]*α1+o.K[i][j])
		}
	}
	return
}

// Encode encodes internal variables
func (o *Beam) Encode(enc utl.Encoder) (err error) {
	return
}

// Decode decodes internal variables
func (o *Beam) Decode(dec utl.Decoder) (err error) {
	return
}

// OutIpCoords returns the coordinates of stations along the beam
func (o *Beam) OutIpCoords() (C [][]float64) {
	C = make([][]float64, o.Nstations)
	dξ := 1.0 / float64(o.Nstations-1)
	for i := 0; i < o.Nstations; i++ {
		ξ := float64(i) * dξ
		C[i] = make([]float64, o.Ndim)
		for j := 0; j < o.Ndim; j++ {
			C[i][j] = (1.0-ξ)*o.X[j][0] + ξ*o.X[j][1]
		}
	}
	return
}

// OutIpKeys returns the stations' keys
func (o *Beam) OutIpKeys() []string {
	if o.Ndim == 3 {
		return []string{"N", "T", "M2", "M3"}
	}
	return []string{"N", "V", "M"}
}

// OutIpVals returns the stations' values corresponding to keys
func (o *Beam) OutIpVals(M *ele.IpsMap, sol *ele.Solution) {
	n := o.Nstations
	dξ := 1.0 / float64(n-1)
	for i := 0; i < n; i++ {
		r := o.Resultants(sol, float64(i)*dξ)
		if o.Ndim == 3 {
			M.Set("N", i, n, r.N)
			M.Set("T", i, n, r.T)
			M.Set("M2", i, n, r.M2)
			M.Set("M3", i, n, r.M3)
			continue
		}
		M.Set("N", i, n, r.N)
		M.Set("V", i, n, r.V1)
		M.Set("M", i, n, r.M3)
	}
}

// Recompute re-compute matrices after dimensions or parameters are externally changed
func (o *Beam) Recompute(withM bool) {

	// unit vectors aligned with beam element
	var d [3]float64
	o.L = 0
	for i := 0; i < o.Ndim; i++ {
		d[i] = o.X[i][1] - o.X[i][0]
		o.L += d[i] * d[i]
	}
	o.L = math.Sqrt(o.L)
	if o.L < 1e-14 {
		chk.Panic("beam %d has zero length", o.Cell.Id)
	}
	o.E = [3][3]float64{}
	for i := 0; i < 3; i++ {
		o.E[0][i] = d[i] / o.L
	}
	if o.Ndim == 2 {
		o.E[1] = [3]float64{-o.E[0][1], o.E[0][0], 0}
		o.E[2] = [3]float64{0, 0, 1}
	} else {
		up := [3]float64{0, 0, 1}
		if math.Abs(o.E[0][2]) > 1.0-1e-5 { // vertical
			up = [3]float64{1, 0, 0}
		}
		c := up[0]*o.E[0][0] + up[1]*o.E[0][1] + up[2]*o.E[0][2]
		var nrm float64
		for i := 0; i < 3; i++ {
			o.E[1][i] = up[i] - c*o.E[0][i]
			nrm += o.E[1][i] * o.E[1][i]
		}
		nrm = math.Sqrt(nrm)
		for i := 0; i < 3; i++ {
			o.E[1][i] /= nrm
		}
		o.E[2] = [3]float64{
			o.E[0][1]*o.E[1][2] - o.E[0][2]*o.E[1][1],
			o.E[0][2]*o.E[1][0] - o.E[0][0]*o.E[1][2],
			o.E[0][0]*o.E[1][1] - o.E[0][1]*o.E[1][0],
		}
	}

	// global to local transformation matrix: rotation of each group of ndim components
	for i := range o.T {
		for j := range o.T[i] {
			o.T[i][j] = 0
		}
	}
	rotate := func(b int) {
		for i := 0; i < o.Ndim; i++ {
			for j := 0; j < o.Ndim; j++ {
				o.T[b+i][b+j] = o.E[i][j]
			}
		}
	}
	for m := 0; m < 2; m++ {
		b := m * o.Nn
		rotate(b)
		if o.Ndim == 2 {
			o.T[b+2][b+2] = 1 // rz
		} else {
			rotate(b + 3)
		}
	}

	// stiffness matrix in local system
	EA, GJ, EI2, EI3 := o.Mdl.Rigidities()
	l := o.L
	zero(o.Kl)
	o.addAxial(o.Kl, 0, EA/l, [2][2]float64{{1, -1}, {-1, 1}})
	if o.Ndim == 2 {
		o.addBending(o.Kl, 1, 2, 1, bendingK(EI3, l))
	} else {
		o.addAxial(o.Kl, 3, GJ/l, [2][2]float64{{1, -1}, {-1, 1}})
		o.addBending(o.Kl, 1, 5, 1, bendingK(EI3, l))
		o.addBending(o.Kl, 2, 4, -1, bendingK(EI2, l))
	}
	triple(o.K, o.T, o.Kl)

	// mass matrix
	if withM {
		ρA, ρJ, _, _ := o.Mdl.Inertia()
		zero(o.Ml)
		o.addAxial(o.Ml, 0, ρA*l/6.0, [2][2]float64{{2, 1}, {1, 2}})
		if o.Ndim == 2 {
			o.addBending(o.Ml, 1, 2, 1, bendingM(ρA, l))
		} else {
			o.addAxial(o.Ml, 3, ρJ*l/6.0, [2][2]float64{{2, 1}, {1, 2}})
			o.addBending(o.Ml, 1, 5, 1, bendingM(ρA, l))
			o.addBending(o.Ml, 2, 4, -1, bendingM(ρA, l))
		}
		triple(o.M, o.T, o.Ml)
	}
}

// BeamResultants holds the stress resultants at a station (local system)
type BeamResultants struct {
	N      float64 // axial force
	V1, V2 float64 // shear forces along y1 and y2
	T      float64 // torque
	M2, M3 float64 // bending moments about y1 (EI2) and about y2 (EI3)
}

// Resultants computes the stress resultants at station ξ in [0, 1] from the equilibrium of the
// segment [0, ξ⋅L] subjected to the end forces of the element and the distributed loads
func (o *Beam) Resultants(sol *ele.Solution, ξ float64) (r BeamResultants) {

	// end forces in local system: p = Kl⋅ua - fxl
	ua := make([]float64, o.Nu)
	for i := 0; i < o.Nu; i++ {
		for j, J := range o.Umap {
			ua[i] += o.T[i][j] * sol.Y[J]
		}
	}
	o.calcFxl(sol.T)
	p := make([]float64, o.Nu)
	for i := 0; i < o.Nu; i++ {
		p[i] = -o.fxl[i]
		for j := 0; j < o.Nu; j++ {
			p[i] += o.Kl[i][j] * ua[j]
		}
	}

	// integrals of linear loads over [0, τ]
	τ := ξ * o.L
	qa, qb := o.localLoads(sol.T)
	integ := func(k int) (F, Mτ float64) {
		dq := (qb[k] - qa[k]) / o.L
		F = qa[k]*τ + dq*τ*τ/2.0
		Mτ = qa[k]*τ*τ/2.0 + dq*τ*τ*τ/6.0
		return
	}

	// resultants
	F0, _ := integ(0)
	r.N = -p[0] - F0
	F1, M1 := integ(1)
	if o.Ndim == 2 {
		r.V1 = p[1] + F1
		r.M3 = -p[2] + τ*p[1] + M1
		return
	}
	F2, M2 := integ(2)
	r.V1 = p[1] + F1
	r.M3 = -p[5] + τ*p[1] + M1
	r.V2 = p[2] + F2
	r.M2 = -(p[4] + τ*p[2] + M2)
	r.T = -p[3]
	return
}

// Diagram returns the coordinates of stations and the bending moment (M3) at stations
func (o *Beam) Diagram(sol *ele.Solution) (X [][]float64, M []float64) {
	X = o.OutIpCoords()
	M = make([]float64, o.Nstations)
	dξ := 1.0 / float64(o.Nstations-1)
	for i := range M {
		M[i] = o.Resultants(sol, float64(i)*dξ).M3
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// localLoads returns the distributed loads in the local system at the left and right ends
func (o *Beam) localLoads(t float64) (qa, qb [3]float64) {
	val := func(f dbf.T) float64 {
		if f == nil {
			return 0
		}
		return f.F(t, nil)
	}
	qt := val(o.Qt)
	qa[0], qb[0] = qt, qt
	if o.Ndim == 2 {
		qa[1], qb[1] = val(o.QnL), val(o.QnR)
	} else {
		q1, q2 := val(o.Q1), val(o.Q2)
		qa[1], qb[1] = q1, q1
		qa[2], qb[2] = q2, q2
	}
	if o.Gfcn != nil {
		ρA, _, _, _ := o.Mdl.Inertia()
		w := -ρA * o.Gfcn.F(t, nil) // along -y (2D) or -z (3D)
		for i := 0; i < 3; i++ {
			qg := o.E[i][o.Ndim-1] * w
			qa[i] += qg
			qb[i] += qg
		}
	}
	return
}

// calcFxl computes the local external force vector due to (linearly varying) distributed loads
func (o *Beam) calcFxl(t float64) {
	for i := range o.fxl {
		o.fxl[i] = 0
	}
	qa, qb := o.localLoads(t)
	l := o.L
	ll := l * l
	o.fxl[0] = l * (2.0*qa[0] + qb[0]) / 6.0
	o.fxl[o.Nn] = l * (qa[0] + 2.0*qb[0]) / 6.0
	transverse := func(iv, iθ int, s float64, qL, qR float64) {
		o.fxl[iv] += l * (7.0*qL + 3.0*qR) / 20.0
		o.fxl[iθ] += s * ll * (3.0*qL + 2.0*qR) / 60.0
		o.fxl[o.Nn+iv] += l * (3.0*qL + 7.0*qR) / 20.0
		o.fxl[o.Nn+iθ] -= s * ll * (2.0*qL + 3.0*qR) / 60.0
	}
	if o.Ndim == 2 {
		transverse(1, 2, 1, qa[1], qb[1])
		return
	}
	transverse(1, 5, 1, qa[1], qb[1])
	transverse(2, 4, -1, qa[2], qb[2])
}

// addAxial adds a two-node axial (or torsional) matrix c⋅A acting on local DOF i of both nodes
func (o *Beam) addAxial(K [][]float64, i int, c float64, A [2][2]float64) {
	idx := [2]int{i, o.Nn + i}
	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			K[idx[a]][idx[b]] += c * A[a][b]
		}
	}
}

// addBending adds a bending matrix B over (v1, θ1, v2, θ2) acting on local DOFs iv (deflection)
// and iθ (rotation); s = -1 if the rotation is the negative of the slope
func (o *Beam) addBending(K [][]float64, iv, iθ int, s float64, B [4][4]float64) {
	idx := [4]int{iv, iθ, o.Nn + iv, o.Nn + iθ}
	sgn := [4]float64{1, s, 1, s}
	for a := 0; a < 4; a++ {
		for b := 0; b < 4; b++ {
			K[idx[a]][idx[b]] += sgn[a] * sgn[b] * B[a][b]
		}
	}
}

// bendingK returns the Euler-Bernoulli bending stiffness matrix
func bendingK(EI, l float64) [4][4]float64 {
	n := EI / (l * l * l)
	return [4][4]float64{
		{12 * n, 6 * l * n, -12 * n, 6 * l * n},
		{6 * l * n, 4 * l * l * n, -6 * l * n, 2 * l * l * n},
		{-12 * n, -6 * l * n, 12 * n, -6 * l * n},
		{6 * l * n, 2 * l * l * n, -6 * l * n, 4 * l * l * n},
	}
}

// bendingM returns the consistent mass matrix for bending
func bendingM(ρA, l float64) [4][4]float64 {
	m := ρA * l / 420.0
	return [4][4]float64{
		{156 * m, 22 * l * m, 54 * m, -13 * l * m},
		{22 * l * m, 4 * l * l * m, 13 * l * m, -3 * l * l * m},
		{54 * m, 13 * l * m, 156 * m, -22 * l * m},
		{-13 * l * m, -3 * l * l * m, -22 * l * m, 4 * l * l * m},
	}
}

// triple computes K := trans(T) * Kl * T
func triple(K, T, Kl [][]float64) {
	n := len(T)
	t := mat.NewDense(n, n, nil)
	kl := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			t.Set(i, j, T[i][j])
			kl.Set(i, j, Kl[i][j])
		}
	}
	var tmp, res mat.Dense
	tmp.Mul(kl, t)
	res.Mul(t.T(), &tmp)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			K[i][j] = res.At(i, j)
		}
	}
}

// zero fills matrix with zeros
func zero(A [][]float64) {
	for i := range A {
		for j := range A[i] {
			A[i][j] = 0
		}
	}
}
