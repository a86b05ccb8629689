// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"math"

	"github.com/cpmech/beamcontact/ad"
	"github.com/cpmech/beamcontact/ele"
	"github.com/cpmech/beamcontact/inp"
	"github.com/cpmech/beamcontact/mdl/sld"
	"github.com/cpmech/beamcontact/rot"
	"github.com/cpmech/beamcontact/shp"
	"github.com/cpmech/beamcontact/triad"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/utl"
	"github.com/james-bowman/sparse"
)

// KBeam implements the geometrically nonlinear Kirchhoff beam with weak enforcement of the
// Kirchhoff constraint (rotation vector variant). The centreline is interpolated with cubic Hermite
// polynomials and the triads are interpolated from three collocation points (the two end nodes and
// the middle one) relative to the triad of the middle collocation point.
//
//	  (0)==============(2)==============(1)     nodes of lin3 cell
//	  d1 θ1 t1          α          d2 θ2 t2    DOFs
//
//	d -- displacements of end nodes               keys: ux uy uz
//	θ -- rotation vectors (increments of)         keys: rx ry rz
//	t -- stretch of tangent vectors (t = 1 + ut)  key:  ut
//	α -- twist at middle collocation point        key:  ra (3D only)
//
// In 2D, the element moves in the x-y plane and only ux, uy, rz and ut exist.
type KBeam struct {

	// basic data
	Cell *inp.Cell   // the cell structure
	X    [][]float64 // matrix of nodal coordinates [ndim][nnode]
	Ndim int         // space dimension
	Nu   int         // total number of unknowns
	Fad  bool        // use forward automatic differentiation; otherwise use the analytic path

	// parameters and properties
	Mdl              sld.Section // section model
	EA, GJ, EI2, EI3 float64     // rigidities
	RhoA             float64     // mass per unit length
	Irho             [3]float64  // mass moments of inertia per unit length (material frame)
	Ncp              int         // number of collocation points

	// reference configuration
	Xe    [2][3]float64 // positions of end nodes
	Th0   [2][3]float64 // rotation vectors of end nodes
	L0    float64       // length
	Jmid  float64       // metric |dr/dξ| at middle collocation point
	dHmid []float64     // derivatives of Hermite functions at ξ=0
	Ips   []*kbIp       // integration points
	J     []float64     // [nip] metric |dr/dξ| at integration points
	K0    [][3]float64  // [nip] curvatures at integration points
	R0    [][3]float64  // [nip] positions at integration points

	// triad of middle collocation point at last converged state
	Qc3 [4]float64 // quaternion
	Ac  float64    // twist DOF

	// conditions
	Qfcn [3]dbf.T // distributed loads: qx, qy, qz
	Gfcn dbf.T    // gravity
	Mfcn [3]dbf.T // distributed moments: mx, my, mz

	// dynamics: history at integration points
	Rn, Vn, An [][3]float64 // centreline position, velocity and acceleration at last converged state
	Qn         [][4]float64 // triads at last converged state
	Wn, Bn     [][3]float64 // material angular velocity and acceleration at last converged state
	Zet, Chi   [][3]float64 // star variables: translation
	ZetΘ, ChiΘ [][3]float64 // star variables: rotation

	// problem variables
	Umap [kbNdof]int // assembly map; -1 means that the local DOF does not exist

	// auxiliary
	dyn     bool       // dynamics is on
	α1      float64    // dynamic coefficient
	qext    [3]float64 // line load at current time
	hasLoad bool       // qext is non-zero

	// cached results for the last state
	cacheT float64     // time
	cacheQ []float64   // local DOFs
	fint   []float64   // gradient of energy
	Kint   [][]float64 // Hessian of energy
	fmom   []float64   // generalised forces due to distributed moments
	Kmom   [][]float64 // load stiffness of distributed moments: ∂fmom/∂q
}

// kbIp holds the shape data at an integration point
type kbIp struct {
	Xi, W float64   // natural coordinate and weight
	H, DH []float64 // [4] Hermite functions and derivatives
	L, DL []float64 // [ncp] Lagrange polynomials and derivatives
}

// constants
const (
	kbIref    = 2     // index of collocation point holding the reference triad
	kbNipDflt = 4     // default number of integration points
	kbMinJ    = 1e-12 // minimum metric
	kbLtol    = 1e-13 // tolerance for the reference length
	kbLmaxIt  = 100   // max number of iterations to compute the reference length
	kbNipLen  = 10    // number of Gauss points to compute the reference length
)

// collocation points
var kbXiCp = []float64{-1, 1, 0}

// register element
func init() {

	ele.Register("kbeam",

		// information
		func(sim *inp.Simulation, cell *inp.Cell, edat *inp.ElemData) *ele.Info {

			// new info
			var info ele.Info

			// solution variables
			nverts := len(cell.Verts)
			if nverts != 3 {
				chk.Panic("kbeam requires lin3 cells (3 vertices). cell %d has %d vertices", cell.Id, nverts)
			}
			ykeys := []string{"ux", "uy", "rz", "ut"}
			if sim.Ndim == 3 {
				ykeys = []string{"ux", "uy", "uz", "rx", "ry", "rz", "ut"}
			}
			info.Dofs = make([][]string, nverts)
			for m := 0; m < 2; m++ {
				info.Dofs[m] = ykeys
			}
			info.Dofs[2] = []string{}
			if sim.Ndim == 3 {
				info.Dofs[2] = []string{"ra"}
			}

			// maps
			info.Y2F = map[string]string{"ux": "fx", "uy": "fy", "uz": "fz", "rx": "mx", "ry": "my", "rz": "mz", "ut": "ft", "ra": "ma"}
			return &info
		},

		// allocator
		func(sim *inp.Simulation, cell *inp.Cell, edat *inp.ElemData, x [][]float64) ele.Element {

			// basic data
			var o KBeam
			o.Cell = cell
			o.X = x
			o.Ndim = sim.Ndim
			o.Fad = ele.FlagBool(edat.Extra, "fad", false)

			// flags
			o.Ncp = ele.FlagInt(edat.Extra, "ncp", 3)
			if o.Ncp != 3 {
				chk.Panic("kbeam: only 3 collocation points are available. ncp=%d is invalid {tag=%d, id=%d}", o.Ncp, cell.Tag, cell.Id)
			}

			// model
			mat := sim.MatModels.Get(edat.Mat)
			if mat == nil {
				chk.Panic("cannot find material %q for kbeam {tag=%d, id=%d}\n", edat.Mat, cell.Tag, cell.Id)
			}
			sec, ok := mat.Sld.(sld.Section)
			if !ok {
				chk.Panic("material %q does not provide a beam section model {tag=%d, id=%d}\n", edat.Mat, cell.Tag, cell.Id)
			}
			o.Mdl = sec
			o.EA, o.GJ, o.EI2, o.EI3 = sec.Rigidities()
			var ρJ float64
			o.RhoA, ρJ, o.Irho[1], o.Irho[2] = sec.Inertia()
			o.Irho[0] = ρJ

			// reference tangents
			if len(cell.T0) != 2 {
				chk.Panic("kbeam requires reference tangents at end nodes {tag=%d, id=%d}", cell.Tag, cell.Id)
			}

			// integration points
			nip := kbNipDflt
			if edat.Nip > 0 {
				nip = edat.Nip
			}

			// reference configuration
			err := o.initReference(cell.T0[0], cell.T0[1], nip)
			if err != nil {
				chk.Panic("kbeam {tag=%d, id=%d} failed:\n%v", cell.Tag, cell.Id, err)
			}

			// local DOFs
			o.Umap = [kbNdof]int{-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1}
			o.Nu = 8
			if o.Ndim == 3 {
				o.Nu = kbNdof
			}
			return &o
		},
	)
}

// initReference computes the reference configuration
func (o *KBeam) initReference(t1, t2 [3]float64, nip int) (err error) {

	// end nodes
	for m := 0; m < 2; m++ {
		for i := 0; i < o.Ndim; i++ {
			o.Xe[m][i] = o.X[i][m]
		}
	}
	o.Th0[0] = rot.RotvecFromTangent(t1)
	o.Th0[1] = rot.RotvecFromTangent(t2)

	// reference length
	o.L0, err = referenceLength(o.Xe[0], o.Xe[1], t1, t2)
	if err != nil {
		return
	}

	// shape data
	o.dHmid = make([]float64, 4)
	hmid := make([]float64, 4)
	shp.Hermite(hmid, o.dHmid, nil, 0)
	pts, wts := shp.GaussLegendre(nip)
	o.Ips = make([]*kbIp, nip)
	for i := 0; i < nip; i++ {
		ip := &kbIp{Xi: pts[i], W: wts[i], H: make([]float64, 4), DH: make([]float64, 4), L: make([]float64, 3), DL: make([]float64, 3)}
		shp.Hermite(ip.H, ip.DH, nil, ip.Xi)
		shp.Lagrange(ip.L, ip.DL, kbXiCp, ip.Xi)
		o.Ips[i] = ip
	}

	// metric
	tan := func(dH []float64) float64 {
		var s float64
		for i := 0; i < 3; i++ {
			v := dH[0]*o.Xe[0][i] + dH[1]*o.L0/2*t1[i] + dH[2]*o.Xe[1][i] + dH[3]*o.L0/2*t2[i]
			s += v * v
		}
		return math.Sqrt(s)
	}
	o.Jmid = tan(o.dHmid)
	o.J = make([]float64, nip)
	for i, ip := range o.Ips {
		o.J[i] = tan(ip.DH)
		if o.J[i] < kbMinJ {
			return chk.Err("metric at integration point %d is too small: J = %g", i, o.J[i])
		}
	}
	if o.Jmid < kbMinJ {
		return chk.Err("metric at middle collocation point is too small: J = %g", o.Jmid)
	}

	// triad of middle collocation point
	q1 := rot.QuatOf(o.Th0[0])
	var e [3]float64
	for i := 0; i < 3; i++ {
		e[i] = (o.dHmid[0]*o.Xe[0][i] + o.dHmid[1]*o.L0/2*t1[i] + o.dHmid[2]*o.Xe[1][i] + o.dHmid[3]*o.L0/2*t2[i]) / o.Jmid
	}
	o.Qc3 = rot.QuatVals(rot.SmallestRotationQuat(rot.ConstQuat[ad.Real](q1), rot.Const[ad.Real](e)))

	// reference curvatures, positions and triads
	o.K0 = make([][3]float64, nip)
	k := kbeamKinematics(o, make([]ad.Real, kbNdof), false, true)
	o.R0 = make([][3]float64, nip)
	o.Qn = make([][4]float64, nip)
	for i := 0; i < nip; i++ {
		o.K0[i] = rot.Vals(k.K[i])
		o.R0[i] = rot.Vals(k.R[i])
		o.Qn[i] = rot.QuatVals(k.Q[i])
	}

	// history
	o.Rn = make([][3]float64, nip)
	copy(o.Rn, o.R0)
	o.Vn = make([][3]float64, nip)
	o.An = make([][3]float64, nip)
	o.Wn = make([][3]float64, nip)
	o.Bn = make([][3]float64, nip)
	o.Zet = make([][3]float64, nip)
	o.Chi = make([][3]float64, nip)
	o.ZetΘ = make([][3]float64, nip)
	o.ChiΘ = make([][3]float64, nip)
	return
}

// referenceLength computes the length of the Hermite centreline whose end tangents are scaled by
// half of this same length; i.e. a fixed point of l = ∫|r'(ξ; l)| dξ
func referenceLength(x1, x2, t1, t2 [3]float64) (l float64, err error) {
	for i := 0; i < 3; i++ {
		l += (x2[i] - x1[i]) * (x2[i] - x1[i])
	}
	l = math.Sqrt(l)
	if l < kbMinJ {
		return 0, chk.Err("chord of beam element is too small: %g", l)
	}
	pts, wts := shp.GaussLegendre(kbNipLen)
	H, dH := make([]float64, 4), make([]float64, 4)
	for it := 0; it < kbLmaxIt; it++ {
		var lnew float64
		for k, ξ := range pts {
			shp.Hermite(H, dH, nil, ξ)
			var s float64
			for i := 0; i < 3; i++ {
				v := dH[0]*x1[i] + dH[1]*l/2*t1[i] + dH[2]*x2[i] + dH[3]*l/2*t2[i]
				s += v * v
			}
			lnew += wts[k] * math.Sqrt(s)
		}
		if math.Abs(lnew-l) < kbLtol*l {
			return lnew, nil
		}
		l = lnew
	}
	return 0, chk.Err("reference length did not converge after %d iterations", kbLmaxIt)
}

// implementation ///////////////////////////////////////////////////////////////////////////////////

// Id returns the cell Id
func (o *KBeam) Id() int { return o.Cell.Id }

// SetEqs set equations [3][?]. Format of eqs == format of info.Dofs
func (o *KBeam) SetEqs(eqs [][]int) (err error) {
	loc := []int{0, 1, 5, 6}
	if o.Ndim == 3 {
		loc = []int{0, 1, 2, 3, 4, 5, 6}
	}
	for m := 0; m < 2; m++ {
		if len(eqs[m]) != len(loc) {
			return chk.Err("kbeam: node %d must have %d equations. %d is incorrect", m, len(loc), len(eqs[m]))
		}
		for j, l := range loc {
			o.Umap[m*kbNdofNode+l] = eqs[m][j]
		}
	}
	if o.Ndim == 3 {
		if len(eqs[2]) != 1 {
			return chk.Err("kbeam: middle node must have 1 equation. %d is incorrect", len(eqs[2]))
		}
		o.Umap[kbIalpha] = eqs[2][0]
	}
	return
}

// GetEqs returns the equations of all existent local DOFs
func (o *KBeam) GetEqs() (eqs []int) {
	for _, I := range o.Umap {
		if I >= 0 {
			eqs = append(eqs, I)
		}
	}
	return
}

// SetEleConds set element conditions
func (o *KBeam) SetEleConds(key string, f dbf.T, extra string) (err error) {
	switch key {
	case "qx", "qy", "qz":
		o.Qfcn[key[1]-'x'] = f
	case "mx", "my", "mz":
		o.Mfcn[key[1]-'x'] = f
	case "g":
		o.Gfcn = f
	default:
		return chk.Err("kbeam cannot handle element condition %q", key)
	}
	o.cacheQ = nil
	return
}

// InterpStarVars interpolates star variables to integration points
func (o *KBeam) InterpStarVars(sol *ele.Solution) (err error) {
	if sol.Steady || o.RhoA <= 0 || sol.DynCfs == nil {
		o.dyn = false
		return
	}
	α1, α2, α3, α4, α5, α6 := sol.DynCfs.GetAlps()
	o.dyn = true
	o.α1 = α1
	for i := range o.Ips {
		for j := 0; j < 3; j++ {
			o.Zet[i][j] = α1*o.Rn[i][j] + α2*o.Vn[i][j] + α3*o.An[i][j]
			o.Chi[i][j] = α4*o.Rn[i][j] + α5*o.Vn[i][j] + α6*o.An[i][j]
			o.ZetΘ[i][j] = α2*o.Wn[i][j] + α3*o.Bn[i][j]
			o.ChiΘ[i][j] = α5*o.Wn[i][j] + α6*o.Bn[i][j]
		}
	}
	o.cacheQ = nil
	return
}

// AddToRhs adds -R to global residual vector fb
func (o *KBeam) AddToRhs(fb []float64, sol *ele.Solution) (err error) {
	err = o.evaluate(sol)
	if err != nil {
		return
	}
	for i, I := range o.Umap {
		if I >= 0 {
			fb[I] -= o.fint[i]
			if o.fmom != nil {
				fb[I] += o.fmom[i]
			}
		}
	}
	return
}

// AddToKb adds element K to global Jacobian matrix Kb
func (o *KBeam) AddToKb(Kb *sparse.COO, sol *ele.Solution, firstIt bool) (err error) {
	err = o.evaluate(sol)
	if err != nil {
		return
	}
	for i, I := range o.Umap {
		if I < 0 {
			continue
		}
		for j, J := range o.Umap {
			if J < 0 {
				continue
			}
			kij := o.Kint[i][j]
			if o.Kmom != nil {
				kij -= o.Kmom[i][j]
			}
			if kij != 0 {
				Kb.Set(I, J, kij)
			}
		}
	}
	return
}

// Commit commits the converged state: triad of middle collocation point and dynamics history
func (o *KBeam) Commit(sol *ele.Solution) (err error) {
	q := o.localDofs(sol)
	k := kbeamKinematics(o, ad.Reals(q), false, true)
	o.Qc3 = rot.QuatVals(k.Qcp[kbIref])
	o.Ac = q[kbIalpha]
	o.cacheQ = nil
	if !o.dyn {
		return
	}
	_, _, _, α4, _, _ := sol.DynCfs.GetAlps()
	for i := range o.Ips {
		r := rot.Vals(k.R[i])
		Q := rot.QuatVals(k.Q[i])
		Θ := rot.RotvecOf(rot.Mul(rot.Conj(o.Qn[i]), Q))
		for j := 0; j < 3; j++ {
			o.An[i][j] = o.α1*r[j] - o.Zet[i][j]
			o.Vn[i][j] = α4*r[j] - o.Chi[i][j]
			o.Bn[i][j] = o.α1*Θ[j] - o.ZetΘ[i][j]
			o.Wn[i][j] = α4*Θ[j] - o.ChiΘ[i][j]
		}
		o.Rn[i] = r
		o.Qn[i] = Q
	}
	return
}

// writer ///////////////////////////////////////////////////////////////////////////////////////////

// kbeamState holds the data saved by Encode
type kbeamState struct {
	Qc3        [4]float64
	Ac         float64
	Rn, Vn, An [][3]float64
	Qn         [][4]float64
	Wn, Bn     [][3]float64
}

// Encode encodes internal variables
func (o *KBeam) Encode(enc utl.Encoder) (err error) {
	return enc.Encode(kbeamState{o.Qc3, o.Ac, o.Rn, o.Vn, o.An, o.Qn, o.Wn, o.Bn})
}

// Decode decodes internal variables
func (o *KBeam) Decode(dec utl.Decoder) (err error) {
	var s kbeamState
	err = dec.Decode(&s)
	if err != nil {
		return
	}
	o.Qc3, o.Ac = s.Qc3, s.Ac
	o.Rn, o.Vn, o.An, o.Qn, o.Wn, o.Bn = s.Rn, s.Vn, s.An, s.Qn, s.Wn, s.Bn
	o.cacheQ = nil
	return
}

// OutIpCoords returns the coordinates of integration points (reference configuration)
func (o *KBeam) OutIpCoords() (C [][]float64) {
	C = utl.Alloc(len(o.Ips), o.Ndim)
	for i := range o.Ips {
		copy(C[i], o.R0[i][:o.Ndim])
	}
	return
}

// OutIpKeys returns the integration points' keys
func (o *KBeam) OutIpKeys() []string {
	return []string{"N", "T", "M2", "M3", "eps", "k1", "k2", "k3"}
}

// OutIpVals returns the integration points' values corresponding to keys
func (o *KBeam) OutIpVals(M *ele.IpsMap, sol *ele.Solution) {
	ε, K := o.Strains(sol)
	nip := len(o.Ips)
	for i := 0; i < nip; i++ {
		N, Ms := o.Mdl.Resultants(ε[i], K[i])
		M.Set("N", i, nip, N)
		M.Set("T", i, nip, Ms[0])
		M.Set("M2", i, nip, Ms[1])
		M.Set("M3", i, nip, Ms[2])
		M.Set("eps", i, nip, ε[i])
		M.Set("k1", i, nip, K[i][0])
		M.Set("k2", i, nip, K[i][1])
		M.Set("k3", i, nip, K[i][2])
	}
}

// specific methods /////////////////////////////////////////////////////////////////////////////////

// Strains returns the axial strains and the material curvatures (minus reference ones) at integration points
func (o *KBeam) Strains(sol *ele.Solution) (ε []float64, K [][3]float64) {
	k := kbeamKinematics(o, ad.Reals(o.localDofs(sol)), true, false)
	ε = make([]float64, len(o.Ips))
	K = make([][3]float64, len(o.Ips))
	for i := range o.Ips {
		ε[i] = k.Eps[i].Val()
		K[i] = rot.Vals(k.K[i])
	}
	return
}

// Triads returns the quaternions of the triads at collocation points {node0, node1, middle}
func (o *KBeam) Triads(sol *ele.Solution) (Q [][4]float64) {
	k := kbeamKinematics(o, ad.Reals(o.localDofs(sol)), false, false)
	Q = make([][4]float64, len(k.Qcp))
	for i, q := range k.Qcp {
		Q[i] = rot.QuatVals(q)
	}
	return
}

// Forces returns the internal force vector and the tangent stiffness of all 15 local DOFs
// computed by the selected path (FAD or analytic)
func (o *KBeam) Forces(sol *ele.Solution) (f []float64, K [][]float64, err error) {
	err = o.evaluate(sol)
	return o.fint, o.Kint, err
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// localDofs collects the local DOFs from the solution vector
func (o *KBeam) localDofs(sol *ele.Solution) (q []float64) {
	q = make([]float64, kbNdof)
	for i, I := range o.Umap {
		if I >= 0 {
			q[i] = sol.Y[I]
		}
	}
	return
}

// setLoads computes the line load at time t
func (o *KBeam) setLoads(t float64) {
	o.qext = [3]float64{}
	for i, f := range o.Qfcn {
		if f != nil {
			o.qext[i] = f.F(t, nil)
		}
	}
	if o.Gfcn != nil {
		o.qext[o.Ndim-1] -= o.RhoA * o.Gfcn.F(t, nil)
	}
	o.hasLoad = o.qext != [3]float64{}
}

// evaluate computes the internal forces and the stiffness matrix if the state has changed
func (o *KBeam) evaluate(sol *ele.Solution) (err error) {
	q := o.localDofs(sol)
	if o.cacheQ != nil && o.cacheT == sol.T {
		same := true
		for i := range q {
			if q[i] != o.cacheQ[i] {
				same = false
				break
			}
		}
		if same {
			return
		}
	}
	o.setLoads(sol.T)
	if o.Fad {
		o.fint, o.Kint = o.fadEnergy(q)
	} else {
		o.fint, o.Kint = o.analyticForces(q)
	}
	for i, v := range o.fint {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return chk.Err("kbeam %d: internal force %d is not finite", o.Cell.Id, i)
		}
	}
	o.fmom, o.Kmom = o.momentForces(q, sol.T)
	o.cacheQ, o.cacheT = q, sol.T
	return
}

// fadEnergy computes the gradient and Hessian of the energy with nested dual numbers
func (o *KBeam) fadEnergy(q []float64) (f []float64, K [][]float64) {
	W := kbeamEnergy(o, ad.Vars2(q))
	return ad.GradHess(W, len(q))
}

// momentForces computes the generalised forces due to distributed moments (spatial components,
// per unit reference length) and their load stiffness Km = ∂f/∂q; nil if there are no moments.
// The moments keep their spatial direction; thus Km is not symmetric
func (o *KBeam) momentForces(q []float64, t float64) (f []float64, Km [][]float64) {
	var m [3]float64
	has := false
	for i, fcn := range o.Mfcn {
		if fcn != nil {
			m[i] = fcn.F(t, nil)
			has = has || m[i] != 0
		}
	}
	if !has {
		return
	}
	Ω, k := o.cpVirtualRotations(q)
	psi := make([][3]float64, len(k.Fld.Psi))
	for i, p := range k.Fld.Psi {
		psi[i] = rot.Vals(p)
	}
	qr := rot.QuatVals(k.Fld.Qr)
	f = make([]float64, kbNdof)
	for i, ip := range o.Ips {
		I := triad.VirtualRotationOps(qr, psi, kbIref, ip.L)
		for c := range I {
			var mc [3]float64 // Ĩᵀ m
			for a := 0; a < 3; a++ {
				for b := 0; b < 3; b++ {
					mc[a] += I[c][b][a] * m[b]
				}
			}
			for dof := 0; dof < kbNdof; dof++ {
				f[dof] += ip.W * o.J[i] * (mc[0]*Ω[c][dof][0] + mc[1]*Ω[c][dof][1] + mc[2]*Ω[c][dof][2])
			}
		}
	}
	Km = o.momentStiffness(q, m)
	return
}

// momentStiffness computes the derivatives of f = ∫ m⋅δθ ds where δθ = 2 vec(δQ ⊗ Q*) is the spatial
// virtual rotation of the triad Q at integration points:
//
//	∂f_i/∂q_j = ∫ 2 m⋅vec(∂²Q/∂q_i∂q_j ⊗ Q* + ∂Q/∂q_i ⊗ ∂Q*/∂q_j) ds
func (o *KBeam) momentStiffness(q []float64, m [3]float64) (Km [][]float64) {
	k := kbeamKinematics(o, ad.Vars2(q), false, true)
	Km = utl.Alloc(kbNdof, kbNdof)
	for n, ip := range o.Ips {
		var Q [4]float64
		var dQ [4][]float64
		var ddQ [4][][]float64
		for a := 0; a < 4; a++ {
			Q[a] = ad.Value(k.Q[n][a])
			dQ[a], ddQ[a] = ad.GradHess(k.Q[n][a], kbNdof)
		}
		Qc := rot.Conj(Q)
		c := 2 * ip.W * o.J[n]
		for i := 0; i < kbNdof; i++ {
			for j := 0; j < kbNdof; j++ {
				var ddQij, dQi, dQj [4]float64
				for a := 0; a < 4; a++ {
					ddQij[a], dQi[a], dQj[a] = ddQ[a][i][j], dQ[a][i], dQ[a][j]
				}
				w := rot.Mul(ddQij, Qc)
				v := rot.Mul(dQi, rot.Conj(dQj))
				Km[i][j] += c * (m[0]*(w[0]+v[0]) + m[1]*(w[1]+v[1]) + m[2]*(w[2]+v[2]))
			}
		}
	}
	return
}

// cpVirtualRotations returns the spatial virtual rotations at the collocation points per unit
// variation of each local DOF: δθ_c = 2 vec(δQ_c ⊗ Q_c*)
func (o *KBeam) cpVirtualRotations(q []float64) (Ω [][kbNdof][3]float64, k *kbeamKin[ad.D1]) {
	k = kbeamKinematics(o, ad.Vars1(q), false, false)
	Ω = make([][kbNdof][3]float64, len(k.Qcp))
	for c, Q := range k.Qcp {
		Qv := rot.QuatVals(Q)
		for dof := 0; dof < kbNdof; dof++ {
			var dQ [4]float64
			for a := 0; a < 4; a++ {
				dQ[a] = d1deriv(Q[a], dof)
			}
			w := rot.Mul(dQ, rot.Conj(Qv))
			Ω[c][dof] = [3]float64{2 * w[0], 2 * w[1], 2 * w[2]}
		}
	}
	return
}

// d1deriv returns the derivative w.r.t variable k of a first order dual number
func d1deriv(a ad.D1, k int) float64 {
	if a.D == nil {
		return 0
	}
	return float64(a.D[k])
}
