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
)

// Rod represents a structural rod element (for axial loads only) with 2 nodes and small
// displacements. The axial stress is updated by a one-dimensional model; thus the stiffness
// matrix is recomputed from the tangent modulus at each iteration.
type Rod struct {

	// basic data
	Cell *inp.Cell   // the cell structure
	X    [][]float64 // matrix of nodal coordinates [ndim][nnode]
	Nu   int         // total number of unknowns == 2 * ndim
	Ndim int         // space dimension

	// parameters and properties
	Mdl sld.OneD // material model
	A   float64  // cross-sectional area
	Rho float64  // density
	L   float64  // length of rod

	// variables for dynamics and loads
	Gfcn dbf.T     // gravity function
	ζe   []float64 // local ζ* vector

	// vectors and matrices
	E [3]float64  // unit vector aligned with rod
	M [][]float64 // [nu][nu] element M matrix

	// problem variables
	Umap []int // assembly map (location array/element equations)

	// internal variables
	States    *sld.OnedState // state at current iteration
	StatesBkp *sld.OnedState // copy of states
	StatesAux *sld.OnedState // auxiliary copy of states
}

// register element
func init() {

	ele.Register("rod",

		// information
		func(sim *inp.Simulation, cell *inp.Cell, edat *inp.ElemData) *ele.Info {
			var info ele.Info
			ykeys := []string{"ux", "uy"}
			if sim.Ndim == 3 {
				ykeys = []string{"ux", "uy", "uz"}
			}
			info.Dofs = make([][]string, 2)
			for m := 0; m < 2; m++ {
				info.Dofs[m] = ykeys
			}
			info.Y2F = map[string]string{"ux": "fx", "uy": "fy", "uz": "fz"}
			info.T2vars = ykeys
			return &info
		},

		// allocator
		func(sim *inp.Simulation, cell *inp.Cell, edat *inp.ElemData, x [][]float64) ele.Element {

			// basic data
			var o Rod
			o.Cell = cell
			o.X = x
			o.Ndim = sim.Ndim
			o.Nu = o.Ndim * 2
			if len(cell.Verts) != 2 {
				chk.Panic("rod requires lin2 cells (2 vertices). cell %d has %d vertices", cell.Id, len(cell.Verts))
			}

			// parameters
			mat := sim.MatModels.Get(edat.Mat)
			if mat == nil {
				chk.Panic("cannot get materials data for rod element {tag=%d id=%d material=%q}", cell.Tag, cell.Id, edat.Mat)
			}
			mdl, ok := mat.Sld.(sld.OneD)
			if !ok {
				chk.Panic("material %q does not provide a one-dimensional model {tag=%d, id=%d}", edat.Mat, cell.Tag, cell.Id)
			}
			o.Mdl = mdl
			o.A = mdl.GetA()
			o.Rho = mat.Sld.GetRho()

			// vectors and matrices
			o.M = utl.Alloc(o.Nu, o.Nu)
			o.ζe = make([]float64, o.Nu)
			o.Recompute(!sim.Data.Steady)

			// return new element
			return &o
		},
	)
}

// implementation ///////////////////////////////////////////////////////////////////////////////////

// Id returns the cell Id
func (o *Rod) Id() int { return o.Cell.Id }

// SetEqs set equations
func (o *Rod) SetEqs(eqs [][]int) (err error) {
	o.Umap = make([]int, o.Nu)
	for m := 0; m < 2; m++ {
		if len(eqs[m]) != o.Ndim {
			return chk.Err("rod: node %d must have %d equations. %d is incorrect", m, o.Ndim, len(eqs[m]))
		}
		for i := 0; i < o.Ndim; i++ {
			o.Umap[i+m*o.Ndim] = eqs[m][i]
		}
	}
	return
}

// GetEqs returns the equations of all DOFs
func (o *Rod) GetEqs() []int { return o.Umap }

// InterpStarVars interpolates star variables to integration points
func (o *Rod) InterpStarVars(sol *ele.Solution) (err error) {
	for i, I := range o.Umap {
		o.ζe[i] = sol.Zet[I]
	}
	return
}

// SetEleConds set element conditions
func (o *Rod) SetEleConds(key string, f dbf.T, extra string) (err error) {
	if key != "g" {
		return chk.Err("rod cannot handle element condition %q", key)
	}
	o.Gfcn = f
	return
}

// AddToRhs adds -R to global residual vector fb
func (o *Rod) AddToRhs(fb []float64, sol *ele.Solution) (err error) {

	// internal forces: fi = B⋅σ⋅A⋅L with B = [-e, e]/L
	N := o.States.Sig * o.A
	for m := 0; m < 2; m++ {
		s := float64(2*m - 1)
		for i := 0; i < o.Ndim; i++ {
			fb[o.Umap[i+m*o.Ndim]] -= s * N * o.E[i]
		}
	}

	// dynamics
	if !sol.Steady && sol.DynCfs != nil {
		α1, _, _, _, _, _ := sol.DynCfs.GetAlps()
		for i, I := range o.Umap {
			for j, J := range o.Umap {
				fb[I] -= o.M[i][j] * (α1*sol.Y[J] - o.ζe[j])
			}
		}
	}

	// self weight
	if o.Gfcn != nil {
		w := o.Rho * o.A * o.L * o.Gfcn.F(sol.T, nil) / 2.0
		for m := 0; m < 2; m++ {
			fb[o.Umap[o.Ndim-1+m*o.Ndim]] -= w
		}
	}
	return
}

// AddToKb adds element K to global Jacobian matrix Kb
func (o *Rod) AddToKb(Kb *sparse.COO, sol *ele.Solution, firstIt bool) (err error) {
	D, _, err := o.Mdl.CalcD(o.States, firstIt)
	if err != nil {
		return
	}
	K := o.stiffness(D)
	if !sol.Steady && sol.DynCfs != nil {
		α1, _, _, _, _, _ := sol.DynCfs.GetAlps()
		for i := 0; i < o.Nu; i++ {
			for j := 0; j < o.Nu; j++ {
				K[i][j] += α1 * o.M[i][j]
			}
		}
	}
	ele.AddToKbMat(Kb, o.Umap, K)
	return
}

// Update performs the stress update for the current increment of displacements
func (o *Rod) Update(sol *ele.Solution) (err error) {
	ε, Δε := o.strains(sol)
	return o.Mdl.Update(o.States, ε, Δε, 0)
}

// internal variables ///////////////////////////////////////////////////////////////////////////////

// SetIniIvs sets initial ivs for given values in sol and ivs map
func (o *Rod) SetIniIvs(sol *ele.Solution, ivs map[string][]float64) (err error) {
	o.States, err = o.Mdl.InitIntVars1D()
	if err != nil {
		return
	}
	o.StatesBkp, _ = o.Mdl.InitIntVars1D()
	o.StatesAux, _ = o.Mdl.InitIntVars1D()
	if sig, ok := ivs["sig"]; ok && len(sig) > 0 {
		o.States.Sig = sig[0]
	}
	o.StatesBkp.Set(o.States)
	return
}

// BackupIvs create copy of internal variables
func (o *Rod) BackupIvs(aux bool) (err error) {
	if aux {
		o.StatesAux.Set(o.States)
		return
	}
	o.StatesBkp.Set(o.States)
	return
}

// RestoreIvs restore internal variables from copies
func (o *Rod) RestoreIvs(aux bool) (err error) {
	if aux {
		o.States.Set(o.StatesAux)
		return
	}
	o.States.Set(o.StatesBkp)
	return
}

// Ureset fixes internal variables after u (displacements) have been zeroed
func (o *Rod) Ureset(sol *ele.Solution) (err error) {
	return
}

// writer ///////////////////////////////////////////////////////////////////////////////////////////

// Encode encodes internal variables
func (o *Rod) Encode(enc utl.Encoder) (err error) {
	return enc.Encode(o.States)
}

// Decode decodes internal variables
func (o *Rod) Decode(dec utl.Decoder) (err error) {
	err = dec.Decode(&o.States)
	if err != nil {
		return
	}
	return o.BackupIvs(false)
}

// OutIpCoords returns the coordinates of integration points
func (o *Rod) OutIpCoords() (C [][]float64) {
	C = utl.Alloc(1, o.Ndim) // centroid only
	for i := 0; i < o.Ndim; i++ {
		C[0][i] = (o.X[i][0] + o.X[i][1]) / 2.0
	}
	return
}

// OutIpKeys returns the integration points' keys
func (o *Rod) OutIpKeys() []string {
	return []string{"sig", "N"}
}

// OutIpVals returns the integration points' values corresponding to keys
func (o *Rod) OutIpVals(M *ele.IpsMap, sol *ele.Solution) {
	M.Set("sig", 0, 1, o.States.Sig)
	M.Set("N", 0, 1, o.States.Sig*o.A)
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// Recompute re-compute geometry and M matrix after dimensions or parameters are externally changed
func (o *Rod) Recompute(withM bool) {
	o.L = 0
	for i := 0; i < o.Ndim; i++ {
		o.E[i] = o.X[i][1] - o.X[i][0]
		o.L += o.E[i] * o.E[i]
	}
	o.L = math.Sqrt(o.L)
	if o.L < 1e-14 {
		chk.Panic("rod %d has zero length", o.Cell.Id)
	}
	for i := 0; i < o.Ndim; i++ {
		o.E[i] /= o.L
	}
	if withM {
		β := o.Rho * o.A * o.L / 6.0
		for m := 0; m < 2; m++ {
			for n := 0; n < 2; n++ {
				c := β
				if m == n {
					c = 2.0 * β
				}
				for i := 0; i < o.Ndim; i++ {
					o.M[i+m*o.Ndim][i+n*o.Ndim] = c
				}
			}
		}
	}
}

// stiffness returns K = A⋅D/L ⋅ [e⊗e, -e⊗e; -e⊗e, e⊗e]
func (o *Rod) stiffness(D float64) (K [][]float64) {
	K = utl.Alloc(o.Nu, o.Nu)
	α := D * o.A / o.L
	for m := 0; m < 2; m++ {
		for n := 0; n < 2; n++ {
			s := 1.0
			if m != n {
				s = -1.0
			}
			for i := 0; i < o.Ndim; i++ {
				for j := 0; j < o.Ndim; j++ {
					K[i+m*o.Ndim][j+n*o.Ndim] = s * α * o.E[i] * o.E[j]
				}
			}
		}
	}
	return
}

// strains returns the axial strain and its increment
func (o *Rod) strains(sol *ele.Solution) (ε, Δε float64) {
	for i := 0; i < o.Ndim; i++ {
		ε += o.E[i] * (sol.Y[o.Umap[i+o.Ndim]] - sol.Y[o.Umap[i]]) / o.L
		if sol.ΔY != nil {
			Δε += o.E[i] * (sol.ΔY[o.Umap[i+o.Ndim]] - sol.ΔY[o.Umap[i]]) / o.L
		}
	}
	return
}
