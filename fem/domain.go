// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/beamcontact/contact"
	"github.com/cpmech/beamcontact/ele"
	"github.com/cpmech/beamcontact/inp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/james-bowman/sparse"
)

// Domain holds all Nodes and Elements active during a stage in addition to the Solution at nodes
type Domain struct {

	// init: auxiliary variables
	Index   int             // index of region
	ShowMsg bool            // show messages
	Sim     *inp.Simulation // [from Main] input data
	Reg     *inp.Region     // region data
	Msh     *inp.Mesh       // mesh data
	DynCfs  *ele.DynCoefs   // [from Main] coefficients for dynamics simulations

	// stage: nodes (active) and elements (active)
	Nodes []*Node       // active nodes (for each stage). Note: indices in Nodes do NOT correpond to Ids => use Vid2node to access Nodes using Ids.
	Elems []ele.Element // active elements (for each stage)

	// stage: auxiliary maps for dofs and equation types
	F2Y      map[string]string // converts f-keys to y-keys; e.g.: "fx" => "ux"
	YandC    map[string]bool   // y and constraints keys; e.g. "ux", "rz", "incsup", "rigid"
	Dof2Tnum map[string]int    // t2-types: dof => t_number; e.g. "ux" => 2

	// stage: auxiliary maps for nodes and elements
	Vid2node []*Node       // [nverts] VertexId => index in Nodes. Inactive vertices are 'nil'
	Cid2elem []ele.Element // [ncells] CellId => index in Elems. Inactive cells are 'nil'

	// stage: subsets of elements
	ElemIntvars []ele.WithIntVars  // elements with internal vars
	ElemCommit  []ele.Committer    // elements with history to be committed after converged steps
	ElemOutIps  []ele.CanOutputIps // elements with integration points output
	ElemFixedKM []ele.WithFixedKM  // elements with fixed K,M matrices; to be recomputed if prms are changed

	// stage: coefficients and prescribed forces
	EssenBcs EssentialBcs // constraints (Lagrange multipliers)
	PtNatBcs PtNaturalBcs // point loads such as prescribed forces at nodes

	// stage: contact
	Contacts []*contact.Interface // mortar contact interfaces in this region

	// stage: t2 variables
	T2eqs []int // second t-derivative variables; e.g.: d²u/dt² vars (subset of ykeys)

	// stage: dimensions
	Ny   int // total number of dofs, except λ
	Nlam int // total number of Lagrange multipliers
	NnzA int // number of nonzeros in A (constraints) matrix
	Nyb  int // total number of equations: ny + nλ

	// stage: solution
	Sol *ele.Solution // solution state
	Fb  []float64     // residual == -fb
	Wb  []float64     // workspace

	// for divergence control and time step cuts
	bkpSol *ele.Solution // backup solution
}

// NewDomains returns domains
func NewDomains(sim *inp.Simulation, dyncfs *ele.DynCoefs, verbose bool) (doms []*Domain) {
	doms = make([]*Domain, len(sim.Regions))
	for i, reg := range sim.Regions {
		doms[i] = &Domain{Index: i, ShowMsg: verbose, Sim: sim, Reg: reg, Msh: reg.Msh, DynCfs: dyncfs}
	}
	return
}

// SetStage set nodes, equation numbers and auxiliary data for given stage
func (o *Domain) SetStage(stgidx int) (err error) {

	// pointer to stage structure
	stg := o.Sim.Stages[stgidx]

	// activation flags
	if stgidx > 0 {
		err = o.fixInactFlags(stg.Activate, false)
		if err != nil {
			return
		}
		err = o.fixInactFlags(stg.Deactivate, true)
		if err != nil {
			return
		}
	}

	// nodes and elements
	o.Nodes = make([]*Node, 0)
	o.Elems = make([]ele.Element, 0)
	o.F2Y = make(map[string]string)
	o.YandC = map[string]bool{"rigid": true, "incsup": true}
	o.Dof2Tnum = make(map[string]int)
	o.Vid2node = make([]*Node, len(o.Msh.Verts))
	o.Cid2elem = make([]ele.Element, len(o.Msh.Cells))
	o.ElemIntvars = make([]ele.WithIntVars, 0)
	o.ElemCommit = make([]ele.Committer, 0)
	o.ElemOutIps = make([]ele.CanOutputIps, 0)
	o.ElemFixedKM = make([]ele.WithFixedKM, 0)

	// allocate nodes and cells (active only) -------------------------------------------------------

	// for each cell
	var eq int // current equation number => total number of equations @ end of loop
	for _, cell := range o.Msh.Cells {

		// get element info
		info, inactive, e := ele.GetInfo(cell, o.Reg, o.Sim)
		if e != nil {
			return chk.Err("get element information failed:\n%v", e)
		}
		if inactive {
			continue
		}
		chk.IntAssert(len(info.Dofs), len(cell.Verts))

		// store y and f information
		for ykey, fkey := range info.Y2F {
			o.F2Y[fkey] = ykey
			o.YandC[ykey] = true
		}
		for _, ykey := range info.T2vars {
			o.Dof2Tnum[ykey] = 2
		}

		// set DOFs and equation numbers
		for j, v := range cell.Verts {
			if len(info.Dofs[j]) == 0 {
				continue // e.g. middle vertex of 2D kbeams
			}
			nod := o.Vid2node[v]
			if nod == nil {
				nod = NewNode(o.Msh.Verts[v])
				o.Vid2node[v] = nod
				o.Nodes = append(o.Nodes, nod)
			}
			for _, ukey := range info.Dofs[j] {
				eq = nod.AddDofAndEq(ukey, eq)
			}
		}

		// new element
		elem, e := ele.New(cell, o.Reg, o.Sim)
		if e != nil {
			return chk.Err("new element failed:\n%v", e)
		}
		o.Cid2elem[cell.Id] = elem
		o.Elems = append(o.Elems, elem)

		// give equation numbers to new element
		eqs := make([][]int, len(cell.Verts))
		for j, v := range cell.Verts {
			for _, ukey := range info.Dofs[j] {
				eqs[j] = append(eqs[j], o.Vid2node[v].GetEq(ukey))
			}
		}
		err = elem.SetEqs(eqs)
		if err != nil {
			return chk.Err("cannot set element equations:\n%v", err)
		}

		// subsets of elements
		o.addElementToSubsets(elem)
	}

	// element conditions, essential and natural boundary conditions --------------------------------

	// (re)set constraints and prescribed forces structures
	o.EssenBcs.Init()
	o.PtNatBcs.Reset()

	// element conditions
	var fcn dbf.T
	for _, ec := range stg.EleConds {
		cells, ok := o.Msh.CellTag2cells[ec.Tag]
		if !ok {
			return chk.Err("cannot find cells with tag = %d to assign conditions", ec.Tag)
		}
		for _, cell := range cells {
			e := o.Cid2elem[cell.Id]
			if e == nil {
				continue
			}
			for j, key := range ec.Keys {
				fcn, err = o.Sim.Functions.Get(ec.Funcs[j])
				if err != nil {
					return
				}
				err = e.SetEleConds(key, fcn, ec.Extra)
				if err != nil {
					return chk.Err("cannot set element condition %q of cell %d:\n%v", key, cell.Id, err)
				}
			}
		}
	}

	// vertex boundary conditions
	for _, nc := range stg.NodeBcs {
		verts, ok := o.Msh.VertTag2verts[nc.Tag]
		if !ok {
			return chk.Err("cannot find vertices with tag = %d to assign node boundary conditions", nc.Tag)
		}
		for _, v := range verts {
			n := o.Vid2node[v.Id]
			if n == nil {
				continue
			}
			for j, key := range nc.Keys {
				fcn, err = o.Sim.Functions.Get(nc.Funcs[j])
				if err != nil {
					return
				}
				if o.YandC[key] {
					err = o.EssenBcs.Set(key, []*Node{n}, fcn, nc.Extra)
					if err != nil {
						return chk.Err("setting of essential (node) boundary conditions failed:\n%v", err)
					}
				} else {
					o.PtNatBcs.Set(key, o.F2Y[key], n, fcn, nc.Extra)
				}
			}
		}
	}

	// t2 equations
	o.T2eqs = make([]int, 0)
	for _, nod := range o.Nodes {
		for _, dof := range nod.Dofs {
			if o.Dof2Tnum[dof.Key] == 2 {
				o.T2eqs = append(o.T2eqs, dof.Eq)
			}
		}
	}

	// size of arrays
	o.Ny = eq
	o.Nlam, o.NnzA = o.EssenBcs.Build(o.Ny)
	o.Nyb = o.Ny + o.Nlam

	// solution structure
	o.Sol = ele.NewSolution(o.Ny, o.Nlam, o.Sim.Data.Steady, o.Sim.Data.Pstress, o.DynCfs)
	o.Fb = make([]float64, o.Nyb)
	o.Wb = make([]float64, o.Nyb)
	o.bkpSol = nil

	// contact interfaces
	o.Contacts = make([]*contact.Interface, 0)
	for i, cd := range o.Sim.Contact {
		if cd.Region != o.Index {
			continue
		}
		if o.Msh.Ndim != 2 {
			return chk.Err("contact interfaces are available in 2D only")
		}
		X := make([][]float64, len(o.Msh.Verts))
		eqs := make([][2]int, len(o.Msh.Verts))
		for _, v := range o.Msh.Verts {
			X[v.Id] = v.C
			eqs[v.Id] = [2]int{-1, -1}
			if n := o.Vid2node[v.Id]; n != nil {
				eqs[v.Id] = [2]int{n.GetEq("ux"), n.GetEq("uy")}
			}
		}
		c, e := contact.New(cd, X, eqs)
		if e != nil {
			return chk.Err("cannot allocate contact interface # %d:\n%v", i, e)
		}
		o.Contacts = append(o.Contacts, c)
	}
	if len(o.Contacts) > 1 {
		return chk.Err("only one contact interface per region is supported. %d found", len(o.Contacts))
	}

	// message
	if o.ShowMsg {
		io.Pf(">> Steady=%v, Pstress=%v\n", o.Sol.Steady, o.Sol.Pstress)
		io.Pf(">> Number of equations = %d\n", o.Ny)
		io.Pf(">> Number of Lagrange multipliers = %d\n", o.Nlam)
		io.Pf(">> Number of contact interfaces = %d\n", len(o.Contacts))
	}
	return
}

// SetIniVals sets/resets initial values (nodes and integration points)
func (o *Domain) SetIniVals(stgidx int, zeroSol bool) (err error) {

	// clear solution vectors
	if zeroSol {
		o.Sol.Reset(o.Sim.Data.Steady)
	}

	// initialise internal variables
	for _, e := range o.ElemIntvars {
		err = e.SetIniIvs(o.Sol, nil)
		if err != nil {
			return chk.Err("cannot set initial internal values:\n%v", err)
		}
	}
	for _, c := range o.Contacts {
		c.Reset()
	}
	if o.ShowMsg {
		io.Pf(">> Initial state set with default values\n")
	}

	// list boundary conditions
	if o.Sim.Data.ListBcs {
		io.Pf("%v", o.EssenBcs.List(o.Sim.Stages[stgidx].Control.Tf))
	}

	// make sure time is zero at the beginning of simulation
	o.Sol.T = 0
	return
}

// AssembleRhs assembles fb (= external - internal forces - contact and constraint terms)
func (o *Domain) AssembleRhs() (err error) {
	for i := range o.Fb {
		o.Fb[i] = 0
	}
	for _, e := range o.Elems {
		err = e.AddToRhs(o.Fb, o.Sol)
		if err != nil {
			return
		}
	}
	o.PtNatBcs.AddToRhs(o.Fb, o.Sol.T, o.Sol.Y)
	o.EssenBcs.AddToRhs(o.Fb, o.Sol)
	for _, c := range o.Contacts {
		err = c.Evaluate(o.Sol.Y)
		if err != nil {
			return
		}
		c.AddToRhs(o.Fb)
	}
	return
}

// AssembleKb assembles the augmented Jacobian matrix
func (o *Domain) AssembleKb(firstIt bool) (Kb *sparse.COO, err error) {
	Kb = sparse.NewCOO(o.Nyb, o.Nyb, nil, nil, nil)
	for _, e := range o.Elems {
		err = e.AddToKb(Kb, o.Sol, firstIt)
		if err != nil {
			return
		}
	}
	o.PtNatBcs.AddToKb(Kb, o.Sol.T, o.Sol.Y)
	o.EssenBcs.AddToKb(Kb, o.Ny)
	return
}

// UpdateElems update elements after Solution has been updated
func (o *Domain) UpdateElems() (err error) {
	for _, e := range o.ElemIntvars {
		err = e.Update(o.Sol)
		if err != nil {
			return
		}
	}
	return
}

// Commit commits the state of elements and contact interfaces after a converged time step
func (o *Domain) Commit() (err error) {
	for _, e := range o.ElemCommit {
		err = e.Commit(o.Sol)
		if err != nil {
			return
		}
	}
	for _, c := range o.Contacts {
		c.Commit(o.Sol.Y)
	}
	return
}

// RecomputeKM recompute K and M matrices of elements with static matrices
func (o *Domain) RecomputeKM() {
	for _, e := range o.ElemFixedKM {
		e.Recompute(!o.Sim.Data.Steady)
	}
}

// starVars computes starred variables and interpolates them to integration points
func (o *Domain) starVars(Δt float64) (err error) {
	if o.Sim.Data.Steady {
		return
	}
	o.Sol.Dt = Δt
	α1, α2, α3, α4, α5, α6 := o.DynCfs.GetAlps()
	for _, I := range o.T2eqs {
		o.Sol.Zet[I] = α1*o.Sol.Y[I] + α2*o.Sol.Dydt[I] + α3*o.Sol.D2ydt2[I]
		o.Sol.Chi[I] = α4*o.Sol.Y[I] + α5*o.Sol.Dydt[I] + α6*o.Sol.D2ydt2[I]
	}
	for _, e := range o.Elems {
		err = e.InterpStarVars(o.Sol)
		if err != nil {
			return chk.Err("cannot compute starred variables:\n%v", err)
		}
	}
	return
}

// auxiliary functions //////////////////////////////////////////////////////////////////////////////

// addElementToSubsets adds an element to many subsets as it fits
func (o *Domain) addElementToSubsets(element ele.Element) {
	if e, ok := element.(ele.WithIntVars); ok {
		o.ElemIntvars = append(o.ElemIntvars, e)
	}
	if e, ok := element.(ele.Committer); ok {
		o.ElemCommit = append(o.ElemCommit, e)
	}
	if e, ok := element.(ele.CanOutputIps); ok {
		o.ElemOutIps = append(o.ElemOutIps, e)
	}
	if e, ok := element.(ele.WithFixedKM); ok {
		o.ElemFixedKM = append(o.ElemFixedKM, e)
	}
}

// fixInactFlags sets inactive flags for new active/inactive elements
func (o *Domain) fixInactFlags(eidsOrTags []int, deactivate bool) (err error) {
	for _, tag := range eidsOrTags {
		if tag >= 0 { // this means that tag == cell.Id
			tag = o.Msh.Cells[tag].Tag
		}
		edat := o.Reg.Etag2data(tag)
		if edat == nil {
			return chk.Err("cannot get element's data with etag=%d", tag)
		}
		edat.Inact = deactivate
	}
	return
}

// backup saves a copy of solution, internal variables and contact multipliers
func (o *Domain) backup() (err error) {
	if o.bkpSol == nil {
		o.bkpSol = new(ele.Solution)
	}
	o.bkpSol.CopyFrom(o.Sol)
	for _, e := range o.ElemIntvars {
		err = e.BackupIvs(true)
		if err != nil {
			return
		}
	}
	for _, c := range o.Contacts {
		c.Backup()
	}
	return
}

// restore restores solution
func (o *Domain) restore() (err error) {
	o.Sol.CopyFrom(o.bkpSol)
	for _, e := range o.ElemIntvars {
		err = e.RestoreIvs(true)
		if err != nil {
			return
		}
	}
	for _, c := range o.Contacts {
		c.Restore()
	}
	return
}
