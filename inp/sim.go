// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON or YAML file
package inp

import (
	"encoding/json"
	goio "io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"gopkg.in/yaml.v3"
)

// EnvDirOut is the name of the environment variable overriding the output directory
const EnvDirOut = "BEAMCONTACT_DIROUT"

// Data holds global data for simulations
//
//	Note: json keys are the lowercase field names so that YAML files can use the same keys
type Data struct {

	// global information
	Desc    string `json:"desc"`    // description of simulation
	Matfile string `json:"matfile"` // materials file path
	DirOut  string `json:"dirout"`  // directory for output; e.g. /tmp/beamcontact
	Encoder string `json:"encoder"` // encoder name; e.g. "gob" "json"

	// problem definition and options
	Steady    bool `json:"steady"`    // steady simulation
	Pstress   bool `json:"pstress"`   // plane-stress
	Stat      bool `json:"stat"`      // activate statistics (residuals are saved in summary)
	ListBcs   bool `json:"listbcs"`   // list boundary conditions
	WriteSmat bool `json:"writesmat"` // writes the global Jacobian matrix in MatrixMarket format for debugging. The simulation will be stopped.
}

// SolverData holds FEM solver data
type SolverData struct {

	// nonlinear solver
	Type    string  `json:"type"`    // nonlinear solver type: {imp} => implicit
	NmaxIt  int     `json:"nmaxit"`  // number of max iterations
	Atol    float64 `json:"atol"`    // absolute tolerance
	Rtol    float64 `json:"rtol"`    // relative tolerance
	FbTol   float64 `json:"fbtol"`   // tolerance for convergence on fb
	FbMin   float64 `json:"fbmin"`   // minimum value of fb
	DvgCtrl bool    `json:"dvgctrl"` // use divergence control
	NdvgMax int     `json:"ndvgmax"` // max number of continued divergence
	CteTg   bool    `json:"ctetg"`   // use constant tangent (modified Newton) during iterations
	ShowR   bool    `json:"showr"`   // show residual
	NmaxCut int     `json:"nmaxcut"` // max number of time step cuts (Δt/2) after a failed step; 0 => no retry

	// transient analyses
	DtMin float64 `json:"dtmin"` // minium value of Dt for transient (Newmark / Dyn coefficients)

	// dynamics
	Theta1 float64 `json:"theta1"` // Newmark's method parameter
	Theta2 float64 `json:"theta2"` // Newmark's method parameter

	// combination of coefficients
	ThCombo1 bool `json:"thcombo1"` // use θ1=5/6 and θ2=8/9 to avoid oscillations

	// constants
	Eps float64 `json:"eps"` // smallest number satisfying 1.0 + ϵ > 1.0

	// derived
	Itol float64 // iterations tolerance
}

// ElemData holds element data
type ElemData struct {

	// input data
	Tag   int    `json:"tag"`   // tag of element
	Mat   string `json:"mat"`   // material name
	Type  string `json:"type"`  // type of element. ex: kbeam, beam, rod
	Nip   int    `json:"nip"`   // number of integration points; 0 => use default
	Extra string `json:"extra"` // extra flags (in keycode format). ex: "!fad:1 !ncp:3"
	Inact bool   `json:"inact"` // whether element starts inactive or not
}

// Region holds region data
type Region struct {

	// input data
	Desc      string      `json:"desc"`      // description of region. ex: cantilever, ring, etc.
	Mshfile   string      `json:"mshfile"`   // file path of file with mesh data
	ElemsData []*ElemData `json:"elemsdata"` // list of elements data
	AbsPath   bool        `json:"abspath"`   // mesh filename is given in absolute path

	// derived
	Msh *Mesh // the mesh
}

// NodeBc holds node boundary condition
type NodeBc struct {
	Tag   int      `json:"tag"`   // tag of node
	Keys  []string `json:"keys"`  // key indicating type of bcs. ex: ux, uy, uz, rx, ry, rz, fx, mz
	Funcs []string `json:"funcs"` // name of function. ex: zero, load, myfunction1, etc.
	Extra string   `json:"extra"` // extra information. ex: '!alp:30'
}

// EleCond holds element condition
type EleCond struct {
	Tag   int      `json:"tag"`   // tag of cell/element
	Keys  []string `json:"keys"`  // key indicating type of condition. ex: "g" (gravity), "qy" and "mz" for beams, etc.
	Funcs []string `json:"funcs"` // name of function. ex: grav, none
	Extra string   `json:"extra"` // extra information. ex: '!λl:10'
}

// TimeControl holds data for defining the simulation time stepping
type TimeControl struct {
	Tf     float64 `json:"tf"`     // final time
	Dt     float64 `json:"dt"`     // time step size (if constant)
	DtOut  float64 `json:"dtout"`  // time step size for output
	DtFcn  string  `json:"dtfcn"`  // time step size (function name)
	DtoFcn string  `json:"dtofcn"` // time step size for output (function name)

	// derived
	DtFunc  dbf.T // time step function
	DtoFunc dbf.T // output time step function
}

// ContactData holds data for mortar contact interfaces between a slave and a master polyline
type ContactData struct {

	// interface
	Desc      string `json:"desc"`      // description of interface
	Region    int    `json:"region"`    // index of region (domain) holding the interface
	Slave     []int  `json:"slave"`     // ordered ids of slave vertices
	Master    []int  `json:"master"`    // ordered ids of master vertices
	SlaveTag  int    `json:"slavetag"`  // tag of slave vertices (if Slave is empty); ordered along largest extent
	MasterTag int    `json:"mastertag"` // tag of master vertices (if Master is empty); ordered along largest extent

	// strategy
	Mode       string  `json:"mode"`       // "condensed" (dual shapes required) or "saddle"
	Shape      string  `json:"shape"`      // Lagrange multipliers shape functions: "dual" or "std"
	Friction   string  `json:"friction"`   // friction law: "none", "tresca", "coulomb"
	FrCoeff    float64 `json:"frcoeff"`    // Coulomb friction coefficient
	FrBound    float64 `json:"frbound"`    // Tresca frictional bound
	Cn         float64 `json:"cn"`         // complementarity parameter: normal direction
	Ct         float64 `json:"ct"`         // complementarity parameter: tangential direction
	SemiSmooth bool    `json:"semismooth"` // update active set at every Newton iteration
	MaxActive  int     `json:"maxactive"`  // max number of active set steps
	Nip        int     `json:"nip"`        // number of integration points per mortar cell
	Verbose    bool    `json:"verbose"`    // show active set messages
}

// Stage holds stage data
type Stage struct {

	// main
	Desc       string `json:"desc"`       // description of simulation stage. ex: activation of top layer
	Activate   []int  `json:"activate"`   // array of tags of elements to be activated
	Deactivate []int  `json:"deactivate"` // array of tags of elements to be deactivated
	Skip       bool   `json:"skip"`       // do not run stage

	// conditions
	EleConds []*EleCond `json:"eleconds"` // element conditions. ex: gravity or beam distributed loads
	NodeBcs  []*NodeBc  `json:"nodebcs"`  // node boundary conditions

	// timecontrol
	Control TimeControl `json:"control"` // time control
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data      Data           `json:"data"`      // stores global simulation data
	Functions FuncsData      `json:"functions"` // stores all boundary condition functions
	PlotF     *PlotFdata     `json:"plotf"`     // plot functions
	Regions   []*Region      `json:"regions"`   // stores all regions
	Solver    SolverData     `json:"solver"`    // FEM solver data
	Stages    []*Stage       `json:"stages"`    // stores all stages
	Contact   []*ContactData `json:"contact"`   // mortar contact interfaces

	// derived
	DirOut    string  // directory to save results
	Key       string  // simulation key; e.g. mysim01.sim => mysim01 or mysim01-alias
	EncType   string  // encoder type
	Ndim      int     // space dimension
	MaxElev   float64 // maximum elevation
	Grav0     float64 // gravity constant from stage #0
	MatModels *MatDb  // materials and models
}

// Simulation //////////////////////////////////////////////////////////////////////////////////////

// Clean cleans resources
func (o *Simulation) Clean() {
	if o.MatModels != nil {
		o.MatModels.Clean()
	}
}

// ReadSim reads all simulation data from a .sim JSON file (or YAML file if the extension is .yaml or .yml)
//
//	Note: the output directory can be overridden by the BEAMCONTACT_DIROUT environment variable
func ReadSim(simfilepath, alias string, erasePrev, createDirOut bool) *Simulation {

	// new sim
	var o Simulation

	// read file
	b, err := os.ReadFile(simfilepath)
	if err != nil {
		chk.Panic("ReadSim: cannot read simulation file %q", simfilepath)
	}

	// set default values
	o.Solver.SetDefault()

	// decode
	if isYaml(simfilepath) {
		err = yaml.Unmarshal(b, &o)
	} else {
		err = json.Unmarshal(b, &o)
	}
	if err != nil {
		chk.Panic("ReadSim: cannot unmarshal simulation file %q:\n%v", simfilepath, err)
	}

	// input directory and filename key
	dir := filepath.Dir(simfilepath)
	fn := filepath.Base(simfilepath)
	dir = os.ExpandEnv(dir)
	fnkey := io.FnKey(fn)
	o.Key = fnkey
	if alias != "" {
		o.Key += "-" + alias
	}

	// output directory
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = "/tmp/beamcontact/" + fnkey
	}
	if d := os.Getenv(EnvDirOut); d != "" {
		o.DirOut = filepath.Join(d, fnkey)
	}

	// encoder type
	o.EncType = o.Data.Encoder
	if o.EncType != "gob" && o.EncType != "json" {
		o.EncType = "gob"
	}

	// create directory
	if createDirOut {
		err = os.MkdirAll(o.DirOut, 0777)
		if err != nil {
			chk.Panic("cannot create directory for output results (%s): %v", o.DirOut, err)
		}
	}

	// erase previous simulation results
	if erasePrev {
		io.RemoveAll(io.Sf("%s/%s*", o.DirOut, o.Key))
	}

	// set solver constants
	o.Solver.PostProcess()

	// for all regions
	for i, reg := range o.Regions {

		// read mesh
		ddir := dir
		if reg.AbsPath {
			ddir = ""
		}
		reg.Msh, err = ReadMsh(ddir, reg.Mshfile)
		if err != nil {
			chk.Panic("ReadSim: cannot read mesh file:\n%v", err)
		}

		// get ndim and max elevation
		if i == 0 {
			o.Ndim = reg.Msh.Ndim
			o.MaxElev = reg.Msh.MaxElev
		} else {
			if reg.Msh.Ndim != o.Ndim {
				chk.Panic("ReadSim: Ndim value is inconsistent: %d != %d", reg.Msh.Ndim, o.Ndim)
			}
			o.MaxElev = utl.Max(o.MaxElev, reg.Msh.MaxElev)
		}
	}

	// for all stages
	var t float64
	for i, stg := range o.Stages {

		// fix Tf
		if stg.Control.Tf < 1e-14 {
			stg.Control.Tf = 1
		}

		// fix Dt
		if stg.Control.DtFcn == "" {
			if stg.Control.Dt < 1e-14 {
				stg.Control.Dt = 1
			}
			stg.Control.DtFunc = &dbf.Cte{C: stg.Control.Dt}
		} else {
			stg.Control.DtFunc, err = o.Functions.Get(stg.Control.DtFcn)
			if err != nil {
				chk.Panic("%v", err)
			}
			stg.Control.Dt = stg.Control.DtFunc.F(t, nil)
		}

		// fix DtOut
		if stg.Control.DtoFcn == "" {
			if stg.Control.DtOut < 1e-14 {
				stg.Control.DtOut = stg.Control.Dt
				stg.Control.DtoFunc = stg.Control.DtFunc
			} else {
				if stg.Control.DtOut < stg.Control.Dt {
					stg.Control.DtOut = stg.Control.Dt
				}
				stg.Control.DtoFunc = &dbf.Cte{C: stg.Control.DtOut}
			}
		} else {
			stg.Control.DtoFunc, err = o.Functions.Get(stg.Control.DtoFcn)
			if err != nil {
				chk.Panic("%v", err)
			}
			stg.Control.DtOut = stg.Control.DtoFunc.F(t, nil)
		}

		// first stage: gravity
		if i == 0 {
			found := false
			for _, econd := range stg.EleConds {
				for j, key := range econd.Keys {
					if key == "g" {
						gfcn, err := o.Functions.Get(econd.Funcs[j])
						if err != nil {
							chk.Panic("ReadSim: cannot find function named %q corresponding to gravity constant @ stage 0\n%v", econd.Funcs[j], err)
						}
						o.Grav0 = gfcn.F(0, nil)
						found = true
						break
					}
				}
				if found {
					break
				}
			}
		}

		// update time
		t += stg.Control.Tf
	}

	// contact data
	for i, cd := range o.Contact {
		err = cd.PostProcess(o.Regions)
		if err != nil {
			chk.Panic("ReadSim: contact interface # %d is invalid:\n%v", i, err)
		}
	}

	// read materials database and initialise models
	o.MatModels, err = ReadMat(dir, o.Data.Matfile, o.Ndim, o.Data.Pstress)
	if err != nil {
		chk.Panic("loading materials and initialising models failed:\n%v", err)
	}

	// results
	return &o
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// Etag2data returns the ElemData corresponding to element tag
//
//	Note: returns nil if not found
func (o *Region) Etag2data(etag int) *ElemData {
	for _, edat := range o.ElemsData {
		if edat.Tag == etag {
			return edat
		}
	}
	return nil
}

// GetInfo returns formatted information
func (o *Simulation) GetInfo(w goio.Writer) (err error) {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return
}

// GetEleCond returns element condition structure by giving an elem tag
//
//	Note: returns nil if not found
func (o Stage) GetEleCond(elemtag int) *EleCond {
	for _, ec := range o.EleConds {
		if elemtag == ec.Tag {
			return ec
		}
	}
	return nil
}

// GetNodeBc returns node boundary condition structure by giving a node tag
//
//	Note: returns nil if not found
func (o Stage) GetNodeBc(nodetag int) *NodeBc {
	for _, nbc := range o.NodeBcs {
		if nodetag == nbc.Tag {
			return nbc
		}
	}
	return nil
}

// extra settings //////////////////////////////////////////////////////////////////////////////////

// SetDefault set defaults values
func (o *SolverData) SetDefault() {

	// nonlinear solver
	o.Type = "imp"
	o.NmaxIt = 20
	o.Atol = 1e-6
	o.Rtol = 1e-6
	o.FbTol = 1e-8
	o.FbMin = 1e-14
	o.NdvgMax = 20

	// transient analyses
	o.DtMin = 1e-8

	// dynamics
	o.Theta1 = 0.5
	o.Theta2 = 0.5

	// constants
	o.Eps = 1e-16
}

// PostProcess performs a post-processing of the just read json file
func (o *SolverData) PostProcess() {

	// coefficients for transient analyses
	if o.ThCombo1 {
		o.Theta1 = 5.0 / 6.0
		o.Theta2 = 8.0 / 9.0
	}

	// iterations tolerance
	o.Itol = utl.Max(10.0*o.Eps/o.Rtol, utl.Min(0.01, math.Sqrt(o.Rtol)))
}

// isYaml tells whether the file extension corresponds to YAML
func isYaml(fn string) bool {
	ext := strings.ToLower(filepath.Ext(fn))
	return ext == ".yaml" || ext == ".yml"
}
