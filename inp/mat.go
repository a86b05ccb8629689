// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/beamcontact/mdl/sld"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"gopkg.in/yaml.v3"
)

// Material holds material data
type Material struct {

	// input
	Name  string     `json:"name"`  // name of material
	Type  string     `json:"type"`  // type of material; e.g. "sld"
	Model string     `json:"model"` // name of model; e.g. "oned-elast"
	Extra string     `json:"extra"` // extra information about this material
	Prms  dbf.Params `json:"prms"`  // prms holds all model parameters for this material

	// derived
	Sld sld.Model // pointer to actual solid model
}

// Mats holds materials
type MatsData []*Material

// MatDb implements a database of materials
type MatDb struct {
	Functions FuncsData `json:"functions"` // all functions
	Materials MatsData  `json:"materials"` // all materials
}

// Clean cleans resources
func (o *MatDb) Clean() {
	for _, mat := range o.Materials {
		if mat.Sld != nil {
			mat.Sld.Clean()
		}
	}
}

// ReadMat reads all materials data from a .mat JSON file (or YAML if the extension is .yaml or .yml)
func ReadMat(dir, fn string, ndim int, pstress bool) (mdb *MatDb, err error) {

	// new database
	mdb = new(MatDb)

	// read file
	b, err := os.ReadFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, err
	}

	// decode
	if isYaml(fn) {
		err = yaml.Unmarshal(b, mdb)
	} else {
		err = json.Unmarshal(b, mdb)
	}
	if err != nil {
		return nil, chk.Err("cannot unmarshal materials file %q:\n%v", fn, err)
	}

	// alloc/init models
	for _, m := range mdb.Materials {
		switch m.Type {
		case "", "sld", "solid":
			m.Sld, err = sld.New(m.Model)
			if err != nil {
				return
			}
			err = m.Sld.Init(ndim, pstress, m.Prms)
			if err != nil {
				return nil, chk.Err("cannot initialise model of material %q:\n%v", m.Name, err)
			}
		default:
			return nil, chk.Err("material type %q is incorrect; options are \"sld\"", m.Type)
		}
	}
	return
}

// Get returns a material
//
//	Note: returns nil if not found
func (o MatDb) Get(name string) *Material {
	for _, mat := range o.Materials {
		if mat.Name == name {
			return mat
		}
	}
	return nil
}
