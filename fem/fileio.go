// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	goio "io"
	"os"
	"path/filepath"

	"github.com/cpmech/beamcontact/contact"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"github.com/james-bowman/sparse"
)

// GetEncoder returns a new encoder; e.g. gob or json
func GetEncoder(w goio.Writer, enctype string) utl.Encoder {
	if enctype == "json" {
		return json.NewEncoder(w)
	}
	return gob.NewEncoder(w)
}

// GetDecoder returns a new decoder; e.g. gob or json
func GetDecoder(r goio.Reader, enctype string) utl.Decoder {
	if enctype == "json" {
		return json.NewDecoder(r)
	}
	return gob.NewDecoder(r)
}

// ContactState holds the contact results that go to file
type ContactState struct {
	Slave  []int            // slave vertices
	Gap    []float64        // weighted gaps
	Jump   []float64        // weighted tangential jumps
	Ln     []float64        // normal Lagrange multipliers
	Lt     []float64        // tangential Lagrange multipliers
	Status []contact.Status // statuses
}

// SaveSol saves solution (o.Sol) to a file which name is set with tidx (time output index)
func (o *Domain) SaveSol(tidx int, verbose bool) (err error) {

	// buffer and encoder
	var buf bytes.Buffer
	enc := GetEncoder(&buf, o.Sim.EncType)

	// encode Sol
	for _, v := range []interface{}{o.Sol.T, o.Sol.Y, o.Sol.Dydt, o.Sol.D2ydt2, o.Sol.L} {
		err = enc.Encode(v)
		if err != nil {
			return chk.Err("cannot encode Domain.Sol\n%v", err)
		}
	}

	// save file
	fn := outNodPath(o.Sim.DirOut, o.Sim.Key, o.Sim.EncType, o.Index, tidx)
	return saveFile(fn, &buf, verbose)
}

// ReadSol reads Solution from a file which name is set with tidx (time output index)
func (o *Domain) ReadSol(dir, fnkey, enctype string, tidx int) (err error) {

	// open file
	fn := outNodPath(dir, fnkey, enctype, o.Index, tidx)
	fil, err := os.Open(fn)
	if err != nil {
		return
	}
	defer fil.Close()

	// decode Sol
	dec := GetDecoder(fil, enctype)
	for _, v := range []interface{}{&o.Sol.T, &o.Sol.Y, &o.Sol.Dydt, &o.Sol.D2ydt2, &o.Sol.L} {
		err = dec.Decode(v)
		if err != nil {
			return chk.Err("cannot decode Domain.Sol\n%v", err)
		}
	}
	return
}

// SaveIvs saves elements's internal values and contact results to a file which name is set with
// tidx (time output index)
func (o *Domain) SaveIvs(tidx int, verbose bool) (err error) {

	// buffer and encoder
	var buf bytes.Buffer
	enc := GetEncoder(&buf, o.Sim.EncType)

	// elements that go to file
	cids := make([]int, len(o.Elems))
	for i, e := range o.Elems {
		cids[i] = e.Id()
	}
	err = enc.Encode(cids)
	if err != nil {
		return chk.Err("cannot encode elements ids:\n%v", err)
	}

	// encode internal variables
	for _, e := range o.Elems {
		err = e.Encode(enc)
		if err != nil {
			return
		}
	}

	// contact
	states := make([]ContactState, len(o.Contacts))
	for i, c := range o.Contacts {
		states[i] = ContactState{c.Dat.Slave, c.Gap, c.Jump, c.Ln, c.Lt, c.Status}
	}
	err = enc.Encode(states)
	if err != nil {
		return chk.Err("cannot encode contact results:\n%v", err)
	}

	// save file
	fn := outElePath(o.Sim.DirOut, o.Sim.Key, o.Sim.EncType, o.Index, tidx)
	return saveFile(fn, &buf, verbose)
}

// ReadIvs reads elements's internal values and contact results from a file which name is set with
// tidx (time output index)
func (o *Domain) ReadIvs(dir, fnkey, enctype string, tidx int) (err error) {

	// open file
	fn := outElePath(dir, fnkey, enctype, o.Index, tidx)
	fil, err := os.Open(fn)
	if err != nil {
		return
	}
	defer fil.Close()

	// decoder
	dec := GetDecoder(fil, enctype)

	// elements that are in file
	var cids []int
	err = dec.Decode(&cids)
	if err != nil {
		return chk.Err("cannot decode elements ids:\n%v", err)
	}

	// decode internal variables
	for _, cid := range cids {
		elem := o.Cid2elem[cid]
		if elem == nil {
			return chk.Err("cannot find element with cid=%d", cid)
		}
		err = elem.Decode(dec)
		if err != nil {
			return chk.Err("cannot decode element:\n%v", err)
		}
	}

	// contact
	var states []ContactState
	err = dec.Decode(&states)
	if err != nil {
		return chk.Err("cannot decode contact results:\n%v", err)
	}
	if len(states) != len(o.Contacts) {
		return chk.Err("number of contact interfaces in file (%d) is different than in domain (%d)", len(states), len(o.Contacts))
	}
	for i, c := range o.Contacts {
		s := states[i]
		c.Gap, c.Jump, c.Ln, c.Lt, c.Status = s.Gap, s.Jump, s.Ln, s.Lt, s.Status
	}
	return
}

// Save saves solution and internal values to files
func (o *Domain) Save(tidx int, verbose bool) (err error) {
	err = o.SaveSol(tidx, verbose)
	if err != nil {
		return
	}
	return o.SaveIvs(tidx, verbose)
}

// Read performs the inverse operation of Save
func (o *Domain) Read(sum *Summary, tidx int) (err error) {
	err = o.ReadIvs(sum.Dirout, sum.Fnkey, o.Sim.EncType, tidx)
	if err != nil {
		return
	}
	return o.ReadSol(sum.Dirout, sum.Fnkey, o.Sim.EncType, tidx)
}

// writeSmat writes the augmented Jacobian matrix in MatrixMarket format and returns an error to
// stop the simulation
func (o *Domain) writeSmat(Kb *sparse.COO) (err error) {
	var buf bytes.Buffer
	r, c := Kb.Dims()
	io.Ff(&buf, "%%%%MatrixMarket matrix coordinate real general\n")
	io.Ff(&buf, "%d %d %d\n", r, c, Kb.NNZ())
	Kb.DoNonZero(func(i, j int, v float64) {
		io.Ff(&buf, "%d %d %23.15e\n", i+1, j+1, v)
	})
	fn := filepath.Join(o.Sim.DirOut, io.Sf("Kb_%s_d%d.smat", o.Sim.Key, o.Index))
	err = saveFile(fn, &buf, o.ShowMsg)
	if err != nil {
		return
	}
	return chk.Err("Kb matrix written to %s. simulation stopped", fn)
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func outNodPath(dir, fnkey, enctype string, didx, tidx int) string {
	return filepath.Join(dir, io.Sf("%s_d%d_nod_%010d.%s", fnkey, didx, tidx, enctype))
}

func outElePath(dir, fnkey, enctype string, didx, tidx int) string {
	return filepath.Join(dir, io.Sf("%s_d%d_ele_%010d.%s", fnkey, didx, tidx, enctype))
}

func outSumPath(dir, fnkey, enctype string) string {
	return filepath.Join(dir, io.Sf("%s_sum.%s", fnkey, enctype))
}

func saveFile(filename string, buf *bytes.Buffer, verbose bool) (err error) {
	err = os.MkdirAll(filepath.Dir(filename), 0777)
	if err != nil {
		return
	}
	err = os.WriteFile(filename, buf.Bytes(), 0644)
	if err != nil {
		return
	}
	if verbose {
		io.Pfblue2("file <%s> written\n", filename)
	}
	return
}
