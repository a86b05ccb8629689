// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/google/uuid"
)

// Summary records summary of outputs
type Summary struct {

	// main data
	RunId       string      // unique identifier of the run
	OutTimes    []float64   // [nOutTimes] output times
	Resids      [][]float64 // residuals (if Stat is on; includes all stages). one list per time step
	Nsteps      int         // number of converged time steps
	ActiveSteps int         // number of active set changes (contact)
	Dirout      string      // directory where results are stored
	Fnkey       string      // filename key of simulation
	EncType     string      // encoder type
}

// NewSummary returns a new Summary with a new run identifier
func NewSummary(dirout, fnkey, enctype string) *Summary {
	return &Summary{RunId: uuid.NewString(), Dirout: dirout, Fnkey: fnkey, EncType: enctype}
}

// AppendResid appends residual. first indicates the first iteration of a new time step
func (o *Summary) AppendResid(first bool, val float64) {
	if first || len(o.Resids) == 0 {
		o.Resids = append(o.Resids, []float64{val})
		return
	}
	i := len(o.Resids) - 1
	o.Resids[i] = append(o.Resids[i], val)
}

// AllResids returns all residuals in one list
func (o *Summary) AllResids() (res []float64) {
	for _, r := range o.Resids {
		res = append(res, r...)
	}
	return
}

// SaveDomains saves the results of all domains and records the output time
func (o *Summary) SaveDomains(t float64, doms []*Domain, verbose bool) (err error) {
	tidx := len(o.OutTimes)
	for _, d := range doms {
		err = d.Save(tidx, verbose)
		if err != nil {
			return
		}
	}
	o.OutTimes = append(o.OutTimes, t)
	return
}

// Save saves summary to disc
func (o *Summary) Save() (err error) {
	var buf bytes.Buffer
	enc := GetEncoder(&buf, o.EncType)
	err = enc.Encode(o)
	if err != nil {
		return chk.Err("cannot encode summary:\n%v", err)
	}
	return saveFile(outSumPath(o.Dirout, o.Fnkey, o.EncType), &buf, false)
}

// Read reads summary back
func (o *Summary) Read(dirout, fnkey, enctype string) (err error) {
	fil, err := os.Open(outSumPath(dirout, fnkey, enctype))
	if err != nil {
		return chk.Err("cannot open summary file:\n%v", err)
	}
	defer fil.Close()
	dec := GetDecoder(fil, enctype)
	err = dec.Decode(o)
	if err != nil {
		return chk.Err("cannot decode summary:\n%v", err)
	}
	return
}
