// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/cpmech/beamcontact/ele"
	"github.com/cpmech/gosl/chk"
	"github.com/xuri/excelize/v2"
)

// sheet names
const (
	SheetNodes   = "nodes"
	SheetIps     = "ips"
	SheetContact = "contact"
	SheetSummary = "summary"
)

// ExportExcel writes nodal values, integration point values and contact results at all selected
// output times (see LoadResults) to an Excel workbook
func ExportExcel(dirout, fname string) (err error) {

	// check
	if len(TimeInds) == 0 {
		return chk.Err("LoadResults must be called first")
	}

	// workbook
	f := excelize.NewFile()
	defer f.Close()
	err = f.SetSheetName("Sheet1", SheetNodes)
	if err != nil {
		return
	}
	for _, name := range []string{SheetIps, SheetContact, SheetSummary} {
		if _, err = f.NewSheet(name); err != nil {
			return
		}
	}

	// headers
	nodKeys := nodeKeys()
	ipKeys := ipsKeys()
	err = setRow(f, SheetNodes, 1, append([]string{"t", "vid", "x", "y"}, nodKeys...))
	if err != nil {
		return
	}
	err = setRow(f, SheetIps, 1, append([]string{"t", "cid", "ip", "x", "y"}, ipKeys...))
	if err != nil {
		return
	}
	err = setRow(f, SheetContact, 1, []string{"t", "interface", "vid", "gap", "jump", "lamn", "lamt", "status"})
	if err != nil {
		return
	}

	// rows
	rn, ri, rc := 2, 2, 2
	for idx, tidx := range TimeInds {
		err = Dom.Read(Sum, tidx)
		if err != nil {
			return
		}
		t := Times[idx]

		// nodes
		for _, nod := range Dom.Nodes {
			row := []interface{}{t, nod.Vert.Id, nod.Vert.C[0], nod.Vert.C[1]}
			for _, key := range nodKeys {
				if eq := nod.GetEq(key); eq >= 0 {
					row = append(row, Dom.Sol.Y[eq])
				} else {
					row = append(row, nil)
				}
			}
			if err = setCells(f, SheetNodes, rn, row); err != nil {
				return
			}
			rn++
		}

		// integration points
		for _, e := range ElemOutIps {
			M := ele.NewIpsMap()
			e.OutIpVals(M, Dom.Sol)
			for i, x := range e.OutIpCoords() {
				row := []interface{}{t, e.Id(), i, x[0], x[1]}
				for _, key := range ipKeys {
					if vals, ok := (*M)[key]; ok && i < len(vals) {
						row = append(row, vals[i])
					} else {
						row = append(row, nil)
					}
				}
				if err = setCells(f, SheetIps, ri, row); err != nil {
					return
				}
				ri++
			}
		}

		// contact
		for k, c := range Dom.Contacts {
			for j, s := range c.Slave {
				row := []interface{}{t, k, s.Vid, c.Gap[j], c.Jump[j], c.Ln[j], c.Lt[j], c.Status[j].String()}
				if err = setCells(f, SheetContact, rc, row); err != nil {
					return
				}
				rc++
			}
		}
	}

	// summary
	rows := [][]interface{}{
		{"run id", Sum.RunId},
		{"number of steps", Sum.Nsteps},
		{"active set steps", Sum.ActiveSteps},
		{"number of output times", len(Sum.OutTimes)},
	}
	for i, row := range rows {
		if err = setCells(f, SheetSummary, i+1, row); err != nil {
			return
		}
	}

	// save
	err = os.MkdirAll(dirout, 0777)
	if err != nil {
		return chk.Err("cannot create directory for spreadsheet:\n%v", err)
	}
	fn := filepath.Join(dirout, fname)
	err = f.SaveAs(fn)
	if err != nil {
		return chk.Err("cannot save spreadsheet %q:\n%v", fn, err)
	}
	message("file <%s> written\n", fn)
	return
}

// auxiliary /////////////////////////////////////////////////////////////////////////////////////////

// nodeKeys returns the DOF keys of all nodes in the order they first appear
func nodeKeys() (keys []string) {
	found := make(map[string]bool)
	for _, nod := range Dom.Nodes {
		for _, dof := range nod.Dofs {
			if !found[dof.Key] {
				found[dof.Key] = true
				keys = append(keys, dof.Key)
			}
		}
	}
	return
}

// ipsKeys returns the sorted keys of all elements that output integration point values
func ipsKeys() (keys []string) {
	found := make(map[string]bool)
	for _, e := range ElemOutIps {
		for _, key := range e.OutIpKeys() {
			if !found[key] {
				found[key] = true
				keys = append(keys, key)
			}
		}
	}
	sort.Strings(keys)
	return
}

func setRow(f *excelize.File, sheet string, r int, vals []string) error {
	row := make([]interface{}, len(vals))
	for i, v := range vals {
		row[i] = v
	}
	return setCells(f, sheet, r, row)
}

func setCells(f *excelize.File, sheet string, r int, row []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, r)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &row)
}
