// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/cpmech/beamcontact/cmd"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.Verbose = true
			io.PfRed("\nERROR: %v\n", err)
			if chk.Verbose {
				io.Pf("See location of error below:\n")
				for i := 5; i > 3; i-- {
					chk.CallerInfo(i)
				}
			}
			os.Exit(1)
		}
	}()

	// run command
	err := cmd.Execute()
	if err != nil {
		io.Verbose = true
		io.PfRed("\nERROR: %v\n", err)
		os.Exit(1)
	}
}
