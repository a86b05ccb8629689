// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version of beamcontact
const Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of beamcontact",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("beamcontact v%s\n", Version)
		fmt.Println("Nonlinear Kirchhoff beams with large rotations and mortar contact")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
