// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package cmd implements the command line interface of beamcontact
package cmd

import (
	"errors"
	"io/fs"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// EnvVerbose is the name of the environment variable that turns messages on
const EnvVerbose = "BEAMCONTACT_VERBOSE"

// flags shared by all commands
var (
	verbose bool   // show messages
	envFile string // file with environment variables
)

var rootCmd = &cobra.Command{
	Use:   "beamcontact",
	Short: "Nonlinear Kirchhoff beams with large rotations and mortar contact",
	Long: `beamcontact - finite element analysis of slender beams

Solves static and dynamic problems with geometrically exact Kirchhoff beams
(large rotations), linear beams and rods. Beams can touch other beams or rigid
obstacles through 2D mortar contact interfaces with Lagrange multipliers.

Simulations are described by .sim files (JSON or YAML) with meshes (.msh) and
materials (.mat). Results are saved to the output directory and can be plotted
or exported to spreadsheets afterwards.

Environment:
  BEAMCONTACT_DIROUT   overrides the output directory
  BEAMCONTACT_VERBOSE  set to 1 to show messages`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnv()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show messages")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "file with environment variables (ignored if missing)")
}

// loadEnv loads environment variables from file and sets the verbose mode
func loadEnv() error {
	err := godotenv.Load(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return chk.Err("cannot load environment file %q:\n%v", envFile, err)
	}
	switch os.Getenv(EnvVerbose) {
	case "1", "true", "yes":
		verbose = true
	}
	io.Verbose = verbose
	chk.Verbose = verbose
	return nil
}
