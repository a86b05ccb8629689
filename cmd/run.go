// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"math"

	"github.com/cpmech/beamcontact/fem"
	"github.com/cpmech/gosl/io"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
)

// run flags
var (
	runAlias   string
	runErase   bool
	runSummary bool
)

var runCmd = &cobra.Command{
	Use:   "run <file.sim>",
	Short: "Run a finite element simulation",
	Long: `Run all stages of a simulation and save results to the output directory.

Examples:
  # run the cantilever example showing messages
  beamcontact run -v cantilever.sim

  # run again keeping previous results under another key
  beamcontact run --alias coarse --erase=false cantilever.sim`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimulation(args[0])
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runAlias, "alias", "", "word appended to the simulation key")
	runCmd.Flags().BoolVar(&runErase, "erase", true, "erase previous results")
	runCmd.Flags().BoolVar(&runSummary, "summary", true, "save summary")
}

// runSimulation runs simulation and prints the residual history in verbose mode
func runSimulation(simfile string) (err error) {
	if verbose {
		io.PfWhite("\nbeamcontact %s\n", Version)
		io.Pf("%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"simulation file", "simfile", simfile,
			"alias", "alias", runAlias,
			"erase previous results", "erase", runErase,
			"save summary", "summary", runSummary,
		))
	}
	main := fem.NewMain(simfile, runAlias, runErase, runSummary, false, verbose)
	err = main.Run()
	if verbose && main.Sim.Data.Stat {
		io.Pf("\n%s\n", residualChart(main.Summary, 60, 12))
	}
	return
}

// residualChart returns an ASCII chart with log10 of the largest residual at all iterations
func residualChart(sum *fem.Summary, width, height int) string {
	res := sum.AllResids()
	if len(res) == 0 {
		return "no residuals recorded"
	}
	data := make([]float64, len(res))
	for i, r := range res {
		data[i] = math.Log10(math.Max(r, 1e-16))
	}
	return asciigraph.Plot(data,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(io.Sf("log10(largest residual): %d steps, %d iterations", sum.Nsteps, len(res))),
	)
}
