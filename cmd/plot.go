// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"github.com/cpmech/beamcontact/out"
	"github.com/spf13/cobra"
)

// plot flags
var (
	plotStage  int
	plotRegion int
	plotDirout string
	plotExt    string
	plotVid    int
	plotKey    string
	plotScale  float64
)

var plotCmd = &cobra.Command{
	Use:   "plot <file.sim>",
	Short: "Plot results of a previous simulation",
	Long: `Plot the deformed shape, bending moment diagrams of linear beams and, optionally,
the time history of a nodal value.

Examples:
  # deformed shape and history of the vertical displacement of vertex 7
  beamcontact plot --vid 7 --key uy cantilever.sim`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := plotResults(args[0])
		return err
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotCmd.Flags().IntVar(&plotStage, "stage", 0, "index of stage")
	plotCmd.Flags().IntVar(&plotRegion, "region", 0, "index of region")
	plotCmd.Flags().StringVar(&plotDirout, "dirout", "", "directory for figures; default is the output directory of the simulation")
	plotCmd.Flags().StringVar(&plotExt, "ext", "png", "format of figures: png, svg or pdf")
	plotCmd.Flags().IntVar(&plotVid, "vid", -1, "vertex id for time history")
	plotCmd.Flags().StringVar(&plotKey, "key", "uy", "key of nodal value for time history")
	plotCmd.Flags().Float64Var(&plotScale, "scale", 1, "scale factor for displacements")
}

// plotResults saves figures and returns their file names
func plotResults(simfile string) (fnames []string, err error) {
	out.Start(simfile, plotStage, plotRegion)
	out.DefineBeams()
	if plotVid >= 0 {
		out.Define("node", out.N{plotVid})
	}
	out.LoadResults(nil)
	dirout := plotDirout
	if dirout == "" {
		dirout = out.Analysis.Sim.DirOut
	}
	key := out.Analysis.Sim.Key

	// deformed shape
	fn := key + "_deformed." + plotExt
	err = out.DrawDeformed(dirout, fn, -1, plotScale)
	if err != nil {
		return
	}
	fnames = append(fnames, fn)

	// bending moment
	if len(out.Beams) > 0 && out.Dom.Msh.Ndim == 2 {
		fn = key + "_moment." + plotExt
		err = out.BeamDiagMoment(dirout, fn, -1, true, "", 0.2)
		if err != nil {
			return
		}
		fnames = append(fnames, fn)
	}

	// history
	if plotVid >= 0 {
		out.Splot(plotKey, "vertex "+out.Results["node"][0].String())
		out.Plot("t", plotKey, "node", out.Style{M: true}, -1)
		var fns []string
		fns, err = out.Draw(dirout, key+"_history", plotExt, 12, 8)
		if err != nil {
			return
		}
		fnames = append(fnames, fns...)
	}
	return
}
