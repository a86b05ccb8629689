// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"path/filepath"

	"github.com/cpmech/beamcontact/out"
	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
)

// export flags
var (
	exportStage  int
	exportRegion int
	exportFile   string
)

var exportCmd = &cobra.Command{
	Use:   "export <file.sim>",
	Short: "Export results of a previous simulation to an Excel workbook",
	Long: `Export nodal values, integration point values and contact results at all output
times to an Excel workbook.

Examples:
  beamcontact export --out /tmp/results.xlsx cantilever.sim`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := exportResults(args[0])
		return err
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().IntVar(&exportStage, "stage", 0, "index of stage")
	exportCmd.Flags().IntVar(&exportRegion, "region", 0, "index of region")
	exportCmd.Flags().StringVarP(&exportFile, "out", "o", "", "path of workbook; default is <dirout>/<key>.xlsx")
}

// exportResults writes the workbook and returns its path
func exportResults(simfile string) (fn string, err error) {
	out.Start(simfile, exportStage, exportRegion)
	out.LoadResults(nil)
	fn = exportFile
	if fn == "" {
		fn = filepath.Join(out.Analysis.Sim.DirOut, out.Analysis.Sim.Key+".xlsx")
	}
	err = out.ExportExcel(filepath.Dir(fn), filepath.Base(fn))
	if err == nil && verbose {
		io.PfGreen("> results exported to <%s>\n", fn)
	}
	return
}
