// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cpmech/beamcontact/ana"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
)

// mat flags
var (
	matMaterial string
	matUnitPres string
	matUnitLen  string
	matSection  string
	matModel    string
	matNumFmt   string
	matOut      string
	matList     bool
	matDims     [5]float64 // b, h, tf, tw, r
)

var matCmd = &cobra.Command{
	Use:   "mat <name>",
	Short: "Generate a materials file for beams with a reference material and cross-section",
	Long: `Generate a .mat file with one beam material named <name>. Young's modulus, shear
modulus and density come from a reference material; the sectional properties
A, I2, I3 and J are computed from the cross-section dimensions.

Examples:
  beamcontact mat --list
  beamcontact mat --material steel --section rectangle -b 0.2 --height 0.3 girder
  beamcontact mat --material nitinol --unit GPa --section circle -r 2e-4 -o wire.mat wire`,
	Args: func(cmd *cobra.Command, args []string) error {
		if matList {
			return nil
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if matList {
			_, err := w.Write([]byte(strings.Join(ana.RefMaterials(), "\n") + "\n"))
			return err
		}
		buf, err := materialsFile(args[0])
		if err != nil {
			return err
		}
		if matOut == "" {
			_, err = w.Write(buf)
			return err
		}
		if err = os.MkdirAll(filepath.Dir(matOut), 0777); err != nil {
			return err
		}
		if err = os.WriteFile(matOut, buf, 0644); err != nil {
			return err
		}
		if verbose {
			io.PfGreen("> materials file <%s> written\n", matOut)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(matCmd)
	f := matCmd.Flags()
	f.BoolVar(&matList, "list", false, "list the reference materials")
	f.StringVar(&matMaterial, "material", "steel", "reference material")
	f.StringVar(&matUnitPres, "unit", "MPa", "unit of pressure: kPa, MPa or GPa")
	f.StringVar(&matUnitLen, "lunit", "m", "unit of length")
	f.StringVar(&matSection, "section", "", "cross-section: rectangle, I-beam or circle; empty means no sectional properties")
	f.StringVar(&matModel, "model", "oned-elast", "name of section model")
	f.StringVar(&matNumFmt, "fmt", "%g", "number format")
	f.StringVarP(&matOut, "out", "o", "", "path of materials file; default is the standard output")
	f.Float64VarP(&matDims[0], "width", "b", 0, "width")
	f.Float64Var(&matDims[1], "height", 0, "height")
	f.Float64Var(&matDims[2], "tf", 0, "flange thickness of I-beams")
	f.Float64Var(&matDims[3], "tw", 0, "web thickness of I-beams")
	f.Float64VarP(&matDims[4], "radius", "r", 0, "radius of circles")
}

// materialsFile returns the contents of a .mat file with one material. Invalid names of
// materials, units or sections are returned as errors
func materialsFile(name string) (buf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("cannot generate material %q:\n%v", name, r)
		}
	}()
	var mat ana.Material
	mat.Init(matMaterial, matUnitPres)
	var sec *ana.CrossSection
	if matSection != "" {
		sec = new(ana.CrossSection)
		sec.Init(matSection, matUnitLen, matDims[0], matDims[1], matDims[2], matDims[3], matDims[4])
		if sec.A <= 0 {
			return nil, chk.Err("cross-section %q has no area. check its dimensions", matSection)
		}
	}
	l := mat.GetMatString(name, matModel, matNumFmt, sec)
	buf = []byte(io.Sf("{\n  \"materials\" : [\n%s\n  ]\n}\n", l))
	return
}
