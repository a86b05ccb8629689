// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/beamcontact/fem"
	"github.com/cpmech/beamcontact/inp"
	"github.com/cpmech/beamcontact/mdl/sld"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
)

func Test_cmd01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cmd01. run, plot and export")

	// output to temporary directory
	tmp := tst.TempDir()
	tst.Setenv(inp.EnvDirOut, tmp)
	tst.Setenv(EnvVerbose, "")
	simfile := "../fem/data/cantilever.sim"

	// run
	rootCmd.SetArgs([]string{"run", "--env", filepath.Join(tmp, "missing.env"), simfile})
	require.NoError(tst, Execute())
	require.FileExists(tst, filepath.Join(tmp, "cantilever", "cantilever_sum.gob"))

	// plot
	figs := filepath.Join(tmp, "figs")
	rootCmd.SetArgs([]string{"plot", "--vid", "3", "--key", "rz", "--dirout", figs, "--ext", "svg", simfile})
	require.NoError(tst, Execute())
	require.FileExists(tst, filepath.Join(figs, "cantilever_deformed.svg"))
	require.FileExists(tst, filepath.Join(figs, "cantilever_history_rz.svg"))

	// export
	xlsx := filepath.Join(tmp, "results", "cantilever.xlsx")
	rootCmd.SetArgs([]string{"export", "--out", xlsx, simfile})
	require.NoError(tst, Execute())
	require.FileExists(tst, xlsx)

	// wrong number of arguments
	rootCmd.SetArgs([]string{"run"})
	require.Error(tst, Execute())
}

func Test_cmd02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cmd02. residual chart and environment file")

	// chart
	var sum fem.Summary
	chk.String(tst, residualChart(&sum, 40, 5), "no residuals recorded")
	sum.AppendResid(true, 1)
	sum.AppendResid(false, 1e-3)
	sum.AppendResid(false, 1e-9)
	sum.Nsteps = 1
	chart := residualChart(&sum, 40, 5)
	io.Pf("%s\n", chart)
	require.True(tst, strings.Contains(chart, "1 steps, 3 iterations"))

	// environment file
	fn := filepath.Join(tst.TempDir(), "test.env")
	require.NoError(tst, os.WriteFile(fn, []byte("BEAMCONTACT_TESTVAR=abc\n"), 0644))
	defer os.Unsetenv("BEAMCONTACT_TESTVAR")
	envFile = fn
	defer func() { envFile = ".env" }()
	require.NoError(tst, loadEnv())
	chk.String(tst, os.Getenv("BEAMCONTACT_TESTVAR"), "abc")

	// unreadable file
	envFile = tst.TempDir()
	require.Error(tst, loadEnv())
}

func Test_cmd03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cmd03. materials file")

	// write file and read it back
	tmp := tst.TempDir()
	fn := filepath.Join(tmp, "mats", "girder.mat")
	rootCmd.SetArgs([]string{"mat", "--env", filepath.Join(tmp, "missing.env"), "--material", "steel", "--unit", "MPa",
		"--section", "rectangle", "-b", "0.2", "--height", "0.3", "-o", fn, "girder"})
	require.NoError(tst, Execute())
	mdb, err := inp.ReadMat(filepath.Dir(fn), filepath.Base(fn), 2, false)
	require.NoError(tst, err)
	mat := mdb.Get("girder")
	require.NotNil(tst, mat)
	chk.Float64(tst, "rho", 1e-15, mat.Sld.GetRho(), 7.85e-3)
	sec, ok := mat.Sld.(sld.Section)
	require.True(tst, ok)
	chk.Float64(tst, "A", 1e-15, sec.GetA(), 0.06)
	EA, _, EI2, EI3 := sec.Rigidities()
	chk.Float64(tst, "EA", 1e-8, EA, 200000*0.06)
	chk.Float64(tst, "EI2", 1e-8, EI2, 200000*0.2*math.Pow(0.3, 3)/12)
	chk.Float64(tst, "EI3", 1e-8, EI3, 200000*math.Pow(0.2, 3)*0.3/12)

	// invalid material
	rootCmd.SetArgs([]string{"mat", "--material", "unobtainium", "-o", fn, "girder"})
	require.Error(tst, Execute())

	// list
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	defer rootCmd.SetOut(nil)
	rootCmd.SetArgs([]string{"mat", "--list"})
	require.NoError(tst, Execute())
	require.True(tst, strings.Contains(buf.String(), "nitinol\n"))
	matList = false
}
