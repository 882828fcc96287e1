// This file is part of OISC - https://github.com/mustpax/OISC
//
// Copyright 2017 The OISC Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mustpax/OISC/vm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// echoSum reads two values and prints their sum.
const echoSum = `DEF a 0
DEF b 0
DEF c 0
MOV ioPort a
MOV ioPort b
ADD a b c
MOV c ioPort
`

func execute(in string, args ...string) (stdout, stderr string, err error) {
	cmd := newRootCmd()
	var o, e bytes.Buffer
	cmd.SetIn(strings.NewReader(in))
	cmd.SetOut(&o)
	cmd.SetErr(&e)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return o.String(), e.String(), err
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "sum.oisc", echoSum)
	img := filepath.Join(dir, "sum.mif")

	out, errOut, err := execute("", "compile", src, "-o", img)
	require.NoError(t, err)
	require.Empty(t, errOut)
	require.Equal(t, "Reading source from file: "+src+"\n"+
		"Finished compiling file "+src+", 7 lines read.\n", out)
	require.FileExists(t, img)

	out, _, err = execute("", "romdump", img)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "Displaying instructions stored in rom:\n"+
		"Addr:   0 Instr: loadim      0, m(250),   1\n"+
		"Addr:   1 Instr: loadim     -1, m(254),   2\n"))
	require.True(t, strings.HasSuffix(out, "Done.\n"))
	require.Equal(t, vm.Depth+2, strings.Count(out, "\n"))

	// clearing the I/O cell in the last MOV reads it twice
	out, _, err = execute("3\n4\n0\n0\n0\n", "run", img, "--dump")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "? ? ? ? 0\n? 7\n"))
	require.Contains(t, out, "Addr: 247 Val:   7\n")
	require.Contains(t, out, "Addr: 248 Val:   4\n")

	// end of input stops the program without error
	out, _, err = execute("3\n", "run", img)
	require.NoError(t, err)
	require.Equal(t, "? ? ", out)

	out, _, err = execute("", "initram", img)
	require.NoError(t, err)
	require.Equal(t, "Displaying all loaded addresses in ram:\n"+
		"Addr: 247 Val:   0\n"+
		"Addr: 248 Val:   0\n"+
		"Addr: 249 Val:   0\n"+
		"Addr: 250 Val:   0\n"+
		"Addr: 251 Val:   0\n"+
		"Addr: 252 Val:   0\n"+
		"Addr: 253 Val:   0\n"+
		"Addr: 254 Val:  -1\n"+
		"Done.\n", out)
}

func TestCompile_diagnostics(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "bad.oisc", "DEF a 1\nFOO\nDEF b 2\n")
	img := filepath.Join(dir, "bad.mif")
	out, errOut, err := execute("", "compile", "--output", img, src)
	require.EqualError(t, err, src+": 1 error(s), statements skipped")
	require.Equal(t, src+":2:1: cannot parse operator \"FOO\", skipping line\n", errOut)
	require.Contains(t, out, "3 lines read.")
	// the image is written anyway
	p, err := vm.LoadImage(img)
	require.NoError(t, err)
	require.Equal(t, vm.Load(2, 248, 7), p[6])
}

func TestRun_errors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.mif", "DEPTH = 128;\nBEGIN\nEND;\n")
	_, _, err := execute("", "run", bad)
	var ie *vm.ImageError
	require.True(t, errors.As(err, &ie))
	require.Equal(t, 1, ie.Line)

	_, _, err = execute("", "romdump", filepath.Join(dir, "missing.mif"))
	require.True(t, os.IsNotExist(errors.Cause(err)))

	_, _, err = execute("", "run")
	require.Error(t, err)

	// reading a variable that was never defined
	p := vm.Program{0: vm.Subleq(10, 11, 0)}
	img := filepath.Join(dir, "uninit.mif")
	require.NoError(t, vm.SaveImage(img, p))
	_, _, err = execute("", "run", img)
	var ue *vm.UninitializedReadError
	require.True(t, errors.As(err, &ue))
	require.EqualValues(t, 10, ue.Addr)
}

func TestConsoleCmd(t *testing.T) {
	out, _, err := execute("commands\nquit\n", "console")
	require.NoError(t, err)
	require.Equal(t, banner+consoleHelp+"Goodbye!\n", out)
}

func TestLineCount(t *testing.T) {
	for _, tc := range []struct {
		in string
		n  int
	}{
		{"", 0},
		{"\n", 1},
		{"a", 1},
		{"a\nb", 2},
		{"a\nb\n", 2},
	} {
		require.Equal(t, tc.n, lineCount([]byte(tc.in)), "%q", tc.in)
	}
}
