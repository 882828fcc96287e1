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
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/mustpax/OISC/asm"
	"github.com/mustpax/OISC/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// defaultImage is the image file written by compile when no output file is
// given.
const defaultImage = "compiled.mif"

var debug bool

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "oisc",
		Short: "OISC compiler and emulator",
		Long: `oisc compiles OISC source programs to memory image files and runs them on
an emulated OISC machine.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "print stack traces along with errors")
	root.AddCommand(
		newCompileCmd(),
		newRunCmd(),
		newInitramCmd(),
		newRomdumpCmd(),
		newConsoleCmd(),
	)
	return root
}

func newCompileCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "compile source",
		Short: "Compile a source file to a memory image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := compileFile(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], out)
			if err != nil {
				return err
			}
			if n > 0 {
				return errors.Errorf("%s: %d error(s), statements skipped", args[0], n)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", defaultImage, "memory image `filename`")
	return cmd
}

func newRunCmd() *cobra.Command {
	var dump bool
	cmd := &cobra.Command{
		Use:   "run image",
		Short: "Run a memory image",
		Long: `Run loads a memory image and runs it until the program counter moves past the
last program memory cell. Programs that never do so run until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := vm.LoadImage(args[0])
			if err != nil {
				return err
			}
			out := bufio.NewWriter(cmd.OutOrStdout())
			defer out.Flush()
			i, err := vm.New(p, vm.Input(cmd.InOrStdin()), vm.Output(out))
			if err != nil {
				return err
			}
			// end of input ends the program
			if err = i.Run(); errors.Cause(err) == io.EOF {
				err = nil
			}
			if err != nil {
				return err
			}
			if dump {
				return ramDump(out, i.Mem)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "dump data memory once the program halts")
	return cmd
}

func newInitramCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "initram image",
		Short: "Run the load instructions at the start of a memory image and dump data memory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := vm.LoadImage(args[0])
			if err != nil {
				return err
			}
			i, err := vm.New(p)
			if err != nil {
				return err
			}
			if err = i.Preload(); err != nil {
				return err
			}
			return ramDump(cmd.OutOrStdout(), i.Mem)
		},
	}
}

func newRomdumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "romdump image",
		Short: "Disassemble a memory image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := vm.LoadImage(args[0])
			if err != nil {
				return err
			}
			return romDump(cmd.OutOrStdout(), p)
		},
	}
}

func newConsoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Start the interactive console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			prompt := false
			if f, ok := in.(*os.File); ok {
				prompt = isTerminal(f)
			}
			c, err := newConsole(in, cmd.OutOrStdout(), prompt)
			if err != nil {
				return err
			}
			return c.Run()
		},
	}
}

// compileFile compiles source file src to image file dst. Diagnostics are
// written to diag. It returns the number of diagnostics that are errors.
func compileFile(w, diag io.Writer, src, dst string) (int, error) {
	fmt.Fprintf(w, "Reading source from file: %s\n", src)
	data, err := os.ReadFile(src)
	if err != nil {
		return 0, errors.Wrap(err, "read failed")
	}
	p, err := asm.Compile(src, bytes.NewReader(data))
	errs, ok := err.(asm.ErrAsm)
	if err != nil && !ok {
		return 0, err
	}
	n := 0
	for i := range errs {
		fmt.Fprintln(diag, errs[i].Error())
		if errs[i].Kind != asm.Warning {
			n++
		}
	}
	if err = vm.SaveImage(dst, p); err != nil {
		return n, err
	}
	fmt.Fprintf(w, "Finished compiling file %s, %d lines read.\n", src, lineCount(data))
	return n, nil
}

func lineCount(data []byte) int {
	n := bytes.Count(data, []byte{'\n'})
	if len(data) > 0 && data[len(data)-1] != '\n' {
		n++
	}
	return n
}

func atExit(err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "%+v\n", err)
	os.Exit(1)
}

func main() {
	atExit(newRootCmd().Execute())
}
