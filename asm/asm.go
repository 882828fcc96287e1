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

package asm

import (
	"fmt"
	"io"
	"os"

	"github.com/mustpax/OISC/internal/oisci"
	"github.com/mustpax/OISC/vm"
	"github.com/pkg/errors"
)

// Compile compiles source code read from the supplied io.Reader and returns
// the resulting program.
//
// The name parameter is used only in diagnostics to name the source. If the
// io.Reader is a file, name should be the file name.
//
// Statements that fail to compile are skipped and compilation goes on. In
// this case, the returned error is an ErrAsm listing every diagnostic and the
// returned program is still usable. Use ErrAsm.HasErrors to tell warnings
// apart from actual errors. Any other error is a read error and comes with a
// nil program.
func Compile(name string, r io.Reader) (vm.Program, error) {
	return newParser().Parse(name, r)
}

// CompileFile compiles the named source file.
func CompileFile(fileName string) (vm.Program, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	return Compile(fileName, f)
}

// Disassemble writes a disassembly of a single cell to w.
func Disassemble(c vm.Cell, w io.Writer) error {
	_, err := io.WriteString(w, c.String())
	return err
}

// DisassembleAll writes a disassembly of all populated cells of p to w, one
// per line in increasing address order.
func DisassembleAll(p vm.Program, w io.Writer) error {
	ew := oisci.NewErrWriter(w)
	for _, pc := range p.Addresses() {
		fmt.Fprintf(ew, "Addr: %3d Instr: ", pc)
		Disassemble(p[pc], ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
