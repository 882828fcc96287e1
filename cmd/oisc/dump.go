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
	"fmt"
	"io"

	"github.com/mustpax/OISC/asm"
	"github.com/mustpax/OISC/internal/oisci"
	"github.com/mustpax/OISC/vm"
)

// romDump lists the program memory of p.
func romDump(w io.Writer, p vm.Program) error {
	ew := oisci.NewErrWriter(w)
	io.WriteString(ew, "Displaying instructions stored in rom:\n")
	asm.DisassembleAll(p, ew)
	io.WriteString(ew, "Done.\n")
	return ew.Err
}

// ramDump lists the initialized cells of data memory m.
func ramDump(w io.Writer, m vm.Memory) error {
	ew := oisci.NewErrWriter(w)
	io.WriteString(ew, "Displaying all loaded addresses in ram:\n")
	for _, a := range m.Addresses() {
		fmt.Fprintf(ew, "Addr: %3d Val: %3d\n", a, m[a])
	}
	io.WriteString(ew, "Done.\n")
	return ew.Err
}
