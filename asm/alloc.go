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
	"strings"

	"github.com/mustpax/OISC/codec"
	"github.com/mustpax/OISC/vm"
	"github.com/pkg/errors"
)

// Reserved data memory cells. They sit above the variable heap and are
// initialized by the preamble that starts every compiled program.
const (
	ZeroAddr   uint8 = 250 // constant 0, used as a temporary and restored
	TmpCAddr   uint8 = 251
	TmpBAddr   uint8 = 252
	TmpAAddr   uint8 = 253
	NegOneAddr uint8 = 254 // constant -1
)

// Variables are allocated downward from HeapStart.
const (
	HeapStart uint8 = 249
	MaxVars         = 100
)

// IOName is the built-in name of the I/O cell. It can be used as an operand
// but not defined.
const IOName = "ioPort"

var errHeapFull = errors.Errorf("out of heap space, maximum number of variables (%d) exceeded", MaxVars)

// symbols maps variable names to data memory addresses.
type symbols struct {
	addr map[string]uint8
	heap int // address of the next new variable
}

func newSymbols() *symbols {
	return &symbols{
		addr: make(map[string]uint8),
		heap: int(HeapStart),
	}
}

func (s *symbols) lookup(name string) (uint8, bool) {
	if name == IOName {
		return vm.IOAddr, true
	}
	a, ok := s.addr[name]
	return a, ok
}

// reserve returns the address that name will be bound to: its current address
// if already defined, the next heap address otherwise. Nothing is allocated
// until commit.
func (s *symbols) reserve(name string) (uint8, error) {
	if a, ok := s.addr[name]; ok {
		return a, nil
	}
	if len(s.addr) >= MaxVars {
		return 0, errHeapFull
	}
	return uint8(s.heap), nil
}

func (s *symbols) commit(name string, addr uint8) {
	if _, ok := s.addr[name]; ok {
		return
	}
	s.addr[name] = addr
	s.heap--
}

// checkName validates the name of a new variable.
func checkName(name string) error {
	switch {
	case name == IOName:
		return errors.Errorf("%s is a reserved variable name", name)
	case codec.IsDecimal(name):
		return errors.Errorf("invalid variable name %s, must also contain non-numeric characters", name)
	case strings.IndexByte("#$-", name[0]) >= 0:
		return errors.Errorf("invalid variable name %s, cannot start with %q", name, name[0])
	}
	return nil
}
