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
	"testing"

	"github.com/mustpax/OISC/vm"
	"github.com/stretchr/testify/require"
)

func TestBlock_link(t *testing.T) {
	b := new(block)
	b.mark("top")
	b.sub(1, 2)
	b.subTo(3, 4, "out")
	b.jump("top")
	b.subAbs(5, 6, 42)
	b.mark("out")

	require.Equal(t, []vm.Cell{
		vm.Subleq(1, 2, 11),
		vm.Subleq(3, 4, 14),
		vm.Subleq(ZeroAddr, ZeroAddr, 10),
		vm.Subleq(5, 6, 42),
	}, b.link(10))
	// link does not alter the block
	require.Equal(t, vm.Subleq(1, 2, 0), b.code[0])

	// successor of the last cell
	require.Equal(t, []vm.Cell{
		vm.Subleq(1, 2, 253),
		vm.Subleq(3, 4, 255),
		vm.Subleq(ZeroAddr, ZeroAddr, 252),
		vm.Subleq(5, 6, 42),
	}, b.link(252))

	b = new(block)
	b.jump("nowhere")
	require.Panics(t, func() { b.link(0) })
}

func TestGen_sizes(t *testing.T) {
	for _, tt := range []struct {
		o    op
		size int
	}{
		{opDEF, 1}, {opJMP, 1}, {opJMPI, 4}, {opMOV, 4}, {opADD, 5},
		{opSUB, 9}, {opMUL, 13}, {opDIV, 17}, {opIFGT, 6}, {opIFLE, 5},
	} {
		b := new(block)
		tt.o.gen(b, []uint8{1, 2, 3})
		require.Len(t, b.code, tt.size, tt.o.String())
		// every label resolves
		require.NotPanics(t, func() { b.link(vm.Depth - tt.size) }, tt.o.String())
	}
	require.Panics(t, func() { opCount.gen(new(block), nil) })
}

func TestBlock_fits(t *testing.T) {
	for _, tt := range []struct {
		o    op
		size int
		last bool // can end on the last cell
	}{
		{opDEF, 1, false}, {opJMP, 1, true}, {opJMPI, 4, true}, {opMOV, 4, false},
		{opADD, 5, false}, {opSUB, 9, false}, {opMUL, 13, false}, {opDIV, 17, false},
		{opIFGT, 6, false}, {opIFLE, 5, true},
	} {
		b := new(block)
		tt.o.gen(b, []uint8{1, 2, 3})
		require.True(t, b.fits(vm.Depth-tt.size-1), tt.o.String())
		require.Equal(t, tt.last, b.fits(vm.Depth-tt.size), tt.o.String())
		require.False(t, b.fits(vm.Depth-tt.size+1), tt.o.String())
	}
}

func TestOpcodes(t *testing.T) {
	require.Len(t, opcodeIndex, int(opCount))
	for o := opDEF; o < opCount; o++ {
		require.Equal(t, o, opcodeIndex[o.String()])
	}
	require.Equal(t, "op(10)", opCount.String())
	_, ok := opcodeIndex["def"]
	require.False(t, ok)
}

func TestSymbols(t *testing.T) {
	s := newSymbols()
	a, ok := s.lookup(IOName)
	require.True(t, ok)
	require.Equal(t, vm.IOAddr, a)

	a, err := s.reserve("x")
	require.NoError(t, err)
	require.Equal(t, HeapStart, a)
	// not allocated yet
	a, err = s.reserve("y")
	require.NoError(t, err)
	require.Equal(t, HeapStart, a)
	s.commit("y", a)
	a, err = s.reserve("x")
	require.NoError(t, err)
	require.Equal(t, HeapStart-1, a)
	s.commit("x", a)
	s.commit("x", a)
	a, err = s.reserve("z")
	require.NoError(t, err)
	require.Equal(t, HeapStart-2, a)
	a, ok = s.lookup("y")
	require.True(t, ok)
	require.Equal(t, HeapStart, a)
}
