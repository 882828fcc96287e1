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

package vm

import (
	"fmt"

	"github.com/mustpax/OISC/codec"
	"github.com/pkg/errors"
)

// Machine geometry.
const (
	Depth = 256 // number of cells in program memory
	Width = 25  // bits per program cell
)

// IOAddr is the data memory address wired to the console. Reading it prompts
// for a value, writing it prints one.
const IOAddr uint8 = 0xFF

// Op is the tag of an instruction cell.
type Op uint8

// OISC opcodes.
const (
	OpSubleq Op = iota // mem[B] -= mem[A]; jump to C if mem[B] <= 0
	OpLoad             // mem[B] = A; jump to C if A <= 0
)

var opcodes = [...]string{
	"subleq",
	"loadim",
}

func (op Op) String() string {
	if int(op) < len(opcodes) {
		return opcodes[op]
	}
	return fmt.Sprintf("op(%d)", uint8(op))
}

// Cell is the raw content of a program memory location: a tag bit followed by
// three 8 bits operands A, B and C, for a total of 25 bits.
//
// The zero Cell is the empty cell. When executed, it does nothing and the PC
// moves to the next cell.
type Cell uint32

const cellMask = 1<<Width - 1

// Load returns a load immediate instruction that stores v at address b and
// continues at c.
func Load(v int8, b, c uint8) Cell {
	return Cell(OpLoad)<<24 | Cell(uint8(v))<<16 | Cell(b)<<8 | Cell(c)
}

// Subleq returns a subtract and branch if not positive instruction:
// mem[b] -= mem[a], then jump to c if mem[b] <= 0.
func Subleq(a, b, c uint8) Cell {
	return Cell(a)<<16 | Cell(b)<<8 | Cell(c)
}

// Op returns the instruction tag.
func (c Cell) Op() Op { return Op(c >> 24 & 1) }

// A returns the first operand. For load instructions, use Value.
func (c Cell) A() uint8 { return uint8(c >> 16) }

// B returns the destination address.
func (c Cell) B() uint8 { return uint8(c >> 8) }

// C returns the branch target.
func (c Cell) C() uint8 { return uint8(c) }

// Value returns the immediate operand of a load instruction.
func (c Cell) Value() int8 { return codec.Value(c.A()) }

// Empty returns true for the all zero cell.
func (c Cell) Empty() bool { return c == 0 }

// Bits returns the 25 bits string representation of c, as found in memory
// image files.
func (c Cell) Bits() string { return codec.Bits(uint32(c), Width) }

// ParseCell decodes a 25 bits string.
func ParseCell(bits string) (Cell, error) {
	v, err := codec.ParseBits(bits, Width)
	if err != nil {
		return 0, errors.Wrap(err, "bad cell")
	}
	return Cell(v & cellMask), nil
}

// String returns a disassembly of the cell.
func (c Cell) String() string {
	if c.Op() == OpLoad {
		return fmt.Sprintf("loadim %6d, m(%3d), %3d", c.Value(), c.B(), c.C())
	}
	return fmt.Sprintf("subleq m(%3d), m(%3d), %3d", c.A(), c.B(), c.C())
}
