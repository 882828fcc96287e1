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
	"github.com/mustpax/OISC/codec"
	"github.com/mustpax/OISC/vm"
)

// next is the label of the instruction following the current one.
const next = ""

// labelUse records that the branch target of code[at] is label name.
type labelUse struct {
	name string
	at   int
}

// block is the code generated for a single statement. Branch targets are
// either absolute addresses or labels local to the block. Labels are only
// resolved by link, once the address of the block is known.
type block struct {
	code   []vm.Cell
	labels map[string]int
	uses   []labelUse
}

// mark binds label name to the address of the next instruction.
func (b *block) mark(name string) {
	if b.labels == nil {
		b.labels = make(map[string]int)
	}
	b.labels[name] = len(b.code)
}

func (b *block) emit(c vm.Cell, to string) {
	b.uses = append(b.uses, labelUse{to, len(b.code)})
	b.code = append(b.code, c)
}

// load emits mem[dst] = v.
func (b *block) load(v int8, dst uint8) { b.emit(vm.Load(v, dst, 0), next) }

// sub emits mem[dst] -= mem[a].
func (b *block) sub(a, dst uint8) { b.emit(vm.Subleq(a, dst, 0), next) }

// subTo emits mem[dst] -= mem[a] and branches to label to if mem[dst] <= 0.
func (b *block) subTo(a, dst uint8, to string) { b.emit(vm.Subleq(a, dst, 0), to) }

// subAbs emits mem[dst] -= mem[a] and branches to address to if mem[dst] <= 0.
func (b *block) subAbs(a, dst, to uint8) { b.code = append(b.code, vm.Subleq(a, dst, to)) }

func (b *block) clear(r uint8) { b.sub(r, r) }

// jump emits an unconditional branch to label to.
func (b *block) jump(to string) { b.subTo(ZeroAddr, ZeroAddr, to) }

// target returns the address that the branch recorded by u resolves to when
// b is placed at address base. It may be past the last program memory cell.
func (b *block) target(u labelUse, base int) int {
	if u.name == next {
		return base + u.at + 1
	}
	o, ok := b.labels[u.name]
	if !ok {
		panic("asm: undefined label " + u.name)
	}
	return base + o
}

// fits returns true if b placed at address base neither extends nor branches
// past the last program memory cell.
func (b *block) fits(base int) bool {
	if base+len(b.code) > vm.Depth {
		return false
	}
	for _, u := range b.uses {
		if b.target(u, base) >= vm.Depth {
			return false
		}
	}
	return true
}

// link returns the code of b placed at address base.
//
// The successor of the last program memory cell is encoded as 255, the
// highest address a branch can name.
func (b *block) link(base int) []vm.Cell {
	code := make([]vm.Cell, len(b.code))
	copy(code, b.code)
	for _, u := range b.uses {
		code[u.at] = code[u.at]&^0xFF | vm.Cell(codec.Unsigned(b.target(u, base)))
	}
	return code
}

// preamble initializes the reserved cells.
func preamble() *block {
	b := new(block)
	b.load(0, ZeroAddr)
	b.load(-1, NegOneAddr)
	b.load(0, TmpAAddr)
	b.load(0, TmpBAddr)
	b.load(0, TmpCAddr)
	return b
}

// All generators below leave the zero cell at 0. Scratch cells are clobbered.

// genDEF: mem[dst] = v
func genDEF(b *block, dst, v uint8) {
	b.load(codec.Value(v), dst)
}

// genJMP: jump to address to.
func genJMP(b *block, to uint8) {
	b.subAbs(ZeroAddr, ZeroAddr, to)
}

// genJMPI copies mem[a] into scratch cell A then branches to that cell's
// address. Program memory cannot be written, so the target is TmpAAddr itself
// and not the value stored there.
func genJMPI(b *block, a uint8) {
	b.sub(a, ZeroAddr)
	b.clear(TmpAAddr)
	b.sub(ZeroAddr, TmpAAddr)
	b.subAbs(ZeroAddr, ZeroAddr, TmpAAddr)
}

// genMOV: mem[d] = mem[a]
func genMOV(b *block, a, d uint8) {
	b.clear(d)
	b.sub(a, ZeroAddr)
	b.sub(ZeroAddr, d)
	b.clear(ZeroAddr)
}

// genADD: mem[c] = mem[a] + mem[x]
func genADD(b *block, a, x, c uint8) {
	b.sub(a, ZeroAddr)
	b.sub(x, ZeroAddr)
	b.clear(c)
	b.sub(ZeroAddr, c)
	b.clear(ZeroAddr)
}

// genSUB: mem[c] = mem[x] - mem[a]
func genSUB(b *block, a, x, c uint8) {
	b.clear(TmpAAddr)
	b.clear(TmpBAddr)
	b.sub(a, TmpAAddr)
	b.sub(x, TmpBAddr)
	b.sub(TmpBAddr, TmpAAddr)
	b.clear(c)
	b.clear(TmpBAddr)
	b.sub(TmpAAddr, TmpBAddr)
	b.sub(TmpBAddr, c)
}

// genMUL: mem[c] = mem[a] * mem[x], by adding mem[a] to mem[c] mem[x] times.
// mem[x] <= 0 yields 0.
func genMUL(b *block, a, x, c uint8) {
	b.clear(TmpAAddr)
	b.clear(TmpBAddr)
	b.clear(TmpCAddr)
	b.sub(x, TmpAAddr)
	b.sub(TmpAAddr, TmpBAddr)   // counter = x
	b.sub(NegOneAddr, TmpCAddr) // 1
	b.clear(TmpAAddr)
	b.sub(a, TmpAAddr) // -a
	b.clear(c)
	b.subTo(ZeroAddr, TmpBAddr, "end")
	b.mark("loop")
	b.sub(TmpAAddr, c)
	b.subTo(TmpCAddr, TmpBAddr, "end")
	b.jump("loop")
	b.mark("end")
}

// genDIV: mem[c] = mem[x] / mem[a], by counting how many times mem[a] can be
// subtracted from mem[x]. The result is floored for non-negative operands and
// mem[a] <= 0 yields 0.
func genDIV(b *block, a, x, c uint8) {
	b.clear(TmpAAddr)
	b.clear(TmpBAddr)
	b.clear(TmpCAddr)
	b.sub(x, TmpAAddr)
	b.sub(TmpAAddr, TmpBAddr) // remainder = x
	b.clear(TmpAAddr)
	b.sub(a, TmpAAddr)
	b.sub(TmpAAddr, TmpCAddr) // divisor = a
	b.clear(c)
	b.subTo(ZeroAddr, TmpCAddr, "end")
	b.mark("loop")
	b.subTo(TmpCAddr, TmpBAddr, "check")
	b.sub(NegOneAddr, c)
	b.jump("loop")
	// the remainder went down to zero or below: count the last subtraction
	// only if it was exact.
	b.mark("check")
	b.clear(TmpAAddr)
	b.subTo(TmpBAddr, TmpAAddr, "inc")
	b.jump("end")
	b.mark("inc")
	b.sub(NegOneAddr, c)
	b.mark("end")
}

// genIFGT: jump to address to if mem[a] > mem[x]. This is the complement of
// IFLE: skip the jump if mem[a] - mem[x] <= 0.
func genIFGT(b *block, a, x, to uint8) {
	b.clear(TmpAAddr)
	b.sub(a, TmpAAddr)
	b.clear(TmpBAddr)
	b.sub(TmpAAddr, TmpBAddr)
	b.subTo(x, TmpBAddr, "skip")
	b.subAbs(ZeroAddr, ZeroAddr, to)
	b.mark("skip")
}

// genIFLE: jump to address to if mem[a] <= mem[x], that is if
// mem[a] - mem[x] <= 0.
func genIFLE(b *block, a, x, to uint8) {
	b.clear(TmpAAddr)
	b.sub(a, TmpAAddr)
	b.clear(TmpBAddr)
	b.sub(TmpAAddr, TmpBAddr)
	b.subAbs(x, TmpBAddr, to)
}
