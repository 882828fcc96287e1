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

// Package asm compiles OISC source programs into program memory images for
// the vm package, and disassembles them.
//
// Source programs hold one statement per line. A statement is an operator
// followed by its operands, separated by white space. Anything after the
// last operand is ignored and can be used for comments. Empty lines are
// ignored.
//
// Operators:
//
//	op	operands	description
//	----	--------	------------------------------------------------
//	DEF	x v		define variable x with initial value v
//	JMP	m		jump to program address m
//	JMPI	a		m(253) = m(a), jump to program address 253 (see below)
//	MOV	a b		m(b) = m(a)
//	ADD	a b c		m(c) = m(a) + m(b)
//	SUB	a b c		m(c) = m(b) - m(a)
//	MUL	a b c		m(c) = m(a) * m(b)
//	DIV	a b c		m(c) = m(b) / m(a)
//	IFGT	a b c		if m(a) > m(b) jump to program address c
//	IFLE	a b c		if m(a) <= m(b) jump to program address c
//
// Operands:
//
// Operands are data memory addresses, except for jump targets which are
// program memory addresses. They can be written as:
//
//	123	decimal, clamped to [0, 255]
//	#1011	binary, only the 8 low order bits are kept
//	$F0	hexadecimal, exactly two digits are expected
//	name	the address of variable name
//
// The name ioPort stands for address 255, the I/O cell: reading it prompts
// the user for a value and writing it prints a value. Note that a subleq
// instruction always reads the cell it writes to, so operations that write
// to ioPort also read from it.
//
// Variables:
//
// Each new variable gets the next free address below 250, starting at 249
// and going down. At most 100 variables can be defined. Variable names cannot
// be purely numeric and cannot start with '#', '$' or '-'.
//
// The initial value of a DEF is a decimal value saturated to [-127, 127], a
// binary or hexadecimal literal, or the name of another variable, in which
// case it is that variable's address:
//
//	DEF A 10	A is at 249 and holds 10
//	DEF B A		B is at 248 and holds 249
//
// DEF compiles to a single load instruction that runs at the position of the
// statement in the program. Defining an existing variable again reuses its
// address and emits a new load. Definitions are expected at the beginning of
// the program, before any other statement. Later definitions compile but are
// flagged with a warning.
//
// Generated code:
//
// Every program starts with five load instructions that initialize the
// reserved cells: 250 (zero), 254 (-1) and 253 to 251 (scratch cells). User
// statements follow from address 5. The number of instructions generated per
// statement is fixed:
//
//	DEF	1
//	JMP	1
//	JMPI	4
//	MOV	4
//	ADD	5
//	SUB	9
//	MUL	13
//	DIV	17
//	IFGT	6
//	IFLE	5
//
// Arithmetic follows the machine: results that do not fit in 8 bits wrap
// around by 255. MUL yields 0 when m(b) <= 0 and DIV yields 0 when m(a) <= 0.
// DIV rounds down for non-negative operands.
//
// JMPI is not an indirect jump. Program memory cannot be written at run time,
// so JMPI copies m(a) to scratch cell 253 and always jumps to program address
// 253, whatever the value of m(a).
//
// A statement must leave room for its successor: code that would continue
// past program address 255 is rejected as not fitting, jumps excepted.
package asm
