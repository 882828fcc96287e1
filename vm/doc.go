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

// Package vm implements the OISC machine: a one instruction set computer
// with separate program and data memories of 256 cells each.
//
// Program memory cells are 25 bits wide and hold one of two instructions:
//
//	tag	A		B	C	semantics
//	---	----------	-------	-------	----------------------------------------------
//	0	address		address	address	subleq: mem[B] -= mem[A], jump to C if mem[B] <= 0
//	1	8 bits value	address	address	loadim: mem[B] = A, jump to C if A <= 0
//
// Data memory holds 8 bits two's complement values. When a subtraction
// overflows, 255 (not 256) is added to or subtracted from the result. This is
// what the hardware does and programs may depend on it.
//
// Execution starts at address 0. The machine halts when the PC moves past
// address 255. There is no halt instruction: the only way for a program to
// stop is to run off the end of program memory, and a program that does not
// will run forever.
//
// Data memory address 255 (IOAddr) is wired to the console: reading it
// prompts the user for a value, writing it prints the value. See
// BindInHandler and BindOutHandler for how to customize this.
//
// Program memory is loaded from Memory Initialization Files (MIF), as
// produced by the compiler in package asm, with LoadImage or ReadProgram.
package vm
