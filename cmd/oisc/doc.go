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

// The oisc command line tool compiles OISC source programs and runs the
// resulting memory images on an emulated OISC machine. See packages
// github.com/mustpax/OISC/asm and github.com/mustpax/OISC/vm for the source
// language and the machine.
//
// Usage:
//
//	oisc [--debug] command [arguments]
//
// Commands:
//
//	compile source [-o filename]
//		compile source to a memory image file (default "compiled.mif")
//	run image [--dump]
//		run a memory image, optionally dumping data memory once it halts
//	initram image
//		run the leading load instructions of an image and dump data memory
//	romdump image
//		disassemble an image
//	console
//		start the interactive console
//
// --debug: print a full stack trace along with errors.
//
// Compilation diagnostics are printed on stderr as file:line:column: message.
// Statements with errors are skipped and the image is written anyway. The
// exit status is 1 if any statement was skipped.
//
// Programs read values from stdin, one decimal value per line, and print
// values on stdout. When stdin is exhausted, the program stops.
//
// Console:
//
// The console reads commands from stdin, one per line. Programs run from the
// console read their input from the same source. Type "commands" for a list
// of commands. The compile command writes its image to compiled.mif in the
// current directory and loads it.
package main
