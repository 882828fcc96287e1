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
	"text/scanner"
)

// Kind classifies a Diagnostic.
type Kind int

// Diagnostic kinds. Only Warning leaves the offending statement in the
// program; every other kind causes it to be skipped.
const (
	ParseDiagnostic     Kind = iota // bad operator, missing operand, unknown symbol, malformed literal
	AllocationExhausted             // too many variables
	ProgramFull                     // no room left in program memory
	Warning                         // statement compiled, but probably not as intended
)

var kinds = [...]string{"parse error", "allocation exhausted", "program full", "warning"}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kinds) {
		return kinds[k]
	}
	return "unknown"
}

// Diagnostic is a statement level compilation message.
type Diagnostic struct {
	Pos  scanner.Position
	Kind Kind
	Msg  string
}

func (d *Diagnostic) Error() string {
	var b strings.Builder
	if d.Pos.IsValid() {
		b.WriteString(d.Pos.String())
		b.WriteString(": ")
	}
	if d.Kind == Warning {
		b.WriteString("warning: ")
	}
	b.WriteString(d.Msg)
	return b.String()
}

// ErrAsm is the error type returned by Compile. It lists all diagnostics in
// source order. The program returned along with an ErrAsm is complete: it
// simply lacks the statements that were skipped.
type ErrAsm []Diagnostic

func (e ErrAsm) Error() string {
	var b strings.Builder
	for i := range e {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e[i].Error())
	}
	return b.String()
}

// HasErrors returns true if at least one diagnostic is not a warning.
func (e ErrAsm) HasErrors() bool {
	for i := range e {
		if e[i].Kind != Warning {
			return true
		}
	}
	return false
}
