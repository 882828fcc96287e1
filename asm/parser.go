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
	"text/scanner"
	"unicode"

	"github.com/mustpax/OISC/codec"
	"github.com/mustpax/OISC/internal/oisci"
	"github.com/mustpax/OISC/vm"
)

// op is a source language operator.
type op int

const (
	opDEF op = iota
	opJMP
	opJMPI
	opADD
	opSUB
	opDIV
	opMUL
	opIFGT
	opIFLE
	opMOV
	opCount
)

var opcodes = [opCount]struct {
	name  string
	arity int
}{
	opDEF:  {"DEF", 2},
	opJMP:  {"JMP", 1},
	opJMPI: {"JMPI", 1},
	opADD:  {"ADD", 3},
	opSUB:  {"SUB", 3},
	opDIV:  {"DIV", 3},
	opMUL:  {"MUL", 3},
	opIFGT: {"IFGT", 3},
	opIFLE: {"IFLE", 3},
	opMOV:  {"MOV", 2},
}

var opcodeIndex = make(map[string]op, opCount)

func init() {
	for i := range opcodes {
		opcodeIndex[opcodes[i].name] = op(i)
	}
}

func (o op) String() string {
	if o >= 0 && o < opCount {
		return opcodes[o].name
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// gen generates the code for o with resolved operands args.
func (o op) gen(b *block, args []uint8) {
	switch o {
	case opDEF:
		genDEF(b, args[0], args[1])
	case opJMP:
		genJMP(b, args[0])
	case opJMPI:
		genJMPI(b, args[0])
	case opADD:
		genADD(b, args[0], args[1], args[2])
	case opSUB:
		genSUB(b, args[0], args[1], args[2])
	case opDIV:
		genDIV(b, args[0], args[1], args[2])
	case opMUL:
		genMUL(b, args[0], args[1], args[2])
	case opIFGT:
		genIFGT(b, args[0], args[1], args[2])
	case opIFLE:
		genIFLE(b, args[0], args[1], args[2])
	case opMOV:
		genMOV(b, args[0], args[1])
	default:
		panic("asm: no generator for " + o.String())
	}
}

// Tokens are separated by white space only.
func isIdentRune(ch rune, i int) bool {
	return !unicode.IsSpace(ch) && unicode.IsPrint(ch)
}

type token struct {
	text string
	pos  scanner.Position
}

// parser holds the state of a compilation session.
type parser struct {
	s      scanner.Scanner
	syms   *symbols
	prog   vm.Program
	pc     int
	defEnd bool // set by the first instruction that is not a definition
	errs   ErrAsm
}

func newParser() *parser {
	return &parser{
		syms: newSymbols(),
		prog: make(vm.Program),
	}
}

func (p *parser) errorf(pos scanner.Position, k Kind, format string, args ...interface{}) {
	p.errs = append(p.errs, Diagnostic{pos, k, fmt.Sprintf(format, args...)})
}

// Parse compiles the source read from r. The returned error is either an
// ErrAsm or a read error, in which case the returned program is nil.
func (p *parser) Parse(name string, r io.Reader) (vm.Program, error) {
	er := oisci.NewErrReader(r)
	p.s.Init(er)
	p.s.Filename = name
	p.s.Mode = scanner.ScanIdents
	p.s.IsIdentRune = isIdentRune
	p.s.Error = func(s *scanner.Scanner, msg string) {
		pos := s.Position
		if !pos.IsValid() {
			pos = s.Pos()
		}
		p.errorf(pos, ParseDiagnostic, "%s", msg)
	}

	p.commit(preamble(), scanner.Position{})

	var stmt []token
	for tok := p.s.Scan(); tok != scanner.EOF; tok = p.s.Scan() {
		t := token{p.s.TokenText(), p.s.Position}
		if len(stmt) > 0 && t.pos.Line != stmt[0].pos.Line {
			p.statement(stmt)
			stmt = stmt[:0]
		}
		stmt = append(stmt, t)
	}
	if len(stmt) > 0 {
		p.statement(stmt)
	}
	if er.Err != nil {
		return nil, er.Err
	}
	if len(p.errs) > 0 {
		return p.prog, p.errs
	}
	return p.prog, nil
}

// statement compiles the tokens of a source line. Tokens past the operands
// are comments.
func (p *parser) statement(toks []token) {
	o, ok := opcodeIndex[toks[0].text]
	if !ok {
		p.errorf(toks[0].pos, ParseDiagnostic, "cannot parse operator %q, skipping line", toks[0].text)
		return
	}
	n := opcodes[o].arity
	if len(toks)-1 < n {
		p.errorf(toks[0].pos, ParseDiagnostic, "need more operands for %s: expected %d, got %d", o, n, len(toks)-1)
		return
	}
	toks = toks[1 : n+1]

	if o == opDEF {
		p.define(toks[0], toks[1])
		return
	}

	p.defEnd = true
	args := make([]uint8, n)
	ok = true
	for i := range toks {
		var aok bool
		args[i], aok = p.operand(toks[i])
		ok = ok && aok
	}
	if !ok {
		return
	}
	b := new(block)
	o.gen(b, args)
	p.commit(b, toks[0].pos)
}

func (p *parser) define(name, val token) {
	if err := checkName(name.text); err != nil {
		p.errorf(name.pos, ParseDiagnostic, "%v", err)
		return
	}
	v, ok := p.value(val)
	if !ok {
		return
	}
	addr, err := p.syms.reserve(name.text)
	if err != nil {
		p.errorf(name.pos, AllocationExhausted, "%v, cannot define %s", err, name.text)
		return
	}
	b := new(block)
	opDEF.gen(b, []uint8{addr, v})
	if !p.commit(b, name.pos) {
		return
	}
	if p.defEnd {
		p.errorf(name.pos, Warning, "definition of %s after the first instruction", name.text)
	}
	p.syms.commit(name.text, addr)
}

// commit places b at the current program counter. A block that would run
// past the last program memory cell is rejected.
func (p *parser) commit(b *block, pos scanner.Position) bool {
	if !b.fits(p.pc) {
		p.errorf(pos, ProgramFull, "program memory full, %d instruction(s) do not fit at address %d", len(b.code), p.pc)
		return false
	}
	for i, c := range b.link(p.pc) {
		p.prog[uint8(p.pc+i)] = c
	}
	p.pc += len(b.code)
	return true
}

// literal decodes #binary and $hex literals. ok is false if t is not one.
func (p *parser) literal(t token) (v uint8, ok bool, err error) {
	s := t.text
	switch s[0] {
	case '#':
		v, err = codec.Binary(s[1:])
	case '$':
		v, err = codec.Hex(s[1:])
	default:
		return 0, false, nil
	}
	if err != nil && codec.IsWarning(err) {
		p.errorf(t.pos, Warning, "%v", err)
		err = nil
	}
	return v, true, err
}

// operand resolves an instruction operand to an address.
func (p *parser) operand(t token) (uint8, bool) {
	if codec.IsDecimal(t.text) {
		n, _ := codec.Decimal(t.text)
		return codec.Unsigned(n), true
	}
	if v, ok, err := p.literal(t); ok {
		if err != nil {
			p.errorf(t.pos, ParseDiagnostic, "malformed literal %s: %v", t.text, err)
			return 0, false
		}
		return v, true
	}
	return p.symbol(t)
}

// value decodes the initial value of a variable: decimal values are
// saturated, literals are used as is and variable names evaluate to the
// variable's address.
func (p *parser) value(t token) (uint8, bool) {
	if n, err := codec.Decimal(t.text); err == nil {
		return codec.Signed(n), true
	}
	if v, ok, err := p.literal(t); ok {
		if err != nil {
			p.errorf(t.pos, ParseDiagnostic, "malformed literal %s: %v", t.text, err)
			return 0, false
		}
		return v, true
	}
	return p.symbol(t)
}

func (p *parser) symbol(t token) (uint8, bool) {
	a, ok := p.syms.lookup(t.text)
	if !ok {
		p.errorf(t.pos, ParseDiagnostic, "cannot find variable %s", t.text)
	}
	return a, ok
}
