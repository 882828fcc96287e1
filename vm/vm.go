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
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// State is the execution state of an Instance.
type State int

// Execution states.
const (
	Idle State = iota
	Running
	Halted
)

var states = [...]string{"idle", "running", "halted"}

func (s State) String() string {
	if s >= 0 && int(s) < len(states) {
		return states[s]
	}
	return "unknown"
}

// Instance represents an OISC machine instance.
type Instance struct {
	PC       int     // Program Counter
	Program  Program // Program memory (ROM)
	Mem      Memory  // Data memory (RAM)
	state    State
	insCount int64
	inH      InHandler
	outH     OutHandler
	input    *bufio.Reader
	output   io.Writer
}

// Option interface
type Option func(*Instance) error

// Input sets the reader used by the default IN handler. Values are read one
// per line.
func Input(r io.Reader) Option {
	return func(i *Instance) error {
		if br, ok := r.(*bufio.Reader); ok {
			i.input = br
		} else {
			i.input = bufio.NewReader(r)
		}
		return nil
	}
}

// Output sets the writer used by the default OUT handler and for input
// prompts.
func Output(w io.Writer) Option {
	return func(i *Instance) error {
		i.output = w
		return nil
	}
}

// InHandler is the function prototype for custom IN handlers. It is called
// whenever the program reads data memory at IOAddr and returns the value
// read.
type InHandler func(i *Instance) (int8, error)

// OutHandler is the function prototype for custom OUT handlers. It is called
// whenever the program writes v to data memory at IOAddr.
type OutHandler func(i *Instance, v int8) error

// BindInHandler replaces the default IN handler.
//
// The default IN handler writes a "? " prompt to the output, reads a line
// from the input and parses it as a decimal value. Empty or malformed lines
// are rejected and the user is prompted again. Values are saturated to the
// [-127, 127] range.
func BindInHandler(handler InHandler) Option {
	return func(i *Instance) error {
		if handler == nil {
			return errors.New("nil IN handler")
		}
		i.inH = handler
		return nil
	}
}

// BindOutHandler replaces the default OUT handler.
//
// The default OUT handler prints the value in decimal followed by a new line.
func BindOutHandler(handler OutHandler) Option {
	return func(i *Instance) error {
		if handler == nil {
			return errors.New("nil OUT handler")
		}
		i.outH = handler
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new OISC machine instance running the given program.
//
// Options will be set by calling SetOptions. With no Input or Output options,
// reading or writing the I/O cell will fail.
func New(p Program, opts ...Option) (*Instance, error) {
	if p == nil {
		p = make(Program)
	}
	i := &Instance{
		Program: p,
		Mem:     make(Memory),
		inH:     (*Instance).In,
		outH:    (*Instance).Out,
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// State returns the current execution state.
func (i *Instance) State() State {
	return i.state
}

// InstructionCount returns the number of instructions executed since the last
// call to Reset. Empty cells are not counted.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Reset clears data memory and the instruction count, and sets the PC to 0.
func (i *Instance) Reset() {
	i.PC = 0
	i.Mem = make(Memory)
	i.insCount = 0
	i.state = Idle
}
