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

	"github.com/pkg/errors"
)

// UninitializedReadError is returned when a program reads a data memory
// address that was never written.
type UninitializedReadError struct {
	Addr uint8
	PC   int
}

func (e *UninitializedReadError) Error() string {
	return fmt.Sprintf("read of uninitialized memory at address %d", e.Addr)
}

// wrap8 brings the result of a subtraction back into the signed 8 bits range
// the way the hardware does: by adding or subtracting 255, not 256.
func wrap8(v int) int8 {
	if v < -128 {
		v += 255
	} else if v > 127 {
		v -= 255
	}
	return int8(v)
}

func (i *Instance) read(addr uint8) int8 {
	if addr == IOAddr {
		v, err := i.inH(i)
		if err != nil {
			panic(err)
		}
		return v
	}
	v, ok := i.Mem[addr]
	if !ok {
		panic(&UninitializedReadError{addr, i.PC})
	}
	return v
}

func (i *Instance) write(addr uint8, v int8) {
	if addr == IOAddr {
		if err := i.outH(i, v); err != nil {
			panic(err)
		}
		return
	}
	i.Mem[addr] = v
}

// Step executes the instruction at PC. It is a no-op if the instance has
// halted.
//
// If an error occurs, the PC will point to the instruction that triggered the
// error.
func (i *Instance) Step() (err error) {
	defer func() {
		if e := recover(); e != nil {
			switch e := e.(type) {
			case error:
				err = errors.Wrapf(e, "@pc=%d", i.PC)
			default:
				panic(e)
			}
		}
	}()
	if i.PC >= Depth {
		i.state = Halted
		return nil
	}
	i.state = Running
	c, ok := i.Program[uint8(i.PC)]
	if !ok || c.Empty() {
		i.PC++
	} else {
		var v int8
		switch c.Op() {
		case OpLoad:
			v = c.Value()
		case OpSubleq:
			a := i.read(c.A())
			v = wrap8(int(i.read(c.B())) - int(a))
		}
		i.write(c.B(), v)
		if v <= 0 {
			i.PC = int(c.C())
		} else {
			i.PC++
		}
		i.insCount++
	}
	if i.PC >= Depth {
		i.state = Halted
	}
	return nil
}

// Run clears data memory and runs the program from address 0.
//
// Run returns when the PC moves past the last program memory cell. There is
// no halt instruction: a program that never does this will run forever, which
// is not an error. Callers who need to bound execution should call Step
// instead.
//
// Errors due to a read of uninitialized memory have an
// *UninitializedReadError cause. Errors returned by I/O handlers are returned
// wrapped.
func (i *Instance) Run() error {
	i.Reset()
	for i.state != Halted {
		if err := i.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Preload clears data memory and only executes the load instructions found
// at the start of program memory, stopping at the first populated cell that
// is not a load instruction. This initializes data memory with the values of
// a program's variables without running it.
//
// Unpopulated cells are skipped. Note that an image read from file has all
// its cells populated, so an empty cell stops Preload.
func (i *Instance) Preload() error {
	i.Reset()
	for i.PC < Depth {
		c, ok := i.Program[uint8(i.PC)]
		if ok && (c.Empty() || c.Op() != OpLoad) {
			break
		}
		if err := i.Step(); err != nil {
			return err
		}
	}
	i.state = Idle
	return nil
}
