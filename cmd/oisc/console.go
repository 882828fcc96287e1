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

package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/mustpax/OISC/internal/oisci"
	"github.com/mustpax/OISC/vm"
	"github.com/pkg/errors"
)

const (
	banner        = "Welcome to One Instruction Set Computer (OISC) Emulator!\n"
	consolePrompt = "Enter command or type \"commands\" to get a list of available commands: "
	consoleHelp   = `Available commands:
compile <filename>: compile specified file and load rom from the resulting image
load <filename>: load rom from specified image file
run: run program currently loaded to rom
initram: initialize ram by running load instructions in rom
ramdump: display current contents of ram
romdump: display current contents of rom
ramget <ram address>: get value stored in ram address
romget <rom address>: get instruction stored in rom address
quit: end application
`
)

// console is an interactive session. Programs run from the console share
// its input.
type console struct {
	in     *bufio.Reader
	out    *oisci.ErrWriter
	prompt bool
	image  string // image file written by the compile command
	i      *vm.Instance
}

func newConsole(r io.Reader, w io.Writer, prompt bool) (*console, error) {
	c := &console{
		in:     bufio.NewReader(r),
		out:    oisci.NewErrWriter(w),
		prompt: prompt,
		image:  defaultImage,
	}
	var err error
	c.i, err = vm.New(nil, vm.Input(c.in), vm.Output(c.out))
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Run executes commands until the quit command or the end of input. It only
// fails on I/O errors. Errors from commands are reported and the session
// goes on.
func (c *console) Run() error {
	io.WriteString(c.out, banner)
	for c.out.Err == nil {
		if c.prompt {
			io.WriteString(c.out, consolePrompt)
		}
		line, err := c.in.ReadString('\n')
		if s := strings.TrimSpace(line); s != "" {
			if c.exec(s) {
				break
			}
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return errors.Wrap(err, "console read failed")
		}
	}
	return c.out.Err
}

// exec executes a single command and returns true if the session should end.
func (c *console) exec(line string) bool {
	cmd, arg := line, ""
	if n := strings.IndexFunc(line, unicode.IsSpace); n >= 0 {
		cmd, arg = line[:n], strings.TrimSpace(line[n:])
	}
	switch cmd {
	case "commands":
		io.WriteString(c.out, consoleHelp)
	case "compile":
		c.compile(arg)
	case "load":
		c.load(arg)
	case "run":
		c.run()
	case "initram":
		c.initram()
	case "romdump":
		romDump(c.out, c.i.Program)
	case "ramdump":
		ramDump(c.out, c.i.Mem)
	case "romget":
		if a, ok := c.address(arg); ok {
			if ins, ok := c.i.Program.Cell(a); ok && !ins.Empty() {
				fmt.Fprintf(c.out, "Addr: %3d %v\n", a, ins)
			} else {
				fmt.Fprintf(c.out, "Addr: %3d empty\n", a)
			}
		}
	case "ramget":
		if a, ok := c.address(arg); ok {
			if v, ok := c.i.Mem[a]; ok {
				fmt.Fprintf(c.out, "Addr: %3d Value: %3d\n", a, v)
			} else {
				fmt.Fprintf(c.out, "Addr: %3d uninitialized\n", a)
			}
		}
	case "quit", "QUIT":
		io.WriteString(c.out, "Goodbye!\n")
		return true
	default:
		io.WriteString(c.out, "Invalid command.\n")
	}
	return false
}

func (c *console) report(err error) {
	if debug {
		fmt.Fprintf(c.out, "%+v\n", err)
		return
	}
	fmt.Fprintf(c.out, "%v\n", err)
}

func (c *console) address(s string) (uint8, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n >= vm.Depth {
		io.WriteString(c.out, "Invalid address, use a decimal integer between 0 and 255.\n")
		return 0, false
	}
	return uint8(n), true
}

func (c *console) compile(src string) {
	if src == "" {
		io.WriteString(c.out, "Missing source file name.\n")
		return
	}
	if _, err := compileFile(c.out, c.out, src, c.image); err != nil {
		c.report(err)
		return
	}
	c.load(c.image)
}

// load replaces program memory with the image read from file name. On error,
// program memory is left empty.
func (c *console) load(name string) {
	if name == "" {
		io.WriteString(c.out, "Missing image file name.\n")
		return
	}
	fmt.Fprintf(c.out, "Loading rom state from file %s\n", name)
	p, err := vm.LoadImage(name)
	if err != nil {
		p = make(vm.Program)
	}
	c.i.Program = p
	c.i.Reset()
	if err != nil {
		c.report(err)
		return
	}
	fmt.Fprintf(c.out, "Finished loading rom state, %d rom lines read.\n", len(p))
}

func (c *console) run() {
	io.WriteString(c.out, "Running program stored in rom.\n")
	if err := c.i.Run(); err != nil {
		c.report(err)
		return
	}
	fmt.Fprintf(c.out, "Done. %d instructions executed.\n", c.i.InstructionCount())
}

func (c *console) initram() {
	io.WriteString(c.out, "Initializing ram with load instructions in rom.\n")
	if err := c.i.Preload(); err != nil {
		c.report(err)
		return
	}
	fmt.Fprintf(c.out, "Done. %d load instructions read.\n", c.i.InstructionCount())
	ramDump(c.out, c.i.Mem)
}
