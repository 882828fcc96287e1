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
	"os"
	"strconv"
	"strings"

	"github.com/mustpax/OISC/codec"
	"github.com/mustpax/OISC/internal/oisci"
	"github.com/pkg/errors"
)

// Memory image file framing. The layout is the Memory Initialization File
// format read by HDL synthesis tools and must not change.
const (
	mifHeader = "DEPTH = 256;\n" +
		"WIDTH = 25;\n" +
		"ADDRESS_RADIX = BIN;\n" +
		"DATA_RADIX = BIN;\n" +
		"CONTENT\n" +
		"BEGIN\n"
	mifBegin = "BEGIN"
	mifEnd   = "END;"
)

// ImageError reports a malformed memory image.
type ImageError struct {
	Line int // 1 based, 0 if not applicable
	Msg  string
}

func (e *ImageError) Error() string {
	if e.Line > 0 {
		return "line " + strconv.Itoa(e.Line) + ": " + e.Msg
	}
	return e.Msg
}

// WriteTo writes the memory image of p to w: one record for each of the Depth
// addresses in increasing order, unpopulated addresses being written as empty
// cells.
func (p Program) WriteTo(w io.Writer) (n int64, err error) {
	ew := oisci.NewErrWriter(w)
	io.WriteString(ew, mifHeader)
	for pc := 0; pc < Depth; pc++ {
		io.WriteString(ew, codec.Bits(uint32(pc), 8))
		io.WriteString(ew, " : ")
		io.WriteString(ew, p[uint8(pc)].Bits())
		io.WriteString(ew, " ;\n")
		if ew.Err != nil {
			break
		}
	}
	io.WriteString(ew, mifEnd+"\n")
	return ew.N, ew.Err
}

func checkHeader(line string, lnum int) error {
	kv := strings.SplitN(strings.TrimSuffix(line, ";"), "=", 2)
	if len(kv) != 2 {
		return nil
	}
	key, val := strings.TrimSpace(kv[0]), strings.TrimSpace(kv[1])
	var exp string
	switch key {
	case "DEPTH":
		exp = strconv.Itoa(Depth)
	case "WIDTH":
		exp = strconv.Itoa(Width)
	case "ADDRESS_RADIX", "DATA_RADIX":
		exp = "BIN"
	default:
		return nil
	}
	if val != exp {
		return &ImageError{lnum, "unsupported " + key + " " + strconv.Quote(val) + ", expected " + exp}
	}
	return nil
}

func parseRecord(line string, lnum int) (uint8, Cell, error) {
	end := strings.IndexByte(line, ';')
	if end < 0 {
		return 0, 0, &ImageError{lnum, "missing ';' record terminator"}
	}
	fields := strings.Split(line[:end], ":")
	if len(fields) != 2 {
		return 0, 0, &ImageError{lnum, "expected 2 fields, got " + strconv.Itoa(len(fields))}
	}
	a, err := codec.ParseBits(strings.TrimSpace(fields[0]), 8)
	if err != nil {
		return 0, 0, &ImageError{lnum, "bad address: " + err.Error()}
	}
	c, err := codec.ParseBits(strings.TrimSpace(fields[1]), Width)
	if err != nil {
		return 0, 0, &ImageError{lnum, "bad cell: " + err.Error()}
	}
	return uint8(a), Cell(c), nil
}

// ReadProgram reads a memory image from r. On error, the returned program is
// nil: a partially read image is never returned. Records may come in any
// order but an address cannot appear twice. Errors due to a malformed
// image have an *ImageError cause.
func ReadProgram(r io.Reader) (Program, error) {
	s := bufio.NewScanner(r)
	lnum := 0
	begin := false
	for !begin && s.Scan() {
		lnum++
		line := strings.TrimSpace(s.Text())
		if line == mifBegin {
			begin = true
			break
		}
		if err := checkHeader(line, lnum); err != nil {
			return nil, err
		}
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "image read failed")
	}
	if !begin {
		return nil, &ImageError{lnum, "missing " + mifBegin}
	}
	p := make(Program, Depth)
	for s.Scan() {
		lnum++
		line := strings.TrimSpace(s.Text())
		switch line {
		case mifEnd:
			return p, nil
		case "":
			continue
		}
		a, c, err := parseRecord(line, lnum)
		if err != nil {
			return nil, err
		}
		if _, ok := p[a]; ok {
			return nil, &ImageError{lnum, "duplicate record for address " + strconv.Itoa(int(a))}
		}
		p[a] = c
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "image read failed")
	}
	return nil, &ImageError{lnum, "missing " + mifEnd + " terminator"}
}

// LoadImage loads a memory image from file fileName.
func LoadImage(fileName string) (Program, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	p, err := ReadProgram(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", fileName)
	}
	return p, nil
}

// SaveImage saves a program to a memory image file. The file is removed if an
// error occurs.
func SaveImage(fileName string, p Program) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	w := bufio.NewWriter(f)
	defer func() {
		if ferr := w.Flush(); err == nil && ferr != nil {
			err = errors.Wrap(ferr, "write failed")
		}
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "close failed")
		}
		// delete file on error
		if err != nil {
			os.Remove(fileName)
		}
	}()
	if _, err = p.WriteTo(w); err != nil {
		return errors.Wrap(err, "save failed")
	}
	return nil
}
