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
	"io"
	"strconv"
	"strings"

	"github.com/mustpax/OISC/codec"
	"github.com/pkg/errors"
)

const (
	inPrompt   = "? "
	inReprompt = "invalid value, please reenter: "
)

type flusher interface {
	Flush() error
}

func (i *Instance) prompt(s string) error {
	if i.output == nil {
		return nil
	}
	if _, err := io.WriteString(i.output, s); err != nil {
		return errors.Wrap(err, "prompt")
	}
	if f, ok := i.output.(flusher); ok {
		return f.Flush()
	}
	return nil
}

// In is the default IN handler. It blocks until a valid decimal value has been
// read from the input. At end of input, it returns io.EOF.
func (i *Instance) In() (int8, error) {
	if i.input == nil {
		return 0, errors.New("IN: no input")
	}
	if err := i.prompt(inPrompt); err != nil {
		return 0, err
	}
	for {
		line, err := i.input.ReadString('\n')
		if s := strings.TrimSpace(line); s != "" {
			if n, perr := codec.Decimal(s); perr == nil {
				return codec.Value(codec.Signed(n)), nil
			}
		}
		if err != nil {
			if err == io.EOF {
				return 0, err
			}
			return 0, errors.Wrap(err, "IN")
		}
		if err = i.prompt(inReprompt); err != nil {
			return 0, err
		}
	}
}

// Out is the default OUT handler.
func (i *Instance) Out(v int8) error {
	if i.output == nil {
		return errors.New("OUT: no output")
	}
	b := strconv.AppendInt(nil, int64(v), 10)
	b = append(b, '\n')
	if _, err := i.output.Write(b); err != nil {
		return errors.Wrap(err, "OUT")
	}
	if f, ok := i.output.(flusher); ok {
		return errors.Wrap(f.Flush(), "OUT")
	}
	return nil
}
