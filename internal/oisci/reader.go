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

package oisci

import (
	"io"

	"github.com/pkg/errors"
)

// ErrReader wraps an io.Reader and keeps the first error other than io.EOF
// returned by its Read method. It is meant for consumers like text/scanner
// that report read errors as ordinary messages.
type ErrReader struct {
	r   io.Reader
	Err error
}

// NewErrReader returns a new ErrReader.
func NewErrReader(r io.Reader) *ErrReader {
	return &ErrReader{r: r}
}

func (r *ErrReader) Read(p []byte) (n int, err error) {
	n, err = r.r.Read(p)
	if err != nil && err != io.EOF && r.Err == nil {
		r.Err = errors.Wrap(err, "read failed")
	}
	return n, err
}
