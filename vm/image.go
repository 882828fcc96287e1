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

import "golang.org/x/exp/slices"

// Program is the program memory (ROM) of the machine. Addresses with no
// entry behave as empty cells.
type Program map[uint8]Cell

// Cell returns the cell at address pc and whether it is populated.
func (p Program) Cell(pc uint8) (Cell, bool) {
	c, ok := p[pc]
	return c, ok
}

// Addresses returns the populated addresses in increasing order.
func (p Program) Addresses() []uint8 {
	return sortedKeys(p)
}

// Memory is the data memory (RAM) of the machine. Cells are created on first
// write.
type Memory map[uint8]int8

// Addresses returns the initialized addresses in increasing order.
func (m Memory) Addresses() []uint8 {
	return sortedKeys(m)
}

func sortedKeys[V any](m map[uint8]V) []uint8 {
	keys := make([]uint8, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
