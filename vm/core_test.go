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

package vm_test

import (
	"testing"

	"github.com/mustpax/OISC/vm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

var tests = [...]struct {
	name  string
	code  C
	mem   vm.Memory
	count int64
}{
	{"empty", C{0, 0, 0}, vm.Memory{}, 0},
	{"load", C{vm.Load(25, 10, 1)}, vm.Memory{10: 25}, 1},
	{"load-branch", C{vm.Load(-1, 10, 200), vm.Load(1, 11, 2)}, vm.Memory{10: -1}, 1},
	{"load-zero-branch", C{vm.Load(0, 10, 3), vm.Load(1, 11, 2), 0, vm.Load(2, 12, 4)}, vm.Memory{10: 0, 12: 2}, 2},
	{"subleq", C{
		vm.Load(3, 10, 1),
		vm.Load(5, 11, 2),
		vm.Subleq(10, 11, 200),
		vm.Load(1, 12, 4),
	}, vm.Memory{10: 3, 11: 2, 12: 1}, 4},
	{"subleq-branch", C{
		vm.Load(5, 10, 1),
		vm.Load(3, 11, 2),
		vm.Subleq(10, 11, 200),
		vm.Load(1, 12, 4),
	}, vm.Memory{10: 5, 11: -2}, 3},
	{"subleq-zero-branch", C{
		vm.Load(5, 10, 1),
		vm.Subleq(10, 10, 200),
		vm.Load(1, 12, 3),
	}, vm.Memory{10: 0}, 2},
	{"overflow-low", C{
		vm.Load(100, 10, 1),
		vm.Load(-100, 11, 2),
		vm.Subleq(10, 11, 3), // -200 + 255
	}, vm.Memory{10: 100, 11: 55}, 3},
	{"overflow-high", C{
		vm.Load(-100, 10, 1),
		vm.Load(100, 11, 2),
		vm.Subleq(10, 11, 3), // 200 - 255
	}, vm.Memory{10: -100, 11: -55}, 3},
	{"overflow-edge", C{
		vm.Load(-1, 10, 1),
		vm.Load(127, 11, 2),
		vm.Subleq(10, 11, 3), // 128 - 255
		vm.Load(1, 12, 4),
		vm.Load(-128, 13, 5),
		vm.Subleq(12, 13, 6), // -129 + 255
	}, vm.Memory{10: -1, 11: -127, 12: 1, 13: 126}, 6},
}

func TestCore(t *testing.T) {
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			i := setup(t, test.code)
			require.NoError(t, i.Run())
			require.Equal(t, vm.Halted, i.State())
			require.Equal(t, vm.Depth, i.PC)
			require.Equal(t, test.mem, i.Mem)
			require.Equal(t, test.count, i.InstructionCount())
		})
	}
}

func TestStep(t *testing.T) {
	i := setup(t, C{
		vm.Load(2, 10, 1),
		vm.Load(1, 11, 2),
		vm.Subleq(11, 10, 0), // 10: 2 -> 1 -> 0, then jump to 0 which reloads
	})
	require.NoError(t, i.Step())
	require.Equal(t, vm.Running, i.State())
	require.Equal(t, 1, i.PC)
	require.NoError(t, i.Step())
	require.NoError(t, i.Step())
	require.Equal(t, 3, i.PC)
	require.Equal(t, int8(1), i.Mem[10])

	i.PC = 2
	require.NoError(t, i.Step())
	require.Equal(t, 0, i.PC)
	require.Equal(t, int8(0), i.Mem[10])

	// halted instances stay halted
	i.PC = vm.Depth
	require.NoError(t, i.Step())
	require.Equal(t, vm.Halted, i.State())
	require.NoError(t, i.Step())
	require.Equal(t, vm.Depth, i.PC)
}

func TestRun_lastCell(t *testing.T) {
	p := make(vm.Program)
	p[255] = vm.Load(9, 10, 0) // branches back to 0 only if <= 0
	i, err := vm.New(p)
	require.NoError(t, err)
	require.NoError(t, i.Run())
	require.Equal(t, vm.Depth, i.PC)
	require.Equal(t, vm.Memory{10: 9}, i.Mem)
}

func TestRun_forever(t *testing.T) {
	// a zero load always takes its branch, which points back to itself.
	i := setup(t, C{vm.Load(0, 10, 0)})
	require.False(t, steps(t, i, 10000))
	require.Equal(t, vm.Running, i.State())
	require.Equal(t, 0, i.PC)
	require.EqualValues(t, 10000, i.InstructionCount())

	// classic subleq loop on the zero cell
	i = setup(t, C{vm.Load(0, 250, 1), vm.Subleq(250, 250, 1)})
	require.False(t, steps(t, i, 10000))

	// counting down eventually exits
	i = setup(t, C{
		vm.Load(100, 10, 1),
		vm.Load(1, 11, 2),
		vm.Load(0, 250, 3),
		vm.Subleq(11, 10, 5), // 3: exit when done
		vm.Subleq(250, 250, 3),
	})
	require.True(t, steps(t, i, 10000))
	require.Equal(t, int8(0), i.Mem[10])
}

func TestRun_uninitialized(t *testing.T) {
	i := setup(t, C{
		vm.Load(1, 11, 1),
		vm.Subleq(10, 11, 2),
	})
	err := i.Run()
	require.Error(t, err)
	var ue *vm.UninitializedReadError
	require.True(t, errors.As(err, &ue))
	require.Equal(t, uint8(10), ue.Addr)
	require.Equal(t, 1, ue.PC)
	require.Equal(t, 1, i.PC)
	require.Equal(t, ue, errors.Cause(err))

	// zero is not the same as uninitialized
	i = setup(t, C{
		vm.Load(0, 10, 1),
		vm.Load(1, 11, 2),
		vm.Subleq(10, 11, 3),
	})
	require.NoError(t, i.Run())
	require.Equal(t, int8(1), i.Mem[11])
}

func TestPreload(t *testing.T) {
	code := C{
		vm.Load(0, 250, 1),
		vm.Load(-1, 254, 2),
		vm.Load(10, 249, 3),
		vm.Subleq(249, 250, 4),
		vm.Load(5, 248, 5),
	}
	i := setup(t, code)
	require.NoError(t, i.Preload())
	require.Equal(t, vm.Memory{250: 0, 254: -1, 249: 10}, i.Mem)
	require.Equal(t, 3, i.PC)
	require.Equal(t, vm.Idle, i.State())
	require.EqualValues(t, 3, i.InstructionCount())

	// Preload clears memory first
	i.Mem[1] = 1
	require.NoError(t, i.Preload())
	require.NotContains(t, i.Mem, uint8(1))

	// missing cells are skipped, an empty cell stops it.
	p := vm.Program{
		0: vm.Load(1, 10, 1),
		2: vm.Load(2, 11, 3),
		3: 0,
		4: vm.Load(3, 12, 5),
	}
	i, err := vm.New(p)
	require.NoError(t, err)
	require.NoError(t, i.Preload())
	require.Equal(t, vm.Memory{10: 1, 11: 2}, i.Mem)
	require.Equal(t, 3, i.PC)

	// then Run starts over
	require.NoError(t, i.Run())
	require.Equal(t, vm.Memory{10: 1, 11: 2, 12: 3}, i.Mem)

	// an all-load program preloads to the end.
	i = setup(t, C{vm.Load(1, 10, 1), vm.Load(2, 11, 2)})
	require.NoError(t, i.Preload())
	require.Equal(t, vm.Depth, i.PC)
}
