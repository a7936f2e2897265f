// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
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
	"io"

	"github.com/db47h/intcode/internal/iox"
	"github.com/pkg/errors"
)

// Cell is the raw type stored in a memory location.
type Cell int64

// Instance represents an Intcode VM instance.
type Instance struct {
	PC       int // Program Counter (aka. Instruction Pointer)
	mem      *Memory
	rb       Cell
	halt     HaltCode
	reason   string
	io       Channel
	ops      *OpTable
	limit    int
	trace    bool
	insCount int64
}

// Option interface
type Option func(*Instance) error

// IO sets the I/O Channel used by IN and OUT instructions. A nil channel never
// has input and discards any output.
func IO(ch Channel) Option {
	return func(i *Instance) error {
		if ch == nil {
			ch = nullChannel{}
		}
		i.io = ch
		return nil
	}
}

// Ops sets the operation table. The default is DefaultOps().
func Ops(t *OpTable) Option {
	return func(i *Instance) error {
		if t == nil {
			return errors.New("nil operation table")
		}
		i.ops = t
		return nil
	}
}

// MemLimit sets the memory ceiling: the highest address a program may access.
// Accessing an address above the ceiling is a fault. The default is
// DefaultMemLimit.
func MemLimit(addr int) Option {
	return func(i *Instance) error {
		if addr <= 0 {
			addr = DefaultMemLimit
		}
		if i.mem != nil {
			if addr < i.mem.Len()-1 {
				return errors.Errorf("memory limit %d below current memory size %d", addr, i.mem.Len())
			}
			i.mem.limit = addr
		}
		i.limit = addr
		return nil
	}
}

// Trace enables or disables instruction tracing. Traces are logged at the
// trace level to the logger set with UseLogger.
func Trace(enable bool) Option {
	return func(i *Instance) error { i.trace = enable; return nil }
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

// New creates a new Intcode Virtual Machine instance.
//
// The instance works on its own copy of img, so the same image can be used
// to create any number of instances.
//
// Options will be set by calling SetOptions.
func New(img Image, opts ...Option) (*Instance, error) {
	i := &Instance{
		io:    nullChannel{},
		ops:   defaultOps,
		limit: DefaultMemLimit,
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	mem, err := NewMemory(img, i.limit)
	if err != nil {
		return nil, err
	}
	i.mem = mem
	return i, nil
}

// Mem returns the instance memory.
func (i *Instance) Mem() *Memory {
	return i.mem
}

// Memory returns a snapshot of the instance memory.
func (i *Instance) Memory() Image {
	return i.mem.Snapshot()
}

// Peek returns the value at address addr, or 0 if addr is outside memory.
// Unlike memory accesses from instructions, Peek never grows memory.
func (i *Instance) Peek(addr int) Cell {
	if addr < 0 || addr >= i.mem.Len() {
		return 0
	}
	return i.mem.cells[addr]
}

// Poke sets the value at address addr. It is typically used to patch a program
// before running it.
func (i *Instance) Poke(addr int, v Cell) error {
	return i.mem.Store(Cell(addr), v)
}

// RelativeBase returns the current relative base.
func (i *Instance) RelativeBase() Cell {
	return i.rb
}

// Halt returns the current halt code.
func (i *Instance) Halt() HaltCode {
	return i.halt
}

// HaltReason returns a description of the reason why the instance stopped. It
// is empty while running.
func (i *Instance) HaltReason() string {
	return i.reason
}

// Err returns a *HaltError if the instance is faulted or waiting for input,
// nil otherwise.
func (i *Instance) Err() error {
	if i.halt == Running || i.halt == Halted {
		return nil
	}
	return &HaltError{i.halt, i.PC, i.reason}
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

func (i *Instance) stop(code HaltCode, reason string) {
	i.halt, i.reason = code, reason
}

// Dump writes the machine state and memory to w. The memory is written in
// program text format on the last line.
func (i *Instance) Dump(w io.Writer) error {
	ew := iox.NewErrWriter(w)
	fmt.Fprintf(ew, "pc=%d rb=%d halt=%d (%v) ins=%d mem=%d\n", i.PC, i.rb, int(i.halt), i.halt, i.insCount, i.mem.Len())
	if i.reason != "" {
		fmt.Fprintf(ew, "reason: %s\n", i.reason)
	}
	iox.WriteList(ew, ',', i.mem.cells)
	ew.Write([]byte{'\n'})
	return ew.Err
}
