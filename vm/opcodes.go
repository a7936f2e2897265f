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
	"sort"

	"github.com/pkg/errors"
)

// Intcode opcodes.
const (
	OpAdd  Cell = 1
	OpMul  Cell = 2
	OpIn   Cell = 3
	OpOut  Cell = 4
	OpJit  Cell = 5
	OpJif  Cell = 6
	OpLt   Cell = 7
	OpEq   Cell = 8
	OpRel  Cell = 9
	OpHalt Cell = 99
)

// MaxParams is the maximum number of parameters an instruction can take.
const MaxParams = 8

// Op describes an operation: its opcode, mnemonic, number of parameters and
// the function implementing it. Ops returned by an OpTable must not be
// modified.
type Op struct {
	Code   Cell
	Name   string
	Params int
	Exec   func(c *Call)
}

// OpTable maps opcodes to operations. An OpTable is immutable once built and
// can be shared by any number of instances.
type OpTable struct {
	ops [100]*Op
}

// NewOpTable returns a new OpTable with the given operations.
func NewOpTable(ops ...Op) (*OpTable, error) {
	t := new(OpTable)
	if err := t.add(ops); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *OpTable) add(ops []Op) error {
	seen := make(map[Cell]bool, len(ops))
	for k := range ops {
		op := ops[k]
		switch {
		case op.Code < 0 || op.Code > 99:
			return errors.Errorf("opcode %d out of range", op.Code)
		case seen[op.Code]:
			return errors.Errorf("duplicate opcode %d (%s)", op.Code, op.Name)
		case op.Params < 0 || op.Params > MaxParams:
			return errors.Errorf("%s: bad parameter count %d", op.Name, op.Params)
		case op.Exec == nil:
			return errors.Errorf("%s: nil Exec function", op.Name)
		}
		seen[op.Code] = true
		t.ops[op.Code] = &op
	}
	return nil
}

// With returns a copy of t where the given operations have been added,
// replacing any existing operation with the same opcode. t is left unchanged.
func (t *OpTable) With(ops ...Op) (*OpTable, error) {
	n := *t
	if err := n.add(ops); err != nil {
		return nil, err
	}
	return &n, nil
}

// Lookup returns the operation for the given opcode or nil if there is no such
// operation.
func (t *OpTable) Lookup(code Cell) *Op {
	if code < 0 || code >= Cell(len(t.ops)) {
		return nil
	}
	return t.ops[code]
}

// ByName returns the operation with the given mnemonic or nil.
func (t *OpTable) ByName(name string) *Op {
	for _, op := range t.ops {
		if op != nil && op.Name == name {
			return op
		}
	}
	return nil
}

// Ops returns all operations in the table, sorted by opcode.
func (t *OpTable) Ops() []*Op {
	var l []*Op
	for _, op := range t.ops {
		if op != nil {
			l = append(l, op)
		}
	}
	sort.Slice(l, func(a, b int) bool { return l[a].Code < l[b].Code })
	return l
}

func b2c(b bool) Cell {
	if b {
		return 1
	}
	return 0
}

var defaultOps = mustOpTable(
	Op{OpAdd, "add", 3, func(c *Call) { c.Write(2, c.Read(0)+c.Read(1)) }},
	Op{OpMul, "mul", 3, func(c *Call) { c.Write(2, c.Read(0)*c.Read(1)) }},
	Op{OpIn, "in", 1, func(c *Call) {
		if v, ok := c.In(); ok {
			c.Write(0, v)
		}
	}},
	Op{OpOut, "out", 1, func(c *Call) { c.Out(c.Read(0)) }},
	Op{OpJit, "jit", 2, func(c *Call) {
		if c.Read(0) != 0 {
			c.Jump(1)
		}
	}},
	Op{OpJif, "jif", 2, func(c *Call) {
		if c.Read(0) == 0 {
			c.Jump(1)
		}
	}},
	Op{OpLt, "lt", 3, func(c *Call) { c.Write(2, b2c(c.Read(0) < c.Read(1))) }},
	Op{OpEq, "eq", 3, func(c *Call) { c.Write(2, b2c(c.Read(0) == c.Read(1))) }},
	Op{OpRel, "rel", 1, func(c *Call) { c.AdjustRelativeBase(c.Read(0)) }},
	Op{OpHalt, "halt", 0, func(c *Call) { c.Halt() }},
)

func mustOpTable(ops ...Op) *OpTable {
	t, err := NewOpTable(ops...)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultOps returns the standard Intcode operation table.
func DefaultOps() *OpTable {
	return defaultOps
}
