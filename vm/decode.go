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
	"bytes"
	"fmt"
	"strconv"
)

// Mode is a parameter addressing mode.
type Mode int

// Addressing modes.
const (
	ModePosition  Mode = iota // parameter is an address
	ModeImmediate             // parameter is a value
	ModeRelative              // parameter is an address relative to the relative base

	modeInvalid Mode = -1 // mode digits of a negative instruction word
)

// Prefix returns the assembler prefix for m: "" for position mode, "#" for
// immediate mode and "@" for relative mode.
func (m Mode) Prefix() string {
	switch m {
	case ModePosition:
		return ""
	case ModeImmediate:
		return "#"
	case ModeRelative:
		return "@"
	}
	return strconv.Itoa(int(m)) + "?"
}

// Instruction is a decoded instruction.
type Instruction struct {
	Addr  int  // address of the instruction word
	Word  Cell // raw instruction word
	Op    *Op
	Modes [MaxParams]Mode
	Args  [MaxParams]Cell // raw parameters
}

// Size returns the number of cells used by the instruction.
func (ins *Instruction) Size() int {
	return 1 + ins.Op.Params
}

func (ins *Instruction) String() string {
	var b bytes.Buffer
	b.WriteString(ins.Op.Name)
	for k := 0; k < ins.Op.Params; k++ {
		b.WriteByte(' ')
		b.WriteString(ins.Modes[k].Prefix())
		b.WriteString(strconv.FormatInt(int64(ins.Args[k]), 10))
	}
	return b.String()
}

// Decode decodes the instruction at address pc in mem. If the instruction
// cannot be decoded, the returned error is a *HaltError with one of the
// FaultPCLow, FaultPCHigh, FaultOpcode or FaultParams codes.
//
// The opcode is made of the lowest two decimal digits of the instruction word,
// regardless of its sign: -99 and -199 decode as halt. The sign is kept for
// negative words above -10, which decode to an unknown opcode. The mode digits
// of a negative word are invalid, so accessing any of its parameters faults
// with FaultMode.
//
// The parameter bounds check is done against len(mem): an instruction whose
// parameters extend past the end of memory is rejected even though reading
// these cells as data would grow the memory.
func (t *OpTable) Decode(mem []Cell, pc int) (ins Instruction, err error) {
	if pc < 0 {
		return ins, &HaltError{FaultPCLow, pc, fmt.Sprintf("instruction pointer too low: %d", pc)}
	}
	if pc >= len(mem) {
		return ins, &HaltError{FaultPCHigh, pc, fmt.Sprintf("instruction pointer too high: %d", pc)}
	}
	w := mem[pc]
	code := opcode(w)
	op := t.Lookup(code)
	if op == nil {
		return ins, &HaltError{FaultOpcode, pc, fmt.Sprintf("unknown opcode: %d", code)}
	}
	if pc+op.Params >= len(mem) {
		return ins, &HaltError{FaultParams, pc,
			fmt.Sprintf("instruction %s requires %d parameters, requiring memory read out of range", op.Name, op.Params)}
	}
	ins.Addr, ins.Word, ins.Op = pc, w, op
	m := w / 100
	for k := 0; k < op.Params; k++ {
		if w < 0 {
			ins.Modes[k] = modeInvalid
		} else {
			ins.Modes[k] = Mode(m % 10)
		}
		ins.Args[k] = mem[pc+1+k]
		m /= 10
	}
	return ins, nil
}

func opcode(w Cell) Cell {
	if w >= 0 || w > -10 {
		return w % 100
	}
	if w = -w % 100; w < 0 {
		// math.MinInt64
		return -1
	}
	return w
}
