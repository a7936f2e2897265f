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

package asm

import (
	"fmt"
	"io"
	"strconv"

	"github.com/db47h/intcode/internal/iox"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting image and error if any. Mnemonics are those of vm.DefaultOps().
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader) (img vm.Image, err error) {
	return AssembleOps(name, r, vm.DefaultOps())
}

// AssembleOps works like Assemble but uses the mnemonics and arities from the
// given operation table.
func AssembleOps(name string, r io.Reader, ops *vm.OpTable) (img vm.Image, err error) {
	p := newParser(ops)
	img, err = p.Parse(name, r)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// encode returns the instruction word for ins built from its opcode and modes,
// or -1 if ins uses an invalid mode.
func encode(ins *vm.Instruction) vm.Cell {
	w := ins.Op.Code
	for k := 0; k < ins.Op.Params; k++ {
		if ins.Modes[k] < vm.ModePosition || ins.Modes[k] > vm.ModeRelative {
			return -1
		}
		w += vm.Cell(ins.Modes[k]) * pow10[k]
	}
	return w
}

// Disassemble writes a disassembly of the cells in the given slice at position
// pc to the specified io.Writer and returns the position of the next
// instruction and any write error.
//
// Cells that do not decode to a valid instruction, or that would not assemble
// back to the same value, are written as a ".dat" directive.
func Disassemble(i []vm.Cell, pc int, w io.Writer) (next int, err error) {
	return DisassembleOps(i, pc, w, vm.DefaultOps())
}

// DisassembleOps works like Disassemble but decodes instructions with the given
// operation table.
func DisassembleOps(i []vm.Cell, pc int, w io.Writer, ops *vm.OpTable) (next int, err error) {
	if pc < 0 || pc >= len(i) {
		return pc, errors.Errorf("disassemble: address %d out of range", pc)
	}
	ew := iox.NewErrWriter(w)
	ins, err := ops.Decode(i, pc)
	if err != nil || encode(&ins) != ins.Word {
		io.WriteString(ew, ".dat ")
		io.WriteString(ew, strconv.FormatInt(int64(i[pc]), 10))
		return pc + 1, ew.Err
	}
	io.WriteString(ew, ins.String())
	return pc + ins.Size(), ew.Err
}

// DisassembleAll writes a disassembly of all cells in the given slice to
// the specified io.Writer. The base argument specifies the real address of the
// first cell (i[0]). It will return any write error.
func DisassembleAll(i []vm.Cell, base int, w io.Writer) error {
	ew := iox.NewErrWriter(w)
	for pc := 0; pc < len(i); {
		fmt.Fprintf(ew, "% 10d\t", base+pc)
		pc, _ = Disassemble(i, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
