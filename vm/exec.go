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

import "github.com/pkg/errors"

// ErrInputExhausted is the panic value used by the static input channel of
// Exec when the program reads past the end of its input.
var ErrInputExhausted = errors.New("static input exhausted")

// Result holds the final state of a program run with Exec.
type Result struct {
	Mem       Image    // final memory
	Output    []Cell   // values written by OUT instructions
	PC        int      // final instruction pointer
	InputRead int      // number of input values consumed
	Halt      HaltCode // Halted or a fault code
	Reason    string
}

// Err returns a *HaltError if the program did not terminate normally.
func (r *Result) Err() error {
	if r.Halt == Halted {
		return nil
	}
	return &HaltError{r.Halt, r.PC, r.Reason}
}

type staticInput struct {
	in  []Cell
	pos int
	out []Cell
}

func (s *staticInput) HasInput() bool { return true }

func (s *staticInput) ReadInput() Cell {
	if s.pos >= len(s.in) {
		panic(errors.Wrapf(ErrInputExhausted, "read #%d", s.pos))
	}
	v := s.in[s.pos]
	s.pos++
	return v
}

func (s *staticInput) WriteOutput(v Cell) { s.out = append(s.out, v) }

// Exec runs a program to completion with a static list of input values.
//
// Input is always reported as available: reading past the end of the input
// list is a FaultPanic, not an input block. The returned error is only
// non-nil if one of the options fails; check Result.Halt for the outcome of
// the run.
//
// Any IO option is overridden.
func Exec(img Image, input []Cell, opts ...Option) (*Result, error) {
	ch := &staticInput{in: input}
	i, err := New(img, append(opts[:len(opts):len(opts)], IO(ch))...)
	if err != nil {
		return nil, err
	}
	h := i.Run()
	return &Result{
		Mem:       i.mem.cells,
		Output:    ch.out,
		PC:        i.PC,
		InputRead: ch.pos,
		Halt:      h,
		Reason:    i.reason,
	}, nil
}
