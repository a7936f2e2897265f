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

	"github.com/pkg/errors"
)

// ErrHalted is returned by Step when called on an instance that terminated
// normally or faulted.
var ErrHalted = errors.New("machine halted")

// Step executes a single instruction.
//
// Step can be called on a running instance or on an instance waiting for input,
// in which case the blocked IN instruction is executed again. Calling Step on
// a terminated instance is a programming error: the instance is left untouched
// and the returned error's cause is ErrHalted.
//
// Faults are not reported as errors: check Halt after Step returns.
func (i *Instance) Step() error {
	if i.halt.Terminal() {
		return errors.Wrapf(ErrHalted, "step @pc=%d: %v", i.PC, i.halt)
	}
	i.step()
	return nil
}

// Run executes instructions until the instance halts, faults or blocks
// waiting for input, and returns the resulting halt code.
//
// If the instance is waiting for input when Run is called, or blocks during
// the run, execution resumes as soon as the Channel reports available input.
// This allows a caller to top up the input queue and call Run again. Calling
// Run on a terminated instance does nothing.
//
// When Run returns, the PC points to the instruction that stopped the
// machine.
func (i *Instance) Run() HaltCode {
	for i.halt == Running || i.halt == WaitInput && i.io.HasInput() {
		i.step()
	}
	return i.halt
}

func (i *Instance) step() {
	defer func() {
		if e := recover(); e != nil {
			i.stop(FaultPanic, fmt.Sprintf("recovered panic @pc=%d/%d: %v", i.PC, i.mem.Len(), e))
		}
	}()
	ins, err := i.ops.Decode(i.mem.cells, i.PC)
	if err != nil {
		he := err.(*HaltError)
		i.stop(he.Code, he.Reason)
		return
	}
	if i.trace {
		log.Tracef("@ %04d: %v", i.PC, &ins)
	}
	i.halt, i.reason = Running, ""
	c := Call{i: i, ins: &ins}
	ins.Op.Exec(&c)
	switch c.code {
	case Running:
		if c.jumped {
			i.PC = int(c.target)
		} else {
			i.PC += 1 + ins.Op.Params
		}
	case WaitInput:
		i.stop(c.code, c.reason)
		return
	default:
		i.stop(c.code, c.reason)
		if c.code != Halted {
			return
		}
	}
	i.insCount++
}
