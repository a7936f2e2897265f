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

// ErrMode is the cause of errors caused by invalid addressing modes.
var ErrMode = errors.New("invalid addressing mode")

// Call is the interface between an operation and the Instance executing it.
// A new Call is created for every executed instruction and is only valid for
// the duration of the Op.Exec function.
//
// Arguments are indexed from 0. Once any method has stopped the machine
// (fault, input block or halt), all further calls are no-ops and Read returns
// 0.
type Call struct {
	i      *Instance
	ins    *Instruction
	target Cell
	jumped bool
	code   HaltCode
	reason string
}

// Instruction returns the instruction being executed.
func (c *Call) Instruction() *Instruction { return c.ins }

func (c *Call) stop(code HaltCode, reason string) {
	if c.code == Running {
		c.code, c.reason = code, reason
	}
}

func (c *Call) fail(code HaltCode, err error) {
	c.stop(code, err.Error())
}

func (c *Call) arg(n int) Cell {
	if n < 0 || n >= c.ins.Op.Params {
		panic(errors.Errorf("%s: argument index %d out of range", c.ins.Op.Name, n))
	}
	return c.ins.Args[n]
}

// Address returns the effective address of argument n. It fails for
// immediate mode arguments.
func (c *Call) Address(n int) (Cell, bool) {
	p := c.arg(n)
	switch m := c.ins.Modes[n]; m {
	case ModePosition:
		return p, true
	case ModeRelative:
		return p + c.i.rb, true
	case ModeImmediate:
		c.fail(FaultMode, errors.Wrapf(ErrMode, "immediate mode for argument %d of %s", n, c.ins.Op.Name))
	default:
		c.fail(FaultMode, errors.Wrapf(ErrMode, "mode %d for argument %d of %s", m, n, c.ins.Op.Name))
	}
	return 0, false
}

// Read returns the value of argument n.
func (c *Call) Read(n int) Cell {
	if c.code != Running {
		return 0
	}
	if p := c.arg(n); c.ins.Modes[n] == ModeImmediate {
		return p
	}
	addr, ok := c.Address(n)
	if !ok {
		return 0
	}
	v, err := c.i.mem.Fetch(addr)
	if err != nil {
		c.fail(FaultAddress, err)
		return 0
	}
	return v
}

// Write stores v at the address designated by argument n. Immediate mode
// arguments cannot be written to.
func (c *Call) Write(n int, v Cell) {
	if c.code != Running {
		return
	}
	addr, ok := c.Address(n)
	if !ok {
		return
	}
	if err := c.i.mem.Store(addr, v); err != nil {
		c.fail(FaultAddress, err)
	}
}

// In reads the next input value from the Instance's Channel. If no input is
// available, the machine is stopped with the WaitInput halt code and ok is
// false. The instruction will be executed again when the machine is resumed.
func (c *Call) In() (v Cell, ok bool) {
	if c.code != Running {
		return 0, false
	}
	if !c.i.io.HasInput() {
		c.stop(WaitInput, "waiting for input")
		return 0, false
	}
	return c.i.io.ReadInput(), true
}

// Out writes v to the Instance's Channel.
func (c *Call) Out(v Cell) {
	if c.code != Running {
		return
	}
	c.i.io.WriteOutput(v)
}

// Jump sets the address of the next instruction to the value of argument n.
func (c *Call) Jump(n int) {
	t := c.Read(n)
	if c.code != Running {
		return
	}
	c.target, c.jumped = t, true
}

// AdjustRelativeBase adds v to the relative base.
func (c *Call) AdjustRelativeBase(v Cell) {
	if c.code != Running {
		return
	}
	c.i.rb += v
}

// Halt stops the machine normally.
func (c *Call) Halt() {
	c.stop(Halted, "normal termination")
}

// Fault stops the machine with the given fault code. It is meant for custom
// operations.
func (c *Call) Fault(code HaltCode, format string, args ...interface{}) {
	if !code.IsFault() {
		panic(errors.Errorf("%v is not a fault code", code))
	}
	c.stop(code, fmt.Sprintf(format, args...))
}
