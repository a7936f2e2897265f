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

// Package vm implements an Intcode virtual machine.
//
// An Intcode program is a list of integers loaded into a single flat memory
// shared by code and data. The low two decimal digits of an instruction word
// select the operation, higher digits select the addressing mode of each
// parameter: 0 for position mode, 1 for immediate mode and 2 for relative
// mode. Memory grows on demand when a program accesses cells beyond its
// current size, up to a configurable limit.
//
// An Instance can be run to completion or driven step by step. Input and
// output go through a caller supplied Channel; when an IN instruction is
// executed and the channel has no input, the instance stops with the WaitInput
// halt code and can be resumed later by calling Step or Run again once input
// is available. Several instances can be connected through Queues and driven
// cooperatively (see package github.com/db47h/intcode/sched).
//
// Faults never escape as errors or panics: a faulting program stops with one
// of the negative halt codes and the reason can be inspected with HaltReason.
// Unexpected panics during instruction execution, including panics from
// Channel implementations, are recovered and turned into FaultPanic.
//
// The operation table is pluggable. Custom tables can be built with NewOpTable
// or by extending the default one:
//
//	ops, err := vm.DefaultOps().With(vm.Op{Code: 10, Name: "sq", Params: 2, Exec: func(c *vm.Call) {
//		v := c.Read(0)
//		c.Write(1, v*v)
//	}})
//
// For simple programs, Exec runs a program with a fixed list of input values
// and returns its output.
package vm
