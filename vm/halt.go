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
	"strconv"
)

// HaltCode classifies why an Instance is not running. The values are stable
// and may be stored or compared by callers.
type HaltCode int

// Halt codes. Negative values are faults, except for WaitInput which signals
// that the machine is blocked on an IN instruction and can be resumed.
const (
	Running      HaltCode = 0   // still running
	Halted       HaltCode = 1   // normal termination
	FaultPCLow   HaltCode = -1  // instruction pointer negative
	FaultPCHigh  HaltCode = -2  // instruction pointer beyond memory
	FaultOpcode  HaltCode = -3  // unknown opcode
	FaultParams  HaltCode = -4  // instruction parameters past the end of memory
	FaultAddress HaltCode = -5  // negative or out of limits memory address
	FaultMode    HaltCode = -6  // invalid addressing mode
	WaitInput    HaltCode = -71 // blocked waiting for input
	FaultPanic   HaltCode = -99 // unexpected panic in an instruction
)

var haltNames = map[HaltCode]string{
	Running:      "running",
	Halted:       "halted",
	FaultPCLow:   "pc too low",
	FaultPCHigh:  "pc too high",
	FaultOpcode:  "unknown opcode",
	FaultParams:  "insufficient parameters",
	FaultAddress: "bad address",
	FaultMode:    "bad addressing mode",
	WaitInput:    "waiting for input",
	FaultPanic:   "panic",
}

func (h HaltCode) String() string {
	if s, ok := haltNames[h]; ok {
		return s
	}
	return "halt code " + strconv.Itoa(int(h))
}

// IsFault returns true if h denotes an abnormal termination.
func (h HaltCode) IsFault() bool {
	return h < 0 && h != WaitInput
}

// Terminal returns true if no further instruction can be executed by a machine
// in this state, i.e. on normal termination or after a fault.
func (h HaltCode) Terminal() bool {
	return h == Halted || h.IsFault()
}

// HaltError describes a fault or an input block. It is returned by
// Instance.Err and by the instruction decoder.
type HaltError struct {
	Code   HaltCode
	PC     int
	Reason string
}

func (e *HaltError) Error() string {
	return fmt.Sprintf("%v @pc=%d: %s", e.Code, e.PC, e.Reason)
}
