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

package vm_test

import (
	"fmt"
	"os"

	"github.com/db47h/intcode/vm"
)

// Exec is the simplest way to run a program with known input.
func ExampleExec() {
	// outputs 999 if the input is below 8, 1000 if it is 8, 1001 otherwise
	img, err := vm.Parse(cmpProgram)
	if err != nil {
		panic(err)
	}
	for _, in := range []vm.Cell{7, 8, 9} {
		res, err := vm.Exec(img, []vm.Cell{in})
		if err != nil {
			panic(err)
		}
		fmt.Println(in, res.Output, res.Halt)
	}
	// Output:
	// 7 [999] halted
	// 8 [1000] halted
	// 9 [1001] halted
}

// A machine blocked on input can be resumed once input is available.
func ExampleInstance_Run() {
	in, out := vm.NewQueue(), vm.NewQueue()
	// sum input values until a 0 is read
	i, err := vm.New(vm.Image{3, 12, 1, 12, 13, 13, 1005, 12, 0, 4, 13, 99}, vm.IO(&vm.Pipe{In: in, Out: out}))
	if err != nil {
		panic(err)
	}
	for _, v := range []vm.Cell{1, 2, 3, 0} {
		fmt.Println(i.Run(), i.PC)
		in.Push(v)
	}
	fmt.Println(i.Run(), out.Values())
	// Output:
	// waiting for input 0
	// waiting for input 0
	// waiting for input 0
	// waiting for input 0
	// halted [6]
}

func ExampleOpTable_With() {
	sq, err := vm.DefaultOps().With(vm.Op{Code: 10, Name: "sq", Params: 2, Exec: func(c *vm.Call) {
		v := c.Read(0)
		c.Write(1, v*v)
	}})
	if err != nil {
		panic(err)
	}
	res, _ := vm.Exec(vm.Image{110, 12, 7, 4, 7, 99, 0, 0}, nil, vm.Ops(sq))
	fmt.Println(res.Output)
	// Output:
	// [144]
}

func ExampleInstance_Dump() {
	i, _ := vm.New(vm.Image{109, 7, 99})
	i.Run()
	i.Dump(os.Stdout)
	// Output:
	// pc=2 rb=7 halt=1 (halted) ins=2 mem=3
	// reason: normal termination
	// 109,7,99
}
