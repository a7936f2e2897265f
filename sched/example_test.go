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

package sched_test

import (
	"context"
	"fmt"

	"github.com/db47h/intcode/sched"
	"github.com/db47h/intcode/vm"
)

// Five amplifiers connected in a feedback loop. Each amplifier first reads its
// phase setting, the first one then receives the initial signal 0.
func ExampleChain() {
	img, err := vm.Parse("3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5")
	if err != nil {
		panic(err)
	}
	s, out, err := sched.Chain(img, [][]vm.Cell{{9, 0}, {8}, {7}, {6}, {5}}, true)
	if err != nil {
		panic(err)
	}
	if err = s.Run(context.Background()); err != nil {
		panic(err)
	}
	fmt.Println(out.Values())
	for _, n := range s.Nodes() {
		fmt.Print(n.Name, ":", n.M.Halt(), " ")
	}
	fmt.Println()
	// Output:
	// [139629729]
	// 0:halted 1:halted 2:halted 3:halted 4:halted
}
