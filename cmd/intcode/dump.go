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

package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/codahale/metrics"
	"github.com/db47h/intcode/internal/iox"
	"github.com/db47h/intcode/vm"
)

// statsChannel counts input and output values going through a vm.Channel.
type statsChannel struct {
	vm.Channel
	in, out metrics.Counter
}

func withStats(prefix string, ch vm.Channel) vm.Channel {
	return &statsChannel{
		Channel: ch,
		in:      metrics.Counter(prefix + "inputs"),
		out:     metrics.Counter(prefix + "outputs"),
	}
}

func (s *statsChannel) ReadInput() vm.Cell {
	v := s.Channel.ReadInput()
	s.in.Add()
	return v
}

func (s *statsChannel) WriteOutput(v vm.Cell) {
	s.out.Add()
	s.Channel.WriteOutput(v)
}

// recordStats records the final state of machine i.
func recordStats(prefix string, i *vm.Instance) {
	metrics.Counter(prefix + "instructions").AddN(uint64(i.InstructionCount()))
	metrics.Counter("halts." + i.Halt().String()).Add()
	metrics.Gauge(prefix + "memory").Set(int64(i.Mem().Len()))
}

// dumpStats writes all counters and gauges to w, sorted by name.
func dumpStats(w io.Writer) error {
	ew := iox.NewErrWriter(w)
	c, g := metrics.Snapshot()
	names := make([]string, 0, len(c)+len(g))
	for n := range c {
		names = append(names, n)
	}
	for n := range g {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		if v, ok := c[n]; ok {
			fmt.Fprintf(ew, "%s\t%d\n", n, v)
		} else {
			fmt.Fprintf(ew, "%s\t%d\n", n, g[n])
		}
	}
	return ew.Err
}

// dumpVM dumps the state of i to w, prefixed by name if not empty.
func dumpVM(name string, i *vm.Instance, w io.Writer) error {
	ew := iox.NewErrWriter(w)
	if name != "" {
		fmt.Fprintf(ew, "[%s] ", name)
	}
	i.Dump(ew)
	return ew.Err
}
