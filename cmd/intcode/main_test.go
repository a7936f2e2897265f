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
	"bufio"
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/codahale/metrics"
	"github.com/db47h/intcode/vm"
)

func TestKeyMap(t *testing.T) {
	var k keyMap
	if err := k.Set("a=-1,s=0,d=1"); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(k, keyMap{'a': -1, 's': 0, 'd': 1}) {
		t.Fatalf("got %v", k)
	}
	if s := k.String(); s != "a=-1,d=1,s=0" {
		t.Fatalf("got %q", s)
	}
	for _, bad := range []string{"", "ab=1", "a=x", "=1"} {
		if err := k.Set(bad); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}

func TestCellList(t *testing.T) {
	var l cellList
	if err := l.Set("4, 3,2"); err != nil {
		t.Fatal(err)
	}
	if l.String() != "4,3,2" {
		t.Fatalf("got %q", l.String())
	}
	if err := l.Set("4,,2"); err == nil {
		t.Fatal("expected error")
	}
}

func TestKeyChannel(t *testing.T) {
	var out bytes.Buffer
	k := newKeyChannel(strings.NewReader("xa?d\x04s"), &out, keyMap{'a': -1, 'd': 1, 's': 0}, 8)
	var in []vm.Cell
	for k.HasInput() {
		in = append(in, k.ReadInput())
	}
	if !reflect.DeepEqual(in, []vm.Cell{-1, 1}) || !k.eof || k.Err() != nil {
		t.Fatalf("got %v, eof: %v, err: %v", in, k.eof, k.Err())
	}
	for _, v := range []vm.Cell{1, 22, 333, 4444} {
		k.WriteOutput(v)
	}
	if exp := "1 22 \r\n333 \r\n4444 "; out.String() != exp {
		t.Fatalf("got %q, expected %q", out.String(), exp)
	}
}

func TestStats(t *testing.T) {
	p := &vm.Pipe{In: vm.NewQueue(5), Out: vm.NewQueue()}
	i, err := vm.New(vm.Image{3, 0, 4, 0, 99}, vm.IO(withStats("test.", p)))
	if err != nil {
		t.Fatal(err)
	}
	i.Run()
	recordStats("test.", i)
	c, g := metrics.Snapshot()
	if c["test.inputs"] != 1 || c["test.outputs"] != 1 || c["test.instructions"] != 3 || g["test.memory"] != 5 {
		t.Fatalf("bad stats %v %v", c, g)
	}
	var b bytes.Buffer
	if err = dumpStats(&b); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "test.instructions\t3\n") {
		t.Fatalf("got %s", b.String())
	}
}

func TestRunStatic(t *testing.T) {
	defer func(w *bufio.Writer, in cellList) { stdout, input = w, in }(stdout, input)
	var b bytes.Buffer
	stdout = bufio.NewWriter(&b)

	data := []struct {
		name string
		code string
		in   cellList
		halt vm.HaltCode
		out  string
		err  bool
	}{
		{"halt", "3,0,4,0,99", cellList{7}, vm.Halted, "7\n", false},
		{"input exhausted", "3,0,4,0,3,0,99", cellList{7}, vm.WaitInput, "7\n", false},
		{"no input", "3,0,99", nil, vm.WaitInput, "\n", false},
		{"fault", "4,0,50", nil, vm.FaultOpcode, "4\n", true},
	}
	for _, d := range data {
		b.Reset()
		input = d.in
		i, err := runStatic(mustParse(t, d.code), nil)
		stdout.Flush()
		if (err != nil) != d.err {
			t.Errorf("%s: unexpected error value: %v", d.name, err)
		}
		if i == nil || i.Halt() != d.halt {
			t.Errorf("%s: bad halt state", d.name)
			continue
		}
		if b.String() != d.out {
			t.Errorf("%s: got output %q, expected %q", d.name, b.String(), d.out)
		}
	}
}

func mustParse(t *testing.T, s string) vm.Image {
	img, err := vm.Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return img
}
