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
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

func TestQueue(t *testing.T) {
	var q vm.Queue
	if q.HasInput() || q.Len() != 0 {
		t.Fatal("zero queue not empty")
	}
	for n := vm.Cell(0); n < 3000; n++ {
		q.Push(n)
	}
	for n := vm.Cell(0); n < 3000; n++ {
		if v := q.Pop(); v != n {
			t.Fatalf("got %d, expected %d", v, n)
		}
	}
	q.Push(1, 2, 3)
	if !reflect.DeepEqual(q.Values(), []vm.Cell{1, 2, 3}) {
		t.Fatalf("got %v", q.Values())
	}
	q.Values()[0] = 42
	if q.Values()[0] != 1 {
		t.Fatal("Values does not return a copy")
	}
	if v := q.ReadInput(); v != 1 {
		t.Fatalf("got %d", v)
	}
	q.WriteOutput(4)
	if d := q.Drain(); !reflect.DeepEqual(d, []vm.Cell{2, 3, 4}) || q.Len() != 0 {
		t.Fatalf("got %v", d)
	}
	defer func() {
		if e := recover(); e != vm.ErrNoInput {
			t.Errorf("expected ErrNoInput panic, got %v", e)
		}
	}()
	q.Pop()
}

// interleaved pushes and pops must keep FIFO order across buffer compaction.
func TestQueue_interleaved(t *testing.T) {
	q := vm.NewQueue()
	next, want := vm.Cell(0), vm.Cell(0)
	for k := 0; k < 5000; k++ {
		q.Push(next, next+1)
		next += 2
		if v := q.Pop(); v != want {
			t.Fatalf("got %d, expected %d", v, want)
		}
		want++
	}
	if q.Len() != 5000 {
		t.Fatalf("bad length %d", q.Len())
	}
	// values taken before buffer compaction are not affected by it
	v := q.Values()
	for k := 0; k < 2000; k++ {
		q.Pop()
		q.Push(-1)
	}
	if v[0] != 5000 || v[4999] != 9999 {
		t.Fatalf("got %d..%d", v[0], v[4999])
	}
}

func TestPipe(t *testing.T) {
	p := &vm.Pipe{}
	if p.HasInput() {
		t.Fatal("nil In has input")
	}
	p.WriteOutput(1) // discarded
	p.In, p.Out = vm.NewQueue(5), vm.NewQueue()
	if !p.HasInput() || p.ReadInput() != 5 || p.HasInput() {
		t.Fatal("bad input")
	}
	p.WriteOutput(6)
	if !reflect.DeepEqual(p.Out.Values(), []vm.Cell{6}) {
		t.Fatalf("got %v", p.Out.Values())
	}
}

func TestChannelFuncs(t *testing.T) {
	var out []vm.Cell
	n := vm.Cell(0)
	ch := vm.ChannelFuncs{
		Read:  func() vm.Cell { n++; return n },
		Write: func(v vm.Cell) { out = append(out, v) },
	}
	// echo three values, then halt.
	i, err := vm.New(parse("3,0,4,0,3,0,4,0,3,0,4,0,99"), vm.IO(ch))
	if err != nil {
		t.Fatal(err)
	}
	if h := i.Run(); h != vm.Halted || !reflect.DeepEqual(out, []vm.Cell{1, 2, 3}) {
		t.Fatalf("got %v, %v", h, out)
	}

	if (vm.ChannelFuncs{}).HasInput() {
		t.Fatal("empty ChannelFuncs has input")
	}
	// nil channel: never any input
	i, _ = vm.New(parse("104,1,3,0,99"), vm.IO(nil))
	if h := i.Run(); h != vm.WaitInput || i.PC != 2 {
		t.Fatalf("got %v @%d", h, i.PC)
	}
}

func TestParse(t *testing.T) {
	data := []struct {
		in    string
		want  vm.Image
		index int
		token string
	}{
		{"1,2,3", vm.Image{1, 2, 3}, -1, ""},
		{" 1, -2 ,\n3\n", vm.Image{1, -2, 3}, -1, ""},
		{"", vm.Image{}, -1, ""},
		{" \n\t", vm.Image{}, -1, ""},
		{"9223372036854775807", vm.Image{9223372036854775807}, -1, ""},
		{"1,,2", nil, 1, ""},
		{"1,2,", nil, 2, ""},
		{"1, x", nil, 1, "x"},
		{"1,2,3.5", nil, 2, "3.5"},
		{"99999999999999999999", nil, 0, "99999999999999999999"},
	}
	for _, d := range data {
		img, err := vm.Parse(d.in)
		if d.index < 0 {
			if err != nil || !reflect.DeepEqual(img, d.want) {
				t.Errorf("%q: got %v, %v", d.in, img, err)
			}
			continue
		}
		pe, ok := err.(*vm.ParseError)
		if !ok {
			t.Errorf("%q: expected *ParseError, got %v", d.in, err)
			continue
		}
		if pe.Index != d.index || pe.Token != d.token || !strings.HasPrefix(d.in[pe.Offset:], d.token) {
			t.Errorf("%q: bad error %v", d.in, pe)
		}
		if errors.Cause(err) == nil {
			t.Errorf("%q: nil cause", d.in)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prog.txt")
	img := parse("109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99")
	if err := vm.Save(fn, img); err != nil {
		t.Fatal(err)
	}
	got, err := vm.Load(fn)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, img) {
		t.Fatalf("got %v", got)
	}
	if _, err = vm.Load(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error")
	}
}
