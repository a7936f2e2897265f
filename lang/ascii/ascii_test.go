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

package ascii_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/lang/ascii"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

func TestEncode(t *testing.T) {
	if c := ascii.Line("NOT A J"); !reflect.DeepEqual(c, []vm.Cell{'N', 'O', 'T', ' ', 'A', ' ', 'J', '\n'}) {
		t.Fatalf("got %v", c)
	}
	if c := ascii.Lines("A", "BC"); !reflect.DeepEqual(c, []vm.Cell{'A', '\n', 'B', 'C', '\n'}) {
		t.Fatalf("got %v", c)
	}
	if c := ascii.Encode(""); len(c) != 0 {
		t.Fatalf("got %v", c)
	}
}

func TestSplit(t *testing.T) {
	out := append(ascii.Line("Hull"), 19358688, -1, 'x')
	text, rest := ascii.Split(out)
	if text != "Hull\nx" || !reflect.DeepEqual(rest, []vm.Cell{19358688, -1}) {
		t.Fatalf("got %q, %v", text, rest)
	}
	if text, rest = ascii.Split(nil); text != "" || rest != nil {
		t.Fatalf("got %q, %v", text, rest)
	}
}

// upper-case echo: reads characters until a new line and outputs them upper
// cased. Outputs 1000 before halting on an empty line.
var echo = `
:loop	in c
	eq c #10 nl
	jit nl #eol
	lt c #'a' tmp
	jit tmp #out
	lt c #'{' tmp
	jif tmp #out
	add c #-32 c
:out	out c
	add len #1 len
	jif #0 #loop
:eol	out #10
	jif len #done
	add #0 #0 len
	jif #0 #loop
:done	out #1000
	halt
:c	.dat 0
:nl	.dat 0
:tmp	.dat 0
:len	.dat 0
`

func TestTerminal(t *testing.T) {
	img, err := asm.Assemble("echo", strings.NewReader(echo))
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	term := ascii.NewTerminal(strings.NewReader("hello\nWorld 42\n\n"), &out)
	i, err := vm.New(img, vm.IO(term))
	if err != nil {
		t.Fatal(err)
	}
	if h := i.Run(); h != vm.Halted {
		t.Fatalf("got %v: %s", h, i.HaltReason())
	}
	if err = term.Flush(); err != nil {
		t.Fatal(err)
	}
	if exp := "HELLO\nWORLD 42\n\n1000\n"; out.String() != exp {
		t.Fatalf("got %q, expected %q", out.String(), exp)
	}
	if term.Err() != nil || term.EOF() {
		t.Fatalf("bad terminal state %v %v", term.Err(), term.EOF())
	}
}

func TestTerminal_eof(t *testing.T) {
	img, _ := asm.Assemble("echo", strings.NewReader(echo))
	var out bytes.Buffer
	// no trailing new line
	term := ascii.NewTerminal(strings.NewReader("abc"), &out)
	i, _ := vm.New(img, vm.IO(term))
	if h := i.Run(); h != vm.WaitInput {
		t.Fatalf("got %v", h)
	}
	term.Flush()
	if out.String() != "ABC\n" || !term.EOF() || term.Err() != nil {
		t.Fatalf("got %q, eof: %v, err: %v", out.String(), term.EOF(), term.Err())
	}
	// stays at EOF
	if term.HasInput() {
		t.Fatal("input after EOF")
	}
}

type failRW struct{}

var errFail = errors.New("fail")

func (failRW) Read([]byte) (int, error)  { return 0, errFail }
func (failRW) Write([]byte) (int, error) { return 0, errFail }

func TestTerminal_errors(t *testing.T) {
	term := ascii.NewTerminal(failRW{}, &bytes.Buffer{})
	if term.HasInput() || errors.Cause(term.Err()) != errFail || term.EOF() {
		t.Fatalf("expected read error, got %v", term.Err())
	}
	term = ascii.NewTerminal(strings.NewReader(""), failRW{})
	term.WriteOutput('x')
	if err := term.Flush(); errors.Cause(err) != errFail || errors.Cause(term.Err()) != errFail {
		t.Fatalf("expected write error, got %v", err)
	}
	defer func() {
		if e := recover(); e != vm.ErrNoInput {
			t.Errorf("expected ErrNoInput panic, got %v", e)
		}
	}()
	term.ReadInput()
}

func TestTerminal_output(t *testing.T) {
	var out bytes.Buffer
	term := ascii.NewTerminal(strings.NewReader(""), &out)
	for _, v := range append(ascii.Encode(".#."), 42, 1234, '#', '\n', 5678) {
		term.WriteOutput(v)
	}
	term.Flush()
	if exp := ".#.*\n1234\n#\n5678\n"; out.String() != exp {
		t.Fatalf("got %q, expected %q", out.String(), exp)
	}
}
