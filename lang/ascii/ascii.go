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

// Package ascii provides utility functions and types to run Intcode programs
// that communicate in ASCII: input lines are sent as one value per character,
// terminated by a new line, and text output is a sequence of character codes.
// Values outside of the ASCII range are typically used by such programs to
// report a final result.
package ascii

import (
	"bufio"
	"io"
	"strconv"

	"github.com/db47h/intcode/internal/iox"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// MaxASCII is the highest value considered as ASCII text.
const MaxASCII = 127

// Encode returns the bytes of s as cells.
func Encode(s string) []vm.Cell {
	c := make([]vm.Cell, len(s))
	for i := 0; i < len(s); i++ {
		c[i] = vm.Cell(s[i])
	}
	return c
}

// Line is like Encode but appends a new line to s.
func Line(s string) []vm.Cell {
	return append(Encode(s), '\n')
}

// Lines encodes each string in lines with Line and concatenates the result.
func Lines(lines ...string) []vm.Cell {
	var c []vm.Cell
	for _, l := range lines {
		c = append(c, Line(l)...)
	}
	return c
}

// Split separates ASCII text from other values in program output. Values in
// the range [0, MaxASCII] are returned as text, other values are returned in
// rest, in order.
func Split(out []vm.Cell) (text string, rest []vm.Cell) {
	b := make([]byte, 0, len(out))
	for _, v := range out {
		if v >= 0 && v <= MaxASCII {
			b = append(b, byte(v))
		} else {
			rest = append(rest, v)
		}
	}
	return string(b), rest
}

// Terminal is a vm.Channel that reads input lines from an io.Reader and writes
// output to an io.Writer.
//
// Input is read one line at a time, only when the machine asks for input and
// all previous input has been consumed. Lines missing a trailing new line are
// completed with one. Output values in the ASCII range are written as bytes,
// others are written as decimal numbers on a line of their own.
//
// Output is buffered and flushed before reading a new line. Call Flush when
// the machine stops.
type Terminal struct {
	r   *bufio.Reader
	w   *bufio.Writer
	ew  *iox.ErrWriter
	buf []vm.Cell
	eof bool
	err error
	col int
}

// NewTerminal returns a new Terminal reading from r and writing to w.
func NewTerminal(r io.Reader, w io.Writer) *Terminal {
	ew := iox.NewErrWriter(w)
	return &Terminal{
		r:  bufio.NewReader(r),
		w:  bufio.NewWriter(ew),
		ew: ew,
	}
}

// HasInput implements vm.Channel.
func (t *Terminal) HasInput() bool {
	if len(t.buf) > 0 {
		return true
	}
	if t.eof || t.err != nil {
		return false
	}
	t.Flush()
	line, err := t.r.ReadString('\n')
	if len(line) > 0 {
		if line[len(line)-1] != '\n' {
			line += "\n"
		}
		t.buf = Encode(line)
	}
	if err != nil {
		if err == io.EOF {
			t.eof = true
		} else {
			t.err = errors.Wrap(err, "read failed")
		}
	}
	return len(t.buf) > 0
}

// ReadInput implements vm.Channel.
func (t *Terminal) ReadInput() vm.Cell {
	if len(t.buf) == 0 {
		panic(vm.ErrNoInput)
	}
	v := t.buf[0]
	t.buf = t.buf[1:]
	return v
}

// WriteOutput implements vm.Channel.
func (t *Terminal) WriteOutput(v vm.Cell) {
	if v >= 0 && v <= MaxASCII {
		t.w.WriteByte(byte(v))
		if v == '\n' {
			t.col = 0
		} else {
			t.col++
		}
		return
	}
	if t.col > 0 {
		t.w.WriteByte('\n')
	}
	t.w.WriteString(strconv.FormatInt(int64(v), 10))
	t.w.WriteByte('\n')
	t.col = 0
}

// Flush writes any buffered output to the underlying io.Writer.
func (t *Terminal) Flush() error {
	t.w.Flush()
	return t.ew.Err
}

// EOF returns true if the end of input has been reached.
func (t *Terminal) EOF() bool {
	return t.eof && len(t.buf) == 0
}

// Err returns the first read or write error encountered, if any. Reaching the
// end of input is not an error.
func (t *Terminal) Err() error {
	if t.err != nil {
		return t.err
	}
	return t.ew.Err
}
