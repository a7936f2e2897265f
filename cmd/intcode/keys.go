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
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/db47h/intcode/internal/iox"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// keyMap maps key presses to input values. It implements flag.Value.
type keyMap map[byte]vm.Cell

func (k keyMap) String() string {
	l := make([]string, 0, len(k))
	for c, v := range k {
		l = append(l, string(c)+"="+strconv.FormatInt(int64(v), 10))
	}
	sort.Strings(l)
	return strings.Join(l, ",")
}

func (k *keyMap) Set(s string) error {
	m := make(keyMap)
	for _, kv := range strings.Split(s, ",") {
		p := strings.IndexByte(kv, '=')
		if p != 1 {
			return errors.Errorf("invalid key mapping %q, expected k=value", kv)
		}
		v, err := strconv.ParseInt(kv[2:], 10, 64)
		if err != nil {
			return errors.Wrapf(err, "invalid key mapping %q", kv)
		}
		m[kv[0]] = vm.Cell(v)
	}
	*k = m
	return nil
}

func (k *keyMap) Get() interface{} { return *k }

// keyChannel is a vm.Channel that reads single key presses and translates them
// to input values. Unmapped keys are ignored. CTRL-D ends the input.
//
// Output values are written as decimal numbers separated by spaces, wrapping
// lines at width columns.
type keyChannel struct {
	r       *bufio.Reader
	keys    keyMap
	w       *iox.ErrWriter
	width   int
	col     int
	pending vm.Cell
	has     bool
	eof     bool
	err     error
}

func newKeyChannel(r io.Reader, w io.Writer, keys keyMap, width int) *keyChannel {
	return &keyChannel{
		r:     bufio.NewReader(r),
		keys:  keys,
		w:     iox.NewErrWriter(w),
		width: width,
	}
}

func (k *keyChannel) HasInput() bool {
	if k.has {
		return true
	}
	for !k.eof && k.err == nil {
		b, err := k.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				k.eof = true
			} else {
				k.err = errors.Wrap(err, "read failed")
			}
			break
		}
		if b == 4 {
			k.eof = true
			break
		}
		if v, ok := k.keys[b]; ok {
			k.pending, k.has = v, true
			break
		}
	}
	return k.has
}

func (k *keyChannel) ReadInput() vm.Cell {
	if !k.has {
		panic(vm.ErrNoInput)
	}
	k.has = false
	return k.pending
}

func (k *keyChannel) WriteOutput(v vm.Cell) {
	s := strconv.FormatInt(int64(v), 10)
	if k.width > 0 && k.col > 0 && k.col+len(s) >= k.width {
		io.WriteString(k.w, "\r\n")
		k.col = 0
	}
	io.WriteString(k.w, s)
	io.WriteString(k.w, " ")
	k.col += len(s) + 1
}

// Err returns the first read or write error.
func (k *keyChannel) Err() error {
	if k.err != nil {
		return k.err
	}
	return k.w.Err
}
