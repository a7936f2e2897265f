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

package iox

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

type failWriter struct{ n int }

func (w *failWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, io.ErrClosedPipe
	}
	w.n--
	return len(p), nil
}

func TestErrWriter(t *testing.T) {
	ew := NewErrWriter(&failWriter{1})
	if _, err := ew.Write([]byte("ok")); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if _, err := ew.Write([]byte("ko")); errors.Cause(err) != io.ErrClosedPipe {
		t.Fatalf("expected ErrClosedPipe, got %v", err)
	}
	if n, err := ew.Write([]byte("ko")); n != 0 || errors.Cause(err) != io.ErrClosedPipe {
		t.Fatalf("error not sticky: %d, %v", n, err)
	}
	if NewErrWriter(ew) != ew {
		t.Fatal("ErrWriter wrapped twice")
	}
}

func TestWriteList(t *testing.T) {
	var b bytes.Buffer
	n, err := WriteList(&b, ',', []int64{1, -2, 30})
	if err != nil {
		t.Fatal(err)
	}
	if b.String() != "1,-2,30" || n != int64(b.Len()) {
		t.Fatalf("got %q (%d bytes)", b.String(), n)
	}

	// long lists are flushed in chunks
	b.Reset()
	l := make([]int64, 1000)
	for i := range l {
		l[i] = int64(i)
	}
	if _, err = WriteList(&b, ' ', l); err != nil {
		t.Fatal(err)
	}
	f := strings.Fields(b.String())
	if len(f) != 1000 || f[999] != "999" {
		t.Fatalf("bad output: %d fields", len(f))
	}

	b.Reset()
	if _, err = WriteList[int64](&b, ',', nil); err != nil || b.Len() != 0 {
		t.Fatalf("empty list: %q, %v", b.String(), err)
	}
}
