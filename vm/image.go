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
	"bufio"
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"github.com/db47h/intcode/internal/iox"
	"github.com/pkg/errors"
)

// Image is a memory image, usually loaded from program text.
type Image []Cell

// ParseError is returned by Parse when the program text contains an invalid
// integer literal.
type ParseError struct {
	Index  int    // token index
	Offset int    // byte offset of the token in the program text
	Token  string // offending token, trimmed
	Err    error  // underlying error
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("parse error at offset %d: empty value #%d", e.Offset, e.Index)
	}
	return fmt.Sprintf("parse error at offset %d: value #%d %q: %v", e.Offset, e.Index, e.Token, e.Err)
}

// Cause returns the underlying error. See github.com/pkg/errors.Cause.
func (e *ParseError) Cause() error { return e.Err }

var errEmpty = errors.New("empty value")

// Parse parses program text: decimal integers separated by commas. White space
// around values, including new lines, is ignored. Empty or white space only
// text yields an empty image.
func Parse(s string) (Image, error) {
	if strings.TrimSpace(s) == "" {
		return Image{}, nil
	}
	img := make(Image, 0, strings.Count(s, ",")+1)
	off := 0
	for n := 0; ; n++ {
		end := strings.IndexByte(s[off:], ',')
		tok := s[off:]
		if end >= 0 {
			tok = s[off : off+end]
		}
		t := strings.TrimSpace(tok)
		if t == "" {
			return nil, &ParseError{n, off, t, errEmpty}
		}
		v, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return nil, &ParseError{n, off + strings.Index(tok, t), t, err}
		}
		img = append(img, Cell(v))
		if end < 0 {
			return img, nil
		}
		off += end + 1
	}
}

// Read reads program text from r and parses it.
func Read(r io.Reader) (Image, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	return Parse(string(b))
}

// Load loads a program from file fileName.
func Load(fileName string) (Image, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	img, err := Read(bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrapf(err, "Load %s", fileName)
	}
	return img, nil
}

// Save writes img to file fileName in program text format.
func Save(fileName string, img Image) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	w := bufio.NewWriter(f)
	defer func() {
		if e := w.Flush(); err == nil && e != nil {
			err = errors.Wrap(e, "write failed")
		}
		if e := f.Close(); err == nil && e != nil {
			err = errors.Wrap(e, "close failed")
		}
		// delete file on error
		if err != nil {
			os.Remove(fileName)
		}
	}()
	if _, err = img.WriteTo(w); err != nil {
		return errors.Wrap(err, "write failed")
	}
	_, err = w.WriteString("\n")
	return errors.Wrap(err, "write failed")
}

// WriteTo writes img to w in program text format, without a trailing new line.
func (img Image) WriteTo(w io.Writer) (int64, error) {
	return iox.WriteList(w, ',', img)
}

func (img Image) String() string {
	var b bytes.Buffer
	img.WriteTo(&b)
	return b.String()
}
