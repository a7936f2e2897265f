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

package asm

import (
	"bytes"
	"io"
	"strconv"
	"text/scanner"
	"unicode"

	"github.com/db47h/intcode/vm"
)

const maxErrors = 10

// ErrAsm is the error type returned by Assemble. It holds up to 10 errors.
type ErrAsm []struct {
	Pos scanner.Position
	Msg string
}

func (e ErrAsm) Error() string {
	var b bytes.Buffer
	for i, err := range e {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(err.Pos.String())
		b.WriteString(": ")
		b.WriteString(err.Msg)
	}
	return b.String()
}

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch)
}

type labelSite struct {
	pos     scanner.Position
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

type parser struct {
	ops    *vm.OpTable
	i      []vm.Cell
	pc     int
	size   int
	s      scanner.Scanner
	labels map[string]*label
	consts map[string]labelSite
	locals map[string]int
	errs   ErrAsm

	// instruction being assembled
	op    *vm.Op
	opPC  int
	opArg int
}

func newParser(ops *vm.OpTable) *parser {
	return &parser{
		ops:    ops,
		labels: make(map[string]*label),
		consts: make(map[string]labelSite),
		locals: make(map[string]int),
	}
}

func (p *parser) error(pos scanner.Position, msg string) {
	if len(p.errs) >= maxErrors {
		return
	}
	if !pos.IsValid() {
		pos = p.s.Pos()
	}
	p.errs = append(p.errs, struct {
		Pos scanner.Position
		Msg string
	}{pos, msg})
}

func (p *parser) write(v vm.Cell) {
	for p.pc >= len(p.i) {
		p.i = append(p.i, make([]vm.Cell, 1024)...)
	}
	p.i[p.pc] = v
	p.pc++
	if p.pc > p.size {
		p.size = p.pc
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func localName(name string, n int) string {
	return name + "\u00b7" + strconv.Itoa(n)
}

func (p *parser) useLabel(name string, pos scanner.Position) {
	if l := len(name) - 1; l > 0 && (name[l] == '-' || name[l] == '+') && isDigits(name[:l]) {
		n := p.locals[name[:l]]
		if name[l] == '+' {
			n++
		} else if n == 0 {
			p.error(pos, "undefined local label "+name)
			return
		}
		name = localName(name[:l], n)
	}
	lbl := p.labels[name]
	if lbl == nil {
		lbl = &label{labelSite{pos, -1}, nil}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelSite{pos, p.pc})
}

func (p *parser) defineLabel(name string, pos scanner.Position) {
	if len(name) == 0 {
		p.error(pos, "empty label name")
		return
	}
	if isDigits(name) {
		p.locals[name]++
		name = localName(name, p.locals[name])
	}
	if cst, ok := p.consts[name]; ok {
		p.error(pos, "label redefinition: "+name+", previously defined as a constant here: "+cst.pos.String())
		return
	}
	if l, ok := p.labels[name]; ok {
		if l.address != -1 {
			p.error(pos, "label redefinition: "+name+", previous definition here: "+l.pos.String())
			return
		}
		l.address, l.pos = p.pc, pos
		return
	}
	p.labels[name] = &label{labelSite{pos, p.pc}, nil}
}

// number converts s to an integer value. s may be a Go integer literal, a
// character literal or a constant name.
func (p *parser) number(s string) (vm.Cell, bool) {
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return vm.Cell(n), true
	}
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		r, _, tail, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
		if err == nil && tail == "" {
			return vm.Cell(r), true
		}
	}
	if c, ok := p.consts[s]; ok {
		return vm.Cell(c.address), true
	}
	return 0, false
}

// value writes an integer, constant or label reference.
func (p *parser) value(s string, pos scanner.Position) {
	if v, ok := p.number(s); ok {
		p.write(v)
		return
	}
	if s == "" || s[0] == ':' || s[0] == '.' || s[0] == '#' || s[0] == '@' || s[0] == '\'' {
		p.error(pos, "invalid value: "+s)
		p.write(0)
		return
	}
	p.useLabel(s, pos)
	p.write(0)
}

var pow10 = [...]vm.Cell{100, 1000, 10000, 100000, 1000000, 10000000, 100000000, 1000000000, 10000000000}

// argument assembles the next argument of the current instruction.
func (p *parser) argument(s string, pos scanner.Position) {
	mode := vm.ModePosition
	switch s[0] {
	case '#':
		mode, s = vm.ModeImmediate, s[1:]
	case '@':
		mode, s = vm.ModeRelative, s[1:]
	}
	p.i[p.opPC] += vm.Cell(mode) * pow10[p.opArg]
	p.value(s, pos)
	p.opArg++
	if p.opArg == p.op.Params {
		p.op = nil
	}
}

// next returns the next token, skipping comments.
func (p *parser) next() (string, scanner.Position, bool) {
	for {
		tok := p.s.Scan()
		if tok == scanner.EOF {
			return "", p.s.Position, false
		}
		s := p.s.TokenText()
		if tok != scanner.Ident {
			p.error(p.s.Position, "unexpected character "+strconv.QuoteRune(tok))
			continue
		}
		if s != "(" {
			return s, p.s.Position, true
		}
		// skip comments
		for tok = p.s.Scan(); tok != scanner.EOF && (tok != scanner.Ident || p.s.TokenText() != ")"); tok = p.s.Scan() {
		}
	}
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) (vm.Image, error) {
	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.error(s.Position, msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for s, pos, ok := p.next(); ok && len(p.errs) < maxErrors; s, pos, ok = p.next() {
		if p.op != nil {
			if s[0] == ':' || s[0] == '.' || p.ops.ByName(s) != nil {
				p.error(pos, "missing arguments for "+p.op.Name+", got "+s)
				p.op = nil
			} else {
				p.argument(s, pos)
				continue
			}
		}
		switch {
		case s[0] == ':':
			p.defineLabel(s[1:], pos)
		case s[0] == '.':
			p.directive(s, pos)
		default:
			op := p.ops.ByName(s)
			if op == nil {
				p.error(pos, "unknown instruction "+s)
				continue
			}
			p.opPC, p.opArg = p.pc, 0
			p.write(op.Code)
			if op.Params > 0 {
				p.op = op
			}
		}
	}
	if p.op != nil {
		p.error(p.s.Pos(), "missing arguments for "+p.op.Name+" at end of input")
	}

	// resolve labels
	for n, l := range p.labels {
		if l.address == -1 {
			for _, u := range l.uses {
				p.error(u.pos, "undefined label "+n)
			}
			continue
		}
		for _, u := range l.uses {
			p.i[u.address] += vm.Cell(l.address)
		}
	}

	if len(p.errs) > 0 {
		return nil, p.errs
	}
	img := make(vm.Image, p.size)
	copy(img, p.i)
	return img, nil
}

func (p *parser) directive(s string, pos scanner.Position) {
	switch s {
	case ".org", ".dat", ".equ":
	default:
		p.error(pos, "unknown directive "+s)
		return
	}
	var cst string
	var cstPos scanner.Position
	if s == ".equ" {
		var ok bool
		cst, cstPos, ok = p.next()
		if !ok {
			p.error(cstPos, ".equ: unexpected end of input")
			return
		}
		if l, ok := p.labels[cst]; ok {
			p.error(cstPos, ".equ: redefinition of "+cst+", previously defined or used as a label here: "+l.pos.String())
			return
		}
	}
	arg, argPos, ok := p.next()
	if !ok {
		p.error(argPos, s+": unexpected end of input")
		return
	}
	switch s {
	case ".dat":
		p.value(arg, argPos)
	case ".org":
		v, ok := p.number(arg)
		if !ok || v < 0 {
			p.error(argPos, ".org: expected address, got "+arg)
			return
		}
		if v > vm.DefaultMemLimit {
			p.error(argPos, ".org: address "+arg+" beyond memory limit")
			return
		}
		p.pc = int(v)
	case ".equ":
		v, ok := p.number(arg)
		if !ok {
			p.error(argPos, ".equ: expected value, got "+arg)
			return
		}
		p.consts[cst] = labelSite{cstPos, int(v)}
	}
}
