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

import "github.com/pkg/errors"

// DefaultMemLimit is the default memory ceiling: the highest address an
// Instance may access.
const DefaultMemLimit = 100000000

// ErrAddress is the cause of all errors returned by Memory when accessing an
// invalid address.
var ErrAddress = errors.New("invalid address")

// Memory is the growable memory of an Instance. Cells that have never been
// written read as 0. Any access to an address beyond the current length grows
// the memory up to and including that address, unless the address is above
// the limit.
type Memory struct {
	cells []Cell
	limit int
}

// NewMemory returns a new Memory initialized with a copy of img. limit is the
// highest addressable cell; a limit <= 0 means DefaultMemLimit.
func NewMemory(img []Cell, limit int) (*Memory, error) {
	if limit <= 0 {
		limit = DefaultMemLimit
	}
	if len(img) > limit+1 {
		return nil, errors.Errorf("image size %d exceeds memory limit %d", len(img), limit)
	}
	m := &Memory{
		cells: make([]Cell, len(img)),
		limit: limit,
	}
	copy(m.cells, img)
	return m, nil
}

// Len returns the current memory size in cells.
func (m *Memory) Len() int { return len(m.cells) }

// Limit returns the highest addressable cell.
func (m *Memory) Limit() int { return m.limit }

// Snapshot returns a copy of the memory contents.
func (m *Memory) Snapshot() []Cell {
	s := make([]Cell, len(m.cells))
	copy(s, m.cells)
	return s
}

// Reserve makes sure that addr is addressable, growing the memory with zero
// cells if needed.
func (m *Memory) Reserve(addr Cell) error {
	if addr < 0 {
		return errors.Wrapf(ErrAddress, "negative address %d", addr)
	}
	if addr < Cell(len(m.cells)) {
		return nil
	}
	if addr > Cell(m.limit) {
		return errors.Wrapf(ErrAddress, "address %d beyond memory limit %d", addr, m.limit)
	}
	n := int(addr) + 1
	if n <= cap(m.cells) {
		l := len(m.cells)
		m.cells = m.cells[:n]
		for k := l; k < n; k++ {
			m.cells[k] = 0
		}
		return nil
	}
	m.cells = append(m.cells, make([]Cell, n-len(m.cells))...)
	return nil
}

// Fetch returns the value at address addr.
func (m *Memory) Fetch(addr Cell) (Cell, error) {
	if err := m.Reserve(addr); err != nil {
		return 0, err
	}
	return m.cells[addr], nil
}

// Store sets the value at address addr to v.
func (m *Memory) Store(addr, v Cell) error {
	if err := m.Reserve(addr); err != nil {
		return err
	}
	m.cells[addr] = v
	return nil
}
