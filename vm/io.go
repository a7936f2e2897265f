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

// ErrNoInput is the panic value used by Queue.Pop when the queue is empty.
var ErrNoInput = errors.New("no input available")

// Channel is the interface used by IN and OUT instructions.
//
// The VM does not do any buffering: every IN instruction first calls HasInput
// and, if it returns true, ReadInput. If HasInput returns false, the machine
// stops with the WaitInput halt code. ReadInput is never called unless
// HasInput returned true. Every OUT instruction calls WriteOutput.
type Channel interface {
	HasInput() bool
	ReadInput() Cell
	WriteOutput(v Cell)
}

// ChannelFuncs is an adapter to use ordinary functions as a Channel. A nil Has
// function means that input is always available if Read is not nil. A nil
// Write function discards output.
type ChannelFuncs struct {
	Has   func() bool
	Read  func() Cell
	Write func(v Cell)
}

// HasInput implements Channel.
func (f ChannelFuncs) HasInput() bool {
	if f.Has == nil {
		return f.Read != nil
	}
	return f.Has()
}

// ReadInput implements Channel.
func (f ChannelFuncs) ReadInput() Cell {
	return f.Read()
}

// WriteOutput implements Channel.
func (f ChannelFuncs) WriteOutput(v Cell) {
	if f.Write != nil {
		f.Write(v)
	}
}

type nullChannel struct{}

func (nullChannel) HasInput() bool     { return false }
func (nullChannel) ReadInput() Cell    { panic(ErrNoInput) }
func (nullChannel) WriteOutput(_ Cell) {}

// Queue is an unbounded FIFO queue of cells. The zero value is an empty queue
// ready to use.
type Queue struct {
	buf  []Cell
	head int
}

// NewQueue returns a new queue with the given initial values.
func NewQueue(v ...Cell) *Queue {
	q := new(Queue)
	q.Push(v...)
	return q
}

// Len returns the number of values in the queue.
func (q *Queue) Len() int {
	return len(q.buf) - q.head
}

// Push appends the given values to the queue.
func (q *Queue) Push(v ...Cell) {
	if q.head > 0 && q.head == len(q.buf) {
		q.buf, q.head = q.buf[:0], 0
	}
	q.buf = append(q.buf, v...)
}

// Pop removes and returns the value at the front of the queue. It panics with
// ErrNoInput if the queue is empty.
func (q *Queue) Pop() Cell {
	if q.Len() == 0 {
		panic(ErrNoInput)
	}
	v := q.buf[q.head]
	q.head++
	if q.head >= 1024 && 2*q.head >= len(q.buf) {
		n := copy(q.buf, q.buf[q.head:])
		q.buf, q.head = q.buf[:n], 0
	}
	return v
}

// Values returns a copy of the values in the queue without removing them.
func (q *Queue) Values() []Cell {
	v := make([]Cell, q.Len())
	copy(v, q.buf[q.head:])
	return v
}

// Drain removes and returns all values in the queue.
func (q *Queue) Drain() []Cell {
	v := make([]Cell, q.Len())
	copy(v, q.buf[q.head:])
	q.buf, q.head = q.buf[:0], 0
	return v
}

// HasInput implements Channel.
func (q *Queue) HasInput() bool { return q.Len() > 0 }

// ReadInput implements Channel.
func (q *Queue) ReadInput() Cell { return q.Pop() }

// WriteOutput implements Channel.
func (q *Queue) WriteOutput(v Cell) { q.Push(v) }

// Pipe is a Channel that reads input from In and writes output to Out. Either
// queue may be nil: a nil In never has input, output to a nil Out is
// discarded.
//
// Machines are connected by sharing queues: the Out queue of one machine is
// the In queue of the next.
type Pipe struct {
	In, Out *Queue
}

// HasInput implements Channel.
func (p *Pipe) HasInput() bool {
	return p.In != nil && p.In.Len() > 0
}

// ReadInput implements Channel.
func (p *Pipe) ReadInput() Cell {
	if p.In == nil {
		panic(ErrNoInput)
	}
	return p.In.Pop()
}

// WriteOutput implements Channel.
func (p *Pipe) WriteOutput(v Cell) {
	if p.Out != nil {
		p.Out.Push(v)
	}
}
