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

// Package sched drives several Intcode machines cooperatively.
//
// Machines are connected through vm.Queue values: a machine reads its input
// from one queue and writes its output to the input queue of another machine.
// The scheduler runs in passes. On each pass, every machine that can make
// progress is stepped until it stops running, either because it halted or
// because it is blocked waiting for input. A run ends when a whole pass makes
// no progress.
//
// Everything happens on the calling goroutine: machines are never stepped
// concurrently.
package sched

import (
	"context"
	"strconv"
	"strings"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// Sentinel errors returned by Run.
var (
	ErrDeadlock = errors.New("deadlock")
	ErrBudget   = errors.New("step budget exhausted")
)

// DefaultMaxSteps is the default step budget of a Scheduler.
const DefaultMaxSteps = 100000000

// FaultError is returned by Run when a machine faulted.
type FaultError struct {
	Node string
	Err  *vm.HaltError
}

func (e *FaultError) Error() string {
	return e.Node + ": " + e.Err.Error()
}

// Cause returns the machine's *vm.HaltError.
func (e *FaultError) Cause() error { return e.Err }

// Node is a machine registered with a Scheduler.
type Node struct {
	Name string
	M    *vm.Instance
	In   *vm.Queue // input queue, nil if the machine never reads input
}

// blocked returns true if the node cannot make progress.
func (n *Node) blocked() bool {
	switch n.M.Halt() {
	case vm.Halted:
		return true
	case vm.WaitInput:
		return n.In == nil || n.In.Len() == 0
	}
	return false
}

// Scheduler runs a fixed set of machines until global quiescence.
type Scheduler struct {
	nodes    []*Node
	maxSteps int64
	steps    int64
}

// Option interface
type Option func(*Scheduler) error

// MaxSteps sets the maximum number of instructions executed by all machines
// during a single call to Run. 0 means no limit. The default is
// DefaultMaxSteps.
func MaxSteps(n int64) Option {
	return func(s *Scheduler) error {
		if n < 0 {
			return errors.Errorf("invalid step budget %d", n)
		}
		s.maxSteps = n
		return nil
	}
}

// SetOptions sets the provided options.
func (s *Scheduler) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return err
		}
	}
	return nil
}

// New returns a new Scheduler with no nodes.
func New(opts ...Option) (*Scheduler, error) {
	s := &Scheduler{maxSteps: DefaultMaxSteps}
	if err := s.SetOptions(opts...); err != nil {
		return nil, err
	}
	return s, nil
}

// Add registers machine m under the given name. in is the queue m reads its
// input from; it is used to tell whether a blocked machine can be resumed.
// The machine's channel must be set up by the caller, usually as a vm.Pipe
// reading from in.
func (s *Scheduler) Add(name string, m *vm.Instance, in *vm.Queue) *Node {
	n := &Node{name, m, in}
	s.nodes = append(s.nodes, n)
	return n
}

// Nodes returns the registered nodes in the order they were added.
func (s *Scheduler) Nodes() []*Node {
	return s.nodes
}

// Steps returns the number of instructions executed during the last call to
// Run.
func (s *Scheduler) Steps() int64 {
	return s.steps
}

// Run steps machines in passes until no machine can make progress.
//
// It returns nil if all machines halted normally. If some machines are still
// blocked waiting for input, the returned error's cause is ErrDeadlock. Run can
// be called again after pushing more input to the queues of blocked machines.
//
// Run stops as soon as a machine faults and returns a *FaultError. It also
// stops with ErrBudget when the step budget is exhausted, or with the
// context's error if ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	s.steps = 0
	for pass := 1; ; pass++ {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "pass %d", pass)
		}
		progress := false
		for _, n := range s.nodes {
			if err := s.checkFault(n); err != nil {
				return err
			}
			if n.blocked() {
				continue
			}
			for {
				if s.maxSteps > 0 && s.steps >= s.maxSteps {
					return errors.Wrapf(ErrBudget, "%d steps", s.steps)
				}
				if err := n.M.Step(); err != nil {
					return errors.Wrap(err, n.Name)
				}
				s.steps++
				progress = true
				if n.M.Halt() != vm.Running {
					break
				}
			}
			log.Debugf("%s: %v @pc=%d", n.Name, n.M.Halt(), n.M.PC)
			if err := s.checkFault(n); err != nil {
				return err
			}
		}
		if !progress {
			return s.quiescence(pass)
		}
	}
}

func (s *Scheduler) checkFault(n *Node) error {
	if h := n.M.Halt(); h.IsFault() {
		he := n.M.Err().(*vm.HaltError)
		log.Debugf("%s: fault: %v", n.Name, he)
		return &FaultError{n.Name, he}
	}
	return nil
}

func (s *Scheduler) quiescence(pass int) error {
	var blocked []string
	for _, n := range s.nodes {
		if n.M.Halt() != vm.Halted {
			blocked = append(blocked, n.Name)
		}
	}
	log.Debugf("quiescence after %d passes, %d steps, %d blocked", pass, s.steps, len(blocked))
	if len(blocked) > 0 {
		return errors.Wrapf(ErrDeadlock, "blocked: %s", strings.Join(blocked, ", "))
	}
	return nil
}

// Chain builds a chain of len(seeds) machines running img, where each machine
// writes its output to the input queue of the next one. The input queue of
// machine k is initialized with seeds[k]. Machines are named after their
// position: "0", "1", ...
//
// If loop is true, the last machine writes to the input queue of the first
// one. Otherwise it writes to a separate queue. The returned queue is the one
// receiving the output of the last machine.
//
// The given vm options are applied to every machine. Any IO option is
// overridden.
func Chain(img vm.Image, seeds [][]vm.Cell, loop bool, opts ...vm.Option) (*Scheduler, *vm.Queue, error) {
	if len(seeds) == 0 {
		return nil, nil, errors.New("empty chain")
	}
	s, err := New()
	if err != nil {
		return nil, nil, err
	}
	qs := make([]*vm.Queue, len(seeds)+1)
	for k := range seeds {
		qs[k] = vm.NewQueue(seeds[k]...)
	}
	if loop {
		qs[len(seeds)] = qs[0]
	} else {
		qs[len(seeds)] = vm.NewQueue()
	}
	for k := range seeds {
		m, err := vm.New(img, append(opts[:len(opts):len(opts)], vm.IO(&vm.Pipe{In: qs[k], Out: qs[k+1]}))...)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "machine %d", k)
		}
		s.Add(strconv.Itoa(k), m, qs[k])
	}
	return s, qs[len(seeds)], nil
}
