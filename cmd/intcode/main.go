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
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/btcsuite/btclog"
	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/internal/iox"
	"github.com/db47h/intcode/lang/ascii"
	"github.com/db47h/intcode/sched"
	"github.com/db47h/intcode/vm"
	"github.com/kr/env"
	"github.com/pkg/errors"
)

// cellList is a comma separated list of values. It implements flag.Value.
type cellList []vm.Cell

func (l *cellList) String() string { return vm.Image(*l).String() }
func (l *cellList) Set(s string) error {
	img, err := vm.Parse(s)
	if err != nil {
		return err
	}
	*l = cellList(img)
	return nil
}
func (l *cellList) Get() interface{} { return *l }

var (
	memLimit = env.Int("INTCODE_MEMLIMIT", vm.DefaultMemLimit)
	maxSteps = env.Int("INTCODE_MAXSTEPS", sched.DefaultMaxSteps)
	logLevel = env.String("INTCODE_LOGLEVEL", "info")
)

var (
	debug     bool
	dump      bool
	stats     bool
	asmSrc    bool
	asciiMode bool
	disasm    bool
	trace     bool
	input     cellList
	chain     cellList
	loop      cellList
	keys      keyMap
	sig       int64
)

var stdout = bufio.NewWriter(os.Stdout)

func atExit(i *vm.Instance, err error) {
	stdout.Flush()
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "%+v\n", err)
	if i != nil {
		dumpVM("", i, os.Stderr)
	}
	os.Exit(1)
}

func load(name string) (vm.Image, error) {
	if !asmSrc {
		return vm.Load(name)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	return asm.Assemble(name, bufio.NewReader(f))
}

// haltError logs the final state of i and returns i.Err() if it did not halt
// normally.
func haltError(i *vm.Instance) error {
	h := i.Halt()
	log.Infof("%v @pc=%d, %d instructions", h, i.PC, i.InstructionCount())
	if h == vm.Halted {
		return nil
	}
	return i.Err()
}

func runStatic(img vm.Image, opts []vm.Option) (*vm.Instance, error) {
	p := &vm.Pipe{In: vm.NewQueue(input...), Out: vm.NewQueue()}
	i, err := vm.New(img, append(opts, vm.IO(withStats("vm.", p)))...)
	if err != nil {
		return nil, err
	}
	i.Run()
	recordStats("vm.", i)
	if _, err = iox.WriteList(stdout, ',', p.Out.Values()); err != nil {
		return i, errors.Wrap(err, "write failed")
	}
	stdout.WriteByte('\n')
	if i.Halt() == vm.WaitInput {
		log.Infof("input exhausted @pc=%d, %d instructions", i.PC, i.InstructionCount())
		return i, nil
	}
	return i, haltError(i)
}

func runASCII(img vm.Image, opts []vm.Option) (*vm.Instance, error) {
	term := ascii.NewTerminal(os.Stdin, os.Stdout)
	i, err := vm.New(img, append(opts, vm.IO(withStats("vm.", term)))...)
	if err != nil {
		return nil, err
	}
	i.Run()
	recordStats("vm.", i)
	if err = term.Flush(); err != nil {
		return i, err
	}
	if err = term.Err(); err != nil {
		return i, err
	}
	if i.Halt() == vm.WaitInput && term.EOF() {
		log.Infof("end of input")
		return i, nil
	}
	return i, haltError(i)
}

func runKeys(img vm.Image, opts []vm.Option) (*vm.Instance, error) {
	tearDown, err := setRawIO()
	if err != nil {
		log.Warnf("raw terminal IO not available: %v", err)
	} else {
		defer tearDown()
	}
	w, _ := consoleSize(1)
	ch := newKeyChannel(os.Stdin, os.Stdout, keys, w)
	i, err := vm.New(img, append(opts, vm.IO(withStats("vm.", ch)))...)
	if err != nil {
		return nil, err
	}
	i.Run()
	recordStats("vm.", i)
	os.Stdout.WriteString("\r\n")
	if err = ch.Err(); err != nil {
		return i, err
	}
	if i.Halt() == vm.WaitInput && ch.eof {
		return i, nil
	}
	return i, haltError(i)
}

func runChain(img vm.Image, phases []vm.Cell, feedback bool, opts []vm.Option) error {
	seeds := make([][]vm.Cell, len(phases))
	for k, p := range phases {
		seeds[k] = []vm.Cell{p}
	}
	seeds[0] = append(seeds[0], vm.Cell(sig))
	s, out, err := sched.Chain(img, seeds, feedback, opts...)
	if err != nil {
		return err
	}
	if err = s.SetOptions(sched.MaxSteps(int64(*maxSteps))); err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	err = s.Run(ctx)
	for _, n := range s.Nodes() {
		recordStats("node."+n.Name+".", n.M)
		if dump {
			dumpVM(n.Name, n.M, stdout)
		}
	}
	if err != nil {
		return err
	}
	v := out.Values()
	if len(v) == 0 {
		return errors.New("no output signal")
	}
	fmt.Fprintln(stdout, v[len(v)-1])
	return nil
}

func main() {
	var err error
	var i *vm.Instance

	// flush output, catch and log errors
	defer func() {
		if err == nil && dump && i != nil {
			err = dumpVM("", i, stdout)
		}
		if err == nil && stats {
			err = dumpStats(os.Stderr)
		}
		atExit(i, err)
	}()

	env.Parse()

	flag.Var(&input, "input", "comma separated list of input `values`")
	flag.BoolVar(&asmSrc, "asm", false, "program file is assembler source")
	flag.BoolVar(&asciiMode, "ascii", false, "interactive ASCII mode")
	flag.Var(&keys, "keys", "raw keyboard mode with key `mapping` (e.g. a=-1,s=0,d=1)")
	flag.Var(&chain, "chain", "run an amplifier chain with the given `phases`")
	flag.Var(&loop, "loop", "run an amplifier feedback loop with the given `phases`")
	flag.Int64Var(&sig, "signal", 0, "initial amplifier signal")
	flag.BoolVar(&disasm, "disasm", false, "print disassembly and exit")
	flag.BoolVar(&dump, "dump", false, "dump machine state and memory upon exit")
	flag.BoolVar(&stats, "stats", false, "print statistics upon exit")
	flag.IntVar(memLimit, "memlimit", *memLimit, "highest accessible memory `address` (env INTCODE_MEMLIMIT)")
	flag.IntVar(maxSteps, "maxsteps", *maxSteps, "chain/loop step budget, 0 for none (env INTCODE_MAXSTEPS)")
	flag.StringVar(logLevel, "loglevel", *logLevel, "log `level`: trace, debug, info, warn, error, critical, off (env INTCODE_LOGLEVEL)")
	flag.BoolVar(&trace, "trace", false, "trace instructions")
	flag.BoolVar(&debug, "debug", false, "enable debug diagnostics")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] program\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err = setupLogging(btclog.NewBackend(os.Stderr), strings.ToLower(*logLevel), trace); err != nil {
		return
	}

	img, err := load(flag.Arg(0))
	if err != nil {
		return
	}
	log.Debugf("loaded %s: %d cells", flag.Arg(0), len(img))

	if disasm {
		err = asm.DisassembleAll(img, 0, stdout)
		return
	}

	opts := []vm.Option{vm.MemLimit(*memLimit), vm.Trace(trace)}
	switch {
	case len(chain) > 0:
		err = runChain(img, chain, false, opts)
	case len(loop) > 0:
		err = runChain(img, loop, true, opts)
	case asciiMode:
		i, err = runASCII(img, opts)
	case len(keys) > 0:
		i, err = runKeys(img, opts)
	default:
		i, err = runStatic(img, opts)
	}
}
