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

// The intcode command line tool runs Intcode programs.
//
// Usage:
//
//	intcode [flags] program
//
//	-ascii
//		  interactive ASCII mode
//	-asm
//		  program file is assembler source
//	-chain phases
//		  run an amplifier chain with the given phases
//	-debug
//		  enable debug diagnostics
//	-disasm
//		  print disassembly and exit
//	-dump
//		  dump machine state and memory upon exit
//	-input values
//		  comma separated list of input values
//	-keys mapping
//		  raw keyboard mode with key mapping (e.g. a=-1,s=0,d=1)
//	-loglevel level
//		  log level: trace, debug, info, warn, error, critical, off (env INTCODE_LOGLEVEL) (default "info")
//	-loop phases
//		  run an amplifier feedback loop with the given phases
//	-maxsteps int
//		  chain/loop step budget, 0 for none (env INTCODE_MAXSTEPS) (default 100000000)
//	-memlimit address
//		  highest accessible memory address (env INTCODE_MEMLIMIT) (default 100000000)
//	-signal int
//		  initial amplifier signal
//	-stats
//		  print statistics upon exit
//	-trace
//		  trace instructions
//
// By default, the program is run with the values given with -input and its
// output is printed as a comma separated list. Running out of input is not an
// error: the final state is logged and the tool exits normally.
//
// -ascii: the program reads lines from stdin and writes text to stdout. Output
// values outside of the ASCII range are printed as decimal numbers.
//
// -keys: the terminal is switched to raw mode and each key press is translated
// to an input value according to the mapping. Unmapped keys are ignored and
// CTRL-D ends the input. Output values are printed as they are produced.
//
// -chain, -loop: run one machine per phase value. Each machine first reads its
// phase, the first one then reads the value given with -signal. With -chain,
// the output of each machine is fed to the next and the output of the last
// one is printed. With -loop, the last machine feeds the first one and the
// final signal is printed once all machines have halted.
//
// -dump: the machine state is printed on exit, followed by the full memory in
// program text format.
//
// -stats: instruction, input and output counters, memory sizes and halt codes
// are printed to stderr on exit.
//
// -debug: errors are printed with a full stacktrace, followed by a dump of the
// machine state.
//
// Faulted programs and load errors exit with status 1.
package main
