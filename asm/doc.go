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

// Package asm provides utility functions to assemble and disassemble Intcode
// programs.
//
// Supported assembler mnemonics:
//
//	Instructions take the number of arguments given in the "args" column. "dst"
//	arguments are addresses and cannot use the immediate mode.
//
//	opcode	asm	args	description
//	------	---	----	------------------------------------------------------------
//	1	add	a b dst	store a+b at dst
//	2	mul	a b dst	store a*b at dst
//	3	in	dst	read a value from input and store it at dst
//	4	out	a	write a to output
//	5	jit	a b	jump to b if a is not zero
//	6	jif	a b	jump to b if a is zero
//	7	lt	a b dst	store 1 at dst if a < b, 0 otherwise
//	8	eq	a b dst	store 1 at dst if a == b, 0 otherwise
//	9	rel	a	add a to the relative base
//	99	halt		stop the machine
//
// Addressing modes:
//
// Arguments are in position mode by default: the argument is the address of
// the value. A '#' prefix selects immediate mode and a '@' prefix relative mode:
//
//	add 10 #1 @-1	( mem[rb-1] = mem[10] + 1, compiles as 21001,10,1,-1 )
//
// The mode digits of the instruction word are computed by the assembler.
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The body of the
// comment must be separated from the enclosing parentheses by a space:
//
//	( this is a valid comment )
//	( this is a
//	  rather long
//	  multiline comment )
//
// Literals and label/const identifiers:
//
// Input is split at white space (space, tab or new line) into tokens. Where a
// value is expected, the parser does the following:
//
//   - If a token can be converted to a Go integer (see strconv.ParseInt), it will
//     be converted to an integer literal.
//   - If it is a Go character literal between single quotes, it will be converted to
//     the corresponding integer literal.
//   - If a token is the name of a defined constant, it will be replaced by the
//     constant's value.
//   - Otherwise the token is a reference to a label.
//
// Where an instruction is expected, the token must be a mnemonic, a label
// definition or a directive. Raw values can only be compiled with ".dat".
//
// Labels:
//
// Labels are defined by prefixing them with a colon (:) and can be used as
// argument values in any addressing mode (without the ':' prefix):
//
//	:loop	in buf
//		out buf
//		jit #1 #loop	( jump to loop )
//	:buf	.dat 0
//
// Local labels work in the same way as in the GNU assembler. They are defined
// as a colon followed by a sequence of digits (i.e. :007, :0, :42) and can be
// defined multiple times. References must be suffixed with either a '-'
// (backward reference to the last definition of this label), or a '+' (forward
// reference to the next definition of this label):
//
//	:1	jit #1 #1+	( jumps to the second :1 )
//	:1	jif #0 #1-	( jumps to the second :1, again )
//
// Assembler directives:
//
//	.equ <IDENTIFIER> <value>
//
// defines a constant value. The value must be an integer value, named constant
// or character literal.
//
//	.org <value>
//
// Will place the next instruction at the address specified by the given integer
// literal or named constant.
//
//	.dat <value>
//
// Will compile the specified integer value, named constant, character literal
// or label address as-is. This is primarily used for data storage:
//
//	:table	.dat 65
//		.dat 'B'
//
// The cells at addresses table+0 and table+1 will contain 65 and 66 respectively.
package asm
