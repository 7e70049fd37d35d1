// Copyright RISC Zero, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package rv32im

import (
	"github.com/fasteater/risc0/pkg/field"
	"github.com/fasteater/risc0/pkg/trace"
)

// stepExec implements the execute phase.  All host callbacks are performed
// before any column is written, so a failing callback leaves the cycle's
// columns untouched.
func stepExec(bridge Bridge, steps, cycle uint, args trace.ArgColumns) (field.Element, error) {
	var (
		zero      field.Element
		cycleElem = field.NewElement(uint64(cycle))
		pc        = args.Column(ColPC).Get(cycle)
	)
	// Fetch the instruction word at the program counter.
	insn, err := bridge.RamRead(pc, cycleElem)
	//
	if err != nil {
		return zero, err
	}
	// Decode: low byte is the operation, operand addresses pack above it.
	var (
		word  = field.Uint32(insn)
		op    = word & 0xff
		addrA = field.NewElement(uint64((word >> 8) & 0xfff))
		addrB = field.NewElement(uint64((word >> 20) & 0xfff))
	)
	// Resolve both operands, halting or not, to keep the callback sequence
	// independent of decoded state.
	opA, err := bridge.RamRead(addrA, cycleElem)
	//
	if err != nil {
		return zero, err
	}
	//
	opB, err := bridge.RamRead(addrB, cycleElem)
	//
	if err != nil {
		return zero, err
	}
	//
	var result field.Element
	//
	switch op {
	case OpHalt:
		// result stays zero
	case OpAdd:
		result.Add(&opA, &opB)
	case OpSub:
		result.Sub(&opA, &opB)
	case OpMul:
		result.Mul(&opA, &opB)
	default:
		return zero, NewError(InternalFault, "illegal opcode %d at pc %s (cycle %d)", op, pc.String(), cycle)
	}
	// Decompose the result into little-endian bytes.  Canonical values fit 31
	// bits, so four bytes always suffice.
	var (
		value = field.Uint32(result)
		bytes [4]field.Element
	)
	//
	for i := range bytes {
		bytes[i] = field.NewElement(uint64((value >> (8 * uint(i))) & 0xff))
	}
	// Feed the permutation arguments: the memory access performed by the
	// fetch, and the byte-range lookups for the decomposition.
	if err := bridge.PlonkWrite("ram", pc, insn, cycleElem); err != nil {
		return zero, err
	}
	//
	if err := bridge.PlonkWrite("bytes", bytes[0], bytes[1], bytes[2], bytes[3]); err != nil {
		return zero, err
	}
	//
	status := StatusRunning
	//
	if op == OpHalt {
		status = StatusHalted
		//
		if err := bridge.Log("halted at pc %s", pc); err != nil {
			return zero, err
		}
	}
	// Commit the derived columns for this cycle.
	args.Column(ColInsn).Set(cycle, insn)
	args.Column(ColOpA).Set(cycle, opA)
	args.Column(ColOpB).Set(cycle, opB)
	args.Column(ColResult).Set(cycle, result)
	//
	for i, b := range bytes {
		args.Column(uint(ColByte0 + i)).Set(cycle, b)
	}
	//
	args.Column(ColSelAdd).Set(cycle, selector(op == OpAdd))
	args.Column(ColSelSub).Set(cycle, selector(op == OpSub))
	args.Column(ColSelMul).Set(cycle, selector(op == OpMul))
	args.Column(ColSelHalt).Set(cycle, selector(op == OpHalt))
	// Chain the program counter into the next cycle: advance by one word, or
	// hold once halted.
	if cycle+1 < steps {
		next := pc
		//
		if op != OpHalt {
			four := field.NewElement(4)
			next.Add(&pc, &four)
		}
		//
		args.Column(ColPC).Set(cycle+1, next)
	}
	//
	return status, nil
}

// selector maps a decoded condition onto a one-hot column value.
func selector(set bool) field.Element {
	if set {
		return field.One()
	}
	//
	return field.Zero()
}
