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
	"fmt"

	"github.com/fasteater/risc0/pkg/field"
	"github.com/fasteater/risc0/pkg/trace"
)

// NumConstraints is the number of per-cycle constraints aggregated by PolyFp,
// and hence the number of mix coefficients it requires.
const NumConstraints = 7

// PolyFp evaluates the aggregate constraint polynomial at the given cycle,
// linearly combining every per-cycle constraint with the supplied
// extension-field mix coefficients.  A trace accepted by the verify phases
// under an honest host evaluates to zero on every cycle.
//
// This is a pure function of its inputs: it never calls into host code and is
// total over valid inputs (cycle < steps, NumConstraints mix coefficients);
// it panics on invalid ones, which indicate a defect in the caller.
func PolyFp(cycle, steps uint, mix []field.Ext, args trace.ArgColumns) field.Ext {
	if cycle >= steps {
		panic(fmt.Sprintf("cycle %d out of range for trace of %d steps", cycle, steps))
	} else if len(mix) < NumConstraints {
		panic(fmt.Sprintf("%d mix coefficients given, need %d", len(mix), NumConstraints))
	}
	//
	var (
		result field.Ext
		tmp    field.Ext
	)
	//
	for i, c := range constraints(cycle, args) {
		tmp.MulBase(&mix[i], c)
		result.Add(&result, &tmp)
	}
	//
	return result
}

// constraints evaluates the individual per-cycle constraints over the base
// field.  These are, term for term, the relations the imperative phases
// enforce: byte recomposition, selector one-hotness and booleanity, the
// selector-gated ALU relations, and the accumulator recurrence.
func constraints(cycle uint, args trace.ArgColumns) [NumConstraints]field.Element {
	var (
		out     [NumConstraints]field.Element
		one     = field.One()
		radix   = field.NewElement(256)
		opA     = args.Column(ColOpA).Get(cycle)
		opB     = args.Column(ColOpB).Get(cycle)
		result  = args.Column(ColResult).Get(cycle)
		selAdd  = args.Column(ColSelAdd).Get(cycle)
		selSub  = args.Column(ColSelSub).Get(cycle)
		selMul  = args.Column(ColSelMul).Get(cycle)
		selHalt = args.Column(ColSelHalt).Get(cycle)
		tmp     field.Element
	)
	// C0: Result - sum of bytes scaled by 256^i
	var composed field.Element
	//
	for i := 3; i >= 0; i-- {
		b := args.Column(uint(ColByte0 + i)).Get(cycle)
		composed.Mul(&composed, &radix)
		composed.Add(&composed, &b)
	}
	//
	out[0].Sub(&result, &composed)
	// C1: selectors sum to one
	out[1].Add(&selAdd, &selSub)
	out[1].Add(&out[1], &selMul)
	out[1].Add(&out[1], &selHalt)
	out[1].Sub(&out[1], &one)
	// C2: SelAdd * (Result - (OpA + OpB))
	tmp.Add(&opA, &opB)
	tmp.Sub(&result, &tmp)
	out[2].Mul(&selAdd, &tmp)
	// C3: SelSub * (Result - (OpA - OpB))
	tmp.Sub(&opA, &opB)
	tmp.Sub(&result, &tmp)
	out[3].Mul(&selSub, &tmp)
	// C4: SelMul * (Result - OpA * OpB)
	tmp.Mul(&opA, &opB)
	tmp.Sub(&result, &tmp)
	out[4].Mul(&selMul, &tmp)
	// C5: booleanity of every selector, folded into one term
	for _, sel := range []field.Element{selAdd, selSub, selMul, selHalt} {
		tmp.Sub(&one, &sel)
		tmp.Mul(&tmp, &sel)
		out[5].Add(&out[5], &tmp)
	}
	// C6: Accum - prev * term, with prev defined as one on the first cycle
	var (
		addr  = args.Column(ColRamAddr).Get(cycle)
		value = args.Column(ColRamValue).Get(cycle)
		cyc   = args.Column(ColRamCycle).Get(cycle)
		accum = args.Column(ColAccum).Get(cycle)
		term  = accumTerm(args, cycle, addr, value, cyc)
		prev  = accumPrev(args, cycle)
	)
	//
	tmp.Mul(&prev, &term)
	out[6].Sub(&accum, &tmp)
	//
	return out
}
