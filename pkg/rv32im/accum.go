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

// stepComputeAccum implements the compute-accumulator phase.  The host is
// asked for this cycle's entry of the address-sorted access permutation; the
// tuple is committed alongside the new grand product value.
func stepComputeAccum(bridge Bridge, steps, cycle uint, args trace.ArgColumns) (field.Element, error) {
	// Pull the sorted access tuple for this cycle from the host.
	tuple, err := bridge.PlonkRead("ram", 3)
	//
	if err != nil {
		return field.Zero(), err
	}
	//
	var (
		addr  = tuple[0]
		value = tuple[1]
		cyc   = tuple[2]
		term  = accumTerm(args, cycle, addr, value, cyc)
		accum = accumPrev(args, cycle)
	)
	//
	accum.Mul(&accum, &term)
	// Commit
	args.Column(ColRamAddr).Set(cycle, addr)
	args.Column(ColRamValue).Set(cycle, value)
	args.Column(ColRamCycle).Set(cycle, cyc)
	args.Column(ColAccum).Set(cycle, accum)
	//
	return accum, nil
}

// stepVerifyAccum implements the verify-accumulator phase: a read-only check
// that the grand product recurrence holds at this cycle for the committed
// access tuple.
func stepVerifyAccum(bridge Bridge, steps, cycle uint, args trace.ArgColumns) (field.Element, error) {
	var (
		addr     = args.Column(ColRamAddr).Get(cycle)
		value    = args.Column(ColRamValue).Get(cycle)
		cyc      = args.Column(ColRamCycle).Get(cycle)
		accum    = args.Column(ColAccum).Get(cycle)
		term     = accumTerm(args, cycle, addr, value, cyc)
		expected = accumPrev(args, cycle)
	)
	//
	expected.Mul(&expected, &term)
	//
	if !accum.Equal(&expected) {
		return field.Zero(),
			NewError(InternalFault, "accumulator mismatch at cycle %d: %s != %s", cycle, accum.String(), expected.String())
	}
	//
	return accum, nil
}

// accumTerm combines an access tuple into a single accumulator term using the
// mix randomness of the given cycle: mix0 + mix1·addr + mix1²·value +
// mix1³·cycle.
func accumTerm(args trace.ArgColumns, cycle uint, addr, value, cyc field.Element) field.Element {
	var (
		mix0 = args.Column(ColMix0).Get(cycle)
		mix1 = args.Column(ColMix1).Get(cycle)
		term = mix0
		pow  = mix1
		tmp  field.Element
	)
	//
	tmp.Mul(&pow, &addr)
	term.Add(&term, &tmp)
	//
	pow.Mul(&pow, &mix1)
	tmp.Mul(&pow, &value)
	term.Add(&term, &tmp)
	//
	pow.Mul(&pow, &mix1)
	tmp.Mul(&pow, &cyc)
	term.Add(&term, &tmp)
	//
	return term
}

// accumPrev returns the accumulator of the preceding cycle, which is defined
// as one for the first cycle.
func accumPrev(args trace.ArgColumns, cycle uint) field.Element {
	if cycle == 0 {
		return field.One()
	}
	//
	return args.Column(ColAccum).Get(cycle - 1)
}
