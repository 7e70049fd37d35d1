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

// stepVerifyBytes implements the verify-bytes phase: a read-only check that
// each byte column is in range and that the four bytes recompose into the
// result column.
func stepVerifyBytes(bridge Bridge, steps, cycle uint, args trace.ArgColumns) (field.Element, error) {
	var (
		result   = args.Column(ColResult).Get(cycle)
		radix    = field.NewElement(256)
		composed field.Element
	)
	// Recompose from the most significant byte downwards.
	for i := 3; i >= 0; i-- {
		b := args.Column(uint(ColByte0 + i)).Get(cycle)
		//
		if field.Uint32(b) >= 256 {
			return field.Zero(),
				NewError(InternalFault, "byte column %d out of range at cycle %d: %s", i, cycle, b.String())
		}
		//
		composed.Mul(&composed, &radix)
		composed.Add(&composed, &b)
	}
	//
	if !composed.Equal(&result) {
		return field.Zero(),
			NewError(InternalFault, "byte decomposition invalid at cycle %d: %s != %s", cycle, composed.String(), result.String())
	}
	//
	return result, nil
}

// stepVerifyMem implements the verify-memory phase: a read-only check that
// the sorted access columns respect memory-consistency ordering, with the
// access value cross-checked against host-held state.
func stepVerifyMem(bridge Bridge, steps, cycle uint, args trace.ArgColumns) (field.Element, error) {
	var (
		addr  = args.Column(ColRamAddr).Get(cycle)
		value = args.Column(ColRamValue).Get(cycle)
		cyc   = args.Column(ColRamCycle).Get(cycle)
	)
	// Ordering relative to the previous access: addresses non-decreasing;
	// within an address run, cycles strictly increase and (memory being
	// read-only here) values are continuous.
	if cycle > 0 {
		var (
			prevAddr  = args.Column(ColRamAddr).Get(cycle - 1)
			prevValue = args.Column(ColRamValue).Get(cycle - 1)
			prevCyc   = args.Column(ColRamCycle).Get(cycle - 1)
		)
		//
		switch addr.Cmp(&prevAddr) {
		case -1:
			return field.Zero(),
				NewError(InternalFault, "access address decreases at cycle %d: %s < %s", cycle, addr.String(), prevAddr.String())
		case 0:
			if cyc.Cmp(&prevCyc) <= 0 {
				return field.Zero(),
					NewError(InternalFault, "access cycle not increasing at cycle %d: %s <= %s", cycle, cyc.String(), prevCyc.String())
			}
			//
			if !value.Equal(&prevValue) {
				return field.Zero(),
					NewError(InternalFault, "access value changes at cycle %d: %s != %s", cycle, value.String(), prevValue.String())
			}
		}
	}
	// Cross-check the value against the host's view of memory.
	hostValue, err := bridge.RamRead(addr, cyc)
	//
	if err != nil {
		return field.Zero(), err
	}
	//
	if !value.Equal(&hostValue) {
		return field.Zero(),
			NewError(InternalFault, "access value disagrees with host at cycle %d: %s != %s", cycle, value.String(), hostValue.String())
	}
	//
	return value, nil
}
