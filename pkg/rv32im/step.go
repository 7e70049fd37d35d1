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

// Phase identifies one of the five step kinds driven per cycle over a trace.
type Phase uint8

const (
	// PhaseExec advances the emulated instruction semantics for one cycle.
	PhaseExec Phase = iota
	// PhaseComputeAccum derives the running accumulator values for one cycle.
	PhaseComputeAccum
	// PhaseVerifyAccum checks the accumulator recurrence for one cycle.
	PhaseVerifyAccum
	// PhaseVerifyBytes checks the byte decomposition for one cycle.
	PhaseVerifyBytes
	// PhaseVerifyMem checks memory-consistency ordering for one cycle.
	PhaseVerifyMem
)

func (p Phase) String() string {
	switch p {
	case PhaseExec:
		return "exec"
	case PhaseComputeAccum:
		return "compute_accum"
	case PhaseVerifyAccum:
		return "verify_accum"
	case PhaseVerifyBytes:
		return "verify_bytes"
	case PhaseVerifyMem:
		return "verify_mem"
	default:
		return "unknown"
	}
}

// Phases lists the five step kinds in their natural evaluation order.
var Phases = []Phase{PhaseExec, PhaseComputeAccum, PhaseVerifyAccum, PhaseVerifyBytes, PhaseVerifyMem}

// Step dispatches a single phase for the given cycle.  Each phase is a
// deterministic function of (steps, cycle, args, host responses); running one
// twice with identical host responses yields identical column mutations and
// status code.  On failure, no column is mutated beyond what was committed
// before the failing callback (phases commit their writes only after all
// callbacks of the cycle succeed).
func Step(phase Phase, callback Callback, steps, cycle uint, args trace.ArgColumns) (field.Element, error) {
	switch phase {
	case PhaseExec:
		return StepExec(callback, steps, cycle, args)
	case PhaseComputeAccum:
		return StepComputeAccum(callback, steps, cycle, args)
	case PhaseVerifyAccum:
		return StepVerifyAccum(callback, steps, cycle, args)
	case PhaseVerifyBytes:
		return StepVerifyBytes(callback, steps, cycle, args)
	case PhaseVerifyMem:
		return StepVerifyMem(callback, steps, cycle, args)
	default:
		return field.Zero(), NewError(InternalFault, "unknown step phase %d", phase)
	}
}

// StepExec advances the emulated datapath for the given cycle, resolving the
// instruction word and operands through the host, and writes the derived
// values into the argument columns.  It returns StatusRunning, or
// StatusHalted once the program has halted.
func StepExec(callback Callback, steps, cycle uint, args trace.ArgColumns) (field.Element, error) {
	if err := validStep(steps, cycle, args); err != nil {
		return field.Zero(), err
	}
	//
	return stepExec(NewBridge(callback), steps, cycle, args)
}

// StepComputeAccum derives the running accumulator value for the given cycle
// from the sorted memory access tuple resolved by the host, and returns it.
func StepComputeAccum(callback Callback, steps, cycle uint, args trace.ArgColumns) (field.Element, error) {
	if err := validStep(steps, cycle, args); err != nil {
		return field.Zero(), err
	}
	//
	return stepComputeAccum(NewBridge(callback), steps, cycle, args)
}

// StepVerifyAccum checks that the accumulator recurrence holds at the given
// cycle.  It mutates no trace state and returns the accumulator value.
func StepVerifyAccum(callback Callback, steps, cycle uint, args trace.ArgColumns) (field.Element, error) {
	if err := validStep(steps, cycle, args); err != nil {
		return field.Zero(), err
	}
	//
	return stepVerifyAccum(NewBridge(callback), steps, cycle, args)
}

// StepVerifyBytes checks that the byte decomposition columns are in range and
// recompose to the result column at the given cycle.  It mutates no trace
// state and returns the result value.
func StepVerifyBytes(callback Callback, steps, cycle uint, args trace.ArgColumns) (field.Element, error) {
	if err := validStep(steps, cycle, args); err != nil {
		return field.Zero(), err
	}
	//
	return stepVerifyBytes(NewBridge(callback), steps, cycle, args)
}

// StepVerifyMem checks that the sorted memory access columns respect the
// memory-consistency ordering at the given cycle, cross-checking the value
// against host state.  It mutates no trace state and returns the access
// value.
func StepVerifyMem(callback Callback, steps, cycle uint, args trace.ArgColumns) (field.Element, error) {
	if err := validStep(steps, cycle, args); err != nil {
		return field.Zero(), err
	}
	//
	return stepVerifyMem(NewBridge(callback), steps, cycle, args)
}

// validStep enforces the invariants shared by every phase: the cycle lies
// within the trace, and the column set has the expected shape.
func validStep(steps, cycle uint, args trace.ArgColumns) error {
	if cycle >= steps {
		return NewError(InternalFault, "cycle %d out of range for trace of %d steps", cycle, steps)
	} else if len(args) != NumColumns {
		return NewError(InternalFault, "argument column set has width %d, expected %d", len(args), NumColumns)
	} else if args.Height() != steps {
		return NewError(InternalFault, "argument columns have height %d, expected %d", args.Height(), steps)
	}
	//
	return nil
}
