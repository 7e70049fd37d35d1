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

// Layout of the argument column set.  Execute populates the datapath columns
// and the next row's program counter; Compute-Accumulator populates the
// sorted-access and accumulator columns; the mix columns are randomness
// populated by the driver before any accumulator phase runs.
const (
	// ColPC holds the program counter for each cycle.
	ColPC = iota
	// ColInsn holds the instruction word fetched at each cycle.
	ColInsn
	// ColOpA / ColOpB hold the two operand values.
	ColOpA
	ColOpB
	// ColResult holds the ALU result.
	ColResult
	// ColByte0..3 hold the little-endian byte decomposition of the result.
	ColByte0
	ColByte1
	ColByte2
	ColByte3
	// Selector columns form a one-hot encoding of the decoded opcode.
	ColSelAdd
	ColSelSub
	ColSelMul
	ColSelHalt
	// Sorted memory access tuple (address, value, cycle), as resolved by the
	// host for the permutation argument.
	ColRamAddr
	ColRamValue
	ColRamCycle
	// Mix columns carry the randomness combining the access tuple into one
	// accumulator term.
	ColMix0
	ColMix1
	// ColAccum holds the running grand product of accumulator terms.
	ColAccum
	// NumColumns is the fixed width of the argument column set.
	NumColumns
)

// ColumnNames maps layout indices to the names used in trace files.
var ColumnNames = [NumColumns]string{
	"PC", "Insn", "OpA", "OpB", "Result",
	"Byte0", "Byte1", "Byte2", "Byte3",
	"SelAdd", "SelSub", "SelMul", "SelHalt",
	"RamAddr", "RamValue", "RamCycle",
	"Mix0", "Mix1", "Accum",
}

// Instruction encoding: the low byte selects the operation, with the two
// operand addresses packed into the bits above.
const (
	OpHalt uint32 = iota
	OpAdd
	OpSub
	OpMul
)

// Status codes returned by the execute phase.
var (
	// StatusHalted is returned once the program has halted.
	StatusHalted = field.Zero()
	// StatusRunning is returned whilst execution continues.
	StatusRunning = field.One()
)

// NewTrace constructs a zeroed argument column set spanning the given number
// of cycles.
func NewTrace(steps uint) trace.ArgColumns {
	return trace.NewArgColumns(ColumnNames[:], steps)
}

// TraceOf assembles an argument column set from named columns, for example as
// parsed from a trace file.  Columns are matched by name; missing columns are
// zeroed, unknown columns rejected.
func TraceOf(columns []*trace.Column, steps uint) (trace.ArgColumns, error) {
	var (
		args  = NewTrace(steps)
		index = make(map[string]uint, NumColumns)
	)
	//
	for i, name := range ColumnNames {
		index[name] = uint(i)
	}
	//
	for _, column := range columns {
		i, ok := index[column.Name()]
		//
		if !ok {
			return nil, fmt.Errorf("unknown column %s", column.Name())
		} else if column.Height() != steps {
			return nil, fmt.Errorf("column %s has height %d, expected %d", column.Name(), column.Height(), steps)
		}
		//
		copy(args[i].Data(), column.Data())
	}
	//
	return args, nil
}
