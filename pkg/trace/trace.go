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
package trace

import (
	"errors"
	"fmt"
)

// ArgColumns is the fixed set of argument columns a step phase operates over.
// The layout (which index means what) is defined by the circuit package; this
// type only guarantees that all columns share one height.
type ArgColumns []*Column

// NewArgColumns constructs a zeroed column set with the given names, each of
// the given height.
func NewArgColumns(names []string, height uint) ArgColumns {
	columns := make(ArgColumns, len(names))
	//
	for i, name := range names {
		columns[i] = NewColumn(name, height)
	}
	//
	return columns
}

// Height determines the number of cycles this column set spans.  All columns
// have the same height.
func (p ArgColumns) Height() uint {
	if len(p) == 0 {
		return 0
	}
	//
	return p[0].Height()
}

// Column returns the column at the given layout index.
func (p ArgColumns) Column(index uint) *Column {
	return p[index]
}

// Clone makes a deep copy of every column, for example to compare the effect
// of replaying a phase.
func (p ArgColumns) Clone() ArgColumns {
	columns := make(ArgColumns, len(p))
	//
	for i, c := range p {
		columns[i] = c.Clone()
	}
	//
	return columns
}

// WellFormed checks that the column set is non-empty and rectangular,
// returning a descriptive error otherwise.
func (p ArgColumns) WellFormed() error {
	if len(p) == 0 {
		return errors.New("empty argument column set")
	}
	//
	height := p[0].Height()
	//
	for _, c := range p[1:] {
		if c.Height() != height {
			return fmt.Errorf("column %s has height %d, expected %d", c.Name(), c.Height(), height)
		}
	}
	//
	return nil
}
