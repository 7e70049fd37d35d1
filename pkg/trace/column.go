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
	"fmt"

	"github.com/fasteater/risc0/pkg/field"
)

// Column is a cycle-indexed data lane of the execution trace, holding exactly
// one field element per cycle.  Columns are owned by whoever drives the
// engine; step phases only borrow them for the duration of a single call.
type Column struct {
	// Holds the name of this column.
	name string
	// Holds the raw data making up this column.
	data []field.Element
}

// NewColumn constructs a zeroed column of the given name and height.
func NewColumn(name string, height uint) *Column {
	return &Column{name, make([]field.Element, height)}
}

// NewColumnOf constructs a column backed by the given data.  The column takes
// ownership of the slice.
func NewColumnOf(name string, data []field.Element) *Column {
	return &Column{name, data}
}

// Name returns the name of the given column.
func (p *Column) Name() string {
	return p.name
}

// Height determines the height of this column (i.e. the number of cycles it
// spans).
func (p *Column) Height() uint {
	return uint(len(p.data))
}

// Get the value at a given row in this column.  Rows are bounds checked; an
// out-of-bounds access indicates a defect in the calling phase (which has
// already validated its cycle against the trace length) and hence panics.
func (p *Column) Get(row uint) field.Element {
	if row >= uint(len(p.data)) {
		panic(fmt.Sprintf("column %s access out-of-bounds (row %d of %d)", p.name, row, len(p.data)))
	}
	//
	return p.data[row]
}

// Set the value at a given row in this column.  Rows are bounds checked, as
// for Get.
func (p *Column) Set(row uint, val field.Element) {
	if row >= uint(len(p.data)) {
		panic(fmt.Sprintf("column %s access out-of-bounds (row %d of %d)", p.name, row, len(p.data)))
	}
	//
	p.data[row] = val
}

// Data returns the backing data of this column.
func (p *Column) Data() []field.Element {
	return p.data
}

// Clone makes a deep copy of this column.
func (p *Column) Clone() *Column {
	data := make([]field.Element, len(p.data))
	copy(data, p.data)
	//
	return &Column{p.name, data}
}
