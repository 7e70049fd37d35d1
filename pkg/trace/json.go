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
	"encoding/json"

	"github.com/fasteater/risc0/pkg/field"
)

// FromBytes parses a trace expressed in JSON notation.  For example, {"PC":
// [0], "Insn": [1]} is a trace containing one row of data each for two columns
// "PC" and "Insn".  Values are reduced into the field.
func FromBytes(data []byte) ([]*Column, error) {
	var rawData map[string][]uint64
	// Attempt to unmarshall
	if err := json.Unmarshal(data, &rawData); err != nil {
		return nil, err
	}
	//
	columns := make([]*Column, 0, len(rawData))
	//
	for name, rawInts := range rawData {
		elements := make([]field.Element, len(rawInts))
		//
		for i, rawInt := range rawInts {
			elements[i] = field.NewElement(rawInt)
		}
		//
		columns = append(columns, NewColumnOf(name, elements))
	}
	// Done
	return columns, nil
}

// ToBytes writes a column set in the JSON notation accepted by FromBytes,
// using canonical numerical values.
func ToBytes(columns ArgColumns) ([]byte, error) {
	rawData := make(map[string][]uint64, len(columns))
	//
	for _, column := range columns {
		rawInts := make([]uint64, column.Height())
		//
		for i, element := range column.Data() {
			rawInts[i] = uint64(field.Uint32(element))
		}
		//
		rawData[column.Name()] = rawInts
	}
	//
	return json.Marshal(rawData)
}
