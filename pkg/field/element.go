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
package field

import (
	"math/big"

	"github.com/consensys/gnark-crypto/field/babybear"
)

// Element of the Baby Bear prime field, over which all circuit values are
// drawn.  The underlying representation (including reduction into canonical
// form) is provided by gnark-crypto.
type Element = babybear.Element

// Prime is the field modulus, 15·2²⁷ + 1.
const Prime uint64 = 2013265921

// NewElement constructs a field element from a given uint64, reducing as
// necessary.
func NewElement(val uint64) Element {
	var element Element
	//
	return *element.SetUint64(val)
}

// Zero constructs a field element representing 0.
func Zero() Element {
	var element Element
	//
	return element
}

// One constructs a field element representing 1.
func One() Element {
	var element Element
	//
	return *element.SetOne()
}

// Modulus returns the order of the field as a big integer.
func Modulus() *big.Int {
	return babybear.Modulus()
}

// Uint32 returns the canonical numerical value of x, which always fits in 31
// bits.
func Uint32(x Element) uint32 {
	return uint32(x.Uint64())
}
