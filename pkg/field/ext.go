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
	"fmt"
	"strings"
)

// ExtDegree is the number of base field coefficients in an extension field
// element.
const ExtDegree = 5

// Beta is the constant of the extension modulus x⁵ − Beta.  Reduction
// substitutes x⁵ = Beta.
const Beta uint64 = 2

// Ext is an element of the degree-five extension of the base field, stored as
// the coefficients of a polynomial of degree at most four.  The extension
// provides the extra "room" needed by randomised constraint checks, where
// soundness error must be small relative to the evaluation domain.
type Ext [ExtDegree]Element

// NewExt constructs an extension element from its five coefficients.
func NewExt(a0, a1, a2, a3, a4 uint64) Ext {
	return Ext{NewElement(a0), NewElement(a1), NewElement(a2), NewElement(a3), NewElement(a4)}
}

// Set z = x.
func (z *Ext) Set(x *Ext) *Ext {
	*z = *x
	//
	return z
}

// SetZero sets z to the additive identity.
func (z *Ext) SetZero() *Ext {
	*z = Ext{}
	//
	return z
}

// SetOne sets z to the multiplicative identity.
func (z *Ext) SetOne() *Ext {
	*z = Ext{}
	z[0].SetOne()
	//
	return z
}

// SetBase embeds a base field element as the constant coefficient.
func (z *Ext) SetBase(x Element) *Ext {
	*z = Ext{}
	z[0] = x
	//
	return z
}

// Add z = x + y, coefficient-wise.
func (z *Ext) Add(x, y *Ext) *Ext {
	for i := 0; i < ExtDegree; i++ {
		z[i].Add(&x[i], &y[i])
	}
	//
	return z
}

// Sub z = x - y, coefficient-wise.
func (z *Ext) Sub(x, y *Ext) *Ext {
	for i := 0; i < ExtDegree; i++ {
		z[i].Sub(&x[i], &y[i])
	}
	//
	return z
}

// Neg z = -x.
func (z *Ext) Neg(x *Ext) *Ext {
	for i := 0; i < ExtDegree; i++ {
		z[i].Neg(&x[i])
	}
	//
	return z
}

// MulBase z = x scaled by the base field element y.
func (z *Ext) MulBase(x *Ext, y Element) *Ext {
	for i := 0; i < ExtDegree; i++ {
		z[i].Mul(&x[i], &y)
	}
	//
	return z
}

// Mul z = x * y.  The degree-eight product polynomial is folded back into
// degree four by substituting x⁵ = Beta: terms five and above each collapse
// onto the coefficient five places below, scaled by Beta.  Aliasing of z with
// x or y is permitted.
func (z *Ext) Mul(x, y *Ext) *Ext {
	var (
		conv [2*ExtDegree - 1]Element
		tmp  Element
		beta = NewElement(Beta)
	)
	// Convolve the two coefficient sequences.
	for i := 0; i < ExtDegree; i++ {
		for j := 0; j < ExtDegree; j++ {
			tmp.Mul(&x[i], &y[j])
			conv[i+j].Add(&conv[i+j], &tmp)
		}
	}
	// Fold conv[5..8] into conv[0..3].  conv[4] is already reduced.
	for i := 0; i < ExtDegree-1; i++ {
		tmp.Mul(&conv[i+ExtDegree], &beta)
		conv[i].Add(&conv[i], &tmp)
	}
	//
	copy(z[:], conv[:ExtDegree])
	//
	return z
}

// Equal reports whether z and x have identical coefficients.
func (z *Ext) Equal(x *Ext) bool {
	for i := 0; i < ExtDegree; i++ {
		if !z[i].Equal(&x[i]) {
			return false
		}
	}
	//
	return true
}

// IsZero reports whether every coefficient of z is zero.
func (z *Ext) IsZero() bool {
	for i := 0; i < ExtDegree; i++ {
		if !z[i].IsZero() {
			return false
		}
	}
	//
	return true
}

func (z *Ext) String() string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	//
	for i := 0; i < ExtDegree; i++ {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(z[i].String())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}

// Ensure Ext prints sensibly inside formatted errors.
var _ fmt.Stringer = &Ext{}
