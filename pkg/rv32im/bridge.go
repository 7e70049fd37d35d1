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

import "github.com/fasteater/risc0/pkg/field"

// Callback resolves a named host operation.  The host fills outs (whose
// length declares the expected output count) and reports success; returning
// false declines the request.  Any host state lives in the closure, so no
// separate context handle is needed.
//
// Operation names used by the circuit are "ramRead", "ramWrite",
// "plonkRead", "plonkWrite" and "log"; extra carries the lookup table name
// for the plonk operations and the message for log, and is empty otherwise.
type Callback func(name string, extra string, args []field.Element, outs []field.Element) bool

// Bridge gives circuit code access to externally-owned state through a closed
// set of operations, each performing exactly one synchronous host invocation.
// A declined request is converted into a fatal HostFault which aborts the
// enclosing step; the bridge performs no buffering, caching or retries.
type Bridge struct {
	callback Callback
}

// NewBridge wraps a raw host callback.
func NewBridge(callback Callback) Bridge {
	return Bridge{callback}
}

func (p Bridge) invoke(name, extra string, args []field.Element, nOuts uint) ([]field.Element, error) {
	outs := make([]field.Element, nOuts)
	//
	if !p.callback(name, extra, args, outs) {
		return nil, NewError(HostFault, "host callback failure (op %s)", name)
	}
	//
	return outs, nil
}

// RamRead asks the host for the word held at the given address, as observed
// at the given cycle.
func (p Bridge) RamRead(addr, cycle field.Element) (field.Element, error) {
	outs, err := p.invoke("ramRead", "", []field.Element{addr, cycle}, 1)
	//
	if err != nil {
		return field.Zero(), err
	}
	//
	return outs[0], nil
}

// RamWrite informs the host of a word written at the given address and cycle.
func (p Bridge) RamWrite(addr, value, cycle field.Element) error {
	_, err := p.invoke("ramWrite", "", []field.Element{addr, value, cycle}, 0)
	//
	return err
}

// PlonkWrite appends a tuple to the named host-side lookup table, feeding the
// permutation argument for that table.
func (p Bridge) PlonkWrite(table string, values ...field.Element) error {
	_, err := p.invoke("plonkWrite", table, values, 0)
	//
	return err
}

// PlonkRead pulls the next (host-sorted) tuple of the given width from the
// named lookup table.
func (p Bridge) PlonkRead(table string, width uint) ([]field.Element, error) {
	return p.invoke("plonkRead", table, nil, width)
}

// Log reports a diagnostic message, along with any values, to the host.
func (p Bridge) Log(message string, values ...field.Element) error {
	_, err := p.invoke("log", message, values, 0)
	//
	return err
}
