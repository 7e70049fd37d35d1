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

import "fmt"

// Kind distinguishes the classes of failure a step phase can surface.
type Kind uint8

const (
	// HostFault indicates the host declined a callback request.  This is
	// always fatal to the enclosing step and never retried.
	HostFault Kind = iota
	// InternalFault indicates a violated engine invariant, such as a cycle
	// index outside the trace, or a verification check which does not hold.
	InternalFault
)

func (k Kind) String() string {
	switch k {
	case HostFault:
		return "host fault"
	case InternalFault:
		return "internal fault"
	default:
		return "unknown fault"
	}
}

// Error is the structured failure surfaced by every step entry point.  The
// message is read through Message rather than a raw field, keeping the shape
// of the original boundary (structured error + message accessor) whilst
// leaving the message lifetime to the garbage collector.
type Error struct {
	kind Kind
	msg  string
}

// NewError constructs an error of the given kind with a formatted message.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{kind, fmt.Sprintf(format, args...)}
}

// Kind returns the class of this failure.
func (p *Error) Kind() Kind {
	return p.kind
}

// Message returns the human-readable message attached to this failure.
func (p *Error) Message() string {
	return p.msg
}

// Error implements the standard error interface.
func (p *Error) Error() string {
	return p.msg
}

// Is allows errors.Is matching against the exported sentinels, which compare
// by kind alone.
func (p *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return t.kind == p.kind
	}
	//
	return false
}

// Sentinels for errors.Is checks against the two failure classes.
var (
	// ErrHostFault matches any error arising from a declined host callback.
	ErrHostFault = &Error{HostFault, "host callback declined"}
	// ErrInternalFault matches any engine invariant violation.
	ErrInternalFault = &Error{InternalFault, "engine invariant violated"}
)
