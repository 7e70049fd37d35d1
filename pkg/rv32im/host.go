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
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/fasteater/risc0/pkg/field"
)

// ImageHost is a reference host environment backed by a flat RAM image.  It
// resolves ramRead against the image and keeps one FIFO queue per plonk
// table, so a driver can replay execute over every cycle, sort the access
// queue, and then feed the accumulator phases.  Real proving hosts own a
// paged memory subsystem and bytecode cache instead; this one exists for the
// reference driver and for tests.
type ImageHost struct {
	// The memory image, keyed by canonical address.
	image map[uint32]uint32
	// Pending tuples for each plonk table.
	queues map[string][][]field.Element
}

// NewImageHost constructs a host over the given memory image.  The image is
// used directly, not copied.
func NewImageHost(image map[uint32]uint32) *ImageHost {
	if image == nil {
		image = make(map[uint32]uint32)
	}
	//
	return &ImageHost{image, make(map[string][][]field.Element)}
}

// Callback exposes this host through the raw callback boundary.
func (p *ImageHost) Callback() Callback {
	return func(name, extra string, args, outs []field.Element) bool {
		switch name {
		case "ramRead":
			return p.ramRead(args, outs)
		case "ramWrite":
			return p.ramWrite(args)
		case "plonkWrite":
			return p.plonkWrite(extra, args)
		case "plonkRead":
			return p.plonkRead(extra, outs)
		case "log":
			return p.log(extra, args)
		default:
			log.Debugf("host declining unknown operation %s", name)
			return false
		}
	}
}

// SortTable sorts the pending queue of the given table by (first, last)
// component, i.e. by address then cycle for the "ram" table.  Drivers call
// this between the execute pass and the accumulator passes, mirroring the
// host-side preflight sort of the access log.
func (p *ImageHost) SortTable(table string) {
	queue := p.queues[table]
	//
	sort.SliceStable(queue, func(i, j int) bool {
		var (
			li, lj = queue[i], queue[j]
			ai, aj = field.Uint32(li[0]), field.Uint32(lj[0])
		)
		//
		if ai != aj {
			return ai < aj
		}
		// Tie-break on the trailing (cycle) component.
		return field.Uint32(li[len(li)-1]) < field.Uint32(lj[len(lj)-1])
	})
}

// Pending returns the number of tuples queued for the given table.
func (p *ImageHost) Pending(table string) uint {
	return uint(len(p.queues[table]))
}

func (p *ImageHost) ramRead(args, outs []field.Element) bool {
	if len(args) < 1 || len(outs) != 1 {
		return false
	}
	//
	outs[0] = field.NewElement(uint64(p.image[field.Uint32(args[0])]))
	//
	return true
}

func (p *ImageHost) ramWrite(args []field.Element) bool {
	if len(args) != 3 {
		return false
	}
	//
	p.image[field.Uint32(args[0])] = field.Uint32(args[1])
	//
	return true
}

func (p *ImageHost) plonkWrite(table string, args []field.Element) bool {
	tuple := make([]field.Element, len(args))
	copy(tuple, args)
	//
	p.queues[table] = append(p.queues[table], tuple)
	//
	return true
}

func (p *ImageHost) plonkRead(table string, outs []field.Element) bool {
	queue := p.queues[table]
	//
	if len(queue) == 0 || len(queue[0]) != len(outs) {
		return false
	}
	//
	copy(outs, queue[0])
	p.queues[table] = queue[1:]
	//
	return true
}

func (p *ImageHost) log(message string, args []field.Element) bool {
	if len(args) != 0 {
		values := make([]string, len(args))
		//
		for i, arg := range args {
			values[i] = arg.String()
		}
		//
		message = fmt.Sprintf(message, strings.Join(values, ", "))
	}
	//
	log.Debugf("guest: %s", message)
	//
	return true
}
