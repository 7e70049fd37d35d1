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
package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fasteater/risc0/pkg/field"
	"github.com/fasteater/risc0/pkg/rv32im"
	"github.com/fasteater/risc0/pkg/trace"
)

// computeCmd represents the compute command
var computeCmd = &cobra.Command{
	Use:   "compute [flags] image_file",
	Short: "Run a memory image and emit the resulting trace.",
	Long: `Run a memory image through the execute and compute-accumulator phases
	over a trace of the given length, and emit the filled argument columns as JSON.
	Images are JSON maps from (decimal) addresses to instruction/data words.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		var (
			steps = GetUint(cmd, "steps")
			entry = GetUint(cmd, "entry")
			out   = GetString(cmd, "out")
			host  = rv32im.NewImageHost(readImageFile(args[0]))
		)
		// Go!
		columns, err := computeTrace(host, steps, entry)
		//
		if err == nil {
			var bytes []byte
			//
			if bytes, err = trace.ToBytes(columns); err == nil {
				if out == "" {
					fmt.Println(string(bytes))
					return
				}
				//
				if err = os.WriteFile(out, bytes, 0644); err == nil {
					return
				}
			}
		}
		//
		fmt.Println(err)
		os.Exit(2)
	},
}

// computeTrace drives the execute phase over every cycle, sorts the host-side
// access log, then drives the compute-accumulator phase over every cycle.
// The two passes are sequential in cycle order since each cycle's columns
// depend on the previous cycle's.
func computeTrace(host *rv32im.ImageHost, steps, entry uint) (trace.ArgColumns, error) {
	var (
		args     = rv32im.NewTrace(steps)
		callback = host.Callback()
	)
	//
	args.Column(rv32im.ColPC).Set(0, field.NewElement(uint64(entry)))
	// Populate the accumulator mix randomness.
	var mix0, mix1 field.Element
	//
	if _, err := mix0.SetRandom(); err != nil {
		return nil, err
	}
	//
	if _, err := mix1.SetRandom(); err != nil {
		return nil, err
	}
	//
	for cycle := uint(0); cycle < steps; cycle++ {
		args.Column(rv32im.ColMix0).Set(cycle, mix0)
		args.Column(rv32im.ColMix1).Set(cycle, mix1)
	}
	// Execute pass
	for cycle := uint(0); cycle < steps; cycle++ {
		status, err := rv32im.StepExec(callback, steps, cycle, args)
		//
		if err != nil {
			return nil, err
		}
		//
		log.Debugf("cycle %d: status %s", cycle, status.String())
	}
	// The permutation argument consumes accesses in sorted order.
	host.SortTable("ram")
	// Accumulator pass
	for cycle := uint(0); cycle < steps; cycle++ {
		if _, err := rv32im.StepComputeAccum(callback, steps, cycle, args); err != nil {
			return nil, err
		}
	}
	// Done
	return args, nil
}

func init() {
	rootCmd.AddCommand(computeCmd)
	computeCmd.Flags().Uint("steps", 16, "number of cycles in the trace")
	computeCmd.Flags().Uint("entry", 0, "initial program counter")
	computeCmd.Flags().StringP("out", "o", "", "write the trace to a file rather than stdout")
}
