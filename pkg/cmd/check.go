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
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fasteater/risc0/pkg/rv32im"
	"github.com/fasteater/risc0/pkg/trace"
	"github.com/fasteater/risc0/pkg/util"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [flags] trace_file image_file",
	Short: "Check a computed trace against the verification phases.",
	Long: `Check a computed trace by replaying the three verification phases
	(accumulator, bytes, memory) over every cycle, and by evaluating the
	aggregate constraint polynomial with fresh randomness across the whole
	evaluation domain.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		var (
			steps   = traceHeight(args[0])
			columns = readTraceFile(args[0], steps)
			host    = rv32im.NewImageHost(readImageFile(args[1]))
			report  = GetFlag(cmd, "report")
		)
		//
		failures := checkTrace(host, steps, columns)
		//
		if len(failures) != 0 {
			reportFailures(failures, report)
			os.Exit(1)
		}
		//
		fmt.Printf("OK (%d cycles)\n", steps)
	},
}

// failure records one cycle of one phase which did not check out.
type failure struct {
	phase string
	cycle uint
	msg   string
}

// checkTrace runs the three verification phases and the polynomial check over
// every cycle.  Verification phases are read-only and independent across
// cycles, so each phase is spread over the available cores.
func checkTrace(host *rv32im.ImageHost, steps uint, columns trace.ArgColumns) []failure {
	var (
		callback = host.Callback()
		mutex    sync.Mutex
		failures []failure
	)
	//
	record := func(phase string, cycle uint, msg string) {
		mutex.Lock()
		failures = append(failures, failure{phase, cycle, msg})
		mutex.Unlock()
	}
	//
	for _, phase := range []rv32im.Phase{rv32im.PhaseVerifyAccum, rv32im.PhaseVerifyBytes, rv32im.PhaseVerifyMem} {
		//nolint:errcheck // failures are accumulated, not propagated
		util.ParForEach(steps, func(cycle uint) error {
			if _, err := rv32im.Step(phase, callback, steps, cycle, columns); err != nil {
				record(phase.String(), cycle, err.Error())
			}
			//
			return nil
		})
	}
	// Polynomial identity check with fresh randomness.
	mix := randomMix(rv32im.NumConstraints)
	//
	//nolint:errcheck
	util.ParForEach(steps, func(cycle uint) error {
		if eval := rv32im.PolyFp(cycle, steps, mix, columns); !eval.IsZero() {
			record("poly", cycle, fmt.Sprintf("aggregate constraint is %s, expected zero", eval.String()))
		}
		//
		return nil
	})
	// Stable order for reporting
	sort.Slice(failures, func(i, j int) bool {
		if failures[i].phase != failures[j].phase {
			return failures[i].phase < failures[j].phase
		}
		//
		return failures[i].cycle < failures[j].cycle
	})
	//
	return failures
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("report", false, "report details of each failure")
}
