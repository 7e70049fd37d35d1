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

	"golang.org/x/term"
)

// reportFailures prints the failing (phase, cycle) pairs, with messages
// truncated against the terminal width when details were requested.
func reportFailures(failures []failure, details bool) {
	width := terminalWidth()
	//
	fmt.Printf("%d failure(s)\n", len(failures))
	//
	for _, f := range failures {
		line := fmt.Sprintf("%s cycle %d", f.phase, f.cycle)
		//
		if details {
			line = fmt.Sprintf("%s: %s", line, f.msg)
		}
		//
		if uint(len(line)) > width {
			line = line[:width-3] + "..."
		}
		//
		fmt.Println(line)
	}
}

// terminalWidth determines the width of the enclosing terminal, falling back
// on a sensible default when output is not a terminal.
func terminalWidth() uint {
	fd := int(os.Stdout.Fd())
	//
	if term.IsTerminal(fd) {
		if width, _, err := term.GetSize(fd); err == nil && width > 8 {
			return uint(width)
		}
	}
	//
	return 80
}
