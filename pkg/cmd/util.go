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
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fasteater/risc0/pkg/field"
	"github.com/fasteater/risc0/pkg/rv32im"
	"github.com/fasteater/risc0/pkg/trace"
)

// GetFlag gets an expected boolean flag, or panic if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected unsigned integer flag, or panic if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or panic if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// readTraceFile parses a JSON trace file into an argument column set of the
// given height.
func readTraceFile(filename string, steps uint) trace.ArgColumns {
	var args trace.ArgColumns
	//
	bytes, err := os.ReadFile(filename)
	//
	if err == nil {
		var columns []*trace.Column
		//
		if columns, err = trace.FromBytes(bytes); err == nil {
			if args, err = rv32im.TraceOf(columns, steps); err == nil {
				return args
			}
		}
	}
	// Handle error
	fmt.Println(err)
	os.Exit(2)
	// unreachable
	return nil
}

// readImageFile parses a JSON memory image of the form {"4096": 258, ...},
// mapping addresses to words.
func readImageFile(filename string) map[uint32]uint32 {
	var (
		rawData map[string]uint32
		image   = make(map[uint32]uint32)
	)
	//
	bytes, err := os.ReadFile(filename)
	//
	if err == nil {
		if err = json.Unmarshal(bytes, &rawData); err == nil {
			for rawAddr, word := range rawData {
				var addr uint64
				//
				if addr, err = strconv.ParseUint(rawAddr, 10, 32); err != nil {
					break
				}
				//
				image[uint32(addr)] = word
			}
			//
			if err == nil {
				return image
			}
		}
	}
	// Handle error
	fmt.Println(err)
	os.Exit(2)
	// unreachable
	return nil
}

// traceHeight determines the number of rows in a JSON trace file, which all
// columns must share.
func traceHeight(filename string) uint {
	bytes, err := os.ReadFile(filename)
	//
	if err == nil {
		var columns []*trace.Column
		//
		if columns, err = trace.FromBytes(bytes); err == nil && len(columns) > 0 {
			return columns[0].Height()
		} else if err == nil {
			err = fmt.Errorf("trace file %s contains no columns", filename)
		}
	}
	// Handle error
	fmt.Println(err)
	os.Exit(2)
	// unreachable
	return 0
}

// randomMix samples the extension-field randomness used to combine
// constraints in the polynomial check.
func randomMix(n uint) []field.Ext {
	mix := make([]field.Ext, n)
	//
	for i := range mix {
		for j := range mix[i] {
			if _, err := mix[i][j].SetRandom(); err != nil {
				fmt.Println(err)
				os.Exit(2)
			}
		}
	}
	//
	return mix
}
