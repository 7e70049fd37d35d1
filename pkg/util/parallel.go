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
package util

import (
	"runtime"
	"sync"
)

// ParForEach runs a job for every index in 0..n across a bounded pool of
// goroutines, and reports the lowest-indexed error encountered (if any).  All
// jobs are attempted regardless of failures, so the caller sees a stable
// error rather than whichever happened to lose the race.  Jobs must be
// independent of each other; scheduling dependent jobs this way is a caller
// bug.
func ParForEach(n uint, job func(uint) error) error {
	var (
		waitGroup sync.WaitGroup
		workers   = min(uint(runtime.NumCPU()), max(n, 1))
		indices   = make(chan uint, workers)
		mutex     sync.Mutex
		firstAt   uint
		first     error
	)
	//
	for range workers {
		waitGroup.Add(1)
		//
		go func() {
			defer waitGroup.Done()
			//
			for i := range indices {
				if err := job(i); err != nil {
					mutex.Lock()
					//
					if first == nil || i < firstAt {
						first, firstAt = err, i
					}
					//
					mutex.Unlock()
				}
			}
		}()
	}
	//
	for i := uint(0); i < n; i++ {
		indices <- i
	}
	//
	close(indices)
	waitGroup.Wait()
	//
	return first
}
