// Copyright 2020 Ahmad Sameh(asmsh)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package idgen hands out the process-wide, monotonically increasing
// promise ids described by the data model's `id` attribute.
//
// Unlike the status word the teacher keeps lock-free with a full bitfield
// (see the teacher's internal/status package), a single counter is all a
// single-threaded promise core needs; it's kept atomic only because id
// generation is the one operation this package documents as safe to call
// from multiple hosting threads (promises themselves are not).
package idgen

import "sync/atomic"

var counter uint64

// Next returns the next id in the sequence. The first id returned is 1;
// 0 is reserved so a zero-value promise can be recognized as uninitialized.
func Next() uint64 {
	return atomic.AddUint64(&counter, 1)
}
