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

// Package registry is the pending-promise tracking table used by tooling
// to find leaked or never-settled promises (spec §4.5, §6). It is a plain
// map, not a sync.Map: the whole library is single-threaded cooperative
// (spec §5), so there is nothing here that needs to be safe for concurrent
// mutation from multiple goroutines.
package registry

// Entry is the tracked information about one still-Pending promise.
type Entry struct {
	ID   uint64
	Name string
}

var pending = map[uint64]Entry{}

// Add registers a Pending promise. Called only while tracking is enabled.
func Add(id uint64, name string) {
	pending[id] = Entry{ID: id, Name: name}
}

// Remove drops a promise from the registry, once it settles or once
// tracking is found to be disabled at removal time (a no-op if absent).
func Remove(id uint64) {
	delete(pending, id)
}

// Snapshot returns every promise currently tracked as Pending. The
// returned slice is a copy and safe to range over while the registry
// continues to change.
func Snapshot() []Entry {
	out := make([]Entry, 0, len(pending))
	for _, e := range pending {
		out = append(out, e)
	}
	return out
}

// Len returns the number of promises currently tracked as Pending.
func Len() int {
	return len(pending)
}

// Clear empties the registry. Intended for use by tests.
func Clear() {
	pending = map[uint64]Entry{}
}
