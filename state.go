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

package promise

import "github.com/arkflow/promise/internal/idgen"

// State represents the current state of a Promise. It can be in only one
// of these at any time; Pending is the only non-terminal state.
type State int

const (
	// Pending is the initial state of every promise created by New or
	// NewVoid. It is the only state from which any other transition is
	// possible.
	Pending State = iota
	Resolved
	Rejected
	Cancelled
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	case Rejected:
		return "rejected"
	case Cancelled:
		return "cancelled"
	default:
		return "<unknown state>"
	}
}

func (s State) terminal() bool {
	return s != Pending
}

// identity holds the attributes of a promise that are fixed at
// construction and never change afterward: its id and its optional name.
type identity struct {
	id   uint64
	name string
}

func newIdentity(name string) identity {
	return identity{id: idgen.Next(), name: name}
}

// ID returns the process-wide unique id assigned to this promise at
// construction. It is immutable for the lifetime of the promise.
func (id identity) ID() uint64 {
	return id.id
}

// Name returns the human-readable name assigned to this promise, or the
// empty string if none was given.
func (id identity) Name() string {
	return id.name
}
