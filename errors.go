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

import (
	"errors"
	"fmt"
)

var (
	// ErrPromiseConsumed describes an attempt at a second terminal
	// transition. No function of this package returns it, and StateError,
	// which is what the diagnostic sink receives for such an attempt, does
	// not wrap it.
	ErrPromiseConsumed = errors.New("promise: already resolved, rejected, or cancelled")

	// ErrRaceEmpty is the error carried by the Rejected promise returned
	// from Race when it is called with no input promises (spec §4.3, §7.4).
	ErrRaceEmpty = errors.New("promise: Race called with no promises")

	// errFirstSeed is the error First records for an attempt that was
	// Cancelled rather than Rejected, since a cancellation carries no error
	// value of its own; it is never observable outside the package unless
	// the last attempt First makes is cancelled. See SPEC_FULL.md, Open
	// Question decision D.2.
	errFirstSeed = errors.New("promise: internal first seed")
)

// StateError is reported to the diagnostic sink's OnStateException when a
// producer attempts an illegal transition: Resolve, Reject, or
// ReportProgress called on a promise that is no longer Pending.
type StateError struct {
	ID     uint64
	Name   string
	Method string
	State  State
}

func (e *StateError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("promise: illegal %s on promise %q (id=%d, state=%s)", e.Method, e.Name, e.ID, e.State)
	}
	return fmt.Sprintf("promise: illegal %s on promise (id=%d, state=%s)", e.Method, e.ID, e.State)
}

// UnhandledRejectionError wraps an error that reached the end of a promise
// chain, via Done, without ever being observed by a Catch (spec §4.5).
type UnhandledRejectionError struct {
	ID   uint64
	Name string
	Err  error
}

func (e *UnhandledRejectionError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("promise: unhandled rejection in promise %q (id=%d): %s", e.Name, e.ID, e.Err)
	}
	return fmt.Sprintf("promise: unhandled rejection in promise (id=%d): %s", e.ID, e.Err)
}

func (e *UnhandledRejectionError) Unwrap() error {
	return e.Err
}
