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

// Package promise is a cooperative, single-threaded promise library: a
// toolkit for composing asynchronous computations that each produce
// exactly one outcome — a value, an error, or a cancellation — together
// with combinators for chaining, combining, and observing those outcomes.
//
// A Promise has four states, and it is in exactly one at any time:
// Pending, Resolved, Rejected, or Cancelled. Pending is the only
// non-terminal state; once a Promise transitions to any of the other
// three, it never transitions again.
//
// # Scheduling model
//
// All state transitions, handler registrations, and handler dispatches
// happen on one logical thread of control, synchronously, and in
// registration order. There is no internal lock, and this package never
// spawns a goroutine on its own behalf. A producer obtains a Pending
// promise and later calls exactly one of Resolve, Reject, or Cancel on
// it, from wherever its own I/O callback happens to run; any number of
// ReportProgress calls may precede that terminal call. Producers running
// on another goroutine must marshal their calls back onto the owning
// thread themselves.
//
// # Chaining
//
// Then, Catch, Finally, ContinueWith, and the other combinators each
// create a result promise, attach it as a child of the source when the
// source is still Pending, and
// subscribe handlers that translate the source's eventual outcome into
// the result's outcome. Calling Cancel anywhere in a chain walks up to
// the first still-Pending ancestor and cancels the ordered sequence from
// there down to the promise Cancel was called on, so every intervening
// Then callback observes the cancellation.
//
// # Diagnostics
//
// A package-level EventsReceiver (see SetEventsReceiver) receives
// diagnostic events: illegal state transitions, faults raised by user
// callbacks, and unhandled rejections reaching the end of a chain without
// a Catch. A package-level EnablePromiseTracking flag, when set, adds
// every Pending promise to a registry so tooling can find leaked or
// never-settled promises.
package promise
