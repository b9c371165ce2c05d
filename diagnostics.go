// Copyright 2024 Ahmad Sameh(asmsh)
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
	"log"

	"github.com/arkflow/promise/internal/registry"
)

// EventsReceiver is the diagnostic sink for this package (spec §4.5, §6).
// The library calls its methods at well-defined points but never branches
// on any return value from them.
type EventsReceiver interface {
	// OnVerbose reports routine, low-value diagnostic information.
	OnVerbose(msg string)

	// OnWarning reports a graph anomaly: a self-parenting (cycle-forming)
	// attachParent attempt, refused with no effect.
	OnWarning(msg string)

	// OnWarningMinor reports a tolerated anomaly: a parent reassignment, or
	// a Reject call made with a nil error.
	OnWarningMinor(msg string)

	// OnException reports that a user callback threw, or that a producer
	// called Reject with a real error.
	OnException(err error)

	// OnStateException reports that a producer attempted an illegal state
	// transition on a promise that was no longer Pending.
	OnStateException(err error)
}

// StdEventsReceiver is the default EventsReceiver, writing every event to
// the standard library's log package. It is the same tier of dependency
// the teacher this package is modeled on relies on throughout — the
// promise-library corpus this package was grounded on carries no external
// logging dependency in any example, so none is introduced here either.
type StdEventsReceiver struct {
	// Logger is used for all output. If nil, log.Default() is used.
	Logger *log.Logger
}

func (r *StdEventsReceiver) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.Default()
}

func (r *StdEventsReceiver) OnVerbose(msg string) {
	r.logger().Printf("promise: verbose: %s", msg)
}

func (r *StdEventsReceiver) OnWarning(msg string) {
	r.logger().Printf("promise: warning: %s", msg)
}

func (r *StdEventsReceiver) OnWarningMinor(msg string) {
	r.logger().Printf("promise: minor warning: %s", msg)
}

func (r *StdEventsReceiver) OnException(err error) {
	r.logger().Printf("promise: exception: %s", err)
}

func (r *StdEventsReceiver) OnStateException(err error) {
	r.logger().Printf("promise: state exception: %s", err)
}

// noopEventsReceiver discards every event. It is never the default (the
// spec calls for a sink that a host can observe out of the box), but it's
// useful for tests that want to assert on state without log noise, and is
// swapped in via SetEventsReceiver.
type noopEventsReceiver struct{}

func (noopEventsReceiver) OnVerbose(string)       {}
func (noopEventsReceiver) OnWarning(string)       {}
func (noopEventsReceiver) OnWarningMinor(string)  {}
func (noopEventsReceiver) OnException(error)      {}
func (noopEventsReceiver) OnStateException(error) {}

var sink EventsReceiver = &StdEventsReceiver{}

// SetEventsReceiver installs the process-wide diagnostic sink. Passing nil
// installs a sink that discards every event.
func SetEventsReceiver(r EventsReceiver) {
	if r == nil {
		sink = noopEventsReceiver{}
		return
	}
	sink = r
}

// EnablePromiseTracking governs whether Pending promises are added to (and
// removed from) a process-wide registry, used by tooling to find leaked or
// unsettled promises (spec §4.5). It is read once per relevant transition;
// toggling it does not retroactively register or unregister promises that
// already exist.
var EnablePromiseTracking = false

// TrackedPending returns every promise currently tracked as Pending. It is
// only meaningful while EnablePromiseTracking is true.
func TrackedPending() []registry.Entry {
	return registry.Snapshot()
}

func trackPending(id uint64, name string) {
	if EnablePromiseTracking {
		registry.Add(id, name)
	}
}

func untrackPending(id uint64) {
	registry.Remove(id)
}

// propagateUnhandledException reports a rejection that reached the end of
// a chain, via Done, without ever being observed by a Catch.
func propagateUnhandledException(id identity, err error) {
	sink.OnException(&UnhandledRejectionError{ID: id.ID(), Name: id.Name(), Err: err})
}

func reportStateException(id identity, method string, state State) {
	sink.OnStateException(&StateError{ID: id.ID(), Name: id.Name(), Method: method, State: state})
}
