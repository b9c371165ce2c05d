// Copyright 2023 Ahmad Sameh(asmsh)
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

import "fmt"

// Rejectable is any object that accepts a terminal rejection. Every result
// promise created by a combinator is one (spec GLOSSARY: "Rejectable").
type Rejectable interface {
	Reject(err error)
	RejectSilent(err error)
}

// resolveHandler, rejectHandler, and cancelHandler are the entries of the
// handler store (spec §3, component B): a callback paired with the
// downstream Rejectable that should receive any fault the callback raises.
type resolveHandler[T any] struct {
	fn         func(T)
	downstream Rejectable
}

type rejectHandler struct {
	fn         func(error)
	downstream Rejectable
}

type cancelHandler struct {
	fn         func()
	downstream Rejectable
}

type progressHandler struct {
	fn func(float64)
}

// guard invokes fn, recovering any fault it raises. On a fault, the sink
// is notified via OnException and downstream is RejectSilent-ed with the
// fault (spec §4.1 dispatch rule).
func guard(downstream Rejectable, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			err := toError(r)
			sink.OnException(err)
			if downstream != nil {
				downstream.RejectSilent(err)
			}
		}
	}()
	fn()
}

// guardCancel is the cancel-handler variant of guard: a fault is not
// reported to OnException, it only surfaces as the downstream rejection
// (spec §4.1: "Cancel handlers use the same rule but do not log to
// OnException").
func guardCancel(downstream Rejectable, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			err := toError(r)
			if downstream != nil {
				downstream.RejectSilent(err)
			}
		}
	}()
	fn()
}

// guardProgress invokes a progress handler, swallowing any fault after
// reporting it; a progress handler has no natural downstream to reject.
func guardProgress(fn func(float64), p float64) {
	defer func() {
		if r := recover(); r != nil {
			sink.OnException(toError(r))
		}
	}()
	fn(p)
}

func toError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
