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

// Promise is a one-shot container for the eventual outcome of some
// asynchronous computation that produces a value of type T (spec §3).
//
// The zero value is not usable; create one with New or NewNamed.
type Promise[T any] struct {
	identity
	chainNode

	state State
	value T
	err   error

	resolveHandlers  []resolveHandler[T]
	rejectHandlers   []rejectHandler
	cancelHandlers   []cancelHandler
	progressHandlers []progressHandler
}

// New creates a Pending promise of type T.
func New[T any]() *Promise[T] {
	return NewNamed[T]("")
}

// NewNamed creates a Pending promise of type T with the given diagnostic
// name (spec §3: "name: optional human-readable string for diagnostics").
func NewNamed[T any](name string) *Promise[T] {
	p := &Promise[T]{identity: newIdentity(name)}
	trackPending(p.id, p.name)
	return p
}

// State returns the current state of the promise.
func (p *Promise[T]) State() State {
	return p.state
}

// Value returns the resolved value. It is only meaningful once State()
// returns Resolved; otherwise it returns T's zero value.
func (p *Promise[T]) Value() T {
	return p.value
}

// Err returns the rejection error. It is only meaningful once State()
// returns Rejected; otherwise it returns nil.
func (p *Promise[T]) Err() error {
	return p.err
}

func (p *Promise[T]) link() *chainNode {
	return &p.chainNode
}

// Resolve transitions the promise to Resolved with the given value. It is
// permitted only when the promise is Pending; otherwise it reports
// OnStateException to the diagnostic sink and returns without effect
// (spec §4.1, invariant 1).
func (p *Promise[T]) Resolve(value T) {
	if p.state != Pending {
		reportStateException(p.identity, "Resolve", p.state)
		return
	}
	p.value = value
	p.state = Resolved
	untrackPending(p.id)
	p.dispatchResolve()
}

// TryResolve is Resolve, but returns false instead of reporting a state
// exception when the promise is not Pending.
func (p *Promise[T]) TryResolve(value T) bool {
	if p.state != Pending {
		return false
	}
	p.Resolve(value)
	return true
}

// Reject transitions the promise to Rejected with the given error. A nil
// error emits a minor warning instead of an exception report; otherwise
// OnException is reported before the transition happens, via the silent
// variant (spec §4.1).
func (p *Promise[T]) Reject(err error) {
	if p.state != Pending {
		reportStateException(p.identity, "Reject", p.state)
		return
	}
	if err == nil {
		sink.OnWarningMinor("promise: Reject called with a nil error")
	} else {
		sink.OnException(err)
	}
	p.RejectSilent(err)
}

// RejectSilent is Reject without the OnException report. It's used when
// the error has already been reported by the caller — inside a handler's
// fault path, or when forwarding an error that was already seen through a
// chained combinator (spec §7, "Double-report avoidance").
func (p *Promise[T]) RejectSilent(err error) {
	if p.state != Pending {
		reportStateException(p.identity, "Reject", p.state)
		return
	}
	p.err = err
	p.state = Rejected
	untrackPending(p.id)
	p.dispatchReject()
}

// ReportProgress dispatches every registered progress handler with progress, in
// registration order. It's permitted only when the promise is Pending; it
// never changes state, and may be called any number of times.
func (p *Promise[T]) ReportProgress(progress float64) {
	if p.state != Pending {
		reportStateException(p.identity, "ReportProgress", p.state)
		return
	}
	for _, h := range p.progressHandlers {
		guardProgress(h.fn, progress)
	}
}

// Cancel walks up the chain to the first still-Pending ancestor and calls
// CancelSelf on every promise from there down to this one, in order (spec
// §4.4).
func (p *Promise[T]) Cancel() {
	cancelChain(p)
}

// CancelSelf transitions this promise, and only this promise, to
// Cancelled. It's a no-op unless the promise is Pending.
func (p *Promise[T]) CancelSelf() {
	if p.state != Pending {
		return
	}
	p.state = Cancelled
	untrackPending(p.id)
	p.dispatchCancel()
}

// CancelSelfAndAllChildren cancels this promise plus every transitively
// Pending descendant; a descendant that's already terminal, and its
// subtree, are left untouched (spec §4.4).
func (p *Promise[T]) CancelSelfAndAllChildren() {
	cancelSelfAndAllChildren(p)
}

// install registers the resolve/reject/cancel triple described by spec
// §4.2. If the promise is already terminal, the matching handler runs
// synchronously and guarded; otherwise all three are enqueued.
func (p *Promise[T]) install(onResolve func(T), onReject func(error), onCancel func(), downstream Rejectable) {
	switch p.state {
	case Resolved:
		v := p.value
		guard(downstream, func() { onResolve(v) })
	case Rejected:
		err := p.err
		guard(downstream, func() { onReject(err) })
	case Cancelled:
		guardCancel(downstream, onCancel)
	default: // Pending
		p.resolveHandlers = append(p.resolveHandlers, resolveHandler[T]{fn: onResolve, downstream: downstream})
		p.rejectHandlers = append(p.rejectHandlers, rejectHandler{fn: onReject, downstream: downstream})
		p.cancelHandlers = append(p.cancelHandlers, cancelHandler{fn: onCancel, downstream: downstream})
	}
}

// installProgress registers a progress handler if the promise is still
// Pending; on a terminal promise, progress is silently ignored (spec
// §4.2).
func (p *Promise[T]) installProgress(onProgress func(float64)) {
	if onProgress == nil {
		return
	}
	if p.state == Pending {
		p.progressHandlers = append(p.progressHandlers, progressHandler{fn: onProgress})
	}
}

func (p *Promise[T]) clearHandlers() {
	p.resolveHandlers = nil
	p.rejectHandlers = nil
	p.cancelHandlers = nil
	p.progressHandlers = nil
}

func (p *Promise[T]) dispatchResolve() {
	hs := p.resolveHandlers
	p.clearHandlers()
	v := p.value
	for _, h := range hs {
		h := h
		guard(h.downstream, func() { h.fn(v) })
	}
}

func (p *Promise[T]) dispatchReject() {
	hs := p.rejectHandlers
	p.clearHandlers()
	err := p.err
	for _, h := range hs {
		h := h
		guard(h.downstream, func() { h.fn(err) })
	}
}

func (p *Promise[T]) dispatchCancel() {
	hs := p.cancelHandlers
	p.clearHandlers()
	for _, h := range hs {
		h := h
		guardCancel(h.downstream, h.fn)
	}
}
