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

// Then registers onResolve, a function from T to U, to run once p settles
// Resolved, and returns a new Promise[U] resolved to its return value
// (spec §4.2). Go methods cannot introduce a type parameter beyond their
// receiver's, so every combinator that can change the value's type, like
// this one, is a free function rather than a method.
func Then[T, U any](p *Promise[T], onResolve func(T) U) *Promise[U] {
	out := New[U]()
	wasPending := p.State() == Pending
	p.install(
		func(v T) { out.TryResolve(onResolve(v)) },
		func(err error) { out.RejectSilent(err) },
		func() { out.CancelSelf() },
		out,
	)
	if wasPending {
		attachParent(out, p)
	}
	return out
}

// ThenPromise is Then, but onResolve itself returns a Promise[U]; the
// result flattens so callers never end up with a Promise[*Promise[U]]
// (spec §4.2, "Then with a promise-returning handler").
func ThenPromise[T, U any](p *Promise[T], onResolve func(T) *Promise[U]) *Promise[U] {
	out := New[U]()
	wasPending := p.State() == Pending
	p.install(
		func(v T) {
			inner := onResolve(v)
			innerWasPending := inner.State() == Pending
			inner.install(
				func(iv U) { out.TryResolve(iv) },
				func(err error) { out.RejectSilent(err) },
				func() { out.CancelSelf() },
				out,
			)
			if innerWasPending {
				attachParent(out, inner)
			}
		},
		func(err error) { out.RejectSilent(err) },
		func() { out.CancelSelf() },
		out,
	)
	if wasPending {
		attachParent(out, p)
	}
	return out
}

// ThenTap observes a resolved value without changing it: onResolve runs,
// and out resolves to the same value p did (spec §4.2, "non-transforming
// observer"). A panic, or an explicit error return from onResolve, rejects
// out instead.
func ThenTap[T any](p *Promise[T], onResolve func(T) error) *Promise[T] {
	out := New[T]()
	wasPending := p.State() == Pending
	p.install(
		func(v T) {
			var err error
			guard(out, func() { err = onResolve(v) })
			if err != nil {
				out.RejectSilent(err)
				return
			}
			out.TryResolve(v)
		},
		func(err error) { out.RejectSilent(err) },
		func() { out.CancelSelf() },
		out,
	)
	if wasPending {
		attachParent(out, p)
	}
	return out
}

// ThenDo registers onResolve to run for side effect only, discarding its
// return value; out resolves to struct{}{} (spec §4.2, VoidPromise chain
// entry point from a value promise).
func ThenDo[T any](p *Promise[T], onResolve func(T)) VoidPromise {
	out := NewVoid()
	wasPending := p.State() == Pending
	p.install(
		func(v T) { guard(out, func() { onResolve(v) }); out.TryResolve() },
		func(err error) { out.RejectSilent(err) },
		func() { out.CancelSelf() },
		out,
	)
	if wasPending {
		attachParent(out, p)
	}
	return out
}

// Catch registers onReject to run once p settles Rejected, producing a
// replacement value; it recovers the chain unless onReject itself panics
// or returns an error (spec §4.2).
func Catch[T any](p *Promise[T], onReject func(error) (T, error)) *Promise[T] {
	out := New[T]()
	wasPending := p.State() == Pending
	p.install(
		func(v T) { out.TryResolve(v) },
		func(err error) {
			var v T
			var rerr error
			guard(out, func() { v, rerr = onReject(err) })
			if rerr != nil {
				out.RejectSilent(rerr)
				return
			}
			out.TryResolve(v)
		},
		func() { out.CancelSelf() },
		out,
	)
	if wasPending {
		attachParent(out, p)
	}
	return out
}

// CatchVoid is Catch(Action) — the Open Question decision documented in
// SPEC_FULL.md D.1: calling Catch's no-return-value form on an already
// Resolved source still produces a fresh, independently pre-resolved void
// promise, via the same install path every other state goes through, not
// a value echo of p.
func CatchVoid[T any](p *Promise[T], onReject func(error)) VoidPromise {
	out := NewVoid()
	wasPending := p.State() == Pending
	p.install(
		func(T) { out.TryResolve() },
		func(err error) { guard(out, func() { onReject(err) }); out.TryResolve() },
		func() { out.CancelSelf() },
		out,
	)
	if wasPending {
		attachParent(out, p)
	}
	return out
}

// Finally registers onFinally to run once p settles, regardless of
// outcome, without observing or altering the value or error; out mirrors
// p's outcome exactly (spec §4.2).
func Finally[T any](p *Promise[T], onFinally func()) *Promise[T] {
	out := New[T]()
	wasPending := p.State() == Pending
	p.install(
		func(v T) { guard(out, onFinally); out.TryResolve(v) },
		func(err error) { guard(out, onFinally); out.RejectSilent(err) },
		func() { guardCancel(out, onFinally); out.CancelSelf() },
		out,
	)
	if wasPending {
		attachParent(out, p)
	}
	return out
}

// ContinueWith runs onSettle once p resolves or rejects, handing it p's
// value and error directly, and maps to a new type U (spec §4.2,
// "unconditional continuation"). If p is cancelled, onSettle does not run
// and out is cancelled.
func ContinueWith[T, U any](p *Promise[T], onSettle func(T, error) U) *Promise[U] {
	out := New[U]()
	wasPending := p.State() == Pending
	p.install(
		func(v T) { out.TryResolve(onSettle(v, nil)) },
		func(err error) { out.TryResolve(onSettle(*new(T), err)) },
		func() { out.CancelSelf() },
		out,
	)
	if wasPending {
		attachParent(out, p)
	}
	return out
}

// OnCancel registers onCancel to run only if p settles Cancelled, and
// returns a new Promise[T] mirroring p's outcome (spec §4.2).
func OnCancel[T any](p *Promise[T], onCancel func()) *Promise[T] {
	out := New[T]()
	wasPending := p.State() == Pending
	p.install(
		func(v T) { out.TryResolve(v) },
		func(err error) { out.RejectSilent(err) },
		func() { guardCancel(out, onCancel); out.CancelSelf() },
		out,
	)
	if wasPending {
		attachParent(out, p)
	}
	return out
}

// Progress registers a progress observer and returns p unchanged, so
// calls can be chained inline (spec §4.2).
func Progress[T any](p *Promise[T], onProgress func(float64)) *Promise[T] {
	p.installProgress(onProgress)
	return p
}

// Done observes p for diagnostic purposes only: if it settles Rejected,
// the error is reported to the sink as an UnhandledRejectionError (spec
// §4.5). Done does not create a new promise and does not extend the
// chain.
func Done[T any](p *Promise[T]) {
	p.install(
		func(T) {},
		func(err error) { propagateUnhandledException(p.identity, err) },
		func() {},
		nil,
	)
}

// ThenAll registers onResolve to run once p settles Resolved, mapping its
// value to a slice of promises whose combined outcome becomes out's (spec
// §4.3, "fan-out from a chain step").
func ThenAll[T, U any](p *Promise[T], onResolve func(T) []*Promise[U]) *Promise[[]U] {
	out := New[[]U]()
	wasPending := p.State() == Pending
	p.install(
		func(v T) {
			inner := All(onResolve(v))
			innerWasPending := inner.State() == Pending
			inner.install(
				func(vs []U) { out.TryResolve(vs) },
				func(err error) { out.RejectSilent(err) },
				func() { out.CancelSelf() },
				out,
			)
			if innerWasPending {
				attachParent(out, inner)
			}
		},
		func(err error) { out.RejectSilent(err) },
		func() { out.CancelSelf() },
		out,
	)
	if wasPending {
		attachParent(out, p)
	}
	return out
}

// ThenRace registers onResolve to run once p settles Resolved, mapping its
// value to a slice of promises whose race outcome becomes out's (spec
// §4.3).
func ThenRace[T, U any](p *Promise[T], onResolve func(T) []*Promise[U]) *Promise[U] {
	out := New[U]()
	wasPending := p.State() == Pending
	p.install(
		func(v T) {
			inner := Race(onResolve(v))
			innerWasPending := inner.State() == Pending
			inner.install(
				func(iv U) { out.TryResolve(iv) },
				func(err error) { out.RejectSilent(err) },
				func() { out.CancelSelf() },
				out,
			)
			if innerWasPending {
				attachParent(out, inner)
			}
		},
		func(err error) { out.RejectSilent(err) },
		func() { out.CancelSelf() },
		out,
	)
	if wasPending {
		attachParent(out, p)
	}
	return out
}
