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

// VoidPromise is a promise whose only useful outcome is settling, not a
// value (spec §3, component F). It is built on top of Promise[struct{}]
// rather than duplicating the state machine.
type VoidPromise struct {
	*Promise[struct{}]
}

// NewVoid creates a Pending VoidPromise.
func NewVoid() VoidPromise {
	return NewVoidNamed("")
}

// NewVoidNamed creates a Pending VoidPromise with the given diagnostic name.
func NewVoidNamed(name string) VoidPromise {
	return VoidPromise{Promise: NewNamed[struct{}](name)}
}

// Resolve transitions the promise to Resolved.
func (v VoidPromise) Resolve() {
	v.Promise.Resolve(struct{}{})
}

// TryResolve is Resolve, returning false instead of reporting a state
// exception when the promise is not Pending.
func (v VoidPromise) TryResolve() bool {
	return v.Promise.TryResolve(struct{}{})
}

// ThenDo registers onResolve to run once v settles Resolved, and returns a
// new VoidPromise settling once onResolve (or the implicit forwarding
// behavior) completes (spec §4.2).
func (v VoidPromise) ThenDo(onResolve func()) VoidPromise {
	out := NewVoid()
	wasPending := v.State() == Pending
	v.Promise.install(
		func(struct{}) { guard(out, func() { onResolve() }); out.TryResolve() },
		func(err error) { out.RejectSilent(err) },
		func() { out.CancelSelf() },
		out,
	)
	if wasPending {
		attachParent(out, v.Promise)
	}
	return out
}

// Catch registers onReject to run once v settles Rejected, and returns a
// new VoidPromise that resolves after onReject runs (spec §4.2: a Catch
// that doesn't re-raise recovers the chain).
func (v VoidPromise) Catch(onReject func(error)) VoidPromise {
	out := NewVoid()
	wasPending := v.State() == Pending
	v.Promise.install(
		func(struct{}) { out.TryResolve() },
		func(err error) { guard(out, func() { onReject(err) }); out.TryResolve() },
		func() { out.CancelSelf() },
		out,
	)
	if wasPending {
		attachParent(out, v.Promise)
	}
	return out
}

// Finally registers onFinally to run once v settles, regardless of
// outcome, and returns a new VoidPromise that mirrors v's outcome (spec
// §4.2).
func (v VoidPromise) Finally(onFinally func()) VoidPromise {
	out := NewVoid()
	wasPending := v.State() == Pending
	v.Promise.install(
		func(struct{}) { guard(out, onFinally); out.TryResolve() },
		func(err error) { guard(out, onFinally); out.RejectSilent(err) },
		func() { guardCancel(out, onFinally); out.CancelSelf() },
		out,
	)
	if wasPending {
		attachParent(out, v.Promise)
	}
	return out
}

// OnCancel registers onCancel to run only if v settles Cancelled, and
// returns a new VoidPromise mirroring v's outcome.
func (v VoidPromise) OnCancel(onCancel func()) VoidPromise {
	out := NewVoid()
	wasPending := v.State() == Pending
	v.Promise.install(
		func(struct{}) { out.TryResolve() },
		func(err error) { out.RejectSilent(err) },
		func() { guardCancel(out, onCancel); out.CancelSelf() },
		out,
	)
	if wasPending {
		attachParent(out, v.Promise)
	}
	return out
}

// Progress registers a progress observer (spec §4.2).
func (v VoidPromise) Progress(onProgress func(float64)) VoidPromise {
	v.Promise.installProgress(onProgress)
	return v
}

// Done observes v for diagnostic purposes only: if it settles Rejected,
// the error is reported to the sink as an UnhandledRejectionError (spec
// §4.5). Done does not create a new promise and does not extend the
// chain.
func (v VoidPromise) Done() {
	v.Promise.install(
		func(struct{}) {},
		func(err error) { propagateUnhandledException(v.Promise.identity, err) },
		func() {},
		nil,
	)
}
