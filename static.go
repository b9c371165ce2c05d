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

// Resolved returns an already-Resolved promise carrying value (spec §4.3,
// "pre-settled factories").
func Resolved[T any](value T) *Promise[T] {
	p := New[T]()
	p.Resolve(value)
	return p
}

// Rejected returns an already-Rejected promise carrying err.
func Rejected[T any](err error) *Promise[T] {
	p := New[T]()
	p.Reject(err)
	return p
}

// Canceled returns an already-Cancelled promise.
func Canceled[T any]() *Promise[T] {
	p := New[T]()
	p.CancelSelf()
	return p
}

// VoidResolved returns an already-Resolved VoidPromise.
func VoidResolved() VoidPromise {
	v := NewVoid()
	v.Resolve()
	return v
}

// VoidRejected returns an already-Rejected VoidPromise carrying err.
func VoidRejected(err error) VoidPromise {
	v := NewVoid()
	v.Reject(err)
	return v
}

// VoidCanceled returns an already-Cancelled VoidPromise.
func VoidCanceled() VoidPromise {
	v := NewVoid()
	v.CancelSelf()
	return v
}

// mean returns the arithmetic mean of xs, or 0 for an empty slice.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// All returns a promise that resolves to the slice of every input's value,
// in input order, once all of them resolve; it rejects as soon as any
// input rejects, with that same error (spec §4.3). Each input is attached
// as a *child* of the result, the deliberate inversion spec §4.3 calls for
// so that cancelling the aggregate (via CancelSelfAndAllChildren) flows
// toward its inputs. Per the Open Question decision in SPEC_FULL.md D.3, a
// cancel handler is wired on every input unconditionally, and it cancels
// the aggregate when it fires — the same unconditional "cancel handler
// that cancels result" rule §4.3 already specifies for every other
// combinator — but no *other* sibling input is touched as a result.
func All[T any](ps []*Promise[T]) *Promise[[]T] {
	out := NewNamed[[]T]("All")
	if len(ps) == 0 {
		out.Resolve(nil)
		return out
	}

	results := make([]T, len(ps))
	progress := make([]float64, len(ps))
	remaining := len(ps)

	reportMean := func() {
		if out.State() == Pending {
			out.ReportProgress(mean(progress))
		}
	}

	for i, p := range ps {
		i := i
		p.installProgress(func(pr float64) {
			progress[i] = pr
			reportMean()
		})
		p.install(
			func(v T) {
				progress[i] = 1
				results[i] = v
				remaining--
				if remaining == 0 {
					out.TryResolve(results)
				} else {
					reportMean()
				}
			},
			func(err error) { out.RejectSilent(err) },
			func() { out.CancelSelf() },
			out,
		)
		attachParent(p, out)
	}
	return out
}

// AllVoid is All for VoidPromise: it resolves once every input resolves,
// and rejects as soon as any input rejects.
func AllVoid(ps []VoidPromise) VoidPromise {
	out := NewVoidNamed("All")
	if len(ps) == 0 {
		out.Resolve()
		return out
	}

	progress := make([]float64, len(ps))
	remaining := len(ps)

	reportMean := func() {
		if out.State() == Pending {
			out.ReportProgress(mean(progress))
		}
	}

	for i, p := range ps {
		i := i
		p.Promise.installProgress(func(pr float64) {
			progress[i] = pr
			reportMean()
		})
		p.Promise.install(
			func(struct{}) {
				progress[i] = 1
				remaining--
				if remaining == 0 {
					out.TryResolve()
				} else {
					reportMean()
				}
			},
			func(err error) { out.RejectSilent(err) },
			func() { out.CancelSelf() },
			out,
		)
		attachParent(p.Promise, out.Promise)
	}
	return out
}

// Race returns a promise that resolves or rejects the same way the first
// of ps to resolve or reject does, carrying that same value or error (spec
// §4.3). A cancelled input is ignored: it neither cancels nor settles the
// result. Calling
// Race with no promises returns an already-Rejected promise carrying
// ErrRaceEmpty (spec §7.4). Inputs are not attached as children of the
// result — unlike All, Race has no aggregate-cancels-inputs semantics, so
// there is no chain edge to record.
func Race[T any](ps []*Promise[T]) *Promise[T] {
	out := NewNamed[T]("Race")
	if len(ps) == 0 {
		out.Reject(ErrRaceEmpty)
		return out
	}

	progress := make([]float64, len(ps))
	reportMax := func() {
		if out.State() != Pending {
			return
		}
		max := 0.0
		for _, pr := range progress {
			if pr > max {
				max = pr
			}
		}
		out.ReportProgress(max)
	}

	for i, p := range ps {
		i := i
		p.installProgress(func(pr float64) {
			progress[i] = pr
			reportMax()
		})
		p.install(
			func(v T) { out.TryResolve(v) },
			func(err error) { out.RejectSilent(err) },
			func() {},
			out,
		)
	}
	return out
}

// RaceVoid is Race for VoidPromise.
func RaceVoid(ps []VoidPromise) VoidPromise {
	out := NewVoidNamed("Race")
	if len(ps) == 0 {
		out.Reject(ErrRaceEmpty)
		return out
	}

	progress := make([]float64, len(ps))
	reportMax := func() {
		if out.State() != Pending {
			return
		}
		max := 0.0
		for _, pr := range progress {
			if pr > max {
				max = pr
			}
		}
		out.ReportProgress(max)
	}

	for i, p := range ps {
		i := i
		p.Promise.installProgress(func(pr float64) {
			progress[i] = pr
			reportMax()
		})
		p.Promise.install(
			func(struct{}) { out.TryResolve() },
			func(err error) { out.RejectSilent(err) },
			func() {},
			out,
		)
	}
	return out
}

// First tries each factory in fns in order, returning a promise that
// resolves with the value of the first attempt to succeed (spec §4.3,
// "resolve-biased sequential race"). Unlike All/Race, attempts are not
// started eagerly in parallel: fns[k+1] is invoked only once fns[k]'s
// promise has rejected (or been cancelled), so a later, side-effecting
// factory never runs just because an earlier one happened to win. If
// every attempt fails, out rejects with the error from the last one.
//
// Progress is sliced across attempts: while attempt k of K total is in
// flight, out reports (k+pₖ)/K, where pₖ is that attempt's own progress;
// on the overall success or exhaustion, out reports 1 before settling.
// Per the Open Question decision in SPEC_FULL.md D.2, a cancelled attempt
// is treated the same as a rejected one for the purpose of moving on to
// the next factory, and its "error" is recorded as the internal sentinel
// errFirstSeed rather than a literal nil, so a legitimate nil-carrying
// rejection from a later attempt is never confused with "the last attempt
// was cancelled, not rejected".
func First[T any](fns []func() *Promise[T]) *Promise[T] {
	out := NewNamed[T]("First")
	K := len(fns)
	if K == 0 {
		out.Reject(ErrRaceEmpty)
		return out
	}

	lastErr := errFirstSeed

	var attempt func(k int)
	attempt = func(k int) {
		if k == K {
			out.ReportProgress(1)
			out.RejectSilent(lastErr)
			return
		}

		cur := fns[k]()
		curWasPending := cur.State() == Pending
		cur.installProgress(func(pr float64) {
			if out.State() == Pending {
				out.ReportProgress((float64(k) + pr) / float64(K))
			}
		})
		cur.install(
			func(v T) {
				out.ReportProgress(1)
				out.TryResolve(v)
			},
			func(err error) {
				lastErr = err
				attempt(k + 1)
			},
			func() {
				lastErr = errFirstSeed
				attempt(k + 1)
			},
			out,
		)
		if curWasPending {
			attachParent(out, cur)
		}
	}
	attempt(0)

	return out
}

// Sequence runs each factory in fs in order, waiting for the previous
// promise to resolve before starting the next, and collects every result
// in order. It stops at the first rejection, rejecting with that error, or
// at the first cancellation, cancelling the result (spec §4.3, "ordered
// pipeline").
func Sequence[T any](fs []func() *Promise[T]) *Promise[[]T] {
	out := New[[]T]()
	if len(fs) == 0 {
		out.Resolve(nil)
		return out
	}

	values := make([]T, 0, len(fs))

	var step func(i int)
	step = func(i int) {
		if i == len(fs) {
			out.TryResolve(values)
			return
		}
		cur := fs[i]()
		curWasPending := cur.State() == Pending
		cur.install(
			func(v T) {
				values = append(values, v)
				step(i + 1)
			},
			func(err error) { out.RejectSilent(err) },
			func() { out.CancelSelf() },
			out,
		)
		if curWasPending {
			attachParent(out, cur)
		}
	}
	step(0)

	return out
}
