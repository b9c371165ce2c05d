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
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsPending(t *testing.T) {
	p := New[int]()
	assert.Equal(t, Pending, p.State())
	assert.Zero(t, p.Value())
}

func TestResolveTransitionsOnce(t *testing.T) {
	p := New[int]()
	p.Resolve(42)
	require.Equal(t, Resolved, p.State())
	assert.Equal(t, 42, p.Value())

	var got []string
	SetEventsReceiver(&captureReceiver{stateExc: &got})
	defer SetEventsReceiver(nil)

	p.Resolve(43)
	require.Len(t, got, 1)
	assert.Equal(t, 42, p.Value(), "a second Resolve must not change the value")
}

func TestTryResolveReturnsFalseWhenSettled(t *testing.T) {
	p := New[int]()
	assert.True(t, p.TryResolve(1))
	assert.False(t, p.TryResolve(2))
	assert.Equal(t, 1, p.Value())
}

func TestRejectReportsException(t *testing.T) {
	var exceptions []string
	SetEventsReceiver(&captureReceiver{exception: &exceptions})
	defer SetEventsReceiver(nil)

	p := New[int]()
	wantErr := errors.New("boom")
	p.Reject(wantErr)

	require.Equal(t, Rejected, p.State())
	assert.ErrorIs(t, p.Err(), wantErr)
	require.Len(t, exceptions, 1)
}

func TestRejectSilentDoesNotReportException(t *testing.T) {
	var exceptions []string
	SetEventsReceiver(&captureReceiver{exception: &exceptions})
	defer SetEventsReceiver(nil)

	p := New[int]()
	p.RejectSilent(errors.New("boom"))

	assert.Equal(t, Rejected, p.State())
	assert.Empty(t, exceptions)
}

func TestCancelSelfIsNoopOnTerminal(t *testing.T) {
	p := New[int]()
	p.Resolve(1)
	p.CancelSelf()
	assert.Equal(t, Resolved, p.State())
}

func TestThenMapsResolvedValue(t *testing.T) {
	p := New[int]()
	out := Then(p, func(v int) string { return "got " + strconv.Itoa(v) })
	p.Resolve(7)
	require.Equal(t, Resolved, out.State())
	assert.Equal(t, "got 7", out.Value())
}

func TestThenOnAlreadyResolvedRunsSynchronously(t *testing.T) {
	p := Resolved(5)
	out := Then(p, func(v int) int { return v * 2 })
	require.Equal(t, Resolved, out.State())
	assert.Equal(t, 10, out.Value())
}

func TestThenPropagatesRejection(t *testing.T) {
	p := New[int]()
	out := Then(p, func(v int) int { return v + 1 })
	wantErr := errors.New("source failed")
	p.RejectSilent(wantErr)
	require.Equal(t, Rejected, out.State())
	assert.ErrorIs(t, out.Err(), wantErr)
}

func TestThenPanicRejectsDownstream(t *testing.T) {
	p := New[int]()
	out := Then(p, func(int) int { panic("kaboom") })
	p.Resolve(1)
	require.Equal(t, Rejected, out.State())
	assert.Contains(t, out.Err().Error(), "kaboom")
}

func TestCatchRecoversChain(t *testing.T) {
	p := New[int]()
	out := Catch(p, func(err error) (int, error) { return 99, nil })
	p.RejectSilent(errors.New("boom"))
	require.Equal(t, Resolved, out.State())
	assert.Equal(t, 99, out.Value())
}

func TestCatchCanReReject(t *testing.T) {
	p := New[int]()
	wantErr := errors.New("still broken")
	out := Catch(p, func(error) (int, error) { return 0, wantErr })
	p.RejectSilent(errors.New("boom"))
	require.Equal(t, Rejected, out.State())
	assert.ErrorIs(t, out.Err(), wantErr)
}

func TestFinallyRunsRegardlessOfOutcome(t *testing.T) {
	for _, tc := range []struct {
		name    string
		settle  func(p *Promise[int])
		wantSta State
	}{
		{"resolved", func(p *Promise[int]) { p.Resolve(1) }, Resolved},
		{"rejected", func(p *Promise[int]) { p.RejectSilent(errors.New("x")) }, Rejected},
		{"cancelled", func(p *Promise[int]) { p.CancelSelf() }, Cancelled},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := New[int]()
			ran := false
			out := Finally(p, func() { ran = true })
			tc.settle(p)
			assert.True(t, ran)
			assert.Equal(t, tc.wantSta, out.State())
		})
	}
}

func TestContinueWithSeesBothOutcomes(t *testing.T) {
	p := New[int]()
	out := ContinueWith(p, func(v int, err error) string {
		if err != nil {
			return "err:" + err.Error()
		}
		return "ok:" + strconv.Itoa(v)
	})
	p.Resolve(3)
	require.Equal(t, Resolved, out.State())
	assert.Equal(t, "ok:3", out.Value())
}

func TestCancelWalksToTopmostPendingAncestor(t *testing.T) {
	root := New[int]()
	mid := Then(root, func(v int) int { return v })
	leaf := Then(mid, func(v int) int { return v })

	leaf.Cancel()

	assert.Equal(t, Cancelled, root.State())
	assert.Equal(t, Cancelled, mid.State())
	assert.Equal(t, Cancelled, leaf.State())
}

func TestCancelStopsAtAlreadySettledAncestor(t *testing.T) {
	root := New[int]()
	mid := Then(root, func(v int) int { return v })
	leaf := Then(mid, func(v int) int { return v })

	root.Resolve(1)
	leaf.Cancel()

	// Resolving root resolves mid and then leaf through their Then
	// handlers, so nothing in the lineage is Pending and Cancel changes
	// nothing.
	assert.Equal(t, Resolved, root.State())
	assert.Equal(t, Resolved, mid.State())
	assert.Equal(t, Resolved, leaf.State())
}

func TestCancelSelfAndAllChildrenPrunesSettledSubtrees(t *testing.T) {
	root := New[int]()
	childA := Then(root, func(v int) int { return v })
	childB := Then(root, func(v int) int { return v })
	childA.Resolve(1)

	root.CancelSelfAndAllChildren()

	assert.Equal(t, Resolved, childA.State(), "already-settled subtree must be left alone")
	assert.Equal(t, Cancelled, childB.State())
	assert.Equal(t, Cancelled, root.State())
}

func TestAllResolvesInInputOrder(t *testing.T) {
	p1, p2, p3 := New[int](), New[int](), New[int]()
	out := All([]*Promise[int]{p1, p2, p3})

	p2.Resolve(2)
	p1.Resolve(1)
	p3.Resolve(3)

	require.Equal(t, Resolved, out.State())
	assert.Equal(t, []int{1, 2, 3}, out.Value())
}

func TestAllRejectsOnFirstRejection(t *testing.T) {
	p1, p2 := New[int](), New[int]()
	out := All([]*Promise[int]{p1, p2})

	wantErr := errors.New("p1 broke")
	p1.RejectSilent(wantErr)

	require.Equal(t, Rejected, out.State())
	assert.ErrorIs(t, out.Err(), wantErr)
}

func TestAllOfEmptySliceResolvesToEmpty(t *testing.T) {
	out := All[int](nil)
	require.Equal(t, Resolved, out.State())
	assert.Empty(t, out.Value())
}

func TestAllReportsMeanProgress(t *testing.T) {
	a, b := New[string](), New[string]()
	out := All([]*Promise[string]{a, b})

	var reported []float64
	Progress(out, func(p float64) { reported = append(reported, p) })

	a.ReportProgress(0.5)
	require.Equal(t, []float64{0.25}, reported)

	b.ReportProgress(1.0)
	require.Equal(t, []float64{0.25, 0.75}, reported)

	a.Resolve("x")
	b.Resolve("y")

	require.Equal(t, Resolved, out.State())
	assert.Equal(t, []string{"x", "y"}, out.Value())
}

func TestAllCancellingOneInputCancelsTheAggregate(t *testing.T) {
	a, b := New[int](), New[int]()
	out := All([]*Promise[int]{a, b})

	a.CancelSelf()

	require.Equal(t, Cancelled, out.State())
	require.Equal(t, Pending, b.State(), "All cancelling must not touch a sibling input")
}

func TestRaceReportsMaxProgress(t *testing.T) {
	a, b := New[int](), New[int]()
	out := Race([]*Promise[int]{a, b})

	var reported []float64
	Progress(out, func(p float64) { reported = append(reported, p) })

	a.ReportProgress(0.3)
	b.ReportProgress(0.7)
	a.ReportProgress(0.4)

	assert.Equal(t, []float64{0.3, 0.7, 0.7}, reported)
}

func TestRaceSettlesWithFirstToSettle(t *testing.T) {
	p1, p2 := New[int](), New[int]()
	out := Race([]*Promise[int]{p1, p2})

	p2.Resolve(2)
	p1.Resolve(1)

	require.Equal(t, Resolved, out.State())
	assert.Equal(t, 2, out.Value())
}

func TestRaceOfEmptySliceRejectsWithSentinel(t *testing.T) {
	out := Race[int](nil)
	require.Equal(t, Rejected, out.State())
	assert.ErrorIs(t, out.Err(), ErrRaceEmpty)
}

func TestFirstTriesSequentiallyAndStopsAtTheWinner(t *testing.T) {
	p1, p2, p3 := New[int](), New[int](), New[int]()
	var started []int
	out := First([]func() *Promise[int]{
		func() *Promise[int] { started = append(started, 1); return p1 },
		func() *Promise[int] { started = append(started, 2); return p2 },
		func() *Promise[int] { started = append(started, 3); return p3 },
	})

	require.Equal(t, []int{1}, started, "only the first factory runs up front")

	p1.RejectSilent(errors.New("p1 broke"))
	require.Equal(t, []int{1, 2}, started, "the second factory runs only after the first rejects")

	p2.Resolve(2)

	require.Equal(t, Resolved, out.State())
	assert.Equal(t, 2, out.Value())
	assert.Equal(t, []int{1, 2}, started, "a factory after the winner must never run")
}

func TestFirstRejectsWhenEveryInputFails(t *testing.T) {
	p1, p2 := New[int](), New[int]()
	wantErr := errors.New("p2 broke too")
	out := First([]func() *Promise[int]{
		func() *Promise[int] { return p1 },
		func() *Promise[int] { return p2 },
	})

	p1.RejectSilent(errors.New("p1 broke"))
	p2.RejectSilent(wantErr)

	require.Equal(t, Rejected, out.State())
	assert.ErrorIs(t, out.Err(), wantErr)
}

func TestSequenceRunsInOrderAndCollectsResults(t *testing.T) {
	var order []int
	mk := func(v int) func() *Promise[int] {
		return func() *Promise[int] {
			order = append(order, v)
			return Resolved(v)
		}
	}
	out := Sequence([]func() *Promise[int]{mk(1), mk(2), mk(3)})

	require.Equal(t, Resolved, out.State())
	assert.Equal(t, []int{1, 2, 3}, out.Value())
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestSequenceStopsAtFirstRejection(t *testing.T) {
	wantErr := errors.New("step 2 failed")
	ran3 := false
	fs := []func() *Promise[int]{
		func() *Promise[int] { return Resolved(1) },
		func() *Promise[int] { return Rejected[int](wantErr) },
		func() *Promise[int] { ran3 = true; return Resolved(3) },
	}
	out := Sequence(fs)

	require.Equal(t, Rejected, out.State())
	assert.ErrorIs(t, out.Err(), wantErr)
	assert.False(t, ran3)
}

func TestVoidPromiseThenDo(t *testing.T) {
	v := NewVoid()
	ran := false
	out := v.ThenDo(func() { ran = true })
	v.Resolve()
	assert.True(t, ran)
	assert.Equal(t, Resolved, out.State())
}

func TestVoidCatchRecovers(t *testing.T) {
	v := NewVoid()
	out := v.Catch(func(error) {})
	v.Reject(errors.New("boom"))
	assert.Equal(t, Resolved, out.State())
}

func TestAttachParentRefusesCycle(t *testing.T) {
	var warnings []string
	SetEventsReceiver(&captureReceiver{warning: &warnings})
	defer SetEventsReceiver(nil)

	root := New[int]()
	child := Then(root, func(v int) int { return v })

	attachParent(root, child)

	require.Len(t, warnings, 1)
	assert.Nil(t, root.link().parent)
}

// captureReceiver is a minimal EventsReceiver used to assert on which
// diagnostic callbacks fired, without any log noise.
type captureReceiver struct {
	exception *[]string
	stateExc  *[]string
	warning   *[]string
}

func (c *captureReceiver) OnVerbose(string)      {}
func (c *captureReceiver) OnWarningMinor(string) {}

func (c *captureReceiver) OnWarning(msg string) {
	if c.warning != nil {
		*c.warning = append(*c.warning, msg)
	}
}

func (c *captureReceiver) OnException(err error) {
	if c.exception != nil {
		*c.exception = append(*c.exception, err.Error())
	}
}

func (c *captureReceiver) OnStateException(err error) {
	if c.stateExc != nil {
		*c.stateExc = append(*c.stateExc, err.Error())
	}
}
