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

import "context"

// FromCancellationTokenSource bridges a context.CancelFunc into this
// package's chain graph (spec §6, GLOSSARY: "CancellationTokenSource
// adapter"): it returns a promise whose cancel handler triggers external
// cancellation — the opposite direction from watching a context.Context
// for expiry. cancel is invoked, on whatever goroutine calls CancelSelf on
// the returned promise, exactly once.
//
// The returned promise settles Cancelled only when something in its own
// chain calls Cancel()/CancelSelf() on it (directly, or by cancelling a
// descendant attached beneath it); it never settles on its own. Wire it
// into a chain via Then/OnCancel/etc. like any other promise, or cancel it
// directly to tear down the associated context.CancelFunc.
func FromCancellationTokenSource(cancel context.CancelFunc) VoidPromise {
	v := NewVoidNamed("CancellationTokenSource")
	v.Promise.install(
		func(struct{}) {},
		func(error) {},
		cancel,
		nil,
	)
	return v
}
