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

import "fmt"

// node is the type-erased view of a promise used to walk the chain graph
// (spec §4.4). Promise[T] and VoidPromise both implement it.
type node interface {
	Rejectable
	CancelSelf()
	State() State
	ID() uint64
	Name() string
	link() *chainNode
}

// chainNode holds the parent/children bookkeeping (spec §3: parent,
// children). It's embedded by value inside every promise.
type chainNode struct {
	parent   node
	children map[uint64]node
}

func (c *chainNode) addChild(n node) {
	if c.children == nil {
		c.children = map[uint64]node{}
	}
	c.children[n.ID()] = n
}

func (c *chainNode) removeChild(n node) {
	delete(c.children, n.ID())
}

func (c *chainNode) childList() []node {
	out := make([]node, 0, len(c.children))
	for _, n := range c.children {
		out = append(out, n)
	}
	return out
}

// attachParent sets child's parent to parent and registers child in
// parent's children (spec §4.4, invariant 4). A self-parenting or
// cycle-creating attempt is refused with a warning and has no effect
// (invariant 5). A prior parent is tolerated and overwritten with a
// minor warning (invariant 6); the edge it recorded is removed so
// invariant 4 keeps holding for every edge that's still recorded.
func attachParent(child, parent node) {
	if parent == nil {
		return
	}

	for cur := parent; cur != nil; cur = cur.link().parent {
		if cur.ID() == child.ID() {
			sink.OnWarning(fmt.Sprintf(
				"promise: refusing to attach parent %d to child %d: would create a cycle in the chain graph",
				parent.ID(), child.ID()))
			return
		}
	}

	if old := child.link().parent; old != nil {
		sink.OnWarningMinor(fmt.Sprintf(
			"promise: promise %d already had parent %d, reassigning to %d",
			child.ID(), old.ID(), parent.ID()))
		old.link().removeChild(child)
	}

	child.link().parent = parent
	parent.link().addChild(child)
}

// cancelChain implements Cancel() (spec §4.4): walk upward from n to the
// root, find the topmost still-Pending ancestor, and CancelSelf every
// promise from there down to n, in that order.
func cancelChain(n node) {
	var ancestors []node
	for cur := n; cur.link().parent != nil; cur = cur.link().parent {
		ancestors = append(ancestors, cur.link().parent)
	}
	// ancestors is nearest-parent-first; reverse it to root-first.
	for i, j := 0, len(ancestors)-1; i < j; i, j = i+1, j-1 {
		ancestors[i], ancestors[j] = ancestors[j], ancestors[i]
	}

	chain := append(ancestors, n)

	start := -1
	for i, m := range chain {
		if m.State() == Pending {
			start = i
			break
		}
	}
	if start == -1 {
		// nothing pending anywhere in the lineage; nothing to do.
		return
	}

	for _, m := range chain[start:] {
		m.CancelSelf()
	}
}

// cancelSelfAndAllChildren implements CancelSelfAndAllChildren() (spec
// §4.4): collect n plus every transitively-Pending descendant, pruning
// the subtree under any descendant that's already terminal, then
// CancelSelf each collected promise, parent before child.
func cancelSelfAndAllChildren(n node) {
	for _, m := range collectPendingSubtree(n) {
		m.CancelSelf()
	}
}

func collectPendingSubtree(n node) []node {
	if n.State() != Pending {
		return nil
	}
	out := []node{n}
	for _, c := range n.link().childList() {
		out = append(out, collectPendingSubtree(c)...)
	}
	return out
}
