// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package evtree

import (
	"github.com/creachadair/mds/stack"
	"github.com/tliron/commonlog"
)

// A Releaser is notified when the tree gives up ownership of an event.
// Every event a Builder pulls from its source is released exactly once:
// when the tree holding it is closed, or when assembly fails.
type Releaser interface {
	Release(Event)
}

// ReleaserFunc adapts a function to the Releaser interface.
type ReleaserFunc func(Event)

// Release implements the Releaser interface.
func (f ReleaserFunc) Release(e Event) { f(e) }

type nopReleaser struct{}

func (nopReleaser) Release(Event) {}

// A Tree is the result of assembling a complete event stream.
//
// Nodes are allocated in an arena and linked first-child/next-sibling by
// index. The arena does not change once Build returns, so a *Node obtained
// from the tree remains valid until the tree is closed.
//
// A Tree is not modified by any of its query methods, and may safely be read
// by multiple goroutines concurrently. Close must not be called concurrently
// with other methods.
type Tree struct {
	nodes []Node // index 0 is unused so that 0 denotes "no node"
	rel   Releaser
	log   commonlog.Logger
}

// at returns the node with index i, or nil if there is none.
func (t *Tree) at(i int32) *Node {
	if t == nil || i <= 0 || int(i) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[i]
}

// alloc adds a new node with the given shape and head event to the arena and
// returns its index. Pointers into the arena are invalidated by alloc.
func (t *Tree) alloc(shape Shape, head Event) int32 {
	id := int32(len(t.nodes))
	t.nodes = append(t.nodes, Node{t: t, id: id, shape: shape, head: head})
	return id
}

// appendChild makes child the last child of parent.
func (t *Tree) appendChild(parent, child int32) {
	p := &t.nodes[parent]
	if p.child == 0 {
		p.child = child
	} else {
		t.nodes[p.last].next = child
	}
	p.last = child
}

// Root returns the root node of t, or nil if t is closed.
func (t *Tree) Root() *Node { return t.at(1) }

// Len reports the number of documents in t.
func (t *Tree) Len() int { return t.Root().numChildren() }

// Document returns the document at index i of t, or nil if i is out of range.
func (t *Tree) Document(i int) *Node { return t.Root().nthChild(i) }

// Close releases every event held by t and discards its nodes. After Close,
// nodes of t report no values. Calling Close more than once is harmless.
func (t *Tree) Close() {
	if t.Root() == nil {
		return
	}
	t.destroy(1)
	t.nodes = nil
}

// destroy releases the events of the subtree rooted at id, and of the
// siblings following id, and resets the nodes. The walk uses an explicit
// stack so its depth does not depend on the depth of the tree.
func (t *Tree) destroy(id int32) int {
	garbage := stack.New[int32]()
	garbage.Push(id)
	var n int
	for !garbage.IsEmpty() {
		cur, _ := garbage.Pop()
		node := &t.nodes[cur]
		if node.next != 0 {
			garbage.Push(node.next)
		}
		if node.child != 0 {
			garbage.Push(node.child)
		}
		for _, e := range [...]Event{node.key, node.head, node.tail} {
			if e.Kind != NoEvent {
				t.rel.Release(e)
			}
		}
		*node = Node{}
		n++
	}
	return n
}
