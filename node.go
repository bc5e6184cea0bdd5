// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package evtree

import (
	"fmt"
	"iter"

	"github.com/creachadair/mds/value"
	"go4.org/mem"
)

// A Node is a single node of a Tree. The children of a node are the chain
// of siblings starting at its first child. See [Shape] for the events a node
// holds in each of its roles.
//
// The methods of a Node do not modify it, and a nil *Node is valid: it has
// no shape, no value, and no children. Methods that look for a node report
// nil when none is found.
type Node struct {
	t     *Tree
	id    int32
	shape Shape

	key  Event // the key of a Named shape
	head Event // the opening event, or the scalar value
	tail Event // the closing event, if any

	child, last, next int32
}

// upgrade converts an open key into the mapping entry whose value begins
// with ev. The former head of n becomes its key.
func (n *Node) upgrade(shape Shape, ev Event) {
	n.shape = shape
	n.key = n.head
	n.head = ev
}

// opening returns the events n contributes before its children.
func (n *Node) opening() []Event {
	if n.shape.IsNamed() {
		return []Event{n.key, n.head}
	}
	return []Event{n.head}
}

// closing returns the events n contributes after its children.
func (n *Node) closing() []Event {
	if n.shape.isScalar() || n.tail.Kind == NoEvent {
		return nil
	}
	return []Event{n.tail}
}

func (n *Node) tree() *Tree {
	if n == nil {
		return nil
	}
	return n.t
}

// Shape reports the shape of n, or ShapeInvalid if n is nil.
func (n *Node) Shape() Shape {
	if n == nil {
		return ShapeInvalid
	}
	return n.shape
}

// resolve unwraps a root holding exactly one document, and a document
// holding a value, to the value they contain.
func (n *Node) resolve() *Node {
	for n != nil {
		switch n.shape {
		case Root:
			if n.child == 0 || n.child != n.last {
				return n
			}
		case Document:
			if n.child == 0 {
				return n
			}
		default:
			return n
		}
		n = n.t.at(n.child)
	}
	return nil
}

// Content returns the value node of n. For a document, or a root holding
// exactly one document, this is the node for the document's value, or nil if
// the document is empty. Any other node is its own content.
func (n *Node) Content() *Node {
	r := n.resolve()
	if r.Shape() == Document {
		return nil
	}
	return r
}

// Type reports the logical type of the value of n. A root node holding a
// single document, and a document node, report the type of their value. A
// root holding zero or several documents is a sequence of those documents.
// An empty document is a scalar with no value. A nil node reports NoType.
func (n *Node) Type() Type {
	switch n.resolve().Shape() {
	case BareScalar, NamedScalar, Document:
		return ScalarType
	case BareMapping, NamedMapping:
		return MappingType
	case BareSequence, NamedSequence, Root:
		return SequenceType
	}
	return NoType
}

// Name reports the key of n, if n is a mapping entry.
func (n *Node) Name() ([]byte, bool) {
	if !n.Shape().IsNamed() {
		return nil, false
	}
	return n.key.Value, true
}

// Value reports the scalar payload of n, if n is a scalar. For a mapping
// entry with a scalar value this is the value, not the key.
func (n *Node) Value() ([]byte, bool) {
	r := n.resolve()
	if !r.Shape().isScalar() {
		return nil, false
	}
	return r.head.Value, true
}

// Text returns the scalar payload of n as a string, or "" if n is not a
// scalar.
func (n *Node) Text() string {
	v, _ := n.Value()
	return string(v)
}

// Len reports the length in bytes of the value of n if n is a scalar, or
// otherwise the number of children of n.
func (n *Node) Len() int {
	r := n.resolve()
	if r.Shape().isScalar() {
		return len(r.head.Value)
	}
	return r.numChildren()
}

func (n *Node) numChildren() int {
	if n == nil {
		return 0
	}
	var cnt int
	for c := n.t.at(n.child); c != nil; c = n.t.at(c.next) {
		cnt++
	}
	return cnt
}

func (n *Node) nthChild(i int) *Node {
	if n == nil || i < 0 {
		return nil
	}
	c := n.t.at(n.child)
	for ; c != nil && i > 0; i-- {
		c = n.t.at(c.next)
	}
	return c
}

// Child returns the child of n at offset i (0-based), or nil if i is out of
// range. Scalars have no children.
func (n *Node) Child(i int) *Node {
	r := n.resolve()
	if r.Shape().isScalar() {
		return nil
	}
	return r.nthChild(i)
}

// FirstChild returns the first child of n, or nil if it has none.
func (n *Node) FirstChild() *Node { return n.Child(0) }

// ChildNamed returns the first entry of n whose key is exactly key, or nil if
// n is not a mapping or has no such entry.
func (n *Node) ChildNamed(key string) *Node {
	r := n.resolve()
	if !r.Shape().isMapping() {
		return nil
	}
	for c := r.t.at(r.child); c != nil; c = r.t.at(c.next) {
		if name, ok := c.Name(); ok && mem.B(name).EqualString(key) {
			return c
		}
	}
	return nil
}

// Sibling returns the next sibling of n, or nil if it has none.
func (n *Node) Sibling() *Node {
	if n == nil {
		return nil
	}
	return n.t.at(n.next)
}

// Children returns a sequence over the children of n, in order.
func (n *Node) Children() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for c := n.FirstChild(); c != nil; c = c.Sibling() {
			if !yield(c) {
				return
			}
		}
	}
}

// Values looks up the scalar value of the entry of n named by each of keys.
// The result has one element per key, absent if n has no such entry or its
// value is not a scalar. It also reports the number of values found.
func (n *Node) Values(keys []string) ([]value.Maybe[[]byte], int) {
	out := make([]value.Maybe[[]byte], len(keys))
	var found int
	for i, key := range keys {
		if v, ok := n.ChildNamed(key).Value(); ok {
			out[i] = value.Just(v)
			found++
		}
	}
	return out, found
}

func (n *Node) String() string {
	if n == nil {
		return "Node(nil)"
	}
	if name, ok := n.Name(); ok {
		return fmt.Sprintf("Node(%v, name=%q, len=%d)", n.shape, name, n.Len())
	}
	return fmt.Sprintf("Node(%v, len=%d)", n.shape, n.Len())
}
