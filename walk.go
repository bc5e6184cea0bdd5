// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package evtree

import (
	"github.com/creachadair/mds/stack"
)

// walk visits the subtree rooted at n in event order, calling open with each
// node when it is first visited and close once all its descendants have been
// visited. Scalars are visited in a single step, and only open is called for
// them. The siblings of n are not visited. If open or close reports an
// error, the walk stops and returns that error.
//
// The walk keeps the nodes whose descent is unfinished on an explicit stack,
// so its depth does not depend on the depth of the tree.
func walk(n *Node, open, close func(*Node) error) error {
	if n.Shape() == ShapeInvalid {
		return nil
	}
	t := n.t
	pending := stack.New[*Node]()
	pending.Push(n)
	next := func(c *Node) *Node {
		if c == n {
			return nil
		}
		return t.at(c.next)
	}

	for !pending.IsEmpty() {
		cur, _ := pending.Peek(0)

		var unwind bool
		if cur.shape.isScalar() {
			pending.Pop()
			if sib := next(cur); sib != nil {
				pending.Push(sib)
			} else {
				unwind = true
			}
		} else if c := t.at(cur.child); c != nil {
			pending.Push(c)
		} else {
			unwind = true
		}
		if err := open(cur); err != nil {
			return err
		}

		// Close finished ancestors until one of them has a sibling to visit.
		for unwind {
			p, ok := pending.Pop()
			if !ok {
				break
			}
			if err := close(p); err != nil {
				return err
			}
			if sib := next(p); sib != nil {
				pending.Push(sib)
				break
			}
		}
	}
	return nil
}

// Emit delivers the events of the subtree rooted at n to s, in the order
// they were assembled. If s reports an error, emission stops and Emit returns
// an error of concrete type [*SinkError]; the tree is not affected.
func (n *Node) Emit(s Sink) error {
	emit := func(evs []Event) error {
		for _, ev := range evs {
			if err := s.Emit(ev); err != nil {
				return &SinkError{Event: ev, Err: err}
			}
		}
		return nil
	}
	return walk(n,
		func(c *Node) error { return emit(c.opening()) },
		func(c *Node) error { return emit(c.closing()) },
	)
}

// Emit delivers the complete event stream of t to s.
// See [Node.Emit].
func (t *Tree) Emit(s Sink) error { return t.Root().Emit(s) }

// Events returns the complete event stream of t.
func (t *Tree) Events() []Event {
	var r Recorder
	_ = t.Emit(&r) // a Recorder does not fail
	return r.Events
}

// A DebugSink accepts a human-readable rendering of events, one per line,
// along with the nesting depth at which the event occurs.
type DebugSink interface {
	DebugLine(depth int, text string) error
}

// Debug renders the events of the subtree rooted at n to ds. Opening events
// are reported at the current depth, which then increases; closing events
// decrease the depth before they are reported.
func (n *Node) Debug(ds DebugSink) error {
	var depth int
	show := func(evs []Event) error {
		for _, ev := range evs {
			next, err := n.debugLine(ds, depth, ev)
			if err != nil {
				return err
			}
			depth = next
		}
		return nil
	}
	return walk(n,
		func(c *Node) error { return show(c.opening()) },
		func(c *Node) error { return show(c.closing()) },
	)
}

// Debug renders the complete event stream of t to ds.
// See [Node.Debug].
func (t *Tree) Debug(ds DebugSink) error { return t.Root().Debug(ds) }

// debugLine reports ev to ds at the given depth and returns the depth for
// the event that follows it. A depth that would become negative is clamped
// to zero and logged, since it means the events are not properly nested.
func (n *Node) debugLine(ds DebugSink, depth int, ev Event) (int, error) {
	next := depth
	switch {
	case ev.Kind.IsClosing():
		depth--
		next = depth
	case ev.Kind != Scalar && ev.Kind != Alias && ev.Kind != NoEvent:
		next = depth + 1
	}
	if depth < 0 {
		if t := n.tree(); t != nil && t.log != nil {
			t.log.Warningf("debug: indentation underflow at %v", ev)
		}
		depth, next = 0, 0
	}
	return next, ds.DebugLine(depth, ev.String())
}
