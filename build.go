// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package evtree

import (
	"errors"
	"io"

	"github.com/creachadair/mds/stack"
	"github.com/tliron/commonlog"
)

// A Builder assembles a Tree from the events of a Source.
type Builder struct {
	src      Source
	rel      Releaser
	log      commonlog.Logger
	maxDepth int
	used     bool
}

// NewBuilder constructs a new Builder that consumes events from src.
func NewBuilder(src Source) *Builder {
	return &Builder{
		src: src,
		rel: nopReleaser{},
		log: commonlog.GetLogger("evtree"),
	}
}

// Build assembles a tree from the events of src with default settings.
func Build(src Source) (*Tree, error) { return NewBuilder(src).Build() }

// SetReleaser configures b to report released events to r. If r == nil,
// released events are discarded.
func (b *Builder) SetReleaser(r Releaser) {
	if r == nil {
		r = nopReleaser{}
	}
	b.rel = r
}

// SetLogger configures the logger used by b and by the trees it builds.
// If log == nil, the default "evtree" logger is used.
func (b *Builder) SetLogger(log commonlog.Logger) {
	if log == nil {
		log = commonlog.GetLogger("evtree")
	}
	b.log = log
}

// SetMaxDepth limits the number of simultaneously open nodes (the stream,
// documents, collections and mapping keys awaiting a value) to n.
// If n <= 0, nesting is unlimited.
func (b *Builder) SetMaxDepth(n int) { b.maxDepth = n }

// Build consumes events from the source until the stream is complete, and
// returns the resulting tree. The source is not called again after the
// stream-end event.
//
// If the source fails, Build reports an error of concrete type
// [*SourceError]. If events arrive in an order that does not describe a
// well-formed stream, including an end of input before stream-end, Build
// reports an error of concrete type [*GrammarError]. In either case every
// event pulled from the source has been released before Build returns.
//
// A Builder may only be used once.
func (b *Builder) Build() (*Tree, error) {
	if b.used {
		return nil, ErrBuilderUsed
	}
	b.used = true

	a := &assembler{
		t:        &Tree{nodes: make([]Node, 1, 64), rel: b.rel, log: b.log},
		wip:      stack.New[int32](),
		maxDepth: b.maxDepth,
	}
	for {
		ev, err := b.src.Next()
		if errors.Is(err, io.EOF) {
			return nil, a.rollback(Event{}, a.fail(IncompleteStream, Event{}))
		} else if err != nil {
			return nil, a.rollback(Event{}, &SourceError{Err: err})
		}

		done, gerr := a.step(ev)
		if gerr != nil {
			return nil, a.rollback(ev, gerr)
		} else if done {
			return a.t, nil
		}
	}
}

// An assembler is a pushdown automaton over events. The work-in-progress
// stack holds the indices of the nodes that are open: the stream, documents,
// collections, and scalar keys awaiting their value. A NamedMapping or
// NamedSequence on the stack stands for the open scope of its value.
type assembler struct {
	t        *Tree
	wip      *stack.Stack[int32]
	maxDepth int
}

// top returns the index and shape of the innermost open node, or 0 and
// ShapeInvalid if the stack is empty.
func (a *assembler) top() (int32, Shape) {
	id, ok := a.wip.Peek(0)
	if !ok {
		return 0, ShapeInvalid
	}
	return id, a.t.nodes[id].shape
}

func (a *assembler) fail(r Reason, ev Event) *GrammarError {
	_, shape := a.top()
	return &GrammarError{Reason: r, Event: ev, Top: shape}
}

func (a *assembler) push(id int32) { a.wip.Push(id) }

// canPush reports whether one more node may be opened.
func (a *assembler) canPush() bool { return a.maxDepth <= 0 || a.wip.Len() < a.maxDepth }

// add allocates a node with the given shape and head event, and appends it
// as the last child of parent.
func (a *assembler) add(parent int32, shape Shape, ev Event) int32 {
	id := a.t.alloc(shape, ev)
	a.t.appendChild(parent, id)
	return id
}

// step applies a single event. It reports done == true when the event
// completed the stream. If step reports an error, ev has not been stored.
func (a *assembler) step(ev Event) (done bool, _ error) {
	id, shape := a.top()
	switch ev.Kind {
	case NoEvent:
		return false, nil

	case StreamStart:
		if shape != ShapeInvalid {
			return false, a.fail(StreamAlreadyStarted, ev)
		}
		a.push(a.t.alloc(Root, ev))

	case StreamEnd:
		if shape != Root {
			return false, a.fail(UnexpectedStreamEnd, ev)
		}
		a.t.nodes[id].tail = ev
		a.wip.Pop()
		return true, nil

	case DocumentStart:
		if shape != Root {
			return false, a.fail(UnexpectedDocumentStart, ev)
		} else if !a.canPush() {
			return false, a.fail(DepthExceeded, ev)
		}
		a.push(a.add(id, Document, ev))

	case DocumentEnd:
		if shape != Document {
			return false, a.fail(UnexpectedDocumentEnd, ev)
		}
		a.t.nodes[id].tail = ev
		a.wip.Pop()

	case MappingStart:
		return false, a.startCollection(id, shape, ev, BareMapping, NamedMapping)

	case SequenceStart:
		return false, a.startCollection(id, shape, ev, BareSequence, NamedSequence)

	case MappingEnd:
		if !shape.isMapping() {
			return false, a.fail(UnexpectedCollectionEnd, ev)
		}
		a.t.nodes[id].tail = ev
		a.wip.Pop()

	case SequenceEnd:
		if !shape.isSequence() {
			return false, a.fail(UnexpectedCollectionEnd, ev)
		}
		a.t.nodes[id].tail = ev
		a.wip.Pop()

	case Scalar:
		switch {
		case shape.isSequence():
			a.add(id, BareScalar, ev) // an element, complete as it stands

		case shape == Document:
			if a.t.nodes[id].child != 0 {
				return false, a.fail(DocumentHasValue, ev)
			}
			// A document's value may be a bare scalar.
			a.add(id, BareScalar, ev)

		case shape.isMapping():
			if !a.canPush() {
				return false, a.fail(DepthExceeded, ev)
			}
			a.push(a.add(id, BareScalar, ev)) // a key awaiting its value

		case shape == BareScalar:
			// The scalar atop the stack is a key, and this is its value.
			a.t.nodes[id].upgrade(NamedScalar, ev)
			a.wip.Pop()

		default:
			return false, a.fail(UnexpectedScalar, ev)
		}

	case Alias:
		return false, a.fail(AliasUnsupported, ev)

	default:
		return false, a.fail(UnknownEvent, ev)
	}
	return false, nil
}

// startCollection handles a mapping-start or sequence-start event.
func (a *assembler) startCollection(id int32, shape Shape, ev Event, bare, named Shape) error {
	switch {
	case shape == Document && a.t.nodes[id].child != 0:
		return a.fail(DocumentHasValue, ev)

	case shape == Document || shape.isSequence():
		if !a.canPush() {
			return a.fail(DepthExceeded, ev)
		}
		a.push(a.add(id, bare, ev))

	case shape == BareScalar:
		// The key atop the stack takes this collection as its value. It stays
		// on the stack as the open scope of the collection.
		a.t.nodes[id].upgrade(named, ev)

	default:
		return a.fail(UnexpectedCollectionStart, ev)
	}
	return nil
}

// rollback discards the partial tree after a failure. The offending event, if
// any, is released, the stack is drained, and the subtree rooted at its
// bottom entry is destroyed. It returns err.
func (a *assembler) rollback(ev Event, err error) error {
	if ev.Kind != NoEvent {
		a.t.rel.Release(ev)
	}
	var bottom int32
	for !a.wip.IsEmpty() {
		bottom, _ = a.wip.Pop()
	}
	var n int
	if bottom != 0 {
		n = a.t.destroy(bottom)
	}
	a.t.nodes = nil
	a.t.log.Debugf("build failed: %v (discarded %d nodes)", err, n)
	return err
}
