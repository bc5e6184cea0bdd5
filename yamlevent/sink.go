// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package yamlevent

import (
	"errors"
	"fmt"
	"io"

	"github.com/creachadair/evtree"
	"github.com/creachadair/mds/stack"
	"gopkg.in/yaml.v3"
)

// A Sink renders events as YAML text to an io.Writer. Each document is
// encoded when its end event arrives; the encoder is closed at the end of
// the stream. A document with no value is written as null, and a stream
// with no documents writes nothing.
type Sink struct {
	enc  *yaml.Encoder
	stk  *stack.Stack[*yaml.Node]
	ndoc int // documents encoded
	done bool
}

// NewSink constructs a Sink that writes YAML text to w, indenting nested
// blocks by two spaces.
func NewSink(w io.Writer) *Sink {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return &Sink{enc: enc, stk: stack.New[*yaml.Node]()}
}

// SetIndent sets the number of spaces used to indent nested blocks.
func (s *Sink) SetIndent(n int) { s.enc.SetIndent(n) }

// Emit implements the evtree.Sink interface.
func (s *Sink) Emit(ev evtree.Event) error {
	if s.done {
		return errors.New("event after end of stream")
	}
	switch ev.Kind {
	case evtree.StreamStart:
		if !s.stk.IsEmpty() {
			return errors.New("unexpected stream start")
		}
		return nil

	case evtree.StreamEnd:
		if !s.stk.IsEmpty() {
			return fmt.Errorf("stream ended with %d open nodes", s.stk.Len())
		}
		s.done = true
		if s.ndoc == 0 {
			return nil // Close fails if no document was encoded
		}
		return s.enc.Close()

	case evtree.DocumentStart:
		if !s.stk.IsEmpty() {
			return errors.New("nested document")
		}
		s.stk.Push(&yaml.Node{Kind: yaml.DocumentNode})
		return nil

	case evtree.DocumentEnd:
		doc, err := s.pop(yaml.DocumentNode, ev)
		if err != nil {
			return err
		}
		if len(doc.Content) == 0 {
			doc.Content = append(doc.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"})
		}
		s.ndoc++
		return s.enc.Encode(doc)

	case evtree.MappingStart, evtree.SequenceStart:
		kind := yaml.MappingNode
		if ev.Kind == evtree.SequenceStart {
			kind = yaml.SequenceNode
		}
		n := s.newNode(kind, ev)
		if err := s.add(n); err != nil {
			return err
		}
		s.stk.Push(n)
		return nil

	case evtree.MappingEnd:
		m, err := s.pop(yaml.MappingNode, ev)
		if err == nil && len(m.Content)%2 != 0 {
			return errors.New("mapping key without a value")
		}
		return err

	case evtree.SequenceEnd:
		_, err := s.pop(yaml.SequenceNode, ev)
		return err

	case evtree.Scalar:
		n := s.newNode(yaml.ScalarNode, ev)
		n.Value = string(ev.Value)
		return s.add(n)

	case evtree.Alias:
		return fmt.Errorf("alias %q is not supported", ev.Value)

	default:
		return fmt.Errorf("unknown event kind %v", ev.Kind)
	}
}

func (s *Sink) newNode(kind yaml.Kind, ev evtree.Event) *yaml.Node {
	n := &yaml.Node{Kind: kind, Anchor: ev.Anchor, Style: nodeStyle(ev.Style)}
	if ev.Tag != "" {
		n.Tag = ev.Tag
		n.Style |= yaml.TaggedStyle
	}
	return n
}

// add appends n to the content of the node at the top of the stack.
func (s *Sink) add(n *yaml.Node) error {
	top, ok := s.stk.Peek(0)
	if !ok {
		return errors.New("value outside a document")
	} else if top.Kind == yaml.DocumentNode && len(top.Content) != 0 {
		return errors.New("document has multiple values")
	}
	top.Content = append(top.Content, n)
	return nil
}

// pop removes the node at the top of the stack, which must have the given
// kind.
func (s *Sink) pop(kind yaml.Kind, ev evtree.Event) (*yaml.Node, error) {
	top, ok := s.stk.Peek(0)
	if !ok || top.Kind != kind {
		return nil, fmt.Errorf("unexpected %v", ev.Kind)
	}
	s.stk.Pop()
	return top, nil
}
