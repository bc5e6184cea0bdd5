// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package yamlevent converts between YAML text and evtree event streams.
//
// A Source decodes a YAML stream one document at a time and reports the
// structure of each as events. A Sink collects events into YAML documents
// and encodes each as its end event arrives.
package yamlevent

import (
	"errors"
	"fmt"
	"io"

	"github.com/creachadair/evtree"
	"github.com/creachadair/evtree/internal/textpool"
	"gopkg.in/yaml.v3"
)

// A Source reports the events of a YAML stream read from an io.Reader.
type Source struct {
	dec   *yaml.Decoder
	pool  textpool.Pool
	queue []evtree.Event
	pos   int
	err   error

	started, done bool
}

// NewSource constructs a Source that reads YAML text from r.
func NewSource(r io.Reader) *Source { return &Source{dec: yaml.NewDecoder(r)} }

// Next implements the evtree.Source interface.
func (s *Source) Next() (evtree.Event, error) {
	if s.err != nil {
		return evtree.Event{}, s.err
	}
	if s.pos < len(s.queue) {
		ev := s.queue[s.pos]
		s.queue[s.pos] = evtree.Event{}
		s.pos++
		return ev, nil
	} else if s.done {
		return evtree.Event{}, io.EOF
	} else if !s.started {
		s.started = true
		return evtree.Event{Kind: evtree.StreamStart}, nil
	}

	var doc yaml.Node
	if err := s.dec.Decode(&doc); errors.Is(err, io.EOF) {
		s.done = true
		return evtree.Event{Kind: evtree.StreamEnd}, nil
	} else if err != nil {
		s.err = err
		return evtree.Event{}, err
	}
	s.queue, s.pos = s.queue[:0], 0
	if err := s.flatten(&doc); err != nil {
		s.err = err
		return evtree.Event{}, err
	}
	return s.Next()
}

// flatten appends the events for n to the queue.
func (s *Source) flatten(n *yaml.Node) error {
	ev := evtree.Event{
		Anchor:   n.Anchor,
		Location: location(n),
	}
	if n.Style&yaml.TaggedStyle != 0 {
		ev.Tag = n.Tag
	}

	var end evtree.Kind
	switch n.Kind {
	case yaml.DocumentNode:
		ev.Kind, end = evtree.DocumentStart, evtree.DocumentEnd
	case yaml.MappingNode:
		ev.Kind, end = evtree.MappingStart, evtree.MappingEnd
	case yaml.SequenceNode:
		ev.Kind, end = evtree.SequenceStart, evtree.SequenceEnd
	case yaml.ScalarNode:
		ev.Kind = evtree.Scalar
		ev.Value = s.pool.CopyString(n.Value)
	case yaml.AliasNode:
		ev.Kind = evtree.Alias
		ev.Value = s.pool.CopyString(n.Value)
	default:
		return fmt.Errorf("line %d: unknown node kind %d", n.Line, n.Kind)
	}
	ev.Style = eventStyle(n.Style)
	s.queue = append(s.queue, ev)
	if end == evtree.NoEvent {
		return nil
	}
	for _, c := range n.Content {
		if err := s.flatten(c); err != nil {
			return err
		}
	}
	s.queue = append(s.queue, evtree.Event{Kind: end})
	return nil
}

func location(n *yaml.Node) evtree.Location {
	if n.Line == 0 {
		return evtree.Location{}
	}
	pos := evtree.LineCol{Line: n.Line, Column: max(n.Column-1, 0)}
	return evtree.Location{First: pos, Last: pos}
}

func eventStyle(st yaml.Style) evtree.Style {
	switch {
	case st&yaml.DoubleQuotedStyle != 0:
		return evtree.DoubleQuoted
	case st&yaml.SingleQuotedStyle != 0:
		return evtree.SingleQuoted
	case st&yaml.LiteralStyle != 0:
		return evtree.Literal
	case st&yaml.FoldedStyle != 0:
		return evtree.Folded
	case st&yaml.FlowStyle != 0:
		return evtree.Flow
	}
	return evtree.Plain
}

func nodeStyle(st evtree.Style) yaml.Style {
	switch st {
	case evtree.DoubleQuoted:
		return yaml.DoubleQuotedStyle
	case evtree.SingleQuoted:
		return yaml.SingleQuotedStyle
	case evtree.Literal:
		return yaml.LiteralStyle
	case evtree.Folded:
		return yaml.FoldedStyle
	case evtree.Flow:
		return yaml.FlowStyle
	}
	return 0
}
