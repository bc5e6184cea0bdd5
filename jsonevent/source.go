// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jsonevent converts between JSON text and evtree event streams.
//
// A Source parses JSON, including the JWCC extensions (comments and trailing
// commas), and reports its structure as events. A Sink renders an event
// stream as JSON text, one document per line.
package jsonevent

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/creachadair/evtree"
	"github.com/creachadair/evtree/internal/escape"
	"github.com/creachadair/evtree/internal/textpool"
	"github.com/tailscale/hujson"
	"go4.org/mem"
)

// A Source reports the events of a single JSON value read from an
// io.Reader. The input is read and parsed in full on the first call to Next.
type Source struct {
	r      io.Reader
	pool   textpool.Pool
	lines  []int // offsets of line starts
	events []evtree.Event
	pos    int
	err    error
	loaded bool
}

// NewSource constructs a Source that reads JSON text from r.
func NewSource(r io.Reader) *Source { return &Source{r: r} }

// Next implements the evtree.Source interface. Errors reading or parsing
// the input are reported by the first call.
func (s *Source) Next() (evtree.Event, error) {
	if !s.loaded {
		s.loaded = true
		s.err = s.load()
	}
	if s.err != nil {
		return evtree.Event{}, s.err
	} else if s.pos >= len(s.events) {
		return evtree.Event{}, io.EOF
	}
	ev := s.events[s.pos]
	s.events[s.pos] = evtree.Event{}
	s.pos++
	return ev, nil
}

func (s *Source) load() error {
	data, err := io.ReadAll(s.r)
	if err != nil {
		return err
	}
	s.indexLines(data)
	s.events = append(s.events, evtree.Event{Kind: evtree.StreamStart})
	if len(bytes.TrimSpace(data)) != 0 {
		v, err := hujson.Parse(data)
		if err != nil {
			return fmt.Errorf("parse: %w", err)
		}
		s.events = append(s.events, s.event(evtree.DocumentStart, v.StartOffset, v.EndOffset))
		if err := s.flatten(&v); err != nil {
			return err
		}
		s.events = append(s.events, s.event(evtree.DocumentEnd, v.EndOffset, v.EndOffset))
	}
	s.events = append(s.events, s.event(evtree.StreamEnd, len(data), len(data)))
	return nil
}

// flatten appends the events for v to s.events.
func (s *Source) flatten(v *hujson.Value) error {
	switch t := v.Value.(type) {
	case *hujson.Object:
		start := s.event(evtree.MappingStart, v.StartOffset, v.EndOffset)
		start.Style = evtree.Flow
		s.events = append(s.events, start)
		for i := range t.Members {
			m := &t.Members[i]
			if err := s.scalar(&m.Name); err != nil {
				return err
			}
			if err := s.flatten(&m.Value); err != nil {
				return err
			}
		}
		s.events = append(s.events, s.event(evtree.MappingEnd, v.EndOffset-1, v.EndOffset))

	case *hujson.Array:
		start := s.event(evtree.SequenceStart, v.StartOffset, v.EndOffset)
		start.Style = evtree.Flow
		s.events = append(s.events, start)
		for i := range t.Elements {
			if err := s.flatten(&t.Elements[i]); err != nil {
				return err
			}
		}
		s.events = append(s.events, s.event(evtree.SequenceEnd, v.EndOffset-1, v.EndOffset))

	case hujson.Literal:
		return s.scalar(v)

	default:
		return fmt.Errorf("offset %d: unexpected value type %T", v.StartOffset, v.Value)
	}
	return nil
}

func (s *Source) scalar(v *hujson.Value) error {
	lit, ok := v.Value.(hujson.Literal)
	if !ok {
		return fmt.Errorf("offset %d: object key is not a string", v.StartOffset)
	}
	ev := s.event(evtree.Scalar, v.StartOffset, v.EndOffset)
	if lit.Kind() == '"' {
		text, err := escape.Unquote(mem.B(lit))
		if err != nil {
			return fmt.Errorf("offset %d: %w", v.StartOffset, err)
		}
		ev.Value = text
		ev.Style = evtree.DoubleQuoted
	} else {
		ev.Value = s.pool.Copy(lit)
	}
	s.events = append(s.events, ev)
	return nil
}

func (s *Source) event(kind evtree.Kind, pos, end int) evtree.Event {
	return evtree.Event{Kind: kind, Location: evtree.Location{
		Span:  evtree.Span{Pos: pos, End: end},
		First: s.lineCol(pos),
		Last:  s.lineCol(end),
	}}
}

func (s *Source) indexLines(data []byte) {
	s.lines = append(s.lines[:0], 0)
	for i, b := range data {
		if b == '\n' {
			s.lines = append(s.lines, i+1)
		}
	}
}

func (s *Source) lineCol(offset int) evtree.LineCol {
	i := sort.Search(len(s.lines), func(i int) bool { return s.lines[i] > offset }) - 1
	if i < 0 {
		return evtree.LineCol{}
	}
	return evtree.LineCol{Line: i + 1, Column: offset - s.lines[i]}
}
