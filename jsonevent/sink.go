// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonevent

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/evtree"
	"github.com/creachadair/evtree/internal/escape"
	"github.com/creachadair/mds/stack"
	"github.com/tailscale/hujson"
	"go4.org/mem"
)

// A Sink renders events as JSON text to an io.Writer. Each document is
// written when its end event arrives, followed by a newline. A document with
// no value is written as null.
//
// Scalars are written as JSON strings unless they are unquoted and their
// text is a valid JSON number, true, false, or null.
type Sink struct {
	w      io.Writer
	indent string
	buf    []byte
	stk    *stack.Stack[*frame]
	done   bool
}

type frame struct {
	kind  evtree.Kind // DocumentStart, MappingStart, or SequenceStart
	n     int         // number of values written
	isKey bool        // for mappings: the next scalar is a key
}

// NewSink constructs a Sink that writes JSON text to w.
func NewSink(w io.Writer) *Sink { return &Sink{w: w, stk: stack.New[*frame]()} }

// SetIndent configures s to pretty-print documents, indenting each nesting
// level by indent. An empty indent, the default, writes compact output.
func (s *Sink) SetIndent(indent string) { s.indent = indent }

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
			return fmt.Errorf("stream ended with %d open values", s.stk.Len())
		}
		s.done = true
		return nil

	case evtree.DocumentStart:
		if !s.stk.IsEmpty() {
			return errors.New("nested document")
		}
		s.stk.Push(&frame{kind: evtree.DocumentStart})
		return nil

	case evtree.DocumentEnd:
		top, ok := s.stk.Peek(0)
		if !ok || top.kind != evtree.DocumentStart {
			return errors.New("unexpected document end")
		}
		s.stk.Pop()
		if top.n == 0 {
			s.buf = append(s.buf, "null"...)
		}
		s.buf = append(s.buf, '\n')
		_, err := s.w.Write(s.buf)
		s.buf = s.buf[:0]
		return err

	case evtree.MappingStart, evtree.SequenceStart:
		if err := s.beginValue(); err != nil {
			return err
		}
		if ev.Kind == evtree.MappingStart {
			s.buf = append(s.buf, '{')
		} else {
			s.buf = append(s.buf, '[')
		}
		s.stk.Push(&frame{kind: ev.Kind, isKey: true})
		return nil

	case evtree.MappingEnd, evtree.SequenceEnd:
		start := evtree.MappingStart
		if ev.Kind == evtree.SequenceEnd {
			start = evtree.SequenceStart
		}
		top, ok := s.stk.Peek(0)
		if !ok || top.kind != start {
			return fmt.Errorf("unexpected %v", ev.Kind)
		} else if start == evtree.MappingStart && !top.isKey {
			return errors.New("mapping key without a value")
		}
		s.stk.Pop()
		if top.n != 0 {
			s.newline()
		}
		if start == evtree.MappingStart {
			s.buf = append(s.buf, '}')
		} else {
			s.buf = append(s.buf, ']')
		}
		return nil

	case evtree.Scalar:
		if top, ok := s.stk.Peek(0); ok && top.kind == evtree.MappingStart && top.isKey {
			s.beginEntry()
			s.buf = escape.AppendQuote(s.buf, mem.B(ev.Value))
			s.buf = append(s.buf, ':')
			if s.indent != "" {
				s.buf = append(s.buf, ' ')
			}
			return nil
		}
		if err := s.beginValue(); err != nil {
			return err
		}
		if ev.Style == evtree.Plain && isLiteral(ev.Value) {
			s.buf = append(s.buf, ev.Value...)
		} else {
			s.buf = escape.AppendQuote(s.buf, mem.B(ev.Value))
		}
		return nil

	case evtree.Alias:
		return fmt.Errorf("alias %q is not supported", ev.Value)

	default:
		return fmt.Errorf("unknown event kind %v", ev.Kind)
	}
}

// beginEntry starts a new mapping entry at the top of the stack.
func (s *Sink) beginEntry() {
	top, _ := s.stk.Peek(0)
	if top.n != 0 {
		s.buf = append(s.buf, ',')
	}
	top.n++
	top.isKey = false
	s.newline()
}

// beginValue prepares to write a value in the context at the top of the
// stack, writing separators as needed.
func (s *Sink) beginValue() error {
	top, ok := s.stk.Peek(0)
	if !ok {
		return errors.New("value outside a document")
	}
	switch top.kind {
	case evtree.DocumentStart:
		if top.n != 0 {
			return errors.New("document has multiple values")
		}
	case evtree.MappingStart:
		if top.isKey {
			return errors.New("mapping key is not a scalar")
		}
		top.isKey = true
		return nil
	case evtree.SequenceStart:
		if top.n != 0 {
			s.buf = append(s.buf, ',')
		}
		top.n++
		s.newline()
		return nil
	}
	top.n++
	return nil
}

// newline starts a new line indented to the current depth, if s is
// configured to indent its output.
func (s *Sink) newline() {
	if s.indent == "" {
		return
	}
	s.buf = append(s.buf, '\n')
	s.buf = append(s.buf, strings.Repeat(s.indent, s.stk.Len()-1)...)
}

// isLiteral reports whether text is exactly a JSON number, true, false, or
// null.
func isLiteral(text []byte) bool {
	if len(text) == 0 {
		return false
	}
	v, err := hujson.Parse(text)
	if err != nil || len(v.BeforeExtra) != 0 || len(v.AfterExtra) != 0 {
		return false
	}
	lit, ok := v.Value.(hujson.Literal)
	return ok && lit.Kind() != '"'
}
