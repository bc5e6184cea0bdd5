// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package evtree

import (
	"fmt"
	"io"
	"strings"
)

// Kind is the type of a structural event.
type Kind byte

// Constants defining the valid Kind values.
const (
	NoEvent       Kind = iota // no event; an empty slot marker
	StreamStart               // start of the event stream
	StreamEnd                 // end of the event stream
	DocumentStart             // start of a document
	DocumentEnd               // end of a document
	SequenceStart             // start of a sequence
	SequenceEnd               // end of a sequence
	MappingStart              // start of a mapping
	MappingEnd                // end of a mapping
	Scalar                    // a scalar leaf value
	Alias                     // a reference to an anchored node (unsupported)
)

var kindStr = [...]string{
	NoEvent:       "no-event",
	StreamStart:   "stream-start",
	StreamEnd:     "stream-end",
	DocumentStart: "document-start",
	DocumentEnd:   "document-end",
	SequenceStart: "sequence-start",
	SequenceEnd:   "sequence-end",
	MappingStart:  "mapping-start",
	MappingEnd:    "mapping-end",
	Scalar:        "scalar",
	Alias:         "alias",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return fmt.Sprintf("kind(%d)", v)
	}
	return kindStr[v]
}

// IsClosing reports whether k ends a stream, document, or collection.
func (k Kind) IsClosing() bool {
	return k == StreamEnd || k == DocumentEnd || k == SequenceEnd || k == MappingEnd
}

// Style records the presentation style a source reported for an event.
// The tree does not interpret styles; they are preserved for sinks.
type Style byte

// Constants defining the valid Style values.
const (
	Plain        Style = iota // unquoted scalar or block collection
	SingleQuoted              // 'scalar'
	DoubleQuoted              // "scalar"
	Literal                   // |-style block scalar
	Folded                    // >-style block scalar
	Flow                      // flow collection, [..] or {..}
)

var styleStr = [...]string{
	Plain:        "plain",
	SingleQuoted: "single-quoted",
	DoubleQuoted: "double-quoted",
	Literal:      "literal",
	Folded:       "folded",
	Flow:         "flow",
}

func (s Style) String() string {
	v := int(s)
	if v >= len(styleStr) {
		return fmt.Sprintf("style(%d)", v)
	}
	return styleStr[v]
}

// An Event is a single structural token. For Scalar events Value holds the
// payload bytes; for Alias events it holds the alias name. Once an event is
// handed to a Builder, the Builder owns Value and the caller must not modify
// it.
type Event struct {
	Kind   Kind
	Value  []byte
	Anchor string
	Tag    string
	Style  Style

	Location Location
}

// Len reports the length in bytes of the event payload.
func (e Event) Len() int { return len(e.Value) }

// String renders e in a human-readable form, for example:
//
//	mapping-start
//	scalar "age"
//	scalar &a !!str "x"
func (e Event) String() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	if e.Anchor != "" {
		fmt.Fprintf(&sb, " &%s", e.Anchor)
	}
	if e.Tag != "" {
		fmt.Fprintf(&sb, " %s", e.Tag)
	}
	switch e.Kind {
	case Scalar:
		fmt.Fprintf(&sb, " %q", e.Value)
	case Alias:
		fmt.Fprintf(&sb, " *%s", e.Value)
	}
	return sb.String()
}

// A Source delivers events one at a time. Next returns io.EOF when no
// further events are available; any other error reports a failure of the
// source. Once Next has reported an error the caller must not call it again.
type Source interface {
	Next() (Event, error)
}

// A Sink accepts events one at a time, in the order presented.
type Sink interface {
	Emit(Event) error
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func() (Event, error)

// Next implements the Source interface.
func (f SourceFunc) Next() (Event, error) { return f() }

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event) error

// Emit implements the Sink interface.
func (f SinkFunc) Emit(e Event) error { return f(e) }

// SliceSource returns a Source that delivers the events of evs in order, and
// then reports io.EOF.
func SliceSource(evs []Event) Source {
	return SourceFunc(func() (Event, error) {
		if len(evs) == 0 {
			return Event{}, io.EOF
		}
		next := evs[0]
		evs = evs[1:]
		return next, nil
	})
}

// A Recorder is a Sink that appends each event to a slice.
type Recorder struct {
	Events []Event
}

// Emit implements the Sink interface.
func (r *Recorder) Emit(e Event) error { r.Events = append(r.Events, e); return nil }
