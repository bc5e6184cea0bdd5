// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package evtree

import (
	"errors"
	"fmt"
)

// ErrBuilderUsed is reported by Build when a Builder is used more than once.
var ErrBuilderUsed = errors.New("builder already used")

// Reason identifies the transition of the assembler that rejected an event.
type Reason int

// Constants defining the valid Reason values.
const (
	StreamAlreadyStarted      Reason = iota + 1 // stream-start with a non-empty stack
	UnexpectedStreamEnd                         // stream-end outside an open stream
	UnexpectedDocumentStart                     // document-start outside an open stream
	UnexpectedDocumentEnd                       // document-end outside an open document
	DocumentHasValue                            // a second root value in one document
	UnexpectedCollectionStart                   // mapping or sequence start in the wrong place
	UnexpectedCollectionEnd                     // unmatched or mismatched mapping or sequence end
	UnexpectedScalar                            // scalar in the wrong place
	AliasUnsupported                            // alias events are not supported
	UnknownEvent                                // an event of unknown kind
	IncompleteStream                            // end of input before stream-end
	DepthExceeded                               // nesting deeper than the configured limit
)

var reasonStr = [...]string{
	StreamAlreadyStarted:      "stream already started",
	UnexpectedStreamEnd:       "unexpected stream-end",
	UnexpectedDocumentStart:   "unexpected document-start",
	UnexpectedDocumentEnd:     "unexpected document-end",
	DocumentHasValue:          "document already has a root value",
	UnexpectedCollectionStart: "unexpected container-start",
	UnexpectedCollectionEnd:   "unexpected container-end",
	UnexpectedScalar:          "unexpected scalar",
	AliasUnsupported:          "alias unsupported",
	UnknownEvent:              "unknown event",
	IncompleteStream:          "incomplete stream",
	DepthExceeded:             "nesting depth exceeded",
}

func (r Reason) String() string {
	if r <= 0 || int(r) >= len(reasonStr) {
		return fmt.Sprintf("reason(%d)", int(r))
	}
	return reasonStr[r]
}

// GrammarError is the concrete type of errors reported when events arrive in
// an order the assembler does not accept.
type GrammarError struct {
	Reason Reason
	Event  Event // the offending event (zero for IncompleteStream)
	Top    Shape // shape of the innermost open node, or ShapeInvalid if none
}

// Error satisfies the error interface.
func (g *GrammarError) Error() string {
	var at string
	if pos := g.Event.Location.First; !pos.IsZero() {
		at = "at " + pos.String() + ": "
	}
	if g.Reason == IncompleteStream {
		return fmt.Sprintf("%s%v (in %v)", at, g.Reason, g.Top)
	}
	return fmt.Sprintf("%s%v (%v in %v)", at, g.Reason, g.Event.Kind, g.Top)
}

// SourceError is the concrete type of errors reported when the event source
// fails to deliver an event.
type SourceError struct {
	Err error
}

// Error satisfies the error interface.
func (s *SourceError) Error() string { return "event source: " + s.Err.Error() }

// Unwrap supports error wrapping.
func (s *SourceError) Unwrap() error { return s.Err }

// SinkError is the concrete type of errors reported when an event sink
// rejects an event during emission.
type SinkError struct {
	Event Event // the event the sink rejected
	Err   error
}

// Error satisfies the error interface.
func (s *SinkError) Error() string {
	return fmt.Sprintf("event sink: emit %v: %v", s.Event.Kind, s.Err)
}

// Unwrap supports error wrapping.
func (s *SinkError) Unwrap() error { return s.Err }
