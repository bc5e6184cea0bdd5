// Package testutil defines support code for unit tests.
//
// Event sequences are written in a compact notation, one token per event,
// separated by whitespace:
//
//	+STR -STR   stream start, end
//	+DOC -DOC   document start, end
//	+MAP -MAP   mapping start, end
//	+SEQ -SEQ   sequence start, end
//	=text       scalar with payload "text"; "=" alone is an empty scalar
//	*name       alias of "name"
//	~           no event
//
// In scalar payloads, the escape \s stands for a space and \\ for a
// backslash.
package testutil

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/creachadair/evtree"
)

var markers = map[string]evtree.Kind{
	"+STR": evtree.StreamStart,
	"-STR": evtree.StreamEnd,
	"+DOC": evtree.DocumentStart,
	"-DOC": evtree.DocumentEnd,
	"+MAP": evtree.MappingStart,
	"-MAP": evtree.MappingEnd,
	"+SEQ": evtree.SequenceStart,
	"-SEQ": evtree.SequenceEnd,
	"~":    evtree.NoEvent,
}

var unescape = strings.NewReplacer(`\s`, " ", `\\`, `\`)
var escape = strings.NewReplacer(`\`, `\\`, " ", `\s`)

// Events parses a sequence of events in the notation described by the
// package comment. It panics if s is not valid.
func Events(s string) []evtree.Event {
	var out []evtree.Event
	for _, tok := range strings.Fields(s) {
		if k, ok := markers[tok]; ok {
			out = append(out, evtree.Event{Kind: k})
			continue
		}
		switch tok[0] {
		case '=':
			out = append(out, evtree.Event{Kind: evtree.Scalar, Value: []byte(unescape.Replace(tok[1:]))})
		case '*':
			out = append(out, evtree.Event{Kind: evtree.Alias, Value: []byte(tok[1:])})
		default:
			panic(fmt.Sprintf("invalid event token %q", tok))
		}
	}
	return out
}

// Format renders evs in the notation described by the package comment.
// Attributes other than the kind and payload are not rendered.
func Format(evs []evtree.Event) string {
	ss := make([]string, len(evs))
	for i, e := range evs {
		switch e.Kind {
		case evtree.Scalar:
			ss[i] = "=" + escape.Replace(string(e.Value))
		case evtree.Alias:
			ss[i] = "*" + string(e.Value)
		default:
			for tok, k := range markers {
				if k == e.Kind {
					ss[i] = tok
					break
				}
			}
		}
	}
	return strings.Join(ss, " ")
}

// Drain reads events from src until it reports io.EOF, and returns them.
// If src fails, Drain returns the events read so far along with the error.
func Drain(src evtree.Source) ([]evtree.Event, error) {
	var out []evtree.Event
	for {
		e, err := src.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		} else if err != nil {
			return out, err
		}
		out = append(out, e)
	}
}

// A Tracker counts the events pulled from a source and the events released
// by a tree, to check that each event is released exactly once.
// It implements the [evtree.Releaser] interface.
type Tracker struct {
	mu       sync.Mutex
	pulled   map[string]int
	released map[string]int
}

// NewTracker constructs an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{pulled: make(map[string]int), released: make(map[string]int)}
}

func eventKey(e evtree.Event) string { return e.Kind.String() + ":" + string(e.Value) }

// Source returns a source that delivers the events of src and records each
// one as pulled.
func (t *Tracker) Source(src evtree.Source) evtree.Source {
	return evtree.SourceFunc(func() (evtree.Event, error) {
		e, err := src.Next()
		if err == nil && e.Kind != evtree.NoEvent {
			t.mu.Lock()
			t.pulled[eventKey(e)]++
			t.mu.Unlock()
		}
		return e, err
	})
}

// Release implements the [evtree.Releaser] interface.
func (t *Tracker) Release(e evtree.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.released[eventKey(e)]++
}

// Pulled reports the number of events pulled so far.
func (t *Tracker) Pulled() int { return t.total(t.pulled) }

// Released reports the number of events released so far.
func (t *Tracker) Released() int { return t.total(t.released) }

func (t *Tracker) total(m map[string]int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	var n int
	for _, v := range m {
		n += v
	}
	return n
}

// Check reports an error if any event has been pulled but not released, or
// released more often than it was pulled.
func (t *Tracker) Check() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	keys := slices.Sorted(maps.Keys(t.pulled))
	for k := range t.released {
		if _, ok := t.pulled[k]; !ok {
			keys = append(keys, k)
		}
	}
	for _, k := range keys {
		if p, r := t.pulled[k], t.released[k]; p != r {
			return fmt.Errorf("event %s: pulled %d, released %d", k, p, r)
		}
	}
	return nil
}
