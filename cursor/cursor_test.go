// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package cursor_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/evtree"
	"github.com/creachadair/evtree/cursor"
	"github.com/creachadair/evtree/jsonevent"
)

const testJSON = `{
  "list": [
    {
      "x": 1
    },
    {
      "x": 2
    }
  ],
  "y": {
    "hello": "there"
  },
  "o": [
    "hi",
    "yourself"
  ],
  "xyz": {
    "p": true,
    "d": true,
    "q": false
  }
}`

func mustParse(t *testing.T, input string) *evtree.Tree {
	t.Helper()
	tree, err := evtree.Build(jsonevent.NewSource(strings.NewReader(input)))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(tree.Close)
	return tree
}

// lastChild is a path function that selects the last child of a node.
func lastChild(n *evtree.Node) (*evtree.Node, error) {
	switch n.Type() {
	case evtree.SequenceType, evtree.MappingType:
		if n.Len() == 0 {
			return nil, errors.New("no children")
		}
		return n.Child(n.Len() - 1), nil
	default:
		return nil, errors.New("not a thing with children")
	}
}

func TestCursor(t *testing.T) {
	doc := mustParse(t, testJSON).Document(0)
	list := doc.ChildNamed("list")
	xyz := doc.ChildNamed("xyz")

	tests := []struct {
		name string
		path []any
		want *evtree.Node
		fail bool
	}{
		{"NilInput", nil, doc, false},
		{"NoMatch", []any{"nonesuch"}, doc, true},
		{"WrongIndex", []any{11}, doc, true},
		{"NilElement", []any{"y", nil}, doc.ChildNamed("y"), false},

		{"ArrayPos", []any{"list", 1}, list.Child(1), false},
		{"ArrayNeg", []any{"list", -1}, list.Child(1), false},
		{"ArrayRange", []any{"o", 25}, doc.ChildNamed("o"), true},
		{"ArrayThenKey", []any{"list", 0, "x"}, list.Child(0).ChildNamed("x"), false},
		{"ObjPath", []any{"xyz", "d"}, xyz.ChildNamed("d"), false},
		{"ObjIndex", []any{"xyz", -2}, xyz.ChildNamed("d"), false},
		{"KeyOnArray", []any{"o", "hi"}, doc.ChildNamed("o"), true},

		{"FuncArray", []any{"o", lastChild}, doc.ChildNamed("o").Child(1), false},
		{"FuncObj", []any{"xyz", lastChild}, xyz.ChildNamed("q"), false},
		{"FuncWrong", []any{"xyz", "d", lastChild}, xyz.ChildNamed("d"), true},
		{"BadElement", []any{3.5}, doc, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := cursor.New(doc).Down(tc.path...)
			err := c.Err()
			if err != nil {
				if tc.fail {
					t.Logf("Got expected error: %v", err)
				} else {
					t.Fatalf("Down %+v: unexpected error: %v", tc.path, err)
				}
			} else if tc.fail {
				t.Fatalf("Down %+v: got %v, want error", tc.path, c.Value())
			}
			if got := c.Value(); got != tc.want {
				t.Errorf("Down %+v: got %v, want %v", tc.path, got, tc.want)
			}
		})
	}
}

func TestCursorMoves(t *testing.T) {
	doc := mustParse(t, testJSON).Document(0)
	c := cursor.New(doc)
	if !c.AtOrigin() || c.Origin() != doc {
		t.Fatal("New cursor is not at its origin")
	}

	c.Down("list", 0, "x")
	if c.Err() != nil {
		t.Fatalf("Down: unexpected error: %v", c.Err())
	}
	if got := c.Value().Text(); got != "1" {
		t.Errorf("Value: got %q, want 1", got)
	}
	if p := c.Path(); len(p) != 4 || p[0] != doc || p[3] != c.Value() {
		t.Errorf("Path: got %v", p)
	}

	if got := c.Up().Up().Value(); got != doc.ChildNamed("list") {
		t.Errorf("Up: got %v, want list", got)
	}
	c.Down(-1, "x")
	if got := c.Value().Text(); got != "2" {
		t.Errorf("Down from list: got %q, want 2", got)
	}

	c.Down("missing")
	if c.Err() == nil {
		t.Error("Down missing: got nil error")
	}
	c.Reset()
	if !c.AtOrigin() || c.Err() != nil {
		t.Errorf("Reset: at origin %v, err %v", c.AtOrigin(), c.Err())
	}
	c.Up()
	if !c.AtOrigin() {
		t.Error("Up at origin moved the cursor")
	}
}

func TestPath(t *testing.T) {
	tree := mustParse(t, testJSON)

	// The root of a single-document tree traverses as its value.
	n, err := cursor.Path(tree.Root(), "y", "hello")
	if err != nil {
		t.Fatalf("Path: unexpected error: %v", err)
	}
	if got := n.Text(); got != "there" {
		t.Errorf("Path: got %q, want there", got)
	}

	if n, err := cursor.Path(tree.Root(), "y", "nonesuch"); err == nil {
		t.Errorf("Path: got %v, want error", n)
	}
}
