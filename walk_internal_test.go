// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package evtree

import "testing"

type depthRecorder []int

func (d *depthRecorder) DebugLine(depth int, _ string) error {
	*d = append(*d, depth)
	return nil
}

func TestDebugLineDepth(t *testing.T) {
	tests := []struct {
		depth     int
		kind      Kind
		print     int
		wantAfter int
	}{
		{0, StreamStart, 0, 1},
		{2, Scalar, 2, 2},
		{2, Alias, 2, 2},
		{2, MappingEnd, 1, 1},
		{1, DocumentEnd, 0, 0},

		// Underflow is clamped to zero.
		{0, SequenceEnd, 0, 0},
		{0, StreamEnd, 0, 0},
	}
	var n *Node
	for _, tc := range tests {
		var rec depthRecorder
		next, err := n.debugLine(&rec, tc.depth, Event{Kind: tc.kind})
		if err != nil {
			t.Fatalf("debugLine: unexpected error: %v", err)
		}
		if len(rec) != 1 || rec[0] != tc.print {
			t.Errorf("debugLine(%d, %v): printed at %v, want %d", tc.depth, tc.kind, rec, tc.print)
		}
		if next != tc.wantAfter {
			t.Errorf("debugLine(%d, %v): next depth %d, want %d", tc.depth, tc.kind, next, tc.wantAfter)
		}
	}
}

func TestArenaLinks(t *testing.T) {
	tree := &Tree{nodes: make([]Node, 1), rel: nopReleaser{}}
	root := tree.alloc(Root, Event{Kind: StreamStart})
	var docs []int32
	for range 3 {
		id := tree.alloc(Document, Event{Kind: DocumentStart})
		tree.appendChild(root, id)
		docs = append(docs, id)
	}
	r := tree.at(root)
	if r.child != docs[0] || r.last != docs[2] {
		t.Errorf("Root links: child=%d last=%d, want %d, %d", r.child, r.last, docs[0], docs[2])
	}
	for i := range 2 {
		if got := tree.at(docs[i]).next; got != docs[i+1] {
			t.Errorf("Doc %d next: got %d, want %d", i, got, docs[i+1])
		}
	}
	if got := tree.at(docs[2]).next; got != 0 {
		t.Errorf("Last next: got %d, want 0", got)
	}
	if tree.at(0) != nil || tree.at(99) != nil {
		t.Error("Out-of-range index returned a node")
	}
	if n := tree.destroy(root); n != 4 {
		t.Errorf("destroy: visited %d nodes, want 4", n)
	}
}
